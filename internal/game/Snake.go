package game

// Snake keeps its body head-first: body[0] is the head, the last element is the tail.
type Snake struct {
	body             []Cell
	length           int
	currentDirection Direction
	pendingDirection *Direction
	vacated          *Cell
}

func NewSnake(start Cell, direction Direction) *Snake {
	s := &Snake{}
	s.Reset(start, direction)
	return s
}

// RequestDirection buffers d until the next commit. A later request replaces an earlier one.
func (s *Snake) RequestDirection(d Direction) {
	s.pendingDirection = &d
}

// CommitDirection turns the pending request into the heading, unless it would reverse the snake.
func (s *Snake) CommitDirection() {
	if s.pendingDirection == nil {
		return
	}
	requested := *s.pendingDirection
	s.pendingDirection = nil

	if requested == s.currentDirection.Reverse() || !requested.IsUnit() {
		return
	}
	s.currentDirection = requested
}

// Advance moves the head one cell and pops the tail unless the snake still has growing to do.
func (s *Snake) Advance(width, height int) Cell {
	newHead := Wrap(s.Head().Add(s.currentDirection), width, height)

	s.body = append(s.body, Cell{})
	copy(s.body[1:], s.body)
	s.body[0] = newHead

	s.vacated = nil
	if len(s.body) > s.length {
		tail := s.body[len(s.body)-1]
		s.body = s.body[:len(s.body)-1]
		s.vacated = &tail
	}

	return newHead
}

// Grow takes effect on the next Advance, which keeps the tail in place.
func (s *Snake) Grow() {
	s.length++
}

func (s *Snake) HasSelfCollision() bool {
	head := s.Head()
	for _, segment := range s.body[1:] {
		if segment == head {
			return true
		}
	}
	return false
}

func (s *Snake) Reset(start Cell, direction Direction) {
	s.body = []Cell{start}
	s.length = 1
	s.currentDirection = direction
	s.pendingDirection = nil
	s.vacated = nil
}

func (s *Snake) Head() Cell {
	return s.body[0]
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []Cell {
	body := make([]Cell, len(s.body))
	copy(body, s.body)
	return body
}

func (s *Snake) Length() int {
	return s.length
}

// TailMoves reports whether the next Advance drops the tail cell.
func (s *Snake) TailMoves() bool {
	return len(s.body) >= s.length
}

func (s *Snake) Direction() Direction {
	return s.currentDirection
}

// Vacated is the tail cell dropped by the last Advance, nil when the tail stayed.
func (s *Snake) Vacated() *Cell {
	return s.vacated
}

func (s *Snake) Occupied() map[Cell]struct{} {
	occupied := make(map[Cell]struct{}, len(s.body))
	for _, segment := range s.body {
		occupied[segment] = struct{}{}
	}
	return occupied
}
