package game

import (
	"fmt"
	"math/rand"
	"time"
)

// StepResult is everything a renderer needs after one tick. SnakeBody is never aliased.
type StepResult struct {
	SnakeBody []Cell
	Food      Cell
	Direction Direction
	// Vacated is the tail cell released this tick, nil when the snake grew or was reset.
	Vacated   *Cell
	Collided  bool
	Ate       bool
	GameOver  bool
	Score     int
	BestScore int
	Tick      int
	// TailMoves is false on the tick after eating, when the next advance keeps the tail.
	TailMoves bool
	// RunScore and RunTicks describe the run that just ended; set only when Collided.
	RunScore int
	RunTicks int
}

// GameState exclusively owns the snake and the food of one session.
type GameState struct {
	config Config
	width  int
	height int
	rng    *rand.Rand

	snake *Snake
	food  Food

	ticks        int
	runStartTick int
	bestScore    int
	deaths       int
	over         bool
}

// Initialize validates cfg and spawns a snake in the middle of the grid.
// A nil rng is replaced by a time-seeded one; pass a seeded source for reproducible games.
func Initialize(cfg Config, rng *rand.Rand) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	width, height := cfg.GridSize()
	state := &GameState{
		config: cfg,
		width:  width,
		height: height,
		rng:    rng,
	}
	if err := state.spawn(); err != nil {
		return nil, err
	}

	return state, nil
}

func (gs *GameState) spawn() error {
	start := CenterCell(gs.width, gs.height)
	if gs.snake == nil {
		gs.snake = NewSnake(start, gs.initialDirection())
	} else {
		gs.snake.Reset(start, gs.initialDirection())
	}

	foodCell, err := PlaceRandom(gs.snake.Occupied(), gs.width, gs.height, gs.rng)
	if err != nil {
		return fmt.Errorf("failed to place food: %w", err)
	}
	gs.food.Position = foodCell
	gs.runStartTick = gs.ticks
	return nil
}

func (gs *GameState) initialDirection() Direction {
	if gs.config.InitialDirection == FixedDirection {
		return gs.config.FixedDirection
	}
	return Directions[gs.rng.Intn(len(Directions))]
}

// RequestDirection may be called any number of times between ticks; only the last call counts.
func (gs *GameState) RequestDirection(d Direction) {
	gs.snake.RequestDirection(d)
}

// Step runs one tick: commit direction, advance, eat, then check for self-collision.
func (gs *GameState) Step() (StepResult, error) {
	if gs.over {
		return gs.Snapshot(), ErrGameOver
	}

	gs.ticks++
	gs.snake.CommitDirection()
	newHead := gs.snake.Advance(gs.width, gs.height)

	ate := false
	if newHead == gs.food.Position {
		ate = true
		gs.snake.Grow()
		foodCell, err := PlaceRandom(gs.snake.Occupied(), gs.width, gs.height, gs.rng)
		if err != nil {
			gs.over = true
			result := gs.Snapshot()
			result.Ate = true
			return result, fmt.Errorf("failed to relocate food: %w", err)
		}
		gs.food.Position = foodCell
		gs.bestScore = max(gs.bestScore, gs.Score())
	}

	collided := gs.snake.HasSelfCollision()
	vacated := gs.snake.Vacated()
	runScore, runTicks := 0, 0
	if collided {
		gs.deaths++
		runScore, runTicks = gs.Score(), gs.ticks-gs.runStartTick
		switch gs.config.OnCollision {
		case TerminateOnCollision:
			gs.over = true
		default:
			vacated = nil
			if err := gs.spawn(); err != nil {
				gs.over = true
				return gs.Snapshot(), err
			}
		}
	}

	result := gs.Snapshot()
	result.Ate = ate
	result.Collided = collided
	result.RunScore = runScore
	result.RunTicks = runTicks
	if vacated != nil {
		cell := *vacated
		result.Vacated = &cell
	}
	return result, nil
}

// Snapshot copies the renderable state without advancing the game.
func (gs *GameState) Snapshot() StepResult {
	return StepResult{
		SnakeBody: gs.snake.Body(),
		Food:      gs.food.Position,
		Direction: gs.snake.Direction(),
		GameOver:  gs.over,
		Score:     gs.Score(),
		BestScore: gs.bestScore,
		Tick:      gs.ticks,
		TailMoves: gs.snake.TailMoves(),
	}
}

func (gs *GameState) Width() int  { return gs.width }
func (gs *GameState) Height() int { return gs.height }
func (gs *GameState) Ticks() int  { return gs.ticks }

// Score counts the food eaten by the current snake.
func (gs *GameState) Score() int { return gs.snake.Length() - 1 }

func (gs *GameState) BestScore() int { return gs.bestScore }

// Deaths counts self-collisions over the whole session.
func (gs *GameState) Deaths() int { return gs.deaths }

func (gs *GameState) IsOver() bool { return gs.over }

func (gs *GameState) Config() Config { return gs.config }
