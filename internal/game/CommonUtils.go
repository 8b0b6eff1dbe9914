package game

import (
	"fmt"
	"strings"
)

type Direction struct {
	Dx, Dy int
}

var (
	Up    = Direction{Dx: 0, Dy: -1}
	Down  = Direction{Dx: 0, Dy: 1}
	Left  = Direction{Dx: -1, Dy: 0}
	Right = Direction{Dx: 1, Dy: 0}
)

var Directions = []Direction{Up, Right, Down, Left}

func (d Direction) Reverse() Direction {
	return Direction{Dx: -d.Dx, Dy: -d.Dy}
}

func (d Direction) IsZero() bool {
	return d.Dx == 0 && d.Dy == 0
}

// IsUnit reports whether d is one of the four grid directions.
func (d Direction) IsUnit() bool {
	return abs(d.Dx)+abs(d.Dy) == 1
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("(%d,%d)", d.Dx, d.Dy)
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Direction{}, fmt.Errorf("unknown direction %q", s)
}

// GetToroidalDistance is the Manhattan distance on a wrapping grid.
func GetToroidalDistance(a, b Cell, width, height int) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	return min(dx, width-dx) + min(dy, height-dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
