package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGridSize = errors.New("invalid grid size")
	// ErrGameOver is returned by Step once a terminating collision has ended the session.
	ErrGameOver = errors.New("game over")
)

// GridFullError means no free cell is left for the food.
type GridFullError struct {
	Width    int
	Height   int
	Occupied int
}

func (e *GridFullError) Error() string {
	return fmt.Sprintf("grid %dx%d is full: %d cells occupied", e.Width, e.Height, e.Occupied)
}
