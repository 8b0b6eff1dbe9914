package game

import "fmt"

// Cell is a (column, row) position on the grid.
type Cell struct {
	X int
	Y int
}

func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.Dx, Y: c.Y + d.Dy}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Wrap folds any cell back onto the torus, whatever the sign of its coordinates.
func Wrap(cell Cell, width, height int) Cell {
	return Cell{
		X: ((cell.X % width) + width) % width,
		Y: ((cell.Y % height) + height) % height,
	}
}

func InBounds(cell Cell, width, height int) bool {
	return cell.X >= 0 && cell.X < width && cell.Y >= 0 && cell.Y < height
}

// CenterCell mirrors how a fresh snake is spawned in the middle of the board.
func CenterCell(width, height int) Cell {
	return Cell{X: width / 2, Y: height / 2}
}
