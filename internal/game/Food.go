package game

import "math/rand"

type Food struct {
	Position Cell
}

// PlaceRandom draws uniformly from the grid until it hits a cell that is not in occupied.
// Rejection sampling is bounded; past the bound the free cells are scanned and one is
// picked uniformly, so a nearly full board still terminates. A full board yields *GridFullError.
func PlaceRandom(occupied map[Cell]struct{}, width, height int, rng *rand.Rand) (Cell, error) {
	area := width * height
	if len(occupied) >= area {
		return Cell{}, &GridFullError{Width: width, Height: height, Occupied: len(occupied)}
	}

	for attempt := 0; attempt < placementAttemptsPerCell*area; attempt++ {
		candidate := Cell{X: rng.Intn(width), Y: rng.Intn(height)}
		if _, taken := occupied[candidate]; !taken {
			return candidate, nil
		}
	}

	freeCells := make([]Cell, 0, area-len(occupied))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			candidate := Cell{X: x, Y: y}
			if _, taken := occupied[candidate]; !taken {
				freeCells = append(freeCells, candidate)
			}
		}
	}
	if len(freeCells) == 0 {
		return Cell{}, &GridFullError{Width: width, Height: height, Occupied: len(occupied)}
	}

	return freeCells[rng.Intn(len(freeCells))], nil
}
