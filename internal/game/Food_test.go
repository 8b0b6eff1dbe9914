package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestPlaceRandomAvoidsOccupied(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	occupied := map[Cell]struct{}{}
	for x := 0; x < 8; x++ {
		for y := 0; y < 7; y++ {
			occupied[Cell{X: x, Y: y}] = struct{}{}
		}
	}

	for i := 0; i < 200; i++ {
		cell, err := PlaceRandom(occupied, 8, 8, rng)
		if err != nil {
			t.Fatalf("PlaceRandom failed: %v", err)
		}
		if _, taken := occupied[cell]; taken {
			t.Fatalf("PlaceRandom returned occupied cell %v", cell)
		}
		if !InBounds(cell, 8, 8) {
			t.Fatalf("PlaceRandom returned out-of-bounds cell %v", cell)
		}
	}
}

func TestPlaceRandomSingleFreeCell(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	free := Cell{X: 2, Y: 1}
	occupied := map[Cell]struct{}{}
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			if (Cell{X: x, Y: y}) != free {
				occupied[Cell{X: x, Y: y}] = struct{}{}
			}
		}
	}

	cell, err := PlaceRandom(occupied, 3, 3, rng)
	if err != nil {
		t.Fatalf("PlaceRandom failed: %v", err)
	}
	if cell != free {
		t.Errorf("PlaceRandom = %v, want %v", cell, free)
	}
}

func TestPlaceRandomGridFull(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	occupied := map[Cell]struct{}{
		{X: 0, Y: 0}: {}, {X: 1, Y: 0}: {},
		{X: 0, Y: 1}: {}, {X: 1, Y: 1}: {},
	}

	_, err := PlaceRandom(occupied, 2, 2, rng)
	var gridFull *GridFullError
	if !errors.As(err, &gridFull) {
		t.Fatalf("PlaceRandom error = %v, want *GridFullError", err)
	}
	if gridFull.Occupied != 4 {
		t.Errorf("GridFullError.Occupied = %d, want 4", gridFull.Occupied)
	}
}

func TestPlaceRandomNilOccupied(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cell, err := PlaceRandom(nil, 5, 5, rng)
	if err != nil {
		t.Fatalf("PlaceRandom failed: %v", err)
	}
	if !InBounds(cell, 5, 5) {
		t.Errorf("PlaceRandom returned out-of-bounds cell %v", cell)
	}
}
