package game

import "testing"

func TestWrapStaysInBounds(t *testing.T) {
	sizes := [][2]int{{1, 1}, {4, 4}, {32, 24}, {7, 3}}

	for _, size := range sizes {
		width, height := size[0], size[1]
		for x := 0; x < width; x++ {
			for y := 0; y < height; y++ {
				for _, dir := range Directions {
					got := Wrap(Cell{X: x, Y: y}.Add(dir), width, height)
					if !InBounds(got, width, height) {
						t.Errorf("Wrap((%d,%d)+%v) on %dx%d = %v, out of bounds", x, y, dir, width, height, got)
					}
				}
			}
		}
	}
}

func TestWrapLargeOffsets(t *testing.T) {
	tests := []struct {
		in   Cell
		want Cell
	}{
		{Cell{X: 4, Y: 2}, Cell{X: 0, Y: 2}},
		{Cell{X: -1, Y: 0}, Cell{X: 3, Y: 0}},
		{Cell{X: 0, Y: -1}, Cell{X: 0, Y: 3}},
		{Cell{X: -9, Y: 13}, Cell{X: 3, Y: 1}},
		{Cell{X: 2, Y: 2}, Cell{X: 2, Y: 2}},
	}

	for _, tt := range tests {
		if got := Wrap(tt.in, 4, 4); got != tt.want {
			t.Errorf("Wrap(%v, 4, 4) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToroidalDistance(t *testing.T) {
	tests := []struct {
		a, b Cell
		want int
	}{
		{Cell{X: 0, Y: 0}, Cell{X: 1, Y: 1}, 2},
		{Cell{X: 0, Y: 0}, Cell{X: 9, Y: 0}, 1},
		{Cell{X: 0, Y: 9}, Cell{X: 0, Y: 0}, 1},
		{Cell{X: 2, Y: 2}, Cell{X: 7, Y: 7}, 10},
	}

	for _, tt := range tests {
		if got := GetToroidalDistance(tt.a, tt.b, 10, 10); got != tt.want {
			t.Errorf("GetToroidalDistance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDirectionReverse(t *testing.T) {
	pairs := map[Direction]Direction{Up: Down, Down: Up, Left: Right, Right: Left}
	for dir, want := range pairs {
		if got := dir.Reverse(); got != want {
			t.Errorf("%v.Reverse() = %v, want %v", dir, got, want)
		}
		if dir.IsZero() || !dir.IsUnit() {
			t.Errorf("%v should be a unit vector", dir)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, name := range []string{"up", "Down", "LEFT", "right"} {
		if _, err := ParseDirection(name); err != nil {
			t.Errorf("ParseDirection(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) should fail")
	}
}
