package game

import "testing"

func TestDefaultStrategyHeadsForFood(t *testing.T) {
	strategy, err := NewDefaultStrategy()
	if err != nil {
		t.Fatalf("NewDefaultStrategy failed: %v", err)
	}
	defer strategy.Close()

	tests := []struct {
		name     string
		snapshot StepResult
		want     Direction
	}{
		{
			name: "straight ahead",
			snapshot: StepResult{
				SnakeBody: []Cell{{X: 2, Y: 2}},
				Food:      Cell{X: 5, Y: 2},
				Direction: Right,
			},
			want: Right,
		},
		{
			name: "turn toward food",
			snapshot: StepResult{
				SnakeBody: []Cell{{X: 2, Y: 2}},
				Food:      Cell{X: 2, Y: 6},
				Direction: Right,
			},
			want: Down,
		},
		{
			name: "shorter path across the wrap",
			snapshot: StepResult{
				SnakeBody: []Cell{{X: 1, Y: 1}},
				Food:      Cell{X: 1, Y: 8},
				Direction: Right,
			},
			want: Up,
		},
		{
			name: "never reverses even toward food",
			snapshot: StepResult{
				SnakeBody: []Cell{{X: 5, Y: 5}, {X: 4, Y: 5}},
				Food:      Cell{X: 2, Y: 5},
				Direction: Right,
			},
			want: Right,
		},
		{
			name: "steps around its body",
			snapshot: StepResult{
				SnakeBody: []Cell{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}, {X: 7, Y: 5}},
				Food:      Cell{X: 8, Y: 7},
				Direction: Up,
			},
			want: Up,
		},
		{
			name: "tail stays put right after eating",
			snapshot: StepResult{
				SnakeBody: []Cell{{X: 5, Y: 4}, {X: 5, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 4}},
				Food:      Cell{X: 2, Y: 4},
				Direction: Up,
				Score:     4,
				TailMoves: false,
			},
			want: Up,
		},
		{
			name: "moving tail is free to enter",
			snapshot: StepResult{
				SnakeBody: []Cell{{X: 5, Y: 4}, {X: 5, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 4}},
				Food:      Cell{X: 2, Y: 4},
				Direction: Up,
				Score:     3,
				TailMoves: true,
			},
			want: Left,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := strategy.NextDirection(tt.snapshot, 10, 10)
			if err != nil {
				t.Fatalf("NextDirection failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("NextDirection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLuaStrategyRejectsBadScripts(t *testing.T) {
	if _, err := NewLuaStrategy("broken", "function ("); err == nil {
		t.Error("syntax error should fail")
	}
	if _, err := NewLuaStrategy("missing", "x = 1"); err == nil {
		t.Error("script without getNextDirection should fail")
	}
}

func TestLuaStrategyRejectsInvalidDirections(t *testing.T) {
	scripts := map[string]string{
		"zero vector": `function getNextDirection(state) return {Dx = 0, Dy = 0} end`,
		"diagonal":    `function getNextDirection(state) return {Dx = 1, Dy = 1} end`,
		"not a table": `function getNextDirection(state) return 3 end`,
		"runtime err": `function getNextDirection(state) error("boom") end`,
	}
	snapshot := StepResult{SnakeBody: []Cell{{X: 1, Y: 1}}, Food: Cell{X: 3, Y: 3}, Direction: Up}

	for name, script := range scripts {
		t.Run(name, func(t *testing.T) {
			strategy, err := NewLuaStrategy(name, script)
			if err != nil {
				t.Fatalf("NewLuaStrategy failed: %v", err)
			}
			defer strategy.Close()

			if _, err := strategy.NextDirection(snapshot, 5, 5); err == nil {
				t.Error("NextDirection should fail")
			}
		})
	}
}
