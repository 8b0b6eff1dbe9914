package game

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

const luaEntryPoint = "getNextDirection"

// LuaStrategy runs a Lua steering script. It holds one interpreter and must
// only be used from the goroutine driving the game loop.
type LuaStrategy struct {
	StrategyName string
	luaState     *lua.LState
}

func NewLuaStrategy(name, definition string) (*LuaStrategy, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(definition); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua strategy %s: %w", name, err)
	}
	if luaState.GetGlobal(luaEntryPoint).Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("lua strategy %s does not define %s", name, luaEntryPoint)
	}

	return &LuaStrategy{StrategyName: name, luaState: luaState}, nil
}

func NewDefaultStrategy() (*LuaStrategy, error) {
	return NewLuaStrategy("greedy", DefaultAutopilotScript)
}

func (s *LuaStrategy) NextDirection(snapshot StepResult, width, height int) (Direction, error) {
	if len(snapshot.SnakeBody) == 0 {
		return Direction{}, errors.New("snapshot has no snake")
	}

	stateTable := s.buildStateTable(snapshot, width, height)
	err := s.luaState.CallByParam(lua.P{
		Fn:      s.luaState.GetGlobal(luaEntryPoint),
		NRet:    1,
		Protect: true,
	}, stateTable)
	if err != nil {
		return Direction{}, fmt.Errorf("could not execute lua strategy %s: %w", s.StrategyName, err)
	}

	luaReturn := s.luaState.Get(-1)
	s.luaState.Pop(1)
	luaTable, ok := luaReturn.(*lua.LTable)
	if !ok {
		return Direction{}, fmt.Errorf("lua return value was type %s, expected table", luaReturn.Type().String())
	}

	dir := convertLuaDirectionTableToGoStruct(luaTable)
	if !dir.IsUnit() {
		return Direction{}, fmt.Errorf("lua strategy %s returned invalid direction %v", s.StrategyName, dir)
	}
	return dir, nil
}

func (s *LuaStrategy) Close() {
	s.luaState.Close()
}

func (s *LuaStrategy) buildStateTable(snapshot StepResult, width, height int) *lua.LTable {
	head := snapshot.SnakeBody[0]

	// a tail that is about to move never blocks; one that stays after eating does
	occupied := snapshot.SnakeBody
	if snapshot.TailMoves {
		occupied = occupied[:len(occupied)-1]
	}
	blocked := make(map[Cell]struct{}, len(occupied))
	for _, segment := range occupied {
		blocked[segment] = struct{}{}
	}

	candidates := s.luaState.NewTable()
	ordered := append([]Direction{snapshot.Direction}, Directions...)
	seen := make(map[Direction]bool, len(Directions))
	for _, dir := range ordered {
		if seen[dir] {
			continue
		}
		seen[dir] = true

		next := Wrap(head.Add(dir), width, height)
		_, isBlocked := blocked[next]

		candidate := s.luaState.NewTable()
		candidate.RawSetString("Dx", lua.LNumber(dir.Dx))
		candidate.RawSetString("Dy", lua.LNumber(dir.Dy))
		candidate.RawSetString("Distance", lua.LNumber(GetToroidalDistance(next, snapshot.Food, width, height)))
		candidate.RawSetString("Blocked", lua.LBool(isBlocked))
		candidate.RawSetString("Reverse", lua.LBool(dir == snapshot.Direction.Reverse()))
		candidates.Append(candidate)
	}

	stateTable := s.luaState.NewTable()
	stateTable.RawSetString("head", s.cellTable(head))
	stateTable.RawSetString("food", s.cellTable(snapshot.Food))
	direction := s.luaState.NewTable()
	direction.RawSetString("Dx", lua.LNumber(snapshot.Direction.Dx))
	direction.RawSetString("Dy", lua.LNumber(snapshot.Direction.Dy))
	stateTable.RawSetString("direction", direction)
	stateTable.RawSetString("candidates", candidates)
	stateTable.RawSetString("width", lua.LNumber(width))
	stateTable.RawSetString("height", lua.LNumber(height))

	return stateTable
}

func (s *LuaStrategy) cellTable(cell Cell) *lua.LTable {
	tbl := s.luaState.NewTable()
	tbl.RawSetString("X", lua.LNumber(cell.X))
	tbl.RawSetString("Y", lua.LNumber(cell.Y))
	return tbl
}

func convertLuaDirectionTableToGoStruct(luaTbl *lua.LTable) Direction {
	result := Direction{}
	luaTbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}

		switch lua.LVAsString(key) {
		case "Dy":
			result.Dy = int(lua.LVAsNumber(value))
		case "Dx":
			result.Dx = int(lua.LVAsNumber(value))
		}
	})
	return result
}
