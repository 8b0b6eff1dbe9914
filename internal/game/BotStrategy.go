package game

// Strategy picks the direction to request before the next tick.
type Strategy interface {
	NextDirection(snapshot StepResult, width, height int) (Direction, error)
	Close()
}

// DefaultAutopilotScript greedily heads for the food, never reversing and
// avoiding body cells. Candidates arrive with the current heading first, so
// ties keep the snake going straight.
const DefaultAutopilotScript = `
function getNextDirection(state)
	local best = nil
	for _, candidate in ipairs(state.candidates) do
		if not candidate.Blocked and not candidate.Reverse then
			if best == nil or candidate.Distance < best.Distance then
				best = candidate
			end
		end
	end
	if best == nil then
		return {Dx = state.direction.Dx, Dy = state.direction.Dy}
	end
	return {Dx = best.Dx, Dy = best.Dy}
end
`
