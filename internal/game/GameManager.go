package game

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type GameTickMsg struct {
	Result StepResult
}

type GameOverMsg struct {
	Result StepResult
	// Err is set when the game ended on something other than a self-collision, e.g. a full grid.
	Err error
}

// GameManager drives one GameState from a ticker. Every access to the state
// happens on the loop goroutine; input arrives through the channels.
type GameManager struct {
	DirectionChannel chan Direction
	AutopilotChannel chan bool
	UpdateChannel    chan tea.Msg

	Player        *Player
	PlayerManager *PlayerManager

	state        *GameState
	autopilot    Strategy
	autopilotOn  bool
	tickDuration time.Duration
	started      atomic.Bool
	isRunning    atomic.Bool
	done         chan struct{}
}

// GetNewGameManager wires a session. autopilot and playerManager may be nil.
func GetNewGameManager(state *GameState, player *Player, playerManager *PlayerManager, autopilot Strategy) *GameManager {
	tick := state.Config().TickDuration
	if tick <= 0 {
		tick = GameTickDuration
	}

	return &GameManager{
		DirectionChannel: make(chan Direction, 10),
		AutopilotChannel: make(chan bool, 1),
		UpdateChannel:    make(chan tea.Msg),
		Player:           player,
		PlayerManager:    playerManager,
		state:            state,
		autopilot:        autopilot,
		tickDuration:     tick,
		done:             make(chan struct{}),
	}
}

// InitialSnapshot is the state before the first tick. Call it before StartGameLoop.
func (gm *GameManager) InitialSnapshot() StepResult {
	return gm.state.Snapshot()
}

func (gm *GameManager) GridSize() (int, int) {
	return gm.state.Width(), gm.state.Height()
}

func (gm *GameManager) CollisionPolicy() CollisionPolicy {
	return gm.state.Config().OnCollision
}

func (gm *GameManager) IsRunning() bool {
	return gm.isRunning.Load()
}

// Done is closed once the loop has returned and the last run was handed to the PlayerManager.
func (gm *GameManager) Done() <-chan struct{} {
	return gm.done
}

// Start runs the loop on its own goroutine. The PlayerManager stays open
// for the loop's final run until the loop returns.
func (gm *GameManager) Start(ctx context.Context) <-chan struct{} {
	release := func() {}
	if gm.PlayerManager != nil {
		release = gm.PlayerManager.holdOpen()
	}
	go func() {
		defer release()
		gm.StartGameLoop(ctx)
	}()
	return gm.done
}

// StartGameLoop blocks until ctx is cancelled or the game is over. A manager runs its loop once.
func (gm *GameManager) StartGameLoop(ctx context.Context) {
	if !gm.started.CompareAndSwap(false, true) {
		return
	}
	gm.isRunning.Store(true)
	defer close(gm.done)
	defer gm.isRunning.Store(false)
	defer gm.finish()

	log.Info("Game loop started.", "width", gm.state.Width(), "height", gm.state.Height(),
		"tick", gm.tickDuration, "on_collision", gm.state.Config().OnCollision)

	ticker := time.NewTicker(gm.tickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Game loop stopped.", "reason", ctx.Err())
			return
		case dir := <-gm.DirectionChannel:
			gm.processPlayerInput(dir)
		case enabled := <-gm.AutopilotChannel:
			gm.autopilotOn = enabled && gm.autopilot != nil
			log.Debug("Autopilot toggled", "enabled", gm.autopilotOn)
		case <-ticker.C:
			msg, done := gm.processGameTick()
			if !gm.publish(ctx, msg) || done {
				log.Info("Game loop stopped.", "ticks", gm.state.Ticks())
				return
			}
		}
	}
}

// RequestDirection hands a key press to the loop without blocking the caller.
func (gm *GameManager) RequestDirection(dir Direction) {
	select {
	case gm.DirectionChannel <- dir:
	default:
		log.Debug("Direction channel full, dropping input", "direction", dir)
	}
}

func (gm *GameManager) SetAutopilot(enabled bool) {
	select {
	case gm.AutopilotChannel <- enabled:
	default:
	}
}

func (gm *GameManager) HasAutopilot() bool {
	return gm.autopilot != nil
}

// processPlayerInput only fills the pending slot; the snake commits it on the next tick.
func (gm *GameManager) processPlayerInput(dir Direction) {
	gm.state.RequestDirection(dir)
}

// processGameTick steps the state once and reports whether the loop should end.
func (gm *GameManager) processGameTick() (tea.Msg, bool) {
	if gm.autopilotOn {
		width, height := gm.GridSize()
		dir, err := gm.autopilot.NextDirection(gm.state.Snapshot(), width, height)
		if err != nil {
			log.Warn("Autopilot failed, keeping heading", "error", err)
		} else {
			gm.state.RequestDirection(dir)
		}
	}

	result, err := gm.state.Step()
	if result.Collided {
		gm.sunsetRun(result.RunScore, result.RunTicks)
	}

	if err != nil {
		var gridFull *GridFullError
		if errors.As(err, &gridFull) {
			log.Info("Board filled", "occupied", gridFull.Occupied)
			gm.sunsetRun(gm.state.Score(), gm.state.Ticks()-gm.state.runStartTick)
		} else if !errors.Is(err, ErrGameOver) {
			log.Warn("Game ended", "error", err)
		}
		return GameOverMsg{Result: result, Err: err}, true
	}
	if result.GameOver {
		return GameOverMsg{Result: result}, true
	}
	return GameTickMsg{Result: result}, false
}

func (gm *GameManager) publish(ctx context.Context, msg tea.Msg) bool {
	select {
	case gm.UpdateChannel <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

func (gm *GameManager) sunsetRun(score, ticks int) {
	if gm.Player == nil {
		return
	}
	if gm.PlayerManager == nil {
		gm.Player.recordRun(score)
		return
	}
	gm.PlayerManager.SunsetRun(gm.Player, score, ticks)
}

// finish records the snake that was still alive when the session ended.
func (gm *GameManager) finish() {
	if gm.state.IsOver() {
		return
	}
	gm.sunsetRun(gm.state.Score(), gm.state.Ticks()-gm.state.runStartTick)
}
