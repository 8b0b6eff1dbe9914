package game

import (
	"sync"

	"github.com/charmbracelet/log"
)

const sunsetWorkersCount = 2

// PlayerManager persists finished runs in the background so the tick loop never waits on sqlite.
type PlayerManager struct {
	SunsetPlayersChannel chan FinishedRun

	HighScoreService *HighScoreService

	workers  sync.WaitGroup
	loops    sync.WaitGroup
	mu       sync.RWMutex
	draining bool
	closed   bool
}

func NewPlayerManager(highScoreService *HighScoreService) *PlayerManager {
	playerManager := &PlayerManager{
		SunsetPlayersChannel: make(chan FinishedRun, 64),
		HighScoreService:     highScoreService,
	}

	for w := 1; w <= sunsetWorkersCount; w++ {
		playerManager.workers.Add(1)
		go playerManager.sunsetPlayersWorker()
	}

	return playerManager
}

func (playerManagerInst *PlayerManager) sunsetPlayersWorker() {
	defer playerManagerInst.workers.Done()
	for run := range playerManagerInst.SunsetPlayersChannel {
		playerManagerInst.sunsetRun(run)
	}
}

func (playerManagerInst *PlayerManager) sunsetRun(run FinishedRun) {
	// runs that never ate anything are not worth a leaderboard row
	if run.Score <= 0 || playerManagerInst.HighScoreService == nil {
		return
	}

	if err := playerManagerInst.HighScoreService.SaveHighScore(run.PlayerName, run.Score, run.Ticks); err != nil {
		log.Error("High score persist failed", "player", run.PlayerName, "error", err)
		return
	}
	log.Debug("High score saved", "player", run.PlayerName, "score", run.Score, "ticks", run.Ticks)
}

// SunsetRun queues a finished run; it drops the run instead of blocking when the queue is full.
func (playerManagerInst *PlayerManager) SunsetRun(player *Player, score, ticks int) {
	player.recordRun(score)
	run := FinishedRun{PlayerName: player.Name, Score: score, Ticks: ticks}

	playerManagerInst.mu.RLock()
	defer playerManagerInst.mu.RUnlock()
	if playerManagerInst.closed {
		log.Warn("Player manager closed, dropping run", "player", player.Name, "score", score)
		return
	}
	select {
	case playerManagerInst.SunsetPlayersChannel <- run:
	default:
		log.Warn("Sunset queue full, dropping run", "player", player.Name, "score", score)
	}
}

// holdOpen registers a game loop whose last run Close must wait for.
// Once Close has started, new loops are not waited for.
func (playerManagerInst *PlayerManager) holdOpen() func() {
	playerManagerInst.mu.Lock()
	defer playerManagerInst.mu.Unlock()
	if playerManagerInst.draining {
		return func() {}
	}
	playerManagerInst.loops.Add(1)
	return playerManagerInst.loops.Done
}

// Close waits for the registered game loops to return, then stops accepting
// runs and waits for queued ones to be saved. Cancel the loops first.
func (playerManagerInst *PlayerManager) Close() {
	playerManagerInst.mu.Lock()
	playerManagerInst.draining = true
	playerManagerInst.mu.Unlock()
	playerManagerInst.loops.Wait()

	playerManagerInst.mu.Lock()
	if !playerManagerInst.closed {
		playerManagerInst.closed = true
		close(playerManagerInst.SunsetPlayersChannel)
	}
	playerManagerInst.mu.Unlock()
	playerManagerInst.workers.Wait()
}
