package game

import (
	"testing"
	"time"
)

func newTestHighScoreService(t *testing.T) *HighScoreService {
	t.Helper()
	service, err := NewHighScoreService(":memory:")
	if err != nil {
		t.Fatalf("NewHighScoreService failed: %v", err)
	}
	t.Cleanup(func() { service.Close() })
	return service
}

func TestHighScoresAreOrdered(t *testing.T) {
	service := newTestHighScoreService(t)

	runs := []FinishedRun{
		{PlayerName: "slow", Score: 5, Ticks: 300},
		{PlayerName: "best", Score: 9, Ticks: 500},
		{PlayerName: "fast", Score: 5, Ticks: 120},
		{PlayerName: "meh", Score: 1, Ticks: 40},
	}
	for _, run := range runs {
		if err := service.SaveHighScore(run.PlayerName, run.Score, run.Ticks); err != nil {
			t.Fatalf("SaveHighScore failed: %v", err)
		}
	}

	scores, err := service.GetHighScores(3, 0)
	if err != nil {
		t.Fatalf("GetHighScores failed: %v", err)
	}
	want := []string{"best", "fast", "slow"}
	if len(scores) != len(want) {
		t.Fatalf("got %d scores, want %d", len(scores), len(want))
	}
	for i, name := range want {
		if scores[i].PlayerName != name {
			t.Errorf("scores[%d] = %s, want %s", i, scores[i].PlayerName, name)
		}
	}
	if scores[0].CreatedAt.IsZero() || time.Since(scores[0].CreatedAt) > time.Hour {
		t.Errorf("CreatedAt = %v, want a recent timestamp", scores[0].CreatedAt)
	}

	page, err := service.GetHighScores(3, 3)
	if err != nil {
		t.Fatalf("GetHighScores failed: %v", err)
	}
	if len(page) != 1 || page[0].PlayerName != "meh" {
		t.Errorf("second page = %+v, want only meh", page)
	}

	count, err := service.GetTotalScoreCount()
	if err != nil {
		t.Fatalf("GetTotalScoreCount failed: %v", err)
	}
	if count != 4 {
		t.Errorf("GetTotalScoreCount() = %d, want 4", count)
	}
}

func TestPlayerManagerPersistsRuns(t *testing.T) {
	service := newTestHighScoreService(t)
	playerManager := NewPlayerManager(service)
	player := CreateNewPlayer(nil, "ouro")

	playerManager.SunsetRun(player, 4, 80)
	playerManager.SunsetRun(player, 0, 3)
	playerManager.SunsetRun(player, 7, 150)
	playerManager.Close()

	if player.Deaths != 3 || player.BestScore != 7 {
		t.Errorf("player deaths %d best %d, want 3 and 7", player.Deaths, player.BestScore)
	}

	count, err := service.GetTotalScoreCount()
	if err != nil {
		t.Fatalf("GetTotalScoreCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("saved %d runs, want 2 (empty runs are skipped)", count)
	}
}

func TestCreateNewPlayerDefaultsName(t *testing.T) {
	if got := CreateNewPlayer(nil, "").Name; got != "anonymous" {
		t.Errorf("Name = %q, want anonymous", got)
	}
}
