package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Mshel/torus/internal/game"
	"github.com/Mshel/torus/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Error("Torus exited with error", "error", err)
		os.Exit(1)
	}
}

// run owns every resource so the deferred closes happen before main exits.
func run() error {
	cfg, err := game.LoadConfigFromEnv(game.DefaultConfig())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// the TUI owns the terminal, so logs go to a file when one is configured
	if logPath := os.Getenv("TORUS_LOG_PATH"); logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("could not open log file %s: %w", logPath, err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.ErrorLevel)
	}

	dbPath := os.Getenv("TORUS_DB_PATH")
	if dbPath == "" {
		dbPath = game.HighScoreDBPath
	}
	highScores, err := game.NewHighScoreService(dbPath)
	if err != nil {
		return fmt.Errorf("could not open high scores: %w", err)
	}
	defer highScores.Close()

	playerManager := game.NewPlayerManager(highScores)
	defer playerManager.Close()

	// cancelled before playerManager.Close so a running game hands over its last run
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	options := ui.SessionOptions{
		Config:        cfg,
		PlayerManager: playerManager,
		HighScores:    highScores,
		Context:       ctx,
	}
	p := tea.NewProgram(ui.NewControllerModel(options, 0, 0), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program exited: %w", err)
	}
	return nil
}
