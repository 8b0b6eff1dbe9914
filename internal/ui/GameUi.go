package ui

import (
	"context"

	"github.com/Mshel/torus/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// GameModel renders one running session and forwards key presses to its loop.
type GameModel struct {
	ScreenWidth  int
	ScreenHeight int
	Result       game.StepResult
	Deaths       int
	Autopilot    bool

	gameManager *game.GameManager
	player      *game.Player
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewGameModel(ctx context.Context, cancel context.CancelFunc, gm *game.GameManager, player *game.Player,
	screenWidth int, screenHeight int) GameModel {
	return GameModel{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		Result:       gm.InitialSnapshot(),
		gameManager:  gm,
		player:       player,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (m GameModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

func (m GameModel) listenForGameUpdates() tea.Cmd {
	updates := m.gameManager.UpdateChannel
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case msg := <-updates:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "w":
			m.gameManager.RequestDirection(game.Up)
		case "down", "s":
			m.gameManager.RequestDirection(game.Down)
		case "left", "a":
			m.gameManager.RequestDirection(game.Left)
		case "right", "d":
			m.gameManager.RequestDirection(game.Right)
		case "p":
			if m.gameManager.HasAutopilot() {
				m.Autopilot = !m.Autopilot
				m.gameManager.SetAutopilot(m.Autopilot)
			}
		case "q", "ctrl+c":
			log.Info("Player quit", "player", m.player.Name, "score", m.Result.Score)
			m.cancel()
			<-m.gameManager.Done()
			return m, tea.Quit
		}
		return m, nil

	case game.GameTickMsg:
		m.Result = msg.Result
		if msg.Result.Collided {
			m.Deaths++
		}
		return m, m.listenForGameUpdates()

	case game.GameOverMsg:
		m.Result = msg.Result
		if msg.Result.Collided {
			m.Deaths++
		}
		m.cancel()
		return m, func() tea.Msg {
			return ShowGameOverMsg{Result: msg.Result, Deaths: m.Deaths, Err: msg.Err}
		}
	}

	return m, nil
}

func (m GameModel) View() string {
	width, height := m.gameManager.GridSize()
	mapViewContent := renderBoard(width, height, layersFor(m.Result)...)
	mapViewBox := mapViewStyle.Render(mapViewContent)

	mapViewWidth := int(float64(m.ScreenWidth) * mapViewPercentage)
	statusPanelWidth := max(m.ScreenWidth-mapViewWidth-statusPanelPadding, 20)

	statusPanelViewBox := statusPanelStyle.
		Width(statusPanelWidth).
		Render(renderStatusPanel(statusInfo{
			PlayerName: m.player.Name,
			Result:     m.Result,
			Autopilot:  m.Autopilot,
			Policy:     m.gameManager.CollisionPolicy(),
			Deaths:     m.Deaths,
		}))

	return lipgloss.JoinHorizontal(lipgloss.Top, mapViewBox, statusPanelViewBox)
}
