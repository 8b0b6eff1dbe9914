package ui

import (
	"context"
	"math/rand"

	"github.com/Mshel/torus/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
	GameOverScreen
	LeaderboardScreen
)

const leaderboardSize = 10

// Messages for state transitions
type SetupSubmitMsg struct {
	Name string
}
type BackToIntroMsg struct{}
type ShowGameOverMsg struct {
	Result game.StepResult
	Deaths int
	Err    error
}
type LeaderboardLoadedMsg struct {
	Scores []game.Score
	Total  int
	Err    error
}

// SessionOptions is everything a controller needs to start games for one terminal.
type SessionOptions struct {
	Config        game.Config
	PlayerManager *game.PlayerManager
	HighScores    *game.HighScoreService
	Session       ssh.Session
	// Context, when set, stops every game of the session once cancelled.
	Context context.Context
	// Seed makes every game of the session reproducible; 0 seeds from the clock.
	Seed int64
}

type ControllerModel struct {
	CurrentScreen Screen
	Options       SessionOptions

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model
	GameOver   GameOverState

	ScreenWidth  int
	ScreenHeight int

	player            *game.Player
	cancelGame        context.CancelFunc
	gameDone          <-chan struct{}
	leaderboardReturn Screen
}

func NewControllerModel(options SessionOptions, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		Options:       options,

		IntroModel: NewIntroModel(screenWidth, screenHeight, options.Config),
		SetupModel: NewInitialSetupModel(screenWidth, screenHeight),
		GameOver:   GameOverState{ScreenWidth: screenWidth, ScreenHeight: screenHeight},

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	case GameOverScreen:
		return m.GameOver.RenderGameOverScreen()
	case LeaderboardScreen:
		return m.GameOver.RenderLeaderboardScreen()
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// --- 1. Global Key Check ---
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		m.stopGame()
		return m, tea.Quit
	}

	// --- 2. State Transition Message Handling ---
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.GameOver.ScreenWidth = msg.Width
		m.GameOver.ScreenHeight = msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		switch msg {
		case introPlay:
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		case introLeaderboard:
			m.leaderboardReturn = IntroScreen
			m.CurrentScreen = LeaderboardScreen
			return m, m.loadLeaderboard()
		default:
			return m, tea.Quit
		}

	case BackToIntroMsg:
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()

	case SetupSubmitMsg:
		m.player = game.CreateNewPlayer(m.Options.Session, msg.Name)
		return m.startGame()

	case ShowGameOverMsg:
		m.stopGame()
		m.CurrentScreen = GameOverScreen
		m.GameOver.PlayerName = m.player.Name
		m.GameOver.Result = msg.Result
		m.GameOver.Deaths = msg.Deaths
		m.GameOver.Err = msg.Err
		m.GameOver.SelectedButton = 0
		return m, nil

	case LeaderboardLoadedMsg:
		m.GameOver.Scores = msg.Scores
		m.GameOver.TotalScores = msg.Total
		m.GameOver.LeaderboardErr = msg.Err
		return m, nil
	}

	// --- 3. Message Delegation ---
	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case GameScreen:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
	case GameOverScreen:
		return m.updateGameOver(msg)
	case LeaderboardScreen:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc", "enter", "q":
				m.CurrentScreen = m.leaderboardReturn
			}
		}
	}

	return m, cmd
}

func (m ControllerModel) updateGameOver(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "left", "h", "shift+tab":
		m.GameOver.SelectedButton = (m.GameOver.SelectedButton + gameOverButtonCount - 1) % gameOverButtonCount
	case "right", "l", "tab":
		m.GameOver.SelectedButton = (m.GameOver.SelectedButton + 1) % gameOverButtonCount
	case "q":
		return m, tea.Quit
	case "enter":
		switch m.GameOver.SelectedButton {
		case playAgainButton:
			return m.startGame()
		case leaderboardButton:
			m.leaderboardReturn = GameOverScreen
			m.CurrentScreen = LeaderboardScreen
			return m, m.loadLeaderboard()
		default:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ControllerModel) startGame() (tea.Model, tea.Cmd) {
	m.stopGame()

	cfg := m.Options.Config
	cfg.ScreenWidth, cfg.ScreenHeight = boardSize(m.ScreenWidth, m.ScreenHeight)
	cfg.CellSize = 1

	var rng *rand.Rand
	if m.Options.Seed != 0 {
		rng = rand.New(rand.NewSource(m.Options.Seed))
	}

	state, err := game.Initialize(cfg, rng)
	if err != nil {
		log.Error("Could not start game", "player", m.player.Name, "error", err)
		return m, tea.Quit
	}

	var autopilot game.Strategy
	strategy, err := game.NewDefaultStrategy()
	if err != nil {
		log.Warn("Autopilot unavailable", "error", err)
	} else {
		autopilot = strategy
	}

	parent := m.Options.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	if m.Options.Session != nil {
		stopOnHangup := context.AfterFunc(m.Options.Session.Context(), cancel)
		cancelGame := cancel
		cancel = func() {
			stopOnHangup()
			cancelGame()
		}
	}
	m.cancelGame = cancel

	gameManager := game.GetNewGameManager(state, m.player, m.Options.PlayerManager, autopilot)
	m.GameModel = NewGameModel(ctx, cancel, gameManager, m.player, m.ScreenWidth, m.ScreenHeight)
	done := gameManager.Start(ctx)
	m.gameDone = done
	if autopilot != nil {
		go func() {
			<-done
			autopilot.Close()
		}()
	}

	m.CurrentScreen = GameScreen
	return m, m.GameModel.Init()
}

// stopGame cancels the running loop and waits until its last run is recorded.
func (m ControllerModel) stopGame() {
	if m.cancelGame != nil {
		m.cancelGame()
	}
	if m.gameDone != nil {
		<-m.gameDone
	}
}

func (m ControllerModel) loadLeaderboard() tea.Cmd {
	highScores := m.Options.HighScores
	return func() tea.Msg {
		if highScores == nil {
			return LeaderboardLoadedMsg{}
		}
		scores, err := highScores.GetHighScores(leaderboardSize, 0)
		if err != nil {
			return LeaderboardLoadedMsg{Err: err}
		}
		total, err := highScores.GetTotalScoreCount()
		return LeaderboardLoadedMsg{Scores: scores, Total: total, Err: err}
	}
}
