package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/torus/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroSubmitMsg carries the menu entry picked on the title screen.
type IntroSubmitMsg int

const (
	introPlay IntroSubmitMsg = iota
	introLeaderboard
	introQuit
)

type menuEntry struct {
	choice IntroSubmitMsg
	label  string
	hint   string
}

var introMenu = []menuEntry{
	{choice: introPlay, label: "Play", hint: "pick a name and start a run"},
	{choice: introLeaderboard, label: "Leaderboard", hint: "best runs on this server"},
	{choice: introQuit, label: "Quit", hint: "leave the torus"},
}

var torusAscii = `
        ▄▄████████████▄▄
     ▄██▀▀            ▀▀██▄
   ▄█▀     ▄▄██████▄▄     ▀█▄
  ██     ██▀        ▀██  ◀■■█
  ██     ██▄        ▄██     ██
   ▀█▄     ▀▀██████▀▀     ▄█▀
     ▀██▄▄            ▄▄██▀
        ▀▀████████████▀▀
`

var (
	asciiStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)

	menuCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	rulesStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1)
)

// IntroModel is the title screen: a vertical menu plus the rules of this server.
type IntroModel struct {
	cursor int
	rules  []string
	width  int
	height int
}

func NewIntroModel(w, h int, cfg game.Config) IntroModel {
	return IntroModel{rules: rulesFor(cfg), width: w, height: h}
}

func rulesFor(cfg game.Config) []string {
	collision := "Biting yourself sends you back to the centre."
	if cfg.OnCollision == game.TerminateOnCollision {
		collision = "Biting yourself ends the game."
	}
	rules := []string{
		"Every edge wraps around to the opposite one.",
		collision,
	}
	if cfg.TickDuration > 0 {
		rules = append(rules, fmt.Sprintf("The snake moves every %s.", cfg.TickDuration))
	}
	return rules
}

func (m IntroModel) Init() tea.Cmd {
	return nil
}

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "up", "k", "shift+tab":
			m.cursor = (m.cursor + len(introMenu) - 1) % len(introMenu)
		case "down", "j", "tab":
			m.cursor = (m.cursor + 1) % len(introMenu)
		case "1", "2", "3":
			m.cursor = int(key[0]-'1') % len(introMenu)
			return m, m.submit()
		case "enter", " ":
			return m, m.submit()
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m IntroModel) submit() tea.Cmd {
	choice := introMenu[m.cursor].choice
	return func() tea.Msg { return choice }
}

func (m IntroModel) View() string {
	var menu strings.Builder
	for i, entry := range introMenu {
		line := fmt.Sprintf("  %d  %-12s", i+1, entry.label)
		if i == m.cursor {
			line = menuCursorStyle.Render(fmt.Sprintf("▶ %d  %-12s", i+1, entry.label))
		}
		menu.WriteString(line + menuHintStyle.Render(entry.hint))
		if i < len(introMenu)-1 {
			menu.WriteString("\n")
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		asciiStyle.Render(torusAscii),
		menuStyle.Render(menu.String()),
		rulesStyle.Render(strings.Join(m.rules, "\n")),
		helpStyle.Render("↑/↓ to choose, enter to confirm, q to quit"),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
