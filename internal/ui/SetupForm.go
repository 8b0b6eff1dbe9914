package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedColor = lipgloss.Color("205")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	submitButtonStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(focusedColor).
				Padding(0, 1)
)

// SetupModel asks for the player's name before a game starts.
type SetupModel struct {
	nameInput textinput.Model
	width     int
	height    int
}

func NewInitialSetupModel(w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your Snake Name"
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput: ti,
		width:     w,
		height:    h,
	}
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			name := strings.TrimSpace(m.nameInput.Value())
			return m, func() tea.Msg { return SetupSubmitMsg{Name: name} }
		case "esc":
			return m, func() tea.Msg { return BackToIntroMsg{} }
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Name your snake") + "\n\n")
	b.WriteString(m.nameInput.View() + "\n\n")
	b.WriteString(submitButtonStyle.Render("Start (Enter)") + "\n")
	b.WriteString(helpStyle.Render("esc: back • ctrl+c: quit"))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		b.String(),
	)
}
