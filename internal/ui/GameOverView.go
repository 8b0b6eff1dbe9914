package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/torus/internal/game"
	"github.com/charmbracelet/lipgloss"
)

const (
	playAgainButton = iota
	leaderboardButton
	exitButton
	gameOverButtonCount
)

var gameOverButtonLabels = [gameOverButtonCount]string{"PLAY AGAIN", "LEADERBOARD", "EXIT"}

// GameOverState holds the data and local state for rendering the game over screens.
type GameOverState struct {
	PlayerName     string
	Result         game.StepResult
	Deaths         int
	Err            error
	SelectedButton int

	Scores         []game.Score
	TotalScores    int
	LeaderboardErr error

	ScreenWidth  int
	ScreenHeight int
}

// Styles for Game Over/Leaderboard
var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

// RenderGameOverScreen draws the final stats and the buttons.
func (g *GameOverState) RenderGameOverScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(1, 5).
		Align(lipgloss.Center)

	title := messageStyle.Render("G A M E   O V E R")
	if g.Err != nil {
		title = messageStyle.Foreground(lipgloss.Color("10")).Render("B O A R D   F I L L E D")
	}

	stats := fmt.Sprintf("\nPlayer: %s\nFinal Score: %d\nBest Score: %d\nTicks Survived: %d\nDeaths: %d\n",
		g.PlayerName, g.finalScore(), g.Result.BestScore, g.Result.Tick, g.Deaths)

	buttons := make([]string, 0, gameOverButtonCount)
	for i, label := range gameOverButtonLabels {
		if i == g.SelectedButton {
			buttons = append(buttons, selectedButtonStyle.Render(label))
		} else {
			buttons = append(buttons, gameOverButtonStyle.Render(label))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats,
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// finalScore is the score of the snake that ended the game.
func (g *GameOverState) finalScore() int {
	if g.Result.Collided {
		return g.Result.RunScore
	}
	return g.Result.Score
}

// RenderLeaderboardScreen draws the persisted high scores.
func (g *GameOverState) RenderLeaderboardScreen() string {
	var tableContent strings.Builder

	nameWidth := 20
	scoreWidth := 8
	ticksWidth := 8

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(4).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
		leaderboardHeaderStyle.Width(scoreWidth).Render("Score"),
		leaderboardHeaderStyle.Width(ticksWidth).Render("Ticks"),
	)
	tableContent.WriteString(header + "\n")

	for i, score := range g.Scores {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(4).Render(strconv.Itoa(i+1)),
			leaderboardRowStyle.Width(nameWidth).Render(score.PlayerName),
			leaderboardRowStyle.Width(scoreWidth).Render(strconv.Itoa(score.Score)),
			leaderboardRowStyle.Width(ticksWidth).Render(strconv.Itoa(score.Ticks)),
		)
		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}

	if len(g.Scores) == 0 {
		tableContent.WriteString(leaderboardRowStyle.Render("No scores yet.") + "\n")
	}
	if g.LeaderboardErr != nil {
		tableContent.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).
			Render("Could not load scores: "+g.LeaderboardErr.Error()) + "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("LEADERBOARD")
	footer := lipgloss.NewStyle().Faint(true).Margin(1, 0).
		Render(fmt.Sprintf("%d runs recorded. Press ESC or ENTER to go back.", g.TotalScores))

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		footer,
	)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}
