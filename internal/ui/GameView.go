package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/torus/internal/game"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Base style for the game map border
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	voidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("235"))
	snakeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	headStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("118")).Bold(true)
	foodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	trailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))

	headRunes = map[game.Direction]string{
		game.Up:    "▲",
		game.Down:  "▼",
		game.Left:  "◀",
		game.Right: "▶",
	}
)

const (
	// every grid cell takes two terminal columns so cells look square
	cellColumns = 2

	mapViewPercentage  = 0.70
	statusPanelPadding = 4
	borderSize         = 2

	voidGlyph  = "· "
	snakeGlyph = "██"
	foodGlyph  = "● "
	trailGlyph = "░░"
)

// drawable is the only thing the board renderer knows about the game.
type drawable interface {
	Cells() []game.Cell
	Glyph() string
	Style() lipgloss.Style
}

type snakeBodyLayer struct {
	body []game.Cell
}

func (l snakeBodyLayer) Cells() []game.Cell {
	if len(l.body) <= 1 {
		return nil
	}
	return l.body[1:]
}
func (l snakeBodyLayer) Glyph() string         { return snakeGlyph }
func (l snakeBodyLayer) Style() lipgloss.Style { return snakeStyle }

type snakeHeadLayer struct {
	body      []game.Cell
	direction game.Direction
}

func (l snakeHeadLayer) Cells() []game.Cell {
	if len(l.body) == 0 {
		return nil
	}
	return l.body[:1]
}
func (l snakeHeadLayer) Glyph() string         { return headRunes[l.direction] + " " }
func (l snakeHeadLayer) Style() lipgloss.Style { return headStyle }

type foodLayer struct {
	cell game.Cell
}

func (l foodLayer) Cells() []game.Cell    { return []game.Cell{l.cell} }
func (l foodLayer) Glyph() string         { return foodGlyph }
func (l foodLayer) Style() lipgloss.Style { return foodStyle }

// trailLayer marks the cell the tail left on the last tick.
type trailLayer struct {
	cell *game.Cell
}

func (l trailLayer) Cells() []game.Cell {
	if l.cell == nil {
		return nil
	}
	return []game.Cell{*l.cell}
}
func (l trailLayer) Glyph() string         { return trailGlyph }
func (l trailLayer) Style() lipgloss.Style { return trailStyle }

func layersFor(result game.StepResult) []drawable {
	return []drawable{
		trailLayer{cell: result.Vacated},
		foodLayer{cell: result.Food},
		snakeBodyLayer{body: result.SnakeBody},
		snakeHeadLayer{body: result.SnakeBody, direction: result.Direction},
	}
}

// renderBoard paints the layers in order onto a width x height grid; later layers win.
func renderBoard(width, height int, layers ...drawable) string {
	board := make([][]string, height)
	for row := range board {
		board[row] = make([]string, width)
	}

	for _, layer := range layers {
		rendered := layer.Style().Render(layer.Glyph())
		for _, cell := range layer.Cells() {
			if !game.InBounds(cell, width, height) {
				continue
			}
			board[cell.Y][cell.X] = rendered
		}
	}

	void := voidStyle.Render(voidGlyph)
	var mapView strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if board[row][col] == "" {
				mapView.WriteString(void)
				continue
			}
			mapView.WriteString(board[row][col])
		}
		if row < height-1 {
			mapView.WriteString("\n")
		}
	}

	return mapView.String()
}

// boardSize works out how many grid cells fit the map viewport of a terminal.
func boardSize(screenWidth, screenHeight int) (int, int) {
	mapViewWidth := int(float64(screenWidth) * mapViewPercentage)
	cols := (mapViewWidth - borderSize) / cellColumns
	rows := screenHeight - borderSize
	return max(cols, 1), max(rows, 1)
}

type statusInfo struct {
	PlayerName string
	Result     game.StepResult
	Autopilot  bool
	Policy     game.CollisionPolicy
	Deaths     int
}

func renderStatusPanel(info statusInfo) string {
	var statusContent strings.Builder
	bold := lipgloss.NewStyle().Bold(true)

	statusContent.WriteString(bold.Render("--- Player ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Name: %s\n", info.PlayerName))
	statusContent.WriteString(fmt.Sprintf("Score: %d\n", info.Result.Score))
	statusContent.WriteString(fmt.Sprintf("Best: %d\n", info.Result.BestScore))
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", len(info.Result.SnakeBody)))
	statusContent.WriteString(fmt.Sprintf("Deaths: %d\n", info.Deaths))
	if len(info.Result.SnakeBody) > 0 {
		statusContent.WriteString(fmt.Sprintf("Head: %v\n", info.Result.SnakeBody[0]))
	}
	statusContent.WriteString(fmt.Sprintf("Direction: %s\n", headRunes[info.Result.Direction]))
	statusContent.WriteString(fmt.Sprintf("Tick: %d\n", info.Result.Tick))

	autopilot := "off"
	if info.Autopilot {
		autopilot = "on"
	}
	statusContent.WriteString(fmt.Sprintf("Autopilot: %s\n", autopilot))
	statusContent.WriteString(fmt.Sprintf("On collision: %s\n", info.Policy))

	statusContent.WriteString("\n" + bold.Render("--- Controls ---") + "\n")
	statusContent.WriteString("WASD / Arrows: Move\n")
	statusContent.WriteString("P: Toggle autopilot\n")
	statusContent.WriteString("Q / Ctrl+C: Quit Game\n")
	statusContent.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("Torus v0.1"))

	return statusContent.String()
}
