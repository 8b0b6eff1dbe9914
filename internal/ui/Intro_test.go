package ui

import (
	"strings"
	"testing"

	"github.com/Mshel/torus/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

func introKey(t *testing.T, m IntroModel, key tea.KeyMsg) (IntroModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	intro, ok := next.(IntroModel)
	if !ok {
		t.Fatalf("Update returned %T, want IntroModel", next)
	}
	return intro, cmd
}

func TestIntroMenuWrapsAndSubmits(t *testing.T) {
	m := NewIntroModel(80, 24, game.DefaultConfig())

	m, _ = introKey(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got := introMenu[m.cursor].choice; got != introQuit {
		t.Fatalf("cursor on %v after wrapping up, want quit", introMenu[m.cursor].label)
	}
	m, _ = introKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = introKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})

	_, cmd := introKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should submit")
	}
	if got := cmd(); got != introLeaderboard {
		t.Errorf("submitted %v, want the leaderboard", got)
	}
}

func TestIntroNumberShortcutSubmits(t *testing.T) {
	m := NewIntroModel(80, 24, game.DefaultConfig())

	m, cmd := introKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	if cmd == nil || cmd() != introQuit {
		t.Fatal("3 should submit quit")
	}
	if !strings.Contains(m.View(), "▶ 3") {
		t.Error("cursor not moved to the chosen entry")
	}
}

func TestIntroShowsCollisionRule(t *testing.T) {
	cfg := game.DefaultConfig()
	if view := NewIntroModel(100, 30, cfg).View(); !strings.Contains(view, "back to the centre") {
		t.Errorf("reset rule missing:\n%s", view)
	}

	cfg.OnCollision = game.TerminateOnCollision
	if view := NewIntroModel(100, 30, cfg).View(); !strings.Contains(view, "ends the game") {
		t.Errorf("terminate rule missing:\n%s", view)
	}
}

func TestControllerQuitFromIntroMenu(t *testing.T) {
	m := newTestController()
	_, cmd := update(t, m, introQuit)
	if cmd == nil {
		t.Fatal("quit entry should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit entry did not return tea.Quit")
	}
}
