package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
)

type factoryCall struct {
	level  int
	preset config.DifficultyPreset
	player string
}

func press(t *testing.T, m SessionModel, msg tea.KeyMsg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(SessionModel), cmd
}

func TestSessionModelFlow(t *testing.T) {
	var calls []factoryCall
	factory := func(level int, preset config.DifficultyPreset, player string) (*defense.Session, error) {
		calls = append(calls, factoryCall{level, preset, player})
		return defense.NewSession(defense.Options{Level: level})
	}
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, FrameRate: 30}
	m := NewSessionModel(catalog.Default(), nil, factory, cfg, config.DifficultyNormal, "carol", nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Screen() != "scores" {
		t.Fatalf("screen = %s, expected scores", m.Screen())
	}
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != "menu" || m.quitting {
		t.Fatalf("esc on scores should return to the menu, got %s", m.Screen())
	}
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("leaving the scoreboard must not end the connection")
		}
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != "game" {
		t.Fatalf("screen = %s, expected game", m.Screen())
	}
	want := factoryCall{level: 2, preset: config.DifficultyHard, player: "carol"}
	if len(calls) != 1 || calls[0] != want {
		t.Fatalf("factory calls = %+v, expected %+v", calls, want)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != "menu" {
		t.Fatalf("esc in game should return to the menu, got %s", m.Screen())
	}
	if m.menu.Difficulty() != config.DifficultyHard {
		t.Error("menu should remember the chosen difficulty")
	}

	m, cmd = press(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("q on the menu should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestSessionModelFactoryError(t *testing.T) {
	factory := func(int, config.DifficultyPreset, string) (*defense.Session, error) {
		return nil, errors.New("no such level")
	}
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, FrameRate: 30}
	m := NewSessionModel(catalog.Default(), nil, factory, cfg, config.DifficultyNormal, "dave", nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != "menu" {
		t.Fatalf("screen = %s, expected menu", m.Screen())
	}
	if !strings.Contains(m.View(), "no such level") {
		t.Error("the error should be shown under the menu")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if strings.Contains(m.View(), "no such level") {
		t.Error("the error should clear on the next key")
	}
}
