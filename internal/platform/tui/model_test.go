package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionPlace, false},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionNextTower, false},
		{runes("g"), core.ActionStartWave, false},
		{runes("p"), core.ActionPause, false},
		{runes("s"), core.ActionSave, false},
		{runes("l"), core.ActionLoad, false},
		{runes("n"), core.ActionNextLevel, false},
		{runes("?"), core.ActionAdvise, false},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("x"), core.ActionNone, false},
	}
	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = %s, %v; expected %s, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
	if !km.IsBack(tea.KeyMsg{Type: tea.KeyEsc}) {
		t.Error("esc should go back")
	}
}

func TestMenuActions(t *testing.T) {
	km := NewKeyMapper()
	if km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}) != MenuActionScoreboard {
		t.Error("tab should open the scoreboard")
	}
	if km.MapKeyToMenuAction(runes("j")) != MenuActionDown {
		t.Error("j should move down")
	}
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	factory := NewSessionFactory(defense.Options{Config: config.DefaultDefenseConfig(), Seed: 7}, store, nil)
	sess, err := factory(1, config.DifficultyNormal, "alice")
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	return NewModel(defense.NewGame(sess), store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, FrameRate: 30}, "alice", nil)
}

func TestModelKeysDriveSession(t *testing.T) {
	m := newTestModel(t, nil)
	sess := m.game.Session()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if n := sess.Summary().Towers; n != 1 {
		t.Fatalf("towers = %d after enter", n)
	}

	next, _ = m.Update(runes("p"))
	m = next.(Model)
	next, _ = m.Update(runes("g"))
	m = next.(Model)
	if sum := sess.Summary(); sum.Status != "playing" || sum.Enemies != 5 {
		t.Fatalf("summary = %+v", sum)
	}

	t0 := time.Now()
	next, _ = m.Update(TickMsg(t0))
	m = next.(Model)
	next, _ = m.Update(TickMsg(t0.Add(100 * time.Millisecond)))
	m = next.(Model)
	if tick := sess.Summary().Tick; tick != 6 {
		t.Errorf("tick = %d, expected 6", tick)
	}

	if !strings.Contains(m.View(), "Lives") {
		t.Error("view should show the hud")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m := newTestModel(t, nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() || next.(Model).IsQuitting() {
		t.Error("esc should return to the menu")
	}

	m = newTestModel(t, nil)
	m.standalone = true
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("esc in a standalone game should quit")
	}

	m = newTestModel(t, nil)
	next, cmd = m.Update(runes("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelSaveUsesPlayerSlot(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "defense.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	_, cmd := m.Update(runes("s"))
	if cmd == nil {
		t.Fatal("save should issue a command")
	}
	msg := cmd()
	done, ok := msg.(saveDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("msg = %#v", msg)
	}

	saves, err := store.ListSaves(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(saves) != 1 || saves[0].Slot != defense.DefaultSlot+"-alice" {
		t.Errorf("saves = %+v", saves)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColor(0, 0, "hi", core.ColorRed)
	s.DrawText(0, 1, "there")
	out := RenderScreen(s)
	if !strings.Contains(out, "hi") || !strings.Contains(out, "there") {
		t.Errorf("render = %q", out)
	}
}
