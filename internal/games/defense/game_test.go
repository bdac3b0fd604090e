package defense

import (
	"errors"
	"strings"
	"testing"

	platform "github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense/advisor"
	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
)

func press(actions ...platform.Action) platform.InputFrame {
	f := platform.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGameCursorClamps(t *testing.T) {
	g := NewGame(newTestSession(t, nil))
	if x, y := g.Cursor(); x != 15 || y != 10 {
		t.Fatalf("cursor = (%d,%d), expected (15,10)", x, y)
	}
	for i := 0; i < 40; i++ {
		g.Apply(press(platform.ActionLeft, platform.ActionUp))
	}
	if x, y := g.Cursor(); x != 0 || y != 0 {
		t.Errorf("cursor = (%d,%d), expected (0,0)", x, y)
	}
	for i := 0; i < 40; i++ {
		g.Apply(press(platform.ActionRight, platform.ActionDown))
	}
	if x, y := g.Cursor(); x != 29 || y != 19 {
		t.Errorf("cursor = (%d,%d), expected (29,19)", x, y)
	}
}

func TestGameTowerSelectionWraps(t *testing.T) {
	g := NewGame(newTestSession(t, nil))
	if got := g.SelectedTower().ID; got != "turret" {
		t.Fatalf("initial selection = %s", got)
	}
	g.Apply(press(platform.ActionPrevTower))
	if got := g.SelectedTower().ID; got != "barracks" {
		t.Errorf("prev from first = %s, expected barracks", got)
	}
	g.Apply(press(platform.ActionNextTower))
	g.Apply(press(platform.ActionNextTower))
	if got := g.SelectedTower().ID; got != "rapid_fire" {
		t.Errorf("selection = %s, expected rapid_fire", got)
	}
}

func TestGameCommands(t *testing.T) {
	s := newTestSession(t, nil)
	g := NewGame(s)

	g.Apply(press(platform.ActionPlace))
	st := s.Snapshot()
	if len(st.Towers) != 1 || st.Towers[0].GridX != 15 || st.Towers[0].GridY != 10 || st.Money != 200 {
		t.Fatalf("after place: %+v", core.Summarize(st))
	}

	g.Apply(press(platform.ActionPlace))
	if n := len(s.Snapshot().Towers); n != 1 {
		t.Errorf("second build on the same cell gave %d towers", n)
	}
	if !strings.Contains(s.Notice(), string(core.ReasonOccupied)) {
		t.Errorf("notice = %q", s.Notice())
	}

	g.Apply(press(platform.ActionRestart))
	if n := len(s.Snapshot().Towers); n != 1 {
		t.Error("restart should only act after game over")
	}

	g.Apply(press(platform.ActionPause))
	if s.Summary().Status != core.StatusPlaying {
		t.Fatalf("status = %s", s.Summary().Status)
	}
	g.Apply(press(platform.ActionStartWave))
	if st := s.Summary(); st.Enemies != 5 || st.Wave != 2 {
		t.Errorf("after start wave: %+v", st)
	}
	if g.State().Paused || g.State().GameOver {
		t.Errorf("game state = %+v", g.State())
	}
}

func TestRenderBoard(t *testing.T) {
	s := newTestSession(t, nil)
	g := NewGame(s)
	g.Apply(press(platform.ActionPlace))
	g.Apply(press(platform.ActionRight))

	screen := platform.NewScreen(80, 24)
	g.Render(screen)

	if row := screen.Row(0); !strings.Contains(row, "Lives 20") || !strings.Contains(row, "$200") {
		t.Errorf("hud = %q", row)
	}
	// 62 wide board centered in 80 columns: inner origin at (10, 3).
	if got := screen.Get(10, 3+4); got != glyphPath {
		t.Errorf("path start = %q", got)
	}
	if screen.Get(40, 13) != 'T' || screen.Get(41, 13) != 'U' {
		t.Errorf("tower cell = %q%q", screen.Get(40, 13), screen.Get(41, 13))
	}
	if screen.Get(42, 13) != '[' || screen.Get(43, 13) != ']' {
		t.Errorf("cursor cell = %q%q", screen.Get(42, 13), screen.Get(43, 13))
	}
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}
}

func TestRenderEnemies(t *testing.T) {
	s := newTestSession(t, nil)
	g := NewGame(s)
	s.TogglePause()
	s.StartWave()

	screen := platform.NewScreen(80, 24)
	g.Render(screen)

	// The first troop spawns on the center of path cell (0,4).
	cell := screen.GetCell(10, 7)
	if cell.Rune != 't' || cell.Color != platform.ColorRed {
		t.Errorf("enemy cell = %+v", cell)
	}
	if strings.Contains(screen.String(), "PAUSED") {
		t.Error("overlay while playing")
	}
}

func TestRenderAdvice(t *testing.T) {
	g := NewGame(newTestSession(t, nil))
	screen := platform.NewScreen(80, 26)

	g.SetAdvice(advisor.Response{RecommendedTowers: []string{"Turret", "Bomber"}}, nil)
	g.Render(screen)
	if !strings.Contains(screen.Row(25), "Advisor: Turret, Bomber") {
		t.Errorf("advice row = %q", screen.Row(25))
	}
	if !strings.Contains(screen.Row(24), "Build: Turret $50") {
		t.Errorf("build row = %q", screen.Row(24))
	}

	g.SetAdvice(advisor.Response{}, errors.New("timeout"))
	g.Render(screen)
	if !strings.Contains(screen.Row(25), "advice unavailable") {
		t.Errorf("advice row = %q", screen.Row(25))
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := NewGame(newTestSession(t, nil))
	screen := platform.NewScreen(40, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too-small notice")
	}
}
