package defense

import (
	"strings"

	platform "github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense/advisor"
	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
)

// Game is the interactive front of a Session: a build cursor, the selected
// tower and the last advice. Platform input frames are turned into session
// commands here; simulation time is driven separately through Advance.
type Game struct {
	sess   *Session
	towers []catalog.TowerArchetype

	cursorX, cursorY int
	selected         int

	screenW, screenH int

	advice    []string
	adviceErr string
}

// NewGame wraps a session. The cursor starts in the middle of the grid.
func NewGame(sess *Session) *Game {
	rules := sess.Env().Rules
	return &Game{
		sess:    sess,
		towers:  sess.Catalog().Towers(),
		cursorX: rules.Cols / 2,
		cursorY: rules.Rows / 2,
		screenW: 80,
		screenH: 24,
	}
}

// ID returns the identifier used for scores and logs.
func (g *Game) ID() string {
	return "defense"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tower Defense"
}

// Session returns the wrapped session.
func (g *Game) Session() *Session {
	return g.sess
}

// Reset applies new screen dimensions. The session itself is untouched.
func (g *Game) Reset(cfg platform.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
}

// Cursor returns the grid cell under the build cursor.
func (g *Game) Cursor() (int, int) {
	return g.cursorX, g.cursorY
}

// SelectedTower returns the archetype the cursor would build.
func (g *Game) SelectedTower() catalog.TowerArchetype {
	if len(g.towers) == 0 {
		return catalog.TowerArchetype{}
	}
	return g.towers[g.selected]
}

// Apply executes the in-memory commands of an input frame. Save, load and
// advice touch external services and are issued by the platform separately.
func (g *Game) Apply(in platform.InputFrame) {
	rules := g.sess.Env().Rules

	switch {
	case in.Has(platform.ActionUp):
		g.cursorY--
	case in.Has(platform.ActionDown):
		g.cursorY++
	}
	switch {
	case in.Has(platform.ActionLeft):
		g.cursorX--
	case in.Has(platform.ActionRight):
		g.cursorX++
	}
	g.cursorX = platform.Clamp(g.cursorX, 0, rules.Cols-1)
	g.cursorY = platform.Clamp(g.cursorY, 0, rules.Rows-1)

	if n := len(g.towers); n > 0 {
		if in.Has(platform.ActionNextTower) {
			g.selected = (g.selected + 1) % n
		}
		if in.Has(platform.ActionPrevTower) {
			g.selected = (g.selected + n - 1) % n
		}
	}

	if in.Has(platform.ActionPlace) && len(g.towers) > 0 {
		//nolint:errcheck // rejection is reported through the notice line
		g.sess.PlaceTower(g.SelectedTower().ID, g.cursorX, g.cursorY)
	}
	if in.Has(platform.ActionStartWave) {
		g.sess.StartWave()
	}
	if in.Has(platform.ActionPause) {
		g.sess.TogglePause()
	}
	if in.Has(platform.ActionNextLevel) {
		if g.sess.AdvanceLevel() {
			g.advice, g.adviceErr = nil, ""
		}
	}
	if in.Has(platform.ActionRestart) && g.sess.Summary().Status == core.StatusGameOver {
		g.sess.Restart()
		g.advice, g.adviceErr = nil, ""
	}
}

// SetAdvice records the outcome of an advisory request for display.
func (g *Game) SetAdvice(resp advisor.Response, err error) {
	if err != nil {
		g.advice = nil
		g.adviceErr = "advice unavailable"
		return
	}
	g.advice = resp.RecommendedTowers
	g.adviceErr = ""
}

func (g *Game) adviceLine() string {
	switch {
	case g.adviceErr != "":
		return "Advisor: " + g.adviceErr
	case len(g.advice) > 0:
		return "Advisor: " + strings.Join(g.advice, ", ")
	default:
		return ""
	}
}

// State returns the summary the platform needs between frames.
func (g *Game) State() platform.GameState {
	sum := g.sess.Summary()
	return platform.GameState{
		Score:    sum.Score,
		GameOver: sum.Status == core.StatusGameOver,
		Paused:   sum.Status == core.StatusPaused,
	}
}
