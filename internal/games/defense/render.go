package defense

import (
	"fmt"
	"math"
	"strings"

	platform "github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
)

const hudHeight = 2

// Glyphs.
const (
	glyphPath       = '·'
	glyphTree       = '♣'
	glyphCane       = 'J'
	glyphOrnament   = 'o'
	glyphProjectile = '*'
	glyphFlying     = '^'
)

// layout maps grid cells onto the terminal.
type layout struct {
	originX, originY int // top-left inner cell of the board
	cellW            int // 2 on wide terminals, else 1
}

func (g *Game) layout(rules core.Rules) (layout, bool) {
	cellW := 2
	if g.screenW < rules.Cols*2+2 {
		cellW = 1
	}
	boardW := rules.Cols*cellW + 2
	boardH := rules.Rows + 2
	if g.screenW < boardW || g.screenH < boardH+hudHeight {
		return layout{}, false
	}
	return layout{
		originX: (g.screenW-boardW)/2 + 1,
		originY: hudHeight + 1,
		cellW:   cellW,
	}, true
}

func (l layout) cell(gx, gy int) (int, int) {
	return l.originX + gx*l.cellW, l.originY + gy
}

// Render draws the current session into dst.
func (g *Game) Render(dst *platform.Screen) {
	dst.Clear()
	g.screenW, g.screenH = dst.Width(), dst.Height()
	state := g.sess.Snapshot()
	env := g.sess.Env()

	l, ok := g.layout(env.Rules)
	if !ok {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst, state, env)
	dst.DrawBox(platform.NewRect(l.originX-1, l.originY-1, env.Rules.Cols*l.cellW+2, env.Rules.Rows+2), platform.ColorGray)

	for _, p := range env.Level.Path {
		x, y := l.cell(p.X, p.Y)
		g.fill(dst, l, x, y, glyphPath, platform.ColorBrown)
	}
	for _, d := range state.Decorations {
		gx, gy := pixelToCell(env.Rules, d.X, d.Y)
		x, y := l.cell(gx, gy)
		switch d.Type {
		case core.DecorationTree:
			dst.SetCell(x, y, glyphTree, platform.ColorDarkGreen)
		case core.DecorationCane:
			dst.SetCell(x, y, glyphCane, platform.ColorRed)
		case core.DecorationOrnament:
			dst.SetCell(x, y, glyphOrnament, platform.ColorByName(d.Color))
		}
	}
	for _, t := range state.Towers {
		x, y := l.cell(t.GridX, t.GridY)
		g.drawTower(dst, l, x, y, t.TowerArchetype.Name)
	}
	for _, p := range state.Projectiles {
		gx, gy := pixelToCell(env.Rules, p.X, p.Y)
		if env.Rules.InBounds(gx, gy) {
			x, y := l.cell(gx, gy)
			dst.SetCell(x, y, glyphProjectile, platform.ColorBrightYellow)
		}
	}
	for _, e := range state.Enemies {
		gx, gy := pixelToCell(env.Rules, e.X, e.Y)
		if !env.Rules.InBounds(gx, gy) {
			continue
		}
		x, y := l.cell(gx, gy)
		glyph := enemyGlyph(e.EnemyArchetype.Name)
		if e.Flying {
			glyph = glyphFlying
		}
		dst.SetCell(x, y, glyph, platform.ColorByName(e.Color))
	}

	g.renderCursor(dst, l, state)
	g.renderFooter(dst, l, env.Rules)

	switch state.Status {
	case core.StatusPaused:
		g.renderOverlay(dst, "PAUSED", "p: resume  s: save  l: load")
	case core.StatusGameOver:
		g.renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score %d  r: restart", state.Score))
	case core.StatusLevelComplete:
		g.renderOverlay(dst, "LEVEL COMPLETE", "n: next level")
	}
}

func (g *Game) fill(dst *platform.Screen, l layout, x, y int, r rune, c platform.Color) {
	for i := 0; i < l.cellW; i++ {
		dst.SetCell(x+i, y, r, c)
	}
}

func (g *Game) drawTower(dst *platform.Screen, l layout, x, y int, name string) {
	label := []rune(strings.ToUpper(strings.TrimSpace(name)))
	if len(label) == 0 {
		label = []rune{'T'}
	}
	dst.SetCell(x, y, label[0], platform.ColorBrightYellow)
	if l.cellW > 1 {
		second := ' '
		if len(label) > 1 {
			second = label[1]
		}
		dst.SetCell(x+1, y, second, platform.ColorYellow)
	}
}

func (g *Game) renderCursor(dst *platform.Screen, l layout, state core.State) {
	x, y := l.cell(g.cursorX, g.cursorY)
	c := platform.ColorBrightGreen
	env := g.sess.Env()
	if !core.CanPlace(state, env, g.cursorX, g.cursorY) || state.Money < g.SelectedTower().Cost {
		c = platform.ColorBrightRed
	}
	if l.cellW > 1 {
		dst.SetCell(x, y, '[', c)
		dst.SetCell(x+1, y, ']', c)
		return
	}
	dst.SetCell(x, y, '+', c)
}

func (g *Game) renderHUD(dst *platform.Screen, state core.State, env core.Env) {
	line := fmt.Sprintf("Lives %d  $%d  Wave %d  Level %d %s  Score %d  Kills %d",
		state.Lives, state.Money, state.Wave, state.CurrentLevel, env.Level.Name, state.Score, state.Kills)
	dst.DrawTextColor(0, 0, line, platform.ColorWhite)

	phase := core.PhaseOf(state)
	status := phase.String()
	if phase == core.PhaseCleared || phase == core.PhaseIdle {
		status = fmt.Sprintf("next wave in %.0fs", math.Ceil(state.WaveTimer))
	}
	if notice := g.sess.Notice(); notice != "" {
		status += "  |  " + notice
	}
	dst.DrawTextColor(0, 1, status, platform.ColorGray)
}

func (g *Game) renderFooter(dst *platform.Screen, l layout, rules core.Rules) {
	y := l.originY + rules.Rows + 1
	t := g.SelectedTower()
	build := fmt.Sprintf("Build: %s $%d  rng %.0f dmg %.0f", t.Name, t.Cost, t.Range, t.Damage)
	if t.HasSplash() {
		build += fmt.Sprintf(" splash %.0f", t.Splash)
	}
	dst.DrawTextColor(0, y, build, platform.ColorCyan)
	if advice := g.adviceLine(); advice != "" && y+1 < g.screenH {
		dst.DrawTextColor(0, y+1, advice, platform.ColorMagenta)
	}
}

func (g *Game) renderOverlay(dst *platform.Screen, title, hint string) {
	y := g.screenH / 2
	w := platform.Max(len(title), len(hint)) + 4
	dst.FillRect(platform.NewRect((g.screenW-w)/2, y-1, w, 2), ' ', platform.ColorDefault)
	dst.DrawTextCentered(y-1, " "+title+" ", platform.ColorBrightYellow)
	dst.DrawTextCentered(y, " "+hint+" ", platform.ColorWhite)
}

func (g *Game) renderTooSmall(dst *platform.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platform.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", platform.ColorDefault)
}

func pixelToCell(rules core.Rules, x, y float64) (int, int) {
	return int(math.Floor(x / rules.CellSize)), int(math.Floor(y / rules.CellSize))
}

func enemyGlyph(name string) rune {
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			return r
		}
	}
	return 'e'
}
