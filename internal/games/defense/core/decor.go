package core

import (
	"math/rand"

	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
)

var ornamentColors = []string{"red", "gold", "silver", "blue"}

// Decorate scatters scenery over the off-path cells of a level. The same seed
// always produces the same layout.
func Decorate(level *catalog.Level, rules Rules, count int, seed int64) []Decoration {
	out := make([]Decoration, 0, count)
	if count <= 0 {
		return out
	}
	rng := rand.New(rand.NewSource(seed))

	attempts := count * 10
	for len(out) < count && attempts > 0 {
		attempts--
		gx, gy := rng.Intn(rules.Cols), rng.Intn(rules.Rows)
		if level.OnPath(gx, gy) {
			continue
		}
		center := rules.CellCenter(gx, gy)
		d := Decoration{X: center.X, Y: center.Y}
		switch roll := rng.Intn(10); {
		case roll < 6:
			d.Type = DecorationTree
			d.Size = rules.CellSize * (0.6 + rng.Float64()*0.4)
		case roll < 8:
			d.Type = DecorationCane
			d.Size = rules.CellSize * 0.5
			d.Rotation = rng.Float64() * 360
		default:
			d.Type = DecorationOrnament
			d.Size = rules.CellSize * 0.3
			d.Color = ornamentColors[rng.Intn(len(ornamentColors))]
		}
		out = append(out, d)
	}
	return out
}
