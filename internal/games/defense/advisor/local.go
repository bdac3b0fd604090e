package advisor

import (
	"context"
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
)

// Local answers from the catalog alone, without a network. It favors splash
// towers against crowded waves and heavy single-target towers against
// armored ones, limited to at most three picks.
type Local struct {
	Catalog *catalog.Catalog
}

// Advise implements Advisor.
func (l Local) Advise(_ context.Context, req Request) (Response, error) {
	if l.Catalog == nil || len(req.AvailableTowers) == 0 {
		return Response{}, fmt.Errorf("advisor: nothing to choose from: %w", ErrAdvisoryUnavailable)
	}

	byName := make(map[string]catalog.TowerArchetype)
	for _, t := range l.Catalog.Towers() {
		byName[t.Name] = t
	}

	toughest := 0.0
	for _, id := range req.EnemyTypes {
		if e, ok := l.Catalog.EnemyByID(id); ok && e.HitPoints(req.WaveNumber) > toughest {
			toughest = e.HitPoints(req.WaveNumber)
		}
	}
	crowded := len(req.EnemyTypes) >= 4

	type scored struct {
		name  string
		score float64
	}
	var picks []scored
	for _, name := range req.AvailableTowers {
		t, ok := byName[name]
		if !ok || t.Damage <= 0 {
			continue
		}
		dps := t.Damage * 60 / float64(t.Rate)
		score := dps
		if crowded && t.HasSplash() {
			score *= 2
		}
		if toughest > 0 && t.Damage >= toughest/4 {
			score *= 1.5
		}
		score /= float64(t.Cost + 1)
		picks = append(picks, scored{name, score})
	}
	if len(picks) == 0 {
		return Response{}, fmt.Errorf("advisor: no usable towers: %w", ErrAdvisoryUnavailable)
	}
	sort.SliceStable(picks, func(i, j int) bool { return picks[i].score > picks[j].score })

	out := Response{}
	for i := 0; i < len(picks) && i < 3; i++ {
		out.RecommendedTowers = append(out.RecommendedTowers, picks[i].name)
	}
	return out, nil
}

// Fallback tries each advisor in order and returns the first success.
type Fallback []Advisor

// Advise implements Advisor.
func (f Fallback) Advise(ctx context.Context, req Request) (Response, error) {
	var last error = fmt.Errorf("advisor: none configured: %w", ErrAdvisoryUnavailable)
	for _, a := range f {
		resp, err := a.Advise(ctx, req)
		if err == nil {
			return resp, nil
		}
		last = err
	}
	return Response{}, last
}
