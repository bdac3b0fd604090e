// Package core provides the tower defense simulation: entity model, the
// fixed tick step, the wave lifecycle and tower placement.
// This package is UI-agnostic and deterministic. States are values; every
// operation returns a new State and never mutates the one it was given.
package core

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
)

// TickDuration is the fixed simulation step (60 ticks per second).
const TickDuration = time.Second / 60

// TickSeconds is TickDuration expressed in seconds.
const TickSeconds = 1.0 / 60.0

// Status is the session status.
type Status string

const (
	StatusPlaying       Status = "playing"
	StatusPaused        Status = "paused"
	StatusGameOver      Status = "game-over"
	StatusLevelComplete Status = "level-complete"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPlaying, StatusPaused, StatusGameOver, StatusLevelComplete:
		return true
	default:
		return false
	}
}

// Vec is a position in pixel space.
type Vec struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

// Len returns the Euclidean norm.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec) float64 {
	return a.Sub(b).Len()
}

// Cell is a grid cell coordinate.
type Cell struct {
	X, Y int
}

// Rules holds the tunable numbers of a session. The session builds them from
// the YAML config; tests use DefaultRules.
type Rules struct {
	TickRate        int // fixed ticks per second
	Cols            int
	Rows            int
	CellSize        float64 // pixels per grid cell
	StartingLives   int
	StartingMoney   int
	WaveTimer       float64 // seconds between cleared wave and next auto start
	SpawnSpacing    float64 // pixels between staggered spawns
	LevelBonus      int
	KillDivisor     int
	WavesPerLevel   int
	WaveClearScore  int
	ProjectileSpeed float64 // pixels per tick, cosmetic trails only
}

// DefaultRules returns the standard 30x20 board with 40px cells.
func DefaultRules() Rules {
	return Rules{
		TickRate:        60,
		Cols:            30,
		Rows:            20,
		CellSize:        40,
		StartingLives:   20,
		StartingMoney:   250,
		WaveTimer:       30,
		SpawnSpacing:    40,
		LevelBonus:      500,
		KillDivisor:     10,
		WavesPerLevel:   20,
		WaveClearScore:  100,
		ProjectileSpeed: 12,
	}
}

// Tick returns the fixed step duration.
func (r Rules) Tick() time.Duration {
	if r.TickRate <= 0 {
		return TickDuration
	}
	return time.Second / time.Duration(r.TickRate)
}

// TickSeconds returns the fixed step in seconds.
func (r Rules) TickSeconds() float64 {
	if r.TickRate <= 0 {
		return TickSeconds
	}
	return 1 / float64(r.TickRate)
}

// CellCenter converts a grid cell to the pixel position of its center.
func (r Rules) CellCenter(x, y int) Vec {
	return Vec{
		X: float64(x)*r.CellSize + r.CellSize/2,
		Y: float64(y)*r.CellSize + r.CellSize/2,
	}
}

// InBounds reports whether the grid cell lies on the board.
func (r Rules) InBounds(x, y int) bool {
	return x >= 0 && x < r.Cols && y >= 0 && y < r.Rows
}

// Env is the read-only context a step runs against.
type Env struct {
	Catalog *catalog.Catalog
	Level   *catalog.Level
	Path    []Vec // level path in pixel space
	Rules   Rules
}

// NewEnv resolves the level and precomputes its pixel path.
// Returns ok=false when the level does not exist.
func NewEnv(cat *catalog.Catalog, level int, rules Rules) (Env, bool) {
	lvl := cat.LevelByNumber(level)
	if lvl == nil {
		return Env{}, false
	}
	path := make([]Vec, len(lvl.Path))
	for i, p := range lvl.Path {
		path[i] = rules.CellCenter(p.X, p.Y)
	}
	return Env{Catalog: cat, Level: lvl, Path: path, Rules: rules}, true
}

// LastWaypoint returns the index of the final waypoint.
func (e Env) LastWaypoint() int {
	return len(e.Path) - 1
}
