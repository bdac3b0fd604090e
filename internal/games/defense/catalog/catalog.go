// Package catalog holds the static, read-only definitions the defense
// simulation draws from: tower archetypes, enemy archetypes, level paths and
// per-wave enemy rosters. It has no behavior beyond lookup.
package catalog

import "sort"

// Hit point formula constants. An enemy spawned on wave w starts with
// (HPBase + HPPerWave*w) * multiplier hit points.
const (
	HPBase    = 10.0
	HPPerWave = 2.0
)

// Point is a grid coordinate on the level map.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is an enemy footprint in pixels.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// TowerArchetype is an immutable tower definition.
type TowerArchetype struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Cost   int     `json:"cost" yaml:"cost"`
	Range  float64 `json:"range" yaml:"range"`
	Damage float64 `json:"damage" yaml:"damage"`
	Rate   int     `json:"rate" yaml:"rate"` // ticks between shots
	Splash float64 `json:"splash,omitempty" yaml:"splash,omitempty"`
	Effect string  `json:"effect,omitempty" yaml:"effect,omitempty"`
}

// HasSplash reports whether shots damage everything around the impact point.
func (t TowerArchetype) HasSplash() bool {
	return t.Splash > 0
}

// EnemyArchetype is an immutable enemy definition.
// HPMultiplier scales the shared wave hit point formula; it is stored as data
// so catalogs stay serializable.
type EnemyArchetype struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Speed        float64 `json:"speed" yaml:"speed"`
	BaseHP       float64 `json:"baseHp" yaml:"base_hp"`
	HPMultiplier float64 `json:"hpMultiplier" yaml:"hp_multiplier"`
	Color        string  `json:"color" yaml:"color"`
	Flying       bool    `json:"flying" yaml:"flying"`
	Size         Size    `json:"size" yaml:"size"`
}

// HitPoints returns the spawn hit points for the given wave number.
// Non-decreasing in wave for any non-negative multiplier.
func (e EnemyArchetype) HitPoints(wave int) float64 {
	if wave < 1 {
		wave = 1
	}
	return (HPBase + HPPerWave*float64(wave)) * e.HPMultiplier
}

// KillReward is the money granted when an enemy of this archetype dies.
func (e EnemyArchetype) KillReward(divisor int) int {
	if divisor <= 0 {
		divisor = 10
	}
	return int(e.BaseHP) / divisor
}

// Level is a named map with the path enemies walk.
type Level struct {
	Number int     `json:"level" yaml:"level"`
	Name   string  `json:"name" yaml:"name"`
	Path   []Point `json:"path" yaml:"path"`
}

// OnPath reports whether the grid cell is part of the level path.
func (l *Level) OnPath(x, y int) bool {
	for _, p := range l.Path {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}

// Catalog is the lookup surface for all static game data.
type Catalog struct {
	towers     map[string]TowerArchetype
	towerOrder []string
	enemies    map[string]EnemyArchetype
	levels     []Level
	rosters    map[int][]string
}

// New builds a catalog from explicit definitions. Tower order is preserved
// for display and for the advisory request.
func New(towers []TowerArchetype, enemies []EnemyArchetype, levels []Level, rosters map[int][]string) *Catalog {
	c := &Catalog{
		towers:  make(map[string]TowerArchetype, len(towers)),
		enemies: make(map[string]EnemyArchetype, len(enemies)),
		levels:  append([]Level(nil), levels...),
		rosters: make(map[int][]string, len(rosters)),
	}
	for _, t := range towers {
		if _, dup := c.towers[t.ID]; !dup {
			c.towerOrder = append(c.towerOrder, t.ID)
		}
		c.towers[t.ID] = t
	}
	for _, e := range enemies {
		c.enemies[e.ID] = e
	}
	for wave, ids := range rosters {
		c.rosters[wave] = append([]string(nil), ids...)
	}
	sort.SliceStable(c.levels, func(i, j int) bool {
		return c.levels[i].Number < c.levels[j].Number
	})
	return c
}

// TowerByID returns the tower archetype with the given id.
func (c *Catalog) TowerByID(id string) (TowerArchetype, bool) {
	t, ok := c.towers[id]
	return t, ok
}

// EnemyByID returns the enemy archetype with the given id.
func (c *Catalog) EnemyByID(id string) (EnemyArchetype, bool) {
	e, ok := c.enemies[id]
	return e, ok
}

// LevelByNumber returns the 1-indexed level, or nil if there is none.
func (c *Catalog) LevelByNumber(n int) *Level {
	for i := range c.levels {
		if c.levels[i].Number == n {
			return &c.levels[i]
		}
	}
	return nil
}

// LevelCount returns the number of levels.
func (c *Catalog) LevelCount() int {
	return len(c.levels)
}

// Levels returns all levels ordered by number.
func (c *Catalog) Levels() []Level {
	return append([]Level(nil), c.levels...)
}

// LastLevel returns the highest level number.
func (c *Catalog) LastLevel() int {
	if len(c.levels) == 0 {
		return 0
	}
	return c.levels[len(c.levels)-1].Number
}

// RosterForWave returns the ordered enemy ids for a wave.
// Waves without an entry yield an empty roster.
func (c *Catalog) RosterForWave(wave int) []string {
	ids, ok := c.rosters[wave]
	if !ok {
		return []string{}
	}
	return append([]string(nil), ids...)
}

// FinalWave returns the highest wave number with a roster.
func (c *Catalog) FinalWave() int {
	last := 0
	for wave := range c.rosters {
		if wave > last {
			last = wave
		}
	}
	return last
}

// Towers returns all tower archetypes in definition order.
func (c *Catalog) Towers() []TowerArchetype {
	out := make([]TowerArchetype, 0, len(c.towerOrder))
	for _, id := range c.towerOrder {
		out = append(out, c.towers[id])
	}
	return out
}

// TowerNames returns display names in definition order.
func (c *Catalog) TowerNames() []string {
	names := make([]string, 0, len(c.towerOrder))
	for _, id := range c.towerOrder {
		names = append(names, c.towers[id].Name)
	}
	return names
}

// Enemies returns all enemy archetypes ordered by id.
func (c *Catalog) Enemies() []EnemyArchetype {
	out := make([]EnemyArchetype, 0, len(c.enemies))
	for _, e := range c.enemies {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
