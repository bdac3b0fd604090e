package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLCatalog is the on-disk layout of a catalog file. Any section left out
// falls back to the built-in definitions.
type YAMLCatalog struct {
	Towers  []TowerArchetype `yaml:"towers,omitempty"`
	Enemies []EnemyArchetype `yaml:"enemies,omitempty"`
	Levels  []YAMLLevel      `yaml:"levels,omitempty"`
	Waves   map[int][]string `yaml:"waves,omitempty"`
}

// YAMLLevel declares a path either cell by cell or by its corners.
type YAMLLevel struct {
	Level   int     `yaml:"level"`
	Name    string  `yaml:"name"`
	Path    []Point `yaml:"path,omitempty"`
	Corners []Point `yaml:"corners,omitempty"`
}

// ParseYAML parses and validates a catalog document.
func ParseYAML(data []byte) (*Catalog, error) {
	var yc YAMLCatalog
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("catalog: yaml unmarshal: %w", err)
	}

	towers := yc.Towers
	if len(towers) == 0 {
		towers = DefaultTowers()
	}
	enemies := yc.Enemies
	if len(enemies) == 0 {
		enemies = DefaultEnemies()
	}
	rosters := yc.Waves
	if len(rosters) == 0 {
		rosters = DefaultRosters()
	}

	var levels []Level
	for _, yl := range yc.Levels {
		path := yl.Path
		if len(path) == 0 {
			path = Trace(yl.Corners...)
		}
		levels = append(levels, Level{Number: yl.Level, Name: yl.Name, Path: path})
	}
	if len(levels) == 0 {
		levels = DefaultLevels()
	}

	c := New(towers, enemies, levels, rosters)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads a catalog YAML file from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	c, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: parsing %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the archetype and level invariants.
func (c *Catalog) Validate() error {
	var errs []error
	for _, t := range c.Towers() {
		if t.Cost < 0 || t.Range < 0 || t.Rate < 1 {
			errs = append(errs, fmt.Errorf("tower %q: cost, range must be >= 0 and rate >= 1", t.ID))
		}
	}
	for id, e := range c.enemies {
		if e.Speed < 0 || e.BaseHP < 0 || e.HPMultiplier < 0 {
			errs = append(errs, fmt.Errorf("enemy %q: negative speed or hit points", id))
		}
	}
	for _, l := range c.levels {
		if len(l.Path) < 2 {
			errs = append(errs, fmt.Errorf("level %d: path needs at least 2 waypoints", l.Number))
			continue
		}
		for i := 1; i < len(l.Path); i++ {
			dx, dy := l.Path[i].X-l.Path[i-1].X, l.Path[i].Y-l.Path[i-1].Y
			if dx != 0 && dy != 0 {
				errs = append(errs, fmt.Errorf("level %d: waypoint %d is not a grid step", l.Number, i))
				break
			}
		}
	}
	for wave, ids := range c.rosters {
		for _, id := range ids {
			if _, ok := c.enemies[id]; !ok {
				errs = append(errs, fmt.Errorf("wave %d: unknown enemy %q", wave, id))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog: invalid: %w", errors.Join(errs...))
	}
	return nil
}
