// Package config provides YAML-based game configuration loading and
// difficulty presets for the defense game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// DefenseConfig contains all tunable numbers of a defense session.
type DefenseConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Economy    EconomyConfig    `yaml:"economy"`
	Waves      WavesConfig      `yaml:"waves"`
	Sim        SimConfig        `yaml:"sim"`
	Advisor    AdvisorConfig    `yaml:"advisor"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the board.
type GridConfig struct {
	Cols     int     `yaml:"cols"`
	Rows     int     `yaml:"rows"`
	CellSize float64 `yaml:"cell_size"` // pixels per cell
}

// EconomyConfig defines lives, money and rewards.
type EconomyConfig struct {
	StartingLives  int `yaml:"starting_lives"`
	StartingMoney  int `yaml:"starting_money"`
	LevelBonus     int `yaml:"level_bonus"`
	KillDivisor    int `yaml:"kill_divisor"` // kill reward = base hp / divisor
	WaveClearScore int `yaml:"wave_clear_score"`
}

// WavesConfig defines wave pacing.
type WavesConfig struct {
	TimerSeconds float64 `yaml:"timer_seconds"`
	SpawnSpacing float64 `yaml:"spawn_spacing"` // pixels between staggered spawns
	PerLevel     int     `yaml:"per_level"`     // waves to clear before the level completes
}

// SimConfig defines the loop.
type SimConfig struct {
	TickRate        int     `yaml:"tick_rate"`       // fixed ticks per second
	FrameRate       int     `yaml:"frame_rate"`      // render frames per second
	MaxFrameMS      int     `yaml:"max_frame_ms"`    // longest frame delta fed to the accumulator
	ProjectileSpeed float64 `yaml:"projectile_speed"` // pixels per tick
	Decorations     int     `yaml:"decorations"`     // scenery pieces per level
}

// AdvisorConfig points at the arsenal advisory service.
type AdvisorConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DifficultyConfig records the preset the config was built from.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// MaxFrame returns the frame delta clamp as a duration.
func (c SimConfig) MaxFrame() time.Duration {
	return time.Duration(c.MaxFrameMS) * time.Millisecond
}

// Validate checks the values a session cannot run without.
func (c DefenseConfig) Validate() error {
	var errs []error
	if c.Grid.Cols <= 0 || c.Grid.Rows <= 0 {
		errs = append(errs, fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Grid.Cols, c.Grid.Rows))
	}
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell_size must be positive, got %v", c.Grid.CellSize))
	}
	if c.Economy.StartingLives < 1 {
		errs = append(errs, fmt.Errorf("starting_lives must be at least 1, got %d", c.Economy.StartingLives))
	}
	if c.Economy.StartingMoney < 0 {
		errs = append(errs, fmt.Errorf("starting_money must not be negative, got %d", c.Economy.StartingMoney))
	}
	if c.Economy.KillDivisor < 1 {
		errs = append(errs, fmt.Errorf("kill_divisor must be at least 1, got %d", c.Economy.KillDivisor))
	}
	if c.Waves.TimerSeconds < 0 {
		errs = append(errs, fmt.Errorf("timer_seconds must not be negative, got %v", c.Waves.TimerSeconds))
	}
	if c.Sim.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.Sim.TickRate))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
