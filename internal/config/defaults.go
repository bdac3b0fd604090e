package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/defense.yaml
var defaultDefenseYAML []byte

// DefaultDefenseConfig returns the default defense configuration.
func DefaultDefenseConfig() DefenseConfig {
	return DefenseConfig{
		Grid: GridConfig{
			Cols:     30,
			Rows:     20,
			CellSize: 40,
		},
		Economy: EconomyConfig{
			StartingLives:  20,
			StartingMoney:  250,
			LevelBonus:     500,
			KillDivisor:    10,
			WaveClearScore: 100,
		},
		Waves: WavesConfig{
			TimerSeconds: 30,
			SpawnSpacing: 40,
			PerLevel:     20,
		},
		Sim: SimConfig{
			TickRate:        60,
			FrameRate:       30,
			MaxFrameMS:      250, // 15 ticks of catch-up at most
			ProjectileSpeed: 12,
			Decorations:     24,
		},
		Advisor: AdvisorConfig{
			Timeout: 10 * time.Second,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultDefenseYAML
}
