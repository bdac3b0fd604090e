package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset resolves a preset name, case-insensitively.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// presetScaling is how far a preset moves the economy away from normal.
type presetScaling struct {
	money float64
	lives float64
	timer float64
}

var presets = map[DifficultyPreset]presetScaling{
	DifficultyEasy:   {money: 2.0, lives: 1.5, timer: 1.5},
	DifficultyNormal: {money: 1.0, lives: 1.0, timer: 1.0},
	DifficultyHard:   {money: 0.6, lives: 0.5, timer: 0.5},
}

// ApplyDefensePreset modifies the config based on a difficulty preset.
// Scaling is relative to the values already in cfg, applied once.
func ApplyDefensePreset(cfg *DefenseConfig, preset DifficultyPreset) {
	sc, ok := presets[preset]
	if !ok {
		return
	}
	cfg.Difficulty.Preset = preset
	cfg.Economy.StartingMoney = scaleInt(cfg.Economy.StartingMoney, sc.money, 0)
	cfg.Economy.StartingLives = scaleInt(cfg.Economy.StartingLives, sc.lives, 1)
	cfg.Waves.TimerSeconds *= sc.timer
}

// scaleInt multiplies and rounds down, never going below floor.
func scaleInt(v int, factor float64, floor int) int {
	out := int(float64(v) * factor)
	if out < floor {
		return floor
	}
	return out
}
