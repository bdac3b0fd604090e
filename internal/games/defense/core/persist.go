package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// SaveVersion is written into every encoded save. Saves without a version
// are read as the current one.
const SaveVersion = 1

// saveFile is the flat save record: the state's fields plus a version key.
type saveFile struct {
	Version int `json:"version,omitempty"`
	State
}

// Encode serializes a state into its save payload. Towers and enemies carry
// their full archetypes so a save loads without the catalog.
func Encode(s State) ([]byte, error) {
	data, err := json.Marshal(saveFile{Version: SaveVersion, State: s})
	if err != nil {
		return nil, fmt.Errorf("core: encode save: %w", err)
	}
	return data, nil
}

// Decode parses a save payload. Any malformed or inconsistent payload yields
// an error wrapping ErrInvalidSave. Decode cannot tell whether the payload
// fits its level; callers holding the Env follow up with CheckFits.
func Decode(data []byte) (State, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return State{}, fmt.Errorf("core: decode save: empty payload: %w", ErrInvalidSave)
	}
	var f saveFile
	if err := json.Unmarshal(data, &f); err != nil {
		return State{}, fmt.Errorf("core: decode save: %v: %w", err, ErrInvalidSave)
	}
	if f.Version < 0 || f.Version > SaveVersion {
		return State{}, fmt.Errorf("core: decode save: unsupported version %d: %w", f.Version, ErrInvalidSave)
	}
	s := f.State
	if s.LevelStartWave == 0 {
		s.LevelStartWave = 1
	}
	if err := checkDecoded(&s); err != nil {
		return State{}, fmt.Errorf("core: decode save: %v: %w", err, ErrInvalidSave)
	}
	if s.Towers == nil {
		s.Towers = []PlacedTower{}
	}
	if s.Enemies == nil {
		s.Enemies = []ActiveEnemy{}
	}
	if s.Projectiles == nil {
		s.Projectiles = []Projectile{}
	}
	if s.Decorations == nil {
		s.Decorations = []Decoration{}
	}
	s.rebuildOccupancy()
	return s, nil
}

// CheckFits verifies a decoded state against the level it claims to be on:
// every enemy sits on a waypoint of the path and every tower stands on a
// buildable cell with a usable fire rate.
func CheckFits(s State, env Env) error {
	if err := checkFits(s, env); err != nil {
		return fmt.Errorf("core: save does not fit level %d: %v: %w", env.Level.Number, err, ErrInvalidSave)
	}
	return nil
}

func checkFits(s State, env Env) error {
	if s.CurrentLevel != env.Level.Number {
		return fmt.Errorf("save is for level %d", s.CurrentLevel)
	}
	last := env.LastWaypoint()
	for _, e := range s.Enemies {
		switch {
		case e.PathIndex < 0 || e.PathIndex > last:
			return fmt.Errorf("enemy %s at path index %d, path has %d waypoints", e.InstanceID, e.PathIndex, last+1)
		case !finite(e.X) || !finite(e.Y) || !finite(e.CurrentHP):
			return fmt.Errorf("enemy %s has a non-finite position or hp", e.InstanceID)
		case e.Speed < 0:
			return fmt.Errorf("enemy %s has negative speed", e.InstanceID)
		}
	}
	for _, t := range s.Towers {
		switch {
		case !env.Rules.InBounds(t.GridX, t.GridY):
			return fmt.Errorf("tower %s off the board at (%d,%d)", t.InstanceID, t.GridX, t.GridY)
		case env.Level.OnPath(t.GridX, t.GridY):
			return fmt.Errorf("tower %s on the path at (%d,%d)", t.InstanceID, t.GridX, t.GridY)
		case t.Rate < 1:
			return fmt.Errorf("tower %s has rate %d", t.InstanceID, t.Rate)
		case t.Cooldown < 0:
			return fmt.Errorf("tower %s has negative cooldown", t.InstanceID)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func checkDecoded(s *State) error {
	switch {
	case !s.Status.Valid():
		return fmt.Errorf("unknown status %q", s.Status)
	case s.Lives < 0:
		return fmt.Errorf("negative lives %d", s.Lives)
	case s.Wave < 1:
		return fmt.Errorf("wave %d out of range", s.Wave)
	case s.CurrentLevel < 1:
		return fmt.Errorf("level %d out of range", s.CurrentLevel)
	case s.LevelStartWave > s.Wave:
		return fmt.Errorf("level started on wave %d after current wave %d", s.LevelStartWave, s.Wave)
	}
	seen := make(map[Cell]bool, len(s.Towers))
	for _, t := range s.Towers {
		c := Cell{t.GridX, t.GridY}
		if seen[c] {
			return fmt.Errorf("two towers on (%d,%d)", c.X, c.Y)
		}
		seen[c] = true
	}
	return nil
}
