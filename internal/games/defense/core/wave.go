package core

import (
	"fmt"
	"time"
)

// WavePhase is the position of a session in the wave lifecycle. It is
// derived from the state, never stored.
type WavePhase int

const (
	PhaseIdle      WavePhase = iota // nothing spawned on this level yet
	PhaseSpawning                   // roster is being materialized
	PhaseActive                     // enemies alive on the board
	PhaseCleared                    // board empty, countdown running
	PhaseAdvancing                  // countdown elapsed, next wave due
)

func (p WavePhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSpawning:
		return "spawning"
	case PhaseActive:
		return "active"
	case PhaseCleared:
		return "cleared"
	case PhaseAdvancing:
		return "advancing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// PhaseOf derives the wave phase of a state.
func PhaseOf(s State) WavePhase {
	switch {
	case len(s.Enemies) > 0:
		return PhaseActive
	case s.WaveTimer <= 0:
		return PhaseAdvancing
	case s.Wave == s.LevelStartWave:
		return PhaseIdle
	default:
		return PhaseCleared
	}
}

// SpawnWave materializes the roster of the current wave and increments the
// wave counter. Empty rosters spawn nothing but still advance the counter.
// Enemies are staggered backwards along the first path segment so they walk
// onto the board one after another.
func SpawnWave(prev State, env Env) (State, int) {
	s := prev.Clone()
	roster := env.Catalog.RosterForWave(s.Wave)

	origin := env.Path[0]
	dir := Vec{}
	if len(env.Path) > 1 {
		d := env.Path[1].Sub(origin)
		if l := d.Len(); l > 0 {
			dir = Vec{d.X / l, d.Y / l}
		}
	}

	spawned := 0
	for i, id := range roster {
		arch, ok := env.Catalog.EnemyByID(id)
		if !ok {
			continue
		}
		hp := arch.HitPoints(s.Wave)
		offset := float64(i) * env.Rules.SpawnSpacing
		s.Enemies = append(s.Enemies, ActiveEnemy{
			EnemyArchetype: arch,
			InstanceID:     fmt.Sprintf("%d-%d", s.Wave, i),
			X:              origin.X - dir.X*offset,
			Y:              origin.Y - dir.Y*offset,
			CurrentHP:      hp,
			TotalHP:        hp,
			PathIndex:      0,
		})
		spawned++
	}
	s.Wave++
	return s, spawned
}

// StartWaveNow spawns the next wave immediately and zeroes the countdown.
// It only acts while playing with an empty board.
func StartWaveNow(prev State, env Env) (State, bool) {
	if !prev.Playing() || len(prev.Enemies) > 0 {
		return prev, false
	}
	s, _ := SpawnWave(prev, env)
	s.WaveTimer = 0
	return s, true
}

// AutoAdvance spawns the next wave when the countdown has run out on an empty
// board, and re-arms the countdown.
func AutoAdvance(prev State, env Env) (State, bool) {
	if !prev.Playing() || len(prev.Enemies) > 0 || prev.WaveTimer > 0 {
		return prev, false
	}
	s, _ := SpawnWave(prev, env)
	s.WaveTimer = env.Rules.WaveTimer
	return s, true
}

// settleWaveTimer runs the countdown at the end of a tick and checks for
// level completion.
func settleWaveTimer(s *State, env Env, hadEnemies bool, result *StepResult) {
	empty := len(s.Enemies) == 0
	switch {
	case hadEnemies && empty:
		s.WaveTimer = env.Rules.WaveTimer
		s.Score += env.Rules.WaveClearScore
		result.WaveCleared = true
	case empty:
		s.WaveTimer -= env.Rules.TickSeconds()
		if s.WaveTimer < 0 {
			s.WaveTimer = 0
		}
	}

	if empty && env.Rules.WavesPerLevel > 0 && s.WavesCleared() >= env.Rules.WavesPerLevel {
		s.Status = StatusLevelComplete
		result.LevelComplete = true
	}
}

// AdvanceLevel moves a completed session onto the next map. Towers, enemies,
// projectiles and decorations are cleared, lives restored and a bonus paid.
// Wave and money carry over. The caller picks next; on the last level it is
// the same map again.
func AdvanceLevel(prev State, next Env, decorations []Decoration) (State, bool) {
	if prev.Status != StatusLevelComplete {
		return prev, false
	}
	s := prev.Clone()
	s.CurrentLevel = next.Level.Number
	s.Towers = []PlacedTower{}
	s.Enemies = []ActiveEnemy{}
	s.Projectiles = []Projectile{}
	s.Decorations = decorations
	s.Lives = next.Rules.StartingLives
	s.Money += next.Rules.LevelBonus
	s.WaveTimer = next.Rules.WaveTimer
	s.LevelStartWave = s.Wave
	s.Status = StatusPlaying
	s.rebuildOccupancy()
	return s, true
}

// WaveClock is the coarse once-per-second scheduler that decides when the
// wave countdown is checked. It carries no backlog: after a long frame it
// fires once, not once per missed second.
type WaveClock struct {
	elapsed time.Duration
}

// Advance accumulates frame time. While disarmed the clock resets. It
// returns true at most once per call.
func (c *WaveClock) Advance(d time.Duration, armed bool) bool {
	if !armed {
		c.elapsed = 0
		return false
	}
	c.elapsed += d
	if c.elapsed < time.Second {
		return false
	}
	c.elapsed = c.elapsed % time.Second
	return true
}

// Reset clears accumulated time.
func (c *WaveClock) Reset() {
	c.elapsed = 0
}
