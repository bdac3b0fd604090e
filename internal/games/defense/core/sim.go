package core

import "fmt"

// ShotEvent records a tower firing.
type ShotEvent struct {
	TowerID  string
	TargetID string
	Hits     int // enemies damaged, more than one for splash
}

// KillEvent records an enemy removed for running out of hit points.
type KillEvent struct {
	EnemyID string
	Reward  int
}

// StepResult contains information about what happened during a tick.
type StepResult struct {
	Tick          uint64
	Shots         []ShotEvent
	Kills         []KillEvent
	Arrived       int // enemies that reached the end of the path
	LivesLost     int
	MoneyEarned   int
	WaveCleared   bool
	GameOver      bool
	LevelComplete bool
}

// Step advances a playing state by one fixed tick and returns the new state.
// Non-playing states are returned unchanged.
//
// Phases run in a fixed order:
//  1. Movement: each enemy walks toward its next waypoint by its speed,
//     snapping onto the waypoint when closer than one step.
//  2. Arrival: enemies past the last waypoint cost a life each. Reaching zero
//     lives ends the game and skips the remaining phases.
//  3. Targeting: each ready tower fires at the first enemy in range.
//  4. Death resolution: enemies at zero hit points are removed and paid out.
//  5. Wave timer: the countdown restarts when the board has just been
//     cleared, otherwise it runs down while the board stays empty.
func Step(prev State, env Env) (State, StepResult) {
	if !prev.Playing() {
		return prev, StepResult{Tick: prev.Tick}
	}

	s := prev.Clone()
	s.Tick++
	result := StepResult{Tick: s.Tick}
	hadEnemies := len(s.Enemies) > 0

	moveEnemies(&s, env)

	if resolveArrivals(&s, env, &result) {
		return s, result
	}

	fireTowers(&s, env, &result)
	moveProjectiles(&s)
	resolveDeaths(&s, env, &result)
	settleWaveTimer(&s, env, hadEnemies, &result)
	return s, result
}

func moveEnemies(s *State, env Env) {
	last := env.LastWaypoint()
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if e.PathIndex >= last {
			continue
		}
		target := env.Path[e.PathIndex+1]
		delta := target.Sub(e.Pos())
		dist := delta.Len()
		if dist == 0 || dist < e.Speed {
			e.X, e.Y = target.X, target.Y
			e.PathIndex++
			continue
		}
		e.X += delta.X / dist * e.Speed
		e.Y += delta.Y / dist * e.Speed
	}
}

// resolveArrivals removes enemies that finished the path. It returns true when
// the game ended this tick.
func resolveArrivals(s *State, env Env, result *StepResult) bool {
	last := env.LastWaypoint()
	kept := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.PathIndex < last {
			kept = append(kept, e)
			continue
		}
		result.Arrived++
		if s.Lives > 0 {
			s.Lives--
			result.LivesLost++
		}
	}
	s.Enemies = kept

	if s.Lives <= 0 {
		s.Lives = 0
		s.Status = StatusGameOver
		result.GameOver = true
		return true
	}
	return false
}

func fireTowers(s *State, env Env, result *StepResult) {
	for i := range s.Towers {
		t := &s.Towers[i]
		if t.Cooldown > 0 {
			t.Cooldown--
			continue
		}

		idx := firstInRange(s.Enemies, t)
		if idx < 0 {
			t.Target = ""
			continue
		}
		primary := s.Enemies[idx]
		impact := primary.Pos()
		t.Target = primary.InstanceID

		hits := 0
		if t.HasSplash() {
			for j := range s.Enemies {
				if Dist(s.Enemies[j].Pos(), impact) <= t.Splash {
					s.Enemies[j].CurrentHP -= t.Damage
					hits++
				}
			}
		} else {
			s.Enemies[idx].CurrentHP -= t.Damage
			hits = 1
		}
		t.Cooldown = t.Rate

		s.ShotSeq++
		s.Projectiles = append(s.Projectiles, Projectile{
			ID:      fmt.Sprintf("p%d", s.ShotSeq),
			X:       t.X,
			Y:       t.Y,
			TargetX: impact.X,
			TargetY: impact.Y,
			Speed:   env.Rules.ProjectileSpeed,
			Damage:  t.Damage,
			Splash:  t.Splash,
		})
		result.Shots = append(result.Shots, ShotEvent{
			TowerID:  t.InstanceID,
			TargetID: primary.InstanceID,
			Hits:     hits,
		})
	}
}

// firstInRange returns the index of the first enemy within the tower's range
// in iteration order, or -1. Enemies already at zero hit points still count
// as targets until death resolution runs.
func firstInRange(enemies []ActiveEnemy, t *PlacedTower) int {
	pos := t.Pos()
	for i := range enemies {
		if Dist(enemies[i].Pos(), pos) <= t.Range {
			return i
		}
	}
	return -1
}

func moveProjectiles(s *State) {
	kept := s.Projectiles[:0]
	for _, p := range s.Projectiles {
		delta := Vec{p.TargetX - p.X, p.TargetY - p.Y}
		dist := delta.Len()
		if dist <= p.Speed || p.Speed <= 0 {
			continue
		}
		p.X += delta.X / dist * p.Speed
		p.Y += delta.Y / dist * p.Speed
		kept = append(kept, p)
	}
	s.Projectiles = kept
}

func resolveDeaths(s *State, env Env, result *StepResult) {
	kept := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.Alive() {
			kept = append(kept, e)
			continue
		}
		reward := e.KillReward(env.Rules.KillDivisor)
		s.Money += reward
		s.Kills++
		s.Score += reward
		result.MoneyEarned += reward
		result.Kills = append(result.Kills, KillEvent{EnemyID: e.InstanceID, Reward: reward})
	}
	s.Enemies = kept
}
