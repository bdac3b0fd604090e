package core

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
)

func defaultEnv(t *testing.T, level int) Env {
	t.Helper()
	env, ok := NewEnv(catalog.Default(), level, DefaultRules())
	if !ok {
		t.Fatalf("level %d missing", level)
	}
	return env
}

func TestSpawnFirstWave(t *testing.T) {
	env := defaultEnv(t, 1)
	s := playing(env)

	next, n := SpawnWave(s, env)
	if n != 5 || len(next.Enemies) != 5 {
		t.Fatalf("spawned %d, expected 5", n)
	}
	if next.Wave != 2 {
		t.Errorf("wave = %d, expected 2", next.Wave)
	}
	// level 1 starts at cell (0,4) heading right
	for i, e := range next.Enemies {
		if e.CurrentHP != 12 || e.TotalHP != 12 {
			t.Errorf("enemy %d hp = %v/%v, expected 12", i, e.CurrentHP, e.TotalHP)
		}
		wantX := 20 - float64(i)*40
		if e.X != wantX || e.Y != 180 {
			t.Errorf("enemy %d at (%v,%v), expected (%v,180)", i, e.X, e.Y, wantX)
		}
		if e.PathIndex != 0 {
			t.Errorf("enemy %d path index = %d", i, e.PathIndex)
		}
	}
	if next.Enemies[3].InstanceID != "1-3" {
		t.Errorf("id = %q, expected 1-3", next.Enemies[3].InstanceID)
	}
	if len(s.Enemies) != 0 || s.Wave != 1 {
		t.Error("SpawnWave mutated its input")
	}
}

func TestSpawnStaggersAlongFirstSegment(t *testing.T) {
	env := defaultEnv(t, 2) // starts at (2,0) heading down
	s, _ := SpawnWave(playing(env), env)
	for i, e := range s.Enemies {
		wantY := 20 - float64(i)*40
		if e.X != 100 || e.Y != wantY {
			t.Errorf("enemy %d at (%v,%v), expected (100,%v)", i, e.X, e.Y, wantY)
		}
	}
}

func TestEmptyRosterStillAdvances(t *testing.T) {
	env := defaultEnv(t, 1)
	s := playing(env)
	s.Wave = 16

	next, n := SpawnWave(s, env)
	if n != 0 || len(next.Enemies) != 0 {
		t.Errorf("wave 16 spawned %d enemies", n)
	}
	if next.Wave != 17 {
		t.Errorf("wave = %d, expected 17", next.Wave)
	}
}

func TestStartWaveNow(t *testing.T) {
	env := testEnv(t)

	paused := NewState(env, nil)
	if _, ok := StartWaveNow(paused, env); ok {
		t.Error("start should be a no-op while paused")
	}

	s := playing(env)
	next, ok := StartWaveNow(s, env)
	if !ok {
		t.Fatal("start should succeed while playing")
	}
	if next.WaveTimer != 0 || next.Wave != 2 || len(next.Enemies) != 2 {
		t.Errorf("timer = %v wave = %d enemies = %d", next.WaveTimer, next.Wave, len(next.Enemies))
	}

	if _, ok := StartWaveNow(next, env); ok {
		t.Error("start should be a no-op while enemies are alive")
	}
}

func TestAutoAdvance(t *testing.T) {
	env := testEnv(t)
	s := playing(env)
	s.WaveTimer = 1

	if _, ok := AutoAdvance(s, env); ok {
		t.Error("should not fire while countdown is running")
	}

	s.WaveTimer = 0
	next, ok := AutoAdvance(s, env)
	if !ok {
		t.Fatal("expected auto advance")
	}
	if next.Wave != 2 || len(next.Enemies) != 2 || next.WaveTimer != env.Rules.WaveTimer {
		t.Errorf("wave = %d enemies = %d timer = %v", next.Wave, len(next.Enemies), next.WaveTimer)
	}

	s.Status = StatusPaused
	if _, ok := AutoAdvance(s, env); ok {
		t.Error("should not fire while paused")
	}
}

func TestPhaseOf(t *testing.T) {
	env := testEnv(t)
	base := playing(env)

	active := base
	active.Enemies = []ActiveEnemy{enemy(env, "grunt", "e", 0, 0, 1, 0)}
	cleared := base
	cleared.Wave = 3
	due := base
	due.WaveTimer = 0

	tests := []struct {
		name  string
		state State
		want  WavePhase
	}{
		{"fresh level", base, PhaseIdle},
		{"enemies alive", active, PhaseActive},
		{"countdown running", cleared, PhaseCleared},
		{"countdown done", due, PhaseAdvancing},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PhaseOf(tc.state); got != tc.want {
				t.Errorf("PhaseOf = %s, expected %s", got, tc.want)
			}
		})
	}
}

func TestPauseResumeMatchesUninterruptedRun(t *testing.T) {
	env := defaultEnv(t, 1)
	start, _ := StartWaveNow(playing(env), env)

	straight := start
	for i := 0; i < 200; i++ {
		straight, _ = Step(straight, env)
	}

	paused := start
	for i := 0; i < 120; i++ {
		paused, _ = Step(paused, env)
	}
	paused.Status = StatusPaused
	for i := 0; i < 500; i++ {
		paused, _ = Step(paused, env)
	}
	paused.Status = StatusPlaying
	for i := 0; i < 80; i++ {
		paused, _ = Step(paused, env)
	}

	if !reflect.DeepEqual(straight, paused) {
		t.Error("pausing changed the outcome")
	}
}

func TestLevelCompleteAndAdvance(t *testing.T) {
	env := testEnv(t)
	s := playing(env)
	s = withTower(t, s, env, "gun", 3, 3, "t1")
	s.Wave = s.LevelStartWave + env.Rules.WavesPerLevel
	s.Lives = 3
	s.Money = 100

	s, res := Step(s, env)
	if !res.LevelComplete || s.Status != StatusLevelComplete {
		t.Fatalf("status = %s, expected level-complete", s.Status)
	}

	next, ok := NewEnv(env.Catalog, 2, env.Rules)
	if !ok {
		t.Fatal("level 2 missing")
	}
	decor := []Decoration{{Type: DecorationTree, X: 1, Y: 1, Size: 10}}
	adv, ok := AdvanceLevel(s, next, decor)
	if !ok {
		t.Fatal("advance rejected")
	}
	if adv.CurrentLevel != 2 || adv.Status != StatusPlaying {
		t.Errorf("level = %d status = %s", adv.CurrentLevel, adv.Status)
	}
	if adv.Money != 100+env.Rules.LevelBonus {
		t.Errorf("money = %d", adv.Money)
	}
	if adv.Lives != env.Rules.StartingLives {
		t.Errorf("lives = %d", adv.Lives)
	}
	if len(adv.Towers) != 0 || len(adv.Enemies) != 0 || len(adv.Projectiles) != 0 {
		t.Error("board should be cleared")
	}
	if _, taken := adv.Occupant(3, 3); taken {
		t.Error("occupancy should be cleared")
	}
	if adv.Wave != s.Wave || adv.LevelStartWave != s.Wave {
		t.Errorf("wave = %d start = %d, expected %d", adv.Wave, adv.LevelStartWave, s.Wave)
	}
	if !reflect.DeepEqual(adv.Decorations, decor) {
		t.Error("decorations should be replaced")
	}

	if _, ok := AdvanceLevel(adv, next, nil); ok {
		t.Error("advance should require level-complete")
	}
}

func TestWaveClock(t *testing.T) {
	var c WaveClock

	if c.Advance(5*time.Second, false) {
		t.Error("disarmed clock fired")
	}
	if c.Advance(999*time.Millisecond, true) {
		t.Error("fired before a second")
	}
	if !c.Advance(time.Millisecond, true) {
		t.Error("expected fire at one second")
	}
	if !c.Advance(5*time.Second, true) {
		t.Error("expected fire after long frame")
	}
	// no backlog from the long frame
	if c.Advance(500*time.Millisecond, true) {
		t.Error("backlog fired")
	}
	c.Advance(400*time.Millisecond, false)
	if c.Advance(700*time.Millisecond, true) {
		t.Error("disarm should reset accumulated time")
	}
}
