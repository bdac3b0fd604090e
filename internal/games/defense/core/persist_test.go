package core

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func midGameState(t *testing.T) (State, Env) {
	t.Helper()
	env := defaultEnv(t, 1)
	s := NewState(env, Decorate(env.Level, env.Rules, 12, 7))
	s.Status = StatusPlaying
	s.Money = 1000
	var err error
	s, err = PlaceTowerByID(s, env, "bomber", 5, 5, "t_1")
	if err != nil {
		t.Fatal(err)
	}
	s, err = PlaceTowerByID(s, env, "turret", 1, 3, "t_2")
	if err != nil {
		t.Fatal(err)
	}
	s, _ = StartWaveNow(s, env)
	for i := 0; i < 90; i++ {
		s, _ = Step(s, env)
	}
	return s, env
}

func TestSaveRoundTrip(t *testing.T) {
	s, env := midGameState(t)

	data, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", Summarize(got), Summarize(s))
	}

	// occupancy is rebuilt from the towers
	if _, err := PlaceTowerByID(got, env, "turret", 5, 5, "t_3"); !errors.Is(err, ErrPlacementRejected) {
		t.Errorf("expected occupied rejection after load, got %v", err)
	}
}

func TestSaveCarriesArchetypes(t *testing.T) {
	s, _ := midGameState(t)
	data, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"idInGame":"t_1"`, `"splash":50`, `"rate":40`, `"status":"playing"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("save is missing %s", field)
		}
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"whitespace", "  \n"},
		{"not json", "{lives: 3"},
		{"wrong shape", `[1,2,3]`},
		{"future version", `{"version":99,"status":"paused","wave":1,"currentLevel":1}`},
		{"negative version", `{"version":-1,"status":"paused","wave":1,"currentLevel":1}`},
		{"missing status", `{"wave":1,"currentLevel":1}`},
		{"bad status", `{"version":1,"status":"dancing","wave":1,"currentLevel":1}`},
		{"negative lives", `{"status":"paused","lives":-1,"wave":1,"currentLevel":1}`},
		{"zero wave", `{"status":"paused","wave":0,"currentLevel":1}`},
		{"start after wave", `{"status":"paused","wave":2,"levelStartWave":5,"currentLevel":1}`},
		{"stacked towers", `{"status":"paused","wave":1,"currentLevel":1,"towers":[{"gridX":1,"gridY":1},{"gridX":1,"gridY":1}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode([]byte(tc.data)); !errors.Is(err, ErrInvalidSave) {
				t.Errorf("err = %v, expected ErrInvalidSave", err)
			}
		})
	}
}

func TestEncodeIsFlat(t *testing.T) {
	s, _ := midGameState(t)
	data, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"version", "status", "lives", "money", "wave", "currentLevel", "waveTimer", "towers", "enemies", "projectiles", "decorations"} {
		if _, ok := top[key]; !ok {
			t.Errorf("top level is missing %q", key)
		}
	}
	if _, ok := top["state"]; ok {
		t.Error("state must not be nested")
	}
}

func TestDecodeUnversionedRecord(t *testing.T) {
	data := `{
		"status": "playing", "lives": 17, "money": 340, "wave": 3, "currentLevel": 1, "waveTimer": 12.5,
		"towers": [{"id": "turret", "name": "Turret", "cost": 100, "range": 120, "damage": 10, "rate": 30,
			"idInGame": "t_1", "x": 220, "y": 220, "gridX": 5, "gridY": 5, "cooldown": 4}],
		"enemies": [{"id": "grunt", "name": "Grunt", "speed": 1.5, "baseHp": 50, "hpMultiplier": 1,
			"idInGame": "e_1", "x": 20, "y": 100, "currentHp": 30, "totalHp": 60, "pathIndex": 1}],
		"projectiles": [],
		"decorations": []
	}`
	s, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Status != StatusPlaying || s.Lives != 17 || s.Money != 340 || s.Wave != 3 || s.WaveTimer != 12.5 {
		t.Errorf("scalars = %+v", Summarize(s))
	}
	if s.LevelStartWave != 1 {
		t.Errorf("LevelStartWave = %d, expected 1 when absent", s.LevelStartWave)
	}
	if len(s.Towers) != 1 || s.Towers[0].Rate != 30 || len(s.Enemies) != 1 || s.Enemies[0].PathIndex != 1 {
		t.Errorf("entities = %+v / %+v", s.Towers, s.Enemies)
	}
	if id, ok := s.Occupant(5, 5); !ok || id != "t_1" {
		t.Error("occupancy not rebuilt")
	}
	if err := CheckFits(s, defaultEnv(t, 1)); err != nil {
		t.Errorf("CheckFits: %v", err)
	}
}

func TestCheckFits(t *testing.T) {
	env := defaultEnv(t, 1)
	base := NewState(env, nil)
	base.Status = StatusPlaying
	base, err := PlaceTowerByID(base, env, "turret", 5, 5, "t_1")
	if err != nil {
		t.Fatal(err)
	}
	base, _ = StartWaveNow(base, env)
	if len(base.Enemies) == 0 {
		t.Fatal("wave 1 spawned nothing")
	}
	onPath := env.Level.Path[0]

	tests := []struct {
		name   string
		mutate func(s *State)
	}{
		{"negative path index", func(s *State) { s.Enemies[0].PathIndex = -5 }},
		{"path index past the end", func(s *State) { s.Enemies[0].PathIndex = env.LastWaypoint() + 1 }},
		{"nan position", func(s *State) { s.Enemies[0].X = math.NaN() }},
		{"negative speed", func(s *State) { s.Enemies[0].Speed = -1 }},
		{"tower off board", func(s *State) { s.Towers[0].GridX = env.Rules.Cols }},
		{"tower on path", func(s *State) { s.Towers[0].GridX, s.Towers[0].GridY = onPath.X, onPath.Y }},
		{"zero rate", func(s *State) { s.Towers[0].Rate = 0 }},
		{"negative cooldown", func(s *State) { s.Towers[0].Cooldown = -1 }},
		{"other level", func(s *State) { s.CurrentLevel = 2 }},
	}
	if err := CheckFits(base, env); err != nil {
		t.Fatalf("valid state rejected: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base.Clone()
			tc.mutate(&s)
			if err := CheckFits(s, env); !errors.Is(err, ErrInvalidSave) {
				t.Errorf("err = %v, expected ErrInvalidSave", err)
			}
		})
	}
}

func TestDecorateIsDeterministicAndOffPath(t *testing.T) {
	env := defaultEnv(t, 1)
	a := Decorate(env.Level, env.Rules, 40, 99)
	b := Decorate(env.Level, env.Rules, 40, 99)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different scenery")
	}
	if len(a) != 40 {
		t.Errorf("placed %d decorations, expected 40", len(a))
	}
	for _, d := range a {
		gx := int(d.X / env.Rules.CellSize)
		gy := int(d.Y / env.Rules.CellSize)
		if env.Level.OnPath(gx, gy) {
			t.Errorf("decoration on path cell (%d,%d)", gx, gy)
		}
	}
	if got := Decorate(env.Level, env.Rules, 0, 1); len(got) != 0 {
		t.Error("zero count should produce nothing")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s, _ := midGameState(t)
	c := s.Clone()
	c.Towers[0].Cooldown = 99
	c.Decorations[0].Size = -1
	c.occupied[Cell{0, 0}] = "x"

	if s.Towers[0].Cooldown == 99 {
		t.Error("clone shares towers")
	}
	if s.Decorations[0].Size == -1 {
		t.Error("clone shares decorations")
	}
	if _, ok := s.Occupant(0, 0); ok {
		t.Error("clone shares occupancy")
	}
}
