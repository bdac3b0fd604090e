package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogLookups(t *testing.T) {
	c := Default()

	turret, ok := c.TowerByID("turret")
	if !ok {
		t.Fatal("expected turret tower")
	}
	if turret.Cost != 50 || turret.Rate != 40 {
		t.Errorf("turret = %+v, unexpected stats", turret)
	}
	if turret.HasSplash() {
		t.Error("turret should not splash")
	}
	bomber, _ := c.TowerByID("bomber")
	if !bomber.HasSplash() {
		t.Error("bomber should splash")
	}

	if _, ok := c.TowerByID("nope"); ok {
		t.Error("unknown tower should not be found")
	}
	if _, ok := c.EnemyByID("nope"); ok {
		t.Error("unknown enemy should not be found")
	}

	if c.LevelByNumber(1) == nil || c.LevelByNumber(3) == nil {
		t.Fatal("expected levels 1 and 3")
	}
	if c.LevelByNumber(4) != nil {
		t.Error("level 4 should not exist")
	}
	if c.LastLevel() != 3 {
		t.Errorf("LastLevel() = %d, expected 3", c.LastLevel())
	}
}

func TestRosterForWave(t *testing.T) {
	c := Default()

	tests := []struct {
		name  string
		wave  int
		count int
	}{
		{"first wave", 1, 5},
		{"boss wave", 5, 4},
		{"gap 16", 16, 0},
		{"gap 17", 17, 0},
		{"past the table", 99, 0},
		{"zero", 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			roster := c.RosterForWave(tc.wave)
			if roster == nil {
				t.Fatal("roster should never be nil")
			}
			if len(roster) != tc.count {
				t.Errorf("RosterForWave(%d) has %d entries, expected %d", tc.wave, len(roster), tc.count)
			}
		})
	}

	if c.FinalWave() != 20 {
		t.Errorf("FinalWave() = %d, expected 20", c.FinalWave())
	}

	// Mutating the returned roster must not leak into the catalog.
	r := c.RosterForWave(1)
	r[0] = "boss"
	if c.RosterForWave(1)[0] != "troop" {
		t.Error("roster slice aliases catalog storage")
	}
}

func TestHitPoints(t *testing.T) {
	c := Default()
	troop, _ := c.EnemyByID("troop")
	if hp := troop.HitPoints(1); hp != 12 {
		t.Errorf("troop HitPoints(1) = %v, expected 12", hp)
	}
	tank, _ := c.EnemyByID("tank")
	if hp := tank.HitPoints(10); hp != 240 {
		t.Errorf("tank HitPoints(10) = %v, expected 240", hp)
	}

	prev := 0.0
	for wave := 1; wave <= 30; wave++ {
		hp := tank.HitPoints(wave)
		if hp < prev {
			t.Fatalf("hit points decreased at wave %d", wave)
		}
		prev = hp
	}
}

func TestKillReward(t *testing.T) {
	c := Default()
	boss, _ := c.EnemyByID("boss")
	if got := boss.KillReward(10); got != 50 {
		t.Errorf("boss reward = %d, expected 50", got)
	}
	bike, _ := c.EnemyByID("scout_bike")
	if got := bike.KillReward(10); got != 0 {
		t.Errorf("scout bike reward = %d, expected 0", got)
	}
}

func TestTraceExpandsCorners(t *testing.T) {
	path := Trace(Point{0, 0}, Point{3, 0}, Point{3, 2})
	expected := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {3, 1}, {3, 2}}
	if len(path) != len(expected) {
		t.Fatalf("Trace produced %d points, expected %d", len(path), len(expected))
	}
	for i := range expected {
		if path[i] != expected[i] {
			t.Errorf("path[%d] = %v, expected %v", i, path[i], expected[i])
		}
	}
}

func TestDefaultLevelPathLengths(t *testing.T) {
	c := Default()
	expected := map[int]int{1: 62, 2: 70, 3: 320}
	for n, length := range expected {
		if got := len(c.LevelByNumber(n).Path); got != length {
			t.Errorf("level %d path has %d cells, expected %d", n, got, length)
		}
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default catalog invalid: %v", err)
	}
	if !c.LevelByNumber(1).OnPath(4, 5) {
		t.Error("(4,5) should be on level 1 path")
	}
	if c.LevelByNumber(1).OnPath(5, 5) {
		t.Error("(5,5) should not be on level 1 path")
	}
}

func TestParseYAMLOverrides(t *testing.T) {
	doc := []byte(`
towers:
  - id: zapper
    name: Zapper
    cost: 10
    range: 50
    damage: 1
    rate: 2
levels:
  - level: 1
    name: Straight
    corners: [{x: 0, y: 0}, {x: 5, y: 0}]
waves:
  1: [troop]
`)
	c, err := ParseYAML(doc)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if _, ok := c.TowerByID("zapper"); !ok {
		t.Error("expected zapper tower")
	}
	if _, ok := c.TowerByID("turret"); ok {
		t.Error("tower section should replace defaults")
	}
	if _, ok := c.EnemyByID("troop"); !ok {
		t.Error("enemies should fall back to defaults")
	}
	if got := len(c.LevelByNumber(1).Path); got != 6 {
		t.Errorf("path length = %d, expected 6", got)
	}
	if c.FinalWave() != 1 {
		t.Errorf("FinalWave() = %d, expected 1", c.FinalWave())
	}
}

func TestParseYAMLRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero rate", "towers: [{id: a, name: A, cost: 1, range: 1, damage: 1, rate: 0}]"},
		{"short path", "levels: [{level: 1, name: X, path: [{x: 0, y: 0}]}]"},
		{"diagonal step", "levels: [{level: 1, name: X, path: [{x: 0, y: 0}, {x: 1, y: 1}]}]"},
		{"unknown enemy", "waves: {1: [ghost]}"},
		{"malformed", "towers: {"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tc.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte("waves: {1: [jet]}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if r := c.RosterForWave(1); len(r) != 1 || r[0] != "jet" {
		t.Errorf("roster = %v, expected [jet]", r)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnemiesSortedByID(t *testing.T) {
	enemies := Default().Enemies()
	if len(enemies) != len(DefaultEnemies()) {
		t.Fatalf("got %d enemies, expected %d", len(enemies), len(DefaultEnemies()))
	}
	for i := 1; i < len(enemies); i++ {
		if enemies[i-1].ID >= enemies[i].ID {
			t.Errorf("enemies not ordered: %q before %q", enemies[i-1].ID, enemies[i].ID)
		}
	}
}
