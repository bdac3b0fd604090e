package main

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
)

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		arg    string
		id      string
		x, y    int
		wantErr bool
	}{
		{"turret@5,5", "turret", 5, 5, false},
		{"f22@ 8, 2", "f22", 8, 2, false},
		{"turret", "", 0, 0, true},
		{"@1,2", "", 0, 0, true},
		{"turret@1", "", 0, 0, true},
		{"turret@a,2", "", 0, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.arg, func(t *testing.T) {
			id, x, y, err := parsePlacement(tc.arg)
			if tc.wantErr {
				if err == nil {
					t.Errorf("parsePlacement(%q) should fail", tc.arg)
				}
				return
			}
			if err != nil || id != tc.id || x != tc.x || y != tc.y {
				t.Errorf("parsePlacement(%q) = %q, %d, %d, %v", tc.arg, id, x, y, err)
			}
		})
	}
}

func TestDescribeRoster(t *testing.T) {
	if got := describeRoster(nil); got != "no enemies" {
		t.Errorf("empty roster = %q", got)
	}
	got := describeRoster([]string{"troop", "troop", "jeep", "troop"})
	if got != "3x troop, 1x jeep" {
		t.Errorf("roster = %q", got)
	}
}

func TestRosterNote(t *testing.T) {
	if got := rosterNote(catalog.Default()); !strings.Contains(got, "through wave 20") {
		t.Errorf("rosterNote(default) = %q", got)
	}
	bare := catalog.New(catalog.DefaultTowers(), catalog.DefaultEnemies(), catalog.DefaultLevels(), nil)
	if got := rosterNote(bare); !strings.Contains(got, "No wave rosters") {
		t.Errorf("rosterNote(bare) = %q", got)
	}
}
