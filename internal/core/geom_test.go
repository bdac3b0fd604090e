package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)
	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false},
		{5, 5, false},
		{1, 3, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%d,%d) = %v, expected %v", tc.x, tc.y, got, tc.want)
		}
	}
	if r.Right() != 6 || r.Bottom() != 5 {
		t.Errorf("edges = %d,%d", r.Right(), r.Bottom())
	}
}

func TestClampMinMax(t *testing.T) {
	if Clamp(-3, 0, 29) != 0 || Clamp(40, 0, 29) != 29 || Clamp(7, 0, 29) != 7 {
		t.Error("Clamp")
	}
	if Min(2, 3) != 2 || Max(2, 3) != 3 {
		t.Error("Min/Max")
	}
}

func TestActionString(t *testing.T) {
	if ActionPlace.String() != "Place" || Action(99).String() != "Unknown" {
		t.Error("Action.String")
	}
	f := NewInputFrame()
	f.Set(ActionPause)
	if !f.Has(ActionPause) || f.Has(ActionPlace) {
		t.Error("InputFrame.Has")
	}
	f.Clear()
	if f.Has(ActionPause) {
		t.Error("InputFrame.Clear")
	}
}
