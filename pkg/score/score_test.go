package score

import (
	"testing"

	"github.com/gduarte0/program2mass/pkg/room"
)

func TestScore(t *testing.T) {
	s := New(nil)
	tests := []struct {
		name   string
		shared int
		a, b   room.Type
		want   float64
	}{
		// 50 base + 40 (kitchen prefers living) + 25 (living prefers kitchen) + 15 span
		{"kitchen living 500", 500, room.Kitchen, room.Living, 130},
		// 50 base - 30 (kitchen avoids bedroom) - 30 (bedroom avoids kitchen) + 15 span
		{"kitchen bedroom 500", 500, room.Kitchen, room.Bedroom, 5},
		// 30 base + 30 + 30 (both prefer bedroom) + 25 same type
		{"bedroom bedroom 300", 300, room.Bedroom, room.Bedroom, 115},
		// 35 base + 50 (bathroom prefers bedroom) + 30 (bedroom prefers bathroom)
		{"bathroom bedroom 350", 350, room.Bathroom, room.Bedroom, 115},
		// 25 base - 30 - 30 + 45 wet
		{"kitchen bathroom 250", 250, room.Kitchen, room.Bathroom, 10},
		// 20 base + 35 (utility prefers kitchen) + 45 wet
		{"utility kitchen 200", 200, room.Utility, room.Kitchen, 100},
		// 40 base + 15 span, default never earns the same-type bonus
		{"default default 400", 400, room.Default, room.Default, 55},
		// 30 base + 25 same type, office has no rules
		{"office office 300", 300, room.Office, room.Office, 55},
		// 39.9 base, just below span
		{"office living 399", 399, room.Office, room.Living, 39.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.shared, tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Score(%d, %s, %s) = %v, want %v", tt.shared, tt.a, tt.b, got, tt.want)
			}
			if back := s.Score(tt.shared, tt.b, tt.a); back != got {
				t.Errorf("Score is not symmetric: %v vs %v", got, back)
			}
		})
	}
}

func TestPreferredBeatsAvoided(t *testing.T) {
	s := New(nil)
	if s.Score(500, room.Kitchen, room.Living) <= s.Score(500, room.Kitchen, room.Bedroom) {
		t.Error("kitchen/living should beat kitchen/bedroom on the same wall")
	}
}

func TestSetWetTypes(t *testing.T) {
	s := New(nil)
	s.SetWetTypes([]room.Type{room.Office})
	// 30 base + 25 same, plus 45 wet now that office is wet
	if got := s.Score(300, room.Office, room.Office); got != 100 {
		t.Errorf("Score = %v, want 100", got)
	}
	if got := s.Score(250, room.Kitchen, room.Bathroom); got != -35 {
		t.Errorf("Score = %v, want -35 without the wet bonus", got)
	}
}

func TestConnection(t *testing.T) {
	s := New(nil)
	rooms := []room.Room{
		{Name: "Kitchen", Type: room.Kitchen, Dimensions: room.Dimensions{Length: 450, Width: 250}},
		{Name: "Living", Type: room.Living, Dimensions: room.Dimensions{Length: 500, Width: 400}},
		{Name: "Office", Type: room.Office, Dimensions: room.Dimensions{Length: 300, Width: 250}},
	}

	// Kitchen as 500x240: only the living room shares 500.
	v, n := s.Connection(room.Dimensions{Length: 500, Width: 240}, 0, rooms)
	if n != 1 || v != 130 {
		t.Errorf("Connection = %v, %d, want 130, 1", v, n)
	}

	// Kitchen as 400x300: living shares 400, office shares 300.
	// 400: 40 + 40 + 25 + 15 = 120. 300: 30.
	v, n = s.Connection(room.Dimensions{Length: 400, Width: 300}, 0, rooms)
	if n != 2 || v != 150 {
		t.Errorf("Connection = %v, %d, want 150, 2", v, n)
	}

	// The room's own walls never count.
	_, n = s.Connection(room.Dimensions{Length: 450, Width: 150}, 0, rooms)
	if n != 0 {
		t.Errorf("self matched: %d", n)
	}

	// A square candidate counts each matching room twice.
	v, n = s.Connection(room.Dimensions{Length: 250, Width: 250}, 1, rooms)
	// kitchen: 25 + 25 + 40 = 90 (kitchen prefers living, living prefers kitchen, no span)
	// office: 25 each
	if n != 4 || v != 2*90+2*25 {
		t.Errorf("square Connection = %v, %d, want %v, 4", v, n, 2*90+2*25)
	}
}
