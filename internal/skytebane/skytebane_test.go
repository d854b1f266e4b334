package skytebane

import (
	"testing"

	"github.com/mkleiven/stevnekart/internal/event"
)

func TestPlausibleCoords(t *testing.T) {
	tests := []struct {
		name      string
		lat, long float64
		want      bool
	}{
		{"oslo", 59.91, 10.75, true},
		{"tromsø", 69.65, 18.96, true},
		{"zero zero", 0, 0, false},
		{"zero longitude", 60.0, 0, false},
		{"latitude too low", 48.85, 2.35, false},
		{"latitude at lower bound", 50, 10, false},
		{"latitude above upper bound", 90, 10, false},
		{"longitude at west bound", 60, -180, false},
		{"longitude beyond east bound", 60, 181, false},
		{"negative longitude in range", 64.0, -21.9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlausibleCoords(tt.lat, tt.long); got != tt.want {
				t.Errorf("PlausibleCoords(%v, %v) = %v, want %v", tt.lat, tt.long, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	real := []*event.Event{{ID: "real-1", Name: "Feltstevne", Date: "2026-03-01"}}

	raw := []*Range{
		{ID: "BAD", Name: "Equator", Lat: 0, Long: 0},
		{ID: "ABC", Name: "Første", Lat: 59.9, Long: 10.7},
		{ID: "DEF", Name: "Andre", Lat: 60.1, Long: 11.2},
		{ID: "GHI", Name: "Med stevner", Lat: 61.0, Long: 9.5, Events: real},
	}

	ranges := Normalize(raw)
	if len(ranges) != 3 {
		t.Fatalf("Normalize kept %d records, want 3", len(ranges))
	}

	// ABC sits at normalized index 0 (even): synthetic events attached.
	if len(ranges[0].Events) == 0 {
		t.Errorf("range %q at even index got no synthetic events", ranges[0].ID)
	}
	// DEF sits at normalized index 1 (odd): the parity gate leaves it empty.
	if len(ranges[1].Events) != 0 {
		t.Errorf("range %q at odd index got %d events, want 0", ranges[1].ID, len(ranges[1].Events))
	}
	// Pre-populated events are kept untouched.
	if len(ranges[2].Events) != 1 || ranges[2].Events[0].ID != "real-1" {
		t.Errorf("range %q real events were replaced: %+v", ranges[2].ID, ranges[2].Events)
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Errorf("Normalize(nil) = %v, want empty", got)
	}
}

func TestFindByID(t *testing.T) {
	ranges := []*Range{{ID: "A"}, {ID: "B"}}
	if got := FindByID(ranges, "B"); got == nil || got.ID != "B" {
		t.Errorf("FindByID(B) = %v", got)
	}
	if got := FindByID(ranges, "missing"); got != nil {
		t.Errorf("FindByID(missing) = %v, want nil", got)
	}
}
