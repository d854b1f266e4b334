package localdate

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     Date
		wantZero bool
	}{
		{
			name:  "canonical date",
			input: "2025-06-15",
			want:  Date{2025, 6, 15},
		},
		{
			name:  "unpadded components",
			input: "2025-6-5",
			want:  Date{2025, 6, 5},
		},
		{
			name:  "out of range day normalizes",
			input: "2025-01-32",
			want:  Date{2025, 2, 1},
		},
		{
			name:     "empty string",
			input:    "",
			wantZero: true,
		},
		{
			name:     "not a date",
			input:    "not-a-date",
			wantZero: true,
		},
		{
			name:     "missing day",
			input:    "2025-06",
			wantZero: true,
		},
		{
			name:     "too many components",
			input:    "2025-06-15-01",
			wantZero: true,
		},
		{
			name:     "zero month",
			input:    "2025-00-15",
			wantZero: true,
		},
		{
			name:     "zero day",
			input:    "2025-06-00",
			wantZero: true,
		},
		{
			name:     "trailing time component",
			input:    "2025-06-15T10:00",
			wantZero: true,
		},
		{
			name:     "empty component",
			input:    "2025--15",
			wantZero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if tt.wantZero {
				if !got.IsZero() {
					t.Errorf("Parse(%q) = %v, want zero sentinel", tt.input, got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		date Date
		want string
	}{
		{"padded month and day", Date{2025, 6, 5}, "2025-06-05"},
		{"double digit month and day", Date{2025, 12, 31}, "2025-12-31"},
		{"first of january", Date{2026, 1, 1}, "2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	dates := []Date{
		{2025, 1, 1},
		{2025, 6, 15},
		{2025, 12, 31},
		{2024, 2, 29},
		{1999, 10, 9},
	}

	for _, d := range dates {
		got := Parse(d.String())
		if got != d {
			t.Errorf("Parse(String(%v)) = %v, want identical date", d, got)
		}
	}
}

func TestRoundTripDiscardsTimeOfDay(t *testing.T) {
	// A late-evening local instant must encode to its own calendar day.
	late := time.Date(2025, 6, 15, 23, 45, 0, 0, time.Local)
	d := FromTime(late)
	if d != (Date{2025, 6, 15}) {
		t.Fatalf("FromTime(%v) = %v, want 2025-06-15", late, d)
	}
	if got := Parse(d.String()); got != d {
		t.Errorf("round trip = %v, want %v", got, d)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name string
		date Date
		days int
		want Date
	}{
		{"same month", Date{2025, 6, 10}, 5, Date{2025, 6, 15}},
		{"across month boundary", Date{2025, 6, 29}, 3, Date{2025, 7, 2}},
		{"across year boundary", Date{2025, 12, 30}, 3, Date{2026, 1, 2}},
		{"leap february", Date{2024, 2, 28}, 1, Date{2024, 2, 29}},
		{"negative days", Date{2025, 3, 1}, -1, Date{2025, 2, 28}},
		{"zero days", Date{2025, 6, 15}, 0, Date{2025, 6, 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.AddDays(tt.days); got != tt.want {
				t.Errorf("%v.AddDays(%d) = %v, want %v", tt.date, tt.days, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Date
		want int
	}{
		{"equal", Date{2025, 6, 15}, Date{2025, 6, 15}, 0},
		{"earlier day", Date{2025, 6, 14}, Date{2025, 6, 15}, -1},
		{"later day", Date{2025, 6, 16}, Date{2025, 6, 15}, 1},
		{"earlier month beats later day", Date{2025, 5, 31}, Date{2025, 6, 1}, -1},
		{"earlier year beats later month", Date{2024, 12, 31}, Date{2025, 1, 1}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := tt.a.Before(tt.b); got != (tt.want < 0) {
				t.Errorf("Before(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want < 0)
			}
			if got := tt.a.After(tt.b); got != (tt.want > 0) {
				t.Errorf("After(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want > 0)
			}
		})
	}
}
