// Package filter decides which stevner and which ranges are visible for a
// user-selected date interval.
//
// Both bounds are optional canonical YYYY-MM-DD strings as delivered by the
// calendar picker; the empty string means "no bound on this side". The
// start bound is inclusive from its start of day, the end bound is
// inclusive through its end of day, so a single-day interval matches events
// dated exactly on that day.
//
// Example:
//
//	f := &filter.Filter{From: "2026-01-01", To: ""}
//	visible := f.RangeVisible(r)
//	shown := f.Apply(r.Events)
package filter

import (
	"fmt"
	"strings"

	"github.com/mkleiven/stevnekart/internal/event"
	"github.com/mkleiven/stevnekart/internal/localdate"
	"github.com/mkleiven/stevnekart/internal/skytebane"
)

// Filter represents a date-interval selection. The zero value matches
// everything.
type Filter struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// New creates an empty filter that matches all stevner.
func New() *Filter {
	return &Filter{}
}

// IsEmpty reports whether no bound is set. An empty filter matches all
// stevner and makes every range visible.
func (f *Filter) IsEmpty() bool {
	return f.From == "" && f.To == ""
}

// Validate rejects bounds that are present but not parseable calendar
// dates. Matching itself stays tolerant of such bounds (see InRange); this
// is for surfaces that take the bounds as user input.
func (f *Filter) Validate() error {
	if f.From != "" && localdate.Parse(f.From).IsZero() {
		return fmt.Errorf("invalid from date: %q (want YYYY-MM-DD)", f.From)
	}
	if f.To != "" && localdate.Parse(f.To).IsZero() {
		return fmt.Errorf("invalid to date: %q (want YYYY-MM-DD)", f.To)
	}
	return nil
}

// InRange reports whether a stevne dated dateStr falls inside the interval.
//
// With no bounds set the answer is always true. Under an active filter an
// empty or unparseable event date never matches. A bound that is present
// but unparseable degrades to "unbounded" on that side.
func (f *Filter) InRange(dateStr string) bool {
	if f.IsEmpty() {
		return true
	}
	if dateStr == "" {
		return false
	}

	d := localdate.Parse(dateStr)
	if d.IsZero() {
		return false
	}

	if f.From != "" {
		if from := localdate.Parse(f.From); !from.IsZero() && d.Before(from) {
			return false
		}
	}
	if f.To != "" {
		// Inclusive through the end of the To day.
		if to := localdate.Parse(f.To); !to.IsZero() && d.After(to) {
			return false
		}
	}

	return true
}

// RangeVisible reports whether a range should keep its marker on the map.
// Every range is visible when no filter is active; otherwise at least one
// of its stevner must fall inside the interval.
func (f *Filter) RangeVisible(r *skytebane.Range) bool {
	if f.IsEmpty() {
		return true
	}
	for _, evt := range r.Events {
		if f.InRange(evt.Date) {
			return true
		}
	}
	return false
}

// Apply returns the stevner to show for a range, in original order. With no
// active filter the input is returned unchanged.
func (f *Filter) Apply(events []*event.Event) []*event.Event {
	if f.IsEmpty() {
		return events
	}

	var matched []*event.Event
	for _, evt := range events {
		if f.InRange(evt.Date) {
			matched = append(matched, evt)
		}
	}
	return matched
}

// String returns a human-readable description of the active bounds.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active date filter"
	}

	var parts []string
	if f.From != "" {
		parts = append(parts, fmt.Sprintf("From: %s", f.From))
	}
	if f.To != "" {
		parts = append(parts, fmt.Sprintf("To: %s", f.To))
	}
	return strings.Join(parts, " | ")
}

// Clone returns a copy of the filter.
func (f *Filter) Clone() *Filter {
	c := *f
	return &c
}
