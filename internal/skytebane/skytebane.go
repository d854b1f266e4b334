// Package skytebane provides the range record type and dataset
// normalization: coordinate plausibility filtering and synthetic-event
// attachment for ranges without real stevner.
package skytebane

import (
	"github.com/mkleiven/stevnekart/internal/event"
)

// Range represents a skytterlag with a fixed map position.
// JSON tags match the source dataset; note the longitude field is "long".
type Range struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Lat        float64        `json:"lat"`
	Long       float64        `json:"long"`
	Categories []string       `json:"categories,omitempty"`
	Events     []*event.Event `json:"events,omitempty"`
}

// PlausibleCoords reports whether a lat/long pair can belong to a range in
// the Norway region. Records failing this gate are dropped before they
// reach the filter or the map.
func PlausibleCoords(lat, long float64) bool {
	return lat > 50 && lat < 90 &&
		long > -180 && long < 180 &&
		lat != 0 && long != 0
}

// Normalize drops records with implausible coordinates and attaches
// synthetic stevner to every remaining record that has none. The generator
// position is the record's index in the normalized list.
//
// Records and their events are treated as immutable after this point.
func Normalize(raw []*Range) []*Range {
	ranges := make([]*Range, 0, len(raw))
	for _, r := range raw {
		if r == nil || !PlausibleCoords(r.Lat, r.Long) {
			continue
		}
		ranges = append(ranges, r)
	}

	for i, r := range ranges {
		if len(r.Events) == 0 {
			r.Events = event.Generate(r.ID, i)
		}
	}

	return ranges
}

// FindByID returns the range with the given identifier, or nil.
func FindByID(ranges []*Range, id string) *Range {
	for _, r := range ranges {
		if r.ID == id {
			return r
		}
	}
	return nil
}
