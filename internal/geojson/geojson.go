// Package geojson builds the marker FeatureCollection the map front end
// renders. Only ranges visible under the active date filter become
// features; each feature carries the filtered stevner for its popup.
package geojson

import (
	"github.com/mkleiven/stevnekart/internal/event"
	"github.com/mkleiven/stevnekart/internal/filter"
	"github.com/mkleiven/stevnekart/internal/skytebane"
)

// FeatureCollection is a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

// Feature is a GeoJSON point feature for one range marker.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry holds the marker position. GeoJSON order is [longitude, latitude].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Properties carries what the popup needs.
type Properties struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Categories []string       `json:"categories,omitempty"`
	Stevner    []*event.Event `json:"stevner"`
}

// FromRanges builds the marker collection for the given filter. Ranges
// hidden by the filter are left out entirely; visible ranges carry only
// their matching stevner, in original order.
func FromRanges(ranges []*skytebane.Range, f *filter.Filter) *FeatureCollection {
	fc := &FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]*Feature, 0, len(ranges)),
	}

	for _, r := range ranges {
		if !f.RangeVisible(r) {
			continue
		}
		fc.Features = append(fc.Features, &Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{r.Long, r.Lat},
			},
			Properties: Properties{
				ID:         r.ID,
				Name:       r.Name,
				Categories: r.Categories,
				Stevner:    f.Apply(r.Events),
			},
		})
	}

	return fc
}
