package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mkleiven/stevnekart/internal/event"
	"github.com/mkleiven/stevnekart/internal/filter"
	"github.com/mkleiven/stevnekart/internal/geojson"
	"github.com/mkleiven/stevnekart/internal/skytebane"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatGeoJSON OutputFormat = "geojson"
)

// BaneResult is one range in the listing
type BaneResult struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Lat        float64        `json:"lat"`
	Long       float64        `json:"long"`
	Categories []string       `json:"categories,omitempty"`
	Visible    bool           `json:"visible"`
	Stevner    []*event.Event `json:"stevner"`
}

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt    time.Time     `json:"checked_at"`
	Filter       string        `json:"filter"`
	VisibleCount int           `json:"visible_count"`
	Baner        []*BaneResult `json:"baner"`

	// kept for the geojson writer
	ranges     []*skytebane.Range
	dateFilter *filter.Filter
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatGeoJSON:
		return writeGeoJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the full listing as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeGeoJSON outputs the visible ranges as map markers
func writeGeoJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(geojson.FromRanges(result.ranges, result.dateFilter))
}

// writeText outputs a human-readable listing
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	fmt.Fprintf(w, "%s\n", result.Filter)
	fmt.Fprintf(w, "%d skytebaner, %d synlige\n\n", len(result.Baner), result.VisibleCount)

	for _, b := range result.Baner {
		if !b.Visible {
			if verbose {
				fmt.Fprintf(w, "  (skjult) %s (%s)\n", b.Name, b.ID)
			}
			continue
		}

		fmt.Fprintf(w, "%s (%s)  %.4f,%.4f\n", b.Name, b.ID, b.Lat, b.Long)
		if len(b.Stevner) == 0 {
			fmt.Fprintf(w, "    ingen stevner\n")
		}
		for _, evt := range b.Stevner {
			fmt.Fprintf(w, "    %s  %-16s %s\n", evt.Date, evt.Name, rsvpText(evt))
		}
		fmt.Fprintln(w)
	}

	return nil
}

func rsvpText(evt *event.Event) string {
	if evt.MaxAttendees == 0 {
		if evt.RsvpOpen {
			return "[påmelding åpen]"
		}
		return ""
	}
	if evt.RsvpOpen {
		return fmt.Sprintf("[påmelding åpen, %d/%d]", evt.Attendees, evt.MaxAttendees)
	}
	return fmt.Sprintf("[stengt, %d/%d]", evt.Attendees, evt.MaxAttendees)
}
