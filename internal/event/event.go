package event

import (
	"crypto/sha1"
	"fmt"
)

// Event represents a stevne at a shooting range.
type Event struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Date         string `json:"date"` // canonical local YYYY-MM-DD, empty if unknown
	RsvpOpen     bool   `json:"rsvpOpen"`
	Attendees    int    `json:"attendees"`
	MaxAttendees int    `json:"maxAttendees"`
}

// GenerateID creates a deterministic ID for a scraped stevne based on the
// range it belongs to and the raw source line it was parsed from.
func GenerateID(baneID, raw string) string {
	h := sha1.New()
	h.Write([]byte(baneID + "|" + raw))
	return fmt.Sprintf("%x", h.Sum(nil))
}
