// Package calendar exports stevner as iCalendar entries.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkleiven/stevnekart/internal/event"
	"github.com/mkleiven/stevnekart/internal/localdate"
	"github.com/mkleiven/stevnekart/internal/skytebane"
)

// GenerateICS generates an iCalendar (.ics) document for a stevne at the
// given range. A stevne has a calendar date and no time-of-day, so it is
// exported as an all-day event.
func GenerateICS(r *skytebane.Range, evt *event.Event) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//stevnekart//stevnekart//NO\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s@stevnekart\r\n", evt.ID))

	now := time.Now().UTC()
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", now.Format("20060102T150405Z")))

	// All-day event: DTEND is the exclusive next day.
	day := localdate.Parse(evt.Date)
	if day.IsZero() {
		day = localdate.Today().AddDays(7)
	}
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(day)))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(day.AddDays(1))))

	summary := fmt.Sprintf("%s - %s", evt.Name, r.Name)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("%s hos %s", evt.Name, r.Name)
	if evt.MaxAttendees > 0 {
		description += fmt.Sprintf("\nPåmeldt: %d/%d", evt.Attendees, evt.MaxAttendees)
	}
	if evt.RsvpOpen {
		description += "\nPåmeldingen er åpen"
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(r.Name)))
	ics.WriteString(fmt.Sprintf("GEO:%f;%f\r\n", r.Lat, r.Long))

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// formatICSDate formats a calendar date as an iCalendar DATE value
func formatICSDate(d localdate.Date) string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// escapeICS escapes special characters according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
