// Package localdate provides a calendar-date type and its canonical
// YYYY-MM-DD string codec.
//
// A Date carries only year, month and day in the observer's local calendar.
// There is deliberately no time-of-day and no timezone: encoding always uses
// the local components, never a UTC conversion, so a date picked by a user
// west of UTC does not shift back a day on the way through the codec.
//
// The zero Date is the invalid sentinel. Parse returns it for anything that
// is not three dash-separated, non-zero integers; callers treat that as
// "cannot filter on this value" rather than an error.
package localdate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date in the local calendar.
// The zero value is invalid and acts as the parse-failure sentinel.
type Date struct {
	Year  int
	Month int
	Day   int
}

// FromTime extracts the local calendar day from t, discarding time-of-day.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Today returns the current local calendar day.
func Today() Date {
	return FromTime(time.Now())
}

// Parse decodes a canonical "YYYY-MM-DD" string into a Date.
// All three components must be present, numeric and non-zero, otherwise the
// zero Date is returned. Out-of-range components (e.g. day 32) normalize
// through the local calendar the way time.Date does.
func Parse(s string) Date {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year == 0 {
		return Date{}
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month == 0 {
		return Date{}
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day == 0 {
		return Date{}
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	return FromTime(t)
}

// String encodes the date as zero-padded "YYYY-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether d is the invalid sentinel.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// AddDays returns the calendar day n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, time.Month(d.Month), d.Day+n, 0, 0, 0, 0, time.Local)
	return FromTime(t)
}

// Compare returns -1 if d is before o, 0 if equal, +1 if after.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// After reports whether d is strictly later than o.
// Comparing against an inclusive upper bound, "after" means past the end of
// that whole calendar day.
func (d Date) After(o Date) bool {
	return d.Compare(o) > 0
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
