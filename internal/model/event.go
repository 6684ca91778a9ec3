package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all-day dates.
const DateLayout = "2006-01-02"

// EventTime is the start or end of a calendar event. It is a tagged variant:
// exactly one representation is populated. All-day values carry a bare Date
// (exclusive-end convention on the event level); timed values carry a
// zone-aware DateTime plus the IANA zone name.
type EventTime struct {
	Date     string    // YYYY-MM-DD, all-day representation
	DateTime time.Time // timed representation
	TimeZone string    // IANA zone, timed representation only
}

// NewAllDayTime builds the all-day representation from the date portion of t.
func NewAllDayTime(t time.Time) EventTime {
	return EventTime{Date: t.Format(DateLayout)}
}

// NewTimedTime builds the timed representation in the given IANA zone.
func NewTimedTime(t time.Time, zone string) EventTime {
	return EventTime{DateTime: t, TimeZone: zone}
}

// IsAllDay reports whether the all-day representation is populated.
func (e EventTime) IsAllDay() bool {
	return e.Date != ""
}

// IsZero reports whether neither representation is populated.
func (e EventTime) IsZero() bool {
	return e.Date == "" && e.DateTime.IsZero()
}

// In returns the instant in loc. All-day values resolve to midnight of the
// date in loc.
func (e EventTime) In(loc *time.Location) (time.Time, error) {
	if e.IsAllDay() {
		t, err := time.ParseInLocation(DateLayout, e.Date, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid all-day date %q: %w", e.Date, err)
		}
		return t, nil
	}
	if e.DateTime.IsZero() {
		return time.Time{}, fmt.Errorf("event time is empty")
	}
	return e.DateTime.In(loc), nil
}

// CalendarEvent is the canonical calendar record as the backend stores it.
// Start and End always use the same representation. Recurrence is empty or
// holds exactly one canonical rule string.
type CalendarEvent struct {
	ID          string
	Summary     string
	Location    string
	Description string
	Start       EventTime
	End         EventTime
	Recurrence  []string
	HTMLLink    string
}

// Environment names used across config and server wiring.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
