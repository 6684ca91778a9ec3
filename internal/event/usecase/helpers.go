package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/datemath"
)

// disambiguationDate derives the approximate date used to narrow a locate:
// the old_start_date hint when present, else the date portion of the
// patch's new start, else none.
func (uc *implUseCase) disambiguationDate(ctx context.Context, intent model.EventIntent) *datemath.Result {
	now := uc.now()

	if intent.OldStartDate != "" {
		if r, err := uc.dates.Parse(intent.OldStartDate, now); err == nil {
			return &r
		}
		uc.l.Debugf(ctx, "locate: old_start_date %q unparseable, ignoring", intent.OldStartDate)
	}

	if intent.StartDateTime != "" {
		if r, err := uc.dates.Parse(intent.StartDateTime, now); err == nil {
			// Only the date portion narrows the search here: the time in a
			// patch is the new time, not the current one.
			r.Time = uc.dates.StartOfDay(r.Time)
			r.HasTime = false
			return &r
		}
	}

	return nil
}

// formatWhen renders an event's schedule for replies.
func (uc *implUseCase) formatWhen(ev model.CalendarEvent) string {
	var when string

	if ev.Start.IsAllDay() {
		when = fmt.Sprintf("all day on %s", ev.Start.Date)
	} else {
		loc := uc.dates.Location()
		start := ev.Start.DateTime.In(loc)
		when = start.Format("Mon, 02 Jan 2006 at 15:04")
		if !ev.End.IsZero() && !ev.End.IsAllDay() {
			end := ev.End.DateTime.In(loc)
			if sameDay(start, end) {
				when += end.Format(" to 15:04")
			} else {
				when += end.Format(" to Mon, 02 Jan 2006 15:04")
			}
		}
	}

	if note := recurrenceNote(ev.Recurrence); note != "" {
		when += " (" + note + ")"
	}
	return when
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// recurrenceNote renders a short human note for a canonical rule.
func recurrenceNote(rules []string) string {
	if len(rules) == 0 {
		return ""
	}
	rule := strings.ToUpper(rules[0])
	switch {
	case strings.Contains(rule, "FREQ=DAILY"):
		return "repeats daily"
	case strings.Contains(rule, "FREQ=WEEKLY"):
		return "repeats weekly"
	case strings.Contains(rule, "FREQ=MONTHLY"):
		return "repeats monthly"
	case strings.Contains(rule, "FREQ=YEARLY"):
		return "repeats yearly"
	}
	return ""
}
