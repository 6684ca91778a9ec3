package usecase

import (
	"context"
	"time"

	"calendar-assistant/internal/event"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/datemath"
)

// merge applies a partial update onto an existing event. Scalar fields
// replace the existing value only when present in the patch; absence means
// "leave unchanged". Date/time handling preserves whatever the patch did
// not specify, most notably the original time-of-day on date-only updates.
// Recurrence is replaced when the patch carries a recognized token and
// cleared otherwise.
func (uc *implUseCase) merge(ctx context.Context, existing model.CalendarEvent, patch model.EventIntent) model.CalendarEvent {
	merged := existing

	if patch.Title != "" {
		merged.Summary = patch.Title
	}
	if patch.Description != "" {
		merged.Description = patch.Description
	}
	if patch.Location != "" {
		merged.Location = patch.Location
	}

	if patch.StartDateTime != "" {
		if newStart, err := uc.dates.Parse(patch.StartDateTime, uc.now()); err == nil {
			uc.mergeTimes(&merged, existing, newStart, patch.EndDateTime)
		} else {
			uc.l.Debugf(ctx, "merge: new start %q unparseable, keeping existing times", patch.StartDateTime)
		}
	}

	if freq := classifyRecurrence(patch.Recurrence, ""); freq != event.FrequencyNone {
		merged.Recurrence = []string{ruleString(freq)}
	} else {
		merged.Recurrence = nil
	}

	return merged
}

// mergeTimes rewrites the start/end pair for a parsed new start.
func (uc *implUseCase) mergeTimes(merged *model.CalendarEvent, existing model.CalendarEvent, newStart datemath.Result, endCandidate string) {
	loc := uc.dates.Location()
	zone := uc.cfg.Timezone

	// All-day events only ever move by date.
	if existing.Start.IsAllDay() {
		merged.Start = model.NewAllDayTime(newStart.Time)
		if endCandidate != "" {
			if newEnd, err := uc.dates.Parse(endCandidate, newStart.Time); err == nil {
				merged.End = model.NewAllDayTime(newEnd.Time)
				return
			}
		}
		merged.End = model.NewAllDayTime(newStart.Time.AddDate(0, 0, 1))
		return
	}

	// Date-only update of a timed event: keep the original clocks, move the
	// calendar date.
	if !newStart.HasTime {
		day := newStart.Time.In(loc)

		origStart := existing.Start.DateTime.In(loc)
		start := time.Date(day.Year(), day.Month(), day.Day(),
			origStart.Hour(), origStart.Minute(), origStart.Second(), origStart.Nanosecond(), loc)
		merged.Start = model.NewTimedTime(start, zone)

		if !existing.End.IsZero() && !existing.End.IsAllDay() {
			origEnd := existing.End.DateTime.In(loc)
			end := time.Date(day.Year(), day.Month(), day.Day(),
				origEnd.Hour(), origEnd.Minute(), origEnd.Second(), origEnd.Nanosecond(), loc)
			merged.End = model.NewTimedTime(end, zone)
		} else {
			merged.End = model.NewTimedTime(start.Add(defaultEventDuration), zone)
		}
		return
	}

	// Full replacement: the patch carries a clock time.
	merged.Start = model.NewTimedTime(newStart.Time, zone)

	if endCandidate != "" {
		if newEnd, err := uc.dates.Parse(endCandidate, newStart.Time); err == nil {
			merged.End = model.NewTimedTime(newEnd.Time, zone)
			return
		}
	}

	duration := defaultEventDuration
	if !existing.Start.DateTime.IsZero() && !existing.End.IsZero() && !existing.End.IsAllDay() {
		if d := existing.End.DateTime.Sub(existing.Start.DateTime); d > 0 {
			duration = d
		}
	}
	merged.End = model.NewTimedTime(newStart.Time.Add(duration), zone)
}
