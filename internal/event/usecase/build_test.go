package usecase

import (
	"testing"
	"time"

	"calendar-assistant/internal/event"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/datemath"
)

func TestBuildEvent(t *testing.T) {
	uc := newTestUseCase(t, &mockBackend{})
	loc := testLocation(t)

	start := datemath.Result{Time: time.Date(2025, 7, 20, 18, 30, 0, 0, loc), HasTime: true}
	end := datemath.Result{Time: start.Time.Add(time.Hour), HasTime: true}

	t.Run("timed event carries the configured zone", func(t *testing.T) {
		ev := uc.buildEvent(model.EventIntent{Title: "Dinner", Location: "Bandra"}, start, end, event.FrequencyNone)

		if ev.Summary != "Dinner" || ev.Location != "Bandra" {
			t.Errorf("unexpected scalars: %+v", ev)
		}
		if ev.Start.IsAllDay() || ev.End.IsAllDay() {
			t.Fatal("expected timed representation")
		}
		if ev.Start.TimeZone != testTimezone || ev.End.TimeZone != testTimezone {
			t.Errorf("zone = %q/%q, want %q", ev.Start.TimeZone, ev.End.TimeZone, testTimezone)
		}
		if len(ev.Recurrence) != 0 {
			t.Errorf("unexpected recurrence %v", ev.Recurrence)
		}
	})

	t.Run("missing title gets the default summary", func(t *testing.T) {
		ev := uc.buildEvent(model.EventIntent{Title: "   "}, start, end, event.FrequencyNone)
		if ev.Summary != "Untitled Event" {
			t.Errorf("summary = %q", ev.Summary)
		}
	})

	t.Run("recurring timed event carries one rule", func(t *testing.T) {
		ev := uc.buildEvent(model.EventIntent{Title: "Standup"}, start, end, event.FrequencyWeekly)
		if len(ev.Recurrence) != 1 || ev.Recurrence[0] != "RRULE:FREQ=WEEKLY" {
			t.Errorf("recurrence = %v", ev.Recurrence)
		}
	})

	t.Run("yearly forces the all-day representation", func(t *testing.T) {
		ev := uc.buildEvent(model.EventIntent{Title: "Mom's birthday"}, start, end, event.FrequencyYearly)

		if !ev.Start.IsAllDay() || !ev.End.IsAllDay() {
			t.Fatal("expected all-day representation")
		}
		if ev.Start.Date != "2025-07-20" {
			t.Errorf("start date = %q", ev.Start.Date)
		}
		if ev.End.Date != "2025-07-21" {
			t.Errorf("end date = %q, want the exclusive next day", ev.End.Date)
		}
		if len(ev.Recurrence) != 1 || ev.Recurrence[0] != "RRULE:FREQ=YEARLY" {
			t.Errorf("recurrence = %v", ev.Recurrence)
		}
	})
}
