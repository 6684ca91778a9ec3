package usecase

import (
	"strings"

	"calendar-assistant/internal/event"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/datemath"
)

// defaultSummary is used when the intent carries no title.
const defaultSummary = "Untitled Event"

// buildEvent assembles the canonical event body. Yearly recurrence forces
// the all-day representation: birthdays and anniversaries are modeled as
// all-day, overriding any time-of-day the resolver produced.
func (uc *implUseCase) buildEvent(intent model.EventIntent, start, end datemath.Result, freq event.Frequency) model.CalendarEvent {
	summary := strings.TrimSpace(intent.Title)
	if summary == "" {
		summary = defaultSummary
	}

	ev := model.CalendarEvent{
		Summary:     summary,
		Location:    intent.Location,
		Description: intent.Description,
	}

	if freq == event.FrequencyYearly {
		ev.Start = model.NewAllDayTime(start.Time)
		ev.End = model.NewAllDayTime(start.Time.AddDate(0, 0, 1))
		ev.Recurrence = []string{ruleString(event.FrequencyYearly)}
		return ev
	}

	ev.Start = model.NewTimedTime(start.Time, uc.cfg.Timezone)
	ev.End = model.NewTimedTime(end.Time, uc.cfg.Timezone)
	if freq != event.FrequencyNone {
		ev.Recurrence = []string{ruleString(freq)}
	}
	return ev
}
