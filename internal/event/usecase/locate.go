package usecase

import (
	"context"
	"strings"

	"calendar-assistant/internal/event"
	"calendar-assistant/internal/event/repository"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/datemath"
)

// locateMaxResults caps the disambiguation listing.
const locateMaxResults = 250

// locate finds an existing event by title and optional approximate date
// inside the bounded future window. The listing keeps recurring series
// collapsed so a series is matched once by its master record. First match
// wins; there is no ranking among multiple matches.
func (uc *implUseCase) locate(ctx context.Context, title string, approx *datemath.Result) (model.CalendarEvent, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.CalendarEvent{}, event.ErrMissingTitle
	}

	now := uc.now()
	events, err := uc.backend.List(ctx, repository.ListOptions{
		TimeMin:      now,
		TimeMax:      now.AddDate(0, 0, uc.cfg.SearchWindowDays),
		MaxResults:   locateMaxResults,
		SingleEvents: false,
	})
	if err != nil {
		return model.CalendarEvent{}, err
	}

	for _, ev := range events {
		if !strings.EqualFold(strings.TrimSpace(ev.Summary), title) {
			continue
		}
		if approx != nil && !uc.matchesApprox(ev, *approx) {
			continue
		}
		return ev, nil
	}

	return model.CalendarEvent{}, event.ErrEventNotFound
}

// matchesApprox compares the candidate's own start against the approximate
// date, ignoring time-of-day unless the approximate value carries one.
func (uc *implUseCase) matchesApprox(ev model.CalendarEvent, approx datemath.Result) bool {
	loc := uc.dates.Location()

	start, err := ev.Start.In(loc)
	if err != nil {
		return false
	}

	want := approx.Time.In(loc)
	wy, wm, wd := want.Date()
	gy, gm, gd := start.Date()
	if wy != gy || wm != gm || wd != gd {
		return false
	}

	if approx.HasTime {
		if ev.Start.IsAllDay() {
			return false
		}
		if start.Hour() != want.Hour() || start.Minute() != want.Minute() || start.Second() != want.Second() {
			return false
		}
	}
	return true
}
