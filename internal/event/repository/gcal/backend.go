package gcal

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"calendar-assistant/internal/event/repository"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/gcalendar"
	pkgLog "calendar-assistant/pkg/log"
)

type implBackend struct {
	l          pkgLog.Logger
	client     *gcalendar.Client
	calendarID string
}

// New creates a Google Calendar backed repository.
func New(l pkgLog.Logger, client *gcalendar.Client, calendarID string) repository.Backend {
	return &implBackend{
		l:          l,
		client:     client,
		calendarID: calendarID,
	}
}

func (b *implBackend) Insert(ctx context.Context, ev model.CalendarEvent) (model.CalendarEvent, error) {
	created, err := b.client.InsertEvent(ctx, b.calendarID, toWire(ev))
	if err != nil {
		return model.CalendarEvent{}, err
	}
	return fromWire(created)
}

func (b *implBackend) Get(ctx context.Context, id string) (model.CalendarEvent, error) {
	ev, err := b.client.GetEvent(ctx, b.calendarID, id)
	if err != nil {
		return model.CalendarEvent{}, err
	}
	return fromWire(ev)
}

func (b *implBackend) Update(ctx context.Context, id string, ev model.CalendarEvent) (model.CalendarEvent, error) {
	updated, err := b.client.UpdateEvent(ctx, b.calendarID, id, toWire(ev))
	if err != nil {
		return model.CalendarEvent{}, err
	}
	return fromWire(updated)
}

func (b *implBackend) Delete(ctx context.Context, id string) error {
	return b.client.DeleteEvent(ctx, b.calendarID, id)
}

func (b *implBackend) List(ctx context.Context, opts repository.ListOptions) ([]model.CalendarEvent, error) {
	items, err := b.client.ListEvents(ctx, b.calendarID, gcalendar.ListQuery{
		TimeMin:      opts.TimeMin,
		TimeMax:      opts.TimeMax,
		MaxResults:   opts.MaxResults,
		SingleEvents: opts.SingleEvents,
		OrderBy:      opts.OrderBy,
	})
	if err != nil {
		return nil, err
	}

	events := make([]model.CalendarEvent, 0, len(items))
	for _, item := range items {
		ev, convErr := fromWire(item)
		if convErr != nil {
			b.l.Warnf(ctx, "gcal backend: skipping unreadable event %q: %v", item.Id, convErr)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// toWire converts the canonical record to the Calendar API shape.
func toWire(ev model.CalendarEvent) *calendar.Event {
	return &calendar.Event{
		Summary:     ev.Summary,
		Location:    ev.Location,
		Description: ev.Description,
		Start:       timeToWire(ev.Start),
		End:         timeToWire(ev.End),
		Recurrence:  ev.Recurrence,
	}
}

func timeToWire(t model.EventTime) *calendar.EventDateTime {
	if t.IsZero() {
		return nil
	}
	if t.IsAllDay() {
		return &calendar.EventDateTime{Date: t.Date}
	}
	return &calendar.EventDateTime{
		DateTime: t.DateTime.Format(time.RFC3339),
		TimeZone: t.TimeZone,
	}
}

// fromWire converts a Calendar API event to the canonical record.
func fromWire(ev *calendar.Event) (model.CalendarEvent, error) {
	start, err := timeFromWire(ev.Start)
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("event %q start: %w", ev.Id, err)
	}
	end, err := timeFromWire(ev.End)
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("event %q end: %w", ev.Id, err)
	}

	return model.CalendarEvent{
		ID:          ev.Id,
		Summary:     ev.Summary,
		Location:    ev.Location,
		Description: ev.Description,
		Start:       start,
		End:         end,
		Recurrence:  ev.Recurrence,
		HTMLLink:    ev.HtmlLink,
	}, nil
}

func timeFromWire(t *calendar.EventDateTime) (model.EventTime, error) {
	if t == nil {
		return model.EventTime{}, nil
	}
	if t.Date != "" {
		return model.EventTime{Date: t.Date}, nil
	}
	parsed, err := time.Parse(time.RFC3339, t.DateTime)
	if err != nil {
		return model.EventTime{}, fmt.Errorf("invalid dateTime %q: %w", t.DateTime, err)
	}
	return model.EventTime{DateTime: parsed, TimeZone: t.TimeZone}, nil
}
