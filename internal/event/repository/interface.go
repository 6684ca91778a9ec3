package repository

import (
	"context"
	"time"

	"calendar-assistant/internal/model"
)

// ListOptions bounds a backend listing. SingleEvents expands recurring
// series into individual occurrences; disambiguation search keeps it off so
// a series is matched once by its master record.
type ListOptions struct {
	TimeMin      time.Time
	TimeMax      time.Time
	MaxResults   int64
	SingleEvents bool
	OrderBy      string
}

// Backend is the external calendar service the engine reads and mutates
// through. The engine never caches records beyond a single request.
type Backend interface {
	Insert(ctx context.Context, ev model.CalendarEvent) (model.CalendarEvent, error)
	Get(ctx context.Context, id string) (model.CalendarEvent, error)
	Update(ctx context.Context, id string, ev model.CalendarEvent) (model.CalendarEvent, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]model.CalendarEvent, error)
}
