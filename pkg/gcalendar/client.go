package gcalendar

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Calendar API service behind a lazily acquired
// session. Zero-value sessions are unauthenticated until the first call.
type Client struct {
	credentialsPath string
	tokenPath       string

	mu  sync.Mutex
	svc *calendar.Service
}

// NewClient creates an unauthenticated Calendar client. The session is
// established on first use from the given credential and token file paths.
func NewClient(credentialsPath, tokenPath string) *Client {
	return &Client{
		credentialsPath: credentialsPath,
		tokenPath:       tokenPath,
	}
}

// NewClientFromHTTP creates an already-authenticated client from a
// pre-configured HTTP client. Used by tests.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ListQuery bounds an event listing. OrderBy "startTime" is only valid when
// SingleEvents is set, per the Calendar API.
type ListQuery struct {
	TimeMin      time.Time
	TimeMax      time.Time
	MaxResults   int64
	SingleEvents bool
	OrderBy      string
}

// InsertEvent creates a new event in the given calendar.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, body *calendar.Event) (*calendar.Event, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	created, err := svc.Events.Insert(orPrimary(calendarID), body).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return created, nil
}

// GetEvent fetches a single event by id.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*calendar.Event, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	ev, err := svc.Events.Get(orPrimary(calendarID), eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar event %q: %w", eventID, err)
	}
	return ev, nil
}

// UpdateEvent replaces the event body for the given id.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, body *calendar.Event) (*calendar.Event, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	updated, err := svc.Events.Update(orPrimary(calendarID), eventID, body).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update calendar event %q: %w", eventID, err)
	}
	return updated, nil
}

// DeleteEvent removes an event by id.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}
	if err := svc.Events.Delete(orPrimary(calendarID), eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event %q: %w", eventID, err)
	}
	return nil
}

// ListEvents returns the events within the query bounds.
func (c *Client) ListEvents(ctx context.Context, calendarID string, q ListQuery) ([]*calendar.Event, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	call := svc.Events.List(orPrimary(calendarID)).
		TimeMin(q.TimeMin.Format(time.RFC3339)).
		TimeMax(q.TimeMax.Format(time.RFC3339)).
		SingleEvents(q.SingleEvents).
		Context(ctx)
	if q.MaxResults > 0 {
		call = call.MaxResults(q.MaxResults)
	}
	if q.OrderBy != "" {
		call = call.OrderBy(q.OrderBy)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	return resp.Items, nil
}

func orPrimary(calendarID string) string {
	if calendarID == "" {
		return "primary"
	}
	return calendarID
}
