package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"calendar-assistant/internal/event/repository"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/datemath"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)    {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)    {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)   {}

// mockBackend serves canned events and records every mutation.
type mockBackend struct {
	events []model.CalendarEvent

	insertErr error
	getErr    error
	updateErr error
	deleteErr error
	listErr   error

	inserted   []model.CalendarEvent
	updatedID  string
	updated    *model.CalendarEvent
	deletedIDs []string
	listOpts   []repository.ListOptions
}

func (m *mockBackend) Insert(ctx context.Context, ev model.CalendarEvent) (model.CalendarEvent, error) {
	if m.insertErr != nil {
		return model.CalendarEvent{}, m.insertErr
	}
	ev.ID = fmt.Sprintf("evt-%d", len(m.inserted)+1)
	m.inserted = append(m.inserted, ev)
	return ev, nil
}

func (m *mockBackend) Get(ctx context.Context, id string) (model.CalendarEvent, error) {
	if m.getErr != nil {
		return model.CalendarEvent{}, m.getErr
	}
	for _, ev := range m.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return model.CalendarEvent{}, fmt.Errorf("mock backend: no event %q", id)
}

func (m *mockBackend) Update(ctx context.Context, id string, ev model.CalendarEvent) (model.CalendarEvent, error) {
	if m.updateErr != nil {
		return model.CalendarEvent{}, m.updateErr
	}
	ev.ID = id
	m.updatedID = id
	m.updated = &ev
	return ev, nil
}

func (m *mockBackend) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockBackend) List(ctx context.Context, opts repository.ListOptions) ([]model.CalendarEvent, error) {
	m.listOpts = append(m.listOpts, opts)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.events, nil
}

const testTimezone = "Asia/Kolkata"

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(testTimezone)
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

// fixedNow is Saturday, 15 March 2025, 10:00 IST.
func fixedNow(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2025, 3, 15, 10, 0, 0, 0, testLocation(t))
}

func newTestUseCase(t *testing.T, backend *mockBackend) *implUseCase {
	t.Helper()
	dates, err := datemath.NewParser(testTimezone)
	if err != nil {
		t.Fatalf("new parser: %v", err)
	}
	uc := New(&mockLogger{}, backend, dates, Config{Timezone: testTimezone})
	now := fixedNow(t)
	uc.now = func() time.Time { return now }
	return uc
}

func timedEvent(id, summary string, start, end time.Time) model.CalendarEvent {
	return model.CalendarEvent{
		ID:      id,
		Summary: summary,
		Start:   model.NewTimedTime(start, testTimezone),
		End:     model.NewTimedTime(end, testTimezone),
	}
}

func allDayEvent(id, summary, startDate, endDate string) model.CalendarEvent {
	return model.CalendarEvent{
		ID:      id,
		Summary: summary,
		Start:   model.EventTime{Date: startDate},
		End:     model.EventTime{Date: endDate},
	}
}
