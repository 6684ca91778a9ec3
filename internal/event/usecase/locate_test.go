package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"calendar-assistant/internal/event"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/datemath"
)

func TestLocate(t *testing.T) {
	loc, _ := time.LoadLocation(testTimezone)

	syncMarch := timedEvent("sync-1", "Sync",
		time.Date(2025, 3, 20, 9, 0, 0, 0, loc), time.Date(2025, 3, 20, 9, 30, 0, 0, loc))
	syncApril := timedEvent("sync-2", "Sync",
		time.Date(2025, 4, 10, 9, 0, 0, 0, loc), time.Date(2025, 4, 10, 9, 30, 0, 0, loc))
	review := timedEvent("rev-1", "Quarterly Review",
		time.Date(2025, 3, 25, 14, 0, 0, 0, loc), time.Date(2025, 3, 25, 15, 0, 0, 0, loc))
	holi := allDayEvent("hol-1", "Holi", "2025-03-20", "2025-03-21")

	t.Run("empty title is rejected before any listing", func(t *testing.T) {
		backend := &mockBackend{}
		uc := newTestUseCase(t, backend)
		_, err := uc.locate(context.Background(), "   ", nil)
		if !errors.Is(err, event.ErrMissingTitle) {
			t.Fatalf("err = %v, want ErrMissingTitle", err)
		}
		if len(backend.listOpts) != 0 {
			t.Error("backend should not have been listed")
		}
	})

	t.Run("first title match wins without a date", func(t *testing.T) {
		backend := &mockBackend{events: []model.CalendarEvent{syncMarch, syncApril, review}}
		uc := newTestUseCase(t, backend)
		got, err := uc.locate(context.Background(), "sync", nil)
		if err != nil {
			t.Fatalf("locate: %v", err)
		}
		if got.ID != "sync-1" {
			t.Errorf("got %q, want the earliest listed match", got.ID)
		}
	})

	t.Run("approximate date narrows between same-title events", func(t *testing.T) {
		backend := &mockBackend{events: []model.CalendarEvent{syncMarch, syncApril, review}}
		uc := newTestUseCase(t, backend)
		approx := &datemath.Result{Time: time.Date(2025, 4, 10, 0, 0, 0, 0, loc)}
		got, err := uc.locate(context.Background(), "Sync", approx)
		if err != nil {
			t.Fatalf("locate: %v", err)
		}
		if got.ID != "sync-2" {
			t.Errorf("got %q, want sync-2", got.ID)
		}
	})

	t.Run("time-bearing approximate must match the clock", func(t *testing.T) {
		backend := &mockBackend{events: []model.CalendarEvent{syncMarch, syncApril}}
		uc := newTestUseCase(t, backend)
		approx := &datemath.Result{Time: time.Date(2025, 3, 20, 11, 0, 0, 0, loc), HasTime: true}
		_, err := uc.locate(context.Background(), "Sync", approx)
		if !errors.Is(err, event.ErrEventNotFound) {
			t.Fatalf("err = %v, want ErrEventNotFound", err)
		}
	})

	t.Run("time-bearing approximate never matches an all-day event", func(t *testing.T) {
		backend := &mockBackend{events: []model.CalendarEvent{holi}}
		uc := newTestUseCase(t, backend)
		approx := &datemath.Result{Time: time.Date(2025, 3, 20, 0, 0, 0, 0, loc), HasTime: true}
		_, err := uc.locate(context.Background(), "Holi", approx)
		if !errors.Is(err, event.ErrEventNotFound) {
			t.Fatalf("err = %v, want ErrEventNotFound", err)
		}
	})

	t.Run("date-only approximate matches an all-day event", func(t *testing.T) {
		backend := &mockBackend{events: []model.CalendarEvent{holi}}
		uc := newTestUseCase(t, backend)
		approx := &datemath.Result{Time: time.Date(2025, 3, 20, 0, 0, 0, 0, loc)}
		got, err := uc.locate(context.Background(), "holi", approx)
		if err != nil {
			t.Fatalf("locate: %v", err)
		}
		if got.ID != "hol-1" {
			t.Errorf("got %q", got.ID)
		}
	})

	t.Run("listing keeps recurring series collapsed", func(t *testing.T) {
		backend := &mockBackend{events: []model.CalendarEvent{syncMarch}}
		uc := newTestUseCase(t, backend)
		if _, err := uc.locate(context.Background(), "Sync", nil); err != nil {
			t.Fatalf("locate: %v", err)
		}

		if len(backend.listOpts) != 1 {
			t.Fatalf("expected one listing, got %d", len(backend.listOpts))
		}
		opts := backend.listOpts[0]
		if opts.SingleEvents {
			t.Error("disambiguation listing must not expand series")
		}
		now := fixedNow(t)
		if !opts.TimeMin.Equal(now) || !opts.TimeMax.Equal(now.AddDate(0, 0, 365)) {
			t.Errorf("window = %v..%v", opts.TimeMin, opts.TimeMax)
		}
	})

	t.Run("backend error is passed through", func(t *testing.T) {
		backend := &mockBackend{listErr: errors.New("boom")}
		uc := newTestUseCase(t, backend)
		_, err := uc.locate(context.Background(), "Sync", nil)
		if err == nil || errors.Is(err, event.ErrEventNotFound) {
			t.Fatalf("err = %v, want the backend error", err)
		}
	})
}
