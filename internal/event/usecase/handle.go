package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"calendar-assistant/internal/event"
	"calendar-assistant/internal/event/repository"
	"calendar-assistant/internal/model"
)

// User-facing replies. Every path through the dispatcher ends in one of
// these; callers treat the returned string as final display text.
const (
	replyBackendFailure = "Something went wrong talking to the calendar service. Please try again."
	replyNoEvents       = "No upcoming events found."
	replyNotFoundFmt    = "I couldn't find an event matching %q. Please provide the event id or the exact title and date."
	replyNoReference    = "I need an event id, or a title and date, to know which event you mean."
	replyUnsupportedFmt = "Unsupported action %q: I can create, read, update or delete calendar events."
)

// Handle dispatches a single intent. All failures are converted to
// user-facing text here; nothing propagates to the caller.
func (uc *implUseCase) Handle(ctx context.Context, intent model.EventIntent) string {
	intent.Normalize()

	switch intent.Action {
	case model.ActionCreate:
		return uc.handleCreate(ctx, intent)
	case model.ActionRead:
		return uc.handleRead(ctx)
	case model.ActionUpdate:
		return uc.handleUpdate(ctx, intent)
	case model.ActionDelete:
		return uc.handleDelete(ctx, intent)
	default:
		return fmt.Sprintf(replyUnsupportedFmt, string(intent.Action))
	}
}

func (uc *implUseCase) handleCreate(ctx context.Context, intent model.EventIntent) string {
	now := uc.now()

	start := uc.resolveStart(ctx, intent.StartDateTime, intent.RawText, now)
	end := uc.resolveEnd(ctx, intent.EndDateTime, start)
	freq := classifyRecurrence(intent.Recurrence, intent.Description)

	body := uc.buildEvent(intent, start, end, freq)

	created, err := uc.backend.Insert(ctx, body)
	if err != nil {
		uc.l.Errorf(ctx, "create: backend insert failed for %q: %v", body.Summary, err)
		return replyBackendFailure
	}

	uc.l.Infof(ctx, "create: event %q created id=%s", created.Summary, created.ID)
	return fmt.Sprintf("Event created: %q, %s.", created.Summary, uc.formatWhen(created))
}

func (uc *implUseCase) handleRead(ctx context.Context) string {
	now := uc.now()

	events, err := uc.backend.List(ctx, repository.ListOptions{
		TimeMin:      now,
		TimeMax:      now.AddDate(0, 0, uc.cfg.SearchWindowDays),
		MaxResults:   uc.cfg.ListMaxResults,
		SingleEvents: true,
		OrderBy:      "startTime",
	})
	if err != nil {
		uc.l.Errorf(ctx, "read: backend list failed: %v", err)
		return replyBackendFailure
	}

	if len(events) == 0 {
		return replyNoEvents
	}

	var sb strings.Builder
	sb.WriteString("Upcoming events:\n")
	for _, ev := range events {
		sb.WriteString(fmt.Sprintf("\n- %s\n  When: %s\n", ev.Summary, uc.formatWhen(ev)))
		if ev.Location != "" {
			sb.WriteString(fmt.Sprintf("  Where: %s\n", ev.Location))
		}
	}
	return sb.String()
}

func (uc *implUseCase) handleUpdate(ctx context.Context, intent model.EventIntent) string {
	id, reply := uc.resolveReference(ctx, intent)
	if reply != "" {
		return reply
	}

	existing, err := uc.backend.Get(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "update: backend get %q failed: %v", id, err)
		return replyBackendFailure
	}

	merged := uc.merge(ctx, existing, intent)

	updated, err := uc.backend.Update(ctx, id, merged)
	if err != nil {
		uc.l.Errorf(ctx, "update: backend update %q failed: %v", id, err)
		return replyBackendFailure
	}

	uc.l.Infof(ctx, "update: event %q updated id=%s", updated.Summary, id)
	return fmt.Sprintf("Event updated: %q, now %s.", updated.Summary, uc.formatWhen(updated))
}

func (uc *implUseCase) handleDelete(ctx context.Context, intent model.EventIntent) string {
	id, reply := uc.resolveReference(ctx, intent)
	if reply != "" {
		return reply
	}

	if err := uc.backend.Delete(ctx, id); err != nil {
		uc.l.Errorf(ctx, "delete: backend delete %q failed: %v", id, err)
		return replyBackendFailure
	}

	uc.l.Infof(ctx, "delete: event id=%s deleted", id)
	title := strings.TrimSpace(intent.Title)
	if title == "" {
		return "Event deleted."
	}
	return fmt.Sprintf("Event deleted: %q.", title)
}

// resolveReference returns the event id to mutate, locating it by title and
// disambiguation date when no id was supplied. A non-empty reply means
// resolution failed and the reply is final.
func (uc *implUseCase) resolveReference(ctx context.Context, intent model.EventIntent) (string, string) {
	if intent.EventID != "" {
		return intent.EventID, ""
	}

	approx := uc.disambiguationDate(ctx, intent)

	found, err := uc.locate(ctx, intent.Title, approx)
	switch {
	case err == nil:
		return found.ID, ""
	case errors.Is(err, event.ErrMissingTitle):
		return "", replyNoReference
	case errors.Is(err, event.ErrEventNotFound):
		return "", fmt.Sprintf(replyNotFoundFmt, intent.Title)
	default:
		uc.l.Errorf(ctx, "locate: backend search failed: %v", err)
		return "", replyBackendFailure
	}
}
