package event

import (
	"context"

	"calendar-assistant/internal/model"
)

// UseCase is the calendar event lifecycle engine. It turns an extracted
// intent into backend calls and always produces a final user-facing reply:
// failures are converted to text at this boundary, never propagated.
type UseCase interface {
	Handle(ctx context.Context, intent model.EventIntent) string
}
