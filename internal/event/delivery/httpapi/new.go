package httpapi

import (
	"github.com/gin-gonic/gin"

	"calendar-assistant/internal/event"
	"calendar-assistant/internal/extract"
	pkgLog "calendar-assistant/pkg/log"
)

// Handler is the interface for the assist HTTP delivery handler.
type Handler interface {
	HandleAssist(c *gin.Context)
}

// New creates a new assist delivery handler.
func New(l pkgLog.Logger, ex extract.Extractor, uc event.UseCase, rateLimitPerMin int) Handler {
	return &handler{
		l:       l,
		ex:      ex,
		uc:      uc,
		limiter: newRateLimiter(rateLimitPerMin),
	}
}
