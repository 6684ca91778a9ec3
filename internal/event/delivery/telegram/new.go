package telegram

import (
	"github.com/gin-gonic/gin"

	"calendar-assistant/internal/event"
	"calendar-assistant/internal/extract"
	pkgLog "calendar-assistant/pkg/log"
	pkgTelegram "calendar-assistant/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, ex extract.Extractor, uc event.UseCase, bot *pkgTelegram.Bot) Handler {
	return &handler{
		l:   l,
		ex:  ex,
		uc:  uc,
		bot: bot,
	}
}
