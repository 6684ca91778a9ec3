package telegram

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"calendar-assistant/internal/event"
	"calendar-assistant/internal/extract"
	pkgLog "calendar-assistant/pkg/log"
	pkgResponse "calendar-assistant/pkg/response"
	pkgTelegram "calendar-assistant/pkg/telegram"
)

const (
	welcomeMessage = "👋 Welcome to *Calendar Assistant*!\n\nTell me about your schedule in plain language and I will manage your Google Calendar:\n• 📅 Create events\n• 📋 List what's coming up\n• ✏️ Move or rename events\n• 🗑 Cancel events\n\n_Example: \"dinner with Ravi tomorrow at 8pm\"_"
	helpMessage    = "*How to use:*\n\nJust describe what you want, for example:\n`schedule a team sync every Monday at 10am`\n`what's on my calendar?`\n`move the design review to next Friday`\n`cancel the dentist appointment`"
	failedMessage  = "Something went wrong while handling your request. Please try again."
	unclearMessage = "Sorry, I couldn't understand that request. Please try rephrasing."
)

type handler struct {
	l   pkgLog.Logger
	ex  extract.Extractor
	uc  event.UseCase
	bot *pkgTelegram.Bot
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine: Telegram expects a response within a few seconds,
// but the LLM plus Calendar round trip can take longer than that.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Snapshot the message before spawning goroutine to avoid data races on gin context
	msg := update.Message

	go func() {
		// Detach from HTTP request context (which gets cancelled after response)
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, failedMessage)
		}
	}()

	// Telegram acknowledged immediately
	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" {
		return nil
	}

	switch msg.Text {
	case "/start":
		return h.bot.SendMessageWithMode(msg.Chat.ID, welcomeMessage, "Markdown")
	case "/help":
		return h.bot.SendMessageWithMode(msg.Chat.ID, helpMessage, "Markdown")
	}

	intent, err := h.ex.Extract(ctx, msg.Text, time.Now())
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: extraction failed: %v", err)
		return h.bot.SendMessage(msg.Chat.ID, unclearMessage)
	}

	reply := h.uc.Handle(ctx, intent)
	return h.bot.SendMessage(msg.Chat.ID, reply)
}
