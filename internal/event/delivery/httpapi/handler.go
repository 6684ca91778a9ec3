package httpapi

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"calendar-assistant/internal/event"
	"calendar-assistant/internal/extract"
	pkgLog "calendar-assistant/pkg/log"
	pkgResponse "calendar-assistant/pkg/response"
)

const replyNotUnderstood = "Sorry, I couldn't understand that request. Please try rephrasing."

var errEmptyText = errors.New("text is required")

type handler struct {
	l       pkgLog.Logger
	ex      extract.Extractor
	uc      event.UseCase
	limiter *rateLimiter
}

// AssistRequest is the assist endpoint request body.
type AssistRequest struct {
	Text string `json:"text" binding:"required"`
}

// AssistResponse is the assist endpoint response body.
type AssistResponse struct {
	RequestID string `json:"request_id"`
	Reply     string `json:"reply"`
}

// HandleAssist is the Gin handler for POST /api/v1/assist. It extracts a
// calendar intent from the request text and dispatches it. The reply is
// always user-facing text; processing failures never surface as HTTP errors.
func (h *handler) HandleAssist(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.limiter.Allow(c.ClientIP()); err != nil {
		h.l.Warnf(ctx, "assist: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	var req AssistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		pkgResponse.Error(c, err, nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		pkgResponse.Error(c, errEmptyText, nil)
		return
	}

	requestID := uuid.NewString()

	intent, err := h.ex.Extract(ctx, req.Text, time.Now())
	if err != nil {
		h.l.Errorf(ctx, "assist %s: extraction failed: %v", requestID, err)
		pkgResponse.OK(c, AssistResponse{RequestID: requestID, Reply: replyNotUnderstood})
		return
	}

	reply := h.uc.Handle(ctx, intent)
	h.l.Infof(ctx, "assist %s: action=%s handled", requestID, intent.Action)

	pkgResponse.OK(c, AssistResponse{RequestID: requestID, Reply: reply})
}
