package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"calendar-assistant/internal/event/delivery/telegram"
	"calendar-assistant/internal/model"
	pkgTelegram "calendar-assistant/pkg/telegram"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type mockExtractor struct {
	intent model.EventIntent
	err    error
}

func (m *mockExtractor) Extract(ctx context.Context, text string, now time.Time) (model.EventIntent, error) {
	if m.err != nil {
		return model.EventIntent{}, m.err
	}
	intent := m.intent
	intent.RawText = text
	return intent, nil
}

type mockUseCase struct {
	reply string
}

func (m *mockUseCase) Handle(ctx context.Context, intent model.EventIntent) string {
	return m.reply
}

// sentMessages records sendMessage payloads hitting the fake Telegram server.
type sentMessages struct {
	mu    sync.Mutex
	texts []string
}

func (s *sentMessages) add(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
}

func (s *sentMessages) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

func newFixture(t *testing.T, ex *mockExtractor, uc *mockUseCase) (*gin.Engine, *sentMessages) {
	t.Helper()

	sent := &sentMessages{}
	tgServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/sendMessage") {
			var payload pkgTelegram.SendMessageRequest
			_ = json.NewDecoder(r.Body).Decode(&payload)
			sent.add(payload.Text)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(tgServer.Close)

	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(tgServer.URL)

	h := telegram.New(&mockLogger{}, ex, uc, bot)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook/telegram", h.HandleWebhook)
	return r, sent
}

func postUpdate(t *testing.T, r *gin.Engine, update pkgTelegram.Update) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(update)
	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func textUpdate(text string) pkgTelegram.Update {
	return pkgTelegram.Update{
		UpdateID: 1,
		Message: &pkgTelegram.Message{
			MessageID: 10,
			From:      &pkgTelegram.User{ID: 42, FirstName: "Asha"},
			Chat:      &pkgTelegram.Chat{ID: 42, Type: "private"},
			Text:      text,
		},
	}
}

// waitForMessages polls until n messages were sent or the deadline passes.
func waitForMessages(t *testing.T, sent *sentMessages, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if msgs := sent.all(); len(msgs) >= n {
			return msgs
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d messages, got %v", n, sent.all())
	return nil
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestHandleWebhook_InvalidJSON(t *testing.T) {
	r, _ := newFixture(t, &mockExtractor{}, &mockUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestHandleWebhook_NonMessageUpdate(t *testing.T) {
	r, sent := newFixture(t, &mockExtractor{}, &mockUseCase{})

	w := postUpdate(t, r, pkgTelegram.Update{UpdateID: 2})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	time.Sleep(50 * time.Millisecond)
	if msgs := sent.all(); len(msgs) != 0 {
		t.Errorf("unexpected messages %v", msgs)
	}
}

func TestHandleStart(t *testing.T) {
	r, sent := newFixture(t, &mockExtractor{}, &mockUseCase{})

	if w := postUpdate(t, r, textUpdate("/start")); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	msgs := waitForMessages(t, sent, 1)
	if !strings.Contains(msgs[0], "Calendar Assistant") {
		t.Errorf("unexpected welcome: %q", msgs[0])
	}
}

func TestHandleHelp(t *testing.T) {
	r, sent := newFixture(t, &mockExtractor{}, &mockUseCase{})

	if w := postUpdate(t, r, textUpdate("/help")); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	msgs := waitForMessages(t, sent, 1)
	if !strings.Contains(msgs[0], "How to use") {
		t.Errorf("unexpected help: %q", msgs[0])
	}
}

func TestHandleMessage_Success(t *testing.T) {
	ex := &mockExtractor{intent: model.EventIntent{Action: model.ActionCreate, Title: "Dinner"}}
	uc := &mockUseCase{reply: `Event created: "Dinner", Sat, 15 Mar 2025 at 20:00 to 21:00.`}
	r, sent := newFixture(t, ex, uc)

	w := postUpdate(t, r, textUpdate("dinner tonight at 8pm"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	msgs := waitForMessages(t, sent, 1)
	if msgs[0] != uc.reply {
		t.Errorf("sent %q, want the engine reply", msgs[0])
	}
}

func TestHandleMessage_ExtractionFailure(t *testing.T) {
	ex := &mockExtractor{err: context.DeadlineExceeded}
	r, sent := newFixture(t, ex, &mockUseCase{})

	w := postUpdate(t, r, textUpdate("???"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	msgs := waitForMessages(t, sent, 1)
	if !strings.Contains(msgs[0], "couldn't understand") {
		t.Errorf("sent %q", msgs[0])
	}
}
