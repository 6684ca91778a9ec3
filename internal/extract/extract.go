package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/gemini"
	pkgLog "calendar-assistant/pkg/log"
)

// ErrEmptyResponse is returned when the model produced no usable candidate.
var ErrEmptyResponse = errors.New("empty response from LLM")

// Generator is the slice of the Gemini client the extractor depends on.
type Generator interface {
	GenerateContent(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error)
}

// Extractor turns free-form user text into a structured calendar intent.
type Extractor interface {
	Extract(ctx context.Context, text string, now time.Time) (model.EventIntent, error)
}

type implExtractor struct {
	l   pkgLog.Logger
	llm Generator
}

// New creates the LLM-backed intent extractor.
func New(l pkgLog.Logger, llm Generator) Extractor {
	return &implExtractor{l: l, llm: llm}
}

// Extract sends the user text to Gemini and parses the returned intent JSON.
// The raw text is carried along on the intent for downstream fallbacks.
func (e *implExtractor) Extract(ctx context.Context, text string, now time.Time) (model.EventIntent, error) {
	prompt := gemini.BuildEventIntentPrompt(text, now.Format(time.RFC3339))

	req := gemini.GenerateRequest{
		Contents: []gemini.Content{
			{
				Parts: []gemini.Part{
					{Text: prompt},
				},
			},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.1, // deterministic JSON output
			MaxOutputTokens: 1024,
		},
	}

	resp, err := e.llm.GenerateContent(ctx, req)
	if err != nil {
		return model.EventIntent{}, fmt.Errorf("LLM request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return model.EventIntent{}, ErrEmptyResponse
	}

	responseText := resp.Candidates[0].Content.Parts[0].Text
	e.l.Debugf(ctx, "LLM raw response: %s", responseText)

	cleanedJSON := sanitizeJSONResponse(responseText)

	var intent model.EventIntent
	if err := json.Unmarshal([]byte(cleanedJSON), &intent); err != nil {
		e.l.Errorf(ctx, "Failed to parse LLM response. Raw=%q Cleaned=%q", responseText, cleanedJSON)
		return model.EventIntent{}, fmt.Errorf("failed to parse LLM JSON response: %w", err)
	}

	intent.RawText = text
	intent.Normalize()
	return intent, nil
}

// sanitizeJSONResponse removes markdown code fences and leading/trailing prose
// that LLMs often add around JSON output.
func sanitizeJSONResponse(text string) string {
	re := regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	matches := re.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// No code block: find first { and last }
	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return text
	}
	end := strings.LastIndexAny(text, "]}")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}
