package usecase

import (
	"context"
	"time"

	"calendar-assistant/pkg/datemath"
)

const (
	startFallbackOffset  = 5 * time.Minute
	defaultEventDuration = time.Hour
)

// resolveStart runs the ordered start resolution chain: the extracted
// candidate first, then a scan of the original request text, then now+5m.
// The result is always zone-aware in the configured zone; malformed input is
// never fatal, only imprecise.
func (uc *implUseCase) resolveStart(ctx context.Context, candidate, rawText string, now time.Time) datemath.Result {
	if candidate != "" {
		if r, err := uc.dates.Parse(candidate, now); err == nil {
			return r
		}
		uc.l.Debugf(ctx, "resolve: start candidate %q unparseable, scanning request text", candidate)
	}

	if r, ok := uc.dates.Scan(rawText, now); ok {
		return r
	}

	return datemath.Result{
		Time:    now.In(uc.dates.Location()).Add(startFallbackOffset),
		HasTime: true,
	}
}

// resolveEnd resolves the extracted end candidate relative to the resolved
// start, defaulting to one hour after it. The end never falls back to "now".
func (uc *implUseCase) resolveEnd(ctx context.Context, candidate string, start datemath.Result) datemath.Result {
	if candidate != "" {
		if r, err := uc.dates.Parse(candidate, start.Time); err == nil {
			return r
		}
		uc.l.Debugf(ctx, "resolve: end candidate %q unparseable, defaulting to start+1h", candidate)
	}

	return datemath.Result{
		Time:    start.Time.Add(defaultEventDuration),
		HasTime: start.HasTime,
	}
}
