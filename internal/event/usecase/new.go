package usecase

import (
	"time"

	"calendar-assistant/internal/event/repository"
	"calendar-assistant/pkg/datemath"
	pkgLog "calendar-assistant/pkg/log"
)

// Config tunes the engine. Zero values fall back to sensible defaults.
type Config struct {
	Timezone         string // IANA zone attached to every timed record
	SearchWindowDays int    // disambiguation and read window, default 365
	ListMaxResults   int64  // read listing cap, default 10
}

type implUseCase struct {
	l       pkgLog.Logger
	backend repository.Backend
	dates   *datemath.Parser
	cfg     Config

	// now is swappable for tests.
	now func() time.Time
}

// New creates the event lifecycle engine.
func New(l pkgLog.Logger, backend repository.Backend, dates *datemath.Parser, cfg Config) *implUseCase {
	if cfg.Timezone == "" {
		cfg.Timezone = dates.Location().String()
	}
	if cfg.SearchWindowDays <= 0 {
		cfg.SearchWindowDays = 365
	}
	if cfg.ListMaxResults <= 0 {
		cfg.ListMaxResults = 10
	}
	return &implUseCase{
		l:       l,
		backend: backend,
		dates:   dates,
		cfg:     cfg,
		now:     time.Now,
	}
}
