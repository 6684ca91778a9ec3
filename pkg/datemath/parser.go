package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser converts absolute and natural-language date-time strings into
// zone-aware time.Time values in a single configured IANA zone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string,
// e.g. "Asia/Kolkata".
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the configured zone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Result is a resolved instant plus whether the source expression carried a
// clock time. Date-only expressions resolve to midnight with HasTime false.
type Result struct {
	Time    time.Time
	HasTime bool
}

var absoluteLayouts = []struct {
	layout  string
	hasTime bool
	zoned   bool
}{
	{time.RFC3339, true, true},
	{"2006-01-02T15:04:05", true, false},
	{"2006-01-02T15:04", true, false},
	{"2006-01-02 15:04:05", true, false},
	{"2006-01-02 15:04", true, false},
	{"2006-01-02", false, false},
}

// Parse interprets expr as an absolute (ISO-8601 style) or relative
// ("tomorrow at 5pm", "next monday", "in 3 days") date-time expression.
// The baseTime is the reference point for relative expressions. The result
// is always in the parser's configured zone.
func (p *Parser) Parse(expr string, baseTime time.Time) (Result, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Result{}, fmt.Errorf("empty date expression")
	}

	if r, ok := p.parseAbsolute(expr); ok {
		return r, nil
	}

	lower := strings.ToLower(expr)

	// "<day expression> at <clock>"
	if idx := strings.LastIndex(lower, " at "); idx > 0 {
		dayPart := strings.TrimSpace(lower[:idx])
		clockPart := strings.TrimSpace(lower[idx+4:])
		if clock, ok := parseClock(clockPart); ok {
			if day, err := p.parseDayExpr(dayPart, baseTime); err == nil {
				return Result{Time: p.onDay(day, clock), HasTime: true}, nil
			}
		}
	}

	if day, err := p.parseDayExpr(lower, baseTime); err == nil {
		return Result{Time: day, HasTime: false}, nil
	}

	if r, ok := p.parseSubDayDuration(lower, baseTime); ok {
		return r, nil
	}

	if clock, ok := parseClock(lower); ok {
		return Result{Time: p.onDay(p.StartOfDay(baseTime), clock), HasTime: true}, nil
	}

	return Result{}, fmt.Errorf("unrecognized date expression %q", expr)
}

// parseAbsolute tries the fixed ISO-style layouts.
func (p *Parser) parseAbsolute(expr string) (Result, bool) {
	for _, l := range absoluteLayouts {
		var t time.Time
		var err error
		if l.zoned {
			t, err = time.Parse(l.layout, expr)
		} else {
			t, err = time.ParseInLocation(l.layout, expr, p.location)
		}
		if err == nil {
			return Result{Time: t.In(p.location), HasTime: l.hasTime}, true
		}
	}
	return Result{}, false
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var inDurationRe = regexp.MustCompile(`in (\d+) (day|days|week|weeks|month|months)`)

// parseDayExpr resolves a day-granular relative expression to midnight of
// the target day in the parser's zone.
func (p *Parser) parseDayExpr(expr string, baseTime time.Time) (time.Time, error) {
	switch expr {
	case "today", "tonight":
		return p.StartOfDay(baseTime), nil
	case "tomorrow":
		return p.StartOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "day after tomorrow":
		return p.StartOfDay(baseTime.AddDate(0, 0, 2)), nil
	case "yesterday":
		return p.StartOfDay(baseTime.AddDate(0, 0, -1)), nil
	case "next week":
		return p.StartOfDay(baseTime.AddDate(0, 0, 7)), nil
	case "next month":
		return p.StartOfDay(baseTime.AddDate(0, 1, 0)), nil
	case "next year":
		return p.StartOfDay(baseTime.AddDate(1, 0, 0)), nil
	}

	if day, ok := weekdays[strings.TrimPrefix(expr, "next ")]; ok {
		return p.nextWeekday(day, baseTime), nil
	}

	if m := inDurationRe.FindStringSubmatch(expr); len(m) == 3 {
		amount, _ := strconv.Atoi(m[1])
		switch {
		case strings.HasPrefix(m[2], "day"):
			return p.StartOfDay(baseTime.AddDate(0, 0, amount)), nil
		case strings.HasPrefix(m[2], "week"):
			return p.StartOfDay(baseTime.AddDate(0, 0, amount*7)), nil
		case strings.HasPrefix(m[2], "month"):
			return p.StartOfDay(baseTime.AddDate(0, amount, 0)), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized day expression %q", expr)
}

var subDayDurationRe = regexp.MustCompile(`in (\d+) (minute|minutes|hour|hours)`)

// parseSubDayDuration handles "in 30 minutes" and "in 2 hours", which keep
// the clock of the base time.
func (p *Parser) parseSubDayDuration(expr string, baseTime time.Time) (Result, bool) {
	m := subDayDurationRe.FindStringSubmatch(expr)
	if len(m) != 3 {
		return Result{}, false
	}
	amount, _ := strconv.Atoi(m[1])
	unit := time.Minute
	if strings.HasPrefix(m[2], "hour") {
		unit = time.Hour
	}
	return Result{
		Time:    baseTime.In(p.location).Add(time.Duration(amount) * unit),
		HasTime: true,
	}, true
}

// nextWeekday returns the next strictly-future occurrence of the weekday.
func (p *Parser) nextWeekday(target time.Weekday, baseTime time.Time) time.Time {
	daysUntil := int(target - baseTime.In(p.location).Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return p.StartOfDay(baseTime.AddDate(0, 0, daysUntil))
}

// StartOfDay returns midnight at the start of the given day in the parser's
// timezone.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// onDay places a clock time onto the calendar date of day.
func (p *Parser) onDay(day time.Time, c clock) time.Time {
	day = day.In(p.location)
	return time.Date(day.Year(), day.Month(), day.Day(), c.hour, c.minute, c.second, 0, p.location)
}

type clock struct {
	hour, minute, second int
}

var clockRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2})(?::(\d{2}))?)?\s*(am|pm)?$`)

// parseClock parses "5pm", "5:30 pm", "17:00", "17:00:30". A bare number
// without a meridiem is rejected so plain integers never read as times.
func parseClock(s string) (clock, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "at ")
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return clock{}, false
	}
	if m[2] == "" && m[4] == "" {
		return clock{}, false
	}

	c := clock{}
	c.hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		c.minute, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		c.second, _ = strconv.Atoi(m[3])
	}

	switch m[4] {
	case "pm":
		if c.hour < 1 || c.hour > 12 {
			return clock{}, false
		}
		if c.hour != 12 {
			c.hour += 12
		}
	case "am":
		if c.hour < 1 || c.hour > 12 {
			return clock{}, false
		}
		if c.hour == 12 {
			c.hour = 0
		}
	default:
		if c.hour > 23 {
			return clock{}, false
		}
	}
	if c.minute > 59 || c.second > 59 {
		return clock{}, false
	}
	return c, true
}
