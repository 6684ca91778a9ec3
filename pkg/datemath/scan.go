package datemath

import (
	"regexp"
	"strings"
	"time"
)

var (
	scanISORe = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}(?::\d{2})?(?:Z|[+-]\d{2}:\d{2})?)?\b`)

	scanRelativeRe = regexp.MustCompile(`\b(?:day after tomorrow|tomorrow|today|tonight|yesterday|` +
		`next (?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|week|month|year)|` +
		`in \d+ (?:days?|weeks?|months?))\b`)

	scanClockRe = regexp.MustCompile(`\b(?:\d{1,2}:\d{2}(?::\d{2})?\s*(?:am|pm)?|\d{1,2}\s*(?:am|pm))\b`)
)

// Scan searches free-form text for the first date and/or clock expression and
// resolves it against baseTime. It is the fallback stage for requests whose
// extracted date field was absent or unparseable.
func (p *Parser) Scan(text string, baseTime time.Time) (Result, bool) {
	var day time.Time
	haveDay := false

	if m := scanISORe.FindString(text); m != "" {
		if r, ok := p.parseAbsolute(m); ok {
			if r.HasTime {
				return r, true
			}
			day = r.Time
			haveDay = true
		}
	}

	lower := strings.ToLower(text)

	if !haveDay {
		if m := scanRelativeRe.FindString(lower); m != "" {
			if d, err := p.parseDayExpr(m, baseTime); err == nil {
				day = d
				haveDay = true
			}
		}
	}

	if m := scanClockRe.FindString(lower); m != "" {
		if c, ok := parseClock(m); ok {
			if !haveDay {
				day = p.StartOfDay(baseTime)
			}
			return Result{Time: p.onDay(day, c), HasTime: true}, true
		}
	}

	if haveDay {
		return Result{Time: day, HasTime: false}, true
	}
	return Result{}, false
}
