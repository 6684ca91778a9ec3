package usecase

import (
	"strings"

	"github.com/teambition/rrule-go"

	"calendar-assistant/internal/event"
)

// frequencyVocabulary maps canonical tokens and common synonyms to their
// frequency, in classification order.
var frequencyVocabulary = []struct {
	freq   event.Frequency
	tokens []string
}{
	{event.FrequencyDaily, []string{"daily", "everyday", "every day", "each day"}},
	{event.FrequencyWeekly, []string{"weekly", "every week", "each week"}},
	{event.FrequencyMonthly, []string{"monthly", "every month", "each month"}},
	{event.FrequencyYearly, []string{"yearly", "annually", "annual", "every year", "each year"}},
}

// classifyRecurrence maps an explicit recurrence descriptor, or failing that
// the free-text description, to a canonical frequency. The explicit field
// always wins. Yearly is excluded from the free-text scan: "year" is too
// common a word to infer recurrence from.
func classifyRecurrence(explicit, description string) event.Frequency {
	if token := strings.ToLower(strings.TrimSpace(explicit)); token != "" {
		for _, entry := range frequencyVocabulary {
			for _, t := range entry.tokens {
				if token == t {
					return entry.freq
				}
			}
		}
		if freq, ok := parseRule(token); ok {
			return freq
		}
	}

	if desc := strings.ToLower(description); desc != "" {
		for _, entry := range frequencyVocabulary {
			if entry.freq == event.FrequencyYearly {
				continue
			}
			for _, t := range entry.tokens {
				if strings.Contains(desc, t) {
					return entry.freq
				}
			}
		}
	}

	return event.FrequencyNone
}

// parseRule accepts an already-canonical rule string such as "FREQ=WEEKLY"
// or a full "RRULE:FREQ=WEEKLY" line.
func parseRule(token string) (event.Frequency, bool) {
	s := strings.TrimPrefix(strings.ToUpper(token), "RRULE:")
	if !strings.Contains(s, "FREQ=") {
		return event.FrequencyNone, false
	}

	r, err := rrule.StrToRRule(s)
	if err != nil {
		return event.FrequencyNone, false
	}

	switch r.OrigOptions.Freq {
	case rrule.DAILY:
		return event.FrequencyDaily, true
	case rrule.WEEKLY:
		return event.FrequencyWeekly, true
	case rrule.MONTHLY:
		return event.FrequencyMonthly, true
	case rrule.YEARLY:
		return event.FrequencyYearly, true
	}
	return event.FrequencyNone, false
}

// ruleString renders the canonical rule line attached to event records.
func ruleString(freq event.Frequency) string {
	return "RRULE:FREQ=" + string(freq)
}
