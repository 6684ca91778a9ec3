package usecase

import (
	"testing"

	"calendar-assistant/internal/event"
)

func TestClassifyRecurrence(t *testing.T) {
	tests := []struct {
		name        string
		explicit    string
		description string
		want        event.Frequency
	}{
		{"canonical token", "daily", "", event.FrequencyDaily},
		{"token is case-insensitive", "Weekly", "", event.FrequencyWeekly},
		{"token is trimmed", "  monthly  ", "", event.FrequencyMonthly},
		{"synonym annually", "annually", "", event.FrequencyYearly},
		{"synonym every day", "every day", "", event.FrequencyDaily},
		{"rrule line", "RRULE:FREQ=DAILY", "", event.FrequencyDaily},
		{"bare rule", "FREQ=MONTHLY", "", event.FrequencyMonthly},
		{"unknown token", "fortnightly", "", event.FrequencyNone},
		{"broken rule", "RRULE:FREQ=SOMETIMES", "", event.FrequencyNone},
		{"description mentions monthly", "", "pay the rent every month", event.FrequencyMonthly},
		{"description mentions weekly", "", "team sync each week at 10", event.FrequencyWeekly},
		{"description never infers yearly", "", "review goals every year", event.FrequencyNone},
		{"explicit wins over description", "daily", "pay the rent every month", event.FrequencyDaily},
		{"nothing recurring", "", "one-off dentist visit", event.FrequencyNone},
		{"empty input", "", "", event.FrequencyNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyRecurrence(tc.explicit, tc.description); got != tc.want {
				t.Errorf("classifyRecurrence(%q, %q) = %q, want %q", tc.explicit, tc.description, got, tc.want)
			}
		})
	}
}

func TestRuleString(t *testing.T) {
	if got := ruleString(event.FrequencyWeekly); got != "RRULE:FREQ=WEEKLY" {
		t.Errorf("got %q", got)
	}
	if got := ruleString(event.FrequencyYearly); got != "RRULE:FREQ=YEARLY" {
		t.Errorf("got %q", got)
	}
}
