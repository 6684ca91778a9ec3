package event

// Frequency is a canonical recurrence class. The engine recognizes exactly
// these four plus "no recurrence".
type Frequency string

const (
	FrequencyNone    Frequency = ""
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
)
