package model

// Action is the calendar operation requested by the user.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// EventIntent is the structured event description produced by the extraction
// adapter. Every field except Action is optional; an empty string means the
// user did not mention it. An intent lives for a single request only.
type EventIntent struct {
	Action        Action `json:"action"`
	EventID       string `json:"event_id"`
	Title         string `json:"title"`
	StartDateTime string `json:"start_datetime"` // absolute, relative or partial
	EndDateTime   string `json:"end_datetime"`
	Location      string `json:"location"`
	Description   string `json:"description"`
	Recurrence    string `json:"recurrence"` // free text or canonical token
	OldStartDate  string `json:"old_start_date"`

	// RawText is the original free-form request, carried alongside the
	// extracted fields so date resolution can fall back to it. Always set
	// from the incoming request text, never from model output.
	RawText string `json:"-"`
}

// Normalize fills contract defaults: a missing action means create.
func (i *EventIntent) Normalize() {
	if i.Action == "" {
		i.Action = ActionCreate
	}
}
