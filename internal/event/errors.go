package event

import "errors"

// Domain-specific errors for the event package.
var (
	ErrEventNotFound = errors.New("no matching event found")
	ErrMissingTitle  = errors.New("event title is required to find an event")
)
