package relay

import "errors"

// ErrUpstreamEmpty means the provider answered without any text to parse.
var ErrUpstreamEmpty = errors.New("AI returned empty response")

// MalformedPlanError means the provider's text was not a usable plan.
type MalformedPlanError struct {
	Err error
}

func (e *MalformedPlanError) Error() string {
	return "AI returned malformed itinerary JSON: " + e.Err.Error()
}

func (e *MalformedPlanError) Unwrap() error { return e.Err }
