package session

import "errors"

var (
	// ErrSubmissionInFlight is returned when Submit is called while another
	// submission is loading. Attempts are not queued.
	ErrSubmissionInFlight = errors.New("a study plan request is already in progress")

	// ErrEmptyPlan indicates a well-formed response with no usable plan text.
	ErrEmptyPlan = errors.New("plan service returned an empty plan")
)
