package leads

import "errors"

var (
	// ErrMissingSession is returned when a lead does not reference its form session
	ErrMissingSession = errors.New("session id is required")

	// ErrMissingContact is returned when both email and phone are missing
	ErrMissingContact = errors.New("either email or phone is required")

	// ErrNotSubmitted is returned when capturing a session that was not submitted
	ErrNotSubmitted = errors.New("quote session not submitted")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")
)
