package quoteform

import "errors"

var (
	// ErrStepMismatch is returned when a navigation call names a step that is not the one displayed.
	ErrStepMismatch = errors.New("quoteform: step is not the current step")

	// ErrNoPreviousStep is returned when retreating from the first step.
	ErrNoPreviousStep = errors.New("quoteform: no previous step")

	// ErrFinalStep is returned by Advance on the last step once it validates; use Submit instead.
	ErrFinalStep = errors.New("quoteform: final step must be submitted")

	// ErrNotFinalStep is returned when Submit is called before the last step is displayed.
	ErrNotFinalStep = errors.New("quoteform: submit is only allowed on the final step")

	// ErrSubmitted is returned for any mutation after the session was submitted.
	ErrSubmitted = errors.New("quoteform: session already submitted")

	// ErrUnknownField is returned for a field id the definition does not declare.
	ErrUnknownField = errors.New("quoteform: unknown field")

	// ErrUnknownOption is returned when a radio value is not one of the group's options.
	ErrUnknownOption = errors.New("quoteform: unknown option")

	// ErrWrongFieldKind is returned when an input event does not match the field kind.
	ErrWrongFieldKind = errors.New("quoteform: wrong field kind")

	// ErrValidation is wrapped by ValidationError.
	ErrValidation = errors.New("quoteform: validation failed")

	// ErrSessionNotFound is returned by stores for unknown or expired sessions.
	ErrSessionNotFound = errors.New("quoteform: session not found")

	// ErrInvalidDefinition is wrapped by definition construction errors.
	ErrInvalidDefinition = errors.New("quoteform: invalid definition")
)
