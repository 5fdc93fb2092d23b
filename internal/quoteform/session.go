package quoteform

import (
	"fmt"
	"time"
)

const checkedValue = "true"

// Status is the lifecycle state of a session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
)

// Confirmation is rendered in place of the form after a successful submit.
type Confirmation struct {
	PostalCode string `json:"postal_code"`
	Heading    string `json:"heading"`
	Message    string `json:"message"`
	FollowUp   string `json:"follow_up,omitempty"`
}

// Session is one visitor's pass through the form. It is not safe for
// concurrent use; callers own a session for the duration of one event.
type Session struct {
	id           string
	def          *Definition
	current      int
	fields       map[string]string
	errors       FieldErrors
	status       Status
	confirmation *Confirmation
	createdAt    time.Time
	updatedAt    time.Time
	now          func() time.Time
}

// NewSession starts at step 1 with every field empty.
func NewSession(id string, def *Definition) *Session {
	now := time.Now().UTC()
	return &Session{
		id:        id,
		def:       def,
		current:   1,
		fields:    make(map[string]string),
		errors:    make(FieldErrors),
		status:    StatusInProgress,
		createdAt: now,
		updatedAt: now,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Session) ID() string { return s.id }
func (s *Session) Definition() *Definition { return s.def }
func (s *Session) CurrentStep() int { return s.current }
func (s *Session) TotalSteps() int { return s.def.TotalSteps() }
func (s *Session) Status() Status { return s.status }
func (s *Session) Submitted() bool { return s.status == StatusSubmitted }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) UpdatedAt() time.Time { return s.updatedAt }
func (s *Session) Progress() Progress { return ComputeProgress(s.current, s.def.TotalSteps()) }
func (s *Session) Value(id string) string { return s.fields[id] }
func (s *Session) Checked(id string) bool { return s.fields[id] == checkedValue }
func (s *Session) Selected(group string) string { return s.fields[group] }

// IsSelected reports whether value is the chosen option of group. At most one
// option per group is ever selected.
func (s *Session) IsSelected(group, value string) bool {
	v, ok := s.fields[group]
	return ok && v != "" && v == value
}

// Values returns a copy of all captured values.
func (s *Session) Values() map[string]string {
	out := make(map[string]string, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the recorded field errors.
func (s *Session) Errors() FieldErrors {
	out := make(FieldErrors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// FieldError returns the error recorded for a field by the last validation.
func (s *Session) FieldError(id string) (ErrorKind, bool) {
	kind, ok := s.errors[id]
	return kind, ok
}

// Confirmation is set once the session is submitted.
func (s *Session) Confirmation() (Confirmation, bool) {
	if s.confirmation == nil {
		return Confirmation{}, false
	}
	return *s.confirmation, true
}

// SetField records a typed value, normalising postal codes and phone numbers
// the way the input would as the user types. It returns the stored value.
func (s *Session) SetField(id, raw string) (string, error) {
	f, err := s.mutableField(id)
	if err != nil {
		return "", err
	}
	if f.Kind != KindText && f.Kind != KindNumber {
		return "", fmt.Errorf("%w: %s is %s", ErrWrongFieldKind, id, f.Kind)
	}
	value := Normalize(f.Format, raw)
	s.fields[id] = value
	s.touch()
	return value, nil
}

// SetChecked toggles a checkbox.
func (s *Session) SetChecked(id string, checked bool) error {
	f, err := s.mutableField(id)
	if err != nil {
		return err
	}
	if f.Kind != KindCheckbox {
		return fmt.Errorf("%w: %s is %s", ErrWrongFieldKind, id, f.Kind)
	}
	if checked {
		s.fields[id] = checkedValue
	} else {
		delete(s.fields, id)
	}
	s.touch()
	return nil
}

// SelectOption picks value in a radio group, replacing any earlier choice.
func (s *Session) SelectOption(group, value string) error {
	f, err := s.mutableField(group)
	if err != nil {
		return err
	}
	if f.Kind != KindRadio {
		return fmt.Errorf("%w: %s is %s", ErrWrongFieldKind, group, f.Kind)
	}
	if !f.HasOption(value) {
		return fmt.Errorf("%w: %s=%q", ErrUnknownOption, group, value)
	}
	s.fields[group] = value
	s.touch()
	return nil
}

// Validate checks every field of step and records the outcome for those
// fields only. It returns a *ValidationError when any field fails.
func (s *Session) Validate(step int) error {
	st, ok := s.def.Step(step)
	if !ok {
		return fmt.Errorf("%w: step %d out of range", ErrStepMismatch, step)
	}
	failed := make(FieldErrors)
	for _, f := range st.Fields {
		if kind := checkField(f, s.fields[f.ID]); kind != "" {
			failed[f.ID] = kind
			s.errors[f.ID] = kind
		} else {
			delete(s.errors, f.ID)
		}
	}
	if len(failed) > 0 {
		return &ValidationError{Step: step, Fields: failed}
	}
	return nil
}

// ValidateField re-checks a single field, as when an input loses focus.
func (s *Session) ValidateField(id string) (ErrorKind, error) {
	f, _, ok := s.def.Field(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	kind := checkField(f, s.fields[id])
	if kind != "" {
		s.errors[id] = kind
	} else {
		delete(s.errors, id)
	}
	return kind, nil
}

// Advance validates the displayed step and moves forward when it passes.
// Every forward move re-validates; nothing remembers earlier passes.
func (s *Session) Advance(step int) error {
	if err := s.checkNavigable(step); err != nil {
		return err
	}
	if err := s.Validate(step); err != nil {
		s.touch()
		return err
	}
	if step >= s.def.TotalSteps() {
		return ErrFinalStep
	}
	s.current = step + 1
	s.touch()
	return nil
}

// Retreat moves back one step without validating.
func (s *Session) Retreat(step int) error {
	if err := s.checkNavigable(step); err != nil {
		return err
	}
	if step <= 1 {
		return ErrNoPreviousStep
	}
	s.current = step - 1
	s.touch()
	return nil
}

// Submit validates the final step and, if it passes, ends the session with a
// confirmation echoing the captured postal code.
func (s *Session) Submit() (Confirmation, error) {
	if s.status == StatusSubmitted {
		return Confirmation{}, ErrSubmitted
	}
	total := s.def.TotalSteps()
	if s.current != total {
		return Confirmation{}, ErrNotFinalStep
	}
	if err := s.Validate(total); err != nil {
		s.touch()
		return Confirmation{}, err
	}

	text := s.def.Confirmation()
	postal := ""
	if id := s.def.PostalCodeField(); id != "" {
		postal = s.fields[id]
	}
	c := Confirmation{
		PostalCode: postal,
		Heading:    text.Heading,
		Message:    text.ReceivedFor(postal),
		FollowUp:   text.FollowUp,
	}
	s.confirmation = &c
	s.status = StatusSubmitted
	s.touch()
	return c, nil
}

func (s *Session) checkNavigable(step int) error {
	if s.status == StatusSubmitted {
		return ErrSubmitted
	}
	if step != s.current {
		return fmt.Errorf("%w: got %d, showing %d", ErrStepMismatch, step, s.current)
	}
	return nil
}

func (s *Session) mutableField(id string) (FieldDescriptor, error) {
	if s.status == StatusSubmitted {
		return FieldDescriptor{}, ErrSubmitted
	}
	f, _, ok := s.def.Field(id)
	if !ok {
		return FieldDescriptor{}, fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	return f, nil
}

func (s *Session) touch() {
	s.updatedAt = s.now()
}
