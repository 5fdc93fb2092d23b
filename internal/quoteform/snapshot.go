package quoteform

import (
	"fmt"
	"time"
)

// Snapshot is the serialisable state of a session. The definition itself is
// not stored; the restoring side supplies it.
type Snapshot struct {
	ID           string            `json:"id"`
	Form         string            `json:"form"`
	CurrentStep  int               `json:"current_step"`
	Fields       map[string]string `json:"fields,omitempty"`
	Errors       FieldErrors       `json:"errors,omitempty"`
	Status       Status            `json:"status"`
	Confirmation *Confirmation     `json:"confirmation,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Snapshot captures the session for storage.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:          s.id,
		Form:        s.def.Name(),
		CurrentStep: s.current,
		Fields:      s.Values(),
		Errors:      s.Errors(),
		Status:      s.status,
		CreatedAt:   s.createdAt,
		UpdatedAt:   s.updatedAt,
	}
	if s.confirmation != nil {
		c := *s.confirmation
		snap.Confirmation = &c
	}
	return snap
}

// Restore rebuilds a session from a snapshot taken against def.
func Restore(def *Definition, snap Snapshot) (*Session, error) {
	if snap.Form != def.Name() {
		return nil, fmt.Errorf("quoteform: snapshot form %q does not match definition %q", snap.Form, def.Name())
	}
	if snap.CurrentStep < 1 || snap.CurrentStep > def.TotalSteps() {
		return nil, fmt.Errorf("quoteform: snapshot step %d out of range 1..%d", snap.CurrentStep, def.TotalSteps())
	}
	switch snap.Status {
	case StatusInProgress, StatusSubmitted:
	default:
		return nil, fmt.Errorf("quoteform: snapshot has unknown status %q", snap.Status)
	}

	s := NewSession(snap.ID, def)
	s.current = snap.CurrentStep
	s.status = snap.Status
	s.createdAt = snap.CreatedAt
	s.updatedAt = snap.UpdatedAt
	for id, v := range snap.Fields {
		if _, _, ok := def.Field(id); ok {
			s.fields[id] = v
		}
	}
	for id, kind := range snap.Errors {
		if _, _, ok := def.Field(id); ok {
			s.errors[id] = kind
		}
	}
	if snap.Confirmation != nil {
		c := *snap.Confirmation
		s.confirmation = &c
	}
	return s, nil
}
