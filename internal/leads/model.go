package leads

import (
	"strings"
	"time"
)

// Lead is a quote request captured from a submitted form session
type Lead struct {
	ID         string            `json:"id"`
	SessionID  string            `json:"session_id"`
	Form       string            `json:"form"`
	PostalCode string            `json:"postal_code"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Answers    map[string]string `json:"answers"`
	Source     string            `json:"source"`
	CreatedAt  time.Time         `json:"created_at"`
}

// FullName joins first and last name.
func (l *Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

// CreateLeadRequest carries the values of a submitted session
type CreateLeadRequest struct {
	SessionID  string
	Form       string
	PostalCode string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Answers    map[string]string
	Source     string
}

// Validate validates the create lead request
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.SessionID) == "" {
		return ErrMissingSession
	}
	if r.Email == "" && r.Phone == "" {
		return ErrMissingContact
	}
	return nil
}

// ListLeadsFilter narrows admin listings
type ListLeadsFilter struct {
	PostalCode string
	Limit      int
	Offset     int
}

func (r *CreateLeadRequest) toLead(id string, createdAt time.Time) *Lead {
	answers := make(map[string]string, len(r.Answers))
	for k, v := range r.Answers {
		answers[k] = v
	}
	return &Lead{
		ID:         id,
		SessionID:  r.SessionID,
		Form:       r.Form,
		PostalCode: r.PostalCode,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Answers:    answers,
		Source:     r.Source,
		CreatedAt:  createdAt,
	}
}
