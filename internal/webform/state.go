package webform

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/wolfman30/window-quote/internal/quoteform"
)

// StateResponse is the JSON view of a session.
type StateResponse struct {
	SessionID    string                  `json:"session_id"`
	Form         string                  `json:"form"`
	Step         int                     `json:"step"`
	TotalSteps   int                     `json:"total_steps"`
	Progress     quoteform.Progress      `json:"progress"`
	Status       quoteform.Status        `json:"status"`
	Errors       map[string]string       `json:"errors,omitempty"`
	Confirmation *quoteform.Confirmation `json:"confirmation,omitempty"`
}

func newStateResponse(s *quoteform.Session) StateResponse {
	resp := StateResponse{
		SessionID:  s.ID(),
		Form:       s.Definition().Name(),
		Step:       s.CurrentStep(),
		TotalSteps: s.TotalSteps(),
		Progress:   s.Progress(),
		Status:     s.Status(),
	}
	if errs := s.Errors(); len(errs) > 0 {
		resp.Errors = make(map[string]string, len(errs))
		for id, kind := range errs {
			resp.Errors[id] = kind.Message()
		}
	}
	if c, ok := s.Confirmation(); ok {
		resp.Confirmation = &c
	}
	return resp
}

type errorResponse struct {
	Error string `json:"error"`
}

func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
