package webform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/window-quote/internal/leads"
	"github.com/wolfman30/window-quote/internal/observability/metrics"
	"github.com/wolfman30/window-quote/internal/quoteform"
	"github.com/wolfman30/window-quote/pkg/logging"
)

// DefaultBasePath is where the router mounts the quote form.
const DefaultBasePath = "/quote"

// LeadCapturer receives sessions once they are submitted.
type LeadCapturer interface {
	Capture(ctx context.Context, s *quoteform.Session) (*leads.Lead, error)
}

// Handler serves the quote form over HTTP.
type Handler struct {
	store    quoteform.Store
	renderer *Renderer
	intake   LeadCapturer
	metrics  *metrics.QuoteMetrics
	logger   *logging.Logger
	basePath string
}

// Option configures optional collaborators.
type Option func(*Handler)

func WithIntake(c LeadCapturer) Option { return func(h *Handler) { h.intake = c } }

func WithMetrics(m *metrics.QuoteMetrics) Option { return func(h *Handler) { h.metrics = m } }

// WithBasePath sets the mount point used in redirects and form actions.
func WithBasePath(p string) Option {
	return func(h *Handler) {
		if p = strings.TrimRight(strings.TrimSpace(p), "/"); p != "" {
			h.basePath = p
		}
	}
}

// NewHandler creates a quote form handler.
func NewHandler(store quoteform.Store, renderer *Renderer, logger *logging.Logger, opts ...Option) *Handler {
	if store == nil {
		panic("webform: session store required")
	}
	if renderer == nil {
		renderer = MustRenderer()
	}
	if logger == nil {
		logger = logging.Default()
	}
	h := &Handler{
		store:    store,
		renderer: renderer,
		logger:   logger,
		basePath: DefaultBasePath,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes mounts the form endpoints relative to the base path.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Start)
	r.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", h.Show)
		r.Get("/state", h.State)
		r.Post("/next", h.Next)
		r.Post("/back", h.Back)
		r.Post("/select", h.Select)
		r.Post("/submit", h.Submit)
		r.Post("/normalize", h.NormalizeInput)
		r.Post("/validate", h.ValidateInput)
	})
	return r
}

// Start handles GET /quote. Every page load gets a fresh session.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Create(r.Context())
	if err != nil {
		h.logger.Error("failed to create quote session", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "failed to start quote")
		return
	}
	h.metrics.ObserveSessionCreated()
	h.logger.Debug("quote session created", "session_id", s.ID())

	if wantsJSON(r) {
		writeJSON(w, http.StatusCreated, newStateResponse(s))
		return
	}
	http.Redirect(w, r, h.sessionPath(s.ID()), http.StatusSeeOther)
}

// Show handles GET /quote/{sessionID}.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	h.respond(w, r, s, http.StatusOK)
}

// State handles GET /quote/{sessionID}/state.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(s))
}

// Next handles POST /quote/{sessionID}/next: apply the posted values of the
// displayed step, then try to move forward.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	step, ok := h.postedStep(w, r, s)
	if !ok {
		return
	}
	err := applyStepValues(s, step, r.PostForm)
	if err == nil {
		err = s.Advance(step)
	}
	if errors.Is(err, quoteform.ErrFinalStep) {
		err = nil
	}
	h.finish(w, r, s, err)
}

// Back handles POST /quote/{sessionID}/back. The posted values of the
// displayed step are kept but not validated.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	step, ok := h.postedStep(w, r, s)
	if !ok {
		return
	}
	if postsStepValues(r.PostForm) {
		if err := applyStepValues(s, step, r.PostForm); err != nil {
			h.finish(w, r, s, err)
			return
		}
	}
	h.finish(w, r, s, s.Retreat(step))
}

// Select handles POST /quote/{sessionID}/select with group and value.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid form body")
		return
	}
	h.finish(w, r, s, s.SelectOption(r.FormValue("group"), r.FormValue("value")))
}

// Submit handles POST /quote/{sessionID}/submit.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	step, ok := h.postedStep(w, r, s)
	if !ok {
		return
	}
	if err := applyStepValues(s, step, r.PostForm); err != nil {
		h.finish(w, r, s, err)
		return
	}

	if _, err := s.Submit(); err != nil {
		h.finish(w, r, s, err)
		return
	}
	h.metrics.ObserveSubmission()
	if err := h.store.Save(r.Context(), s); err != nil {
		h.logger.Error("failed to save submitted session", "error", err, "session_id", s.ID())
		h.writeError(w, r, http.StatusInternalServerError, "failed to save quote")
		return
	}
	h.logger.Info("quote submitted", "session_id", s.ID(), "form", s.Definition().Name())

	if h.intake != nil {
		if _, err := h.intake.Capture(r.Context(), s); err != nil {
			h.logger.Warn("lead capture failed after submit", "error", err, "session_id", s.ID())
		}
	}
	h.respond(w, r, s, http.StatusOK)
}

type normalizeRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type normalizeResponse struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// NormalizeInput handles POST /quote/{sessionID}/normalize: a keystroke in
// the postal code or phone input. The stored value is returned.
func (h *Handler) NormalizeInput(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	var req normalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	value, err := s.SetField(req.Field, req.Value)
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	if err := h.store.Save(r.Context(), s); err != nil {
		h.logger.Error("failed to save quote session", "error", err, "session_id", s.ID())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save quote"})
		return
	}
	writeJSON(w, http.StatusOK, normalizeResponse{Field: req.Field, Value: value})
}

type validateRequest struct {
	Field string  `json:"field"`
	Value *string `json:"value,omitempty"`
}

type validateResponse struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ValidateInput handles POST /quote/{sessionID}/validate: an input losing
// focus. When value is sent it is stored first, then the field is checked
// on its own and the inline message returned.
func (h *Handler) ValidateInput(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Value != nil {
		if _, err := s.SetField(req.Field, *req.Value); err != nil {
			writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
			return
		}
	}
	kind, err := s.ValidateField(req.Field)
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	if err := h.store.Save(r.Context(), s); err != nil {
		h.logger.Error("failed to save quote session", "error", err, "session_id", s.ID())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save quote"})
		return
	}

	resp := validateResponse{Field: req.Field, Valid: kind == ""}
	if kind != "" {
		h.metrics.ObserveValidationFailure(string(kind))
		resp.Error = string(kind)
		resp.Message = kind.Message()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*quoteform.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	s, err := h.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, quoteform.ErrSessionNotFound) {
			h.writeError(w, r, http.StatusNotFound, "quote session not found")
			return nil, false
		}
		h.logger.Error("failed to load quote session", "error", err, "session_id", id)
		h.writeError(w, r, http.StatusInternalServerError, "failed to load quote")
		return nil, false
	}
	return s, true
}

func (h *Handler) postedStep(w http.ResponseWriter, r *http.Request, s *quoteform.Session) (int, bool) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid form body")
		return 0, false
	}
	raw := r.PostForm.Get("step")
	if raw == "" {
		return s.CurrentStep(), true
	}
	step, err := strconv.Atoi(raw)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid step")
		return 0, false
	}
	return step, true
}

// finish saves the session after an event and answers the request. A
// validation failure is saved too so the inline errors survive the reload.
func (h *Handler) finish(w http.ResponseWriter, r *http.Request, s *quoteform.Session, err error) {
	var verr *quoteform.ValidationError
	if err != nil && !errors.As(err, &verr) {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("quote event failed", "error", err, "session_id", s.ID())
		}
		h.writeError(w, r, status, err.Error())
		return
	}

	if verr != nil {
		for _, kind := range verr.Fields {
			h.metrics.ObserveValidationFailure(string(kind))
		}
	}
	if saveErr := h.store.Save(r.Context(), s); saveErr != nil {
		h.logger.Error("failed to save quote session", "error", saveErr, "session_id", s.ID())
		h.writeError(w, r, http.StatusInternalServerError, "failed to save quote")
		return
	}

	if verr != nil {
		h.respond(w, r, s, http.StatusUnprocessableEntity)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, newStateResponse(s))
		return
	}
	http.Redirect(w, r, h.sessionPath(s.ID()), http.StatusSeeOther)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, s *quoteform.Session, status int) {
	if wantsJSON(r) {
		writeJSON(w, status, newStateResponse(s))
		return
	}
	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, buildPageView(s, h.basePath)); err != nil {
		h.logger.Error("failed to render quote page", "error", err, "session_id", s.ID())
		http.Error(w, "failed to render quote", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) sessionPath(id string) string {
	return h.basePath + "/" + url.PathEscape(id)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if wantsJSON(r) {
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}
	http.Error(w, msg, status)
}

// applyStepValues copies the posted inputs of step onto the session. HTML
// forms omit unchecked checkboxes, so a missing checkbox means unchecked.
func applyStepValues(s *quoteform.Session, step int, form url.Values) error {
	if s.Submitted() {
		return quoteform.ErrSubmitted
	}
	if step != s.CurrentStep() {
		return quoteform.ErrStepMismatch
	}
	st, ok := s.Definition().Step(step)
	if !ok {
		return quoteform.ErrStepMismatch
	}
	for _, f := range st.Fields {
		var err error
		switch f.Kind {
		case quoteform.KindRadio:
			if v := form.Get(f.ID); v != "" {
				err = s.SelectOption(f.ID, v)
			}
		case quoteform.KindCheckbox:
			err = s.SetChecked(f.ID, form.Has(f.ID) && form.Get(f.ID) != "")
		default:
			if form.Has(f.ID) {
				_, err = s.SetField(f.ID, form.Get(f.ID))
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// postsStepValues reports whether the form carries inputs beyond the step
// number. A bare back request from a script must not clear checkboxes.
func postsStepValues(form url.Values) bool {
	for key := range form {
		if key != "step" {
			return true
		}
	}
	return false
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, quoteform.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, quoteform.ErrSubmitted),
		errors.Is(err, quoteform.ErrStepMismatch),
		errors.Is(err, quoteform.ErrNoPreviousStep),
		errors.Is(err, quoteform.ErrNotFinalStep):
		return http.StatusConflict
	case errors.Is(err, quoteform.ErrUnknownField),
		errors.Is(err, quoteform.ErrUnknownOption),
		errors.Is(err, quoteform.ErrWrongFieldKind):
		return http.StatusBadRequest
	case errors.Is(err, quoteform.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
