package leads

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/window-quote/internal/observability/metrics"
	"github.com/wolfman30/window-quote/internal/quoteform"
	"github.com/wolfman30/window-quote/pkg/logging"
)

const (
	// SourceQuoteForm marks leads captured by the web quote form.
	SourceQuoteForm = "quote_form"
	// SourceTerminal marks leads entered through quote-cli.
	SourceTerminal = "terminal"
)

// Publisher announces stored leads to downstream consumers.
type Publisher interface {
	PublishLeadCaptured(ctx context.Context, lead *Lead) error
}

// Notifier tells the sales team about a new lead.
type Notifier interface {
	NotifyNewLead(ctx context.Context, lead *Lead) error
}

// Intake turns submitted quote sessions into stored leads.
type Intake struct {
	repo      Repository
	publisher Publisher
	notifier  Notifier
	metrics   *metrics.QuoteMetrics
	logger    *logging.Logger
	tracer    trace.Tracer
	source    string
}

// IntakeOption configures optional collaborators.
type IntakeOption func(*Intake)

func WithPublisher(p Publisher) IntakeOption { return func(i *Intake) { i.publisher = p } }

func WithNotifier(n Notifier) IntakeOption { return func(i *Intake) { i.notifier = n } }

func WithMetrics(m *metrics.QuoteMetrics) IntakeOption { return func(i *Intake) { i.metrics = m } }

// WithSource overrides the lead source label.
func WithSource(source string) IntakeOption {
	return func(i *Intake) {
		if s := strings.TrimSpace(source); s != "" {
			i.source = s
		}
	}
}

// NewIntake builds an intake storing into repo.
func NewIntake(repo Repository, logger *logging.Logger, opts ...IntakeOption) *Intake {
	if repo == nil {
		panic("leads: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	in := &Intake{
		repo:   repo,
		logger: logger,
		tracer: otel.Tracer("windowquote.internal.leads.intake"),
		source: SourceQuoteForm,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Capture stores the lead of a submitted session. Publishing and notifying
// are best effort: their failures are logged and counted, not returned.
func (in *Intake) Capture(ctx context.Context, s *quoteform.Session) (*Lead, error) {
	ctx, span := in.tracer.Start(ctx, "leads.capture")
	defer span.End()
	span.SetAttributes(attribute.String("quote.session_id", s.ID()))

	if !s.Submitted() {
		return nil, ErrNotSubmitted
	}

	req := RequestFromSession(s, in.source)
	lead, err := in.repo.Create(ctx, req)
	if err != nil {
		span.RecordError(err)
		in.metrics.ObserveLeadCapture(false)
		in.logger.Error("failed to store lead", "error", err, "session_id", s.ID())
		return nil, err
	}
	in.metrics.ObserveLeadCapture(true)
	in.logger.Info("lead captured", "id", lead.ID, "session_id", lead.SessionID, "postal_code", lead.PostalCode)

	if in.publisher != nil {
		if err := in.publisher.PublishLeadCaptured(ctx, lead); err != nil {
			span.RecordError(err)
			in.metrics.ObserveNotifyFailure()
			in.logger.Warn("failed to publish lead event", "error", err, "lead_id", lead.ID)
		}
	}
	if in.notifier != nil {
		if err := in.notifier.NotifyNewLead(ctx, lead); err != nil {
			span.RecordError(err)
			in.metrics.ObserveNotifyFailure()
			in.logger.Warn("failed to notify sales of lead", "error", err, "lead_id", lead.ID)
		}
	}
	return lead, nil
}

// RequestFromSession maps captured values onto lead columns. Fields that have
// no column of their own land in Answers.
func RequestFromSession(s *quoteform.Session, source string) *CreateLeadRequest {
	def := s.Definition()
	values := s.Values()
	req := &CreateLeadRequest{
		SessionID: s.ID(),
		Form:      def.Name(),
		Source:    source,
		Answers:   map[string]string{},
	}

	take := func(id string) string {
		v := strings.TrimSpace(values[id])
		delete(values, id)
		return v
	}
	if id := def.PostalCodeField(); id != "" {
		req.PostalCode = take(id)
	}
	if f, ok := def.FieldByFormat(quoteform.FormatEmail); ok {
		req.Email = take(f.ID)
	}
	if f, ok := def.FieldByFormat(quoteform.FormatPhone); ok {
		req.Phone = quoteform.PhoneDigits(take(f.ID))
	}
	req.FirstName = take(quoteform.FieldFirstName)
	req.LastName = take(quoteform.FieldLastName)
	for k, v := range values {
		req.Answers[k] = v
	}
	return req
}
