package metrics

import "github.com/prometheus/client_golang/prometheus"

// QuoteMetrics exposes counters for the quote form service.
type QuoteMetrics struct {
	sessionsCreated    prometheus.Counter
	validationFailures *prometheus.CounterVec
	submissions        prometheus.Counter
	leadCaptures       *prometheus.CounterVec
	notifyFailures     prometheus.Counter
}

func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	m := &QuoteMetrics{
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windowquote",
			Subsystem: "form",
			Name:      "sessions_created_total",
			Help:      "Total quote form sessions started",
		}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "windowquote",
			Subsystem: "form",
			Name:      "validation_failures_total",
			Help:      "Field validation failures by error kind",
		}, []string{"kind"}),
		submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windowquote",
			Subsystem: "form",
			Name:      "submissions_total",
			Help:      "Total quote forms submitted",
		}),
		leadCaptures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "windowquote",
			Subsystem: "leads",
			Name:      "captures_total",
			Help:      "Lead captures after submission by outcome",
		}, []string{"status"}),
		notifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windowquote",
			Subsystem: "leads",
			Name:      "notify_failures_total",
			Help:      "New-lead notifications or events that failed to send",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsCreated, m.validationFailures, m.submissions, m.leadCaptures, m.notifyFailures)
	return m
}

func (m *QuoteMetrics) ObserveSessionCreated() {
	if m == nil {
		return
	}
	m.sessionsCreated.Inc()
}

// ObserveValidationFailure counts one failing field.
func (m *QuoteMetrics) ObserveValidationFailure(kind string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(kind).Inc()
}

func (m *QuoteMetrics) ObserveSubmission() {
	if m == nil {
		return
	}
	m.submissions.Inc()
}

func (m *QuoteMetrics) ObserveLeadCapture(ok bool) {
	if m == nil {
		return
	}
	status := "stored"
	if !ok {
		status = "failed"
	}
	m.leadCaptures.WithLabelValues(status).Inc()
}

func (m *QuoteMetrics) ObserveNotifyFailure() {
	if m == nil {
		return
	}
	m.notifyFailures.Inc()
}
