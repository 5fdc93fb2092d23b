package notify

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/wolfman30/window-quote/internal/leads"
	"github.com/wolfman30/window-quote/internal/quoteform"
	"github.com/wolfman30/window-quote/pkg/logging"
)

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

// clean strips any markup a visitor typed into the form and returns plain
// text. Callers escape again for HTML output.
func clean(s string) string {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// LeadNotifier emails the sales inbox when a quote lead is captured.
type LeadNotifier struct {
	email     EmailSender
	recipient string
	logger    *logging.Logger
}

// NewLeadNotifier returns nil when no sender or recipient is configured,
// which the intake treats as "notifications off".
func NewLeadNotifier(email EmailSender, recipient string, logger *logging.Logger) *LeadNotifier {
	recipient = strings.TrimSpace(recipient)
	if email == nil || recipient == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadNotifier{email: email, recipient: recipient, logger: logger}
}

// NotifyNewLead implements leads.Notifier.
func (n *LeadNotifier) NotifyNewLead(ctx context.Context, lead *leads.Lead) error {
	if n == nil {
		return nil
	}
	msg := BuildLeadEmail(lead)
	msg.To = n.recipient
	if err := n.email.Send(ctx, msg); err != nil {
		n.logger.Error("notify: failed to send lead email", "error", err, "lead_id", lead.ID)
		return fmt.Errorf("notify: lead email: %w", err)
	}
	n.logger.Info("notify: lead email sent", "to", n.recipient, "lead_id", lead.ID)
	return nil
}

type leadRow struct {
	label string
	value string
}

// BuildLeadEmail renders the subject, text and HTML bodies for a lead.
func BuildLeadEmail(lead *leads.Lead) EmailMessage {
	name := clean(lead.FullName())
	if name == "" {
		name = "A homeowner"
	}
	postal := clean(lead.PostalCode)

	rows := []leadRow{
		{"Name", name},
		{"Zip code", postal},
		{"Email", clean(lead.Email)},
		{"Phone", quoteform.FormatPhoneInput(lead.Phone)},
	}
	keys := make([]string, 0, len(lead.Answers))
	for k := range lead.Answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, leadRow{answerLabel(k), clean(lead.Answers[k])})
	}

	var text, table strings.Builder
	fmt.Fprintf(&text, "%s requested a window replacement quote for zip code %s.\n\n", name, postal)
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		fmt.Fprintf(&text, "%s: %s\n", r.label, r.value)
		fmt.Fprintf(&table, `  <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;"><strong>%s:</strong></td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>`+"\n",
			html.EscapeString(r.label), html.EscapeString(r.value))
	}
	fmt.Fprintf(&text, "\nLead ID: %s\n", lead.ID)

	body := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2 style="color: #2563eb;">New Quote Request</h2>
<p><strong>%s</strong> requested a quote for zip code <strong>%s</strong>.</p>
<table style="border-collapse: collapse; margin: 20px 0;">
%s</table>
<p style="color: #6b7280; font-size: 12px; margin-top: 20px;">Lead ID: %s</p>
</div>`, html.EscapeString(name), html.EscapeString(postal), table.String(), html.EscapeString(lead.ID))

	msg := EmailMessage{
		Subject: fmt.Sprintf("New window quote request - %s (%s)", name, postal),
		Body:    text.String(),
		HTML:    body,
	}
	if email := strings.TrimSpace(lead.Email); quoteform.ValidEmail(email) {
		msg.ReplyTo = email
		msg.ReplyToName = clean(lead.FullName())
	}
	return msg
}

func answerLabel(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var _ leads.Notifier = (*LeadNotifier)(nil)
