package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/window-quote/internal/leads"
	"github.com/wolfman30/window-quote/pkg/logging"
)

type mockEmailSender struct {
	sent    []EmailMessage
	callErr error
}

func (m *mockEmailSender) Send(_ context.Context, msg EmailMessage) error {
	if m.callErr != nil {
		return m.callErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func sampleLead() *leads.Lead {
	return &leads.Lead{
		ID:         "lead-1",
		SessionID:  "sess-1",
		Form:       "window-replacement",
		PostalCode: "60614",
		FirstName:  "Dana",
		LastName:   "<script>alert(1)</script>Reyes",
		Email:      "dana@example.com",
		Phone:      "3125550199",
		Answers:    map[string]string{"window_count": "6-10", "frame_material": "<b>vinyl</b>"},
		CreatedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewLeadNotifier_NilWhenUnconfigured(t *testing.T) {
	assert.Nil(t, NewLeadNotifier(nil, "sales@example.com", nil))
	assert.Nil(t, NewLeadNotifier(&mockEmailSender{}, "  ", nil))

	var n *LeadNotifier
	assert.NoError(t, n.NotifyNewLead(context.Background(), sampleLead()))
}

func TestLeadNotifier_NotifyNewLead(t *testing.T) {
	sender := &mockEmailSender{}
	n := NewLeadNotifier(sender, "sales@example.com", logging.Discard())

	require.NoError(t, n.NotifyNewLead(context.Background(), sampleLead()))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "sales@example.com", msg.To)
	assert.Equal(t, "New window quote request - Dana Reyes (60614)", msg.Subject)
	assert.Contains(t, msg.Body, "Phone: (312) 555-0199")
	assert.Contains(t, msg.Body, "Frame Material: vinyl")
	assert.Contains(t, msg.Body, "Window Count: 6-10")
	assert.NotContains(t, msg.HTML, "<script>")
	assert.NotContains(t, msg.HTML, "<b>vinyl</b>")
	assert.Contains(t, msg.HTML, "lead-1")
}

func TestLeadNotifier_SendError(t *testing.T) {
	n := NewLeadNotifier(&mockEmailSender{callErr: errors.New("smtp down")}, "sales@example.com", logging.Discard())
	err := n.NotifyNewLead(context.Background(), sampleLead())
	assert.ErrorContains(t, err, "smtp down")
}

func TestBuildLeadEmail_AnonymousLead(t *testing.T) {
	msg := BuildLeadEmail(&leads.Lead{ID: "x", PostalCode: "10001", Phone: "2125550100"})
	assert.Contains(t, msg.Subject, "A homeowner")
	assert.NotContains(t, msg.Body, "Email:")
	assert.Empty(t, msg.ReplyTo)
}

func TestBuildLeadEmail_ReplyToHomeowner(t *testing.T) {
	msg := BuildLeadEmail(sampleLead())
	assert.Equal(t, "dana@example.com", msg.ReplyTo)
	assert.Equal(t, "Dana Reyes", msg.ReplyToName)

	lead := sampleLead()
	lead.Email = "not-an-email"
	assert.Empty(t, BuildLeadEmail(lead).ReplyTo)
}
