package leads

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"
)

// EventTypeLeadCaptured tags lead events on the queue.
const EventTypeLeadCaptured = "quote.lead_captured.v1"

// LeadCapturedV1 is the queue payload announcing a stored lead.
type LeadCapturedV1 struct {
	EventID    string    `json:"event_id"`
	LeadID     string    `json:"lead_id"`
	SessionID  string    `json:"session_id"`
	Form       string    `json:"form"`
	PostalCode string    `json:"postal_code"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SQSSender is the slice of the SQS client the publisher needs.
type SQSSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher announces captured leads on an SQS queue.
type SQSPublisher struct {
	client   SQSSender
	queueURL string
	now      func() time.Time
}

// NewSQSPublisher creates a publisher for queueURL.
func NewSQSPublisher(client SQSSender, queueURL string) *SQSPublisher {
	if client == nil {
		panic("leads: SQS client cannot be nil")
	}
	if queueURL == "" {
		panic("leads: SQS queueURL cannot be empty")
	}
	return &SQSPublisher{
		client:   client,
		queueURL: queueURL,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// PublishLeadCaptured sends one LeadCapturedV1 message.
func (p *SQSPublisher) PublishLeadCaptured(ctx context.Context, lead *Lead) error {
	evt := LeadCapturedV1{
		EventID:    uuid.NewString(),
		LeadID:     lead.ID,
		SessionID:  lead.SessionID,
		Form:       lead.Form,
		PostalCode: lead.PostalCode,
		Email:      lead.Email,
		Phone:      lead.Phone,
		OccurredAt: p.now(),
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("leads: marshal event: %w", err)
	}
	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(EventTypeLeadCaptured),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("leads: failed to send SQS message: %w", err)
	}
	return nil
}
