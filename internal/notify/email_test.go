package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/wolfman30/window-quote/pkg/logging"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "",
		FromEmail: "test@example.com",
	}, nil)

	if sender != nil {
		t.Error("expected nil sender when API key is empty")
	}
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "test@example.com",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.fromName != defaultFromName {
		t.Errorf("expected default from name %q, got %q", defaultFromName, sender.fromName)
	}
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{}

	err := sender.Send(context.Background(), EmailMessage{
		To:      "recipient@example.com",
		Subject: "Test",
		Body:    "Test body",
	})
	if err == nil {
		t.Error("expected error when client is nil")
	}
}

type fakeSendGrid struct {
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (f *fakeSendGrid) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status}, nil
}

func TestSendGridSender_Send(t *testing.T) {
	client := &fakeSendGrid{status: 202}
	sender := &SendGridSender{client: client, fromEmail: "quotes@example.com", fromName: "Quotes", logger: logging.Discard()}

	if err := sender.Send(context.Background(), EmailMessage{To: "sales@example.com", Subject: "Hi", Body: "plain"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(client.sent))
	}
	if client.sent[0].Subject != "Hi" {
		t.Errorf("unexpected subject %q", client.sent[0].Subject)
	}
}

func TestSendGridSender_SendSetsReplyTo(t *testing.T) {
	client := &fakeSendGrid{status: 202}
	sender := &SendGridSender{client: client, fromEmail: "quotes@example.com", fromName: "Quotes", logger: logging.Discard()}

	msg := EmailMessage{To: "sales@example.com", Subject: "Lead", Body: "plain", ReplyTo: "dana@example.com", ReplyToName: "Dana Reyes"}
	if err := sender.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	replyTo := client.sent[0].ReplyTo
	if replyTo == nil || replyTo.Address != "dana@example.com" || replyTo.Name != "Dana Reyes" {
		t.Fatalf("unexpected reply-to %+v", replyTo)
	}

	if err := sender.Send(context.Background(), EmailMessage{To: "sales@example.com", Body: "plain"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.sent[1].ReplyTo != nil {
		t.Errorf("expected no reply-to, got %+v", client.sent[1].ReplyTo)
	}
}

func TestSendGridSender_Send_ErrorStatus(t *testing.T) {
	sender := &SendGridSender{client: &fakeSendGrid{status: 401}, logger: logging.Discard()}
	if err := sender.Send(context.Background(), EmailMessage{To: "a@b.co"}); err == nil {
		t.Fatal("expected error for 401 status")
	}

	sender.client = &fakeSendGrid{err: errors.New("dial tcp")}
	if err := sender.Send(context.Background(), EmailMessage{To: "a@b.co"}); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestStubEmailSender_Send(t *testing.T) {
	sender := NewStubEmailSender(nil)

	err := sender.Send(context.Background(), EmailMessage{
		To:      "recipient@example.com",
		Subject: "Test Subject",
		Body:    "Test body",
	})
	if err != nil {
		t.Errorf("stub sender should not return error, got: %v", err)
	}
}

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
}

func TestSESSender_Send(t *testing.T) {
	if NewSESSender(nil, SESConfig{}, nil) != nil {
		t.Fatal("expected nil sender without client")
	}

	client := &fakeSES{}
	sender := NewSESSender(client, SESConfig{FromEmail: "quotes@example.com"}, nil)
	err := sender.Send(context.Background(), EmailMessage{
		To:      "sales@example.com",
		Subject: "New lead",
		Body:    "text",
		HTML:    "<p>html</p>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := client.inputs[0]
	if got := aws.ToString(in.FromEmailAddress); got != "Window Quotes <quotes@example.com>" {
		t.Errorf("unexpected from %q", got)
	}
	if in.Destination.ToAddresses[0] != "sales@example.com" {
		t.Errorf("unexpected to %v", in.Destination.ToAddresses)
	}
	if aws.ToString(in.Content.Simple.Body.Html.Data) != "<p>html</p>" {
		t.Error("expected html body")
	}
	if aws.ToString(in.Content.Simple.Body.Text.Data) != "text" {
		t.Error("expected text body")
	}
	if len(in.ReplyToAddresses) != 0 {
		t.Errorf("expected no reply-to, got %v", in.ReplyToAddresses)
	}

	if err := sender.Send(context.Background(), EmailMessage{To: "sales@example.com", Body: "x", ReplyTo: "dana@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := client.inputs[1].ReplyToAddresses; len(got) != 1 || got[0] != "dana@example.com" {
		t.Errorf("unexpected reply-to %v", got)
	}
}

func TestSESSender_Send_Error(t *testing.T) {
	sender := NewSESSender(&fakeSES{err: errors.New("throttled")}, SESConfig{FromEmail: "q@example.com"}, nil)
	if err := sender.Send(context.Background(), EmailMessage{To: "a@b.co", Body: "x"}); err == nil {
		t.Fatal("expected error")
	}
}
