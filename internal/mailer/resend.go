package mailer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"

	"github.com/Lixing-Zhang/order-intake/internal/config"
)

// ResendSender sends messages through the Resend HTTP API
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a Resend sender using the configured API key
func NewResendSender(cfg config.Email) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(cfg.ResendAPIKey),
	}
}

// Send delivers msg with both text and HTML bodies
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return errors.Wrapf(err, "failed to send email to %s", msg.To)
	}

	return nil
}
