// Package mailer delivers rendered emails through a configured transport.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/order-intake/internal/config"
)

var ErrUnknownProvider = errors.New("unknown mail provider")

// Message is a single outbound email
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers messages
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Factory builds a Sender for one request's email configuration
type Factory func(cfg config.Email) (Sender, error)

// NewSender picks the transport named by cfg.Provider
func NewSender(cfg config.Email) (Sender, error) {
	switch cfg.Provider {
	case config.ProviderSMTP, "":
		return NewSMTPSender(cfg), nil
	case config.ProviderResend:
		return NewResendSender(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

// Delivery is the outcome of a best-effort send
type Delivery struct {
	Delivered bool
	Err       error
}

// Attempt sends msg and reports the outcome instead of returning an error.
// Callers that must not fail on delivery problems inspect the Delivery.
func Attempt(ctx context.Context, s Sender, msg Message) Delivery {
	if err := s.Send(ctx, msg); err != nil {
		return Delivery{Err: err}
	}
	return Delivery{Delivered: true}
}
