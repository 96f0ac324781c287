package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/order-intake/internal/config"
	"github.com/Lixing-Zhang/order-intake/internal/email"
	"github.com/Lixing-Zhang/order-intake/internal/mailer"
	"github.com/Lixing-Zhang/order-intake/internal/metrics"
	"github.com/Lixing-Zhang/order-intake/internal/money"
	"github.com/Lixing-Zhang/order-intake/internal/order"
	"github.com/Lixing-Zhang/order-intake/internal/pricing"
)

var (
	ErrEmailNotConfigured = errors.New("email service not configured")
)

// ValidationError wraps a rejected payload
type ValidationError struct {
	Result order.Result
}

func (e *ValidationError) Error() string {
	return "invalid order: " + e.Result.Reason.Message()
}

// EmailConfigSource supplies the email settings for one submission
type EmailConfigSource interface {
	Email() (config.Email, error)
}

// Receipt describes an accepted order
type Receipt struct {
	Reference        string
	Totals           pricing.Totals
	ConfirmationSent bool
}

// OrderService validates orders, prices them and notifies merchant and customer
type OrderService struct {
	emailConfig EmailConfigSource
	newSender   mailer.Factory
	money       *money.Formatter
	metrics     *metrics.Metrics
	log         *slog.Logger
	now         func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	emailConfig EmailConfigSource,
	newSender mailer.Factory,
	formatter *money.Formatter,
	m *metrics.Metrics,
	log *slog.Logger,
) *OrderService {
	return &OrderService{
		emailConfig: emailConfig,
		newSender:   newSender,
		money:       formatter,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

// Submit processes one order document decoded from JSON.
//
// The merchant notification must be delivered for the order to be accepted.
// The customer confirmation is best effort: its failure is logged and the
// order is still accepted.
func (s *OrderService) Submit(ctx context.Context, raw any) (*Receipt, error) {
	payload, result := order.Validate(raw)
	if !result.OK() {
		s.metrics.ObserveSubmission(metrics.OutcomeInvalid)
		return nil, &ValidationError{Result: result}
	}

	totals := pricing.Compute(payload.Items, payload.TaxPercent)

	cfg, err := s.emailConfig.Email()
	if err != nil {
		s.metrics.ObserveSubmission(metrics.OutcomeFailed)
		return nil, fmt.Errorf("failed to load email configuration: %w", err)
	}
	if !cfg.Configured() {
		s.metrics.ObserveSubmission(metrics.OutcomeNotConfigured)
		return nil, ErrEmailNotConfigured
	}

	sender, err := s.newSender(cfg)
	if err != nil {
		s.metrics.ObserveSubmission(metrics.OutcomeFailed)
		return nil, fmt.Errorf("failed to create mail sender: %w", err)
	}

	sub := email.Submission{
		Reference:  uuid.New().String(),
		ReceivedAt: s.now(),
		Payload:    payload,
		Totals:     totals,
	}
	renderer := email.NewRenderer(s.money, email.Brand{
		Name:         cfg.BrandName,
		SupportEmail: cfg.SupportEmail,
		SupportPhone: cfg.SupportPhone,
	})

	log := s.log.With("reference", sub.Reference)

	merchantMsg := mailer.Message{
		From:    cfg.From,
		To:      cfg.To,
		ReplyTo: payload.Customer.Email,
		Subject: renderer.MerchantSubject(sub),
		Text:    renderer.MerchantText(sub),
		HTML:    renderer.MerchantHTML(sub),
	}
	err = sender.Send(ctx, merchantMsg)
	s.metrics.ObserveEmail(metrics.AudienceMerchant, err)
	if err != nil {
		s.metrics.ObserveSubmission(metrics.OutcomeFailed)
		return nil, fmt.Errorf("failed to send merchant notification: %w", err)
	}

	receipt := &Receipt{
		Reference: sub.Reference,
		Totals:    totals,
	}

	if cfg.SendCustomerConfirmation && payload.Customer.Email != "" {
		delivery := mailer.Attempt(ctx, sender, mailer.Message{
			From:    cfg.From,
			To:      payload.Customer.Email,
			ReplyTo: cfg.To,
			Subject: renderer.CustomerSubject(sub),
			Text:    renderer.CustomerText(sub),
			HTML:    renderer.CustomerHTML(sub),
		})
		s.metrics.ObserveEmail(metrics.AudienceCustomer, delivery.Err)

		if delivery.Delivered {
			receipt.ConfirmationSent = true
		} else {
			log.Warn("customer confirmation not delivered", "error", delivery.Err)
		}
	}

	s.metrics.ObserveSubmission(metrics.OutcomeAccepted)
	log.Info("order accepted",
		"items_count", len(payload.Items),
		"grand_total", s.money.Format(totals.GrandTotal),
		"confirmation_sent", receipt.ConfirmationSent,
	)

	return receipt, nil
}
