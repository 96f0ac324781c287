package mailer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"

	"github.com/Lixing-Zhang/order-intake/internal/config"
)

// ImplicitTLSPort is the SMTPS port; any other port upgrades with STARTTLS
// when the relay offers it
const ImplicitTLSPort = 465

// SMTPSender sends messages through an authenticated SMTP relay.
// A new connection is dialed for every Send.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
}

// NewSMTPSender creates an SMTP sender from the request's email configuration
func NewSMTPSender(cfg config.Email) *SMTPSender {
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPass,
	}
}

// ImplicitTLS reports whether the connection is TLS from the first byte
func (s *SMTPSender) ImplicitTLS() bool {
	return s.port == ImplicitTLSPort
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.username),
		mail.WithPassword(s.password),
	}

	if s.ImplicitTLS() {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(s.tlsPolicy()))
	}

	return opts
}

// tlsPolicy is the STARTTLS policy for plain connections.
// Relays without STARTTLS still receive mail in clear text.
func (s *SMTPSender) tlsPolicy() mail.TLSPolicy {
	if s.ImplicitTLS() {
		return mail.NoTLS
	}
	return mail.TLSOpportunistic
}

// Send dials the relay and delivers msg as multipart text and HTML
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := buildMsg(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.host, s.clientOptions()...)
	if err != nil {
		return errors.Wrap(err, "failed to create smtp client")
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Wrapf(err, "failed to send email to %s", msg.To)
	}

	return nil
}

func buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()

	if err := m.From(msg.From); err != nil {
		return nil, errors.Wrapf(err, "invalid from address %q", msg.From)
	}
	if err := m.To(msg.To); err != nil {
		return nil, errors.Wrapf(err, "invalid to address %q", msg.To)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, errors.Wrapf(err, "invalid reply-to address %q", msg.ReplyTo)
		}
	}

	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	return m, nil
}
