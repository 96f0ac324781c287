package config

import (
	"fmt"
	"strings"
)

const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"

	DefaultSMTPPort = 587
)

// Email holds the mail transport and branding settings.
// It is read fresh for every order so that changes to the environment
// take effect without a restart.
type Email struct {
	Provider     string `koanf:"mail_provider" validate:"oneof=smtp resend"`
	SMTPHost     string `koanf:"smtp_host" validate:"required_if=Provider smtp"`
	SMTPPort     int    `koanf:"smtp_port"`
	SMTPUser     string `koanf:"smtp_user" validate:"required_if=Provider smtp"`
	SMTPPass     string `koanf:"smtp_pass" validate:"required_if=Provider smtp"`
	ResendAPIKey string `koanf:"resend_api_key" validate:"required_if=Provider resend"`
	To           string `koanf:"to_email" validate:"required"`
	From         string `koanf:"from_email" validate:"required_if=Provider resend"`

	BrandName    string `koanf:"brand_name"`
	SupportEmail string `koanf:"support_email"`
	SupportPhone string `koanf:"support_phone"`

	SendCustomerConfirmation bool `koanf:"send_customer_confirmation"`
}

// Configured reports whether every value the selected provider needs is present
func (e Email) Configured() bool {
	return validate.Struct(e) == nil
}

// LoadEmail reads the email settings from the environment and applies defaults:
// provider smtp, port 587, sender falls back to the SMTP username and
// customer confirmations are enabled.
func LoadEmail() (Email, error) {
	k, err := loadEnv()
	if err != nil {
		return Email{}, err
	}

	e := Email{
		Provider:                 ProviderSMTP,
		SMTPPort:                 DefaultSMTPPort,
		SendCustomerConfirmation: true,
	}

	if err := k.Unmarshal("", &e); err != nil {
		return Email{}, fmt.Errorf("failed to decode email configuration: %w", err)
	}

	e.Provider = strings.ToLower(e.Provider)
	if e.SMTPPort <= 0 {
		e.SMTPPort = DefaultSMTPPort
	}
	if e.From == "" {
		e.From = e.SMTPUser
	}

	return e, nil
}

// EnvEmailSource loads email settings from the environment on every call
type EnvEmailSource struct{}

// Email implements the service's configuration source
func (EnvEmailSource) Email() (Email, error) {
	return LoadEmail()
}
