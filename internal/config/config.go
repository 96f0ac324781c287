package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/Lixing-Zhang/order-intake/internal/money"
)

var validate = validator.New()

// Config holds the process-wide configuration for the server.
// Following 12-factor app principles, all config is loaded from environment variables;
// a .env file in the working directory is loaded first when present.
type Config struct {
	Server   ServerConfig
	Currency CurrencyConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port               string `koanf:"port" validate:"required"`
	Host               string `koanf:"host"`
	ReadTimeout        int    `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout       int    `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout    int    `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`
}

// AllowedOrigins splits the comma separated CORS origin list
func (s ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(s.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

type CurrencyConfig struct {
	Code   string `koanf:"currency_code" validate:"required"`
	Symbol string `koanf:"currency_symbol"`
	Locale string `koanf:"currency_locale" validate:"required"`
}

// Money converts the settings for the money formatter
func (c CurrencyConfig) Money() money.Currency {
	return money.Currency{Code: c.Code, Symbol: c.Symbol, Locale: c.Locale}
}

type LogConfig struct {
	Level  string `koanf:"log_level" validate:"oneof=debug info warn error"`
	Format string `koanf:"log_format" validate:"oneof=json text"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	k, err := loadEnv()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               "8080",
			Host:               "0.0.0.0",
			ReadTimeout:        15,
			WriteTimeout:       30,
			ShutdownTimeout:    30,
			CORSAllowedOrigins: "*",
		},
		Currency: CurrencyConfig{
			Code:   money.DefaultCurrency.Code,
			Symbol: money.DefaultCurrency.Symbol,
			Locale: money.DefaultCurrency.Locale,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}

	for _, target := range []any{&cfg.Server, &cfg.Currency, &cfg.Log} {
		if err := k.Unmarshal("", target); err != nil {
			return nil, fmt.Errorf("failed to decode configuration: %w", err)
		}
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if _, err := money.NewFormatter(c.Currency.Money()); err != nil {
		return err
	}

	return nil
}

// loadEnv reads the process environment into a flat koanf instance.
// Keys are lowercased (SMTP_HOST -> smtp_host) and empty values are
// skipped so that they fall back to defaults.
func loadEnv() (*koanf.Koanf, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(key), strings.TrimSpace(value)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	return k, nil
}
