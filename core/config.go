package core

import (
	"strings"
	"time"
)

const DefaultTimeout = 30 * time.Second

type Config struct {
	APIKey        string        `koanf:"api_key" mapstructure:"api_key"`
	APISecret     string        `koanf:"api_secret" mapstructure:"api_secret"`
	WebhookSecret string        `koanf:"webhook_secret" mapstructure:"webhook_secret"`
	Sandbox       bool          `koanf:"sandbox" mapstructure:"sandbox"`
	Timeout       time.Duration `koanf:"timeout" mapstructure:"timeout"`
}

func DefaultConfig() Config {
	return Config{
		Timeout: DefaultTimeout,
	}
}

func (c Config) Validate() error {
	if err := ValidateCredentials(c.APIKey, c.APISecret); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return NewBadInputError("core: timeout must be >= 0", map[string]any{"timeout": c.Timeout.String()})
	}
	return nil
}

// BaseURL returns the origin selected by the sandbox flag.
func (c Config) BaseURL() string {
	return BaseURLFor(c.Sandbox)
}

// ValidateCredentials rejects a pair where only one half is set.
func ValidateCredentials(apiKey, apiSecret string) error {
	hasKey := strings.TrimSpace(apiKey) != ""
	hasSecret := strings.TrimSpace(apiSecret) != ""
	if hasKey != hasSecret {
		return NewBadInputError(
			"core: api key and api secret must be set together",
			map[string]any{"api_key_set": hasKey, "api_secret_set": hasSecret},
		)
	}
	return nil
}
