package command

import (
	"strings"

	"github.com/goliatone/go-cuenca/resources"
)

const (
	TypeConfigure        = "cuenca.command.client.configure"
	TypeCreateTransfer   = "cuenca.command.transfer.create"
	TypeCreateAPIKey     = "cuenca.command.api_key.create"
	TypeDeactivateAPIKey = "cuenca.command.api_key.deactivate"
)

// ConfigureMessage rotates the client connection. A nil Sandbox keeps the
// current origin; an empty WebhookSecret keeps the current secret.
type ConfigureMessage struct {
	APIKey        string
	APISecret     string
	WebhookSecret string
	Sandbox       *bool
}

func (ConfigureMessage) Type() string { return TypeConfigure }

func (m ConfigureMessage) Validate() error {
	key := strings.TrimSpace(m.APIKey)
	secret := strings.TrimSpace(m.APISecret)
	switch {
	case key == "" && secret != "":
		return commandValidationError("api_key", "api key is required when api secret is set")
	case key != "" && secret == "":
		return commandValidationError("api_secret", "api secret is required when api key is set")
	}
	return nil
}

type CreateTransferMessage struct {
	Request resources.TransferRequest
}

func (CreateTransferMessage) Type() string { return TypeCreateTransfer }

func (m CreateTransferMessage) Validate() error {
	return commandWrapValidation(m.Request.Validate(), "command: invalid transfer request")
}

type CreateAPIKeyMessage struct{}

func (CreateAPIKeyMessage) Type() string { return TypeCreateAPIKey }

func (CreateAPIKeyMessage) Validate() error { return nil }

type DeactivateAPIKeyMessage struct {
	ID      string
	Minutes int
}

func (DeactivateAPIKeyMessage) Type() string { return TypeDeactivateAPIKey }

func (m DeactivateAPIKeyMessage) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return commandValidationError("id", "api key id is required")
	}
	if m.Minutes < 0 {
		return commandValidationError("minutes", "minutes must be >= 0")
	}
	return nil
}
