package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-cuenca/resources"
	"github.com/goliatone/go-cuenca/transport"
)

type Configurator interface {
	Configure(apiKey, apiSecret string, opts ...transport.ConfigureOption) error
}

type ConfigureCommand struct {
	client Configurator
}

func NewConfigureCommand(client Configurator) *ConfigureCommand {
	return &ConfigureCommand{client: client}
}

func (c *ConfigureCommand) Execute(_ context.Context, msg ConfigureMessage) error {
	if c == nil || c.client == nil {
		return commandDependencyError("command: client is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	opts := []transport.ConfigureOption{transport.WithWebhookSecret(msg.WebhookSecret)}
	if msg.Sandbox != nil {
		opts = append(opts, transport.WithSandbox(*msg.Sandbox))
	}
	return c.client.Configure(msg.APIKey, msg.APISecret, opts...)
}

type CreateTransferCommand struct {
	transport resources.Transport
}

func NewCreateTransferCommand(tr resources.Transport) *CreateTransferCommand {
	return &CreateTransferCommand{transport: tr}
}

func (c *CreateTransferCommand) Execute(ctx context.Context, msg CreateTransferMessage) error {
	if c == nil || c.transport == nil {
		return commandDependencyError("command: transport is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := resources.CreateTransfer(ctx, c.transport, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateAPIKeyCommand struct {
	transport resources.Transport
}

func NewCreateAPIKeyCommand(tr resources.Transport) *CreateAPIKeyCommand {
	return &CreateAPIKeyCommand{transport: tr}
}

func (c *CreateAPIKeyCommand) Execute(ctx context.Context, _ CreateAPIKeyMessage) error {
	if c == nil || c.transport == nil {
		return commandDependencyError("command: transport is required")
	}
	out, err := resources.CreateAPIKey(ctx, c.transport)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeactivateAPIKeyCommand struct {
	transport resources.Transport
}

func NewDeactivateAPIKeyCommand(tr resources.Transport) *DeactivateAPIKeyCommand {
	return &DeactivateAPIKeyCommand{transport: tr}
}

func (c *DeactivateAPIKeyCommand) Execute(ctx context.Context, msg DeactivateAPIKeyMessage) error {
	if c == nil || c.transport == nil {
		return commandDependencyError("command: transport is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := resources.DeactivateAPIKey(ctx, c.transport, msg.ID, msg.Minutes)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
