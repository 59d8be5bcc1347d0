package command

import (
	"context"
	"encoding/json"
	"testing"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-cuenca/core"
	"github.com/goliatone/go-cuenca/devkit"
	"github.com/goliatone/go-cuenca/resources"
	"github.com/goliatone/go-cuenca/transport"
	goerrors "github.com/goliatone/go-errors"
)

func newBackendClient(t *testing.T) (*devkit.Backend, *transport.Client) {
	t.Helper()
	backend := devkit.NewBackend()
	client, err := backend.NewClient()
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return backend, client
}

func TestConfigureCommand_RotatesClientConnection(t *testing.T) {
	_, client := newBackendClient(t)
	sandbox := true

	cmd := NewConfigureCommand(client)
	err := cmd.Execute(context.Background(), ConfigureMessage{
		APIKey:        "AK_NEW",
		APISecret:     "SECRET_NEW",
		WebhookSecret: "whsec",
		Sandbox:       &sandbox,
	})
	if err != nil {
		t.Fatalf("execute configure: %v", err)
	}
	key, secret := client.Credentials()
	if key != "AK_NEW" || secret != "SECRET_NEW" {
		t.Fatalf("unexpected credentials %q/%q", key, secret)
	}
	if client.BaseURL() != core.SandboxURL {
		t.Fatalf("expected sandbox url, got %q", client.BaseURL())
	}
	if client.WebhookSecret() != "whsec" {
		t.Fatalf("expected webhook secret, got %q", client.WebhookSecret())
	}

	if err := cmd.Execute(context.Background(), ConfigureMessage{APIKey: "AK_2", APISecret: "SECRET_2"}); err != nil {
		t.Fatalf("execute configure without sandbox: %v", err)
	}
	if client.BaseURL() != core.SandboxURL {
		t.Fatalf("expected origin to be kept when sandbox is omitted, got %q", client.BaseURL())
	}
	if client.WebhookSecret() != "whsec" {
		t.Fatalf("expected webhook secret to be kept, got %q", client.WebhookSecret())
	}
}

func TestConfigureMessage_ValidateReturnsRichError(t *testing.T) {
	err := (ConfigureMessage{APIKey: "AK_ONLY"}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.ErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.ErrorBadInput, rich.TextCode)
	}
}

func TestConfigureCommand_NilClientReturnsRichError(t *testing.T) {
	var cmd *ConfigureCommand
	err := cmd.Execute(context.Background(), ConfigureMessage{})

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
}

func TestCreateTransferCommand_ExecuteStoresResult(t *testing.T) {
	backend, client := newBackendClient(t)

	cmd := NewCreateTransferCommand(client)
	collector := gocmd.NewResult[*resources.Transfer]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, CreateTransferMessage{Request: resources.TransferRequest{
		AccountNumber:  "646180157000000004",
		Amount:         5000,
		Descriptor:     "invoice 12",
		RecipientName:  "Acme",
		IdempotencyKey: "invoice-12",
	}})
	if err != nil {
		t.Fatalf("execute create transfer: %v", err)
	}
	transfer, ok := collector.Load()
	if !ok || transfer == nil {
		t.Fatalf("expected transfer result to be stored")
	}
	if transfer.IdempotencyKey != "invoice-12" || transfer.Amount != 5000 {
		t.Fatalf("unexpected transfer %+v", transfer)
	}
	if _, found := backend.Object("transfers", transfer.ID); !found {
		t.Fatalf("expected transfer %s on the backend", transfer.ID)
	}
}

func TestCreateTransferCommand_InvalidRequestSkipsTransport(t *testing.T) {
	backend, client := newBackendClient(t)

	err := NewCreateTransferCommand(client).Execute(context.Background(), CreateTransferMessage{})
	if !core.IsBadInput(err) {
		t.Fatalf("expected bad input, got %v", err)
	}
	if got := len(backend.Requests()); got != 0 {
		t.Fatalf("expected no request, got %d", got)
	}
}

func TestAPIKeyCommands_CreateAndDeactivate(t *testing.T) {
	backend, client := newBackendClient(t)

	created := gocmd.NewResult[*resources.APIKey]()
	ctx := gocmd.ContextWithResult(context.Background(), created)
	if err := NewCreateAPIKeyCommand(client).Execute(ctx, CreateAPIKeyMessage{}); err != nil {
		t.Fatalf("execute create api key: %v", err)
	}
	key, ok := created.Load()
	if !ok || key.Secret == "" {
		t.Fatalf("expected created key with secret, got %+v", key)
	}

	deactivated := gocmd.NewResult[*resources.APIKey]()
	ctx = gocmd.ContextWithResult(context.Background(), deactivated)
	if err := NewDeactivateAPIKeyCommand(client).Execute(ctx, DeactivateAPIKeyMessage{ID: key.ID, Minutes: 15}); err != nil {
		t.Fatalf("execute deactivate api key: %v", err)
	}
	out, ok := deactivated.Load()
	if !ok || out.DeactivatedAt == nil {
		t.Fatalf("expected deactivated key, got %+v", out)
	}

	req, _ := backend.LastRequest()
	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("decode deactivate body: %v", err)
	}
	if body["minutes"] != float64(15) {
		t.Fatalf("expected minutes 15, got %v", body["minutes"])
	}

	if err := NewDeactivateAPIKeyCommand(client).Execute(context.Background(), DeactivateAPIKeyMessage{}); !core.IsBadInput(err) {
		t.Fatalf("expected bad input for missing id, got %v", err)
	}
}

func TestCommands_WithoutCollectorStillExecute(t *testing.T) {
	_, client := newBackendClient(t)
	if err := NewCreateAPIKeyCommand(client).Execute(context.Background(), CreateAPIKeyMessage{}); err != nil {
		t.Fatalf("execute without collector: %v", err)
	}
}
