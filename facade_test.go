package cuenca_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cuenca "github.com/goliatone/go-cuenca"
	"github.com/goliatone/go-cuenca/command"
	"github.com/goliatone/go-cuenca/core"
	"github.com/goliatone/go-cuenca/devkit"
	"github.com/goliatone/go-cuenca/query"
	"github.com/goliatone/go-cuenca/webhooks"
)

func TestNewFacadeRequiresClient(t *testing.T) {
	if _, err := cuenca.NewFacade(nil); !core.IsBadInput(err) {
		t.Fatalf("expected bad input, got %v", err)
	}
	var facade *cuenca.Facade
	if facade.Client() != nil {
		t.Fatalf("expected nil client from nil facade")
	}
}

func TestFacadeWiresCommandsAndQueries(t *testing.T) {
	backend := devkit.NewBackend()
	backend.Seed("accounts", map[string]any{"id": "AC1", "user_id": "US1", "name": "Main"})
	client, err := backend.NewClient()
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	facade, err := cuenca.NewFacade(client)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	ctx := context.Background()

	account, err := facade.Queries().RetrieveAccount.Query(ctx, query.RetrieveMessage{ID: "AC1"})
	if err != nil {
		t.Fatalf("retrieve account: %v", err)
	}
	if account.Name != "Main" {
		t.Fatalf("unexpected account %+v", account)
	}

	if err := facade.Commands().Configure.Execute(ctx, command.ConfigureMessage{
		APIKey:    devkit.TestAPIKey,
		APISecret: "SECRET_ROTATED",
	}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if _, secret := facade.Client().Credentials(); secret != "SECRET_ROTATED" {
		t.Fatalf("expected rotated secret, got %q", secret)
	}

	count, err := facade.Queries().CountTransactions.Query(ctx, query.CountMessage{})
	if err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no transactions, got %d", count)
	}
}

func TestFacadeWebhookHandlerUsesClientSecret(t *testing.T) {
	client, err := devkit.NewBackend().NewClient()
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Configure(devkit.TestAPIKey, devkit.TestAPISecret, cuenca.WithWebhookSecret("whsec")); err != nil {
		t.Fatalf("configure: %v", err)
	}
	facade, err := cuenca.NewFacade(client)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	var received webhooks.Event
	handler := facade.WebhookHandler(func(_ context.Context, event webhooks.Event) error {
		received = event
		return nil
	})

	body := `{"id":"EV1","type":"transaction.create"}`
	signature, err := webhooks.Verifier{Secret: "whsec"}.Sign([]byte(body))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/hooks", strings.NewReader(body))
	req.Header.Set(webhooks.DefaultSignatureHeader, signature)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if received.ID != "EV1" {
		t.Fatalf("expected event EV1, got %+v", received)
	}
}
