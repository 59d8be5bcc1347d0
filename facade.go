package cuenca

import (
	"github.com/goliatone/go-cuenca/command"
	"github.com/goliatone/go-cuenca/core"
	"github.com/goliatone/go-cuenca/query"
	"github.com/goliatone/go-cuenca/resources"
	"github.com/goliatone/go-cuenca/webhooks"
)

type Commands struct {
	Configure        *command.ConfigureCommand
	CreateTransfer   *command.CreateTransferCommand
	CreateAPIKey     *command.CreateAPIKeyCommand
	DeactivateAPIKey *command.DeactivateAPIKeyCommand
}

type Queries struct {
	RetrieveAccount     *query.RetrieveQuery[resources.Account, *resources.Account]
	RetrieveTransaction *query.RetrieveQuery[resources.Transaction, *resources.Transaction]
	RetrieveTransfer    *query.RetrieveQuery[resources.Transfer, *resources.Transfer]
	RetrieveAPIKey      *query.RetrieveQuery[resources.APIKey, *resources.APIKey]

	FirstAccount      *query.FirstQuery[resources.Account, *resources.Account]
	ListAccounts      *query.ListQuery[resources.Account, *resources.Account]
	ListTransactions  *query.ListQuery[resources.Transaction, *resources.Transaction]
	ListTransfers     *query.ListQuery[resources.Transfer, *resources.Transfer]
	CountTransactions *query.CountQuery[resources.Transaction, *resources.Transaction]
	CountTransfers    *query.CountQuery[resources.Transfer, *resources.Transfer]
}

// Facade bundles the command and query handlers bound to one client, ready
// to be registered on a go-command dispatcher.
type Facade struct {
	client   *Client
	commands Commands
	queries  Queries
}

func NewFacade(client *Client) (*Facade, error) {
	if client == nil {
		return nil, core.NewBadInputError("cuenca: client is required", nil)
	}
	facade := &Facade{client: client}
	facade.commands = Commands{
		Configure:        command.NewConfigureCommand(client),
		CreateTransfer:   command.NewCreateTransferCommand(client),
		CreateAPIKey:     command.NewCreateAPIKeyCommand(client),
		DeactivateAPIKey: command.NewDeactivateAPIKeyCommand(client),
	}
	facade.queries = Queries{
		RetrieveAccount:     query.NewRetrieveQuery[resources.Account](client),
		RetrieveTransaction: query.NewRetrieveQuery[resources.Transaction](client),
		RetrieveTransfer:    query.NewRetrieveQuery[resources.Transfer](client),
		RetrieveAPIKey:      query.NewRetrieveQuery[resources.APIKey](client),
		FirstAccount:        query.NewFirstQuery[resources.Account](client),
		ListAccounts:        query.NewListQuery[resources.Account](client),
		ListTransactions:    query.NewListQuery[resources.Transaction](client),
		ListTransfers:       query.NewListQuery[resources.Transfer](client),
		CountTransactions:   query.NewCountQuery[resources.Transaction](client),
		CountTransfers:      query.NewCountQuery[resources.Transfer](client),
	}
	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Client() *Client {
	if f == nil {
		return nil
	}
	return f.client
}

// WebhookHandler verifies deliveries with the client's current webhook secret.
func (f *Facade) WebhookHandler(onEvent webhooks.EventFunc, opts ...webhooks.HandlerOption) *webhooks.Handler {
	var source webhooks.SecretSource
	if f != nil && f.client != nil {
		source = f.client
	}
	return webhooks.NewHandler(webhooks.NewVerifier(source), onEvent, opts...)
}
