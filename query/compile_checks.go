package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-cuenca/resources"
)

var (
	_ gocmd.Querier[RetrieveMessage, *resources.Transaction] = (*RetrieveQuery[resources.Transaction, *resources.Transaction])(nil)
	_ gocmd.Querier[RetrieveMessage, *resources.Account]     = (*RetrieveQuery[resources.Account, *resources.Account])(nil)
	_ gocmd.Querier[RetrieveMessage, *resources.Transfer]    = (*RetrieveQuery[resources.Transfer, *resources.Transfer])(nil)
	_ gocmd.Querier[RetrieveMessage, *resources.APIKey]      = (*RetrieveQuery[resources.APIKey, *resources.APIKey])(nil)
	_ gocmd.Querier[FirstMessage, *resources.Account]        = (*FirstQuery[resources.Account, *resources.Account])(nil)
	_ gocmd.Querier[ListMessage, []*resources.Transaction]   = (*ListQuery[resources.Transaction, *resources.Transaction])(nil)
	_ gocmd.Querier[CountMessage, int64]                     = (*CountQuery[resources.Transaction, *resources.Transaction])(nil)
)
