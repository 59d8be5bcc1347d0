package command

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-cuenca/transport"
)

var (
	_ gocmd.Commander[ConfigureMessage]        = (*ConfigureCommand)(nil)
	_ gocmd.Commander[CreateTransferMessage]   = (*CreateTransferCommand)(nil)
	_ gocmd.Commander[CreateAPIKeyMessage]     = (*CreateAPIKeyCommand)(nil)
	_ gocmd.Commander[DeactivateAPIKeyMessage] = (*DeactivateAPIKeyCommand)(nil)

	_ Configurator = (*transport.Client)(nil)
)
