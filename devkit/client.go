package devkit

import (
	"github.com/goliatone/go-cuenca/core"
	"github.com/goliatone/go-cuenca/transport"
)

const (
	TestAPIKey    = "AK_TEST"
	TestAPISecret = "SECRET_TEST"
)

// NewClient returns a transport client wired to the backend. It authenticates
// with the backend credentials, or the Test* pair when none were set. The
// environment is not consulted.
func (b *Backend) NewClient(opts ...transport.Option) (*transport.Client, error) {
	apiKey, apiSecret := b.apiKey, b.apiSecret
	if apiKey == "" && apiSecret == "" {
		apiKey, apiSecret = TestAPIKey, TestAPISecret
	}
	base := []transport.Option{
		transport.WithHTTPClient(b.Doer()),
		transport.WithConfigLoader(core.StaticConfigLoader{Values: map[string]any{
			"api_key":    apiKey,
			"api_secret": apiSecret,
		}}),
	}
	return transport.New(append(base, opts...)...)
}
