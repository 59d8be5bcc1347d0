// Package cuenca is the entry point of the Cuenca API client.
//
// Most programs either build a client with New and pass it to the resources
// helpers, or configure the process-wide default once:
//
//	if err := cuenca.Configure(key, secret, cuenca.WithSandbox(true)); err != nil {
//		return err
//	}
//	client, err := cuenca.DefaultClient()
package cuenca

import (
	"sync"

	"github.com/goliatone/go-cuenca/core"
	"github.com/goliatone/go-cuenca/transport"
)

type Config = core.Config

type Client = transport.Client

type Option = transport.Option

type ConfigureOption = transport.ConfigureOption

type RequestOption = transport.RequestOption

var (
	WithConfig               = transport.WithConfig
	WithHTTPClient           = transport.WithHTTPClient
	WithLogger               = transport.WithLogger
	WithLoggerProvider       = transport.WithLoggerProvider
	WithMetricsRecorder      = transport.WithMetricsRecorder
	WithConfigProvider       = transport.WithConfigProvider
	WithConfigLoader         = transport.WithConfigLoader
	WithOptionsResolver      = transport.WithOptionsResolver
	WithMaxResponseBodyBytes = transport.WithMaxResponseBodyBytes

	WithWebhookSecret = transport.WithWebhookSecret
	WithSandbox       = transport.WithSandbox

	WithTimeout = transport.WithTimeout
	WithHeader  = transport.WithHeader
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func New(opts ...Option) (*Client, error) {
	return transport.New(opts...)
}

var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

// DefaultClient returns the process-wide client, building it from the
// environment on first use. A failed build is not cached.
func DefaultClient() (*Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient != nil {
		return defaultClient, nil
	}
	client, err := transport.New()
	if err != nil {
		return nil, err
	}
	defaultClient = client
	return defaultClient, nil
}

// SetDefaultClient replaces the process-wide client. Passing nil makes the
// next DefaultClient call rebuild it from the environment.
func SetDefaultClient(client *Client) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = client
}

// Configure updates the credentials of the process-wide client.
func Configure(apiKey, apiSecret string, opts ...ConfigureOption) error {
	client, err := DefaultClient()
	if err != nil {
		return err
	}
	return client.Configure(apiKey, apiSecret, opts...)
}
