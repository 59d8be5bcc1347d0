package transport

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-cuenca/adapters/gologger"
	"github.com/goliatone/go-cuenca/core"
)

const defaultResponseBodyLimit int64 = 10 << 20 // 10 MiB

// connection is an immutable configuration snapshot. Requests load exactly one
// snapshot so they never observe a half-applied Configure.
type connection struct {
	baseURL       string
	apiKey        string
	apiSecret     string
	webhookSecret string
}

// Client is the single point of contact with the Cuenca API.
type Client struct {
	conn                 atomic.Pointer[connection]
	httpClient           core.HTTPDoer
	logger               core.Logger
	loggerProvider       core.LoggerProvider
	metricsRecorder      core.MetricsRecorder
	timeout              time.Duration
	maxResponseBodyBytes int64
}

type clientBuilder struct {
	runtimeConfig        core.Config
	httpClient           core.HTTPDoer
	logger               core.Logger
	loggerProvider       core.LoggerProvider
	metricsRecorder      core.MetricsRecorder
	configProvider       core.ConfigProvider
	optionsResolver      core.OptionsResolver
	maxResponseBodyBytes int64
}

type Option func(*clientBuilder)

// WithConfig sets the runtime configuration layer. Non-zero fields override
// values loaded from the environment.
func WithConfig(cfg core.Config) Option {
	return func(b *clientBuilder) {
		b.runtimeConfig = cfg
	}
}

func WithHTTPClient(client core.HTTPDoer) Option {
	return func(b *clientBuilder) {
		b.httpClient = client
	}
}

func WithLogger(logger core.Logger) Option {
	return func(b *clientBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *clientBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(b *clientBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(b *clientBuilder) {
		b.configProvider = provider
	}
}

// WithConfigLoader replaces the environment as the source of raw settings.
func WithConfigLoader(loader core.RawConfigLoader) Option {
	return func(b *clientBuilder) {
		b.configProvider = core.NewCfgxConfigProvider(loader)
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(b *clientBuilder) {
		b.optionsResolver = resolver
	}
}

func WithMaxResponseBodyBytes(limit int64) Option {
	return func(b *clientBuilder) {
		b.maxResponseBodyBytes = limit
	}
}

// New builds a Client. Credentials default to CUENCA_API_KEY / CUENCA_API_SECRET
// and the webhook secret to CUENCA_WEBHOOK_SECRET, read once here.
func New(opts ...Option) (*Client, error) {
	builder := clientBuilder{
		metricsRecorder:      core.NopMetricsRecorder{},
		configProvider:       core.NewCfgxConfigProvider(core.EnvConfigLoader{}),
		optionsResolver:      core.GoOptionsResolver{},
		maxResponseBodyBytes: defaultResponseBodyLimit,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	cfg, err := core.LoadConfig(context.Background(), builder.configProvider, builder.optionsResolver, builder.runtimeConfig)
	if err != nil {
		return nil, err
	}

	provider, logger := gologger.Resolve(gologger.DefaultName, builder.loggerProvider, builder.logger)
	if builder.httpClient == nil {
		builder.httpClient = &http.Client{}
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = core.NopMetricsRecorder{}
	}
	if builder.maxResponseBodyBytes <= 0 {
		builder.maxResponseBodyBytes = defaultResponseBodyLimit
	}

	client := &Client{
		httpClient:           builder.httpClient,
		logger:               logger,
		loggerProvider:       provider,
		metricsRecorder:      builder.metricsRecorder,
		timeout:              cfg.Timeout,
		maxResponseBodyBytes: builder.maxResponseBodyBytes,
	}
	client.conn.Store(&connection{
		baseURL:       cfg.BaseURL(),
		apiKey:        cfg.APIKey,
		apiSecret:     cfg.APISecret,
		webhookSecret: cfg.WebhookSecret,
	})
	return client, nil
}

type configureParams struct {
	webhookSecret string
	sandbox       *bool
}

type ConfigureOption func(*configureParams)

// WithWebhookSecret replaces the webhook secret. Empty values keep the
// previous secret.
func WithWebhookSecret(secret string) ConfigureOption {
	return func(p *configureParams) {
		p.webhookSecret = secret
	}
}

// WithSandbox selects the sandbox (true) or production (false) origin.
func WithSandbox(sandbox bool) ConfigureOption {
	return func(p *configureParams) {
		p.sandbox = &sandbox
	}
}

// Configure replaces the credential pair and optionally the webhook secret and
// target origin. It may be called at any time, e.g. to rotate keys.
func (c *Client) Configure(apiKey, apiSecret string, opts ...ConfigureOption) error {
	if c == nil {
		return core.NewInternalError("transport: client is nil")
	}
	if err := core.ValidateCredentials(apiKey, apiSecret); err != nil {
		return err
	}
	params := configureParams{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&params)
	}

	for {
		current := c.conn.Load()
		next := connection{baseURL: core.ProductionURL}
		if current != nil {
			next = *current
		}
		next.apiKey = apiKey
		next.apiSecret = apiSecret
		if strings.TrimSpace(params.webhookSecret) != "" {
			next.webhookSecret = params.webhookSecret
		}
		if params.sandbox != nil {
			next.baseURL = core.BaseURLFor(*params.sandbox)
		}
		if c.conn.CompareAndSwap(current, &next) {
			c.logInfo(context.Background(), "cuenca client configured", map[string]any{
				"base_url":       next.baseURL,
				"webhook_secret": next.webhookSecret != "",
			})
			return nil
		}
	}
}

func (c *Client) BaseURL() string {
	return c.snapshot().baseURL
}

// Credentials returns the api key and secret currently in use.
func (c *Client) Credentials() (string, string) {
	conn := c.snapshot()
	return conn.apiKey, conn.apiSecret
}

func (c *Client) WebhookSecret() string {
	return c.snapshot().webhookSecret
}

func (c *Client) Sandbox() bool {
	return c.snapshot().baseURL == core.SandboxURL
}

func (c *Client) snapshot() connection {
	if c == nil {
		return connection{baseURL: core.ProductionURL}
	}
	if conn := c.conn.Load(); conn != nil {
		return *conn
	}
	return connection{baseURL: core.ProductionURL}
}
