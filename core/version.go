package core

const (
	APIVersion    = "2020-03-19"
	ClientName    = "cuenca-go"
	ClientVersion = "0.1.0"
)

const (
	ProductionURL = "https://api.cuenca.com"
	SandboxURL    = "https://sandbox.cuenca.com"
)

const (
	HeaderAPIVersion = "X-Cuenca-Api-Version"
	HeaderUserAgent  = "User-Agent"
)

const (
	EnvAPIKey        = "CUENCA_API_KEY"
	EnvAPISecret     = "CUENCA_API_SECRET"
	EnvWebhookSecret = "CUENCA_WEBHOOK_SECRET"
)

// UserAgent is the client identity string sent with every request.
func UserAgent() string {
	return ClientName + "/" + ClientVersion
}

// BaseURLFor maps the sandbox flag to one of the two known origins.
func BaseURLFor(sandbox bool) string {
	if sandbox {
		return SandboxURL
	}
	return ProductionURL
}
