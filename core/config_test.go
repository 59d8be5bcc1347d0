package core

import (
	"context"
	"testing"
	"time"
)

func envLookup(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestDefaultConfigTargetsProduction(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseURL() != ProductionURL {
		t.Fatalf("expected production url, got %q", cfg.BaseURL())
	}
	if cfg.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate: %v", err)
	}
}

func TestConfigValidateRejectsPartialCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "AK123"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected partial credentials to fail")
	}
	if !IsBadInput(err) {
		t.Fatalf("expected bad input error, got %v", err)
	}
}

func TestEnvConfigLoaderReadsCuencaVariables(t *testing.T) {
	loader := EnvConfigLoader{Lookup: envLookup(map[string]string{
		EnvAPIKey:        "AK123",
		EnvAPISecret:     "secret",
		EnvWebhookSecret: " whsec ",
		"UNRELATED":      "x",
	})}
	raw, err := loader.LoadRaw(context.Background())
	if err != nil {
		t.Fatalf("load raw: %v", err)
	}
	if raw["api_key"] != "AK123" || raw["api_secret"] != "secret" {
		t.Fatalf("unexpected credentials %#v", raw)
	}
	if raw["webhook_secret"] != " whsec " {
		t.Fatalf("expected webhook secret kept as-is, got %#v", raw["webhook_secret"])
	}
	if len(raw) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(raw))
	}
}

func TestLoadConfigLayersRuntimeOverEnvironment(t *testing.T) {
	provider := NewCfgxConfigProvider(EnvConfigLoader{Lookup: envLookup(map[string]string{
		EnvAPIKey:        "env-key",
		EnvAPISecret:     "env-secret",
		EnvWebhookSecret: "env-whsec",
	})})

	cfg, err := LoadConfig(context.Background(), provider, nil, Config{
		APIKey:    "runtime-key",
		APISecret: "runtime-secret",
		Sandbox:   true,
		Timeout:   5 * time.Second,
	})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIKey != "runtime-key" || cfg.APISecret != "runtime-secret" {
		t.Fatalf("expected runtime credentials, got %q/%q", cfg.APIKey, cfg.APISecret)
	}
	if cfg.WebhookSecret != "env-whsec" {
		t.Fatalf("expected env webhook secret, got %q", cfg.WebhookSecret)
	}
	if !cfg.Sandbox || cfg.BaseURL() != SandboxURL {
		t.Fatalf("expected sandbox config")
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("expected runtime timeout, got %s", cfg.Timeout)
	}
}

func TestLoadConfigWithoutEnvironmentUsesEmptyCredentials(t *testing.T) {
	provider := NewCfgxConfigProvider(StaticConfigLoader{})
	cfg, err := LoadConfig(context.Background(), provider, GoOptionsResolver{}, Config{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIKey != "" || cfg.APISecret != "" || cfg.WebhookSecret != "" {
		t.Fatalf("expected empty credentials, got %#v", cfg)
	}
	if cfg.Sandbox {
		t.Fatalf("expected production by default")
	}
}

func TestLoadConfigRejectsPartialEnvironmentCredentials(t *testing.T) {
	provider := NewCfgxConfigProvider(EnvConfigLoader{Lookup: envLookup(map[string]string{
		EnvAPIKey: "env-key",
	})})
	if _, err := LoadConfig(context.Background(), provider, nil, Config{}); err == nil {
		t.Fatalf("expected partial environment credentials to fail")
	}
}

func TestConfigValidateRejectsNegativeTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = -time.Second
	if err := cfg.Validate(); !IsBadInput(err) {
		t.Fatalf("expected bad input error, got %v", err)
	}
}
