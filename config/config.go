// Package config loads client configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the runtime configuration of the headless client.
type Config struct {
	// APIBase is the root of the REST API and collector. Empty means the
	// demo runner starts its own in-process stub.
	APIBase string `env:"API_BASE"`
	// ClientVersion is the version tag stamped on every envelope.
	ClientVersion string `env:"CLIENT_VERSION" envDefault:"0.1.0"`
	// UserAgent drives the coarse device classification.
	UserAgent string `env:"CLIENT_USER_AGENT" envDefault:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"`
	// StatePath is the SQLite file backing durable storage.
	StatePath string `env:"CLIENT_STATE_PATH" envDefault:"newsdesk-state.db"`
	// StubAddr is the listen address for the in-process stub backend.
	StubAddr string `env:"STUB_ADDR" envDefault:"127.0.0.1:8080"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
