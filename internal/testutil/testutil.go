// Package testutil provides in-memory repositories and a server container
// for tests that exercise services, handlers and the router without a
// database.
package testutil

import (
	"github.com/rs/zerolog"

	"github.com/deppfellow/post-api/internal/config"
	"github.com/deppfellow/post-api/internal/server"
)

// NewServer returns a Server with a silent logger, no database and New
// Relic disabled.
func NewServer() *server.Server {
	logger := zerolog.Nop()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          1000,
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	return &server.Server{
		Config: cfg,
		Logger: &logger,
	}
}
