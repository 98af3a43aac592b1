package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestRunReturnsConfigError(t *testing.T) {
	t.Setenv("POSTAPI_DATABASE.HOST", "")

	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRunReturnsMigrationError(t *testing.T) {
	setEnv(t, map[string]string{
		"POSTAPI_PRIMARY.ENV":                 "test",
		"POSTAPI_SERVER.PORT":                 "0",
		"POSTAPI_SERVER.READ_TIMEOUT":         "5",
		"POSTAPI_SERVER.WRITE_TIMEOUT":        "5",
		"POSTAPI_SERVER.IDLE_TIMEOUT":         "5",
		"POSTAPI_SERVER.CORS_ALLOWED_ORIGINS": "*",
		"POSTAPI_DATABASE.HOST":               "127.0.0.1",
		"POSTAPI_DATABASE.PORT":               "1",
		"POSTAPI_DATABASE.USER":               "postgres",
		"POSTAPI_DATABASE.PASSWORD":           "postgres",
		"POSTAPI_DATABASE.NAME":               "posts",
		"POSTAPI_DATABASE.SSL_MODE":           "disable",
		"POSTAPI_DATABASE.MAX_OPEN_CONNS":     "1",
		"POSTAPI_DATABASE.CONN_MAX_LIFETIME":  "1",
		"POSTAPI_DATABASE.CONN_MAX_IDLE_TIME": "1",
		"POSTAPI_OBSERVABILITY.LOGGING.LEVEL": "error",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to migrate database")
}
