package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestCreateApp(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
	t.Setenv("KAFKA_BROKERS", "localhost:9093")
	t.Setenv("DOWNLOAD_DIR", t.TempDir())

	// Validate fx dependency graph
	require.NoError(t, fx.ValidateApp(CreateApp()))
}

func TestCreateApp_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("DOWNLOAD_DIR", t.TempDir())

	app := fx.New(CreateApp(), fx.NopLogger)

	err := app.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN is required")
}
