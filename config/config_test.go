package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN is required")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("TELEGRAM_MODE", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DOWNLOAD_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Telegram.BotToken)
	assert.Equal(t, ModePolling, cfg.Telegram.Mode)
	assert.Equal(t, 25.0, cfg.Telegram.RateLimit)
	assert.Equal(t, 5, cfg.Telegram.RateBurst)
	assert.NotEmpty(t, cfg.Download.Dir)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "downloads.events", cfg.Kafka.Topic)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_KafkaBrokers(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_ServicePortCanBeDisabled(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("SERVICE_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Service.Port)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown mode", key: "TELEGRAM_MODE", val: "longpoll"},
		{name: "rate limit not a number", key: "TELEGRAM_RATE_LIMIT", val: "fast"},
		{name: "zero rate limit", key: "TELEGRAM_RATE_LIMIT", val: "0"},
		{name: "negative burst", key: "TELEGRAM_RATE_BURST", val: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_WebhookMode(t *testing.T) {
	cfg := &Config{
		Telegram: TelegramConfig{BotToken: "t", Mode: ModeWebhook, RateLimit: 1, RateBurst: 1},
		Download: DownloadConfig{Dir: "/tmp"},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Kafka = KafkaConfig{Brokers: []string{"localhost:9092"}}
	assert.Error(t, cfg.Validate())
}
