package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Telegram update delivery modes
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Config holds all configuration for the bot service
type Config struct {
	Telegram TelegramConfig
	Download DownloadConfig
	Kafka    KafkaConfig
	Logging  LoggingConfig
	Service  ServiceConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken  string
	Mode      string
	RateLimit float64
	RateBurst int
}

// DownloadConfig holds local media storage configuration
type DownloadConfig struct {
	Dir string
}

// KafkaConfig holds Kafka configuration.
// Empty Brokers disables event publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether download events should be published
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration.
// Empty Port disables the metrics/health HTTP server.
type ServiceConfig struct {
	Name string
	Port string
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config   *Config
	Telegram *TelegramConfig
	Download *DownloadConfig
	Kafka    *KafkaConfig
	Logging  *LoggingConfig
	Service  *ServiceConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:   cfg,
		Telegram: &cfg.Telegram,
		Download: &cfg.Download,
		Kafka:    &cfg.Kafka,
		Logging:  &cfg.Logging,
		Service:  &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	rateLimit, err := strconv.ParseFloat(getEnv("TELEGRAM_RATE_LIMIT", "25"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_RATE_LIMIT: %w", err)
	}

	rateBurst, err := strconv.Atoi(getEnv("TELEGRAM_RATE_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_RATE_BURST: %w", err)
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
			Mode:      strings.ToLower(getEnv("TELEGRAM_MODE", ModePolling)),
			RateLimit: rateLimit,
			RateBurst: rateBurst,
		},
		Download: DownloadConfig{
			Dir: getEnv("DOWNLOAD_DIR", filepath.Join(os.TempDir(), "tubeflow")),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "downloads.events"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "tubeflow-bot"),
			Port: os.Getenv("SERVICE_PORT"),
		},
	}

	if _, set := os.LookupEnv("SERVICE_PORT"); !set {
		cfg.Service.Port = "8081"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if c.Telegram.Mode != ModePolling && c.Telegram.Mode != ModeWebhook {
		return fmt.Errorf("TELEGRAM_MODE must be %q or %q, got %q", ModePolling, ModeWebhook, c.Telegram.Mode)
	}

	if c.Telegram.RateLimit <= 0 {
		return fmt.Errorf("TELEGRAM_RATE_LIMIT must be positive")
	}

	if c.Telegram.RateBurst <= 0 {
		return fmt.Errorf("TELEGRAM_RATE_BURST must be positive")
	}

	if c.Download.Dir == "" {
		return fmt.Errorf("DOWNLOAD_DIR is required")
	}

	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		return fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
