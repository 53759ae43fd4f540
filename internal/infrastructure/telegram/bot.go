// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/TubeFlow/config"
)

// Bot wraps the Telegram bot for infrastructure layer
type Bot struct {
	bot    *tgbot.Bot
	mode   string
	logger zerolog.Logger
}

// NewBot creates a new Telegram bot wrapper
func NewBot(cfg *config.TelegramConfig, logger zerolog.Logger, opts ...tgbot.Option) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	logger = logger.With().Str("component", "telegram").Logger()

	options := []tgbot.Option{
		tgbot.WithDefaultHandler(defaultHandler),
		tgbot.WithErrorsHandler(func(err error) {
			logger.Error().Err(err).Msg("Telegram update loop error")
		}),
	}
	options = append(options, opts...)

	bot, err := tgbot.New(cfg.BotToken, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info().Str("mode", cfg.Mode).Msg("Telegram bot created successfully")

	return &Bot{
		bot:    bot,
		mode:   cfg.Mode,
		logger: logger,
	}, nil
}

// Raw returns the underlying telegram bot for handler registration
func (b *Bot) Raw() *tgbot.Bot {
	return b.bot
}

// Start receives updates until ctx is cancelled (blocking call).
// Webhook mode only reports readiness and waits; no webhook server is run.
func (b *Bot) Start(ctx context.Context) error {
	switch b.mode {
	case config.ModeWebhook:
		b.logger.Info().Msg("Webhook mode selected, bot is ready but no webhook endpoint is served")
		<-ctx.Done()
	default:
		b.logger.Info().Msg("Starting Telegram bot (long polling)...")
		b.bot.Start(ctx)
	}

	b.logger.Info().Msg("Telegram bot stopped")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() error {
	b.logger.Info().Msg("Stopping Telegram bot...")
	return nil
}

// defaultHandler drops updates no route matched (stickers, photos, edits)
func defaultHandler(ctx context.Context, bot *tgbot.Bot, update *models.Update) {}
