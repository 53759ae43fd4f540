// Package video contains the video download domain module
package video

import (
	"context"
	"fmt"
	"os"

	yt "github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"golang.org/x/time/rate"

	"github.com/Conte777/TubeFlow/config"
	telegramDelivery "github.com/Conte777/TubeFlow/internal/domain/video/delivery/telegram"
	"github.com/Conte777/TubeFlow/internal/domain/video/deps"
	kafkaRepo "github.com/Conte777/TubeFlow/internal/domain/video/repository/kafka"
	youtubeRepo "github.com/Conte777/TubeFlow/internal/domain/video/repository/youtube"
	"github.com/Conte777/TubeFlow/internal/domain/video/usecase/business"
	"github.com/Conte777/TubeFlow/internal/infrastructure/telegram"
)

// Module provides video domain components for fx dependency injection
var Module = fx.Module("video",
	// Repository
	fx.Provide(provideVideoSource),
	fx.Provide(provideEventPublisher),

	// UseCase
	fx.Provide(business.NewUseCase),

	// Delivery - Telegram (needs raw bot from infrastructure)
	fx.Provide(provideRateLimiter),
	fx.Provide(provideTelegramHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	// Wire cyclic dependency and register routes
	fx.Invoke(wireAndRegister),
)

// provideVideoSource creates the YouTube source and its download root
func provideVideoSource(cfg *config.DownloadConfig, logger zerolog.Logger) (deps.VideoSource, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}
	return youtubeRepo.NewSource(&yt.Client{}, cfg, logger), nil
}

// provideEventPublisher creates the Kafka publisher, or a no-op one when
// no brokers are configured
func provideEventPublisher(lc fx.Lifecycle, cfg *config.KafkaConfig, logger zerolog.Logger) (deps.DownloadEventPublisher, error) {
	if !cfg.Enabled() {
		logger.Info().Msg("KAFKA_BROKERS is empty, download events disabled")
		return kafkaRepo.NopPublisher{}, nil
	}

	producer, err := kafkaRepo.NewProducer(cfg, logger.With().Str("component", "kafka-producer").Logger())
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return producer.Close()
		},
	})

	return producer, nil
}

func provideRateLimiter(cfg *config.TelegramConfig) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
}

// provideTelegramHandlers creates Telegram handlers with raw bot
func provideTelegramHandlers(uc *business.UseCase, bot *telegram.Bot, limiter *rate.Limiter, logger zerolog.Logger) *telegramDelivery.Handlers {
	return telegramDelivery.NewHandlers(uc, bot.Raw(), limiter, logger)
}

// wireAndRegister resolves cyclic dependency and registers routes
func wireAndRegister(
	lc fx.Lifecycle,
	uc *business.UseCase,
	handlers *telegramDelivery.Handlers,
	router *telegramDelivery.Router,
	bot *telegram.Bot,
) {
	// UseCase -> TelegramSender <- Handlers -> UseCase
	uc.SetSender(handlers)

	router.RegisterRoutes(bot.Raw())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			router.RegisterCommands(ctx, bot.Raw())
			return nil
		},
	})
}
