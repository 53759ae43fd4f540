// Package telegram contains Telegram delivery layer
package telegram

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/TubeFlow/internal/domain/video/consts"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes registers command and text handlers on the bot
func (r *Router) RegisterRoutes(bot *tgbot.Bot) {
	bot.RegisterHandlerMatchFunc(MatchCommand(consts.CommandStart.Name), r.handlers.HandleStart)
	bot.RegisterHandlerMatchFunc(MatchCommand(consts.CommandHelp.Name), r.handlers.HandleHelp)
	bot.RegisterHandlerMatchFunc(IsDownloadRequest, r.handlers.HandleTextMessage)

	r.logger.Info().Msg("All Telegram handlers registered successfully")
}

// RegisterCommands publishes the bot command menu. Failure only degrades the menu.
func (r *Router) RegisterCommands(ctx context.Context, bot *tgbot.Bot) {
	commands := make([]models.BotCommand, 0, len(consts.AllCommands))
	for _, cmd := range consts.AllCommands {
		commands = append(commands, models.BotCommand{Command: cmd.Name, Description: cmd.Description})
	}

	if _, err := bot.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{Commands: commands}); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to register bot command menu")
		return
	}

	r.logger.Info().Int("commands", len(commands)).Msg("Bot command menu registered")
}
