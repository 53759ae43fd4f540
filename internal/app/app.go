// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Conte777/TubeFlow/config"
	"github.com/Conte777/TubeFlow/internal/domain"
	"github.com/Conte777/TubeFlow/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, metrics, telegram bot, http)
		infrastructure.Module,

		// Domain (video download flow)
		domain.Module,
	)
}
