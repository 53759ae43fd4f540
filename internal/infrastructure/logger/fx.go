// Package logger contains logger infrastructure
package logger

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/TubeFlow/config"
)

// Module provides logger for fx dependency injection
var Module = fx.Module("logger",
	fx.Provide(provideLogger),
)

// provideLogger creates logger from config
func provideLogger(logCfg *config.LoggingConfig, svcCfg *config.ServiceConfig) zerolog.Logger {
	return New(logCfg.Level).With().Str("service", svcCfg.Name).Logger()
}
