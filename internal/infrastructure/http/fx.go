// Package http provides the operational HTTP server for fx
package http

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/TubeFlow/config"
	"github.com/Conte777/TubeFlow/internal/infrastructure/http/server"
)

// Module provides HTTP server for fx DI
var Module = fx.Module("http",
	fx.Provide(NewServerFx),
	fx.Invoke(func(*server.Server) {}),
)

// NewServerFx creates HTTP server with lifecycle hooks for fx DI.
// With an empty port the server is built but never started.
func NewServerFx(
	lc fx.Lifecycle,
	serviceCfg *config.ServiceConfig,
	downloadCfg *config.DownloadConfig,
	logger zerolog.Logger,
) *server.Server {
	srv := server.NewServer(serviceCfg.Name, serviceCfg.Port, logger)
	srv.RegisterMetrics()
	srv.RegisterHealth(server.NewHealthHandler(logger, server.NewDirChecker("download_dir", downloadCfg.Dir)))

	if serviceCfg.Port == "" {
		logger.Info().Msg("SERVICE_PORT is empty, HTTP server disabled")
		return srv
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}
