package metrics

import (
	"go.uber.org/fx"

	"github.com/Conte777/TubeFlow/internal/domain/video/deps"
)

// Module provides metrics for fx dependency injection
var Module = fx.Module("metrics",
	fx.Provide(
		GetDefaultMetrics,
		func(m *Metrics) deps.MetricsRecorder { return m },
	),
)
