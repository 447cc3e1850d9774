package di

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/docstore-users/internal/observability"
)

// ObservabilityModule provides OpenTelemetry metrics and tracing.
var ObservabilityModule = fx.Module("observability",
	fx.Provide(
		observability.NewMetricsProvider,
		observability.NewTracingProvider,
	),
	fx.Invoke(registerObservabilityShutdown),
)

func registerObservabilityShutdown(
	lc fx.Lifecycle,
	metrics *observability.MetricsProvider,
	tracing *observability.TracingProvider,
	logger *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Flushing telemetry")
			if err := tracing.Shutdown(ctx); err != nil {
				logger.Warn("Tracing shutdown failed", zap.Error(err))
			}
			return metrics.Shutdown(ctx)
		},
	})
}
