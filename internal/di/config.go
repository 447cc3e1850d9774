package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/docstore-users/internal/config"
	"github.com/jrjohn/docstore-users/internal/observability"
)

// ConfigModule provides configuration dependencies
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.NewLoader,
		provideConfig,
		provideAppConfig,
		provideServerConfig,
		provideDatabaseConfig,
		provideMetricsConfig,
		provideTracingConfig,
	),
)

func provideConfig(loader *config.Loader) (*config.Config, error) {
	return loader.Load()
}

func provideAppConfig(cfg *config.Config) *config.AppConfig {
	return &cfg.App
}

func provideServerConfig(cfg *config.Config) *config.ServerConfig {
	return &cfg.Server
}

func provideDatabaseConfig(cfg *config.Config) *config.DatabaseConfig {
	return &cfg.Database
}

func provideMetricsConfig(cfg *config.Config) *observability.MetricsConfig {
	return &cfg.Metrics
}

func provideTracingConfig(cfg *config.Config) *observability.TracingConfig {
	return &cfg.Tracing
}
