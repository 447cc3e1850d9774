package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/docstore-users/internal/config"
)

// AppModule aggregates all application modules
var AppModule = fx.Options(
	ConfigModule,
	LoggerModule,
	ObservabilityModule,
	DatabaseModule,
	DAOModule,        // typed DAO for the mapped variant
	RepositoryModule, // Repository layer (delegates to DAO)
	ServiceModule,
	ControllerModule,
	HTTPServerModule,
)

// PrintBanner prints the application startup banner
func PrintBanner(cfg *config.Config, logger *zap.Logger) {
	logger.Info("===========================================")
	logger.Info("        User Data-Access Service           ")
	logger.Info("===========================================")
	logger.Info("Application Info",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)
	logger.Info("Data Access Config",
		zap.String("database", cfg.Database.Name),
		zap.String("collection", cfg.Database.Collection),
		zap.Bool("seed", cfg.Seed.Enabled),
		zap.Bool("exercises_stubbed", cfg.Exercises.Stubbed),
	)
	logger.Info("===========================================")
}
