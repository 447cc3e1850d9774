package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/docstore-users/internal/config"
	"github.com/jrjohn/docstore-users/pkg/logger"
)

// LoggerModule provides logging dependencies. The level follows log.level in
// the config file while the process runs.
var LoggerModule = fx.Module("logger",
	fx.Provide(
		provideLogLevel,
		provideLogger,
	),
	fx.Invoke(watchLogLevel),
)

func provideLogLevel() zap.AtomicLevel {
	return zap.NewAtomicLevel()
}

func provideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	return logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.Debug,
		Encoding:    cfg.Log.Encoding,
		AtomicLevel: &level,
	})
}

func watchLogLevel(loader *config.Loader, level zap.AtomicLevel, log *zap.Logger) {
	loader.Watch(log, func(cfg *config.Config) {
		next := logger.ParseLevel(cfg.Log.Level)
		if next == level.Level() {
			return
		}
		level.SetLevel(next)
		log.Info("Log level changed", zap.Stringer("level", next))
	})
}
