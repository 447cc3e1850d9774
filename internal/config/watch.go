package config

import (
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch re-decodes the configuration whenever the config file is written and
// passes the fresh value to onChange. Invalid edits are logged and ignored.
// It is a no-op when no config file was found.
func (l *Loader) Watch(logger *zap.Logger, onChange func(*Config)) {
	if l.v.ConfigFileUsed() == "" {
		logger.Debug("No config file in use, hot reload disabled")
		return
	}

	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		logger.Info("Config file changed", zap.String("file", e.Name))

		cfg, err := l.decode()
		if err != nil {
			logger.Error("Failed to reload config", zap.Error(err))
			return
		}
		onChange(cfg)
	})
	l.v.WatchConfig()
}
