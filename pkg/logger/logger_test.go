package logger

import (
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"development config", Config{Level: "debug", Development: true, Encoding: "console"}},
		{"production config", Config{Level: "info", Development: false, Encoding: "json"}},
		{"invalid level falls back to info", Config{Level: "invalid", Encoding: "json"}},
		{"empty encoding uses default", Config{Level: "warn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.config)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if logger == nil {
				t.Fatal("New() returned nil logger")
			}
			logger.Sync()
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNew_AtomicLevel(t *testing.T) {
	atom := zap.NewAtomicLevel()
	logger, err := New(Config{Level: "warn", Encoding: "json", AtomicLevel: &atom})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer logger.Sync()

	if atom.Level() != zapcore.WarnLevel {
		t.Errorf("AtomicLevel = %v, want warn", atom.Level())
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}

	atom.SetLevel(zapcore.DebugLevel)
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be enabled after changing the atomic level")
	}
}

func TestDefault(t *testing.T) {
	originalLogLevel := os.Getenv("LOG_LEVEL")
	originalAppEnv := os.Getenv("APP_ENV")
	defer func() {
		os.Setenv("LOG_LEVEL", originalLogLevel)
		os.Setenv("APP_ENV", originalAppEnv)
	}()

	for _, appEnv := range []string{"development", "production", ""} {
		t.Run(appEnv, func(t *testing.T) {
			os.Setenv("LOG_LEVEL", "info")
			os.Setenv("APP_ENV", appEnv)

			logger := Default()
			if logger == nil {
				t.Error("Default() returned nil")
			}
			logger.Sync()
		})
	}
}

func TestWithContext(t *testing.T) {
	logger, err := New(Config{Level: "info", Development: true, Encoding: "console"})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	contextLogger := WithContext(logger, zap.String("variant", "native"))
	if contextLogger == nil {
		t.Fatal("WithContext() returned nil")
	}
	if contextLogger == logger {
		t.Error("WithContext() should return a new logger instance")
	}
}
