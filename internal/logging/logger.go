// Package logging builds the zap loggers used across the library.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger for the given level. Development mode switches to
// the console encoder with colored levels; production emits JSON.
func New(level string, development bool) (*zap.Logger, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(l),
		Development:       development,
		Encoding:          encoding(development),
		EncoderConfig:     encoderConfig(development),
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !development,
	}

	return cfg.Build()
}

// NewDefault creates a production logger, falling back to a no-op logger
// if the build fails.
func NewDefault() *zap.Logger {
	logger, err := New("info", false)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func encoding(development bool) string {
	if development {
		return "console"
	}
	return "json"
}

func encoderConfig(development bool) zapcore.EncoderConfig {
	if development {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}
