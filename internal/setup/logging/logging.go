// Package logging builds the application's zap loggers.
package logging

import (
	"fmt"
	"os"

	"github.com/coopmed/coopmed/internal/setup/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLoggers creates the main application logger and a separate database
// logger. The database logger only emits query logs when enabled in config,
// so production deployments are not flooded by the query hook.
func NewLoggers(cfg *config.Debug) (*zap.Logger, *zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		zapLevel,
	)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	dbLevel := zapLevel
	if !cfg.LogQueries && dbLevel < zapcore.InfoLevel {
		dbLevel = zapcore.InfoLevel
	}

	dbCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		dbLevel,
	)

	dbLogger := zap.New(dbCore, zap.AddCaller()).Named("db")

	return logger, dbLogger, nil
}
