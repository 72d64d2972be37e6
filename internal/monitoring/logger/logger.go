// Package logger builds the application zap logger.
package logger

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a new logger instance with the given configuration. A nil
// configuration yields a JSON logger at info level.
func New(ctx context.Context, config *Config) (*zap.Logger, error) {
	if config == nil {
		config = &Config{}
	}
	if config.File != nil {
		if err := config.File.validate(); err != nil {
			return nil, fmt.Errorf("invalid log file config: %w", err)
		}
	}

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(config.Level),
		Encoding:          config.encoding(),
		DisableStacktrace: true,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "name",
			CallerKey:      "caller",
			MessageKey:     "msg",
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if config.Name != "" {
		logger = logger.Named(config.Name)
	}

	hostname, err := os.Hostname()
	if err == nil {
		logger = logger.With(zap.String("host", hostname))
	} else {
		logger.Error("Could not detect hostname", zap.Error(err))
	}

	if config.File != nil {
		fileCore := newFileCore(config.File, zapConfig.EncoderConfig, zapConfig.Level)
		logger = logger.WithOptions(
			zap.WrapCore(func(core zapcore.Core) zapcore.Core {
				return zapcore.NewTee(core, fileCore)
			}),
		)
	}

	if config.OTEL != nil {
		otelCore, err := setupOTELExporter(ctx, config.OTEL)
		if err != nil {
			return nil, fmt.Errorf("failed to setup OTEL exporter: %w", err)
		}

		logger = logger.WithOptions(
			zap.WrapCore(func(core zapcore.Core) zapcore.Core {
				return zapcore.NewTee(core, otelCore)
			}),
		)
	}

	return logger, nil
}

// newFileCore writes JSON entries into a size-rotated file.
func newFileCore(config *FileConfig, encoderConfig zapcore.EncoderConfig, level zap.AtomicLevel) zapcore.Core {
	writer := &lumberjack.Logger{
		Filename:   config.Path,
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		Compress:   config.Compress,
	}

	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(writer), level)
}
