// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the process zap logger from types.LogConfig.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/citecheck/pkg/types"
)

// New builds a zap logger. Empty fields fall back to level info, console
// encoding and stderr output. An unknown format is an error; an unknown
// level is treated as info.
func New(cfg types.LogConfig) (*zap.Logger, error) {
	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	var encCfg zapcore.EncoderConfig
	encoding := strings.ToLower(cfg.Format)
	switch encoding {
	case "", "console":
		encoding = "console"
		encCfg = zap.NewDevelopmentEncoderConfig()
	case "json":
		encCfg = zap.NewProductionEncoderConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q (want json or console)", cfg.Format)
	}
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(cfg.Level)),
		Encoding:         encoding,
		EncoderConfig:    encCfg,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps debug, info, warn and error (any case) to a zap level.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
