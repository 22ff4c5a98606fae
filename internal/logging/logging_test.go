// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/citecheck/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citecheck.log")

	logger, err := New(types.LogConfig{Level: "debug", Format: "json", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Debug("verdict", zap.String("verdict", "VALID"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"verdict"`)
	assert.Contains(t, string(data), `"verdict":"VALID"`)
	assert.Contains(t, string(data), `"ts":`)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citecheck.log")

	logger, err := New(types.LogConfig{Level: "warn", Format: "json", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_Defaults(t *testing.T) {
	logger, err := New(types.LogConfig{})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(types.LogConfig{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")
}
