// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/citecheck/internal/document"
	"github.com/pdiddy/citecheck/internal/httputil"
	"github.com/pdiddy/citecheck/internal/logging"
	"github.com/pdiddy/citecheck/internal/metrics"
	"github.com/pdiddy/citecheck/internal/registry"
	"github.com/pdiddy/citecheck/internal/verify"
	"github.com/pdiddy/citecheck/pkg/types"
)

// app bundles what every command needs once the config is resolved.
type app struct {
	cfg      types.Config
	logger   *zap.Logger
	metrics  *metrics.Recorder
	verifier *verify.Verifier
}

func newApp(cfg types.Config) (*app, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	rec := metrics.New()

	client := httputil.NewClient(cfg.HTTP)
	v := verify.New(registry.NewCheckers(client, cfg),
		verify.WithLogger(logger),
		verify.WithMetrics(rec),
		verify.WithMaxConcurrent(cfg.Verify.MaxConcurrent),
		verify.WithMaxCandidates(cfg.Verify.MaxCandidates),
	)

	return &app{cfg: cfg, logger: logger, metrics: rec, verifier: v}, nil
}

// readInput returns the text of path, or of stdin when path is "-" or empty.
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return document.FromBytes(data, "stdin.txt")
	}
	return document.FromFile(path)
}

func syncLogger(l *zap.Logger) {
	_ = l.Sync()
}
