// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes detection and citation verification over HTTP
// using gin. Routes:
//
//	POST /api/detect-text        {"text": ...}  analysis + references
//	POST /api/detect             multipart file analysis + references
//	POST /api/verify-references  {"text": ...}  references only
//	POST /api/compare            multipart file1, file2
//	GET  /healthz
//	GET  /metrics
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/citecheck/internal/metrics"
	"github.com/pdiddy/citecheck/pkg/types"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 10 * time.Second

// Verifier produces a verification report for a document's text.
type Verifier interface {
	Verify(ctx context.Context, text string) types.Report
}

// Analyzer produces an AI-probability analysis for text.
type Analyzer interface {
	Analyze(text string) (types.Analysis, error)
}

// Server wires the handlers to their dependencies.
type Server struct {
	cfg      types.ServeConfig
	verifier Verifier
	analyzer Analyzer
	metrics  *metrics.Recorder
	logger   *zap.Logger
	version  string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger (default no-op).
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics mounts the recorder's registry on /metrics.
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Server) { s.metrics = m }
}

// WithVersion sets the version reported by /healthz.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New creates a Server.
func New(cfg types.ServeConfig, v Verifier, a Analyzer, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		verifier: v,
		analyzer: a,
		logger:   zap.NewNop(),
		version:  "dev",
	}
	if s.cfg.MaxUploadBytes <= 0 {
		s.cfg.MaxUploadBytes = types.DefaultConfig().Serve.MaxUploadBytes
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the gin route tree.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), cors(), s.logRequests())

	r.GET("/healthz", s.health)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := r.Group("/api")
	api.POST("/detect-text", s.detectText)
	api.POST("/detect", s.detectFile)
	api.POST("/verify-references", s.verifyReferences)
	api.POST("/compare", s.compare)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
