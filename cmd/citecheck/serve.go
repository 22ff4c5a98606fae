// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citecheck/internal/detect"
	"github.com/pdiddy/citecheck/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the detection and verification HTTP API",
	Long: `Start the HTTP API. Endpoints:
  POST /api/detect-text        JSON {"text": ...}
  POST /api/detect             multipart "file"
  POST /api/verify-references  JSON {"text": ...}
  POST /api/compare            multipart "file1" and "file2"
  GET  /healthz
  GET  /metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8000)")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer syncLogger(a.logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Serve, a.verifier, detect.New(),
		server.WithLogger(a.logger),
		server.WithMetrics(a.metrics),
		server.WithVersion(version),
	)
	return srv.Run(ctx)
}
