package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/facet-ui/facet/internal/config"
	"github.com/facet-ui/facet/internal/errors"
	"github.com/facet-ui/facet/pkg/middleware"
	"github.com/facet-ui/facet/pkg/server"
	"github.com/facet-ui/facet/pkg/upload"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the built-in demo app",
		Long: `Serve the built-in demo app using the project's facet.yaml.

This is a smoke test for a deployment: it exercises session bootstrap,
event dispatch, patch streaming, uploads, and the metrics endpoint with
the configuration a real app would use. Without a facet.yaml it runs on
defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides facet.yaml)")

	return cmd
}

func runServe(addrOverride string) error {
	cfg, err := config.Find(".")
	if err != nil {
		if !errors.HasCode(err, errors.CodeConfigNotFound) {
			return err
		}
		cfg = config.New()
	}
	if addrOverride != "" {
		cfg.Server.Addr = addrOverride
	}
	logger := cfg.Logger()

	title := cfg.Name
	if title == "" {
		title = "Facet"
	}

	srv := server.New(demoApp(title),
		server.WithAddr(cfg.Server.Addr),
		server.WithLogger(logger),
		server.WithHeartbeatInterval(cfg.Server.Heartbeat.Std()),
		server.WithSessionTTL(cfg.Server.SessionTTL.Std()),
		server.WithMaxSessions(cfg.Server.MaxSessions),
	)
	srv.Use(
		middleware.OpenTelemetry(),
		middleware.Prometheus(),
	)

	store, err := uploadStore(cfg)
	if err != nil {
		return err
	}
	srv.Router().Post("/facet/upload", upload.HandlerWithConfig(store, upload.Config{
		MaxFileSize: cfg.Upload.MaxSize,
	}).ServeHTTP)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go upload.Sweep(ctx, store, 5*time.Minute, cfg.Upload.Expiry.Std(), logger)

	info("serving %s on %s", title, cfg.Server.Addr)
	return srv.Run(ctx)
}

// uploadStore builds the upload backend facet.yaml selects. The s3 store
// needs credentials wired in code, so the demo server rejects it.
func uploadStore(cfg *config.Config) (upload.Store, error) {
	switch cfg.Upload.Store {
	case "disk":
		return upload.NewDiskStore(cfg.UploadDir(), cfg.Upload.MaxSize)
	case "s3":
		return nil, errors.Newf(errors.CategoryConfig,
			"the demo server does not support the s3 upload store; pass an S3Store to upload.Handler in your app")
	default:
		return upload.NewMemStore(cfg.Upload.MaxSize), nil
	}
}
