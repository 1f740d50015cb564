package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shouni/ok-face-mixer/pkg/config"
	"github.com/shouni/ok-face-mixer/pkg/metrics"
	"github.com/shouni/ok-face-mixer/pkg/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start the HTTP server",
		Args:    cobra.ExactArgs(0),
		RunE:    runServe,
	}

	cmd.Flags().String("addr", "", "Address to listen on (OKFACE_ADDR)")
	cmd.Flags().String("static-dir", "", "Directory of the prebuilt frontend (OKFACE_STATIC_DIR)")
	cmd.Flags().String("generator", "", "Generator backend: face or gemini (OKFACE_GENERATOR)")
	cmd.Flags().Int("size", 0, "Image size in pixels (OKFACE_IMAGE_SIZE)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, stringFlags{
		"addr":       func(c *config.Config) *string { return &c.Addr },
		"static-dir": func(c *config.Config) *string { return &c.StaticDir },
		"generator":  func(c *config.Config) *string { return &c.Generator },
	})
	if err != nil {
		return err
	}

	if err := setupLogging(cfg, os.Stderr); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mx, err := newMixer(ctx, cfg)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	if info, err := os.Stat(cfg.StaticDir); err != nil || !info.IsDir() {
		slog.Warn("static directory is not available, frontend requests will return 404", "dir", cfg.StaticDir)
	}

	router := server.NewRouter(mx, server.RouterOptions{
		StaticDir: cfg.StaticDir,
		Metrics:   m,
	})
	srv := server.New(router, server.Options{
		Addr:            cfg.Addr,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	})
	return srv.Run(ctx)
}
