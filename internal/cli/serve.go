package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "wxstory/internal/api/http"
	"wxstory/internal/cache"
	"wxstory/internal/metrics"
	"wxstory/internal/scheduler"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the weather story HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		col := metrics.NewCollector("wxstory")

		svc, err := newService(col)
		if err != nil {
			return err
		}
		gen := newGenerator(col)

		c, err := cache.Open()
		if err != nil {
			return err
		}

		server := httpapi.NewServer(httpapi.Options{
			Service:   svc,
			Generator: gen,
			Cache:     c,
			Metrics:   col,
			Log:       logger,
			Version:   version,
			Offline:   cfg.Offline,
		})

		watcher := scheduler.New(cfg.WatchLocations, cfg.WatchInterval, svc, logger)
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()

		port := servePort
		if port == "" {
			port = cfg.Port
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Listen(port)
		}()
		logger.Info("server listening", "port", port, "offline", cfg.Offline)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (defaults to PORT env or 8080)")
	rootCmd.AddCommand(serveCmd)
}
