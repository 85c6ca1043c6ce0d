package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/emotiondetection/internal/emotion"
	"github.com/spacesedan/emotiondetection/internal/monitoring"
	"github.com/spacesedan/emotiondetection/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	detector, cleanup, err := buildDetector(ctx, cfg)
	if err != nil {
		slog.Error("[Main] Failed to build classifier", slog.String("error", err.Error()))
		return err
	}
	defer cleanup()

	healthy := &atomic.Bool{}
	healthy.Store(true)

	handler := server.NewHandler(detector, cfg.Backend).WithHealthCheck(healthy)
	if publisher := buildPublisher(ctx, cfg); publisher != nil {
		defer publisher.Close()
		handler.WithPublisher(publisher)
	}

	srv := server.NewServer(cfg.Addr(), handler)

	g, gctx := errgroup.WithContext(ctx)

	if checker, ok := detector.(emotion.HealthChecker); ok {
		g.Go(func() error {
			monitoring.MonitorClassifierHealth(gctx, checker, cfg.HealthcheckInterval, healthy)
			return nil
		})
	}

	g.Go(func() error {
		slog.Info("[Main] Server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("[Main] Shutting down server gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		handler.Wait()
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Error("[Main] Server stopped with error", slog.String("error", err.Error()))
		return err
	}
	return nil
}
