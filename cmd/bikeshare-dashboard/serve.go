package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/bikeshare-dashboard/internal/api/http"
	"github.com/i474232898/bikeshare-dashboard/internal/scheduler"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the aggregate API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.log.Sync() //nolint:errcheck

	// Optional periodic reload of the dataset.
	sched := scheduler.New(a.cfg.ReloadInterval, a.service, a.log)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	server := httpapi.NewApp(a.service, a.log)

	go func() {
		a.log.Info("http server listening", zap.String("port", a.cfg.Port))
		if err := server.Listen(":" + a.cfg.Port); err != nil {
			a.log.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		a.log.Error("error during shutdown", zap.Error(err))
	}
	return nil
}
