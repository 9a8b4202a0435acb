// Command bikeshare-dashboard serves and reports rental totals of the
// bike-sharing daily dataset.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/i474232898/bikeshare-dashboard/internal/config"
	"github.com/i474232898/bikeshare-dashboard/internal/logger"
	"github.com/i474232898/bikeshare-dashboard/internal/rental"
	"github.com/i474232898/bikeshare-dashboard/internal/rental/sources"
	"github.com/i474232898/bikeshare-dashboard/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bikeshare-dashboard",
		Short:         "Explore bike-sharing rental totals by season, weekday and customer type",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newReportCmd(), newExportCmd())
	return root
}

// app holds what every command needs once configuration is read and the
// dataset is loaded.
type app struct {
	cfg     *config.AppConfig
	log     *zap.Logger
	service *rental.Service
}

// bootstrap reads configuration, builds the logger and loads the dataset.
// A dataset that fails to parse aborts startup.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	// Shared HTTP client for remote data sources.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	src := sources.New(cfg.DataSource, httpClient)
	service := rental.NewService(store.NewMemoryStore(), src, cfg.Load, log)

	loadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if err := service.Reload(loadCtx); err != nil {
		_ = log.Sync()
		return nil, err
	}

	return &app{cfg: cfg, log: log, service: service}, nil
}

// rangeFlags are the --start/--end flags shared by report and export.
type rangeFlags struct {
	start string
	end   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "first day of the range, YYYY-MM-DD (default: first day in the dataset)")
	cmd.Flags().StringVar(&f.end, "end", "", "last day of the range, YYYY-MM-DD (default: last day in the dataset)")
}

// dateRange parses the flags; unset bounds stay zero and default later.
func (f *rangeFlags) dateRange(bounds rental.DateRange) (rental.DateRange, error) {
	r := bounds
	if f.start != "" {
		t, err := time.Parse(time.DateOnly, f.start)
		if err != nil {
			return rental.DateRange{}, fmt.Errorf("invalid --start: %w", err)
		}
		r.Start = t
	}
	if f.end != "" {
		t, err := time.Parse(time.DateOnly, f.end)
		if err != nil {
			return rental.DateRange{}, fmt.Errorf("invalid --end: %w", err)
		}
		r.End = t
	}
	if r.End.Before(r.Start) {
		return rental.DateRange{}, fmt.Errorf("--end %s is before --start %s",
			r.End.Format(time.DateOnly), r.Start.Format(time.DateOnly))
	}
	return r, nil
}
