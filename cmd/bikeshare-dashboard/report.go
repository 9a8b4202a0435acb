package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
	"github.com/i474232898/bikeshare-dashboard/internal/report"
)

func newReportCmd() *cobra.Command {
	var flags rangeFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print rental totals for a date range as tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := summarize(cmd, &flags)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), report.RenderText(summary))
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		flags rangeFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write rental totals for a date range to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := summarize(cmd, &flags)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := report.WriteWorkbook(f, summary); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d days)\n", out, summary.Records)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "bikeshare_report.xlsx", "output workbook path")
	return cmd
}

func summarize(cmd *cobra.Command, flags *rangeFlags) (rental.Summary, error) {
	a, err := bootstrap(cmd.Context())
	if err != nil {
		return rental.Summary{}, err
	}
	defer a.log.Sync() //nolint:errcheck

	bounds, err := a.service.Bounds()
	if err != nil {
		return rental.Summary{}, err
	}
	r, err := flags.dateRange(bounds)
	if err != nil {
		return rental.Summary{}, err
	}

	summary, err := a.service.Summarize(r)
	if err != nil {
		return rental.Summary{}, err
	}
	a.log.Debug("report range", zap.Time("start", summary.Range.Start), zap.Time("end", summary.Range.End))
	return summary, nil
}
