package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"asset-deps/internal/app"
)

type reportOptions struct {
	Output  string
	Workers int
}

func newReportCommand() *cobra.Command {
	opts := reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Resolve every bundle and asset and write the dependency report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Output, "output", "", "Report path (defaults to cache.report of the asset config)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "Concurrent resolutions")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	return cmd
}

func runReport(ctx context.Context, cmd *cobra.Command, opts reportOptions) error {
	service := newAppService()
	result, err := service.Report(ctx, app.ReportRequest{
		ConfigPath: assetConfigPath(),
		OutputPath: resolveString(cmd, opts.Output, "output", "output"),
		Workers:    resolveInt(cmd, opts.Workers, "workers", "workers"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "report written: %s (%d bundles, %d entries)\n", result.OutputPath, result.Bundles, result.Entries)
	return nil
}
