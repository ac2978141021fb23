package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"asset-deps/internal/app"
)

type inspectOptions struct {
	Report string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a dependency report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Report, "report", "deps.report.yaml", "Dependency report path")
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		ReportPath: resolveString(cmd, opts.Report, "report", "report"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "report version: %s\n", result.Version)
	if !result.GeneratedAt.IsZero() {
		fmt.Fprintf(out, "generated at: %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintln(out, "bundles:")
	for _, summary := range result.Groups {
		fmt.Fprintf(out, "- %s (%s): %d resources\n", summary.URL, summary.Type, summary.Count)
		if len(summary.Resources) > 0 {
			fmt.Fprintf(out, "  %s\n", strings.Join(summary.Resources, ", "))
		}
	}
	fmt.Fprintf(out, "dependency entries: %d (%d without dependencies)\n", result.Entries, result.Leaves)
	return nil
}
