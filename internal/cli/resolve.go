package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"asset-deps/internal/app"
	"asset-deps/internal/types"
)

type resolveOptions struct {
	Mode  string
	Cache string
}

func bindResolveFlags(cmd *cobra.Command, opts *resolveOptions) {
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "Resource mode override (debug|release)")
	cmd.Flags().StringVar(&opts.Cache, "cache", "", "Cache tier override (validated|request|precomputed)")
	_ = viper.BindPFlag("mode", cmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("cache_tier", cmd.Flags().Lookup("cache"))
}

func runtimeOptions(cmd *cobra.Command, opts resolveOptions) app.RuntimeOptions {
	return app.RuntimeOptions{
		Mode: types.ResourceMode(strings.ToLower(resolveString(cmd, opts.Mode, "mode", "mode"))),
		Tier: types.CacheTier(strings.ToLower(resolveString(cmd, opts.Cache, "cache_tier", "cache"))),
	}
}

func newDepsCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "deps PATH...",
		Short: "Print the transitive dependencies of assets or bundle URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(cmd.Context(), cmd, opts, args)
		},
	}
	bindResolveFlags(cmd, &opts)
	return cmd
}

func runDeps(ctx context.Context, cmd *cobra.Command, opts resolveOptions, paths []string) error {
	service := newAppService()
	result, err := service.Deps(ctx, app.DepsRequest{
		ConfigPath: assetConfigPath(),
		Paths:      paths,
		Options:    runtimeOptions(cmd, opts),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, entry := range result.Entries {
		if len(entry.Dependencies) == 0 {
			fmt.Fprintf(out, "%s: (none)\n", entry.Path)
			continue
		}
		fmt.Fprintf(out, "%s:\n", entry.Path)
		for _, dep := range entry.Dependencies {
			fmt.Fprintf(out, "  - %s\n", dep)
		}
	}
	return nil
}

func newOrderCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "order PATH...",
		Short: "Sort assets so that dependencies come first",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd.Context(), cmd, opts, args)
		},
	}
	bindResolveFlags(cmd, &opts)
	return cmd
}

func runOrder(ctx context.Context, cmd *cobra.Command, opts resolveOptions, paths []string) error {
	service := newAppService()
	result, err := service.Order(ctx, app.OrderRequest{
		ConfigPath: assetConfigPath(),
		Paths:      paths,
		Options:    runtimeOptions(cmd, opts),
	})
	if err != nil {
		return err
	}
	for _, path := range result.Paths {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func newIncludesCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "includes PATH...",
		Short: "Print the URLs a page has to include, dependencies first",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIncludes(cmd.Context(), cmd, opts, args)
		},
	}
	bindResolveFlags(cmd, &opts)
	return cmd
}

func runIncludes(ctx context.Context, cmd *cobra.Command, opts resolveOptions, paths []string) error {
	service := newAppService()
	result, err := service.Includes(ctx, app.IncludesRequest{
		ConfigPath: assetConfigPath(),
		Paths:      paths,
		Options:    runtimeOptions(cmd, opts),
	})
	if err != nil {
		return err
	}
	for _, url := range result.URLs {
		fmt.Fprintln(cmd.OutOrStdout(), url)
	}
	return nil
}
