package core

import (
	"context"
	"sort"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"asset-deps/internal/types"
)

const ReportVersion = "v1"

const defaultReportWorkers = 4

// ReportBuilder resolves every configured bundle and every catalog asset into
// a DependencyReport. Resolutions run concurrently; the report layout only
// depends on configuration order and asset paths.
type ReportBuilder struct {
	resolver *DependencyResolver
	workers  int
	now      func() time.Time
}

func NewReportBuilder(resolver *DependencyResolver, workers int) ReportBuilder {
	if workers <= 0 {
		workers = defaultReportWorkers
	}
	return ReportBuilder{
		resolver: resolver,
		workers:  workers,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for generated_at.
func (b ReportBuilder) WithClock(now func() time.Time) ReportBuilder {
	if now != nil {
		b.now = now
	}
	return b
}

type bundleJob struct {
	assetType types.AssetType
	url       string
}

func (b ReportBuilder) Build(ctx context.Context) (types.DependencyReport, error) {
	if b.resolver == nil {
		return types.DependencyReport{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("report builder has no resolver")
	}
	var jobs []bundleJob
	for _, assetType := range []types.AssetType{types.AssetTypeScript, types.AssetTypeStylesheet} {
		for _, url := range b.resolver.Groups.BundleURLs(assetType) {
			jobs = append(jobs, bundleJob{assetType: assetType, url: url})
		}
	}
	var assets []types.Asset
	if b.resolver.Catalog != nil {
		listed, err := b.resolver.Catalog.ListAssets()
		if err != nil {
			return types.DependencyReport{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to list assets").
				WithCause(err)
		}
		assets = append(assets, listed...)
		sort.SliceStable(assets, func(i, j int) bool {
			return assets[i].Path < assets[j].Path
		})
	}

	groups := make([]types.ReportGroup, len(jobs))
	entries := make([]types.ReportEntry, len(jobs)+len(assets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for idx, job := range jobs {
		g.Go(func() error {
			resolved, _, err := b.resolver.Bundle(gctx, job.url)
			if err != nil {
				return err
			}
			resources := make([]string, 0, len(resolved.Members))
			for _, member := range resolved.Members {
				resources = append(resources, member.Path)
			}
			groups[idx] = types.ReportGroup{ConsolidatedURL: job.url, Resources: resources}
			entries[idx] = types.ReportEntry{Path: job.url, Dependencies: nonNil(resolved.Dependencies)}
			return nil
		})
	}
	for idx, asset := range assets {
		g.Go(func() error {
			deps, err := b.resolver.AssetDependencies(gctx, asset)
			if err != nil {
				return err
			}
			entries[len(jobs)+idx] = types.ReportEntry{Path: asset.Path, Dependencies: nonNil(deps)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.DependencyReport{}, err
	}

	report := types.DependencyReport{
		Version:      ReportVersion,
		GeneratedAt:  b.now().UTC().Format(time.RFC3339),
		Dependencies: entries,
	}
	for idx, job := range jobs {
		switch job.assetType {
		case types.AssetTypeScript:
			report.Scripts = append(report.Scripts, groups[idx])
		case types.AssetTypeStylesheet:
			report.Stylesheets = append(report.Stylesheets, groups[idx])
		}
	}
	log.Ctx(ctx).Debug().
		Int("bundles", len(jobs)).
		Int("assets", len(assets)).
		Msg("dependency report built")
	return report, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
