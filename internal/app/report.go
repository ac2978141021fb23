package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"asset-deps/internal/adapters"
	"asset-deps/internal/core"
	"asset-deps/internal/types"
)

const defaultReportPath = "deps.report.yaml"

// Report resolves everything the config describes and writes the report the
// precomputed cache tier is seeded from. It always resolves against the
// validated tier so a stale report never feeds its successor.
func (s Service) Report(ctx context.Context, req ReportRequest) (ReportResult, error) {
	runtime, err := s.Open(ctx, req.ConfigPath, RuntimeOptions{Tier: types.CacheTierValidated})
	if err != nil {
		return ReportResult{}, err
	}
	output := strings.TrimSpace(req.OutputPath)
	if output == "" {
		output = adapters.ResolvePath(runtime.Config, runtime.Config.Cache.Report)
	}
	if output == "" {
		output = adapters.ResolvePath(runtime.Config, defaultReportPath)
	}
	report, err := core.NewReportBuilder(runtime.Resolver, req.Workers).WithClock(s.Clock).Build(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	if err := s.ReportWriter.WriteReport(output, report); err != nil {
		return ReportResult{}, err
	}
	log.Ctx(ctx).Debug().Str("path", output).Int("entries", len(report.Dependencies)).Msg("report written")
	return ReportResult{
		OutputPath: output,
		Bundles:    len(report.Scripts) + len(report.Stylesheets),
		Entries:    len(report.Dependencies),
	}, nil
}
