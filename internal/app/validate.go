package app

import (
	"context"

	"asset-deps/internal/cache"
	"asset-deps/internal/core"
)

// Validate checks the asset config and resolves every bundle and asset once,
// so dependency cycles surface as validation failures. The configured tier
// must open, but resolution runs against fresh validated entries.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	runtime, err := s.Open(ctx, req.ConfigPath, RuntimeOptions{})
	if err != nil {
		return ValidateResult{}, err
	}
	runtime.Resolver.SetCache(cache.NewValidated(cache.WithStampSource(runtime.Catalog)))
	report, err := core.NewReportBuilder(runtime.Resolver, 0).WithClock(s.Clock).Build(ctx)
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		Root:              runtime.Root,
		Tier:              runtime.Config.Cache.Tier,
		ScriptBundles:     len(report.Scripts),
		StylesheetBundles: len(report.Stylesheets),
		Assets:            len(report.Dependencies) - len(report.Scripts) - len(report.Stylesheets),
	}, nil
}
