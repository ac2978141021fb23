package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"asset-deps/internal/adapters"
	"asset-deps/internal/cache"
	"asset-deps/internal/core"
	"asset-deps/internal/ports"
	"asset-deps/internal/types"
)

// Runtime is a resolver wired from one asset config.
type Runtime struct {
	Config   types.AssetConfig
	Root     string
	Catalog  adapters.FileCatalogAdapter
	Resolver *core.DependencyResolver
}

// Open loads, normalizes and validates the asset config at configPath and
// wires the catalog, group catalog, extractors and cache tier it describes.
func (s Service) Open(ctx context.Context, configPath string, opts RuntimeOptions) (Runtime, error) {
	configPath = strings.TrimSpace(configPath)
	if configPath == "" {
		return Runtime{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("asset config path is required")
	}
	loaded, err := s.ConfigLoader.LoadConfig(configPath)
	if err != nil {
		return Runtime{}, err
	}
	cfg := applyRuntimeOptions(loaded, opts)
	compiler := core.NewConfigCompiler()
	cfg = compiler.Normalize(cfg)
	if err := compiler.ValidateConfig(ctx, cfg); err != nil {
		return Runtime{}, err
	}

	root := adapters.ResolvePath(cfg, cfg.Root)
	exists, err := afero.DirExists(s.FS, root)
	if err != nil {
		return Runtime{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to inspect asset root %s", root)).
			WithCause(err)
	}
	if !exists {
		return Runtime{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("asset root not found: %s", root))
	}
	catalog := adapters.NewFileCatalogAdapter(s.FS, root)
	groups := core.NewCachingGroupCatalog(adapters.NewConfigGroupCatalog(cfg, catalog))
	registry, err := buildExtractors(cfg.Extractors)
	if err != nil {
		return Runtime{}, err
	}
	tier, err := s.buildTier(cfg, catalog)
	if err != nil {
		return Runtime{}, err
	}
	log.Ctx(ctx).Debug().
		Str("root", root).
		Str("tier", string(cfg.Cache.Tier)).
		Str("mode", string(cfg.Mode)).
		Int("extractors", registry.Len()).
		Msg("asset runtime opened")
	return Runtime{
		Config:   cfg,
		Root:     root,
		Catalog:  catalog,
		Resolver: core.NewDependencyResolver(catalog, groups, registry, tier),
	}, nil
}

func applyRuntimeOptions(cfg types.AssetConfig, opts RuntimeOptions) types.AssetConfig {
	if opts.Mode != "" {
		cfg.Mode = opts.Mode
	}
	if opts.Tier != "" {
		cfg.Cache.Tier = opts.Tier
	}
	return cfg
}

func buildExtractors(mappings []types.ExtractorMapping) (core.ExtractorRegistry, error) {
	registry := core.NewExtractorRegistry()
	for _, mapping := range mappings {
		extractor, err := adapters.NewExtractor(mapping.Kind)
		if err != nil {
			return core.ExtractorRegistry{}, err
		}
		if mapping.Kind != types.ExtractorKindNone {
			cached, err := adapters.NewCachingExtractor(extractor, adapters.DefaultExtractorCacheSize)
			if err != nil {
				return core.ExtractorRegistry{}, err
			}
			extractor = cached
		}
		registry = registry.Map(mapping.Extension, extractor)
	}
	return registry, nil
}

func (s Service) buildTier(cfg types.AssetConfig, catalog ports.CatalogPort) (ports.DependencyCachePort, error) {
	switch cfg.Cache.Tier {
	case types.CacheTierRequest:
		return cache.NewRequestScoped(), nil
	case types.CacheTierPrecomputed:
		report, err := s.ReportReader.ReadReport(adapters.ResolvePath(cfg, cfg.Cache.Report))
		if err != nil {
			return nil, err
		}
		return cache.NewPrecomputed(report), nil
	default:
		return cache.NewValidated(cache.WithStampSource(catalog)), nil
	}
}

func requirePaths(paths []string) ([]string, error) {
	var cleaned []string
	for _, path := range paths {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one asset path is required")
	}
	return cleaned, nil
}
