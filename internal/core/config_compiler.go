package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/bmatcuk/doublestar"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"

	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

const ConfigAPIVersion = "v1"

type ConfigCompiler struct{}

var validCacheTiers = map[types.CacheTier]struct{}{
	types.CacheTierValidated:   {},
	types.CacheTierRequest:     {},
	types.CacheTierPrecomputed: {},
}

var validExtractorKinds = map[types.ExtractorKind]struct{}{
	types.ExtractorKindReference: {},
	types.ExtractorKindImport:    {},
	types.ExtractorKindNone:      {},
}

var validModes = map[types.ResourceMode]struct{}{
	types.ResourceModeDebug:   {},
	types.ResourceModeRelease: {},
}

var validConsolidateModes = map[types.ConsolidateMode]struct{}{
	types.ConsolidateAlways:      {},
	types.ConsolidateNever:       {},
	types.ConsolidateReleaseOnly: {},
}

// DefaultExtractors is used when a config declares no extractor mappings.
var DefaultExtractors = []types.ExtractorMapping{
	{Extension: ".js", Kind: types.ExtractorKindReference},
	{Extension: ".css", Kind: types.ExtractorKindImport},
	{Extension: ".less", Kind: types.ExtractorKindImport},
}

func NewConfigCompiler() ConfigCompiler {
	return ConfigCompiler{}
}

// Normalize fills in defaults for omitted settings.
func (c ConfigCompiler) Normalize(cfg types.AssetConfig) types.AssetConfig {
	if strings.TrimSpace(cfg.Root) == "" {
		cfg.Root = "."
	}
	if cfg.Mode == "" {
		cfg.Mode = types.ResourceModeRelease
	}
	if cfg.Cache.Tier == "" {
		cfg.Cache.Tier = types.CacheTierValidated
	}
	if len(cfg.Extractors) == 0 {
		cfg.Extractors = append([]types.ExtractorMapping(nil), DefaultExtractors...)
	}
	cfg.Scripts.Groups = normalizeGroups(cfg.Scripts.Groups)
	cfg.Stylesheets.Groups = normalizeGroups(cfg.Stylesheets.Groups)
	return cfg
}

func normalizeGroups(groups []types.GroupConfig) []types.GroupConfig {
	if len(groups) == 0 {
		return groups
	}
	out := make([]types.GroupConfig, len(groups))
	for idx, group := range groups {
		if group.Consolidate == "" {
			group.Consolidate = types.ConsolidateAlways
		}
		out[idx] = group
	}
	return out
}

// ValidateConfig checks a normalized config and reports every problem at
// once.
func (c ConfigCompiler) ValidateConfig(ctx context.Context, cfg types.AssetConfig) error {
	assert.NotEmpty(ctx, cfg.Root, "root must be set")
	assert.NotEmpty(ctx, string(cfg.Cache.Tier), "cache.tier must be set")
	assert.NotEmpty(ctx, string(cfg.Mode), "mode must be set")

	var problems *multierror.Error
	if cfg.APIVersion != ConfigAPIVersion {
		problems = multierror.Append(problems, fmt.Errorf("api_version must be %s, got %q", ConfigAPIVersion, cfg.APIVersion))
	}
	if _, ok := validModes[cfg.Mode]; !ok {
		problems = multierror.Append(problems, fmt.Errorf("invalid mode %s", cfg.Mode))
	}
	if _, ok := validCacheTiers[cfg.Cache.Tier]; !ok {
		problems = multierror.Append(problems, fmt.Errorf("invalid cache tier %s", cfg.Cache.Tier))
	}
	if cfg.Cache.Tier == types.CacheTierPrecomputed && strings.TrimSpace(cfg.Cache.Report) == "" {
		problems = multierror.Append(problems, fmt.Errorf("cache.report is required for the precomputed tier"))
	}
	for _, mapping := range cfg.Extractors {
		if strings.TrimSpace(mapping.Extension) == "" {
			problems = multierror.Append(problems, fmt.Errorf("extractor mapping missing extension"))
			continue
		}
		if _, ok := validExtractorKinds[mapping.Kind]; !ok {
			problems = multierror.Append(problems, fmt.Errorf("extractor for %s has invalid kind %s", mapping.Extension, mapping.Kind))
		}
	}

	seenURLs := map[string]struct{}{}
	for _, section := range []struct {
		name      string
		assetType types.AssetType
		config    types.AssetTypeConfig
	}{
		{name: "scripts", assetType: types.AssetTypeScript, config: cfg.Scripts},
		{name: "stylesheets", assetType: types.AssetTypeStylesheet, config: cfg.Stylesheets},
	} {
		for _, global := range section.config.GlobalDependencies {
			if strings.TrimSpace(global) == "" {
				problems = multierror.Append(problems, fmt.Errorf("%s.global_dependencies contains an empty entry", section.name))
			}
		}
		for idx, group := range section.config.Groups {
			problems = multierror.Append(problems, validateGroup(section.name, idx, section.assetType, group, seenURLs)...)
		}
	}

	if err := problems.ErrorOrNil(); err != nil {
		problems.ErrorFormat = formatProblems
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(problems.Error()).
			WithCause(err)
	}
	log.Ctx(ctx).Debug().
		Int("script_groups", len(cfg.Scripts.Groups)).
		Int("stylesheet_groups", len(cfg.Stylesheets.Groups)).
		Msg("asset config validated")
	return nil
}

func validateGroup(section string, idx int, assetType types.AssetType, group types.GroupConfig, seenURLs map[string]struct{}) []error {
	var errs []error
	name := fmt.Sprintf("%s.groups[%d]", section, idx)
	url := strings.TrimSpace(group.ConsolidatedURL)
	if url == "" {
		errs = append(errs, fmt.Errorf("%s missing consolidated_url", name))
	} else {
		key := shared.CanonicalPath(url)
		if _, ok := seenURLs[key]; ok {
			errs = append(errs, fmt.Errorf("%s duplicates consolidated_url %s", name, url))
		}
		seenURLs[key] = struct{}{}
		if shared.AssetTypeOf(url) != assetType {
			errs = append(errs, fmt.Errorf("%s consolidated_url %s is not a %s", name, url, assetType))
		}
	}
	if len(group.Include) == 0 {
		errs = append(errs, fmt.Errorf("%s missing include patterns", name))
	}
	for _, pattern := range append(append([]string(nil), group.Include...), group.Exclude...) {
		if _, err := doublestar.Match(pattern, pattern); err != nil {
			errs = append(errs, fmt.Errorf("%s has invalid pattern %q", name, pattern))
		}
	}
	if _, ok := validConsolidateModes[group.Consolidate]; !ok {
		errs = append(errs, fmt.Errorf("%s has invalid consolidate mode %s", name, group.Consolidate))
	}
	return errs
}

func formatProblems(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	if len(parts) == 1 {
		return "invalid asset config: " + parts[0]
	}
	return fmt.Sprintf("invalid asset config (%d problems): %s", len(parts), strings.Join(parts, "; "))
}
