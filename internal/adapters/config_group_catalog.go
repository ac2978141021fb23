package adapters

import (
	"github.com/rs/zerolog/log"

	"asset-deps/internal/policies"
	"asset-deps/internal/ports"
	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

// ConfigGroupCatalog answers bundle questions from the groups declared in an
// asset config, matching them against the assets the catalog lists.
type ConfigGroupCatalog struct {
	catalog  ports.CatalogPort
	config   types.AssetConfig
	policies map[types.AssetType]policies.GroupPolicy
}

func NewConfigGroupCatalog(cfg types.AssetConfig, catalog ports.CatalogPort) ConfigGroupCatalog {
	return ConfigGroupCatalog{
		catalog: catalog,
		config:  cfg,
		policies: map[types.AssetType]policies.GroupPolicy{
			types.AssetTypeScript:     policies.NewGroupPolicy(types.AssetTypeScript, cfg.Scripts.Groups),
			types.AssetTypeStylesheet: policies.NewGroupPolicy(types.AssetTypeStylesheet, cfg.Stylesheets.Groups),
		},
	}
}

func (c ConfigGroupCatalog) ResolveBundle(path string) (types.Bundle, bool, error) {
	assetType := shared.AssetTypeOf(path)
	policy, ok := c.policies[assetType]
	if !ok {
		return types.Bundle{}, false, nil
	}
	idx, ok := policy.GroupIndex(path)
	if !ok {
		return types.Bundle{}, false, nil
	}
	assets, err := c.catalog.ListAssets()
	if err != nil {
		return types.Bundle{}, false, err
	}
	members := policy.Assign(assets)[idx]
	log.Debug().
		Str("bundle", policy.Groups[idx].ConsolidatedURL).
		Int("members", len(members)).
		Msg("bundle members assigned")
	return types.Bundle{
		URL:     policy.Groups[idx].ConsolidatedURL,
		Type:    assetType,
		Members: members,
	}, true, nil
}

func (c ConfigGroupCatalog) GlobalDependencies(assetType types.AssetType) []string {
	return c.config.TypeConfig(assetType).GlobalDependencies
}

func (c ConfigGroupCatalog) BundleURLs(assetType types.AssetType) []string {
	policy, ok := c.policies[assetType]
	if !ok {
		return nil
	}
	urls := make([]string, 0, len(policy.Groups))
	for _, group := range policy.Groups {
		urls = append(urls, group.ConsolidatedURL)
	}
	return urls
}

func (c ConfigGroupCatalog) BundleFor(path string) (string, bool) {
	policy, ok := c.policies[shared.AssetTypeOf(path)]
	if !ok {
		return "", false
	}
	group, err := policy.ResolveGroup(path)
	if err != nil {
		return "", false
	}
	return group.ConsolidatedURL, true
}

func (c ConfigGroupCatalog) Consolidates(bundleURL string, mode types.ResourceMode) bool {
	assetType := shared.AssetTypeOf(bundleURL)
	policy, ok := c.policies[assetType]
	if !ok || !c.config.TypeConfig(assetType).ConsolidationEnabled() {
		return false
	}
	idx, ok := policy.GroupIndex(bundleURL)
	if !ok {
		return false
	}
	switch policy.Groups[idx].Consolidate {
	case types.ConsolidateNever:
		return false
	case types.ConsolidateReleaseOnly:
		return mode == types.ResourceModeRelease
	default:
		return true
	}
}

var _ ports.GroupCatalogPort = ConfigGroupCatalog{}
