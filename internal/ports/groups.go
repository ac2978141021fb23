package ports

import "asset-deps/internal/types"

// GroupCatalogPort answers bundle membership questions. Membership rules are
// owned by the implementation; the resolver only consumes the answers.
type GroupCatalogPort interface {
	// ResolveBundle returns the bundle whose consolidated URL is path, with
	// members in configuration order. ok is false when path is not a bundle.
	ResolveBundle(path string) (bundle types.Bundle, ok bool, err error)

	// GlobalDependencies returns the ordered global list for an asset type.
	GlobalDependencies(assetType types.AssetType) []string

	// BundleURLs lists the consolidated URLs configured for an asset type.
	BundleURLs(assetType types.AssetType) []string

	// BundleFor returns the consolidated URL of the bundle claiming path.
	BundleFor(path string) (string, bool)

	// Consolidates reports whether the bundle is served consolidated in mode.
	Consolidates(bundleURL string, mode types.ResourceMode) bool
}
