package ports

import "asset-deps/internal/types"

// CatalogPort locates assets. FindAsset returns (asset, true, nil) on hit and
// (zero, false, nil) when nothing exists at the path.
type CatalogPort interface {
	FindAsset(path string) (types.Asset, bool, error)
	ListAssets() ([]types.Asset, error)
}
