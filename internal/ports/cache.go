package ports

import (
	"context"

	"asset-deps/internal/types"
)

// DependencyCachePort is one cache tier. Lists handed to Store are treated as
// immutable snapshots and returned as-is by later lookups.
type DependencyCachePort interface {
	TryGetPath(ctx context.Context, path string) ([]string, bool)
	TryGetAsset(ctx context.Context, asset types.Asset) ([]string, bool)
	Store(ctx context.Context, asset types.Asset, deps []string)
}
