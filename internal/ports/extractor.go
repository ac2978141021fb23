package ports

import (
	"context"

	"asset-deps/internal/types"
)

// ExtractorPort reads the dependencies an asset declares in its own content,
// in declaration order. It never resolves transitive dependencies.
type ExtractorPort interface {
	Dependencies(ctx context.Context, asset types.Asset) ([]string, error)
}
