package cache

import (
	"context"

	"asset-deps/internal/ports"
	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

// Precomputed serves dependency lists from a report produced ahead of time.
// It is read-only: a path missing from the report has no dependencies, asset
// lookups always miss and Store discards its input.
type Precomputed struct {
	entries map[string][]string
}

func NewPrecomputed(report types.DependencyReport) Precomputed {
	entries := make(map[string][]string, len(report.Dependencies))
	for _, entry := range report.Dependencies {
		deps := entry.Dependencies
		if deps == nil {
			deps = []string{}
		}
		entries[shared.CanonicalPath(entry.Path)] = deps
	}
	return Precomputed{entries: entries}
}

func (c Precomputed) TryGetPath(_ context.Context, path string) ([]string, bool) {
	if deps, ok := c.entries[shared.CanonicalPath(path)]; ok {
		return deps, true
	}
	return []string{}, true
}

func (c Precomputed) TryGetAsset(context.Context, types.Asset) ([]string, bool) {
	return nil, false
}

func (c Precomputed) Store(context.Context, types.Asset, []string) {}

func (c Precomputed) Len() int {
	return len(c.entries)
}

var _ ports.DependencyCachePort = Precomputed{}
