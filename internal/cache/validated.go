package cache

import (
	"context"
	"time"

	"asset-deps/internal/memo"
	"asset-deps/internal/ports"
	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

type validatedEntry struct {
	deps         []string
	lastModified time.Time
}

// Validated is the long-lived tier. An entry answers for an asset only while
// the asset has not been modified after the entry was computed.
type Validated struct {
	entries *memo.Memo[string, validatedEntry]
	stamps  ports.CatalogPort
}

type ValidatedOption func(*Validated)

// WithStampSource lets path lookups check the current modification time of
// catalog assets before answering from the path index.
func WithStampSource(catalog ports.CatalogPort) ValidatedOption {
	return func(v *Validated) {
		v.stamps = catalog
	}
}

func NewValidated(opts ...ValidatedOption) *Validated {
	v := &Validated{
		entries: memo.New(memo.WithKeyFunc[string, validatedEntry](shared.CanonicalPath)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (c *Validated) TryGetPath(ctx context.Context, path string) ([]string, bool) {
	if c.stamps != nil {
		asset, found, err := c.stamps.FindAsset(path)
		if err == nil && found {
			return c.TryGetAsset(ctx, asset)
		}
	}
	entry, ok := c.entries.Get(path)
	if !ok {
		return nil, false
	}
	return entry.deps, true
}

func (c *Validated) TryGetAsset(_ context.Context, asset types.Asset) ([]string, bool) {
	entry, ok := c.entries.Get(asset.Path)
	if !ok {
		return nil, false
	}
	if asset.LastModified.After(entry.lastModified) {
		return nil, false
	}
	return entry.deps, true
}

func (c *Validated) Store(_ context.Context, asset types.Asset, deps []string) {
	entry := validatedEntry{deps: deps, lastModified: asset.LastModified}
	c.entries.Put(asset.Path, entry, func(existing validatedEntry) bool {
		return entry.lastModified.After(existing.lastModified)
	})
}

// Len reports the number of cached assets.
func (c *Validated) Len() int {
	return c.entries.Count()
}

var _ ports.DependencyCachePort = (*Validated)(nil)
