package core

import (
	"asset-deps/internal/memo"
	"asset-deps/internal/ports"
	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

type bundleLookup struct {
	bundle types.Bundle
	ok     bool
}

type bundleOwner struct {
	url string
	ok  bool
}

// CachingGroupCatalog memoizes bundle lookups of an inner catalog for its own
// lifetime. Lookups that fail are not remembered.
type CachingGroupCatalog struct {
	inner   ports.GroupCatalogPort
	bundles *memo.Memo[string, bundleLookup]
	owners  *memo.Memo[string, bundleOwner]
}

func NewCachingGroupCatalog(inner ports.GroupCatalogPort) *CachingGroupCatalog {
	if cached, ok := inner.(*CachingGroupCatalog); ok {
		return cached
	}
	return &CachingGroupCatalog{
		inner:   inner,
		bundles: memo.New(memo.WithKeyFunc[string, bundleLookup](shared.CanonicalPath)),
		owners:  memo.New(memo.WithKeyFunc[string, bundleOwner](shared.CanonicalPath)),
	}
}

func (c *CachingGroupCatalog) ResolveBundle(path string) (types.Bundle, bool, error) {
	lookup, err := c.bundles.GetOrTryCompute(path, func() (bundleLookup, error) {
		bundle, ok, err := c.inner.ResolveBundle(path)
		if err != nil {
			return bundleLookup{}, err
		}
		return bundleLookup{bundle: bundle, ok: ok}, nil
	})
	if err != nil {
		return types.Bundle{}, false, err
	}
	return lookup.bundle, lookup.ok, nil
}

func (c *CachingGroupCatalog) GlobalDependencies(assetType types.AssetType) []string {
	return c.inner.GlobalDependencies(assetType)
}

func (c *CachingGroupCatalog) BundleURLs(assetType types.AssetType) []string {
	return c.inner.BundleURLs(assetType)
}

func (c *CachingGroupCatalog) BundleFor(path string) (string, bool) {
	owner := c.owners.GetOrCompute(path, func() bundleOwner {
		url, ok := c.inner.BundleFor(path)
		return bundleOwner{url: url, ok: ok}
	})
	return owner.url, owner.ok
}

func (c *CachingGroupCatalog) Consolidates(bundleURL string, mode types.ResourceMode) bool {
	return c.inner.Consolidates(bundleURL, mode)
}

// CachedBundles reports how many bundle lookups are memoized.
func (c *CachingGroupCatalog) CachedBundles() int {
	return c.bundles.Count()
}

var _ ports.GroupCatalogPort = (*CachingGroupCatalog)(nil)
