package core

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

var baseTime = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func asset(path string) types.Asset {
	return types.Asset{
		Path:         path,
		Extension:    shared.Extension(path),
		LastModified: baseTime,
	}
}

type memCatalog struct {
	mu     sync.RWMutex
	assets map[string]types.Asset
}

func newMemCatalog(assets ...types.Asset) *memCatalog {
	c := &memCatalog{assets: map[string]types.Asset{}}
	for _, a := range assets {
		c.put(a)
	}
	return c
}

func (c *memCatalog) put(a types.Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assets[shared.CanonicalPath(a.Path)] = a
}

func (c *memCatalog) touch(path string, at time.Time) types.Asset {
	c.mu.Lock()
	defer c.mu.Unlock()
	a := c.assets[shared.CanonicalPath(path)]
	a.LastModified = at
	c.assets[shared.CanonicalPath(path)] = a
	return a
}

func (c *memCatalog) FindAsset(path string) (types.Asset, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.assets[shared.CanonicalPath(path)]
	return a, ok, nil
}

func (c *memCatalog) ListAssets() ([]types.Asset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.Asset, 0, len(c.assets))
	for _, a := range c.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// declared is an extractor backed by a path -> direct dependencies table.
type declared struct {
	mu    sync.RWMutex
	deps  map[string][]string
	calls atomic.Int64
}

func newDeclared(deps map[string][]string) *declared {
	d := &declared{deps: map[string][]string{}}
	for path, list := range deps {
		d.deps[shared.CanonicalPath(path)] = list
	}
	return d
}

func (d *declared) set(path string, deps ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deps[shared.CanonicalPath(path)] = deps
}

func (d *declared) Dependencies(_ context.Context, a types.Asset) ([]string, error) {
	d.calls.Add(1)
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.deps[shared.CanonicalPath(a.Path)], nil
}

type failingExtractor struct {
	err error
}

func (f failingExtractor) Dependencies(context.Context, types.Asset) ([]string, error) {
	return nil, f.err
}

type staticGroups struct {
	bundles     map[string]types.Bundle
	order       map[types.AssetType][]string
	globals     map[types.AssetType][]string
	consolidate map[string]bool
	lookups     atomic.Int64
}

func newStaticGroups(bundles ...types.Bundle) *staticGroups {
	g := &staticGroups{
		bundles:     map[string]types.Bundle{},
		order:       map[types.AssetType][]string{},
		globals:     map[types.AssetType][]string{},
		consolidate: map[string]bool{},
	}
	for _, b := range bundles {
		g.bundles[shared.CanonicalPath(b.URL)] = b
		g.order[b.Type] = append(g.order[b.Type], b.URL)
		g.consolidate[shared.CanonicalPath(b.URL)] = true
	}
	return g
}

func (g *staticGroups) ResolveBundle(path string) (types.Bundle, bool, error) {
	g.lookups.Add(1)
	b, ok := g.bundles[shared.CanonicalPath(path)]
	return b, ok, nil
}

func (g *staticGroups) GlobalDependencies(assetType types.AssetType) []string {
	return g.globals[assetType]
}

func (g *staticGroups) BundleURLs(assetType types.AssetType) []string {
	return g.order[assetType]
}

func (g *staticGroups) BundleFor(path string) (string, bool) {
	for _, b := range g.bundles {
		for _, member := range b.Members {
			if shared.EqualPaths(member.Path, path) {
				return b.URL, true
			}
		}
	}
	return "", false
}

func (g *staticGroups) Consolidates(bundleURL string, _ types.ResourceMode) bool {
	return g.consolidate[shared.CanonicalPath(bundleURL)]
}

// scenarioFixture is the jquery/site/component site with a two page home
// bundle.
func scenarioFixture() (*memCatalog, *declared, *staticGroups) {
	catalog := newMemCatalog(
		asset("/scripts/jquery.js"),
		asset("/scripts/site.js"),
		asset("/scripts/mycomponent.js"),
		asset("/scripts/myothercomponent.js"),
		asset("/scripts/home/index.js"),
		asset("/scripts/home/partial.js"),
	)
	deps := newDeclared(map[string][]string{
		"/scripts/site.js":             {"/scripts/jquery.js"},
		"/scripts/mycomponent.js":      {"/scripts/site.js"},
		"/scripts/myothercomponent.js": {"/scripts/site.js"},
		"/scripts/home/index.js":       {"/scripts/jquery.js", "/scripts/mycomponent.js"},
		"/scripts/home/partial.js":     {"/scripts/jquery.js", "/scripts/site.js"},
	})
	groups := newStaticGroups(types.Bundle{
		URL:  "/scripts/consolidated/home.js",
		Type: types.AssetTypeScript,
		Members: []types.Asset{
			asset("/scripts/home/index.js"),
			asset("/scripts/home/partial.js"),
		},
	})
	return catalog, deps, groups
}

func newTestResolver(catalog *memCatalog, deps *declared, groups *staticGroups) *DependencyResolver {
	registry := NewExtractorRegistry().Map(".js", deps).Map(".css", deps)
	return NewDependencyResolver(catalog, groups, registry, nil)
}
