package core

import (
	"context"
	"sync"

	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

// IncludeRegistry collects the URLs a page has to reference. Every include
// pulls in its dependencies first; assets served through a consolidated
// bundle are replaced by the bundle URL.
type IncludeRegistry struct {
	resolver *DependencyResolver
	mode     types.ResourceMode

	mu       sync.Mutex
	seen     map[string]struct{}
	includes []string
}

func NewIncludeRegistry(resolver *DependencyResolver, mode types.ResourceMode) *IncludeRegistry {
	return &IncludeRegistry{
		resolver: resolver,
		mode:     mode,
		seen:     map[string]struct{}{},
	}
}

func (r *IncludeRegistry) Include(ctx context.Context, url string) error {
	return r.include(ctx, shared.WithoutQuery(url), map[string]struct{}{})
}

// include adds url behind everything it needs. A dependency served through a
// bundle is included the same way, so the bundle's own dependencies precede
// it. visiting breaks bundles that depend on each other.
func (r *IncludeRegistry) include(ctx context.Context, url string, visiting map[string]struct{}) error {
	target := r.target(url)
	key := shared.CanonicalPath(target)
	if r.included(target) {
		return nil
	}
	if _, ok := visiting[key]; ok {
		return nil
	}
	visiting[key] = struct{}{}

	deps, err := r.resolver.Dependencies(ctx, url)
	if err != nil {
		return err
	}
	lists := [][]string{deps}
	if !shared.EqualPaths(target, url) {
		bundleDeps, err := r.resolver.Dependencies(ctx, target)
		if err != nil {
			return err
		}
		lists = append(lists, bundleDeps)
	}
	for _, dep := range collapse(lists) {
		if shared.EqualPaths(r.target(dep), target) {
			continue
		}
		if err := r.include(ctx, dep, visiting); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(target)
	return nil
}

// Includes returns the collected URLs in include order.
func (r *IncludeRegistry) Includes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneList(r.includes)
}

func (r *IncludeRegistry) target(path string) string {
	url, ok := r.resolver.Groups.BundleFor(path)
	if !ok || !r.resolver.Groups.Consolidates(url, r.mode) {
		return path
	}
	return url
}

func (r *IncludeRegistry) included(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.seen[shared.CanonicalPath(path)]
	return ok
}

func (r *IncludeRegistry) add(path string) {
	key := shared.CanonicalPath(path)
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	r.includes = append(r.includes, path)
}
