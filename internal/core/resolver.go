package core

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"asset-deps/internal/cache"
	"asset-deps/internal/ports"
	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

type cacheSlot struct {
	tier ports.DependencyCachePort
}

// DependencyResolver computes ordered, de-duplicated transitive dependency
// lists for assets and bundle URLs. It is safe for concurrent use; the
// extractor registry and global lists are fixed at construction.
type DependencyResolver struct {
	Catalog    ports.CatalogPort
	Groups     *CachingGroupCatalog
	extractors ExtractorRegistry
	globals    map[types.AssetType][]string
	cache      atomic.Pointer[cacheSlot]
}

// NewDependencyResolver wires a resolver. A nil tier selects a validated
// cache that checks modification times through catalog.
func NewDependencyResolver(catalog ports.CatalogPort, groups ports.GroupCatalogPort, extractors ExtractorRegistry, tier ports.DependencyCachePort) *DependencyResolver {
	r := &DependencyResolver{
		Catalog:    catalog,
		Groups:     NewCachingGroupCatalog(groups),
		extractors: extractors,
		globals:    map[types.AssetType][]string{},
	}
	for _, assetType := range []types.AssetType{types.AssetTypeScript, types.AssetTypeStylesheet} {
		r.globals[assetType] = append([]string(nil), groups.GlobalDependencies(assetType)...)
	}
	if tier == nil {
		tier = cache.NewValidated(cache.WithStampSource(catalog))
	}
	r.cache.Store(&cacheSlot{tier: tier})
	return r
}

// SetCache swaps the active cache tier. Resolutions already in flight finish
// against the tier they started with.
func (r *DependencyResolver) SetCache(tier ports.DependencyCachePort) {
	if tier == nil {
		return
	}
	r.cache.Store(&cacheSlot{tier: tier})
	log.Debug().Str("tier", fmt.Sprintf("%T", tier)).Msg("dependency cache tier swapped")
}

func (r *DependencyResolver) tier() ports.DependencyCachePort {
	return r.cache.Load().tier
}

// Dependencies resolves a path, which may name a single asset or a bundle.
func (r *DependencyResolver) Dependencies(ctx context.Context, path string) ([]string, error) {
	path = shared.WithoutQuery(path)
	if path == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("asset path is required")
	}
	tier := r.tier()
	if deps, ok := tier.TryGetPath(ctx, path); ok {
		return cloneList(deps), nil
	}

	resolved, ok, err := r.resolveBundle(ctx, path)
	if err != nil {
		return nil, err
	}
	if ok {
		return resolved.Dependencies, nil
	}

	asset, found, err := r.findAsset(path)
	if err != nil {
		return nil, err
	}
	if !found {
		return cloneList(r.globalsFor(path)), nil
	}
	return r.AssetDependencies(ctx, asset)
}

// AssetDependencies resolves an asset that is already in hand.
func (r *DependencyResolver) AssetDependencies(ctx context.Context, asset types.Asset) ([]string, error) {
	if deps, ok := r.tier().TryGetAsset(ctx, asset); ok {
		return cloneList(deps), nil
	}
	deps, err := r.walkAsset(ctx, asset)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Str("asset", asset.Path).Int("dependencies", len(deps)).Msg("dependencies resolved")
	return cloneList(deps), nil
}

// Bundle resolves a consolidated URL into its members, sorted by dependency
// order, and the dependencies that live outside the bundle.
func (r *DependencyResolver) Bundle(ctx context.Context, url string) (types.ResolvedBundle, bool, error) {
	return r.resolveBundle(ctx, shared.WithoutQuery(url))
}

func (r *DependencyResolver) resolveBundle(ctx context.Context, path string) (types.ResolvedBundle, bool, error) {
	bundle, ok, err := r.Groups.ResolveBundle(path)
	if err != nil {
		return types.ResolvedBundle{}, false, err
	}
	if !ok {
		return types.ResolvedBundle{}, false, nil
	}
	current, err := r.currentMembers(bundle.Members)
	if err != nil {
		return types.ResolvedBundle{}, false, err
	}
	members, err := r.SortAssets(ctx, current)
	if err != nil {
		return types.ResolvedBundle{}, false, err
	}
	lists := make([][]string, 0, len(members))
	memberPaths := make([]string, 0, len(members))
	for _, member := range members {
		deps, err := r.AssetDependencies(ctx, member)
		if err != nil {
			return types.ResolvedBundle{}, false, err
		}
		lists = append(lists, deps)
		memberPaths = append(memberPaths, member.Path)
	}
	resolved := types.ResolvedBundle{
		URL:          bundle.URL,
		Members:      members,
		Dependencies: excludePaths(collapse(lists), memberPaths),
	}
	log.Ctx(ctx).Debug().
		Str("bundle", bundle.URL).
		Int("members", len(members)).
		Int("dependencies", len(resolved.Dependencies)).
		Msg("bundle resolved")
	return resolved, true, nil
}

// currentMembers re-reads bundle members from the catalog so their
// modification times are current. Members that no longer exist are dropped.
func (r *DependencyResolver) currentMembers(members []types.Asset) ([]types.Asset, error) {
	current := make([]types.Asset, 0, len(members))
	for _, member := range members {
		asset, found, err := r.findAsset(member.Path)
		if err != nil {
			return nil, err
		}
		if found {
			current = append(current, asset)
		}
	}
	return current, nil
}

// Compare judges the load order of two assets: OrderAfter when a depends on
// b, OrderBefore when b depends on a.
func (r *DependencyResolver) Compare(ctx context.Context, a types.Asset, b types.Asset) (types.Order, error) {
	if shared.EqualPaths(a.Path, b.Path) {
		return types.OrderUnordered, nil
	}
	aDeps, err := r.AssetDependencies(ctx, a)
	if err != nil {
		return types.OrderUnordered, err
	}
	bDeps, err := r.AssetDependencies(ctx, b)
	if err != nil {
		return types.OrderUnordered, err
	}
	return judge(a.Path, aDeps, b.Path, bDeps), nil
}

func (r *DependencyResolver) ComparePaths(ctx context.Context, a string, b string) (types.Order, error) {
	if shared.EqualPaths(a, b) {
		return types.OrderUnordered, nil
	}
	aDeps, err := r.Dependencies(ctx, a)
	if err != nil {
		return types.OrderUnordered, err
	}
	bDeps, err := r.Dependencies(ctx, b)
	if err != nil {
		return types.OrderUnordered, err
	}
	return judge(a, aDeps, b, bDeps), nil
}

func judge(a string, aDeps []string, b string, bDeps []string) types.Order {
	if shared.ContainsPath(aDeps, b) {
		return types.OrderAfter
	}
	if shared.ContainsPath(bDeps, a) {
		return types.OrderBefore
	}
	return types.OrderUnordered
}

func (r *DependencyResolver) SortAssets(ctx context.Context, assets []types.Asset) ([]types.Asset, error) {
	return PartialOrderSort(assets, func(a types.Asset, b types.Asset) (types.Order, error) {
		return r.Compare(ctx, a, b)
	})
}

func (r *DependencyResolver) SortPaths(ctx context.Context, paths []string) ([]string, error) {
	return PartialOrderSort(paths, func(a string, b string) (types.Order, error) {
		return r.ComparePaths(ctx, a, b)
	})
}

func (r *DependencyResolver) directDependencies(ctx context.Context, asset types.Asset) ([]string, error) {
	extension := asset.Extension
	if extension == "" {
		extension = shared.Extension(asset.Path)
	}
	extractor, ok := r.extractors.For(extension)
	if !ok {
		return nil, nil
	}
	declared, err := extractor.Dependencies(ctx, asset)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to extract dependencies of %s", asset.Path)).
			WithCause(err)
	}
	direct := make([]string, 0, len(declared))
	for _, dep := range declared {
		cleaned := shared.WithoutQuery(dep)
		if strings.TrimSpace(cleaned) == "" {
			continue
		}
		direct = append(direct, cleaned)
	}
	return direct, nil
}

func (r *DependencyResolver) findAsset(path string) (types.Asset, bool, error) {
	if r.Catalog == nil {
		return types.Asset{}, false, nil
	}
	asset, found, err := r.Catalog.FindAsset(path)
	if err != nil {
		return types.Asset{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to look up asset %s", path)).
			WithCause(err)
	}
	return asset, found, nil
}

func (r *DependencyResolver) globalsFor(path string) []string {
	globals := r.globals[shared.AssetTypeOf(path)]
	if len(globals) == 0 {
		return nil
	}
	return globalPrefix(globals, path)
}

func cloneList(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
