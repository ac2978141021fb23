package app

import (
	"context"

	"asset-deps/internal/cache"
	"asset-deps/internal/core"
	"asset-deps/internal/types"
)

// Deps resolves the dependency list of each requested path. All paths share
// one request scope.
func (s Service) Deps(ctx context.Context, req DepsRequest) (DepsResult, error) {
	paths, err := requirePaths(req.Paths)
	if err != nil {
		return DepsResult{}, err
	}
	runtime, err := s.Open(ctx, req.ConfigPath, req.Options)
	if err != nil {
		return DepsResult{}, err
	}
	ctx = cache.WithRequestScope(ctx)
	entries := make([]types.ReportEntry, 0, len(paths))
	for _, path := range paths {
		deps, err := runtime.Resolver.Dependencies(ctx, path)
		if err != nil {
			return DepsResult{}, err
		}
		entries = append(entries, types.ReportEntry{Path: path, Dependencies: deps})
	}
	return DepsResult{Entries: entries}, nil
}

// Order sorts the requested paths so dependencies come first.
func (s Service) Order(ctx context.Context, req OrderRequest) (OrderResult, error) {
	paths, err := requirePaths(req.Paths)
	if err != nil {
		return OrderResult{}, err
	}
	runtime, err := s.Open(ctx, req.ConfigPath, req.Options)
	if err != nil {
		return OrderResult{}, err
	}
	sorted, err := runtime.Resolver.SortPaths(cache.WithRequestScope(ctx), paths)
	if err != nil {
		return OrderResult{}, err
	}
	return OrderResult{Paths: sorted}, nil
}

// Includes lists the URLs a page referencing the requested paths has to
// include, in load order.
func (s Service) Includes(ctx context.Context, req IncludesRequest) (IncludesResult, error) {
	paths, err := requirePaths(req.Paths)
	if err != nil {
		return IncludesResult{}, err
	}
	runtime, err := s.Open(ctx, req.ConfigPath, req.Options)
	if err != nil {
		return IncludesResult{}, err
	}
	ctx = cache.WithRequestScope(ctx)
	registry := core.NewIncludeRegistry(runtime.Resolver, runtime.Config.Mode)
	for _, path := range paths {
		if err := registry.Include(ctx, path); err != nil {
			return IncludesResult{}, err
		}
	}
	return IncludesResult{Mode: runtime.Config.Mode, URLs: registry.Includes()}, nil
}
