package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"asset-deps/internal/memo"
	"asset-deps/internal/ports"
	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

type requestScopeKey struct{}

// RequestScope is the per-request backing store of the request-scoped tier.
type RequestScope struct {
	ID      string
	entries *memo.Memo[string, []string]
}

// WithRequestScope attaches a fresh scope to ctx. Everything resolved through
// the request-scoped tier with the returned context lives as long as it does.
func WithRequestScope(ctx context.Context) context.Context {
	scope := &RequestScope{
		ID:      uuid.NewString(),
		entries: memo.New(memo.WithKeyFunc[string, []string](shared.CanonicalPath)),
	}
	logger := log.Ctx(ctx).With().Str("request_id", scope.ID).Logger()
	ctx = logger.WithContext(ctx)
	return context.WithValue(ctx, requestScopeKey{}, scope)
}

func RequestScopeFrom(ctx context.Context) (*RequestScope, bool) {
	if ctx == nil {
		return nil, false
	}
	scope, ok := ctx.Value(requestScopeKey{}).(*RequestScope)
	return scope, ok && scope != nil
}

// Len reports how many lists the scope holds.
func (s *RequestScope) Len() int {
	return s.entries.Count()
}

// RequestScoped caches by canonical path for the lifetime of one request and
// never validates modification times.
type RequestScoped struct{}

func NewRequestScoped() RequestScoped {
	return RequestScoped{}
}

func (c RequestScoped) TryGetPath(ctx context.Context, path string) ([]string, bool) {
	scope, ok := RequestScopeFrom(ctx)
	if !ok {
		return nil, false
	}
	return scope.entries.Get(path)
}

func (c RequestScoped) TryGetAsset(ctx context.Context, asset types.Asset) ([]string, bool) {
	return c.TryGetPath(ctx, asset.Path)
}

func (c RequestScoped) Store(ctx context.Context, asset types.Asset, deps []string) {
	scope, ok := RequestScopeFrom(ctx)
	if !ok {
		log.Ctx(ctx).Debug().Str("asset", asset.Path).Msg("no request scope, dependencies not cached")
		return
	}
	scope.entries.Put(asset.Path, deps, nil)
}

var _ ports.DependencyCachePort = RequestScoped{}
