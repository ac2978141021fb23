package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-deps/internal/types"
)

type stampCatalog map[string]types.Asset

func (c stampCatalog) FindAsset(path string) (types.Asset, bool, error) {
	asset, ok := c[path]
	return asset, ok, nil
}

func (c stampCatalog) ListAssets() ([]types.Asset, error) {
	return nil, nil
}

func asset(path string, modified time.Time) types.Asset {
	return types.Asset{Path: path, Extension: ".js", LastModified: modified}
}

func TestRequestScopedRequiresScope(t *testing.T) {
	tier := NewRequestScoped()
	site := asset("/scripts/site.js", time.Unix(100, 0))

	tier.Store(t.Context(), site, []string{"/scripts/jquery.js"})
	_, ok := tier.TryGetPath(t.Context(), site.Path)
	assert.False(t, ok, "lookups without a request scope must miss")
}

func TestRequestScopedIsolatesRequests(t *testing.T) {
	tier := NewRequestScoped()
	site := asset("/scripts/site.js", time.Unix(100, 0))

	first := WithRequestScope(t.Context())
	tier.Store(first, site, []string{"/scripts/jquery.js"})

	deps, ok := tier.TryGetPath(first, "/Scripts/Site.js?v=2")
	require.True(t, ok)
	if diff := cmp.Diff([]string{"/scripts/jquery.js"}, deps); diff != "" {
		t.Fatalf("unexpected dependencies (-want +got):\n%s", diff)
	}

	second := WithRequestScope(t.Context())
	_, ok = tier.TryGetAsset(second, site)
	assert.False(t, ok)

	scope, ok := RequestScopeFrom(first)
	require.True(t, ok)
	assert.NotEmpty(t, scope.ID)
	assert.Equal(t, 1, scope.Len())
}

func TestRequestScopeFromMissing(t *testing.T) {
	_, ok := RequestScopeFrom(context.Background())
	assert.False(t, ok)
}

func TestValidatedRejectsStaleEntries(t *testing.T) {
	tier := NewValidated()
	t0 := time.Unix(100, 0)
	site := asset("/scripts/site.js", t0)
	tier.Store(t.Context(), site, []string{"/scripts/jquery.js"})

	deps, ok := tier.TryGetAsset(t.Context(), site)
	require.True(t, ok)
	assert.Equal(t, []string{"/scripts/jquery.js"}, deps)

	touched := asset("/scripts/site.js", t0.Add(time.Second))
	_, ok = tier.TryGetAsset(t.Context(), touched)
	assert.False(t, ok, "entry computed at t0 must not answer for t1")

	tier.Store(t.Context(), touched, []string{"/scripts/zepto.js"})
	deps, ok = tier.TryGetAsset(t.Context(), touched)
	require.True(t, ok)
	assert.Equal(t, []string{"/scripts/zepto.js"}, deps)
}

func TestValidatedKeepsFresherEntryOnRace(t *testing.T) {
	tier := NewValidated()
	newer := asset("/scripts/site.js", time.Unix(200, 0))
	older := asset("/scripts/site.js", time.Unix(100, 0))

	tier.Store(t.Context(), newer, []string{"/new.js"})
	tier.Store(t.Context(), older, []string{"/old.js"})

	deps, ok := tier.TryGetAsset(t.Context(), newer)
	require.True(t, ok)
	assert.Equal(t, []string{"/new.js"}, deps)
	assert.Equal(t, 1, tier.Len())
}

func TestValidatedPathIndex(t *testing.T) {
	tier := NewValidated()
	site := asset("/scripts/site.js", time.Unix(100, 0))
	tier.Store(t.Context(), site, []string{"/scripts/jquery.js"})

	deps, ok := tier.TryGetPath(t.Context(), "/SCRIPTS/site.js")
	require.True(t, ok)
	assert.Equal(t, []string{"/scripts/jquery.js"}, deps)

	_, ok = tier.TryGetPath(t.Context(), "/scripts/unknown.js")
	assert.False(t, ok)
}

func TestValidatedPathLookupChecksStampSource(t *testing.T) {
	t0 := time.Unix(100, 0)
	catalog := stampCatalog{"/scripts/site.js": asset("/scripts/site.js", t0)}
	tier := NewValidated(WithStampSource(catalog))
	tier.Store(t.Context(), catalog["/scripts/site.js"], []string{"/scripts/jquery.js"})

	_, ok := tier.TryGetPath(t.Context(), "/scripts/site.js")
	require.True(t, ok)

	catalog["/scripts/site.js"] = asset("/scripts/site.js", t0.Add(time.Minute))
	_, ok = tier.TryGetPath(t.Context(), "/scripts/site.js")
	assert.False(t, ok, "path lookup must see the modification")
}

func TestPrecomputedSemantics(t *testing.T) {
	tier := NewPrecomputed(types.DependencyReport{
		Dependencies: []types.ReportEntry{
			{Path: "/scripts/consolidated/home.js", Dependencies: []string{"/scripts/jquery.js"}},
			{Path: "/scripts/jquery.js"},
		},
	})
	assert.Equal(t, 2, tier.Len())

	deps, ok := tier.TryGetPath(t.Context(), "/Scripts/Consolidated/Home.js")
	require.True(t, ok)
	assert.Equal(t, []string{"/scripts/jquery.js"}, deps)

	deps, ok = tier.TryGetPath(t.Context(), "/scripts/never-seen.js")
	require.True(t, ok, "unknown paths resolve to an empty list")
	assert.Empty(t, deps)

	site := asset("/scripts/site.js", time.Unix(1, 0))
	_, ok = tier.TryGetAsset(t.Context(), site)
	assert.False(t, ok)

	tier.Store(t.Context(), site, []string{"/x.js"})
	deps, _ = tier.TryGetPath(t.Context(), site.Path)
	assert.Empty(t, deps)
}
