package adapters

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-deps/internal/types"
)

const sampleConfig = `api_version: v1
root: ./public
mode: debug
cache:
  tier: precomputed
  report: out/deps.report.yaml
extractors:
  - extension: .js
    kind: reference
scripts:
  consolidate: false
  global_dependencies:
    - /scripts/jquery.js
  groups:
    - consolidated_url: /scripts/consolidated/core.js
      include: ["/scripts/*.js"]
      exclude: ["/scripts/*.debug.js"]
      consolidate: release
stylesheets:
  groups:
    - consolidated_url: /styles/consolidated/site.css
      include: ["/styles/**/*.css"]
`

func TestConfigFileAdapterLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/work/asset-deps.yaml", []byte(sampleConfig), 0644))

	cfg, err := NewConfigFileAdapter(fsys).LoadConfig("/work/asset-deps.yaml")
	require.NoError(t, err)

	assert.Equal(t, "v1", cfg.APIVersion)
	assert.Equal(t, types.ResourceModeDebug, cfg.Mode)
	assert.Equal(t, types.CacheTierPrecomputed, cfg.Cache.Tier)
	assert.Equal(t, "/work", cfg.Dir)
	assert.False(t, cfg.Scripts.ConsolidationEnabled())
	assert.True(t, cfg.Stylesheets.ConsolidationEnabled())
	assert.Equal(t, []string{"/scripts/jquery.js"}, cfg.Scripts.GlobalDependencies)
	require.Len(t, cfg.Scripts.Groups, 1)
	assert.Equal(t, types.ConsolidateReleaseOnly, cfg.Scripts.Groups[0].Consolidate)
	assert.Equal(t, []string{"/scripts/*.debug.js"}, cfg.Scripts.Groups[0].Exclude)
	assert.Equal(t, filepath.Join("/work", "out/deps.report.yaml"), ResolvePath(cfg, cfg.Cache.Report))
	assert.Equal(t, "/abs/public", ResolvePath(cfg, "/abs/public"))
}

func TestConfigFileAdapterErrors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/work/broken.yaml", []byte("scripts: [unclosed"), 0644))
	adapter := NewConfigFileAdapter(fsys)

	_, err := adapter.LoadConfig("/work/missing.yaml")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	_, err = adapter.LoadConfig("/work/broken.yaml")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
