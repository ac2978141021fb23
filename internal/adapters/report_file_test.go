package adapters

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-deps/internal/types"
)

func TestReportFileAdapterRoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	adapter := NewReportFileAdapter(fsys)
	report := types.DependencyReport{
		Version:     "v1",
		GeneratedAt: "2026-02-10T08:30:00Z",
		Scripts: []types.ReportGroup{
			{ConsolidatedURL: "/scripts/consolidated/home.js", Resources: []string{"/scripts/home/index.js"}},
		},
		Dependencies: []types.ReportEntry{
			{Path: "/scripts/home/index.js", Dependencies: []string{"/scripts/jquery.js"}},
			{Path: "/scripts/jquery.js", Dependencies: []string{}},
		},
	}

	require.NoError(t, adapter.WriteReport("/out/reports/deps.report.yaml", report))
	exists, err := afero.Exists(fsys, "/out/reports/deps.report.yaml")
	require.NoError(t, err)
	require.True(t, exists)

	got, err := adapter.ReadReport("/out/reports/deps.report.yaml")
	require.NoError(t, err)
	if diff := cmp.Diff(report, got); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}
}

func TestReportFileAdapterErrors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	adapter := NewReportFileAdapter(fsys)
	require.NoError(t, afero.WriteFile(fsys, "/empty.yaml", []byte("scripts: []\n"), 0644))

	err := adapter.WriteReport(" ", types.DependencyReport{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = adapter.ReadReport("/missing.yaml")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	_, err = adapter.ReadReport("/empty.yaml")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
