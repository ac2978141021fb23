package policies

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-deps/internal/types"
)

func scriptGroups() GroupPolicy {
	return NewGroupPolicy(types.AssetTypeScript, []types.GroupConfig{
		{
			ConsolidatedURL: "/scripts/consolidated/core.js",
			Include:         []string{"/scripts/jquery.js", "/scripts/*.js"},
			Exclude:         []string{"/scripts/*.debug.js"},
		},
		{
			ConsolidatedURL: "/scripts/consolidated/all.js",
			Include:         []string{"/scripts/**/*.js"},
		},
	})
}

func TestGroupPolicyFirstGroupWins(t *testing.T) {
	policy := scriptGroups()

	tests := []struct {
		path  string
		want  GroupMatch
		found bool
	}{
		{path: "/scripts/jquery.js", want: GroupMatch{Group: 0, Pattern: 0}, found: true},
		{path: "/Scripts/Site.js", want: GroupMatch{Group: 0, Pattern: 1}, found: true},
		{path: "/scripts/site.debug.js", want: GroupMatch{Group: 1, Pattern: 0}, found: true},
		{path: "/scripts/home/index.js", want: GroupMatch{Group: 1, Pattern: 0}, found: true},
		{path: "/scripts/consolidated/core.js", found: false},
		{path: "/styles/site.css", found: false},
	}
	for _, tt := range tests {
		got, ok := policy.Match(tt.path)
		require.Equal(t, tt.found, ok, tt.path)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("unexpected match for %s (-want +got):\n%s", tt.path, diff)
		}
	}
}

func TestGroupPolicyResolveGroup(t *testing.T) {
	policy := scriptGroups()

	group, err := policy.ResolveGroup("/scripts/home/index.js")
	require.NoError(t, err)
	assert.Equal(t, "/scripts/consolidated/all.js", group.ConsolidatedURL)

	_, err = policy.ResolveGroup("/vendor/lib.js")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestGroupPolicyAssignOrdersMembers(t *testing.T) {
	policy := scriptGroups()
	assets := []types.Asset{
		{Path: "/scripts/site.js"},
		{Path: "/scripts/home/partial.js"},
		{Path: "/scripts/consolidated/all.js"},
		{Path: "/scripts/app.js"},
		{Path: "/scripts/jquery.js"},
		{Path: "/scripts/home/index.js"},
	}

	assigned := policy.Assign(assets)
	require.Len(t, assigned, 2)
	var got [][]string
	for _, members := range assigned {
		var paths []string
		for _, member := range members {
			paths = append(paths, member.Path)
		}
		got = append(got, paths)
	}
	want := [][]string{
		{"/scripts/jquery.js", "/scripts/app.js", "/scripts/site.js"},
		{"/scripts/home/index.js", "/scripts/home/partial.js"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected assignment (-want +got):\n%s", diff)
	}
}

func TestGroupPolicyBundleURLs(t *testing.T) {
	policy := scriptGroups()
	idx, ok := policy.GroupIndex("/SCRIPTS/consolidated/all.js?v=9")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.False(t, policy.IsBundleURL("/scripts/site.js"))
}
