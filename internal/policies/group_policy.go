package policies

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/bmatcuk/doublestar"

	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

// GroupPolicy decides which bundle claims an asset. Groups act as templates
// over the catalog: the first group whose include globs match and whose
// exclude globs do not match wins, and consolidated URLs are never members.
type GroupPolicy struct {
	AssetType types.AssetType
	Groups    []types.GroupConfig
	urls      map[string]int
	includes  [][]string
	excludes  [][]string
}

// GroupMatch identifies the claiming group and the include pattern that
// matched; the pattern index orders members within the bundle.
type GroupMatch struct {
	Group   int
	Pattern int
}

func NewGroupPolicy(assetType types.AssetType, groups []types.GroupConfig) GroupPolicy {
	policy := GroupPolicy{
		AssetType: assetType,
		Groups:    append([]types.GroupConfig(nil), groups...),
	}
	policy.compile()
	return policy
}

func (p *GroupPolicy) compile() {
	p.urls = map[string]int{}
	p.includes = make([][]string, len(p.Groups))
	p.excludes = make([][]string, len(p.Groups))
	for idx, group := range p.Groups {
		key := shared.CanonicalPath(group.ConsolidatedURL)
		if _, ok := p.urls[key]; !ok && key != "" {
			p.urls[key] = idx
		}
		p.includes[idx] = normalizePatterns(group.Include)
		p.excludes[idx] = normalizePatterns(group.Exclude)
	}
}

// Match returns the group claiming path, if any.
func (p GroupPolicy) Match(path string) (GroupMatch, bool) {
	if shared.AssetTypeOf(path) != p.AssetType || p.IsBundleURL(path) {
		return GroupMatch{}, false
	}
	key := shared.CanonicalPath(path)
	for idx := range p.Groups {
		pattern := matchIndex(p.includes[idx], key)
		if pattern < 0 {
			continue
		}
		if matchIndex(p.excludes[idx], key) >= 0 {
			continue
		}
		return GroupMatch{Group: idx, Pattern: pattern}, true
	}
	return GroupMatch{}, false
}

func (p GroupPolicy) ResolveGroup(path string) (types.GroupConfig, error) {
	match, ok := p.Match(path)
	if !ok {
		return types.GroupConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no %s group claims %s", p.AssetType, path))
	}
	return p.Groups[match.Group], nil
}

// GroupIndex returns the index of the group whose consolidated URL is url.
func (p GroupPolicy) GroupIndex(url string) (int, bool) {
	idx, ok := p.urls[shared.CanonicalPath(url)]
	return idx, ok
}

func (p GroupPolicy) IsBundleURL(path string) bool {
	_, ok := p.GroupIndex(path)
	return ok
}

// Assign distributes assets over the groups. Members of each group are
// ordered by the include pattern that claimed them, then by path.
func (p GroupPolicy) Assign(assets []types.Asset) [][]types.Asset {
	type claimed struct {
		asset   types.Asset
		pattern int
	}
	buckets := make([][]claimed, len(p.Groups))
	for _, asset := range assets {
		match, ok := p.Match(asset.Path)
		if !ok {
			continue
		}
		buckets[match.Group] = append(buckets[match.Group], claimed{asset: asset, pattern: match.Pattern})
	}
	out := make([][]types.Asset, len(p.Groups))
	for idx, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].pattern != bucket[j].pattern {
				return bucket[i].pattern < bucket[j].pattern
			}
			return shared.CanonicalPath(bucket[i].asset.Path) < shared.CanonicalPath(bucket[j].asset.Path)
		})
		members := make([]types.Asset, 0, len(bucket))
		for _, entry := range bucket {
			members = append(members, entry.asset)
		}
		out[idx] = members
	}
	return out
}

func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		out = append(out, shared.CanonicalPath(trimmed))
	}
	return out
}

func matchIndex(patterns []string, key string) int {
	for idx, pattern := range patterns {
		matched, err := doublestar.Match(pattern, key)
		if err == nil && matched {
			return idx
		}
	}
	return -1
}
