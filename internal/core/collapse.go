package core

import "asset-deps/internal/shared"

// collapse flattens lists in order and drops every path already seen, so the
// furthest dependency accumulated first keeps its position.
func collapse(lists [][]string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, list := range lists {
		for _, path := range list {
			key := shared.CanonicalPath(path)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, path)
		}
	}
	return out
}

func excludePaths(paths []string, excluded []string) []string {
	if len(excluded) == 0 {
		return paths
	}
	ignore := make(map[string]struct{}, len(excluded))
	for _, path := range excluded {
		ignore[shared.CanonicalPath(path)] = struct{}{}
	}
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, ok := ignore[shared.CanonicalPath(path)]; ok {
			continue
		}
		out = append(out, path)
	}
	return out
}

// globalPrefix returns the global entries that precede path.
func globalPrefix(globals []string, path string) []string {
	key := shared.CanonicalPath(path)
	for idx, candidate := range globals {
		if shared.CanonicalPath(candidate) == key {
			return globals[:idx]
		}
	}
	return globals
}
