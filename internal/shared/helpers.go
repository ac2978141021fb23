// Package shared provides the canonical path rules used across the
// asset-deps codebase. Two asset paths are the same asset when they are
// equal after the query string is dropped and case is folded.
package shared

import (
	"path"
	"strings"

	"asset-deps/internal/types"
)

// WithoutQuery strips the query string and fragment from an asset URL.
func WithoutQuery(value string) string {
	trimmed := strings.TrimSpace(value)
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}

// CanonicalPath returns the identity key for an asset path.
func CanonicalPath(value string) string {
	normalized := strings.ReplaceAll(WithoutQuery(value), "\\", "/")
	return strings.ToLower(normalized)
}

// EqualPaths reports whether two paths name the same asset.
func EqualPaths(a string, b string) bool {
	return CanonicalPath(a) == CanonicalPath(b)
}

// ContainsPath reports whether paths holds an entry equal to target.
func ContainsPath(paths []string, target string) bool {
	key := CanonicalPath(target)
	for _, candidate := range paths {
		if CanonicalPath(candidate) == key {
			return true
		}
	}
	return false
}

// Extension returns the lowercase file extension, including the dot.
func Extension(value string) string {
	return strings.ToLower(path.Ext(WithoutQuery(value)))
}

// AssetTypeOf classifies a path by its extension.
func AssetTypeOf(value string) types.AssetType {
	switch Extension(value) {
	case ".js":
		return types.AssetTypeScript
	case ".css", ".less":
		return types.AssetTypeStylesheet
	default:
		return types.AssetTypeUnknown
	}
}
