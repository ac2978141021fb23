package types

import (
	"os"
	"time"
)

// Asset is a single web-delivered file as reported by the catalog. The core
// keeps references to assets but never their content.
type Asset struct {
	Path         string
	Extension    string
	LastModified time.Time

	// Content reads the asset bytes on demand. Nil for assets that have no
	// backing content (e.g. synthetic test assets).
	Content func() ([]byte, error) `yaml:"-"`
}

// ReadContent returns the asset content, or os.ErrNotExist when the catalog
// did not attach a reader.
func (a Asset) ReadContent() ([]byte, error) {
	if a.Content == nil {
		return nil, os.ErrNotExist
	}
	return a.Content()
}

// Bundle is a consolidated URL and the assets that are delivered through it,
// in configuration order.
type Bundle struct {
	URL     string
	Type    AssetType
	Members []Asset
}

// ResolvedBundle is a bundle whose members have been sorted by dependency
// order, together with the dependencies that live outside of it.
type ResolvedBundle struct {
	URL          string
	Members      []Asset
	Dependencies []string
}
