package adapters

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"asset-deps/internal/ports"
	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

// FileCatalogAdapter serves assets from a directory tree. Asset paths are
// web paths rooted at the tree ("/scripts/site.js").
type FileCatalogAdapter struct {
	Root string
	fs   afero.Fs
}

func NewFileCatalogAdapter(fsys afero.Fs, root string) FileCatalogAdapter {
	return FileCatalogAdapter{
		Root: root,
		fs:   afero.NewReadOnlyFs(afero.NewBasePathFs(fsys, root)),
	}
}

func (a FileCatalogAdapter) FindAsset(assetPath string) (types.Asset, bool, error) {
	webPath, ok := WebPath(assetPath)
	if !ok {
		return types.Asset{}, false, nil
	}
	info, err := a.fs.Stat(webPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return types.Asset{}, false, nil
		}
		return types.Asset{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat asset " + webPath).
			WithCause(err)
	}
	if info.IsDir() {
		return types.Asset{}, false, nil
	}
	return a.asset(webPath, info), true, nil
}

// ListAssets returns every script and stylesheet under the root, sorted by
// path.
func (a FileCatalogAdapter) ListAssets() ([]types.Asset, error) {
	var assets []types.Asset
	err := afero.Walk(a.fs, "/", func(walked string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		webPath := path.Clean("/" + strings.ReplaceAll(walked, "\\", "/"))
		if shared.AssetTypeOf(webPath) == types.AssetTypeUnknown {
			return nil
		}
		assets = append(assets, a.asset(webPath, info))
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to list assets under " + a.Root).
			WithCause(err)
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].Path < assets[j].Path
	})
	return assets, nil
}

func (a FileCatalogAdapter) asset(webPath string, info os.FileInfo) types.Asset {
	fsys := a.fs
	return types.Asset{
		Path:         webPath,
		Extension:    shared.Extension(webPath),
		LastModified: info.ModTime(),
		Content: func() ([]byte, error) {
			return afero.ReadFile(fsys, webPath)
		},
	}
}

// WebPath normalizes an asset reference to a rooted, cleaned web path.
// External URLs are rejected.
func WebPath(reference string) (string, bool) {
	cleaned := strings.ReplaceAll(shared.WithoutQuery(reference), "\\", "/")
	if cleaned == "" || isExternal(cleaned) {
		return "", false
	}
	cleaned = strings.TrimPrefix(cleaned, "~")
	return path.Clean("/" + cleaned), true
}

func isExternal(reference string) bool {
	lower := strings.ToLower(reference)
	return strings.HasPrefix(lower, "//") || strings.Contains(lower, "://") || strings.HasPrefix(lower, "data:")
}

var _ ports.CatalogPort = FileCatalogAdapter{}
