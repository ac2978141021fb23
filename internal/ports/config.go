package ports

import "asset-deps/internal/types"

type AssetConfigPort interface {
	LoadConfig(path string) (types.AssetConfig, error)
}
