package adapters

import (
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"asset-deps/internal/ports"
	"asset-deps/internal/types"
)

type ConfigFileAdapter struct {
	fs afero.Fs
}

func NewConfigFileAdapter(fsys afero.Fs) ConfigFileAdapter {
	return ConfigFileAdapter{fs: fsys}
}

func (a ConfigFileAdapter) LoadConfig(path string) (types.AssetConfig, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return types.AssetConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("asset config not found: " + path).
			WithCause(err)
	}
	var cfg types.AssetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.AssetConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse asset config yaml").
			WithCause(err)
	}
	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// ResolvePath resolves a config-relative path.
func ResolvePath(cfg types.AssetConfig, value string) string {
	if value == "" || filepath.IsAbs(value) || cfg.Dir == "" {
		return value
	}
	return filepath.Join(cfg.Dir, value)
}

var _ ports.AssetConfigPort = ConfigFileAdapter{}
