package types

type CacheConfig struct {
	Tier   CacheTier `yaml:"tier"`
	Report string    `yaml:"report,omitempty"`
}

type ExtractorMapping struct {
	Extension string        `yaml:"extension"`
	Kind      ExtractorKind `yaml:"kind"`
}

type GroupConfig struct {
	ConsolidatedURL string          `yaml:"consolidated_url"`
	Include         []string        `yaml:"include"`
	Exclude         []string        `yaml:"exclude,omitempty"`
	Consolidate     ConsolidateMode `yaml:"consolidate,omitempty"`
	Minify          bool            `yaml:"minify,omitempty"`
}

// AssetTypeConfig holds the bundling setup shared by all assets of one type.
// GlobalDependencies is ordered: every asset implicitly depends on the entries
// listed before it.
type AssetTypeConfig struct {
	Consolidate        *bool         `yaml:"consolidate,omitempty"`
	GlobalDependencies []string      `yaml:"global_dependencies,omitempty"`
	Groups             []GroupConfig `yaml:"groups,omitempty"`
}

// ConsolidationEnabled reports the per-type switch; it defaults to on.
func (c AssetTypeConfig) ConsolidationEnabled() bool {
	return c.Consolidate == nil || *c.Consolidate
}

type AssetConfig struct {
	APIVersion  string             `yaml:"api_version"`
	Root        string             `yaml:"root"`
	Mode        ResourceMode       `yaml:"mode,omitempty"`
	Cache       CacheConfig        `yaml:"cache"`
	Extractors  []ExtractorMapping `yaml:"extractors,omitempty"`
	Scripts     AssetTypeConfig    `yaml:"scripts"`
	Stylesheets AssetTypeConfig    `yaml:"stylesheets"`

	// Dir is the directory the config was loaded from; relative Root and
	// report paths are resolved against it.
	Dir string `yaml:"-"`
}

// TypeConfig returns the section for the given asset type.
func (c AssetConfig) TypeConfig(assetType AssetType) AssetTypeConfig {
	switch assetType {
	case AssetTypeScript:
		return c.Scripts
	case AssetTypeStylesheet:
		return c.Stylesheets
	default:
		return AssetTypeConfig{}
	}
}
