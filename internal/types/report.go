package types

// ReportGroup records the members of one bundle in dependency order.
type ReportGroup struct {
	ConsolidatedURL string   `yaml:"consolidated_url"`
	Resources       []string `yaml:"resources"`
}

// ReportEntry is the precomputed dependency list of one asset or bundle URL.
type ReportEntry struct {
	Path         string   `yaml:"path"`
	Dependencies []string `yaml:"dependencies"`
}

// DependencyReport is the persisted output of a full resolution pass. It
// seeds the precomputed cache tier.
type DependencyReport struct {
	Version      string        `yaml:"version"`
	GeneratedAt  string        `yaml:"generated_at"`
	Scripts      []ReportGroup `yaml:"scripts,omitempty"`
	Stylesheets  []ReportGroup `yaml:"stylesheets,omitempty"`
	Dependencies []ReportEntry `yaml:"dependencies"`
}
