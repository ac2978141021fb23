package core

import (
	"strings"

	"asset-deps/internal/ports"
)

// ExtractorRegistry maps file extensions to extractors. It is filled during
// setup and only read while resolving.
type ExtractorRegistry struct {
	byExtension map[string]ports.ExtractorPort
}

func NewExtractorRegistry() ExtractorRegistry {
	return ExtractorRegistry{byExtension: map[string]ports.ExtractorPort{}}
}

// Map registers extractor for extension. A later mapping for the same
// extension replaces the earlier one.
func (r ExtractorRegistry) Map(extension string, extractor ports.ExtractorPort) ExtractorRegistry {
	if r.byExtension == nil {
		r.byExtension = map[string]ports.ExtractorPort{}
	}
	r.byExtension[normalizeExtension(extension)] = extractor
	return r
}

func (r ExtractorRegistry) For(extension string) (ports.ExtractorPort, bool) {
	extractor, ok := r.byExtension[normalizeExtension(extension)]
	return extractor, ok && extractor != nil
}

func (r ExtractorRegistry) Len() int {
	return len(r.byExtension)
}

func normalizeExtension(extension string) string {
	normalized := strings.ToLower(strings.TrimSpace(extension))
	if normalized != "" && !strings.HasPrefix(normalized, ".") {
		normalized = "." + normalized
	}
	return normalized
}
