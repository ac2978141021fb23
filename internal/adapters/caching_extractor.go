package adapters

import (
	"context"
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"asset-deps/internal/ports"
	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

const DefaultExtractorCacheSize = 1024

// CachingExtractor keeps recently extracted direct dependencies so unchanged
// assets are not parsed again. Entries are keyed by path and modification
// time, so a touched file is always re-read.
type CachingExtractor struct {
	inner ports.ExtractorPort
	cache *lru.Cache[string, []string]
}

func NewCachingExtractor(inner ports.ExtractorPort, size int) (CachingExtractor, error) {
	if size <= 0 {
		size = DefaultExtractorCacheSize
	}
	cache, err := lru.New[string, []string](size)
	if err != nil {
		return CachingExtractor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to create extractor cache").
			WithCause(err)
	}
	return CachingExtractor{inner: inner, cache: cache}, nil
}

func (e CachingExtractor) Dependencies(ctx context.Context, asset types.Asset) ([]string, error) {
	key := shared.CanonicalPath(asset.Path) + "@" + strconv.FormatInt(asset.LastModified.UnixNano(), 10)
	if deps, ok := e.cache.Get(key); ok {
		return append([]string(nil), deps...), nil
	}
	deps, err := e.inner.Dependencies(ctx, asset)
	if err != nil {
		return nil, err
	}
	e.cache.Add(key, append([]string(nil), deps...))
	log.Ctx(ctx).Debug().Str("asset", asset.Path).Int("declared", len(deps)).Msg("dependencies extracted")
	return deps, nil
}

// Len reports the number of cached extractions.
func (e CachingExtractor) Len() int {
	return e.cache.Len()
}

var _ ports.ExtractorPort = CachingExtractor{}
