package memory

import (
	"context"

	"trivia-dialogue-service/internal/content"
	"trivia-dialogue-service/internal/domain"
)

// StaticSource serves raw content bundles from a fixed map, keyed by locale.
// Useful for tests and for embedding a built-in locale.
type StaticSource struct {
	bundles map[string]content.RawBundle
}

func NewStaticSource(bundles map[string]content.RawBundle) *StaticSource {
	return &StaticSource{bundles: bundles}
}

func (s *StaticSource) LoadLocale(_ context.Context, locale string) (content.RawBundle, error) {
	bundle, ok := s.bundles[locale]
	if !ok {
		return content.RawBundle{}, domain.ErrNoLocaleData
	}
	return bundle, nil
}
