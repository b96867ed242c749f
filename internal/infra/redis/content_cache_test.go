package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"trivia-dialogue-service/internal/content"
	"trivia-dialogue-service/internal/domain"
	"trivia-dialogue-service/internal/infra/memory"
)

type countingSource struct {
	content.Source
	calls int
}

func (s *countingSource) LoadLocale(ctx context.Context, locale string) (content.RawBundle, error) {
	s.calls++
	return s.Source.LoadLocale(ctx, locale)
}

func TestCachedSourceCachesBundles(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	source := &countingSource{
		Source: memory.NewStaticSource(map[string]content.RawBundle{
			"en": {
				Settings:  map[string]any{"title": "Cached Quiz"},
				Questions: []map[string]any{{"question": "Q?"}},
			},
		}),
	}
	cached := NewCachedSource(newClient(mr), source, time.Minute)
	ctx := context.Background()

	bundle, err := cached.LoadLocale(ctx, "en")
	if err != nil {
		t.Fatalf("LoadLocale: %v", err)
	}
	if bundle.Settings["title"] != "Cached Quiz" || len(bundle.Questions) != 1 {
		t.Fatalf("bundle = %+v", bundle)
	}
	if source.calls != 1 {
		t.Fatalf("expected source called once, got %d", source.calls)
	}

	// Second call should hit cache, source not incremented.
	if _, err := cached.LoadLocale(ctx, "en"); err != nil {
		t.Fatalf("LoadLocale: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected cache hit, source calls=%d", source.calls)
	}
}

func TestCachedSourceNeverCachesMisses(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	source := &countingSource{Source: memory.NewStaticSource(nil)}
	cached := NewCachedSource(newClient(mr), source, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cached.LoadLocale(ctx, "fr"); !errors.Is(err, domain.ErrNoLocaleData) {
			t.Fatalf("miss %d error = %v", i, err)
		}
	}
	if source.calls != 2 {
		t.Fatalf("misses must reach the source every time, calls=%d", source.calls)
	}
}
