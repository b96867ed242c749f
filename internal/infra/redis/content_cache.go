package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"trivia-dialogue-service/internal/content"
)

// CachedSource caches raw locale bundles in Redis in front of a slower
// backing source (file tree, Postgres). A missing locale is never cached:
// the content repository's fallback chain needs to see domain.ErrNoLocaleData
// every time.
type CachedSource struct {
	client *redis.Client
	source content.Source
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCachedSource(client *redis.Client, source content.Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CachedSource) LoadLocale(ctx context.Context, locale string) (content.RawBundle, error) {
	key := c.key(locale)

	if bundle, ok := c.fromCache(ctx, key); ok {
		return bundle, nil
	}

	result, err, _ := c.sf.Do(locale, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if bundle, ok := c.fromCache(ctx, key); ok {
			return bundle, nil
		}

		bundle, err := c.source.LoadLocale(ctx, locale)
		if err != nil {
			return content.RawBundle{}, err
		}

		raw, err := json.Marshal(bundle)
		if err != nil {
			return content.RawBundle{}, fmt.Errorf("encode bundle %s: %w", locale, err)
		}
		// best-effort: a failed cache write still serves the bundle
		_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()

		return bundle, nil
	})
	if err != nil {
		return content.RawBundle{}, err
	}
	return result.(content.RawBundle), nil
}

func (c *CachedSource) fromCache(ctx context.Context, key string) (content.RawBundle, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return content.RawBundle{}, false
	}
	var bundle content.RawBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return content.RawBundle{}, false
	}
	return bundle, true
}

func (c *CachedSource) key(locale string) string {
	return "trivia:content:" + locale
}

// ttlWithJitter spreads expiries so all locales do not refresh at once.
func (c *CachedSource) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
