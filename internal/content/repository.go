// Package content resolves raw per-locale settings and question data into
// validated, typed structures. Bundles are loaded once per locale and are
// immutable afterwards; sessions share them read-only.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"trivia-dialogue-service/internal/domain"
	"trivia-dialogue-service/internal/schema"
)

// RawBundle is one locale's content exactly as the source stores it: a
// settings dictionary (key -> wrapper object holding a "value" field) and a
// list of question rows.
type RawBundle struct {
	Settings  map[string]any   `json:"settings"`
	Questions []map[string]any `json:"questions"`
}

// Source loads raw content for a single locale. It returns
// domain.ErrNoLocaleData when the locale has no content at all; the
// repository uses that to drive base-language fallback.
type Source interface {
	LoadLocale(ctx context.Context, locale string) (RawBundle, error)
}

// Bundle is a locale's validated content.
type Bundle struct {
	Settings  domain.QuizSettings
	Questions []domain.Question
}

// Repository validates and caches locale bundles over a Source.
type Repository struct {
	source Source
	sf     singleflight.Group

	mu    sync.RWMutex
	cache map[string]*Bundle
}

func NewRepository(source Source) *Repository {
	return &Repository{
		source: source,
		cache:  make(map[string]*Bundle),
	}
}

// Bundle returns the validated content for locale, falling back to the base
// language when the exact locale has no data.
func (r *Repository) Bundle(ctx context.Context, locale string) (*Bundle, error) {
	r.mu.RLock()
	if bundle, ok := r.cache[locale]; ok {
		r.mu.RUnlock()
		return bundle, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(locale, func() (interface{}, error) {
		r.mu.RLock()
		if bundle, ok := r.cache[locale]; ok {
			r.mu.RUnlock()
			return bundle, nil
		}
		r.mu.RUnlock()

		raw, err := r.loadWithFallback(ctx, locale)
		if err != nil {
			return nil, err
		}
		bundle, err := resolveBundle(raw)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", locale, err)
		}

		r.mu.Lock()
		r.cache[locale] = bundle
		r.mu.Unlock()
		return bundle, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Bundle), nil
}

func (r *Repository) loadWithFallback(ctx context.Context, locale string) (RawBundle, error) {
	raw, err := r.source.LoadLocale(ctx, locale)
	if err == nil {
		return raw, nil
	}
	if !errors.Is(err, domain.ErrNoLocaleData) {
		return RawBundle{}, err
	}
	if lang, _, ok := strings.Cut(locale, "-"); ok {
		raw, err = r.source.LoadLocale(ctx, lang)
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, domain.ErrNoLocaleData) {
			return RawBundle{}, err
		}
	}
	return RawBundle{}, fmt.Errorf("%w: %s", domain.ErrUnknownLocale, locale)
}

// Settings returns the validated settings for locale.
func (r *Repository) Settings(ctx context.Context, locale string) (domain.QuizSettings, error) {
	bundle, err := r.Bundle(ctx, locale)
	if err != nil {
		return domain.QuizSettings{}, err
	}
	return bundle.Settings, nil
}

// Questions returns the validated question bank for locale.
func (r *Repository) Questions(ctx context.Context, locale string) ([]domain.Question, error) {
	bundle, err := r.Bundle(ctx, locale)
	if err != nil {
		return nil, err
	}
	return bundle.Questions, nil
}

func resolveBundle(raw RawBundle) (*Bundle, error) {
	settings, err := ResolveSettings(raw.Settings)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	questions, err := ResolveQuestions(raw.Questions)
	if err != nil {
		return nil, fmt.Errorf("questions: %w", err)
	}
	return &Bundle{Settings: settings, Questions: questions}, nil
}

// ResolveSettings unwraps the raw settings dictionary, restricts it to known
// keys (case-insensitively, tolerating casing drift in the source), overlays
// it onto the built-in defaults, and validates the merged object.
func ResolveSettings(raw map[string]any) (domain.QuizSettings, error) {
	unwrapped := make(map[string]any, len(raw))
	for key, val := range raw {
		if wrapper, ok := val.(map[string]any); ok {
			val = wrapper["value"]
		}
		unwrapped[key] = val
	}

	canonical := make(map[string]string, len(settingsSchema))
	for key := range settingsSchema {
		canonical[strings.ToLower(key)] = key
	}

	merged := settingsDefaults()
	for key, val := range unwrapped {
		known, ok := canonical[strings.ToLower(key)]
		if !ok {
			continue
		}
		// Whitelist merge: only keys present in the defaults template apply.
		if _, ok := merged[known]; ok {
			merged[known] = val
		}
	}

	validated, err := schema.ValidateObject(merged, settingsSchema)
	if err != nil {
		return domain.QuizSettings{}, err
	}
	return decode[domain.QuizSettings](validated)
}

// ResolveQuestions validates every raw question row. One malformed row fails
// the whole batch; this is deliberate so that content errors surface during
// ingestion rather than mid-game.
func ResolveQuestions(rows []map[string]any) ([]domain.Question, error) {
	validated, err := schema.ValidateCollection(rows, questionSchema)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Question](validated)
}

// DefaultSettings returns the fully-defaulted settings value used to seed a
// fresh session before the locale's settings are resolved.
func DefaultSettings() domain.QuizSettings {
	settings, err := ResolveSettings(nil)
	if err != nil {
		// The defaults template always validates; reaching here means the
		// built-in schema itself is broken.
		panic(err)
	}
	return settings
}

func decode[T any](v any) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
