package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-dialogue-service/internal/content"
	"trivia-dialogue-service/internal/domain"
)

// Source loads raw locale bundles from the locale_content table, one JSONB
// row per (locale, collection). A locale with no rows at all maps to
// domain.ErrNoLocaleData.
type Source struct {
	pool *pgxpool.Pool
}

func NewSource(pool *pgxpool.Pool) *Source {
	return &Source{pool: pool}
}

func (s *Source) LoadLocale(ctx context.Context, locale string) (content.RawBundle, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT collection, data FROM locale_content WHERE locale=$1`, locale)
	if err != nil {
		return content.RawBundle{}, fmt.Errorf("query locale %s: %w", locale, err)
	}
	defer rows.Close()

	var bundle content.RawBundle
	found := false
	for rows.Next() {
		var collection string
		var raw []byte
		if err := rows.Scan(&collection, &raw); err != nil {
			return content.RawBundle{}, fmt.Errorf("scan locale %s: %w", locale, err)
		}
		found = true

		switch collection {
		case content.CollectionSettings:
			if err := json.Unmarshal(raw, &bundle.Settings); err != nil {
				return content.RawBundle{}, fmt.Errorf("locale %s settings: %w", locale, err)
			}
		case content.CollectionQuestions:
			if err := json.Unmarshal(raw, &bundle.Questions); err != nil {
				return content.RawBundle{}, fmt.Errorf("locale %s questions: %w", locale, err)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return content.RawBundle{}, fmt.Errorf("read locale %s: %w", locale, err)
	}
	if !found {
		return content.RawBundle{}, domain.ErrNoLocaleData
	}
	return bundle, nil
}
