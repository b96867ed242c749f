package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"trivia-dialogue-service/internal/config"
	"trivia-dialogue-service/internal/content"
)

type localeContentRow struct {
	bun.BaseModel `bun:"table:locale_content"`

	Locale     string          `bun:"locale,pk"`
	Collection string          `bun:"collection,pk"`
	Data       json.RawMessage `bun:"data,type:jsonb"`
}

// NewIngestCmd loads a locale data tree into Postgres.
func NewIngestCmd(configPath *string) *cobra.Command {
	var dataDir string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load locale content files into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), *configPath, dataDir)
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "data", "locale data directory")
	return cmd
}

func runIngest(ctx context.Context, configPath, dataDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	rows, err := collectLocaleRows(dataDir)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no locale content found under %s", dataDir)
	}

	for _, row := range rows {
		if _, err := db.NewInsert().
			Model(&row).
			On("CONFLICT (locale, collection) DO UPDATE").
			Set("data = EXCLUDED.data, updated_at = now()").
			Exec(ctx); err != nil {
			return fmt.Errorf("upsert %s/%s: %w", row.Locale, row.Collection, err)
		}
		log.Printf("ingested %s/%s", row.Locale, row.Collection)
	}
	return nil
}

// collectLocaleRows walks <dataDir>/<locale>/<collection>.json and turns each
// file into an upsert row, rejecting files that are not valid JSON.
func collectLocaleRows(dataDir string) ([]localeContentRow, error) {
	entries, err := os.ReadDir(dataDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("data directory %s does not exist", dataDir)
	}
	if err != nil {
		return nil, err
	}

	var rows []localeContentRow
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		for _, collection := range []string{content.CollectionSettings, content.CollectionQuestions} {
			path := filepath.Join(dataDir, locale, collection+".json")
			raw, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if !json.Valid(raw) {
				return nil, fmt.Errorf("%s is not valid JSON", path)
			}
			rows = append(rows, localeContentRow{
				Locale:     locale,
				Collection: collection,
				Data:       raw,
			})
		}
	}
	return rows, nil
}
