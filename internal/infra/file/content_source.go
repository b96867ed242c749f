package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"trivia-dialogue-service/internal/content"
	"trivia-dialogue-service/internal/domain"
)

// Source loads raw content bundles from a locale-per-directory tree:
//
//	<root>/<locale>/quiz_settings.json   single JSON object
//	<root>/<locale>/quiz_q_a.json        JSON array of question objects
//
// A locale without a directory maps to domain.ErrNoLocaleData so the
// repository's locale fallback can run.
type Source struct {
	root string
}

func NewSource(root string) *Source {
	return &Source{root: root}
}

func (s *Source) LoadLocale(_ context.Context, locale string) (content.RawBundle, error) {
	dir := filepath.Join(s.root, locale)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return content.RawBundle{}, domain.ErrNoLocaleData
	} else if err != nil {
		return content.RawBundle{}, fmt.Errorf("stat locale dir %s: %w", dir, err)
	}

	var bundle content.RawBundle
	if err := readJSON(filepath.Join(dir, content.CollectionSettings+".json"), &bundle.Settings); err != nil {
		return content.RawBundle{}, fmt.Errorf("locale %s settings: %w", locale, err)
	}
	if err := readJSON(filepath.Join(dir, content.CollectionQuestions+".json"), &bundle.Questions); err != nil {
		return content.RawBundle{}, fmt.Errorf("locale %s questions: %w", locale, err)
	}
	return bundle, nil
}

func readJSON(path string, out any) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		// a locale may ship only one of the two collections
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
