package content

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"trivia-dialogue-service/internal/domain"
)

type mapSource struct {
	bundles map[string]RawBundle
	calls   int32
}

func (s *mapSource) LoadLocale(_ context.Context, locale string) (RawBundle, error) {
	atomic.AddInt32(&s.calls, 1)
	bundle, ok := s.bundles[locale]
	if !ok {
		return RawBundle{}, domain.ErrNoLocaleData
	}
	return bundle, nil
}

func rawQuestion(question string, correct, incorrect1 any) map[string]any {
	return map[string]any{
		keyQuestion:         question,
		keyCorrectAnswer:    correct,
		keyIncorrectAnswer1: incorrect1,
	}
}

func TestResolveSettingsDefaults(t *testing.T) {
	settings, err := ResolveSettings(nil)
	if err != nil {
		t.Fatalf("ResolveSettings: %v", err)
	}
	if settings.Title != TitleDefault {
		t.Fatalf("title = %q", settings.Title)
	}
	if settings.QuestionsPerGame != QuestionsPerGameDefault {
		t.Fatalf("questions per game = %d", settings.QuestionsPerGame)
	}
	if len(settings.AudioDing) == 0 || len(settings.AudioGameIntro) == 0 {
		t.Fatalf("audio defaults missing: %+v", settings)
	}
}

func TestResolveSettingsUnwrapsValueObjects(t *testing.T) {
	settings, err := ResolveSettings(map[string]any{
		"title":              map[string]any{"value": "Wrapped Quiz"},
		"questions_per_game": map[string]any{"value": "3"},
	})
	if err != nil {
		t.Fatalf("ResolveSettings: %v", err)
	}
	if settings.Title != "Wrapped Quiz" {
		t.Fatalf("title = %q", settings.Title)
	}
	if settings.QuestionsPerGame != 3 {
		t.Fatalf("questions per game = %d", settings.QuestionsPerGame)
	}
}

func TestResolveSettingsWhitelistsUnknownKeys(t *testing.T) {
	settings, err := ResolveSettings(map[string]any{
		"title":          "Known",
		"injected_field": "should vanish",
	})
	if err != nil {
		t.Fatalf("ResolveSettings: %v", err)
	}
	if settings.Title != "Known" {
		t.Fatalf("title = %q", settings.Title)
	}
	// the injected key has no struct field, and the whitelist drops it before
	// validation; decoding succeeds without it
}

func TestResolveSettingsToleratesCasingDrift(t *testing.T) {
	settings, err := ResolveSettings(map[string]any{
		"Questions_Per_Game": 7,
	})
	if err != nil {
		t.Fatalf("ResolveSettings: %v", err)
	}
	if settings.QuestionsPerGame != 7 {
		t.Fatalf("questions per game = %d", settings.QuestionsPerGame)
	}
}

func TestResolveSettingsBadAudioFallsBack(t *testing.T) {
	settings, err := ResolveSettings(map[string]any{
		"audio_ding": []any{"not a url"},
	})
	if err != nil {
		t.Fatalf("ResolveSettings: %v", err)
	}
	if len(settings.AudioDing) == 0 || !strings.HasPrefix(settings.AudioDing[0], "https://") {
		t.Fatalf("audio ding should fall back to defaults: %v", settings.AudioDing)
	}
}

func TestResolveSettingsLongChipTruncated(t *testing.T) {
	long := "this category name is much too long for a chip"
	settings, err := ResolveSettings(map[string]any{
		"category_or_topic_suggestion_chip_1": long,
	})
	if err != nil {
		t.Fatalf("ResolveSettings: %v", err)
	}
	if got := settings.CategoryChip1; len([]rune(got)) != ChipMaxLen {
		t.Fatalf("chip = %q (%d runes)", got, len([]rune(got)))
	}
}

func TestResolveQuestions(t *testing.T) {
	rows := []map[string]any{
		rawQuestion("Q1?", []any{"A", "a"}, []any{"B"}),
	}
	questions, err := ResolveQuestions(rows)
	if err != nil {
		t.Fatalf("ResolveQuestions: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("questions = %+v", questions)
	}
	q := questions[0]
	if q.Question != "Q1?" || len(q.CorrectAnswer) != 2 || q.CorrectAnswer[0] != "A" {
		t.Fatalf("question = %+v", q)
	}
}

func TestResolveQuestionsLongAnswerGetsTruncatedSynonym(t *testing.T) {
	long := "an answer that is far too long for a suggestion chip"
	questions, err := ResolveQuestions([]map[string]any{
		rawQuestion("Q1?", []any{long}, []any{"B"}),
	})
	if err != nil {
		t.Fatalf("ResolveQuestions: %v", err)
	}
	answers := questions[0].CorrectAnswer
	if len(answers) != 2 {
		t.Fatalf("answers = %v", answers)
	}
	if len([]rune(answers[0])) != ChipMaxLen {
		t.Fatalf("canonical answer not truncated: %q", answers[0])
	}
	if answers[1] != long {
		t.Fatalf("full text should remain a synonym: %v", answers)
	}
}

func TestResolveQuestionsOneBadRowFailsBatch(t *testing.T) {
	_, err := ResolveQuestions([]map[string]any{
		rawQuestion("Q1?", []any{"A"}, []any{"B"}),
		{keyQuestion: "Q2?"},
	})
	if err == nil {
		t.Fatal("missing answers should fail the batch")
	}
	if !strings.Contains(err.Error(), "record 1") {
		t.Fatalf("error should name the record: %v", err)
	}
}

func TestRepositoryLocaleFallback(t *testing.T) {
	source := &mapSource{bundles: map[string]RawBundle{
		"en": {
			Settings:  map[string]any{"title": "Base English"},
			Questions: []map[string]any{rawQuestion("Q?", []any{"A"}, []any{"B"})},
		},
	}}
	repo := NewRepository(source)
	ctx := context.Background()

	settings, err := repo.Settings(ctx, "en-US")
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if settings.Title != "Base English" {
		t.Fatalf("fallback settings = %+v", settings)
	}

	if _, err := repo.Settings(ctx, "fr-CA"); !errors.Is(err, domain.ErrUnknownLocale) {
		t.Fatalf("unknown locale error = %v", err)
	}
}

func TestRepositoryCachesBundles(t *testing.T) {
	source := &mapSource{bundles: map[string]RawBundle{
		"en": {Questions: []map[string]any{rawQuestion("Q?", []any{"A"}, []any{"B"})}},
	}}
	repo := NewRepository(source)
	ctx := context.Background()

	if _, err := repo.Questions(ctx, "en"); err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if _, err := repo.Questions(ctx, "en"); err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if got := atomic.LoadInt32(&source.calls); got != 1 {
		t.Fatalf("source calls = %d, want 1", got)
	}
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.Title != TitleDefault || settings.QuestionsPerGame != QuestionsPerGameDefault {
		t.Fatalf("defaults = %+v", settings)
	}
}
