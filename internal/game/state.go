// Package game seeds a play-through: grouping the question bank by
// category/difficulty, shuffling, and selecting the question quota.
package game

import (
	"fmt"
	"math/rand"
	"strings"

	"trivia-dialogue-service/internal/domain"
)

const (
	// MaxQuestionsPerQuiz caps a single play-through regardless of settings.
	MaxQuestionsPerQuiz = 10

	// Sentinel bucket names used when an axis is disabled or a question
	// does not declare one. Compared lower-cased like every other key.
	DefaultCategory   = "defaultCategory"
	DefaultDifficulty = "defaultDifficulty"
)

// GroupedQuestions is a two-level map category -> difficulty -> questions.
// Keys are lower-cased.
type GroupedQuestions map[string]map[string][]domain.Question

// GroupByCategoryDifficulty buckets questions by their category and
// difficulty. When an axis is disabled every question lands in that axis's
// sentinel bucket.
func GroupByCategoryDifficulty(questions []domain.Question, hasCategory, hasDifficulty bool) GroupedQuestions {
	grouped := make(GroupedQuestions)
	for _, q := range questions {
		category := DefaultCategory
		if hasCategory && q.Category != "" {
			category = q.Category
		}
		difficulty := DefaultDifficulty
		if hasDifficulty && q.Difficulty != "" {
			difficulty = q.Difficulty
		}
		category = strings.ToLower(category)
		difficulty = strings.ToLower(difficulty)

		if grouped[category] == nil {
			grouped[category] = make(map[string][]domain.Question)
		}
		grouped[category][difficulty] = append(grouped[category][difficulty], q)
	}
	return grouped
}

// State holds the counters and question slice for a fresh play-through.
type State struct {
	Count        int
	CorrectCount int
	Limit        int
	Questions    []domain.Question
}

// NewGameState selects and shuffles the question set for a play-through. The
// category/difficulty bucket must exist; a missing bucket means the content
// and settings disagree, which is a configuration error.
func NewGameState(category, difficulty string, questionsPerGame int, grouped GroupedQuestions, maxPerQuiz int, rng *rand.Rand) (State, error) {
	pool := grouped[category][difficulty]
	if len(pool) == 0 {
		return State{}, fmt.Errorf("%w: %s/%s", domain.ErrEmptyQuestionBucket, category, difficulty)
	}

	limit := questionsPerGame
	if len(pool) < limit {
		limit = len(pool)
	}
	if maxPerQuiz < limit {
		limit = maxPerQuiz
	}

	// Shuffle a copy; the grouped bank is shared read-only across sessions.
	questions := make([]domain.Question, len(pool))
	copy(questions, pool)
	Shuffle(rng, questions)

	return State{
		Count:        0,
		CorrectCount: 0,
		Limit:        limit,
		Questions:    questions[:limit],
	}, nil
}

// Shuffle performs an in-place Fisher-Yates shuffle, uniform over all
// permutations.
func Shuffle[T any](rng *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
