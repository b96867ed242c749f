package content

import (
	"strings"

	"trivia-dialogue-service/internal/schema"
)

// Game-wide content defaults.
const (
	TitleDefault            = "Trivia Quiz"
	QuestionsPerGameDefault = 5

	// ChipMaxLen is the rendering limit for suggestion chips; longer answers
	// get a truncated canonical form prepended as a synonym.
	ChipMaxLen = 25
)

// Source collection names.
const (
	CollectionQuestions = "quiz_q_a"
	CollectionSettings  = "quiz_settings"
)

// Source column keys for question rows.
const (
	keyQuestion         = "question"
	keyCorrectAnswer    = "correct_answer"
	keyIncorrectAnswer1 = "incorrect_answer_1"
	keyIncorrectAnswer2 = "incorrect_answer_2"
	keyFollowUp         = "follow_up"
	keyDifficulty       = "difficulty"
	keyCategory         = "category"
)

// limitTo25 keeps chips speakable and renderable: long canonical answers get a
// truncated copy prepended (the full text stays as a synonym), long scalar
// strings are truncated in place.
func limitTo25(v any) (any, error) {
	switch val := v.(type) {
	case []any:
		list := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return v, nil
			}
			list = append(list, strings.TrimSpace(s))
		}
		return truncateCanonical(list), nil
	case []string:
		list := make([]string, len(val))
		for i, s := range val {
			list[i] = strings.TrimSpace(s)
		}
		return truncateCanonical(list), nil
	case string:
		return truncate(strings.TrimSpace(val)), nil
	default:
		return v, nil
	}
}

func truncateCanonical(list []string) []string {
	if len(list) > 0 && len([]rune(list[0])) > ChipMaxLen {
		return append([]string{truncate(list[0])}, list...)
	}
	return list
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) > ChipMaxLen {
		return string(runes[:ChipMaxLen])
	}
	return s
}

// questionSchema validates one raw question row into the aliased shape that
// decodes to domain.Question.
var questionSchema = schema.FieldSchema{
	keyQuestion: {
		Alias: "question",
		Type:  schema.TypeString,
	},
	keyCorrectAnswer: {
		Alias:   "correctAnswer",
		Type:    schema.TypeStringList,
		Process: limitTo25,
	},
	keyIncorrectAnswer1: {
		Alias:   "incorrectAnswer1",
		Type:    schema.TypeStringList,
		Process: limitTo25,
	},
	keyIncorrectAnswer2: {
		Alias:    "incorrectAnswer2",
		Type:     schema.TypeStringList,
		Optional: true,
		Process:  limitTo25,
	},
	keyFollowUp: {
		Alias:    "followUp",
		Type:     schema.TypeString,
		Optional: true,
	},
	keyDifficulty: {
		Alias:    "difficulty",
		Type:     schema.TypeString,
		Optional: true,
		Process:  limitTo25,
	},
	keyCategory: {
		Alias:    "category",
		Type:     schema.TypeString,
		Optional: true,
		Process:  limitTo25,
	},
}

// settingsSchema validates the merged settings dictionary. Aliases are the
// json field names of domain.QuizSettings.
var settingsSchema = schema.FieldSchema{
	"title": {
		Alias:   "title",
		Type:    schema.TypeString,
		Default: TitleDefault,
	},
	"questions_per_game": {
		Alias:   "questionsPerGame",
		Type:    schema.TypeInteger,
		Default: QuestionsPerGameDefault,
	},
	"personality": {
		Alias:    "personality",
		Type:     schema.TypeString,
		Optional: true,
	},
	"audio_ding": {
		Alias:   "audioDing",
		Type:    schema.TypeURLList,
		Default: DefaultAudio("audioDing"),
	},
	"audio_game_intro": {
		Alias:   "audioGameIntro",
		Type:    schema.TypeURLList,
		Default: DefaultAudio("audioGameIntro"),
	},
	"audio_game_outro": {
		Alias:   "audioGameOutro",
		Type:    schema.TypeURLList,
		Default: DefaultAudio("audioGameOutro"),
	},
	"audio_correct": {
		Alias:   "audioCorrect",
		Type:    schema.TypeURLList,
		Default: DefaultAudio("audioCorrect"),
	},
	"audio_incorrect": {
		Alias:   "audioIncorrect",
		Type:    schema.TypeURLList,
		Default: DefaultAudio("audioIncorrect"),
	},
	"audio_round_end": {
		Alias:   "audioRoundEnd",
		Type:    schema.TypeURLList,
		Default: DefaultAudio("audioRoundEnd"),
	},
	"audio_calculating": {
		Alias:   "audioCalculating",
		Type:    schema.TypeURLList,
		Default: DefaultAudio("audioCalculating"),
	},
	"randomize_questions": {
		Alias:    "randomizeQuestions",
		Type:     schema.TypeBoolean,
		Optional: true,
	},
	"google_analytics_tracking_id": {
		Alias:    "googleAnalyticsTrackingId",
		Type:     schema.TypeString,
		Optional: true,
	},
	"quit_prompt": {
		Alias:    "quitPrompt",
		Type:     schema.TypeString,
		Optional: true,
	},
	"difficulty_or_grade_level_prompt": {
		Alias:    "difficultyOrGradeLevelPrompt",
		Type:     schema.TypeString,
		Optional: true,
	},
	"default_difficulty_or_grade_level": {
		Alias:    "defaultDifficultyOrGradeLevel",
		Type:     schema.TypeString,
		Optional: true,
		Process:  limitTo25,
	},
	"difficulty_or_grade_level_suggestion_chip_1": {
		Alias:    "difficultyOrGradeLevelSuggestionChip1",
		Type:     schema.TypeString,
		Optional: true,
		Process:  limitTo25,
	},
	"difficulty_or_grade_level_suggestion_chip_2": {
		Alias:    "difficultyOrGradeLevelSuggestionChip2",
		Type:     schema.TypeString,
		Optional: true,
		Process:  limitTo25,
	},
	"difficulty_or_grade_level_suggestion_chip_3": {
		Alias:    "difficultyOrGradeLevelSuggestionChip3",
		Type:     schema.TypeString,
		Optional: true,
		Process:  limitTo25,
	},
	"category_or_topic_prompt": {
		Alias:    "categoryOrTopicPrompt",
		Type:     schema.TypeString,
		Optional: true,
	},
	"first_choice": {
		Alias:    "firstChoice",
		Type:     schema.TypeString,
		Optional: true,
		Process:  limitTo25,
	},
	"second_choice": {
		Alias:    "secondChoice",
		Type:     schema.TypeString,
		Optional: true,
		Process:  limitTo25,
	},
	"default_category_or_topic": {
		Alias:    "defaultCategoryOrTopic",
		Type:     schema.TypeString,
		Optional: true,
		Process:  limitTo25,
	},
	"category_or_topic_suggestion_chip_1": {
		Alias:    "categoryOrTopicSuggestionChip1",
		Type:     schema.TypeString,
		Optional: true,
		Process:  limitTo25,
	},
	"category_or_topic_suggestion_chip_2": {
		Alias:    "categoryOrTopicSuggestionChip2",
		Type:     schema.TypeString,
		Optional: true,
		Process:  limitTo25,
	},
	"category_or_topic_suggestion_chip_3": {
		Alias:    "categoryOrTopicSuggestionChip3",
		Type:     schema.TypeString,
		Optional: true,
		Process:  limitTo25,
	},
}

// settingsDefaults returns the defaults template keyed by source keys. It is
// also the whitelist: resolved values only apply to keys present here.
func settingsDefaults() map[string]any {
	defaults := make(map[string]any, len(settingsSchema))
	for key, entry := range settingsSchema {
		defaults[key] = entry.Default
	}
	return defaults
}
