package domain

// Question is a single trivia question as loaded from the content source.
// Instances are shared read-only across sessions once validated.
type Question struct {
	Question         string   `json:"question"`
	CorrectAnswer    []string `json:"correctAnswer"`
	IncorrectAnswer1 []string `json:"incorrectAnswer1"`
	IncorrectAnswer2 []string `json:"incorrectAnswer2,omitempty"`
	FollowUp         string   `json:"followUp,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	Category         string   `json:"category,omitempty"`
}

// QuizSettings is the validated per-locale game configuration. Every field is
// populated after validation (defaulted if missing from the source).
type QuizSettings struct {
	Title               string   `json:"title"`
	QuestionsPerGame    int      `json:"questionsPerGame"`
	Personality         string   `json:"personality,omitempty"`
	AudioDing           []string `json:"audioDing"`
	AudioGameIntro      []string `json:"audioGameIntro"`
	AudioGameOutro      []string `json:"audioGameOutro"`
	AudioCorrect        []string `json:"audioCorrect"`
	AudioIncorrect      []string `json:"audioIncorrect"`
	AudioRoundEnd       []string `json:"audioRoundEnd"`
	AudioCalculating    []string `json:"audioCalculating"`
	RandomizeQuestions  bool     `json:"randomizeQuestions,omitempty"`
	AnalyticsTrackingID string   `json:"googleAnalyticsTrackingId,omitempty"`
	QuitPrompt          string   `json:"quitPrompt,omitempty"`
	DifficultyPrompt    string   `json:"difficultyOrGradeLevelPrompt,omitempty"`
	DefaultDifficulty   string   `json:"defaultDifficultyOrGradeLevel,omitempty"`
	DifficultyChip1     string   `json:"difficultyOrGradeLevelSuggestionChip1,omitempty"`
	DifficultyChip2     string   `json:"difficultyOrGradeLevelSuggestionChip2,omitempty"`
	DifficultyChip3     string   `json:"difficultyOrGradeLevelSuggestionChip3,omitempty"`
	CategoryPrompt      string   `json:"categoryOrTopicPrompt,omitempty"`
	FirstChoice         string   `json:"firstChoice,omitempty"`
	SecondChoice        string   `json:"secondChoice,omitempty"`
	DefaultCategory     string   `json:"defaultCategoryOrTopic,omitempty"`
	CategoryChip1       string   `json:"categoryOrTopicSuggestionChip1,omitempty"`
	CategoryChip2       string   `json:"categoryOrTopicSuggestionChip2,omitempty"`
	CategoryChip3       string   `json:"categoryOrTopicSuggestionChip3,omitempty"`
}

// Diagnostic is the structured debug record attached to a session when a turn
// fails and debug mode is enabled.
type Diagnostic struct {
	Status      int    `json:"status"`
	Label       string `json:"label"`
	Version     string `json:"version"`
	ExecutionID string `json:"executionId"`
	Message     string `json:"message,omitempty"`
	Stack       string `json:"stack,omitempty"`
}

// Session is the per-conversation dialogue state, persisted by the host
// between turns and mutated only by the turn controller.
type Session struct {
	ID       string       `json:"id"`
	Settings QuizSettings `json:"quizSettings"`

	Count          int `json:"count"`
	QuestionNumber int `json:"questionNumber"`
	Limit          int `json:"limit"`
	CorrectCount   int `json:"correctCount"`

	Questions []Question `json:"questions"`

	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`

	HasCategory   bool `json:"hasCategory"`
	HasDifficulty bool `json:"hasDifficulty"`

	SetCategory   bool `json:"setCategory"`
	SetDifficulty bool `json:"setDifficulty"`
	IsRepeat      bool `json:"isRepeat"`
	IsReplay      bool `json:"isReplay"`
	IsSkip        bool `json:"isSkip"`

	Suggestions     []string  `json:"suggestions"`
	CurrentQuestion *Question `json:"currentQuestion,omitempty"`
	CorrectAnswer   string    `json:"correctAnswer,omitempty"`
	Selection       string    `json:"selection,omitempty"`

	// UserAnswer holds a captured answer slot between turns; the answer
	// handler clears it immediately after reading.
	UserAnswer string `json:"userAnswer,omitempty"`

	Debug *Diagnostic `json:"debugInfo,omitempty"`
}

// CurrentQuestionAt returns the question at the session's cursor, or nil if
// the cursor is out of range.
func (s *Session) CurrentQuestionAt() *Question {
	if s.Count < 0 || s.Count >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Count]
}
