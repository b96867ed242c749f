package engine

import (
	"fmt"
	"math/rand"
	"strings"

	"trivia-dialogue-service/internal/content"
	"trivia-dialogue-service/internal/domain"
	"trivia-dialogue-service/internal/game"
)

// setupQuiz resets the session and resolves the locale's settings into it.
// An axis (category/difficulty) is only enabled when its prompt, default
// value, and first suggestion chip are all configured.
func (e *Engine) setupQuiz(t *turn) error {
	s := t.sess
	isReplay := s.IsReplay
	*s = domain.Session{
		ID:             s.ID,
		QuestionNumber: 1,
		Limit:          game.MaxQuestionsPerQuiz,
		IsReplay:       isReplay,
	}

	settings, err := e.content.Settings(t.ctx, t.req.Locale)
	if err != nil {
		return err
	}
	s.Settings = settings

	s.HasCategory = settings.CategoryChip1 != "" &&
		settings.DefaultCategory != "" &&
		settings.CategoryPrompt != ""
	s.HasDifficulty = settings.DifficultyChip1 != "" &&
		settings.DefaultDifficulty != "" &&
		settings.DifficultyPrompt != ""

	if isReplay {
		s.Category, s.Difficulty = "", ""
		s.SetCategory, s.SetDifficulty = false, false
	}
	return nil
}

func (e *Engine) welcome(t *turn) error {
	if t.sess.IsReplay {
		return nil
	}
	greeting := PromptGreeting1
	if t.req.ReturningUser {
		greeting = PromptGreeting2
	}
	t.add(t.audio(t.sess.Settings.AudioGameIntro, content.DefaultAudio("audioGameIntro")), greeting)
	return nil
}

// promptAxis emits an axis prompt with its configured suggestion chips. The
// chip texts replace any prior speech bias, and devices without chip
// rendering get a spoken enumeration appended.
func (e *Engine) promptAxis(t *turn, prompt string, chips []string) error {
	available := make([]string, 0, len(chips))
	for _, chip := range chips {
		if chip != "" {
			available = append(available, chip)
		}
	}

	t.add(prompt)
	t.addSuggestions(available...)
	if !t.hasCapability(domain.CapabilityRichResponse) {
		t.add(t.suggestionTTS(t.resp.Suggestions))
	}

	groups := make([][]string, len(available))
	for i, chip := range available {
		groups[i] = []string{chip}
	}
	t.setSpeechBiasing(groups...)
	return nil
}

func categoryChips(s domain.QuizSettings) []string {
	return []string{s.CategoryChip1, s.CategoryChip2, s.CategoryChip3}
}

func difficultyChips(s domain.QuizSettings) []string {
	return []string{s.DifficultyChip1, s.DifficultyChip2, s.DifficultyChip3}
}

func (e *Engine) setCategory(t *turn) error {
	value := t.slot(domain.SlotCategory)
	if value == "" {
		return fmt.Errorf("missing resolved %s slot", domain.SlotCategory)
	}
	t.sess.Category = value
	t.sess.Selection = value
	t.sess.SetCategory = true
	t.add(PromptSelectionConfirmation)
	return nil
}

func (e *Engine) setDifficulty(t *turn) error {
	value := t.slot(domain.SlotDifficulty)
	if value == "" {
		return fmt.Errorf("missing resolved %s slot", domain.SlotDifficulty)
	}
	t.sess.Difficulty = value
	t.sess.Selection = value
	t.sess.SetDifficulty = true
	t.add(PromptSelectionConfirmation)
	return nil
}

// finalizeSetup normalizes the axis choices, seeds the play-through from the
// grouped question bank, and splices the result into the session.
func (e *Engine) finalizeSetup(t *turn) error {
	s := t.sess
	if s.Category == "" {
		s.Category = game.DefaultCategory
	}
	if s.Difficulty == "" {
		s.Difficulty = game.DefaultDifficulty
	}
	s.Category = strings.ToLower(s.Category)
	s.Difficulty = strings.ToLower(s.Difficulty)

	questions, err := e.content.Questions(t.ctx, t.req.Locale)
	if err != nil {
		return err
	}
	grouped := game.GroupByCategoryDifficulty(questions, s.HasCategory, s.HasDifficulty)

	var state game.State
	var stateErr error
	e.withRNG(func(rng *rand.Rand) {
		state, stateErr = game.NewGameState(s.Category, s.Difficulty, s.Settings.QuestionsPerGame, grouped, game.MaxQuestionsPerQuiz, rng)
	})
	if stateErr != nil {
		return stateErr
	}

	s.Count = state.Count
	s.CorrectCount = state.CorrectCount
	s.Limit = state.Limit
	s.Questions = state.Questions
	s.QuestionNumber = state.Count + 1
	s.IsReplay = false
	s.IsRepeat = false
	return nil
}

// askQuestion presents the current question. A repeat keeps the previously
// shuffled suggestion order; a fresh question shuffles the answer options and
// re-registers them as speech bias.
func (e *Engine) askQuestion(t *turn, transition string) error {
	s := t.sess
	isRepeat := s.IsRepeat
	s.IsRepeat = false

	q := s.CurrentQuestionAt()
	if q == nil {
		return fmt.Errorf("no question at index %d (limit %d)", s.Count, s.Limit)
	}

	if transition != "" {
		t.add(transition)
	}
	switch {
	case isRepeat:
		t.add(PromptRepeat)
	case s.Count == 0:
		t.add(PromptLetsPlay, PromptFirstRound)
	case s.Count < s.Limit-1:
		t.add(PromptNextQuestion)
	default:
		t.add(PromptFinalRound)
	}
	t.add(PromptRound, q.Question)

	if !isRepeat {
		suggestions := questionSuggestions(q)
		e.withRNG(func(rng *rand.Rand) {
			game.Shuffle(rng, suggestions)
		})
		s.Suggestions = suggestions
	}
	t.addSuggestions(s.Suggestions...)
	if !t.hasCapability(domain.CapabilityRichResponse) {
		t.add(t.suggestionTTS(s.Suggestions))
	}
	t.add(t.audio(s.Settings.AudioDing, content.DefaultAudio("audioDing")))

	s.CurrentQuestion = q
	s.CorrectAnswer = q.CorrectAnswer[0]
	t.setSpeechBiasing(q.CorrectAnswer, q.IncorrectAnswer1, q.IncorrectAnswer2)
	return nil
}

// questionSuggestions returns the canonical (first) form of each answer set.
func questionSuggestions(q *domain.Question) []string {
	options := make([]string, 0, 3)
	for _, answers := range [][]string{q.CorrectAnswer, q.IncorrectAnswer1, q.IncorrectAnswer2} {
		if len(answers) > 0 {
			options = append(options, answers[0])
		}
	}
	return options
}

func (e *Engine) questionRepeat(t *turn) error {
	t.sess.IsRepeat = true
	return e.askQuestion(t, "")
}

// answer scores a submitted answer. A pending skip is acknowledged without
// scoring; the skip handler already advanced the counters.
func (e *Engine) answer(t *turn, answer string) error {
	s := t.sess
	if s.IsSkip {
		s.IsSkip = false
		t.add(PromptSkip)
		return nil
	}

	if answer == "" {
		answer = t.slot(domain.SlotAnswer)
	}
	if answer == "" {
		answer = s.UserAnswer
	}
	s.UserAnswer = ""

	q := s.CurrentQuestionAt()
	if q == nil || len(q.CorrectAnswer) == 0 {
		return fmt.Errorf("no scoreable question at index %d", s.Count)
	}
	correct := s.CorrectAnswer
	if correct == "" {
		correct = q.CorrectAnswer[0]
	}

	s.Count++
	s.QuestionNumber++

	t.add(t.audio(s.Settings.AudioCalculating, content.DefaultAudio("audioCalculating")))
	if strings.EqualFold(answer, correct) {
		s.CorrectCount++
		t.add(
			t.audio(s.Settings.AudioCorrect, content.DefaultAudio("audioCorrect")),
			PromptRightAnswer1,
			PromptRightAnswer2,
		)
	} else {
		t.add(
			t.audio(s.Settings.AudioIncorrect, content.DefaultAudio("audioIncorrect")),
			PromptWrongAnswer1,
			PromptWrongAnswer2,
		)
	}
	if q.FollowUp != "" {
		t.add(q.FollowUp)
	}
	return nil
}

// answerOrdinal maps a spoken ordinal to the current suggestion list. "third"
// falls back to the second suggestion when only two exist. An unresolved
// ordinal routes to the first no-match tier instead of scoring.
func (e *Engine) answerOrdinal(t *turn) error {
	suggestions := t.sess.Suggestions
	var answer string
	switch t.slot(domain.SlotCount) {
	case domain.OrdinalFirst:
		if len(suggestions) > 0 {
			answer = suggestions[0]
		}
	case domain.OrdinalSecond:
		if len(suggestions) > 1 {
			answer = suggestions[1]
		}
	case domain.OrdinalThird:
		if len(suggestions) > 2 {
			answer = suggestions[2]
		} else if len(suggestions) > 1 {
			answer = suggestions[1]
		}
	}
	if answer == "" {
		return e.genericNoMatch1(t)
	}
	return e.answer(t, answer)
}

func (e *Engine) answerHelp(t *turn) error {
	t.add(PromptHelp)
	return nil
}

// answerSkip advances the counters and defers the acknowledgment to the next
// answer invocation, which consumes the flag without scoring.
func (e *Engine) answerSkip(t *turn) error {
	t.sess.Count++
	t.sess.QuestionNumber++
	t.sess.IsSkip = true
	return nil
}

func (e *Engine) roundEnd(t *turn) error {
	s := t.sess
	var outcome string
	switch {
	case s.CorrectCount == 0:
		outcome = PromptNoneCorrect
	case s.CorrectCount == s.Limit:
		outcome = PromptAllCorrect
	default:
		outcome = PromptSomeCorrect
	}
	t.add(
		t.audio(s.Settings.AudioRoundEnd, content.DefaultAudio("audioRoundEnd")),
		PromptGameOver1,
		PromptGameOver2,
		outcome,
	)
	return nil
}

// giveScore reports the score and re-presents the current question.
func (e *Engine) giveScore(t *turn) error {
	t.sess.IsRepeat = true
	return e.askQuestion(t, PromptYourScore)
}

func (e *Engine) restartConfirmation(t *turn) error {
	t.add(PromptRestartConfirmation)
	t.addSuggestions(PromptMiscYes, PromptMiscNo)
	return nil
}

func (e *Engine) restartYes(t *turn) error {
	t.sess.IsReplay = true
	t.add(PromptRestartYes)
	return nil
}

func (e *Engine) restartNo(t *turn) error {
	t.sess.IsRepeat = true
	return e.quitNo(t)
}

func (e *Engine) askPlayAgain(t *turn) error {
	t.add(PromptPlayAgainQuestion)
	t.addSuggestions(PromptMiscYes, PromptMiscNo)
	return nil
}

func (e *Engine) playAgainYes(t *turn) error {
	s := t.sess
	s.IsReplay = true
	s.Count = 0
	s.QuestionNumber = 1
	s.CorrectCount = 0
	t.add(PromptReprompt)
	return nil
}

func (e *Engine) quitConfirmation(t *turn) error {
	t.add(PromptStop)
	t.addSuggestions(PromptMiscYes, PromptMiscNo)
	return nil
}

// quitYes closes the conversation with the configured quit prompt (or the
// generic default) followed by the outro cue.
func (e *Engine) quitYes(t *turn) error {
	quitPrompt := t.sess.Settings.QuitPrompt
	if quitPrompt == "" {
		quitPrompt = PromptQuit
	}
	t.add(quitPrompt, t.audio(t.sess.Settings.AudioGameOutro, content.DefaultAudio("audioGameOutro")))
	t.resp.EndConversation = true
	return nil
}

func (e *Engine) quitNo(t *turn) error {
	t.add(PromptReprompt)
	return nil
}

func (e *Engine) genericNoMatch1(t *turn) error {
	t.add(PromptRapidReprompts)
	return nil
}

func (e *Engine) genericNoMatch2(t *turn) error {
	t.add(PromptRapidReprompts)
	return nil
}

func (e *Engine) genericNoMatchMax(t *turn) error {
	t.add(PromptFallback2)
	t.resp.EndConversation = true
	return nil
}

func (e *Engine) genericNoInput1(t *turn) error {
	t.add(PromptNoInput1)
	return nil
}

func (e *Engine) genericNoInput2(t *turn) error {
	t.add(PromptNoInput2)
	return nil
}

func (e *Engine) genericNoInputMax(t *turn) error {
	t.add(PromptNoInput3)
	t.resp.EndConversation = true
	return nil
}
