package engine

// Prompt resource references emitted as response fragments. The host resolves
// them against its per-locale string resources and composes the final markup;
// this engine only orders them.
const (
	PromptGreeting1            = "$resources.strings.main.GREETING_PROMPTS_1"
	PromptGreeting2            = "$resources.strings.main.GREETING_PROMPTS_2"
	PromptStop                 = "$resources.strings.main.STOP_PROMPTS"
	PromptReprompt             = "$resources.strings.main.RE_PROMPT"
	PromptQuit                 = "$resources.strings.main.QUIT_PROMPTS"
	PromptPlayAgainQuestion    = "$resources.strings.main.PLAY_AGAIN_QUESTION_PROMPTS"
	PromptFallback2            = "$resources.strings.main.FALLBACK_PROMPT_2"
	PromptRapidReprompts       = "$resources.strings.main.RAPID_REPROMPTS"
	PromptRepeat               = "$resources.strings.main.REPEAT_PROMPTS"
	PromptRestartConfirmation  = "$resources.strings.main.RESTART_CONFIRMATION"
	PromptRestartYes           = "$resources.strings.main.RESTART_YES"
	PromptSkip                 = "$resources.strings.main.SKIP_PROMPTS"
	PromptRightAnswer1         = "$resources.strings.main.RIGHT_ANSWER_PROMPTS_1"
	PromptRightAnswer2         = "$resources.strings.main.RIGHT_ANSWER_PROMPTS_2"
	PromptWrongAnswer1         = "$resources.strings.main.WRONG_ANSWER_PROMPTS_1"
	PromptWrongAnswer2         = "$resources.strings.main.WRONG_ANSWER_PROMPTS_2"
	PromptGameOver1            = "$resources.strings.main.GAME_OVER_PROMPTS_1"
	PromptGameOver2            = "$resources.strings.main.GAME_OVER_PROMPTS_2"
	PromptNoneCorrect          = "$resources.strings.main.NONE_CORRECT_PROMPTS"
	PromptSomeCorrect          = "$resources.strings.main.SOME_CORRECT_PROMPTS"
	PromptAllCorrect           = "$resources.strings.main.ALL_CORRECT_PROMPTS"
	PromptYourScore            = "$resources.strings.main.YOUR_SCORE_PROMPTS"
	PromptHelp                 = "$resources.strings.main.HELP_PROMPTS"
	PromptLetsPlay             = "$resources.strings.main.LETS_PLAY_PROMPTS"
	PromptRound                = "$resources.strings.main.ROUND_PROMPTS"
	PromptFirstRound           = "$resources.strings.main.FIRST_ROUND_PROMPTS"
	PromptFinalRound           = "$resources.strings.main.FINAL_ROUND_PROMPTS"
	PromptNextQuestion         = "$resources.strings.main.NEXT_QUESTION_PROMPTS"
	PromptNoInput1             = "$resources.strings.main.NO_INPUT_PROMPTS_1"
	PromptNoInput2             = "$resources.strings.main.NO_INPUT_PROMPTS_2"
	PromptNoInput3             = "$resources.strings.main.NO_INPUT_PROMPTS_3"
	PromptSelectionConfirmation = "$resources.strings.main.SELECTION_CONFIRMATION_PROMPTS"
	PromptMiscYes              = "$resources.strings.main.MISC_PROMPTS_YES"
	PromptMiscNo               = "$resources.strings.main.MISC_PROMPTS_NO"
	PromptMiscOr               = "$resources.strings.main.MISC_PROMPTS_OR"
)
