package domain

// Action identifies a turn handler. Actions are resolved upstream by the
// intent classifier; the engine only dispatches on them.
type Action string

const (
	ActionAnswer        Action = "ANSWER"
	ActionAnswerHelp    Action = "ANSWER_HELP"
	ActionAnswerOrdinal Action = "ANSWER_ORDINAL"
	ActionAnswerSkip    Action = "ANSWER_SKIP"
	ActionAskQuestion   Action = "ASK_QUESTION"
	ActionFinalizeSetup Action = "FINALIZE_SETUP"

	ActionGenericNoMatch1   Action = "GENERIC_NO_MATCH_1"
	ActionGenericNoMatch2   Action = "GENERIC_NO_MATCH_2"
	ActionGenericNoMatchMax Action = "GENERIC_NO_MATCH_MAX"
	ActionGenericNoInput1   Action = "GENERIC_NO_INPUT_1"
	ActionGenericNoInput2   Action = "GENERIC_NO_INPUT_2"
	ActionGenericNoInputMax Action = "GENERIC_NO_INPUT_MAX"

	ActionGiveScore Action = "GIVE_SCORE"

	ActionAskPlayAgain    Action = "ASK_PLAY_AGAIN"
	ActionPlayAgainRepeat Action = "PLAY_AGAIN_REPEAT"
	ActionPlayAgainYes    Action = "PLAY_AGAIN_YES"
	ActionPlayAgainNo     Action = "PLAY_AGAIN_NO"

	ActionPromptCategory   Action = "PROMPT_CATEGORY"
	ActionPromptDifficulty Action = "PROMPT_DIFFICULTY"
	ActionQuestionRepeat   Action = "QUESTION_REPEAT"

	ActionQuitConfirmation Action = "QUIT_CONFIRMATION"
	ActionQuitNo           Action = "QUIT_NO"
	ActionQuitRepeat       Action = "QUIT_REPEAT"
	ActionQuitYes          Action = "QUIT_YES"

	ActionRestartConfirmation Action = "RESTART_CONFIRMATION"
	ActionRestartNo           Action = "RESTART_NO"
	ActionRestartRepeat       Action = "RESTART_REPEAT"
	ActionRestartYes          Action = "RESTART_YES"

	ActionRoundEnd      Action = "ROUND_END"
	ActionSetCategory   Action = "SET_CATEGORY"
	ActionSetDifficulty Action = "SET_DIFFICULTY"
	ActionSetupQuiz     Action = "SETUP_QUIZ"
	ActionWelcome       Action = "WELCOME"
)

// Slot names supplied by the intent resolver.
const (
	SlotAnswer     = "answer"
	SlotCount      = "count"
	SlotCategory   = "category"
	SlotDifficulty = "difficulty"
)

// Ordinal slot values for ANSWER_ORDINAL.
const (
	OrdinalFirst  = "first"
	OrdinalSecond = "second"
	OrdinalThird  = "third"
)

// CapabilityRichResponse marks devices that can render suggestion chips; when
// absent, chip texts are also spoken.
const CapabilityRichResponse = "RICH_RESPONSE"
