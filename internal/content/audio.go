package content

// Built-in audio cue URL sets, used as defaults when a locale's settings do
// not override them.
var defaultAudio = map[string][]string{
	"audioGameIntro": {
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/RobotIntro_Shortened1.ogg",
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/RobotIntro_Shortened2.ogg",
	},
	"audioGameOutro": {
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/RobotOutro_Shortened_v1.ogg",
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/RobotOutro_Shortened_v2.ogg",
	},
	"audioDing": {
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/Trivia-Bot_Sounds_TriviaDing.ogg",
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/Trivia-Bot_Sounds_TriviaDing2.ogg",
	},
	"audioCorrect": {
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/Robot%20Template%20Correct%20Ding%201.ogg",
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/Robot%20Template%20Correct%20Ding%202.ogg",
	},
	"audioIncorrect": {
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/Robot%20Template%20Incorrect%20Buzz%201.ogg",
	},
	"audioRoundEnd": {
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/Trivia-Bot_Sounds_EndOfRound.ogg",
	},
	"audioCalculating": {
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/Robot%20Template%20Sounds%20Calc%201.ogg",
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/Robot%20Template%20Sounds%20Calc%202.ogg",
		"https://storage.googleapis.com/actionsprod.appspot.com/sounds/Robot%20Template%20Sounds%20Calc%203.ogg",
	},
}

// DefaultAudio returns the built-in cue URLs for an audio settings alias.
func DefaultAudio(alias string) []string {
	return defaultAudio[alias]
}
