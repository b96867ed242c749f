package domain

import "errors"

var (
	// ErrUnknownLocale is returned when neither the exact locale nor its base
	// language has content.
	ErrUnknownLocale = errors.New("no content found for locale")
	// ErrNoLocaleData is returned by content sources when a single locale has
	// no data; the repository uses it to drive base-language fallback.
	ErrNoLocaleData = errors.New("no data for locale")
	// ErrUnknownAction indicates the dispatched action has no handler.
	ErrUnknownAction = errors.New("unknown action")
	// ErrEmptyQuestionBucket indicates the selected category/difficulty pair
	// has no question pool. This is a configuration error, not a user error.
	ErrEmptyQuestionBucket = errors.New("no questions for category/difficulty")
	// ErrNoSession is returned when a turn references a session that was
	// never set up.
	ErrNoSession = errors.New("session not found")
)
