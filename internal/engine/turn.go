package engine

import (
	"context"

	"trivia-dialogue-service/internal/domain"
)

// Request is one pre-classified turn: the resolved action, slot values, and
// the session being mutated. No raw user text reaches the engine.
type Request struct {
	Action        domain.Action     `json:"action"`
	Locale        string            `json:"locale"`
	Slots         map[string]string `json:"slots,omitempty"`
	Capabilities  []string          `json:"capabilities,omitempty"`
	ExecutionID   string            `json:"executionId,omitempty"`
	ReturningUser bool              `json:"returningUser,omitempty"`

	Session *domain.Session `json:"-"`
}

// TypeOverrideModeReplace is the only supported bias mode: each named group
// fully replaces any prior bias for that group.
const TypeOverrideModeReplace = "TYPE_REPLACE"

// SpeechBiasType names the answer bias group registered each question turn.
const SpeechBiasType = "answer"

// SynonymEntry is one biased recognition target with its synonyms.
type SynonymEntry struct {
	Name     string   `json:"name"`
	Synonyms []string `json:"synonyms"`
}

// TypeOverride is a speech-recognition bias entry for a named group.
type TypeOverride struct {
	Name    string         `json:"name"`
	Mode    string         `json:"mode"`
	Entries []SynonymEntry `json:"entries"`
}

// Response carries everything the host needs to render one turn.
type Response struct {
	// Fragments is the ordered list of prompt references, literal strings,
	// and <audio src=.../> fragments. Composition and escaping are the
	// host's job.
	Fragments []string `json:"fragments"`

	// Suggestions are short answer-option strings. UseList asks the host to
	// render them as a list instead of chips when any option is too long.
	Suggestions []string `json:"suggestions,omitempty"`
	UseList     bool     `json:"useList,omitempty"`

	TypeOverrides []TypeOverride `json:"typeOverrides,omitempty"`
	SpeechBiasing []string       `json:"speechBiasing,omitempty"`

	EndConversation bool `json:"endConversation,omitempty"`
}

// turn bundles the per-turn working state handlers operate on. It is built
// fresh for every dispatch and never attached to the inbound request.
type turn struct {
	ctx  context.Context
	req  *Request
	sess *domain.Session
	resp *Response
	eng  *Engine
}

func (t *turn) add(fragments ...string) {
	t.resp.Fragments = append(t.resp.Fragments, fragments...)
}

func (t *turn) slot(name string) string {
	return t.req.Slots[name]
}

func (t *turn) hasCapability(name string) bool {
	for _, c := range t.req.Capabilities {
		if c == name {
			return true
		}
	}
	return false
}
