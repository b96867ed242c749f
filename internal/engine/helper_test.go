package engine

import (
	"testing"

	"trivia-dialogue-service/internal/domain"
)

func newHelperTurn() *turn {
	return &turn{
		req:  &Request{},
		sess: &domain.Session{},
		resp: &Response{},
		eng:  New(&stubContent{}, WithRandSeed(1)),
	}
}

func TestAddSuggestionsFlagsLongOptions(t *testing.T) {
	tr := newHelperTurn()
	tr.addSuggestions("short", "this option is definitely longer than a chip allows")
	if !tr.resp.UseList {
		t.Fatal("long option should switch to list rendering")
	}

	tr = newHelperTurn()
	tr.addSuggestions("short", "also short")
	if tr.resp.UseList {
		t.Fatal("short options should stay chips")
	}
}

func TestAddSuggestionsStripsEmoji(t *testing.T) {
	tr := newHelperTurn()
	tr.addSuggestions(" Paris \U0001F1EB\U0001F1F7 ")
	if got := tr.resp.Suggestions[0]; got != "Paris" {
		t.Fatalf("suggestion = %q, want %q", got, "Paris")
	}
}

func TestSuggestionTTS(t *testing.T) {
	tr := newHelperTurn()
	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a, " + PromptMiscOr + " b"},
		{[]string{"a", "b", "c"}, "a, b, " + PromptMiscOr + " c"},
	}
	for _, tc := range cases {
		if got := tr.suggestionTTS(tc.in); got != tc.want {
			t.Fatalf("suggestionTTS(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSetSpeechBiasingReplacesAnswerGroup(t *testing.T) {
	tr := newHelperTurn()
	tr.setSpeechBiasing([]string{"Paris", "paris", ""}, []string{"Lyon"})

	if len(tr.resp.TypeOverrides) != 1 {
		t.Fatalf("overrides = %+v", tr.resp.TypeOverrides)
	}
	override := tr.resp.TypeOverrides[0]
	if override.Name != SpeechBiasType || override.Mode != TypeOverrideModeReplace {
		t.Fatalf("override header = %+v", override)
	}
	if len(override.Entries) != 2 {
		t.Fatalf("entries = %+v", override.Entries)
	}
	if override.Entries[0].Name != "paris" || len(override.Entries[0].Synonyms) != 1 {
		t.Fatalf("first entry = %+v", override.Entries[0])
	}

	tr.setSpeechBiasing([]string{"Jupiter"})
	if len(tr.resp.TypeOverrides) != 1 {
		t.Fatalf("re-bias should replace, got %+v", tr.resp.TypeOverrides)
	}
	if tr.resp.TypeOverrides[0].Entries[0].Name != "jupiter" {
		t.Fatalf("entries = %+v", tr.resp.TypeOverrides[0].Entries)
	}
}

func TestAudioPrefersConfiguredCues(t *testing.T) {
	tr := newHelperTurn()
	got := tr.audio([]string{"https://example.com/a.ogg"}, []string{"https://example.com/b.ogg"})
	if got != `<audio src="https://example.com/a.ogg"/>` {
		t.Fatalf("audio = %q", got)
	}
	got = tr.audio(nil, []string{"https://example.com/b.ogg"})
	if got != `<audio src="https://example.com/b.ogg"/>` {
		t.Fatalf("fallback audio = %q", got)
	}
	if tr.audio(nil, nil) != "" {
		t.Fatal("no cues should yield empty fragment")
	}
}
