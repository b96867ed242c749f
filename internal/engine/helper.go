package engine

import (
	"fmt"
	"strings"
)

// audio picks a random cue URL, preferring the session's settings over the
// built-in fallback, and wraps it as an audio fragment.
func (t *turn) audio(urls, fallback []string) string {
	pool := urls
	if len(pool) == 0 {
		pool = fallback
	}
	if len(pool) == 0 {
		return ""
	}
	return fmt.Sprintf("<audio src=%q/>", pool[t.eng.intn(len(pool))])
}

// addSuggestions registers cleaned suggestion strings on the response. When
// any option is too long for a chip the whole set is flagged for list
// rendering.
func (t *turn) addSuggestions(options ...string) {
	cleaned := make([]string, 0, len(options))
	useList := false
	for _, option := range options {
		option = strings.TrimSpace(stripEmoji(option))
		if !strings.Contains(option, "MISC_PROMPTS") && len([]rune(option)) > chipRenderLimit {
			useList = true
		}
		cleaned = append(cleaned, option)
	}
	t.resp.Suggestions = cleaned
	t.resp.UseList = useList
}

const chipRenderLimit = 25

// suggestionTTS builds the spoken enumeration of the suggestion chips for
// devices that cannot render them ("a, b, or c").
func (t *turn) suggestionTTS(suggestions []string) string {
	var b strings.Builder
	for i, s := range suggestions {
		switch {
		case i == len(suggestions)-1:
			b.WriteString(s)
		case i == len(suggestions)-2:
			b.WriteString(s + ", " + PromptMiscOr + " ")
		default:
			b.WriteString(s + ", ")
		}
	}
	return b.String()
}

// setSpeechBiasing registers synonym groups as recognition bias, replacing
// any prior bias for the answer group. Entries are deduplicated, trimmed, and
// stripped of emoji; empty groups are dropped.
func (t *turn) setSpeechBiasing(groups ...[]string) {
	cleaned := make([][]string, 0, len(groups))
	var flat []string
	for _, group := range groups {
		synonyms := dedupe(group, func(s string) string {
			return strings.TrimSpace(stripEmoji(s))
		})
		if len(synonyms) == 0 {
			continue
		}
		cleaned = append(cleaned, synonyms)
		flat = append(flat, synonyms...)
	}
	t.resp.SpeechBiasing = flat

	entries := make([]SynonymEntry, 0, len(cleaned))
	for _, synonyms := range cleaned {
		lowered := dedupe(synonyms, func(s string) string {
			return strings.ToLower(strings.TrimSpace(s))
		})
		if len(lowered) == 0 {
			continue
		}
		entries = append(entries, SynonymEntry{Name: lowered[0], Synonyms: lowered})
	}
	override := TypeOverride{Name: SpeechBiasType, Mode: TypeOverrideModeReplace, Entries: entries}

	for i, existing := range t.resp.TypeOverrides {
		if existing.Name == override.Name {
			t.resp.TypeOverrides[i] = override
			return
		}
	}
	t.resp.TypeOverrides = append(t.resp.TypeOverrides, override)
}

// dedupe maps every element through clean and drops empties and duplicates,
// preserving first-seen order.
func dedupe(items []string, clean func(string) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = clean(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// stripEmoji removes emoji and emoji-joining runes so chip texts and bias
// synonyms stay plain speakable strings.
func stripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, emoticons, symbols
			return -1
		case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
			return -1
		case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
			return -1
		case r == 0xFE0F || r == 0x200D: // variation selector, zero-width joiner
			return -1
		}
		return r
	}, s)
}
