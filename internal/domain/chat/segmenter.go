package chat

import "unicode/utf8"

// DefaultTerminals are the sentence-terminal runes: Japanese full stop and
// comma, half-width and full-width question/exclamation marks.
const DefaultTerminals = "。、!?！？"

// Segmenter splits answer text into fragments at sentence-terminal punctuation.
// Each terminal rune stays attached to the fragment it closes, so concatenating
// the fragments in order reconstructs the input exactly.
type Segmenter struct {
	terminals map[rune]bool
}

// NewSegmenter builds a segmenter over the given terminal rune set; an empty
// string selects DefaultTerminals.
func NewSegmenter(terminals string) Segmenter {
	if terminals == "" {
		terminals = DefaultTerminals
	}
	set := make(map[rune]bool, len(terminals))
	for _, r := range terminals {
		set[r] = true
	}
	return Segmenter{terminals: set}
}

// Cut returns the first fragment of text and the unprocessed remainder. Text
// without any terminal rune comes back whole with an empty remainder. Cutting
// empty text yields two empty strings.
func (s Segmenter) Cut(text string) (fragment, rest string) {
	for i, r := range text {
		if s.terminals[r] {
			end := i + utf8.RuneLen(r)
			return text[:end], text[end:]
		}
	}
	return text, ""
}

// Segment splits the whole text into its ordered fragment sequence. Empty input
// yields an empty sequence.
func (s Segmenter) Segment(text string) []string {
	var fragments []string
	for text != "" {
		var frag string
		frag, text = s.Cut(text)
		fragments = append(fragments, frag)
	}
	return fragments
}
