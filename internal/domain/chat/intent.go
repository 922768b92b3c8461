package chat

import "strings"

// Recognized-phrase tables. Matching is case-respecting substring containment,
// except the romanized dietary synonym which is matched case-insensitively.
var (
	reservationPhrases   = []string{"予約", "reservation"}
	dietaryPhrases       = []string{"ハラール"}
	dietaryFoldedPhrases = []string{"halal"}
)

// Intents is the set of intents recognized in a single utterance. Several may
// match at once; the orchestrator applies precedence (reservation before
// dietary before catalog-name).
type Intents struct {
	Reservation bool
	Dietary     bool
}

// Classify runs the deterministic keyword screens over the raw utterance.
// Pure; no catalog access.
func Classify(text string) Intents {
	var intents Intents
	for _, phrase := range reservationPhrases {
		if strings.Contains(text, phrase) {
			intents.Reservation = true
			break
		}
	}
	for _, phrase := range dietaryPhrases {
		if strings.Contains(text, phrase) {
			intents.Dietary = true
			break
		}
	}
	if !intents.Dietary {
		folded := strings.ToLower(text)
		for _, phrase := range dietaryFoldedPhrases {
			if strings.Contains(folded, phrase) {
				intents.Dietary = true
				break
			}
		}
	}
	return intents
}
