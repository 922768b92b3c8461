package menu

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/functional"
)

// FuzzyThreshold is the minimum similarity for a fuzzy match to be accepted.
const FuzzyThreshold = 0.6

// FindExact returns the item whose name equals the query, or nil.
func FindExact(name string, items []*Item) *Item {
	item, ok := functional.Find(items, func(item *Item) bool {
		return item.Name == name
	})
	if !ok {
		return nil
	}
	return item
}

// Similarity returns a normalized edit-distance similarity between two strings
// on a 0..1 scale: 1 minus the Levenshtein distance over the longer rune count.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// FindFuzzy returns the catalog name closest to the query, provided its
// similarity reaches FuzzyThreshold. Ties go to the name seen first.
func FindFuzzy(query string, items []*Item) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, item := range items {
		score := Similarity(query, item.Name)
		if score > bestScore {
			best = item.Name
			bestScore = score
		}
	}
	if bestScore >= FuzzyThreshold {
		return best, true
	}
	return "", false
}

// ContainsAnyName scans the catalog for a name that appears verbatim inside the
// utterance. Longer names are tried first so that an utterance mentioning both
// "カレー" and "チキンカレー" resolves to the more specific item; catalog
// iteration order is otherwise unspecified.
func ContainsAnyName(text string, items []*Item) (string, bool) {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return utf8.RuneCountInString(names[i]) > utf8.RuneCountInString(names[j])
	})
	for _, name := range names {
		if name != "" && strings.Contains(text, name) {
			return name, true
		}
	}
	return "", false
}

// FilterHalal returns the halal-flagged subset of the snapshot, in catalog order.
func FilterHalal(items []*Item) []*Item {
	return functional.Filter(items, func(item *Item) bool {
		return item.Halal
	})
}
