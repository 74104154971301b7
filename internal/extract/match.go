package extract

import (
	"strings"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/model"
)

// Match records which phrases of one category occur in a text unit
type Match struct {
	Category string   `json:"category"`
	Terms    []string `json:"matched_terms"`
}

// Matcher tags text units with categories by case-insensitive
// substring containment. No tokenization or word boundaries: a phrase
// may match inside a longer word.
type Matcher struct {
	categories []model.Category
	lowered    [][]string
}

// NewMatcher creates a matcher for the given categories
func NewMatcher(categories []model.Category) *Matcher {
	lowered := make([][]string, len(categories))
	for i, cat := range categories {
		lowered[i] = make([]string, len(cat.MatchPhrases))
		for j, phrase := range cat.MatchPhrases {
			lowered[i][j] = strings.ToLower(phrase)
		}
	}

	return &Matcher{
		categories: categories,
		lowered:    lowered,
	}
}

// Categories returns the configured categories
func (m *Matcher) Categories() []model.Category {
	return m.categories
}

// Match returns one Match per category with at least one phrase in unit.
// Each Match carries only the phrases that were found, in configured order.
func (m *Matcher) Match(unit string) []Match {
	lower := strings.ToLower(unit)

	var matches []Match
	for i, cat := range m.categories {
		var terms []string
		for j, phrase := range m.lowered[i] {
			if strings.Contains(lower, phrase) {
				terms = append(terms, cat.MatchPhrases[j])
			}
		}
		if len(terms) > 0 {
			matches = append(matches, Match{
				Category: cat.Name,
				Terms:    terms,
			})
		}
	}

	return matches
}

// ContainsAny reports whether any phrase occurs in text, ignoring case
func ContainsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
