// Package script turns a knowledge base into a narration script draft.
package script

import (
	"strings"
	"unicode"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/extract"
)

// Placeholder stands in for a section with no material
const Placeholder = "Data not available."

// DefaultMaxSentences is the number of sentences kept per section
const DefaultMaxSentences = 2

// MinFragmentLength is the shortest sentence a summary may contain
const MinFragmentLength = 30

// Summarize reduces texts to the first maxSentences sentences of at least
// MinFragmentLength runes. Empty input yields Placeholder. Input with no
// qualifying sentence yields an empty string.
func Summarize(texts []string, maxSentences int) string {
	return SummarizeWith(texts, maxSentences, MinFragmentLength)
}

// SummarizeWith is Summarize with an explicit minimum fragment length
func SummarizeWith(texts []string, maxSentences, minLength int) string {
	if len(texts) == 0 {
		return Placeholder
	}
	if maxSentences <= 0 {
		return ""
	}

	var kept []string
	for _, fragment := range splitSentences(strings.Join(texts, " ")) {
		fragment = strings.TrimSpace(fragment)
		if extract.Length(fragment) < minLength {
			continue
		}
		kept = append(kept, fragment)
		if len(kept) == maxSentences {
			break
		}
	}

	return strings.Join(kept, " ")
}

// splitSentences splits after '.', '!' or '?' when followed by whitespace.
// The terminator stays with its sentence and the whitespace run is dropped.
func splitSentences(text string) []string {
	var parts []string
	runes := []rune(text)

	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) || i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		parts = append(parts, string(runes[start:i+1]))

		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}

	return parts
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
