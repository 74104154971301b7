package extract

import (
	"strings"
	"unicode/utf8"
)

// Sentences collapses whitespace runs to single spaces and splits on
// literal periods. Abbreviations and decimal numbers split too.
func Sentences(text string) []string {
	return trimNonEmpty(strings.Split(CollapseWhitespace(text), "."))
}

// Paragraphs splits text on blank-line boundaries
func Paragraphs(text string) []string {
	return trimNonEmpty(strings.Split(text, "\n\n"))
}

// CollapseWhitespace replaces every whitespace run with one space
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Length returns the length of s in characters
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// trimNonEmpty trims each part and drops the empty ones
func trimNonEmpty(parts []string) []string {
	units := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			units = append(units, p)
		}
	}
	return units
}
