package knowledge

import (
	"errors"
	"fmt"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/extract"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/model"
)

// ErrUnknownCategory is returned when adding to a category that is not configured
var ErrUnknownCategory = errors.New("unknown category")

// contextSeparator joins a context paragraph to the matched paragraph
const contextSeparator = "\n\n"

// Aggregator files passages into a Base, dropping exact duplicates per category
type Aggregator struct {
	base  *Base
	known map[string]bool
	seen  map[string]map[string]bool
}

// NewAggregator creates an aggregator restricted to the given categories
func NewAggregator(categories []model.Category) *Aggregator {
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.Name] = true
	}

	return &Aggregator{
		base:  NewBase(),
		known: known,
		seen:  make(map[string]map[string]bool),
	}
}

// Base returns the accumulated knowledge base
func (a *Aggregator) Base() *Base {
	return a.base
}

// Add files text under category. It returns false without changing
// anything when the category already holds byte-identical text; the
// first occurrence wins.
func (a *Aggregator) Add(category, source string, terms []string, text string) (bool, error) {
	if !a.known[category] {
		return false, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	seen := a.seen[category]
	if seen == nil {
		seen = make(map[string]bool)
		a.seen[category] = seen
	}
	if seen[text] {
		return false, nil
	}
	seen[text] = true

	a.base.append(category, Entry{
		SourceFile:   source,
		MatchedTerms: append([]string(nil), terms...),
		TextContent:  text,
	})
	return true, nil
}

// AddParagraphs matches every paragraph of one document and files the hits.
// Paragraphs shorter than minLength are not matched. A matched paragraph is
// stored with the paragraph before it as context, whatever that one's length.
// It returns the number of matched paragraphs.
func (a *Aggregator) AddParagraphs(source string, paragraphs []string, matcher *extract.Matcher, minLength int) (int, error) {
	matched := 0

	for i, para := range paragraphs {
		if extract.Length(para) < minLength {
			continue
		}

		matches := matcher.Match(para)
		if len(matches) == 0 {
			continue
		}
		matched++

		content := para
		if i > 0 {
			content = paragraphs[i-1] + contextSeparator + para
		}

		for _, m := range matches {
			if _, err := a.Add(m.Category, source, m.Terms, content); err != nil {
				return matched, err
			}
		}
	}

	return matched, nil
}
