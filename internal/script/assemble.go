package script

import (
	"strings"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/extract"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/knowledge"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/model"
)

// DefaultMinLineLength is the shortest cleaned line Collect keeps
const DefaultMinLineLength = 40

// Collected maps a category name to the cleaned passages gathered for it
type Collected map[string][]string

// Collector gathers script material from website text and a knowledge base
type Collector struct {
	matcher       *extract.Matcher
	minLineLength int
}

// NewCollector creates a collector matching website lines against categories
func NewCollector(categories []model.Category, minLineLength int) *Collector {
	if minLineLength <= 0 {
		minLineLength = DefaultMinLineLength
	}
	return &Collector{
		matcher:       extract.NewMatcher(categories),
		minLineLength: minLineLength,
	}
}

// Collect files every matching line of websiteText under each category it
// matches, then appends the text of every knowledge base entry. Lines and
// entries are whitespace-collapsed and dropped when shorter than the
// minimum line length. Entries of categories the collector does not know
// are ignored.
func (c *Collector) Collect(websiteText string, base *knowledge.Base) Collected {
	out := make(Collected)

	for _, line := range strings.Split(websiteText, "\n") {
		line = c.clean(line)
		if line == "" {
			continue
		}
		for _, m := range c.matcher.Match(line) {
			out[m.Category] = append(out[m.Category], line)
		}
	}

	if base == nil {
		return out
	}

	known := make(map[string]bool)
	for _, cat := range c.matcher.Categories() {
		known[cat.Name] = true
	}

	for _, category := range base.Categories() {
		if !known[category] {
			continue
		}
		for _, text := range base.Texts(category) {
			if text = c.clean(text); text != "" {
				out[category] = append(out[category], text)
			}
		}
	}

	return out
}

func (c *Collector) clean(text string) string {
	text = extract.CollapseWhitespace(text)
	if extract.Length(text) < c.minLineLength {
		return ""
	}
	return text
}

// Assemble summarizes every template slot from collected and renders the draft
func Assemble(collected Collected, maxSentences, minFragmentLength int) string {
	sections := make(Sections, len(sectionOrder))
	for _, name := range sectionOrder {
		sections[name] = SummarizeWith(collected[name], maxSentences, minFragmentLength)
	}
	return Render(sections)
}
