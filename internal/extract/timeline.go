package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// yearPattern matches years between 1800 and 2099
var yearPattern = regexp.MustCompile(`\b(18\d{2}|19\d{2}|20\d{2})\b`)

// promptPrefixLen is how much of a sentence goes into a shot prompt
const promptPrefixLen = 100

// TimelineEvent is a dated sentence with a generated shot prompt
type TimelineEvent struct {
	Year   int    `json:"year"`
	Event  string `json:"event"`
	Prompt string `json:"genai_prompt"`
}

// TimelineExtractor keeps sentences that carry both a year and a keyword
type TimelineExtractor struct {
	keywords []string
}

// NewTimelineExtractor creates a new timeline extractor
func NewTimelineExtractor(keywords []string) *TimelineExtractor {
	return &TimelineExtractor{
		keywords: keywords,
	}
}

// Extract returns the dated events found in text, in sentence order
func (e *TimelineExtractor) Extract(text string) []TimelineEvent {
	var events []TimelineEvent

	for _, sentence := range Sentences(text) {
		years := yearPattern.FindAllString(sentence, -1)
		if len(years) == 0 {
			continue
		}
		if !ContainsAny(sentence, e.keywords) {
			continue
		}

		// First year found is the primary timestamp
		year, err := strconv.Atoi(years[0])
		if err != nil {
			continue
		}

		events = append(events, TimelineEvent{
			Year:   year,
			Event:  sentence,
			Prompt: shotPrompt(year, sentence),
		})
	}

	return events
}

// FinalizeTimeline sorts events by year and drops repeated sentences.
// The sort is stable, so the earliest-listed copy of a sentence wins.
func FinalizeTimeline(events []TimelineEvent) []TimelineEvent {
	sorted := make([]TimelineEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Year < sorted[j].Year
	})

	seen := make(map[string]bool)
	var unique []TimelineEvent
	for _, ev := range sorted {
		if !seen[ev.Event] {
			seen[ev.Event] = true
			unique = append(unique, ev)
		}
	}

	return unique
}

func shotPrompt(year int, sentence string) string {
	runes := []rune(sentence)
	if len(runes) > promptPrefixLen {
		runes = runes[:promptPrefixLen]
	}
	return fmt.Sprintf("Historical cinematic shot from %d, %s...", year, string(runes))
}
