package knowledge

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/extract"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/model"
)

func testCategories() []model.Category {
	return []model.Category{
		{Name: "Milestones_and_Evolution", MatchPhrases: []string{"Golden Jubilee"}},
		{Name: "Campus_Infrastructure", MatchPhrases: []string{"Oval Garden", "Golden Jubilee Lecture Theatre"}},
	}
}

func TestAggregator_Add(t *testing.T) {
	agg := NewAggregator(testCategories())

	added, err := agg.Add("Milestones_and_Evolution", "a/index.html", []string{"Golden Jubilee"}, "text one")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !added {
		t.Error("Expected first add to store the entry")
	}

	entries := agg.Base().Entries("Milestones_and_Evolution")
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	want := Entry{SourceFile: "a/index.html", MatchedTerms: []string{"Golden Jubilee"}, TextContent: "text one"}
	if !reflect.DeepEqual(entries[0], want) {
		t.Errorf("Entry = %+v, want %+v", entries[0], want)
	}
}

func TestAggregator_DedupesExactText(t *testing.T) {
	agg := NewAggregator(testCategories())

	_, _ = agg.Add("Milestones_and_Evolution", "a/index.html", []string{"Golden Jubilee"}, "same text")
	added, err := agg.Add("Milestones_and_Evolution", "b/index.html", []string{"Golden Jubilee"}, "same text")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added {
		t.Error("Expected duplicate add to be a no-op")
	}

	entries := agg.Base().Entries("Milestones_and_Evolution")
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry after duplicate add, got %d", len(entries))
	}
	if entries[0].SourceFile != "a/index.html" {
		t.Errorf("Expected first occurrence to win, got source %s", entries[0].SourceFile)
	}
}

func TestAggregator_NearDuplicatesKept(t *testing.T) {
	agg := NewAggregator(testCategories())

	_, _ = agg.Add("Milestones_and_Evolution", "a", nil, "The Golden Jubilee was held.")
	_, _ = agg.Add("Milestones_and_Evolution", "a", nil, "The Golden Jubilee was held")

	if n := len(agg.Base().Entries("Milestones_and_Evolution")); n != 2 {
		t.Errorf("Expected near-duplicates to be kept separately, got %d entries", n)
	}
}

func TestAggregator_SameTextDifferentCategories(t *testing.T) {
	agg := NewAggregator(testCategories())

	_, _ = agg.Add("Milestones_and_Evolution", "a", nil, "shared")
	added, _ := agg.Add("Campus_Infrastructure", "a", nil, "shared")

	if !added {
		t.Error("Expected dedupe to be scoped per category")
	}
}

func TestAggregator_UnknownCategory(t *testing.T) {
	agg := NewAggregator(testCategories())

	_, err := agg.Add("Orphan", "a", nil, "text")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
	if !agg.Base().IsEmpty() {
		t.Error("Expected base to stay empty")
	}
}

func TestAggregator_AddParagraphs_Context(t *testing.T) {
	agg := NewAggregator(testCategories())
	matcher := extract.NewMatcher(testCategories())

	paragraphs := []string{
		"Short intro.",
		"The Golden Jubilee of the institute was celebrated with great fanfare.",
		"Unrelated closing paragraph that is long enough to be considered.",
	}

	matched, err := agg.AddParagraphs("news/index.html", paragraphs, matcher, 30)
	if err != nil {
		t.Fatalf("AddParagraphs failed: %v", err)
	}
	if matched != 1 {
		t.Errorf("Expected 1 matched paragraph, got %d", matched)
	}

	entries := agg.Base().Entries("Milestones_and_Evolution")
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	// The short preceding paragraph is carried as context
	want := "Short intro.\n\nThe Golden Jubilee of the institute was celebrated with great fanfare."
	if entries[0].TextContent != want {
		t.Errorf("TextContent = %q, want %q", entries[0].TextContent, want)
	}
}

func TestAggregator_AddParagraphs_FirstHasNoContext(t *testing.T) {
	agg := NewAggregator(testCategories())
	matcher := extract.NewMatcher(testCategories())

	para := "Students relax in the Oval Garden every evening after classes."
	if _, err := agg.AddParagraphs("x", []string{para}, matcher, 30); err != nil {
		t.Fatalf("AddParagraphs failed: %v", err)
	}

	entries := agg.Base().Entries("Campus_Infrastructure")
	if len(entries) != 1 || entries[0].TextContent != para {
		t.Errorf("Expected paragraph without context, got %+v", entries)
	}
}

func TestAggregator_AddParagraphs_SkipsShortUnits(t *testing.T) {
	agg := NewAggregator(testCategories())
	matcher := extract.NewMatcher(testCategories())

	if _, err := agg.AddParagraphs("x", []string{"Golden Jubilee!"}, matcher, 30); err != nil {
		t.Fatalf("AddParagraphs failed: %v", err)
	}
	if !agg.Base().IsEmpty() {
		t.Error("Expected short paragraph to be ignored")
	}
}

func TestAggregator_AddParagraphs_MultipleCategories(t *testing.T) {
	agg := NewAggregator(testCategories())
	matcher := extract.NewMatcher(testCategories())

	para := "Lectures moved to the Golden Jubilee Lecture Theatre in 1976."
	if _, err := agg.AddParagraphs("x", []string{para}, matcher, 30); err != nil {
		t.Fatalf("AddParagraphs failed: %v", err)
	}

	if got := agg.Base().Categories(); !reflect.DeepEqual(got, []string{"Milestones_and_Evolution", "Campus_Infrastructure"}) {
		t.Errorf("Unexpected categories: %v", got)
	}
	campus := agg.Base().Entries("Campus_Infrastructure")
	if len(campus) != 1 || !reflect.DeepEqual(campus[0].MatchedTerms, []string{"Golden Jubilee Lecture Theatre"}) {
		t.Errorf("Unexpected campus entry: %+v", campus)
	}
}
