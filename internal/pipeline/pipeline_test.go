package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/knowledge"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/llm"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/model"
)

// mockProvider implements llm.Provider for testing
type mockProvider struct {
	text        string
	err         error
	unavailable bool
	calls       int
}

func (m *mockProvider) Name() string {
	return "mock"
}

func (m *mockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &llm.CompletionResponse{Text: m.text, Model: "mock-1"}, nil
}

func (m *mockProvider) IsAvailable(ctx context.Context) bool {
	return !m.unavailable
}

// mockSynthesizer implements speech.Synthesizer for testing
type mockSynthesizer struct {
	err  error
	text string
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	m.text = text
	if m.err != nil {
		return nil, m.err
	}
	return []byte("audio"), nil
}

func (m *mockSynthesizer) SynthesizeToFile(ctx context.Context, text, path string) error {
	audio, err := m.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	return os.WriteFile(path, audio, 0o644)
}

const jubileePage = `<html><head><title>News</title><script>var x = "Golden Jubilee";</script></head>
<body>
<p>Menu</p>
<p>The institute was founded long ago in the coal belt of Jharkhand.</p>
<p>In 1976 the campus celebrated its Golden Jubilee with a grand convocation.</p>
</body></html>`

func writeInput(t *testing.T, dir, sub, name, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", sub, err)
	}
	if err := os.WriteFile(filepath.Join(dir, sub, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func newTestConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	return cfg
}

func TestPipeline_ExtractKnowledge(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "jubilee", "index.html", jubileePage)
	writeInput(t, dir, "no-index", "notes.txt", "nothing here")

	logger, hook := test.NewNullLogger()
	p := NewPipeline(newTestConfig(t), WithLogger(logger), WithProvider(nil))

	base, err := p.ExtractKnowledge(context.Background(), dir)
	if err != nil {
		t.Fatalf("ExtractKnowledge failed: %v", err)
	}

	categories := base.Categories()
	if len(categories) != 1 || categories[0] != model.CategoryMilestones {
		t.Fatalf("Expected only %s, got %v", model.CategoryMilestones, categories)
	}

	entries := base.Entries(model.CategoryMilestones)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.SourceFile != "jubilee/index.html" {
		t.Errorf("Unexpected source file %q", entry.SourceFile)
	}
	if len(entry.MatchedTerms) != 1 || entry.MatchedTerms[0] != "Golden Jubilee" {
		t.Errorf("Unexpected terms %v", entry.MatchedTerms)
	}
	// raw paragraphs form one block, so there is no separate context paragraph
	want := "The institute was founded long ago in the coal belt of Jharkhand.\nIn 1976 the campus celebrated its Golden Jubilee with a grand convocation."
	if entry.TextContent != want {
		t.Errorf("Unexpected text:\n%q\nwant:\n%q", entry.TextContent, want)
	}

	skipped := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && strings.Contains(e.Message, "Skipping no-index") {
			skipped = true
		}
	}
	if !skipped {
		t.Error("Expected a warning for the directory without index.html")
	}
}

func TestPipeline_ExtractKnowledge_RenderReport(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "jubilee", "index.html", jubileePage)

	p := NewPipeline(newTestConfig(t), WithLogger(logrus.New()), WithProvider(nil))

	base, err := p.ExtractKnowledge(context.Background(), dir)
	if err != nil {
		t.Fatalf("ExtractKnowledge failed: %v", err)
	}

	out := t.TempDir()
	jsonPath := filepath.Join(out, "extracted_data", "knowledge.json")
	mdPath := filepath.Join(out, "extracted_data", "REPORT.md")
	if err := p.RenderKnowledge(base, jsonPath, mdPath); err != nil {
		t.Fatalf("RenderKnowledge failed: %v", err)
	}

	report, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	if !strings.Contains(string(report), "Golden Jubilee") {
		t.Error("Expected report to mention Golden Jubilee")
	}
	if !strings.HasPrefix(string(report), "# Extracted IIT (ISM) Knowledge (News Articles)\n\n") {
		t.Errorf("Unexpected report title: %q", strings.SplitN(string(report), "\n", 2)[0])
	}

	loaded, err := LoadKnowledge(jsonPath)
	if err != nil {
		t.Fatalf("LoadKnowledge failed: %v", err)
	}
	if loaded.Count() != base.Count() {
		t.Errorf("Expected %d entries after reload, got %d", base.Count(), loaded.Count())
	}
}

func TestPipeline_ExtractKnowledge_WithCleaner(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "jubilee", "index.html", jubileePage)

	cfg := newTestConfig(t)
	cfg.Extraction.CleanArticles = true
	provider := &mockProvider{text: `{"clean_text": "Alumni gathered for the Diamond Jubilee celebrations in the main hall.\n\nThe Oval Garden was lit for the evening."}`}

	p := NewPipeline(cfg, WithLogger(logrus.New()), WithProvider(provider))

	base, err := p.ExtractKnowledge(context.Background(), dir)
	if err != nil {
		t.Fatalf("ExtractKnowledge failed: %v", err)
	}

	if provider.calls != 1 {
		t.Errorf("Expected 1 cleaning call, got %d", provider.calls)
	}
	if len(base.Entries(model.CategoryMilestones)) != 1 {
		t.Errorf("Expected the cleaned article to match milestones, got %v", base.Categories())
	}
	if len(base.Entries(model.CategoryCampus)) != 1 {
		t.Errorf("Expected the cleaned article to match campus, got %v", base.Categories())
	}
}

func TestPipeline_CheckProvider_Unavailable(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "jubilee", "index.html", jubileePage)

	cfg := newTestConfig(t)
	cfg.Extraction.CleanArticles = true
	provider := &mockProvider{text: `{"clean_text": "unused"}`, unavailable: true}

	logger, hook := test.NewNullLogger()
	p := NewPipeline(cfg, WithLogger(logger), WithProvider(provider))

	if p.CheckProvider(context.Background()) {
		t.Fatal("Expected unavailable provider to fail the check")
	}
	if p.Provider() != nil {
		t.Error("Expected unavailable provider to be dropped")
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Error("Expected a warning for the unavailable provider")
	}

	base, err := p.ExtractKnowledge(context.Background(), dir)
	if err != nil {
		t.Fatalf("ExtractKnowledge failed: %v", err)
	}
	if len(base.Entries(model.CategoryMilestones)) != 1 {
		t.Errorf("Expected raw paragraphs to match milestones, got %v", base.Categories())
	}

	result := p.BuildScript(context.Background(), base, "")
	if result.Polished || result.Final != result.Draft {
		t.Error("Expected the draft script without an available provider")
	}
	if provider.calls != 0 {
		t.Errorf("Expected no completion calls, got %d", provider.calls)
	}
}

func TestPipeline_CheckProvider(t *testing.T) {
	p := NewPipeline(newTestConfig(t), WithLogger(logrus.New()), WithProvider(nil))
	if p.CheckProvider(context.Background()) {
		t.Error("Expected no provider to fail the check")
	}

	provider := &mockProvider{text: "polished"}
	p = NewPipeline(newTestConfig(t), WithLogger(logrus.New()), WithProvider(provider))
	if !p.CheckProvider(context.Background()) {
		t.Error("Expected available provider to pass the check")
	}
	if p.Provider() == nil {
		t.Error("Expected available provider to be kept")
	}
}

func TestPipeline_ExtractKnowledge_MissingDir(t *testing.T) {
	p := NewPipeline(newTestConfig(t), WithProvider(nil))

	if _, err := p.ExtractKnowledge(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing input directory")
	}
}

func TestPipeline_ExtractKnowledge_EmptyInput(t *testing.T) {
	p := NewPipeline(newTestConfig(t), WithLogger(logrus.New()), WithProvider(nil))

	base, err := p.ExtractKnowledge(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("ExtractKnowledge failed: %v", err)
	}
	if !base.IsEmpty() {
		t.Errorf("Expected empty knowledge base, got %d categories", base.Len())
	}
}

func TestPipeline_BuildTimeline(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, ".", "history.txt",
		"The school was established in 1926 by the government. It rained in 1927. "+
			"The institute became an IIT in 2016. The school was established in 1926 by the government.")
	writeInput(t, dir, "nested", "ignored.txt", "Founded in 1900.")

	p := NewPipeline(newTestConfig(t), WithLogger(logrus.New()), WithProvider(nil))

	events, err := p.BuildTimeline(context.Background(), dir)
	if err != nil {
		t.Fatalf("BuildTimeline failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d: %+v", len(events), events)
	}
	if events[0].Year != 1926 || events[1].Year != 2016 {
		t.Errorf("Unexpected years %d, %d", events[0].Year, events[1].Year)
	}
}

func TestPipeline_BuildScript_PolishFallback(t *testing.T) {
	base := knowledgeWith(t, model.CategoryMilestones, "The institute celebrated its Golden Jubilee in 1976 with great fanfare.")

	p := NewPipeline(newTestConfig(t), WithLogger(logrus.New()), WithProvider(&mockProvider{err: errors.New("service unavailable")}))

	result := p.BuildScript(context.Background(), base, "")
	if result.Polished {
		t.Error("Expected unpolished result on provider failure")
	}
	if result.Final != result.Draft {
		t.Error("Expected final script to equal the draft")
	}
	if !strings.Contains(result.Draft, "Golden Jubilee") {
		t.Error("Expected draft to carry knowledge base text")
	}
	if !strings.Contains(result.Draft, "Data not available.") {
		t.Error("Expected placeholder for empty sections")
	}

	path := filepath.Join(t.TempDir(), "final_script.txt")
	if err := p.RenderScript(result, path, ""); err != nil {
		t.Fatalf("RenderScript failed: %v", err)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read script: %v", err)
	}
	if string(written) != result.Draft {
		t.Error("Expected written script to match the draft byte for byte")
	}
}

func TestPipeline_BuildScript_Polished(t *testing.T) {
	base := knowledgeWith(t, model.CategoryMilestones, "The institute celebrated its Golden Jubilee in 1976 with great fanfare.")
	provider := &mockProvider{text: "A smooth documentary narration."}

	p := NewPipeline(newTestConfig(t), WithLogger(logrus.New()), WithProvider(provider))

	result := p.BuildScript(context.Background(), base, "")
	if !result.Polished {
		t.Error("Expected polished result")
	}
	if result.Final != "A smooth documentary narration." {
		t.Errorf("Unexpected final script %q", result.Final)
	}

	dir := t.TempDir()
	final := filepath.Join(dir, "final.txt")
	draft := filepath.Join(dir, "draft.txt")
	if err := p.RenderScript(result, final, draft); err != nil {
		t.Fatalf("RenderScript failed: %v", err)
	}
	if data, _ := os.ReadFile(draft); string(data) != result.Draft {
		t.Error("Expected draft file to hold the draft")
	}
}

func TestPipeline_BuildScript_PolishDisabled(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.LLM.Polish = false
	provider := &mockProvider{text: "unused"}

	p := NewPipeline(cfg, WithLogger(logrus.New()), WithProvider(provider))

	result := p.BuildScript(context.Background(), knowledge.NewBase(), "")
	if result.Final != result.Draft || provider.calls != 0 {
		t.Error("Expected no polishing when disabled")
	}
}

func TestPipeline_Narrate(t *testing.T) {
	synth := &mockSynthesizer{}
	p := NewPipeline(newTestConfig(t), WithProvider(nil), WithSynthesizer(synth))

	path := filepath.Join(t.TempDir(), "narration.mp3")
	if err := p.Narrate(context.Background(), "Final script.", path); err != nil {
		t.Fatalf("Narrate failed: %v", err)
	}
	if synth.text != "Final script." {
		t.Errorf("Unexpected synthesized text %q", synth.text)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected audio file: %v", err)
	}
}

func TestPipeline_Narrate_NotConfigured(t *testing.T) {
	p := NewPipeline(newTestConfig(t), WithProvider(nil), WithSynthesizer(nil))

	if err := p.Narrate(context.Background(), "x", filepath.Join(t.TempDir(), "a.mp3")); !errors.Is(err, ErrNoSynthesizer) {
		t.Errorf("Expected ErrNoSynthesizer, got %v", err)
	}
}

func TestLoadText(t *testing.T) {
	text, err := LoadText(filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil || text != "" {
		t.Errorf("Expected empty text for missing file, got %q, %v", text, err)
	}

	path := filepath.Join(t.TempDir(), "site.txt")
	if err := os.WriteFile(path, []byte("Campus\xff text"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	text, err = LoadText(path)
	if err != nil {
		t.Fatalf("LoadText failed: %v", err)
	}
	if text != "Campus text" {
		t.Errorf("Unexpected text %q", text)
	}
}

func knowledgeWith(t *testing.T, category, text string) *knowledge.Base {
	t.Helper()
	agg := knowledge.NewAggregator(model.DefaultCategories())
	if _, err := agg.Add(category, "a/index.html", []string{"Golden Jubilee"}, text); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return agg.Base()
}
