package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/cache"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/extract"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/knowledge"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/llm"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/model"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/reader"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/script"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/speech"
)

// ErrNoSynthesizer is returned by Narrate when no speech service is configured
var ErrNoSynthesizer = errors.New("speech synthesis is not configured")

// Pipeline orchestrates extraction, script assembly and narration
type Pipeline struct {
	config      *model.Config
	reader      *reader.Reader
	renderer    *Renderer
	provider    llm.Provider // nil when no LLM is configured
	polisher    *llm.ScriptPolisher
	synthesizer speech.Synthesizer
	logger      logrus.FieldLogger

	providerSet    bool
	synthesizerSet bool
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger used for warnings and progress
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithProvider replaces the configured LLM provider. A nil provider
// disables cleaning and polishing.
func WithProvider(provider llm.Provider) Option {
	return func(p *Pipeline) {
		p.provider = provider
		p.providerSet = true
	}
}

// WithSynthesizer replaces the configured speech service
func WithSynthesizer(synthesizer speech.Synthesizer) Option {
	return func(p *Pipeline) {
		p.synthesizer = synthesizer
		p.synthesizerSet = true
	}
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		config:   cfg,
		renderer: NewRenderer(),
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if !p.providerSet && cfg.LLM.Provider != "" {
		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg))
		if err != nil {
			p.logger.WithError(err).Warn("Failed to initialize LLM provider, continuing without it")
		} else {
			p.provider = provider
		}
	}

	if !p.synthesizerSet && cfg.Speech.APIKey != "" {
		client, err := speech.NewElevenLabsClient(speech.ConfigFromModel(cfg))
		if err != nil {
			p.logger.WithError(err).Warn("Failed to initialize speech client")
		} else {
			p.synthesizer = client
		}
	}

	var cleaner reader.ArticleCleaner
	if p.provider != nil && cfg.Extraction.CleanArticles {
		cleaner = llm.NewArticleCleaner(p.provider, cache.New(cfg.Cache), p.logger)
	}
	p.reader = reader.New(cleaner, p.logger, cfg.Extraction.MinHTMLParagraphLength)

	if p.provider != nil && cfg.LLM.Polish {
		p.polisher = llm.NewScriptPolisher(p.provider, cfg.Script.Subject)
	}

	return p
}

// Provider returns the LLM provider, or nil when none is configured
func (p *Pipeline) Provider() llm.Provider {
	return p.provider
}

// CheckProvider reports whether the LLM provider answers. An unreachable
// provider is dropped: articles are read raw and scripts stay drafts.
func (p *Pipeline) CheckProvider(ctx context.Context) bool {
	if p.provider == nil {
		return false
	}
	if p.provider.IsAvailable(ctx) {
		return true
	}

	p.logger.WithField("provider", p.provider.Name()).Warn("LLM provider unavailable, continuing without it")
	p.provider = nil
	p.polisher = nil
	p.reader = reader.New(nil, p.logger, p.config.Extraction.MinHTMLParagraphLength)
	return false
}

// ExtractKnowledge reads the index file of every subdirectory of dir and
// files matched paragraphs by category. Subdirectories without an index
// file, and unreadable documents, are skipped with a warning.
func (p *Pipeline) ExtractKnowledge(ctx context.Context, dir string) (*knowledge.Base, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	indexFile := p.config.Input.IndexFile
	matcher := extract.NewMatcher(p.config.Categories)
	aggregator := knowledge.NewAggregator(p.config.Categories)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		source := entry.Name() + "/" + indexFile
		log := p.logger.WithField("file", source)

		path := filepath.Join(dir, entry.Name(), indexFile)
		if _, err := os.Stat(path); err != nil {
			log.Warnf("Skipping %s: no %s found", entry.Name(), indexFile)
			continue
		}

		text := p.reader.Read(ctx, path)
		if strings.TrimSpace(text) == "" {
			log.Warn("Empty or unreadable document")
			continue
		}

		matched, err := aggregator.AddParagraphs(source, extract.Paragraphs(text), matcher, p.config.Extraction.MinParagraphLength)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", source, err)
		}
		if matched == 0 {
			log.Info("No category matches found")
			continue
		}
		log.WithField("sections", matched).Info("Found relevant sections")
	}

	return aggregator.Base(), nil
}

// BuildTimeline reads every file directly inside dir and returns the
// dated events found, sorted by year with repeated sentences removed
func (p *Pipeline) BuildTimeline(ctx context.Context, dir string) ([]extract.TimelineEvent, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	extractor := extract.NewTimelineExtractor(p.config.Timeline.Keywords)
	var events []extract.TimelineEvent

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p.logger.WithField("file", entry.Name()).Debug("Processing document")
		text := p.reader.Read(ctx, filepath.Join(dir, entry.Name()))
		events = append(events, extractor.Extract(text)...)
	}

	return extract.FinalizeTimeline(events), nil
}

// ScriptResult holds both versions of the narration script
type ScriptResult struct {
	Draft    string
	Final    string
	Polished bool
}

// BuildScript assembles the draft script from website text and the
// knowledge base, then polishes it. Without a polisher, or when polishing
// fails, the final script is the draft unchanged.
func (p *Pipeline) BuildScript(ctx context.Context, base *knowledge.Base, websiteText string) *ScriptResult {
	ext := p.config.Extraction
	collected := script.NewCollector(p.config.ScriptCategories, ext.MinScriptLineLength).Collect(websiteText, base)
	draft := script.Assemble(collected, ext.MaxSentences, ext.MinFragmentLength)

	result := &ScriptResult{Draft: draft, Final: draft}
	if p.polisher == nil {
		return result
	}

	final, err := p.polisher.Polish(ctx, draft)
	if err != nil {
		p.logger.WithField("provider", p.provider.Name()).WithError(err).Warn("Script polishing failed, using draft")
		return result
	}

	result.Final = final
	result.Polished = true
	return result
}

// Narrate synthesizes text and writes the audio to path
func (p *Pipeline) Narrate(ctx context.Context, text, path string) error {
	if p.synthesizer == nil {
		return ErrNoSynthesizer
	}
	return p.synthesizer.SynthesizeToFile(ctx, text, path)
}

// RenderKnowledge writes the JSON knowledge base and the Markdown report.
// Empty paths are skipped.
func (p *Pipeline) RenderKnowledge(base *knowledge.Base, jsonPath, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(base, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}
	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(base, p.config.Output.ReportTitle, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
	}
	return nil
}

// RenderTimeline writes the timeline CSV
func (p *Pipeline) RenderTimeline(events []extract.TimelineEvent, path string) error {
	if err := p.renderer.RenderTimelineCSV(events, path); err != nil {
		return fmt.Errorf("render timeline: %w", err)
	}
	return nil
}

// RenderScript writes the final script and, when draftPath is set, the draft
func (p *Pipeline) RenderScript(result *ScriptResult, path, draftPath string) error {
	if err := p.renderer.RenderText(result.Final, path); err != nil {
		return fmt.Errorf("render script: %w", err)
	}
	if draftPath != "" {
		if err := p.renderer.RenderText(result.Draft, draftPath); err != nil {
			return fmt.Errorf("render draft: %w", err)
		}
	}
	return nil
}

// LoadKnowledge reads a knowledge base written by RenderKnowledge
func LoadKnowledge(path string) (*knowledge.Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	base := knowledge.NewBase()
	if err := json.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	return base, nil
}

// LoadText reads an optional text file. A missing file yields "".
func LoadText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
