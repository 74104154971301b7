package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/extract"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/knowledge"
)

// timelineHeader is the first row of the timeline CSV
var timelineHeader = []string{"Year", "Event", "GenAI_Prompt"}

// Renderer writes pipeline artifacts to disk
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the knowledge base as indented JSON
func (r *Renderer) RenderJSON(base *knowledge.Base, path string) error {
	data, err := json.MarshalIndent(base, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal knowledge base: %w", err)
	}
	return writeFile(path, data)
}

// RenderMarkdown writes the human-readable knowledge report
func (r *Renderer) RenderMarkdown(base *knowledge.Base, title, path string) error {
	return writeFile(path, []byte(MarkdownReport(base, title)))
}

// MarkdownReport renders the knowledge base as Markdown, one section per
// category in first-seen order
func MarkdownReport(base *knowledge.Base, title string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Extracted %s\n\n", title)

	for _, category := range base.Categories() {
		fmt.Fprintf(&b, "## 📂 %s\n", category)
		for _, entry := range base.Entries(category) {
			fmt.Fprintf(&b, "**Source:** `%s`\n", entry.SourceFile)
			fmt.Fprintf(&b, "**Matches:** %s\n", strings.Join(entry.MatchedTerms, ", "))
			fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(entry.TextContent, "\n", " "))
		}
		b.WriteString("---\n")
	}

	return b.String()
}

// RenderText writes text verbatim
func (r *Renderer) RenderText(text, path string) error {
	return writeFile(path, []byte(text))
}

// RenderTimelineCSV writes timeline events with a header row
func (r *Renderer) RenderTimelineCSV(events []extract.TimelineEvent, path string) error {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(timelineHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, ev := range events {
		if err := w.Write([]string{strconv.Itoa(ev.Year), ev.Event, ev.Prompt}); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}

	return writeFile(path, []byte(b.String()))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
