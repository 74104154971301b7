package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/pipeline"
)

var (
	extractOutDir  string
	cleanArticles  bool
	extractTimeout time.Duration
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [dir]",
	Short: "Build the categorized knowledge base from scraped pages",
	Long: `Extract reads <dir>/<item>/index.html for every item directory and:
- Keeps the paragraphs of each page (optionally cleaned by an LLM)
- Files every paragraph that mentions a category phrase under that category
- Stores the paragraph together with the one before it as context
- Drops passages already filed under the same category

Outputs a JSON knowledge base and a Markdown report.

Example:
  chronicle extract newsarticle/html
  chronicle extract newsarticle/html --out-dir extracted_data
  chronicle extract newsarticle/html --clean=false
  chronicle extract newsarticle/html --llm-provider ollama`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractOutDir, "out-dir", "", "output directory (default from config: extracted_data)")
	extractCmd.Flags().BoolVar(&cleanArticles, "clean", true, "clean article paragraphs with the LLM before matching (--clean=false reads them raw)")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 30*time.Minute, "overall extraction timeout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Input.Dir = args[0]
	}
	if extractOutDir != "" {
		cfg.Output.Dir = extractOutDir
	}
	if cmd.Flags().Changed("clean") {
		cfg.Extraction.CleanArticles = cleanArticles
	}

	logger := newLogger()
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	p := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger))

	fmt.Fprintf(os.Stderr, "⚙️  Extracting from: %s\n", cfg.Input.Dir)
	if cfg.Extraction.CleanArticles {
		switch {
		case p.Provider() == nil:
			fmt.Fprintf(os.Stderr, "✗ Article cleaning requested but no LLM provider is configured, using raw paragraphs\n")
		case !p.CheckProvider(ctx):
			fmt.Fprintf(os.Stderr, "✗ LLM provider %s unavailable, using raw paragraphs\n", cfg.LLM.Provider)
		default:
			fmt.Fprintf(os.Stderr, "⚙️  Cleaning articles with %s\n", p.Provider().Name())
		}
	}

	base, err := p.ExtractKnowledge(ctx, cfg.Input.Dir)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if base.IsEmpty() {
		logger.Info("No category matches found in any document, nothing written")
		return nil
	}

	jsonPath := filepath.Join(cfg.Output.Dir, cfg.Output.KnowledgeFile)
	mdPath := filepath.Join(cfg.Output.Dir, cfg.Output.ReportFile)
	if err := p.RenderKnowledge(base, jsonPath, mdPath); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Filed %d passages under %d categories\n", base.Count(), base.Len())
	if cfg.Output.Verbose {
		for _, category := range base.Categories() {
			fmt.Fprintf(os.Stderr, "    %-28s %d\n", category, len(base.Entries(category)))
		}
	}
	fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
	fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)

	return nil
}
