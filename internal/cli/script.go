package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/knowledge"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/pipeline"
)

var (
	knowledgePath string
	websitePath   string
	scriptOut     string
	draftOut      string
	noPolish      bool
	subject       string
	scriptTimeout time.Duration
)

// scriptCmd represents the script command
var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Assemble the narration script from the knowledge base",
	Long: `Script collects material for every section of the documentary template:
- Lines of the website text dump that mention a section's phrases
- Every knowledge base passage filed under the section

Each section is summarized to its first sentences and the template is
filled in. When an LLM provider is configured the draft is polished;
if polishing fails the draft is written unchanged.

Example:
  chronicle script
  chronicle script --knowledge extracted_data/knowledge.json --website website_extracted_data.txt
  chronicle script --llm-provider groq --draft draft_script.txt
  chronicle script --no-polish`,
	Args: cobra.NoArgs,
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)

	scriptCmd.Flags().StringVar(&knowledgePath, "knowledge", "", "knowledge base JSON (default: <output dir>/knowledge.json)")
	scriptCmd.Flags().StringVar(&websitePath, "website", "", "plain-text website dump (optional)")
	scriptCmd.Flags().StringVar(&scriptOut, "out", "", "final script path (default from config: final_script.txt)")
	scriptCmd.Flags().StringVar(&draftOut, "draft", "", "also write the unpolished draft to this path")
	scriptCmd.Flags().BoolVar(&noPolish, "no-polish", false, "skip LLM polishing")
	scriptCmd.Flags().StringVar(&subject, "subject", "", "documentary subject named in the polishing prompt")
	scriptCmd.Flags().DurationVar(&scriptTimeout, "timeout", 5*time.Minute, "overall timeout")
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if knowledgePath == "" {
		knowledgePath = filepath.Join(cfg.Output.Dir, cfg.Output.KnowledgeFile)
	}
	if websitePath != "" {
		cfg.Input.WebsiteText = websitePath
	}
	if scriptOut != "" {
		cfg.Output.ScriptFile = scriptOut
	}
	if draftOut != "" {
		cfg.Output.DraftFile = draftOut
	}
	if noPolish {
		cfg.LLM.Polish = false
	}
	if subject != "" {
		cfg.Script.Subject = subject
	}

	logger := newLogger()
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()

	base, err := pipeline.LoadKnowledge(knowledgePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.WithField("file", knowledgePath).Warn("Knowledge base not found, using website text only")
		base = knowledge.NewBase()
	case err != nil:
		return err
	}

	websiteText, err := pipeline.LoadText(cfg.Input.WebsiteText)
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger))

	fmt.Fprintf(os.Stderr, "⚙️  Assembling script from %d passages\n", base.Count())
	if cfg.LLM.Polish && p.Provider() != nil {
		if p.CheckProvider(ctx) {
			fmt.Fprintf(os.Stderr, "⚙️  Polishing with %s\n", p.Provider().Name())
		} else {
			fmt.Fprintf(os.Stderr, "✗ LLM provider %s unavailable, using draft\n", cfg.LLM.Provider)
		}
	}

	result := p.BuildScript(ctx, base, websiteText)

	if err := p.RenderScript(result, cfg.Output.ScriptFile, cfg.Output.DraftFile); err != nil {
		return err
	}

	if result.Polished {
		fmt.Fprintf(os.Stderr, "✓ Script polished\n")
	} else {
		fmt.Fprintf(os.Stderr, "✓ Using draft script\n")
	}
	fmt.Fprintf(os.Stderr, "✓ Wrote script: %s\n", cfg.Output.ScriptFile)
	if cfg.Output.DraftFile != "" {
		fmt.Fprintf(os.Stderr, "✓ Wrote draft: %s\n", cfg.Output.DraftFile)
	}

	fmt.Println(result.Final)

	return nil
}
