package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/pipeline"
)

var (
	timelineOut     string
	timelineTimeout time.Duration
)

// timelineCmd represents the timeline command
var timelineCmd = &cobra.Command{
	Use:   "timeline <dir>",
	Short: "Extract dated events from a folder of documents",
	Long: `Timeline reads every PDF, DOCX, TXT, HTML and MHTML file directly
inside <dir> and keeps each sentence that carries a year (1800-2099) and
one of the timeline keywords. Events are sorted by year, repeated
sentences are dropped, and each event gets a shot prompt for video
generation.

Example:
  chronicle timeline ./documents
  chronicle timeline ./documents --out iit_ism_timeline.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)

	timelineCmd.Flags().StringVar(&timelineOut, "out", "", "output CSV path (default from config: timeline.csv)")
	timelineCmd.Flags().DurationVar(&timelineTimeout, "timeout", 10*time.Minute, "overall timeout")
}

func runTimeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if timelineOut != "" {
		cfg.Output.TimelineFile = timelineOut
	}

	logger := newLogger()
	ctx, cancel := context.WithTimeout(context.Background(), timelineTimeout)
	defer cancel()

	p := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger))

	fmt.Fprintf(os.Stderr, "⚙️  Reading documents in: %s\n", args[0])
	events, err := p.BuildTimeline(ctx, args[0])
	if err != nil {
		return fmt.Errorf("timeline failed: %w", err)
	}

	if len(events) == 0 {
		logger.Info("No relevant events found, check the keywords or document content")
		return nil
	}

	if err := p.RenderTimeline(events, cfg.Output.TimelineFile); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Found %d events (%d to %d)\n", len(events), events[0].Year, events[len(events)-1].Year)
	fmt.Fprintf(os.Stderr, "✓ Wrote CSV: %s\n", cfg.Output.TimelineFile)

	return nil
}
