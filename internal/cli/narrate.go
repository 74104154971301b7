package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/pipeline"
)

var (
	audioOut       string
	voiceID        string
	narrateTimeout time.Duration
)

// narrateCmd represents the narrate command
var narrateCmd = &cobra.Command{
	Use:   "narrate [script-file]",
	Short: "Turn the final script into speech with ElevenLabs",
	Long: `Narrate sends the script to the ElevenLabs text-to-speech API and
writes the returned MPEG audio. The API key is read from ELEVENLABS_API_KEY
(or CHRONICLE_SPEECH_API_KEY). No file is written when synthesis fails.

Example:
  chronicle narrate
  chronicle narrate final_script.txt --out narration.mp3 --voice EXAVITQu4vr4xnSDxMaL`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNarrate,
}

func init() {
	rootCmd.AddCommand(narrateCmd)

	narrateCmd.Flags().StringVar(&audioOut, "out", "", "output audio path (default from config: narration.mp3)")
	narrateCmd.Flags().StringVar(&voiceID, "voice", "", "ElevenLabs voice ID")
	narrateCmd.Flags().DurationVar(&narrateTimeout, "timeout", 5*time.Minute, "overall timeout")
}

func runNarrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scriptPath := cfg.Output.ScriptFile
	if len(args) == 1 {
		scriptPath = args[0]
	}
	if audioOut != "" {
		cfg.Output.AudioFile = audioOut
	}
	if voiceID != "" {
		cfg.Speech.VoiceID = voiceID
	}

	if cfg.Speech.APIKey == "" {
		return fmt.Errorf("ELEVENLABS_API_KEY environment variable not set")
	}

	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return fmt.Errorf("script %s is empty", scriptPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), narrateTimeout)
	defer cancel()

	p := pipeline.NewPipeline(cfg, pipeline.WithLogger(newLogger()))

	fmt.Fprintf(os.Stderr, "⚙️  Synthesizing %d characters with voice %s\n", len([]rune(text)), cfg.Speech.VoiceID)
	if err := p.Narrate(ctx, text, cfg.Output.AudioFile); err != nil {
		return fmt.Errorf("narrate failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Wrote audio: %s\n", cfg.Output.AudioFile)
	return nil
}
