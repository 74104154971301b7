// Package speech turns the final narration script into audio.
package speech

import (
	"context"
	"time"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/model"
)

// Synthesizer is the interface for text-to-speech services
type Synthesizer interface {
	// Synthesize converts text to audio
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// SynthesizeToFile converts text to audio and saves it to path
	SynthesizeToFile(ctx context.Context, text, path string) error
}

// Config holds text-to-speech configuration
type Config struct {
	APIKey     string
	BaseURL    string
	VoiceID    string
	Model      string
	Stability  float64
	Similarity float64
	Timeout    time.Duration

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts model.Config to speech.Config
func ConfigFromModel(cfg *model.Config) Config {
	return Config{
		APIKey:     cfg.Speech.APIKey,
		BaseURL:    cfg.Speech.BaseURL,
		VoiceID:    cfg.Speech.VoiceID,
		Model:      cfg.Speech.Model,
		Stability:  cfg.Speech.Stability,
		Similarity: cfg.Speech.Similarity,
		Timeout:    cfg.Speech.Timeout,
		HTTPProxy:  cfg.HTTP.HTTPProxy,
		HTTPSProxy: cfg.HTTP.HTTPSProxy,
		NoProxy:    cfg.HTTP.NoProxy,
	}
}
