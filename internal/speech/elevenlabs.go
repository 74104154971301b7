package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/util"
)

// ElevenLabs defaults
const (
	ElevenLabsBaseURL = "https://api.elevenlabs.io"
	DefaultVoiceID    = "EXAVITQu4vr4xnSDxMaL"
	DefaultModel      = "eleven_multilingual_v2"
)

// ElevenLabsClient implements Synthesizer with the ElevenLabs REST API
type ElevenLabsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	config     Config
}

type elevenLabsRequest struct {
	Text          string             `json:"text"`
	ModelID       string             `json:"model_id"`
	VoiceSettings elevenLabsSettings `json:"voice_settings"`
}

type elevenLabsSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type elevenLabsError struct {
	Detail struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"detail"`
}

// NewElevenLabsClient creates a new ElevenLabs client
func NewElevenLabsClient(config Config) (*ElevenLabsClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("ElevenLabs API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = ElevenLabsBaseURL
	}
	if config.VoiceID == "" {
		config.VoiceID = DefaultVoiceID
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 2 * time.Minute
	}

	return &ElevenLabsClient{
		apiKey:  config.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
			},
		},
		config: config,
	}, nil
}

// Synthesize converts text to MPEG audio
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	body, err := json.Marshal(elevenLabsRequest{
		Text:    text,
		ModelID: c.config.Model,
		VoiceSettings: elevenLabsSettings{
			Stability:       c.config.Stability,
			SimilarityBoost: c.config.Similarity,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/v1/text-to-speech/" + url.PathEscape(c.config.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr elevenLabsError
		if json.Unmarshal(audio, &apiErr) == nil && apiErr.Detail.Message != "" {
			return nil, fmt.Errorf("ElevenLabs API error (%d): %s", resp.StatusCode, apiErr.Detail.Message)
		}
		return nil, fmt.Errorf("ElevenLabs API error (%d): %s", resp.StatusCode, string(audio))
	}

	if len(audio) == 0 {
		return nil, fmt.Errorf("ElevenLabs returned no audio")
	}

	return audio, nil
}

// SynthesizeToFile converts text to audio and writes it to path. Nothing
// is written when synthesis fails.
func (c *ElevenLabsClient) SynthesizeToFile(ctx context.Context, text, path string) error {
	audio, err := c.Synthesize(ctx, text)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	return nil
}
