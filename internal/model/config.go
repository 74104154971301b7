package model

import (
	"fmt"
	"time"
)

// Config is the complete runtime configuration. It is built once at
// startup and passed to every component.
type Config struct {
	Input        InputConfig        `yaml:"input" mapstructure:"input"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Extraction   ExtractionConfig   `yaml:"extraction" mapstructure:"extraction"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Script       ScriptConfig       `yaml:"script" mapstructure:"script"`
	Speech       SpeechConfig       `yaml:"speech" mapstructure:"speech"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Timeline     TimelineConfig     `yaml:"timeline" mapstructure:"timeline"`

	Categories       []Category `yaml:"categories" mapstructure:"categories"`
	ScriptCategories []Category `yaml:"script_categories" mapstructure:"script_categories"`
}

// InputConfig describes the input directory layout
type InputConfig struct {
	Dir         string `yaml:"dir" mapstructure:"dir"`                   // Parent directory, one subdirectory per item
	IndexFile   string `yaml:"index_file" mapstructure:"index_file"`     // File expected in every subdirectory
	WebsiteText string `yaml:"website_text" mapstructure:"website_text"` // Optional plain-text dump of the website
}

// OutputConfig holds artifact locations
type OutputConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	KnowledgeFile string `yaml:"knowledge_file" mapstructure:"knowledge_file"`
	ReportFile    string `yaml:"report_file" mapstructure:"report_file"`
	ReportTitle   string `yaml:"report_title" mapstructure:"report_title"`
	ScriptFile    string `yaml:"script_file" mapstructure:"script_file"`
	DraftFile     string `yaml:"draft_file" mapstructure:"draft_file"`
	AudioFile     string `yaml:"audio_file" mapstructure:"audio_file"`
	TimelineFile  string `yaml:"timeline_file" mapstructure:"timeline_file"`
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`
}

// ExtractionConfig holds the length thresholds used while filtering text
type ExtractionConfig struct {
	MinParagraphLength     int  `yaml:"min_paragraph_length" mapstructure:"min_paragraph_length"`           // Paragraph eligible for matching
	MinHTMLParagraphLength int  `yaml:"min_html_paragraph_length" mapstructure:"min_html_paragraph_length"` // <p> kept when longer than this
	MinScriptLineLength    int  `yaml:"min_script_line_length" mapstructure:"min_script_line_length"`       // Cleaned line kept for the script
	MinFragmentLength      int  `yaml:"min_fragment_length" mapstructure:"min_fragment_length"`             // Summary sentence kept
	MaxSentences           int  `yaml:"max_sentences" mapstructure:"max_sentences"`                         // Sentences per script section
	CleanArticles          bool `yaml:"clean_articles" mapstructure:"clean_articles"`                       // Route HTML paragraphs through the LLM cleaner
}

// LLMConfig configures the language model used for cleaning and polishing
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // groq, openai, anthropic, ollama, gemini, "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	Polish    bool   `yaml:"polish" mapstructure:"polish"`
}

// ScriptConfig configures the narration script
type ScriptConfig struct {
	Subject string `yaml:"subject" mapstructure:"subject"` // Named in the polishing prompt
}

// SpeechConfig configures the text-to-speech service
type SpeechConfig struct {
	APIKey     string        `yaml:"-" mapstructure:"api_key"`
	BaseURL    string        `yaml:"base_url" mapstructure:"base_url"`
	VoiceID    string        `yaml:"voice_id" mapstructure:"voice_id"`
	Model      string        `yaml:"model" mapstructure:"model"`
	Stability  float64       `yaml:"stability" mapstructure:"stability"`
	Similarity float64       `yaml:"similarity" mapstructure:"similarity"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// HTTPConfig configures page fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig configures the cleaning-response cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig configures the fetch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig configures per-host fetch limits
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// TimelineConfig configures the year-oriented extraction mode
type TimelineConfig struct {
	Keywords []string `yaml:"keywords" mapstructure:"keywords"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Dir:       "newsarticle/html",
			IndexFile: "index.html",
		},
		Output: OutputConfig{
			Dir:           "extracted_data",
			KnowledgeFile: "knowledge.json",
			ReportFile:    "REPORT.md",
			ReportTitle:   "IIT (ISM) Knowledge (News Articles)",
			ScriptFile:    "final_script.txt",
			DraftFile:     "",
			AudioFile:     "narration.mp3",
			TimelineFile:  "timeline.csv",
		},
		Extraction: ExtractionConfig{
			MinParagraphLength:     30,
			MinHTMLParagraphLength: 30,
			MinScriptLineLength:    40,
			MinFragmentLength:      30,
			MaxSentences:           2,
			CleanArticles:          true,
		},
		LLM: LLMConfig{
			Provider:  "groq",
			Model:     "",
			Timeout:   60,
			MaxTokens: 2048,
			Polish:    true,
		},
		Script: ScriptConfig{
			Subject: "IIT(ISM) Dhanbad",
		},
		Speech: SpeechConfig{
			BaseURL:    "https://api.elevenlabs.io",
			VoiceID:    "EXAVITQu4vr4xnSDxMaL",
			Model:      "eleven_multilingual_v2",
			Stability:  0.20,
			Similarity: 0.75,
			Timeout:    2 * time.Minute,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Chronicle/0.1 (+https://github.com/hawk-wild/GEN-AI-video-generation)",
			MaxBodyBytes:  5_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".chronicle-cache",
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		Timeline: TimelineConfig{
			Keywords: DefaultTimelineKeywords(),
		},
		Categories:       DefaultCategories(),
		ScriptCategories: DefaultScriptCategories(),
	}
}

// Validate checks the configuration and fills in zero values
func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	seen := make(map[string]bool)
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category name must not be empty")
		}
		if seen[cat.Name] {
			return fmt.Errorf("duplicate category: %s", cat.Name)
		}
		seen[cat.Name] = true
	}
	if len(c.ScriptCategories) == 0 {
		c.ScriptCategories = c.Categories
	}

	if c.Input.IndexFile == "" {
		c.Input.IndexFile = "index.html"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Extraction.MaxSentences <= 0 {
		c.Extraction.MaxSentences = 2
	}
	if c.Extraction.MinFragmentLength <= 0 {
		c.Extraction.MinFragmentLength = 30
	}
	if c.Concurrency.Workers <= 0 {
		c.Concurrency.Workers = 1
	}

	return nil
}
