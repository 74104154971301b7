package llm

import (
	"testing"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/model"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		apiKey   string
		wantName string
		wantErr  bool
	}{
		{provider: "", wantName: ""},
		{provider: "groq", apiKey: "k", wantName: "groq"},
		{provider: "GROQ", apiKey: "k", wantName: "groq"},
		{provider: "openai", apiKey: "k", wantName: "openai"},
		{provider: "claude", apiKey: "k", wantName: "anthropic"},
		{provider: "ollama", wantName: "ollama"},
		{provider: "gemini", apiKey: "k", wantName: "gemini"},
		{provider: "groq", wantErr: true},
		{provider: "mystery", apiKey: "k", wantErr: true},
	}

	for _, tt := range tests {
		p, err := NewProvider(Config{Provider: tt.provider, APIKey: tt.apiKey})
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewProvider(%q) expected error", tt.provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewProvider(%q) failed: %v", tt.provider, err)
			continue
		}
		if tt.wantName == "" {
			if p != nil {
				t.Errorf("NewProvider(%q) expected nil provider", tt.provider)
			}
			continue
		}
		if p.Name() != tt.wantName {
			t.Errorf("NewProvider(%q).Name() = %s, want %s", tt.provider, p.Name(), tt.wantName)
		}
	}
}

func TestConfigFromModel_EnvKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "from-env")

	cfg := model.DefaultConfig()
	cfg.LLM.Provider = "groq"
	cfg.HTTP.HTTPSProxy = "http://proxy:3128"

	c := ConfigFromModel(cfg)
	if c.APIKey != "from-env" {
		t.Errorf("Expected key from environment, got %q", c.APIKey)
	}
	if c.Model != "" {
		t.Errorf("Expected provider default model, got %q", c.Model)
	}
	if c.HTTPSProxy != "http://proxy:3128" {
		t.Errorf("Expected proxy to be carried, got %q", c.HTTPSProxy)
	}
}

func TestConfigFromModel_ExplicitKeyWins(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "from-env")

	cfg := model.DefaultConfig()
	cfg.LLM.Provider = "openai"
	cfg.LLM.APIKey = "explicit"

	if c := ConfigFromModel(cfg); c.APIKey != "explicit" {
		t.Errorf("Expected explicit key, got %q", c.APIKey)
	}
}

func TestConfigFromModel_OllamaBaseURL(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "http://gpu-box:11434")

	cfg := model.DefaultConfig()
	cfg.LLM.Provider = "ollama"

	if c := ConfigFromModel(cfg); c.BaseURL != "http://gpu-box:11434" {
		t.Errorf("Expected base URL from environment, got %q", c.BaseURL)
	}
}

func TestAPIKeyEnv(t *testing.T) {
	if APIKeyEnv("anthropic") != "ANTHROPIC_API_KEY" {
		t.Error("Unexpected env for anthropic")
	}
	if APIKeyEnv("ollama") != "" {
		t.Error("Expected no key env for ollama")
	}
}
