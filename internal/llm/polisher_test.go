package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestScriptPolisher_Polish(t *testing.T) {
	provider := &MockProvider{
		name:     "mock",
		response: &CompletionResponse{Text: "\n Smooth narration. \n"},
	}
	polisher := NewScriptPolisher(provider, "")

	got, err := polisher.Polish(context.Background(), "DRAFT BODY")
	if err != nil {
		t.Fatalf("Polish failed: %v", err)
	}
	if got != "Smooth narration." {
		t.Errorf("Unexpected text: %q", got)
	}

	req := provider.requests[0]
	if !strings.Contains(req.Prompt, "---\nDRAFT BODY\n---") {
		t.Error("Expected draft fenced in prompt")
	}
	if !strings.Contains(req.Prompt, "about IIT(ISM) Dhanbad") {
		t.Error("Expected default subject in prompt")
	}
	if !strings.Contains(req.Prompt, "DO NOT add fictional content") {
		t.Error("Expected no-fiction instruction in prompt")
	}
	if req.Temperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", req.Temperature)
	}
}

func TestScriptPolisher_CustomSubject(t *testing.T) {
	if !strings.Contains(BuildPolishPrompt("Royal School of Mines", "d"), "about Royal School of Mines") {
		t.Error("Expected custom subject in prompt")
	}
}

func TestScriptPolisher_Errors(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
	}{
		{"nil provider", nil},
		{"provider error", &MockProvider{name: "mock", err: errors.New("connection refused")}},
		{"empty answer", &MockProvider{name: "mock", response: &CompletionResponse{Text: "   "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewScriptPolisher(tt.provider, "").Polish(context.Background(), "draft"); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
