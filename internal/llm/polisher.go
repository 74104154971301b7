package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const polishPromptTemplate = `You are an expert documentary scriptwriter.

Below is a draft script for a 2-minute documentary about %s.
Improve it by:

- making narration smooth and cohesive
- improving sentence transitions
- removing redundancy
- tightening overly long lines
- keeping factual correctness
- keeping total length ~2 minutes
- DO NOT add fictional content

Return ONLY the improved script.

Draft Script:
---
%s
---
`

// DefaultSubject names the documentary in the polishing prompt
const DefaultSubject = "IIT(ISM) Dhanbad"

// ScriptPolisher rewrites a draft script for narration
type ScriptPolisher struct {
	provider Provider
	subject  string
}

// NewScriptPolisher creates a polisher for a documentary about subject
func NewScriptPolisher(provider Provider, subject string) *ScriptPolisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &ScriptPolisher{
		provider: provider,
		subject:  subject,
	}
}

// BuildPolishPrompt renders the polishing instruction for draft
func BuildPolishPrompt(subject, draft string) string {
	return fmt.Sprintf(polishPromptTemplate, subject, draft)
}

// Polish returns the improved script. An empty answer is an error so
// callers can fall back to the draft.
func (p *ScriptPolisher) Polish(ctx context.Context, draft string) (string, error) {
	if p.provider == nil {
		return "", errors.New("no LLM provider configured")
	}

	resp, err := p.provider.Complete(ctx, CompletionRequest{
		Prompt:      BuildPolishPrompt(p.subject, draft),
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", errors.New("model returned an empty script")
	}
	return text, nil
}
