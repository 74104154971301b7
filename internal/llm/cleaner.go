package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/cache"
)

const cleanPromptTemplate = `You are cleaning raw web-scraped news article paragraphs.

Input paragraphs:
%s

Task:
1. Identify ONLY the paragraphs that belong to the main article body.
2. Remove:
   - Menus
   - Ads
   - Related articles
   - "Also read"
   - Comments
   - Category labels
   - Author bios
   - Navigation breadcrumbs
   - Dates / timestamps if not part of the story
3. Return ONLY the clean article text in proper order.

Output format:
A single JSON object:
{
    "clean_text": "<cleaned article text>"
}`

// ErrEmptyArticle is returned when the model answers without article text
var ErrEmptyArticle = errors.New("model returned no clean_text")

type cleanResponse struct {
	CleanText *string `json:"clean_text"`
}

// ArticleCleaner asks a model to keep only the main article body of a
// scraped page. Answers are cached by a hash of the paragraphs.
type ArticleCleaner struct {
	provider Provider
	cache    cache.Cache
	logger   logrus.FieldLogger
}

// NewArticleCleaner creates a cleaner. A nil cache disables caching.
func NewArticleCleaner(provider Provider, c cache.Cache, logger logrus.FieldLogger) *ArticleCleaner {
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ArticleCleaner{
		provider: provider,
		cache:    c,
		logger:   logger,
	}
}

// BuildCleanPrompt renders the cleaning instruction for paragraphs
func BuildCleanPrompt(paragraphs []string) (string, error) {
	encoded, err := json.MarshalIndent(paragraphs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode paragraphs: %w", err)
	}
	return fmt.Sprintf(cleanPromptTemplate, encoded), nil
}

// Clean returns the cleaned article text
func (c *ArticleCleaner) Clean(ctx context.Context, paragraphs []string) (string, error) {
	if c.provider == nil {
		return "", errors.New("no LLM provider configured")
	}

	key := cache.Key("clean", append([]string{c.provider.Name()}, paragraphs...)...)
	if cached, ok := c.cache.Get(key); ok {
		c.logger.WithField("provider", c.provider.Name()).Debug("Article cleaning served from cache")
		return string(cached), nil
	}

	prompt, err := BuildCleanPrompt(paragraphs)
	if err != nil {
		return "", err
	}

	resp, err := c.provider.Complete(ctx, CompletionRequest{
		Prompt:      prompt,
		Temperature: 0,
		JSONMode:    true,
	})
	if err != nil {
		return "", err
	}

	text, err := ParseCleanResponse(resp.Text)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(key, []byte(text), 0); err != nil {
		c.logger.WithError(err).Warn("Failed to cache cleaned article")
	}

	return text, nil
}

// ParseCleanResponse extracts clean_text from a model answer. Answers
// wrapped in a Markdown code fence are accepted.
func ParseCleanResponse(raw string) (string, error) {
	raw = stripCodeFence(raw)

	var parsed cleanResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return "", fmt.Errorf("parse cleaning response: %w", err)
	}
	if parsed.CleanText == nil || strings.TrimSpace(*parsed.CleanText) == "" {
		return "", ErrEmptyArticle
	}

	return *parsed.CleanText, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
