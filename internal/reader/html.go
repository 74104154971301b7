package reader

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/extract"
)

// paragraphSeparator joins raw paragraphs when no cleaned article is
// available; the page stays a single block for matching
const paragraphSeparator = "\n"

// hiddenElements never contribute text
var hiddenElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

func (r *Reader) readHTML(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	paragraphs, err := ExtractParagraphs(f, r.minParagraphLength)
	if err != nil {
		return "", err
	}

	return r.clean(ctx, path, paragraphs), nil
}

// clean routes paragraphs through the article cleaner, falling back to
// the raw paragraphs when there is no cleaner or it fails
func (r *Reader) clean(ctx context.Context, path string, paragraphs []string) string {
	fallback := strings.Join(paragraphs, paragraphSeparator)
	if r.cleaner == nil || len(paragraphs) == 0 {
		return fallback
	}

	cleaned, err := r.cleaner.Clean(ctx, paragraphs)
	if err != nil {
		r.logger.WithField("file", path).WithError(err).Warn("Article cleaning failed, using raw paragraphs")
		return fallback
	}
	return cleaned
}

// ExtractParagraphs returns the text of every <p> element longer than
// minLength runes, after dropping script, style and noscript elements.
// Text nodes inside a paragraph are trimmed and joined by a single space.
func ExtractParagraphs(rd io.Reader, minLength int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(rd)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	var paragraphs []string
	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		text := nodesText(s.Nodes)
		if extract.Length(text) > minLength {
			paragraphs = append(paragraphs, text)
		}
	})

	return paragraphs, nil
}

// nodesText joins the trimmed, non-empty visible text nodes under nodes
func nodesText(nodes []*html.Node) string {
	var parts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hiddenElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range nodes {
		walk(n)
	}

	return strings.Join(parts, " ")
}
