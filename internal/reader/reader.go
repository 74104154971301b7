// Package reader turns source documents into plain text.
package reader

import (
	"context"
	"fmt"
	"strings"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/logging"
	"github.com/sirupsen/logrus"
)

// DefaultMinParagraphLength is the shortest HTML paragraph passed on
const DefaultMinParagraphLength = 30

// ArticleCleaner reduces scraped paragraphs to the text of the main article
type ArticleCleaner interface {
	Clean(ctx context.Context, paragraphs []string) (string, error)
}

// Format identifies a supported document type
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
	FormatTXT   Format = "txt"
	FormatHTML  Format = "html"
	FormatMHTML Format = "mhtml"
	FormatNone  Format = ""
)

// DetectFormat maps a path to its format by case-sensitive suffix
func DetectFormat(path string) Format {
	switch {
	case strings.HasSuffix(path, ".html"), strings.HasSuffix(path, ".htm"):
		return FormatHTML
	case strings.HasSuffix(path, ".mhtml"), strings.HasSuffix(path, ".mht"):
		return FormatMHTML
	case strings.HasSuffix(path, ".pdf"):
		return FormatPDF
	case strings.HasSuffix(path, ".docx"):
		return FormatDOCX
	case strings.HasSuffix(path, ".txt"):
		return FormatTXT
	default:
		return FormatNone
	}
}

// Reader extracts text from PDF, DOCX, TXT, HTML and MHTML files
type Reader struct {
	cleaner            ArticleCleaner
	logger             logrus.FieldLogger
	minParagraphLength int
}

// New creates a reader. A nil cleaner makes HTML reading join the raw
// paragraphs; a nil logger discards warnings.
func New(cleaner ArticleCleaner, logger logrus.FieldLogger, minParagraphLength int) *Reader {
	if logger == nil {
		logger = logging.Discard()
	}
	if minParagraphLength <= 0 {
		minParagraphLength = DefaultMinParagraphLength
	}

	return &Reader{
		cleaner:            cleaner,
		logger:             logger,
		minParagraphLength: minParagraphLength,
	}
}

// Read returns the text of path. Unsupported or unreadable files yield an
// empty string and a logged warning; Read never fails.
func (r *Reader) Read(ctx context.Context, path string) string {
	text, err := r.ReadFile(ctx, path)
	if err != nil {
		r.logger.WithField("file", path).WithError(err).Warn("Could not read document")
		return ""
	}
	return text
}

// ReadFile returns the text of path or the reason it could not be read.
// Unsupported extensions yield an empty string and no error.
func (r *Reader) ReadFile(ctx context.Context, path string) (string, error) {
	var (
		text string
		err  error
	)

	switch DetectFormat(path) {
	case FormatHTML:
		text, err = r.readHTML(ctx, path)
	case FormatMHTML:
		text, err = readMHTML(path)
	case FormatPDF:
		text, err = readPDF(path)
	case FormatDOCX:
		text, err = readDOCX(path)
	case FormatTXT:
		text, err = readTXT(path)
	default:
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return text, nil
}
