package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/util"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/worker"
)

// maxSlugLength bounds the directory name derived from a URL
const maxSlugLength = 80

// ErrDisallowed is returned for pages excluded by robots.txt
var ErrDisallowed = errors.New("disallowed by robots.txt")

// PageSaver downloads pages into the input layout: one subdirectory per
// page holding the page as its index file.
type PageSaver struct {
	fetcher   *Fetcher
	robots    *util.RobotsChecker // nil skips robots.txt checks
	limiter   *worker.Limiter
	dir       string
	indexFile string
	logger    logrus.FieldLogger
}

// NewPageSaver creates a PageSaver writing below dir
func NewPageSaver(fetcher *Fetcher, robots *util.RobotsChecker, limiter *worker.Limiter, dir, indexFile string, logger logrus.FieldLogger) *PageSaver {
	if indexFile == "" {
		indexFile = "index.html"
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PageSaver{
		fetcher:   fetcher,
		robots:    robots,
		limiter:   limiter,
		dir:       dir,
		indexFile: indexFile,
		logger:    logger,
	}
}

// Download fetches rawURL and saves it, returning the written path
func (s *PageSaver) Download(ctx context.Context, rawURL string) (string, error) {
	if s.robots != nil {
		policy, err := s.robots.Check(ctx, rawURL)
		if err != nil {
			return "", err
		}
		if !policy.Allowed {
			return "", fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
		}
		if s.limiter != nil {
			s.limiter.SetCrawlDelay(rawURL, policy.CrawlDelay)
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, rawURL); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	result, err := s.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return "", err
	}

	path, err := SavePage(s.dir, Slug(rawURL), s.indexFile, result.HTML)
	if err != nil {
		return "", err
	}

	s.logger.WithField("url", rawURL).WithField("file", path).Debug("Saved page")
	return path, nil
}

// SavePage writes html to dir/slug/indexFile
func SavePage(dir, slug, indexFile, html string) (string, error) {
	pageDir := filepath.Join(dir, slug)
	if err := os.MkdirAll(pageDir, 0o755); err != nil {
		return "", fmt.Errorf("create page dir: %w", err)
	}

	path := filepath.Join(pageDir, indexFile)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write page: %w", err)
	}
	return path, nil
}

// Slug derives a directory name from a URL's host and path
func Slug(rawURL string) string {
	source := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		source = strings.TrimPrefix(parsed.Host, "www.") + "/" + parsed.Path
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(source) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if runes := []rune(slug); len(runes) > maxSlugLength {
		slug = strings.TrimRight(string(runes[:maxSlugLength]), "-")
	}
	if slug == "" {
		slug = "page"
	}
	return slug
}
