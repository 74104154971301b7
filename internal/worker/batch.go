package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// Downloader saves one page and returns where it was written
type Downloader interface {
	Download(ctx context.Context, url string) (string, error)
}

// DownloadJob downloads a single URL
type DownloadJob struct {
	URL        string
	Downloader Downloader
}

// Execute executes the download job
func (j *DownloadJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &DownloadResult{URL: j.URL, Error: err}
	}
	path, err := j.Downloader.Download(ctx, j.URL)
	return &DownloadResult{
		URL:   j.URL,
		Path:  path,
		Error: err,
	}
}

// DownloadResult represents the result of a download job
type DownloadResult struct {
	URL   string
	Path  string
	Error error
}

// GetError returns the error from the download result
func (r *DownloadResult) GetError() error {
	return r.Error
}

// BatchDownloader downloads many URLs concurrently
type BatchDownloader struct {
	downloader  Downloader
	concurrency int
}

// NewBatchDownloader creates a new batch downloader
func NewBatchDownloader(downloader Downloader, concurrency int) *BatchDownloader {
	return &BatchDownloader{
		downloader:  downloader,
		concurrency: concurrency,
	}
}

// DownloadURLs downloads urls and returns one result per URL, in order
func (b *BatchDownloader) DownloadURLs(ctx context.Context, urls []string) []*DownloadResult {
	jobs := make([]Job, len(urls))
	for i, u := range urls {
		jobs[i] = &DownloadJob{URL: u, Downloader: b.downloader}
	}

	results := NewPool(b.concurrency).Run(ctx, jobs)

	downloads := make([]*DownloadResult, len(results))
	for i, r := range results {
		downloads[i] = r.(*DownloadResult)
	}
	return downloads
}

// DownloadFile reads URLs from a file and downloads them concurrently
func (b *BatchDownloader) DownloadFile(ctx context.Context, filePath string) ([]*DownloadResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.DownloadURLs(ctx, urls), nil
}

// ReadURLsFromFile reads URLs from a file, one per line. Blank lines and
// lines starting with # are skipped; repeated URLs are kept once.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") || seen[line] {
			continue
		}
		seen[line] = true
		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
