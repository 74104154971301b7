package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// MockDownloader implements Downloader
type MockDownloader struct {
	ShouldError bool

	mu   sync.Mutex
	seen []string
}

func (m *MockDownloader) Download(ctx context.Context, url string) (string, error) {
	time.Sleep(5 * time.Millisecond)

	m.mu.Lock()
	m.seen = append(m.seen, url)
	m.mu.Unlock()

	if m.ShouldError {
		return "", errors.New("download error")
	}
	return "/pages/" + strings.TrimPrefix(url, "http://") + "/index.html", nil
}

func TestBatchDownloader_DownloadURLs(t *testing.T) {
	downloader := &MockDownloader{}
	batch := NewBatchDownloader(downloader, 2)

	urls := []string{"http://example.com", "http://example.org", "http://example.net"}
	results := batch.DownloadURLs(context.Background(), urls)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, res := range results {
		if res.URL != urls[i] {
			t.Errorf("result %d: expected URL %s, got %s", i, urls[i], res.URL)
		}
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.URL, res.Error)
		}
		if !strings.HasSuffix(res.Path, "/index.html") {
			t.Errorf("unexpected path %q", res.Path)
		}
	}

	if len(downloader.seen) != 3 {
		t.Errorf("expected 3 downloads, got %d", len(downloader.seen))
	}
}

func TestBatchDownloader_DownloadURLs_Error(t *testing.T) {
	batch := NewBatchDownloader(&MockDownloader{ShouldError: true}, 2)

	results := batch.DownloadURLs(context.Background(), []string{"http://example.com"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Path != "" {
		t.Error("expected empty path on error")
	}
}

func TestBatchDownloader_Cancelled(t *testing.T) {
	downloader := &MockDownloader{}
	batch := NewBatchDownloader(downloader, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := batch.DownloadURLs(ctx, []string{"http://example.com", "http://example.org"})

	for _, res := range results {
		if !errors.Is(res.Error, context.Canceled) {
			t.Errorf("expected context.Canceled for %s, got %v", res.URL, res.Error)
		}
	}
	if len(downloader.seen) != 0 {
		t.Errorf("expected no downloads after cancel, got %d", len(downloader.seen))
	}
}

func TestReadURLsFromFile(t *testing.T) {
	content := "\ufeffhttp://example.com\n\n# comment\n  http://example.org  \nhttp://example.com\n"
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write urls file: %v", err)
	}

	urls, err := ReadURLsFromFile(path)
	if err != nil {
		t.Fatalf("ReadURLsFromFile failed: %v", err)
	}

	want := []string{"http://example.com", "http://example.org"}
	if len(urls) != len(want) {
		t.Fatalf("expected %d urls, got %d: %v", len(want), len(urls), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("url %d: expected %s, got %s", i, want[i], urls[i])
		}
	}
}

func TestBatchDownloader_DownloadFile_Missing(t *testing.T) {
	batch := NewBatchDownloader(&MockDownloader{}, 1)

	if _, err := batch.DownloadFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
