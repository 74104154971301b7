package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func noSleep(t *testing.T) {
	t.Helper()
	orig := fetchSleepFunc
	fetchSleepFunc = func(time.Duration) {}
	t.Cleanup(func() { fetchSleepFunc = orig })
}

func newTestFetcher(maxBytes int64) *Fetcher {
	return NewFetcher(5*time.Second, "chronicle-test", maxBytes, false, "", "", "")
}

func TestFetch_SendsUserAgentAndReportsFinalURL(t *testing.T) {
	var gotAgent string
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/news/jubilee", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/news/jubilee", func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, "<p>Golden Jubilee</p>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	result, err := newTestFetcher(1<<20).Fetch(context.Background(), server.URL+"/old")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotAgent != "chronicle-test" {
		t.Errorf("Expected User-Agent chronicle-test, got %q", gotAgent)
	}
	if result.FinalURL != server.URL+"/news/jubilee" {
		t.Errorf("Expected final URL after redirect, got %s", result.FinalURL)
	}
	if result.ContentType != "text/html; charset=utf-8" {
		t.Errorf("Unexpected content type: %s", result.ContentType)
	}
	if result.HTML != "<p>Golden Jubilee</p>" {
		t.Errorf("Unexpected HTML: %s", result.HTML)
	}
}

func TestFetch_TruncatesAtMaxBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, strings.Repeat("a", 100))
	}))
	defer server.Close()

	result, err := newTestFetcher(10).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.HTML) != 10 {
		t.Errorf("Expected body cut to 10 bytes, got %d", len(result.HTML))
	}
}

func TestFetch_StopsRedirectLoop(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
	}))
	defer server.Close()

	_, err := newTestFetcher(1<<20).Fetch(context.Background(), server.URL+"/loop")
	if err == nil || !strings.Contains(err.Error(), "stopped after 5 redirects") {
		t.Fatalf("Expected redirect limit error, got %v", err)
	}
	if hits.Load() != 5 {
		t.Errorf("Expected 5 requests before giving up, got %d", hits.Load())
	}
}

func TestFetchWithRetry_Statuses(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		wantErr      bool
		wantAttempts int32
	}{
		{"success", []int{200}, false, 1},
		{"server error then success", []int{503, 502, 200}, false, 3},
		{"rate limited then success", []int{429, 200}, false, 2},
		{"not found fails at once", []int{404}, true, 1},
		{"forbidden fails at once", []int{403}, true, 1},
		{"attempts exhausted", []int{500, 500, 500, 200}, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noSleep(t)

			var attempts atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := int(attempts.Add(1)) - 1
				status := tt.statuses[len(tt.statuses)-1]
				if n < len(tt.statuses) {
					status = tt.statuses[n]
				}
				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = fmt.Fprint(w, "<html>OK</html>")
				}
			}))
			defer server.Close()

			result, err := newTestFetcher(1<<20).FetchWithRetry(context.Background(), server.URL)
			if tt.wantErr && err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				if result.HTML != "<html>OK</html>" {
					t.Errorf("Unexpected HTML: %s", result.HTML)
				}
			}
			if attempts.Load() != tt.wantAttempts {
				t.Errorf("Expected %d attempts, got %d", tt.wantAttempts, attempts.Load())
			}
		})
	}
}

func TestFetchWithRetry_BackoffGrows(t *testing.T) {
	var delays []time.Duration
	orig := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) { delays = append(delays, d) }
	defer func() { fetchSleepFunc = orig }()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestFetcher(1<<20).FetchWithRetry(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error after all attempts")
	}
	if len(delays) != 2 || delays[0] != time.Second || delays[1] != 2*time.Second {
		t.Errorf("Expected delays [1s 2s], got %v", delays)
	}
}

func TestFetchWithRetry_CancelledContext(t *testing.T) {
	noSleep(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestFetcher(1<<20).FetchWithRetry(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if attempts.Load() != 0 {
		t.Errorf("Expected no requests, got %d", attempts.Load())
	}
}

func TestIsRetryableFetchError(t *testing.T) {
	tests := []struct {
		err       string
		retryable bool
	}{
		{"unexpected status: 503 503 Service Unavailable", true},
		{"unexpected status: 500 500 Internal Server Error", true},
		{"unexpected status: 429 429 Too Many Requests", true},
		{"unexpected status: 404 404 Not Found", false},
		{"unexpected status: 410 410 Gone", false},
		{"fetch: connection refused", true},
		{"create request: invalid URL", false},
		{"read body: unexpected EOF", false},
	}

	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			if got := isRetryableFetchError(errors.New(tt.err)); got != tt.retryable {
				t.Errorf("isRetryableFetchError(%q) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}

	if isRetryableFetchError(nil) {
		t.Error("Expected nil error to not be retryable")
	}
}
