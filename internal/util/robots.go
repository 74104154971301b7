package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsPolicy is the robots.txt verdict for one URL
type RobotsPolicy struct {
	Allowed    bool
	CrawlDelay time.Duration
}

// RobotsChecker checks robots.txt rules before a page is downloaded.
// Rules are fetched once per scheme and host.
type RobotsChecker struct {
	mu     sync.Mutex
	rules  map[string]*robotstxt.RobotsData
	client *http.Client
	agent  string
	ua     string
}

// NewRobotsChecker creates a checker that identifies itself with userAgent
func NewRobotsChecker(userAgent string, client *http.Client) *RobotsChecker {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RobotsChecker{
		rules:  make(map[string]*robotstxt.RobotsData),
		client: client,
		agent:  NormalizeUserAgent(userAgent),
		ua:     userAgent,
	}
}

// Check returns the policy for rawURL. A robots.txt that cannot be
// retrieved allows everything.
func (r *RobotsChecker) Check(ctx context.Context, rawURL string) (RobotsPolicy, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return RobotsPolicy{}, fmt.Errorf("parse URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return RobotsPolicy{}, fmt.Errorf("parse URL: %q is not absolute", rawURL)
	}

	data := r.rulesFor(ctx, parsed.Scheme+"://"+parsed.Host)
	if data == nil {
		return RobotsPolicy{Allowed: true}, nil
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}

	return RobotsPolicy{
		Allowed:    data.TestAgent(path, r.agent),
		CrawlDelay: data.FindGroup(r.agent).CrawlDelay,
	}, nil
}

func (r *RobotsChecker) rulesFor(ctx context.Context, origin string) *robotstxt.RobotsData {
	r.mu.Lock()
	data, ok := r.rules[origin]
	r.mu.Unlock()
	if ok {
		return data
	}

	data, err := r.fetch(ctx, origin+"/robots.txt")
	if err != nil {
		// Not cached: a later URL on the same host retries.
		return nil
	}

	r.mu.Lock()
	r.rules[origin] = data
	r.mu.Unlock()

	return data
}

func (r *RobotsChecker) fetch(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.ua)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}
	return data, nil
}

// NormalizeUserAgent returns the product token of a user agent string,
// e.g. "Chronicle" for "Chronicle/0.1 (+https://...)".
func NormalizeUserAgent(ua string) string {
	parts := strings.Fields(ua)
	if len(parts) == 0 {
		return ua
	}
	return strings.Split(parts[0], "/")[0]
}
