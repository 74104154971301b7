package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hawk-wild/GEN-AI-video-generation/internal/pipeline"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/util"
	"github.com/hawk-wild/GEN-AI-video-generation/internal/worker"
)

var (
	concurrency  int
	fetchOutDir  string
	fetchTimeout time.Duration
	pageTimeout  time.Duration
	userAgent    string
	maxBytes     int64
	insecureTLS  bool
	noRobots     bool
	httpProxy    string
	httpsProxy   string
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <file>",
	Short: "Download pages listed in a file into the extraction layout",
	Long: `Fetch downloads every URL listed in <file> (one per line, # for comments)
and saves each page as <dir>/<slug>/index.html, ready for 'chronicle extract'.

- Pages are downloaded in parallel with a per-host rate limit
- robots.txt is honored, including Crawl-delay
- Rate limits, server errors and connection failures are retried

Example:
  chronicle fetch urls.txt
  chronicle fetch urls.txt --out-dir newsarticle/html --concurrency 8`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent downloads (default from config)")
	fetchCmd.Flags().StringVar(&fetchOutDir, "out-dir", "", "directory receiving one subdirectory per page (default: input dir)")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 15*time.Minute, "total timeout for all downloads")
	fetchCmd.Flags().DurationVar(&pageTimeout, "page-timeout", 0, "timeout for a single request (default from config)")
	fetchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default from config)")
	fetchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "max response bytes to read (default from config)")
	fetchCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	fetchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "do not check robots.txt")
	fetchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	fetchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if fetchOutDir != "" {
		cfg.Input.Dir = fetchOutDir
	}
	if pageTimeout > 0 {
		cfg.HTTP.Timeout = pageTimeout
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if maxBytes > 0 {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if insecureTLS {
		cfg.HTTP.InsecureTLS = true
	}
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}
	if httpProxy != "" {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Chronicle Page Fetch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.Input.Dir)
	fmt.Fprintf(os.Stderr, "  Robots.txt:   %v\n", cfg.HTTP.RespectRobots)
	fmt.Fprintf(os.Stderr, "\n")

	fetcher := pipeline.NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.InsecureTLS, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)

	var robots *util.RobotsChecker
	if cfg.HTTP.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, fetcher.Client())
	}
	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	saver := pipeline.NewPageSaver(fetcher, robots, limiter, cfg.Input.Dir, cfg.Input.IndexFile, newLogger())
	downloader := worker.NewBatchDownloader(saver, cfg.Concurrency.Workers)

	fmt.Fprintf(os.Stderr, "⚙️  Downloading pages...\n")
	results, err := downloader.DownloadFile(ctx, file)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	successCount, skippedCount, failureCount := 0, 0, 0
	for _, result := range results {
		switch {
		case result.Error == nil:
			successCount++
			fmt.Fprintf(os.Stderr, "✓ %s -> %s\n", result.URL, result.Path)
		case errors.Is(result.Error, pipeline.ErrDisallowed):
			skippedCount++
			fmt.Fprintf(os.Stderr, "✗ %s: skipped, disallowed by robots.txt\n", result.URL)
		default:
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, result.Error)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Fetch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d URLs\n", len(results))
	fmt.Fprintf(os.Stderr, "  Saved:     %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Skipped:   %d\n", skippedCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
