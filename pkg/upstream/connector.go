// Package upstream implements the MediaWiki API connector: it turns an
// ordered parameter bag into a stable URL, fetches it through the
// stale-while-revalidate cache, and retries transport failures with a
// linear backoff.
package upstream

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/psychonautwiki/bifrost/pkg/cache"
)

// Connector fetches MediaWiki api.php responses, caching the raw JSON body
// by fully-formed URL.
type Connector struct {
	cfg        Config
	httpClient *http.Client
	cache      *cache.Cache[[]byte]
	log        *slog.Logger
}

// New creates a Connector with its own SWR cache.
func New(cfg Config) *Connector {
	return &Connector{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache: cache.New[[]byte](cfg.CacheTTL),
		log:   slog.With("component", "upstream"),
	}
}

// Fetch builds the upstream URL from params, resolves it through the SWR
// cache, and returns the raw response body. The producer invoked on a
// cache miss/refresh performs the retried HTTP GET.
func (c *Connector) Fetch(ctx context.Context, params Params) ([]byte, error) {
	url := encode(c.cfg.BaseURL, params)

	return c.cache.Get(ctx, url, func(ctx context.Context) ([]byte, error) {
		return c.fetchWithRetry(ctx, url)
	})
}

// fetchWithRetry performs the HTTP GET with up to cfg.MaxRetries retries on
// transport error or non-2xx status, backing off linearly: wait
// 1000*attempt ms before the next try.
func (c *Connector) fetchWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := c.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		c.log.Warn("upstream fetch attempt failed", "url", url, "attempt", attempt+1, "error", err)
	}
	return nil, fmt.Errorf("upstream fetch failed after %d attempts: %w", c.cfg.MaxRetries+1, lastErr)
}

// fetchOnce performs a single HTTP GET, decoding a gzip body when present.
func (c *Connector) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	reader := io.Reader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decoding gzip response: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("received non-OK status %d from %s: %s", resp.StatusCode, url, trimBody(body))
	}

	return body, nil
}

func trimBody(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(bytes.TrimSpace(body))
}

// OverrideHTTPClientForTest replaces the internal HTTP client. Test-only.
func (c *Connector) OverrideHTTPClientForTest(client *http.Client) {
	c.httpClient = client
}
