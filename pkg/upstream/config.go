package upstream

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config configures the Connector: the MediaWiki origin, HTTP behavior, and
// the SWR cache TTL that sits in front of it.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	CacheTTL  time.Duration

	MaxRetries int

	// CDNBaseURL and ThumbSize parameterize the derivation of thumbnail
	// image URLs; they share the same MediaWiki origin as BaseURL.
	CDNBaseURL string
	ThumbSize  int
}

// LoadConfigFromEnv loads connector configuration from environment
// variables, following the same getEnvOrDefault/Validate shape used
// throughout this codebase's bootstrap.
func LoadConfigFromEnv() (Config, error) {
	ttlMS, err := strconv.Atoi(getEnvOrDefault("CACHE_TTL_MS", "86400000"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid CACHE_TTL_MS: %w", err)
	}

	thumbSize, err := strconv.Atoi(getEnvOrDefault("BIFROST_THUMB_SIZE", "100"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid BIFROST_THUMB_SIZE: %w", err)
	}

	cfg := Config{
		BaseURL:    getEnvOrDefault("BIFROST_UPSTREAM_BASE_URL", "https://psychonautwiki.org/w/api.php"),
		UserAgent:  getEnvOrDefault("BIFROST_USER_AGENT", "Bifrost/1.0 (+https://github.com/psychonautwiki/bifrost)"),
		Timeout:    30 * time.Second,
		CacheTTL:   time.Duration(ttlMS) * time.Millisecond,
		MaxRetries: 3,
		CDNBaseURL: getEnvOrDefault("BIFROST_CDN_BASE_URL", "https://psychonautwiki.org/"),
		ThumbSize:  thumbSize,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("upstream base URL is required")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL_MS must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
