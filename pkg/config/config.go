// Package config loads Bifrost's process-level bootstrap configuration:
// environment variables first, then CLI flag overrides merged on top with
// the flags winning over whatever the environment set.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"dario.cat/mergo"

	"github.com/psychonautwiki/bifrost/pkg/erowid"
	"github.com/psychonautwiki/bifrost/pkg/upstream"
)

// Config is Bifrost's complete bootstrap configuration.
type Config struct {
	Host string
	Port int

	LogLevel      string
	JSONLogs      bool
	DebugRequests bool

	Upstream upstream.Config
	Erowid   erowid.Config
}

// Overrides holds CLI flag values that, when non-zero, take precedence
// over the environment-derived Config.
type Overrides struct {
	LogLevel      string
	Port          int
	JSONLogs      bool
	DebugRequests bool
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SlogLevel parses LogLevel into a slog.Level, defaulting to Info on an
// unrecognized value.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadFromEnv reads PORT, HOST, LOG_LEVEL and delegates to
// upstream.LoadConfigFromEnv / erowid.LoadConfigFromEnv for their
// respective sections.
func LoadFromEnv() (Config, error) {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "3000"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PORT: %w", err)
	}

	upstreamCfg, err := upstream.LoadConfigFromEnv()
	if err != nil {
		return Config{}, fmt.Errorf("loading upstream config: %w", err)
	}

	erowidCfg, err := erowid.LoadConfigFromEnv()
	if err != nil {
		return Config{}, fmt.Errorf("loading erowid config: %w", err)
	}

	cfg := Config{
		Host:     getEnvOrDefault("HOST", "0.0.0.0"),
		Port:     port,
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		Upstream: upstreamCfg,
		Erowid:   erowidCfg,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyOverrides merges non-zero CLI flag values onto cfg, flag values
// always winning over whatever was already set (mergo.WithOverride).
func (c Config) ApplyOverrides(o Overrides) (Config, error) {
	merged := c
	src := Config{
		LogLevel:      o.LogLevel,
		Port:          o.Port,
		JSONLogs:      o.JSONLogs,
		DebugRequests: o.DebugRequests,
	}
	if err := mergo.Merge(&merged, src, mergo.WithOverride); err != nil {
		return Config{}, fmt.Errorf("merging CLI overrides: %w", err)
	}
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// Validate checks that the merged configuration is usable. A failure here
// is a fatal startup condition: the caller should log it and exit non-zero
// rather than attempt to serve with an invalid configuration.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if err := c.Upstream.Validate(); err != nil {
		return fmt.Errorf("upstream config: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
