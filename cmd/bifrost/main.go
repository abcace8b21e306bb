// Bifrost is a read-only GraphQL gateway over a Semantic MediaWiki
// knowledge base of psychoactive substances.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/psychonautwiki/bifrost/pkg/config"
	"github.com/psychonautwiki/bifrost/pkg/erowid"
	"github.com/psychonautwiki/bifrost/pkg/graphapi"
	"github.com/psychonautwiki/bifrost/pkg/media"
	"github.com/psychonautwiki/bifrost/pkg/upstream"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	logLevel := flag.String("log-level", "", "override LOG_LEVEL")
	port := flag.Int("port", 0, "override PORT")
	jsonLogs := flag.Bool("json-logs", false, "emit structured JSON logs instead of text")
	debugRequests := flag.Bool("debug-requests", false, "log every inbound HTTP request")
	envPath := flag.String("env-file", getEnv("BIFROST_ENV_FILE", ".env"), "path to an optional .env file")
	flag.Parse()

	if err := godotenv.Load(*envPath); err != nil {
		fmt.Fprintf(os.Stderr, "no .env file loaded from %s: %v\n", *envPath, err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap failure: %v\n", err)
		os.Exit(1)
	}

	cfg, err = cfg.ApplyOverrides(config.Overrides{
		LogLevel:      *logLevel,
		Port:          *port,
		JSONLogs:      *jsonLogs,
		DebugRequests: *debugRequests,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap failure: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	connector := upstream.New(cfg.Upstream)
	mediaCfg := media.Config{CDNBaseURL: cfg.Upstream.CDNBaseURL, ThumbSize: cfg.Upstream.ThumbSize}

	var erowidClient *erowid.Client
	if cfg.Erowid.Enabled {
		erowidClient = erowid.New(cfg.Erowid)
		log.Info("plebiscite feature enabled", "database", cfg.Erowid.Database, "collection", cfg.Erowid.Collection)
	}

	resolver := graphapi.New(connector, mediaCfg, erowidClient)

	server, err := graphapi.NewServer(resolver, cfg.Erowid.Enabled, cfg.DebugRequests)
	if err != nil {
		log.Error("failed to build graphql server", "error", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("bifrost listening", "addr", cfg.Addr())
		errCh <- server.Start(cfg.Addr())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server exited with error", "error", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if erowidClient != nil {
			if err := erowidClient.Close(ctx); err != nil {
				log.Warn("error closing plebiscite connection", "error", err)
			}
		}

		if err := server.Shutdown(ctx); err != nil {
			log.Error("error during graceful shutdown", "error", err)
			os.Exit(1)
		}
	}

	log.Info("bifrost shut down cleanly")
}

// newLogger builds the process-wide slog.Logger, text or JSON per
// --json-logs, filtered at cfg.SlogLevel().
func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.JSONLogs {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
