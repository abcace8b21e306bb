// Package erowid is the optional, read-only collaborator for Bifrost's
// Plebiscite feature: a MongoDB-backed store of Erowid experience-report
// documents, exposed through a single paginated query. Bifrost never
// writes to this collection.
package erowid

import (
	"fmt"
	"os"
)

// Config configures the optional Plebiscite datasource.
type Config struct {
	Enabled    bool
	URL        string
	Database   string
	Collection string
}

// LoadConfigFromEnv loads the erowid feature configuration. When
// PLEBISCITE is unset, Enabled is false and the rest of the struct is
// zero-valued; callers must not connect in that case. When PLEBISCITE is
// set but MONGO_URL is missing, this is a bootstrap failure.
func LoadConfigFromEnv() (Config, error) {
	if os.Getenv("PLEBISCITE") == "" {
		return Config{}, nil
	}

	url := os.Getenv("MONGO_URL")
	if url == "" {
		return Config{}, fmt.Errorf("PLEBISCITE is enabled but MONGO_URL is not set")
	}

	return Config{
		Enabled:    true,
		URL:        url,
		Database:   getEnvOrDefault("MONGO_DB", "bifrost"),
		Collection: getEnvOrDefault("MONGO_COLLECTION", "plebiscite"),
	}, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
