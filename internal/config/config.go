// Package config reads process configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver string
	DBDSN    string

	// Quality gate
	MinScore          float64
	AccuracyThreshold float64

	// Study sessions
	SessionLimit int

	// Logging
	LogLevel string // debug|info|warn|error
	LogFile  string // rotated JSON log; empty disables the file sink
}

// Load reads an optional .env file, then the environment. Missing keys fall
// back to defaults usable out of the box.
func Load() Config {
	_ = godotenv.Load() // absent .env is fine

	return Config{
		DBDriver:          envOr("CORTEX_DB_DRIVER", "sqlite"),
		DBDSN:             envOr("CORTEX_DB_DSN", ""),
		MinScore:          envFloat("CORTEX_MIN_SCORE", 60),
		AccuracyThreshold: envFloat("CORTEX_ACCURACY_THRESHOLD", 0.70),
		SessionLimit:      envInt("CORTEX_SESSION_LIMIT", 20),
		LogLevel:          envOr("CORTEX_LOG_LEVEL", "info"),
		LogFile:           envOr("CORTEX_LOG_FILE", ""),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloat(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
