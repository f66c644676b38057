package config_test

import (
	"testing"

	"github.com/Travinkel/CortexCLI-sub002/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Load()
	if cfg.DBDriver != "sqlite" {
		t.Errorf("driver = %q", cfg.DBDriver)
	}
	if cfg.MinScore != 60 || cfg.AccuracyThreshold != 0.70 {
		t.Errorf("thresholds: %+v", cfg)
	}
	if cfg.SessionLimit != 20 || cfg.LogLevel != "info" {
		t.Errorf("session/log defaults: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CORTEX_DB_DRIVER", "postgres")
	t.Setenv("CORTEX_MIN_SCORE", "75.5")
	t.Setenv("CORTEX_SESSION_LIMIT", "5")
	t.Setenv("CORTEX_LOG_LEVEL", "debug")

	cfg := config.Load()
	if cfg.DBDriver != "postgres" || cfg.MinScore != 75.5 || cfg.SessionLimit != 5 || cfg.LogLevel != "debug" {
		t.Errorf("overrides ignored: %+v", cfg)
	}
}

func TestMalformedNumbersFallBack(t *testing.T) {
	t.Setenv("CORTEX_MIN_SCORE", "not a number")
	t.Setenv("CORTEX_SESSION_LIMIT", "many")
	cfg := config.Load()
	if cfg.MinScore != 60 || cfg.SessionLimit != 20 {
		t.Errorf("fallback: %+v", cfg)
	}
}
