package config

import (
	"os"
	"testing"
	"time"
)

// Test environment variable keys.
const (
	testEnvPostgresDSN = "POSTGRES_DSN"
	testEnvCronSecret  = "CRON_SECRET"
)

// Test values.
const (
	testPostgresDSN = "postgres://localhost/test"
	testCronSecret  = "s3cret"
	testErrLoad     = "Load() error = %v"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()

	t.Setenv(testEnvPostgresDSN, testPostgresDSN)
	t.Setenv(testEnvCronSecret, testCronSecret)
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnvVars(t)

	// Explicitly unset variables that might be in .env to test actual defaults
	os.Unsetenv("APP_ENV")
	os.Unsetenv("PLAN_BATCH_SIZE")
	os.Unsetenv("PLAN_CANDIDATE_LIMIT")
	os.Unsetenv("PLAN_WEEK_START_DAY")
	os.Unsetenv("LLM_PROVIDER")
	os.Unsetenv("LLM_TIMEOUT")
	os.Unsetenv("SCHEDULER_ENABLED")

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.AppEnv != "local" {
		t.Errorf("AppEnv = %q, want local", cfg.AppEnv)
	}

	if cfg.Batch.Size != 12 {
		t.Errorf("Batch.Size = %d, want 12", cfg.Batch.Size)
	}

	if cfg.Batch.CandidateLimit != 1000 {
		t.Errorf("Batch.CandidateLimit = %d, want 1000", cfg.Batch.CandidateLimit)
	}

	if cfg.Batch.WeekStartDay != "monday" {
		t.Errorf("Batch.WeekStartDay = %q, want monday", cfg.Batch.WeekStartDay)
	}

	if cfg.LLM.Provider != "gemini" {
		t.Errorf("LLM.Provider = %q, want gemini", cfg.LLM.Provider)
	}

	if cfg.LLM.Timeout != 30*time.Second {
		t.Errorf("LLM.Timeout = %v, want 30s", cfg.LLM.Timeout)
	}

	if cfg.Scheduler.Enabled {
		t.Error("Scheduler.Enabled should default to false")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	// Clear all required vars
	os.Unsetenv(testEnvPostgresDSN)
	os.Unsetenv(testEnvCronSecret)

	if _, err := Load(); err == nil {
		t.Error("expected error for missing required env vars")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("PLAN_BATCH_SIZE", "3")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("SCHEDULER_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.Batch.Size != 3 {
		t.Errorf("Batch.Size = %d, want 3", cfg.Batch.Size)
	}

	if cfg.LLM.Provider != "openai" {
		t.Errorf("LLM.Provider = %q, want openai", cfg.LLM.Provider)
	}

	if !cfg.Scheduler.Enabled {
		t.Error("Scheduler.Enabled should be true")
	}
}
