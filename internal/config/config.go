// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes protocol limits
// (key-upload caps, rolling-period bounds, OTP date window), storage paths,
// retention, logging, and dummy-request padding parameters. Validators and
// services receive these values explicitly; nothing in the core reads the
// environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DummyConfig defines dummy-request padding parameters. The sleep applied
// to a dummy request is drawn from a normal distribution with these mean
// and standard deviation values.
type DummyConfig struct {
	RequestTimeoutMean  time.Duration // DUMMY_REQUEST_TIMEOUT_MILLIS
	RequestTimeoutSigma time.Duration // DUMMY_REQUEST_TIMEOUT_SIGMA
}

// Config holds all configuration values for the application.
type Config struct {
	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Storage
	DBPath        string // SQLite path
	RetentionDays int    // batches older than this are pruned

	// Protocol limits
	MaxIsoDateBackwardDiff int   // how far back a symptoms/onset date may lie, in days
	MaxKeysPerUpload       int   // TEK count cap per upload
	RollingPeriod          int64 // required TEK rolling period
	MaxRollingPeriod       int64 // upper sanity bound for client-provided rolling periods

	// Dummy traffic
	Dummy DummyConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables, applies defaults,
// and validates the result. A .env file in the working directory is
// loaded first when present; real environment variables win over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		// Logging
		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		// Storage
		DBPath:        getenv("DB_PATH", "exposure.db"),
		RetentionDays: getint("BATCH_RETENTION_DAYS", 14),

		// Protocol limits
		MaxIsoDateBackwardDiff: getint("MAX_ISO_DATE_BACKWARD_DIFF", 180),
		MaxKeysPerUpload:       getint("MAX_KEYS_PER_UPLOAD", 14),
		RollingPeriod:          int64(getint("ROLLING_PERIOD", 144)),
		MaxRollingPeriod:       int64(getint("MAX_ROLLING_PERIOD", 1000)),

		// Dummy traffic
		Dummy: DummyConfig{
			RequestTimeoutMean:  getmillis("DUMMY_REQUEST_TIMEOUT_MILLIS", 150*time.Millisecond),
			RequestTimeoutSigma: getmillis("DUMMY_REQUEST_TIMEOUT_SIGMA", 20*time.Millisecond),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if cfg.RetentionDays < 1 {
		return cfg, errors.New("BATCH_RETENTION_DAYS must be >= 1")
	}
	if cfg.MaxIsoDateBackwardDiff < 1 {
		return cfg, errors.New("MAX_ISO_DATE_BACKWARD_DIFF must be >= 1")
	}
	if cfg.MaxKeysPerUpload < 1 {
		return cfg, errors.New("MAX_KEYS_PER_UPLOAD must be >= 1")
	}
	if cfg.RollingPeriod < 1 {
		return cfg, errors.New("ROLLING_PERIOD must be >= 1")
	}
	if cfg.MaxRollingPeriod < cfg.RollingPeriod {
		return cfg, errors.New("MAX_ROLLING_PERIOD must be >= ROLLING_PERIOD")
	}
	if cfg.Dummy.RequestTimeoutMean < 0 || cfg.Dummy.RequestTimeoutSigma < 0 {
		return cfg, errors.New("dummy request timeouts must be >= 0")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

// getmillis reads an integer number of milliseconds.
func getmillis(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return time.Duration(i) * time.Millisecond
		}
	}
	return def
}
