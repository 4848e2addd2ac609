package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all runtime settings for planify.
type Config struct {
	Endpoint   string
	TimeoutMs  int
	DBPath     string
	SessionID  string
	SessionTTL time.Duration
	ExportDir  string
	LogCalls   bool
	LogFile    string
}

// DefaultConfig returns a Config with sensible defaults. DBPath and
// SessionID are left empty and resolved by Load.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://localhost:5000",
		TimeoutMs:  60000,
		SessionTTL: 12 * time.Hour,
		ExportDir:  ".",
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or malformed values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("PLANIFY_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PLANIFY_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PLANIFY_SESSION_TTL_H"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionTTL = time.Duration(n) * time.Hour
		}
	}
	if v := os.Getenv("PLANIFY_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("PLANIFY_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	cfg.LogFile = os.Getenv("PLANIFY_LOG_FILE")

	cfg.SessionID = os.Getenv("PLANIFY_SESSION_ID")
	if cfg.SessionID == "" {
		cfg.SessionID = DefaultSessionID()
	}

	cfg.DBPath = os.Getenv("PLANIFY_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".planify", "planify.db")
	}

	return cfg, nil
}

// DefaultSessionID keys form snapshots to the shell that launched planify,
// so restarting planify in the same terminal restores the form while a new
// terminal starts clean.
func DefaultSessionID() string {
	return "tty-" + strconv.Itoa(os.Getppid())
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
