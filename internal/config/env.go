package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment overrides, applied after the config file.
const (
	EnvEnabled       = "LINECOUNT_ENABLED"
	EnvSizeLimit     = "LINECOUNT_SIZE_LIMIT"
	EnvDebounceDelay = "LINECOUNT_DEBOUNCE_DELAY"
	EnvHistoryDB     = "LINECOUNT_HISTORY_DB"
)

// LoadDotEnv loads .env files (default ".env") into the process environment
// without overriding variables that are already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overlays LINECOUNT_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if v, ok := lookup(EnvEnabled); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvEnabled, err)
		}
		cfg.LineCount.Enabled = b
	}
	if v, ok := lookup(EnvSizeLimit); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSizeLimit, err)
		}
		cfg.LineCount.SizeLimit = n
	}
	if v, ok := lookup(EnvDebounceDelay); ok {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebounceDelay, err)
		}
		cfg.LineCount.DebounceDelay = time.Duration(d)
	}
	if v, ok := lookup(EnvHistoryDB); ok {
		cfg.History.DBPath = v
	}
	return cfg.Validate()
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
