package config

import (
	"fmt"
	"time"

	"github.com/wilbur182/linecount/internal/syntax"
)

// Display formats for badges.
const (
	DisplayAbbreviated = "abbreviated"
	DisplayExact       = "exact"
)

const (
	defaultSizeLimit        = 5_000_000
	defaultDebounceDelay    = 300 * time.Millisecond
	defaultWarningThreshold = 500
	defaultErrorThreshold   = 1000
)

// Config is the root configuration structure.
type Config struct {
	LineCount LineCountConfig
	UI        UIConfig
	History   HistoryConfig
	Features  FeaturesConfig
}

// LineCountConfig controls counting and badge display.
type LineCountConfig struct {
	// Enabled is the master switch; when false nothing is counted.
	Enabled bool
	// ExcludeDirectories are directory names skipped while walking and watching.
	ExcludeDirectories []string
	// SizeLimit is the byte size above which counts are estimated.
	SizeLimit int64
	// DebounceDelay coalesces change notifications before recounting.
	DebounceDelay time.Duration
	// WarningThreshold and ErrorThreshold color badges by total lines.
	WarningThreshold int
	ErrorThreshold   int
	// ShowStatusBar shows the selected file's breakdown in the browser.
	ShowStatusBar bool
	// DisplayFormat is "abbreviated" (1.2K) or "exact" (1234).
	DisplayFormat string
	// IncludeExtensions are counted even if they look binary.
	IncludeExtensions []string
	// ExcludeExtensions are never counted.
	ExcludeExtensions []string
	// FollowSymlinks counts symlinked files instead of skipping them.
	FollowSymlinks bool
	// MaxCacheEntries bounds the count cache. 0 keeps everything.
	MaxCacheEntries int
	// SyntaxOverrides adds or replaces comment syntax per extension.
	SyntaxOverrides map[string]syntax.CommentSyntax
}

// UIConfig configures UI appearance.
type UIConfig struct {
	Theme string
}

// HistoryConfig configures the report snapshot database.
type HistoryConfig struct {
	// DBPath is the SQLite file; relative paths resolve against the project root.
	DBPath string
}

// FeaturesConfig holds feature flag settings.
type FeaturesConfig struct {
	Flags map[string]bool
}

// DefaultExcludeDirectories are skipped unless the config says otherwise.
var DefaultExcludeDirectories = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	"out",
	"bin",
	"obj",
	".vscode",
	".idea",
	"vendor",
	"coverage",
	".next",
	".nuxt",
	"target",
	".cache",
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LineCount: LineCountConfig{
			Enabled:            true,
			ExcludeDirectories: append([]string(nil), DefaultExcludeDirectories...),
			SizeLimit:          defaultSizeLimit,
			DebounceDelay:      defaultDebounceDelay,
			WarningThreshold:   defaultWarningThreshold,
			ErrorThreshold:     defaultErrorThreshold,
			ShowStatusBar:      true,
			DisplayFormat:      DisplayAbbreviated,
			SyntaxOverrides:    make(map[string]syntax.CommentSyntax),
		},
		UI: UIConfig{
			Theme: "default",
		},
		History: HistoryConfig{
			DBPath: ".linecount/history.db",
		},
		Features: FeaturesConfig{
			Flags: make(map[string]bool),
		},
	}
}

// Validate checks the configuration for errors. Out-of-range values are
// reset to defaults; malformed syntax overrides are reported.
func (c *Config) Validate() error {
	lc := &c.LineCount
	if lc.SizeLimit <= 0 {
		lc.SizeLimit = defaultSizeLimit
	}
	if lc.DebounceDelay < 0 {
		lc.DebounceDelay = defaultDebounceDelay
	}
	if lc.WarningThreshold <= 0 {
		lc.WarningThreshold = defaultWarningThreshold
	}
	if lc.ErrorThreshold <= 0 {
		lc.ErrorThreshold = defaultErrorThreshold
	}
	if lc.ErrorThreshold < lc.WarningThreshold {
		lc.ErrorThreshold = lc.WarningThreshold
	}
	if lc.DisplayFormat != DisplayAbbreviated && lc.DisplayFormat != DisplayExact {
		lc.DisplayFormat = DisplayAbbreviated
	}
	if lc.MaxCacheEntries < 0 {
		lc.MaxCacheEntries = 0
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "default"
	}

	for ext, s := range lc.SyntaxOverrides {
		if syntax.NormalizeExt(ext) == "" {
			return fmt.Errorf("syntax override: empty extension")
		}
		if s.Empty() {
			return fmt.Errorf("syntax override %q: no comment markers", ext)
		}
		for _, m := range s.LineComment {
			if m == "" {
				return fmt.Errorf("syntax override %q: empty line comment marker", ext)
			}
		}
		for _, p := range s.BlockComment {
			if p.Open == "" || p.Close == "" {
				return fmt.Errorf("syntax override %q: block comment needs open and close markers", ext)
			}
		}
	}
	return nil
}

// SyntaxOptions converts the extension settings into registry options.
func (lc LineCountConfig) SyntaxOptions() syntax.Options {
	return syntax.Options{
		Overrides:         lc.SyntaxOverrides,
		IncludeExtensions: lc.IncludeExtensions,
		ExcludeExtensions: lc.ExcludeExtensions,
	}
}
