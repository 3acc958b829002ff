package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wilbur182/linecount/internal/syntax"
)

// fileConfig is the on-disk shape shared by loading and saving. Pointer
// fields distinguish "absent" from zero so absent keys keep defaults.
type fileConfig struct {
	LineCount fileLineCountConfig `json:"lineCount" yaml:"lineCount"`
	UI        fileUIConfig        `json:"ui,omitempty" yaml:"ui,omitempty"`
	History   fileHistoryConfig   `json:"history,omitempty" yaml:"history,omitempty"`
	Features  fileFeaturesConfig  `json:"features,omitempty" yaml:"features,omitempty"`
}

type fileLineCountConfig struct {
	Enabled            *bool                           `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ExcludeDirectories []string                        `json:"excludeDirectories,omitempty" yaml:"excludeDirectories,omitempty"`
	SizeLimit          *int64                          `json:"sizeLimit,omitempty" yaml:"sizeLimit,omitempty"`
	DebounceDelay      *duration                       `json:"debounceDelay,omitempty" yaml:"debounceDelay,omitempty"`
	WarningThreshold   *int                            `json:"warningThreshold,omitempty" yaml:"warningThreshold,omitempty"`
	ErrorThreshold     *int                            `json:"errorThreshold,omitempty" yaml:"errorThreshold,omitempty"`
	ShowStatusBar      *bool                           `json:"showStatusBar,omitempty" yaml:"showStatusBar,omitempty"`
	DisplayFormat      string                          `json:"displayFormat,omitempty" yaml:"displayFormat,omitempty"`
	IncludeExtensions  []string                        `json:"includeExtensions,omitempty" yaml:"includeExtensions,omitempty"`
	ExcludeExtensions  []string                        `json:"excludeExtensions,omitempty" yaml:"excludeExtensions,omitempty"`
	FollowSymlinks     *bool                           `json:"followSymlinks,omitempty" yaml:"followSymlinks,omitempty"`
	MaxCacheEntries    *int                            `json:"maxCacheEntries,omitempty" yaml:"maxCacheEntries,omitempty"`
	SyntaxOverrides    map[string]syntax.CommentSyntax `json:"syntaxOverrides,omitempty" yaml:"syntaxOverrides,omitempty"`
}

type fileUIConfig struct {
	Theme string `json:"theme,omitempty" yaml:"theme,omitempty"`
}

type fileHistoryConfig struct {
	DBPath string `json:"dbPath,omitempty" yaml:"dbPath,omitempty"`
}

type fileFeaturesConfig struct {
	Flags map[string]bool `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// duration accepts "300ms"-style strings or plain numbers of milliseconds,
// and is written back as a string.
type duration time.Duration

func parseDuration(s string) (duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return duration(time.Duration(ms) * time.Millisecond), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return duration(d), nil
}

func (d duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Not a string: accept a bare number.
		s = string(data)
	}
	v, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	v, err := parseDuration(node.Value)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// apply overlays the fields present in fc onto cfg.
func (fc fileConfig) apply(cfg *Config) {
	lc := &cfg.LineCount
	f := fc.LineCount
	if f.Enabled != nil {
		lc.Enabled = *f.Enabled
	}
	if f.ExcludeDirectories != nil {
		lc.ExcludeDirectories = f.ExcludeDirectories
	}
	if f.SizeLimit != nil {
		lc.SizeLimit = *f.SizeLimit
	}
	if f.DebounceDelay != nil {
		lc.DebounceDelay = time.Duration(*f.DebounceDelay)
	}
	if f.WarningThreshold != nil {
		lc.WarningThreshold = *f.WarningThreshold
	}
	if f.ErrorThreshold != nil {
		lc.ErrorThreshold = *f.ErrorThreshold
	}
	if f.ShowStatusBar != nil {
		lc.ShowStatusBar = *f.ShowStatusBar
	}
	if f.DisplayFormat != "" {
		lc.DisplayFormat = f.DisplayFormat
	}
	if f.IncludeExtensions != nil {
		lc.IncludeExtensions = f.IncludeExtensions
	}
	if f.ExcludeExtensions != nil {
		lc.ExcludeExtensions = f.ExcludeExtensions
	}
	if f.FollowSymlinks != nil {
		lc.FollowSymlinks = *f.FollowSymlinks
	}
	if f.MaxCacheEntries != nil {
		lc.MaxCacheEntries = *f.MaxCacheEntries
	}
	for ext, s := range f.SyntaxOverrides {
		lc.SyntaxOverrides[ext] = s
	}

	if fc.UI.Theme != "" {
		cfg.UI.Theme = fc.UI.Theme
	}
	if fc.History.DBPath != "" {
		cfg.History.DBPath = fc.History.DBPath
	}
	for name, on := range fc.Features.Flags {
		cfg.Features.Flags[name] = on
	}
}

// toFileConfig converts Config to the serializable format.
func toFileConfig(cfg *Config) fileConfig {
	lc := cfg.LineCount
	delay := duration(lc.DebounceDelay)
	return fileConfig{
		LineCount: fileLineCountConfig{
			Enabled:            &lc.Enabled,
			ExcludeDirectories: lc.ExcludeDirectories,
			SizeLimit:          &lc.SizeLimit,
			DebounceDelay:      &delay,
			WarningThreshold:   &lc.WarningThreshold,
			ErrorThreshold:     &lc.ErrorThreshold,
			ShowStatusBar:      &lc.ShowStatusBar,
			DisplayFormat:      lc.DisplayFormat,
			IncludeExtensions:  lc.IncludeExtensions,
			ExcludeExtensions:  lc.ExcludeExtensions,
			FollowSymlinks:     &lc.FollowSymlinks,
			MaxCacheEntries:    &lc.MaxCacheEntries,
			SyntaxOverrides:    lc.SyntaxOverrides,
		},
		UI:       fileUIConfig{Theme: cfg.UI.Theme},
		History:  fileHistoryConfig{DBPath: cfg.History.DBPath},
		Features: fileFeaturesConfig{Flags: cfg.Features.Flags},
	}
}
