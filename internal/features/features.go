package features

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wilbur182/linecount/internal/config"
)

// ErrUnknownFeature is returned when setting a flag that is not registered.
var ErrUnknownFeature = errors.New("unknown feature")

// Feature represents a known feature flag with its default value.
type Feature struct {
	Name        string
	Default     bool
	Description string
}

// Known feature flags - add new features here.
var (
	// ReportPreview renders the Markdown report inside the browser.
	ReportPreview = Feature{
		Name:        "report_preview",
		Default:     true,
		Description: "Render the Markdown report in the file browser",
	}

	// HistorySnapshots records report totals in the history database.
	HistorySnapshots = Feature{
		Name:        "history_snapshots",
		Default:     false,
		Description: "Record report totals in SQLite and show deltas",
	}
)

// allFeatures is the registry of all known features.
var allFeatures = []Feature{
	ReportPreview,
	HistorySnapshots,
}

// defaultValues provides O(1) lookup for feature defaults.
var defaultValues = buildDefaultMap()

func buildDefaultMap() map[string]bool {
	m := make(map[string]bool, len(allFeatures))
	for _, f := range allFeatures {
		m[f.Name] = f.Default
	}
	return m
}

// IsKnownFeature returns true if the feature name is registered.
func IsKnownFeature(name string) bool {
	_, ok := defaultValues[name]
	return ok
}

// Manager handles feature flag state.
type Manager struct {
	mu        sync.RWMutex
	cfg       *config.Config
	overrides map[string]bool // CLI overrides take precedence
}

// New creates a manager reading flags from cfg. cfg may be nil.
func New(cfg *config.Config) *Manager {
	return &Manager{
		cfg:       cfg,
		overrides: make(map[string]bool),
	}
}

// SetOverride sets a CLI override for a feature flag.
// Overrides take precedence over config values.
func (m *Manager) SetOverride(name string, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[name] = enabled
}

// IsEnabled checks if a feature is enabled.
// Priority: CLI override > config > default.
func (m *Manager) IsEnabled(f Feature) bool {
	return m.IsEnabledName(f.Name)
}

// IsEnabledName is IsEnabled by flag name.
func (m *Manager) IsEnabledName(name string) bool {
	if m == nil {
		return getDefault(name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isEnabledLocked(name)
}

// isEnabledLocked checks feature state without acquiring locks (caller must hold lock).
func (m *Manager) isEnabledLocked(name string) bool {
	if enabled, ok := m.overrides[name]; ok {
		return enabled
	}
	if m.cfg != nil && m.cfg.Features.Flags != nil {
		if enabled, ok := m.cfg.Features.Flags[name]; ok {
			return enabled
		}
	}
	return getDefault(name)
}

// getDefault returns the default value for a feature.
func getDefault(name string) bool {
	if val, ok := defaultValues[name]; ok {
		return val
	}
	return false // Unknown features default to disabled
}

// List returns all known features with their current enabled state.
func (m *Manager) List() map[string]bool {
	result := make(map[string]bool, len(allFeatures))
	for _, f := range allFeatures {
		result[f.Name] = m.IsEnabledName(f.Name)
	}
	return result
}

// ListAll returns all known features with metadata.
// Returns a copy to prevent mutation of internal state.
func ListAll() []Feature {
	result := make([]Feature, len(allFeatures))
	copy(result, allFeatures)
	return result
}

// SetEnabled updates a feature flag in memory and writes the config to path.
func (m *Manager) SetEnabled(path, name string, enabled bool) error {
	if !IsKnownFeature(name) {
		return fmt.Errorf("%q: %w", name, ErrUnknownFeature)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg == nil {
		m.cfg = config.Default()
	}
	if m.cfg.Features.Flags == nil {
		m.cfg.Features.Flags = make(map[string]bool)
	}
	m.cfg.Features.Flags[name] = enabled

	return config.SaveTo(path, m.cfg)
}
