// Package features provides a feature flag system for gating optional
// functionality, with priority resolution from CLI overrides, config file
// values, and compiled-in defaults.
package features
