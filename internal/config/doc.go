// Package config loads, validates and saves linecount settings from JSON or
// YAML files, with .env and LINECOUNT_* environment overrides.
package config
