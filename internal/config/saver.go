package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save writes the config to ~/.config/linecount/config.json
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, as YAML for .yaml/.yml and JSON otherwise.
func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := Marshal(cfg, isYAML(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal renders cfg in the on-disk format.
func Marshal(cfg *Config, asYAML bool) ([]byte, error) {
	fc := toFileConfig(cfg)
	if asYAML {
		return yaml.Marshal(fc)
	}
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// SaveTheme updates only the theme name in config and saves.
func SaveTheme(root, themeName string) error {
	cfg, err := Load(root)
	if err != nil {
		return err
	}
	cfg.UI.Theme = themeName
	return Save(cfg)
}
