package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "linecount"
	configFileName = "config.json"
)

// projectFiles are looked up in the project root, in order, before the
// user config.
var projectFiles = []string{".linecount.json", ".linecount.yaml", ".linecount.yml"}

// ConfigPath returns the user config path (~/.config/linecount/config.json).
func ConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName, configFileName)
}

// Load reads the project config from root if present, otherwise the user
// config. A missing file yields defaults.
func Load(root string) (*Config, error) {
	for _, name := range projectFiles {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFrom(path)
		}
	}
	cfg, err := LoadFrom(ConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

// LoadFrom reads a config file. YAML is used for .yaml/.yml, JSON otherwise.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	if isYAML(path) {
		err = yaml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := Default()
	fc.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
