package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigEnv names a config file to use when no path is passed explicitly.
const ConfigEnv = "DEFENSE_CONFIG"

// LoadDefense resolves the defense configuration. An explicit path (or
// $DEFENSE_CONFIG) must load cleanly. Otherwise the first readable, valid
// file among SearchPaths wins, falling back to the embedded defaults.
// Files are decoded over the defaults, so a partial file overrides only the
// keys it names. On error the defaults are returned alongside it.
func LoadDefense(path string) (DefenseConfig, error) {
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return DefaultDefenseConfig(), fmt.Errorf("read config %s: %w", path, err)
		}
		cfg, err := parseDefense(data)
		if err != nil {
			return DefaultDefenseConfig(), fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	for _, candidate := range SearchPaths() {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		if cfg, err := parseDefense(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parseDefense(defaultDefenseYAML); err == nil {
		return cfg, nil
	}
	return DefaultDefenseConfig(), nil
}

// SearchPaths lists the implicit config locations in priority order.
func SearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".arcade", "configs", "defense.yaml"))
	}
	return append(paths, filepath.Join("configs", "defense.yaml"))
}

func parseDefense(data []byte) (DefenseConfig, error) {
	cfg := DefaultDefenseConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
