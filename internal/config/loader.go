package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "tetrix.yaml"

// Load loads the game configuration and validates it.
// Search order: customPath -> ~/.tetrix/configs/tetrix.yaml -> ./configs/tetrix.yaml -> embedded default.
// Only an explicit customPath turns read or parse failures into errors; the other locations
// are skipped when missing or malformed.
func Load(customPath string) (TetrixConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrixConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return TetrixConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{userConfigPath(configFile), filepath.Join("configs", configFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, cfg.Validate()
		}
	}

	cfg, err := Parse(defaultTetrixYAML)
	if err != nil {
		return DefaultTetrixConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// Parse decodes YAML on top of the built-in defaults, so partial files are allowed.
// Unknown keys are rejected to catch typos.
func Parse(data []byte) (TetrixConfig, error) {
	cfg := DefaultTetrixConfig()
	if len(data) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return DefaultTetrixConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetrix", "configs", filename)
}
