package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"sonar-scan.klederson.com/internal/sonar"
)

// maxFileSize bounds the settings file.
const maxFileSize = 1 << 20

// File is the layout of the YAML settings file.
type File struct {
	Setup   sonar.Setup `yaml:"setup"`
	Palette string      `yaml:"palette"`
	Seed    uint64      `yaml:"seed"`
}

// Defaults returns the settings used when no file is given.
func Defaults() File {
	return File{
		Setup:   sonar.DefaultSetup(),
		Palette: "default",
		Seed:    1,
	}
}

// Load reads a YAML settings file. Fields missing from the file keep their
// defaults, so partial files are fine.
func Load(path string) (File, error) {
	cfg := Defaults()

	clean := filepath.Clean(path)
	info, err := os.Stat(clean)
	if err != nil {
		return cfg, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return cfg, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", clean, err)
	}
	if err := cfg.Setup.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid setup in %s: %w", clean, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, the counterpart of the device's save-settings task.
func Save(path string, cfg File) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
