package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/simvis/internal/logger"
)

// EnvConfig names a config file when no -config flag is given.
const EnvConfig = "SIMVIS_CONFIG"

// Load builds the configuration with priority defaults < file < flags.
// The file is the -config flag, then $SIMVIS_CONFIG, then the first of
// ./simvis.yaml and <ConfigDir>/config.yaml that exists.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	candidates := []string{
		"simvis.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "simvis")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "simvis")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "simvis")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "simvis")
	}
}

// loadFromFile merges a YAML file into cfg. Unknown keys are rejected so a
// misspelled option does not silently fall back to its default.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Scene.MaxGeom < 0 {
		return fmt.Errorf("%w: max_geom %d is negative", ErrConfig, c.Scene.MaxGeom)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}
