package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/envlight/internal/engine/frame"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	return LoadWith(CLI())
}

// LoadWith loads configuration using explicit overrides.
func LoadWith(o Overrides) (*Config, error) {
	path := o.ConfigPath
	if path == "" {
		path = findConfigFile()
	}

	var data []byte
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	// Material defaults depend on the variant, so resolve it before
	// layering the file over the defaults.
	variant, err := peekVariant(data, o)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	cfg := DefaultFor(variant)
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	o.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func peekVariant(data []byte, o Overrides) (frame.Variant, error) {
	name := o.Variant
	if name == "" && len(data) > 0 {
		var head struct {
			Scene struct {
				Variant string `yaml:"variant"`
			} `yaml:"scene"`
		}
		if err := yaml.Unmarshal(data, &head); err != nil {
			return 0, err
		}
		name = head.Scene.Variant
	}
	if name == "" {
		return frame.Cubemap, nil
	}
	return frame.ParseVariant(name)
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./envlight.yaml",
		UserConfigPath(),
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
		return filepath.Join(home, "Library", "Application Support", "envlight")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "envlight")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "envlight")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "envlight")
	}
}
