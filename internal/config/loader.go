package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/mole.yaml
var defaultMoleYAML []byte

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultMoleYAML
}

// Load reads the mole configuration and applies MOLE_* environment
// overrides on top.
// Search order: customPath -> ~/.mole/configs/mole.yaml -> ./configs/mole.yaml -> embedded default
func Load(customPath string) (MoleConfig, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (MoleConfig, error) {
	cfg := DefaultMoleConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Unreadable or malformed files further down the search path are skipped.
	for _, path := range []string{userConfigPath("mole.yaml"), filepath.Join("configs", "mole.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := DefaultMoleConfig()
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			return fileCfg, nil
		}
	}

	if err := yaml.Unmarshal(defaultMoleYAML, &cfg); err != nil {
		return DefaultMoleConfig(), nil
	}
	return cfg, nil
}

// ApplyEnv overrides cfg fields from MOLE_* environment variables.
// Unset variables leave the current values alone.
func ApplyEnv(cfg *MoleConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mole", "configs", filename)
}
