package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadEcho loads Echo configuration.
// Search order: customPath -> ~/.arcade/configs/echo.yaml -> ./configs/echo.yaml -> embedded default
// Files are overlaid on the defaults, so a partial file only overrides what it names.
func LoadEcho(customPath string) (EchoConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readEcho(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("echo.yaml"); userCfgPath != "" {
		if cfg, err := readEcho(userCfgPath); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := readEcho(filepath.Join("configs", "echo.yaml")); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultEchoConfig()
	if err := yaml.Unmarshal(defaultEchoYAML, &cfg); err != nil {
		return DefaultEchoConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ResolveEchoPath reports which file LoadEcho would read, or "" for the embedded default.
func ResolveEchoPath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	if p := userConfigPath("echo.yaml"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	local := filepath.Join("configs", "echo.yaml")
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return ""
}

func readEcho(path string) (EchoConfig, error) {
	cfg := DefaultEchoConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
