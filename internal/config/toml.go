// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Test   TestConfig   `toml:"test"`
	Colors ColorsConfig `toml:"colors"`
}

// TestConfig maps test-related settings.
type TestConfig struct {
	Duration       *int64   `toml:"duration"`
	Numbers        *bool    `toml:"numbers"`
	NumbersRatio   *float64 `toml:"numbers-ratio"`
	Uppercase      *bool    `toml:"uppercase"`
	UppercaseRatio *float64 `toml:"uppercase-ratio"`
	Symbols        *bool    `toml:"symbols"`
	SymbolsRatio   *float64 `toml:"symbols-ratio"`
	Dictionary     *string  `toml:"dictionary"`
	SaveResults    *bool    `toml:"save-results"`
}

// ColorsConfig maps color overrides for typed characters.
type ColorsConfig struct {
	CorrectFg   *string `toml:"correct-fg"`
	CorrectBg   *string `toml:"correct-bg"`
	IncorrectFg *string `toml:"incorrect-fg"`
	IncorrectBg *string `toml:"incorrect-bg"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ValidRatio reports whether a perturbation ratio can be applied.
// Out-of-range values are ignored and the default is kept.
func ValidRatio(v float64) bool {
	return v >= 0 && v <= 1
}
