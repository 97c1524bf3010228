// Package config loads the CLI's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/S123MR/Scribe-AI/internal/fileutil"
	"github.com/S123MR/Scribe-AI/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Typography bounds. Values outside these ranges are almost certainly typos
// and would produce unusable pages.
const (
	MinFontSizePx = 8.0
	MaxFontSizePx = 96.0
	MinLineHeight = 1.0
	MaxLineHeight = 3.0
)

// Config holds all configuration for note generation.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Typography TypographyConfig `yaml:"typography"`
	Style      StyleConfig      `yaml:"style"`
	AI         AIConfig         `yaml:"ai"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Format     string `yaml:"format"`     // "png", "pdf", "zip" (empty = pdf)
}

// TypographyConfig defines handwriting size options.
type TypographyConfig struct {
	FontSizePx float64 `yaml:"fontSizePx"` // 0 = library default
	LineHeight float64 `yaml:"lineHeight"` // 0 = library default
}

// StyleConfig defines the paper look.
type StyleConfig struct {
	FontFamily string `yaml:"fontFamily"` // CSS font stack (empty = default handwriting stack)
	InkColor   string `yaml:"inkColor"`   // hex (empty = default blue)
	PaperColor string `yaml:"paperColor"` // hex (empty = off-white)
	NoRules    bool   `yaml:"noRules"`    // disable ruled lines
	NoMargin   bool   `yaml:"noMargin"`   // disable the margin line
}

// AIConfig defines the optional note-rewrite step.
type AIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"` // empty = aiwriter.DefaultModel
	// The API key comes from SCRIBE_API_KEY, never from the config file.
}

// DefaultConfig returns a neutral configuration with all features at their
// library defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: "pdf"},
	}
}

// Validate checks numeric ranges. Zero typography values mean "use the
// library default" and are always valid.
func (c *Config) Validate() error {
	if f := c.Typography.FontSizePx; f != 0 && (f < MinFontSizePx || f > MaxFontSizePx) {
		return fmt.Errorf("%w: fontSizePx %.1f (must be %.0f-%.0f)", ErrInvalidValue, f, MinFontSizePx, MaxFontSizePx)
	}
	if lh := c.Typography.LineHeight; lh != 0 && (lh < MinLineHeight || lh > MaxLineHeight) {
		return fmt.Errorf("%w: lineHeight %.2f (must be %.1f-%.1f)", ErrInvalidValue, lh, MinLineHeight, MaxLineHeight)
	}
	switch strings.ToLower(c.Output.Format) {
	case "", "png", "pdf", "zip":
	default:
		return fmt.Errorf("%w: format %q", ErrInvalidValue, c.Output.Format)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, user config dir.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "scribe", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
