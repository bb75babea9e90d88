// Package config loads booklet build settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-booklet/internal/fileutil"
	"github.com/alnah/go-booklet/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength    = 4096 // PATH_MAX on Linux
	MaxPatternLength = 256
	MaxMarkerLength  = 32
)

// Limits on numeric fields.
const (
	MaxWorkers = 64
	MaxTimeout = time.Hour
)

// Accepted enumeration values. Empty always means "use the default".
var (
	papers          = []string{"a3", "a4", "letter"}
	renderBackends  = []string{"inkscape", "chrome"}
	composeBackends = []string{"pdfnup", "native"}
	concatBackends  = []string{"pdfunite", "native"}
	profiles        = []string{"screen", "ebook", "printer", "prepress", "default"}
)

// Config holds every setting of a booklet build.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Output   OutputConfig   `yaml:"output"`
	Paper    string         `yaml:"paper"`   // "a3", "a4", "letter" (default: "a3")
	Workers  int            `yaml:"workers"` // concurrent renders (0 = auto)
	Timeout  string         `yaml:"timeout"` // per tool invocation, Go duration ("90s")
	Render   BackendConfig  `yaml:"render"`
	Compose  BackendConfig  `yaml:"compose"`
	Concat   BackendConfig  `yaml:"concat"`
	Tools    ToolsConfig    `yaml:"tools"`
	Profiles ProfilesConfig `yaml:"profiles"`
}

// SourceConfig locates the page drawings.
type SourceConfig struct {
	Dir     string `yaml:"dir"`     // empty = current directory
	Pattern string `yaml:"pattern"` // glob (default: "*.svg")
	Marker  string `yaml:"marker"`  // token before the ordinal (default: "p")
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // empty = <source>/output
}

// BackendConfig selects the implementation of one stage.
type BackendConfig struct {
	Backend string `yaml:"backend"`
}

// ToolsConfig overrides external binaries.
type ToolsConfig struct {
	Inkscape       string `yaml:"inkscape"`
	InkscapeLegacy bool   `yaml:"inkscapeLegacy"` // Inkscape 0.92 flags
	Pdfnup         string `yaml:"pdfnup"`
	Pdfunite       string `yaml:"pdfunite"`
	Ps2pdf         string `yaml:"ps2pdf"`
}

// ProfilesConfig sets the Ghostscript quality profile of each artifact.
type ProfilesConfig struct {
	Web   string `yaml:"web"`   // default: "ebook"
	Print string `yaml:"print"` // default: "printer"
}

// Validate checks enumerations, ranges and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("source.dir", c.Source.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("source.pattern", c.Source.Pattern, MaxPatternLength); err != nil {
		return err
	}
	if c.Source.Pattern != "" {
		if _, err := filepath.Match(c.Source.Pattern, ""); err != nil {
			return fmt.Errorf("%w: source.pattern %q: %v", ErrInvalidValue, c.Source.Pattern, err)
		}
	}
	if err := validateFieldLength("source.marker", c.Source.Marker, MaxMarkerLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}

	if err := validateEnum("paper", c.Paper, papers); err != nil {
		return err
	}
	if err := validateEnum("render.backend", c.Render.Backend, renderBackends); err != nil {
		return err
	}
	if err := validateEnum("compose.backend", c.Compose.Backend, composeBackends); err != nil {
		return err
	}
	if err := validateEnum("concat.backend", c.Concat.Backend, concatBackends); err != nil {
		return err
	}
	if err := validateEnum("profiles.web", c.Profiles.Web, profiles); err != nil {
		return err
	}
	if err := validateEnum("profiles.print", c.Profiles.Print, profiles); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	for field, value := range map[string]string{
		"tools.inkscape": c.Tools.Inkscape,
		"tools.pdfnup":   c.Tools.Pdfnup,
		"tools.pdfunite": c.Tools.Pdfunite,
		"tools.ps2pdf":   c.Tools.Ps2pdf,
	} {
		if err := validateFieldLength(field, value, MaxPathLength); err != nil {
			return err
		}
	}

	return nil
}

// TimeoutDuration parses Timeout. Zero means "use the default".
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 || d > MaxTimeout {
		return 0, fmt.Errorf("%w: timeout must be between 0 and %v, got %v", ErrInvalidValue, MaxTimeout, d)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts the empty string or one of allowed, case-insensitively.
func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" || slices.Contains(allowed, strings.ToLower(value)) {
		return nil
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns a configuration where every field falls back to the
// builder defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFileStrict(configPath, &cfg); err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.Is(err, yamlutil.ErrNilData):
			// An empty file is a valid config with every default.
		default:
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-booklet/
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
			userPath := filepath.Join(userConfigDir, "go-booklet", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// SearchPaths lists where a config name would be looked up, for hints.
func SearchPaths(name string) []string {
	paths := []string{name + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-booklet", name+".yaml"))
	}
	return paths
}
