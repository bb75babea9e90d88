package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-booklet/internal/config"
)

// envPrefix marks the variables checked for typos.
const envPrefix = "BOOKLET_"

// envConfig holds configuration from environment variables.
// Lets scripts and CI override settings without a YAML file.
type envConfig struct {
	ConfigPath string        // BOOKLET_CONFIG: config file name or path
	SourceDir  string        // BOOKLET_DIR, then DIR: directory holding the drawings
	OutputDir  string        // BOOKLET_OUTPUT_DIR: output root
	Paper      string        // BOOKLET_PAPER: a3, a4, letter
	Timeout    time.Duration // BOOKLET_TIMEOUT: per tool invocation
	Workers    int           // BOOKLET_WORKERS: concurrent renders
	Debug      bool          // BOOKLET_DEBUG or DEV: debug logging
}

// knownEnvVars lists valid BOOKLET_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"BOOKLET_CONFIG":     true,
	"BOOKLET_DIR":        true,
	"BOOKLET_OUTPUT_DIR": true,
	"BOOKLET_PAPER":      true,
	"BOOKLET_TIMEOUT":    true,
	"BOOKLET_WORKERS":    true,
	"BOOKLET_DEBUG":      true,
	"BOOKLET_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored, like unset variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("BOOKLET_CONFIG"),
		SourceDir:  os.Getenv("BOOKLET_DIR"),
		OutputDir:  os.Getenv("BOOKLET_OUTPUT_DIR"),
		Paper:      os.Getenv("BOOKLET_PAPER"),
	}

	// DIR and DEV predate the BOOKLET_ prefix
	if cfg.SourceDir == "" {
		cfg.SourceDir = os.Getenv("DIR")
	}
	cfg.Debug = isTruthy(os.Getenv("BOOKLET_DEBUG")) || os.Getenv("DEV") != ""

	if timeout := os.Getenv("BOOKLET_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("BOOKLET_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// isTruthy accepts 1, true, yes and on in any case.
func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// warnUnknownEnvVars logs warnings for unrecognized BOOKLET_* variables.
// Helps catch typos like BOOKLET_WORKER instead of BOOKLET_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment values on the loaded config.
// Only set variables apply, so the precedence is:
// CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.SourceDir != "" {
		cfg.Source.Dir = env.SourceDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Paper != "" {
		cfg.Paper = env.Paper
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
