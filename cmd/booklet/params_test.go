package main

// Notes:
// - resolveParams: we test the precedence chain (flags > env > config file >
//   defaults) with a real YAML file; these tests set env vars and so cannot
//   run in parallel.
// - builderOptions: we test through booklet.NewBuilder and RequiredTools,
//   the only observable effect of the options.
// - newLogger: we test the level chosen for verbose, quiet, progress and default runs.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"testing"

	booklet "github.com/alnah/go-booklet"
	"github.com/alnah/go-booklet/internal/config"
)

// writeConfig writes a YAML config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "booklet.yaml")
	writeFile(t, path, content)
	return path
}

// ---------------------------------------------------------------------------
// TestResolveParams - Precedence of flags, env and config file
// ---------------------------------------------------------------------------

func TestResolveParams(t *testing.T) {
	cfgPath := writeConfig(t, `
source:
  dir: /config/drawings
  marker: page
output:
  dir: /config/out
paper: a4
workers: 2
timeout: 30s
`)

	t.Run("config file only", func(t *testing.T) {
		clearEnv(t)

		p, err := resolveParams(nil, &buildFlags{common: commonFlags{config: cfgPath}})
		if err != nil {
			t.Fatalf("resolveParams() error = %v", err)
		}
		if p.srcDir != "/config/drawings" {
			t.Errorf("srcDir = %q, want /config/drawings", p.srcDir)
		}
		if p.outDir != "/config/out" {
			t.Errorf("outDir = %q, want /config/out", p.outDir)
		}
		if p.cfg.Paper != "a4" || p.cfg.Workers != 2 || p.cfg.Timeout != "30s" {
			t.Errorf("cfg = %+v, want config file values", p.cfg)
		}
		if p.marker() != "page" {
			t.Errorf("marker() = %q, want page", p.marker())
		}
	})

	t.Run("env overrides config", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BOOKLET_CONFIG", cfgPath)
		t.Setenv("BOOKLET_PAPER", "letter")
		t.Setenv("BOOKLET_WORKERS", "5")
		t.Setenv("DIR", "/env/drawings")

		p, err := resolveParams(nil, &buildFlags{})
		if err != nil {
			t.Fatalf("resolveParams() error = %v", err)
		}
		if p.cfg.Paper != "letter" {
			t.Errorf("Paper = %q, want letter", p.cfg.Paper)
		}
		if p.cfg.Workers != 5 {
			t.Errorf("Workers = %d, want 5", p.cfg.Workers)
		}
		if p.srcDir != "/env/drawings" {
			t.Errorf("srcDir = %q, want /env/drawings", p.srcDir)
		}
	})

	t.Run("flags override env", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BOOKLET_PAPER", "letter")
		t.Setenv("BOOKLET_OUTPUT_DIR", "/env/out")
		t.Setenv("BOOKLET_DEBUG", "1")

		flags := &buildFlags{
			common: commonFlags{config: cfgPath},
			output: "/flag/out",
			paper:  "a3",
			source: sourceFlags{marker: "pg"},
		}
		p, err := resolveParams([]string{"/arg/drawings"}, flags)
		if err != nil {
			t.Fatalf("resolveParams() error = %v", err)
		}
		if p.cfg.Paper != "a3" {
			t.Errorf("Paper = %q, want a3", p.cfg.Paper)
		}
		if p.outDir != "/flag/out" {
			t.Errorf("outDir = %q, want /flag/out", p.outDir)
		}
		if p.srcDir != "/arg/drawings" {
			t.Errorf("srcDir = %q, want /arg/drawings", p.srcDir)
		}
		if p.marker() != "pg" {
			t.Errorf("marker() = %q, want pg", p.marker())
		}
		if !p.verbose {
			t.Error("verbose = false, want true from BOOKLET_DEBUG")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		p, err := resolveParams(nil, &buildFlags{})
		if err != nil {
			t.Fatalf("resolveParams() error = %v", err)
		}
		if p.srcDir != "." {
			t.Errorf("srcDir = %q, want .", p.srcDir)
		}
		if p.outDir != "" {
			t.Errorf("outDir = %q, want empty", p.outDir)
		}
		if p.marker() != booklet.DefaultMarker {
			t.Errorf("marker() = %q, want %q", p.marker(), booklet.DefaultMarker)
		}
		if p.verbose {
			t.Error("verbose = true, want false")
		}
	})

	t.Run("invalid config file", func(t *testing.T) {
		clearEnv(t)
		bad := writeConfig(t, "paper: a4\nunknownField: 1\n")

		_, err := resolveParams(nil, &buildFlags{common: commonFlags{config: bad}})
		if !errors.Is(err, config.ErrConfigParse) {
			t.Errorf("resolveParams() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid env value caught", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BOOKLET_PAPER", "tabloid")

		_, err := resolveParams(nil, &buildFlags{})
		if !errors.Is(err, config.ErrInvalidValue) {
			t.Errorf("resolveParams() error = %v, want ErrInvalidValue", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveSourceDir - Positional argument and fallbacks
// ---------------------------------------------------------------------------

func TestResolveSourceDir(t *testing.T) {
	t.Parallel()

	withDir := &config.Config{Source: config.SourceConfig{Dir: "/cfg"}}

	tests := []struct {
		name       string
		positional []string
		cfg        *config.Config
		want       string
	}{
		{"positional", []string{"/arg"}, withDir, "/arg"},
		{"empty positional", []string{""}, withDir, "/cfg"},
		{"config", nil, withDir, "/cfg"},
		{"working directory", nil, &config.Config{}, "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveSourceDir(tt.positional, tt.cfg); got != tt.want {
				t.Errorf("resolveSourceDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuilderOptions - Config to builder translation
// ---------------------------------------------------------------------------

func TestBuilderOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       *config.Config
		wantTools []string
	}{
		{
			name:      "defaults",
			cfg:       &config.Config{},
			wantTools: []string{"inkscape", "pdfnup", "pdfunite", "ps2pdf"},
		},
		{
			name: "native backends",
			cfg: &config.Config{
				Render:  config.BackendConfig{Backend: "Chrome"},
				Compose: config.BackendConfig{Backend: "native"},
				Concat:  config.BackendConfig{Backend: "NATIVE"},
			},
			wantTools: []string{"ps2pdf"},
		},
		{
			name: "tool overrides",
			cfg: &config.Config{
				Tools: config.ToolsConfig{Inkscape: "/opt/inkscape/bin/inkscape", Ps2pdf: "gs-ps2pdf"},
			},
			wantTools: []string{"/opt/inkscape/bin/inkscape", "pdfnup", "pdfunite", "gs-ps2pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts, err := builderOptions(tt.cfg)
			if err != nil {
				t.Fatalf("builderOptions() error = %v", err)
			}
			b, err := booklet.NewBuilder(opts...)
			if err != nil {
				t.Fatalf("NewBuilder() error = %v", err)
			}
			defer func() { _ = b.Close() }()

			if got := b.RequiredTools(); !slices.Equal(got, tt.wantTools) {
				t.Errorf("RequiredTools() = %v, want %v", got, tt.wantTools)
			}
		})
	}
}

func TestBuilderOptions_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr error
	}{
		{"paper", &config.Config{Paper: "a5"}, booklet.ErrInvalidPaper},
		{"timeout", &config.Config{Timeout: "later"}, config.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := builderOptions(tt.cfg); !errors.Is(err, tt.wantErr) {
				t.Errorf("builderOptions() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuilderOptions_Profiles(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Profiles: config.ProfilesConfig{Web: "Screen", Print: "prepress"}}
	opts, err := builderOptions(cfg)
	if err != nil {
		t.Fatalf("builderOptions() error = %v", err)
	}

	reducer := &mockReducer{}
	opts = append(opts,
		booklet.WithRenderer(&mockRenderer{}),
		booklet.WithCompositor(&mockCompositor{}),
		booklet.WithConcatenator(&mockConcatenator{}),
		booklet.WithReducer(reducer),
	)
	b, err := booklet.NewBuilder(opts...)
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	defer func() { _ = b.Close() }()

	dir := writePages(t, 2)
	if _, err := b.Build(context.Background(), dir, filepath.Join(t.TempDir(), "out")); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []booklet.Profile{booklet.ProfileScreen, booklet.ProfilePrepress}
	if !slices.Equal(reducer.profiles, want) {
		t.Errorf("profiles = %v, want %v", reducer.profiles, want)
	}
}

// ---------------------------------------------------------------------------
// TestNewLogger - Level selection
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                     string
		verbose, quiet, progress bool
		enabled                  slog.Level
		disabled                 slog.Level
	}{
		{"default", false, false, false, slog.LevelWarn, slog.LevelInfo},
		{"verbose", true, false, false, slog.LevelDebug, slog.LevelDebug - 1},
		{"quiet", false, true, false, slog.LevelError, slog.LevelWarn},
		{"verbose wins over quiet", true, true, false, slog.LevelDebug, slog.LevelDebug - 1},
		{"progress", false, false, true, slog.LevelInfo, slog.LevelDebug},
		{"quiet wins over progress", false, true, true, slog.LevelError, slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := newLogger(&buf, tt.verbose, tt.quiet, tt.progress)
			ctx := context.Background()

			if !log.Enabled(ctx, tt.enabled) {
				t.Errorf("level %v should be enabled", tt.enabled)
			}
			if log.Enabled(ctx, tt.disabled) {
				t.Errorf("level %v should be disabled", tt.disabled)
			}
		})
	}
}
