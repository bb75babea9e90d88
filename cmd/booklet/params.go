package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	booklet "github.com/alnah/go-booklet"
	"github.com/alnah/go-booklet/internal/config"
	"github.com/alnah/go-booklet/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrTooManyArgs        = errors.New("expected at most one source directory")
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// buildParams holds the settings of one run after flags, environment and
// config file are merged.
type buildParams struct {
	cfg     *config.Config
	srcDir  string
	outDir  string // empty = <srcDir>/output
	verbose bool
}

// resolveParams loads the config file and overlays env vars then flags.
func resolveParams(positional []string, flags *buildFlags) (*buildParams, error) {
	if len(positional) > 1 {
		return nil, fmt.Errorf("%w, got %d: %s", ErrTooManyArgs, len(positional), strings.Join(positional, " "))
	}
	if flags.workers < 0 || flags.workers > config.MaxWorkers {
		return nil, fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkerCount, flags.workers, config.MaxWorkers)
	}

	env := loadEnvConfig()

	configName := flags.common.config
	if configName == "" {
		configName = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configName != "" {
		var err error
		if cfg, err = config.LoadConfig(configName); err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(configName)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	mergeFlags(flags, cfg)

	// Flags and env bypass the file's validation
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &buildParams{
		cfg:     cfg,
		srcDir:  resolveSourceDir(positional, cfg),
		outDir:  cfg.Output.Dir,
		verbose: flags.common.verbose || env.Debug,
	}, nil
}

// mergeFlags copies explicitly set flags into cfg (CLI wins).
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.paper != "" {
		cfg.Paper = flags.paper
	}
	if flags.source.pattern != "" {
		cfg.Source.Pattern = flags.source.pattern
	}
	if flags.source.marker != "" {
		cfg.Source.Marker = flags.source.marker
	}
	if flags.backends.render != "" {
		cfg.Render.Backend = flags.backends.render
	}
	if flags.backends.compose != "" {
		cfg.Compose.Backend = flags.backends.compose
	}
	if flags.backends.concat != "" {
		cfg.Concat.Backend = flags.backends.concat
	}
	if flags.backends.inkscapeLegacy {
		cfg.Tools.InkscapeLegacy = true
	}
	if flags.profiles.web != "" {
		cfg.Profiles.Web = flags.profiles.web
	}
	if flags.profiles.print != "" {
		cfg.Profiles.Print = flags.profiles.print
	}
}

// resolveSourceDir picks the positional argument, then the merged config
// (which already holds BOOKLET_DIR or DIR), then the working directory.
func resolveSourceDir(positional []string, cfg *config.Config) string {
	if len(positional) > 0 && positional[0] != "" {
		return positional[0]
	}
	if cfg.Source.Dir != "" {
		return cfg.Source.Dir
	}
	return "."
}

// builderOptions translates a validated config into builder options.
// Empty fields keep the builder defaults.
func builderOptions(cfg *config.Config) ([]booklet.Option, error) {
	opts := []booklet.Option{booklet.WithWorkers(cfg.Workers)}

	if cfg.Paper != "" {
		paper, err := booklet.ParsePaper(cfg.Paper)
		if err != nil {
			return nil, err
		}
		opts = append(opts, booklet.WithPaper(paper))
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, booklet.WithTimeout(timeout))
	}

	if cfg.Source.Marker != "" {
		opts = append(opts, booklet.WithMarker(cfg.Source.Marker))
	}
	if cfg.Source.Pattern != "" {
		opts = append(opts, booklet.WithPattern(cfg.Source.Pattern))
	}

	backends := booklet.DefaultBackends()
	if cfg.Render.Backend != "" {
		backends.Render = strings.ToLower(cfg.Render.Backend)
	}
	if cfg.Compose.Backend != "" {
		backends.Compose = strings.ToLower(cfg.Compose.Backend)
	}
	if cfg.Concat.Backend != "" {
		backends.Concat = strings.ToLower(cfg.Concat.Backend)
	}
	opts = append(opts, booklet.WithBackends(backends))

	opts = append(opts, booklet.WithTools(booklet.Tools{
		Inkscape:       cfg.Tools.Inkscape,
		Pdfnup:         cfg.Tools.Pdfnup,
		Pdfunite:       cfg.Tools.Pdfunite,
		Ps2pdf:         cfg.Tools.Ps2pdf,
		InkscapeLegacy: cfg.Tools.InkscapeLegacy,
	}))

	webProfile, printProfile := booklet.DefaultWebProfile, booklet.DefaultPrintProfile
	if cfg.Profiles.Web != "" {
		webProfile = booklet.Profile(strings.ToLower(cfg.Profiles.Web))
	}
	if cfg.Profiles.Print != "" {
		printProfile = booklet.Profile(strings.ToLower(cfg.Profiles.Print))
	}
	opts = append(opts, booklet.WithProfiles(webProfile, printProfile))

	return opts, nil
}

// marker returns the ordinal marker in effect, for hints.
func (p *buildParams) marker() string {
	if p.cfg.Source.Marker != "" {
		return p.cfg.Source.Marker
	}
	return booklet.DefaultMarker
}

// newLogger returns the CLI logger: debug when verbose, errors only when
// quiet, warnings otherwise. With progress, a default run also reports each
// stage as a bare "msg=... key=value" line.
func newLogger(w io.Writer, verbose, quiet, progress bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	switch {
	case verbose:
		opts.Level = slog.LevelDebug
	case quiet:
		opts.Level = slog.LevelError
	case progress:
		opts.Level = slog.LevelInfo
		opts.ReplaceAttr = dropTimeAndLevel
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func dropTimeAndLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey) {
		return slog.Attr{}
	}
	return a
}
