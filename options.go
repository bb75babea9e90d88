package booklet

import (
	"log/slog"
	"time"
)

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds internal configuration for Builder.
type builderConfig struct {
	workers      int
	timeout      time.Duration
	paper        Paper
	marker       string
	pattern      string
	backends     Backends
	tools        Tools
	webProfile   Profile
	printProfile Profile
}

// defaultTimeout bounds each external tool invocation.
const defaultTimeout = 2 * time.Minute

// WithTimeout bounds each external tool invocation.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("booklet: WithTimeout duration must be positive")
	}
	return func(b *Builder) {
		b.cfg.timeout = d
	}
}

// WithWorkers sets how many pages render concurrently (0 = auto).
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.cfg.workers = n
	}
}

// WithPaper sets the sheet size used for spreads.
func WithPaper(p Paper) Option {
	return func(b *Builder) {
		b.cfg.paper = p
	}
}

// WithMarker sets the token preceding the page ordinal in file names.
func WithMarker(marker string) Option {
	return func(b *Builder) {
		b.cfg.marker = marker
	}
}

// WithPattern sets the glob selecting source drawings.
func WithPattern(pattern string) Option {
	return func(b *Builder) {
		b.cfg.pattern = pattern
	}
}

// WithBackends selects the collaborator implementations.
func WithBackends(backends Backends) Option {
	return func(b *Builder) {
		b.cfg.backends = backends
	}
}

// WithTools overrides external tool binaries.
func WithTools(tools Tools) Option {
	return func(b *Builder) {
		b.cfg.tools = tools
	}
}

// WithProfiles sets the quality profiles for the web and print artifacts.
func WithProfiles(web, print Profile) Option {
	return func(b *Builder) {
		b.cfg.webProfile = web
		b.cfg.printProfile = print
	}
}

// WithLogger sets the logger for progress and debug events.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// WithRunner replaces the command runner used by the exec backends.
func WithRunner(r Runner) Option {
	return func(b *Builder) {
		b.runner = r
	}
}

// WithLookPath replaces exec.LookPath for the missing-tool check.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(b *Builder) {
		b.lookPath = fn
	}
}

// WithRenderer injects a page renderer, bypassing the render backend.
func WithRenderer(r PageRenderer) Option {
	return func(b *Builder) {
		b.renderer = r
	}
}

// WithCompositor injects a compositor, bypassing the compose backend.
func WithCompositor(c Compositor) Option {
	return func(b *Builder) {
		b.compositor = c
	}
}

// WithConcatenator injects a concatenator, bypassing the concat backend.
func WithConcatenator(c Concatenator) Option {
	return func(b *Builder) {
		b.concatenator = c
	}
}

// WithReducer injects a size reducer, bypassing ps2pdf.
func WithReducer(r Reducer) Option {
	return func(b *Builder) {
		b.reducer = r
	}
}
