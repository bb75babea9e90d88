package booklet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/alnah/go-booklet/internal/fileutil"
)

// DefaultOutputDirName is created inside the source directory unless an
// output directory is given.
const DefaultOutputDirName = "output"

// Output subdirectories.
const (
	pdfDirName = "pdf" // rendered single pages
)

// filePermissions applies to every file the pipeline writes.
const filePermissions = 0o644

// Builder orchestrates the booklet pipeline: load, impose, render, compose,
// assemble, reduce. Create with NewBuilder, run with Build, and Close when done.
type Builder struct {
	cfg          builderConfig
	runner       Runner
	lookPath     func(string) (string, error)
	renderer     PageRenderer
	compositor   Compositor
	concatenator Concatenator
	reducer      Reducer
	log          *slog.Logger
	required     []string // tools the exec backends need on PATH
	closers      []io.Closer
}

// NewBuilder creates a Builder with the classic toolchain
// (inkscape, pdfnup, pdfunite, ps2pdf) unless options say otherwise.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg: builderConfig{
			timeout:      defaultTimeout,
			paper:        PaperA3,
			marker:       DefaultMarker,
			pattern:      DefaultPattern,
			backends:     DefaultBackends(),
			webProfile:   DefaultWebProfile,
			printProfile: DefaultPrintProfile,
		},
		runner:   &ExecRunner{},
		lookPath: exec.LookPath,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(b)
	}

	if err := b.validate(); err != nil {
		return nil, err
	}
	b.wireBackends()

	return b, nil
}

func (b *Builder) validate() error {
	if b.cfg.marker == "" {
		return ErrInvalidMarker
	}
	if _, err := filepath.Match(b.cfg.pattern, ""); err != nil {
		return fmt.Errorf("invalid source pattern %q: %w", b.cfg.pattern, err)
	}
	if err := b.cfg.backends.Validate(); err != nil {
		return err
	}
	if err := b.cfg.webProfile.Validate(); err != nil {
		return fmt.Errorf("web profile: %w", err)
	}
	if err := b.cfg.printProfile.Validate(); err != nil {
		return fmt.Errorf("print profile: %w", err)
	}
	if b.cfg.paper.Width <= 0 || b.cfg.paper.Height <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidPaper, b.cfg.paper.Name)
	}
	return nil
}

// wireBackends creates every collaborator not injected by options and
// records the tools they need.
func (b *Builder) wireBackends() {
	tools := b.cfg.tools.withDefaults()
	runner := &timeoutRunner{runner: b.runner, timeout: b.cfg.timeout}

	if b.renderer == nil {
		switch b.cfg.backends.Render {
		case BackendChrome:
			chrome := newChromeRenderer(b.cfg.timeout)
			b.renderer = chrome
			b.closers = append(b.closers, chrome)
		default:
			b.renderer = &inkscapeRenderer{runner: runner, bin: tools.Inkscape, legacy: tools.InkscapeLegacy}
			b.required = append(b.required, tools.Inkscape)
		}
	}

	if b.compositor == nil {
		switch b.cfg.backends.Compose {
		case BackendNative:
			b.compositor = &nativeCompositor{paper: b.cfg.paper}
		default:
			b.compositor = &pdfnupCompositor{runner: runner, bin: tools.Pdfnup, paper: b.cfg.paper}
			b.required = append(b.required, tools.Pdfnup)
		}
	}

	if b.concatenator == nil {
		switch b.cfg.backends.Concat {
		case BackendNative:
			b.concatenator = &nativeConcatenator{}
		default:
			b.concatenator = &pdfuniteConcatenator{runner: runner, bin: tools.Pdfunite}
			b.required = append(b.required, tools.Pdfunite)
		}
	}

	if b.reducer == nil {
		b.reducer = &ps2pdfReducer{runner: runner, bin: tools.Ps2pdf}
		b.required = append(b.required, tools.Ps2pdf)
	}
}

// RequiredTools lists the external binaries this builder will invoke.
func (b *Builder) RequiredTools() []string {
	return append([]string(nil), b.required...)
}

// Check verifies every required external tool is on PATH.
// Returns a *ToolError (matching ErrMissingTool) naming all missing tools.
func (b *Builder) Check() error {
	return CheckTools(b.required, b.lookPath)
}

// Plan loads the pages of dir and computes both sheet plans.
// It has no side effects.
func (b *Builder) Plan(dir string) (*Plans, []Page, error) {
	pages, err := LoadPages(dir, b.cfg.pattern, b.cfg.marker)
	if err != nil {
		return nil, nil, err
	}
	plans, err := Impose(pages)
	if err != nil {
		return nil, nil, err
	}
	return plans, pages, nil
}

// Layout locates the directories of one build.
type Layout struct {
	Root  string // output root, wiped at the start of each build
	PDF   string // rendered single pages
	Web   string // reader sheets and web composites
	Print string // signature sheets and print composites
}

// NewLayout returns the layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{
		Root:  root,
		PDF:   filepath.Join(root, pdfDirName),
		Web:   filepath.Join(root, string(TargetWeb)),
		Print: filepath.Join(root, string(TargetPrint)),
	}
}

// dir returns the directory holding the sheets of target.
func (l Layout) dir(t Target) string {
	if t == TargetPrint {
		return l.Print
	}
	return l.Web
}

// TargetResult lists the files produced for one target.
type TargetResult struct {
	Target  Target
	Profile Profile
	Sheets  []string // sheet documents in plan order
	Raw     string   // concatenated document
	Final   string   // reduced artifact
}

// Result summarizes a successful build.
type Result struct {
	Layout   Layout
	Plans    *Plans
	Web      TargetResult
	Print    TargetResult
	Duration time.Duration
}

// Build runs the whole pipeline for the drawings in srcDir.
// outDir defaults to <srcDir>/output and is wiped before rendering starts.
//
// Tool availability and the page set are checked before anything is
// deleted, so a missing tool or a malformed file name never destroys the
// output of a previous run. A failing step aborts the build and leaves
// partial output in place for inspection.
func (b *Builder) Build(ctx context.Context, srcDir, outDir string) (*Result, error) {
	start := time.Now()

	if err := b.Check(); err != nil {
		return nil, err
	}

	plans, pages, err := b.Plan(srcDir)
	if err != nil {
		return nil, err
	}
	b.log.Info("imposed pages", "pages", plans.Pages,
		"reader", plans.Reader.String(), "signature", plans.Signature.String())

	if outDir == "" {
		outDir = filepath.Join(srcDir, DefaultOutputDirName)
	}
	layout, err := prepareOutput(srcDir, outDir)
	if err != nil {
		return nil, err
	}

	workers := ResolvePoolSize(b.cfg.workers)
	b.log.Info("rendering pages", "pages", len(pages), "workers", workers)
	if err := renderPages(ctx, b.renderer, pages, layout.PDF, workers, b.log); err != nil {
		return nil, err
	}

	result := &Result{Layout: layout, Plans: plans}

	result.Web, err = b.buildTarget(ctx, plans.Reader, pages, layout, b.cfg.webProfile)
	if err != nil {
		return nil, err
	}
	result.Print, err = b.buildTarget(ctx, plans.Signature, pages, layout, b.cfg.printProfile)
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	b.log.Info("build complete", "output", layout.Root, "duration", result.Duration.Round(time.Millisecond))
	return result, nil
}

// buildTarget composes, assembles and reduces one plan.
func (b *Builder) buildTarget(ctx context.Context, plan SheetPlan, pages []Page, layout Layout, profile Profile) (TargetResult, error) {
	res := TargetResult{Target: plan.Target, Profile: profile}
	dir := layout.dir(plan.Target)

	var err error
	b.log.Info("composing sheets", "target", plan.Target, "sheets", len(plan.Sheets))
	if res.Sheets, err = composeSheets(ctx, b.compositor, plan, pages, dir, b.log); err != nil {
		return res, err
	}

	b.log.Info("assembling", "target", plan.Target)
	if res.Raw, err = assemble(ctx, b.concatenator, plan.Target, res.Sheets, dir); err != nil {
		return res, err
	}

	b.log.Info("reducing", "target", plan.Target, "profile", profile)
	if res.Final, err = reduce(ctx, b.reducer, plan.Target, profile, res.Raw); err != nil {
		return res, err
	}
	return res, nil
}

// prepareOutput wipes and recreates the output tree. It refuses an output
// root that contains the source directory.
func prepareOutput(srcDir, outDir string) (Layout, error) {
	src, err := filepath.Abs(srcDir)
	if err != nil {
		return Layout{}, fmt.Errorf("resolving source directory: %w", err)
	}
	out, err := filepath.Abs(outDir)
	if err != nil {
		return Layout{}, fmt.Errorf("resolving output directory: %w", err)
	}
	if fileutil.IsWithin(out, src) {
		return Layout{}, fmt.Errorf("%w: %s contains %s", ErrUnsafeOutputDir, out, src)
	}

	layout := NewLayout(out)
	if err := fileutil.ResetDir(layout.Root); err != nil {
		return Layout{}, fmt.Errorf("preparing output directory: %w", err)
	}
	for _, dir := range []string{layout.PDF, layout.Web, layout.Print} {
		if err := fileutil.EnsureDir(dir); err != nil {
			return Layout{}, fmt.Errorf("preparing output directory: %w", err)
		}
	}
	return layout, nil
}

// Close releases resources (headless Chrome when the chrome backend is used).
func (b *Builder) Close() error {
	var errs []error
	for _, c := range b.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// timeoutRunner bounds every command with its own deadline.
type timeoutRunner struct {
	runner  Runner
	timeout time.Duration
}

func (r *timeoutRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	stdout, stderr, err := r.runner.Run(ctx, name, args...)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		// The killed process only reports a signal; keep the deadline matchable.
		err = fmt.Errorf("timed out after %v: %w", r.timeout, context.DeadlineExceeded)
	}
	return stdout, stderr, err
}
