package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	booklet "github.com/alnah/go-booklet"
	"github.com/alnah/go-booklet/internal/hints"
	flag "github.com/spf13/pflag"
)

// runBuildCmd parses flags, runs the build and returns an exit code.
func runBuildCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	if err := runBuild(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runBuild resolves settings, builds both booklets and reports the output root.
func runBuild(ctx context.Context, positional []string, flags *buildFlags, env *Environment) error {
	params, err := resolveParams(positional, flags)
	if err != nil {
		return err
	}

	builder, err := newBuilder(params, flags.common.quiet, env)
	if err != nil {
		return err
	}
	defer func() { _ = builder.Close() }()

	start := env.Now()
	result, err := builder.Build(ctx, params.srcDir, params.outDir)
	if err != nil {
		return fmt.Errorf("%w%s", err, hintFor(err, params.marker()))
	}

	if flags.common.quiet {
		return nil
	}
	if params.verbose {
		printTargetResult(env, result.Web)
		printTargetResult(env, result.Print)
		fmt.Fprintf(env.Stdout, "%d pages in %v\n", result.Plans.Pages, env.Now().Sub(start).Round(time.Millisecond))
	}
	fmt.Fprintf(env.Stdout, "Done, check %s\n", result.Layout.Root)
	return nil
}

// newBuilder creates a builder from resolved params plus the environment's
// extra options.
func newBuilder(params *buildParams, quiet bool, env *Environment) (*booklet.Builder, error) {
	opts, err := builderOptions(params.cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, booklet.WithLogger(newLogger(env.Stderr, params.verbose, quiet, env.Progress)))
	if env.LookPath != nil {
		opts = append(opts, booklet.WithLookPath(env.LookPath))
	}
	opts = append(opts, env.Options...)
	return booklet.NewBuilder(opts...)
}

// printTargetResult prints one line per produced booklet.
func printTargetResult(env *Environment, r booklet.TargetResult) {
	fmt.Fprintf(env.Stdout, "%-5s %d sheets, %s profile -> %s\n", r.Target, len(r.Sheets), r.Profile, r.Final)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, marker string) string {
	var toolErr *booklet.ToolError
	switch {
	case errors.As(err, &toolErr):
		return hints.ForMissingTool(toolErr.Tools)
	case errors.Is(err, booklet.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, booklet.ErrUnsafeOutputDir):
		return hints.ForUnsafeOutputDir()
	case errors.Is(err, booklet.ErrOrderKeyMissing),
		errors.Is(err, booklet.ErrDuplicateOrderKey),
		errors.Is(err, booklet.ErrOrdinalGap):
		return hints.ForPageNames(marker)
	case errors.Is(err, os.ErrPermission):
		return hints.ForOutputDirectory()
	}
	return ""
}
