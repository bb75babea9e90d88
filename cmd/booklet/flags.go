package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// sourceFlags select and order the drawings.
type sourceFlags struct {
	pattern string
	marker  string
}

// backendFlags choose the implementation of each stage.
type backendFlags struct {
	render         string
	compose        string
	concat         string
	inkscapeLegacy bool
}

// profileFlags hold the size-reduction presets.
type profileFlags struct {
	web   string
	print string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common   commonFlags
	output   string
	workers  int
	timeout  string
	paper    string
	source   sourceFlags
	backends backendFlags
	profiles profileFlags
}

// planFlags holds flags for the plan command.
type planFlags struct {
	build  buildFlags // only common and source flags are registered
	format string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every stage and command")
}

// addSourceFlags adds page selection flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags) {
	fs.StringVar(&f.pattern, "pattern", "", "glob selecting drawings (default \"*.svg\")")
	fs.StringVar(&f.marker, "marker", "", "token before the page number (default \"p\")")
}

// addBackendFlags adds backend selection flags to a FlagSet.
func addBackendFlags(fs *flag.FlagSet, f *backendFlags) {
	fs.StringVar(&f.render, "render", "", "render backend: inkscape, chrome")
	fs.StringVar(&f.compose, "compose", "", "compose backend: pdfnup, native")
	fs.StringVar(&f.concat, "concat", "", "concat backend: pdfunite, native")
	fs.BoolVar(&f.inkscapeLegacy, "legacy", false, "use the Inkscape 0.92 command line")
}

// addProfileFlags adds quality profile flags to a FlagSet.
func addProfileFlags(fs *flag.FlagSet, f *profileFlags) {
	fs.StringVar(&f.web, "web-profile", "", "web quality: screen, ebook, printer, prepress, default")
	fs.StringVar(&f.print, "print-profile", "", "print quality: screen, ebook, printer, prepress, default")
}

// parseBuildFlags parses build command flags and returns positional args.
// Usage goes to usage when -h is given or parsing fails.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &buildFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory (wiped on every build)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent renders (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per tool timeout (e.g., 90s, 5m)")
	fs.StringVarP(&f.paper, "paper", "p", "", "sheet size: a3, a4, letter")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)
	addBackendFlags(fs, &f.backends)
	addProfileFlags(fs, &f.profiles)

	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parsePlanFlags parses plan command flags and returns positional args.
func parsePlanFlags(args []string, usage io.Writer) (*planFlags, []string, error) {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &planFlags{}

	fs.StringVarP(&f.format, "format", "f", formatText, "output format: text, yaml, json")
	addCommonFlags(fs, &f.build.common)
	addSourceFlags(fs, &f.build.source)

	fs.Usage = func() { printPlanUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
