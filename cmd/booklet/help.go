package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: booklet [command] [flags] [dir]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Turn numbered SVG drawings (p0.svg, p1.svg, ...) into two PDF booklets:")
	fmt.Fprintln(w, "web (reading order) and print (saddle-stitch imposition).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build both booklets (default command)")
	fmt.Fprintln(w, "  plan       Show the sheet plans without running any tool")
	fmt.Fprintln(w, "  doctor     Check external tools and system configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'booklet help <command>' for details on a specific command.")
	fmt.Fprintln(w, "A directory named like a command must be given to build: 'booklet build plan'.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: booklet build [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every page, impose both plans, and write")
	fmt.Fprintln(w, "<output>/web/web.pdf and <output>/print/print.pdf.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  dir    Directory holding the drawings (default: BOOKLET_DIR, DIR, source.dir, or .)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory, wiped on every build (default: <dir>/output)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent renders (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per tool timeout (e.g., 90s, 5m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pages:")
	fmt.Fprintln(w, "      --pattern <glob>      Drawings to include (default: *.svg)")
	fmt.Fprintln(w, "      --marker <s>          Token before the page number (default: p)")
	fmt.Fprintln(w, "  -p, --paper <s>           Sheet size: a3, a4, letter (default: a3)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Backends:")
	fmt.Fprintln(w, "      --render <s>          inkscape (default) or chrome")
	fmt.Fprintln(w, "      --compose <s>         pdfnup (default) or native")
	fmt.Fprintln(w, "      --concat <s>          pdfunite (default) or native")
	fmt.Fprintln(w, "      --legacy              Use the Inkscape 0.92 command line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Quality:")
	fmt.Fprintln(w, "      --web-profile <s>     Ghostscript preset for web.pdf (default: ebook)")
	fmt.Fprintln(w, "      --print-profile <s>   Ghostscript preset for print.pdf (default: printer)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log every stage and command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  BOOKLET_CONFIG, BOOKLET_DIR (or DIR), BOOKLET_OUTPUT_DIR, BOOKLET_PAPER,")
	fmt.Fprintln(w, "  BOOKLET_TIMEOUT, BOOKLET_WORKERS, BOOKLET_DEBUG (or DEV)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  booklet ./drawings")
	fmt.Fprintln(w, "  booklet build ./drawings -o /tmp/out --paper a4")
	fmt.Fprintln(w, "  booklet build --render chrome --compose native --concat native")
}

// printPlanUsage prints usage for the plan command.
func printPlanUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: booklet plan [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show which pages land on which sheet. Runs no external tool.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -f, --format <s>          text (default), yaml, json")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --pattern <glob>      Drawings to include (default: *.svg)")
	fmt.Fprintln(w, "      --marker <s>          Token before the page number (default: p)")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: booklet doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that inkscape, pdfnup, pdfunite and ps2pdf are on PATH,")
	fmt.Fprintln(w, "detect Chrome for --render chrome, and verify the temp directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --json    Machine-readable output")
}

// runHelp prints help for the given command, or the main usage.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdBuild:
		printBuildUsage(env.Stdout)
	case cmdPlan:
		printPlanUsage(env.Stdout)
	case cmdDoctor:
		printDoctorUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: booklet version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		printUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
