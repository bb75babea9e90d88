// Package booklet turns a directory of single-page SVG drawings into two
// PDF booklets: a "web" edition for on-screen reading and a "print" edition
// imposed for saddle-stitch folding.
//
// # Quick Start
//
// Create a builder, build, and close when done:
//
//	b, err := booklet.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	res, err := b.Build(ctx, "zine", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Web.Final, res.Print.Final)
//
// # Page Order
//
// Drawings are matched by a glob (default *.svg) and ordered by the integer
// following a marker in their name (default "p"): p1.svg, p2.svg, ..., p10.svg.
// Ordinals must be unique and consecutive. See ParseOrdinal for the exact rule.
//
// # Imposition
//
// Two sheet plans are computed from the page count before anything renders:
//
//   - ReaderPlan (web): front cover alone, interior pages paired (1,2), (3,4), ...,
//     an odd interior page alone, back cover alone.
//   - SignaturePlan (print): page i paired with page N-1-i on every sheet, so
//     the stacked, folded sheets read in order. An odd middle page comes last.
//
// Both plans are checked to reference every page exactly once.
//
// # Pipeline
//
// Build runs these stages and aborts on the first failure:
//
//  1. Check that every external tool the backends need is on PATH
//  2. Load and impose the pages
//  3. Wipe and recreate the output tree (<dir>/output by default)
//  4. Render each drawing to a single-page PDF (concurrently)
//  5. Compose one document per sheet (covers are copied, spreads are 2x1)
//  6. Concatenate the sheets into <target>_raw.pdf
//  7. Reduce it to <target>.pdf with a Ghostscript quality profile
//
// Output layout:
//
//	output/
//	├── pdf/    rendered pages
//	├── web/    reader sheets, web_raw.pdf, web.pdf
//	└── print/  signature sheets, print_raw.pdf, print.pdf
//
// # Backends
//
// The classic toolchain (inkscape, pdfnup, pdfunite, ps2pdf) is the default.
// Rendering can use headless Chrome instead of Inkscape, and composition and
// concatenation can run in-process:
//
//	b, err := booklet.NewBuilder(booklet.WithBackends(booklet.Backends{
//	    Render:  booklet.BackendChrome,
//	    Compose: booklet.BackendNative,
//	    Concat:  booklet.BackendNative,
//	}))
//
// Size reduction always needs ps2pdf. Any stage can be replaced with
// WithRenderer, WithCompositor, WithConcatenator or WithReducer.
//
// # Errors
//
// Pipeline failures are *StageError values matching ErrRenderFailed,
// ErrComposeFailed, ErrConcatFailed or ErrReduceFailed; ExitCode reports
// the failing tool's exit status. A missing tool yields a *ToolError
// (ErrMissingTool) before any file is touched.
//
// # Browser Requirements
//
// The chrome backend uses go-rod, which downloads a managed Chromium on
// first run (~/.cache/rod/browser/). For containers and CI environments, set
// ROD_NO_SANDBOX=1 to disable the Chrome sandbox. Use ROD_BROWSER_BIN to
// specify a custom Chrome binary.
package booklet
