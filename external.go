package booklet

import (
	"context"
	"fmt"
	"sort"
)

// Default external tool names, looked up on PATH.
const (
	ToolInkscape = "inkscape"
	ToolPdfnup   = "pdfnup"
	ToolPdfunite = "pdfunite"
	ToolPs2pdf   = "ps2pdf"
)

// Tools holds the binaries used by the exec backends.
// Empty fields fall back to the default names.
type Tools struct {
	Inkscape string
	Pdfnup   string
	Pdfunite string
	Ps2pdf   string

	// InkscapeLegacy selects the 0.92 command line (--file/--export-pdf).
	InkscapeLegacy bool
}

// withDefaults returns t with empty binaries replaced by default names.
func (t Tools) withDefaults() Tools {
	if t.Inkscape == "" {
		t.Inkscape = ToolInkscape
	}
	if t.Pdfnup == "" {
		t.Pdfnup = ToolPdfnup
	}
	if t.Pdfunite == "" {
		t.Pdfunite = ToolPdfunite
	}
	if t.Ps2pdf == "" {
		t.Ps2pdf = ToolPs2pdf
	}
	return t
}

// Backend names.
const (
	BackendInkscape = "inkscape" // render: exec inkscape
	BackendChrome   = "chrome"   // render: headless Chrome via go-rod
	BackendPdfnup   = "pdfnup"   // compose: exec pdfnup (pdfjam)
	BackendPdfunite = "pdfunite" // concat: exec pdfunite (poppler)
	BackendNative   = "native"   // compose/concat: in-process gofpdf
)

// Backends selects the implementation of each external collaborator.
// The size reducer always runs ps2pdf.
type Backends struct {
	Render  string
	Compose string
	Concat  string
}

// DefaultBackends mirrors the classic toolchain: inkscape, pdfnup, pdfunite, ps2pdf.
func DefaultBackends() Backends {
	return Backends{Render: BackendInkscape, Compose: BackendPdfnup, Concat: BackendPdfunite}
}

// Validate checks every backend name.
func (b Backends) Validate() error {
	switch b.Render {
	case BackendInkscape, BackendChrome:
	default:
		return fmt.Errorf("%w: render %q (must be inkscape or chrome)", ErrInvalidBackend, b.Render)
	}
	switch b.Compose {
	case BackendPdfnup, BackendNative:
	default:
		return fmt.Errorf("%w: compose %q (must be pdfnup or native)", ErrInvalidBackend, b.Compose)
	}
	switch b.Concat {
	case BackendPdfunite, BackendNative:
	default:
		return fmt.Errorf("%w: concat %q (must be pdfunite or native)", ErrInvalidBackend, b.Concat)
	}
	return nil
}

// RequiredTools lists the binaries the backends need on PATH, sorted.
func (b Backends) RequiredTools(t Tools) []string {
	t = t.withDefaults()
	set := map[string]bool{t.Ps2pdf: true}
	if b.Render == BackendInkscape {
		set[t.Inkscape] = true
	}
	if b.Compose == BackendPdfnup {
		set[t.Pdfnup] = true
	}
	if b.Concat == BackendPdfunite {
		set[t.Pdfunite] = true
	}

	tools := make([]string, 0, len(set))
	for name := range set {
		tools = append(tools, name)
	}
	sort.Strings(tools)
	return tools
}

// CheckTools reports every tool missing from PATH in a single *ToolError.
func CheckTools(tools []string, lookPath func(string) (string, error)) error {
	var missing []string
	for _, name := range tools {
		if _, err := lookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ToolError{Tools: missing}
	}
	return nil
}

// inkscapeRenderer converts one SVG to a single-page PDF with Inkscape.
type inkscapeRenderer struct {
	runner Runner
	bin    string
	legacy bool
}

func (r *inkscapeRenderer) Render(ctx context.Context, src, dst string) error {
	args := []string{"--export-type=pdf", "--export-filename=" + dst, src}
	if r.legacy {
		args = []string{"--without-gui", "--file=" + src, "--export-pdf=" + dst}
	}
	return runTool(ctx, r.runner, r.bin, args...)
}

// pdfnupCompositor places two pages side by side with pdfjam's pdfnup.
type pdfnupCompositor struct {
	runner Runner
	bin    string
	paper  Paper
}

func (c *pdfnupCompositor) Compose(ctx context.Context, left, right, dst string) error {
	return runTool(ctx, c.runner, c.bin,
		"--"+c.paper.Name+"paper", "--nup", "2x1", "--outfile", dst, left, right)
}

// pdfuniteConcatenator joins documents with poppler's pdfunite.
type pdfuniteConcatenator struct {
	runner Runner
	bin    string
}

func (c *pdfuniteConcatenator) Concat(ctx context.Context, inputs []string, dst string) error {
	args := make([]string, 0, len(inputs)+1)
	args = append(args, inputs...)
	args = append(args, dst)
	return runTool(ctx, c.runner, c.bin, args...)
}

// ps2pdfReducer rewrites a document through Ghostscript's ps2pdf.
type ps2pdfReducer struct {
	runner Runner
	bin    string
}

func (r *ps2pdfReducer) Reduce(ctx context.Context, profile Profile, src, dst string) error {
	return runTool(ctx, r.runner, r.bin, "-dPDFSETTINGS=/"+string(profile), src, dst)
}
