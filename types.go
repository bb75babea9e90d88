package booklet

import (
	"fmt"
	"strings"
)

// MinPages is the smallest page count that can be imposed: a front and a back cover.
const MinPages = 2

// Page is one logical page of the booklet.
type Page struct {
	Index    int    // 0-based position in reading order
	Ordinal  int    // number parsed from the file name
	Name     string // source file base name
	Source   string // path to the source drawing
	Rendered string // path to the rendered single-page PDF (set by the render stage)
}

// SheetKind distinguishes standalone pages from side-by-side pairs.
type SheetKind int

const (
	// CoverSheet carries exactly one page, placed standalone.
	CoverSheet SheetKind = iota
	// SpreadSheet carries two pages, left then right.
	SpreadSheet
)

func (k SheetKind) String() string {
	switch k {
	case CoverSheet:
		return "cover"
	case SpreadSheet:
		return "spread"
	}
	return fmt.Sprintf("SheetKind(%d)", int(k))
}

// SheetSpec is one physical output sheet.
type SheetSpec struct {
	Position int       // 0-based order in its plan
	Kind     SheetKind // cover or spread
	Pages    []int     // page indices, left to right
}

// Cover returns a sheet carrying page i alone.
func Cover(i int) SheetSpec {
	return SheetSpec{Kind: CoverSheet, Pages: []int{i}}
}

// Spread returns a sheet carrying left and right side by side.
func Spread(left, right int) SheetSpec {
	return SheetSpec{Kind: SpreadSheet, Pages: []int{left, right}}
}

// String formats the sheet as "cover(0)" or "spread(1,2)".
func (s SheetSpec) String() string {
	parts := make([]string, len(s.Pages))
	for i, p := range s.Pages {
		parts[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("%s(%s)", s.Kind, strings.Join(parts, ","))
}

// FileName is the name of the rendered sheet inside its target directory.
// Names sort in plan order.
func (s SheetSpec) FileName() string {
	return fmt.Sprintf("sheet-%03d.pdf", s.Position)
}

// Target identifies one of the two output booklets.
type Target string

// Output targets.
const (
	TargetWeb   Target = "web"   // sequential reading order
	TargetPrint Target = "print" // saddle-stitch imposition
)

// SheetPlan is the ordered list of sheets for one target.
type SheetPlan struct {
	Target Target
	Sheets []SheetSpec
}

// add appends s, stamping its position.
func (p *SheetPlan) add(s SheetSpec) {
	s.Position = len(p.Sheets)
	p.Sheets = append(p.Sheets, s)
}

// String formats the plan as "[cover(0) spread(1,2) cover(3)]".
func (p SheetPlan) String() string {
	parts := make([]string, len(p.Sheets))
	for i, s := range p.Sheets {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Plans holds both sheet orderings computed from one page sequence.
type Plans struct {
	Pages     int
	Reader    SheetPlan
	Signature SheetPlan
}

// Profile is a size-reduction quality preset (Ghostscript PDFSETTINGS name).
type Profile string

// Quality profiles.
const (
	ProfileScreen   Profile = "screen"
	ProfileEbook    Profile = "ebook"
	ProfilePrinter  Profile = "printer"
	ProfilePrepress Profile = "prepress"
	ProfileDefault  Profile = "default"
)

// Validate checks that p is a known profile.
func (p Profile) Validate() error {
	switch p {
	case ProfileScreen, ProfileEbook, ProfilePrinter, ProfilePrepress, ProfileDefault:
		return nil
	}
	return fmt.Errorf("%w: %q (must be screen, ebook, printer, prepress or default)", ErrInvalidProfile, string(p))
}

// Paper is an output sheet size in points, portrait orientation.
type Paper struct {
	Name   string
	Width  float64
	Height float64
}

// Known paper sizes.
var (
	PaperA3     = Paper{Name: "a3", Width: 841.89, Height: 1190.55}
	PaperA4     = Paper{Name: "a4", Width: 595.28, Height: 841.89}
	PaperLetter = Paper{Name: "letter", Width: 612, Height: 792}
)

// ParsePaper resolves a paper name (case-insensitive).
func ParsePaper(name string) (Paper, error) {
	switch strings.ToLower(name) {
	case PaperA3.Name:
		return PaperA3, nil
	case PaperA4.Name:
		return PaperA4, nil
	case PaperLetter.Name:
		return PaperLetter, nil
	}
	return Paper{}, fmt.Errorf("%w: %q (must be a3, a4 or letter)", ErrInvalidPaper, name)
}

// Landscape returns the sheet width and height with the long side horizontal.
func (p Paper) Landscape() (w, h float64) {
	if p.Width > p.Height {
		return p.Width, p.Height
	}
	return p.Height, p.Width
}
