package booklet

import (
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
	realgofpdi "github.com/phpdave11/gofpdi"
)

// importBox is the page box imported from source documents.
const importBox = "/MediaBox"

// nativeCompositor lays two pages out 2x1 on a landscape sheet without
// leaving the process. Each page is scaled to fit its half and centered,
// matching pdfnup's default layout.
type nativeCompositor struct {
	paper Paper
}

func (c *nativeCompositor) Compose(ctx context.Context, left, right, dst string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer recoverImport(&err)

	sheetW, sheetH := c.paper.Landscape()
	half := sheetW / 2

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: sheetW, Ht: sheetH})

	imp := gofpdi.NewImporter()
	for i, src := range []string{left, right} {
		tplID, w, h := importFirstPage(pdf, imp, src)
		if w <= 0 || h <= 0 {
			return fmt.Errorf("%s: page has no size", src)
		}
		scale := min(half/w, sheetH/h)
		dw, dh := w*scale, h*scale
		x := float64(i)*half + (half-dw)/2
		y := (sheetH - dh) / 2
		imp.UseImportedTemplate(pdf, tplID, x, y, dw, dh)
	}

	return pdf.OutputFileAndClose(dst)
}

// nativeConcatenator appends every page of every input, keeping page sizes.
type nativeConcatenator struct{}

func (c *nativeConcatenator) Concat(ctx context.Context, inputs []string, dst string) (err error) {
	if len(inputs) == 0 {
		return fmt.Errorf("no input documents")
	}
	defer recoverImport(&err)

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	imp := gofpdi.NewImporter()

	for _, src := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := pageCount(src)
		for p := 1; p <= n; p++ {
			tplID := imp.ImportPage(pdf, src, p, importBox)
			w, h := pageSize(imp, p)
			if w <= 0 || h <= 0 {
				return fmt.Errorf("%s: page %d has no size", src, p)
			}
			pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
			imp.UseImportedTemplate(pdf, tplID, 0, 0, w, h)
		}
	}

	return pdf.OutputFileAndClose(dst)
}

// importFirstPage imports page 1 of src as a template and returns its size in points.
func importFirstPage(pdf *gofpdf.Fpdf, imp *gofpdi.Importer, src string) (tplID int, w, h float64) {
	tplID = imp.ImportPage(pdf, src, 1, importBox)
	w, h = pageSize(imp, 1)
	return tplID, w, h
}

// pageSize reads the box of page n of the most recently imported file.
func pageSize(imp *gofpdi.Importer, n int) (w, h float64) {
	if dims, ok := imp.GetPageSizes()[n]; ok {
		if box, ok := dims[importBox]; ok {
			return box["w"], box["h"]
		}
	}
	return 0, 0
}

// pageCount returns the number of pages in src. Setting the source file
// reads the page tree, which records a size for every page.
func pageCount(src string) int {
	imp := realgofpdi.NewImporter()
	imp.SetSourceFile(src)
	return len(imp.GetPageSizes())
}

// recoverImport turns gofpdi's panics on unreadable documents into errors.
func recoverImport(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("reading PDF: %v", r)
	}
}
