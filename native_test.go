package booklet

// Notes:
// - Input documents are generated with gofpdf, so the native backends run
//   end to end without any external tool.
// - Layout geometry is not inspected; page counts and sheet sizes are.

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
)

// createTestPDF writes a document of numPages pages of w x h points.
func createTestPDF(t *testing.T, path string, numPages int, w, h float64) {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 1; i <= numPages; i++ {
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		pdf.Text(10, 20, fmt.Sprintf("%s page %d", filepath.Base(path), i))
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("creating test PDF: %v", err)
	}
}

// firstPageSize imports page 1 of path and returns its size in points.
func firstPageSize(t *testing.T, path string) (w, h float64) {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	_, w, h = importFirstPage(pdf, gofpdi.NewImporter(), path)
	return w, h
}

func near(a, b float64) bool { return math.Abs(a-b) < 0.5 }

// ---------------------------------------------------------------------------
// TestNativeCompositor - 2x1 sheets without pdfnup
// ---------------------------------------------------------------------------

func TestNativeCompositor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		paper Paper
	}{
		{"a3", PaperA3},
		{"a4", PaperA4},
		{"letter", PaperLetter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			left := filepath.Join(dir, "p1.pdf")
			right := filepath.Join(dir, "p2.pdf")
			dst := filepath.Join(dir, "sheet-000.pdf")
			createTestPDF(t, left, 1, PaperA4.Width, PaperA4.Height)
			createTestPDF(t, right, 1, 300, 500)

			c := &nativeCompositor{paper: tt.paper}
			if err := c.Compose(context.Background(), left, right, dst); err != nil {
				t.Fatalf("Compose() error = %v", err)
			}

			if n := pageCount(dst); n != 1 {
				t.Errorf("sheet has %d pages, want 1", n)
			}
			w, h := firstPageSize(t, dst)
			wantW, wantH := tt.paper.Landscape()
			if !near(w, wantW) || !near(h, wantH) {
				t.Errorf("sheet size = %.2fx%.2f, want %.2fx%.2f", w, h, wantW, wantH)
			}
		})
	}
}

func TestNativeCompositor_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "p1.pdf")
	createTestPDF(t, good, 1, 200, 200)
	garbage := filepath.Join(dir, "p2.pdf")
	if err := os.WriteFile(garbage, []byte("not a pdf"), 0o600); err != nil {
		t.Fatal(err)
	}

	c := &nativeCompositor{paper: PaperA3}
	if err := c.Compose(context.Background(), good, garbage, filepath.Join(dir, "out.pdf")); err == nil {
		t.Error("Compose(garbage) error = nil, want error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Compose(ctx, good, good, filepath.Join(dir, "out.pdf")); !errors.Is(err, context.Canceled) {
		t.Errorf("Compose(canceled) error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestNativeConcatenator - Concatenation without pdfunite
// ---------------------------------------------------------------------------

func TestNativeConcatenator(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "sheet-000.pdf")
	b := filepath.Join(dir, "sheet-001.pdf")
	c := filepath.Join(dir, "sheet-002.pdf")
	createTestPDF(t, a, 1, PaperA4.Width, PaperA4.Height)
	createTestPDF(t, b, 2, 1190.55, 841.89)
	createTestPDF(t, c, 1, PaperA4.Width, PaperA4.Height)

	dst := filepath.Join(dir, "web_raw.pdf")
	if err := (&nativeConcatenator{}).Concat(context.Background(), []string{a, b, c}, dst); err != nil {
		t.Fatalf("Concat() error = %v", err)
	}

	if n := pageCount(dst); n != 4 {
		t.Errorf("document has %d pages, want 4", n)
	}
	// First page keeps its own size.
	if w, h := firstPageSize(t, dst); !near(w, PaperA4.Width) || !near(h, PaperA4.Height) {
		t.Errorf("first page size = %.2fx%.2f, want A4 portrait", w, h)
	}
}

func TestPageCount(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, n := range []int{1, 3, 7} {
		path := filepath.Join(dir, fmt.Sprintf("doc-%d.pdf", n))
		createTestPDF(t, path, n, 300, 400)
		if got := pageCount(path); got != n {
			t.Errorf("pageCount(%d-page document) = %d", n, got)
		}
	}
}

func TestNativeConcatenator_NoInputs(t *testing.T) {
	t.Parallel()

	err := (&nativeConcatenator{}).Concat(context.Background(), nil, filepath.Join(t.TempDir(), "out.pdf"))
	if err == nil {
		t.Error("Concat(nil) error = nil, want error")
	}
}
