package booklet

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/alnah/go-booklet/internal/fileutil"
)

// Compositor places two single-page documents side by side on one sheet.
type Compositor interface {
	Compose(ctx context.Context, left, right, dst string) error
}

// Compile-time interface checks.
var (
	_ Compositor = (*pdfnupCompositor)(nil)
	_ Compositor = (*nativeCompositor)(nil)
)

// composeSheets produces one document per sheet of plan in dir and returns
// their paths in plan order. Cover sheets are byte copies of the rendered page.
func composeSheets(ctx context.Context, c Compositor, plan SheetPlan, pages []Page, dir string, log *slog.Logger) ([]string, error) {
	sheets := make([]string, 0, len(plan.Sheets))

	for _, s := range plan.Sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dst := filepath.Join(dir, s.FileName())
		if err := composeSheet(ctx, c, s, pages, dst); err != nil {
			return nil, &StageError{Stage: StageCompose, Subject: fmt.Sprintf("%s sheet %s", plan.Target, s), Err: err}
		}

		log.Debug("composed sheet", "target", plan.Target, "sheet", s.String(), "file", dst)
		sheets = append(sheets, dst)
	}

	return sheets, nil
}

func composeSheet(ctx context.Context, c Compositor, s SheetSpec, pages []Page, dst string) error {
	switch s.Kind {
	case CoverSheet:
		return fileutil.CopyFile(pages[s.Pages[0]].Rendered, dst)
	case SpreadSheet:
		return c.Compose(ctx, pages[s.Pages[0]].Rendered, pages[s.Pages[1]].Rendered, dst)
	}
	return fmt.Errorf("unknown sheet kind %v", s.Kind)
}
