package booklet

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// PageRenderer converts one source drawing into a single-page PDF.
type PageRenderer interface {
	Render(ctx context.Context, src, dst string) error
}

// Compile-time interface checks.
var (
	_ PageRenderer = (*inkscapeRenderer)(nil)
	_ PageRenderer = (*chromeRenderer)(nil)
)

// renderedName maps "p3.svg" to "p3.pdf".
func renderedName(page Page) string {
	return strings.TrimSuffix(page.Name, filepath.Ext(page.Name)) + ".pdf"
}

// renderPages renders every page into dir with at most workers in flight.
// Results are stored by page index, so completion order never matters.
// The first failure cancels the remaining renders and is returned.
func renderPages(ctx context.Context, r PageRenderer, pages []Page, dir string, workers int, log *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			dst := filepath.Join(dir, renderedName(pages[i]))
			if err := r.Render(gctx, pages[i].Source, dst); err != nil {
				return &StageError{Stage: StageRender, Subject: pages[i].Name, Err: err}
			}

			pages[i].Rendered = dst
			log.Debug("rendered page", "page", pages[i].Index, "file", pages[i].Name,
				"duration", time.Since(start).Round(time.Millisecond))
			return nil
		})
	}

	return g.Wait()
}
