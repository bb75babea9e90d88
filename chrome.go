package booklet

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// cssPixelsPerInch converts the drawing's CSS size to print inches.
const cssPixelsPerInch = 96.0

// measureDrawingJS returns the rendered size of the root SVG element.
const measureDrawingJS = `() => {
	const r = document.documentElement.getBoundingClientRect();
	return {w: r.width, h: r.height};
}`

// chromeRenderer prints SVG drawings to PDF with headless Chrome via go-rod.
// Rod downloads a managed Chromium on first run if none is found.
// One browser is shared; each render opens its own tab, so Render is safe
// for concurrent use.
type chromeRenderer struct {
	mu      sync.Mutex
	browser *rod.Browser
	timeout time.Duration
}

func newChromeRenderer(timeout time.Duration) *chromeRenderer {
	return &chromeRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *chromeRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return browser, nil
}

// Render loads src in a tab and prints it on a page sized to the drawing.
func (r *chromeRenderer) Render(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", src, err)
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "file://" + filepath.ToSlash(abs)})
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return context.DeadlineExceeded
		}
	}
	page = page.Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("loading %s: %w", src, err)
	}

	size, err := page.Eval(measureDrawingJS)
	if err != nil {
		return fmt.Errorf("measuring %s: %w", src, err)
	}
	w := size.Value.Get("w").Num() / cssPixelsPerInch
	h := size.Value.Get("h").Num() / cssPixelsPerInch
	if w <= 0 || h <= 0 {
		return fmt.Errorf("measuring %s: drawing has no size", src)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(w),
		PaperHeight:     floatPtr(h),
		MarginTop:       floatPtr(0),
		MarginBottom:    floatPtr(0),
		MarginLeft:      floatPtr(0),
		MarginRight:     floatPtr(0),
		PageRanges:      "1",
		PrintBackground: true,
	})
	if err != nil {
		return fmt.Errorf("printing %s: %w", src, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("reading PDF stream: %w", err)
	}

	// #nosec G306 -- rendered pages are meant to be readable
	if err := os.WriteFile(dst, pdfBuf, filePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}

// Close releases browser resources.
func (r *chromeRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
