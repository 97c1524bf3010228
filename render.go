package scribe

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/S123MR/Scribe-AI/internal/fileutil"
)

// pageRenderer abstracts HTML rasterization to allow testing without a
// browser. RenderPNG screenshots a single page document; RenderPDF prints a
// combined multi-page document.
type pageRenderer interface {
	RenderPNG(ctx context.Context, htmlContent string, widthPx, heightPx int) ([]byte, error)
	RenderPDF(ctx context.Context, htmlContent string, paperWidthIn, paperHeightIn float64) ([]byte, error)
	Close() error
}

// Compile-time interface check
var _ pageRenderer = (*rodRenderer)(nil)

// cssPixelsPerInch converts the paginator's CSS-pixel geometry to the
// physical paper size Chrome expects.
const cssPixelsPerInch = 96.0

// screenshotScale oversamples page screenshots for crisper strokes.
const screenshotScale = 2.0

// rodRenderer rasterizes pages with headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// openPage writes the HTML to a temp file and loads it in a fresh tab.
// The caller must close the returned page and call cleanup.
func (r *rodRenderer) openPage(ctx context.Context, htmlContent string) (*rod.Page, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			page.Close()
			cleanup()
			return nil, nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		page.Close()
		cleanup()
		return nil, nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	return page, cleanup, nil
}

// RenderPNG screenshots one page document at the given viewport.
func (r *rodRenderer) RenderPNG(ctx context.Context, htmlContent string, widthPx, heightPx int) ([]byte, error) {
	page, cleanup, err := r.openPage(ctx, htmlContent)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             widthPx,
		Height:            heightPx,
		DeviceScaleFactor: screenshotScale,
		Mobile:            false,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return data, nil
}

// RenderPDF prints the combined document onto paper matching the page
// geometry. Margins are zero because the page divs carry their own padding.
func (r *rodRenderer) RenderPDF(ctx context.Context, htmlContent string, paperWidthIn, paperHeightIn float64) ([]byte, error) {
	page, cleanup, err := r.openPage(ctx, htmlContent)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	defer page.Close()

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthIn),
		PaperHeight:     floatPtr(paperHeightIn),
		MarginTop:       floatPtr(0),
		MarginBottom:    floatPtr(0),
		MarginLeft:      floatPtr(0),
		MarginRight:     floatPtr(0),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrRender, err)
	}
	return pdfBuf, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
