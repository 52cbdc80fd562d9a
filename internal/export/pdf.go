// Package export turns the print view of the portfolio into a PDF résumé.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

var ErrDisabled = errors.New("export: pdf rendering disabled")

// Renderer converts a complete HTML document to PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer prints HTML with a headless Chrome instance started per
// call.
type ChromeRenderer struct {
	execPath string
	timeout  time.Duration
}

// NewChromeRenderer uses the Chrome binary at execPath, or chromedp's
// default lookup when empty.
func NewChromeRenderer(execPath string) *ChromeRenderer {
	return &ChromeRenderer{execPath: execPath, timeout: 60 * time.Second}
}

func (r *ChromeRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()
	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()
	runCtx, cancelRun := context.WithTimeout(cctx, r.timeout)
	defer cancelRun()

	dir, err := os.MkdirTemp("", "portfolio-pdf-")
	if err != nil {
		return nil, fmt.Errorf("pdf temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	htmlPath := filepath.Join(dir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("pdf temp file: %w", err)
	}

	var buf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return buf, nil
}

// Source produces the HTML to print.
type Source func() (string, error)

// Resume renders the PDF on first request and serves the cached bytes
// afterwards. Portfolio content is fixed for the life of the process.
type Resume struct {
	renderer Renderer
	source   Source
	logger   *zap.Logger

	mu  sync.Mutex
	pdf []byte
}

func NewResume(renderer Renderer, source Source, logger *zap.Logger) *Resume {
	return &Resume{renderer: renderer, source: source, logger: logger}
}

// PDF returns the résumé, rendering it if this is the first successful call.
// Failed renders are not cached.
func (r *Resume) PDF(ctx context.Context) ([]byte, error) {
	if r == nil || r.renderer == nil {
		return nil, ErrDisabled
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pdf != nil {
		return r.pdf, nil
	}

	html, err := r.source()
	if err != nil {
		return nil, fmt.Errorf("render print view: %w", err)
	}
	start := time.Now()
	pdf, err := r.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, err
	}
	r.logger.Info("resume pdf rendered", zap.Int("bytes", len(pdf)), zap.Duration("took", time.Since(start)))
	r.pdf = pdf
	return pdf, nil
}
