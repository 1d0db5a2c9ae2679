// Package rendering turns HTML documents into PDFs with headless Chrome.
package rendering

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/storefront/platform/internal/domain/content"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 30 * time.Second

	// A4 in inches
	a4Width  = 8.27
	a4Height = 11.69
	margin   = 0.4
)

// ErrEmptyDocument is returned for blank HTML
var ErrEmptyDocument = errors.New("html document is empty")

// ChromedpConfig contains configuration for the chromedp renderer
type ChromedpConfig struct {
	// ExecPath points at a Chrome binary; empty lets chromedp find one
	ExecPath string
	// RemoteURL is the DevTools URL of a running Chrome; overrides ExecPath
	RemoteURL string
	Timeout   time.Duration
	// NoSandbox is required when running as root in containers
	NoSandbox bool
	Logger    *zap.Logger
}

// ChromedpRenderer renders HTML to PDF using the Chrome DevTools Protocol.
// One browser allocator is shared; each render opens its own tab.
type ChromedpRenderer struct {
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

var _ content.Renderer = (*ChromedpRenderer)(nil)

// NewChromedpRenderer creates a new chromedp-based PDF renderer
func NewChromedpRenderer(cfg ChromedpConfig) *ChromedpRenderer {
	r := &ChromedpRenderer{
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
	if r.timeout <= 0 {
		r.timeout = defaultTimeout
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// RenderPDF prints an HTML document to an A4 PDF
func (r *ChromedpRenderer) RenderPDF(ctx context.Context, doc string) ([]byte, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, ErrEmptyDocument
	}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tabCtx, tabCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer tabCancel()

	// Cancel the tab with the caller's context.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	full := wrapDocument(doc)
	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, full).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("pdf rendering timed out after %v: %w", r.timeout, err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	if len(pdf) == 0 {
		return nil, errors.New("generated pdf is empty")
	}

	r.logger.Info("PDF rendered",
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)))
	return pdf, nil
}

// Close shuts down the browser
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

// wrapDocument turns an HTML fragment into a complete UTF-8 document
func wrapDocument(doc string) string {
	lower := strings.ToLower(doc)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return doc
	}
	var buf bytes.Buffer
	buf.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8"></head><body>`)
	buf.WriteString(doc)
	buf.WriteString(`</body></html>`)
	return buf.String()
}
