package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"

	"nk-catalog/metrics"
	"nk-catalog/models"
)

// Views reported in render metrics and logs
const (
	ViewCatalog = "catalog"
	ViewAll     = "all"
	ViewPosted  = "posted"
)

// CatalogService renders the catalog and exports it through a headless browser
type CatalogService struct {
	baseURL    string // where the running server serves GET / (e.g. "http://localhost:8080")
	chromePath string
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(baseURL, chromePath string) *CatalogService {
	return &CatalogService{
		baseURL:    baseURL,
		chromePath: chromePath,
	}
}

// Ensure CatalogService implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogService)(nil)

// detectChromePath returns the configured Chrome/Chromium path when it exists,
// otherwise the first common installation path found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		log.Printf("⚠️  CHROME_PATH %q not found, falling back to auto-detection", configured)
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Render renders a catalog page and records it under the given view name
func (s *CatalogService) Render(view string, catalog models.CatalogPage) (string, error) {
	render := RenderCatalogHTML
	if view == ViewAll {
		render = RenderDebugCatalogHTML
	}

	html, err := render(catalog.Products, catalog.TotalItems)
	if err != nil {
		log.Printf("❌ Render: view=%s: %v", view, err)
		return "", err
	}

	metrics.CatalogRendersTotal.WithLabelValues(view).Inc()
	metrics.CatalogProductsRendered.Observe(float64(len(catalog.Products)))
	log.WithFields(log.Fields{"view": view, "products": len(catalog.Products)}).Debug("catalog rendered")
	log.Printf("📄 Rendered %d products (view=%s)", len(catalog.Products), view)
	return html, nil
}

// RenderError renders the error page
func (s *CatalogService) RenderError(message string) (string, error) {
	return RenderErrorHTML(message)
}

// newBrowserContext starts a headless browser bound to ctx
func (s *CatalogService) newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	return browserCtx, func() {
		browserCancel()
		allocCancel()
	}
}

// GeneratePDF prints the live catalog page to PDF
func (s *CatalogService) GeneratePDF(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	browserCtx, browserCancel := s.newBrowserContext(ctx)
	defer browserCancel()

	renderURL := s.baseURL + "/"
	log.Printf("🖨️  GeneratePDF: rendering %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(1280, 2000),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready`, nil),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 portrait
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✅ GeneratePDF: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}

// GeneratePreview captures the first screen of the catalog page as an optimized JPEG
func (s *CatalogService) GeneratePreview(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	browserCtx, browserCancel := s.newBrowserContext(ctx)
	defer browserCancel()

	renderURL := s.baseURL + "/"
	log.Printf("📸 GeneratePreview: rendering %s", renderURL)

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(1280, 900),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready`, nil),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}

	return OptimizeImage(buf, PreviewSizeMedium)
}
