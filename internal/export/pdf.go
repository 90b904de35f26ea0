// Package export converts rendered HTML documents to PDF via a headless
// browser. Requires Chrome/Chromium to be installed on the system.
package export

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds one print job.
const DefaultTimeout = 30 * time.Second

// ToPDF loads an HTML file in a headless browser and prints it to PDF,
// writing the result next to the source with a .pdf extension. Returns the
// PDF path.
func ToPDF(ctx context.Context, htmlPath string, timeout time.Duration, verbose bool) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", htmlPath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("failed to open %s: %w", htmlPath, err)
	}

	if verbose {
		log.Printf("[EXPORT] Printing %s", abs)
	}

	// Create browser context with timeout
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	fileURL := url.URL{Scheme: "file", Path: abs}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(fileURL.String()),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			pdf, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		return "", fmt.Errorf("pdf rendering failed: %w", err)
	}

	pdfPath := strings.TrimSuffix(abs, filepath.Ext(abs)) + ".pdf"
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}

	if verbose {
		log.Printf("[EXPORT] Wrote %s (%d bytes)", pdfPath, len(pdf))
	}
	return pdfPath, nil
}
