package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"causalflow/core"
	"causalflow/logging"
)

const defaultPNGTimeout = 30 * time.Second

// PNGExporter rasterises the SVG drawing with headless Chrome
type PNGExporter struct {
	svg     *SVGExporter
	Timeout time.Duration
	// AllocatorOptions are appended to the chromedp defaults
	AllocatorOptions []chromedp.ExecAllocatorOption
}

// NewPNGExporter creates a PNG exporter drawing through svg
func NewPNGExporter(svg *SVGExporter) *PNGExporter {
	return &PNGExporter{svg: svg, Timeout: defaultPNGTimeout}
}

// Export renders the model with a background context
func (e *PNGExporter) Export(m *core.Model) ([]byte, error) {
	return e.ExportContext(context.Background(), m)
}

// ExportContext loads the SVG as a data URI and screenshots the svg element
func (e *PNGExporter) ExportContext(ctx context.Context, m *core.Model) ([]byte, error) {
	svg, err := e.svg.Export(m)
	if err != nil {
		return nil, fmt.Errorf("failed to generate intermediate SVG: %w", err)
	}
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg)

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	opts = append(opts, e.AllocatorOptions...)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		browserCtx, cancel = context.WithTimeout(browserCtx, e.Timeout)
		defer cancel()
	}

	var buf []byte
	logging.Debugf("rendering %d byte SVG with chromedp", len(svg))
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &buf, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("screenshot buffer is empty, screenshot failed")
	}
	return buf, nil
}

// FileExtension returns the PNG extension
func (e *PNGExporter) FileExtension() string {
	return ".png"
}

// FormatName returns the display name
func (e *PNGExporter) FormatName() string {
	return "PNG"
}
