// Package export writes models to lavaan syntax and diagram images
package export

import (
	"fmt"
	"strings"

	"causalflow/core"
	"causalflow/layout"
	"causalflow/render"
)

// Format represents an export format
type Format string

const (
	// FormatLavaan exports the regression paths as lavaan model syntax
	FormatLavaan Format = "lavaan"
	// FormatSVG exports the diagram as an SVG document
	FormatSVG Format = "svg"
	// FormatPNG exports the diagram as a PNG image rendered by headless Chrome
	FormatPNG Format = "png"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a model to the target format
	Export(m *core.Model) ([]byte, error)
	// FileExtension returns the recommended file extension for this format
	FileExtension() string
	// FormatName returns a human-readable name for this format
	FormatName() string
}

// Options control how diagrams are drawn by the image exporters
type Options struct {
	Grid     layout.Grid
	Routing  render.Routing
	SVGStyle render.SVGStyle
}

// DefaultOptions returns the pixel grid and default palette
func DefaultOptions() Options {
	return Options{
		Grid:     layout.PixelGrid(),
		Routing:  render.PixelRouting(),
		SVGStyle: render.DefaultSVGStyle(),
	}
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	return NewExporterWithOptions(format, DefaultOptions())
}

// NewExporterWithOptions creates an exporter with custom drawing options
func NewExporterWithOptions(format Format, opts Options) (Exporter, error) {
	switch format {
	case FormatLavaan:
		return NewLavaanExporter(), nil
	case FormatSVG:
		return NewSVGExporter(opts), nil
	case FormatPNG:
		return NewPNGExporter(NewSVGExporter(opts)), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "lavaan", "lav":
		return FormatLavaan, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// AvailableFormats returns a list of all available export formats
func AvailableFormats() []Format {
	return []Format{
		FormatLavaan,
		FormatSVG,
		FormatPNG,
	}
}

// FormatDescriptions returns human-readable descriptions of all formats
func FormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatLavaan: "lavaan model syntax (regressions)",
		FormatSVG:    "SVG path diagram",
		FormatPNG:    "PNG path diagram (needs Chrome or Chromium)",
	}
}

// DefaultFileName returns the file an export is written to when no output
// path is given
func DefaultFileName(e Exporter) string {
	if _, ok := e.(*LavaanExporter); ok {
		return "causalflow_model" + e.FileExtension()
	}
	return "causalflow_diagram" + e.FileExtension()
}
