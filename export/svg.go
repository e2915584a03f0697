package export

import (
	"fmt"

	"causalflow/core"
	"causalflow/render"
)

// SVGExporter draws the path diagram as SVG
type SVGExporter struct {
	opts Options
}

// NewSVGExporter creates a new SVG exporter
func NewSVGExporter(opts Options) *SVGExporter {
	return &SVGExporter{opts: opts}
}

// Export lays the model out on the pixel grid and draws it
func (e *SVGExporter) Export(m *core.Model) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("model is nil")
	}
	scene := render.ModelScene(m, e.opts.Grid, e.opts.Routing)
	return []byte(render.SVG(scene, e.opts.SVGStyle)), nil
}

// FileExtension returns the SVG extension
func (e *SVGExporter) FileExtension() string {
	return ".svg"
}

// FormatName returns the display name
func (e *SVGExporter) FormatName() string {
	return "SVG"
}
