package render

import (
	"fmt"
	"html"
	"strings"
)

// SVGStyle holds the colors and fonts of SVG output.
type SVGStyle struct {
	Background    string
	NodeFill      string
	NodeStroke    string
	SourceStroke  string
	TargetFill    string
	TargetStroke  string
	TextColor     string
	HeaderFill    string
	HeaderText    string
	PathStroke    string
	PreviewStroke string
	FontFamily    string
	FontSize      float64
	StrokeWidth   float64
	CornerRadius  float64
}

// DefaultSVGStyle mirrors the palette of the editor.
func DefaultSVGStyle() SVGStyle {
	return SVGStyle{
		Background:    "#ffffff",
		NodeFill:      "#ffffff",
		NodeStroke:    "#93a5cf",
		SourceStroke:  "#f59e0b",
		TargetFill:    "#fdf1d8",
		TargetStroke:  "#f59e0b",
		TextColor:     "#1f2937",
		HeaderFill:    "#eef1f6",
		HeaderText:    "#6b7280",
		PathStroke:    "#3f5aa6",
		PreviewStroke: "#f59e0b",
		FontFamily:    "Arial, sans-serif",
		FontSize:      14,
		StrokeWidth:   2,
		CornerRadius:  8,
	}
}

// SVG draws the scene as a standalone SVG document.
func SVG(s Scene, style SVGStyle) string {
	var sb strings.Builder

	width, height := s.Width, s.Height
	if s.Empty {
		width, height = 640, 120
	}

	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(width), num(height), num(width), num(height))
	fmt.Fprintf(&sb, `  <rect x="0" y="0" width="100%%" height="100%%" fill="%s"/>`+"\n", style.Background)

	if s.Empty {
		fmt.Fprintf(&sb, `  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%s" fill="%s">%s</text>`+"\n",
			num(width/2), num(height/2), attr(style.FontFamily), num(style.FontSize), style.HeaderText, html.EscapeString(EmptyMessage))
		sb.WriteString("</svg>\n")
		return sb.String()
	}

	writeDefs(&sb, style)

	for _, h := range s.Headers {
		fmt.Fprintf(&sb, `  <text class="period-title" x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%s" font-weight="600" fill="%s">%s</text>`+"\n",
			num(h.At.X), num(h.At.Y), attr(style.FontFamily), num(style.FontSize*0.9), style.HeaderText, html.EscapeString(h.Title))
	}

	for _, n := range s.Nodes {
		fill, stroke, class := style.NodeFill, style.NodeStroke, "node"
		if n.IsValidTarget {
			fill, stroke, class = style.TargetFill, style.TargetStroke, class+" valid-target"
		}
		if n.IsSource {
			stroke, class = style.SourceStroke, class+" source"
		}
		fmt.Fprintf(&sb, `  <g class="%s" id="%s">`+"\n", class, attr(n.Key()))
		fmt.Fprintf(&sb, `    <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			num(n.X), num(n.Y), num(n.Width), num(n.Height), num(style.CornerRadius), fill, stroke, num(style.StrokeWidth))
		fmt.Fprintf(&sb, `    <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%s" fill="%s">%s</text>`+"\n",
			num(n.CenterX), num(n.CenterY), attr(style.FontFamily), num(style.FontSize), style.TextColor, html.EscapeString(n.Label))
		sb.WriteString("  </g>\n")
	}

	for _, r := range s.Routes {
		if r.Elbowed {
			fmt.Fprintf(&sb, `  <polyline class="path elbow %s-%d" data-path="%s" points="%s" fill="none" stroke="%s" stroke-width="%s" marker-end="url(#arrowhead)"/>`+"\n",
				r.Lane.Side, r.Lane.Index, attr(r.PathID), points(r), style.PathStroke, num(style.StrokeWidth))
			continue
		}
		a, b := r.Points[0], r.Points[len(r.Points)-1]
		fmt.Fprintf(&sb, `  <line class="path" data-path="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" marker-end="url(#arrowhead)"/>`+"\n",
			attr(r.PathID), num(a.X), num(a.Y), num(b.X), num(b.Y), style.PathStroke, num(style.StrokeWidth))
	}

	if p := s.Preview; p != nil {
		fmt.Fprintf(&sb, `  <line class="preview" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-dasharray="5,5" marker-end="url(#arrowhead-preview)"/>`+"\n",
			num(p.From.X), num(p.From.Y), num(p.To.X), num(p.To.Y), style.PreviewStroke, num(style.StrokeWidth))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeDefs(sb *strings.Builder, style SVGStyle) {
	sb.WriteString("  <defs>\n")
	for _, m := range []struct{ id, fill string }{
		{"arrowhead", style.PathStroke},
		{"arrowhead-preview", style.PreviewStroke},
	} {
		fmt.Fprintf(sb, `    <marker id="%s" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto" markerUnits="strokeWidth">`+"\n", m.id)
		fmt.Fprintf(sb, `      <polygon points="0 0, 10 3.5, 0 7" fill="%s"/>`+"\n", m.fill)
		sb.WriteString("    </marker>\n")
	}
	sb.WriteString("  </defs>\n")
}

func points(r Route) string {
	parts := make([]string, len(r.Points))
	for i, p := range r.Points {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func attr(s string) string {
	return html.EscapeString(s)
}
