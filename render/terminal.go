package render

import (
	"math"

	"causalflow/canvas"
	"causalflow/core"
)

// TerminalStyle holds the characters and colors of terminal output.
type TerminalStyle struct {
	Box        canvas.BoxStyle
	SourceBox  canvas.BoxStyle
	Lines      canvas.LineStyle
	Arrows     canvas.ArrowStyle
	PreviewDot rune

	NodeColor    canvas.Color
	SourceColor  canvas.Color
	TargetColor  canvas.Color
	PathColor    canvas.Color
	PreviewColor canvas.Color
	HeaderColor  canvas.Color
}

// DefaultTerminalStyle uses Unicode box drawing.
func DefaultTerminalStyle() TerminalStyle {
	return TerminalStyle{
		Box:          canvas.RoundedBoxStyle,
		SourceBox:    canvas.DoubleBoxStyle,
		Lines:        canvas.RoundedLineStyle,
		Arrows:       canvas.StandardArrows,
		PreviewDot:   '·',
		NodeColor:    canvas.ColorCyan,
		SourceColor:  canvas.ColorYellow,
		TargetColor:  canvas.ColorGreen,
		PathColor:    canvas.ColorWhite,
		PreviewColor: canvas.ColorYellow,
		HeaderColor:  canvas.ColorGray,
	}
}

// ASCIITerminalStyle is used where box drawing characters are unavailable.
func ASCIITerminalStyle() TerminalStyle {
	s := DefaultTerminalStyle()
	s.Box = canvas.SimpleBoxStyle
	s.SourceBox = canvas.SimpleBoxStyle
	s.Lines = canvas.ASCIILineStyle
	s.Arrows = canvas.ASCIIArrows
	s.PreviewDot = '.'
	return s
}

// Terminal draws the scene on a new colored canvas. Scene coordinates are
// character cells.
func Terminal(s Scene, style TerminalStyle) (*canvas.ColoredMatrixCanvas, error) {
	if s.Empty {
		c, err := canvas.NewColoredMatrixCanvas(canvas.StringWidth(EmptyMessage)+2, 3)
		if err != nil {
			return nil, err
		}
		c.Pen(style.HeaderColor).Text(1, 1, EmptyMessage)
		return c, nil
	}

	width := int(math.Ceil(s.Width)) + 1
	height := int(math.Ceil(s.Height)) + 1
	c, err := canvas.NewColoredMatrixCanvas(width, height)
	if err != nil {
		return nil, err
	}
	DrawTerminal(c, s, style)
	return c, nil
}

// DrawTerminal draws the scene onto an existing canvas.
// Lines go first so node boxes cover them; arrowheads go last.
func DrawTerminal(c *canvas.ColoredMatrixCanvas, s Scene, style TerminalStyle) {
	if s.Empty {
		c.Pen(style.HeaderColor).Text(1, 1, EmptyMessage)
		return
	}

	for _, h := range s.Headers {
		at := h.At.Cell()
		c.Pen(style.HeaderColor).Text(at.X-canvas.StringWidth(h.Title)/2, at.Y, h.Title)
	}

	pen := c.Pen(style.PathColor)
	for _, r := range s.Routes {
		cells := routeCells(r)
		if r.Elbowed {
			pen.Polyline(cells, style.Lines)
		} else {
			pen.Line(cells[0], cells[len(cells)-1], style.Lines, 0)
		}
	}

	if p := s.Preview; p != nil {
		c.Pen(style.PreviewColor).Line(p.From.Cell(), p.To.Cell(), style.Lines, style.PreviewDot)
	}

	for _, n := range s.Nodes {
		drawNode(c, n, style)
	}

	nodes := make(map[string]core.NodeRect, len(s.Nodes))
	for _, n := range s.Nodes {
		nodes[n.Key()] = n.NodeRect
	}
	for _, r := range s.Routes {
		tip, prev := arrowCells(r, nodes[r.To.Key()])
		pen.Put(tip, style.Arrows.For(prev.X, prev.Y, tip.X, tip.Y))
	}
}

func drawNode(c *canvas.ColoredMatrixCanvas, n NodeView, style TerminalStyle) {
	x, y := int(math.Round(n.X)), int(math.Round(n.Y))
	w, h := int(math.Round(n.Width)), int(math.Round(n.Height))

	box, color := style.Box, style.NodeColor
	switch {
	case n.IsSource:
		box, color = style.SourceBox, style.SourceColor
	case n.IsValidTarget:
		color = style.TargetColor
	}

	pen := c.Pen(color)
	if err := pen.Box(x, y, w, h, box); err != nil {
		return
	}
	label := canvas.FitText(n.Label, w-2)
	pen.Text(x+1+canvas.CenterOffset(label, w-2), y+h/2, label)
}

func routeCells(r Route) []core.Cell {
	cells := make([]core.Cell, 0, len(r.Points))
	for _, p := range r.Points {
		cell := p.Cell()
		if len(cells) > 0 && cells[len(cells)-1] == cell {
			continue
		}
		cells = append(cells, cell)
	}
	if len(cells) == 1 {
		cells = append(cells, cells[0])
	}
	return cells
}

// arrowCells returns the arrowhead cell and the cell it is approached from.
// The route ends on the target border; the arrowhead must sit just outside
// the box, so a tip inside it is stepped back along the last segment.
func arrowCells(r Route, target core.NodeRect) (tip, prev core.Cell) {
	cells := routeCells(r)
	from := cells[len(cells)-2]
	tip = cells[len(cells)-1]

	steps := canvas.LineCells(from, tip)
	i := len(steps) - 1
	for i > 0 && insideBox(steps[i].Cell, target) {
		i--
	}
	tip = steps[i].Cell
	prev = from
	if i > 0 {
		prev = steps[i-1].Cell
	}
	return tip, prev
}

func insideBox(c core.Cell, n core.NodeRect) bool {
	x, y := int(math.Round(n.X)), int(math.Round(n.Y))
	w, h := int(math.Round(n.Width)), int(math.Round(n.Height))
	return c.X >= x && c.X < x+w && c.Y >= y && c.Y < y+h
}
