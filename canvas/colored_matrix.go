package canvas

import (
	"strings"

	"causalflow/core"
)

// ColoredMatrixCanvas extends MatrixCanvas with a color name per cell.
type ColoredMatrixCanvas struct {
	*MatrixCanvas
	colors [][]Color
}

// NewColoredMatrixCanvas creates a new colored matrix canvas.
func NewColoredMatrixCanvas(width, height int) (*ColoredMatrixCanvas, error) {
	base, err := NewMatrixCanvas(width, height)
	if err != nil {
		return nil, err
	}
	colors := make([][]Color, height)
	for i := range colors {
		colors[i] = make([]Color, width)
	}
	return &ColoredMatrixCanvas{MatrixCanvas: base, colors: colors}, nil
}

// ColorAt returns the color of a cell, or ColorNone.
func (c *ColoredMatrixCanvas) ColorAt(p core.Cell) Color {
	if !c.inside(p) {
		return ColorNone
	}
	return c.colors[p.Y][p.X]
}

// Paint sets the color of a cell without touching its character.
func (c *ColoredMatrixCanvas) Paint(p core.Cell, color Color) {
	if c.inside(p) {
		c.colors[p.Y][p.X] = color
	}
}

// PaintRect colors every cell of a rectangle.
func (c *ColoredMatrixCanvas) PaintRect(x, y, width, height int, color Color) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			c.Paint(core.Cell{X: col, Y: row}, color)
		}
	}
}

// Clear resets characters and colors.
func (c *ColoredMatrixCanvas) Clear() {
	c.MatrixCanvas.Clear()
	for y := range c.colors {
		for x := range c.colors[y] {
			c.colors[y][x] = ColorNone
		}
	}
}

// Pen returns a view of the canvas that colors every cell it draws.
func (c *ColoredMatrixCanvas) Pen(color Color) *Pen {
	return &Pen{canvas: c, color: color}
}

// ColoredString returns the canvas as a string with ANSI color codes.
func (c *ColoredMatrixCanvas) ColoredString() string {
	var sb strings.Builder

	for y := 0; y < c.height; y++ {
		current := ColorNone
		for x := 0; x < c.width; x++ {
			char := c.matrix[y][x]
			if char == '\x00' {
				continue
			}
			color := c.colors[y][x]
			if color != current {
				if current != ColorNone {
					sb.WriteString(ansiReset)
				}
				sb.WriteString(color.ANSI())
				current = color
			}
			sb.WriteRune(char)
		}
		if current != ColorNone {
			sb.WriteString(ansiReset)
		}
		if y < c.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// Pen draws on a ColoredMatrixCanvas with a fixed color.
type Pen struct {
	canvas *ColoredMatrixCanvas
	color  Color
}

// Set merges a character and colors its cell.
func (p *Pen) Set(at core.Cell, char rune) {
	if p.canvas.Set(at, char) == nil {
		p.canvas.Paint(at, p.color)
	}
}

// Put overwrites a character and colors its cell.
func (p *Pen) Put(at core.Cell, char rune) {
	if p.canvas.Put(at, char) == nil {
		p.canvas.Paint(at, p.color)
	}
}

// Line draws a rasterised line in style, or with char when it is not zero.
func (p *Pen) Line(from, to core.Cell, style LineStyle, char rune) {
	p.paint(p.canvas.DrawLine(from, to, style, char))
}

// Polyline draws segments joined by the corners of style.
func (p *Pen) Polyline(points []core.Cell, style LineStyle) {
	drawn, err := p.canvas.DrawPolyline(points, style)
	if err != nil {
		return
	}
	p.paint(drawn)
}

func (p *Pen) paint(cells []core.Cell) {
	for _, cell := range cells {
		p.canvas.Paint(cell, p.color)
	}
}

// Box draws a box and colors its border.
func (p *Pen) Box(x, y, width, height int, style BoxStyle) error {
	if err := p.canvas.DrawBox(x, y, width, height, style); err != nil {
		return err
	}
	for col := x; col < x+width; col++ {
		p.canvas.Paint(core.Cell{X: col, Y: y}, p.color)
		p.canvas.Paint(core.Cell{X: col, Y: y + height - 1}, p.color)
	}
	for row := y; row < y+height; row++ {
		p.canvas.Paint(core.Cell{X: x, Y: row}, p.color)
		p.canvas.Paint(core.Cell{X: x + width - 1, Y: row}, p.color)
	}
	return nil
}

// Text writes text and colors the cells it covers.
func (p *Pen) Text(x, y int, text string) {
	p.canvas.DrawText(x, y, text)
	for i := 0; i < StringWidth(text); i++ {
		p.canvas.Paint(core.Cell{X: x + i, Y: y}, p.color)
	}
}
