// Package canvas provides a 2D character grid for drawing diagrams on a terminal.
package canvas

import (
	"errors"
	"fmt"
	"strings"

	"causalflow/core"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// MatrixCanvas is a rune matrix with box-drawing aware drawing primitives.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward
//   - Y increases downward
//   - All coordinates are in character cells
//
// Wide characters occupy two cells; the second cell holds '\x00'.
// MatrixCanvas is not safe for concurrent writes.
type MatrixCanvas struct {
	matrix [][]rune
	width  int
	height int
	merger *CharacterMerger
}

// NewMatrixCanvas creates a new canvas with the specified dimensions.
func NewMatrixCanvas(width, height int) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	matrix := make([][]rune, height)
	for y := range matrix {
		matrix[y] = make([]rune, width)
		for x := range matrix[y] {
			matrix[y][x] = ' '
		}
	}

	return &MatrixCanvas{
		matrix: matrix,
		width:  width,
		height: height,
		merger: NewCharacterMerger(),
	}, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

// Get returns the character at the given position.
// Returns ' ' (space) if position is out of bounds.
func (c *MatrixCanvas) Get(p core.Cell) rune {
	if !c.inside(p) {
		return ' '
	}
	return c.matrix[p.Y][p.X]
}

// Set merges a character into the given position.
func (c *MatrixCanvas) Set(p core.Cell, char rune) error {
	if !c.inside(p) {
		return ErrOutOfBounds
	}
	c.matrix[p.Y][p.X] = c.merger.Merge(c.matrix[p.Y][p.X], char)
	return nil
}

// Put overwrites the given position without merging.
func (c *MatrixCanvas) Put(p core.Cell, char rune) error {
	if !c.inside(p) {
		return ErrOutOfBounds
	}
	c.matrix[p.Y][p.X] = char
	return nil
}

func (c *MatrixCanvas) inside(p core.Cell) bool {
	return p.X >= 0 && p.X < c.width && p.Y >= 0 && p.Y < c.height
}

// Clear resets the canvas to all spaces.
func (c *MatrixCanvas) Clear() {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.matrix[y][x] = ' '
		}
	}
}

// String returns the canvas as a string with newlines.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if r := c.matrix[y][x]; r != '\x00' {
				sb.WriteRune(r)
			}
		}
		if y < c.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// DrawBox draws a rectangle with the specified style, clearing its inside.
// Parts outside the canvas are clipped.
func (c *MatrixCanvas) DrawBox(x, y, width, height int, style BoxStyle) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("invalid box dimensions %dx%d", width, height)
	}

	for row := y + 1; row < y+height-1; row++ {
		for col := x + 1; col < x+width-1; col++ {
			c.Put(core.Cell{X: col, Y: row}, ' ')
		}
	}

	c.Put(core.Cell{X: x, Y: y}, style.TopLeft)
	c.Put(core.Cell{X: x + width - 1, Y: y}, style.TopRight)
	c.Put(core.Cell{X: x, Y: y + height - 1}, style.BottomLeft)
	c.Put(core.Cell{X: x + width - 1, Y: y + height - 1}, style.BottomRight)
	for i := 1; i < width-1; i++ {
		c.Put(core.Cell{X: x + i, Y: y}, style.Horizontal)
		c.Put(core.Cell{X: x + i, Y: y + height - 1}, style.Horizontal)
	}
	for i := 1; i < height-1; i++ {
		c.Put(core.Cell{X: x, Y: y + i}, style.Vertical)
		c.Put(core.Cell{X: x + width - 1, Y: y + i}, style.Vertical)
	}
	return nil
}

// DrawLine draws a line between two cells using Bresenham's algorithm and
// returns the cells it covered inside the canvas. Each cell gets the stroke
// of its local step in style; a non-zero char is used for every cell instead.
func (c *MatrixCanvas) DrawLine(p1, p2 core.Cell, style LineStyle, char rune) []core.Cell {
	steps := LineCells(p1, p2)
	drawn := make([]core.Cell, 0, len(steps))
	for _, step := range steps {
		r := char
		if r == 0 {
			r = style.For(step.Stroke)
		}
		if c.Set(step.Cell, r) == nil {
			drawn = append(drawn, step.Cell)
		}
	}
	return drawn
}

// LineStep is one cell of a rasterised line.
type LineStep struct {
	Cell   core.Cell
	Stroke Stroke
}

// LineCells rasterises the line p1 -> p2 (both ends included).
func LineCells(p1, p2 core.Cell) []LineStep {
	dx := abs(p2.X - p1.X)
	dy := -abs(p2.Y - p1.Y)
	sx, sy := 1, 1
	if p1.X > p2.X {
		sx = -1
	}
	if p1.Y > p2.Y {
		sy = -1
	}

	stroke := func(stepX, stepY bool) Stroke {
		switch {
		case stepX && stepY:
			if sx == sy {
				return StrokeFalling
			}
			return StrokeRising
		case stepY:
			return StrokeVertical
		default:
			return StrokeHorizontal
		}
	}

	var steps []LineStep
	x, y := p1.X, p1.Y
	err := dx + dy
	prev := stroke(dx >= -dy, dx < -dy)
	for {
		if x == p2.X && y == p2.Y {
			steps = append(steps, LineStep{Cell: core.Cell{X: x, Y: y}, Stroke: prev})
			return steps
		}
		e2 := 2 * err
		stepX, stepY := e2 >= dy, e2 <= dx
		s := stroke(stepX, stepY)
		steps = append(steps, LineStep{Cell: core.Cell{X: x, Y: y}, Stroke: s})
		prev = s
		if stepX {
			err += dy
			x += sx
		}
		if stepY {
			err += dx
			y += sy
		}
	}
}

// DrawPolyline draws the segments between consecutive points and joins
// axis-aligned turns with the corners of style. It returns the cells it
// covered inside the canvas.
func (c *MatrixCanvas) DrawPolyline(points []core.Cell, style LineStyle) ([]core.Cell, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("path must have at least 2 points")
	}

	var drawn []core.Cell
	for i := 0; i < len(points)-1; i++ {
		drawn = append(drawn, c.DrawLine(points[i], points[i+1], style, 0)...)
	}

	for i := 1; i < len(points)-1; i++ {
		prev, curr, next := points[i-1], points[i], points[i+1]
		if corner, ok := selectCorner(prev, curr, next, style); ok {
			c.Put(curr, corner)
		}
	}
	return drawn, nil
}

// DrawText writes text starting at (x, y), clipped to the canvas.
func (c *MatrixCanvas) DrawText(x, y int, text string) {
	if y < 0 || y >= c.height {
		return
	}

	currentX := x
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		if currentX >= c.width {
			break
		}
		if w == 2 && currentX+1 >= c.width {
			break
		}
		if currentX >= 0 {
			c.matrix[y][currentX] = r
			if w == 2 {
				c.matrix[y][currentX+1] = '\x00'
			}
		}
		currentX += w
	}
}

// selectCorner chooses the corner joining two axis-aligned segments.
func selectCorner(prev, curr, next core.Cell, style LineStyle) (rune, bool) {
	fromDir := direction(prev, curr)
	toDir := direction(curr, next)

	switch {
	case fromDir == 'E' && toDir == 'S', fromDir == 'N' && toDir == 'W':
		return style.TopRight, true
	case fromDir == 'E' && toDir == 'N', fromDir == 'S' && toDir == 'W':
		return style.BottomRight, true
	case fromDir == 'W' && toDir == 'S', fromDir == 'N' && toDir == 'E':
		return style.TopLeft, true
	case fromDir == 'W' && toDir == 'N', fromDir == 'S' && toDir == 'E':
		return style.BottomLeft, true
	default:
		return 0, false
	}
}

// direction returns the compass direction from p1 to p2.
func direction(p1, p2 core.Cell) rune {
	switch {
	case p2.X > p1.X:
		return 'E'
	case p2.X < p1.X:
		return 'W'
	case p2.Y > p1.Y:
		return 'S'
	default:
		return 'N'
	}
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
