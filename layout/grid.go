package layout

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"causalflow/core"
)

// Grid lays periods out as columns and variables as rows, in list order.
type Grid struct {
	CharWidth    float64 // units per terminal cell of label text
	NodeHeight   float64
	MinNodeWidth float64
	PaddingX     float64 // label padding on each side
	ColumnGap    float64
	RowGap       float64
	HeaderHeight float64 // room above the first row for period titles
	Origin       core.Point

	// Lanes is kept clear beside every column for elbowed routes, on top of
	// ColumnGap.
	Lanes LaneRoom

	// Hidden lists node keys that are not mounted and must not be measured.
	Hidden map[string]bool
}

// LaneRoom is the width reserved on each side of a column.
type LaneRoom struct {
	Left, Right float64
}

// PixelGrid returns the grid used for SVG and PNG output.
func PixelGrid() Grid {
	return Grid{
		CharWidth:    8,
		NodeHeight:   44,
		MinNodeWidth: 150,
		PaddingX:     12,
		ColumnGap:    140,
		RowGap:       36,
		HeaderHeight: 48,
		Origin:       core.Point{X: 24, Y: 16},
	}
}

// CellGrid returns the grid used on a character terminal.
func CellGrid() Grid {
	return Grid{
		CharWidth:    1,
		NodeHeight:   3,
		MinNodeWidth: 10,
		PaddingX:     2,
		ColumnGap:    16,
		RowGap:       2,
		HeaderHeight: 2,
		Origin:       core.Point{X: 2, Y: 1},
	}
}

// ColumnWidth returns the node width shared by every column.
func (g Grid) ColumnWidth(vars []core.Variable) float64 {
	widest := 0
	for _, v := range vars {
		if w := runewidth.StringWidth(v.Name); w > widest {
			widest = w
		}
	}
	w := float64(widest)*g.CharWidth + 2*g.PaddingX
	if w < g.MinNodeWidth {
		w = g.MinNodeWidth
	}
	return w
}

// ColumnX returns the left edge of a period column.
func (g Grid) ColumnX(vars []core.Variable, period int) float64 {
	pitch := g.Lanes.Left + g.ColumnWidth(vars) + g.Lanes.Right + g.ColumnGap
	return g.Origin.X + g.Lanes.Left + float64(period)*pitch
}

// RowY returns the top edge of a variable row.
func (g Grid) RowY(row int) float64 {
	return g.Origin.Y + g.HeaderHeight + float64(row)*(g.NodeHeight+g.RowGap)
}

// Measure implements Measurer.
func (g Grid) Measure(vars []core.Variable, periods int) []core.NodeRect {
	width := g.ColumnWidth(vars)
	rects := make([]core.NodeRect, 0, len(vars)*max(periods, 0))
	for p := 0; p < periods; p++ {
		x := g.ColumnX(vars, p)
		for row, v := range vars {
			id := core.NodeID{VariableID: v.ID, Period: p}
			if g.Hidden[id.Key()] {
				continue
			}
			rects = append(rects, core.NewNodeRect(id, x, g.RowY(row), width, g.NodeHeight))
		}
	}
	return rects
}

// Size returns the extent of the whole grid including the trailing gap,
// which leaves room for elbowed routes of the last column.
func (g Grid) Size(vars []core.Variable, periods int) (width, height float64) {
	width = g.ColumnX(vars, periods) + g.Origin.X
	height = g.RowY(len(vars)) + g.Origin.Y
	return width, height
}

// Header describes a period title above a column.
type Header struct {
	Period int
	Title  string
	At     core.Point // center of the title
}

// Headers returns the period titles, numbered from 1.
func (g Grid) Headers(vars []core.Variable, periods int) []Header {
	width := g.ColumnWidth(vars)
	headers := make([]Header, 0, max(periods, 0))
	for p := 0; p < periods; p++ {
		headers = append(headers, Header{
			Period: p,
			Title:  fmt.Sprintf("Time Period %d", p+1),
			At:     core.Point{X: g.ColumnX(vars, p) + width/2, Y: g.Origin.Y + g.HeaderHeight/2},
		})
	}
	return headers
}
