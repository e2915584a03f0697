package canvas

import (
	"errors"
	"strings"
	"testing"

	"causalflow/core"
)

func mustCanvas(t *testing.T, w, h int) *MatrixCanvas {
	t.Helper()
	c, err := NewMatrixCanvas(w, h)
	if err != nil {
		t.Fatalf("NewMatrixCanvas(%d, %d) error = %v", w, h, err)
	}
	return c
}

// TestMatrixCanvas_Creation tests canvas creation and initialization.
func TestMatrixCanvas_Creation(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"Small", 10, 5},
		{"Wide", 100, 10},
		{"Tall", 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCanvas(t, tt.width, tt.height)
			w, h := c.Size()
			if w != tt.width || h != tt.height {
				t.Errorf("Size() = (%d, %d), want (%d, %d)", w, h, tt.width, tt.height)
			}
			if strings.Trim(strings.ReplaceAll(c.String(), "\n", ""), " ") != "" {
				t.Error("new canvas should be blank")
			}
		})
	}

	if _, err := NewMatrixCanvas(0, 5); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewMatrixCanvas(0, 5) error = %v, want %v", err, ErrInvalidSize)
	}
}

func TestMatrixCanvas_SetOutOfBounds(t *testing.T) {
	c := mustCanvas(t, 5, 5)
	if err := c.Set(core.Cell{X: 5, Y: 0}, 'x'); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Set() error = %v, want %v", err, ErrOutOfBounds)
	}
	if got := c.Get(core.Cell{X: -1, Y: 0}); got != ' ' {
		t.Errorf("Get() out of bounds = %q, want space", got)
	}
}

func TestMatrixCanvas_LinesMerge(t *testing.T) {
	tests := []struct {
		name  string
		style LineStyle
		want  rune
	}{
		{"Rounded", RoundedLineStyle, '┼'},
		{"ASCII", ASCIILineStyle, '+'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCanvas(t, 5, 5)
			c.DrawLine(core.Cell{X: 0, Y: 2}, core.Cell{X: 4, Y: 2}, tt.style, 0)
			c.DrawLine(core.Cell{X: 2, Y: 0}, core.Cell{X: 2, Y: 4}, tt.style, 0)

			if got := c.Get(core.Cell{X: 2, Y: 2}); got != tt.want {
				t.Errorf("crossing = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatrixCanvas_DrawLineClipped(t *testing.T) {
	c := mustCanvas(t, 3, 1)
	drawn := c.DrawLine(core.Cell{X: -2, Y: 0}, core.Cell{X: 1, Y: 0}, RoundedLineStyle, 0)
	want := []core.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}
	if len(drawn) != len(want) || drawn[0] != want[0] || drawn[1] != want[1] {
		t.Errorf("DrawLine() covered %v, want %v", drawn, want)
	}
}

func TestMatrixCanvas_ArrowSurvivesLines(t *testing.T) {
	c := mustCanvas(t, 5, 1)
	c.Set(core.Cell{X: 2, Y: 0}, '▶')
	c.DrawLine(core.Cell{X: 0, Y: 0}, core.Cell{X: 4, Y: 0}, RoundedLineStyle, 0)
	if got := c.Get(core.Cell{X: 2, Y: 0}); got != '▶' {
		t.Errorf("arrow overwritten by %q", got)
	}
}

func TestMatrixCanvas_DrawBox(t *testing.T) {
	c := mustCanvas(t, 6, 3)
	if err := c.DrawBox(0, 0, 6, 3, RoundedBoxStyle); err != nil {
		t.Fatalf("DrawBox() error = %v", err)
	}
	c.DrawText(1, 1, "ab")

	want := "╭────╮\n│ab  │\n╰────╯"
	if got := c.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestMatrixCanvas_DrawPolylineCorners(t *testing.T) {
	points := []core.Cell{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}, {X: 0, Y: 3}}
	tests := []struct {
		name  string
		style LineStyle
		want  string
	}{
		{"Rounded", RoundedLineStyle, "───╮ \n   │ \n   │ \n───╯ "},
		{"ASCII", ASCIILineStyle, "---+ \n   | \n   | \n---+ "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCanvas(t, 5, 4)
			drawn, err := c.DrawPolyline(points, tt.style)
			if err != nil {
				t.Fatalf("DrawPolyline() error = %v", err)
			}
			if len(drawn) == 0 {
				t.Error("DrawPolyline() reported no cells")
			}
			if got := c.String(); got != tt.want {
				t.Errorf("String() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}

	c := mustCanvas(t, 2, 2)
	if _, err := c.DrawPolyline(points[:1], RoundedLineStyle); err == nil {
		t.Error("DrawPolyline() with one point should fail")
	}
}

func TestLineCellsDiagonal(t *testing.T) {
	steps := LineCells(core.Cell{X: 0, Y: 0}, core.Cell{X: 3, Y: 3})
	if len(steps) != 4 {
		t.Fatalf("len = %d, want 4", len(steps))
	}
	for _, s := range steps {
		if s.Cell.X != s.Cell.Y {
			t.Errorf("off-diagonal cell %v", s.Cell)
		}
		if s.Stroke != StrokeFalling {
			t.Errorf("stroke = %v, want falling", s.Stroke)
		}
	}

	up := LineCells(core.Cell{X: 0, Y: 3}, core.Cell{X: 3, Y: 0})
	if up[0].Stroke != StrokeRising {
		t.Errorf("rising stroke = %v", up[0].Stroke)
	}
	if got := ASCIILineStyle.For(up[0].Stroke); got != '/' {
		t.Errorf("ascii rising glyph = %q, want '/'", got)
	}
}

func TestDrawTextWide(t *testing.T) {
	c := mustCanvas(t, 6, 1)
	c.DrawText(0, 0, "日本x")
	if got := c.String(); got != "日本x " {
		t.Errorf("String() = %q", got)
	}
	if StringWidth("日本") != 4 {
		t.Errorf("StringWidth = %d, want 4", StringWidth("日本"))
	}
}

func TestColoredString(t *testing.T) {
	c, err := NewColoredMatrixCanvas(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	c.Pen(ColorGreen).Put(core.Cell{X: 1, Y: 0}, '▶')

	want := " " + ColorGreen.ANSI() + "▶" + ansiReset + " "
	if got := c.ColoredString(); got != want {
		t.Errorf("ColoredString() = %q, want %q", got, want)
	}
	if c.ColorAt(core.Cell{X: 1, Y: 0}) != ColorGreen {
		t.Error("cell color not recorded")
	}
}

func TestPenColorsLines(t *testing.T) {
	c, err := NewColoredMatrixCanvas(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	c.Pen(ColorCyan).Polyline([]core.Cell{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 2}}, ASCIILineStyle)

	for _, cell := range []core.Cell{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 2}} {
		if c.ColorAt(cell) != ColorCyan {
			t.Errorf("ColorAt(%v) = %q, want cyan", cell, c.ColorAt(cell))
		}
	}
	if c.ColorAt(core.Cell{X: 0, Y: 2}) != ColorNone {
		t.Error("untouched cell was colored")
	}
	if got := c.Get(core.Cell{X: 3, Y: 0}); got != '+' {
		t.Errorf("corner = %q, want '+'", got)
	}
}

func TestArrowFor(t *testing.T) {
	tests := []struct {
		px, py, x, y int
		want         rune
	}{
		{0, 0, 5, 0, '▶'},
		{5, 0, 0, 0, '◀'},
		{0, 5, 0, 0, '▲'},
		{0, 0, 1, 5, '▼'},
	}
	for _, tt := range tests {
		if got := StandardArrows.For(tt.px, tt.py, tt.x, tt.y); got != tt.want {
			t.Errorf("For(%d,%d,%d,%d) = %q, want %q", tt.px, tt.py, tt.x, tt.y, got, tt.want)
		}
	}
}
