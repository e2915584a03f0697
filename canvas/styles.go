package canvas

// BoxStyle defines the characters used to draw a box.
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

// Predefined box styles
var (
	// RoundedBoxStyle is used for ordinary nodes.
	RoundedBoxStyle = BoxStyle{
		TopLeft:     '╭',
		TopRight:    '╮',
		BottomLeft:  '╰',
		BottomRight: '╯',
		Horizontal:  '─',
		Vertical:    '│',
	}

	// DoubleBoxStyle marks the pending drawing source.
	DoubleBoxStyle = BoxStyle{
		TopLeft:     '╔',
		TopRight:    '╗',
		BottomLeft:  '╚',
		BottomRight: '╝',
		Horizontal:  '═',
		Vertical:    '║',
	}

	// SimpleBoxStyle uses ASCII characters
	SimpleBoxStyle = BoxStyle{
		TopLeft:     '+',
		TopRight:    '+',
		BottomLeft:  '+',
		BottomRight: '+',
		Horizontal:  '-',
		Vertical:    '|',
	}
)

// ArrowStyle defines the characters used for arrowheads.
type ArrowStyle struct {
	Right rune
	Left  rune
	Up    rune
	Down  rune
}

// Predefined arrow styles
var (
	StandardArrows = ArrowStyle{Right: '▶', Left: '◀', Up: '▲', Down: '▼'}
	ASCIIArrows    = ArrowStyle{Right: '>', Left: '<', Up: '^', Down: 'v'}
)

// For returns the arrowhead pointing from prev toward tip.
func (a ArrowStyle) For(prevX, prevY, tipX, tipY int) rune {
	dx, dy := tipX-prevX, tipY-prevY
	if abs(dx) >= abs(dy) {
		if dx < 0 {
			return a.Left
		}
		return a.Right
	}
	if dy < 0 {
		return a.Up
	}
	return a.Down
}

// Stroke is the direction of one rasterised line cell.
type Stroke int

const (
	StrokeHorizontal Stroke = iota
	StrokeVertical
	StrokeFalling // top left to bottom right
	StrokeRising  // bottom left to top right
)

// LineStyle defines the characters used for route lines and their corners.
type LineStyle struct {
	Horizontal  rune
	Vertical    rune
	Falling     rune
	Rising      rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

// Predefined line styles
var (
	RoundedLineStyle = LineStyle{
		Horizontal:  '─',
		Vertical:    '│',
		Falling:     '╲',
		Rising:      '╱',
		TopLeft:     '╭',
		TopRight:    '╮',
		BottomLeft:  '╰',
		BottomRight: '╯',
	}

	ASCIILineStyle = LineStyle{
		Horizontal:  '-',
		Vertical:    '|',
		Falling:     '\\',
		Rising:      '/',
		TopLeft:     '+',
		TopRight:    '+',
		BottomLeft:  '+',
		BottomRight: '+',
	}
)

// For returns the character of a stroke.
func (l LineStyle) For(s Stroke) rune {
	switch s {
	case StrokeVertical:
		return l.Vertical
	case StrokeFalling:
		return l.Falling
	case StrokeRising:
		return l.Rising
	default:
		return l.Horizontal
	}
}
