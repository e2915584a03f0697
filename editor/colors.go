package editor

import (
	"github.com/gdamore/tcell/v2"

	"causalflow/canvas"
)

// styleFor returns the screen style for a canvas color
func styleFor(c canvas.Color) tcell.Style {
	base := tcell.StyleDefault
	switch c {
	case canvas.ColorRed:
		return base.Foreground(tcell.ColorRed)
	case canvas.ColorGreen:
		return base.Foreground(tcell.ColorGreen)
	case canvas.ColorYellow:
		return base.Foreground(tcell.ColorYellow)
	case canvas.ColorBlue:
		return base.Foreground(tcell.ColorBlue)
	case canvas.ColorMagenta:
		return base.Foreground(tcell.ColorPurple)
	case canvas.ColorCyan:
		return base.Foreground(tcell.ColorTeal)
	case canvas.ColorWhite:
		return base.Foreground(tcell.ColorWhite)
	case canvas.ColorGray:
		return base.Foreground(tcell.ColorGray)
	default:
		return base
	}
}

// toastStyle colors the status line by severity
func toastStyle(s Severity) tcell.Style {
	if s == SeverityDestructive {
		return tcell.StyleDefault.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite).Bold(true)
	}
	return tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
}

var statusStyle = tcell.StyleDefault.Reverse(true)
