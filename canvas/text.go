package canvas

import "github.com/mattn/go-runewidth"

// RuneWidth returns the number of cells r occupies on a terminal.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the number of cells s occupies on a terminal.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// FitText truncates text to fit within maxWidth cells, adding an ellipsis if needed.
func FitText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(text, maxWidth, "…")
}

// CenterOffset returns the x offset that centers text in a span of width cells.
func CenterOffset(text string, width int) int {
	off := (width - StringWidth(text)) / 2
	if off < 0 {
		return 0
	}
	return off
}
