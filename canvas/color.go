package canvas

// Color is a named terminal color.
type Color string

// Supported colors
const (
	ColorNone    Color = ""
	ColorRed     Color = "red"
	ColorGreen   Color = "green"
	ColorYellow  Color = "yellow"
	ColorBlue    Color = "blue"
	ColorMagenta Color = "magenta"
	ColorCyan    Color = "cyan"
	ColorWhite   Color = "white"
	ColorGray    Color = "gray"
)

const ansiReset = "\033[0m"

// ANSI returns the escape sequence selecting the color.
func (c Color) ANSI() string {
	switch c {
	case ColorRed:
		return "\033[31m"
	case ColorGreen:
		return "\033[32m"
	case ColorYellow:
		return "\033[33m"
	case ColorBlue:
		return "\033[34m"
	case ColorMagenta:
		return "\033[35m"
	case ColorCyan:
		return "\033[36m"
	case ColorWhite:
		return "\033[37m"
	case ColorGray:
		return "\033[90m"
	default:
		return ""
	}
}
