package render

import (
	"os"
	"strings"
)

// TerminalCapabilities describes what the current terminal can display.
type TerminalCapabilities struct {
	Name          string
	Unicode       bool
	SupportsColor bool
}

// DetectCapabilities inspects the environment.
// CAUSALFLOW_TERMINAL_MODE=ascii|unicode overrides the detection.
func DetectCapabilities() TerminalCapabilities {
	return detectCapabilities(os.Getenv)
}

func detectCapabilities(getenv func(string) string) TerminalCapabilities {
	term := getenv("TERM")
	caps := TerminalCapabilities{
		Name:          term,
		Unicode:       hasUTF8Locale(getenv),
		SupportsColor: term != "" && term != "dumb",
	}

	if term == "linux" || term == "dumb" {
		caps.Unicode = false
	}

	// https://no-color.org/
	if getenv("NO_COLOR") != "" {
		caps.SupportsColor = false
	}

	switch getenv("CAUSALFLOW_TERMINAL_MODE") {
	case "ascii":
		caps.Unicode = false
	case "unicode":
		caps.Unicode = true
	}
	return caps
}

func hasUTF8Locale(getenv func(string) string) bool {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := getenv(key); v != "" {
			v = strings.ToUpper(v)
			return strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8")
		}
	}
	return false
}

// Style returns the terminal style matching the capabilities.
func (c TerminalCapabilities) Style() TerminalStyle {
	if c.Unicode {
		return DefaultTerminalStyle()
	}
	return ASCIITerminalStyle()
}
