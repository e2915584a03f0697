package editor

import (
	"fmt"
	"strings"
)

// HelpCategory groups related key bindings
type HelpCategory struct {
	Name     string
	Commands []HelpCommand
}

type HelpCommand struct {
	Key         string
	Description string
}

var helpCategories = []HelpCategory{
	{
		Name: "Paths",
		Commands: []HelpCommand{
			{"click", "Pick a source node, then a target node"},
			{"ESC", "Cancel the pending path"},
			{"x", "Remove paths leaving a clicked node"},
		},
	},
	{
		Name: "Model",
		Commands: []HelpCommand{
			{"a", "Add a variable"},
			{"+/-", "Add or remove a time period"},
			{"w", "Write the lavaan script"},
		},
	},
	{
		Name: "System",
		Commands: []HelpCommand{
			{"?", "Toggle this help"},
			{"q", "Quit"},
			{"Ctrl+C", "Force quit"},
		},
	},
}

// HelpLines returns the help overlay, one string per screen row
func HelpLines() []string {
	const inner = 50

	lines := []string{
		"╔" + strings.Repeat("═", inner+2) + "╗",
		fmt.Sprintf("║ %-*s ║", inner, "CAUSALFLOW HELP"),
		"╠" + strings.Repeat("═", inner+2) + "╣",
	}
	for i, cat := range helpCategories {
		lines = append(lines, fmt.Sprintf("║ %-*s ║", inner, cat.Name+":"))
		for _, cmd := range cat.Commands {
			lines = append(lines, fmt.Sprintf("║   %-8s %-*s ║", cmd.Key, inner-11, cmd.Description))
		}
		if i < len(helpCategories)-1 {
			lines = append(lines, fmt.Sprintf("║ %-*s ║", inner, ""))
		}
	}
	lines = append(lines, "╚"+strings.Repeat("═", inner+2)+"╝")
	return lines
}
