package editor

// Mode represents the current input mode of the terminal editor
type Mode int

const (
	ModeNormal Mode = iota // Clicking nodes draws paths
	ModePrompt             // Typing a new variable name
	ModeRemove             // Next node click removes its outgoing paths
	ModeHelp               // Help overlay shown
)

// String returns the mode name for display
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModePrompt:
		return "ADD VARIABLE"
	case ModeRemove:
		return "REMOVE"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}

// SetMode changes the editor mode
func (t *TUI) SetMode(mode Mode) {
	t.mode = mode

	// Leaving or entering the prompt always starts from an empty buffer
	t.input = t.input[:0]

	// A pending path makes no sense outside normal mode
	if mode != ModeNormal {
		t.diagram.machine.Reset()
	}
}

// Mode returns the current mode
func (t *TUI) Mode() Mode {
	return t.mode
}
