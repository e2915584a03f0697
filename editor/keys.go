package editor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// handleKey processes keyboard input and reports whether to quit
func (t *TUI) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}

	t.toast = nil

	switch t.mode {
	case ModePrompt:
		t.handlePromptKey(ev)
		return false
	case ModeHelp:
		t.SetMode(ModeNormal)
		return false
	case ModeRemove:
		if ev.Key() == tcell.KeyEscape {
			t.SetMode(ModeNormal)
		}
		return false
	}

	return t.handleNormalKey(ev)
}

// handleNormalKey processes keys in normal mode
func (t *TUI) handleNormalKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		t.diagram.Cancel()
		return false
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true

	case 'a':
		t.SetMode(ModePrompt)

	case '+', '=':
		t.changePeriods(1)

	case '-':
		t.changePeriods(-1)

	case 'x':
		if len(t.diagram.model.Paths) > 0 {
			t.SetMode(ModeRemove)
		}

	case 'w':
		t.write()

	case '?', 'h':
		t.SetMode(ModeHelp)
	}

	return false
}

// handlePromptKey edits the variable name being typed
func (t *TUI) handlePromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		t.SetMode(ModeNormal)

	case tcell.KeyEnter:
		name := string(t.input)
		v, err := t.diagram.AddVariable(name)
		if err != nil {
			t.Notify(Notification{
				Title:       "Invalid Variable",
				Description: promptError(name, err),
				Severity:    SeverityDestructive,
				Err:         err,
			})
			return
		}
		t.SetMode(ModeNormal)
		t.resize()
		t.Notify(Notification{Title: "Variable Added", Description: v.Name, Severity: SeverityDefault})

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.input) > 0 {
			t.input = t.input[:len(t.input)-1]
		}

	case tcell.KeyRune:
		if r := ev.Rune(); unicode.IsPrint(r) {
			t.input = append(t.input, r)
		}
	}
}

func promptError(name string, err error) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Variable name cannot be empty."
	}
	return fmt.Sprintf("%q: %v", name, err)
}

func (t *TUI) changePeriods(delta int) {
	n := t.diagram.model.Periods + delta
	if err := t.diagram.SetPeriods(n); err != nil {
		t.Notify(Notification{
			Title:       "Invalid Periods",
			Description: "Number of periods must be a positive integer.",
			Severity:    SeverityDestructive,
			Err:         err,
		})
		return
	}
	t.resize()
}

func (t *TUI) write() {
	if t.OnWrite == nil {
		return
	}
	where, err := t.OnWrite(t.diagram.Model())
	if err != nil {
		t.Notify(Notification{Title: "Export Failed", Description: err.Error(), Severity: SeverityDestructive, Err: err})
		return
	}
	t.Notify(Notification{Title: "Exported", Description: where, Severity: SeverityDefault})
}
