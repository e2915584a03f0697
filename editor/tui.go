package editor

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"causalflow/core"
	"causalflow/layout"
	"causalflow/logging"
	"causalflow/render"
)

// Update is a change computed outside the event loop and applied inside
// it. The returned message, if any, is shown in the status line.
type Update func(d *Diagram) (string, error)

// WriteFunc saves the model and returns a description of what was written.
type WriteFunc func(m *core.Model) (string, error)

type stopEvent struct{}

// TUI is the interactive terminal editor. All state is owned by the goroutine
// running Run; other goroutines talk to it through Post.
type TUI struct {
	screen  tcell.Screen
	diagram *Diagram
	style   render.TerminalStyle
	grid    layout.Grid
	next    Notifier

	mode       Mode
	input      []rune
	toast      *Notification
	buttonDown bool

	// OnWrite is called for the write key. Nil disables writing.
	OnWrite WriteFunc
}

// NewTUI creates an editor drawing d on screen. The screen must already be
// initialized. Notifications of d are shown in the status line and then
// passed to the notifier d was created with.
func NewTUI(screen tcell.Screen, d *Diagram, style render.TerminalStyle) *TUI {
	t := &TUI{
		screen:  screen,
		diagram: d,
		style:   style,
		grid:    layout.CellGrid(),
		next:    d.notifier,
		mode:    ModeNormal,
	}
	d.notifier = t
	d.routing = render.CellRouting()
	t.resize()
	return t
}

// Diagram returns the edited diagram.
func (t *TUI) Diagram() *Diagram {
	return t.diagram
}

// Notify implements Notifier by showing a toast.
func (t *TUI) Notify(n Notification) {
	t.toast = &n
	if t.next != nil {
		t.next.Notify(n)
	}
}

// Toast returns the notification currently shown, if any.
func (t *TUI) Toast() (Notification, bool) {
	if t.toast == nil {
		return Notification{}, false
	}
	return *t.toast, true
}

// Post hands an update to the event loop. It is safe to call from any
// goroutine.
func (t *TUI) Post(u Update) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(u))
}

// Run processes events until the user quits or ctx is done.
func (t *TUI) Run(ctx context.Context) error {
	t.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseMotionEvents)
	t.screen.Clear()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = t.screen.PostEvent(tcell.NewEventInterrupt(stopEvent{}))
		case <-done:
		}
	}()

	for {
		t.Draw()
		t.screen.Show()

		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if t.HandleEvent(ev) {
			return ctx.Err()
		}
	}
}

// HandleEvent processes one event and reports whether the editor should exit.
func (t *TUI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventInterrupt:
		return t.handleInterrupt(ev)
	}
	return false
}

func (t *TUI) handleInterrupt(ev *tcell.EventInterrupt) bool {
	switch data := ev.Data().(type) {
	case stopEvent:
		return true
	case Update:
		msg, err := data(t.diagram)
		t.resize()
		if err != nil {
			t.Notify(Notification{Title: "Error", Description: err.Error(), Severity: SeverityDestructive, Err: err})
			return false
		}
		if msg != "" {
			t.Notify(Notification{Title: msg, Severity: SeverityDefault})
		}
	}
	return false
}

func (t *TUI) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := cellCenter(x, y)
	pressed := ev.Buttons()&tcell.Button1 != 0
	wasDown := t.buttonDown
	t.buttonDown = pressed

	if !pressed || wasDown {
		t.diagram.Move(p)
		return
	}

	t.toast = nil
	switch t.mode {
	case ModeNormal:
		t.diagram.Click(p)
		t.resize()
	case ModeRemove:
		t.removeAt(p)
		t.resize()
	case ModeHelp:
		t.SetMode(ModeNormal)
	}
}

func (t *TUI) removeAt(p core.Point) {
	t.SetMode(ModeNormal)
	n, ok := t.diagram.NodeAt(p)
	if !ok {
		return
	}
	removed := t.diagram.RemovePathsFrom(n.NodeID)
	t.Notify(Notification{
		Title:       "Paths Removed",
		Description: fmt.Sprintf("%d path(s) leaving %s removed.", removed, t.label(n.NodeID)),
		Severity:    SeverityDefault,
	})
}

func (t *TUI) label(id core.NodeID) string {
	v, ok := t.diagram.model.Variable(id.VariableID)
	if !ok {
		return id.Key()
	}
	return fmt.Sprintf("%s (period %d)", v.Name, id.Period+1)
}

// cellCenter maps a screen cell to the diagram point at its center.
func cellCenter(x, y int) core.Point {
	return core.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// resize narrows the column gap until the diagram fits the screen width.
// Lane room is never given up.
func (t *TUI) resize() {
	width, _ := t.screen.Size()
	g := t.diagram.ReserveLanes(t.grid)
	vars, periods := t.diagram.model.Variables, t.diagram.model.Periods
	for g.ColumnGap > minColumnGap {
		if w, _ := g.Size(vars, periods); w <= float64(width) {
			break
		}
		g.ColumnGap--
	}
	logging.Debugf("screen width %d, column gap %.0f", width, g.ColumnGap)
	t.diagram.Resize(g)
}

const minColumnGap = 6

// Draw paints the diagram and the status line.
func (t *TUI) Draw() {
	t.screen.Clear()
	width, height := t.screen.Size()

	if t.mode == ModeHelp {
		for row, line := range HelpLines() {
			t.drawString(1, row+1, line, tcell.StyleDefault)
		}
	} else {
		t.drawDiagram(width, height-1)
	}
	t.drawStatus(width, height-1)
}

func (t *TUI) drawDiagram(width, height int) {
	c, err := render.Terminal(t.diagram.Scene(), t.style)
	if err != nil {
		logging.Errorf("drawing diagram: %v", err)
		return
	}
	cw, ch := c.Size()
	for y := 0; y < ch && y < height; y++ {
		for x := 0; x < cw && x < width; x++ {
			cell := core.Cell{X: x, Y: y}
			r := c.Get(cell)
			if r == 0 || r == ' ' {
				continue
			}
			t.screen.SetContent(x, y, r, nil, styleFor(c.ColorAt(cell)))
		}
	}
}

func (t *TUI) drawStatus(width, row int) {
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, row, ' ', nil, statusStyle)
	}

	text := fmt.Sprintf(" %s | %d variables | %d periods | %d paths | ? help ",
		t.mode, len(t.diagram.model.Variables), t.diagram.model.Periods, len(t.diagram.model.Paths))
	style := statusStyle

	switch {
	case t.mode == ModePrompt:
		text = " Variable name: " + string(t.input)
		t.screen.ShowCursor(runewidth.StringWidth(text), row)
	case t.toast != nil:
		text = " " + t.toast.Title
		if t.toast.Description != "" {
			text += ": " + t.toast.Description
		}
		style = toastStyle(t.toast.Severity)
		t.screen.HideCursor()
	default:
		t.screen.HideCursor()
	}

	t.drawString(0, row, runewidth.Truncate(text, width, "…"), style)
}

func (t *TUI) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
