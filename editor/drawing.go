package editor

import (
	"github.com/google/uuid"

	"causalflow/core"
)

// DrawState is either Idle or Drawing.
type DrawState interface {
	drawState()
}

// Idle means no source node is selected.
type Idle struct{}

// Drawing holds the pending source node and the free end of the preview line.
type Drawing struct {
	Anchor  core.NodeRect
	Pointer core.Point
}

func (Idle) drawState()    {}
func (Drawing) drawState() {}

// Outcome is the result of a click handled by the Machine.
type Outcome struct {
	// Paths is the new path collection; nil unless a path was created.
	Paths   []core.Path
	Created *core.Path
	// Notice is set for every rejection and for cancellation.
	Notice *Notification
}

// Machine is the two-click path drawing gesture.
type Machine struct {
	state DrawState
	newID func() string
}

// NewMachine creates a machine in the Idle state.
func NewMachine() *Machine {
	return &Machine{state: Idle{}, newID: uuid.NewString}
}

// SetIDGenerator replaces the path id generator.
func (m *Machine) SetIDGenerator(fn func() string) {
	m.newID = fn
}

// State returns the current state.
func (m *Machine) State() DrawState {
	return m.state
}

// Anchor returns the pending source node while drawing.
func (m *Machine) Anchor() (core.NodeRect, bool) {
	if d, ok := m.state.(Drawing); ok {
		return d.Anchor, true
	}
	return core.NodeRect{}, false
}

// ClickNode handles a click on node n. paths is the current collection and
// is never modified; a successful click returns a new collection.
func (m *Machine) ClickNode(n core.NodeRect, paths []core.Path) Outcome {
	d, drawing := m.state.(Drawing)
	if !drawing {
		m.state = Drawing{Anchor: n, Pointer: n.Center()}
		return Outcome{}
	}

	m.state = Idle{}

	if err := core.CheckConnection(d.Anchor.NodeID, n.NodeID, paths); err != nil {
		notice := notificationFor(err)
		return Outcome{Notice: &notice}
	}

	p := core.Path{ID: m.newID(), From: d.Anchor.NodeID, To: n.NodeID}
	next := make([]core.Path, 0, len(paths)+1)
	next = append(next, paths...)
	next = append(next, p)
	return Outcome{Paths: next, Created: &p}
}

// Move updates the free end of the preview line. It does nothing when idle.
func (m *Machine) Move(p core.Point) {
	if d, ok := m.state.(Drawing); ok {
		d.Pointer = p
		m.state = d
	}
}

// ClickBackground cancels a pending drawing.
func (m *Machine) ClickBackground() Outcome {
	return m.Cancel()
}

// Cancel returns to Idle. A notification is produced only if a source was pending.
func (m *Machine) Cancel() Outcome {
	if _, ok := m.state.(Drawing); !ok {
		return Outcome{}
	}
	m.state = Idle{}
	notice := notificationFor(core.ErrDrawingCancelled)
	return Outcome{Notice: &notice}
}

// Reset drops a pending source without notifying, used when the anchor
// disappears from the model.
func (m *Machine) Reset() {
	m.state = Idle{}
}

// IsSource reports whether id is the pending drawing anchor.
func (m *Machine) IsSource(id core.NodeID) bool {
	a, ok := m.Anchor()
	return ok && a.NodeID == id
}

// IsValidTarget reports whether clicking id now would create a path.
// It runs the same check as ClickNode without changing state.
func (m *Machine) IsValidTarget(id core.NodeID, paths []core.Path) bool {
	a, ok := m.Anchor()
	if !ok {
		return false
	}
	return core.CheckConnection(a.NodeID, id, paths) == nil
}
