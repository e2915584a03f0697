package editor

import (
	"causalflow/core"
	"causalflow/layout"
	"causalflow/logging"
	"causalflow/render"
)

// Diagram ties the model, the node registry and the drawing gesture
// together. It is driven from a single event loop and holds no locks.
type Diagram struct {
	model    *core.Model
	registry *layout.Registry
	machine  *Machine
	notifier Notifier
	routing  render.Routing

	// OnPathsChange is called with the new collection after a path is
	// created or removed by user interaction.
	OnPathsChange func([]core.Path)
}

// Option configures a Diagram.
type Option func(*Diagram)

// WithNotifier sets the notifier. The default writes to the log.
func WithNotifier(n Notifier) Option {
	return func(d *Diagram) { d.notifier = n }
}

// WithRouting sets the routing parameters used by Scene.
func WithRouting(r render.Routing) Option {
	return func(d *Diagram) { d.routing = r }
}

// WithIDGenerator sets the generator for new path ids.
func WithIDGenerator(fn func() string) Option {
	return func(d *Diagram) { d.machine.SetIDGenerator(fn) }
}

// WithModel starts the diagram from an existing model.
func WithModel(m *core.Model) Option {
	return func(d *Diagram) { d.model = m.Clone() }
}

// NewDiagram creates a diagram whose nodes are measured by m.
func NewDiagram(m layout.Measurer, opts ...Option) *Diagram {
	d := &Diagram{
		model:    core.NewModel(),
		registry: layout.NewRegistry(m),
		machine:  NewMachine(),
		notifier: LogNotifier{},
		routing:  render.PixelRouting(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Refresh()
	return d
}

// Model returns a copy of the current model.
func (d *Diagram) Model() *core.Model {
	return d.model.Clone()
}

// Registry returns the node registry.
func (d *Diagram) Registry() *layout.Registry {
	return d.registry
}

// State returns the drawing state.
func (d *Diagram) State() DrawState {
	return d.machine.State()
}

// Load replaces the whole model, e.g. after the model file was reloaded.
func (d *Diagram) Load(m *core.Model) {
	d.model = m.Clone()
	d.Refresh()
}

// SetVariables replaces the variable list.
func (d *Diagram) SetVariables(vars []core.Variable) {
	d.model.Variables = append([]core.Variable(nil), vars...)
	d.Refresh()
}

// AddVariable appends a variable by name.
func (d *Diagram) AddVariable(name string) (core.Variable, error) {
	v, err := d.model.AddVariable(name)
	if err != nil {
		return core.Variable{}, err
	}
	d.Refresh()
	return v, nil
}

// SetPeriods changes the number of periods.
func (d *Diagram) SetPeriods(n int) error {
	if err := d.model.SetPeriods(n); err != nil {
		return err
	}
	d.Refresh()
	return nil
}

// SetPaths replaces the path collection without notifying OnPathsChange.
func (d *Diagram) SetPaths(paths []core.Path) {
	d.model.Paths = append([]core.Path(nil), paths...)
	d.fitLanes()
}

// Paths returns the current path collection. Callers must not modify it.
func (d *Diagram) Paths() []core.Path {
	return d.model.Paths
}

// RemovePath deletes one path by id.
func (d *Diagram) RemovePath(id string) bool {
	if !d.model.RemovePath(id) {
		return false
	}
	d.pathsChanged()
	return true
}

// RemovePathsFrom deletes every path leaving the node and returns how many
// were removed.
func (d *Diagram) RemovePathsFrom(id core.NodeID) int {
	kept := make([]core.Path, 0, len(d.model.Paths))
	for _, p := range d.model.Paths {
		if p.From != id {
			kept = append(kept, p)
		}
	}
	removed := len(d.model.Paths) - len(kept)
	if removed > 0 {
		d.model.Paths = kept
		d.pathsChanged()
	}
	return removed
}

// Refresh re-measures every node. A pending drawing whose anchor no longer
// exists is dropped.
func (d *Diagram) Refresh() {
	d.fitLanes()
	d.registry.Refresh(d.model.Variables, d.model.Periods)
	if a, ok := d.machine.Anchor(); ok {
		if _, found := d.registry.Lookup(a.NodeID); !found {
			logging.Debugf("anchor %s vanished, leaving drawing mode", a.Key())
			d.machine.Reset()
		}
	}
}

// ReserveLanes returns g with room for the elbowed routes of the current
// paths.
func (d *Diagram) ReserveLanes(g layout.Grid) layout.Grid {
	return d.routing.ReserveLanes(g, d.model.Variables, d.model.Paths)
}

// fitLanes re-measures a grid layout whose lane room no longer matches the
// paths. Other measurers are left alone.
func (d *Diagram) fitLanes() {
	g, ok := d.registry.Measurer().(layout.Grid)
	if !ok {
		return
	}
	if fitted := d.ReserveLanes(g); fitted.Lanes != g.Lanes {
		logging.Debugf("lane room %+v -> %+v", g.Lanes, fitted.Lanes)
		d.registry.Resize(fitted)
	}
}

// Resize swaps the measurer after the drawing area changed size.
func (d *Diagram) Resize(m layout.Measurer) {
	d.registry.Resize(m)
	d.Refresh()
}

// Click handles a primary click at p: a node starts or completes a path,
// empty space cancels.
func (d *Diagram) Click(p core.Point) {
	if n, ok := d.registry.HitTest(p); ok {
		d.apply(d.machine.ClickNode(n, d.model.Paths))
		return
	}
	d.apply(d.machine.ClickBackground())
}

// ClickNode handles a click on a node by id. Nodes missing from the
// registry are ignored.
func (d *Diagram) ClickNode(id core.NodeID) {
	n, ok := d.registry.Lookup(id)
	if !ok {
		logging.Debugf("ignoring click on unmeasured node %s", id.Key())
		return
	}
	d.apply(d.machine.ClickNode(n, d.model.Paths))
}

// Move tracks the pointer for the preview line.
func (d *Diagram) Move(p core.Point) {
	d.machine.Move(p)
}

// Cancel abandons a pending path.
func (d *Diagram) Cancel() {
	d.apply(d.machine.Cancel())
}

// NodeAt returns the node under p.
func (d *Diagram) NodeAt(p core.Point) (core.NodeRect, bool) {
	return d.registry.HitTest(p)
}

func (d *Diagram) apply(o Outcome) {
	if o.Notice != nil && d.notifier != nil {
		d.notifier.Notify(*o.Notice)
	}
	if o.Paths != nil {
		d.model.Paths = o.Paths
		d.pathsChanged()
	}
}

func (d *Diagram) pathsChanged() {
	d.fitLanes()
	if d.OnPathsChange != nil {
		d.OnPathsChange(d.model.Paths)
	}
}

type sizer interface {
	Size(vars []core.Variable, periods int) (float64, float64)
}

type headerer interface {
	Headers(vars []core.Variable, periods int) []layout.Header
}

// Scene derives everything the renderer needs from the current state.
func (d *Diagram) Scene() render.Scene {
	vars, periods := d.model.Variables, d.model.Periods

	in := render.Input{
		Variables: vars,
		Periods:   periods,
		Paths:     d.model.Paths,
		Nodes:     d.registry.All(),
		Lookup:    d.registry.Lookup,
		Routing:   d.routing,
	}

	m := d.registry.Measurer()
	if s, ok := m.(sizer); ok {
		in.Width, in.Height = s.Size(vars, periods)
	}
	if h, ok := m.(headerer); ok {
		in.Headers = h.Headers(vars, periods)
	}

	if st, ok := d.machine.State().(Drawing); ok {
		anchor := st.Anchor
		// The registry holds the current geometry; the anchor may have moved
		// since it was clicked.
		if fresh, found := d.registry.Lookup(anchor.NodeID); found {
			anchor = fresh
		}
		in.Anchor = &anchor
		in.Pointer = st.Pointer
		paths := d.model.Paths
		in.ValidTarget = func(id core.NodeID) bool {
			return d.machine.IsValidTarget(id, paths)
		}
	}

	return render.Build(in)
}
