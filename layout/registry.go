package layout

import (
	"causalflow/core"
	"causalflow/logging"
)

// Registry maps every mounted node instance to its current rectangle.
//
// The registry is derived state. Refresh throws the previous map away and
// builds a fresh one, so calling it on every resize never accumulates
// stale entries.
type Registry struct {
	measurer Measurer

	vars    []core.Variable
	periods int

	nodes map[string]core.NodeRect
	order []core.NodeRect

	subscribers []subscription
	nextSub     int
}

type subscription struct {
	id int
	fn func([]core.NodeRect)
}

// NewRegistry creates an empty registry backed by m.
func NewRegistry(m Measurer) *Registry {
	return &Registry{
		measurer: m,
		nodes:    make(map[string]core.NodeRect),
	}
}

// Refresh rebuilds the registry for the given variables and period count.
func (r *Registry) Refresh(vars []core.Variable, periods int) {
	r.vars = append(r.vars[:0:0], vars...)
	r.periods = periods
	r.rebuild()
}

// Resize swaps the measurer (the container changed size) and rebuilds.
func (r *Registry) Resize(m Measurer) {
	r.measurer = m
	r.rebuild()
}

func (r *Registry) rebuild() {
	nodes := make(map[string]core.NodeRect)
	var order []core.NodeRect

	if r.measurer != nil && r.periods > 0 {
		known := make(map[string]bool, len(r.vars))
		for _, v := range r.vars {
			known[v.ID] = true
		}
		for _, rect := range r.measurer.Measure(r.vars, r.periods) {
			if !known[rect.VariableID] || rect.Period < 0 || rect.Period >= r.periods {
				logging.Debugf("dropping measurement for unknown node %s", rect.Key())
				continue
			}
			key := rect.Key()
			if _, dup := nodes[key]; dup {
				continue
			}
			nodes[key] = rect
			order = append(order, rect)
		}
	}

	r.nodes = nodes
	r.order = order

	snapshot := r.All()
	for _, s := range r.subscribers {
		s.fn(snapshot)
	}
}

// Lookup returns the rectangle of a node instance. A missing entry means
// the node cannot be rendered or interacted with yet.
func (r *Registry) Lookup(id core.NodeID) (core.NodeRect, bool) {
	rect, ok := r.nodes[id.Key()]
	return rect, ok
}

// HitTest returns the node under p, if any.
func (r *Registry) HitTest(p core.Point) (core.NodeRect, bool) {
	for _, rect := range r.order {
		if rect.Contains(p) {
			return rect, true
		}
	}
	return core.NodeRect{}, false
}

// All returns the registered rectangles in measurement order.
func (r *Registry) All() []core.NodeRect {
	return append([]core.NodeRect(nil), r.order...)
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.order)
}

// Measurer returns the current measurer.
func (r *Registry) Measurer() Measurer {
	return r.measurer
}

// Subscribe registers fn to be called after every rebuild.
// The returned function removes the subscription.
func (r *Registry) Subscribe(fn func([]core.NodeRect)) (unsubscribe func()) {
	id := r.nextSub
	r.nextSub++
	r.subscribers = append(r.subscribers, subscription{id: id, fn: fn})
	return func() {
		for i, s := range r.subscribers {
			if s.id == id {
				r.subscribers = append(r.subscribers[:i:i], r.subscribers[i+1:]...)
				return
			}
		}
	}
}
