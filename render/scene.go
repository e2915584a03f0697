// Package render turns the diagram state into drawable scenes and draws them
// as SVG or on a character canvas.
package render

import (
	"math"

	"causalflow/connections"
	"causalflow/core"
	"causalflow/geometry"
	"causalflow/layout"
	"causalflow/logging"
)

// EmptyMessage is shown when there is nothing to lay out.
const EmptyMessage = "Please add variables and define time periods to start building your diagram."

// Routing holds the unit-dependent routing parameters.
type Routing struct {
	Intersector geometry.Intersector
	// LaneBase is the clearance between the source node border and lane 0.
	LaneBase float64
	// LaneSeparation is the distance between neighbouring lanes.
	LaneSeparation float64
}

// PixelRouting is used for SVG and PNG output.
func PixelRouting() Routing {
	return Routing{Intersector: geometry.Default, LaneBase: 24, LaneSeparation: 16}
}

// CellRouting is used on character terminals.
func CellRouting() Routing {
	return Routing{
		Intersector:    geometry.Intersector{Retraction: 1, FallbackRatio: geometry.DefaultFallbackRatio},
		LaneBase:       2,
		LaneSeparation: 2,
	}
}

// LaneRoom returns the room a grid must keep beside every column so the
// outermost lane planned for paths stays clear of the canvas edge and of the
// neighbouring column.
func (r Routing) LaneRoom(vars []core.Variable, paths []core.Path) layout.LaneRoom {
	right, left := connections.Plan(vars, paths).Depth()
	var room layout.LaneRoom
	if right > 0 {
		room.Right = connections.Lane{Side: connections.Right, Index: right - 1}.Offset(r.LaneBase, r.LaneSeparation)
	}
	if left > 0 {
		room.Left = connections.Lane{Side: connections.Left, Index: left - 1}.Offset(r.LaneBase, r.LaneSeparation)
	}
	return room
}

// ReserveLanes returns g with lane room for the elbowed routes of paths.
func (r Routing) ReserveLanes(g layout.Grid, vars []core.Variable, paths []core.Path) layout.Grid {
	g.Lanes = r.LaneRoom(vars, paths)
	return g
}

// NodeView is one node to draw, with its interaction flags.
type NodeView struct {
	core.NodeRect
	Label         string
	IsSource      bool
	IsValidTarget bool
}

// Route is the drawable polyline of a path. The last point touches the
// target border; an arrowhead goes there.
type Route struct {
	PathID  string
	From    core.NodeID
	To      core.NodeID
	Points  []core.Point
	Elbowed bool
	Lane    connections.Lane
}

// Preview is the dashed line shown while drawing.
type Preview struct {
	From core.Point
	To   core.Point
}

// Scene is everything a back end needs to draw the diagram.
type Scene struct {
	Width, Height float64
	Empty         bool
	Headers       []layout.Header
	Nodes         []NodeView
	Routes        []Route
	Preview       *Preview
}

// Input collects the state a scene is derived from.
type Input struct {
	Variables []core.Variable
	Periods   int
	Paths     []core.Path
	Nodes     []core.NodeRect
	Lookup    func(core.NodeID) (core.NodeRect, bool)

	// Anchor and Pointer are set while a path is being drawn.
	Anchor  *core.NodeRect
	Pointer core.Point
	// ValidTarget reports whether clicking a node now would succeed.
	ValidTarget func(core.NodeID) bool

	Headers       []layout.Header
	Width, Height float64
	Routing       Routing
}

// Build composes a scene. Paths whose endpoints cannot be resolved are
// skipped silently; they belong to a layout that is not measured yet or to
// variables and periods that no longer exist.
func Build(in Input) Scene {
	s := Scene{
		Width:   in.Width,
		Height:  in.Height,
		Headers: in.Headers,
	}
	if len(in.Variables) == 0 || in.Periods <= 0 {
		s.Empty = true
		return s
	}

	names := make(map[string]string, len(in.Variables))
	for _, v := range in.Variables {
		names[v.ID] = v.Name
	}

	for _, n := range in.Nodes {
		view := NodeView{NodeRect: n, Label: names[n.VariableID]}
		if in.Anchor != nil {
			view.IsSource = in.Anchor.NodeID == n.NodeID
			if in.ValidTarget != nil {
				view.IsValidTarget = in.ValidTarget(n.NodeID)
			}
		}
		s.Nodes = append(s.Nodes, view)
	}

	lanes := connections.Plan(in.Variables, in.Paths)
	for _, p := range in.Paths {
		from, ok := in.Lookup(p.From)
		if !ok {
			logging.Debugf("skipping path %s: source %s not measured", p.ID, p.From)
			continue
		}
		to, ok := in.Lookup(p.To)
		if !ok {
			logging.Debugf("skipping path %s: target %s not measured", p.ID, p.To)
			continue
		}

		if lane, ok := lanes.Lookup(p.ID); ok {
			s.Routes = append(s.Routes, ElbowRoute(p, from, to, lane, in.Routing))
		} else {
			s.Routes = append(s.Routes, StraightRoute(p, from, to, in.Routing))
		}
	}

	if in.Anchor != nil {
		s.Preview = &Preview{From: in.Anchor.Center(), To: in.Pointer}
	}

	if s.Width == 0 || s.Height == 0 {
		s.Width, s.Height = s.bounds()
	}
	return s
}

// StraightRoute runs from the source border to the target border along the
// line joining both centers.
func StraightRoute(p core.Path, from, to core.NodeRect, r Routing) Route {
	start := r.Intersector.Intersect(to.Center(), from.Center(), from.Rect())
	end := r.Intersector.Intersect(from.Center(), to.Center(), to.Rect())
	return Route{
		PathID: p.ID,
		From:   p.From,
		To:     p.To,
		Points: []core.Point{start, end},
	}
}

// ElbowRoute leaves the source sideways, runs along the assigned lane and
// enters the target from the same side.
func ElbowRoute(p core.Path, from, to core.NodeRect, lane connections.Lane, r Routing) Route {
	sign := lane.Side.Sign()
	half := from.Width / 2
	laneX := from.CenterX + sign*(half+lane.Offset(r.LaneBase, r.LaneSeparation))

	start := core.Point{X: from.CenterX + sign*half, Y: from.CenterY}
	bendOut := core.Point{X: laneX, Y: from.CenterY}
	bendIn := core.Point{X: laneX, Y: to.CenterY}
	end := r.Intersector.Intersect(bendIn, to.Center(), to.Rect())

	return Route{
		PathID:  p.ID,
		From:    p.From,
		To:      p.To,
		Points:  []core.Point{start, bendOut, bendIn, end},
		Elbowed: true,
		Lane:    lane,
	}
}

func (s Scene) bounds() (float64, float64) {
	var w, h float64
	grow := func(p core.Point) {
		w = math.Max(w, p.X)
		h = math.Max(h, p.Y)
	}
	for _, n := range s.Nodes {
		grow(core.Point{X: n.X + n.Width, Y: n.Y + n.Height})
	}
	for _, r := range s.Routes {
		for _, p := range r.Points {
			grow(p)
		}
	}
	return w + 1, h + 1
}
