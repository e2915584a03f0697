package render

import (
	"causalflow/core"
	"causalflow/layout"
)

// ModelScene lays out a model on a grid with no drawing in progress. It is
// what file exports and the render command draw. The grid is widened to fit
// the lanes of the model's paths.
func ModelScene(m *core.Model, g layout.Grid, r Routing) Scene {
	g = r.ReserveLanes(g, m.Variables, m.Paths)
	reg := layout.NewRegistry(g)
	reg.Refresh(m.Variables, m.Periods)

	w, h := g.Size(m.Variables, m.Periods)
	return Build(Input{
		Variables: m.Variables,
		Periods:   m.Periods,
		Paths:     m.Paths,
		Nodes:     reg.All(),
		Lookup:    reg.Lookup,
		Headers:   g.Headers(m.Variables, m.Periods),
		Width:     w,
		Height:    h,
		Routing:   r,
	})
}
