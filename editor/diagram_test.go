package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"causalflow/core"
	"causalflow/layout"
)

type recorder struct {
	notes []Notification
}

func (r *recorder) Notify(n Notification) { r.notes = append(r.notes, n) }

func (r *recorder) titles() []string {
	out := make([]string, len(r.notes))
	for i, n := range r.notes {
		out[i] = n.Title
	}
	return out
}

func newTestDiagram(t *testing.T, periods int, names ...string) (*Diagram, *recorder) {
	t.Helper()
	m := core.NewModel()
	for _, n := range names {
		_, err := m.AddVariable(n)
		require.NoError(t, err)
	}
	require.NoError(t, m.SetPeriods(periods))

	rec := &recorder{}
	d := NewDiagram(layout.CellGrid(), WithModel(m), WithNotifier(rec), WithIDGenerator(sequentialIDs()))
	return d, rec
}

func (d *Diagram) nodeOf(t *testing.T, name string, period int) core.NodeRect {
	t.Helper()
	v, ok := d.model.VariableByName(name)
	require.True(t, ok, "no variable %s", name)
	n, ok := d.registry.Lookup(core.NodeID{VariableID: v.ID, Period: period})
	require.True(t, ok, "node %s p%d not measured", name, period)
	return n
}

func TestDiagramClickFlow(t *testing.T) {
	d, rec := newTestDiagram(t, 3, "A", "B")

	var changes [][]core.Path
	d.OnPathsChange = func(p []core.Path) { changes = append(changes, p) }

	a0, b1 := d.nodeOf(t, "A", 0), d.nodeOf(t, "B", 1)
	d.Click(a0.Center())
	d.Click(b1.Center())
	require.Len(t, d.Paths(), 1)
	assert.Equal(t, a0.NodeID, d.Paths()[0].From)
	assert.Equal(t, b1.NodeID, d.Paths()[0].To)

	a1, b0 := d.nodeOf(t, "A", 1), d.nodeOf(t, "B", 0)
	d.Click(a1.Center())
	d.Click(b0.Center())
	assert.Len(t, d.Paths(), 1, "backwards path must be rejected")

	a2 := d.nodeOf(t, "A", 2)
	d.Click(a0.Center())
	d.Click(a2.Center())
	require.Len(t, d.Paths(), 2, "a variable may carry over to any later period")

	assert.Len(t, changes, 2)
	assert.Equal(t, []string{"Invalid Path"}, rec.titles())
	assert.IsType(t, Idle{}, d.State())
}

func TestDiagramBackgroundCancels(t *testing.T) {
	d, rec := newTestDiagram(t, 2, "A", "B")

	d.Click(core.Point{X: 0, Y: 0})
	assert.Empty(t, rec.notes, "background click while idle is silent")

	d.Click(d.nodeOf(t, "A", 0).Center())
	d.Click(core.Point{X: 0, Y: 0})
	require.Len(t, rec.notes, 1)
	assert.Equal(t, "Path Drawing Cancelled", rec.notes[0].Title)
	assert.Equal(t, SeverityDefault, rec.notes[0].Severity)
	assert.Empty(t, d.Paths())
}

func TestDiagramDuplicateNotifies(t *testing.T) {
	d, rec := newTestDiagram(t, 1, "A", "B")
	a, b := d.nodeOf(t, "A", 0), d.nodeOf(t, "B", 0)

	for i := 0; i < 2; i++ {
		d.ClickNode(a.NodeID)
		d.ClickNode(b.NodeID)
	}
	assert.Len(t, d.Paths(), 1)
	assert.Equal(t, []string{"Duplicate Path"}, rec.titles())
}

func TestDiagramIgnoresUnmeasuredNodes(t *testing.T) {
	d, rec := newTestDiagram(t, 2, "A", "B")
	a := d.nodeOf(t, "A", 0)

	d.ClickNode(core.NodeID{VariableID: a.VariableID, Period: 7})
	assert.IsType(t, Idle{}, d.State())

	d.ClickNode(a.NodeID)
	d.ClickNode(core.NodeID{VariableID: "missing", Period: 0})
	assert.IsType(t, Drawing{}, d.State(), "click on an unknown node leaves the drawing pending")
	assert.Empty(t, rec.notes)
}

func TestDiagramDropsVanishedAnchor(t *testing.T) {
	d, _ := newTestDiagram(t, 3, "A", "B")
	d.ClickNode(d.nodeOf(t, "A", 2).NodeID)
	require.IsType(t, Drawing{}, d.State())

	require.NoError(t, d.SetPeriods(2))
	assert.IsType(t, Idle{}, d.State())

	d.ClickNode(d.nodeOf(t, "B", 0).NodeID)
	vars := d.Model().Variables
	d.SetVariables(vars[:1])
	assert.IsType(t, Idle{}, d.State())
}

func TestDiagramSceneWhileDrawing(t *testing.T) {
	d, _ := newTestDiagram(t, 2, "A", "B")
	a1 := d.nodeOf(t, "A", 1)
	d.ClickNode(a1.NodeID)
	d.Move(core.Point{X: 3, Y: 4})

	s := d.Scene()
	require.NotNil(t, s.Preview)
	assert.Equal(t, a1.Center(), s.Preview.From)
	assert.Equal(t, core.Point{X: 3, Y: 4}, s.Preview.To)
	assert.Len(t, s.Headers, 2)
	assert.Greater(t, s.Width, 0.0)

	valid := 0
	for _, n := range s.Nodes {
		if n.IsValidTarget {
			valid++
			assert.Equal(t, 1, n.Period)
		}
	}
	assert.Equal(t, 1, valid, "only B in the same period is reachable from the last period")
}

func TestDiagramRemovePaths(t *testing.T) {
	d, _ := newTestDiagram(t, 2, "A", "B", "C")
	a0, b0, c0, b1 := d.nodeOf(t, "A", 0), d.nodeOf(t, "B", 0), d.nodeOf(t, "C", 0), d.nodeOf(t, "B", 1)
	d.SetPaths([]core.Path{
		{ID: "1", From: a0.NodeID, To: b0.NodeID},
		{ID: "2", From: a0.NodeID, To: c0.NodeID},
		{ID: "3", From: b0.NodeID, To: b1.NodeID},
	})

	var last []core.Path
	d.OnPathsChange = func(p []core.Path) { last = p }

	assert.Equal(t, 2, d.RemovePathsFrom(a0.NodeID))
	require.Len(t, last, 1)
	assert.Equal(t, "3", last[0].ID)

	assert.False(t, d.RemovePath("1"))
	assert.True(t, d.RemovePath("3"))
	assert.Empty(t, d.Paths())
	assert.Equal(t, 0, d.RemovePathsFrom(a0.NodeID))
}

func TestDiagramHiddenNodes(t *testing.T) {
	m := core.NewModel()
	a, _ := m.AddVariable("A")
	b, _ := m.AddVariable("B")

	g := layout.CellGrid()
	g.Hidden = map[string]bool{core.NodeID{VariableID: b.ID}.Key(): true}
	d := NewDiagram(g, WithModel(m), WithNotifier(&recorder{}))
	d.SetPaths([]core.Path{{ID: "1", From: core.NodeID{VariableID: a.ID}, To: core.NodeID{VariableID: b.ID}}})

	s := d.Scene()
	assert.Len(t, s.Nodes, 1)
	assert.Empty(t, s.Routes, "paths to unmounted nodes are not drawn")
}

func TestDiagramReservesLaneRoom(t *testing.T) {
	d, _ := newTestDiagram(t, 1, "A", "B", "C", "D", "E")
	before := d.nodeOf(t, "A", 0)

	ids := func(name string) core.NodeID {
		v, _ := d.model.VariableByName(name)
		return core.NodeID{VariableID: v.ID}
	}
	d.SetPaths([]core.Path{
		{ID: "ac", From: ids("A"), To: ids("C")},
		{ID: "ca", From: ids("C"), To: ids("A")},
		{ID: "ae", From: ids("A"), To: ids("E")},
		{ID: "ea", From: ids("E"), To: ids("A")},
	})

	after := d.nodeOf(t, "A", 0)
	assert.Greater(t, after.X, before.X, "column moves right to make room for left lanes")

	s := d.Scene()
	require.Len(t, s.Routes, 4)
	for _, r := range s.Routes {
		for _, p := range r.Points {
			assert.GreaterOrEqual(t, p.X, 0.0, "route %s at %v", r.PathID, p)
			assert.LessOrEqual(t, p.X, s.Width, "route %s at %v", r.PathID, p)
		}
	}

	assert.Equal(t, 4, d.RemovePathsFrom(after.NodeID)+d.RemovePathsFrom(ids("C"))+d.RemovePathsFrom(ids("E")))
	assert.Equal(t, before.X, d.nodeOf(t, "A", 0).X, "room is released with the paths")
}
