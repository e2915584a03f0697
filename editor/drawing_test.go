package editor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"causalflow/core"
)

func node(v string, period int) core.NodeRect {
	row := int(v[0] - 'A')
	return core.NewNodeRect(core.NodeID{VariableID: v, Period: period},
		float64(period*200), float64(row*80), 150, 44)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}
}

func TestMachineFirstClickStartsDrawing(t *testing.T) {
	m := NewMachine()
	a := node("A", 0)

	out := m.ClickNode(a, nil)
	if out.Paths != nil || out.Notice != nil {
		t.Fatalf("first click produced %+v", out)
	}
	d, ok := m.State().(Drawing)
	if !ok {
		t.Fatalf("state = %T, want Drawing", m.State())
	}
	if d.Anchor != a {
		t.Errorf("anchor = %v, want %v", d.Anchor, a)
	}
	if d.Pointer != a.Center() {
		t.Errorf("pointer = %v, want anchor center %v", d.Pointer, a.Center())
	}
	if !m.IsSource(a.NodeID) {
		t.Error("anchor should be reported as source")
	}
}

func TestMachineCreatesPath(t *testing.T) {
	m := NewMachine()
	m.SetIDGenerator(sequentialIDs())

	existing := []core.Path{{ID: "old", From: node("B", 0).NodeID, To: node("C", 0).NodeID}}
	m.ClickNode(node("A", 0), existing)
	out := m.ClickNode(node("B", 1), existing)

	if out.Notice != nil {
		t.Fatalf("unexpected notice %+v", out.Notice)
	}
	if len(out.Paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(out.Paths))
	}
	if len(existing) != 1 {
		t.Error("input collection was modified")
	}
	want := core.Path{ID: "p1", From: node("A", 0).NodeID, To: node("B", 1).NodeID}
	if out.Paths[1] != want || *out.Created != want {
		t.Errorf("created %+v, want %+v", out.Paths[1], want)
	}
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("state = %T, want Idle", m.State())
	}
}

func TestMachineRejections(t *testing.T) {
	dup := []core.Path{{ID: "x", From: node("A", 0).NodeID, To: node("B", 0).NodeID}}

	tests := []struct {
		name     string
		from, to core.NodeRect
		paths    []core.Path
		title    string
		err      error
	}{
		{"self connection", node("A", 0), node("A", 0), nil, "Invalid Path", core.ErrSelfConnection},
		{"backwards in time", node("A", 1), node("B", 0), nil, "Invalid Path", core.ErrInvalidTemporalOrder},
		{"cross lag over two periods", node("A", 0), node("B", 2), nil, "Invalid Path", core.ErrInvalidTemporalOrder},
		{"carry over to the same period", node("A", 1), node("A", 1), nil, "Invalid Path", core.ErrSelfConnection},
		{"carry over backwards", node("A", 2), node("A", 0), nil, "Invalid Path", core.ErrInvalidTemporalOrder},
		{"duplicate", node("A", 0), node("B", 0), dup, "Duplicate Path", core.ErrDuplicatePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			m.ClickNode(tt.from, tt.paths)
			out := m.ClickNode(tt.to, tt.paths)

			if out.Paths != nil {
				t.Errorf("rejected click returned paths %v", out.Paths)
			}
			if out.Notice == nil {
				t.Fatal("expected a notification")
			}
			if out.Notice.Title != tt.title {
				t.Errorf("title = %q, want %q", out.Notice.Title, tt.title)
			}
			if out.Notice.Severity != SeverityDestructive {
				t.Errorf("severity = %q, want destructive", out.Notice.Severity)
			}
			if !errors.Is(out.Notice.Err, tt.err) {
				t.Errorf("err = %v, want %v", out.Notice.Err, tt.err)
			}
			if _, ok := m.State().(Idle); !ok {
				t.Errorf("state = %T, want Idle", m.State())
			}
		})
	}
}

func TestMachineCancel(t *testing.T) {
	m := NewMachine()

	if out := m.ClickBackground(); out.Notice != nil {
		t.Errorf("background click while idle notified %+v", out.Notice)
	}

	m.ClickNode(node("A", 0), nil)
	out := m.ClickBackground()
	if out.Notice == nil {
		t.Fatal("expected cancellation notice")
	}
	if out.Notice.Title != "Path Drawing Cancelled" || out.Notice.Description != "Clicked on background." {
		t.Errorf("notice = %+v", out.Notice)
	}
	if out.Notice.Severity != SeverityDefault {
		t.Errorf("severity = %q, want default", out.Notice.Severity)
	}
	if _, ok := m.State().(Idle); !ok {
		t.Errorf("state = %T, want Idle", m.State())
	}

	m.ClickNode(node("A", 0), nil)
	if out := m.Cancel(); out.Notice == nil || !errors.Is(out.Notice.Err, core.ErrDrawingCancelled) {
		t.Errorf("escape did not cancel: %+v", out)
	}
}

func TestMachineMove(t *testing.T) {
	m := NewMachine()
	m.Move(core.Point{X: 1, Y: 1})
	if _, ok := m.State().(Idle); !ok {
		t.Fatal("move while idle changed the state")
	}

	m.ClickNode(node("A", 0), nil)
	m.Move(core.Point{X: 300, Y: 12})
	d := m.State().(Drawing)
	if d.Pointer != (core.Point{X: 300, Y: 12}) {
		t.Errorf("pointer = %v", d.Pointer)
	}
}

func TestMachineValidTargets(t *testing.T) {
	m := NewMachine()
	if m.IsValidTarget(node("B", 0).NodeID, nil) {
		t.Error("nothing is a valid target while idle")
	}

	m.ClickNode(node("A", 1), nil)
	tests := []struct {
		target core.NodeRect
		want   bool
	}{
		{node("A", 1), false},
		{node("A", 0), false},
		{node("A", 2), true},
		{node("A", 3), true},
		{node("B", 0), false},
		{node("B", 1), true},
		{node("B", 2), true},
		{node("B", 3), false},
	}
	for _, tt := range tests {
		if got := m.IsValidTarget(tt.target.NodeID, nil); got != tt.want {
			t.Errorf("IsValidTarget(%s) = %v, want %v", tt.target.Key(), got, tt.want)
		}
	}
	if _, ok := m.State().(Drawing); !ok {
		t.Error("IsValidTarget changed the state")
	}
}

func TestMachineProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	grid := make([]core.NodeRect, 0, 9)
	for _, v := range []string{"A", "B", "C"} {
		for p := 0; p < 3; p++ {
			grid = append(grid, node(v, p))
		}
	}

	properties.Property("clicks grow the collection by at most one valid path", prop.ForAll(
		func(clicks []int) bool {
			m := NewMachine()
			m.SetIDGenerator(sequentialIDs())
			var paths []core.Path

			for _, c := range clicks {
				_, wasDrawing := m.State().(Drawing)
				out := m.ClickNode(grid[c], paths)

				switch {
				case !wasDrawing:
					if out.Paths != nil || out.Notice != nil {
						return false
					}
				case out.Paths != nil:
					if len(out.Paths) != len(paths)+1 || out.Notice != nil {
						return false
					}
					paths = out.Paths
				default:
					if out.Notice == nil {
						return false
					}
				}
				if wasDrawing {
					if _, idle := m.State().(Idle); !idle {
						return false
					}
				}
			}

			seen := map[[2]string]bool{}
			for i, p := range paths {
				key := [2]string{p.From.Key(), p.To.Key()}
				if seen[key] {
					return false
				}
				seen[key] = true
				if core.CheckConnection(p.From, p.To, paths[:i]) != nil {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(grid)-1)),
	))

	properties.Property("repeating an accepted gesture is a duplicate", prop.ForAll(
		func(from, to int) bool {
			m := NewMachine()
			m.ClickNode(grid[from], nil)
			out := m.ClickNode(grid[to], nil)
			if out.Paths == nil {
				return true
			}
			m.ClickNode(grid[from], out.Paths)
			again := m.ClickNode(grid[to], out.Paths)
			return again.Paths == nil && again.Notice != nil &&
				errors.Is(again.Notice.Err, core.ErrDuplicatePath)
		},
		gen.IntRange(0, len(grid)-1),
		gen.IntRange(0, len(grid)-1),
	))

	properties.TestingRun(t)
}
