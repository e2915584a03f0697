package core

import (
	"errors"
	"testing"
)

func TestNodeIDKey(t *testing.T) {
	n := NodeID{VariableID: "abc", Period: 2}
	if got := n.Key(); got != "abc-p2" {
		t.Errorf("Key() = %q, want %q", got, "abc-p2")
	}
}

func TestNewNodeRectCenter(t *testing.T) {
	r := NewNodeRect(NodeID{VariableID: "a"}, 10, 20, 100, 40)
	if r.CenterX != 60 || r.CenterY != 40 {
		t.Errorf("center = (%v, %v), want (60, 40)", r.CenterX, r.CenterY)
	}
	if !r.Contains(Point{X: 10, Y: 20}) {
		t.Error("top-left corner should be contained")
	}
	if r.Contains(Point{X: 111, Y: 40}) {
		t.Error("point right of the node should not be contained")
	}
}

func TestCheckConnection(t *testing.T) {
	a0 := NodeID{VariableID: "A", Period: 0}
	a1 := NodeID{VariableID: "A", Period: 1}
	a2 := NodeID{VariableID: "A", Period: 2}
	b0 := NodeID{VariableID: "B", Period: 0}
	b1 := NodeID{VariableID: "B", Period: 1}
	b2 := NodeID{VariableID: "B", Period: 2}

	existing := []Path{{ID: "p1", From: a0, To: b1}}

	tests := []struct {
		name     string
		from, to NodeID
		want     error
	}{
		{"same period cross-sectional", a0, b0, nil},
		{"one step lagged", a1, b2, nil},
		{"identical instance", a1, a1, ErrSelfConnection},
		{"backwards in time", a1, b0, ErrInvalidTemporalOrder},
		{"two steps forward", a0, b2, ErrInvalidTemporalOrder},
		{"carry-over one step", a0, a1, nil},
		{"carry-over two steps", a0, a2, nil},
		{"carry-over backwards", a2, a0, ErrInvalidTemporalOrder},
		{"duplicate", a0, b1, ErrDuplicatePath},
		{"reverse of existing", b1, a0, ErrInvalidTemporalOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckConnection(tt.from, tt.to, existing)
			if tt.want == nil {
				if err != nil {
					t.Errorf("CheckConnection() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("CheckConnection() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestModelAddVariable(t *testing.T) {
	m := NewModel()

	v, err := m.AddVariable("  Stress ")
	if err != nil {
		t.Fatalf("AddVariable() error = %v", err)
	}
	if v.Name != "Stress" {
		t.Errorf("name = %q, want trimmed %q", v.Name, "Stress")
	}
	if v.ID == "" {
		t.Error("expected a generated id")
	}

	if _, err := m.AddVariable("stress"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate name error = %v, want %v", err, ErrDuplicateName)
	}
	if _, err := m.AddVariable("   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name error = %v, want %v", err, ErrEmptyName)
	}
	if len(m.Variables) != 1 {
		t.Errorf("len(Variables) = %d, want 1", len(m.Variables))
	}
}

func TestModelPeriodsAndResolve(t *testing.T) {
	m := NewModel()
	a, _ := m.AddVariable("A")

	if err := m.SetPeriods(0); !errors.Is(err, ErrInvalidPeriods) {
		t.Errorf("SetPeriods(0) = %v, want %v", err, ErrInvalidPeriods)
	}
	if err := m.SetPeriods(3); err != nil {
		t.Fatalf("SetPeriods(3) = %v", err)
	}

	if !m.Resolve(NodeID{VariableID: a.ID, Period: 2}) {
		t.Error("period 2 of 3 should resolve")
	}
	if m.Resolve(NodeID{VariableID: a.ID, Period: 3}) {
		t.Error("period 3 of 3 should not resolve")
	}
	if m.Resolve(NodeID{VariableID: "missing", Period: 0}) {
		t.Error("unknown variable should not resolve")
	}
}

func TestModelRemovePathDoesNotAlias(t *testing.T) {
	m := NewModel()
	m.Paths = []Path{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	before := m.Paths

	if !m.RemovePath("2") {
		t.Fatal("RemovePath(2) = false")
	}
	if m.RemovePath("missing") {
		t.Error("RemovePath(missing) = true")
	}
	if len(m.Paths) != 2 || m.Paths[1].ID != "3" {
		t.Errorf("Paths = %v", m.Paths)
	}
	if before[1].ID != "2" {
		t.Error("previous slice was mutated in place")
	}
}
