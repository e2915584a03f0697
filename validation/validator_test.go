package validation

import (
	"errors"
	"testing"

	"causalflow/core"
)

func node(v string, p int) core.NodeID {
	return core.NodeID{VariableID: v, Period: p}
}

func model(periods int, paths ...core.Path) *core.Model {
	return &core.Model{
		Variables: []core.Variable{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
		Periods:   periods,
		Paths:     paths,
	}
}

func TestValidateCleanModel(t *testing.T) {
	m := model(3,
		core.Path{ID: "1", From: node("a", 0), To: node("b", 0)},
		core.Path{ID: "2", From: node("a", 0), To: node("b", 1)},
		core.Path{ID: "3", From: node("a", 0), To: node("a", 2)},
	)
	issues := NewValidator().Validate(m)
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
	if Summary(issues) != "no issues" {
		t.Errorf("Summary() = %q", Summary(issues))
	}
}

func TestValidatePaths(t *testing.T) {
	tests := []struct {
		name  string
		path  core.Path
		level Level
		err   error
	}{
		{"self", core.Path{ID: "x", From: node("a", 1), To: node("a", 1)}, Error, core.ErrSelfConnection},
		{"backwards", core.Path{ID: "x", From: node("a", 1), To: node("b", 0)}, Error, core.ErrInvalidTemporalOrder},
		{"long cross lag", core.Path{ID: "x", From: node("a", 0), To: node("b", 2)}, Error, core.ErrInvalidTemporalOrder},
		{"missing period", core.Path{ID: "x", From: node("a", 2), To: node("b", 3)}, Warning, ErrUnresolved},
		{"missing variable", core.Path{ID: "x", From: node("z", 0), To: node("b", 0)}, Warning, ErrUnresolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := NewValidator().Validate(model(3, tt.path))
			if len(issues) != 1 {
				t.Fatalf("got %d issues: %v", len(issues), issues)
			}
			got := issues[0]
			if got.Level != tt.level {
				t.Errorf("level = %v, want %v", got.Level, tt.level)
			}
			if !errors.Is(got.Err, tt.err) {
				t.Errorf("err = %v, want %v", got.Err, tt.err)
			}
			if got.PathID != "x" {
				t.Errorf("path id = %q", got.PathID)
			}
		})
	}
}

func TestValidateDuplicates(t *testing.T) {
	m := model(2,
		core.Path{ID: "1", From: node("a", 0), To: node("b", 1)},
		core.Path{ID: "2", From: node("a", 0), To: node("b", 1)},
		core.Path{ID: "2", From: node("b", 0), To: node("a", 0)},
	)
	m.Variables = append(m.Variables, core.Variable{ID: "c", Name: " a "}, core.Variable{ID: "d", Name: ""})

	issues := NewValidator().Validate(m)
	want := []error{core.ErrDuplicateName, core.ErrEmptyName, core.ErrDuplicatePath, core.ErrDuplicatePath}
	if len(issues) != len(want) {
		t.Fatalf("got %d issues: %v", len(issues), issues)
	}
	for i, err := range want {
		if !errors.Is(issues[i].Err, err) {
			t.Errorf("issue %d = %v, want %v", i, issues[i], err)
		}
	}
	if !HasErrors(issues) {
		t.Error("HasErrors() = false")
	}
	if got := Summary(issues); got != "4 errors" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestStrictMode(t *testing.T) {
	m := model(1, core.Path{ID: "x", From: node("a", 0), To: node("b", 1)})

	issues := NewValidator().Validate(m)
	if HasErrors(issues) {
		t.Errorf("unresolved path should only warn: %v", issues)
	}
	if got := issues[0].String(); got != "warning: path x: A@1 -> B@2 does not resolve and will be skipped" {
		t.Errorf("String() = %q", got)
	}

	v := &Validator{Strict: true}
	if !HasErrors(v.Validate(m)) {
		t.Error("strict mode should report errors")
	}
}

func TestInvalidPeriods(t *testing.T) {
	m := model(0)
	issues := NewValidator().Validate(m)
	if len(issues) != 1 || !errors.Is(issues[0].Err, core.ErrInvalidPeriods) {
		t.Errorf("issues = %v", issues)
	}
	if got := Summary(append(issues, Issue{Level: Warning})); got != "1 error, 1 warning" {
		t.Errorf("Summary() = %q", got)
	}
}
