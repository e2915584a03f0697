package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Model errors.
var (
	ErrEmptyName       = errors.New("variable name is empty")
	ErrDuplicateName   = errors.New("variable name already exists")
	ErrInvalidPeriods  = errors.New("number of periods must be a positive integer")
	ErrUnknownVariable = errors.New("unknown variable")
)

// Model is the user data of a diagram: ordered variables, a period count and paths.
type Model struct {
	Variables []Variable `json:"variables"`
	Periods   int        `json:"periods"`
	Paths     []Path     `json:"paths"`
}

// NewModel creates an empty model with a single period.
func NewModel() *Model {
	return &Model{Periods: 1}
}

// AddVariable appends a variable with a fresh id.
// The name is trimmed and must be unique, ignoring case.
func (m *Model) AddVariable(name string) (Variable, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Variable{}, ErrEmptyName
	}
	if _, ok := m.VariableByName(name); ok {
		return Variable{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	v := Variable{ID: uuid.NewString(), Name: name}
	m.Variables = append(m.Variables, v)
	return v, nil
}

// SetPeriods changes the number of periods. Paths referring to periods
// that no longer exist are kept; they just stop resolving.
func (m *Model) SetPeriods(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPeriods, n)
	}
	m.Periods = n
	return nil
}

// VariableIndex returns the position of a variable in the ordering.
func (m *Model) VariableIndex(id string) (int, bool) {
	return IndexOf(m.Variables, id)
}

// Variable looks a variable up by id.
func (m *Model) Variable(id string) (Variable, bool) {
	if i, ok := m.VariableIndex(id); ok {
		return m.Variables[i], true
	}
	return Variable{}, false
}

// VariableByName looks a variable up by name, ignoring case.
func (m *Model) VariableByName(name string) (Variable, bool) {
	name = strings.TrimSpace(name)
	for _, v := range m.Variables {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Variable{}, false
}

// Resolve reports whether the node instance exists in the current model.
func (m *Model) Resolve(n NodeID) bool {
	if n.Period < 0 || n.Period >= m.Periods {
		return false
	}
	_, ok := m.VariableIndex(n.VariableID)
	return ok
}

// ResolvePath reports whether both endpoints of a path exist.
func (m *Model) ResolvePath(p Path) bool {
	return m.Resolve(p.From) && m.Resolve(p.To)
}

// RemovePath deletes the path with the given id.
func (m *Model) RemovePath(id string) bool {
	for i, p := range m.Paths {
		if p.ID == id {
			m.Paths = append(m.Paths[:i:i], m.Paths[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	c := &Model{Periods: m.Periods}
	c.Variables = append([]Variable(nil), m.Variables...)
	c.Paths = append([]Path(nil), m.Paths...)
	return c
}

// IndexOf returns the position of the variable with the given id.
func IndexOf(vars []Variable, id string) (int, bool) {
	for i, v := range vars {
		if v.ID == id {
			return i, true
		}
	}
	return -1, false
}
