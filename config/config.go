// Package config reads model files: the variables, the number of periods
// and the paths of a cross-lagged model.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"causalflow/core"
	"causalflow/layout"
	"causalflow/render"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Registration only fails for an empty tag name.
	_ = validate.RegisterValidation("unique_fold", uniqueFold)
}

// File is the on-disk form of a model. Periods are numbered from 1.
type File struct {
	Periods   int        `yaml:"periods" validate:"min=1,max=50"`
	Variables []string   `yaml:"variables" validate:"unique_fold,dive,required,max=100"`
	Paths     []PathSpec `yaml:"paths" validate:"dive"`
	Style     *Style     `yaml:"style,omitempty"`
}

// PathSpec is one directed path between two node instances.
type PathSpec struct {
	From NodeRef `yaml:"from"`
	To   NodeRef `yaml:"to"`
}

// NodeRef names a variable in a period.
type NodeRef struct {
	Variable string `yaml:"variable" validate:"required"`
	Period   int    `yaml:"period" validate:"min=1,max=50"`
}

// Style overrides drawing defaults.
type Style struct {
	LaneBase       *float64 `yaml:"lane_base" validate:"omitempty,gte=0"`
	LaneSeparation *float64 `yaml:"lane_separation" validate:"omitempty,gt=0"`
	MinNodeWidth   *float64 `yaml:"min_node_width" validate:"omitempty,gt=0"`
}

// Load reads and validates a model file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a model file. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	f, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := f.checkPaths(); err != nil {
		return nil, err
	}
	return f, nil
}

// Decode parses a model file and validates its fields but leaves the paths
// unchecked. Use Draft to turn the result into a model for validation.
func Decode(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing model file: %w", err)
	}

	for i := range f.Variables {
		f.Variables[i] = strings.TrimSpace(f.Variables[i])
	}
	for i := range f.Paths {
		f.Paths[i].From.Variable = strings.TrimSpace(f.Paths[i].From.Variable)
		f.Paths[i].To.Variable = strings.TrimSpace(f.Paths[i].To.Variable)
	}

	if err := validate.Struct(&f); err != nil {
		return nil, formatValidationError(err)
	}
	return &f, nil
}

// checkPaths resolves every path and applies the connection rules in file
// order, so a repeated path is reported as a duplicate of the earlier one.
func (f *File) checkPaths() error {
	m, err := Apply(f, nil)
	if err != nil {
		return err
	}
	for i, p := range m.Paths {
		if err := core.CheckConnection(p.From, p.To, m.Paths[:i]); err != nil {
			spec := f.Paths[i]
			return fmt.Errorf("paths[%d] %s -> %s: %w", i, spec.From, spec.To, err)
		}
	}
	return nil
}

func (r NodeRef) String() string {
	return fmt.Sprintf("%s@%d", r.Variable, r.Period)
}

// Apply converts the file to a model. Variables keep the ids they have in
// previous (matched by name, ignoring case) and so do paths with unchanged
// endpoints, so a reload does not disturb the editor. previous may be nil.
func Apply(f *File, previous *core.Model) (*core.Model, error) {
	m := core.NewModel()
	if err := m.SetPeriods(f.Periods); err != nil {
		return nil, err
	}

	for _, name := range f.Variables {
		id := uuid.NewString()
		if previous != nil {
			if v, ok := previous.VariableByName(name); ok {
				id = v.ID
			}
		}
		if _, ok := m.VariableByName(name); ok {
			return nil, fmt.Errorf("%w: %q", core.ErrDuplicateName, name)
		}
		m.Variables = append(m.Variables, core.Variable{ID: id, Name: name})
	}

	for i, spec := range f.Paths {
		from, err := resolve(m, spec.From)
		if err != nil {
			return nil, fmt.Errorf("paths[%d] from: %w", i, err)
		}
		to, err := resolve(m, spec.To)
		if err != nil {
			return nil, fmt.Errorf("paths[%d] to: %w", i, err)
		}
		m.Paths = append(m.Paths, core.Path{ID: pathID(previous, from, to), From: from, To: to})
	}
	return m, nil
}

func resolve(m *core.Model, r NodeRef) (core.NodeID, error) {
	v, ok := m.VariableByName(r.Variable)
	if !ok {
		return core.NodeID{}, fmt.Errorf("%w: %q", core.ErrUnknownVariable, r.Variable)
	}
	if r.Period < 1 || r.Period > m.Periods {
		return core.NodeID{}, fmt.Errorf("period %d of %q is outside 1..%d", r.Period, r.Variable, m.Periods)
	}
	return core.NodeID{VariableID: v.ID, Period: r.Period - 1}, nil
}

func pathID(previous *core.Model, from, to core.NodeID) string {
	if previous != nil {
		for _, p := range previous.Paths {
			if p.From == from && p.To == to {
				return p.ID
			}
		}
	}
	return uuid.NewString()
}

// Draft converts the file to a model without rejecting anything. A path
// naming an unknown variable refers to it by name and so does not resolve.
func Draft(f *File) *core.Model {
	m := &core.Model{Periods: f.Periods}
	for _, name := range f.Variables {
		m.Variables = append(m.Variables, core.Variable{ID: uuid.NewString(), Name: name})
	}
	node := func(r NodeRef) core.NodeID {
		id := r.Variable
		if v, ok := m.VariableByName(r.Variable); ok {
			id = v.ID
		}
		return core.NodeID{VariableID: id, Period: r.Period - 1}
	}
	for _, spec := range f.Paths {
		m.Paths = append(m.Paths, core.Path{ID: uuid.NewString(), From: node(spec.From), To: node(spec.To)})
	}
	return m
}

// Model converts the file to a model with fresh ids.
func (f *File) Model() (*core.Model, error) {
	return Apply(f, nil)
}

// ApplyGrid overrides grid settings named by the style block.
func (s *Style) ApplyGrid(g layout.Grid) layout.Grid {
	if s != nil && s.MinNodeWidth != nil {
		g.MinNodeWidth = *s.MinNodeWidth
	}
	return g
}

// ApplyRouting overrides routing settings named by the style block.
func (s *Style) ApplyRouting(r render.Routing) render.Routing {
	if s == nil {
		return r
	}
	if s.LaneBase != nil {
		r.LaneBase = *s.LaneBase
	}
	if s.LaneSeparation != nil {
		r.LaneSeparation = *s.LaneSeparation
	}
	return r
}

func uniqueFold(fl validator.FieldLevel) bool {
	names, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		key := strings.ToLower(n)
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "unique_fold":
			return fmt.Errorf("%s: %w", field, core.ErrDuplicateName)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
