// Package validation checks a loaded model against the path rules and
// reports every problem instead of stopping at the first one.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"causalflow/core"
)

// Level tells how bad an issue is.
type Level int

const (
	// Warning issues leave the model usable; the affected paths are skipped.
	Warning Level = iota
	// Error issues break a rule the editor would never allow.
	Error
)

func (l Level) String() string {
	if l == Error {
		return "error"
	}
	return "warning"
}

// Issue is one problem found in a model.
type Issue struct {
	Level   Level
	PathID  string // empty for model-level issues
	Message string
	Err     error
}

func (i Issue) String() string {
	if i.PathID != "" {
		return fmt.Sprintf("%s: path %s: %s", i.Level, i.PathID, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Level, i.Message)
}

// ErrUnresolved marks a path whose variable or period no longer exists.
var ErrUnresolved = errors.New("path endpoint does not exist")

// Validator checks models.
type Validator struct {
	// Strict turns warnings into errors.
	Strict bool
}

// NewValidator creates a validator with default settings.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns all issues of m, model-level issues first and then path
// issues in path order.
func (v *Validator) Validate(m *core.Model) []Issue {
	var issues []Issue
	add := func(level Level, pathID string, err error, format string, args ...any) {
		if v.Strict {
			level = Error
		}
		issues = append(issues, Issue{Level: level, PathID: pathID, Message: fmt.Sprintf(format, args...), Err: err})
	}

	if m.Periods <= 0 {
		add(Error, "", core.ErrInvalidPeriods, "period count %d is not positive", m.Periods)
	}

	seenNames := make(map[string]bool, len(m.Variables))
	seenIDs := make(map[string]bool, len(m.Variables))
	for _, variable := range m.Variables {
		name := strings.TrimSpace(variable.Name)
		if name == "" {
			add(Error, "", core.ErrEmptyName, "variable %s has an empty name", variable.ID)
		}
		key := strings.ToLower(name)
		if name != "" && seenNames[key] {
			add(Error, "", core.ErrDuplicateName, "variable name %q is used more than once", name)
		}
		seenNames[key] = true
		if seenIDs[variable.ID] {
			add(Error, "", core.ErrDuplicateName, "variable id %s is used more than once", variable.ID)
		}
		seenIDs[variable.ID] = true
	}

	pathIDs := make(map[string]bool, len(m.Paths))
	for i, p := range m.Paths {
		if pathIDs[p.ID] {
			add(Error, p.ID, core.ErrDuplicatePath, "path id is used more than once")
		}
		pathIDs[p.ID] = true

		if !m.ResolvePath(p) {
			add(Warning, p.ID, ErrUnresolved, "%s -> %s does not resolve and will be skipped", describe(m, p.From), describe(m, p.To))
			continue
		}
		if err := core.CheckConnection(p.From, p.To, m.Paths[:i]); err != nil {
			add(Error, p.ID, err, "%s -> %s: %v", describe(m, p.From), describe(m, p.To), err)
		}
	}
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Level == Error {
			return true
		}
	}
	return false
}

// Summary counts issues per level, e.g. "1 error, 2 warnings".
func Summary(issues []Issue) string {
	counts := map[Level]int{}
	for _, i := range issues {
		counts[i.Level]++
	}
	levels := make([]Level, 0, len(counts))
	for l := range counts {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(a, b int) bool { return levels[a] > levels[b] })

	if len(levels) == 0 {
		return "no issues"
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		word := l.String()
		if counts[l] != 1 {
			word += "s"
		}
		parts[i] = fmt.Sprintf("%d %s", counts[l], word)
	}
	return strings.Join(parts, ", ")
}

func describe(m *core.Model, n core.NodeID) string {
	if v, ok := m.Variable(n.VariableID); ok {
		return fmt.Sprintf("%s@%d", v.Name, n.Period+1)
	}
	return fmt.Sprintf("%s@%d", n.VariableID, n.Period+1)
}
