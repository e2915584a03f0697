package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"causalflow/core"
)

// ErrNoPaths is returned when there is nothing to regress.
var ErrNoPaths = errors.New("model has no paths")

// LavaanExporter exports paths as lavaan regressions
type LavaanExporter struct{}

// NewLavaanExporter creates a new lavaan exporter
func NewLavaanExporter() *LavaanExporter {
	return &LavaanExporter{}
}

// FileExtension returns the lavaan script extension
func (e *LavaanExporter) FileExtension() string {
	return ".lav"
}

// FormatName returns the display name
func (e *LavaanExporter) FormatName() string {
	return "lavaan"
}

// Export writes one regression per target node. Predictors keep the order
// the paths were drawn in; paths whose endpoints no longer exist are left out.
func (e *LavaanExporter) Export(m *core.Model) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("model is nil")
	}
	if len(m.Paths) == 0 {
		return nil, ErrNoPaths
	}

	names := observedNames(m.Variables)

	type target struct {
		node       core.NodeID
		row        int
		predictors []string
	}
	targets := make(map[string]*target)
	var order []*target

	for _, p := range m.Paths {
		if !m.ResolvePath(p) {
			continue
		}
		row, _ := m.VariableIndex(p.To.VariableID)
		key := p.To.Key()
		t, ok := targets[key]
		if !ok {
			t = &target{node: p.To, row: row}
			targets[key] = t
			order = append(order, t)
		}
		t.predictors = append(t.predictors, nodeName(names, p.From))
	}
	if len(order) == 0 {
		return nil, ErrNoPaths
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].node.Period != order[j].node.Period {
			return order[i].node.Period < order[j].node.Period
		}
		return order[i].row < order[j].row
	})

	var sb strings.Builder
	sb.WriteString("# lavaan model generated by causalflow\n")
	fmt.Fprintf(&sb, "# %d variable(s) over %d period(s)\n", len(m.Variables), m.Periods)
	for _, v := range m.Variables {
		fmt.Fprintf(&sb, "#   %s = %s\n", names[v.ID], v.Name)
	}
	sb.WriteString("\n# Regressions\n")
	for _, t := range order {
		fmt.Fprintf(&sb, "%s ~ %s\n", nodeName(names, t.node), strings.Join(t.predictors, " + "))
	}
	return []byte(sb.String()), nil
}

func nodeName(names map[string]string, n core.NodeID) string {
	return fmt.Sprintf("%s_t%d", names[n.VariableID], n.Period+1)
}

// observedNames maps variable ids to lavaan identifiers. Names that
// collide after sanitising get a numeric suffix in list order.
func observedNames(vars []core.Variable) map[string]string {
	names := make(map[string]string, len(vars))
	used := make(map[string]bool, len(vars))
	for _, v := range vars {
		base := SanitizeName(v.Name)
		name := base
		for i := 2; used[strings.ToLower(name)]; i++ {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		used[strings.ToLower(name)] = true
		names[v.ID] = name
	}
	return names
}

// SanitizeName turns a label into a lavaan identifier: letters, digits and
// underscores, not starting with a digit.
func SanitizeName(s string) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := strings.Trim(sb.String(), "_")
	if name == "" {
		return "var"
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "v" + name
	}
	return name
}
