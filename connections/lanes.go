// Package connections plans how paths are routed between node instances.
package connections

import (
	"fmt"
	"sort"

	"causalflow/core"
	"causalflow/geometry"
)

// Side is the side of the source node an elbowed route runs along.
type Side int

const (
	Right Side = iota
	Left
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Sign is +1 for Right and -1 for Left.
func (s Side) Sign() float64 {
	if s == Left {
		return -1
	}
	return 1
}

// Lane is the routing slot of a skipping path.
type Lane struct {
	Side  Side
	Index int
}

// Offset returns the lateral distance of the lane from the source node
// border; callers add half the node width to measure it from the vertical
// centerline. Every extra lane on the same side of a period moves the route
// further out.
func (l Lane) Offset(base, separation float64) float64 {
	return base + float64(l.Index)*separation
}

// Assignments maps path ids to their lanes.
type Assignments map[string]Lane

// Lookup returns the lane of a path.
func (a Assignments) Lookup(pathID string) (Lane, bool) {
	l, ok := a[pathID]
	return l, ok
}

// Depth returns how many lanes the busiest period uses on each side.
func (a Assignments) Depth() (right, left int) {
	for _, l := range a {
		switch l.Side {
		case Right:
			right = max(right, l.Index+1)
		case Left:
			left = max(left, l.Index+1)
		}
	}
	return right, left
}

// IsSkipping reports whether a path connects two different variables of the
// same period that are not adjacent in the variable ordering. Such paths are
// drawn as elbowed routes; everything else is a straight line.
func IsSkipping(vars []core.Variable, p core.Path) bool {
	if !p.SamePeriod() || p.From.VariableID == p.To.VariableID {
		return false
	}
	from, ok := core.IndexOf(vars, p.From.VariableID)
	if !ok {
		return false
	}
	to, ok := core.IndexOf(vars, p.To.VariableID)
	if !ok {
		return false
	}
	return geometry.Abs(from-to) > 1
}

type candidate struct {
	path     core.Path
	pairKey  string
	fromIdx  int
	toIdx    int
	assigned bool
}

// Plan assigns a side and lane to every skipping path. The result depends
// only on the path set and the variable ordering, never on insertion order.
func Plan(vars []core.Variable, paths []core.Path) Assignments {
	byPeriod := make(map[int][]*candidate)
	for _, p := range paths {
		if !IsSkipping(vars, p) {
			continue
		}
		from, _ := core.IndexOf(vars, p.From.VariableID)
		to, _ := core.IndexOf(vars, p.To.VariableID)
		byPeriod[p.From.Period] = append(byPeriod[p.From.Period], &candidate{
			path:    p,
			pairKey: pairKey(from, to),
			fromIdx: from,
			toIdx:   to,
		})
	}

	periods := make([]int, 0, len(byPeriod))
	for period := range byPeriod {
		periods = append(periods, period)
	}
	sort.Ints(periods)

	result := make(Assignments)
	for _, period := range periods {
		planPeriod(byPeriod[period], result)
	}
	return result
}

func planPeriod(cands []*candidate, result Assignments) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].pairKey != cands[j].pairKey {
			return cands[i].pairKey < cands[j].pairKey
		}
		if cands[i].path.From.VariableID != cands[j].path.From.VariableID {
			return cands[i].path.From.VariableID < cands[j].path.From.VariableID
		}
		return cands[i].path.ID < cands[j].path.ID
	})

	nextRight, nextLeft := 0, 0
	for i, c := range cands {
		if c.assigned {
			continue
		}

		reciprocal := findReciprocal(cands, i)
		if reciprocal == nil {
			result[c.path.ID] = Lane{Side: Right, Index: nextRight}
			nextRight++
			c.assigned = true
			continue
		}

		first, second := c, reciprocal
		if second.path.From.VariableID < first.path.From.VariableID {
			first, second = second, first
		}
		result[first.path.ID] = Lane{Side: Right, Index: nextRight}
		result[second.path.ID] = Lane{Side: Left, Index: nextLeft}
		nextRight++
		nextLeft++
		first.assigned = true
		second.assigned = true
	}
}

// findReciprocal returns the unassigned path running the opposite way
// between the same two variables.
func findReciprocal(cands []*candidate, i int) *candidate {
	c := cands[i]
	for j, o := range cands {
		if j == i || o.assigned {
			continue
		}
		if o.fromIdx == c.toIdx && o.toIdx == c.fromIdx {
			return o
		}
	}
	return nil
}

func pairKey(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%06d:%06d", a, b)
}

