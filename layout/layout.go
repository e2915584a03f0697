// Package layout positions variable instances in a (period × variable) grid
// and keeps the registry of their on-screen rectangles.
package layout

import "causalflow/core"

// Measurer reports the extent of every visible node instance.
// Instances that are not mounted yet are simply left out.
type Measurer interface {
	Measure(vars []core.Variable, periods int) []core.NodeRect
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(vars []core.Variable, periods int) []core.NodeRect

// Measure calls f.
func (f MeasurerFunc) Measure(vars []core.Variable, periods int) []core.NodeRect {
	return f(vars, periods)
}
