// Package geometry places arrowheads on node borders.
package geometry

import (
	"math"

	"causalflow/core"
)

// Default fallback parameters, in diagram units.
const (
	DefaultRetraction    = 12.0
	DefaultFallbackRatio = 0.8
)

// Intersector computes where a line meets a rectangle border.
type Intersector struct {
	// Retraction is how far the end point is pulled back toward the start
	// when the segment never crosses the border.
	Retraction float64
	// FallbackRatio places the point along short segments instead.
	FallbackRatio float64
}

// Default is the intersector used for pixel based output.
var Default = Intersector{Retraction: DefaultRetraction, FallbackRatio: DefaultFallbackRatio}

// Intersect is Default.Intersect.
func Intersect(start, end core.Point, r core.Rect) core.Point {
	return Default.Intersect(start, end, r)
}

// Intersect returns the first point where the segment start -> end crosses
// the border of r. The result is never undefined: without a crossing the
// end point is retracted toward start.
func (in Intersector) Intersect(start, end core.Point, r core.Rect) core.Point {
	dx := end.X - start.X
	dy := end.Y - start.Y

	best := math.Inf(1)
	var hit core.Point

	try := func(t float64, p core.Point, horizontalEdge bool) {
		if t < 0 || t > 1 || t >= best {
			return
		}
		if horizontalEdge {
			if p.X < r.X || p.X > r.Right() {
				return
			}
		} else if p.Y < r.Y || p.Y > r.Bottom() {
			return
		}
		best = t
		hit = p
	}

	if dy != 0 {
		for _, edgeY := range [2]float64{r.Y, r.Bottom()} {
			t := (edgeY - start.Y) / dy
			try(t, core.Point{X: start.X + t*dx, Y: edgeY}, true)
		}
	}
	if dx != 0 {
		for _, edgeX := range [2]float64{r.X, r.Right()} {
			t := (edgeX - start.X) / dx
			try(t, core.Point{X: edgeX, Y: start.Y + t*dy}, false)
		}
	}

	if !math.IsInf(best, 1) {
		return hit
	}
	return in.fallback(start, end)
}

func (in Intersector) fallback(start, end core.Point) core.Point {
	dx := end.X - start.X
	dy := end.Y - start.Y
	length := Distance(start, end)
	if length == 0 {
		return end
	}
	if length > in.Retraction {
		return core.Point{
			X: end.X - dx/length*in.Retraction,
			Y: end.Y - dy/length*in.Retraction,
		}
	}
	ratio := in.FallbackRatio
	if ratio <= 0 || ratio > 1 {
		ratio = DefaultFallbackRatio
	}
	return Lerp(start, end, ratio)
}

// Distance returns the euclidean distance between two points.
func Distance(a, b core.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Lerp returns the point a fraction t of the way from a to b.
func Lerp(a, b core.Point, t float64) core.Point {
	return core.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// OnBorder reports whether p lies on the border of r within eps.
func OnBorder(p core.Point, r core.Rect, eps float64) bool {
	inX := p.X >= r.X-eps && p.X <= r.Right()+eps
	inY := p.Y >= r.Y-eps && p.Y <= r.Bottom()+eps
	if !inX || !inY {
		return false
	}
	return math.Abs(p.X-r.X) <= eps || math.Abs(p.X-r.Right()) <= eps ||
		math.Abs(p.Y-r.Y) <= eps || math.Abs(p.Y-r.Bottom()) <= eps
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
