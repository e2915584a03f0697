// Package core contains the fundamental types used throughout the causalflow diagram editor.
package core

import (
	"fmt"
	"math"
)

// Point represents a 2D coordinate in diagram-local space.
// Origin is the top-left corner of the diagram container.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Cell returns the character cell containing the point. Cell (x, y) covers
// the unit square starting at x, y.
func (p Point) Cell() Cell {
	return Cell{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// Cell is an integer position on a character canvas.
type Cell struct {
	X, Y int
}

// Variable is a named construct of the model, instantiated once per period.
type Variable struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// NodeID identifies one instance of a variable at one period.
type NodeID struct {
	VariableID string `json:"variableId" yaml:"variableId"`
	Period     int    `json:"periodIndex" yaml:"periodIndex"`
}

// Key returns the registry key of the node instance.
func (n NodeID) Key() string {
	return fmt.Sprintf("%s-p%d", n.VariableID, n.Period)
}

// String returns a human readable form, mainly for logs.
func (n NodeID) String() string {
	return n.Key()
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains checks if a point is inside the rectangle (borders included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Right returns the x coordinate of the right border.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom border.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// NodeRect is the on-screen rectangle of a node instance.
type NodeRect struct {
	NodeID
	X, Y, Width, Height float64
	CenterX, CenterY    float64
}

// NewNodeRect builds a NodeRect from an identifier and its extent.
func NewNodeRect(id NodeID, x, y, width, height float64) NodeRect {
	return NodeRect{
		NodeID:  id,
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
		CenterX: x + width/2,
		CenterY: y + height/2,
	}
}

// Rect returns the bare rectangle of the node.
func (n NodeRect) Rect() Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// Center returns the center point of the node.
func (n NodeRect) Center() Point {
	return Point{X: n.CenterX, Y: n.CenterY}
}

// Contains checks if a point is inside the node.
func (n NodeRect) Contains(p Point) bool {
	return n.Rect().Contains(p)
}

// Path is a directed edge between two node instances.
type Path struct {
	ID   string `json:"id" yaml:"id"`
	From NodeID `json:"from" yaml:"from"`
	To   NodeID `json:"to" yaml:"to"`
}

// SameEndpoints reports whether two paths connect the same (from, to) pair.
func (p Path) SameEndpoints(o Path) bool {
	return p.From == o.From && p.To == o.To
}

// SamePeriod reports whether the path stays within one period.
func (p Path) SamePeriod() bool {
	return p.From.Period == p.To.Period
}
