package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position or displacement in drawing coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return r2.Norm(r2.Sub(p.vec(), q.vec()))
}

// Angle returns the signed angle in radians turning vector u onto vector v.
func Angle(u, v Point) float64 {
	return math.Atan2(r2.Cross(u.vec(), v.vec()), r2.Dot(u.vec(), v.vec()))
}

// Rect represents an axis-aligned box. Width and Height may be negative
// while a figure is being dragged up or left of its anchor; Normalized
// gives the equivalent box with non-negative extents.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromPoints builds the rect spanning from a to b.
func RectFromPoints(a, b Point) Rect {
	return Rect{X: a.X, Y: a.Y, Width: b.X - a.X, Height: b.Y - a.Y}
}

// Normalized returns r with non-negative width and height.
func (r Rect) Normalized() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	r = r.Normalized()
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero area.
func (r Rect) IsEmpty() bool {
	return r.Width == 0 || r.Height == 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other.Normalized()
	}
	if other.IsEmpty() {
		return r.Normalized()
	}
	r = r.Normalized()
	other = other.Normalized()

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Min returns the top-left corner of the normalized rect.
func (r Rect) Min() Point {
	r = r.Normalized()
	return Point{X: r.X, Y: r.Y}
}

// Max returns the bottom-right corner of the normalized rect.
func (r Rect) Max() Point {
	r = r.Normalized()
	return Point{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Offset returns r moved by d.
func (r Rect) Offset(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}
