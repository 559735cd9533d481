package figure

import (
	"math"
	"slices"

	"github.com/inamate/drawkit/internal/geom"
)

// PathCommand represents a single path segment in local coordinates.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []interface{}

// kappa places cubic control points for a quarter-circle arc.
const kappa = 0.5522847498307936

// Shape is the kind-specific local geometry of a figure. The set of
// implementations is closed: Ellipse, Box, RoundBox and Poly.
type Shape interface {
	centroid() geom.Point
	bounds() geom.Rect
	contains(p geom.Point) bool
	setLastPoint(p geom.Point)
	translate(d geom.Point)
	path() []PathCommand
	degenerate() bool
	clone() Shape
	equal(other Shape) bool
}

// Ellipse is the local geometry of a Circle: the frame it is inscribed in.
// The frame's X/Y corner is the creation anchor.
type Ellipse struct {
	Frame geom.Rect
}

func (e *Ellipse) centroid() geom.Point { return e.Frame.Center() }
func (e *Ellipse) bounds() geom.Rect    { return e.Frame.Normalized() }
func (e *Ellipse) degenerate() bool     { return e.Frame.IsEmpty() }
func (e *Ellipse) translate(d geom.Point) {
	e.Frame = e.Frame.Offset(d)
}

// setLastPoint keeps the ellipse a circle: the side is the smaller of the
// two signed extents from the anchor to p.
func (e *Ellipse) setLastPoint(p geom.Point) {
	w := p.X - e.Frame.X
	h := p.Y - e.Frame.Y
	side := h
	if math.Abs(w) < math.Abs(h) {
		side = w
	}
	e.Frame.Width = side
	e.Frame.Height = side
}

func (e *Ellipse) contains(p geom.Point) bool {
	r := e.Frame.Normalized()
	rx, ry := r.Width/2, r.Height/2
	if rx == 0 || ry == 0 {
		return false
	}
	c := r.Center()
	dx := (p.X - c.X) / rx
	dy := (p.Y - c.Y) / ry
	return dx*dx+dy*dy <= 1
}

func (e *Ellipse) path() []PathCommand {
	r := e.Frame.Normalized()
	c := r.Center()
	rx, ry := r.Width/2, r.Height/2
	kx, ky := kappa*rx, kappa*ry
	return []PathCommand{
		{"M", c.X + rx, c.Y},
		{"C", c.X + rx, c.Y + ky, c.X + kx, c.Y + ry, c.X, c.Y + ry},
		{"C", c.X - kx, c.Y + ry, c.X - rx, c.Y + ky, c.X - rx, c.Y},
		{"C", c.X - rx, c.Y - ky, c.X - kx, c.Y - ry, c.X, c.Y - ry},
		{"C", c.X + kx, c.Y - ry, c.X + rx, c.Y - ky, c.X + rx, c.Y},
		{"Z"},
	}
}

func (e *Ellipse) clone() Shape {
	c := *e
	return &c
}

func (e *Ellipse) equal(other Shape) bool {
	o, ok := other.(*Ellipse)
	return ok && *o == *e
}

// Box is the local geometry of a Rectangle.
type Box struct {
	Frame geom.Rect
}

func (b *Box) centroid() geom.Point { return b.Frame.Center() }
func (b *Box) bounds() geom.Rect    { return b.Frame.Normalized() }
func (b *Box) degenerate() bool     { return b.Frame.IsEmpty() }
func (b *Box) translate(d geom.Point) {
	b.Frame = b.Frame.Offset(d)
}

func (b *Box) setLastPoint(p geom.Point) {
	b.Frame.Width = p.X - b.Frame.X
	b.Frame.Height = p.Y - b.Frame.Y
}

func (b *Box) contains(p geom.Point) bool {
	return !b.Frame.IsEmpty() && b.Frame.Contains(p.X, p.Y)
}

func (b *Box) path() []PathCommand {
	return rectPath(b.Frame.Normalized())
}

func (b *Box) clone() Shape {
	c := *b
	return &c
}

func (b *Box) equal(other Shape) bool {
	o, ok := other.(*Box)
	return ok && *o == *b
}

func rectPath(r geom.Rect) []PathCommand {
	return []PathCommand{
		{"M", r.X, r.Y},
		{"L", r.X + r.Width, r.Y},
		{"L", r.X + r.Width, r.Y + r.Height},
		{"L", r.X, r.Y + r.Height},
		{"Z"},
	}
}

// RoundBox is the local geometry of a RoundedRectangle. Arc is the corner
// radius; it never exceeds half the smaller side when set through SetArc.
type RoundBox struct {
	Frame geom.Rect
	Arc   float64
}

func (b *RoundBox) centroid() geom.Point { return b.Frame.Center() }
func (b *RoundBox) bounds() geom.Rect    { return b.Frame.Normalized() }
func (b *RoundBox) degenerate() bool     { return b.Frame.IsEmpty() }
func (b *RoundBox) translate(d geom.Point) {
	b.Frame = b.Frame.Offset(d)
}

func (b *RoundBox) setLastPoint(p geom.Point) {
	b.Frame.Width = p.X - b.Frame.X
	b.Frame.Height = p.Y - b.Frame.Y
}

// maxArc is half the smaller side of the frame.
func (b *RoundBox) maxArc() float64 {
	r := b.Frame.Normalized()
	return min(r.Width, r.Height) / 2
}

// radius is the arc actually drawn, limited by the current frame.
func (b *RoundBox) radius() float64 {
	return max(0, min(b.Arc, b.maxArc()))
}

// setArc derives the corner radius from where p lies relative to the far
// corner: right of the frame and above its bottom edge gives the vertical
// distance, below it and left of the right edge the horizontal distance,
// anywhere else a square corner.
func (b *RoundBox) setArc(p geom.Point) {
	far := b.Frame.Max()
	var arc float64
	switch {
	case p.X > far.X && p.Y < far.Y:
		arc = far.Y - p.Y
	case p.X <= far.X && p.Y > far.Y:
		arc = far.X - p.X
	}
	b.Arc = max(0, min(arc, b.maxArc()))
}

func (b *RoundBox) contains(p geom.Point) bool {
	r := b.Frame.Normalized()
	if r.IsEmpty() || !r.Contains(p.X, p.Y) {
		return false
	}
	a := b.radius()
	if a == 0 {
		return true
	}
	cx := min(max(p.X, r.X+a), r.X+r.Width-a)
	cy := min(max(p.Y, r.Y+a), r.Y+r.Height-a)
	return math.Hypot(p.X-cx, p.Y-cy) <= a
}

func (b *RoundBox) path() []PathCommand {
	r := b.Frame.Normalized()
	a := b.radius()
	if a == 0 {
		return rectPath(r)
	}
	k := kappa * a
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height
	return []PathCommand{
		{"M", x0 + a, y0},
		{"L", x1 - a, y0},
		{"C", x1 - a + k, y0, x1, y0 + a - k, x1, y0 + a},
		{"L", x1, y1 - a},
		{"C", x1, y1 - a + k, x1 - a + k, y1, x1 - a, y1},
		{"L", x0 + a, y1},
		{"C", x0 + a - k, y1, x0, y1 - a + k, x0, y1 - a},
		{"L", x0, y0 + a},
		{"C", x0, y0 + a - k, x0 + a - k, y0, x0 + a, y0},
		{"Z"},
	}
}

func (b *RoundBox) clone() Shape {
	c := *b
	return &c
}

func (b *RoundBox) equal(other Shape) bool {
	o, ok := other.(*RoundBox)
	return ok && *o == *b
}

// Poly is the local geometry of a Polygon: an ordered vertex list.
type Poly struct {
	Points []geom.Point
}

// centroid is the mean of the vertices.
func (p *Poly) centroid() geom.Point {
	if len(p.Points) == 0 {
		return geom.Point{}
	}
	var c geom.Point
	for _, v := range p.Points {
		c = c.Add(v)
	}
	n := float64(len(p.Points))
	return geom.Point{X: c.X / n, Y: c.Y / n}
}

func (p *Poly) bounds() geom.Rect {
	if len(p.Points) == 0 {
		return geom.Rect{}
	}
	lo, hi := p.Points[0], p.Points[0]
	for _, v := range p.Points[1:] {
		lo.X, lo.Y = min(lo.X, v.X), min(lo.Y, v.Y)
		hi.X, hi.Y = max(hi.X, v.X), max(hi.Y, v.Y)
	}
	return geom.RectFromPoints(lo, hi)
}

func (p *Poly) degenerate() bool {
	return len(p.Points) < 3 || p.bounds().IsEmpty()
}

func (p *Poly) translate(d geom.Point) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].Add(d)
	}
}

func (p *Poly) setLastPoint(q geom.Point) {
	if n := len(p.Points); n > 0 {
		p.Points[n-1] = q
	}
}

// contains applies the even-odd rule.
func (p *Poly) contains(q geom.Point) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	in := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.Points[i], p.Points[j]
		if (a.Y > q.Y) != (b.Y > q.Y) && q.X < (b.X-a.X)*(q.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func (p *Poly) path() []PathCommand {
	if len(p.Points) == 0 {
		return nil
	}
	cmds := make([]PathCommand, 0, len(p.Points)+1)
	cmds = append(cmds, PathCommand{"M", p.Points[0].X, p.Points[0].Y})
	for _, v := range p.Points[1:] {
		cmds = append(cmds, PathCommand{"L", v.X, v.Y})
	}
	return append(cmds, PathCommand{"Z"})
}

func (p *Poly) clone() Shape {
	return &Poly{Points: slices.Clone(p.Points)}
}

func (p *Poly) equal(other Shape) bool {
	o, ok := other.(*Poly)
	return ok && slices.Equal(o.Points, p.Points)
}
