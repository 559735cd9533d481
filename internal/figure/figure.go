// Package figure implements the drawable shapes of a drawing.
//
// A Figure pairs a kind-specific local geometry (its Shape) with three
// independently tracked transform components and a style. The effective pose
// is translation · rotation · scale applied to the local geometry. Move,
// rotate and scale edits each replace one component; none is re-derived from
// the others.
//
// Rotation and scale pivot on the local origin, so a creation gesture ends
// with Normalize, which re-centres the local geometry on its centroid and
// folds the removed offset into the translation. After that the figure
// rotates and scales about its own center.
//
// Figures are plain values with pointer identity. Clone returns a figure
// that shares no mutable storage with its source; history snapshots rely
// on it.
package figure

import (
	"fmt"
	"math"

	"github.com/inamate/drawkit/internal/geom"
	"github.com/inamate/drawkit/internal/style"
)

// normalizeEps is how close to the origin a centroid must be for Normalize
// to leave the figure untouched.
const normalizeEps = 1e-9

// Figure is one shape of a drawing with its pose, style and selection flag.
type Figure struct {
	kind   Kind
	number int
	id     string

	shape Shape

	translation geom.Matrix2D
	rotation    geom.Matrix2D
	scale       geom.Matrix2D

	style    style.Style
	selected bool
}

func newFigure(kind Kind, st style.Style, shape Shape) *Figure {
	return &Figure{
		kind:        kind,
		shape:       shape,
		translation: geom.Identity(),
		rotation:    geom.Identity(),
		scale:       geom.Identity(),
		style:       st.Clone(),
	}
}

// NewCircle creates a circle from its center and radius.
func NewCircle(st style.Style, center geom.Point, radius float64) *Figure {
	frame := geom.Rect{X: center.X - radius, Y: center.Y - radius, Width: 2 * radius, Height: 2 * radius}
	return newFigure(Circle, st, &Ellipse{Frame: frame})
}

// NewRectangle creates a rectangle spanning topLeft to bottomRight.
func NewRectangle(st style.Style, topLeft, bottomRight geom.Point) *Figure {
	return newFigure(Rectangle, st, &Box{Frame: geom.RectFromPoints(topLeft, bottomRight)})
}

// NewRoundedRectangle creates a rounded rectangle. The corner radius is
// limited to half the smaller side.
func NewRoundedRectangle(st style.Style, topLeft, bottomRight geom.Point, arc float64) *Figure {
	b := &RoundBox{Frame: geom.RectFromPoints(topLeft, bottomRight)}
	b.Arc = max(0, min(arc, b.maxArc()))
	return newFigure(RoundedRectangle, st, b)
}

// NewPolygon creates a polygon from its first two vertices. During
// creation the second vertex follows the pointer.
func NewPolygon(st style.Style, p1, p2 geom.Point) *Figure {
	return newFigure(Polygon, st, &Poly{Points: []geom.Point{p1, p2}})
}

func (f *Figure) Kind() Kind { return f.kind }

// Number is the per-kind sequence number assigned by a Numbering, 0 if none.
func (f *Figure) Number() int { return f.number }

// ID is the figure's typeid handle, empty if never numbered. It is meant for
// display and hit correlation, never for equality.
func (f *Figure) ID() string { return f.id }

// Name is the display name, e.g. "Circle 3".
func (f *Figure) Name() string {
	if f.number == 0 {
		return f.kind.String()
	}
	return fmt.Sprintf("%s %d", f.kind, f.number)
}

// Shape returns a copy of the local geometry.
func (f *Figure) Shape() Shape { return f.shape.clone() }

// Clone returns a deep copy of f, selection flag included.
func (f *Figure) Clone() *Figure {
	c := *f
	c.shape = f.shape.clone()
	c.style = f.style.Clone()
	return &c
}

// SetLastPoint moves the trailing degree of freedom of the local geometry
// during interactive creation.
func (f *Figure) SetLastPoint(p geom.Point) {
	f.shape.setLastPoint(p)
}

// Normalize re-expresses the local geometry relative to its centroid and
// folds the offset into the translation so the absolute pose is unchanged.
// A second call is a no-op.
func (f *Figure) Normalize() {
	c := f.shape.centroid()
	if math.Abs(c.X) < normalizeEps && math.Abs(c.Y) < normalizeEps {
		return
	}
	f.shape.translate(geom.Point{X: -c.X, Y: -c.Y})
	off := f.rotation.Multiply(f.scale).ApplyVector(c)
	f.translation = f.translation.Multiply(geom.Translate(off.X, off.Y))
}

// Center is the local centroid under the current transform.
func (f *Figure) Center() geom.Point {
	return f.Transform().Apply(f.shape.centroid())
}

// Transform returns translation · rotation · scale.
func (f *Figure) Transform() geom.Matrix2D {
	return f.translation.Multiply(f.rotation).Multiply(f.scale)
}

func (f *Figure) Translation() geom.Matrix2D     { return f.translation }
func (f *Figure) SetTranslation(m geom.Matrix2D) { f.translation = m }
func (f *Figure) Rotation() geom.Matrix2D        { return f.rotation }
func (f *Figure) SetRotation(m geom.Matrix2D)    { f.rotation = m }
func (f *Figure) Scale() geom.Matrix2D           { return f.scale }
func (f *Figure) SetScale(m geom.Matrix2D)       { f.scale = m }

// Contains reports whether the absolute point p lies inside the figure.
func (f *Figure) Contains(p geom.Point) bool {
	m := f.Transform()
	if !m.Invertible() {
		return false
	}
	return f.shape.contains(m.Invert().Apply(p))
}

// LocalBounds is the box of the local geometry.
func (f *Figure) LocalBounds() geom.Rect { return f.shape.bounds() }

// Bounds is the axis-aligned box of the transformed figure.
func (f *Figure) Bounds() geom.Rect {
	return f.Transform().TransformRect(f.shape.bounds())
}

// Path returns the outline in local coordinates; combine with Transform.
func (f *Figure) Path() []PathCommand { return f.shape.path() }

// Degenerate reports a zero-size figure, as left by a single click.
func (f *Figure) Degenerate() bool { return f.shape.degenerate() }

func (f *Figure) Stroke() *style.Stroke { return f.style.Stroke }
func (f *Figure) EdgePaint() *style.Paint { return f.style.Edge }
func (f *Figure) FillPaint() *style.Paint { return f.style.Fill }

// LineType derives from the stroke's dash pattern.
func (f *Figure) LineType() style.LineType { return f.style.Stroke.LineType() }

func (f *Figure) SetStroke(s *style.Stroke)   { f.style.Stroke = s.Clone() }
func (f *Figure) SetEdgePaint(p *style.Paint) { f.style.Edge = p.Clone() }
func (f *Figure) SetFillPaint(p *style.Paint) { f.style.Fill = p.Clone() }

func (f *Figure) Selected() bool     { return f.selected }
func (f *Figure) SetSelected(b bool) { f.selected = b }

func (f *Figure) mustBe(k Kind, op string) {
	if f.kind != k {
		panic(fmt.Sprintf("figure: %s called on %s", op, f.Name()))
	}
}

// AddPoint appends a vertex. Polygon only.
func (f *Figure) AddPoint(p geom.Point) {
	f.mustBe(Polygon, "AddPoint")
	poly := f.shape.(*Poly)
	poly.Points = append(poly.Points, p)
}

// RemoveLastPoint drops the trailing vertex; it does nothing when one or no
// vertex remains. Polygon only.
func (f *Figure) RemoveLastPoint() {
	f.mustBe(Polygon, "RemoveLastPoint")
	poly := f.shape.(*Poly)
	if len(poly.Points) > 1 {
		poly.Points = poly.Points[:len(poly.Points)-1]
	}
}

// Points returns a copy of the local vertices. Polygon only.
func (f *Figure) Points() []geom.Point {
	f.mustBe(Polygon, "Points")
	return f.shape.clone().(*Poly).Points
}

// SetArc derives the corner radius from p. RoundedRectangle only.
func (f *Figure) SetArc(p geom.Point) {
	f.mustBe(RoundedRectangle, "SetArc")
	f.shape.(*RoundBox).setArc(p)
}

// Arc returns the corner radius. RoundedRectangle only.
func (f *Figure) Arc() float64 {
	f.mustBe(RoundedRectangle, "Arc")
	return f.shape.(*RoundBox).Arc
}

// Equal reports structural equality: kind, geometry, transform, style and
// selection. Number and ID are ignored.
func (f *Figure) Equal(g *Figure) bool {
	if f == nil || g == nil {
		return f == g
	}
	return f.kind == g.kind &&
		f.shape.equal(g.shape) &&
		f.translation == g.translation &&
		f.rotation == g.rotation &&
		f.scale == g.scale &&
		f.style.Stroke.Equal(g.style.Stroke) &&
		style.EqualPaint(f.style.Edge, g.style.Edge) &&
		style.EqualPaint(f.style.Fill, g.style.Fill) &&
		f.selected == g.selected
}

func (f *Figure) String() string {
	c := f.Center()
	return fmt.Sprintf("%s@(%.1f,%.1f)", f.Name(), c.X, c.Y)
}

// Info summarises a figure for an info panel.
type Info struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Kind        Kind       `json:"kind"`
	Fill        string     `json:"fill"`
	Edge        string     `json:"edge"`
	LineType    string     `json:"lineType"`
	TopLeft     geom.Point `json:"topLeft"`
	BottomRight geom.Point `json:"bottomRight"`
	Size        geom.Point `json:"size"`
	Center      geom.Point `json:"center"`
	Selected    bool       `json:"selected"`
}

func (f *Figure) Info() Info {
	b := f.Bounds()
	return Info{
		ID:          f.id,
		Name:        f.Name(),
		Kind:        f.kind,
		Fill:        f.style.Fill.String(),
		Edge:        f.style.Edge.String(),
		LineType:    f.LineType().String(),
		TopLeft:     b.Min(),
		BottomRight: b.Max(),
		Size:        geom.Point{X: b.Width, Y: b.Height},
		Center:      f.Center(),
		Selected:    f.selected,
	}
}
