package geom

import "math"

// Matrix2D is an affine transform stored column-major as [a b c d e f]:
//
//	| a  c  e |
//	| b  d  f |
//	| 0  0  1 |
type Matrix2D [6]float64

const singularEps = 1e-12

func Identity() Matrix2D { return Matrix2D{1, 0, 0, 1, 0, 0} }

func Translate(tx, ty float64) Matrix2D { return Matrix2D{1, 0, 0, 1, tx, ty} }

func Scale(sx, sy float64) Matrix2D { return Matrix2D{sx, 0, 0, sy, 0, 0} }

// Rotate turns counter-clockwise in a y-up frame (clockwise on screen) by
// radians.
func Rotate(radians float64) Matrix2D {
	sin, cos := math.Sincos(radians)
	return Matrix2D{cos, sin, -sin, cos, 0, 0}
}

func RotateDegrees(degrees float64) Matrix2D {
	return Rotate(degrees * math.Pi / 180)
}

// Multiply returns m·o: o is applied first, then m.
func (m Matrix2D) Multiply(o Matrix2D) Matrix2D {
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	return Matrix2D{
		a*o[0] + c*o[1],
		b*o[0] + d*o[1],
		a*o[2] + c*o[3],
		b*o[2] + d*o[3],
		a*o[4] + c*o[5] + e,
		b*o[4] + d*o[5] + f,
	}
}

func (m Matrix2D) TransformPoint(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Apply transforms p, translation included.
func (m Matrix2D) Apply(p Point) Point {
	x, y := m.TransformPoint(p.X, p.Y)
	return Pt(x, y)
}

// ApplyVector transforms v by the linear part only.
func (m Matrix2D) ApplyVector(v Point) Point {
	return Pt(m[0]*v.X+m[2]*v.Y, m[1]*v.X+m[3]*v.Y)
}

func (m Matrix2D) Translation() Point { return Pt(m[4], m[5]) }

// TransformRect maps r and returns the axis-aligned box around the four
// mapped corners.
func (m Matrix2D) TransformRect(r Rect) Rect {
	r = r.Normalized()
	corners := [4]Point{
		m.Apply(Pt(r.X, r.Y)),
		m.Apply(Pt(r.X+r.Width, r.Y)),
		m.Apply(Pt(r.X+r.Width, r.Y+r.Height)),
		m.Apply(Pt(r.X, r.Y+r.Height)),
	}
	lo, hi := corners[0], corners[0]
	for _, p := range corners[1:] {
		lo = Pt(min(lo.X, p.X), min(lo.Y, p.Y))
		hi = Pt(max(hi.X, p.X), max(hi.Y, p.Y))
	}
	return Rect{X: lo.X, Y: lo.Y, Width: hi.X - lo.X, Height: hi.Y - lo.Y}
}

func (m Matrix2D) Determinant() float64 { return m[0]*m[3] - m[1]*m[2] }

// Invertible reports whether Invert yields a true inverse.
func (m Matrix2D) Invertible() bool {
	return math.Abs(m.Determinant()) > singularEps
}

// Invert returns the inverse, or Identity for a singular matrix.
func (m Matrix2D) Invert() Matrix2D {
	if !m.Invertible() {
		return Identity()
	}
	k := 1 / m.Determinant()
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	return Matrix2D{
		d * k,
		-b * k,
		-c * k,
		a * k,
		(c*f - d*e) * k,
		(b*e - a*f) * k,
	}
}

// ToSlice is the [a b c d e f] form draw commands carry.
func (m Matrix2D) ToSlice() []float64 { return m[:] }

func (m Matrix2D) IsIdentity() bool { return m.ApproxEqual(Identity(), 1e-10) }

// ApproxEqual compares component-wise within eps.
func (m Matrix2D) ApproxEqual(o Matrix2D, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) >= eps {
			return false
		}
	}
	return true
}
