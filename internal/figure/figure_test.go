package figure

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/drawkit/internal/geom"
	"github.com/inamate/drawkit/internal/style"
	"github.com/inamate/drawkit/internal/typeid"
)

func testStyle() style.Style {
	return style.Style{
		Stroke: style.NewStroke(style.LineDashed, 2),
		Edge:   style.MustParsePaint("black"),
		Fill:   style.MustParsePaint("red"),
	}
}

func sampleFigures() map[string]*Figure {
	st := testStyle()
	return map[string]*Figure{
		"circle":  NewCircle(st, geom.Pt(10, 10), 10),
		"rect":    NewRectangle(st, geom.Pt(0, 0), geom.Pt(20, 10)),
		"rounded": NewRoundedRectangle(st, geom.Pt(5, 5), geom.Pt(45, 25), 4),
		"polygon": func() *Figure {
			p := NewPolygon(st, geom.Pt(0, 0), geom.Pt(10, 0))
			p.AddPoint(geom.Pt(10, 10))
			p.AddPoint(geom.Pt(3, 12))
			return p
		}(),
	}
}

func assertPointNear(t *testing.T, want, got geom.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
}

func TestKindParse(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind("rounded-rectangle")
	require.NoError(t, err)
	assert.Equal(t, RoundedRectangle, got)

	_, err = ParseKind("triangle")
	assert.Error(t, err)
}

func TestNumberingPerKind(t *testing.T) {
	n := NewNumbering()
	c1 := NewCircle(testStyle(), geom.Pt(0, 0), 1)
	c2 := NewCircle(testStyle(), geom.Pt(0, 0), 1)
	r1 := NewRectangle(testStyle(), geom.Pt(0, 0), geom.Pt(1, 1))
	n.Assign(c1)
	n.Assign(r1)
	n.Assign(c2)

	assert.Equal(t, 1, c1.Number())
	assert.Equal(t, 2, c2.Number())
	assert.Equal(t, 1, r1.Number())
	assert.Equal(t, "Circle 2", c2.Name())
	assert.Equal(t, 2, n.Count(Circle))
	assert.NoError(t, typeid.Validate(c1.ID(), typeid.PrefixCircle))
	assert.NoError(t, typeid.Validate(r1.ID(), typeid.PrefixRectangle))
}

func TestInitiate(t *testing.T) {
	p := geom.Pt(3, 4)
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			f := Initiate(k, testStyle(), p, 5)
			require.NotNil(t, f)
			assert.Equal(t, k, f.Kind())
			assert.True(t, f.Degenerate())
			assert.True(t, f.Transform().IsIdentity())
		})
	}
	assert.Nil(t, Initiate(Kind(42), testStyle(), p, 0))
}

func TestCloneIsIndependent(t *testing.T) {
	for name, f := range sampleFigures() {
		t.Run(name, func(t *testing.T) {
			f.SetSelected(true)
			f.SetTranslation(geom.Translate(3, 4))
			c := f.Clone()
			require.True(t, f.Equal(c))

			c.SetLastPoint(geom.Pt(100, 100))
			c.FillPaint().R = 7
			c.Stroke().Dash[0] = 42
			c.SetSelected(false)

			assert.False(t, f.Equal(c))
			assert.Equal(t, uint8(0xff), f.FillPaint().R)
			assert.NotEqual(t, 42.0, f.Stroke().Dash[0])
			assert.True(t, f.Selected())
		})
	}
}

func TestClonePolygonVertices(t *testing.T) {
	p := sampleFigures()["polygon"]
	c := p.Clone()
	c.AddPoint(geom.Pt(50, 50))
	assert.Len(t, p.Points(), 4)
	assert.Len(t, c.Points(), 5)
}

func TestSetLastPoint(t *testing.T) {
	st := testStyle()

	circle := NewCircle(st, geom.Pt(0, 0), 0)
	circle.SetLastPoint(geom.Pt(6, 10))
	assert.Equal(t, geom.Rect{Width: 6, Height: 6}, circle.LocalBounds())

	rect := NewRectangle(st, geom.Pt(2, 2), geom.Pt(2, 2))
	rect.SetLastPoint(geom.Pt(12, 7))
	assert.Equal(t, geom.Rect{X: 2, Y: 2, Width: 10, Height: 5}, rect.LocalBounds())

	rounded := NewRoundedRectangle(st, geom.Pt(0, 0), geom.Pt(0, 0), 0)
	rounded.SetLastPoint(geom.Pt(-8, 4))
	assert.Equal(t, geom.Rect{X: -8, Y: 0, Width: 8, Height: 4}, rounded.LocalBounds())

	poly := NewPolygon(st, geom.Pt(0, 0), geom.Pt(0, 0))
	poly.SetLastPoint(geom.Pt(9, 9))
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 9, Y: 9}}, poly.Points())
}

func TestNormalizeKeepsPose(t *testing.T) {
	for name, f := range sampleFigures() {
		t.Run(name, func(t *testing.T) {
			f.SetRotation(geom.Rotate(0.3))
			f.SetScale(geom.Scale(2, 1.5))
			centerBefore := f.Center()
			boundsBefore := f.Bounds()

			f.Normalize()

			assertPointNear(t, centerBefore, f.Center())
			assertPointNear(t, geom.Point{}, f.shape.centroid())
			b := f.Bounds()
			assert.InDelta(t, boundsBefore.X, b.X, 1e-9)
			assert.InDelta(t, boundsBefore.Width, b.Width, 1e-9)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for name, f := range sampleFigures() {
		t.Run(name, func(t *testing.T) {
			f.SetTranslation(geom.Translate(7, -3))
			f.Normalize()
			once := f.Clone()
			center := f.Center()

			f.Normalize()

			if diff := cmp.Diff(once, f); diff != "" {
				t.Errorf("second Normalize changed the figure (-once +twice):\n%s", diff)
			}
			assert.Equal(t, center, f.Center())
		})
	}
}

func TestNormalizeFoldsIntoTranslation(t *testing.T) {
	r := NewRectangle(testStyle(), geom.Pt(10, 20), geom.Pt(30, 40))
	r.Normalize()
	assert.Equal(t, geom.Translate(20, 30), r.Translation())
	assert.Equal(t, geom.Rect{X: -10, Y: -10, Width: 20, Height: 20}, r.LocalBounds())
	assert.Equal(t, geom.Pt(20, 30), r.Center())
}

func TestRotateAboutCenterAfterNormalize(t *testing.T) {
	r := NewRectangle(testStyle(), geom.Pt(10, 20), geom.Pt(30, 40))
	r.Normalize()
	r.SetRotation(geom.Rotate(math.Pi / 3))
	r.SetScale(geom.Scale(3, 3))
	assertPointNear(t, geom.Pt(20, 30), r.Center())
}

func TestContains(t *testing.T) {
	figs := sampleFigures()
	tests := []struct {
		name string
		fig  string
		p    geom.Point
		want bool
	}{
		{"circle center", "circle", geom.Pt(10, 10), true},
		{"circle inside", "circle", geom.Pt(5, 5), true},
		{"circle bbox corner", "circle", geom.Pt(1, 1), false},
		{"rect inside", "rect", geom.Pt(19, 9), true},
		{"rect outside", "rect", geom.Pt(21, 5), false},
		{"rounded middle", "rounded", geom.Pt(25, 15), true},
		{"rounded cut corner", "rounded", geom.Pt(5.5, 5.5), false},
		{"rounded edge", "rounded", geom.Pt(5.5, 15), true},
		{"polygon inside", "polygon", geom.Pt(5, 5), true},
		{"polygon outside", "polygon", geom.Pt(9, 11.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, figs[tt.fig].Contains(tt.p))
		})
	}
}

func TestContainsUsesTransform(t *testing.T) {
	r := NewRectangle(testStyle(), geom.Pt(0, 0), geom.Pt(10, 10))
	r.SetTranslation(geom.Translate(100, 0))
	assert.False(t, r.Contains(geom.Pt(5, 5)))
	assert.True(t, r.Contains(geom.Pt(105, 5)))

	r.SetScale(geom.Scale(0, 1))
	assert.False(t, r.Contains(geom.Pt(100, 5)))
}

func TestPolygonPoints(t *testing.T) {
	p := NewPolygon(testStyle(), geom.Pt(0, 0), geom.Pt(1, 1))
	p.AddPoint(geom.Pt(2, 0))
	p.RemoveLastPoint()
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, p.Points())

	p.RemoveLastPoint()
	p.RemoveLastPoint()
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}}, p.Points())
}

func TestSetArc(t *testing.T) {
	tests := []struct {
		name string
		p    geom.Point
		want float64
	}{
		{"right of frame, above bottom", geom.Pt(50, 20), 5},
		{"below frame, left of right edge", geom.Pt(43, 30), 2},
		{"inside frame", geom.Pt(20, 10), 0},
		{"beyond far corner", geom.Pt(50, 30), 0},
		{"clamped to half smaller side", geom.Pt(50, 0), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRoundedRectangle(testStyle(), geom.Pt(5, 5), geom.Pt(45, 25), 0)
			r.SetArc(tt.p)
			assert.Equal(t, tt.want, r.Arc())
		})
	}
}

func TestNewRoundedRectangleClampsArc(t *testing.T) {
	r := NewRoundedRectangle(testStyle(), geom.Pt(0, 0), geom.Pt(10, 4), 50)
	assert.Equal(t, 2.0, r.Arc())
}

func TestWrongKindPanics(t *testing.T) {
	c := NewCircle(testStyle(), geom.Pt(0, 0), 1)
	assert.Panics(t, func() { c.SetArc(geom.Pt(1, 1)) })
	assert.Panics(t, func() { c.AddPoint(geom.Pt(1, 1)) })
	assert.Panics(t, func() { c.RemoveLastPoint() })
	assert.Panics(t, func() { NewRectangle(testStyle(), geom.Pt(0, 0), geom.Pt(1, 1)).Arc() })
}

func TestLineTypeFromStroke(t *testing.T) {
	f := NewCircle(testStyle(), geom.Pt(0, 0), 1)
	assert.Equal(t, style.LineDashed, f.LineType())
	f.SetStroke(style.NewStroke(style.LineSolid, 1))
	assert.Equal(t, style.LineSolid, f.LineType())
	f.SetStroke(nil)
	assert.Equal(t, style.LineNone, f.LineType())
}

func TestPathIsClosed(t *testing.T) {
	for name, f := range sampleFigures() {
		t.Run(name, func(t *testing.T) {
			path := f.Path()
			require.NotEmpty(t, path)
			assert.Equal(t, "M", path[0][0])
			assert.Equal(t, PathCommand{"Z"}, path[len(path)-1])
		})
	}
}

func TestInfo(t *testing.T) {
	r := NewRectangle(testStyle(), geom.Pt(0, 0), geom.Pt(20, 10))
	r.Normalize()
	r.SetTranslation(r.Translation().Multiply(geom.Translate(5, 5)))
	info := r.Info()
	assert.Equal(t, "Rectangle", info.Name)
	assert.Equal(t, "#ff0000", info.Fill)
	assert.Equal(t, "dashed", info.LineType)
	assert.Equal(t, geom.Pt(5, 5), info.TopLeft)
	assert.Equal(t, geom.Pt(25, 15), info.BottomRight)
	assert.Equal(t, geom.Pt(20, 10), info.Size)
	assert.Equal(t, geom.Pt(15, 10), info.Center)
}
