package drawing

import (
	"github.com/inamate/drawkit/internal/figure"
	"github.com/inamate/drawkit/internal/style"
)

// Pending is the style the next created figure gets. Fill and Edge may be
// nil (none) or style.Custom (resolved at creation).
type Pending struct {
	Kind     figure.Kind
	Fill     *style.Paint
	Edge     *style.Paint
	Width    float64
	LineType style.LineType
	Arc      float64
}

// DefaultPending is a black, solid, one unit wide circle without fill.
func DefaultPending() Pending {
	return Pending{
		Kind:     figure.Circle,
		Edge:     style.MustParsePaint("black"),
		Width:    1,
		LineType: style.LineSolid,
		Arc:      10,
	}
}

func (p Pending) clone() Pending {
	p.Fill = p.Fill.Clone()
	p.Edge = p.Edge.Clone()
	return p
}

// Stroke is the stroke the pending line type and width produce.
func (p Pending) Stroke() *style.Stroke {
	return style.NewStroke(p.LineType, p.Width)
}

// Pending returns a copy of the creation style.
func (d *Drawing) Pending() Pending { return d.pending.clone() }

func (d *Drawing) SetFigureKind(k figure.Kind) {
	if d.pending.Kind == k {
		return
	}
	d.pending.Kind = k
	d.changed()
}

func (d *Drawing) SetFillPaint(p *style.Paint) {
	if style.EqualPaint(d.pending.Fill, p) {
		return
	}
	d.pending.Fill = p.Clone()
	d.changed()
}

func (d *Drawing) SetEdgePaint(p *style.Paint) {
	if style.EqualPaint(d.pending.Edge, p) {
		return
	}
	d.pending.Edge = p.Clone()
	d.changed()
}

// SetEdgeWidth sets the pending stroke width; negative widths become 0.
func (d *Drawing) SetEdgeWidth(w float64) {
	w = max(0, w)
	if d.pending.Width == w {
		return
	}
	d.pending.Width = w
	d.changed()
}

func (d *Drawing) SetLineType(t style.LineType) {
	if d.pending.LineType == t {
		return
	}
	d.pending.LineType = t
	d.changed()
}

// SetCornerArc sets the initial corner radius of rounded rectangles.
func (d *Drawing) SetCornerArc(arc float64) {
	arc = max(0, arc)
	if d.pending.Arc == arc {
		return
	}
	d.pending.Arc = arc
	d.changed()
}
