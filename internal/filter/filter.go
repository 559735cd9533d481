// Package filter gates which figures a query or render pass sees.
//
// Four categories are combined with AND; within a category the members
// combine with OR. An empty category lets everything through.
package filter

import (
	"slices"

	"github.com/inamate/drawkit/internal/figure"
	"github.com/inamate/drawkit/internal/style"
)

// Predicate tests one figure.
type Predicate func(f *figure.Figure) bool

// KindIn passes figures whose kind is one of kinds.
func KindIn(kinds ...figure.Kind) Predicate {
	return func(f *figure.Figure) bool {
		return slices.Contains(kinds, f.Kind())
	}
}

// FillIs passes figures filled with p.
func FillIs(p *style.Paint) Predicate {
	return func(f *figure.Figure) bool {
		return style.EqualPaint(f.FillPaint(), p)
	}
}

// EdgeIs passes figures edged with p.
func EdgeIs(p *style.Paint) Predicate {
	return func(f *figure.Figure) bool {
		return style.EqualPaint(f.EdgePaint(), p)
	}
}

// LineTypeIn passes figures whose line type is one of types.
func LineTypeIn(types ...style.LineType) Predicate {
	return func(f *figure.Figure) bool {
		return slices.Contains(types, f.LineType())
	}
}

// All passes figures every predicate passes.
func All(preds ...Predicate) Predicate {
	return func(f *figure.Figure) bool {
		for _, p := range preds {
			if !p(f) {
				return false
			}
		}
		return true
	}
}

// Pipeline is the toggleable filter state of a drawing. The zero value is
// disabled with every category empty.
type Pipeline struct {
	enabled   bool
	kinds     []figure.Kind
	fill      *style.Paint
	edge      *style.Paint
	lineTypes []style.LineType
}

func (p *Pipeline) Enabled() bool { return p.enabled }

// SetEnabled switches filtering on or off and reports whether it changed.
func (p *Pipeline) SetEnabled(on bool) bool {
	changed := p.enabled != on
	p.enabled = on
	return changed
}

// AddKind adds k to the type filter; false if already present.
func (p *Pipeline) AddKind(k figure.Kind) bool {
	if slices.Contains(p.kinds, k) {
		return false
	}
	p.kinds = append(p.kinds, k)
	slices.Sort(p.kinds)
	return true
}

// RemoveKind removes k from the type filter; false if absent.
func (p *Pipeline) RemoveKind(k figure.Kind) bool {
	i := slices.Index(p.kinds, k)
	if i < 0 {
		return false
	}
	p.kinds = slices.Delete(p.kinds, i, i+1)
	return true
}

func (p *Pipeline) Kinds() []figure.Kind { return slices.Clone(p.kinds) }

// SetFill sets the fill color filter; nil clears it. Reports a change.
func (p *Pipeline) SetFill(paint *style.Paint) bool {
	if style.EqualPaint(p.fill, paint) {
		return false
	}
	p.fill = paint.Clone()
	return true
}

func (p *Pipeline) Fill() *style.Paint { return p.fill.Clone() }

// SetEdge sets the edge color filter; nil clears it. Reports a change.
func (p *Pipeline) SetEdge(paint *style.Paint) bool {
	if style.EqualPaint(p.edge, paint) {
		return false
	}
	p.edge = paint.Clone()
	return true
}

func (p *Pipeline) Edge() *style.Paint { return p.edge.Clone() }

// AddLineType adds t to the line filter; false if already present.
func (p *Pipeline) AddLineType(t style.LineType) bool {
	if slices.Contains(p.lineTypes, t) {
		return false
	}
	p.lineTypes = append(p.lineTypes, t)
	slices.Sort(p.lineTypes)
	return true
}

// RemoveLineType removes t from the line filter; false if absent.
func (p *Pipeline) RemoveLineType(t style.LineType) bool {
	i := slices.Index(p.lineTypes, t)
	if i < 0 {
		return false
	}
	p.lineTypes = slices.Delete(p.lineTypes, i, i+1)
	return true
}

func (p *Pipeline) LineTypes() []style.LineType { return slices.Clone(p.lineTypes) }

// Predicate composes the active categories, ignoring the enabled flag.
func (p *Pipeline) Predicate() Predicate {
	var preds []Predicate
	if len(p.kinds) > 0 {
		preds = append(preds, KindIn(slices.Clone(p.kinds)...))
	}
	if p.fill != nil {
		preds = append(preds, FillIs(p.fill.Clone()))
	}
	if p.edge != nil {
		preds = append(preds, EdgeIs(p.edge.Clone()))
	}
	if len(p.lineTypes) > 0 {
		preds = append(preds, LineTypeIn(slices.Clone(p.lineTypes)...))
	}
	return All(preds...)
}

// Apply returns the figures that pass, in their original order. When
// filtering is disabled every figure passes. The result is a new slice.
func (p *Pipeline) Apply(figs []*figure.Figure) []*figure.Figure {
	if !p.enabled {
		return slices.Clone(figs)
	}
	keep := p.Predicate()
	out := make([]*figure.Figure, 0, len(figs))
	for _, f := range figs {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a copy sharing no storage with p.
func (p *Pipeline) Clone() Pipeline {
	return Pipeline{
		enabled:   p.enabled,
		kinds:     slices.Clone(p.kinds),
		fill:      p.fill.Clone(),
		edge:      p.edge.Clone(),
		lineTypes: slices.Clone(p.lineTypes),
	}
}
