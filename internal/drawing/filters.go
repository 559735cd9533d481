package drawing

import (
	"github.com/inamate/drawkit/internal/figure"
	"github.com/inamate/drawkit/internal/filter"
	"github.com/inamate/drawkit/internal/style"
)

// Filter returns a copy of the filter state.
func (d *Drawing) Filter() filter.Pipeline { return d.filter.Clone() }

func (d *Drawing) notifyIf(changed bool) {
	if changed {
		d.changed()
	}
}

func (d *Drawing) SetFilterEnabled(on bool) { d.notifyIf(d.filter.SetEnabled(on)) }

func (d *Drawing) AddKindFilter(k figure.Kind) { d.notifyIf(d.filter.AddKind(k)) }

func (d *Drawing) RemoveKindFilter(k figure.Kind) { d.notifyIf(d.filter.RemoveKind(k)) }

// SetFillFilter filters on fill paint; nil removes the filter.
func (d *Drawing) SetFillFilter(p *style.Paint) { d.notifyIf(d.filter.SetFill(p)) }

// SetEdgeFilter filters on edge paint; nil removes the filter.
func (d *Drawing) SetEdgeFilter(p *style.Paint) { d.notifyIf(d.filter.SetEdge(p)) }

func (d *Drawing) AddLineTypeFilter(t style.LineType) { d.notifyIf(d.filter.AddLineType(t)) }

func (d *Drawing) RemoveLineTypeFilter(t style.LineType) {
	d.notifyIf(d.filter.RemoveLineType(t))
}
