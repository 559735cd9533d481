package drawing

import (
	"errors"

	"github.com/inamate/drawkit/internal/figure"
)

var ErrNilMemento = errors.New("drawing: nil memento")

// Memento is an opaque deep copy of the figure sequence.
type Memento struct {
	figures []*figure.Figure
}

// Len is the number of figures captured.
func (m *Memento) Len() int { return len(m.figures) }

func cloneFigures(figs []*figure.Figure) []*figure.Figure {
	out := make([]*figure.Figure, len(figs))
	for i, f := range figs {
		out[i] = f.Clone()
	}
	return out
}

// Snapshot captures the figures, selection flags included.
func (d *Drawing) Snapshot() *Memento {
	return &Memento{figures: cloneFigures(d.figures)}
}

// Restore replaces the figures with copies of those in m and rebuilds the
// selection from their flags. m itself stays untouched and can be restored
// again.
func (d *Drawing) Restore(m *Memento) error {
	if m == nil {
		d.logger.Error("restore rejected", "error", ErrNilMemento)
		return ErrNilMemento
	}
	d.figures = cloneFigures(m.figures)
	d.rebuildSelection()
	d.changed()
	return nil
}
