// Package drawing holds the figure collection of one editing session: the
// figures in z-order, the selection, the style for the next figure and the
// filter applied to display queries.
//
// A Drawing is not safe for concurrent use. Every mutating call bumps the
// version and synchronously invokes the subscribed observers.
package drawing

import (
	"log/slog"
	"slices"

	"github.com/inamate/drawkit/internal/figure"
	"github.com/inamate/drawkit/internal/filter"
	"github.com/inamate/drawkit/internal/geom"
	"github.com/inamate/drawkit/internal/style"
)

// Observer is called after every change with the new version.
type Observer func(version uint64)

type subscriber struct {
	id int
	fn Observer
}

type Drawing struct {
	figures []*figure.Figure
	// selection is a sorted cache of indices whose figure is selected. The
	// selected flags are authoritative; UpdateSelection rebuilds this.
	selection []int

	pending   Pending
	filter    filter.Pipeline
	numbering *figure.Numbering
	resolver  style.Resolver

	subscribers []subscriber
	nextSubID   int
	version     uint64

	logger *slog.Logger
}

type Option func(*Drawing)

func WithLogger(l *slog.Logger) Option {
	return func(d *Drawing) { d.logger = l }
}

// WithResolver sets the collaborator that turns the Custom paint into a
// concrete one when a figure is created or restyled.
func WithResolver(r style.Resolver) Option {
	return func(d *Drawing) { d.resolver = r }
}

// WithPending sets the initial creation style.
func WithPending(p Pending) Option {
	return func(d *Drawing) { d.pending = p.clone() }
}

func New(opts ...Option) *Drawing {
	d := &Drawing{
		pending:   DefaultPending(),
		numbering: figure.NewNumbering(),
		resolver:  style.FixedResolver{Paint: style.Paint{A: 0xff}},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Subscribe registers fn for change notifications. The returned func
// removes it.
func (d *Drawing) Subscribe(fn Observer) (cancel func()) {
	d.nextSubID++
	id := d.nextSubID
	d.subscribers = append(d.subscribers, subscriber{id: id, fn: fn})
	return func() {
		d.subscribers = slices.DeleteFunc(d.subscribers, func(s subscriber) bool {
			return s.id == id
		})
	}
}

// Version counts the changes made so far.
func (d *Drawing) Version() uint64 { return d.version }

func (d *Drawing) changed() {
	d.version++
	for _, s := range slices.Clone(d.subscribers) {
		s.fn(d.version)
	}
}

// Update notifies observers after a figure was edited in place, as during
// an interactive gesture.
func (d *Drawing) Update() { d.changed() }

// Len is the number of figures, filtered or not.
func (d *Drawing) Len() int { return len(d.figures) }

// At returns the figure at index i in z-order.
func (d *Drawing) At(i int) *figure.Figure { return d.figures[i] }

// Figures returns every figure in z-order. The slice is a copy; the figures
// are live.
func (d *Drawing) Figures() []*figure.Figure { return slices.Clone(d.figures) }

// IndexOf returns the z-order index of f, or -1.
func (d *Drawing) IndexOf(f *figure.Figure) int { return slices.Index(d.figures, f) }

// Stream returns the figures the filter lets through, in z-order. With
// filtering disabled that is every figure.
func (d *Drawing) Stream() []*figure.Figure {
	return d.filter.Apply(d.figures)
}

func (d *Drawing) resolve(p *style.Paint) *style.Paint {
	if style.IsCustom(p) {
		return d.resolver.ResolvePaint(p)
	}
	return p
}

// InitiateFigure creates a zero-size figure of the pending kind at p with
// the pending style and appends it. It returns nil if the kind cannot be
// started from a bare point.
func (d *Drawing) InitiateFigure(p geom.Point) *figure.Figure {
	st := style.Style{
		Stroke: style.NewStroke(d.pending.LineType, d.pending.Width),
		Edge:   d.resolve(d.pending.Edge),
		Fill:   d.resolve(d.pending.Fill),
	}
	f := figure.Initiate(d.pending.Kind, st, p, d.pending.Arc)
	if f == nil {
		d.logger.Warn("no figure for kind", "kind", d.pending.Kind)
		return nil
	}
	d.numbering.Assign(f)
	d.figures = append(d.figures, f)
	d.changed()
	return f
}

// LastFigure returns the most recently appended figure, or nil.
func (d *Drawing) LastFigure() *figure.Figure {
	if len(d.figures) == 0 {
		return nil
	}
	return d.figures[len(d.figures)-1]
}

// RemoveLastFigure drops the most recent figure and reports whether there
// was one.
func (d *Drawing) RemoveLastFigure() bool {
	n := len(d.figures)
	if n == 0 {
		return false
	}
	d.figures[n-1] = nil
	d.figures = d.figures[:n-1]
	d.selection = slices.DeleteFunc(d.selection, func(i int) bool { return i >= n-1 })
	d.changed()
	return true
}

// FigureAt returns the topmost visible figure containing p, or nil.
func (d *Drawing) FigureAt(p geom.Point) *figure.Figure {
	var hit *figure.Figure
	for _, f := range d.Stream() {
		if f.Contains(p) {
			hit = f
		}
	}
	return hit
}

// Clear removes every figure.
func (d *Drawing) Clear() {
	if len(d.figures) == 0 {
		return
	}
	clear(d.figures)
	d.figures = d.figures[:0]
	d.selection = nil
	d.changed()
}

// ClearSelection unsets every selected flag. The selection cache is left
// for UpdateSelection.
func (d *Drawing) ClearSelection() {
	dirty := false
	for _, f := range d.figures {
		if f.Selected() {
			f.SetSelected(false)
			dirty = true
		}
	}
	if dirty {
		d.changed()
	}
}

// UpdateSelection rebuilds the selection cache from the selected flags.
func (d *Drawing) UpdateSelection() {
	d.rebuildSelection()
	d.logger.Debug("selection updated", "selection", d.selection)
	d.changed()
}

func (d *Drawing) rebuildSelection() {
	d.selection = d.selection[:0]
	for i, f := range d.figures {
		if f.Selected() {
			d.selection = append(d.selection, i)
		}
	}
}

func (d *Drawing) HasSelection() bool { return len(d.selection) > 0 }

// Selection returns the sorted selected indices.
func (d *Drawing) Selection() []int { return slices.Clone(d.selection) }

// Selected returns the selected figures in z-order.
func (d *Drawing) Selected() []*figure.Figure {
	out := make([]*figure.Figure, 0, len(d.selection))
	for _, i := range d.selection {
		if i < len(d.figures) {
			out = append(out, d.figures[i])
		}
	}
	return out
}

// DeleteSelected removes the selected figures, highest index first so the
// remaining indices stay valid.
func (d *Drawing) DeleteSelected() {
	for len(d.selection) > 0 {
		last := len(d.selection) - 1
		i := d.selection[last]
		d.selection = d.selection[:last]
		if i < 0 || i >= len(d.figures) {
			d.logger.Warn("selection index out of range", "index", i, "len", len(d.figures))
			continue
		}
		d.figures = slices.Delete(d.figures, i, i+1)
	}
	for _, f := range d.figures {
		f.SetSelected(false)
	}
	d.selection = nil
	d.changed()
}

// ApplyStyleToSelected restyles the selected figures. A nil argument leaves
// that attribute unchanged. Observers are notified only if some figure's
// style differs afterwards.
func (d *Drawing) ApplyStyleToSelected(fill, edge *style.Paint, stroke *style.Stroke) {
	fill, edge = d.resolve(fill), d.resolve(edge)
	dirty := false
	for _, i := range d.selection {
		if i < 0 || i >= len(d.figures) {
			d.logger.Warn("selection index out of range", "index", i, "len", len(d.figures))
			continue
		}
		f := d.figures[i]
		if fill != nil && !style.EqualPaint(f.FillPaint(), fill) {
			f.SetFillPaint(fill)
			dirty = true
		}
		if edge != nil && !style.EqualPaint(f.EdgePaint(), edge) {
			f.SetEdgePaint(edge)
			dirty = true
		}
		if stroke != nil && !stroke.Equal(f.Stroke()) {
			f.SetStroke(stroke)
			dirty = true
		}
	}
	if dirty {
		d.changed()
	}
}

// MoveSelectedUp brings the selected figures to the front of the sequence,
// keeping relative order within both groups. Nothing is notified when the
// order is already that way.
func (d *Drawing) MoveSelectedUp() { d.reorder(true) }

// MoveSelectedDown sends the selected figures to the back of the sequence,
// keeping relative order within both groups.
func (d *Drawing) MoveSelectedDown() { d.reorder(false) }

func (d *Drawing) reorder(selectedFirst bool) {
	var sel, rest []*figure.Figure
	for i, f := range d.figures {
		if _, ok := slices.BinarySearch(d.selection, i); ok {
			sel = append(sel, f)
		} else {
			rest = append(rest, f)
		}
	}
	var order []*figure.Figure
	if selectedFirst {
		order = append(sel, rest...)
	} else {
		order = append(rest, sel...)
	}
	if slices.Equal(order, d.figures) {
		return
	}
	d.figures = order
	d.rebuildSelection()
	d.changed()
}
