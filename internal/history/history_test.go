package history_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/drawkit/internal/drawing"
	"github.com/inamate/drawkit/internal/figure"
	"github.com/inamate/drawkit/internal/geom"
	"github.com/inamate/drawkit/internal/history"
	"github.com/inamate/drawkit/internal/style"
)

// counter is a minimal originator over an int.
type counter struct {
	n       int
	failing bool
}

var errRestore = errors.New("restore failed")

func (c *counter) Snapshot() int { return c.n }

func (c *counter) Restore(n int) error {
	if c.failing {
		return errRestore
	}
	c.n = n
	return nil
}

func TestUndoRedo(t *testing.T) {
	c := &counter{}
	h := history.NewManager[int](c, 10)

	for i := 1; i <= 3; i++ {
		h.Record()
		c.n = i
	}
	assert.Equal(t, 3, h.UndoDepth())

	require.NoError(t, h.Undo())
	assert.Equal(t, 2, c.n)
	require.NoError(t, h.Undo())
	assert.Equal(t, 1, c.n)
	assert.Equal(t, 1, h.UndoDepth())
	assert.Equal(t, 2, h.RedoDepth())

	require.NoError(t, h.Redo())
	assert.Equal(t, 2, c.n)
	require.NoError(t, h.Redo())
	assert.Equal(t, 3, c.n)
	assert.False(t, h.CanRedo())
	assert.True(t, h.CanUndo())
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	c := &counter{n: 7}
	h := history.NewManager[int](c, 0)

	require.NoError(t, h.Undo())
	require.NoError(t, h.Redo())
	h.Cancel()
	assert.Equal(t, 7, c.n)
	assert.Zero(t, h.UndoDepth())
	assert.Zero(t, h.RedoDepth())
}

func TestRecordKeepsRedo(t *testing.T) {
	c := &counter{}
	h := history.NewManager[int](c, 10)
	h.Record()
	c.n = 1
	require.NoError(t, h.Undo())

	h.Record()
	assert.Equal(t, 1, h.RedoDepth())
}

func TestCancelIsPureDiscard(t *testing.T) {
	c := &counter{n: 4}
	h := history.NewManager[int](c, 10)
	h.Record()
	c.n = 5
	before := h.UndoDepth()

	h.Record()
	h.Cancel()
	assert.Equal(t, before, h.UndoDepth())
	assert.Equal(t, 5, c.n)

	require.NoError(t, h.Undo())
	assert.Equal(t, 4, c.n)
}

func TestFailedRestoreLeavesStacks(t *testing.T) {
	c := &counter{}
	h := history.NewManager[int](c, 10)
	h.Record()
	c.n = 1
	c.failing = true

	assert.ErrorIs(t, h.Undo(), errRestore)
	assert.Equal(t, 1, h.UndoDepth())
	assert.Zero(t, h.RedoDepth())
	assert.Equal(t, 1, c.n)
}

func TestSizeNotEnforced(t *testing.T) {
	c := &counter{}
	h := history.NewManager[int](c, 2)
	for range 5 {
		h.Record()
	}
	assert.Equal(t, 2, h.Size())
	assert.Equal(t, 5, h.UndoDepth())

	h.Clear()
	assert.False(t, h.CanUndo())
}

func TestDrawingRoundTrip(t *testing.T) {
	d := drawing.New()
	h := history.NewManager[*drawing.Memento](d, 0)

	var states [][]*figure.Figure
	capture := func() {
		var figs []*figure.Figure
		for _, f := range d.Figures() {
			figs = append(figs, f.Clone())
		}
		states = append(states, figs)
	}

	steps := []func(){
		func() {
			f := d.InitiateFigure(geom.Pt(0, 0))
			f.SetLastPoint(geom.Pt(10, 10))
			f.Normalize()
		},
		func() {
			d.SetFigureKind(figure.Rectangle)
			f := d.InitiateFigure(geom.Pt(5, 5))
			f.SetLastPoint(geom.Pt(30, 20))
			f.Normalize()
		},
		func() {
			d.At(0).SetSelected(true)
			d.UpdateSelection()
		},
		func() { d.ApplyStyleToSelected(style.MustParsePaint("teal"), nil, nil) },
		func() { d.MoveSelectedDown() },
		func() { d.At(0).SetRotation(geom.RotateDegrees(30)) },
		func() { d.DeleteSelected() },
	}
	for _, step := range steps {
		capture()
		h.Record()
		step()
	}

	for i := len(steps) - 1; i >= 0; i-- {
		require.NoError(t, h.Undo())
		if diff := cmp.Diff(states[i], d.Figures(), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("undo to state %d mismatch (-want +got):\n%s", i, diff)
		}
	}
	assert.Zero(t, d.Len())

	for range steps {
		require.NoError(t, h.Redo())
	}
	assert.Equal(t, 1, d.Len())
	assert.False(t, d.HasSelection())
}
