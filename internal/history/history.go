// Package history provides snapshot-based undo and redo over any state that
// can capture and restore itself.
//
// The command layer calls Record before every undoable mutation and Cancel
// when that mutation turned out to change nothing. Undo and Redo swap the
// originator's state with the top of the respective stack, parking the
// current state on the other one.
package history

// Originator produces and restores opaque snapshots of its own state.
// Snapshots must not share mutable storage with the live state.
type Originator[S any] interface {
	Snapshot() S
	Restore(s S) error
}

// Manager holds the undo and redo stacks for one Originator. It is not safe
// for concurrent use.
type Manager[S any] struct {
	origin    Originator[S]
	undoStack []S
	redoStack []S

	// size is the configured depth. It is reported but not enforced.
	size int
}

// NewManager creates a manager for o. size is kept as configuration only;
// both stacks grow without bound.
func NewManager[S any](o Originator[S], size int) *Manager[S] {
	return &Manager[S]{origin: o, size: size}
}

// Record pushes a snapshot of the current state onto the undo stack.
// The redo stack is left as is.
func (m *Manager[S]) Record() {
	m.undoStack = append(m.undoStack, m.origin.Snapshot())
}

// Cancel drops the most recent Record without restoring it.
func (m *Manager[S]) Cancel() {
	if len(m.undoStack) > 0 {
		m.undoStack = pop(m.undoStack)
	}
}

// Undo restores the most recent undo snapshot and parks the current state
// on the redo stack. With nothing to undo it does nothing. If the restore
// fails both stacks are left as they were.
func (m *Manager[S]) Undo() error {
	return m.swap(&m.undoStack, &m.redoStack)
}

// Redo is the mirror of Undo.
func (m *Manager[S]) Redo() error {
	return m.swap(&m.redoStack, &m.undoStack)
}

func (m *Manager[S]) swap(from, to *[]S) error {
	if len(*from) == 0 {
		return nil
	}
	current := m.origin.Snapshot()
	top := (*from)[len(*from)-1]
	if err := m.origin.Restore(top); err != nil {
		return err
	}
	*from = pop(*from)
	*to = append(*to, current)
	return nil
}

func pop[S any](stack []S) []S {
	var zero S
	stack[len(stack)-1] = zero
	return stack[:len(stack)-1]
}

func (m *Manager[S]) UndoDepth() int { return len(m.undoStack) }
func (m *Manager[S]) RedoDepth() int { return len(m.redoStack) }
func (m *Manager[S]) CanUndo() bool  { return len(m.undoStack) > 0 }
func (m *Manager[S]) CanRedo() bool  { return len(m.redoStack) > 0 }

// Size is the configured depth.
func (m *Manager[S]) Size() int { return m.size }

// Clear empties both stacks.
func (m *Manager[S]) Clear() {
	m.undoStack = nil
	m.redoStack = nil
}
