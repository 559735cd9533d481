package engine

import (
	"encoding/json"
	"log/slog"

	"github.com/inamate/drawkit/internal/drawing"
	"github.com/inamate/drawkit/internal/figure"
	"github.com/inamate/drawkit/internal/geom"
	"github.com/inamate/drawkit/internal/history"
)

// Engine owns one drawing and its history. It turns pointer gestures and
// commands from the frontend into model operations and answers render and
// hit-test queries. It is not safe for concurrent use.
type Engine struct {
	drawing *drawing.Drawing
	history *history.Manager[*drawing.Memento]

	tool Tool
	g    gesture

	logger *slog.Logger
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTool sets the initial tool. The default is ToolCreate.
func WithTool(t Tool) Option {
	return func(e *Engine) { e.tool = t }
}

// NewEngine creates an engine over d with an undo history of historySize.
func NewEngine(d *drawing.Drawing, historySize int, opts ...Option) *Engine {
	e := &Engine{
		drawing: d,
		tool:    ToolCreate,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.history = history.NewManager[*drawing.Memento](d, historySize)
	return e
}

// Drawing returns the underlying model.
func (e *Engine) Drawing() *drawing.Drawing { return e.drawing }

func (e *Engine) Tool() Tool { return e.tool }

// SetTool switches the active tool, abandoning any gesture in progress.
func (e *Engine) SetTool(t Tool) {
	if t == e.tool {
		return
	}
	e.abort()
	e.tool = t
}

// SetFigureKind changes the kind the create tool draws, abandoning any
// creation in progress.
func (e *Engine) SetFigureKind(k figure.Kind) {
	if e.tool == ToolCreate {
		e.abort()
	}
	e.drawing.SetFigureKind(k)
}

// --- Commands ---

// command runs op between a history record and a cancel if the drawing
// did not change.
func (e *Engine) command(name string, op func()) {
	before := e.drawing.Version()
	e.history.Record()
	op()
	if e.drawing.Version() == before {
		e.history.Cancel()
		return
	}
	e.logger.Debug("command", "name", name, "version", e.drawing.Version())
}

func (e *Engine) DeleteSelected() {
	if !e.drawing.HasSelection() {
		return
	}
	e.command("delete", e.drawing.DeleteSelected)
}

// ApplyStyle applies the pending fill, edge and stroke to the selection.
func (e *Engine) ApplyStyle() {
	if !e.drawing.HasSelection() {
		return
	}
	p := e.drawing.Pending()
	e.command("style", func() {
		e.drawing.ApplyStyleToSelected(p.Fill, p.Edge, p.Stroke())
	})
}

func (e *Engine) MoveUp() {
	if !e.drawing.HasSelection() {
		return
	}
	e.command("up", e.drawing.MoveSelectedUp)
}

func (e *Engine) MoveDown() {
	if !e.drawing.HasSelection() {
		return
	}
	e.command("down", e.drawing.MoveSelectedDown)
}

func (e *Engine) Clear() {
	e.abort()
	e.command("clear", e.drawing.Clear)
}

func (e *Engine) Undo() error {
	e.abort()
	return e.history.Undo()
}

func (e *Engine) Redo() error {
	e.abort()
	return e.history.Redo()
}

// --- Queries ---

// Render compiles the visible figures into draw commands, back to front.
func (e *Engine) Render() []DrawCommand {
	return CompileDrawCommands(e.drawing.Stream())
}

// RenderJSON is Render serialized for the frontend.
func (e *Engine) RenderJSON() string {
	result, _ := DrawCommandsToJSON(e.Render())
	return result
}

// HitTest returns the ID of the topmost visible figure at (x, y), or "".
func (e *Engine) HitTest(x, y float64) string {
	if f := e.drawing.FigureAt(geom.Pt(x, y)); f != nil {
		return f.ID()
	}
	return ""
}

// SelectionBounds is the union of the absolute bounds of the selection.
func (e *Engine) SelectionBounds() geom.Rect {
	return SelectionBounds(e.drawing.Selected())
}

// Info describes every figure in z-order.
func (e *Engine) Info() []figure.Info {
	figs := e.drawing.Figures()
	out := make([]figure.Info, len(figs))
	for i, f := range figs {
		out[i] = f.Info()
	}
	return out
}

// State is a summary of the editor for the frontend's toolbars.
type State struct {
	Version   uint64       `json:"version"`
	Tool      Tool         `json:"tool"`
	Figures   int          `json:"figures"`
	Selection []int        `json:"selection"`
	UndoDepth int          `json:"undoDepth"`
	RedoDepth int          `json:"redoDepth"`
	Pending   PendingState `json:"pending"`
	Filter    FilterState  `json:"filter"`
}

type PendingState struct {
	Kind     figure.Kind `json:"kind"`
	Fill     string      `json:"fill"`
	Edge     string      `json:"edge"`
	Width    float64     `json:"width"`
	LineType string      `json:"lineType"`
	Arc      float64     `json:"arc"`
}

type FilterState struct {
	Enabled   bool          `json:"enabled"`
	Kinds     []figure.Kind `json:"kinds"`
	Fill      string        `json:"fill,omitempty"`
	Edge      string        `json:"edge,omitempty"`
	LineTypes []string      `json:"lineTypes"`
}

func (e *Engine) State() State {
	p := e.drawing.Pending()
	f := e.drawing.Filter()
	lineTypes := make([]string, 0, len(f.LineTypes()))
	for _, t := range f.LineTypes() {
		lineTypes = append(lineTypes, t.String())
	}
	var fill, edge string
	if pf := f.Fill(); pf != nil {
		fill = pf.String()
	}
	if pe := f.Edge(); pe != nil {
		edge = pe.String()
	}
	return State{
		Version:   e.drawing.Version(),
		Tool:      e.tool,
		Figures:   e.drawing.Len(),
		Selection: e.drawing.Selection(),
		UndoDepth: e.history.UndoDepth(),
		RedoDepth: e.history.RedoDepth(),
		Pending: PendingState{
			Kind:     p.Kind,
			Fill:     p.Fill.String(),
			Edge:     p.Edge.String(),
			Width:    p.Width,
			LineType: p.LineType.String(),
			Arc:      p.Arc,
		},
		Filter: FilterState{
			Enabled:   f.Enabled(),
			Kinds:     f.Kinds(),
			Fill:      fill,
			Edge:      edge,
			LineTypes: lineTypes,
		},
	}
}

// StateJSON is State serialized for the frontend.
func (e *Engine) StateJSON() string {
	data, _ := json.Marshal(e.State())
	return string(data)
}

func (e *Engine) UndoDepth() int { return e.history.UndoDepth() }
func (e *Engine) RedoDepth() int { return e.history.RedoDepth() }
