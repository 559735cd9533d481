package engine

import (
	"fmt"
	"strings"

	"github.com/inamate/drawkit/internal/figure"
	"github.com/inamate/drawkit/internal/geom"
)

// Tool is the interaction mode pointer events are routed to.
type Tool int

const (
	ToolCreate Tool = iota
	ToolSelect
	ToolMove
	ToolRotate
	ToolScale
)

var toolNames = [...]string{"create", "select", "move", "rotate", "scale"}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

func (t Tool) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tool) UnmarshalText(text []byte) error {
	parsed, err := ParseTool(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func ParseTool(s string) (Tool, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range toolNames {
		if name == key {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft   Button = 1
	ButtonMiddle Button = 2
	ButtonRight  Button = 3
)

// gesture is the state of the pointer interaction in progress.
type gesture struct {
	pressed bool
	// step counts completed phases of a creation gesture; 0 means idle.
	step    int
	current *figure.Figure

	start   geom.Point
	center  geom.Point
	initial geom.Matrix2D
}

// PointerDown handles a button press at p.
func (e *Engine) PointerDown(p geom.Point, b Button) {
	e.g.pressed = true
	if b != ButtonLeft {
		return
	}
	switch e.tool {
	case ToolCreate:
		k := e.drawing.Pending().Kind
		if k != figure.Polygon && e.g.step == 0 {
			e.startCreation(p)
		}
	case ToolMove, ToolRotate, ToolScale:
		e.startTransform(p)
	}
}

// PointerMove handles pointer motion, with or without a button held.
func (e *Engine) PointerMove(p geom.Point) {
	switch e.tool {
	case ToolCreate:
		e.moveCreation(p)
	case ToolMove, ToolRotate, ToolScale:
		if e.g.pressed {
			e.dragTransform(p)
		}
	}
}

// PointerUp handles a button release at p.
func (e *Engine) PointerUp(p geom.Point, b Button) {
	e.g.pressed = false
	if b != ButtonLeft {
		return
	}
	switch e.tool {
	case ToolCreate:
		if e.g.step != 1 {
			return
		}
		switch e.g.current.Kind() {
		case figure.Circle, figure.Rectangle:
			e.g.current.SetLastPoint(p)
			e.finishCreation()
		case figure.RoundedRectangle:
			e.g.current.SetLastPoint(p)
			e.g.step = 2
			e.drawing.Update()
		}
	case ToolMove, ToolRotate, ToolScale:
		e.finishTransform()
	}
}

// Click handles a press and release without motion at p.
func (e *Engine) Click(p geom.Point, b Button) {
	switch e.tool {
	case ToolCreate:
		e.clickCreation(p, b)
	case ToolSelect:
		if b != ButtonLeft {
			return
		}
		f := e.drawing.FigureAt(p)
		if f == nil {
			return
		}
		f.SetSelected(!f.Selected())
		e.drawing.UpdateSelection()
	}
}

func (e *Engine) startCreation(p geom.Point) {
	e.history.Record()
	f := e.drawing.InitiateFigure(p)
	if f == nil {
		e.history.Cancel()
		return
	}
	e.g.current = f
	e.g.step = 1
}

func (e *Engine) moveCreation(p geom.Point) {
	f := e.g.current
	if f == nil {
		return
	}
	switch {
	case e.g.step == 1 && f.Kind() == figure.Polygon:
		f.SetLastPoint(p)
	case e.g.step == 1 && e.g.pressed:
		f.SetLastPoint(p)
	case e.g.step == 2 && f.Kind() == figure.RoundedRectangle:
		f.SetArc(p)
	default:
		return
	}
	e.drawing.Update()
}

func (e *Engine) clickCreation(p geom.Point, b Button) {
	f := e.g.current
	switch {
	case f == nil && e.drawing.Pending().Kind == figure.Polygon && b == ButtonLeft:
		e.startCreation(p)
	case f == nil:
		return
	case f.Kind() == figure.RoundedRectangle && e.g.step == 2 && b == ButtonLeft:
		e.finishCreation()
	case f.Kind() == figure.Polygon:
		switch b {
		case ButtonLeft:
			f.AddPoint(p)
		case ButtonMiddle:
			f.RemoveLastPoint()
		case ButtonRight:
			f.SetLastPoint(p)
			e.finishCreation()
			return
		}
		e.drawing.Update()
	}
}

// finishCreation ends a creation gesture. A figure left without area is
// dropped along with its history record.
func (e *Engine) finishCreation() {
	f := e.g.current
	e.g = gesture{pressed: e.g.pressed}
	if f.Degenerate() {
		e.drawing.RemoveLastFigure()
		e.history.Cancel()
		return
	}
	f.Normalize()
	e.drawing.Update()
	e.logger.Debug("created", "figure", f.Name(), "id", f.ID())
}

// abort abandons the gesture in progress, undoing any partial creation.
func (e *Engine) abort() {
	g := e.g
	e.g = gesture{}
	if g.current == nil {
		return
	}
	switch e.tool {
	case ToolCreate:
		if e.drawing.LastFigure() == g.current {
			e.drawing.RemoveLastFigure()
		}
	case ToolMove, ToolRotate, ToolScale:
		e.setComponent(g.current, g.initial)
		e.drawing.Update()
	}
	e.history.Cancel()
}

func (e *Engine) component(f *figure.Figure) geom.Matrix2D {
	switch e.tool {
	case ToolRotate:
		return f.Rotation()
	case ToolScale:
		return f.Scale()
	default:
		return f.Translation()
	}
}

func (e *Engine) setComponent(f *figure.Figure, m geom.Matrix2D) {
	switch e.tool {
	case ToolRotate:
		f.SetRotation(m)
	case ToolScale:
		f.SetScale(m)
	default:
		f.SetTranslation(m)
	}
}

func (e *Engine) startTransform(p geom.Point) {
	f := e.drawing.FigureAt(p)
	if f == nil {
		return
	}
	e.history.Record()
	e.g.current = f
	e.g.start = p
	e.g.center = f.Center()
	e.g.initial = e.component(f)
}

// dragTransform composes the delta since the press onto the component
// captured at the press.
func (e *Engine) dragTransform(p geom.Point) {
	f := e.g.current
	if f == nil {
		return
	}
	var delta geom.Matrix2D
	switch e.tool {
	case ToolMove:
		d := p.Sub(e.g.start)
		delta = geom.Translate(d.X, d.Y)
	case ToolRotate:
		delta = geom.Rotate(geom.Angle(e.g.start.Sub(e.g.center), p.Sub(e.g.center)))
	case ToolScale:
		d0 := e.g.center.Distance(e.g.start)
		if d0 == 0 {
			return
		}
		s := e.g.center.Distance(p) / d0
		delta = geom.Scale(s, s)
	}
	e.setComponent(f, delta.Multiply(e.g.initial))
	e.drawing.Update()
}

func (e *Engine) finishTransform() {
	f := e.g.current
	if f == nil {
		return
	}
	if e.component(f) == e.g.initial {
		e.history.Cancel()
	}
	e.g = gesture{}
}
