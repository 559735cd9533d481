package engine

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inamate/drawkit/internal/figure"
	"github.com/inamate/drawkit/internal/geom"
	"github.com/inamate/drawkit/internal/style"
)

var ErrUnknownOperation = errors.New("unknown operation")

// Operation types accepted by Apply.
const (
	OpPointerDown  = "pointer.down"
	OpPointerMove  = "pointer.move"
	OpPointerUp    = "pointer.up"
	OpPointerClick = "pointer.click"

	OpToolSet = "tool.set"

	OpPendingKind     = "pending.kind"
	OpPendingFill     = "pending.fill"
	OpPendingEdge     = "pending.edge"
	OpPendingWidth    = "pending.width"
	OpPendingLineType = "pending.lineType"
	OpPendingArc      = "pending.arc"

	OpSelectionDelete = "selection.delete"
	OpSelectionStyle  = "selection.style"
	OpSelectionUp     = "selection.up"
	OpSelectionDown   = "selection.down"
	OpSelectionClear  = "selection.clear"

	OpDrawingClear = "drawing.clear"
	OpHistoryUndo  = "history.undo"
	OpHistoryRedo  = "history.redo"

	OpFilterEnable         = "filter.enable"
	OpFilterKindAdd        = "filter.kind.add"
	OpFilterKindRemove     = "filter.kind.remove"
	OpFilterFill           = "filter.fill"
	OpFilterEdge           = "filter.edge"
	OpFilterLineTypeAdd    = "filter.lineType.add"
	OpFilterLineTypeRemove = "filter.lineType.remove"
)

// Operation is one command from the frontend. Only the fields its Type
// needs are read.
type Operation struct {
	Type string `json:"type"`

	// Pointer events
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Button Button  `json:"button,omitempty"`

	// Setters
	Tool     string  `json:"tool,omitempty"`
	Kind     string  `json:"kind,omitempty"`
	Paint    string  `json:"paint,omitempty"` // color name, hex, "none" or "custom"
	LineType string  `json:"lineType,omitempty"`
	Value    float64 `json:"value,omitempty"`
	Enabled  bool    `json:"enabled,omitempty"`
}

// ParseOperation decodes an operation from JSON.
func ParseOperation(data []byte) (Operation, error) {
	var op Operation
	if err := json.Unmarshal(data, &op); err != nil {
		return op, fmt.Errorf("invalid operation: %w", err)
	}
	return op, nil
}

// Apply dispatches op to the engine.
func (e *Engine) Apply(op Operation) error {
	p := geom.Pt(op.X, op.Y)
	button := op.Button
	if button == 0 {
		button = ButtonLeft
	}

	switch op.Type {
	case OpPointerDown:
		e.PointerDown(p, button)
	case OpPointerMove:
		e.PointerMove(p)
	case OpPointerUp:
		e.PointerUp(p, button)
	case OpPointerClick:
		e.Click(p, button)

	case OpToolSet:
		t, err := ParseTool(op.Tool)
		if err != nil {
			return err
		}
		e.SetTool(t)

	case OpPendingKind:
		k, err := figure.ParseKind(op.Kind)
		if err != nil {
			return err
		}
		e.SetFigureKind(k)
	case OpPendingFill:
		paint, err := style.ParsePaint(op.Paint)
		if err != nil {
			return err
		}
		e.drawing.SetFillPaint(paint)
	case OpPendingEdge:
		paint, err := style.ParsePaint(op.Paint)
		if err != nil {
			return err
		}
		e.drawing.SetEdgePaint(paint)
	case OpPendingWidth:
		e.drawing.SetEdgeWidth(op.Value)
	case OpPendingLineType:
		t, err := style.ParseLineType(op.LineType)
		if err != nil {
			return err
		}
		e.drawing.SetLineType(t)
	case OpPendingArc:
		e.drawing.SetCornerArc(op.Value)

	case OpSelectionDelete:
		e.DeleteSelected()
	case OpSelectionStyle:
		e.ApplyStyle()
	case OpSelectionUp:
		e.MoveUp()
	case OpSelectionDown:
		e.MoveDown()
	case OpSelectionClear:
		e.drawing.ClearSelection()
		e.drawing.UpdateSelection()

	case OpDrawingClear:
		e.Clear()
	case OpHistoryUndo:
		return e.Undo()
	case OpHistoryRedo:
		return e.Redo()

	case OpFilterEnable:
		e.drawing.SetFilterEnabled(op.Enabled)
	case OpFilterKindAdd, OpFilterKindRemove:
		k, err := figure.ParseKind(op.Kind)
		if err != nil {
			return err
		}
		if op.Type == OpFilterKindAdd {
			e.drawing.AddKindFilter(k)
		} else {
			e.drawing.RemoveKindFilter(k)
		}
	case OpFilterFill:
		paint, err := style.ParsePaint(op.Paint)
		if err != nil {
			return err
		}
		e.drawing.SetFillFilter(paint)
	case OpFilterEdge:
		paint, err := style.ParsePaint(op.Paint)
		if err != nil {
			return err
		}
		e.drawing.SetEdgeFilter(paint)
	case OpFilterLineTypeAdd, OpFilterLineTypeRemove:
		t, err := style.ParseLineType(op.LineType)
		if err != nil {
			return err
		}
		if op.Type == OpFilterLineTypeAdd {
			e.drawing.AddLineTypeFilter(t)
		} else {
			e.drawing.RemoveLineTypeFilter(t)
		}

	default:
		return fmt.Errorf("%w: %s", ErrUnknownOperation, op.Type)
	}
	return nil
}

// ApplyJSON decodes and applies one operation.
func (e *Engine) ApplyJSON(data []byte) error {
	op, err := ParseOperation(data)
	if err != nil {
		return err
	}
	return e.Apply(op)
}
