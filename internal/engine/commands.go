package engine

import (
	"encoding/json"

	"github.com/inamate/drawkit/internal/figure"
	"github.com/inamate/drawkit/internal/geom"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string               `json:"op"`                    // Operation: "path"
	ObjectID    string               `json:"objectId,omitempty"`    // For hit correlation
	Transform   []float64            `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Path        []figure.PathCommand `json:"path,omitempty"`        // Path data in local coordinates
	Fill        string               `json:"fill,omitempty"`        // Fill color
	Stroke      string               `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64              `json:"strokeWidth,omitempty"` // Stroke width
	Dash        []float64            `json:"dash,omitempty"`        // Dash pattern, empty for solid
	Selected    bool                 `json:"selected,omitempty"`
}

// CompileDrawCommands generates a draw command buffer from figures in z-order.
// Commands are in painter's order (back to front).
func CompileDrawCommands(figs []*figure.Figure) []DrawCommand {
	commands := make([]DrawCommand, 0, len(figs))
	for _, f := range figs {
		cmd := DrawCommand{
			Op:        "path",
			ObjectID:  f.ID(),
			Transform: f.Transform().ToSlice(),
			Path:      f.Path(),
			Fill:      f.FillPaint().Hex(),
			Selected:  f.Selected(),
		}
		// A figure without a stroke has no visible edge whatever its paint.
		if s := f.Stroke(); s != nil && f.EdgePaint() != nil {
			cmd.Stroke = f.EdgePaint().Hex()
			cmd.StrokeWidth = s.Width
			cmd.Dash = s.Dash
		}
		commands = append(commands, cmd)
	}
	return commands
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// HitTestResult contains information about a hit test.
type HitTestResult struct {
	ObjectID string  `json:"objectId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// SelectionBounds returns the combined bounding box of the given figures.
func SelectionBounds(figs []*figure.Figure) geom.Rect {
	var result geom.Rect
	first := true

	for _, f := range figs {
		b := f.Bounds()
		if b.IsEmpty() {
			continue
		}
		if first {
			result = b
			first = false
		} else {
			result = result.Union(b)
		}
	}

	return result
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r geom.Rect) string {
	data, _ := json.Marshal(map[string]float64{
		"x":      r.X,
		"y":      r.Y,
		"width":  r.Width,
		"height": r.Height,
	})
	return string(data)
}
