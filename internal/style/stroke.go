package style

import (
	"fmt"
	"slices"
	"strings"
)

// LineType classifies how a figure's edge is drawn.
type LineType int

const (
	LineNone LineType = iota
	LineSolid
	LineDashed
)

var lineTypeNames = [...]string{"none", "solid", "dashed"}

func (t LineType) String() string {
	if t < 0 || int(t) >= len(lineTypeNames) {
		return fmt.Sprintf("LineType(%d)", int(t))
	}
	return lineTypeNames[t]
}

// ParseLineType converts "none", "solid" or "dashed" to a LineType.
func ParseLineType(s string) (LineType, error) {
	i := slices.Index(lineTypeNames[:], strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return LineNone, fmt.Errorf("unknown line type %q", s)
	}
	return LineType(i), nil
}

// Stroke describes an edge: its width and an optional dash pattern of
// alternating dash/gap lengths. A nil *Stroke means the figure has no edge.
type Stroke struct {
	Width float64   `json:"width"`
	Dash  []float64 `json:"dash,omitempty"`
}

// NewStroke builds the stroke for a line type and width.
// LineNone yields nil.
func NewStroke(t LineType, width float64) *Stroke {
	if width < 0 {
		width = 0
	}
	switch t {
	case LineSolid:
		return &Stroke{Width: width}
	case LineDashed:
		dash := max(4, 3*width)
		return &Stroke{Width: width, Dash: []float64{dash, dash}}
	default:
		return nil
	}
}

// LineType derives the line type from the dash pattern: no stroke is
// LineNone, no dash array is LineSolid, anything else LineDashed.
func (s *Stroke) LineType() LineType {
	switch {
	case s == nil:
		return LineNone
	case s.Dash == nil:
		return LineSolid
	default:
		return LineDashed
	}
}

// Clone returns a deep copy of s.
func (s *Stroke) Clone() *Stroke {
	if s == nil {
		return nil
	}
	c := *s
	if s.Dash != nil {
		c.Dash = slices.Clone(s.Dash)
	}
	return &c
}

// Equal compares two nullable strokes by value.
func (s *Stroke) Equal(o *Stroke) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Width == o.Width && (s.Dash == nil) == (o.Dash == nil) && slices.Equal(s.Dash, o.Dash)
}

// Style is the edge and fill a figure is drawn with.
type Style struct {
	Stroke *Stroke
	Edge   *Paint
	Fill   *Paint
}

// Clone returns a deep copy of st.
func (st Style) Clone() Style {
	return Style{
		Stroke: st.Stroke.Clone(),
		Edge:   st.Edge.Clone(),
		Fill:   st.Fill.Clone(),
	}
}
