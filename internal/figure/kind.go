package figure

import (
	"fmt"
	"strings"

	"github.com/inamate/drawkit/internal/geom"
	"github.com/inamate/drawkit/internal/style"
	"github.com/inamate/drawkit/internal/typeid"
)

// Kind is the shape variant of a figure. It is fixed at construction.
type Kind int

const (
	Circle Kind = iota
	Rectangle
	RoundedRectangle
	Polygon
)

var kindNames = [...]string{"Circle", "Rectangle", "RoundedRectangle", "Polygon"}

var kindPrefixes = [...]string{
	typeid.PrefixCircle,
	typeid.PrefixRectangle,
	typeid.PrefixRoundedRectangle,
	typeid.PrefixPolygon,
}

// Kinds lists every figure kind in declaration order.
func Kinds() []Kind {
	return []Kind{Circle, Rectangle, RoundedRectangle, Polygon}
}

func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid figure kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind accepts kind names case-insensitively, ignoring '-' and '_'
// ("rounded-rectangle", "ROUNDED_RECTANGLE", "RoundedRectangle").
func ParseKind(s string) (Kind, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	for i, name := range kindNames {
		if strings.ToLower(name) == key {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown figure kind %q", s)
}

// initiators builds a figure of each kind from the first point of a
// creation gesture.
var initiators = map[Kind]func(st style.Style, p geom.Point, arc float64) *Figure{
	Circle: func(st style.Style, p geom.Point, _ float64) *Figure {
		return NewCircle(st, p, 0)
	},
	Rectangle: func(st style.Style, p geom.Point, _ float64) *Figure {
		return NewRectangle(st, p, p)
	},
	RoundedRectangle: func(st style.Style, p geom.Point, arc float64) *Figure {
		return NewRoundedRectangle(st, p, p, arc)
	},
	Polygon: func(st style.Style, p geom.Point, _ float64) *Figure {
		return NewPolygon(st, p, p)
	},
}

// Initiate constructs a zero-size figure of kind k anchored at p.
// It returns nil when k has no constructor for a bare point.
func Initiate(k Kind, st style.Style, p geom.Point, arc float64) *Figure {
	build, ok := initiators[k]
	if !ok {
		return nil
	}
	return build(st, p, arc)
}

// Numbering hands out per-kind sequence numbers and typeid handles.
// It is owned by the model that creates figures.
type Numbering struct {
	counts map[Kind]int
}

func NewNumbering() *Numbering {
	return &Numbering{counts: make(map[Kind]int)}
}

// Assign gives f the next number for its kind and a fresh handle.
func (n *Numbering) Assign(f *Figure) {
	n.counts[f.kind]++
	f.number = n.counts[f.kind]
	f.id = typeid.New(kindPrefixes[f.kind])
}

// Count returns how many figures of kind k have been numbered.
func (n *Numbering) Count(k Kind) int {
	return n.counts[k]
}
