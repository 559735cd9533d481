// Package style holds the paint and stroke values figures are drawn with,
// plus the factories that build them from names and line types.
package style

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var ErrUnknownPaint = errors.New("unknown paint")

// Paint is an opaque RGBA color. Figures and styles refer to paints through
// *Paint, where nil means "no fill" or "no edge".
type Paint struct {
	R, G, B, A uint8
}

// Custom is the wildcard paint. A pending style holding Custom asks the
// Resolver for a concrete paint at the moment a figure is created.
var Custom = &Paint{}

// IsCustom reports whether p is the wildcard paint.
func IsCustom(p *Paint) bool {
	return p == Custom
}

// RGBA implements color.Color.
func (p Paint) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// FromColor converts a standard color.Color to a Paint.
func FromColor(c color.Color) *Paint {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return &Paint{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Hex returns "#rrggbb", or "#rrggbbaa" when the paint is translucent.
// A nil paint yields the empty string.
func (p *Paint) Hex() string {
	if p == nil {
		return ""
	}
	if p.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", p.R, p.G, p.B, p.A)
}

func (p *Paint) String() string {
	switch {
	case p == nil:
		return "none"
	case IsCustom(p):
		return "custom"
	}
	return p.Hex()
}

// Clone returns an independent copy of p. nil and Custom are returned as is.
func (p *Paint) Clone() *Paint {
	if p == nil || IsCustom(p) {
		return p
	}
	c := *p
	return &c
}

// EqualPaint compares two nullable paints by value.
func EqualPaint(a, b *Paint) bool {
	if a == nil || b == nil {
		return a == b
	}
	if IsCustom(a) || IsCustom(b) {
		return a == b
	}
	return *a == *b
}

// ParsePaint resolves a paint name. It accepts "none" (nil), "custom"
// (the wildcard), any SVG color name and "#rgb", "#rrggbb" or "#rrggbbaa".
func ParsePaint(name string) (*Paint, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "none":
		return nil, nil
	case "custom", "others":
		return Custom, nil
	}

	if strings.HasPrefix(key, "#") {
		return parseHex(key[1:])
	}

	c, ok := colornames.Map[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaint, name)
	}
	return FromColor(c), nil
}

// MustParsePaint is ParsePaint for names known at compile time.
func MustParsePaint(name string) *Paint {
	p, err := ParsePaint(name)
	if err != nil {
		panic(err)
	}
	return p
}

func parseHex(hex string) (*Paint, error) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return nil, fmt.Errorf("%w: bad hex length %q", ErrUnknownPaint, hex)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownPaint, err)
	}
	return &Paint{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// Resolver turns wildcard paints into concrete ones.
type Resolver interface {
	ResolvePaint(p *Paint) *Paint
}

// FixedResolver resolves Custom to a copy of one configured paint and
// passes every other paint through.
type FixedResolver struct {
	Paint Paint
}

func (r FixedResolver) ResolvePaint(p *Paint) *Paint {
	if IsCustom(p) {
		c := r.Paint
		return &c
	}
	return p
}
