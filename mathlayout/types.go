// Package mathlayout is the core math layout engine: it walks a MathML
// tree and a Style, and produces a tree of MathFragment boxes with
// absolute positions, baselines, and glyph references, following the
// OpenType MATH extension's geometry rules.
package mathlayout

import "fmt"

// Abs is an absolute length in typographic points (1/72 inch). It is the
// fundamental unit for every layout calculation in this package.
type Abs float64

// Common length constants, mirrored from the MathML width-unit set spec
// §4.3 requires <mspace> to recognize (pt, mm, cm, in are exact; px, bp
// are defined relative to the 72dpi point exactly as CSS/PDF do).
const (
	Pt Abs = 1.0
	Mm Abs = 2.8346456692913
	Cm Abs = 28.346456692913
	In Abs = 72.0
	Px Abs = 0.75 // 96px = 1in
	Bp Abs = 1.0
	Pc Abs = 12.0
	Dd Abs = 1.0700748
)

func (a Abs) IsZero() bool { return a == 0 }

func (a Abs) Abs() Abs {
	if a < 0 {
		return -a
	}
	return a
}

func (a Abs) Min(b Abs) Abs {
	if a < b {
		return a
	}
	return b
}

func (a Abs) Max(b Abs) Abs {
	if a > b {
		return a
	}
	return b
}

func (a Abs) Clamp(lo, hi Abs) Abs {
	if a < lo {
		return lo
	}
	if a > hi {
		return hi
	}
	return a
}

func (a Abs) Points() float64 { return float64(a) }

func (a Abs) String() string { return fmt.Sprintf("%.4gpt", float64(a)) }

// Em is a length expressed relative to a font size, the unit every
// OpenType MATH constant is expressed in. At resolves it against a
// concrete font size.
type Em float64

// At resolves the Em value to an absolute length at the given font size.
func (e Em) At(fontSize Abs) Abs {
	return Abs(float64(e) * float64(fontSize))
}

// Mu is a "math unit": 18 mu = 1 em, the unit the MathML operator
// dictionary's lspace/rspace values (spec §3, "Operator record") are
// expressed in.
type Mu float64

// At resolves a math-unit value to an absolute length at the given font size.
func (m Mu) At(fontSize Abs) Abs {
	return Abs(float64(m) / 18.0 * float64(fontSize))
}

// Point is a 2D point in layout coordinates, Y increasing downward from
// a frame's top-left as in the teacher's layout primitives.
type Point struct {
	X, Y Abs
}

// PointWithX returns a point with only the X coordinate set.
func PointWithX(x Abs) Point { return Point{X: x} }

// PointWithY returns a point with only the Y coordinate set.
func PointWithY(y Abs) Point { return Point{Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Size is 2D dimensions, X = width (inline-axis advance), Y = height.
type Size struct {
	X, Y Abs
}

// Axes holds a value per axis, used for alignment and scale targets.
type Axes[T any] struct {
	X, Y T
}

// Splat returns Axes with the same value on both axes.
func Splat[T any](v T) Axes[T] { return Axes[T]{X: v, Y: v} }

// Sides holds a value per box side.
type Sides[T any] struct {
	Left, Top, Right, Bottom T
}

// SplatSides returns Sides with the same value on all four sides.
func SplatSides[T any](v T) Sides[T] {
	return Sides[T]{Left: v, Top: v, Right: v, Bottom: v}
}

// Corners holds a value per box corner, the shape of a glyph's math
// kerning record (spec §3's per-corner kerning) and the result of
// AccentAttach-style queries.
type Corners[T any] struct {
	TopLeft, TopRight, BottomRight, BottomLeft T
}

// SplatCorners returns Corners with the same value at all four corners.
func SplatCorners[T any](v T) Corners[T] {
	return Corners[T]{TopLeft: v, TopRight: v, BottomRight: v, BottomLeft: v}
}

// FixedAlignment is a one-dimensional alignment used when resizing a
// frame to a larger box (table cell alignment, equation-number columns).
type FixedAlignment int

const (
	AlignStart FixedAlignment = iota
	AlignCenter
	AlignEnd
)

// Position returns the offset to apply to content of the given extra
// space so that it lands at this alignment.
func (a FixedAlignment) Position(extra Abs) Abs {
	switch a {
	case AlignCenter:
		return extra / 2
	case AlignEnd:
		return extra
	default:
		return 0
	}
}

// Color is a simple sRGB + alpha color, resolved from MathML mathcolor
// attribute strings (named colors, #rgb, #rrggbb) by the caller.
type Color struct {
	R, G, B, A uint8
}

// Black is the default text/glyph-fill color.
var Black = Color{A: 255}

// Hex formats the color as a CSS-style hex string, honoring alpha only
// when it is not fully opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

var namedColors = map[string]Color{
	"black": Black,
	"white": {R: 255, G: 255, B: 255, A: 255},
	"red":   {R: 255, A: 255},
	"green": {G: 128, A: 255},
	"blue":  {B: 255, A: 255},
}

// ParseColor resolves a MathML mathcolor/mathbackground attribute value:
// a CSS named color, or #rgb/#rrggbb hex, per spec §4.1's mathcolor
// attribute.
func ParseColor(s string) (Color, bool) {
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if len(s) == 0 || s[0] != '#' {
		return Color{}, false
	}
	hex := s[1:]
	expand := func(c byte) (byte, bool) {
		var v int
		_, err := fmt.Sscanf(string(c), "%x", &v)
		return byte(v), err == nil
	}
	switch len(hex) {
	case 3:
		r, ok1 := expand(hex[0])
		g, ok2 := expand(hex[1])
		b, ok3 := expand(hex[2])
		if !ok1 || !ok2 || !ok3 {
			return Color{}, false
		}
		return Color{R: r*16 + r, G: g*16 + g, B: b*16 + b, A: 255}, true
	case 6:
		var r, g, b int
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return Color{}, false
		}
		return Color{R: byte(r), G: byte(g), B: byte(b), A: 255}, true
	}
	return Color{}, false
}
