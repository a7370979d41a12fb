package mathlayout

import "github.com/ziamath-go/ziamath/font"

// Corner re-exports font.Corner so call sites in this package don't need
// to import font directly just to name a kerning corner.
type Corner = font.Corner

const (
	CornerTopLeft     = font.CornerTopLeft
	CornerTopRight    = font.CornerTopRight
	CornerBottomLeft  = font.CornerBottomLeft
	CornerBottomRight = font.CornerBottomRight
)

// cornerInv returns the diagonally opposite corner, used when looking up
// a script's own kern value against its base (the base's top-right pairs
// with the superscript's bottom-left, etc.) — spec §3's per-corner
// kerning, OpenType MATH's MathKern symmetric rule.
func cornerInv(c Corner) Corner {
	switch c {
	case CornerTopLeft:
		return CornerBottomRight
	case CornerTopRight:
		return CornerBottomLeft
	case CornerBottomLeft:
		return CornerTopRight
	case CornerBottomRight:
		return CornerTopLeft
	}
	return c
}

// KernAtHeight returns a fragment's math kerning value at the given
// corner and height, 0 for fragments with no single backing glyph
// (composed frames don't carry MathKern data).
func KernAtHeight(f MathFragment, corner Corner, height Abs) Abs {
	g, ok := f.(*GlyphFragment)
	if !ok || len(g.Run) == 0 {
		return 0
	}
	last := g.Run[len(g.Run)-1]
	h := font.Em(float64(height) / float64(g.FontSize))
	kern := g.Font.GlyphInfo().KernAtHeight(last.GID, corner, h)
	return Abs(kern.At(float64(g.FontSize)))
}
