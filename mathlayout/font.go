package mathlayout

import "github.com/ziamath-go/ziamath/font"

// MathFont is the font type the layout engine shapes glyphs from: a
// thin alias onto font.Font so this package's fragment/frame types don't
// need to repeat font's import path at every call site.
type MathFont = font.Font
