package mathlayout

// MathStyle is TeX's four display styles (TeXbook chapter 17), used to
// pick display-vs-text MATH constant variants (e.g.
// FractionNumeratorShiftUp vs FractionNumeratorDisplayStyleShiftUp) and
// to decide how far operator spacing reduces at nested script depths.
type MathStyle int

const (
	StyleDisplay MathStyle = iota
	StyleText
	StyleScript
	StyleScriptScript
)

// IsScript reports whether this style is script or script-script,
// i.e. spec §4.5's spacing reduction applies.
func (s MathStyle) IsScript() bool {
	return s == StyleScript || s == StyleScriptScript
}

// ScriptStyle returns the style children's scripts are laid out in: one
// level deeper, bottoming out at script-script (spec §3, scriptlevel
// 0/1/2).
func (s MathStyle) ScriptStyle() MathStyle {
	switch s {
	case StyleDisplay, StyleText:
		return StyleScript
	default:
		return StyleScriptScript
	}
}

// IsDisplay reports display style, used to pick the Display-suffixed
// MATH constant variants and to trigger large-operator upscaling
// (spec §4.3's `<mo>` rule).
func (s MathStyle) IsDisplay() bool { return s == StyleDisplay }

// SpaceType is one of TeX's four named inter-atom spacing amounts.
type SpaceType int

const (
	SpaceNone SpaceType = iota
	SpaceThin
	SpaceMedium
	SpaceThick
)

// Amount returns the spacing amount as a math-unit value (18mu = 1em),
// matching TeX's \thinmuskip=3mu, \medmuskip=4mu, \thickmuskip=5mu.
func (t SpaceType) Amount() Mu {
	switch t {
	case SpaceThin:
		return 3
	case SpaceMedium:
		return 4
	case SpaceThick:
		return 5
	default:
		return 0
	}
}

// spacingTable is the TeX Appendix-G inter-class spacing table (The
// TeXbook, chapter 18), row = left atom's class, column = right atom's
// class.
var spacingTable = [9][9]SpaceType{
	//          Ord   Op    Bin   Rel   Open  Close Punct Inner None
	/* Ord   */ {0, 1, 2, 3, 0, 0, 0, 1, 0},
	/* Op    */ {1, 1, 0, 3, 0, 0, 0, 1, 0},
	/* Bin   */ {2, 2, 0, 0, 2, 0, 0, 2, 0},
	/* Rel   */ {3, 3, 0, 0, 3, 0, 0, 3, 0},
	/* Open  */ {0, 0, 0, 0, 0, 0, 0, 0, 0},
	/* Close */ {0, 1, 2, 3, 0, 0, 0, 1, 0},
	/* Punct */ {1, 1, 0, 1, 1, 1, 1, 1, 0},
	/* Inner */ {1, 1, 2, 3, 1, 0, 1, 1, 0},
	/* None  */ {0, 0, 0, 0, 0, 0, 0, 0, 0},
}

// GetSpacing looks up the spacing type between two atom classes, and
// reduces it the way TeX does within script/scriptscript style: medium
// becomes thin, thick becomes none (The TeXbook, rule 20/21 footnote).
func GetSpacing(left, right MathClass, style MathStyle) SpaceType {
	if left < 0 || int(left) >= len(spacingTable) || right < 0 || int(right) >= len(spacingTable[0]) {
		return SpaceNone
	}
	space := spacingTable[left][right]
	if style.IsScript() {
		switch space {
		case SpaceMedium:
			space = SpaceThin
		case SpaceThick:
			space = SpaceNone
		}
	}
	return space
}

// GetSpacingAbs resolves GetSpacing's result to an absolute length.
func GetSpacingAbs(left, right MathClass, style MathStyle, fontSize Abs) Abs {
	return GetSpacing(left, right, style).Amount().At(fontSize)
}

// InsertSpacing interleaves spacing fragments between adjacent math
// fragments according to their classes (spec §4.4's <mrow> rule).
// Fragments with explicit spacing get no class-based spacing on either
// side; an operator glyph among them instead gets its own lspace as
// space before it and its rspace as space after it.
func InsertSpacing(fragments []MathFragment, style MathStyle, fontSize Abs) []MathFragment {
	if len(fragments) <= 1 {
		return fragments
	}
	result := make([]MathFragment, 0, len(fragments)*2-1)
	for i, frag := range fragments {
		if i > 0 {
			prev := fragments[i-1]
			if !prev.HasExplicitSpacing() && !frag.HasExplicitSpacing() {
				if amt := GetSpacingAbs(prev.Class(), frag.Class(), style, fontSize); amt > 0 {
					result = append(result, &SpaceFragment{Amount: amt})
				}
			}
		}
		op, isOp := frag.(*GlyphFragment)
		isOp = isOp && op.Explicit
		if isOp && op.LSpace > 0 {
			result = append(result, &SpaceFragment{Amount: op.LSpace})
		}
		result = append(result, frag)
		if isOp && op.RSpace > 0 {
			result = append(result, &SpaceFragment{Amount: op.RSpace})
		}
	}
	return result
}
