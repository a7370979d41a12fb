package mathlayout

// Style is the resolved rendering context threaded through layout: the
// concrete values a StyleChain link can override. Grounded on the
// teacher's StyleChain concept (layout/math/math.go's stub plus the
// general immutable-scope idiom used by eval/style_chain.go), generalized
// here to MathML's mstyle/mathvariant/displaystyle/scriptlevel attributes
// instead of Typst's style properties.
type Style struct {
	Font         *MathFont
	FontSize     Abs
	MathStyle    MathStyle
	ScriptLevel  int
	Bold         bool
	Italic       bool
	Color        Color
	Background   *Color
	HasExplicitBG bool
}

// DefaultStyle returns the root style for a render: display style,
// scriptlevel 0, upright text unless the element is a single-letter
// identifier (mathlayout's resolver applies MathML's implicit-italic
// rule for <mi> at the glyph-resolution step, not here).
func DefaultStyle(font *MathFont, fontSize Abs, display bool) Style {
	st := StyleText
	if display {
		st = StyleDisplay
	}
	return Style{
		Font:      font,
		FontSize:  fontSize,
		MathStyle: st,
		Color:     Black,
	}
}

// WithScriptStyle returns the style for this style's script children:
// one level deeper, font size scaled by the font's
// Script/ScriptScriptPercentScaleDown MATH constants, and cramped
// variants used for denominators/lower-limits are represented by the
// caller choosing StyleScript/StyleScriptScript directly — TeX's
// "cramped" bit does not affect spacing (the only thing MathStyle here
// governs) so it is not separately tracked.
func (s Style) WithScriptStyle() Style {
	next := s
	next.MathStyle = s.MathStyle.ScriptStyle()
	next.ScriptLevel = s.ScriptLevel + 1

	mc := s.Font.Math()
	switch next.ScriptLevel {
	case 1:
		next.FontSize = s.FontSize * Abs(mc.ScriptPercentScaleDown) / 100
	default:
		next.FontSize = s.FontSize * Abs(mc.ScriptScriptPercentScaleDown) / 100
	}
	return next
}

// WithScriptLevel applies an explicit MathML scriptlevel (spec's Open
// Question #1): absolute unless delta is true, in which case relative
// to the current level.
func (s Style) WithScriptLevel(level int, delta bool) Style {
	next := s
	target := level
	if delta {
		target = s.ScriptLevel + level
	}
	if target < 0 {
		target = 0
	}
	mc := s.Font.Math()
	switch {
	case target == 0:
		next.FontSize = s.baseFontSize()
	case target == 1:
		next.FontSize = s.baseFontSize() * Abs(mc.ScriptPercentScaleDown) / 100
	default:
		next.FontSize = s.baseFontSize() * Abs(mc.ScriptScriptPercentScaleDown) / 100
	}
	next.ScriptLevel = target
	if target == 0 {
		next.MathStyle = StyleText
	} else {
		next.MathStyle = StyleScript
		if target > 1 {
			next.MathStyle = StyleScriptScript
		}
	}
	return next
}

// baseFontSize recovers the scriptlevel-0 font size so an explicit
// scriptlevel can be applied absolutely rather than relative to
// whatever level this style happens to already be at.
func (s Style) baseFontSize() Abs {
	if s.ScriptLevel == 0 {
		return s.FontSize
	}
	mc := s.Font.Math()
	switch s.ScriptLevel {
	case 1:
		return s.FontSize * 100 / Abs(mc.ScriptPercentScaleDown)
	default:
		return s.FontSize * 100 / Abs(mc.ScriptScriptPercentScaleDown)
	}
}

// WithColor returns a copy with mathcolor overridden (spec's Open
// Question #3: lexical scoping, descendant's own mathcolor wins locally).
func (s Style) WithColor(c Color) Style {
	next := s
	next.Color = c
	return next
}

// WithBackground returns a copy with mathbackground set.
func (s Style) WithBackground(c Color) Style {
	next := s
	next.Background = &c
	next.HasExplicitBG = true
	return next
}

// WithBold/WithItalic toggle mathvariant-driven glyph-shape overrides
// (bold/italic/bold-italic mathvariant values, spec §4.1).
func (s Style) WithBold(b bool) Style   { next := s; next.Bold = b; return next }
func (s Style) WithItalic(b bool) Style { next := s; next.Italic = b; return next }

// Cramped denominator/under-limit styles reuse MathStyle's script
// descent directly (TeX's numerator/denominator and limit placement
// functions pass the already-descended style in, see fraction.go).
