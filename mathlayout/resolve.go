package mathlayout

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ResolveGlyph shapes a single rune into a GlyphFragment: GID, advance,
// ascent/descent, math class, italic correction, and top-accent
// attachment. Grounded on the teacher's layout/inline/shaping.go, which
// drives the same shaping.HarfbuzzShaper/shaping.Input API over whole
// runs of text; math layout instead shapes one rune at a time since
// every atom independently carries its own class, spacing, and
// scriptlevel-scaled size.
func ResolveGlyph(r rune, style Style) *GlyphFragment {
	font := style.Font

	gid, advance, ascent, descent := shapeOne(r, style)

	italics := font.GlyphInfo().ItalicsCorrection(gid).At(style.FontSize)
	topAccent, hasTop := font.GlyphInfo().TopAccentAttachment(gid)

	return &GlyphFragment{
		Font:     font,
		FontSize: style.FontSize,
		Run: []ShapedGlyph{{
			GID:      gid,
			XAdvance: advance,
			Ascent:   ascent,
			Descent:  descent,
		}},
		MClass:             DefaultMathClass(r),
		Italics:            italics,
		TopAccentAttach:    topAccent.At(style.FontSize),
		HasTopAccentAttach: hasTop,
	}
}

// ResolveRun shapes a string of runes (e.g. <mtext>/<ms> content, or a
// multi-character <mi> token) into a single GlyphFragment carrying one
// glyph per input rune, laid out left to right with no inter-glyph
// math-class spacing (that only applies between sibling atoms, not
// within a token — spec §4.1's treatment of multi-character identifiers).
func ResolveRun(text string, style Style) *GlyphFragment {
	runes := []rune(text)
	if len(runes) == 0 {
		return &GlyphFragment{Font: style.Font, FontSize: style.FontSize}
	}
	frag := &GlyphFragment{Font: style.Font, FontSize: style.FontSize}
	for i, r := range runes {
		gid, advance, ascent, descent := shapeOne(r, style)
		frag.Run = append(frag.Run, ShapedGlyph{GID: gid, XAdvance: advance, Ascent: ascent, Descent: descent})
		if i == 0 {
			frag.MClass = DefaultMathClass(r)
			frag.Italics = style.Font.GlyphInfo().ItalicsCorrection(gid).At(style.FontSize)
		}
	}
	last := frag.Run[len(frag.Run)-1]
	topAccent, hasTop := style.Font.GlyphInfo().TopAccentAttachment(last.GID)
	frag.TopAccentAttach = topAccent.At(style.FontSize)
	frag.HasTopAccentAttach = hasTop
	return frag
}

func shapeOne(r rune, style Style) (gid uint16, advance, ascent, descent Abs) {
	font := style.Font
	hbFace := font.Face()
	if hbFace == nil {
		return 0, style.FontSize / 2, style.FontSize * 0.7, style.FontSize * 0.2
	}

	shaper := shaping.HarfbuzzShaper{}
	input := shaping.Input{
		Text:      []rune{r},
		RunStart:  0,
		RunEnd:    1,
		Face:      hbFace,
		Size:      toFixed(float64(style.FontSize)),
		Direction: di.DirectionLTR,
	}
	out := shaper.Shape(input)
	if len(out.Glyphs) == 0 {
		return 0, style.FontSize / 2, style.FontSize * 0.7, style.FontSize * 0.2
	}
	g := out.Glyphs[0]
	gid = uint16(g.GlyphID)
	advance = fromFixed(g.XAdvance)
	ascent = fromFixed(g.YBearing)
	descent = fromFixed(g.Height) - ascent
	if descent < 0 {
		descent = 0
	}
	return
}

func toFixed(f float64) fixed.Int26_6 { return fixed.Int26_6(f * 64) }
func fromFixed(f fixed.Int26_6) Abs   { return Abs(float64(f) / 64) }
