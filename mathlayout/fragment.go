package mathlayout

// MathFragment is the sealed result of laying out one MathML node: a
// glyph run, a composed frame, inter-atom spacing, or a structural
// marker (line break / alignment point). It is the concrete
// implementation of spec §3's LayoutBox.
type MathFragment interface {
	isMathFragment()

	Width() Abs
	Height() Abs
	Ascent() Abs
	Descent() Abs

	// Class is the TeX spacing class used by InsertSpacing.
	Class() MathClass

	// ItalicsCorrection is spec §3's italic_correction: nonzero when the
	// shape's top-right slants inward, e.g. after an italic letter.
	ItalicsCorrection() Abs

	// AccentAttach returns the fragment's top and bottom accent
	// attachment points (spec §4.4's accent alignment), measured from
	// the fragment's left edge.
	AccentAttach() (top, bottom Abs)

	// IsTextLike reports whether the fragment should be treated as a
	// single shaped glyph run for kerning/italic-correction purposes
	// (true for GlyphFragment, false for most composed FrameFragments).
	IsTextLike() bool

	// IntoFrame converts the fragment into a Frame, consuming it. Pure
	// value semantics: a fragment is consumed exactly once by its
	// parent (spec §3's lifecycle invariant).
	IntoFrame() *Frame

	// HasExplicitSpacing reports whether this fragment already carries
	// its own lspace/rspace (from an operator-dictionary lookup) so
	// InsertSpacing should not add class-based spacing next to it.
	HasExplicitSpacing() bool
}

// baseAscent/baseDescent report the geometric ascent/descent of a
// fragment's *base* content, ignoring any accent accent.go attached —
// used by scripts.go's superscript/subscript shifts so an accented base
// is measured like the bare one.
func BaseAscent(f MathFragment) Abs {
	if ff, ok := f.(*FrameFragment); ok && ff.BaseAscentOverride != nil {
		return *ff.BaseAscentOverride
	}
	return f.Ascent()
}

func BaseDescent(f MathFragment) Abs {
	if ff, ok := f.(*FrameFragment); ok && ff.BaseDescentOverride != nil {
		return *ff.BaseDescentOverride
	}
	return f.Descent()
}

// GlyphFragment is one or more glyphs shaped from a single MathFont at
// a single size — the leaf case of MathFragment, backing <mi>/<mn>/
// <mo>/<mtext>/<ms> single-run text.
type GlyphFragment struct {
	Font     *MathFont
	FontSize Abs
	Run      []ShapedGlyph
	MClass   MathClass
	Italics  Abs
	// LSpace/RSpace, when Explicit is true, come from an operator
	// dictionary lookup (spec §4.5); InsertSpacing emits them as space
	// before and after the glyph, and Explicit suppresses its
	// class-based spacing on both sides.
	LSpace, RSpace Abs
	Explicit       bool
	// TopAccentAttach/BottomAccentAttach, when set, come from the font's
	// MathTopAccentAttachment / symmetric axis for this glyph.
	TopAccentAttach    Abs
	HasTopAccentAttach bool
}

// ShapedGlyph is one glyph of a GlyphFragment's run.
type ShapedGlyph struct {
	GID                      uint16
	XAdvance                 Abs
	Ascent, Descent          Abs
}

func (*GlyphFragment) isMathFragment() {}

func (g *GlyphFragment) Width() Abs {
	var w Abs
	for _, gl := range g.Run {
		w += gl.XAdvance
	}
	return w
}

func (g *GlyphFragment) Height() Abs { return g.Ascent() + g.Descent() }

func (g *GlyphFragment) Ascent() Abs {
	var a Abs
	for _, gl := range g.Run {
		a = a.Max(gl.Ascent)
	}
	return a
}

func (g *GlyphFragment) Descent() Abs {
	var d Abs
	for _, gl := range g.Run {
		d = d.Max(gl.Descent)
	}
	return d
}

func (g *GlyphFragment) Class() MathClass             { return g.MClass }
func (g *GlyphFragment) ItalicsCorrection() Abs       { return g.Italics }
func (g *GlyphFragment) IsTextLike() bool             { return true }
func (g *GlyphFragment) HasExplicitSpacing() bool     { return g.Explicit }

func (g *GlyphFragment) AccentAttach() (top, bottom Abs) {
	if g.HasTopAccentAttach {
		top = g.TopAccentAttach
	} else {
		top = g.Width() / 2
	}
	bottom = g.Width() / 2
	return
}

func (g *GlyphFragment) IntoFrame() *Frame {
	run := &GlyphRun{Font: g.Font, FontSize: g.FontSize, Fill: Black}
	for _, gl := range g.Run {
		run.Glyphs = append(run.Glyphs, PlacedGlyph{GID: gl.GID, XAdvance: gl.XAdvance})
	}
	f := NewFrame(Size{X: g.Width(), Y: g.Height()})
	f.SetBaseline(g.Ascent())
	f.PushGlyphRun(Point{}, run)
	return f
}

// FrameFragment wraps an already-composed Frame (fractions, radicals,
// scripts, tables, accents, ...) with the MathFragment metadata its
// parent still needs: class, italic correction, accent-attach points,
// and text-likeness for further composition (e.g. a superscript applied
// to a fraction).
type FrameFragment struct {
	F                   *Frame
	MClass              MathClass
	Italics             Abs
	TextLike            bool
	AccentAttachTop     Abs
	AccentAttachBottom  Abs
	BaseAscentOverride  *Abs
	BaseDescentOverride *Abs
	Explicit            bool
	LSpace, RSpace      Abs
	// MidBaseline, when set, is the vertical math-axis baseline used by
	// n-ary/limit layouts to align an operator's own center rather than
	// its typographic baseline.
	MidBaseline *Abs
}

// NewFrameFragment wraps frame as a FrameFragment with default
// (non-accent-aware) attach points at the frame's horizontal center.
func NewFrameFragment(class MathClass, frame *Frame) *FrameFragment {
	half := frame.Width() / 2
	return &FrameFragment{
		F:                  frame,
		MClass:             class,
		AccentAttachTop:    half,
		AccentAttachBottom: half,
	}
}

func (*FrameFragment) isMathFragment() {}

func (f *FrameFragment) Width() Abs  { return f.F.Width() }
func (f *FrameFragment) Height() Abs { return f.F.Height() }
func (f *FrameFragment) Ascent() Abs { return f.F.Ascent() }
func (f *FrameFragment) Descent() Abs { return f.F.Descent() }
func (f *FrameFragment) Class() MathClass { return f.MClass }
func (f *FrameFragment) ItalicsCorrection() Abs { return f.Italics }
func (f *FrameFragment) IsTextLike() bool { return f.TextLike }
func (f *FrameFragment) HasExplicitSpacing() bool { return f.Explicit }

func (f *FrameFragment) AccentAttach() (top, bottom Abs) {
	return f.AccentAttachTop, f.AccentAttachBottom
}

func (f *FrameFragment) IntoFrame() *Frame { return f.F }

// SpaceFragment is pure inter-atom whitespace: an <mspace>, or spacing
// inserted by InsertSpacing/the operator dictionary.
type SpaceFragment struct {
	Amount    Abs
	Linebreak bool
}

func (*SpaceFragment) isMathFragment()          {}
func (s *SpaceFragment) Width() Abs             { return s.Amount }
func (s *SpaceFragment) Height() Abs            { return 0 }
func (s *SpaceFragment) Ascent() Abs            { return 0 }
func (s *SpaceFragment) Descent() Abs           { return 0 }
func (s *SpaceFragment) Class() MathClass       { return ClassNone }
func (s *SpaceFragment) ItalicsCorrection() Abs { return 0 }
func (s *SpaceFragment) IsTextLike() bool       { return false }
func (s *SpaceFragment) HasExplicitSpacing() bool { return true }
func (s *SpaceFragment) AccentAttach() (Abs, Abs) { return 0, 0 }
func (s *SpaceFragment) IntoFrame() *Frame {
	return NewFrame(Size{X: s.Amount})
}

// LinebreakFragment marks a line break point. StackLines breaks lines
// at it (multi-line <mtext>/<ms>); <mspace linebreak="newline"> also
// yields one, but rows lay it out as zero width and do not break there,
// at any nesting depth.
type LinebreakFragment struct{}

func (*LinebreakFragment) isMathFragment()            {}
func (*LinebreakFragment) Width() Abs                 { return 0 }
func (*LinebreakFragment) Height() Abs                { return 0 }
func (*LinebreakFragment) Ascent() Abs                { return 0 }
func (*LinebreakFragment) Descent() Abs               { return 0 }
func (*LinebreakFragment) Class() MathClass           { return ClassNone }
func (*LinebreakFragment) ItalicsCorrection() Abs     { return 0 }
func (*LinebreakFragment) IsTextLike() bool           { return false }
func (*LinebreakFragment) HasExplicitSpacing() bool   { return true }
func (*LinebreakFragment) AccentAttach() (Abs, Abs)   { return 0, 0 }
func (*LinebreakFragment) IntoFrame() *Frame          { return NewFrame(Size{}) }
