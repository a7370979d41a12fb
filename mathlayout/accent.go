package mathlayout

// AccentPosition distinguishes an over-accent (<mover accent="true">)
// from an under-accent (<munder accentunder="true">).
type AccentPosition int

const (
	AccentAbove AccentPosition = iota
	AccentBelow
)

// LayoutAccent lays out an accent glued to a base (spec §4.4's accent
// placement), adapted from the teacher's layout/math/accent.go
// layoutAccentImpl: the accent's AccentAttach point is aligned with the
// base's, and an over-accent's gap uses the OpenType MATH
// AccentBaseHeight rule; no flattened accent variant is selected.
func LayoutAccent(base, accentFrag MathFragment, pos AccentPosition, style Style) *FrameFragment {
	font := base0Font(base, style)
	fontSize := style.FontSize
	fs := float64(fontSize)

	baseAttachTop, baseAttachBottom := base.AccentAttach()
	accentAttachTop, _ := accentFrag.AccentAttach()
	accent := accentFrag.IntoFrame()

	topAccent := pos == AccentAbove

	var baseAttachPos Abs
	if topAccent {
		baseAttachPos = baseAttachTop
	} else {
		baseAttachPos = baseAttachBottom
	}

	width := base.Width()
	baseX := Abs(0)
	accentX := baseAttachPos - accentAttachTop

	var gap, baseline Abs
	var accentPos, basePos Point

	if topAccent {
		accentBaseHeight := Abs(font.Math().AccentBaseHeight.At(fs))
		gap = -accent.Descent() - base.Ascent().Min(accentBaseHeight)
		accentPos = PointWithX(accentX)
		basePos = Point{X: baseX, Y: accent.Height() + gap}
		baseline = basePos.Y + base.Ascent()
	} else {
		gap = -accent.Ascent()
		accentPos = Point{X: accentX, Y: base.Height() + gap}
		basePos = PointWithX(baseX)
		baseline = base.Ascent()
	}

	size := Size{X: width, Y: accent.Height() + gap + base.Height()}

	baseFrame := base.IntoFrame()
	frame := NewFrame(size)
	frame.SetBaseline(baseline)
	frame.PushFrame(accentPos, accent)
	frame.PushFrame(basePos, baseFrame)

	ff := NewFrameFragment(base.Class(), frame)
	baseAscent := BaseAscent(base)
	baseDescent := BaseDescent(base)
	ff.BaseAscentOverride = &baseAscent
	ff.BaseDescentOverride = &baseDescent
	ff.Italics = base.ItalicsCorrection()
	ff.TextLike = base.IsTextLike()
	ff.AccentAttachTop, ff.AccentAttachBottom = baseAttachTop, baseAttachBottom

	return ff
}
