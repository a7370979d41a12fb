package mathlayout

// LayoutPrimes composes a run of overlapping prime marks (spec §4.4's
// msup-with-prime shorthand and the Unicode ′/″/‴ convenience glyphs),
// adapted from the teacher's layout/math/scripts.go layoutPrimesImpl:
// each successive prime overlaps the previous by half its own width.
func LayoutPrimes(prime *GlyphFragment, count int) *FrameFragment {
	pf := prime.IntoFrame()
	width := pf.Width() * Abs(float64(count+1)/2.0)
	frame := NewFrame(Size{X: width, Y: pf.Height()})
	frame.SetBaseline(pf.Ascent())

	for i := 0; i < count; i++ {
		pos := PointWithX(pf.Width() * Abs(float64(i)/2.0))
		frame.PushFrame(pos, pf)
	}

	ff := NewFrameFragment(prime.Class(), frame)
	ff.TextLike = true
	return ff
}
