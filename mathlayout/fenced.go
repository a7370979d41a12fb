package mathlayout

// LayoutFenced wraps body between an opening and closing delimiter
// (spec §4.2's <mfenced>/stretchy <mo> fences), adapted from the
// teacher's layout/math/fenced.go layoutFencedImpl. openCh/closeCh are
// 0 to omit that delimiter (MathML's <mfenced> allows either to be
// absent). Delimiters are stretched to cover body's extent relative to
// the font's axis when balanced, or to body's plain height otherwise.
func LayoutFenced(openCh rune, body MathFragment, closeCh rune, balanced bool, style Style) *FrameFragment {
	var relativeTo Abs
	if balanced {
		axis := Abs(style.Font.Math().AxisHeight.At(float64(style.FontSize)))
		relativeTo = 2.0 * (body.Ascent() - axis).Max(body.Descent() + axis)
	} else {
		relativeTo = body.Height()
	}

	var openFrag, closeFrag *GlyphFragment
	if openCh != 0 {
		openFrag = StretchGlyph(openCh, relativeTo, StretchVertical, style)
	}
	if closeCh != 0 {
		closeFrag = StretchGlyph(closeCh, relativeTo, StretchVertical, style)
	}

	bodyFrame := body.IntoFrame()
	var openFrame, closeFrame *Frame
	var openW, closeW Abs
	if openFrag != nil {
		openFrame = openFrag.IntoFrame()
		openW = openFrame.Width()
	}
	if closeFrag != nil {
		closeFrame = closeFrag.IntoFrame()
		closeW = closeFrame.Width()
	}

	ascent := bodyFrame.Ascent()
	descent := bodyFrame.Descent()
	if openFrame != nil {
		ascent = ascent.Max(openFrame.Ascent())
		descent = descent.Max(openFrame.Descent())
	}
	if closeFrame != nil {
		ascent = ascent.Max(closeFrame.Ascent())
		descent = descent.Max(closeFrame.Descent())
	}

	width := openW + bodyFrame.Width() + closeW
	height := ascent + descent
	frame := NewFrame(Size{X: width, Y: height})
	frame.SetBaseline(ascent)

	x := Abs(0)
	if openFrame != nil {
		frame.PushFrame(Point{X: x, Y: ascent - openFrame.Ascent()}, openFrame)
		x += openW
	}
	frame.PushFrame(Point{X: x, Y: ascent - bodyFrame.Ascent()}, bodyFrame)
	x += bodyFrame.Width()
	if closeFrame != nil {
		frame.PushFrame(Point{X: x, Y: ascent - closeFrame.Ascent()}, closeFrame)
	}

	return NewFrameFragment(ClassOpen, frame)
}
