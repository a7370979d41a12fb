package mathlayout

// LayoutLine draws an overline or underline beneath/above content
// (spec §4.2's Overline/Underline, used for <menclose
// notation="top"|"bottom">), adapted from
// the teacher's layout/math/line.go layoutLineImpl.
func LayoutLine(content MathFragment, pos AccentPosition, style Style) *FrameFragment {
	constants := style.Font.Math()
	fs := float64(style.FontSize)

	var extraHeight, linePosY, contentPosY, baseline, thickness, lineAdjust Abs

	switch pos {
	case AccentBelow:
		sep := Abs(constants.UnderbarExtraDescender.At(fs))
		thickness = Abs(constants.UnderbarRuleThickness.At(fs))
		gap := Abs(constants.UnderbarVerticalGap.At(fs))
		extraHeight = sep + thickness + gap

		linePosY = content.Height() + gap + thickness/2.0
		contentPosY = 0
		baseline = content.Ascent()
		lineAdjust = -content.ItalicsCorrection()

	case AccentAbove:
		sep := Abs(constants.OverbarExtraAscender.At(fs))
		thickness = Abs(constants.OverbarRuleThickness.At(fs))
		gap := Abs(constants.OverbarVerticalGap.At(fs))
		extraHeight = sep + thickness + gap

		linePosY = sep + thickness/2.0
		contentPosY = extraHeight
		baseline = content.Ascent() + extraHeight
		lineAdjust = 0
	}

	width := content.Width()
	height := content.Height() + extraHeight
	lineWidth := width + lineAdjust

	contentTextLike := content.IsTextLike()
	contentItalics := content.ItalicsCorrection()

	frame := NewFrame(Size{X: width, Y: height})
	frame.SetBaseline(baseline)
	frame.PushFrame(Point{Y: contentPosY}, content.IntoFrame())
	frame.PushRule(Point{Y: linePosY - thickness/2.0}, Size{X: lineWidth, Y: thickness}, style.Color)

	ff := NewFrameFragment(content.Class(), frame)
	ff.Italics = contentItalics
	ff.TextLike = contentTextLike
	return ff
}
