package mathlayout

// LayoutRadical lays out an <msqrt>/<mroot> (spec §4.2's Radical
// module), adapted from the teacher's layout/math/radical.go
// layoutRadicalImpl. sqrt must already be stretched (via StretchGlyph)
// to at least cover the radicand's height; index is nil for <msqrt>.
func LayoutRadical(radicand MathFragment, sqrt *GlyphFragment, index MathFragment, style Style) *FrameFragment {
	radicandFrame := radicand.IntoFrame()
	sqrtFrame := sqrt.IntoFrame()

	constants := style.Font.Math()
	fontSize := style.FontSize
	fs := float64(fontSize)
	display := style.MathStyle.IsDisplay()

	thickness := Abs(constants.RadicalRuleThickness.At(fs))

	var gap Abs
	if display {
		gap = Abs(constants.RadicalDisplayStyleVerticalGap.At(fs))
	} else {
		gap = Abs(constants.RadicalVerticalGap.At(fs))
	}

	// TeXbook p.443 item 11: if the stretched sqrt symbol rises higher
	// than strictly needed, split the extra space between the gap above
	// the radicand and the rule itself sitting higher.
	if freeSpace := sqrtFrame.Height() - thickness - radicandFrame.Height(); freeSpace > gap {
		gap = (gap + freeSpace) / 2.0
	}

	extraAscender := Abs(constants.RadicalExtraAscender.At(fs))

	var indexFrame *Frame
	var indexWidth Abs
	if index != nil {
		indexFrame = index.IntoFrame()
		kernBefore := Abs(constants.RadicalKernBeforeDegree.At(fs))
		kernAfter := Abs(constants.RadicalKernAfterDegree.At(fs))
		indexWidth = kernBefore + indexFrame.Width() + kernAfter
		if indexWidth < 0 {
			indexWidth = 0
		}
	}

	sqrtWidth := sqrtFrame.Width()
	width := indexWidth + sqrtWidth + radicandFrame.Width()
	height := extraAscender + sqrtFrame.Height().Max(thickness+gap+radicandFrame.Height())

	size := Size{X: width, Y: height}
	frame := NewFrame(size)

	sqrtPos := Point{X: indexWidth, Y: extraAscender + (height - extraAscender - sqrtFrame.Height())}
	radicandPos := Point{X: indexWidth + sqrtWidth, Y: height - radicandFrame.Height()}
	baseline := radicandPos.Y + radicandFrame.Ascent()

	frame.SetBaseline(baseline)
	frame.PushFrame(sqrtPos, sqrtFrame)
	frame.PushRule(Point{X: indexWidth + sqrtWidth, Y: extraAscender}, Size{X: radicandFrame.Width(), Y: thickness}, style.Color)
	frame.PushFrame(radicandPos, radicandFrame)

	if index != nil {
		raisePercent := float64(constants.RadicalDegreeBottomRaisePercent) / 100.0
		innerAscent := extraAscender + sqrtFrame.Height()
		shiftUp := Abs(raisePercent*float64(innerAscent-indexFrame.Descent())) + indexFrame.Descent()
		indexPos := Point{X: Abs(constants.RadicalKernBeforeDegree.At(fs)), Y: baseline - shiftUp - indexFrame.Ascent() + indexFrame.Descent()}
		frame.PushFrame(indexPos, indexFrame)
	}

	return NewFrameFragment(ClassOrd, frame)
}
