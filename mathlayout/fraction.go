package mathlayout

// LayoutFraction lays out an <mfrac> (spec §4.2's Fraction module),
// adapted directly from the teacher's layout/math/fraction.go
// layoutFractionImpl: same OpenType MATH constant-driven gap/shift-up
// geometry, generalized from the teacher's line/no-line toggle to
// MathML's `linethickness` attribute (0 behaves exactly like the
// teacher's no-line stack case).
func LayoutFraction(num, denom MathFragment, style Style, padding Abs, lineThickness Abs, hasLine bool) *FrameFragment {
	numFrame := num.IntoFrame()
	denomFrame := denom.IntoFrame()

	constants := style.Font.Math()
	fontSize := style.FontSize
	fs := float64(fontSize)
	display := style.MathStyle.IsDisplay()

	var frame *Frame

	if hasLine {
		axis := Abs(constants.AxisHeight.At(fs))
		thickness := lineThickness
		if thickness == 0 {
			thickness = Abs(constants.FractionRuleThickness.At(fs))
		}

		var shiftUp, shiftDown, numMin, denomMin Abs
		if display {
			shiftUp = Abs(constants.FractionNumeratorDisplayStyleShiftUp.At(fs))
			shiftDown = Abs(constants.FractionDenominatorDisplayStyleShiftDown.At(fs))
			numMin = Abs(constants.FractionNumDisplayStyleGapMin.At(fs))
			denomMin = Abs(constants.FractionDenomDisplayStyleGapMin.At(fs))
		} else {
			shiftUp = Abs(constants.FractionNumeratorShiftUp.At(fs))
			shiftDown = Abs(constants.FractionDenominatorShiftDown.At(fs))
			numMin = Abs(constants.FractionNumeratorGapMin.At(fs))
			denomMin = Abs(constants.FractionDenominatorGapMin.At(fs))
		}

		numGap := (shiftUp - (axis + thickness/2.0) - numFrame.Descent()).Max(numMin)
		denomGap := (shiftDown + (axis - thickness/2.0) - denomFrame.Ascent()).Max(denomMin)

		lineWidth := numFrame.Width().Max(denomFrame.Width())
		width := lineWidth + 2.0*padding
		height := numFrame.Height() + numGap + thickness + denomGap + denomFrame.Height()
		size := Size{X: width, Y: height}

		numPos := PointWithX((width - numFrame.Width()) / 2.0)
		linePos := Point{X: (width - lineWidth) / 2.0, Y: numFrame.Height() + numGap + thickness/2.0}
		denomPos := Point{X: (width - denomFrame.Width()) / 2.0, Y: height - denomFrame.Height()}
		baseline := linePos.Y + axis

		frame = NewFrame(size)
		frame.SetBaseline(baseline)
		frame.PushFrame(numPos, numFrame)
		frame.PushFrame(denomPos, denomFrame)
		frame.PushRule(Point{X: linePos.X, Y: linePos.Y - thickness/2.0}, Size{X: lineWidth, Y: thickness}, style.Color)
	} else {
		var shiftUp, shiftDown, gapMin Abs
		if display {
			shiftUp = Abs(constants.StackTopDisplayStyleShiftUp.At(fs))
			shiftDown = Abs(constants.StackBottomDisplayStyleShiftDown.At(fs))
			gapMin = Abs(constants.StackDisplayStyleGapMin.At(fs))
		} else {
			shiftUp = Abs(constants.StackTopShiftUp.At(fs))
			shiftDown = Abs(constants.StackBottomShiftDown.At(fs))
			gapMin = Abs(constants.StackGapMin.At(fs))
		}

		gap := (shiftUp - numFrame.Descent()) + (shiftDown - denomFrame.Ascent())
		actualGap := gap.Max(gapMin)

		width := numFrame.Width().Max(denomFrame.Width()) + 2.0*padding
		height := numFrame.Height() + actualGap + denomFrame.Height()
		size := Size{X: width, Y: height}

		numPos := PointWithX((width - numFrame.Width()) / 2.0)
		denomPos := Point{X: (width - denomFrame.Width()) / 2.0, Y: height - denomFrame.Height()}

		baseline := numFrame.Ascent() + shiftUp
		if gapMin > gap {
			baseline += (gapMin - gap) / 2.0
		}

		frame = NewFrame(size)
		frame.SetBaseline(baseline)
		frame.PushFrame(numPos, numFrame)
		frame.PushFrame(denomPos, denomFrame)
	}

	return NewFrameFragment(ClassInner, frame)
}
