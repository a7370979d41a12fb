package mathlayout

// Scripts holds the up-to-six attachment positions MathML's
// <msub>/<msup>/<msubsup>/<mmultiscripts>/<munder>/<mover>/
// <munderover> all reduce to (spec §4.4): pre/post sub/superscripts
// plus upper/lower limits. Algorithm adapted from the teacher's
// layout/math/scripts.go (layoutAttachments/computeScriptShifts/
// computeLimitShifts/mathKern), which implements the OpenType MATH
// script-placement rules almost verbatim; this version replaces its
// MathContext/StyleChain plumbing with this package's Style/Fragment
// types and completes the cramped-style lookup TODO; scripts and limits
// are placed at their own width, none is stretched to the base.
type Scripts struct {
	Base                                   MathFragment
	TopLeft, Top, TopRight                 MathFragment
	BottomLeft, Bottom, BottomRight        MathFragment
	Cramped                                bool
}

// LayoutAttachments composes a base with its scripts/limits into one
// FrameFragment, following OpenType MATH placement geometry.
func LayoutAttachments(s Scripts, style Style) *FrameFragment {
	base := s.Base
	font := base0Font(base, style)
	fontSize := style.FontSize
	constants := font.Math()

	tl, t, tr := s.TopLeft, s.Top, s.TopRight
	bl, b, br := s.BottomLeft, s.Bottom, s.BottomRight

	var txShift, bxShift Abs
	if tl != nil || tr != nil || bl != nil || br != nil {
		txShift, bxShift = computeScriptShifts(font, fontSize, s.Cramped, base, tl, tr, bl, br)
	}
	tShift, bShift := computeLimitShifts(font, fontSize, base, t, b)

	measure := func(f MathFragment, fn func(MathFragment) Abs) Abs {
		if f == nil {
			return 0
		}
		return fn(f)
	}

	ascent := base.Ascent()
	ascent = ascent.Max(txShift + measure(tr, MathFragment.Ascent))
	ascent = ascent.Max(txShift + measure(tl, MathFragment.Ascent))
	ascent = ascent.Max(tShift + measure(t, MathFragment.Ascent))

	descent := base.Descent()
	descent = descent.Max(bxShift + measure(br, MathFragment.Descent))
	descent = descent.Max(bxShift + measure(bl, MathFragment.Descent))
	descent = descent.Max(bShift + measure(b, MathFragment.Descent))

	height := ascent + descent
	baseY := ascent - base.Ascent()
	txY := func(f MathFragment) Abs { return ascent - txShift - f.Ascent() }
	bxY := func(f MathFragment) Abs { return ascent + bxShift - f.Ascent() }
	tY := func(f MathFragment) Abs { return ascent - tShift - f.Ascent() }
	bY := func(f MathFragment) Abs { return ascent + bShift - f.Ascent() }

	tPreWidth, tPostWidth := computeLimitWidth(base, t)
	bPreWidth, bPostWidth := computeLimitWidth(base, b)

	spaceAfterScript := Abs(constants.SpaceAfterScript.At(float64(fontSize)))

	tlPreWidth, blPreWidth := computePreScriptWidths(base, tl, bl, txShift, bxShift, spaceAfterScript)
	trPostWidth, trKern := computePostScriptWidth(base, tr, txShift, spaceAfterScript)
	brPostWidth, brKern := computePostScriptWidth(base, br, bxShift, spaceAfterScript)
	if br != nil {
		brKern -= base.ItalicsCorrection()
	}

	preWidth := tPreWidth.Max(bPreWidth).Max(tlPreWidth).Max(blPreWidth)
	baseWidth := base.Width()
	postWidth := tPostWidth.Max(bPostWidth).Max(trPostWidth).Max(brPostWidth)
	width := preWidth + baseWidth + postWidth

	baseX := preWidth
	tlX := preWidth - tlPreWidth + spaceAfterScript
	blX := preWidth - blPreWidth + spaceAfterScript
	trX := preWidth + baseWidth + trKern
	brX := preWidth + baseWidth + brKern
	tX := preWidth - tPreWidth
	bX := preWidth - bPreWidth

	frame := NewFrame(Size{X: width, Y: height})
	frame.SetBaseline(ascent)
	frame.PushFrame(Point{X: baseX, Y: baseY}, base.IntoFrame())

	if tl != nil {
		frame.PushFrame(Point{X: tlX, Y: txY(tl)}, tl.IntoFrame())
	}
	if bl != nil {
		frame.PushFrame(Point{X: blX, Y: bxY(bl)}, bl.IntoFrame())
	}
	if tr != nil {
		frame.PushFrame(Point{X: trX, Y: txY(tr)}, tr.IntoFrame())
	}
	if br != nil {
		frame.PushFrame(Point{X: brX, Y: bxY(br)}, br.IntoFrame())
	}
	if t != nil {
		frame.PushFrame(Point{X: tX, Y: tY(t)}, t.IntoFrame())
	}
	if b != nil {
		frame.PushFrame(Point{X: bX, Y: bY(b)}, b.IntoFrame())
	}

	return NewFrameFragment(base.Class(), frame)
}

func base0Font(base MathFragment, style Style) *MathFont {
	if g, ok := base.(*GlyphFragment); ok {
		return g.Font
	}
	return style.Font
}

func computeScriptShifts(font *MathFont, fontSize Abs, cramped bool, base MathFragment, tl, tr, bl, br MathFragment) (txShift, bxShift Abs) {
	c := font.Math()
	fs := float64(fontSize)

	supShiftUp := Abs(c.SuperscriptShiftUp.At(fs))
	if cramped {
		supShiftUp = Abs(c.SuperscriptShiftUpCramped.At(fs))
	}
	supBottomMin := Abs(c.SuperscriptBottomMin.At(fs))
	supBottomMaxWithSub := Abs(c.SuperscriptBottomMaxWithSubscript.At(fs))
	supDropMax := Abs(c.SuperscriptBaselineDropMax.At(fs))
	gapMin := Abs(c.SubSuperscriptGapMin.At(fs))
	subShiftDown := Abs(c.SubscriptShiftDown.At(fs))
	subTopMax := Abs(c.SubscriptTopMax.At(fs))
	subDropMin := Abs(c.SubscriptBaselineDropMin.At(fs))

	isTextLike := base.IsTextLike()

	if tl != nil || tr != nil {
		baseAscent := BaseAscent(base)
		txShift = supShiftUp
		if !isTextLike {
			txShift = txShift.Max(baseAscent - supDropMax)
		}
		if tl != nil {
			txShift = txShift.Max(supBottomMin + tl.Descent())
		}
		if tr != nil {
			txShift = txShift.Max(supBottomMin + tr.Descent())
		}
	}

	if bl != nil || br != nil {
		baseDescent := BaseDescent(base)
		bxShift = subShiftDown
		if !isTextLike {
			bxShift = bxShift.Max(baseDescent + subDropMin)
		}
		if bl != nil {
			bxShift = bxShift.Max(bl.Ascent() - subTopMax)
		}
		if br != nil {
			bxShift = bxShift.Max(br.Ascent() - subTopMax)
		}
	}

	for _, pair := range [][2]MathFragment{{tl, bl}, {tr, br}} {
		sup, sub := pair[0], pair[1]
		if sup != nil && sub != nil {
			supBottom := txShift - sup.Descent()
			subTop := sub.Ascent() - bxShift
			gap := supBottom - subTop
			if gap < gapMin {
				increase := gapMin - gap
				supOnly := (supBottomMaxWithSub - supBottom).Clamp(0, increase)
				rest := (increase - supOnly) / 2.0
				txShift += supOnly + rest
				bxShift += rest
			}
		}
	}

	return txShift, bxShift
}

func computeLimitShifts(font *MathFont, fontSize Abs, base MathFragment, t, b MathFragment) (tShift, bShift Abs) {
	c := font.Math()
	fs := float64(fontSize)

	if t != nil {
		upperGapMin := Abs(c.UpperLimitGapMin.At(fs))
		upperRiseMin := Abs(c.UpperLimitBaselineRiseMin.At(fs))
		tShift = base.Ascent() + upperRiseMin.Max(upperGapMin+t.Descent())
	}
	if b != nil {
		lowerGapMin := Abs(c.LowerLimitGapMin.At(fs))
		lowerDropMin := Abs(c.LowerLimitBaselineDropMin.At(fs))
		bShift = base.Descent() + lowerDropMin.Max(lowerGapMin+b.Ascent())
	}
	return tShift, bShift
}

func computeLimitWidth(base, limit MathFragment) (preWidth, postWidth Abs) {
	if limit == nil {
		return 0, 0
	}
	delta := base.ItalicsCorrection() / 2.0
	half := (limit.Width() - base.Width()) / 2.0
	return half - delta, half + delta
}

func computePreScriptWidths(base, tl, bl MathFragment, tlShift, blShift, spaceBeforePreScript Abs) (tlPreWidth, blPreWidth Abs) {
	if tl != nil {
		kern := mathKernBetween(base, tl, CornerTopLeft, tlShift)
		tlPreWidth = spaceBeforePreScript + tl.Width() + kern
	}
	if bl != nil {
		kern := mathKernBetween(base, bl, CornerBottomLeft, blShift)
		blPreWidth = spaceBeforePreScript + bl.Width() + kern
	}
	return tlPreWidth, blPreWidth
}

func computePostScriptWidth(base, script MathFragment, shift, spaceAfterScript Abs) (postWidth, kern Abs) {
	if script == nil {
		return 0, 0
	}
	kern = mathKernBetween(base, script, CornerTopRight, shift)
	postWidth = spaceAfterScript + script.Width() + kern
	return postWidth, kern
}

func mathKernBetween(base, script MathFragment, pos Corner, shift Abs) Abs {
	var corrHeightTop, corrHeightBot Abs
	switch pos {
	case CornerTopLeft, CornerTopRight:
		corrHeightTop = base.Ascent() - shift
		corrHeightBot = shift - script.Descent()
	default:
		corrHeightTop = script.Ascent() - shift
		corrHeightBot = shift - base.Descent()
	}

	summedKern := func(height Abs) Abs {
		return KernAtHeight(base, pos, height) + KernAtHeight(script, cornerInv(pos), height)
	}
	k1 := summedKern(corrHeightTop)
	k2 := summedKern(corrHeightBot)
	return k1.Max(k2)
}
