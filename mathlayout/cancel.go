package mathlayout

// CancelNotation selects which strike(s) an <menclose> cancel mark
// draws, per spec §4.2's enclose notations.
type CancelNotation int

const (
	CancelUpdiagonal CancelNotation = iota
	CancelDowndiagonal
	CancelCross
)

// LayoutCancel draws one or two diagonal strike lines over base (spec
// §4.2's <menclose notation="updiagonalstrike|downdiagonalstrike|
// updiagonalstrike downdiagonalstrike">), adapted from the teacher's
// layout/math/cancel.go layoutCancelImpl/drawCancelLine: each line runs
// corner-to-corner of the base's bounding box, diagonal by default.
func LayoutCancel(base MathFragment, notation CancelNotation, thickness Abs, style Style) *FrameFragment {
	baseTextLike := base.IsTextLike()
	baseItalics := base.ItalicsCorrection()
	attachTop, attachBottom := base.AccentAttach()

	frame := base.IntoFrame()
	size := frame.Size()
	center := Point{X: size.X / 2, Y: size.Y / 2}
	dx, dy := size.X, size.Y

	if notation == CancelUpdiagonal || notation == CancelCross {
		start := Point{X: center.X - dx/2, Y: center.Y + dy/2}
		frame.PushLine(start, Point{X: dx, Y: -dy}, thickness, style.Color)
	}
	if notation == CancelDowndiagonal || notation == CancelCross {
		start := Point{X: center.X - dx/2, Y: center.Y - dy/2}
		frame.PushLine(start, Point{X: dx, Y: dy}, thickness, style.Color)
	}

	ff := NewFrameFragment(base.Class(), frame)
	ff.Italics = baseItalics
	ff.TextLike = baseTextLike
	ff.AccentAttachTop, ff.AccentAttachBottom = attachTop, attachBottom
	return ff
}
