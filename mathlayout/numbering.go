package mathlayout

import (
	"fmt"
	"sync/atomic"
)

// equationCounter is the engine's one piece of shared mutable state
// (spec §5's Design Notes: "no shared mutable state except an
// atomically-managed counter with reset"), backing the Equation Number
// Overlay's autonumbering.
var equationCounter atomic.Int64

// NextNumber atomically increments and returns the next equation
// number, starting at 1.
func NextNumber() int64 {
	return equationCounter.Add(1)
}

// ResetNumbering sets the next call to NextNumber to return n+1, used
// between independent documents/renders sharing one process.
func ResetNumbering(n int64) {
	equationCounter.Store(n)
}

// NumberFormat renders an equation number per spec §6's `format`
// (a %d-style template) or, when formatFunc is non-nil, a caller-
// supplied formatter (the `format_func` config escape hatch).
func NumberFormat(n int64, format string, formatFunc func(int64) string) string {
	if formatFunc != nil {
		return formatFunc(n)
	}
	if format == "" {
		format = "(%d)"
	}
	return fmt.Sprintf(format, n)
}

// LayoutEquationNumber composes a laid-out equation frame with a number
// or explicit tag, placed flush to columnWidth on the trailing edge
// (spec §4.6/§6's Equation Number Overlay): the number never
// participates in the equation's own spacing/class computation, so it
// is positioned directly rather than folded into the fragment tree.
func LayoutEquationNumber(eq *Frame, number MathFragment, columnWidth Abs, style Style) *Frame {
	numFrame := number.IntoFrame()
	width := columnWidth
	if width < eq.Width()+numFrame.Width() {
		width = eq.Width() + numFrame.Width()
	}
	height := eq.Height().Max(numFrame.Height())

	frame := NewFrame(Size{X: width, Y: height})
	baseline := eq.Ascent().Max(numFrame.Ascent())
	frame.SetBaseline(baseline)

	frame.PushFrame(Point{Y: baseline - eq.Ascent()}, eq)
	numX := width - numFrame.Width()
	frame.PushFrame(Point{X: numX, Y: baseline - numFrame.Ascent()}, numFrame)
	return frame
}
