package mathlayout

import (
	"strings"

	"github.com/rivo/uniseg"
)

// LayoutText lays out <mtext>/<ms> content (spec §4.1), adapted from
// the teacher's layout/math/text.go layoutTextImpl: text is split on
// newlines into independent lines (each its own baseline-stacked row,
// per the teacher's layoutTextLines), and each line is shaped as a
// single upright run rather than per-atom math glyphs, since text
// content does not participate in TeX inter-atom spacing.
func LayoutText(text string, style Style) MathFragment {
	if !strings.ContainsAny(text, "\n\r") {
		return layoutTextLine(text, style)
	}

	lines := splitLines(text)
	var fragments []MathFragment
	for i, line := range lines {
		if i != 0 {
			fragments = append(fragments, &LinebreakFragment{})
		}
		if line != "" {
			fragments = append(fragments, layoutTextLine(line, style))
		}
	}

	frame := StackLines(fragments)
	axis := Abs(style.Font.Math().AxisHeight.At(float64(style.FontSize)))
	frame.SetBaseline(frame.Height()/2.0 + axis)
	return NewFrameFragment(ClassOrd, frame)
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func layoutTextLine(text string, style Style) MathFragment {
	g := ResolveRun(text, style)
	g.MClass = ClassOrd
	g.Explicit = true
	return g
}

// StackLines lays a sequence of fragments (plain content interspersed
// with LinebreakFragment markers) out top to bottom, left-aligned, one
// line per break — the vertical-stacking shape used for multi-line
// <mtext>/<ms>. Rows of a <math> expression do not use it, so an
// <mspace linebreak="newline"> there does not break the line.
func StackLines(fragments []MathFragment) *Frame {
	var lines [][]MathFragment
	var current []MathFragment
	for _, f := range fragments {
		if _, ok := f.(*LinebreakFragment); ok {
			lines = append(lines, current)
			current = nil
			continue
		}
		current = append(current, f)
	}
	lines = append(lines, current)

	var lineFrames []*Frame
	var width, height Abs
	for _, line := range lines {
		lf := rowFrame(line)
		lineFrames = append(lineFrames, lf)
		width = width.Max(lf.Width())
		height += lf.Height()
	}

	frame := NewFrame(Size{X: width, Y: height})
	y := Abs(0)
	for _, lf := range lineFrames {
		frame.PushFrame(Point{Y: y}, lf)
		y += lf.Height()
	}
	return frame
}

func rowFrame(frags []MathFragment) *Frame {
	var width, ascent, descent Abs
	for _, f := range frags {
		width += f.Width()
		ascent = ascent.Max(f.Ascent())
		descent = descent.Max(f.Descent())
	}
	frame := NewFrame(Size{X: width, Y: ascent + descent})
	frame.SetBaseline(ascent)
	x := Abs(0)
	for _, f := range frags {
		ff := f.IntoFrame()
		frame.PushFrame(Point{X: x, Y: ascent - ff.Ascent()}, ff)
		x += ff.Width()
	}
	return frame
}

// GraphemeClusters splits s into its grapheme clusters. The Mixed-Text
// Driver does not call it: findClosingDollar scans the line rune by
// rune.
func GraphemeClusters(s string) []string {
	var clusters []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}
