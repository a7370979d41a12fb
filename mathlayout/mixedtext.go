package mathlayout

import (
	"strings"

	"github.com/ziamath-go/ziamath/latex"
)

// MixedTextConfig bundles the per-render settings the Mixed-Text Driver
// (spec §4.7) needs beyond a single math span: the text-run style, the
// inline/display math styles math spans resolve into, line/alignment
// geometry, and the operator-table extension math spans see.
type MixedTextConfig struct {
	TextStyle        Style
	MathStyleInline  Style
	MathStyleDisplay Style
	HAlign           FixedAlignment
	LineSpacing      float64 // multiplier of TextStyle.FontSize
	RotationDegrees  float64
	Ops              latex.OperatorTable
}

// LayoutMixedText tokenizes input by scanning for unescaped `$…$`
// (inline) and `$$…$$` (display) math spans (spec §4.7), lays out each
// span with the appropriate engine, splits on "\n", and vertically
// stacks the resulting lines with halign-aware horizontal placement.
func LayoutMixedText(input string, cfg MixedTextConfig) (*Frame, error) {
	lines := strings.Split(input, "\n")
	lineFrames := make([]*Frame, 0, len(lines))
	for _, line := range lines {
		frags, err := tokenizeMixedLine(line, cfg)
		if err != nil {
			return nil, err
		}
		lineFrames = append(lineFrames, rowFrame(frags))
	}
	return stackMixedLines(lineFrames, cfg), nil
}

// tokenizeMixedLine scans one line for `$$…$$` and `$…$` spans not
// preceded by a backslash, alternating plain-text segments (shaped with
// TextStyle) with math segments (parsed as LaTeX and laid out with the
// corresponding inline/display style).
func tokenizeMixedLine(line string, cfg MixedTextConfig) ([]MathFragment, error) {
	var frags []MathFragment
	runes := []rune(line)
	var textBuf strings.Builder

	flushText := func() {
		if textBuf.Len() == 0 {
			return
		}
		frags = append(frags, layoutTextLine(textBuf.String(), cfg.TextStyle))
		textBuf.Reset()
	}

	i := 0
	for i < len(runes) {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) && runes[i+1] == '$' {
			textBuf.WriteRune('$')
			i += 2
			continue
		}
		if r == '$' {
			display := i+1 < len(runes) && runes[i+1] == '$'
			delimLen := 1
			if display {
				delimLen = 2
			}
			end := findClosingDollar(runes, i+delimLen, display)
			if end < 0 {
				// No closing delimiter: treat the rest of the line as text,
				// spec §8's recover-rather-than-fail policy.
				textBuf.WriteString(string(runes[i:]))
				i = len(runes)
				break
			}
			flushText()
			mathSrc := string(runes[i+delimLen : end])
			style := cfg.MathStyleInline
			if display {
				style = cfg.MathStyleDisplay
			}
			frag, err := layoutMathSpan(mathSrc, style, cfg.Ops)
			if err != nil {
				return nil, err
			}
			frags = append(frags, frag)
			i = end + delimLen
			continue
		}
		textBuf.WriteRune(r)
		i++
	}
	flushText()
	return frags, nil
}

func findClosingDollar(runes []rune, from int, display bool) int {
	need := 1
	if display {
		need = 2
	}
	for i := from; i < len(runes); i++ {
		if runes[i] != '$' {
			continue
		}
		if i > from && runes[i-1] == '\\' {
			continue
		}
		if !display {
			return i
		}
		if i+1 < len(runes) && runes[i+1] == '$' {
			return i
		}
	}
	_ = need
	return -1
}

func layoutMathSpan(src string, style Style, ops latex.OperatorTable) (MathFragment, error) {
	root, err := latex.ToMathML(src, ops)
	if err != nil {
		return nil, err
	}
	return LayoutNode(root, style)
}

// stackMixedLines vertically stacks each line's frame with
// linespacing * font-size leading, positioning each per cfg.HAlign, and
// applies the block-level rotation around its top-left anchor.
func stackMixedLines(lines []*Frame, cfg MixedTextConfig) *Frame {
	if len(lines) == 0 {
		return NewFrame(Size{})
	}

	lineHeight := cfg.TextStyle.FontSize * Abs(cfg.LineSpacing)
	if lineHeight <= 0 {
		lineHeight = cfg.TextStyle.FontSize
	}

	var width Abs
	for _, lf := range lines {
		width = width.Max(lf.Width())
	}

	height := lineHeight * Abs(len(lines))
	frame := NewFrame(Size{X: width, Y: height})
	frame.SetBaseline(lines[0].Ascent())

	y := Abs(0)
	for _, lf := range lines {
		extra := width - lf.Width()
		x := cfg.HAlign.Position(extra)
		frame.PushFrame(Point{X: x, Y: y + (lineHeight-lf.Height())/2}, lf)
		y += lineHeight
	}

	if cfg.RotationDegrees != 0 {
		frame.SetRotation(cfg.RotationDegrees)
	}
	return frame
}
