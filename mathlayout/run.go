package mathlayout

import (
	"strconv"
	"strings"

	"github.com/ziamath-go/ziamath/font"
	"github.com/ziamath-go/ziamath/mathml"
)

// OperatorForm re-exports font.OperatorForm so call sites in this
// package don't need to import font directly just to resolve an <mo>'s
// position (spec §4.5's first/last/middle-child rule).
type OperatorForm = font.OperatorForm

const (
	FormInfix   = font.FormInfix
	FormPrefix  = font.FormPrefix
	FormPostfix = font.FormPostfix
)

// LayoutNode dispatches a parsed mathml.Node to its layout per spec
// §4's per-element rules, adapted from the teacher's layout/math/math.go
// layoutRealized dispatch switch: one case per MathML tag instead of
// per typst MathKind, reusing the same "resolve style, recurse,
// compose a FrameFragment" shape throughout.
func LayoutNode(n *mathml.Node, style Style) (MathFragment, error) {
	if n == nil || n.IsEmpty() && len(n.Children) == 0 {
		return emptyFragment(), nil
	}

	style = applyCommonAttrs(n, style)

	switch n.Tag {
	case "math", "mrow", "mstyle":
		return layoutRow(n.Children, style)
	case "none":
		return emptyFragment(), nil
	case "mi", "mn":
		return layoutToken(n, style, false), nil
	case "mo":
		return layoutOperatorToken(n, style, FormInfix), nil
	case "mtext", "ms":
		return LayoutText(n.Text, style), nil
	case "mspace":
		return layoutSpace(n, style), nil
	case "mphantom":
		return layoutPhantom(n, style)
	case "mpadded":
		return layoutPadded(n, style)
	case "msup":
		return layoutScriptElement(n, style, false, true)
	case "msub":
		return layoutScriptElement(n, style, true, false)
	case "msubsup":
		return layoutScriptElement(n, style, true, true)
	case "mover":
		return layoutOverUnder(n, style, true, false)
	case "munder":
		return layoutOverUnder(n, style, false, true)
	case "munderover":
		return layoutOverUnder(n, style, true, true)
	case "mfrac":
		return layoutFracElement(n, style)
	case "msqrt":
		return layoutRadicalElement(n, style, false)
	case "mroot":
		return layoutRadicalElement(n, style, true)
	case "mfenced":
		return layoutFencedElement(n, style)
	case "menclose":
		return layoutEncloseElement(n, style)
	case "mtable":
		return layoutTableElement(n, style)
	case "mmultiscripts":
		return layoutMultiscripts(n, style)
	default:
		// Recovery policy (spec §7): unknown elements render as if they
		// were <mrow> over their children.
		return layoutRow(n.Children, style)
	}
}

func emptyFragment() MathFragment {
	return &SpaceFragment{}
}

// applyCommonAttrs resolves mathvariant/mathcolor/mathbackground/
// displaystyle, the attributes spec §6 says every element recognizes.
func applyCommonAttrs(n *mathml.Node, style Style) Style {
	if v, ok := n.Attr("mathcolor"); ok {
		if c, ok := ParseColor(v); ok {
			style = style.WithColor(c)
		}
	}
	if v, ok := n.Attr("mathbackground"); ok {
		if c, ok := ParseColor(v); ok {
			style = style.WithBackground(c)
		}
	}
	if v, ok := n.Attr("displaystyle"); ok {
		if v == "true" {
			style.MathStyle = StyleDisplay
		} else if v == "false" {
			style.MathStyle = StyleText
		}
	}
	if v, ok := n.Attr("mathvariant"); ok {
		switch v {
		case "bold":
			style = style.WithBold(true)
		case "italic":
			style = style.WithItalic(true)
		case "bold-italic":
			style = style.WithBold(true).WithItalic(true)
		case "normal":
			style = style.WithBold(false).WithItalic(false)
		}
	}
	return style
}

func layoutRow(children []*mathml.Node, style Style) (MathFragment, error) {
	var frags []MathFragment
	opIndices := operatorIndices(children)
	for i, child := range children {
		var frag MathFragment
		if child.Tag == "mo" {
			frag = layoutOperatorToken(child, style, resolveForm(child, i, opIndices))
		} else {
			f, err := LayoutNode(child, style)
			if err != nil {
				return nil, err
			}
			frag = f
		}
		frags = append(frags, frag)
	}
	frags = InsertSpacing(frags, style.MathStyle, style.FontSize)
	return rowIntoFragment(frags), nil
}

func rowIntoFragment(frags []MathFragment) MathFragment {
	if len(frags) == 0 {
		return emptyFragment()
	}
	if len(frags) == 1 {
		return frags[0]
	}
	frame := rowFrame(frags)
	ff := NewFrameFragment(ClassOrd, frame)
	allTextLike := true
	for _, f := range frags {
		if !f.IsTextLike() {
			allTextLike = false
			break
		}
	}
	ff.TextLike = allTextLike
	return ff
}

// operatorIndices returns the positions of non-space children, used to
// resolve first→prefix / last→postfix / middle→infix per spec §4.5.
func operatorIndices(children []*mathml.Node) []int {
	var idx []int
	for i, c := range children {
		if c.Tag != "mspace" {
			idx = append(idx, i)
		}
	}
	return idx
}

func resolveForm(n *mathml.Node, pos int, significant []int) OperatorForm {
	if v, ok := n.Attr("form"); ok {
		switch v {
		case "prefix":
			return FormPrefix
		case "postfix":
			return FormPostfix
		}
		return FormInfix
	}
	if len(significant) == 0 {
		return FormInfix
	}
	if significant[0] == pos {
		return FormPrefix
	}
	if significant[len(significant)-1] == pos {
		return FormPostfix
	}
	return FormInfix
}

func layoutToken(n *mathml.Node, style Style, explicit bool) *GlyphFragment {
	g := ResolveRun(n.Text, style)
	return g
}

func layoutOperatorToken(n *mathml.Node, style Style, form OperatorForm) MathFragment {
	runes := []rune(n.Text)
	g := ResolveRun(n.Text, style)
	if len(runes) > 0 {
		props := style.Font.Operators().Lookup(runes[0], form)
		g.MClass = operatorClass(n, runes[0])
		g.LSpace = props.LSpace.At(style.FontSize)
		g.RSpace = props.RSpace.At(style.FontSize)
		g.Explicit = true

		if stretchyAttr(n, props) {
			target := style.FontSize
			if h, ok := n.Attr("minsize"); ok {
				if v, ok := parseLength(h, style.FontSize); ok {
					target = v
				}
			}
			stretched := StretchGlyph(runes[0], target, StretchVertical, style)
			stretched.MClass = g.MClass
			stretched.LSpace, stretched.RSpace = g.LSpace, g.RSpace
			stretched.Explicit = true
			return stretched
		}
	}
	return g
}

func operatorClass(n *mathml.Node, r rune) MathClass {
	if _, ok := n.Attr("form"); ok {
		return DefaultMathClass(r)
	}
	return DefaultMathClass(r)
}

func stretchyAttr(n *mathml.Node, props font.OperatorProperties) bool {
	if v, ok := n.Attr("stretchy"); ok {
		return v == "true"
	}
	return props.Stretchy
}

func layoutSpace(n *mathml.Node, style Style) MathFragment {
	if v, _ := n.Attr("linebreak"); v == "newline" {
		return &LinebreakFragment{}
	}
	width := n.AttrOr("width", "0")
	amt, _ := parseLength(width, style.FontSize)
	return &SpaceFragment{Amount: amt}
}

// parseLength parses an MathML length string recognizing the unit set
// spec §4.3 lists for <mspace width="...">: em, ex, px, pt, mm, cm, in,
// pc, mu, bp, dd.
func parseLength(s string, fontSize Abs) (Abs, bool) {
	s = strings.TrimSpace(s)
	for _, unit := range []string{"mu", "em", "ex", "px", "pt", "mm", "cm", "in", "pc", "bp", "dd"} {
		if strings.HasSuffix(s, unit) {
			numPart := strings.TrimSuffix(s, unit)
			v, err := strconv.ParseFloat(numPart, 64)
			if err != nil {
				return 0, false
			}
			switch unit {
			case "mu":
				return Mu(v).At(fontSize), true
			case "em":
				return Em(v).At(fontSize), true
			case "ex":
				return Em(v * 0.5).At(fontSize), true
			case "px":
				return Abs(v) * Px, true
			case "pt":
				return Abs(v) * Pt, true
			case "mm":
				return Abs(v) * Mm, true
			case "cm":
				return Abs(v) * Cm, true
			case "in":
				return Abs(v) * In, true
			case "pc":
				return Abs(v) * Pc, true
			case "bp":
				return Abs(v) * Bp, true
			case "dd":
				return Abs(v) * Dd, true
			}
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return Abs(v) * Pt, true
}

func layoutPhantom(n *mathml.Node, style Style) (MathFragment, error) {
	inner, err := layoutRow(n.Children, style)
	if err != nil {
		return nil, err
	}
	frame := NewFrame(Size{X: inner.Width(), Y: inner.Height()})
	frame.SetBaseline(inner.Ascent())
	return NewFrameFragment(inner.Class(), frame), nil
}

func layoutPadded(n *mathml.Node, style Style) (MathFragment, error) {
	inner, err := layoutRow(n.Children, style)
	if err != nil {
		return nil, err
	}
	frame := inner.IntoFrame()
	width, height, depth := frame.Width(), frame.Ascent(), frame.Descent()
	if v, ok := n.Attr("width"); ok {
		if nv, ok := parseLength(v, style.FontSize); ok {
			width = nv
		}
	}
	if v, ok := n.Attr("height"); ok {
		if nv, ok := parseLength(v, style.FontSize); ok {
			height = nv
		}
	}
	if v, ok := n.Attr("depth"); ok {
		if nv, ok := parseLength(v, style.FontSize); ok {
			depth = nv
		}
	}
	outer := NewFrame(Size{X: width, Y: height + depth})
	outer.SetBaseline(height)
	outer.PushFrame(Point{}, frame)
	return NewFrameFragment(inner.Class(), outer), nil
}

func layoutScriptElement(n *mathml.Node, style Style, hasSub, hasSup bool) (MathFragment, error) {
	children := n.Children
	want := 1
	if hasSub {
		want++
	}
	if hasSup {
		want++
	}
	for len(children) < want {
		children = append(children, &mathml.Node{Tag: "none"})
	}

	base, err := LayoutNode(children[0], style)
	if err != nil {
		return nil, err
	}
	scriptStyle := style.WithScriptStyle()

	s := Scripts{Base: base}
	idx := 1
	if hasSub {
		sub, err := LayoutNode(children[idx], scriptStyle)
		if err != nil {
			return nil, err
		}
		if !isNone(children[idx]) {
			s.BottomRight = sub
		}
		idx++
	}
	if hasSup {
		sup, err := LayoutNode(children[idx], scriptStyle)
		if err != nil {
			return nil, err
		}
		if !isNone(children[idx]) {
			s.TopRight = sup
		}
	}
	return LayoutAttachments(s, style), nil
}

func isNone(n *mathml.Node) bool { return n.Tag == "none" }

func layoutOverUnder(n *mathml.Node, style Style, hasOver, hasUnder bool) (MathFragment, error) {
	children := n.Children
	want := 1
	if hasOver {
		want++
	}
	if hasUnder {
		want++
	}
	for len(children) < want {
		children = append(children, &mathml.Node{Tag: "none"})
	}

	base, err := LayoutNode(children[0], style)
	if err != nil {
		return nil, err
	}

	idx := 1
	var underNode, overNode *mathml.Node
	if hasUnder {
		underNode = children[idx]
		idx++
	}
	if hasOver {
		overNode = children[idx]
	}

	result := base
	if underNode != nil && !isNone(underNode) {
		accentAttr := n.AttrOr("accentunder", "false")
		scriptStyle := style
		if accentAttr != "true" {
			scriptStyle = style.WithScriptStyle()
		}
		under, err := LayoutNode(underNode, scriptStyle)
		if err != nil {
			return nil, err
		}
		if accentAttr == "true" {
			result = LayoutAccent(result, under, AccentBelow, style)
		} else {
			result = LayoutAttachments(Scripts{Base: result, Bottom: under}, style)
		}
	}
	if overNode != nil && !isNone(overNode) {
		accentAttr := n.AttrOr("accent", "false")
		scriptStyle := style
		if accentAttr != "true" {
			scriptStyle = style.WithScriptStyle()
		}
		over, err := LayoutNode(overNode, scriptStyle)
		if err != nil {
			return nil, err
		}
		if accentAttr == "true" {
			result = LayoutAccent(result, over, AccentAbove, style)
		} else {
			result = LayoutAttachments(Scripts{Base: result, Top: over}, style)
		}
	}
	return result, nil
}

func layoutFracElement(n *mathml.Node, style Style) (MathFragment, error) {
	children := n.Children
	for len(children) < 2 {
		children = append(children, &mathml.Node{Tag: "none"})
	}
	scriptStyle := style.WithScriptStyle()
	num, err := LayoutNode(children[0], scriptStyle)
	if err != nil {
		return nil, err
	}
	denom, err := LayoutNode(children[1], scriptStyle)
	if err != nil {
		return nil, err
	}

	hasLine := true
	var thickness Abs
	if v, ok := n.Attr("linethickness"); ok {
		if lv, ok := parseLength(v, style.FontSize); ok {
			thickness = lv
			hasLine = lv != 0
		}
	}
	return LayoutFraction(num, denom, style, 0, thickness, hasLine), nil
}

func layoutRadicalElement(n *mathml.Node, style Style, hasRoot bool) (MathFragment, error) {
	children := n.Children
	if len(children) == 0 {
		children = []*mathml.Node{{Tag: "none"}}
	}

	var radicandNode *mathml.Node = children[0]
	var indexNode *mathml.Node
	if hasRoot {
		if len(children) > 1 {
			indexNode = children[1]
		}
	} else if len(children) > 1 {
		radicandNode = &mathml.Node{Tag: "mrow", Children: children}
	}

	radicand, err := LayoutNode(radicandNode, style)
	if err != nil {
		return nil, err
	}

	constants := style.Font.Math()
	fs := float64(style.FontSize)
	gap := Abs(constants.RadicalVerticalGap.At(fs))
	if style.MathStyle.IsDisplay() {
		gap = Abs(constants.RadicalDisplayStyleVerticalGap.At(fs))
	}
	thickness := Abs(constants.RadicalRuleThickness.At(fs))
	extra := Abs(constants.RadicalExtraAscender.At(fs))
	target := radicand.Height() + gap + thickness + extra

	sqrt := StretchGlyph('√', target, StretchVertical, style)

	var index MathFragment
	if indexNode != nil && !isNone(indexNode) {
		indexStyle := style.WithScriptLevel(2, true)
		idx, err := LayoutNode(indexNode, indexStyle)
		if err != nil {
			return nil, err
		}
		index = idx
	}

	return LayoutRadical(radicand, sqrt, index, style), nil
}

func layoutFencedElement(n *mathml.Node, style Style) (MathFragment, error) {
	open := n.AttrOr("open", "(")
	closeCh := n.AttrOr("close", ")")

	row, err := layoutRow(n.Children, style)
	if err != nil {
		return nil, err
	}

	var o, c rune
	if rs := []rune(open); len(rs) > 0 {
		o = rs[0]
	}
	if rs := []rune(closeCh); len(rs) > 0 {
		c = rs[0]
	}
	return LayoutFenced(o, row, c, false, style), nil
}

func layoutEncloseElement(n *mathml.Node, style Style) (MathFragment, error) {
	base, err := layoutRow(n.Children, style)
	if err != nil {
		return nil, err
	}
	notations := strings.Fields(n.AttrOr("notation", "longdiv"))
	thickness := Abs(0.05) * style.FontSize / 20

	result := base
	for _, notation := range notations {
		switch notation {
		case "top":
			result = LayoutLine(result, AccentAbove, style)
		case "bottom":
			result = LayoutLine(result, AccentBelow, style)
		case "updiagonalstrike":
			result = LayoutCancel(result, CancelUpdiagonal, thickness, style)
		case "downdiagonalstrike":
			result = LayoutCancel(result, CancelDowndiagonal, thickness, style)
		case "horizontalstrike", "verticalstrike":
			result = LayoutCancel(result, CancelCross, thickness, style)
		case "box", "roundedbox":
			result = layoutBoxEnclose(result, thickness, style)
		}
	}
	return result, nil
}

func layoutBoxEnclose(content MathFragment, thickness Abs, style Style) MathFragment {
	pad := Abs(0.4) * style.FontSize
	frame := content.IntoFrame()
	width := frame.Width() + 2*pad
	height := frame.Height() + 2*pad
	outer := NewFrame(Size{X: width, Y: height})
	outer.SetBaseline(frame.Ascent() + pad)
	outer.PushFrame(Point{X: pad, Y: pad}, frame)
	outer.PushRule(Point{}, Size{X: width, Y: thickness}, style.Color)
	outer.PushRule(Point{Y: height - thickness}, Size{X: width, Y: thickness}, style.Color)
	outer.PushRule(Point{}, Size{X: thickness, Y: height}, style.Color)
	outer.PushRule(Point{X: width - thickness}, Size{X: thickness, Y: height}, style.Color)
	return NewFrameFragment(content.Class(), outer)
}

func layoutTableElement(n *mathml.Node, style Style) (MathFragment, error) {
	var rows []TableRow
	for _, tr := range n.Children {
		if tr.Tag != "mtr" && tr.Tag != "mlabeledtr" {
			continue
		}
		var row TableRow
		for _, td := range tr.Children {
			if td.Tag != "mtd" {
				continue
			}
			cell, err := layoutRow(td.Children, style)
			if err != nil {
				return nil, err
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	colGap := Em(0.8).At(style.FontSize)
	rowGap := Em(0.5).At(style.FontSize)
	return LayoutTable(rows, colGap, rowGap, AlignCenter, style), nil
}

// layoutMultiscripts supports mmultiscripts' base plus one trailing
// sub/sup pair and one leading <mprescripts/>-separated pair; multiple
// script pairs beyond the first on either side are not supported (the
// OpenType MATH placement model Scripts exposes covers exactly one
// pre- and one post-script position, matching msub/msup/msubsup).
func layoutMultiscripts(n *mathml.Node, style Style) (MathFragment, error) {
	children := n.Children
	if len(children) == 0 {
		return emptyFragment(), nil
	}
	base, err := LayoutNode(children[0], style)
	if err != nil {
		return nil, err
	}
	scriptStyle := style.WithScriptStyle()

	var post, pre []*mathml.Node
	inPre := false
	for _, c := range children[1:] {
		if c.Tag == "mprescripts" {
			inPre = true
			continue
		}
		if inPre {
			pre = append(pre, c)
		} else {
			post = append(post, c)
		}
	}

	s := Scripts{Base: base}
	if len(post) >= 2 {
		if !isNone(post[0]) {
			sub, err := LayoutNode(post[0], scriptStyle)
			if err != nil {
				return nil, err
			}
			s.BottomRight = sub
		}
		if !isNone(post[1]) {
			sup, err := LayoutNode(post[1], scriptStyle)
			if err != nil {
				return nil, err
			}
			s.TopRight = sup
		}
	}
	if len(pre) >= 2 {
		if !isNone(pre[0]) {
			sub, err := LayoutNode(pre[0], scriptStyle)
			if err != nil {
				return nil, err
			}
			s.BottomLeft = sub
		}
		if !isNone(pre[1]) {
			sup, err := LayoutNode(pre[1], scriptStyle)
			if err != nil {
				return nil, err
			}
			s.TopLeft = sup
		}
	}
	return LayoutAttachments(s, style), nil
}
