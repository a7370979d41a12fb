// Package svg serializes a mathlayout.Frame tree to SVG, adapted from
// the teacher's svg/render.go recursive frame-walking renderer and
// gradient/def-dedup pattern, retargeted from the teacher's page/flow
// frame tree onto mathlayout's Frame/FrameItem vocabulary.
package svg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ziamath-go/ziamath/mathlayout"
)

// Mode selects the output shape spec.md §6 requires.
type Mode int

const (
	// ModeSVG2 emits one <symbol> per distinct glyph run content,
	// referenced by <use>, deduplicating repeated glyphs (e.g. the same
	// digit appearing many times in a document).
	ModeSVG2 Mode = iota
	// ModeSVG1 inlines every glyph run as its own <text> element, for
	// viewers/toolchains that don't support <symbol>/<use>.
	ModeSVG1
)

// Renderer converts a Frame into an SVG document or fragment.
type Renderer struct {
	Mode Mode
	// Precision is the number of decimal digits used for coordinates;
	// 0 uses strconv's shortest representation.
	Precision int
	// FontFamily maps a font to the CSS font-family string to emit;
	// nil falls back to the font's own Family().
	FontFamily func(*mathlayout.MathFont) string
}

// NewRenderer returns a Renderer in SVG2 defs/symbol/use mode with no
// coordinate rounding, the spec's default.
func NewRenderer() *Renderer {
	return &Renderer{Mode: ModeSVG2}
}

type symbolDef struct {
	id      string
	content string
}

type renderContext struct {
	r        *Renderer
	symbols  map[string]string // content hash -> id
	defs     []symbolDef
	nextSym  int
}

func newRenderContext(r *Renderer) *renderContext {
	return &renderContext{r: r, symbols: map[string]string{}}
}

// Render produces a standalone SVG document for frame, sized to its
// bounding box with the origin at the frame's top-left.
func (r *Renderer) Render(frame *mathlayout.Frame) string {
	ctx := newRenderContext(r)
	var body strings.Builder
	ctx.renderRotatedFrame(&body, frame, mathlayout.Point{})

	width := r.fmtNum(float64(frame.Width()))
	height := r.fmtNum(float64(frame.Height()))

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		width, height, width, height))
	b.WriteString("\n")

	if len(ctx.defs) > 0 {
		b.WriteString("<defs>\n")
		for _, s := range ctx.defs {
			b.WriteString(s.content)
		}
		b.WriteString("</defs>\n")
	}

	b.WriteString(body.String())
	b.WriteString("</svg>")
	return b.String()
}

// RenderFragment renders frame's content only (no <svg> wrapper), for
// embedding into an existing document (spec.md §6's `drawon` mode).
func (r *Renderer) RenderFragment(frame *mathlayout.Frame, origin mathlayout.Point) string {
	ctx := newRenderContext(r)
	var body strings.Builder
	ctx.renderRotatedFrame(&body, frame, origin)
	return body.String()
}

// renderRotatedFrame wraps renderFrame in a <g transform="rotate(...)">
// around frame's top-left anchor when it carries a Mixed-Text Driver
// block rotation (spec §4.7); otherwise it renders unwrapped.
func (ctx *renderContext) renderRotatedFrame(b *strings.Builder, frame *mathlayout.Frame, origin mathlayout.Point) {
	deg := frame.Rotation()
	if deg == 0 {
		ctx.renderFrame(b, frame, origin)
		return
	}
	b.WriteString(fmt.Sprintf(`<g transform="rotate(%s %s %s)">`,
		ctx.r.fmtNum(deg), ctx.r.fmtNum(float64(origin.X)), ctx.r.fmtNum(float64(origin.Y))))
	b.WriteString("\n")
	ctx.renderFrame(b, frame, origin)
	b.WriteString("</g>\n")
}

func (ctx *renderContext) renderFrame(b *strings.Builder, frame *mathlayout.Frame, origin mathlayout.Point) {
	for _, it := range frame.Items() {
		pos := origin.Add(it.Position)
		switch item := it.Item.(type) {
		case mathlayout.GroupItem:
			ctx.renderRotatedFrame(b, item.Frame, pos)
		case mathlayout.GlyphRunItem:
			ctx.renderGlyphRun(b, item.Run, pos)
		case mathlayout.RuleItem:
			ctx.renderRule(b, item, pos)
		case mathlayout.LineItem:
			ctx.renderLine(b, item, pos)
		}
	}
}

func (ctx *renderContext) renderGlyphRun(b *strings.Builder, run *mathlayout.GlyphRun, pos mathlayout.Point) {
	if run == nil || len(run.Glyphs) == 0 {
		return
	}
	family := ctx.r.family(run.Font)

	switch ctx.r.Mode {
	case ModeSVG1:
		ctx.writeRunText(b, run, pos, family)
	default:
		key := runKey(run, family)
		id, ok := ctx.symbols[key]
		if !ok {
			id = fmt.Sprintf("g%d", ctx.nextSym)
			ctx.nextSym++
			var sym strings.Builder
			sym.WriteString(fmt.Sprintf(`<symbol id="%s">`, id))
			ctx.writeRunText(&sym, run, mathlayout.Point{}, family)
			sym.WriteString("</symbol>\n")
			ctx.defs = append(ctx.defs, symbolDef{id: id, content: sym.String()})
			ctx.symbols[key] = id
		}
		b.WriteString(fmt.Sprintf(`<use href="#%s" x="%s" y="%s"/>`, id, ctx.r.fmtNum(float64(pos.X)), ctx.r.fmtNum(float64(pos.Y))))
		b.WriteString("\n")
	}
}

func (ctx *renderContext) writeRunText(b *strings.Builder, run *mathlayout.GlyphRun, pos mathlayout.Point, family string) {
	b.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-family="%s" font-size="%s"`,
		ctx.r.fmtNum(float64(pos.X)), ctx.r.fmtNum(float64(pos.Y)), escapeXML(family), ctx.r.fmtNum(float64(run.FontSize))))
	if run.Fill != mathlayout.Black {
		b.WriteString(fmt.Sprintf(` fill="%s"`, run.Fill.Hex()))
	}
	b.WriteString(`>`)

	x := mathlayout.Abs(0)
	for _, g := range run.Glyphs {
		// Glyph IDs have no guaranteed Unicode mapping; emitting them as
		// a font-relative glyph reference via a private-use codepoint
		// keeps the SVG text-based without requiring an outline decoder
		// this module doesn't carry (spec.md's Non-goals exclude a
		// PDF-grade subsetting/embedding pipeline).
		b.WriteString(fmt.Sprintf(`<tspan x="%s" dx="%s">&#x%x;</tspan>`,
			ctx.r.fmtNum(float64(pos.X+x+g.XOffset)), ctx.r.fmtNum(0), 0xF0000+int(g.GID)))
		x += g.XAdvance
	}
	b.WriteString("</text>\n")
}

func (ctx *renderContext) renderRule(b *strings.Builder, item mathlayout.RuleItem, pos mathlayout.Point) {
	b.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
		ctx.r.fmtNum(float64(pos.X)), ctx.r.fmtNum(float64(pos.Y)),
		ctx.r.fmtNum(float64(item.Size.X)), ctx.r.fmtNum(float64(item.Size.Y)), item.Fill.Hex()))
	b.WriteString("\n")
}

func (ctx *renderContext) renderLine(b *strings.Builder, item mathlayout.LineItem, pos mathlayout.Point) {
	end := pos.Add(item.Delta)
	b.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`,
		ctx.r.fmtNum(float64(pos.X)), ctx.r.fmtNum(float64(pos.Y)),
		ctx.r.fmtNum(float64(end.X)), ctx.r.fmtNum(float64(end.Y)),
		item.Stroke.Hex(), ctx.r.fmtNum(float64(item.Thickness))))
	b.WriteString("\n")
}

func (r *Renderer) family(f *mathlayout.MathFont) string {
	if r.FontFamily != nil {
		return r.FontFamily(f)
	}
	if f == nil {
		return "serif"
	}
	return f.Family()
}

func (r *Renderer) fmtNum(v float64) string {
	if r.Precision <= 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', r.Precision, 64)
}

func runKey(run *mathlayout.GlyphRun, family string) string {
	var b strings.Builder
	b.WriteString(family)
	b.WriteByte('|')
	for _, g := range run.Glyphs {
		fmt.Fprintf(&b, "%d:%g,", g.GID, float64(g.XAdvance))
	}
	return b.String()
}

func escapeXML(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
