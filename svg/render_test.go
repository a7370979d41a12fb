package svg

import (
	"strings"
	"testing"

	"github.com/ziamath-go/ziamath/mathlayout"
)

func TestRenderer_Render_Empty(t *testing.T) {
	r := NewRenderer()
	frame := mathlayout.NewFrame(mathlayout.Size{X: 100, Y: 200})

	out := r.Render(frame)

	for _, want := range []string{`<svg`, `</svg>`, `width="100"`, `height="200"`, `viewBox="0 0 100 200"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output: %s", want, out)
		}
	}
}

func TestRenderer_Render_Rule(t *testing.T) {
	r := NewRenderer()
	frame := mathlayout.NewFrame(mathlayout.Size{X: 10, Y: 10})
	frame.PushRule(mathlayout.Point{X: 1, Y: 2}, mathlayout.Size{X: 5, Y: 1}, mathlayout.Black)

	out := r.Render(frame)
	if !strings.Contains(out, `<rect`) {
		t.Errorf("expected a <rect> for the pushed rule, got: %s", out)
	}
}

func TestRenderer_SVG1Mode_InlinesGlyphRuns(t *testing.T) {
	r := &Renderer{Mode: ModeSVG1}
	frame := mathlayout.NewFrame(mathlayout.Size{X: 10, Y: 10})
	run := &mathlayout.GlyphRun{FontSize: 12, Fill: mathlayout.Black, Glyphs: []mathlayout.PlacedGlyph{{GID: 5, XAdvance: 6}}}
	frame.PushGlyphRun(mathlayout.Point{}, run)

	out := r.Render(frame)
	if strings.Contains(out, "<symbol") {
		t.Errorf("SVG1 mode should not emit <symbol> defs, got: %s", out)
	}
	if !strings.Contains(out, "<text") {
		t.Errorf("expected an inlined <text> element, got: %s", out)
	}
}

func TestRenderer_Render_RotatedFrameWrapsInGroupTransform(t *testing.T) {
	r := NewRenderer()
	frame := mathlayout.NewFrame(mathlayout.Size{X: 10, Y: 10})
	frame.PushRule(mathlayout.Point{}, mathlayout.Size{X: 10, Y: 10}, mathlayout.Black)
	frame.SetRotation(30)

	out := r.Render(frame)
	if !strings.Contains(out, `<g transform="rotate(30`) {
		t.Errorf("expected a rotate transform wrapper, got: %s", out)
	}
	if !strings.Contains(out, "</g>") {
		t.Errorf("expected a closing </g>, got: %s", out)
	}
}

func TestRenderer_Render_UnrotatedFrameOmitsGroupTransform(t *testing.T) {
	r := NewRenderer()
	frame := mathlayout.NewFrame(mathlayout.Size{X: 10, Y: 10})
	frame.PushRule(mathlayout.Point{}, mathlayout.Size{X: 10, Y: 10}, mathlayout.Black)

	out := r.Render(frame)
	if strings.Contains(out, "transform=") {
		t.Errorf("unrotated frame should not emit a transform, got: %s", out)
	}
}

func TestRenderer_SVG2Mode_DedupesIdenticalRuns(t *testing.T) {
	r := NewRenderer()
	frame := mathlayout.NewFrame(mathlayout.Size{X: 20, Y: 10})
	run := &mathlayout.GlyphRun{FontSize: 12, Fill: mathlayout.Black, Glyphs: []mathlayout.PlacedGlyph{{GID: 5, XAdvance: 6}}}
	frame.PushGlyphRun(mathlayout.Point{}, run)
	frame.PushGlyphRun(mathlayout.Point{X: 8}, run)

	out := r.Render(frame)
	if strings.Count(out, "<symbol") != 1 {
		t.Errorf("expected exactly one deduplicated <symbol>, got: %s", out)
	}
	if strings.Count(out, "<use") != 2 {
		t.Errorf("expected two <use> references, got: %s", out)
	}
}
