package mathlayout

import "testing"

func TestFrame_DefaultBaseline(t *testing.T) {
	f := NewFrame(Size{X: 10, Y: 20})
	if f.HasBaseline() {
		t.Fatal("new frame should have no explicit baseline")
	}
	if f.Baseline() != 20 {
		t.Fatalf("default baseline = %v, want frame height 20", f.Baseline())
	}
	if f.Ascent() != 20 || f.Descent() != 0 {
		t.Fatalf("ascent/descent = %v/%v, want 20/0", f.Ascent(), f.Descent())
	}
}

func TestFrame_SetBaseline(t *testing.T) {
	f := NewFrame(Size{X: 10, Y: 20})
	f.SetBaseline(15)
	if !f.HasBaseline() {
		t.Fatal("expected HasBaseline true after SetBaseline")
	}
	if f.Ascent() != 15 {
		t.Fatalf("Ascent = %v, want 15", f.Ascent())
	}
	if f.Descent() != 5 {
		t.Fatalf("Descent = %v, want 5", f.Descent())
	}
}

func TestFrame_Translate(t *testing.T) {
	f := NewFrame(Size{X: 10, Y: 10})
	f.PushRule(Point{X: 1, Y: 2}, Size{X: 3, Y: 4}, Black)
	f.Translate(Point{X: 5, Y: 5})
	got := f.Items()[0].Position
	if got != (Point{X: 6, Y: 7}) {
		t.Fatalf("Translate result = %+v, want {6 7}", got)
	}
}

func TestFrame_Resize_Centered(t *testing.T) {
	f := NewFrame(Size{X: 10, Y: 10})
	f.PushRule(Point{}, Size{X: 10, Y: 10}, Black)
	offset := f.Resize(Size{X: 20, Y: 10}, Axes[FixedAlignment]{X: AlignCenter, Y: AlignStart})
	if offset != (Point{X: 5, Y: 0}) {
		t.Fatalf("Resize offset = %+v, want {5 0}", offset)
	}
	if f.Size() != (Size{X: 20, Y: 10}) {
		t.Fatalf("Resize size = %+v", f.Size())
	}
	if f.Items()[0].Position != (Point{X: 5, Y: 0}) {
		t.Fatalf("item position after resize = %+v", f.Items()[0].Position)
	}
}

func TestFrame_Rotation_DefaultZero(t *testing.T) {
	f := NewFrame(Size{})
	if f.Rotation() != 0 {
		t.Fatalf("default rotation = %v, want 0", f.Rotation())
	}
}

func TestFrame_SetRotation(t *testing.T) {
	f := NewFrame(Size{})
	f.SetRotation(90)
	if f.Rotation() != 90 {
		t.Fatalf("Rotation() after SetRotation(90) = %v", f.Rotation())
	}
}

func TestFrame_PushFrame_Nesting(t *testing.T) {
	parent := NewFrame(Size{X: 10, Y: 10})
	child := NewFrame(Size{X: 5, Y: 5})
	parent.PushFrame(Point{X: 1, Y: 1}, child)
	if len(parent.Items()) != 1 {
		t.Fatalf("expected 1 item, got %d", len(parent.Items()))
	}
	group, ok := parent.Items()[0].Item.(GroupItem)
	if !ok || group.Frame != child {
		t.Fatalf("expected nested GroupItem wrapping child frame")
	}
}

func TestGlyphRun_Width(t *testing.T) {
	run := &GlyphRun{Glyphs: []PlacedGlyph{{XAdvance: 3}, {XAdvance: 4}}}
	if run.Width() != 7 {
		t.Fatalf("Width = %v, want 7", run.Width())
	}
}
