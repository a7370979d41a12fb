package mathlayout

import "testing"

func TestFindClosingDollar_Inline(t *testing.T) {
	runes := []rune("x$ text")
	runes = []rune("x$ rest")
	_ = runes
	// "a$bc$d" -> search starting after the opening $ at index 1
	line := []rune("a$bc$d")
	end := findClosingDollar(line, 2, false)
	if end != 4 {
		t.Fatalf("findClosingDollar inline = %d, want 4", end)
	}
}

func TestFindClosingDollar_Display(t *testing.T) {
	line := []rune("a$$bc$$d")
	end := findClosingDollar(line, 3, true)
	if end != 5 {
		t.Fatalf("findClosingDollar display = %d, want 5", end)
	}
}

func TestFindClosingDollar_Unclosed(t *testing.T) {
	line := []rune("a$bc")
	if end := findClosingDollar(line, 2, false); end != -1 {
		t.Fatalf("findClosingDollar unclosed = %d, want -1", end)
	}
}

func TestFindClosingDollar_EscapedDollarIgnored(t *testing.T) {
	line := []rune(`a$b\$c$d`)
	end := findClosingDollar(line, 2, false)
	if end != 6 {
		t.Fatalf("findClosingDollar with escaped $ = %d, want 6", end)
	}
}

func TestStackMixedLines_EmptyReturnsZeroFrame(t *testing.T) {
	frame := stackMixedLines(nil, MixedTextConfig{})
	if frame.Width() != 0 || frame.Height() != 0 {
		t.Fatalf("expected zero-size frame, got %+v", frame.Size())
	}
}

func TestStackMixedLines_SetsRotation(t *testing.T) {
	line := NewFrame(Size{X: 10, Y: 10})
	frame := stackMixedLines([]*Frame{line}, MixedTextConfig{LineSpacing: 1, RotationDegrees: 45})
	if frame.Rotation() != 45 {
		t.Fatalf("Rotation() = %v, want 45", frame.Rotation())
	}
}

func TestStackMixedLines_NoRotationByDefault(t *testing.T) {
	line := NewFrame(Size{X: 10, Y: 10})
	frame := stackMixedLines([]*Frame{line}, MixedTextConfig{LineSpacing: 1})
	if frame.Rotation() != 0 {
		t.Fatalf("Rotation() = %v, want 0", frame.Rotation())
	}
}

func TestStackMixedLines_Alignment(t *testing.T) {
	narrow := NewFrame(Size{X: 10, Y: 10})
	wide := NewFrame(Size{X: 20, Y: 10})
	cfg := MixedTextConfig{LineSpacing: 1, HAlign: AlignCenter, TextStyle: Style{FontSize: 10}}
	frame := stackMixedLines([]*Frame{wide, narrow}, cfg)
	if frame.Width() != 20 {
		t.Fatalf("stacked width = %v, want 20", frame.Width())
	}
	if len(frame.Items()) != 2 {
		t.Fatalf("expected 2 nested frames, got %d", len(frame.Items()))
	}
	if x := frame.Items()[1].Position.X; x != 5 {
		t.Fatalf("centered narrow line x = %v, want 5", x)
	}
}
