package mathlayout

import "testing"

func TestParseColor_Named(t *testing.T) {
	cases := map[string]Color{
		"black": {A: 255},
		"white": {R: 255, G: 255, B: 255, A: 255},
		"red":   {R: 255, A: 255},
		"green": {G: 128, A: 255},
		"blue":  {B: 255, A: 255},
	}
	for name, want := range cases {
		got, ok := ParseColor(name)
		if !ok || got != want {
			t.Errorf("ParseColor(%q) = %+v, %v; want %+v, true", name, got, ok, want)
		}
	}
}

func TestParseColor_HexShort(t *testing.T) {
	got, ok := ParseColor("#f00")
	if !ok || got != (Color{R: 0xff, A: 255}) {
		t.Fatalf("ParseColor(#f00) = %+v, %v", got, ok)
	}
}

func TestParseColor_HexLong(t *testing.T) {
	got, ok := ParseColor("#336699")
	if !ok || got != (Color{R: 0x33, G: 0x66, B: 0x99, A: 255}) {
		t.Fatalf("ParseColor(#336699) = %+v, %v", got, ok)
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, s := range []string{"", "notacolor", "#zzzzzz", "#12345"} {
		if _, ok := ParseColor(s); ok {
			t.Errorf("ParseColor(%q) unexpectedly succeeded", s)
		}
	}
}

func TestFixedAlignment_Position(t *testing.T) {
	cases := []struct {
		align FixedAlignment
		extra Abs
		want  Abs
	}{
		{AlignStart, 10, 0},
		{AlignCenter, 10, 5},
		{AlignEnd, 10, 10},
	}
	for _, c := range cases {
		if got := c.align.Position(c.extra); got != c.want {
			t.Errorf("%v.Position(%v) = %v, want %v", c.align, c.extra, got, c.want)
		}
	}
}

func TestAbs_MinMaxClamp(t *testing.T) {
	if Abs(3).Min(5) != 3 {
		t.Error("Min")
	}
	if Abs(3).Max(5) != 5 {
		t.Error("Max")
	}
	if Abs(10).Clamp(0, 5) != 5 {
		t.Error("Clamp high")
	}
	if Abs(-10).Clamp(0, 5) != 0 {
		t.Error("Clamp low")
	}
	if Abs(-4).Abs() != 4 {
		t.Error("Abs")
	}
}

func TestColor_Hex(t *testing.T) {
	if got := (Color{R: 0x11, G: 0x22, B: 0x33, A: 255}).Hex(); got != "#112233" {
		t.Errorf("Hex = %q", got)
	}
	if got := (Color{R: 0x11, G: 0x22, B: 0x33, A: 0x80}).Hex(); got != "#11223380" {
		t.Errorf("Hex with alpha = %q", got)
	}
}
