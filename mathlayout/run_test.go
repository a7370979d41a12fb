package mathlayout

import (
	"testing"

	"github.com/ziamath-go/ziamath/font"
	"github.com/ziamath-go/ziamath/mathml"
)

func TestOperatorIndices_SkipsSpaces(t *testing.T) {
	children := []*mathml.Node{
		{Tag: "mi"},
		{Tag: "mspace"},
		{Tag: "mo"},
		{Tag: "mn"},
	}
	got := operatorIndices(children)
	want := []int{0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("operatorIndices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("operatorIndices = %v, want %v", got, want)
		}
	}
}

func TestResolveForm_ExplicitAttr(t *testing.T) {
	n := &mathml.Node{Attrs: map[string]string{"form": "prefix"}}
	if got := resolveForm(n, 1, []int{0, 1, 2}); got != FormPrefix {
		t.Fatalf("resolveForm with explicit prefix = %v", got)
	}
	n = &mathml.Node{Attrs: map[string]string{"form": "postfix"}}
	if got := resolveForm(n, 1, []int{0, 1, 2}); got != FormPostfix {
		t.Fatalf("resolveForm with explicit postfix = %v", got)
	}
	n = &mathml.Node{Attrs: map[string]string{"form": "infix"}}
	if got := resolveForm(n, 1, []int{0, 1, 2}); got != FormInfix {
		t.Fatalf("resolveForm with explicit infix = %v", got)
	}
}

func TestResolveForm_PositionalFallback(t *testing.T) {
	n := &mathml.Node{}
	sig := []int{1, 3, 5}
	if got := resolveForm(n, 1, sig); got != FormPrefix {
		t.Fatalf("first significant child should resolve prefix, got %v", got)
	}
	if got := resolveForm(n, 5, sig); got != FormPostfix {
		t.Fatalf("last significant child should resolve postfix, got %v", got)
	}
	if got := resolveForm(n, 3, sig); got != FormInfix {
		t.Fatalf("middle significant child should resolve infix, got %v", got)
	}
}

func TestResolveForm_EmptySignificantDefaultsInfix(t *testing.T) {
	n := &mathml.Node{}
	if got := resolveForm(n, 0, nil); got != FormInfix {
		t.Fatalf("resolveForm with no significant children = %v, want FormInfix", got)
	}
}

func TestParseLength_Units(t *testing.T) {
	fontSize := Abs(10)
	cases := []struct {
		in   string
		want Abs
	}{
		{"2pt", 2 * Pt},
		{"1mm", 1 * Mm},
		{"1cm", 1 * Cm},
		{"1in", 1 * In},
		{"2px", 2 * Px},
		{"2bp", 2 * Bp},
		{"1pc", 1 * Pc},
		{"1em", Em(1).At(fontSize)},
		{"2ex", Em(1).At(fontSize)}, // 2ex == 2 * 0.5em
		{"18mu", Mu(18).At(fontSize)},
		{"5", 5 * Pt}, // bare number defaults to points
	}
	for _, c := range cases {
		got, ok := parseLength(c.in, fontSize)
		if !ok {
			t.Errorf("parseLength(%q) failed", c.in)
			continue
		}
		if got != c.want {
			t.Errorf("parseLength(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseLength_Invalid(t *testing.T) {
	if _, ok := parseLength("notanumberpt", 10); ok {
		t.Fatal("expected parseLength to fail on a non-numeric length")
	}
}

func TestStretchyAttr_ExplicitOverridesDictionary(t *testing.T) {
	n := &mathml.Node{Attrs: map[string]string{"stretchy": "true"}}
	if !stretchyAttr(n, font.OperatorProperties{Stretchy: false}) {
		t.Fatal("explicit stretchy=true should override dictionary default")
	}
	n = &mathml.Node{Attrs: map[string]string{"stretchy": "false"}}
	if stretchyAttr(n, font.OperatorProperties{Stretchy: true}) {
		t.Fatal("explicit stretchy=false should override dictionary default")
	}
}

func TestStretchyAttr_FallsBackToDictionary(t *testing.T) {
	n := &mathml.Node{}
	if !stretchyAttr(n, font.OperatorProperties{Stretchy: true}) {
		t.Fatal("expected dictionary default (stretchy) to apply")
	}
	if stretchyAttr(n, font.OperatorProperties{Stretchy: false}) {
		t.Fatal("expected dictionary default (non-stretchy) to apply")
	}
}

func TestIsNone(t *testing.T) {
	if !isNone(&mathml.Node{Tag: "none"}) {
		t.Fatal("expected <none> to report true")
	}
	if isNone(&mathml.Node{Tag: "mi"}) {
		t.Fatal("expected <mi> to report false")
	}
}
