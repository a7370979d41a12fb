package latex

import (
	"testing"

	"github.com/ziamath-go/ziamath/mathml"
)

func childTags(n *mathml.Node) []string {
	var tags []string
	for _, c := range n.Children {
		tags = append(tags, c.Tag)
	}
	return tags
}

func TestToMathML_SimpleRow(t *testing.T) {
	root, err := ToMathML("x+1", NewOperatorTable())
	if err != nil {
		t.Fatalf("ToMathML: %v", err)
	}
	if root.Tag != "math" {
		t.Fatalf("root tag = %q", root.Tag)
	}
	row := root.Children[0]
	if row.Tag != "mrow" {
		t.Fatalf("expected mrow, got %q", row.Tag)
	}
	got := childTags(row)
	want := []string{"mi", "mo", "mn"}
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
}

func TestToMathML_Superscript(t *testing.T) {
	root, err := ToMathML("x^2", NewOperatorTable())
	if err != nil {
		t.Fatalf("ToMathML: %v", err)
	}
	sup := root.Children[0]
	if sup.Tag != "msup" {
		t.Fatalf("expected msup, got %q", sup.Tag)
	}
	if len(sup.Children) != 2 || sup.Children[0].Text != "x" || sup.Children[1].Text != "2" {
		t.Fatalf("unexpected msup children: %+v", sup.Children)
	}
}

func TestToMathML_SubSupChain(t *testing.T) {
	root, err := ToMathML("x_1^2", NewOperatorTable())
	if err != nil {
		t.Fatalf("ToMathML: %v", err)
	}
	node := root.Children[0]
	if node.Tag != "msubsup" {
		t.Fatalf("expected msubsup, got %q", node.Tag)
	}
	if len(node.Children) != 3 {
		t.Fatalf("expected base/sub/sup, got %d children", len(node.Children))
	}
}

func TestToMathML_Frac(t *testing.T) {
	root, err := ToMathML(`\frac{1}{2}`, NewOperatorTable())
	if err != nil {
		t.Fatalf("ToMathML: %v", err)
	}
	frac := root.Children[0]
	if frac.Tag != "mfrac" {
		t.Fatalf("expected mfrac, got %q", frac.Tag)
	}
	if frac.Children[0].Text != "1" || frac.Children[1].Text != "2" {
		t.Fatalf("unexpected mfrac children: %+v", frac.Children)
	}
}

func TestToMathML_SqrtWithIndex(t *testing.T) {
	root, err := ToMathML(`\sqrt[3]{x}`, NewOperatorTable())
	if err != nil {
		t.Fatalf("ToMathML: %v", err)
	}
	node := root.Children[0]
	if node.Tag != "mroot" {
		t.Fatalf("expected mroot, got %q", node.Tag)
	}
	if node.Children[0].Text != "x" || node.Children[1].Text != "3" {
		t.Fatalf("unexpected mroot children: %+v", node.Children)
	}
}

func TestToMathML_Fenced(t *testing.T) {
	root, err := ToMathML(`\left(x\right)`, NewOperatorTable())
	if err != nil {
		t.Fatalf("ToMathML: %v", err)
	}
	node := root.Children[0]
	if node.Tag != "mfenced" {
		t.Fatalf("expected mfenced, got %q", node.Tag)
	}
	if node.AttrOr("open", "") != "(" || node.AttrOr("close", "") != ")" {
		t.Fatalf("unexpected delimiters: %+v", node.Attrs)
	}
}

func TestToMathML_UnmatchedLeft(t *testing.T) {
	if _, err := ToMathML(`\left(x`, NewOperatorTable()); err == nil {
		t.Fatal("expected an error for \\left without \\right")
	}
}

func TestToMathML_GreekLetter(t *testing.T) {
	root, err := ToMathML(`\alpha`, NewOperatorTable())
	if err != nil {
		t.Fatalf("ToMathML: %v", err)
	}
	node := root.Children[0]
	if node.Tag != "mi" || node.Text != "α" {
		t.Fatalf("unexpected node: %+v", node)
	}
}

func TestToMathML_Tag(t *testing.T) {
	root, err := ToMathML(`x \tag{1.1}`, NewOperatorTable())
	if err != nil {
		t.Fatalf("ToMathML: %v", err)
	}
	if v, ok := root.Attr("tag"); !ok || v != "1.1" {
		t.Fatalf("tag attribute = %q, %v", v, ok)
	}
}

func TestToMathML_DeclareOperator(t *testing.T) {
	ops := NewOperatorTable().DeclareOperator("argmax")
	root, err := ToMathML(`\argmax`, ops)
	if err != nil {
		t.Fatalf("ToMathML: %v", err)
	}
	node := root.Children[0]
	if node.Tag != "mo" || node.AttrOr("movablelimits", "") != "true" {
		t.Fatalf("expected a movable-limits <mo>, got %+v", node)
	}
}

func TestToMathML_UnknownCommandRecoversAsIdentifier(t *testing.T) {
	root, err := ToMathML(`\bogus`, NewOperatorTable())
	if err != nil {
		t.Fatalf("ToMathML should recover from an unknown command, got error: %v", err)
	}
	node := root.Children[0]
	if node.Tag != "mi" || node.Text != "bogus" {
		t.Fatalf("unexpected recovery node: %+v", node)
	}
}

func TestToMathML_MissingClosingBrace(t *testing.T) {
	if _, err := ToMathML(`\frac{1}{2`, NewOperatorTable()); err == nil {
		t.Fatal("expected an error for an unclosed brace")
	}
}
