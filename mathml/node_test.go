package mathml

import (
	"strings"
	"testing"
)

func TestParse_SimpleTree(t *testing.T) {
	root, err := Parse(strings.NewReader(`<math><mrow><mi>x</mi><mo>+</mo><mn>1</mn></mrow></math>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Tag != "math" {
		t.Fatalf("root tag = %q, want math", root.Tag)
	}
	if len(root.Children) != 1 || root.Children[0].Tag != "mrow" {
		t.Fatalf("expected a single mrow child, got %+v", root.Children)
	}
	row := root.Children[0]
	if len(row.Children) != 3 {
		t.Fatalf("expected 3 children in mrow, got %d", len(row.Children))
	}
	if row.Children[0].Text != "x" || row.Children[1].Text != "+" || row.Children[2].Text != "1" {
		t.Fatalf("unexpected leaf text: %+v %+v %+v", row.Children[0], row.Children[1], row.Children[2])
	}
}

func TestParse_Attributes(t *testing.T) {
	root, err := Parse(strings.NewReader(`<mo form="prefix" stretchy="true">(</mo>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v, ok := root.Attr("form"); !ok || v != "prefix" {
		t.Fatalf("form attr = %q, %v", v, ok)
	}
	if v := root.AttrOr("stretchy", "false"); v != "true" {
		t.Fatalf("stretchy attr = %q", v)
	}
	if v := root.AttrOr("missing", "fallback"); v != "fallback" {
		t.Fatalf("AttrOr fallback = %q", v)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatal("expected an error for an empty document")
	}
}

func TestParse_MalformedXML(t *testing.T) {
	if _, err := Parse(strings.NewReader(`<mrow><mi>x</mrow>`)); err == nil {
		t.Fatal("expected an error for mismatched tags")
	}
}

func TestNode_IsEmpty(t *testing.T) {
	if !(*Node)(nil).IsEmpty() {
		t.Fatal("nil node should report empty")
	}
	if !(&Node{}).IsEmpty() {
		t.Fatal("node with no children/text should report empty")
	}
	if (&Node{Text: "x"}).IsEmpty() {
		t.Fatal("node with text should not report empty")
	}
	if (&Node{Children: []*Node{{}}}).IsEmpty() {
		t.Fatal("node with children should not report empty")
	}
}

func TestCollapseWhitespace_PreservesSingleInteriorSpace(t *testing.T) {
	root, err := Parse(strings.NewReader(`<mtext>a b</mtext>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Text != "a b" {
		t.Fatalf("text = %q, want %q", root.Text, "a b")
	}
}

func TestCollapseWhitespace_TrimsLeadingTrailing(t *testing.T) {
	root, err := Parse(strings.NewReader(`<mi>  x  </mi>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Text != "x" {
		t.Fatalf("text = %q, want %q", root.Text, "x")
	}
}
