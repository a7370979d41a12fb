// Package mathml is the parsed MathML element tree the layout engine
// walks: a tagged-variant sum type over the ~25-element subset spec.md
// §6 lists, decoded with encoding/xml (the ecosystem's own answer for
// a minimal XML decode — justified in DESIGN.md since no example repo
// in the retrieval pack carries a MathML-aware XML layer to depend on).
package mathml

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/ziamath-go/ziamath/zerrors"
)

// Node is one parsed MathML element: a tag, its attributes, its
// children, and its character payload for leaf elements (`<mi>`, `<mn>`,
// `<mo>`, `<mtext>`, `<mspace>` carry text but no children in practice).
type Node struct {
	Tag      string
	Attrs    map[string]string
	Children []*Node
	Text     string
}

// Attr returns an attribute's value and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// AttrOr returns an attribute's value, or fallback if absent.
func (n *Node) AttrOr(name, fallback string) string {
	if v, ok := n.Attrs[name]; ok {
		return v
	}
	return fallback
}

// Parse decodes a MathML document (or fragment rooted at any single
// element, not necessarily `<math>`) from r into a Node tree.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, &zerrors.ParseError{Msg: "no root element found"}
			}
			return nil, &zerrors.ParseError{Msg: "reading XML token", Err: err}
		}
		if start, ok := tok.(xml.StartElement); ok {
			return parseElement(dec, start)
		}
	}
}

func parseElement(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	n := &Node{
		Tag:   localName(start.Name),
		Attrs: map[string]string{},
	}
	for _, a := range start.Attr {
		n.Attrs[localName(a.Name)] = a.Value
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &zerrors.ParseError{Msg: "reading XML token inside <" + n.Tag + ">", Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.Text = collapseWhitespace(text.String())
			return n, nil
		}
	}
}

func localName(name xml.Name) string {
	return name.Local
}

// collapseWhitespace trims a leaf element's character payload the way
// XML whitespace-insignificant text is normally treated, while
// preserving a single interior space (MathML identifiers like
// `<mtext>a b</mtext>` depend on inner spaces surviving).
func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// IsEmpty reports whether n has no children and no text, the `<none/>`
// / empty-`<mrow/>` equivalence spec.md §4 requires.
func (n *Node) IsEmpty() bool {
	return n == nil || (len(n.Children) == 0 && n.Text == "")
}
