// Package latex is a small LaTeX-math-to-MathML front-end, scoped
// modest per spec.md's "external collaborator" framing: it covers the
// macros the Testable Properties corpus exercises (\frac, \sqrt, ^, _,
// Greek letters, \tag{...}, declareoperator) rather than full LaTeX.
// Grounded in spirit on the teacher's syntax/parser_math.go: the same
// precedence-climbing shape over postfix sub/superscript operators,
// rebuilt to target mathml.Node instead of a typst syntax tree.
package latex

import (
	"fmt"
	"strings"

	"github.com/ziamath-go/ziamath/font"
	"github.com/ziamath-go/ziamath/mathml"
	"github.com/ziamath-go/ziamath/zerrors"
)

// OperatorTable extends the recognized operator-name macros (e.g. a
// declareoperator'd \argmax) beyond the built-in command set, keyed by
// the macro name without its leading backslash.
type OperatorTable struct {
	entries map[string]font.OperatorProperties
}

// NewOperatorTable returns an empty extension table.
func NewOperatorTable() OperatorTable {
	return OperatorTable{entries: map[string]font.OperatorProperties{}}
}

// DeclareOperator registers name (without a leading backslash) as a
// movable-limits operator rendered with ordinary text spacing, the
// `declareoperator` feature spec.md's Testable Properties corpus names.
func (t OperatorTable) DeclareOperator(name string) OperatorTable {
	t.entries[name] = font.OperatorProperties{LSpace: 3, RSpace: 3, MovableLimits: true}
	return t
}

func (t OperatorTable) lookup(name string) (font.OperatorProperties, bool) {
	p, ok := t.entries[name]
	return p, ok
}

// ToMathML parses src as LaTeX math mode and returns the equivalent
// MathML tree rooted at a synthetic <math> element.
func ToMathML(src string, ops OperatorTable) (*mathml.Node, error) {
	p := &parser{toks: lex(src), ops: ops}
	row, err := p.parseRow(0)
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, &zerrors.ParseError{Msg: fmt.Sprintf("unexpected token %q", p.peek().text)}
	}
	root := &mathml.Node{Tag: "math", Children: []*mathml.Node{row}}
	if p.tag != "" {
		root.Attrs = map[string]string{"tag": p.tag}
	}
	return root, nil
}

// --- lexer -----------------------------------------------------------

type tokKind int

const (
	tokEOF tokKind = iota
	tokChar
	tokCommand // \name
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokSup // ^
	tokSub // _
)

type token struct {
	kind tokKind
	text string
}

func lex(src string) []token {
	var toks []token
	runes := []rune(src)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\\':
			j := i + 1
			for j < len(runes) && isLetter(runes[j]) {
				j++
			}
			if j == i+1 && j < len(runes) {
				// A one-character command like \, or \; or \\.
				j++
			}
			toks = append(toks, token{kind: tokCommand, text: string(runes[i+1 : j])})
			i = j
		case r == '{':
			toks = append(toks, token{kind: tokLBrace})
			i++
		case r == '}':
			toks = append(toks, token{kind: tokRBrace})
			i++
		case r == '[':
			toks = append(toks, token{kind: tokLBracket})
			i++
		case r == ']':
			toks = append(toks, token{kind: tokRBracket})
			i++
		case r == '^':
			toks = append(toks, token{kind: tokSup})
			i++
		case r == '_':
			toks = append(toks, token{kind: tokSub})
			i++
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			i++
		default:
			toks = append(toks, token{kind: tokChar, text: string(r)})
			i++
		}
	}
	return toks
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// --- parser ------------------------------------------------------------

type parser struct {
	toks []token
	pos  int
	ops  OperatorTable
	tag  string
}

func (p *parser) peek() token {
	if p.pos >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *parser) next() token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// parseRow parses a sequence of atoms (stopping at a closing brace,
// bracket, \right, or end of input) and attaches postfix ^/_ chains per
// atom, mirroring parser_math.go's mathExprPrec attachment loop.
func (p *parser) parseRow(minPrec int) (*mathml.Node, error) {
	var children []*mathml.Node
	for {
		t := p.peek()
		if t.kind == tokEOF || t.kind == tokRBrace || t.kind == tokRBracket {
			break
		}
		if t.kind == tokCommand && t.text == "right" {
			break
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		atom, err = p.parseAttachments(atom)
		if err != nil {
			return nil, err
		}
		children = append(children, atom)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return &mathml.Node{Tag: "mrow", Children: children}, nil
}

// parseAttachments consumes any chain of ^/_ following base, combining
// into msub/msup/msubsup exactly as parser_math.go's MathAttach wrapper
// does for chained Hat/Underscore tokens.
func (p *parser) parseAttachments(base *mathml.Node) (*mathml.Node, error) {
	var sub, sup *mathml.Node
	for {
		t := p.peek()
		if t.kind == tokSup && sup == nil {
			p.next()
			s, err := p.parseGroupOrAtom()
			if err != nil {
				return nil, err
			}
			sup = s
			continue
		}
		if t.kind == tokSub && sub == nil {
			p.next()
			s, err := p.parseGroupOrAtom()
			if err != nil {
				return nil, err
			}
			sub = s
			continue
		}
		break
	}
	switch {
	case sub != nil && sup != nil:
		return &mathml.Node{Tag: "msubsup", Children: []*mathml.Node{base, sub, sup}}, nil
	case sub != nil:
		return &mathml.Node{Tag: "msub", Children: []*mathml.Node{base, sub}}, nil
	case sup != nil:
		return &mathml.Node{Tag: "msup", Children: []*mathml.Node{base, sup}}, nil
	default:
		return base, nil
	}
}

// parseGroupOrAtom parses a brace-delimited group as a single unit, or
// a lone atom (so `x^2` doesn't require braces around the `2`).
func (p *parser) parseGroupOrAtom() (*mathml.Node, error) {
	if p.peek().kind == tokLBrace {
		return p.parseGroup()
	}
	return p.parseAtom()
}

func (p *parser) parseGroup() (*mathml.Node, error) {
	if p.peek().kind != tokLBrace {
		return p.parseAtom()
	}
	p.next()
	row, err := p.parseRow(0)
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokRBrace {
		return nil, &zerrors.ParseError{Msg: "missing closing }"}
	}
	p.next()
	return row, nil
}

var greek = map[string]rune{
	"alpha": 'α', "beta": 'β', "gamma": 'γ', "delta": 'δ', "epsilon": 'ε',
	"zeta": 'ζ', "eta": 'η', "theta": 'θ', "iota": 'ι', "kappa": 'κ',
	"lambda": 'λ', "mu": 'μ', "nu": 'ν', "xi": 'ξ', "pi": 'π', "rho": 'ρ',
	"sigma": 'σ', "tau": 'τ', "upsilon": 'υ', "phi": 'φ', "chi": 'χ',
	"psi": 'ψ', "omega": 'ω',
	"Gamma": 'Γ', "Delta": 'Δ', "Theta": 'Θ', "Lambda": 'Λ', "Xi": 'Ξ',
	"Pi": 'Π', "Sigma": 'Σ', "Upsilon": 'Υ', "Phi": 'Φ', "Psi": 'Ψ',
	"Omega": 'Ω',
}

var namedOperators = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true,
	"csc": true, "log": true, "ln": true, "exp": true, "lim": true,
	"max": true, "min": true, "sup": true, "inf": true, "det": true,
	"gcd": true,
}

var binaryRelSymbols = map[string]rune{
	"leq": '≤', "geq": '≥', "neq": '≠', "approx": '≈', "equiv": '≡',
	"sim": '∼', "subset": '⊂', "supset": '⊃', "subseteq": '⊆', "in": '∈',
	"times": '×', "cdot": '⋅', "div": '÷', "pm": '±', "mp": '∓',
	"cap": '∩', "cup": '∪', "wedge": '∧', "vee": '∨', "infty": '∞',
	"partial": '∂', "nabla": '∇', "forall": '∀', "exists": '∃',
	"rightarrow": '→', "leftarrow": '←', "to": '→', "cdots": '⋯',
	"ldots": '…', "pmmu": 0,
}

var accentMarks = map[string]rune{
	"hat": '^', "tilde": '~', "bar": '¯', "vec": '→', "dot": '˙', "ddot": '¨',
	"overline": '¯', "underline": '_',
}

// parseAtom parses one command, group, or literal character into a
// MathML node.
func (p *parser) parseAtom() (*mathml.Node, error) {
	t := p.next()
	switch t.kind {
	case tokLBrace:
		p.pos--
		return p.parseGroup()
	case tokChar:
		return p.charNode(t.text), nil
	case tokCommand:
		return p.parseCommand(t.text)
	default:
		return nil, &zerrors.ParseError{Msg: fmt.Sprintf("unexpected token in math: %v", t)}
	}
}

func (p *parser) charNode(s string) *mathml.Node {
	r := []rune(s)[0]
	switch {
	case r >= '0' && r <= '9':
		return &mathml.Node{Tag: "mn", Text: s}
	case r == '+' || r == '-' || r == '=' || r == '<' || r == '>' || r == '(' || r == ')' ||
		r == '[' || r == ']' || r == '|' || r == ',' || r == ';' || r == '!' || r == '/':
		return &mathml.Node{Tag: "mo", Text: s}
	default:
		return &mathml.Node{Tag: "mi", Text: s}
	}
}

func (p *parser) parseCommand(name string) (*mathml.Node, error) {
	switch name {
	case "frac", "binom":
		num, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		den, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		frac := &mathml.Node{Tag: "mfrac", Children: []*mathml.Node{num, den}}
		if name == "binom" {
			frac.Attrs = map[string]string{"linethickness": "0"}
			return &mathml.Node{Tag: "mfenced", Attrs: map[string]string{"open": "(", "close": ")"},
				Children: []*mathml.Node{frac}}, nil
		}
		return frac, nil

	case "sqrt":
		if p.peek().kind == tokLBracket {
			p.next()
			idx, err := p.parseRow(0)
			if err != nil {
				return nil, err
			}
			if p.peek().kind != tokRBracket {
				return nil, &zerrors.ParseError{Msg: "missing closing ]"}
			}
			p.next()
			radicand, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			return &mathml.Node{Tag: "mroot", Children: []*mathml.Node{radicand, idx}}, nil
		}
		radicand, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return &mathml.Node{Tag: "msqrt", Children: []*mathml.Node{radicand}}, nil

	case "left":
		return p.parseFenced()

	case "tag":
		inner, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		p.tag = textContent(inner)
		return &mathml.Node{Tag: "mrow"}, nil

	case "mathrm", "mathbf", "mathit", "mathsf", "mathtt":
		inner, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		variant := map[string]string{
			"mathrm": "normal", "mathbf": "bold", "mathit": "italic",
			"mathsf": "normal", "mathtt": "normal",
		}[name]
		return &mathml.Node{Tag: "mstyle", Attrs: map[string]string{"mathvariant": variant},
			Children: []*mathml.Node{inner}}, nil

	case "text":
		inner, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return &mathml.Node{Tag: "mtext", Text: textContent(inner)}, nil

	case ",", ":", ";", "quad", "qquad":
		widths := map[string]string{",": "0.167em", ":": "0.222em", ";": "0.278em", "quad": "1em", "qquad": "2em"}
		return &mathml.Node{Tag: "mspace", Attrs: map[string]string{"width": widths[name]}}, nil

	case "{", "}", "%", "#", "&", "_", "$":
		return &mathml.Node{Tag: "mo", Text: name}, nil

	case "\\":
		return &mathml.Node{Tag: "mspace", Attrs: map[string]string{"linebreak": "newline"}}, nil
	}

	if r, ok := greek[name]; ok {
		return &mathml.Node{Tag: "mi", Text: string(r)}, nil
	}
	if r, ok := binaryRelSymbols[name]; ok && r != 0 {
		return &mathml.Node{Tag: "mo", Text: string(r)}, nil
	}
	if accentChar, ok := accentMarks[name]; ok {
		base, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		tag := "mover"
		attr := "accent"
		if name == "underline" {
			tag = "munder"
			attr = "accentunder"
		}
		return &mathml.Node{Tag: tag, Attrs: map[string]string{attr: "true"},
			Children: []*mathml.Node{base, {Tag: "mo", Text: string(accentChar)}}}, nil
	}
	if namedOperators[name] {
		return &mathml.Node{Tag: "mo", Attrs: map[string]string{"movablelimits": "true"}, Text: name}, nil
	}
	if _, ok := p.ops.lookup(name); ok {
		return &mathml.Node{Tag: "mo", Attrs: map[string]string{"movablelimits": "true"}, Text: name}, nil
	}

	// Unknown command: recovery policy treats it as an ordinary
	// identifier rather than failing the whole parse.
	return &mathml.Node{Tag: "mi", Text: name}, nil
}

var fenceClose = map[string]string{
	"(": ")", "[": "]", "\\{": "\\}", "|": "|", ".": "",
}

// parseFenced handles `\left DELIM ... \right DELIM`.
func (p *parser) parseFenced() (*mathml.Node, error) {
	open := p.consumeDelimiter()
	body, err := p.parseRow(0)
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokCommand || p.peek().text != "right" {
		return nil, &zerrors.ParseError{Msg: "\\left without matching \\right"}
	}
	p.next()
	closeDelim := p.consumeDelimiter()
	return &mathml.Node{Tag: "mfenced", Attrs: map[string]string{"open": open, "close": closeDelim},
		Children: []*mathml.Node{body}}, nil
}

func (p *parser) consumeDelimiter() string {
	t := p.next()
	switch t.kind {
	case tokChar:
		return t.text
	case tokCommand:
		switch t.text {
		case "{":
			return "{"
		case "}":
			return "}"
		case "|":
			return "‖"
		}
		return ""
	}
	return ""
}

func textContent(n *mathml.Node) string {
	if n.Text != "" {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(textContent(c))
	}
	return b.String()
}
