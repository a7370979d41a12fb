package mathlayout

// MathClass is one of the nine TeX math classes used for inter-atom
// spacing (spec §3's "Operator record", §4.5, Appendix-G spacing table).
type MathClass int

const (
	ClassOrd MathClass = iota
	ClassOp
	ClassBin
	ClassRel
	ClassOpen
	ClassClose
	ClassPunct
	ClassInner
	ClassNone
)

func (c MathClass) String() string {
	switch c {
	case ClassOrd:
		return "Ord"
	case ClassOp:
		return "Op"
	case ClassBin:
		return "Bin"
	case ClassRel:
		return "Rel"
	case ClassOpen:
		return "Open"
	case ClassClose:
		return "Close"
	case ClassPunct:
		return "Punct"
	case ClassInner:
		return "Inner"
	case ClassNone:
		return "None"
	default:
		return "Unknown"
	}
}

// DefaultMathClass returns the class a bare character maps to absent an
// operator-dictionary entry, used for <mi>/<mn>/<mtext> leaves and as
// the fallback for <mo> characters the dictionary doesn't know.
func DefaultMathClass(r rune) MathClass {
	switch {
	case r >= '0' && r <= '9':
		return ClassOrd
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return ClassOrd
	case r == '+', r == '-', r == '·', r == '×', r == '÷',
		r == '−', r == '±', r == '∓':
		return ClassBin
	case r == '=', r == '<', r == '>', r == '≤', r == '≥',
		r == '≠', r == '≈', r == '≡', r == '∼':
		return ClassRel
	case r == '(', r == '[', r == '{', r == '⟨', r == '⌈', r == '⌊':
		return ClassOpen
	case r == ')', r == ']', r == '}', r == '⟩', r == '⌉', r == '⌋':
		return ClassClose
	case r == ',', r == ';':
		return ClassPunct
	case r == '.', r == ':':
		return ClassOrd
	case r == ' ', r == '\t', r == '\n':
		return ClassNone
	}

	// Greek letters behave as ordinary identifiers.
	if (r >= 0x0391 && r <= 0x03a9) || (r >= 0x03b1 && r <= 0x03c9) {
		return ClassOrd
	}

	switch {
	case r >= 0x2190 && r <= 0x21ff:
		return ClassRel
	case isLargeOperatorRune(r):
		return ClassOp
	case r >= 0x2200 && r <= 0x22ff:
		return classifyMathOperatorBlock(r)
	case r >= 0x2a00 && r <= 0x2aff:
		return ClassBin
	}

	return ClassOrd
}

// isLargeOperatorRune reports whether r is one of the n-ary/large
// operators spec §4.3 says receive the font's large-op scale-up in
// display style (sum, product, integral family, coproduct, union/
// intersection big forms).
func isLargeOperatorRune(r rune) bool {
	switch r {
	case '∑', '∏', '∐', // sum, prod, coprod
		'∫', '∬', '∭', '∮', '∯', '∰', // integrals
		'⋀', '⋁', '⋂', '⋃', // big wedge/vee/cap/cup
		'⨀', '⨁', '⨂', '⨃', '⨄', '⨅', '⨆':
		return true
	}
	return false
}

func classifyMathOperatorBlock(r rune) MathClass {
	switch r {
	case '∈', '∉', '∋', '∌',
		'⊂', '⊃', '⊆', '⊇', '⊈', '⊉':
		return ClassRel
	case '∩', '∪', '∖', '△':
		return ClassBin
	case '∼', '≃', '≅', '≈', '≊', '≋':
		return ClassRel
	case '≪', '≫', '≺', '≻', '≼', '≽':
		return ClassRel
	case '∓', '∔', '⊕', '⊖', '⊗', '⊘', '⊙':
		return ClassBin
	case '∀', '∃', '∄':
		return ClassOrd
	}
	return ClassOrd
}
