package font

// OperatorForm distinguishes the three MathML operator positions
// (spec §3's "Operator record", keyed by (character, form)).
type OperatorForm int

const (
	FormInfix OperatorForm = iota
	FormPrefix
	FormPostfix
)

// OperatorProperties is one row of the operator dictionary (spec §3's
// Operator record): the MathML3 operator-dictionary entry that supplies
// defaults an <mo> doesn't spell out explicitly via attributes.
type OperatorProperties struct {
	LSpace         Mu
	RSpace         Mu
	Stretchy       bool
	Symmetric      bool
	LargeOp        bool
	MovableLimits  bool
	Accent         bool
	MinSize        Em
	MaxSize        Em // 0 means unbounded
}

// Mu is a math-unit (1/18 em), the operator dictionary's native spacing
// unit (spec §4.5's 9x9 spacing table and MathML3's default lspace/rspace
// values, both expressed in mu).
type Mu float64

const defaultOperatorSpace = Mu(5) // 5/18 em, MathML3's thickmathspace default

// OperatorDictionary resolves (character, form) to OperatorProperties,
// falling back to a built-in default entry and allowing a render-scoped
// extension set layered on top (spec §4's declareoperator, SPEC_FULL §4:
// scoped to one config snapshot, not process-global).
type OperatorDictionary struct {
	entries map[operatorKey]OperatorProperties
	extra   map[operatorKey]OperatorProperties
}

type operatorKey struct {
	ch   rune
	form OperatorForm
}

// DefaultOperatorDictionary returns the built-in operator dictionary
// covering the common MathML3 operators (arithmetic, relations,
// delimiters, large operators). Entries not present here fall back to
// OperatorDictionary.Lookup's default-properties rule.
func DefaultOperatorDictionary() *OperatorDictionary {
	d := &OperatorDictionary{entries: map[operatorKey]OperatorProperties{}}

	reg := func(ch rune, form OperatorForm, p OperatorProperties) {
		d.entries[operatorKey{ch, form}] = p
	}

	// Fence and separator forms.
	for _, ch := range []rune{'(', '[', '{', '|', '⌈', '⌊'} {
		reg(ch, FormPrefix, OperatorProperties{LSpace: 0, RSpace: 0, Stretchy: true, Symmetric: true})
	}
	for _, ch := range []rune{')', ']', '}', '|', '⌉', '⌋'} {
		reg(ch, FormPostfix, OperatorProperties{LSpace: 0, RSpace: 0, Stretchy: true, Symmetric: true})
	}
	reg(',', FormInfix, OperatorProperties{LSpace: 0, RSpace: 3})
	reg(';', FormInfix, OperatorProperties{LSpace: 0, RSpace: 3})

	// Binary operators (class Bin; default 4/18 em both sides per
	// Appendix G, collapsed here into the dictionary's lspace/rspace).
	for _, ch := range []rune{'+', '-', '×', '÷', '∗', '∩', '∪', '∧', '∨'} {
		reg(ch, FormInfix, OperatorProperties{LSpace: 4, RSpace: 4})
	}

	// Relations (class Rel; default 5/18 em both sides).
	for _, ch := range []rune{'=', '<', '>', '≠', '≤', '≥', '≈', '≡', '⊂', '⊃'} {
		reg(ch, FormInfix, OperatorProperties{LSpace: 5, RSpace: 5})
	}

	// Large operators: prefix form, stretchy in display style, movable
	// limits by default except \int which keeps sub/sup attached as
	// limits only when explicitly asked.
	for _, ch := range []rune{'∑', '∏', '⋃', '⋂', '⨅', '⨆'} {
		reg(ch, FormPrefix, OperatorProperties{LargeOp: true, MovableLimits: true, Symmetric: true, LSpace: 3, RSpace: 3})
	}
	for _, ch := range []rune{'∫', '∬', '∭', '∮'} {
		reg(ch, FormPrefix, OperatorProperties{LargeOp: true, MovableLimits: false, Symmetric: true, LSpace: 0, RSpace: 3})
	}

	// Accents (combining / spacing accent characters used atop <mover>).
	for _, ch := range []rune{'^', '¯', '~', '˘', 'ˇ', '´', '`'} {
		reg(ch, FormPostfix, OperatorProperties{Accent: true, Stretchy: true, LSpace: 0, RSpace: 0})
	}

	// Radical/stretchy delimiter-like glyphs used outside <mo> fences.
	reg('√', FormPrefix, OperatorProperties{Stretchy: true, Symmetric: true, LSpace: 0, RSpace: 0})

	return d
}

// Lookup returns the operator's properties, preferring a render-scoped
// extension entry over the built-in dictionary, and falling back to
// MathML3's default properties (ordinary spacing, not stretchy, not
// large) when the character isn't registered for the given form.
func (d *OperatorDictionary) Lookup(ch rune, form OperatorForm) OperatorProperties {
	key := operatorKey{ch, form}
	if d.extra != nil {
		if p, ok := d.extra[key]; ok {
			return p
		}
	}
	if p, ok := d.entries[key]; ok {
		return p
	}
	return OperatorProperties{LSpace: defaultOperatorSpace, RSpace: defaultOperatorSpace}
}

// WithExtra returns a copy of the dictionary with additional entries
// layered on top, used to apply a render's `declareoperator` extensions
// without mutating the shared default dictionary (SPEC_FULL §4: scoped
// per config snapshot).
func (d *OperatorDictionary) WithExtra(extra map[rune]OperatorProperties) *OperatorDictionary {
	nd := &OperatorDictionary{
		entries: d.entries,
		extra:   make(map[operatorKey]OperatorProperties, len(extra)),
	}
	for ch, p := range extra {
		nd.extra[operatorKey{ch, FormInfix}] = p
		nd.extra[operatorKey{ch, FormPrefix}] = p
		nd.extra[operatorKey{ch, FormPostfix}] = p
	}
	return nd
}
