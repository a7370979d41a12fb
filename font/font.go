// Package font provides font loading, discovery, and MATH-table-aware
// metric access for ziamath: the "Font Oracle" spec.md names as an
// external collaborator (glyph path, advance, italic correction,
// top-accent attachment, math kerning, variants, assembly, MATH
// constants, and the operator dictionary).
package font

import (
	"encoding/binary"

	gotext "github.com/go-text/typesetting/font"
)

// Font represents a loaded font together with its decoded MATH table,
// if any.
type Font struct {
	// face is the underlying font face for text shaping.
	face *gotext.Face

	Info FontInfo

	// Path is the filesystem path the font was loaded from; empty for
	// embedded fonts.
	Path string

	// Index is the face index within a TTC collection (0 otherwise).
	Index int

	// RawData is the original font file bytes, kept so the MATH table
	// and glyph outlines can be decoded directly off the SFNT directory
	// (see mathtable.go, variants.go): go-text/typesetting gives us
	// shaping and basic metrics, but no MATH-extension sub-tables, so
	// this module decodes those itself straight from the binary.
	RawData []byte

	unitsPerEm int
	math       *MathConstants
	glyphInfo  *MathGlyphInfo
	variants   *MathVariants
	operators  *OperatorDictionary
	mathErr    error
}

func (f *Font) Family() string     { return f.Info.Family }
func (f *Font) Style() Style       { return f.Info.Style }
func (f *Font) Weight() int        { return int(f.Info.Weight) }
func (f *Font) Face() *gotext.Face { return f.face }

// HasMathTable reports whether the font carries an OpenType MATH table.
func (f *Font) HasMathTable() bool { return f.math != nil }

// MathError returns the error encountered while decoding the MATH
// table, if any (spec §7's FontError condition).
func (f *Font) MathError() error { return f.mathErr }

// Math returns the font's decoded MathConstants. If the font has no
// MATH table, it falls back to DefaultMathConstants; HasMathTable lets
// callers distinguish a degraded render from a fully MATH-aware one.
func (f *Font) Math() *MathConstants {
	if f.math != nil {
		return f.math
	}
	return DefaultMathConstants(f.unitsPerEm)
}

// GlyphInfo returns the font's per-glyph MATH data (italic correction,
// top accent, kerning). Never nil; empty when the font has no MATH table.
func (f *Font) GlyphInfo() *MathGlyphInfo {
	if f.glyphInfo == nil {
		return &MathGlyphInfo{}
	}
	return f.glyphInfo
}

// Variants returns the font's glyph-construction data for the Stretchy
// Builder. Never nil; empty when the font has no MATH table.
func (f *Font) Variants() *MathVariants {
	if f.variants == nil {
		return &MathVariants{}
	}
	return f.variants
}

// Operators returns the operator dictionary bound to this font (the
// default dictionary, optionally extended for the current render by
// `declareoperator` — see OperatorDictionary.WithExtra).
func (f *Font) Operators() *OperatorDictionary {
	if f.operators == nil {
		return DefaultOperatorDictionary()
	}
	return f.operators
}

// UnitsPerEm returns the font's design grid resolution, needed to scale
// MATH-table integer values into em fractions.
func (f *Font) UnitsPerEm() int { return f.unitsPerEm }

// decodeMath parses MATH-table and units-per-em data out of RawData.
// Called once right after loading (loader.go). Errors are stored, not
// returned: a font without MATH support is not itself a load failure —
// FontError is only raised when a render actually needs MATH data
// (the CLI's font selection checks HasMathTable).
func (f *Font) decodeMath() {
	f.operators = DefaultOperatorDictionary()

	if f.face != nil && f.face.Font != nil {
		if upm := f.face.Font.Upem(); upm > 0 {
			f.unitsPerEm = int(upm)
		}
	}
	if f.unitsPerEm == 0 {
		f.unitsPerEm = 1000
	}

	sfnt := f.RawData
	if isTTC(sfnt) {
		// A collection's faces each have their own table directory, at
		// the uint32 offset stored for the face after the TTC header.
		p := 12 + 4*f.Index
		if f.Index < 0 || p+4 > len(sfnt) {
			f.mathErr = errShortMathTable
			return
		}
		dir := int(binary.BigEndian.Uint32(sfnt[p : p+4]))
		if dir >= len(sfnt) {
			f.mathErr = errShortMathTable
			return
		}
		sfnt = sfnt[dir:]
	}
	tables, err := parseSFNTDirectory(sfnt)
	if err != nil {
		f.mathErr = err
		return
	}
	rec, ok := tables["MATH"]
	if !ok {
		return
	}
	if int(rec.offset+rec.length) > len(f.RawData) {
		f.mathErr = errShortMathTable
		return
	}
	mathTable := f.RawData[rec.offset : rec.offset+rec.length]

	mc, err := ParseMathConstants(mathTable, f.unitsPerEm)
	if err != nil {
		f.mathErr = err
		return
	}
	gi, err := ParseMathGlyphInfo(mathTable, f.unitsPerEm)
	if err != nil {
		f.mathErr = err
		return
	}
	mv, err := ParseMathVariants(mathTable, f.unitsPerEm)
	if err != nil {
		f.mathErr = err
		return
	}
	f.math = mc
	f.glyphInfo = gi
	f.variants = mv
}

type mathTableRangeError struct{}

func (mathTableRangeError) Error() string { return "MATH table extends past end of font data" }

var errShortMathTable = mathTableRangeError{}

// FontInfo carries the metadata used for family/variant matching.
type FontInfo struct {
	Family         string
	PostScriptName string
	FullName       string
	Style          Style
	Weight         Weight
	Stretch        Stretch
}

// Style represents font style.
type Style uint8

const (
	StyleNormal  Style = iota // Upright
	StyleItalic               // Italic
	StyleOblique              // Oblique (slanted)
)

func (s Style) String() string {
	switch s {
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	default:
		return "normal"
	}
}

// Weight represents font weight on a scale of 100-900.
type Weight int

const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

func (w Weight) String() string {
	switch {
	case w <= 300:
		return "light"
	case w <= 400:
		return "normal"
	case w <= 600:
		return "medium"
	case w <= 700:
		return "bold"
	default:
		return "black"
	}
}

// Stretch represents font width/stretch.
type Stretch float32

const (
	StretchCondensed Stretch = 0.75
	StretchNormal    Stretch = 1.0
	StretchExpanded  Stretch = 1.25
)

// Variant combines style, weight, and stretch for font matching.
type Variant struct {
	Style   Style
	Weight  Weight
	Stretch Stretch
}

func NormalVariant() Variant {
	return Variant{Style: StyleNormal, Weight: WeightNormal, Stretch: StretchNormal}
}

func BoldVariant() Variant {
	return Variant{Style: StyleNormal, Weight: WeightBold, Stretch: StretchNormal}
}

func ItalicVariant() Variant {
	return Variant{Style: StyleItalic, Weight: WeightNormal, Stretch: StretchNormal}
}

func BoldItalicVariant() Variant {
	return Variant{Style: StyleItalic, Weight: WeightBold, Stretch: StretchNormal}
}
