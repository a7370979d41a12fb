package font

import "encoding/binary"

// MathGlyphInfo holds the per-glyph MATH data (spec §2's "italic
// correction, top-accent attachment, math kerning tables per corner"):
// decoded once per font and looked up by glyph id thereafter.
type MathGlyphInfo struct {
	italics    map[uint16]Em
	topAccent  map[uint16]Em
	kern       map[uint16]mathKernSet
	extended   map[uint16]bool // MathGlyphInfo.ExtendedShapeCoverage membership
}

// mathKernSet is the four-corner kerning record for one glyph
// (MathKernInfoRecord: TopRight/TopLeft/BottomRight/BottomLeft).
type mathKernSet struct {
	topRight, topLeft, bottomRight, bottomLeft *mathKernTable
}

// mathKernTable is one corner's kern-vs-height step function: heights[i]
// is the correction-height boundary below which kerns[i] applies; the
// last kern value applies above all listed heights (OpenType MathKern
// table semantics).
type mathKernTable struct {
	heights []Em
	kerns   []Em
}

// at returns the kerning value for a given height above/below the
// baseline corner, per the MathKern table's step-function lookup.
func (k *mathKernTable) at(height Em) Em {
	if k == nil || len(k.kerns) == 0 {
		return 0
	}
	for i, h := range k.heights {
		if height < h {
			return k.kerns[i]
		}
	}
	return k.kerns[len(k.kerns)-1]
}

func emScale(raw int16, unitsPerEm int) Em {
	if unitsPerEm <= 0 {
		return Em(raw)
	}
	return Em(float64(raw) / float64(unitsPerEm))
}

// ParseMathGlyphInfo decodes the MathGlyphInfo sub-table (the MATH
// table's second top-level offset).
func ParseMathGlyphInfo(mathTable []byte, unitsPerEm int) (*MathGlyphInfo, error) {
	info := &MathGlyphInfo{
		italics:   map[uint16]Em{},
		topAccent: map[uint16]Em{},
		kern:      map[uint16]mathKernSet{},
		extended:  map[uint16]bool{},
	}
	if len(mathTable) < 8 {
		return info, nil
	}
	giOff := int(binary.BigEndian.Uint16(mathTable[6:8]))
	if giOff == 0 || giOff >= len(mathTable) {
		return info, nil
	}
	data := mathTable[giOff:]
	if len(data) < 6 {
		return info, nil
	}

	italicsOff := int(binary.BigEndian.Uint16(data[0:2]))
	topAccentOff := int(binary.BigEndian.Uint16(data[2:4]))
	// ExtendedShapeCoverageOffset at data[4:6], kern info at data[6:8].
	var kernInfoOff int
	if len(data) >= 8 {
		kernInfoOff = int(binary.BigEndian.Uint16(data[6:8]))
	}

	if italicsOff > 0 && italicsOff < len(data) {
		parseMathValueArray(data, italicsOff, unitsPerEm, info.italics)
	}
	if topAccentOff > 0 && topAccentOff < len(data) {
		parseMathValueArray(data, topAccentOff, unitsPerEm, info.topAccent)
	}
	if kernInfoOff > 0 && kernInfoOff < len(data) {
		parseMathKernInfo(data, kernInfoOff, unitsPerEm, info.kern)
	}
	return info, nil
}

// parseMathValueArray decodes a MathItalicsCorrectionInfo-shaped
// sub-table: Coverage offset, count, MathValueRecord[count]. Used for
// both italic-correction and top-accent-attachment sub-tables, which
// share this exact layout.
func parseMathValueArray(data []byte, off int, unitsPerEm int, out map[uint16]Em) {
	if off+4 > len(data) {
		return
	}
	covOff := int(binary.BigEndian.Uint16(data[off : off+2]))
	count := int(binary.BigEndian.Uint16(data[off+2 : off+4]))
	cov := parseCoverage(data, off+covOff)
	arrStart := off + 4
	for gid, idx := range cov {
		if idx >= count {
			continue
		}
		recOff := arrStart + idx*4
		v, _ := mathValueRecord(data, recOff)
		out[gid] = Em(float64(v) / float64(max1(unitsPerEm)))
	}
}

func max1(v int) int {
	if v <= 0 {
		return 1
	}
	return v
}

func parseMathKernInfo(data []byte, off int, unitsPerEm int, out map[uint16]mathKernSet) {
	if off+4 > len(data) {
		return
	}
	covOff := int(binary.BigEndian.Uint16(data[off : off+2]))
	count := int(binary.BigEndian.Uint16(data[off+2 : off+4]))
	cov := parseCoverage(data, off+covOff)
	const recordSize = 8 // four Offset16 fields: TopRight/TopLeft/BottomRight/BottomLeft
	arrStart := off + 4
	for gid, idx := range cov {
		if idx >= count {
			continue
		}
		recOff := arrStart + idx*recordSize
		if recOff+8 > len(data) {
			continue
		}
		tr := int(binary.BigEndian.Uint16(data[recOff : recOff+2]))
		tl := int(binary.BigEndian.Uint16(data[recOff+2 : recOff+4]))
		br := int(binary.BigEndian.Uint16(data[recOff+4 : recOff+6]))
		bl := int(binary.BigEndian.Uint16(data[recOff+6 : recOff+8]))
		set := mathKernSet{}
		if tr > 0 {
			set.topRight = parseMathKernTable(data, recOff+tr, unitsPerEm)
		}
		if tl > 0 {
			set.topLeft = parseMathKernTable(data, recOff+tl, unitsPerEm)
		}
		if br > 0 {
			set.bottomRight = parseMathKernTable(data, recOff+br, unitsPerEm)
		}
		if bl > 0 {
			set.bottomLeft = parseMathKernTable(data, recOff+bl, unitsPerEm)
		}
		out[gid] = set
	}
}

// parseMathKernTable decodes a MathKern sub-table: heightCount, then
// heightCount MathValueRecords (correction heights), then
// heightCount+1 MathValueRecords (kern values).
func parseMathKernTable(data []byte, off int, unitsPerEm int) *mathKernTable {
	if off+2 > len(data) {
		return nil
	}
	n := int(binary.BigEndian.Uint16(data[off : off+2]))
	pos := off + 2
	t := &mathKernTable{}
	for i := 0; i < n; i++ {
		v, next := mathValueRecord(data, pos)
		pos = next
		t.heights = append(t.heights, Em(float64(v)/float64(max1(unitsPerEm))))
	}
	for i := 0; i < n+1; i++ {
		v, next := mathValueRecord(data, pos)
		pos = next
		t.kerns = append(t.kerns, Em(float64(v)/float64(max1(unitsPerEm))))
	}
	return t
}

// ItalicsCorrection returns the glyph's italic correction, 0 if none.
func (g *MathGlyphInfo) ItalicsCorrection(gid uint16) Em { return g.italics[gid] }

// TopAccentAttachment returns the glyph's top-accent horizontal anchor
// and whether one was present (absent means "use glyph center",
// per the OpenType MATH spec's fallback rule).
func (g *MathGlyphInfo) TopAccentAttachment(gid uint16) (Em, bool) {
	v, ok := g.topAccent[gid]
	return v, ok
}

// KernAtHeight returns the glyph's math-kerning adjustment at the given
// corner and correction height (spec §3's per-corner kerning, consumed
// by <msub>/<msup> placement against italic glyphs).
func (g *MathGlyphInfo) KernAtHeight(gid uint16, corner Corner, height Em) Em {
	set, ok := g.kern[gid]
	if !ok {
		return 0
	}
	switch corner {
	case CornerTopRight:
		return set.topRight.at(height)
	case CornerTopLeft:
		return set.topLeft.at(height)
	case CornerBottomRight:
		return set.bottomRight.at(height)
	case CornerBottomLeft:
		return set.bottomLeft.at(height)
	}
	return 0
}

// Corner identifies one of the four kerning corners of the OpenType
// MATH table's per-glyph kern record.
type Corner int

const (
	CornerTopRight Corner = iota
	CornerTopLeft
	CornerBottomRight
	CornerBottomLeft
)
