package font

import "encoding/binary"

// GlyphVariant is one precomputed larger form of a base glyph
// (MathGlyphVariantRecord): a whole replacement glyph with its own
// advance along the stretch axis.
type GlyphVariant struct {
	GID     uint16
	Advance Em
}

// GlyphPart is one piece of a GlyphAssembly (spec §3's GlyphAssembly):
// either a non-extender end-cap or a repeatable extender, with the
// connector lengths the Stretchy Builder uses to compute safe overlap.
type GlyphPart struct {
	GID                          uint16
	StartConnectorLength         Em
	EndConnectorLength           Em
	FullAdvance                  Em
	IsExtender                   bool
}

// GlyphAssembly is the ordered recipe to build an arbitrarily sized
// glyph out of GlyphParts (spec §3's GlyphAssembly, §4.2's Stretchy
// Builder step 2).
type GlyphAssembly struct {
	ItalicsCorrection Em
	Parts             []GlyphPart
}

// MathVariants holds the decoded MathVariants sub-table (spec §2's
// "glyph-variant lists, glyph-assembly recipes").
type MathVariants struct {
	MinConnectorOverlap Em
	vertVariants        map[uint16][]GlyphVariant
	horizVariants       map[uint16][]GlyphVariant
	vertAssembly        map[uint16]GlyphAssembly
	horizAssembly       map[uint16]GlyphAssembly
}

// ParseMathVariants decodes the MathVariants sub-table (the MATH
// table's third top-level offset).
func ParseMathVariants(mathTable []byte, unitsPerEm int) (*MathVariants, error) {
	mv := &MathVariants{
		vertVariants:  map[uint16][]GlyphVariant{},
		horizVariants: map[uint16][]GlyphVariant{},
		vertAssembly:  map[uint16]GlyphAssembly{},
		horizAssembly: map[uint16]GlyphAssembly{},
	}
	if len(mathTable) < 10 {
		return mv, nil
	}
	mvOff := int(binary.BigEndian.Uint16(mathTable[8:10]))
	if mvOff == 0 || mvOff >= len(mathTable) {
		return mv, nil
	}
	data := mathTable[mvOff:]
	if len(data) < 10 {
		return mv, nil
	}

	overlap, _ := mathValueRecord(data, 0)
	mv.MinConnectorOverlap = Em(float64(overlap) / float64(max1(unitsPerEm)))

	vertCovOff := int(binary.BigEndian.Uint16(data[4:6]))
	horizCovOff := int(binary.BigEndian.Uint16(data[6:8]))
	vertCount := int(binary.BigEndian.Uint16(data[8:10]))
	horizCount := 0
	if len(data) >= 12 {
		horizCount = int(binary.BigEndian.Uint16(data[10:12]))
	}

	vertCov := parseCoverage(data, vertCovOff)
	horizCov := parseCoverage(data, horizCovOff)

	recordsStart := 12
	parseConstructionRecords(data, recordsStart, vertCount, vertCov, unitsPerEm, mv.vertVariants, mv.vertAssembly)
	parseConstructionRecords(data, recordsStart+vertCount*2, horizCount, horizCov, unitsPerEm, mv.horizVariants, mv.horizAssembly)

	return mv, nil
}

// parseConstructionRecords walks a MathGlyphConstruction offset array
// (one Offset16 per coverage index) decoding each glyph's variant list
// and optional assembly.
func parseConstructionRecords(
	data []byte, arrOff int, count int, cov map[uint16]int, unitsPerEm int,
	variantsOut map[uint16][]GlyphVariant, assemblyOut map[uint16]GlyphAssembly,
) {
	for gid, idx := range cov {
		if idx >= count {
			continue
		}
		p := arrOff + idx*2
		if p+2 > len(data) {
			continue
		}
		constrOff := int(binary.BigEndian.Uint16(data[p : p+2]))
		if constrOff == 0 || constrOff >= len(data) {
			continue
		}
		variants, assembly := parseGlyphConstruction(data, constrOff, unitsPerEm)
		if len(variants) > 0 {
			variantsOut[gid] = variants
		}
		if assembly != nil {
			assemblyOut[gid] = *assembly
		}
	}
}

func parseGlyphConstruction(data []byte, off int, unitsPerEm int) ([]GlyphVariant, *GlyphAssembly) {
	if off+4 > len(data) {
		return nil, nil
	}
	assemblyOff := int(binary.BigEndian.Uint16(data[off : off+2]))
	variantCount := int(binary.BigEndian.Uint16(data[off+2 : off+4]))

	var variants []GlyphVariant
	pos := off + 4
	for i := 0; i < variantCount; i++ {
		if pos+4 > len(data) {
			break
		}
		gid := binary.BigEndian.Uint16(data[pos : pos+2])
		adv := int16(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		variants = append(variants, GlyphVariant{GID: gid, Advance: emScale(adv, unitsPerEm)})
		pos += 4
	}

	if assemblyOff == 0 {
		return variants, nil
	}
	assembly := parseGlyphAssembly(data, off+assemblyOff, unitsPerEm)
	return variants, assembly
}

func parseGlyphAssembly(data []byte, off int, unitsPerEm int) *GlyphAssembly {
	if off+4 > len(data) {
		return nil
	}
	italics, _ := mathValueRecord(data, off)
	partCount := int(binary.BigEndian.Uint16(data[off+2 : off+4]))
	asm := &GlyphAssembly{ItalicsCorrection: Em(float64(italics) / float64(max1(unitsPerEm)))}

	const partRecordSize = 10
	pos := off + 4
	for i := 0; i < partCount; i++ {
		if pos+partRecordSize > len(data) {
			break
		}
		gid := binary.BigEndian.Uint16(data[pos : pos+2])
		flags := binary.BigEndian.Uint16(data[pos+2 : pos+4])
		startLen := int16(binary.BigEndian.Uint16(data[pos+4 : pos+6]))
		endLen := int16(binary.BigEndian.Uint16(data[pos+6 : pos+8]))
		fullAdv := int16(binary.BigEndian.Uint16(data[pos+8 : pos+10]))
		asm.Parts = append(asm.Parts, GlyphPart{
			GID:                   gid,
			IsExtender:            flags&0x1 != 0,
			StartConnectorLength:  emScale(startLen, unitsPerEm),
			EndConnectorLength:    emScale(endLen, unitsPerEm),
			FullAdvance:           emScale(fullAdv, unitsPerEm),
		})
		pos += partRecordSize
	}
	return asm
}

// VerticalVariants returns the precomputed vertical-stretch variants
// for a base glyph, smallest first (spec §4.2 step 1).
func (mv *MathVariants) VerticalVariants(gid uint16) []GlyphVariant {
	return mv.vertVariants[gid]
}

// HorizontalVariants returns the precomputed horizontal-stretch
// variants for a base glyph, smallest first.
func (mv *MathVariants) HorizontalVariants(gid uint16) []GlyphVariant {
	return mv.horizVariants[gid]
}

// VerticalAssembly returns the glyph-assembly recipe for vertical
// stretching, if the font provides one.
func (mv *MathVariants) VerticalAssembly(gid uint16) (GlyphAssembly, bool) {
	a, ok := mv.vertAssembly[gid]
	return a, ok
}

// HorizontalAssembly returns the glyph-assembly recipe for horizontal
// stretching, if the font provides one.
func (mv *MathVariants) HorizontalAssembly(gid uint16) (GlyphAssembly, bool) {
	a, ok := mv.horizAssembly[gid]
	return a, ok
}
