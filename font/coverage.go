package font

import "encoding/binary"

// parseCoverage decodes an OpenType Coverage table (format 1: sorted
// glyph list; format 2: sorted range records) into a glyph-id → coverage
// index map. Every MATH sub-table that associates per-glyph data
// (italic correction, top-accent attachment, glyph-construction variants)
// keys its parallel array by coverage index, so this one decoder backs
// all of them.
func parseCoverage(data []byte, offset int) map[uint16]int {
	result := make(map[uint16]int)
	if offset+4 > len(data) {
		return result
	}
	format := binary.BigEndian.Uint16(data[offset : offset+2])
	count := int(binary.BigEndian.Uint16(data[offset+2 : offset+4]))
	pos := offset + 4

	switch format {
	case 1:
		for i := 0; i < count; i++ {
			if pos+2 > len(data) {
				break
			}
			gid := binary.BigEndian.Uint16(data[pos : pos+2])
			result[gid] = i
			pos += 2
		}
	case 2:
		for i := 0; i < count; i++ {
			if pos+6 > len(data) {
				break
			}
			start := binary.BigEndian.Uint16(data[pos : pos+2])
			end := binary.BigEndian.Uint16(data[pos+2 : pos+4])
			startIdx := int(binary.BigEndian.Uint16(data[pos+4 : pos+6]))
			for g := start; g <= end; g++ {
				result[g] = startIdx + int(g-start)
				if g == 0xFFFF {
					break
				}
			}
			pos += 6
		}
	}
	return result
}
