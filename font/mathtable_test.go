package font

import (
	"encoding/binary"
	"testing"
)

func putU16(b []byte, off int, v uint16) { binary.BigEndian.PutUint16(b[off:off+2], v) }
func putI16(b []byte, off int, v int16)  { binary.BigEndian.PutUint16(b[off:off+2], uint16(v)) }

// buildMathConstantsTable builds a minimal synthetic MATH table blob: an
// 8-byte header (version + a MathConstants sub-table offset at [4:6])
// followed by the sub-table's first few fields, in the exact on-disk
// order mathConstantsFieldOrder expects.
func buildMathConstantsTable() []byte {
	const constOff = 8
	data := make([]byte, constOff+16)
	putU16(data, 4, constOff)

	putI16(data, constOff+0, 70)   // ScriptPercentScaleDown
	putI16(data, constOff+2, 50)   // ScriptScriptPercentScaleDown
	putU16(data, constOff+4, 1500) // DelimitedSubFormulaMinHeight (UFWORD)
	putU16(data, constOff+6, 1500) // DisplayOperatorMinHeight (UFWORD)
	putI16(data, constOff+8, 200)  // MathLeading value
	putU16(data, constOff+10, 0)   // device-table offset
	putI16(data, constOff+12, 250) // AxisHeight value
	putU16(data, constOff+14, 0)
	return data
}

func TestParseMathConstants_DecodesScaledFields(t *testing.T) {
	mc, err := ParseMathConstants(buildMathConstantsTable(), 1000)
	if err != nil {
		t.Fatalf("ParseMathConstants: %v", err)
	}
	if mc.ScriptPercentScaleDown != 70 {
		t.Errorf("ScriptPercentScaleDown = %v, want 70", mc.ScriptPercentScaleDown)
	}
	if mc.ScriptScriptPercentScaleDown != 50 {
		t.Errorf("ScriptScriptPercentScaleDown = %v, want 50", mc.ScriptScriptPercentScaleDown)
	}
	if mc.DelimitedSubFormulaMinHeight != 1.5 {
		t.Errorf("DelimitedSubFormulaMinHeight = %v, want 1.5", mc.DelimitedSubFormulaMinHeight)
	}
	if mc.DisplayOperatorMinHeight != 1.5 {
		t.Errorf("DisplayOperatorMinHeight = %v, want 1.5", mc.DisplayOperatorMinHeight)
	}
	if mc.MathLeading != 0.2 {
		t.Errorf("MathLeading = %v, want 0.2", mc.MathLeading)
	}
	if mc.AxisHeight != 0.25 {
		t.Errorf("AxisHeight = %v, want 0.25", mc.AxisHeight)
	}
}

func TestParseMathConstants_UnscaledWhenUnitsPerEmZero(t *testing.T) {
	mc, err := ParseMathConstants(buildMathConstantsTable(), 0)
	if err != nil {
		t.Fatalf("ParseMathConstants: %v", err)
	}
	if mc.AxisHeight != 250 {
		t.Errorf("AxisHeight with unitsPerEm=0 = %v, want raw 250", mc.AxisHeight)
	}
}

func TestParseMathConstants_TooShort(t *testing.T) {
	if _, err := ParseMathConstants([]byte{1, 2, 3}, 1000); err == nil {
		t.Fatal("expected an error for a too-short MATH table")
	}
}

func TestParseMathConstants_OffsetOutOfRange(t *testing.T) {
	data := make([]byte, 8)
	putU16(data, 4, 9000) // offset far beyond the 8-byte buffer
	if _, err := ParseMathConstants(data, 1000); err == nil {
		t.Fatal("expected an error for an out-of-range MathConstants offset")
	}
}

func TestParseSFNTDirectory(t *testing.T) {
	const recordSize = 16
	data := make([]byte, 12+recordSize)
	binary.BigEndian.PutUint32(data[0:4], 0x00010000)
	binary.BigEndian.PutUint16(data[4:6], 1) // numTables
	copy(data[12:16], "MATH")
	binary.BigEndian.PutUint32(data[20:24], 40) // offset
	binary.BigEndian.PutUint32(data[24:28], 96) // length

	tables, err := parseSFNTDirectory(data)
	if err != nil {
		t.Fatalf("parseSFNTDirectory: %v", err)
	}
	rec, ok := tables["MATH"]
	if !ok {
		t.Fatal("expected a MATH table record")
	}
	if rec.offset != 40 || rec.length != 96 {
		t.Errorf("MATH record = %+v, want offset 40 length 96", rec)
	}
}

func TestParseSFNTDirectory_UnsupportedVersion(t *testing.T) {
	data := make([]byte, 12)
	binary.BigEndian.PutUint32(data[0:4], 0xDEADBEEF)
	if _, err := parseSFNTDirectory(data); err == nil {
		t.Fatal("expected an error for an unrecognized sfnt version")
	}
}

func TestParseSFNTDirectory_TooShort(t *testing.T) {
	if _, err := parseSFNTDirectory([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected an error for data shorter than the sfnt header")
	}
}

func TestDefaultMathConstants(t *testing.T) {
	mc := DefaultMathConstants(1000)
	if mc.ScriptPercentScaleDown != 70 {
		t.Errorf("ScriptPercentScaleDown = %v, want 70", mc.ScriptPercentScaleDown)
	}
	if mc.AxisHeight != 0.25 {
		t.Errorf("AxisHeight = %v, want 0.25", mc.AxisHeight)
	}
	if mc.RadicalDegreeBottomRaisePercent != 60 {
		t.Errorf("RadicalDegreeBottomRaisePercent = %v, want 60", mc.RadicalDegreeBottomRaisePercent)
	}
}
