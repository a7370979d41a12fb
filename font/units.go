package font

// Em is a length relative to font size, the unit OpenType MATH
// constants are naturally expressed in once scaled by unitsPerEm. This
// mirrors mathlayout.Em; the two packages keep separate definitions
// (rather than one importing the other) because font has no reason to
// depend on the layout engine above it.
type Em float64

// At resolves the Em value to an absolute length (in the same unit
// fontSize is expressed in — points, in this module's convention).
func (e Em) At(fontSize float64) float64 {
	return float64(e) * fontSize
}
