package mathlayout

// TableRow is one row of an <mtable>, each entry one <mtd> cell's
// already-composed content (nil for an empty cell).
type TableRow struct {
	Cells []MathFragment
}

// LayoutTable lays out an <mtable>/<mtr>/<mtd> grid (spec §4.2's Table
// module), adapted from the teacher's layout/math/table.go
// layoutTableImpl: cells are arranged on a grid with per-column width
// and per-row ascent/descent taken from the tallest/widest cell, fixed
// gaps between cells (MathML's rowspacing/columnspacing are absolute,
// unlike the teacher's region-relative Rel gaps), and the whole table's
// baseline set on the font's math axis.
func LayoutTable(rows []TableRow, colGap, rowGap Abs, align FixedAlignment, style Style) *FrameFragment {
	nrows := len(rows)
	if nrows == 0 {
		return NewFrameFragment(ClassOrd, NewFrame(Size{}))
	}
	ncols := 0
	for _, r := range rows {
		if len(r.Cells) > ncols {
			ncols = len(r.Cells)
		}
	}
	if ncols == 0 {
		return NewFrameFragment(ClassOrd, NewFrame(Size{}))
	}

	colWidths := make([]Abs, ncols)
	rowAscent := make([]Abs, nrows)
	rowDescent := make([]Abs, nrows)

	for i, r := range rows {
		for j, cell := range r.Cells {
			if cell == nil {
				continue
			}
			if cell.Width() > colWidths[j] {
				colWidths[j] = cell.Width()
			}
			if cell.Ascent() > rowAscent[i] {
				rowAscent[i] = cell.Ascent()
			}
			if cell.Descent() > rowDescent[i] {
				rowDescent[i] = cell.Descent()
			}
		}
	}

	totalWidth := Abs(0)
	for j, w := range colWidths {
		totalWidth += w
		if j > 0 {
			totalWidth += colGap
		}
	}
	totalHeight := Abs(0)
	for i := range rows {
		totalHeight += rowAscent[i] + rowDescent[i]
		if i > 0 {
			totalHeight += rowGap
		}
	}

	frame := NewFrame(Size{X: totalWidth, Y: totalHeight})

	y := Abs(0)
	for i, r := range rows {
		x := Abs(0)
		for j := 0; j < ncols; j++ {
			var cell MathFragment
			if j < len(r.Cells) {
				cell = r.Cells[j]
			}
			if cell != nil {
				cellFrame := cell.IntoFrame()
				posX := x + align.Position(colWidths[j]-cellFrame.Width())
				posY := y + rowAscent[i] - cellFrame.Ascent()
				frame.PushFrame(Point{X: posX, Y: posY}, cellFrame)
			}
			x += colWidths[j] + colGap
		}
		y += rowAscent[i] + rowDescent[i] + rowGap
	}

	axis := Abs(style.Font.Math().AxisHeight.At(float64(style.FontSize)))
	frame.SetBaseline(frame.Height()/2.0 + axis)

	return NewFrameFragment(ClassOrd, frame)
}
