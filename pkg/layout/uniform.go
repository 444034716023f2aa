package layout

// UniformGrid maps grid coordinates to pixel boxes.
type UniformGrid struct {
	Rows, Cols     int
	CellSize       float64
	StartX, StartY float64
}

// Uniform sizes square cells so a rows × cols grid fits the content box, and
// centers the grid in it. The title margin stays clear because the content
// box already excludes it.
func Uniform(rows, cols int, f Frame) UniformGrid {
	g := UniformGrid{Rows: rows, Cols: cols}
	if rows <= 0 || cols <= 0 {
		return g
	}
	c := f.Content()
	g.CellSize = max(0, min(c.W/float64(cols), c.H/float64(rows)))
	g.StartX = c.X + (c.W-g.CellSize*float64(cols))/2
	g.StartY = c.Y + (c.H-g.CellSize*float64(rows))/2
	return g
}

// Cell returns the box of (row, col): (StartX + col·size, StartY + row·size).
func (g UniformGrid) Cell(row, col int) Rect {
	return Rect{
		X: g.StartX + float64(col)*g.CellSize,
		Y: g.StartY + float64(row)*g.CellSize,
		W: g.CellSize,
		H: g.CellSize,
	}
}

// At returns the cell containing (x, y), if any.
func (g UniformGrid) At(x, y float64) (row, col int, ok bool) {
	if g.CellSize <= 0 || x < g.StartX || y < g.StartY {
		return 0, 0, false
	}
	col = int((x - g.StartX) / g.CellSize)
	row = int((y - g.StartY) / g.CellSize)
	if row >= g.Rows || col >= g.Cols {
		return 0, 0, false
	}
	return row, col, true
}
