package engine

// IsValid reports whether shape s placed with its top-left cell at (x, y)
// fits on grid g. A filled cell fails when it is left of column 0, right of
// the last column, below the last row, or on a filled grid cell. Cells above
// row 0 are allowed so pieces can enter from off-screen.
func IsValid(s Shape, x, y int, g Grid) bool {
	for _, c := range s.Cells() {
		px, py := x+c.X, y+c.Y
		if px < 0 || px >= g.Cols() || py >= g.Rows() {
			return false
		}
		if py >= 0 && g.At(px, py).Filled {
			return false
		}
	}
	return true
}
