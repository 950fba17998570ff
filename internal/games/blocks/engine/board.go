package engine

import (
	"sort"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Cell is one board position: either empty or filled with a color.
// The zero value is an empty cell.
type Cell struct {
	Filled bool
	Color  core.Color
}

// Empty is the empty cell.
var Empty = Cell{}

// Filled returns a filled cell of the given color.
func Filled(c core.Color) Cell {
	return Cell{Filled: true, Color: c}
}

// Grid is a rows×cols snapshot of board cells.
type Grid struct {
	cols, rows int
	cells      []Cell
}

// NewGrid returns an all-empty grid.
func NewGrid(cols, rows int) Grid {
	return Grid{cols: cols, rows: rows, cells: make([]Cell, cols*rows)}
}

// Cols returns the grid width.
func (g Grid) Cols() int { return g.cols }

// Rows returns the grid height.
func (g Grid) Rows() int { return g.rows }

// At returns the cell at (x, y). Positions outside the grid are empty.
func (g Grid) At(x, y int) Cell {
	if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
		return Empty
	}
	return g.cells[y*g.cols+x]
}

// Set stores a cell. Positions outside the grid are ignored.
func (g Grid) Set(x, y int, c Cell) {
	if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
		return
	}
	g.cells[y*g.cols+x] = c
}

// Count returns the number of filled cells.
func (g Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c.Filled {
			n++
		}
	}
	return n
}

// LockedMap holds the permanently settled cells of a board, keyed by
// coordinate. Every key lies inside the board.
type LockedMap struct {
	cols, rows int
	cells      *intmap.Map[int, core.Color]
}

// NewLockedMap creates an empty map for a cols×rows board.
func NewLockedMap(cols, rows int) *LockedMap {
	return &LockedMap{
		cols:  cols,
		rows:  rows,
		cells: intmap.New[int, core.Color](cols * rows),
	}
}

// Cols returns the board width.
func (l *LockedMap) Cols() int { return l.cols }

// Rows returns the board height.
func (l *LockedMap) Rows() int { return l.rows }

func (l *LockedMap) key(x, y int) int {
	return y*l.cols + x
}

func (l *LockedMap) point(key int) Point {
	return Point{X: key % l.cols, Y: key / l.cols}
}

func (l *LockedMap) inBounds(x, y int) bool {
	return x >= 0 && x < l.cols && y >= 0 && y < l.rows
}

// Set locks a colored cell at (x, y). Out-of-bounds positions are rejected
// and reported with false.
func (l *LockedMap) Set(x, y int, c core.Color) bool {
	if !l.inBounds(x, y) {
		return false
	}
	l.cells.Put(l.key(x, y), c)
	return true
}

// Get returns the color locked at (x, y).
func (l *LockedMap) Get(x, y int) (core.Color, bool) {
	if !l.inBounds(x, y) {
		return core.ColorDefault, false
	}
	return l.cells.Get(l.key(x, y))
}

// Has reports whether (x, y) is locked.
func (l *LockedMap) Has(x, y int) bool {
	if !l.inBounds(x, y) {
		return false
	}
	return l.cells.Has(l.key(x, y))
}

// Delete removes the cell at (x, y) if present.
func (l *LockedMap) Delete(x, y int) {
	if l.inBounds(x, y) {
		l.cells.Del(l.key(x, y))
	}
}

// Len returns the number of locked cells.
func (l *LockedMap) Len() int {
	return l.cells.Len()
}

// Points returns all locked coordinates in row-major order.
func (l *LockedMap) Points() []Point {
	keys := make([]int, 0, l.cells.Len())
	l.cells.ForEach(func(k int, _ core.Color) bool {
		keys = append(keys, k)
		return true
	})
	sort.Ints(keys)

	pts := make([]Point, len(keys))
	for i, k := range keys {
		pts[i] = l.point(k)
	}
	return pts
}

// Clone returns an independent copy.
func (l *LockedMap) Clone() *LockedMap {
	c := NewLockedMap(l.cols, l.rows)
	l.cells.ForEach(func(k int, v core.Color) bool {
		c.cells.Put(k, v)
		return true
	})
	return c
}

// Render builds the grid for this map. Cells without an entry are empty.
func (l *LockedMap) Render() Grid {
	g := NewGrid(l.cols, l.rows)
	l.cells.ForEach(func(k int, v core.Color) bool {
		g.cells[k] = Filled(v)
		return true
	})
	return g
}

// RowFull reports whether every column of row y is locked.
func (l *LockedMap) RowFull(y int) bool {
	if y < 0 || y >= l.rows {
		return false
	}
	for x := 0; x < l.cols; x++ {
		if !l.cells.Has(l.key(x, y)) {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row and compacts the rows above it
// downward. Rows are scanned bottom to top; after a row is cleared the same
// index is examined again because the row above has just moved into it.
// It returns the number of rows removed.
func (l *LockedMap) ClearFullRows() int {
	cleared := 0
	for y := l.rows - 1; y >= 0; {
		if !l.RowFull(y) {
			y--
			continue
		}
		for x := 0; x < l.cols; x++ {
			l.cells.Del(l.key(x, y))
		}
		l.shiftDown(y)
		cleared++
	}
	return cleared
}

// shiftDown moves every entry above row y down by one. Entries are moved in
// descending row order so a destination is always vacant before it is
// written.
func (l *LockedMap) shiftDown(y int) {
	type entry struct {
		p Point
		c core.Color
	}
	var above []entry
	l.cells.ForEach(func(k int, v core.Color) bool {
		if p := l.point(k); p.Y < y {
			above = append(above, entry{p: p, c: v})
		}
		return true
	})
	sort.Slice(above, func(i, j int) bool {
		if above[i].p.Y != above[j].p.Y {
			return above[i].p.Y > above[j].p.Y
		}
		return above[i].p.X < above[j].p.X
	})

	for _, e := range above {
		l.cells.Del(l.key(e.p.X, e.p.Y))
		l.cells.Put(l.key(e.p.X, e.p.Y+1), e.c)
	}
}
