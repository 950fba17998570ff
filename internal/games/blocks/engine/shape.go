package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// ErrMalformedShape is returned when a shape matrix is empty or ragged.
var ErrMalformedShape = errors.New("engine: shape must be a non-empty rectangular matrix")

// Shape is an immutable rectangular matrix of filled/empty cells.
// The zero value is not a valid shape; use NewShape or ParseShape.
type Shape struct {
	w, h  int
	cells []bool // row-major, len == w*h
}

// NewShape builds a shape from rows of 0/1 values.
func NewShape(rows [][]uint8) (Shape, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Shape{}, ErrMalformedShape
	}

	s := Shape{w: len(rows[0]), h: len(rows)}
	s.cells = make([]bool, 0, s.w*s.h)
	for y, row := range rows {
		if len(row) != s.w {
			return Shape{}, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrMalformedShape, y, len(row), s.w)
		}
		for _, v := range row {
			s.cells = append(s.cells, v != 0)
		}
	}
	return s, nil
}

// ParseShape builds a shape from text rows where '#' marks a filled cell and
// any other rune an empty one.
func ParseShape(rows ...string) (Shape, error) {
	matrix := make([][]uint8, len(rows))
	for y, row := range rows {
		for _, r := range row {
			if r == '#' {
				matrix[y] = append(matrix[y], 1)
			} else {
				matrix[y] = append(matrix[y], 0)
			}
		}
	}
	return NewShape(matrix)
}

func mustShape(rows [][]uint8) Shape {
	s, err := NewShape(rows)
	if err != nil {
		panic(err)
	}
	return s
}

// Width returns the number of columns.
func (s Shape) Width() int { return s.w }

// Height returns the number of rows.
func (s Shape) Height() int { return s.h }

// Filled reports whether the cell at column x, row y is filled.
// Coordinates outside the matrix are empty.
func (s Shape) Filled(x, y int) bool {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return false
	}
	return s.cells[y*s.w+x]
}

// Count returns the number of filled cells.
func (s Shape) Count() int {
	n := 0
	for _, c := range s.cells {
		if c {
			n++
		}
	}
	return n
}

// Cells returns the offsets of filled cells in row-major order.
func (s Shape) Cells() []Point {
	pts := make([]Point, 0, s.Count())
	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			if s.cells[y*s.w+x] {
				pts = append(pts, Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// Equal reports whether two shapes have the same dimensions and cells.
func (s Shape) Equal(other Shape) bool {
	if s.w != other.w || s.h != other.h {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the shape as rows of '#' and '.'.
func (s Shape) String() string {
	var sb strings.Builder
	for y := 0; y < s.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.w; x++ {
			if s.cells[y*s.w+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// Rotate returns the quarter-turn rotation of s as a new shape. With rows
// drawn top to bottom this turns the shape counter-clockwise.
// For an R×C input the result is C×R with result[x][y] = s[y][C-1-x].
// Applying it four times yields a shape equal to s.
func Rotate(s Shape) Shape {
	r := Shape{w: s.h, h: s.w, cells: make([]bool, len(s.cells))}
	for x := 0; x < r.h; x++ {
		for y := 0; y < r.w; y++ {
			r.cells[x*r.w+y] = s.cells[y*s.w+(s.w-1-x)]
		}
	}
	return r
}

// Kind identifies one of the seven catalog pieces.
type Kind int

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// String returns the single-letter piece name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(catalog) {
		return "?"
	}
	return catalog[k].Name
}

// Tetromino is a catalog entry: a named shape with its identity color.
type Tetromino struct {
	Kind  Kind
	Name  string
	Shape Shape
	Color core.Color
}

// catalog is built once at package init and never mutated.
var catalog = []Tetromino{
	{Kind: KindI, Name: "I", Color: core.ColorCyan, Shape: mustShape([][]uint8{
		{1, 1, 1, 1},
	})},
	{Kind: KindJ, Name: "J", Color: core.ColorBlue, Shape: mustShape([][]uint8{
		{1, 0, 0},
		{1, 1, 1},
	})},
	{Kind: KindL, Name: "L", Color: core.ColorOrange, Shape: mustShape([][]uint8{
		{0, 0, 1},
		{1, 1, 1},
	})},
	{Kind: KindO, Name: "O", Color: core.ColorYellow, Shape: mustShape([][]uint8{
		{1, 1},
		{1, 1},
	})},
	{Kind: KindS, Name: "S", Color: core.ColorGreen, Shape: mustShape([][]uint8{
		{0, 1, 1},
		{1, 1, 0},
	})},
	{Kind: KindT, Name: "T", Color: core.ColorMagenta, Shape: mustShape([][]uint8{
		{0, 1, 0},
		{1, 1, 1},
	})},
	{Kind: KindZ, Name: "Z", Color: core.ColorRed, Shape: mustShape([][]uint8{
		{1, 1, 0},
		{0, 1, 1},
	})},
}

// Catalog returns the seven standard pieces in I, J, L, O, S, T, Z order.
// The returned slice is a copy; shapes themselves are immutable.
func Catalog() []Tetromino {
	out := make([]Tetromino, len(catalog))
	copy(out, catalog)
	return out
}
