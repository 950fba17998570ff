package engine

import "github.com/vovakirdan/tui-blocks/internal/core"

// Point is a column/row coordinate. Y grows downward.
type Point struct {
	X, Y int
}

// Piece is a positioned instance of a shape. Pieces are values: every
// transform returns a new copy and leaves the receiver untouched.
type Piece struct {
	X, Y  int // board position of the shape's top-left cell; Y may be negative
	Kind  Kind
	Shape Shape
	Color core.Color
}

// Spawn places a catalog piece horizontally centered at the top of a board
// of the given width.
func Spawn(t Tetromino, boardWidth int) Piece {
	return Piece{
		X:     boardWidth/2 - (t.Shape.Width()+1)/2,
		Y:     0,
		Kind:  t.Kind,
		Shape: t.Shape,
		Color: t.Color,
	}
}

// Rotated returns a copy with the shape rotated once.
func (p Piece) Rotated() Piece {
	p.Shape = Rotate(p.Shape)
	return p
}

// Translated returns a copy moved by (dx, dy).
func (p Piece) Translated(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Cells returns the board coordinates of the piece's filled cells.
func (p Piece) Cells() []Point {
	pts := p.Shape.Cells()
	for i := range pts {
		pts[i].X += p.X
		pts[i].Y += p.Y
	}
	return pts
}

// Valid reports whether the piece fits on the grid.
func (p Piece) Valid(g Grid) bool {
	return IsValid(p.Shape, p.X, p.Y, g)
}
