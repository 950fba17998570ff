package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func TestSpawnCentersPiece(t *testing.T) {
	tests := []struct {
		kind  Kind
		width int
		wantX int
	}{
		{KindI, 10, 3},
		{KindJ, 10, 3},
		{KindT, 10, 3},
		{KindO, 10, 4},
		{KindI, 7, 1},
		{KindO, 7, 2},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			p := Spawn(catalog[tc.kind], tc.width)
			assert.Equal(t, tc.wantX, p.X)
			assert.Equal(t, 0, p.Y)
			assert.Equal(t, tc.kind, p.Kind)
			assert.Equal(t, catalog[tc.kind].Color, p.Color)
		})
	}
}

func TestPieceTransformsReturnCopies(t *testing.T) {
	p := Spawn(catalog[KindJ], 10)

	moved := p.Translated(-2, 5)
	assert.Equal(t, 1, moved.X)
	assert.Equal(t, 5, moved.Y)
	assert.Equal(t, 3, p.X, "original must not move")

	rotated := p.Rotated()
	assert.Equal(t, p.X, rotated.X)
	assert.Equal(t, p.Y, rotated.Y)
	assert.Equal(t, core.ColorBlue, rotated.Color)
	assert.True(t, rotated.Shape.Equal(Rotate(p.Shape)))
	assert.True(t, p.Shape.Equal(catalog[KindJ].Shape), "original must keep its orientation")
}

func TestPieceCells(t *testing.T) {
	p := Spawn(catalog[KindT], 10).Translated(0, -1)
	assert.Equal(t, []Point{{4, -1}, {3, 0}, {4, 0}, {5, 0}}, p.Cells())
}
