package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func newTestEngine(t *testing.T, cfg Config, seq ...int) *Engine {
	t.Helper()
	e, err := New(cfg, NewSequenceSource(seq...))
	require.NoError(t, err)
	return e
}

// dropUntilLocked ticks gravity until one more piece has locked.
func dropUntilLocked(t *testing.T, e *Engine) {
	t.Helper()
	want := e.Pieces() + 1
	for i := 0; i < 10*e.Rows(); i++ {
		e.Tick(e.GravityInterval())
		e.ResolveLock()
		if e.Pieces() == want {
			return
		}
	}
	t.Fatalf("piece did not lock after %d ticks", 10*e.Rows())
}

func TestNewValidatesConfig(t *testing.T) {
	bar := Tetromino{Name: "bar", Shape: catalog[KindI].Shape, Color: core.ColorCyan}
	tee := catalog[KindT]
	tall := Tetromino{Name: "tall", Shape: Rotate(catalog[KindI].Shape), Color: core.ColorCyan}

	tests := []struct {
		name string
		cfg  Config
		src  Source
		want error
	}{
		{"zero cols", Config{Cols: 0, Rows: 20, GravityInterval: time.Second}, NewSequenceSource(), ErrInvalidBoard},
		{"negative rows", Config{Cols: 10, Rows: -1, GravityInterval: time.Second}, NewSequenceSource(), ErrInvalidBoard},
		{"zero gravity", Config{Cols: 10, Rows: 20}, NewSequenceSource(), ErrInvalidGravity},
		{"empty catalog", Config{Cols: 10, Rows: 20, GravityInterval: time.Second, Catalog: []Tetromino{}}, NewSequenceSource(), ErrEmptyCatalog},
		{"too narrow", Config{Cols: 3, Rows: 20, GravityInterval: time.Second}, NewSequenceSource(), ErrBoardTooNarrow},
		{"too narrow for custom", Config{Cols: 3, Rows: 5, GravityInterval: time.Second, Catalog: []Tetromino{bar}}, NewSequenceSource(), ErrBoardTooNarrow},
		{"spawn off the left edge", Config{Cols: 3, Rows: 5, GravityInterval: time.Second, Catalog: []Tetromino{tee}}, NewSequenceSource(), ErrBoardTooNarrow},
		{"one row", Config{Cols: 10, Rows: 1, GravityInterval: time.Second}, NewSequenceSource(), ErrBoardTooShort},
		{"too short for custom", Config{Cols: 4, Rows: 3, GravityInterval: time.Second, Catalog: []Tetromino{tall}}, NewSequenceSource(), ErrBoardTooShort},
		{"nil source", DefaultConfig(), nil, ErrNilSource},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := New(tc.cfg, tc.src)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewSpawnsCurrentAndNext(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindI), int(KindO))

	assert.Equal(t, KindI, e.Current().Kind)
	assert.Equal(t, 3, e.Current().X)
	assert.Equal(t, 0, e.Current().Y)
	assert.Equal(t, KindO, e.Next().Kind)
	assert.Equal(t, 4, e.Next().X)
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, StateFalling, e.State())
	assert.False(t, e.IsOver())
	assert.Equal(t, 0, e.Locked().Len())
}

func TestTickAccumulatesGravity(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindT))

	e.Tick(200 * time.Millisecond)
	e.Tick(200 * time.Millisecond)
	assert.Equal(t, 0, e.Current().Y)

	e.Tick(100 * time.Millisecond)
	assert.Equal(t, 1, e.Current().Y, "gravity fires once the interval is reached")

	e.Tick(499 * time.Millisecond)
	assert.Equal(t, 1, e.Current().Y, "accumulator resets after a step")

	e.Tick(time.Millisecond)
	assert.Equal(t, 2, e.Current().Y)
}

func TestMoveAgainstWalls(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindI))

	for i := 0; i < 10; i++ {
		e.Apply(MoveLeft)
		assert.GreaterOrEqual(t, e.Current().X, 0)
	}
	assert.Equal(t, 0, e.Current().X)

	for i := 0; i < 20; i++ {
		e.Apply(MoveRight)
	}
	assert.Equal(t, 6, e.Current().X)
	assert.Equal(t, 0, e.Current().Y)
}

func TestMoveBlockedByLockedCells(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindO))
	e.locked.Set(2, 1, core.ColorGray)

	e.Apply(MoveLeft)
	assert.Equal(t, 3, e.Current().X)
	e.Apply(MoveLeft)
	assert.Equal(t, 3, e.Current().X, "move into a locked cell is rejected")
}

func TestSoftDropStopsWithoutLocking(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindO))

	for i := 0; i < 30; i++ {
		e.Apply(SoftDrop)
	}

	assert.Equal(t, 18, e.Current().Y)
	assert.Equal(t, KindO, e.Current().Kind)
	assert.Equal(t, 0, e.Pieces())
	assert.Equal(t, 0, e.Locked().Len())
}

func TestGravityLocksPiece(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindO), int(KindI), int(KindT))

	for i := 0; i < 18; i++ {
		e.Tick(e.GravityInterval())
	}
	assert.Equal(t, 18, e.Current().Y)
	assert.Equal(t, 0, e.Pieces())

	e.Tick(e.GravityInterval())
	assert.True(t, e.LockPending())
	assert.Equal(t, 0, e.Pieces())
	assert.Equal(t, 18, e.Current().Y)

	e.ResolveLock()

	assert.False(t, e.LockPending())
	assert.Equal(t, 1, e.Pieces())
	assert.Equal(t, []Point{{4, 18}, {5, 18}, {4, 19}, {5, 19}}, e.Locked().Points())
	c, _ := e.Locked().Get(4, 19)
	assert.Equal(t, core.ColorYellow, c)
	assert.Equal(t, KindI, e.Current().Kind)
	assert.Equal(t, 0, e.Current().Y)
	assert.Equal(t, KindT, e.Next().Kind)
	assert.Equal(t, 0, e.Score())
}

func TestRotateCommitsValidRotation(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindT))
	e.Apply(SoftDrop)

	e.Apply(RotateCW)

	assert.True(t, e.Current().Shape.Equal(Rotate(catalog[KindT].Shape)))
	assert.Equal(t, 3, e.Current().X)
	assert.Equal(t, 1, e.Current().Y)
}

func TestRotateRejectedRestoresOriginalOrientation(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		blocker Point
	}{
		{"I against a cell below", KindI, Point{3, 1}},
		{"T against a cell below", KindT, Point{4, 2}},
		{"J against a cell below", KindJ, Point{3, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t, DefaultConfig(), int(tc.kind))
			e.locked.Set(tc.blocker.X, tc.blocker.Y, core.ColorGray)
			before := e.Current()

			e.Apply(RotateCW)

			after := e.Current()
			assert.True(t, after.Shape.Equal(before.Shape), "got\n%s\nwant\n%s", after.Shape, before.Shape)
			assert.Equal(t, before.X, after.X)
			assert.Equal(t, before.Y, after.Y)
		})
	}
}

func TestRotateInEnclosedSpaceKeepsOrientation(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindS))
	// Box the S piece in so its quarter-turn collides.
	for x := 0; x < 10; x++ {
		e.locked.Set(x, 2, core.ColorGray)
	}
	e.locked.Set(3, 0, core.ColorGray)
	e.locked.Set(5, 1, core.ColorGray)
	before := e.Current()
	require.True(t, before.Valid(e.Grid()))

	for i := 0; i < 5; i++ {
		e.Apply(RotateCW)
		assert.True(t, e.Current().Shape.Equal(before.Shape))
	}
}

func TestLockScoresClearedRows(t *testing.T) {
	bar, err := ParseShape("#", "#", "#", "#")
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Catalog = []Tetromino{{Name: "bar", Shape: bar, Color: core.ColorCyan}}

	for n := 0; n <= 4; n++ {
		t.Run(string(rune('0'+n)), func(t *testing.T) {
			e := newTestEngine(t, cfg)
			require.Equal(t, 4, e.Current().X)

			// Rows 19..20-n only miss column 4; the rest of 16..19 also miss column 0.
			for y := 16; y < 20; y++ {
				if y >= 20-n {
					fillRow(e.locked, y, core.ColorGray, 4)
				} else {
					fillRow(e.locked, y, core.ColorGray, 0, 4)
				}
			}
			before := e.locked.Len()

			dropUntilLocked(t, e)

			assert.Equal(t, n*PointsPerRow, e.Score())
			assert.Equal(t, n, e.Lines())
			assert.Equal(t, before+bar.Count()-n*e.Cols(), e.Locked().Len())
			for y := 0; y < 20; y++ {
				assert.False(t, e.locked.RowFull(y), "row %d left full", y)
			}
		})
	}
}

func TestScoreAccumulatesAcrossLocks(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindI))
	fillRow(e.locked, 19, core.ColorGray, 3, 4, 5, 6)

	dropUntilLocked(t, e)
	assert.Equal(t, 100, e.Score())
	assert.Equal(t, 0, e.Locked().Len())

	fillRow(e.locked, 19, core.ColorGray, 3, 4, 5, 6)
	fillRow(e.locked, 18, core.ColorGray, 3, 4, 5, 6)
	dropUntilLocked(t, e)
	assert.Equal(t, 200, e.Score())
	assert.Equal(t, 6, e.Locked().Len())
}

func TestLockKeepsOnlyCellsOnBoard(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindO))
	e.current = e.current.Translated(0, -1)
	before := e.locked.Len()

	e.resolveLock()

	assert.Equal(t, before+2, e.locked.Len())
	assert.True(t, e.locked.Has(4, 0))
	assert.True(t, e.locked.Has(5, 0))
}

func TestGameOverOnSpawnCollision(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindO))
	for y := 2; y < 20; y++ {
		e.locked.Set(4, y, core.ColorGray)
		e.locked.Set(5, y, core.ColorGray)
	}

	e.Tick(e.GravityInterval())
	e.ResolveLock()

	require.True(t, e.IsOver())
	assert.Equal(t, StateOver, e.State())

	current, points, score := e.Current(), e.Locked().Points(), e.Score()
	for _, cmd := range []Command{MoveLeft, MoveRight, SoftDrop, RotateCW} {
		e.Apply(cmd)
	}
	for i := 0; i < 10; i++ {
		e.Tick(time.Second)
	}

	assert.Equal(t, current, e.Current())
	assert.Equal(t, points, e.Locked().Points())
	assert.Equal(t, score, e.Score())
	assert.True(t, e.IsOver())
}

func TestGameOverAfterClearUsesClearedBoard(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindI))
	// The I locks in the spawn row and completes it. Only the cleared board
	// leaves room for the next I.
	fillRow(e.locked, 0, core.ColorGray, 3, 4, 5, 6)
	for y := 1; y < 20; y++ {
		fillRow(e.locked, y, core.ColorGray, 9)
	}

	e.Tick(e.GravityInterval())
	e.ResolveLock()

	assert.Equal(t, 1, e.Pieces())
	assert.Equal(t, 1, e.Lines())
	assert.Equal(t, 100, e.Score())
	assert.False(t, e.IsOver())
	assert.Equal(t, 0, e.Current().Y)
}

func TestLandingPieceTakesCommandsBeforeLock(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindO), int(KindI))
	for i := 0; i < 18; i++ {
		e.Tick(e.GravityInterval())
	}

	e.Tick(e.GravityInterval())
	require.True(t, e.LockPending())
	e.Apply(MoveLeft)
	e.ResolveLock()

	assert.Equal(t, []Point{{3, 18}, {4, 18}, {3, 19}, {4, 19}}, e.Locked().Points())
	assert.Equal(t, KindI, e.Current().Kind)
}

func TestResolveLockWithoutPendingIsNoop(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindO))
	before := e.Current()

	e.ResolveLock()

	assert.Equal(t, before, e.Current())
	assert.Equal(t, 0, e.Pieces())
}

func TestTickResolvesLeftoverLock(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindO), int(KindI))
	for i := 0; i < 19; i++ {
		e.Tick(e.GravityInterval())
	}
	require.True(t, e.LockPending())

	e.Tick(time.Millisecond)

	assert.False(t, e.LockPending())
	assert.Equal(t, 1, e.Pieces())
	assert.Equal(t, KindI, e.Current().Kind)
}

func TestNewAcceptsSmallestBoard(t *testing.T) {
	e, err := New(Config{Cols: 4, Rows: 2, GravityInterval: time.Second}, NewSequenceSource())
	require.NoError(t, err)
	assert.True(t, e.Current().Valid(e.Grid()))
	assert.True(t, e.Next().Valid(e.Grid()))
}

func TestCurrentGridOverlaysActivePiece(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindI))

	g := e.CurrentGrid()
	for x := 3; x < 7; x++ {
		assert.Equal(t, Filled(core.ColorCyan), g.At(x, 0))
	}
	assert.Equal(t, 4, g.Count())
	assert.Equal(t, 0, e.Grid().Count())
}

func TestCurrentGridHidesCellsAboveBoard(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindT))
	e.current = e.current.Translated(0, -1)

	assert.Equal(t, 3, e.CurrentGrid().Count())
}

func TestSetGravityInterval(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), int(KindT))

	e.SetGravityInterval(0)
	assert.Equal(t, DefaultGravityInterval, e.GravityInterval())

	e.SetGravityInterval(100 * time.Millisecond)
	e.Tick(100 * time.Millisecond)
	assert.Equal(t, 1, e.Current().Y)
}

func TestSameSeedSameGame(t *testing.T) {
	e1, err := New(DefaultConfig(), NewRandomSource(42))
	require.NoError(t, err)
	e2, err := New(DefaultConfig(), NewRandomSource(42))
	require.NoError(t, err)

	cmds := []Command{MoveLeft, RotateCW, MoveRight, MoveRight, SoftDrop}
	for i := 0; i < 400 && !e1.IsOver(); i++ {
		e1.Apply(cmds[i%len(cmds)])
		e2.Apply(cmds[i%len(cmds)])
		e1.Tick(250 * time.Millisecond)
		e2.Tick(250 * time.Millisecond)
		e1.ResolveLock()
		e2.ResolveLock()
	}

	assert.Equal(t, e1.Locked().Points(), e2.Locked().Points())
	assert.Equal(t, e1.Current(), e2.Current())
	assert.Equal(t, e1.Next(), e2.Next())
	assert.Equal(t, e1.Score(), e2.Score())
	assert.Equal(t, e1.IsOver(), e2.IsOver())
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "falling", StateFalling.String())
	assert.Equal(t, "over", StateOver.String())
	assert.Equal(t, "rotate_cw", RotateCW.String())
	assert.Equal(t, "unknown", Command(99).String())
}
