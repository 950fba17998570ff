// Package engine implements the deterministic core of the blocks game:
// shapes and rotation, pieces, the locked-cell board, the placement check and
// the gravity/command/lock state machine. It performs no I/O; a platform
// layer drives it with Tick, Apply and ResolveLock and reads state back for
// rendering.
package engine

import (
	"errors"
	"fmt"
	"time"
)

// PointsPerRow is the score awarded for each cleared row.
const PointsPerRow = 100

// Default board dimensions and gravity.
const (
	DefaultCols            = 10
	DefaultRows            = 20
	DefaultGravityInterval = 500 * time.Millisecond
)

// Construction errors. Play itself never fails.
var (
	ErrInvalidBoard   = errors.New("engine: board dimensions must be positive")
	ErrBoardTooNarrow = errors.New("engine: board is too narrow to spawn every piece")
	ErrBoardTooShort  = errors.New("engine: board is shorter than the tallest piece")
	ErrEmptyCatalog   = errors.New("engine: piece catalog is empty")
	ErrInvalidGravity = errors.New("engine: gravity interval must be positive")
	ErrNilSource      = errors.New("engine: piece source is nil")
)

// Config describes the board an Engine plays on.
type Config struct {
	Cols            int
	Rows            int
	GravityInterval time.Duration
	// Catalog overrides the standard seven pieces when non-nil.
	Catalog []Tetromino
}

// DefaultConfig returns the classic 10×20 board with 500ms gravity.
func DefaultConfig() Config {
	return Config{
		Cols:            DefaultCols,
		Rows:            DefaultRows,
		GravityInterval: DefaultGravityInterval,
	}
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidBoard, c.Cols, c.Rows)
	}
	if c.GravityInterval <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidGravity, c.GravityInterval)
	}
	if c.Catalog != nil && len(c.Catalog) == 0 {
		return ErrEmptyCatalog
	}
	// Every catalog entry must fit at its spawn position on an empty board.
	for _, t := range c.catalog() {
		p := Spawn(t, c.Cols)
		if p.X < 0 || p.X+t.Shape.Width() > c.Cols {
			return fmt.Errorf("%w: %d columns, %q is %d wide", ErrBoardTooNarrow, c.Cols, t.Name, t.Shape.Width())
		}
		if h := t.Shape.Height(); h > c.Rows {
			return fmt.Errorf("%w: %d rows, %q is %d tall", ErrBoardTooShort, c.Rows, t.Name, h)
		}
	}
	return nil
}

func (c Config) catalog() []Tetromino {
	if c.Catalog == nil {
		return catalog
	}
	return c.Catalog
}

// State is the engine lifecycle state.
type State int

const (
	StateFalling State = iota // a piece is active
	StateOver                 // a new piece could not be placed; terminal
)

func (s State) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Command is a player intent applied to the active piece.
type Command int

const (
	MoveLeft Command = iota
	MoveRight
	SoftDrop
	// RotateCW applies Rotate once. On screen, with rows growing downward,
	// the piece turns counter-clockwise.
	RotateCW
)

func (c Command) String() string {
	switch c {
	case MoveLeft:
		return "move_left"
	case MoveRight:
		return "move_right"
	case SoftDrop:
		return "soft_drop"
	case RotateCW:
		return "rotate_cw"
	default:
		return "unknown"
	}
}

// Engine owns one game: the locked cells, the active and next pieces and the
// score. It is not safe for concurrent use; callers confine it to a single
// goroutine.
type Engine struct {
	cols, rows int
	interval   time.Duration
	catalog    []Tetromino
	src        Source

	locked  *LockedMap
	current Piece
	next    Piece

	fall    time.Duration // accumulated time since the last gravity step
	pending bool          // gravity was blocked; lock on the next ResolveLock
	score   int
	lines   int
	pieces  int
	over    bool
}

// New creates an engine with an empty board and two freshly spawned pieces.
func New(cfg Config, src Source) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrNilSource
	}

	cat := make([]Tetromino, len(cfg.catalog()))
	copy(cat, cfg.catalog())

	e := &Engine{
		cols:     cfg.Cols,
		rows:     cfg.Rows,
		interval: cfg.GravityInterval,
		catalog:  cat,
		src:      src,
		locked:   NewLockedMap(cfg.Cols, cfg.Rows),
	}
	e.current = e.spawn()
	e.next = e.spawn()
	return e, nil
}

// spawn draws the next catalog entry from the source and centers it.
// Out-of-range indices from a misbehaving source are wrapped.
func (e *Engine) spawn() Piece {
	n := len(e.catalog)
	idx := e.src.Next(n) % n
	if idx < 0 {
		idx += n
	}
	return Spawn(e.catalog[idx], e.cols)
}

// Tick advances game time. Once the accumulated time reaches the gravity
// interval the accumulator resets and the active piece moves down one row.
// If it cannot, the piece stays put and a lock becomes pending; commands
// applied before ResolveLock still act on the landing piece. A lock left
// pending by the previous Tick is resolved first.
func (e *Engine) Tick(elapsed time.Duration) {
	if e.over {
		return
	}
	e.ResolveLock()
	if e.over {
		return
	}

	e.fall += elapsed
	if e.fall < e.interval {
		return
	}
	e.fall = 0

	moved := e.current.Translated(0, 1)
	if moved.Valid(e.locked.Render()) {
		e.current = moved
		return
	}
	e.pending = true
}

// ResolveLock locks the active piece in place if the last Tick left a lock
// pending. It does nothing otherwise.
func (e *Engine) ResolveLock() {
	if !e.pending || e.over {
		return
	}
	e.pending = false
	e.resolveLock()
}

// LockPending reports whether the active piece will lock on ResolveLock.
func (e *Engine) LockPending() bool { return e.pending }

// Apply performs a command on the active piece if the result is a valid
// placement; otherwise the piece is left unchanged. A rejected rotation is
// undone by rotating three more times.
func (e *Engine) Apply(cmd Command) {
	if e.over {
		return
	}

	g := e.locked.Render()
	switch cmd {
	case MoveLeft:
		e.tryMove(g, -1, 0)
	case MoveRight:
		e.tryMove(g, 1, 0)
	case SoftDrop:
		e.tryMove(g, 0, 1)
	case RotateCW:
		p := e.current.Rotated()
		if !p.Valid(g) {
			for range 3 {
				p = p.Rotated()
			}
		}
		e.current = p
	}
}

func (e *Engine) tryMove(g Grid, dx, dy int) {
	if moved := e.current.Translated(dx, dy); moved.Valid(g) {
		e.current = moved
	}
}

// resolveLock merges the active piece into the board, clears full rows,
// scores them and promotes the next piece. The game ends when the promoted
// piece does not fit at its spawn position.
func (e *Engine) resolveLock() {
	for _, c := range e.current.Cells() {
		if c.Y >= 0 {
			e.locked.Set(c.X, c.Y, e.current.Color)
		}
	}
	e.pieces++

	cleared := e.locked.ClearFullRows()
	e.lines += cleared
	e.score += cleared * PointsPerRow

	e.current = e.next
	e.next = e.spawn()
	if !e.current.Valid(e.locked.Render()) {
		e.over = true
	}
}

// SetGravityInterval changes the gravity period for subsequent ticks.
// Non-positive values are ignored.
func (e *Engine) SetGravityInterval(d time.Duration) {
	if d > 0 {
		e.interval = d
	}
}

// GravityInterval returns the current gravity period.
func (e *Engine) GravityInterval() time.Duration { return e.interval }

// Grid returns the locked cells only.
func (e *Engine) Grid() Grid {
	return e.locked.Render()
}

// CurrentGrid returns the board with the active piece drawn over it.
// Piece cells above the top row are not shown.
func (e *Engine) CurrentGrid() Grid {
	g := e.locked.Render()
	for _, c := range e.current.Cells() {
		if c.Y >= 0 {
			g.Set(c.X, c.Y, Filled(e.current.Color))
		}
	}
	return g
}

// Locked returns a copy of the locked-cell map.
func (e *Engine) Locked() *LockedMap { return e.locked.Clone() }

// Current returns the active piece.
func (e *Engine) Current() Piece { return e.current }

// Next returns the piece that spawns after the active one locks.
func (e *Engine) Next() Piece { return e.next }

// Score returns the points scored so far.
func (e *Engine) Score() int { return e.score }

// Lines returns the total number of cleared rows.
func (e *Engine) Lines() int { return e.lines }

// Pieces returns the number of pieces locked so far.
func (e *Engine) Pieces() int { return e.pieces }

// IsOver reports whether the game has ended.
func (e *Engine) IsOver() bool { return e.over }

// State returns the lifecycle state.
func (e *Engine) State() State {
	if e.over {
		return StateOver
	}
	return StateFalling
}

// Cols returns the board width.
func (e *Engine) Cols() int { return e.cols }

// Rows returns the board height.
func (e *Engine) Rows() int { return e.rows }
