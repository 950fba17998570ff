package blocks

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and logging.
type Snapshot struct {
	Tick      uint64
	Score     int
	Lines     int
	Pieces    int
	Level     int
	Locked    int // number of locked cells
	Current   string
	CurrentX  int
	CurrentY  int
	Next      string
	GravityMS int64
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.eng == nil {
		return Snapshot{State: StatePlaying}
	}

	state := StatePlaying
	switch {
	case g.eng.IsOver():
		state = StateGameOver
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	}

	cur := g.eng.Current()
	return Snapshot{
		Tick:      g.tick,
		Score:     g.eng.Score(),
		Lines:     g.eng.Lines(),
		Pieces:    g.eng.Pieces(),
		Level:     g.Level(),
		Locked:    g.eng.Grid().Count(),
		Current:   cur.Kind.String(),
		CurrentX:  cur.X,
		CurrentY:  cur.Y,
		Next:      g.eng.Next().Kind.String(),
		GravityMS: g.eng.GravityInterval().Milliseconds(),
		State:     state,
	}
}
