// Package blocks adapts the falling-block engine to the platform's Game
// interface: it maps abstract actions to engine commands, drives gravity from
// fixed ticks and draws the well, the HUD and overlays into a Screen.
package blocks

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "blocks"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// EffectiveConfig loads the configuration the next Reset will use, with the
// difficulty preset applied.
func EffectiveConfig() (config.BlocksConfig, error) {
	cfg, err := config.LoadBlocks(configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyBlocksPreset(&cfg, difficultyPreset)
	return cfg, nil
}

// EngineConfig converts a blocks config to engine settings.
func EngineConfig(cfg config.BlocksConfig) engine.Config {
	return engine.Config{
		Cols:            cfg.Board.Cols,
		Rows:            cfg.Board.Rows,
		GravityInterval: cfg.Gravity.Interval(),
	}
}

// CheckConfig reports whether the effective configuration can start a game.
func CheckConfig() error {
	cfg, err := EffectiveConfig()
	if err != nil {
		return err
	}
	return EngineConfig(cfg).Validate()
}

// newSource picks the piece randomizer named by the config.
func newSource(randomizer string, seed int64) engine.Source {
	if randomizer == config.RandomizerBag {
		return engine.NewBagSource(seed)
	}
	return engine.NewRandomSource(seed)
}

// Game is the blocks game as seen by the platform.
type Game struct {
	cfg        config.BlocksConfig
	difficulty *config.DifficultyManager
	eng        *engine.Engine
	rng        *rand.Rand // seeds restarts

	tick     uint64
	tickRate int
	tickStep time.Duration // game time covered by one Step

	screenW int
	screenH int
	layout  layout

	paused   bool
	tooSmall bool
}

// New creates a blocks game. Reset must be called before Step.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Blocks" }

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	return "Steer falling pieces and clear full rows"
}

// Reset starts a new game with the effective configuration.
// A config that cannot be loaded or does not fit the engine falls back to
// the defaults.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	bc, err := EffectiveConfig()
	if err != nil || EngineConfig(bc).Validate() != nil {
		bc = config.DefaultBlocksConfig()
		config.ApplyBlocksPreset(&bc, difficultyPreset)
	}
	g.cfg = bc

	g.difficulty = config.NewDifficultyManager(bc.Difficulty)

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	eng, err := engine.New(EngineConfig(bc), newSource(bc.Pieces.Randomizer, cfg.Seed))
	if err != nil {
		eng, _ = engine.New(engine.DefaultConfig(), newSource(bc.Pieces.Randomizer, cfg.Seed))
	}
	g.eng = eng

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.tickRate = tickRate
	g.tickStep = time.Second / time.Duration(tickRate)
	g.tick = 0
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.eng == nil {
		return
	}
	g.layout = newLayout(g.eng.Cols(), g.eng.Rows(), w, h)
	g.tooSmall = !g.layout.fits
}

// Step advances the game by one tick: gravity first, then the frame's
// actions in the order they were pressed. A piece that gravity could not move
// locks only after those actions, so a key pressed in the landing frame still
// moves it. Paused, finished and too-small frames do not advance the tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	// Handle restart
	if input.Has(core.ActionRestart) && g.eng.IsOver() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.eng.IsOver() {
		g.paused = !g.paused
	}

	if g.eng.IsOver() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	if g.difficulty.IsEnabled() {
		g.eng.SetGravityInterval(g.difficulty.GravityInterval(g.cfg.Gravity.Interval(), g.eng.Score(), int(g.tick)))
	}
	g.eng.Tick(g.tickStep)

	for _, a := range input.Actions {
		if cmd, ok := commandFor(a); ok {
			g.eng.Apply(cmd)
		}
	}
	g.eng.ResolveLock()

	return core.StepResult{State: g.State()}
}

// commandFor maps a platform action to an engine command.
func commandFor(a core.Action) (engine.Command, bool) {
	switch a {
	case core.ActionLeft:
		return engine.MoveLeft, true
	case core.ActionRight:
		return engine.MoveRight, true
	case core.ActionDown:
		return engine.SoftDrop, true
	case core.ActionRotate:
		return engine.RotateCW, true
	default:
		return 0, false
	}
}

// Level returns the displayed difficulty level, 1 through 10.
func (g *Game) Level() int {
	if g.difficulty == nil || g.eng == nil {
		return 1
	}
	return core.Clamp(1+int(g.difficulty.Level(g.eng.Score(), int(g.tick))*9), 1, 10)
}

// LogValues returns key/value pairs describing the current round.
func (g *Game) LogValues() []any {
	if g.eng == nil {
		return nil
	}
	return []any{
		"lines", g.eng.Lines(),
		"pieces", g.eng.Pieces(),
		"level", g.Level(),
	}
}

// Engine exposes the running engine for inspection.
func (g *Game) Engine() *engine.Engine { return g.eng }

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		GameOver: g.eng.IsOver(),
		Paused:   g.paused,
	}
}
