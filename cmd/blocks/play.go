package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play [game]",
		Short: "Play a game",
		Long: `Start playing the specified game (blocks by default).

Controls:
  Left/A, Right/D  - Move
  Down/S           - Soft drop
  Up/W/X           - Rotate counter-clockwise
  P/Esc            - Pause
  R                - Restart (after game over)
  ?                - Toggle key help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, bag randomizer, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, gravity stays at the configured interval

Examples:
  blocks play
  blocks play blocks --difficulty hard
  blocks play --config ./my-blocks.yaml
  blocks play --seed 42 --log-file blocks.log --log-level debug`,
		Args: cobra.MaximumNArgs(1),
		Run:  runPlay,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := blocks.ID
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blocks list' to see available games.")
		os.Exit(1)
	}

	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if gameID == blocks.ID {
		if err := blocks.CheckConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger, closeLog, err := newLogger(flagLogLevel, flagLogFile, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	} else {
		logger.Debug("terminal size unavailable, using defaults", "error", termErr)
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if runErr := tui.Run(game, cfg, logger); runErr != nil {
		logger.Error("game aborted", "error", runErr)
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// applyGameFlags hands --config and --difficulty to the blocks game.
func applyGameFlags() error {
	if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
		return err
	}
	blocks.SetConfigPath(flagConfig)
	blocks.SetDifficultyPreset(flagDifficulty)
	return nil
}
