// blocks is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blocks play [game]      - Play a game (default: blocks)
//	blocks list             - List available games
//	blocks shapes           - Print the piece catalog with every rotation
//	blocks config           - Print the effective configuration as YAML
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Custom blocks.yaml
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-blocks/internal/games/blocks"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blocks",
		Short: "Blocks - a falling-block puzzle in your terminal",
		Long: `Blocks drops one piece at a time into a well. Steer and rotate it,
fill whole rows to clear them, and keep the stack below the top.

Available commands:
  play     - Play a game (blocks by default)
  list     - Show all available games
  shapes   - Print the piece catalog
  config   - Print the effective configuration

Examples:
  blocks play
  blocks play --difficulty hard
  blocks play --config ./my-blocks.yaml --seed 42
  blocks shapes`,
		SilenceUsage: true,
	}

	// Global persistent flags
	pf := root.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom blocks config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard while playing)")

	root.AddCommand(newPlayCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newShapesCmd())
	root.AddCommand(newConfigCmd())
	return root
}
