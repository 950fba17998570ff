package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
)

var flagDefaults bool

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Prints the blocks configuration as YAML after the config search
(--config, ~/.blocks/configs/blocks.yaml, ./configs/blocks.yaml, built-in
defaults) and the --difficulty preset have been applied.

Use --defaults to print the built-in file, a good starting point for a
custom config.`,
		Args: cobra.NoArgs,
		Run:  runConfig,
	}
	cmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default config file")
	return cmd
}

func runConfig(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	if flagDefaults {
		fmt.Fprint(out, string(config.GetDefaultYAML(blocks.ID)))
		return
	}

	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := blocks.EffectiveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := blocks.EngineConfig(cfg).Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.MarshalBlocks(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprint(out, string(data))
}
