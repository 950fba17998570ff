package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
)

var flagPlain bool

func newShapesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shapes",
		Short: "Print the piece catalog",
		Long: `Prints every piece in the catalog with its four rotations,
in the order the rotate key cycles through them (counter-clockwise).`,
		Args: cobra.NoArgs,
		Run:  runShapes,
	}
	cmd.Flags().BoolVar(&flagPlain, "plain", false, "Print shapes as '#' and '.' without colors")
	return cmd
}

func runShapes(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	for _, t := range engine.Catalog() {
		fmt.Fprintf(out, "%s (%s)\n", t.Name, t.Color)
		fmt.Fprintln(out, renderRotations(t, flagPlain))
		fmt.Fprintln(out)
	}
}

// renderRotations lays out the four orientations of a piece side by side.
func renderRotations(t engine.Tetromino, plain bool) string {
	gap := lipgloss.NewStyle().PaddingRight(2)
	views := make([]string, 0, 4)
	s := t.Shape
	for range 4 {
		if plain {
			views = append(views, gap.Render(s.String()))
		} else {
			views = append(views, gap.Render(renderShape(s, tui.StyleFor(t.Color))))
		}
		s = engine.Rotate(s)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// renderShape draws filled cells as colored double-width blocks.
func renderShape(s engine.Shape, style lipgloss.Style) string {
	rows := make([]string, s.Height())
	for y := range s.Height() {
		var sb strings.Builder
		for x := range s.Width() {
			if s.Filled(x, y) {
				sb.WriteString(style.Render("██"))
			} else {
				sb.WriteString("  ")
			}
		}
		rows[y] = sb.String()
	}
	return strings.Join(rows, "\n")
}
