package blocks

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

const (
	cellW      = 2 // screen columns per board cell
	panelW     = 14
	panelGap   = 2
	panelH     = 14
	previewMax = 4 // preview box inner size in cells
)

// layout places the well and the side panel on the screen.
type layout struct {
	fits         bool
	needW, needH int

	well  core.Rect // includes the border
	panel core.Rect
}

func newLayout(cols, rows, screenW, screenH int) layout {
	wellW := cols*cellW + 2
	wellH := rows + 2
	totalW := wellW + panelGap + panelW
	needH := max(wellH, panelH) + 1 // title row

	x := (screenW - totalW) / 2
	return layout{
		fits:  screenW >= totalW && screenH >= needH,
		needW: totalW,
		needH: needH,
		well:  core.NewRect(x, 1, wellW, wellH),
		panel: core.NewRect(x+wellW+panelGap, 1, panelW, panelH),
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	dst.DrawTextCentered(0, "B L O C K S")
	g.renderWell(dst)
	g.renderPanel(dst)

	switch {
	case g.eng.IsOver():
		g.renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d", g.eng.Score()), "R to restart")
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "", "P to resume")
	}
}

// renderWell draws the bordered board with the active piece.
func (g *Game) renderWell(dst *core.Screen) {
	well := g.layout.well
	dst.DrawBox(well, core.ColorGray)

	grid := g.eng.CurrentGrid()
	for y := range grid.Rows() {
		for x := range grid.Cols() {
			drawCell(dst, well.X+1+x*cellW, well.Y+1+y, grid.At(x, y))
		}
	}
}

// drawCell draws one board cell as a pair of screen columns.
func drawCell(dst *core.Screen, sx, sy int, c engine.Cell) {
	if c.Filled {
		dst.SetColored(sx, sy, '█', c.Color)
		dst.SetColored(sx+1, sy, '█', c.Color)
		return
	}
	dst.SetColored(sx, sy, ' ', core.ColorDefault)
	dst.SetColored(sx+1, sy, '·', core.ColorGray)
}

// renderPanel draws score, lines, level and the next piece.
func (g *Game) renderPanel(dst *core.Screen) {
	p := g.layout.panel

	stats := []struct {
		label string
		value int
	}{
		{"SCORE", g.eng.Score()},
		{"LINES", g.eng.Lines()},
		{"LEVEL", g.Level()},
	}
	for i, s := range stats {
		y := p.Y + i*3
		dst.DrawTextColored(p.X, y, s.label, core.ColorGray)
		dst.DrawText(p.X, y+1, strconv.Itoa(s.value))
	}

	y := p.Y + len(stats)*3
	dst.DrawTextColored(p.X, y, "NEXT", core.ColorGray)
	box := core.NewRect(p.X, y+1, previewMax*cellW+2, previewMax/2+2)
	dst.DrawBox(box, core.ColorGray)

	next := g.eng.Next()
	for _, c := range next.Shape.Cells() {
		if c.X >= previewMax || c.Y >= previewMax/2 {
			continue
		}
		drawCell(dst, box.X+1+c.X*cellW, box.Y+1+c.Y, engine.Filled(next.Color))
	}
}

// renderOverlay draws a boxed message centered on the well.
func (g *Game) renderOverlay(dst *core.Screen, title, detail, hint string) {
	lines := []string{title}
	if detail != "" {
		lines = append(lines, detail)
	}
	lines = append(lines, hint)

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	well := g.layout.well
	box := core.NewRect(well.X+(well.W-w-4)/2, well.Y+(well.H-len(lines)-2)/2, w+4, len(lines)+2)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = core.ColorWhite
		}
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+1+i, l, c)
	}
}

// renderTooSmall asks the player to enlarge the terminal.
func (g *Game) renderTooSmall(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, "Window too small")
	dst.DrawTextCentered(mid, fmt.Sprintf("Need %dx%d, have %dx%d",
		g.layout.needW, g.layout.needH, g.screenW, g.screenH))
	dst.DrawTextCentered(mid+1, "Resize to continue")
}
