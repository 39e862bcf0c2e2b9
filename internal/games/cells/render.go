package cells

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/tui-cells/internal/core"
	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
)

const (
	cellWidth = 4 // bracket + two-character glyph + bracket
	hudHeight = 3
)

// kindColors maps each cell kind to its display color.
var kindColors = map[core.Kind]platformcore.Color{
	core.KindMover:     platformcore.ColorBrightCyan,
	core.KindPush:      platformcore.ColorYellow,
	core.KindSlider:    platformcore.ColorOrange,
	core.KindRotator:   platformcore.ColorMagenta,
	core.KindGenerator: platformcore.ColorBrightGreen,
	core.KindImmobile:  platformcore.ColorGray,
	core.KindEnemy:     platformcore.ColorBrightRed,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW := g.board.Width() * cellWidth
	boardH := g.board.Height()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, boardY+boardH+1)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", platformcore.ColorGray)
}

// renderHUD draws the title, run info and status line.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	title := "Sandbox"
	if g.mode == ModePuzzle {
		title = fmt.Sprintf("%s %d: %s", g.level.Collection, g.level.Number, g.level.Title())
	}
	dst.DrawTextCentered(0, title, platformcore.ColorBrightYellow)

	run := "Stopped"
	switch {
	case g.solved:
		run = "Solved"
	case g.running:
		run = "Running"
	case g.ticks > 0:
		run = g.status.String()
	}
	info := fmt.Sprintf("Tick %d  Enemies %d  %s", g.ticks, g.board.Count(core.KindEnemy), run)
	dst.DrawTextCentered(1, info, platformcore.ColorDefault)

	if g.message != "" {
		c := platformcore.ColorGreen
		if g.failed {
			c = platformcore.ColorRed
		}
		dst.DrawTextCentered(2, g.message, c)
	}
}

// renderBoard draws the frame, the build area and every cell.
func (g *Game) renderBoard(dst *platformcore.Screen, boardX, boardY int) {
	frame := platformcore.Rect{
		X: boardX - 1,
		Y: boardY - 1,
		W: g.board.Width()*cellWidth + 2,
		H: g.board.Height() + 2,
	}
	dst.DrawBox(frame, platformcore.ColorGray)

	area := g.board.BuildArea()
	for c, cell := range g.board.All() {
		px := boardX + c.X*cellWidth
		py := boardY + c.Y

		glyph := core.Glyph(cell)
		st := platformcore.Plain(platformcore.ColorDim)
		switch {
		case cell != nil:
			st = platformcore.Plain(kindColors[cell.Kind])
		case g.mode == ModePuzzle && area.Contains(c):
			glyph = "::"
			st = platformcore.Plain(platformcore.ColorBlue)
		}
		if g.grabbed && c == g.grabFrom {
			st.Reverse = true
		}
		dst.DrawTextStyled(px+1, py, glyph, st)

		if c == g.cursor && !g.running {
			bracket := platformcore.Style{Color: platformcore.ColorBrightYellow, Bold: true}
			dst.SetStyled(px, py, '[', bracket)
			dst.SetStyled(px+3, py, ']', bracket)
		}
	}
}

// renderFooter draws level help, the encoded board in sandbox mode and
// the control hints.
func (g *Game) renderFooter(dst *platformcore.Screen, y int) {
	if g.mode == ModePuzzle && g.level.Help != "" {
		for _, line := range strings.Split(g.level.Help, "\n") {
			dst.DrawTextCentered(y, line, platformcore.ColorCyan)
			y++
		}
	}
	if g.mode == ModeSandbox {
		text := core.Encode(g.board)
		if len(text) > g.screenW {
			text = text[:max(g.screenW-3, 0)] + "..."
		}
		dst.DrawTextCentered(y, text, platformcore.ColorGray)
	}
	dst.DrawTextCentered(g.screenH-1, g.Controls(), platformcore.ColorGray)
}

// renderOverlays draws the win overlay.
func (g *Game) renderOverlays(dst *platformcore.Screen, boardX, boardY, boardW, boardH int) {
	if !g.solved {
		return
	}
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	ticks := fmt.Sprintf("Solved in %d ticks", g.ticks)
	if g.catalog != nil {
		if next, ok := g.catalog.Next(g.level.Collection, g.level.Number); ok {
			g.drawOverlay(dst, centerX, centerY, "LEVEL COMPLETE", ticks,
				"Enter: "+next.Title(), "R: Replay")
			return
		}
	}
	g.drawOverlay(dst, centerX, centerY, "COLLECTION COMPLETE", ticks, "Enter: Menu", "R: Replay")
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *platformcore.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := platformcore.Rect{X: centerX - boxW/2, Y: centerY - boxH/2, W: boxW, H: boxH}

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, platformcore.ColorBrightGreen)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}
