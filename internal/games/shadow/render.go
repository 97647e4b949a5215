package shadow

import (
	"fmt"

	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/games/playfield"
	"github.com/vovakirdan/playroom/internal/puzzle/matching"
)

const helpLine = "mouse drag  ←/→ select  enter pick/drop  esc put back  r restart  p pause"

// animalColors gives each built-in animal its own colour; custom identities
// fall back to white.
var animalColors = map[string]core.Color{
	"rabbit": core.ColorBrightWhite,
	"cat":    core.ColorOrange,
	"bear":   core.RGB(0x8B4513),
	"dog":    core.ColorYellow,
	"monkey": core.RGB(0xD2691E),
	"pig":    core.ColorBrightMagenta,
	"cow":    core.ColorWhite,
	"dragon": core.ColorBrightGreen,
	"rat":    core.ColorGray,
	"teddy":  core.RGB(0xDEB887),
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		playfield.DrawTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderShadows(dst)
	g.renderPieces(dst)
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	detail := fmt.Sprintf("Matched %d/%d", g.board.SettledCount(), g.board.RequiredCount())
	playfield.DrawHUD(dst, g.Title(), g.board.Level(), g.runner.Progression().Max(), detail)
}

// renderShadows draws every target. Filled targets are drawn by renderPieces.
func (g *Game) renderShadows(dst *core.Screen) {
	for i, t := range g.board.Targets() {
		if t.Occupied {
			continue
		}
		r := playfield.Box(g.view, t.Position, shadowSize, shadowSize)
		color := core.ColorGray
		if g.held != 0 && g.keyboard && i == g.aim {
			color = core.ColorBrightYellow
		}
		fillBox(dst, r, '░', core.ColorGray)
		dst.DrawBoxColored(r, color)
		playfield.DrawLabel(dst, r, t.Identity, core.ColorGray)
	}
}

// renderPieces draws settled pieces first, then loose ones, then the held one.
func (g *Game) renderPieces(dst *core.Screen) {
	pieces := g.board.Pieces()
	selected := g.selected()

	for _, p := range pieces {
		if p.Settled {
			g.drawPiece(dst, p, core.ColorBrightGreen)
		}
	}
	for _, p := range pieces {
		if p.Settled || p.ID == g.held {
			continue
		}
		border := pieceColor(p.Identity)
		if g.held == 0 && p.ID == selected {
			border = core.ColorBrightYellow
		}
		g.drawPiece(dst, p, border)
	}
	if p, ok := g.board.Piece(g.held); ok && g.held != 0 {
		g.drawPiece(dst, p, core.ColorBrightCyan)
	}
}

func (g *Game) drawPiece(dst *core.Screen, p matching.Piece, border core.Color) {
	r := playfield.Box(g.view, p.Position, pieceSize, pieceSize)
	dst.DrawRect(r, ' ')
	dst.DrawBoxColored(r, border)
	playfield.DrawLabel(dst, r, p.Identity, pieceColor(p.Identity))
}

func (g *Game) renderFooter(dst *core.Screen) {
	if g.status != "" && g.statusColor != core.ColorDefault {
		playfield.DrawFooter(dst, g.status, g.statusColor)
		return
	}
	playfield.DrawFooter(dst, helpLine, core.ColorGray)
}

func (g *Game) renderOverlays(dst *core.Screen) {
	switch {
	case g.runner.Err() != nil:
		playfield.DrawBanner(dst, core.ColorRed,
			"This level could not be loaded",
			g.runner.Err().Error(),
			"B for menu")
	case g.runner.Complete():
		playfield.DrawBanner(dst, core.ColorBrightGreen,
			"Every shadow found!",
			fmt.Sprintf("All %d levels complete", g.runner.Progression().Max()),
			"R to play again  B for menu")
	case g.runner.Transitioning():
		playfield.DrawBanner(dst, core.ColorBrightGreen,
			fmt.Sprintf("Level %d complete!", g.lastCleared),
			"Get ready for the next one")
	case g.paused:
		playfield.DrawBanner(dst, core.ColorYellow, "PAUSED", "P to resume")
	}
}

// fillBox fills the inside of a box with r.
func fillBox(dst *core.Screen, box core.Rect, r rune, c core.Color) {
	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.SetColored(x, y, r, c)
		}
	}
}

func pieceColor(identity string) core.Color {
	if c, ok := animalColors[identity]; ok {
		return c
	}
	return core.ColorWhite
}
