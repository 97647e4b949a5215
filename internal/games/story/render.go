package story

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/games/playfield"
	"github.com/vovakirdan/playroom/internal/puzzle"
	"github.com/vovakirdan/playroom/internal/puzzle/ordering"
)

const helpLine = "mouse drag  ←/→ select  enter pick/drop  c check  r restart  p pause"

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		playfield.DrawTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderSlots(dst)
	g.renderCheckButton(dst)
	g.renderCards(dst)
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	detail := fmt.Sprintf("%s  Placed %d/%d", g.board.Theme(), g.board.AssignedCount(), g.board.RequiredCount())
	playfield.DrawHUD(dst, g.Title(), g.board.Level(), g.runner.Progression().Max(), detail)
}

func (g *Game) renderSlots(dst *core.Screen) {
	for _, s := range g.board.Slots() {
		r := g.slotBox(s)
		color := core.ColorGray
		if g.held != 0 && g.keyboard && s.Index == g.aim {
			color = core.ColorBrightYellow
		}
		dst.DrawBoxColored(r, color)
		dst.DrawTextColored(r.X+r.W/2, r.Bottom(), strconv.Itoa(s.Index+1), color)
	}
}

func (g *Game) renderCheckButton(dst *core.Screen) {
	if !g.board.CanCommit() {
		return
	}
	r := g.checkButton()
	dst.DrawRect(r, ' ')
	dst.DrawBoxColored(r, core.ColorBrightGreen)
	playfield.DrawLabel(dst, r, "✓ check", core.ColorBrightGreen)
}

// renderCards draws the loose and slotted cards, then the held one on top.
func (g *Game) renderCards(dst *core.Screen) {
	selected := g.selected()
	for _, c := range g.board.Cards() {
		if c.ID == g.held {
			continue
		}
		border := core.ColorWhite
		switch {
		case g.board.Solved():
			border = core.ColorBrightGreen
		case c.Rejected:
			border = core.ColorBrightRed
		case g.held == 0 && c.ID == selected:
			border = core.ColorBrightYellow
		}
		g.drawCard(dst, c, border)
	}
	if c, ok := g.board.Card(g.held); ok && g.held != 0 {
		g.drawCard(dst, c, core.ColorBrightCyan)
	}
}

func (g *Game) drawCard(dst *core.Screen, c ordering.Card, border core.Color) {
	r := g.cardBox(c)
	dst.DrawRect(r, ' ')
	dst.DrawBoxColored(r, border)
	// Accent stripe along the top edge
	for x := r.X + 1; x < r.Right()-1; x++ {
		dst.SetColored(x, r.Y+1, '▀', core.RGB(uint32(c.Color)))
	}
	dst.DrawTextColored(r.X+1, r.Bottom()-2, playfield.Fit(c.Label, r.W-2), core.ColorBrightWhite)
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
			"This story could not be loaded",
			g.runner.Err().Error(),
			"B for menu")
	case g.runner.Complete():
		playfield.DrawBanner(dst, core.ColorBrightGreen,
			"The end!",
			fmt.Sprintf("All %d stories told", g.runner.Progression().Max()),
			"R to play again  B for menu")
	case g.runner.Transitioning():
		playfield.DrawBanner(dst, core.ColorBrightGreen,
			fmt.Sprintf("Story %d complete!", g.lastCleared),
			"Here comes the next one")
	case g.paused:
		playfield.DrawBanner(dst, core.ColorYellow, "PAUSED", "P to resume")
	}
}

func (g *Game) slotBox(s ordering.Slot) core.Rect {
	n := len(g.board.Slots())
	w := ordering.SlotGeometry(n).Width
	return g.box(s.Position, w, slotHeight(n))
}

func (g *Game) cardBox(c ordering.Card) core.Rect {
	w := ordering.CardGeometry(len(g.board.Cards())).Width
	return g.box(c.Position, w, w*1.25)
}

func (g *Game) checkButton() core.Rect {
	return g.box(checkButtonPos, checkButtonW, checkButtonH)
}

// box is playfield.Box limited to maxBoxRows so the rows of slots, the check
// button and the cards never overlap on a short terminal.
func (g *Game) box(p puzzle.Point, w, h float64) core.Rect {
	r := playfield.Box(g.view, p, w, h)
	if r.H <= maxBoxRows {
		return r
	}
	cx, cy := r.Center()
	return core.RectAround(cx, cy, r.W, maxBoxRows)
}

// slotHeight is the world height of a slot in a level with n cards.
func slotHeight(n int) float64 {
	switch {
	case n <= 3:
		return 220
	case n == 4:
		return 200
	default:
		return 180
	}
}
