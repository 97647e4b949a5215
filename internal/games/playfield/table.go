package playfield

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/puzzle"
)

// The puzzle table is a fixed world; both boards use the same units.
const (
	WorldW = 1280.0
	WorldH = 720.0
)

// Minimum terminal size for a readable table.
const (
	MinScreenW = 60
	MinScreenH = 20
)

// TooSmall reports whether a w x h screen cannot show the table.
func TooSmall(w, h int) bool {
	return w < MinScreenW || h < MinScreenH
}

// Table returns the viewport for a w x h screen: every row except the HUD
// line at the top and the help line at the bottom.
func Table(w, h int) core.Viewport {
	return core.Viewport{
		WorldW: WorldW,
		WorldH: WorldH,
		Area:   core.NewRect(0, 1, w, max(2, h-2)),
	}
}

// Box returns the cell rectangle of a world-sized item centred at p.
// Boxes are at least 3x3 so a border and one row of text fit.
func Box(v core.Viewport, p puzzle.Point, w, h float64) core.Rect {
	cx, cy := v.ToCell(p.X, p.Y)
	return core.RectAround(cx, cy, max(3, v.ScaleX(w)), max(3, v.ScaleY(h)))
}

// PointAt converts a cell to a world point.
func PointAt(v core.Viewport, x, y int) puzzle.Point {
	wx, wy := v.ToWorld(x, y)
	return puzzle.Pt(wx, wy)
}

// Fit centres text in width cells, cutting it if needed.
func Fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(text)
	if len(r) > width {
		return string(r[:width])
	}
	pad := (width - len(r)) / 2
	return strings.Repeat(" ", pad) + text
}

// DrawLabel writes text centred inside the box, on its middle row.
func DrawLabel(dst *core.Screen, r core.Rect, text string, c core.Color) {
	_, cy := r.Center()
	dst.DrawTextColored(r.X+1, cy, Fit(text, r.W-2), c)
}

// DrawHUD draws the title on the left of the top row and the level counter
// plus detail on the right.
func DrawHUD(dst *core.Screen, title string, level, maxLevel int, detail string) {
	dst.DrawTextColored(1, 0, title, core.ColorBrightCyan)

	info := fmt.Sprintf("Level %d/%d", level, maxLevel)
	if detail != "" {
		info = detail + "  " + info
	}
	infoX := dst.Width() - len([]rune(info)) - 1
	dst.DrawText(infoX, 0, info)

	// Rule between the title and the counter, one blank cell on each side
	ruleX := len([]rune(title)) + 2
	if n := infoX - 1 - ruleX; n > 0 {
		dst.DrawHLine(ruleX, 0, n, '─')
	}
}

// DrawFooter draws the help or status line on the bottom row.
func DrawFooter(dst *core.Screen, text string, c core.Color) {
	dst.DrawTextCenteredColored(dst.Height()-1, text, c)
}

// DrawBanner draws a boxed message over the middle of the screen.
func DrawBanner(dst *core.Screen, c core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	r := core.RectAround(dst.Width()/2, dst.Height()/2, width+4, len(lines)+2)
	dst.DrawRect(r, ' ')
	dst.DrawBoxColored(r, c)
	for i, l := range lines {
		dst.DrawTextColored(r.X+2, r.Y+1+i, Fit(l, width), c)
	}
}

// DrawTooSmall shows the resize hint.
func DrawTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Please resize terminal to %dx%d", MinScreenW, MinScreenH))
}
