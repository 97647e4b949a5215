// Package shadow implements the shadow matching game: drag each animal onto
// the shadow that has its shape. Wrong drops bounce back, right drops stick.
package shadow

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/games/playfield"
	"github.com/vovakirdan/playroom/internal/puzzle"
	"github.com/vovakirdan/playroom/internal/puzzle/matching"
	"github.com/vovakirdan/playroom/internal/registry"
)

// ID is the registry name of the game.
const ID = "shadow"

// World sizes of the drawn items.
const (
	pieceSize  = 120.0
	shadowSize = 130.0
)

// Game implements the shadow matching game.
type Game struct {
	tick   uint64
	board  *matching.Board
	runner *playfield.Runner
	view   core.Viewport

	// Screen dimensions
	screenW int
	screenH int

	held     int  // piece being carried, 0 if none
	keyboard bool // held piece was picked up with the keyboard
	cursor   int  // index into the movable pieces
	aim      int  // target index the keyboard-held piece hovers over

	status      string
	statusColor core.Color
	lastCleared int

	paused   bool
	tooSmall bool
}

// Package-level variables for config
var (
	settings      = config.DefaultPlayroomConfig()
	customCatalog *matching.Catalog
	logger        = playfield.Discard
)

// SetConfig sets the playroom config used by new games.
func SetConfig(cfg config.PlayroomConfig) {
	settings = cfg
}

// SetCatalog replaces the generated levels with a fixed catalog.
// nil restores the generated catalog.
func SetCatalog(c *matching.Catalog) {
	customCatalog = c
}

// SetLogger sets where board events are logged.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = playfield.Discard
	}
	logger = l
}

// New creates a new shadow game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Shadow Match"
}

// Reset starts a new session at cfg.StartLevel.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.held = 0
	g.keyboard = false
	g.cursor = 0
	g.aim = 0
	g.lastCleared = 0
	g.paused = false
	g.setStatus("", core.ColorDefault)

	catalog := customCatalog
	if catalog == nil {
		seed := settings.Shadow.Seed
		if seed == 0 {
			seed = cfg.Seed
		}
		catalog = matching.DefaultCatalog(seed)
	}

	listener := puzzle.Fanout(g.onEvent, playfield.LogEvents(logger, ID))
	g.board = matching.NewBoard(catalog, listener)
	g.runner = playfield.NewRunner(matching.NewProgression(g.board, listener), settings.Timings().TransitionTicks)

	if err := g.runner.Start(cfg.StartLevel); err != nil {
		logger.Error("cannot start shadow session", "level", cfg.StartLevel, "err", err)
	}

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the table to a new terminal size.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.view = playfield.Table(width, height)
	g.tooSmall = playfield.TooSmall(width, height)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle window size check
	if g.tooSmall {
		return g.result()
	}

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	if err := g.runner.Tick(); err != nil {
		return g.result()
	}

	if g.runner.Progression().Phase() != puzzle.PhasePlaying {
		return g.result()
	}

	if in.Has(core.ActionRestart) {
		g.restartLevel()
		return g.result()
	}

	for _, ev := range in.Pointer {
		g.handlePointer(ev)
	}
	g.handleKeys(in)

	if g.board.Solved() {
		g.held = 0
		if err := g.runner.Solve(); err != nil {
			logger.Error("cannot complete level", "level", g.board.Level(), "err", err)
		}
	}

	return g.result()
}

// restartLevel rebuilds the current level from scratch.
func (g *Game) restartLevel() {
	g.held = 0
	g.keyboard = false
	g.cursor = 0
	if err := g.runner.Progression().Reload(); err != nil {
		logger.Error("cannot reload level", "err", err)
	}
}

func (g *Game) handlePointer(ev core.PointerEvent) {
	switch ev.Kind {
	case core.PointerPress:
		if g.held != 0 {
			return
		}
		if id := g.pieceAt(ev.X, ev.Y); id != 0 {
			g.held = id
			g.keyboard = false
			g.board.Drag(id, playfield.PointAt(g.view, ev.X, ev.Y))
		}
	case core.PointerMove:
		if g.held != 0 && !g.keyboard {
			g.board.Drag(g.held, playfield.PointAt(g.view, ev.X, ev.Y))
		}
	case core.PointerRelease:
		if g.held != 0 && !g.keyboard {
			g.drop(playfield.PointAt(g.view, ev.X, ev.Y))
		}
	}
}

func (g *Game) handleKeys(in core.InputFrame) {
	if g.held != 0 && g.keyboard {
		targets := g.board.Targets()
		switch {
		case in.Has(core.ActionBack):
			p, _ := g.board.Piece(g.held)
			g.board.Drag(g.held, p.Start)
			g.held = 0
			g.keyboard = false
			return
		case in.Has(core.ActionDown), in.Has(core.ActionRight):
			g.aim = (g.aim + 1) % len(targets)
		case in.Has(core.ActionUp), in.Has(core.ActionLeft):
			g.aim = (g.aim + len(targets) - 1) % len(targets)
		}
		g.board.Drag(g.held, targets[g.aim].Position)
		if in.Has(core.ActionConfirm) {
			g.drop(targets[g.aim].Position)
		}
		return
	}

	if g.held != 0 {
		return
	}

	movable := g.movable()
	if len(movable) == 0 {
		return
	}
	g.cursor = core.Clamp(g.cursor, 0, len(movable)-1)

	switch {
	case in.Has(core.ActionRight), in.Has(core.ActionDown):
		g.cursor = (g.cursor + 1) % len(movable)
	case in.Has(core.ActionLeft), in.Has(core.ActionUp):
		g.cursor = (g.cursor + len(movable) - 1) % len(movable)
	case in.Has(core.ActionConfirm):
		g.held = movable[g.cursor]
		g.keyboard = true
		g.aim = 0
		g.board.Drag(g.held, g.board.Targets()[g.aim].Position)
	}
}

// drop releases the held piece at pos.
func (g *Game) drop(pos puzzle.Point) {
	id := g.held
	g.held = 0
	g.keyboard = false
	if _, err := g.board.AttemptPlacement(id, pos); err != nil {
		logger.Warn("drop ignored", "piece", id, "err", err)
	}
}

// movable returns the IDs of the pieces that have not settled.
func (g *Game) movable() []int {
	var ids []int
	for _, p := range g.board.Pieces() {
		if !p.Settled {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// pieceAt returns the topmost unsettled piece under a cell, or 0.
func (g *Game) pieceAt(x, y int) int {
	pieces := g.board.Pieces()
	for i := len(pieces) - 1; i >= 0; i-- {
		p := pieces[i]
		if p.Settled {
			continue
		}
		if playfield.Box(g.view, p.Position, pieceSize, pieceSize).Contains(x, y) {
			return p.ID
		}
	}
	return 0
}

// selected returns the piece under the keyboard cursor, or 0.
func (g *Game) selected() int {
	movable := g.movable()
	if len(movable) == 0 {
		return 0
	}
	return movable[core.Clamp(g.cursor, 0, len(movable)-1)]
}

func (g *Game) onEvent(e puzzle.Event) {
	switch ev := e.(type) {
	case puzzle.LevelLoaded:
		g.cursor = 0
		g.setStatus("Drag each animal onto its shadow", core.ColorDefault)
	case puzzle.PieceSettled:
		p, _ := g.board.Piece(ev.PieceID)
		g.setStatus(fmt.Sprintf("The %s found its shadow!", p.Identity), core.ColorBrightGreen)
	case puzzle.PieceReverted:
		g.setStatus("Not that one, try another shadow", core.ColorYellow)
	case puzzle.LevelCompleted:
		g.lastCleared = ev.Level
	}
}

func (g *Game) setStatus(msg string, c core.Color) {
	g.status = msg
	g.statusColor = c
}

func (g *Game) result() core.StepResult {
	cleared, done := g.runner.Drain()
	return core.StepResult{
		State:         g.State(),
		LevelsCleared: cleared,
		SessionDone:   done,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Level:    g.board.Level(),
		MaxLevel: g.runner.Progression().Max(),
		Cleared:  g.runner.Cleared(),
		Complete: g.runner.Complete(),
		Failed:   g.runner.Err() != nil,
		Paused:   g.paused || g.tooSmall,
	}
}
