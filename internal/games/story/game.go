// Package story implements the story ordering game: put the picture cards of
// a little story into the slots in the order it happens, then press check.
package story

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/games/playfield"
	"github.com/vovakirdan/playroom/internal/puzzle"
	"github.com/vovakirdan/playroom/internal/puzzle/ordering"
	"github.com/vovakirdan/playroom/internal/registry"
)

// ID is the registry name of the game.
const ID = "story"

// Check button, in world units.
var (
	checkButtonPos = puzzle.Pt(ordering.WorldWidth/2, 480)
)

const (
	checkButtonW = 160.0
	checkButtonH = 70.0

	maxBoxRows = 5
)

// Game implements the story ordering game.
type Game struct {
	tick   uint64
	board  *ordering.Board
	runner *playfield.Runner
	view   core.Viewport

	// Screen dimensions
	screenW int
	screenH int

	held     int  // card being carried, 0 if none
	keyboard bool // held card was picked up with the keyboard
	cursor   int  // index into the cards
	aim      int  // slot the keyboard-held card hovers over

	status      string
	statusColor core.Color
	lastCleared int

	paused   bool
	tooSmall bool
}

// Package-level variables for config
var (
	settings      = config.DefaultPlayroomConfig()
	customCatalog *ordering.Catalog
	logger        = playfield.Discard
)

// SetConfig sets the playroom config used by new games.
func SetConfig(cfg config.PlayroomConfig) {
	settings = cfg
}

// SetCatalog replaces the built-in stories. nil restores them.
func SetCatalog(c *ordering.Catalog) {
	customCatalog = c
}

// SetLogger sets where board events are logged.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = playfield.Discard
	}
	logger = l
}

// New creates a new story game.
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
	return "Story Order"
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
		catalog = ordering.DefaultCatalog()
	}

	timings := settings.Timings()
	opts := ordering.Options{CooldownTicks: timings.RejectCooldownTicks}
	if settings.Story.Shuffle {
		opts.Rand = rand.New(rand.NewSource(cfg.Seed))
	}

	listener := puzzle.Fanout(g.onEvent, playfield.LogEvents(logger, ID))
	g.board = ordering.NewBoard(catalog, opts, listener)
	g.runner = playfield.NewRunner(ordering.NewProgression(g.board, listener), timings.TransitionTicks)

	if err := g.runner.Start(cfg.StartLevel); err != nil {
		logger.Error("cannot start story session", "level", cfg.StartLevel, "err", err)
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

	g.board.Tick()

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

// restartLevel deals the current level again.
func (g *Game) restartLevel() {
	g.held = 0
	g.keyboard = false
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
		if g.board.CanCommit() && g.checkButton().Contains(ev.X, ev.Y) {
			g.check()
			return
		}
		if id := g.cardAt(ev.X, ev.Y); id != 0 {
			g.pickUp(id, false)
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
		slots := g.board.Slots()
		switch {
		case in.Has(core.ActionBack):
			c, _ := g.board.Card(g.held)
			g.board.Drag(g.held, c.Start)
			g.held = 0
			g.keyboard = false
			return
		case in.Has(core.ActionRight), in.Has(core.ActionDown):
			g.aim = (g.aim + 1) % len(slots)
		case in.Has(core.ActionLeft), in.Has(core.ActionUp):
			g.aim = (g.aim + len(slots) - 1) % len(slots)
		}
		g.board.Drag(g.held, slots[g.aim].Position)
		if in.Has(core.ActionConfirm) {
			g.drop(slots[g.aim].Position)
		}
		return
	}

	if g.held != 0 {
		return
	}

	if in.Has(core.ActionCheck) {
		if g.board.CanCommit() {
			g.check()
		}
		return
	}

	cards := g.board.Cards()
	if len(cards) == 0 {
		return
	}
	g.cursor = core.Clamp(g.cursor, 0, len(cards)-1)

	switch {
	case in.Has(core.ActionRight), in.Has(core.ActionDown):
		g.cursor = (g.cursor + 1) % len(cards)
	case in.Has(core.ActionLeft), in.Has(core.ActionUp):
		g.cursor = (g.cursor + len(cards) - 1) % len(cards)
	case in.Has(core.ActionConfirm):
		id := cards[g.cursor].ID
		g.pickUp(id, true)
		g.board.Drag(id, g.board.Slots()[g.aim].Position)
	}
}

// pickUp takes a card off the table or out of its slot.
func (g *Game) pickUp(id int, keyboard bool) {
	if err := g.board.PickUp(id); err != nil {
		logger.Warn("pick up ignored", "card", id, "err", err)
		return
	}
	g.held = id
	g.keyboard = keyboard
	if keyboard {
		g.aim = g.firstFreeSlot()
	}
}

// drop releases the held card at pos.
func (g *Game) drop(pos puzzle.Point) {
	id := g.held
	g.held = 0
	g.keyboard = false
	if _, err := g.board.AttemptPlacement(id, pos); err != nil {
		logger.Warn("drop ignored", "card", id, "err", err)
	}
}

func (g *Game) check() {
	if _, err := g.board.CheckArrangement(); err != nil {
		logger.Warn("check ignored", "err", err)
	}
}

// firstFreeSlot returns the lowest empty slot, or 0 when all are full.
func (g *Game) firstFreeSlot() int {
	for _, s := range g.board.Slots() {
		if !s.Occupied {
			return s.Index
		}
	}
	return 0
}

// cardAt returns the topmost card under a cell, or 0.
func (g *Game) cardAt(x, y int) int {
	cards := g.board.Cards()
	for i := len(cards) - 1; i >= 0; i-- {
		if g.cardBox(cards[i]).Contains(x, y) {
			return cards[i].ID
		}
	}
	return 0
}

// selected returns the card under the keyboard cursor, or 0.
func (g *Game) selected() int {
	cards := g.board.Cards()
	if len(cards) == 0 {
		return 0
	}
	return cards[core.Clamp(g.cursor, 0, len(cards)-1)].ID
}

func (g *Game) onEvent(e puzzle.Event) {
	switch ev := e.(type) {
	case puzzle.LevelLoaded:
		g.cursor = 0
		g.aim = 0
		g.setStatus("Put the pictures in the order they happen", core.ColorDefault)
	case puzzle.SlotAssigned, puzzle.SlotCleared:
		if g.statusColor == core.ColorYellow {
			g.setStatus("", core.ColorDefault)
		}
	case puzzle.ArrangementRejected:
		g.setStatus("Not quite, look at the story again", core.ColorYellow)
	case puzzle.ArrangementAccepted:
		g.setStatus("That's the story!", core.ColorBrightGreen)
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
