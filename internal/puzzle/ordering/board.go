package ordering

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/playroom/internal/puzzle"
)

// Card is the logic record of one story card. IDs follow the deal order
// and start at 1; Order is the card's canonical 1-based position.
type Card struct {
	ID       int
	Order    int
	Step     string
	Label    string
	Color    Color
	Position puzzle.Point
	Start    puzzle.Point
	Slot     int  // slot index, -1 when unassigned
	Rejected bool // flagged by the last failed check
}

// Assigned reports whether the card sits in a slot.
func (c Card) Assigned() bool {
	return c.Slot >= 0
}

// Slot is a numbered drop zone. Any card may occupy any free slot.
type Slot struct {
	Index      int // 0-based
	Position   puzzle.Point
	Occupied   bool
	CardOrder  int // 0 when empty
	OccupantID int // 0 when empty
}

// Options tunes a Board.
type Options struct {
	// Rand shuffles the deal. Nil deals cards in canonical order.
	Rand *rand.Rand
	// CooldownTicks is how many Tick calls pass after a failed check before
	// the commit gate opens again. Zero reopens it immediately.
	CooldownTicks int
}

// Board holds the live state of one ordering level attempt.
// It is rebuilt wholesale by Load and is not safe for concurrent use.
type Board struct {
	catalog *Catalog
	opts    Options
	emit    puzzle.Listener

	level     int
	theme     string
	cards     []Card
	slots     []Slot
	committed bool
	cooldown  int
	solved    bool
}

// NewBoard creates an empty board over catalog.
func NewBoard(catalog *Catalog, opts Options, listener puzzle.Listener) *Board {
	return &Board{
		catalog: catalog,
		opts:    opts,
		emit:    listener,
	}
}

// NewProgression returns a controller over every level in the board's catalog.
func NewProgression(b *Board, listener puzzle.Listener) *puzzle.Progression {
	return puzzle.NewProgression(b.catalog.Len(), b, listener)
}

// Load discards the current cards and slots and builds level n.
// An invalid level fails with a ConfigError and leaves the board as it was.
func (b *Board) Load(level int) (puzzle.Layout, error) {
	def, ok := b.catalog.Level(level)
	if !ok {
		return puzzle.Layout{}, fmt.Errorf("%w: catalog has %d levels, asked for %d",
			puzzle.ErrLevelOutOfRange, b.catalog.Len(), level)
	}
	if err := def.Validate(); err != nil {
		return puzzle.Layout{}, err
	}

	n := def.CardCount()

	slots := make([]Slot, n)
	for i, pos := range SlotGeometry(n).Row(n, SlotY) {
		slots[i] = Slot{Index: i, Position: pos}
	}

	deal := make([]int, n)
	for i := range deal {
		deal[i] = i
	}
	if b.opts.Rand != nil {
		b.opts.Rand.Shuffle(n, func(i, j int) {
			deal[i], deal[j] = deal[j], deal[i]
		})
	}

	cards := make([]Card, n)
	for i, pos := range CardGeometry(n).Row(n, CardY) {
		step := deal[i]
		cards[i] = Card{
			ID:       i + 1,
			Order:    step + 1,
			Step:     def.Steps[step],
			Label:    def.Labels[step],
			Color:    def.AccentColors[step],
			Position: pos,
			Start:    pos,
			Slot:     -1,
		}
	}

	b.level = level
	b.theme = def.Theme
	b.cards = cards
	b.slots = slots
	b.committed = false
	b.cooldown = 0
	b.solved = false

	return b.layout(), nil
}

func (b *Board) layout() puzzle.Layout {
	l := puzzle.Layout{
		Pieces:  make([]puzzle.Marker, len(b.cards)),
		Targets: make([]puzzle.Marker, len(b.slots)),
	}
	for i, c := range b.cards {
		l.Pieces[i] = puzzle.Marker{ID: c.ID, Key: c.Step, Position: c.Position}
	}
	for i, s := range b.slots {
		l.Targets[i] = puzzle.Marker{ID: s.Index + 1, Key: fmt.Sprint(s.Index + 1), Position: s.Position}
	}
	return l
}

// Level returns the loaded level number (0 before the first Load).
func (b *Board) Level() int {
	return b.level
}

// Theme returns the story name of the loaded level.
func (b *Board) Theme() string {
	return b.theme
}

// Cards returns a copy of the cards in deal order.
func (b *Board) Cards() []Card {
	return append([]Card(nil), b.cards...)
}

// Slots returns a copy of the slots in index order.
func (b *Board) Slots() []Slot {
	return append([]Slot(nil), b.slots...)
}

// Card returns the card with the given ID.
func (b *Board) Card(id int) (Card, bool) {
	c := b.card(id)
	if c == nil {
		return Card{}, false
	}
	return *c, true
}

// CardByOrder returns the card whose canonical position is order.
func (b *Board) CardByOrder(order int) (Card, bool) {
	for _, c := range b.cards {
		if c.Order == order {
			return c, true
		}
	}
	return Card{}, false
}

// AssignedCount returns how many slots are occupied.
func (b *Board) AssignedCount() int {
	n := 0
	for _, s := range b.slots {
		if s.Occupied {
			n++
		}
	}
	return n
}

// RequiredCount returns the number of slots to fill.
func (b *Board) RequiredCount() int {
	return len(b.slots)
}

// Full reports whether every slot is occupied.
func (b *Board) Full() bool {
	return len(b.slots) > 0 && b.AssignedCount() == len(b.slots)
}

// Committed reports whether a check is in effect, either accepted or cooling down.
func (b *Board) Committed() bool {
	return b.committed
}

// CoolingDown reports whether a rejected check is still holding the commit gate.
func (b *Board) CoolingDown() bool {
	return b.committed && !b.solved
}

// Solved reports whether the arrangement was accepted.
func (b *Board) Solved() bool {
	return b.solved
}

// CanCommit reports whether CheckArrangement may be called now.
func (b *Board) CanCommit() bool {
	return !b.committed && b.Full()
}

// CanMove reports whether the card exists and may be dragged.
func (b *Board) CanMove(id int) bool {
	return !b.solved && b.card(id) != nil
}

// PickUp starts a drag. If the card is in a slot, the slot is freed at once.
func (b *Board) PickUp(id int) error {
	c, err := b.movable(id)
	if err != nil {
		return err
	}
	b.release(c)
	c.Rejected = false
	return nil
}

// Drag moves a card while the player is holding it.
func (b *Board) Drag(id int, pos puzzle.Point) {
	if c := b.card(id); c != nil && !b.solved {
		c.Position = pos
	}
}

// AttemptPlacement resolves a drop of card id at pos. The first free slot in
// index order within puzzle.SlotSnapDistance takes the card, whatever its
// order; with no such slot the card returns to its start position.
// A card still sitting in a slot is picked up first.
func (b *Board) AttemptPlacement(id int, pos puzzle.Point) (puzzle.Outcome, error) {
	c, err := b.movable(id)
	if err != nil {
		return puzzle.OutcomeReverted, err
	}
	b.release(c)
	c.Rejected = false

	for i := range b.slots {
		s := &b.slots[i]
		if s.Occupied {
			continue
		}
		if !puzzle.Within(pos, s.Position, puzzle.SlotSnapDistance) {
			continue
		}
		s.Occupied = true
		s.CardOrder = c.Order
		s.OccupantID = c.ID
		c.Slot = s.Index
		c.Position = s.Position
		b.emit.Emit(puzzle.SlotAssigned{Slot: s.Index, PieceID: c.ID})
		return puzzle.OutcomeAssigned, nil
	}

	c.Position = c.Start
	b.emit.Emit(puzzle.PieceReverted{PieceID: c.ID, Position: c.Position})
	return puzzle.OutcomeReverted, nil
}

// CheckArrangement judges a full arrangement: it is correct iff slot i holds
// the card with order i+1. A rejected arrangement keeps its assignments and
// flags the placed cards; the commit gate reopens after the cooldown.
// Calling it when CanCommit is false returns ErrInvalidOperation.
func (b *Board) CheckArrangement() (bool, error) {
	if b.committed {
		return false, fmt.Errorf("%w: arrangement already committed", puzzle.ErrInvalidOperation)
	}
	if !b.Full() {
		return false, fmt.Errorf("%w: %d of %d slots filled",
			puzzle.ErrInvalidOperation, b.AssignedCount(), len(b.slots))
	}

	b.committed = true

	if b.inOrder() {
		b.solved = true
		b.emit.Emit(puzzle.ArrangementAccepted{})
		return true, nil
	}

	var rejected []int
	for i := range b.cards {
		if b.cards[i].Assigned() {
			b.cards[i].Rejected = true
			rejected = append(rejected, b.cards[i].ID)
		}
	}
	b.emit.Emit(puzzle.ArrangementRejected{Rejected: rejected})

	b.cooldown = b.opts.CooldownTicks
	if b.cooldown <= 0 {
		b.ReleaseCommit()
	}
	return false, nil
}

// Tick advances the rejection cooldown by one step.
func (b *Board) Tick() {
	if !b.CoolingDown() || b.cooldown <= 0 {
		return
	}
	b.cooldown--
	if b.cooldown == 0 {
		b.ReleaseCommit()
	}
}

// ReleaseCommit ends a rejection cooldown early. It does nothing once the
// arrangement has been accepted.
func (b *Board) ReleaseCommit() {
	if !b.CoolingDown() {
		return
	}
	b.committed = false
	b.cooldown = 0
	for i := range b.cards {
		b.cards[i].Rejected = false
	}
}

func (b *Board) inOrder() bool {
	for i, s := range b.slots {
		if s.CardOrder != i+1 {
			return false
		}
	}
	return true
}

// movable returns the card if it exists and the level is still open.
func (b *Board) movable(id int) (*Card, error) {
	c := b.card(id)
	if c == nil {
		return nil, fmt.Errorf("%w: no card %d", puzzle.ErrInvalidOperation, id)
	}
	if b.solved {
		return nil, fmt.Errorf("%w: level %d already solved", puzzle.ErrInvalidOperation, b.level)
	}
	return c, nil
}

// release frees the slot a card occupies, if any.
func (b *Board) release(c *Card) {
	if !c.Assigned() {
		return
	}
	s := &b.slots[c.Slot]
	s.Occupied = false
	s.CardOrder = 0
	s.OccupantID = 0
	c.Slot = -1
	b.emit.Emit(puzzle.SlotCleared{Slot: s.Index})
}

func (b *Board) card(id int) *Card {
	if id < 1 || id > len(b.cards) {
		return nil
	}
	return &b.cards[id-1]
}
