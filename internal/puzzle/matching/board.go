package matching

import (
	"fmt"

	"github.com/vovakirdan/playroom/internal/puzzle"
)

// Piece is the logic record of a draggable piece. IDs start at 1.
type Piece struct {
	ID       int
	Identity string
	Position puzzle.Point
	Start    puzzle.Point
	Settled  bool

	target int // index into Board.targets
}

// Target is a fixed drop zone. Distractor targets never accept a piece.
type Target struct {
	ID         int
	Identity   string
	Position   puzzle.Point
	Distractor bool
	Occupied   bool
	OccupantID int // 0 when empty
}

// Board holds the live state of one matching level attempt.
// It is rebuilt wholesale by Load and is not safe for concurrent use.
type Board struct {
	catalog  *Catalog
	emit     puzzle.Listener
	level    int
	pieces   []Piece
	targets  []Target
	settled  int
	required int
}

// NewBoard creates an empty board over catalog. Call Load (usually through
// puzzle.Progression) before placing pieces.
func NewBoard(catalog *Catalog, listener puzzle.Listener) *Board {
	return &Board{
		catalog: catalog,
		emit:    listener,
	}
}

// NewProgression returns a controller over every level in the board's catalog.
func NewProgression(b *Board, listener puzzle.Listener) *puzzle.Progression {
	return puzzle.NewProgression(b.catalog.Len(), b, listener)
}

// Load discards the current pieces and targets and builds level n.
// A level that breaks a catalog invariant fails here with a ConfigError and
// leaves the previous state untouched.
func (b *Board) Load(level int) (puzzle.Layout, error) {
	def, ok := b.catalog.Level(level)
	if !ok {
		return puzzle.Layout{}, fmt.Errorf("%w: catalog has %d levels, asked for %d",
			puzzle.ErrLevelOutOfRange, b.catalog.Len(), level)
	}
	if err := def.Validate(); err != nil {
		return puzzle.Layout{}, err
	}

	pieces := make([]Piece, len(def.Pieces))
	targets := make([]Target, 0, len(def.Pieces)+len(def.Distractors))

	for i, spec := range def.Pieces {
		targets = append(targets, Target{
			ID:       len(targets) + 1,
			Identity: spec.Identity,
			Position: spec.Target,
		})
		pieces[i] = Piece{
			ID:       i + 1,
			Identity: spec.Identity,
			Position: spec.Start,
			Start:    spec.Start,
			target:   len(targets) - 1,
		}
	}
	for _, spec := range def.Distractors {
		targets = append(targets, Target{
			ID:         len(targets) + 1,
			Identity:   spec.Identity,
			Position:   spec.Position,
			Distractor: true,
		})
	}

	b.level = level
	b.pieces = pieces
	b.targets = targets
	b.settled = 0
	b.required = def.ItemCount

	return b.layout(), nil
}

// layout describes the current board for a LevelLoaded event.
func (b *Board) layout() puzzle.Layout {
	l := puzzle.Layout{
		Pieces:  make([]puzzle.Marker, len(b.pieces)),
		Targets: make([]puzzle.Marker, len(b.targets)),
	}
	for i, p := range b.pieces {
		l.Pieces[i] = puzzle.Marker{ID: p.ID, Key: p.Identity, Position: p.Position}
	}
	for i, t := range b.targets {
		l.Targets[i] = puzzle.Marker{ID: t.ID, Key: t.Identity, Position: t.Position}
	}
	return l
}

// Level returns the loaded level number (0 before the first Load).
func (b *Board) Level() int {
	return b.level
}

// Pieces returns a copy of the pieces in ID order.
func (b *Board) Pieces() []Piece {
	return append([]Piece(nil), b.pieces...)
}

// Targets returns a copy of the targets; piece targets come first, then decoys.
func (b *Board) Targets() []Target {
	return append([]Target(nil), b.targets...)
}

// Piece returns the piece with the given ID.
func (b *Board) Piece(id int) (Piece, bool) {
	p := b.piece(id)
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// TargetOf returns the target that the piece must be dropped on.
func (b *Board) TargetOf(id int) (Target, bool) {
	p := b.piece(id)
	if p == nil {
		return Target{}, false
	}
	return b.targets[p.target], true
}

// SettledCount returns how many pieces have settled.
func (b *Board) SettledCount() int {
	return b.settled
}

// RequiredCount returns how many pieces must settle to solve the level.
func (b *Board) RequiredCount() int {
	return b.required
}

// Solved reports whether every piece has settled.
func (b *Board) Solved() bool {
	return b.required > 0 && b.settled == b.required
}

// CanMove reports whether the piece exists and can still be dragged.
func (b *Board) CanMove(id int) bool {
	p := b.piece(id)
	return p != nil && !p.Settled
}

// Drag moves an unsettled piece while the player is holding it.
// Settled pieces do not move.
func (b *Board) Drag(id int, pos puzzle.Point) {
	if p := b.piece(id); p != nil && !p.Settled {
		p.Position = pos
	}
}

// AttemptPlacement resolves a drop of piece id at pos. Within SnapDistance of
// its own target the piece settles there for good; otherwise it returns to its
// start position. Exactly one of the two happens.
func (b *Board) AttemptPlacement(id int, pos puzzle.Point) (puzzle.Outcome, error) {
	p := b.piece(id)
	if p == nil {
		return puzzle.OutcomeReverted, fmt.Errorf("%w: no piece %d", puzzle.ErrInvalidOperation, id)
	}
	if p.Settled {
		return puzzle.OutcomeSettled, fmt.Errorf("%w: piece %d already settled", puzzle.ErrInvalidOperation, id)
	}

	target := &b.targets[p.target]
	if puzzle.Within(pos, target.Position, puzzle.SnapDistance) {
		p.Position = target.Position
		p.Settled = true
		target.Occupied = true
		target.OccupantID = p.ID
		b.settled++
		b.emit.Emit(puzzle.PieceSettled{PieceID: p.ID, Position: p.Position})
		return puzzle.OutcomeSettled, nil
	}

	p.Position = p.Start
	b.emit.Emit(puzzle.PieceReverted{PieceID: p.ID, Position: p.Position})
	return puzzle.OutcomeReverted, nil
}

// piece returns a pointer to the piece with the given ID, or nil.
func (b *Board) piece(id int) *Piece {
	if id < 1 || id > len(b.pieces) {
		return nil
	}
	return &b.pieces[id-1]
}
