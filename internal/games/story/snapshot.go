package story

import "github.com/vovakirdan/playroom/internal/puzzle"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateCarrying     GameStateType = "carrying"
	StateRejected     GameStateType = "rejected"
	StateLevelCleared GameStateType = "level_cleared"
	StateComplete     GameStateType = "complete"
	StateFailed       GameStateType = "failed"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// CardSnapshot is one card as seen by a snapshot.
type CardSnapshot struct {
	ID       int
	Order    int
	Label    string
	Position puzzle.Point
	Slot     int // -1 when on the table
	Rejected bool
}

// Snapshot captures the whole board. Tests inspect it; the UI only reads State.
type Snapshot struct {
	Tick      uint64
	Level     int
	MaxLevel  int
	Theme     string
	Assigned  int
	Required  int
	Held      int // 0 when nothing is carried
	Selected  int // card under the keyboard cursor
	Aim       int // slot index while carrying with the keyboard
	CanCommit bool
	Slots     []int // card order per slot, 0 when empty
	Cards     []CardSnapshot
	Status    string
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.runner.Err() != nil:
		state = StateFailed
	case g.runner.Complete():
		state = StateComplete
	case g.runner.Transitioning():
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	case g.held != 0:
		state = StateCarrying
	case g.board.CoolingDown():
		state = StateRejected
	}

	cards := g.board.Cards()
	slots := g.board.Slots()
	snap := Snapshot{
		Tick:      g.tick,
		Level:     g.board.Level(),
		MaxLevel:  g.runner.Progression().Max(),
		Theme:     g.board.Theme(),
		Assigned:  g.board.AssignedCount(),
		Required:  g.board.RequiredCount(),
		Held:      g.held,
		Selected:  g.selected(),
		Aim:       g.aim,
		CanCommit: g.board.CanCommit(),
		Slots:     make([]int, len(slots)),
		Cards:     make([]CardSnapshot, len(cards)),
		Status:    g.status,
		State:     state,
	}
	for i, s := range slots {
		snap.Slots[i] = s.CardOrder
	}
	for i, c := range cards {
		snap.Cards[i] = CardSnapshot{
			ID:       c.ID,
			Order:    c.Order,
			Label:    c.Label,
			Position: c.Position,
			Slot:     c.Slot,
			Rejected: c.Rejected,
		}
	}
	return snap
}
