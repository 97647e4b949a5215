package shadow

import "github.com/vovakirdan/playroom/internal/puzzle"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateCarrying     GameStateType = "carrying"
	StateLevelCleared GameStateType = "level_cleared"
	StateComplete     GameStateType = "complete"
	StateFailed       GameStateType = "failed"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// PieceSnapshot is one piece as seen by a snapshot.
type PieceSnapshot struct {
	ID       int
	Identity string
	Position puzzle.Point
	Settled  bool
}

// Snapshot captures the whole board. Tests inspect it; the UI only reads State.
type Snapshot struct {
	Tick     uint64
	Level    int
	MaxLevel int
	Settled  int
	Required int
	Held     int // 0 when nothing is carried
	Selected int // piece under the keyboard cursor
	Aim      int // target index while carrying with the keyboard
	Pieces   []PieceSnapshot
	Status   string
	State    GameStateType
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
	}

	pieces := g.board.Pieces()
	snap := Snapshot{
		Tick:     g.tick,
		Level:    g.board.Level(),
		MaxLevel: g.runner.Progression().Max(),
		Settled:  g.board.SettledCount(),
		Required: g.board.RequiredCount(),
		Held:     g.held,
		Selected: g.selected(),
		Aim:      g.aim,
		Pieces:   make([]PieceSnapshot, len(pieces)),
		Status:   g.status,
		State:    state,
	}
	for i, p := range pieces {
		snap.Pieces[i] = PieceSnapshot{
			ID:       p.ID,
			Identity: p.Identity,
			Position: p.Position,
			Settled:  p.Settled,
		}
	}
	return snap
}
