package puzzle

// Event is a notification sent from a board or the progression controller
// to the presentation layer.
type Event interface {
	puzzleEvent()
}

// Outcome is the result of a single placement attempt.
type Outcome int

const (
	// OutcomeReverted means the piece went back to its start position.
	OutcomeReverted Outcome = iota
	// OutcomeSettled means a matching piece locked onto its target.
	OutcomeSettled
	// OutcomeAssigned means an ordering card was dropped into a slot.
	OutcomeAssigned
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeReverted:
		return "reverted"
	case OutcomeSettled:
		return "settled"
	case OutcomeAssigned:
		return "assigned"
	default:
		return "unknown"
	}
}

// PieceSettled is sent when a matching piece locks onto its target.
type PieceSettled struct {
	PieceID  int
	Position Point
}

func (PieceSettled) puzzleEvent() {}

// PieceReverted is sent when a drop is rejected and the piece returns home.
type PieceReverted struct {
	PieceID  int
	Position Point
}

func (PieceReverted) puzzleEvent() {}

// SlotAssigned is sent when an ordering card is dropped into a slot.
type SlotAssigned struct {
	Slot    int // 0-based slot index
	PieceID int
}

func (SlotAssigned) puzzleEvent() {}

// SlotCleared is sent when an assigned card is picked up again.
type SlotCleared struct {
	Slot int
}

func (SlotCleared) puzzleEvent() {}

// ArrangementAccepted is sent when a committed arrangement is in canonical order.
type ArrangementAccepted struct{}

func (ArrangementAccepted) puzzleEvent() {}

// ArrangementRejected is sent when a committed arrangement is out of order.
// It is a normal game outcome, not an error.
type ArrangementRejected struct {
	Rejected []int // IDs of the cards flagged for feedback
}

func (ArrangementRejected) puzzleEvent() {}

// LevelCompleted is sent once per solved level.
type LevelCompleted struct {
	Level int
}

func (LevelCompleted) puzzleEvent() {}

// SessionCompleted is sent exactly once, after the last level is solved.
type SessionCompleted struct{}

func (SessionCompleted) puzzleEvent() {}

// LevelLoaded is sent after a level has been built into a fresh board.
type LevelLoaded struct {
	Level  int
	Layout Layout
}

func (LevelLoaded) puzzleEvent() {}

// Layout lists what a freshly loaded level contains.
type Layout struct {
	Pieces  []Marker
	Targets []Marker // matching targets or ordering slots
}

// Marker identifies one piece, target or slot by its stable ID.
type Marker struct {
	ID       int
	Key      string // identity, step token or slot number
	Position Point
}

// Listener receives events. A nil Listener drops them.
type Listener func(Event)

// Emit delivers e to the listener if there is one.
func (l Listener) Emit(e Event) {
	if l != nil {
		l(e)
	}
}

// Fanout returns a Listener that forwards every event to each non-nil listener.
func Fanout(listeners ...Listener) Listener {
	return func(e Event) {
		for _, l := range listeners {
			l.Emit(e)
		}
	}
}

// Recorder keeps every event it receives, in order.
type Recorder struct {
	Events []Event
}

// Listen appends e. Pass r.Listen as a Listener.
func (r *Recorder) Listen(e Event) {
	r.Events = append(r.Events, e)
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Last returns the most recent event, or nil.
func (r *Recorder) Last() Event {
	if len(r.Events) == 0 {
		return nil
	}
	return r.Events[len(r.Events)-1]
}

// Count returns how many events of type T are in events.
func Count[T Event](events []Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}
