package playfield

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/playroom/internal/puzzle"
)

// Discard is a logger that writes nothing, used until a game is given one.
var Discard = log.New(io.Discard)

// LogEvents returns a listener that writes board and progression events to
// logger. Per-drop events go to debug, level changes to info.
func LogEvents(logger *log.Logger, game string) puzzle.Listener {
	if logger == nil {
		return nil
	}
	l := logger.With("game", game)

	return func(e puzzle.Event) {
		switch ev := e.(type) {
		case puzzle.PieceSettled:
			l.Debug("piece settled", "piece", ev.PieceID, "at", ev.Position)
		case puzzle.PieceReverted:
			l.Debug("piece reverted", "piece", ev.PieceID)
		case puzzle.SlotAssigned:
			l.Debug("slot assigned", "slot", ev.Slot, "card", ev.PieceID)
		case puzzle.SlotCleared:
			l.Debug("slot cleared", "slot", ev.Slot)
		case puzzle.ArrangementAccepted:
			l.Info("arrangement accepted")
		case puzzle.ArrangementRejected:
			l.Info("arrangement rejected", "cards", ev.Rejected)
		case puzzle.LevelLoaded:
			l.Info("level loaded", "level", ev.Level,
				"pieces", len(ev.Layout.Pieces), "targets", len(ev.Layout.Targets))
		case puzzle.LevelCompleted:
			l.Info("level completed", "level", ev.Level)
		case puzzle.SessionCompleted:
			l.Info("session completed")
		}
	}
}
