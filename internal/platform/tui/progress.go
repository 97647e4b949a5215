package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/storage"
)

// Tracker records one play-through in the progress store.
// Every write is best-effort: a store error is logged and play continues.
type Tracker struct {
	store     *storage.Store
	logger    *log.Logger
	gameID    string
	player    string
	sessionID string
	finished  bool
}

// NewTracker creates a tracker for a game. store and logger may be nil.
func NewTracker(store *storage.Store, logger *log.Logger, gameID, player string) *Tracker {
	return &Tracker{
		store:  store,
		logger: logger,
		gameID: gameID,
		player: player,
	}
}

// Begin opens a new session starting at level.
func (t *Tracker) Begin(level int) {
	t.sessionID = ""
	t.finished = false
	if t.store == nil {
		return
	}
	id, err := t.store.StartSession(t.gameID, t.player, level)
	if err != nil {
		t.warn("cannot start session", err)
		return
	}
	t.sessionID = id
}

// Record stores the outcome of one tick.
func (t *Tracker) Record(result core.StepResult) {
	if t.store == nil || t.sessionID == "" {
		return
	}
	for _, level := range result.LevelsCleared {
		if err := t.store.RecordLevel(t.sessionID, t.gameID, level); err != nil {
			t.warn("cannot record level", err)
		}
	}
	if result.SessionDone && !t.finished {
		t.finished = true
		if err := t.store.CompleteSession(t.sessionID); err != nil {
			t.warn("cannot complete session", err)
		}
	}
}

// SessionID returns the current session, or "" when nothing is stored.
func (t *Tracker) SessionID() string {
	return t.sessionID
}

func (t *Tracker) warn(msg string, err error) {
	if t.logger != nil {
		t.logger.Warn(msg, "game", t.gameID, "session", t.sessionID, "err", err)
	}
}
