// Package playfield holds the pieces shared by the two puzzle games: the
// level runner that paces a puzzle.Progression over simulation ticks, the
// table viewport, and the HUD drawing.
package playfield

import (
	"github.com/vovakirdan/playroom/internal/puzzle"
)

// Runner drives a Progression on the game tick. A solved board is reported
// with Solve; the next level loads once the transition countdown runs out.
type Runner struct {
	prog       *puzzle.Progression
	transition int
	countdown  int

	// Reported to the platform once per tick through Drain.
	cleared []int
	done    bool

	total int // levels completed since Start
	err   error
}

// NewRunner wraps prog. transitionTicks is the pause on a solved board.
func NewRunner(prog *puzzle.Progression, transitionTicks int) *Runner {
	if transitionTicks < 0 {
		transitionTicks = 0
	}
	return &Runner{
		prog:       prog,
		transition: transitionTicks,
	}
}

// Progression returns the wrapped controller.
func (r *Runner) Progression() *puzzle.Progression {
	return r.prog
}

// Start loads the first level. Out-of-range levels are clamped to the catalog.
func (r *Runner) Start(level int) error {
	level = max(1, min(level, r.prog.Max()))
	r.err = r.prog.Start(level)
	return r.err
}

// Solve records the current level as completed.
func (r *Runner) Solve() error {
	level := r.prog.Current()
	if err := r.prog.LevelSolved(); err != nil {
		return err
	}
	r.cleared = append(r.cleared, level)
	r.total++
	if r.prog.Complete() {
		r.done = true
		return nil
	}
	r.countdown = r.transition
	return nil
}

// Tick counts down a pending transition and loads the next level when it ends.
// A level that failed to load is not retried.
func (r *Runner) Tick() error {
	if r.err != nil {
		return r.err
	}
	if r.prog.Phase() != puzzle.PhaseAdvancing {
		return nil
	}
	if r.countdown > 0 {
		r.countdown--
		if r.countdown > 0 {
			return nil
		}
	}
	r.err = r.prog.Advance()
	return r.err
}

// Transitioning reports whether a solved level is waiting for the next one.
func (r *Runner) Transitioning() bool {
	return r.prog.Phase() == puzzle.PhaseAdvancing
}

// Complete reports whether the final level has been solved.
func (r *Runner) Complete() bool {
	return r.prog.Complete()
}

// Drain returns the levels cleared since the last call and whether the
// session finished in that time, then forgets them.
func (r *Runner) Drain() ([]int, bool) {
	cleared, done := r.cleared, r.done
	r.cleared = nil
	r.done = false
	return cleared, done
}

// Cleared returns the number of levels completed since Start.
func (r *Runner) Cleared() int {
	return r.total
}

// Err returns the last load failure, nil once a level loads again.
func (r *Runner) Err() error {
	return r.err
}
