package puzzle

import "fmt"

// Phase is the state of a Progression.
type Phase int

const (
	PhaseIdle      Phase = iota // nothing loaded yet
	PhaseLoading                // a level is being built
	PhasePlaying                // the current level is live
	PhaseAdvancing              // solved, waiting for Advance to load the next level
	PhaseComplete               // last level solved; terminal
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhaseAdvancing:
		return "advancing"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// LevelLoader builds level n into a fresh board, discarding whatever the
// board held before, and reports whether the live level is solved.
// Both matching.Board and ordering.Board implement it.
type LevelLoader interface {
	Load(level int) (Layout, error)
	Solved() bool
}

// Progression walks a session through levels 1..max.
// The current level only ever moves forward, by one per solved level.
// A Progression is not safe for concurrent use.
type Progression struct {
	max     int
	current int
	phase   Phase
	loader  LevelLoader
	emit    Listener
}

// NewProgression creates a controller over levels 1..maxLevel.
// maxLevel is normally the catalog length; it never exceeds MaxLevel.
func NewProgression(maxLevel int, loader LevelLoader, listener Listener) *Progression {
	if maxLevel < 1 || maxLevel > MaxLevel {
		maxLevel = MaxLevel
	}
	return &Progression{
		max:    maxLevel,
		loader: loader,
		emit:   listener,
	}
}

// Current returns the current level (0 before Start).
func (p *Progression) Current() int {
	return p.current
}

// Max returns the last level number.
func (p *Progression) Max() int {
	return p.max
}

// Phase returns the controller state.
func (p *Progression) Phase() Phase {
	return p.phase
}

// Complete reports whether the last level has been solved.
func (p *Progression) Complete() bool {
	return p.phase == PhaseComplete
}

// Start loads the first level of the session, which need not be level 1.
func (p *Progression) Start(level int) error {
	if p.phase != PhaseIdle {
		return fmt.Errorf("%w: session already started at level %d", ErrInvalidOperation, p.current)
	}
	return p.LoadLevel(level)
}

// LoadLevel builds level n. After Start it only accepts the current level,
// which makes it a reload (or, while advancing, the pending next level).
func (p *Progression) LoadLevel(level int) error {
	if level < 1 || level > p.max {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrLevelOutOfRange, level, p.max)
	}
	if p.phase == PhaseComplete {
		return ErrSessionComplete
	}
	if p.phase != PhaseIdle && level != p.current {
		return fmt.Errorf("%w: cannot move from level %d to %d", ErrInvalidOperation, p.current, level)
	}
	return p.load(level)
}

// Reload rebuilds the current level from scratch.
func (p *Progression) Reload() error {
	if p.phase != PhasePlaying {
		return fmt.Errorf("%w: reload while %s", ErrInvalidOperation, p.phase)
	}
	return p.load(p.current)
}

// LevelSolved records that the live level is solved. It emits LevelCompleted,
// then either moves to the next level (PhaseAdvancing) or, after the last
// level, emits SessionCompleted and becomes terminal.
// The board must report itself solved; otherwise nothing changes.
func (p *Progression) LevelSolved() error {
	if p.phase != PhasePlaying {
		return fmt.Errorf("%w: level solved while %s", ErrInvalidOperation, p.phase)
	}
	if !p.loader.Solved() {
		return fmt.Errorf("%w: level %d not solved", ErrInvalidOperation, p.current)
	}

	p.emit.Emit(LevelCompleted{Level: p.current})

	if p.current < p.max {
		p.current++
		p.phase = PhaseAdvancing
		return nil
	}

	p.phase = PhaseComplete
	p.emit.Emit(SessionCompleted{})
	return nil
}

// Advance loads the level that LevelSolved moved to. The presentation layer
// calls it once its transition has finished.
func (p *Progression) Advance() error {
	if p.phase != PhaseAdvancing {
		return fmt.Errorf("%w: advance while %s", ErrInvalidOperation, p.phase)
	}
	return p.load(p.current)
}

// load builds the level and restores the previous phase if that fails.
func (p *Progression) load(level int) error {
	prev := p.phase
	p.phase = PhaseLoading

	layout, err := p.loader.Load(level)
	if err != nil {
		p.phase = prev
		return fmt.Errorf("loading level %d: %w", level, err)
	}

	p.current = level
	p.phase = PhasePlaying
	p.emit.Emit(LevelLoaded{Level: level, Layout: layout})
	return nil
}
