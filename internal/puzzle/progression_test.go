package puzzle

import (
	"errors"
	"testing"
)

// stubLoader records loads and can be told to fail a specific level.
// Its level counts as solved unless unsolved is set.
type stubLoader struct {
	loads    []int
	failAt   int
	unsolved bool
}

func (s *stubLoader) Solved() bool {
	return !s.unsolved
}

func (s *stubLoader) Load(level int) (Layout, error) {
	if level == s.failAt {
		return Layout{}, ConfigErrorf(level, "broken level")
	}
	s.loads = append(s.loads, level)
	return Layout{Pieces: []Marker{{ID: 1, Key: "p"}}}, nil
}

func newTestProgression(max int) (*Progression, *stubLoader, *Recorder) {
	loader := &stubLoader{}
	rec := &Recorder{}
	return NewProgression(max, loader, rec.Listen), loader, rec
}

func TestProgressionStart(t *testing.T) {
	p, loader, rec := newTestProgression(MaxLevel)

	if p.Phase() != PhaseIdle {
		t.Fatalf("new progression phase = %s, expected idle", p.Phase())
	}

	if err := p.Start(1); err != nil {
		t.Fatalf("Start(1) failed: %v", err)
	}

	if p.Current() != 1 {
		t.Errorf("Current() = %d, expected 1", p.Current())
	}
	if p.Phase() != PhasePlaying {
		t.Errorf("Phase() = %s, expected playing", p.Phase())
	}
	if len(loader.loads) != 1 || loader.loads[0] != 1 {
		t.Errorf("loads = %v, expected [1]", loader.loads)
	}

	loaded, ok := rec.Last().(LevelLoaded)
	if !ok {
		t.Fatalf("last event = %T, expected LevelLoaded", rec.Last())
	}
	if loaded.Level != 1 || len(loaded.Layout.Pieces) != 1 {
		t.Errorf("LevelLoaded = %+v", loaded)
	}

	if err := p.Start(1); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("second Start() error = %v, expected ErrInvalidOperation", err)
	}
}

func TestProgressionStartMidCatalog(t *testing.T) {
	p, _, _ := newTestProgression(MaxLevel)

	if err := p.Start(7); err != nil {
		t.Fatalf("Start(7) failed: %v", err)
	}
	if p.Current() != 7 {
		t.Errorf("Current() = %d, expected 7", p.Current())
	}
}

func TestProgressionMonotonic(t *testing.T) {
	p, loader, rec := newTestProgression(MaxLevel)

	if err := p.Start(1); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	prev := p.Current()
	for i := 1; i < MaxLevel; i++ {
		if err := p.LevelSolved(); err != nil {
			t.Fatalf("LevelSolved at level %d failed: %v", prev, err)
		}
		if p.Current() != prev+1 {
			t.Fatalf("Current() = %d after solving %d, expected %d", p.Current(), prev, prev+1)
		}
		if p.Phase() != PhaseAdvancing {
			t.Fatalf("Phase() = %s, expected advancing", p.Phase())
		}
		if err := p.Advance(); err != nil {
			t.Fatalf("Advance to %d failed: %v", p.Current(), err)
		}
		prev = p.Current()
	}

	if p.Current() != MaxLevel {
		t.Fatalf("Current() = %d, expected %d", p.Current(), MaxLevel)
	}
	if err := p.LevelSolved(); err != nil {
		t.Fatalf("final LevelSolved failed: %v", err)
	}

	if !p.Complete() {
		t.Error("progression should be complete")
	}
	if p.Current() != MaxLevel {
		t.Errorf("Current() = %d after completion, expected %d", p.Current(), MaxLevel)
	}
	if got := Count[LevelCompleted](rec.Events); got != MaxLevel {
		t.Errorf("LevelCompleted count = %d, expected %d", got, MaxLevel)
	}
	if got := Count[SessionCompleted](rec.Events); got != 1 {
		t.Errorf("SessionCompleted count = %d, expected 1", got)
	}
	if len(loader.loads) != MaxLevel {
		t.Errorf("loads = %d, expected %d", len(loader.loads), MaxLevel)
	}

	// Nothing after completion emits or loads again
	before := len(rec.Events)
	if err := p.LevelSolved(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("LevelSolved after completion error = %v", err)
	}
	if err := p.Advance(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("Advance after completion error = %v", err)
	}
	if len(rec.Events) != before {
		t.Errorf("events emitted after completion: %v", rec.Events[before:])
	}
}

func TestProgressionFinalLevel(t *testing.T) {
	p, loader, rec := newTestProgression(MaxLevel)

	if err := p.Start(MaxLevel); err != nil {
		t.Fatalf("Start(%d) failed: %v", MaxLevel, err)
	}
	rec.Reset()

	if err := p.LevelSolved(); err != nil {
		t.Fatalf("LevelSolved failed: %v", err)
	}

	if len(rec.Events) != 2 {
		t.Fatalf("events = %v, expected LevelCompleted then SessionCompleted", rec.Events)
	}
	if lc, ok := rec.Events[0].(LevelCompleted); !ok || lc.Level != MaxLevel {
		t.Errorf("first event = %#v, expected LevelCompleted{%d}", rec.Events[0], MaxLevel)
	}
	if _, ok := rec.Events[1].(SessionCompleted); !ok {
		t.Errorf("second event = %T, expected SessionCompleted", rec.Events[1])
	}

	err := p.LoadLevel(MaxLevel + 1)
	if !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("LoadLevel(%d) error = %v, expected ErrLevelOutOfRange", MaxLevel+1, err)
	}
	if err := p.LoadLevel(MaxLevel); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("LoadLevel(%d) after completion error = %v, expected ErrSessionComplete", MaxLevel, err)
	}
	if len(loader.loads) != 1 {
		t.Errorf("loads = %v, expected only the initial load", loader.loads)
	}
}

func TestProgressionLoadLevelRange(t *testing.T) {
	p, _, _ := newTestProgression(MaxLevel)

	for _, lvl := range []int{0, -1, MaxLevel + 1} {
		if err := p.LoadLevel(lvl); !errors.Is(err, ErrLevelOutOfRange) {
			t.Errorf("LoadLevel(%d) error = %v, expected ErrLevelOutOfRange", lvl, err)
		}
	}
	if p.Phase() != PhaseIdle {
		t.Errorf("failed loads changed phase to %s", p.Phase())
	}
}

func TestProgressionCannotGoBackward(t *testing.T) {
	p, _, _ := newTestProgression(MaxLevel)

	if err := p.Start(3); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := p.LoadLevel(2); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("LoadLevel(2) from 3 error = %v, expected ErrInvalidOperation", err)
	}
	if err := p.LoadLevel(5); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("LoadLevel(5) from 3 error = %v, expected ErrInvalidOperation", err)
	}
	if err := p.LoadLevel(3); err != nil {
		t.Errorf("reloading current level failed: %v", err)
	}
	if err := p.Reload(); err != nil {
		t.Errorf("Reload failed: %v", err)
	}
}

func TestProgressionConfigErrorFailsFast(t *testing.T) {
	p, loader, rec := newTestProgression(5)
	loader.failAt = 2

	if err := p.Start(1); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := p.LevelSolved(); err != nil {
		t.Fatalf("LevelSolved failed: %v", err)
	}

	err := p.Advance()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("Advance error = %v, expected ErrConfiguration", err)
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Level != 2 {
		t.Errorf("expected ConfigError for level 2, got %v", err)
	}

	// Stays advancing so the load can be retried
	if p.Phase() != PhaseAdvancing {
		t.Errorf("Phase() = %s, expected advancing", p.Phase())
	}
	if got := Count[LevelLoaded](rec.Events); got != 1 {
		t.Errorf("LevelLoaded count = %d, expected 1", got)
	}
}

func TestProgressionSolvedOnlyWhilePlaying(t *testing.T) {
	p, _, _ := newTestProgression(MaxLevel)

	if err := p.LevelSolved(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("LevelSolved before Start error = %v", err)
	}

	if err := p.Start(1); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := p.LevelSolved(); err != nil {
		t.Fatalf("LevelSolved failed: %v", err)
	}
	if err := p.LevelSolved(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("double LevelSolved error = %v, expected ErrInvalidOperation", err)
	}
	if p.Current() != 2 {
		t.Errorf("Current() = %d, expected 2", p.Current())
	}
}

func TestProgressionRequiresSolvedBoard(t *testing.T) {
	p, loader, rec := newTestProgression(MaxLevel)
	if err := p.Start(1); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	rec.Reset()

	loader.unsolved = true
	if err := p.LevelSolved(); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("LevelSolved on unsolved board error = %v, expected ErrInvalidOperation", err)
	}
	if p.Current() != 1 || p.Phase() != PhasePlaying {
		t.Errorf("after rejected LevelSolved: level %d phase %s, expected 1 playing", p.Current(), p.Phase())
	}
	if got := Count[LevelCompleted](rec.Events); got != 0 {
		t.Errorf("LevelCompleted count = %d, expected 0", got)
	}

	loader.unsolved = false
	if err := p.LevelSolved(); err != nil {
		t.Fatalf("LevelSolved on solved board failed: %v", err)
	}
	if p.Current() != 2 {
		t.Errorf("Current() = %d, expected 2", p.Current())
	}
}

func TestProgressionMaxIsCapped(t *testing.T) {
	tests := []struct {
		name string
		max  int
		want int
	}{
		{"short catalog", 3, 3},
		{"full session", MaxLevel, MaxLevel},
		{"long catalog", MaxLevel + 5, MaxLevel},
		{"empty catalog", 0, MaxLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _ := newTestProgression(tt.max)
			if got := p.Max(); got != tt.want {
				t.Errorf("Max() = %d, expected %d", got, tt.want)
			}
		})
	}

	p, _, _ := newTestProgression(MaxLevel + 5)
	if err := p.Start(MaxLevel + 1); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("Start(%d) error = %v, expected ErrLevelOutOfRange", MaxLevel+1, err)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseAdvancing.String() != "advancing" {
		t.Errorf("PhaseAdvancing.String() = %q", PhaseAdvancing.String())
	}
	if Phase(99).String() != "unknown" {
		t.Errorf("Phase(99).String() = %q", Phase(99).String())
	}
}
