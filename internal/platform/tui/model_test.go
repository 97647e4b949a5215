package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/registry"
	"github.com/vovakirdan/playroom/internal/storage"
)

const stubID = "stub"

// stubGame records what the model feeds it.
type stubGame struct {
	resets  []core.RuntimeConfig
	inputs  []core.InputFrame
	resized [2]int
	state   core.GameState
	next    core.StepResult // returned by the next Step, then cleared
}

func (g *stubGame) ID() string    { return stubID }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets = append(g.resets, cfg)
	g.state = core.GameState{Level: cfg.StartLevel, MaxLevel: 20}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	res := g.next
	g.next = core.StepResult{}
	if res.State == (core.GameState{}) {
		res.State = g.state
	}
	g.state = res.State
	return res
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) Resize(w, h int) {
	g.resized = [2]int{w, h}
}

func init() {
	registry.Register(stubID, func() registry.Game { return &stubGame{} })
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7, StartLevel: 3}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestNewGameModelResets(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, testConfig(), nil, nil)

	if len(g.resets) != 1 {
		t.Fatalf("resets = %d, want 1", len(g.resets))
	}
	if g.resets[0].StartLevel != 3 {
		t.Errorf("start level = %d, want 3", g.resets[0].StartLevel)
	}
	if m.State().Level != 3 {
		t.Errorf("state level = %d, want 3", m.State().Level)
	}
	if m.Init() == nil {
		t.Error("Init should start the tick loop")
	}
}

func TestKeysAndMouseReachStep(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, testConfig(), nil, nil)

	m, _ = update(t, m, runeKey('c'))
	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	if len(g.inputs) != 1 {
		t.Fatalf("steps = %d, want 1", len(g.inputs))
	}
	in := g.inputs[0]
	if !in.Has(core.ActionCheck) {
		t.Error("check action missing")
	}
	if len(in.Pointer) != 2 || in.Pointer[0].Kind != core.PointerPress || in.Pointer[1].Kind != core.PointerMove {
		t.Errorf("pointer events = %+v", in.Pointer)
	}

	// Input is consumed by the tick.
	update(t, m, TickMsg{})
	if len(g.inputs[1].Pointer) != 0 || g.inputs[1].Has(core.ActionCheck) {
		t.Error("second tick should see an empty frame")
	}
}

func TestQuitKey(t *testing.T) {
	m := NewGameModel(&stubGame{}, testConfig(), nil, nil)
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit the program")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestBackOnlyLeavesIdleGame(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, testConfig(), nil, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back while playing belongs to the game")
	}
	m, _ = update(t, m, TickMsg{})
	if !g.inputs[0].Has(core.ActionBack) {
		t.Error("game should receive the back action")
	}

	g.next = core.StepResult{State: core.GameState{Level: 3, MaxLevel: 20, Paused: true}}
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back while paused should return to the menu")
	}
}

func TestBackQuitsStandaloneGame(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, testConfig(), nil, nil)
	m.exitOnBack = true

	g.next = core.StepResult{State: core.GameState{Level: 20, MaxLevel: 20, Complete: true}}
	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, runeKey('b'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("back on a finished standalone game should quit")
	}
}

func TestRestartAfterCompletion(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, testConfig(), nil, nil)

	// Restart while playing is the game's business.
	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})
	if len(g.resets) != 1 {
		t.Fatalf("restart while playing should not reset, resets = %d", len(g.resets))
	}

	g.next = core.StepResult{State: core.GameState{Level: 20, MaxLevel: 20, Complete: true}, SessionDone: true}
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})

	if len(g.resets) != 2 {
		t.Fatalf("resets = %d, want 2", len(g.resets))
	}
	if g.resets[1].StartLevel != 3 {
		t.Errorf("restart level = %d, want the configured 3", g.resets[1].StartLevel)
	}
	if m.State().Complete {
		t.Error("state should be fresh after restart")
	}
}

func TestResize(t *testing.T) {
	t.Run("resizer keeps the game", func(t *testing.T) {
		g := &stubGame{}
		m := NewGameModel(g, testConfig(), nil, nil)
		update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
		if g.resized != [2]int{100, 30} {
			t.Errorf("resized = %v", g.resized)
		}
		if len(g.resets) != 1 {
			t.Errorf("resets = %d, want 1", len(g.resets))
		}
	})

	t.Run("others restart at the current level", func(t *testing.T) {
		g := &stubGame{}
		// Hide Resize so the model has to reset the game.
		var game registry.Game = struct {
			registry.Game
		}{g}
		m := NewGameModel(game, testConfig(), nil, nil)
		g.next = core.StepResult{State: core.GameState{Level: 5, MaxLevel: 20}}
		m, _ = update(t, m, TickMsg{})
		update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

		if len(g.resets) != 2 {
			t.Fatalf("resets = %d, want 2", len(g.resets))
		}
		if got := g.resets[1]; got.StartLevel != 5 || got.ScreenW != 100 {
			t.Errorf("reset config = %+v", got)
		}
	})
}

func TestViewRendersGame(t *testing.T) {
	m := NewGameModel(&stubGame{}, testConfig(), nil, nil)
	if v := m.View(); !strings.Contains(v, "stub") {
		t.Errorf("view = %q", v)
	}
}

func TestGameModelRecordsProgress(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "playroom.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	g := &stubGame{}
	tracker := NewTracker(store, nil, stubID, "ann")
	m := NewGameModel(g, testConfig(), tracker, nil)

	g.next = core.StepResult{State: core.GameState{Level: 4, MaxLevel: 20, Cleared: 1}, LevelsCleared: []int{3}}
	update(t, m, TickMsg{})

	furthest, err := store.Furthest(stubID)
	if err != nil {
		t.Fatalf("Furthest: %v", err)
	}
	if furthest != 3 {
		t.Errorf("furthest = %d, want 3", furthest)
	}
}
