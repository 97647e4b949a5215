package story

import (
	"strings"
	"testing"

	"github.com/vovakirdan/playroom/internal/config"
	"github.com/vovakirdan/playroom/internal/core"
	"github.com/vovakirdan/playroom/internal/puzzle"
	"github.com/vovakirdan/playroom/internal/puzzle/ordering"
	"github.com/vovakirdan/playroom/internal/registry"
)

// Level 1 of the built-in catalog, dealt in order.
var (
	slotPos = []puzzle.Point{puzzle.Pt(410, 280), puzzle.Pt(640, 280), puzzle.Pt(870, 280)}
	cardPos = []puzzle.Point{puzzle.Pt(440, 620), puzzle.Pt(640, 620), puzzle.Pt(840, 620)}
)

type testOptions struct {
	catalog    *ordering.Catalog
	transition int
	cooldown   int
	shuffle    bool
	startLevel int
}

func newTestGame(t *testing.T, o testOptions) *Game {
	t.Helper()

	cfg := config.DefaultPlayroomConfig()
	cfg.Timing.TransitionTicks = o.transition
	cfg.Timing.RejectCooldownTicks = o.cooldown
	cfg.Story.Shuffle = o.shuffle
	cfg.Pace = config.PaceNormal
	SetConfig(cfg)
	SetCatalog(o.catalog)
	t.Cleanup(func() {
		SetConfig(config.DefaultPlayroomConfig())
		SetCatalog(nil)
	})

	g := New()
	rc := core.DefaultConfig()
	rc.Seed = 11
	rc.StartLevel = o.startLevel
	g.Reset(rc)
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func drag(g *Game, from, to puzzle.Point) core.StepResult {
	in := core.NewInputFrame()
	fx, fy := g.view.ToCell(from.X, from.Y)
	tx, ty := g.view.ToCell(to.X, to.Y)
	in.Point(core.PointerPress, fx, fy)
	in.Point(core.PointerMove, tx, ty)
	in.Point(core.PointerRelease, tx, ty)
	return g.Step(in)
}

func click(g *Game, p puzzle.Point) core.StepResult {
	in := core.NewInputFrame()
	x, y := g.view.ToCell(p.X, p.Y)
	in.Point(core.PointerPress, x, y)
	in.Point(core.PointerRelease, x, y)
	return g.Step(in)
}

// arrange drags the i-th dealt card into slot slotFor[i].
func arrange(g *Game, slotFor ...int) {
	for card, slot := range slotFor {
		drag(g, cardPos[card], slotPos[slot])
	}
}

func slotsEqual(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", ID, err)
	}
	if g.Title() != "Story Order" {
		t.Errorf("Title() = %q", g.Title())
	}
	if _, ok := g.(registry.Resizer); !ok {
		t.Error("story game should implement registry.Resizer")
	}
}

func TestBuiltInStories(t *testing.T) {
	g := newTestGame(t, testOptions{transition: 60, cooldown: 24})

	snap := g.Snapshot()
	if snap.Level != 1 || snap.MaxLevel != puzzle.MaxLevel || snap.Theme != "flower" {
		t.Errorf("level %d/%d theme %q", snap.Level, snap.MaxLevel, snap.Theme)
	}
	if len(snap.Cards) != 3 || len(snap.Slots) != 3 {
		t.Fatalf("%d cards, %d slots", len(snap.Cards), len(snap.Slots))
	}
	for i, c := range snap.Cards {
		if c.Order != i+1 || c.Position != cardPos[i] || c.Slot != -1 {
			t.Errorf("card %d = %+v", i, c)
		}
	}
	if snap.CanCommit {
		t.Error("empty board should not be checkable")
	}
}

func TestPointerPlacementFirstFit(t *testing.T) {
	g := newTestGame(t, testOptions{transition: 60, cooldown: 24})

	// Any card fits any free slot
	drag(g, cardPos[2], slotPos[0])
	if s := g.Snapshot().Slots; !slotsEqual(s, []int{3, 0, 0}) {
		t.Fatalf("Slots = %v, expected [3 0 0]", s)
	}

	// An occupied slot sends the card home
	drag(g, cardPos[0], slotPos[0])
	snap := g.Snapshot()
	if !slotsEqual(snap.Slots, []int{3, 0, 0}) {
		t.Errorf("Slots = %v after dropping on a full slot", snap.Slots)
	}
	if c := snap.Cards[0]; c.Slot != -1 || c.Position != cardPos[0] {
		t.Errorf("card 1 = %+v, expected back on the table", c)
	}
}

func TestMoveCardBetweenSlots(t *testing.T) {
	g := newTestGame(t, testOptions{transition: 60, cooldown: 24})

	drag(g, cardPos[0], slotPos[0])
	drag(g, slotPos[0], slotPos[2])
	if s := g.Snapshot().Slots; !slotsEqual(s, []int{0, 0, 1}) {
		t.Errorf("Slots = %v, expected [0 0 1]", s)
	}

	// Dragging off to nowhere frees the slot
	drag(g, slotPos[2], puzzle.Pt(100, 450))
	snap := g.Snapshot()
	if !slotsEqual(snap.Slots, []int{0, 0, 0}) || snap.Cards[0].Position != cardPos[0] {
		t.Errorf("Slots = %v, card 1 at %v", snap.Slots, snap.Cards[0].Position)
	}
}

func TestCheckNeedsFullBoard(t *testing.T) {
	g := newTestGame(t, testOptions{transition: 60, cooldown: 24})

	arrange(g, 0, 1)
	step(g, core.ActionCheck)
	click(g, puzzle.Pt(640, 480))

	snap := g.Snapshot()
	if snap.CanCommit || snap.State != StatePlaying {
		t.Errorf("CanCommit = %v, State = %s with 2 of 3 slots", snap.CanCommit, snap.State)
	}
	for _, c := range snap.Cards {
		if c.Rejected {
			t.Errorf("card %d flagged without a check", c.ID)
		}
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if strings.Contains(screen.String(), "✓") {
		t.Error("check button drawn before every slot is filled")
	}
}

func TestWrongOrderRejectsUntilCooldown(t *testing.T) {
	g := newTestGame(t, testOptions{transition: 60, cooldown: 3})

	arrange(g, 1, 0, 2)
	if !g.Snapshot().CanCommit {
		t.Fatal("full board should be checkable")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "✓") {
		t.Error("check button missing on a full board")
	}

	res := step(g, core.ActionCheck)
	if len(res.LevelsCleared) != 0 {
		t.Fatalf("wrong order cleared a level: %v", res.LevelsCleared)
	}

	snap := g.Snapshot()
	if snap.State != StateRejected || snap.CanCommit {
		t.Fatalf("State = %s, CanCommit = %v", snap.State, snap.CanCommit)
	}
	for _, c := range snap.Cards {
		if !c.Rejected {
			t.Errorf("card %d not flagged", c.ID)
		}
	}
	if !strings.HasPrefix(snap.Status, "Not quite") {
		t.Errorf("Status = %q", snap.Status)
	}

	// A second check during the cooldown does nothing
	step(g, core.ActionCheck)
	if g.Snapshot().State != StateRejected {
		t.Fatal("cooldown ended early")
	}
	step(g)
	if g.Snapshot().State != StateRejected {
		t.Fatal("cooldown ended early")
	}
	step(g)

	snap = g.Snapshot()
	if snap.State != StatePlaying || !snap.CanCommit {
		t.Errorf("after cooldown: State = %s, CanCommit = %v", snap.State, snap.CanCommit)
	}
	if !slotsEqual(snap.Slots, []int{2, 1, 3}) {
		t.Errorf("Slots = %v, the rejected arrangement should stay", snap.Slots)
	}
	for _, c := range snap.Cards {
		if c.Rejected {
			t.Errorf("card %d still flagged after cooldown", c.ID)
		}
	}
}

func TestCorrectOrderCompletesLevel(t *testing.T) {
	g := newTestGame(t, testOptions{transition: 2, cooldown: 24})

	arrange(g, 0, 1, 2)
	res := click(g, puzzle.Pt(640, 480))

	if len(res.LevelsCleared) != 1 || res.LevelsCleared[0] != 1 {
		t.Fatalf("LevelsCleared = %v, expected [1]", res.LevelsCleared)
	}
	if snap := g.Snapshot(); snap.State != StateLevelCleared || snap.Status != "That's the story!" {
		t.Fatalf("State = %s, Status = %q", snap.State, snap.Status)
	}

	// Cards are frozen while the next story loads
	drag(g, slotPos[0], cardPos[0])
	if g.Snapshot().Slots[0] != 1 {
		t.Error("solved card moved during the transition")
	}

	step(g)
	snap := g.Snapshot()
	if snap.Level != 2 || snap.Theme != "butterfly" || snap.Assigned != 0 {
		t.Errorf("after transition: level %d theme %q assigned %d", snap.Level, snap.Theme, snap.Assigned)
	}
}

func TestKeyboardArrangement(t *testing.T) {
	g := newTestGame(t, testOptions{transition: 0, cooldown: 24})

	for i := 0; i < 3; i++ {
		if s := g.Snapshot().Selected; s != i+1 {
			t.Fatalf("Selected = %d, expected %d", s, i+1)
		}
		step(g, core.ActionConfirm)
		snap := g.Snapshot()
		if snap.Held != i+1 || snap.Aim != i {
			t.Fatalf("after pick up %d: held %d aim %d", i+1, snap.Held, snap.Aim)
		}
		step(g, core.ActionConfirm)
		step(g, core.ActionRight)
	}
	if s := g.Snapshot().Slots; !slotsEqual(s, []int{1, 2, 3}) {
		t.Fatalf("Slots = %v", s)
	}

	res := step(g, core.ActionCheck)
	if len(res.LevelsCleared) != 1 {
		t.Fatalf("LevelsCleared = %v", res.LevelsCleared)
	}
	step(g)
	if lvl := g.State().Level; lvl != 2 {
		t.Errorf("Level = %d, expected 2", lvl)
	}
}

func TestKeyboardAimAndPutBack(t *testing.T) {
	g := newTestGame(t, testOptions{transition: 60, cooldown: 24})

	step(g, core.ActionConfirm)
	step(g, core.ActionLeft)
	snap := g.Snapshot()
	if snap.Aim != 2 || snap.Cards[0].Position != slotPos[2] {
		t.Fatalf("aim %d, card at %v", snap.Aim, snap.Cards[0].Position)
	}

	step(g, core.ActionBack)
	snap = g.Snapshot()
	if snap.Held != 0 || snap.Cards[0].Position != cardPos[0] || snap.Assigned != 0 {
		t.Errorf("after Back: %+v", snap)
	}

	// Picking a slotted card up with the keyboard frees its slot
	step(g, core.ActionConfirm)
	step(g, core.ActionConfirm)
	step(g, core.ActionConfirm)
	if snap := g.Snapshot(); snap.Assigned != 0 || snap.Held != 1 {
		t.Errorf("assigned %d, held %d", snap.Assigned, snap.Held)
	}
}

func TestSessionCompletesOnce(t *testing.T) {
	catalog := ordering.NewCatalog([]ordering.LevelDefinition{
		{
			Number:       1,
			Theme:        "bedtime",
			Steps:        []string{"bath", "pyjamas", "sleep"},
			Labels:       []string{"Bath", "Pyjamas", "Sleep"},
			AccentColors: []ordering.Color{0x87CEEB, 0x4169E1, 0x2F4F4F},
		},
	})
	g := newTestGame(t, testOptions{catalog: catalog, transition: 60, cooldown: 24})

	arrange(g, 0, 1, 2)
	res := step(g, core.ActionCheck)
	if !res.SessionDone || !res.State.Complete {
		t.Fatalf("result = %+v, expected the session to finish", res)
	}
	if g.Snapshot().State != StateComplete {
		t.Errorf("State = %s", g.Snapshot().State)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "The end!") {
		t.Error("completion banner missing")
	}

	for i := 0; i < 3; i++ {
		if res := step(g, core.ActionCheck); res.SessionDone {
			t.Fatal("SessionDone reported twice")
		}
	}
}

func TestShuffledDeal(t *testing.T) {
	g := newTestGame(t, testOptions{transition: 60, cooldown: 24, shuffle: true, startLevel: 20})

	snap := g.Snapshot()
	if snap.Level != 20 || len(snap.Cards) != 5 {
		t.Fatalf("level %d with %d cards", snap.Level, len(snap.Cards))
	}
	seen := make(map[int]bool)
	for _, c := range snap.Cards {
		seen[c.Order] = true
	}
	for order := 1; order <= 5; order++ {
		if !seen[order] {
			t.Errorf("order %d missing from the deal", order)
		}
	}
}

func TestRestartRedeals(t *testing.T) {
	g := newTestGame(t, testOptions{transition: 60, cooldown: 24})

	arrange(g, 0, 1)
	step(g, core.ActionRestart)
	if snap := g.Snapshot(); snap.Assigned != 0 || snap.Level != 1 {
		t.Errorf("after restart: assigned %d, level %d", snap.Assigned, snap.Level)
	}
}

func TestBrokenStoryFails(t *testing.T) {
	catalog := ordering.NewCatalog([]ordering.LevelDefinition{
		{Number: 1, Steps: []string{"a"}, Labels: []string{"A"}, AccentColors: []ordering.Color{0}},
	})
	g := newTestGame(t, testOptions{catalog: catalog, transition: 60, cooldown: 24})

	if g.Snapshot().State != StateFailed {
		t.Errorf("State = %s, expected failed", g.Snapshot().State)
	}
	if res := step(g, core.ActionCheck); res.SessionDone || len(res.LevelsCleared) != 0 {
		t.Errorf("failed game produced %+v", res)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, testOptions{transition: 60, cooldown: 24})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Story Order", "flower", "Placed 0/3", "Level 1/20", "Seed", "Sprout", "Bloom"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	g.Resize(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small screen should show the resize hint")
	}
}
