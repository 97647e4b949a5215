package levels_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vovakirdan/playroom/internal/levels"
	"github.com/vovakirdan/playroom/internal/levels/formats"
	"github.com/vovakirdan/playroom/internal/puzzle"
	"github.com/vovakirdan/playroom/internal/puzzle/matching"
	"github.com/vovakirdan/playroom/internal/puzzle/ordering"
)

// getTestdataPath returns path to testdata.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	packs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	// garbled.yaml and notes.txt are skipped
	ids, _ := loader.ListIDs()
	want := []string{"bedtime", "farm", "uneven"}
	if len(ids) != len(want) {
		t.Fatalf("ListIDs() = %v, expected %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ListIDs()[%d] = %q, expected %q", i, ids[i], want[i])
		}
	}
	if len(packs) != len(want) {
		t.Errorf("LoadAll() returned %d packs", len(packs))
	}
}

func TestLoadShadowPack(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	pack, err := loader.LoadByID("farm")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if pack.Name != "Farm friends" || pack.Game != formats.GameShadow || pack.Len() != 2 {
		t.Errorf("pack = %+v", pack.Pack)
	}
	if err := pack.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	cat, err := pack.ShadowCatalog()
	if err != nil {
		t.Fatal(err)
	}
	lvl, _ := cat.Level(2)
	if lvl.ItemCount != 2 || lvl.DistractorCount != 1 {
		t.Errorf("level 2 counts = %d/%d", lvl.ItemCount, lvl.DistractorCount)
	}
	if lvl.Pieces[1].Target != puzzle.Pt(900, 280) {
		t.Errorf("rabbit target = %v", lvl.Pieces[1].Target)
	}

	// The pack drives a real board
	b := matching.NewBoard(cat, nil)
	if _, err := b.Load(1); err != nil {
		t.Fatalf("Load(1) error: %v", err)
	}
	if out, _ := b.AttemptPlacement(1, puzzle.Pt(650, 300)); out != puzzle.OutcomeSettled {
		t.Errorf("AttemptPlacement() = %v, expected settled", out)
	}

	if _, err := pack.StoryCatalog(); err == nil {
		t.Error("StoryCatalog() on a shadow pack should fail")
	}
}

func TestLoadStoryPack(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	pack, err := loader.Resolve(filepath.Join(getTestdataPath(), "bedtime.yml"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if pack.ID != "bedtime" || pack.Metadata["author"] != "playroom" {
		t.Errorf("pack = %+v", pack.Pack)
	}

	cat, err := pack.StoryCatalog()
	if err != nil {
		t.Fatal(err)
	}
	lvl, _ := cat.Level(1)
	wantColors := []ordering.Color{0x87CEEB, 0x4169E1, 0x2F4F4F}
	for i, c := range wantColors {
		if lvl.AccentColors[i] != c {
			t.Errorf("color %d = %#x, expected %#x", i, lvl.AccentColors[i], c)
		}
	}

	b := ordering.NewBoard(cat, ordering.Options{}, nil)
	if _, err := b.Load(2); err != nil {
		t.Fatalf("Load(2) error: %v", err)
	}
	if len(b.Slots()) != 4 {
		t.Errorf("breakfast has %d slots, expected 4", len(b.Slots()))
	}
}

func TestInvalidPackFailsOnLoad(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	pack, err := loader.Resolve("uneven")
	if err != nil {
		t.Fatalf("Resolve(uneven) failed: %v", err)
	}
	if err := pack.Validate(); !errors.Is(err, puzzle.ErrConfiguration) {
		t.Errorf("Validate() = %v, expected ErrConfiguration", err)
	}

	cat, _ := pack.StoryCatalog()
	b := ordering.NewBoard(cat, ordering.Options{}, nil)
	p := ordering.NewProgression(b, nil)
	if err := p.Start(1); !errors.Is(err, puzzle.ErrConfiguration) {
		t.Errorf("Start(1) = %v, expected ErrConfiguration", err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	if _, err := loader.LoadFile(filepath.Join(getTestdataPath(), "broken", "garbled.yaml")); err == nil {
		t.Error("LoadFile(garbled.yaml) should fail")
	}
	if _, err := loader.LoadFile(filepath.Join(getTestdataPath(), "notes.txt")); err == nil {
		t.Error("LoadFile(notes.txt) should fail")
	}
	if _, err := loader.Resolve("nosuchpack"); err == nil {
		t.Error("Resolve(nosuchpack) should fail")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want ordering.Color
		ok   bool
	}{
		{"#FF69B4", 0xFF69B4, true},
		{"0x32cd32", 0x32CD32, true},
		{"808080", 0x808080, true},
		{"#FFF", 0, false},
		{"#GGGGGG", 0, false},
	}

	for _, tc := range tests {
		got, ok := formats.ParseColor(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseColor(%q) = %#x, %v, expected %#x, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
