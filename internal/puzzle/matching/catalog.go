package matching

import (
	"math/rand"

	"github.com/vovakirdan/playroom/internal/puzzle"
)

// Animals is the pool of identities the built-in catalog draws from.
var Animals = []string{
	"rabbit", "cat", "bear", "dog", "monkey",
	"pig", "cow", "dragon", "rat", "teddy",
}

// Layout constants for generated levels, in world units (1280x720).
const (
	TargetY     = 280.0
	PieceY      = 540.0
	RowStartX   = 200.0
	RowEndX     = 1080.0
	WorldWidth  = 1280.0
	WorldHeight = 720.0
)

// Catalog is an ordered, read-only list of matching levels.
// Level n is at index n-1.
type Catalog struct {
	levels []LevelDefinition
}

// NewCatalog numbers the levels 1..len(levels) and wraps them.
// Levels are validated when a board loads them, not here.
func NewCatalog(levels []LevelDefinition) *Catalog {
	c := &Catalog{levels: make([]LevelDefinition, len(levels))}
	for i, lvl := range levels {
		lvl.Number = i + 1
		c.levels[i] = lvl
	}
	return c
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Level returns level n (1-based).
func (c *Catalog) Level(n int) (LevelDefinition, bool) {
	if n < 1 || n > len(c.levels) {
		return LevelDefinition{}, false
	}
	return c.levels[n-1], true
}

// Validate checks every level and returns the first error.
func (c *Catalog) Validate() error {
	for _, lvl := range c.levels {
		if err := lvl.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DefaultCatalog generates the 20 built-in levels from seed.
// The same seed always yields the same catalog.
func DefaultCatalog(seed int64) *Catalog {
	rng := rand.New(rand.NewSource(seed))
	levels := make([]LevelDefinition, puzzle.MaxLevel)
	for i := range levels {
		levels[i] = Generate(i+1, rng)
	}
	return NewCatalog(levels)
}

// CountsForLevel returns how many pieces and decoys a level gets.
// Levels come in bands of five, each adding one piece; decoys grow
// within a band.
func CountsForLevel(level int) (items, distractors int) {
	switch {
	case level <= 5:
		items = 1
		distractors = 1
		if level <= 2 {
			distractors = 0
		}
	case level <= 10:
		items = 2
		distractors = 2
		if level <= 8 {
			distractors = 1
		}
	case level <= 15:
		items = 3
		distractors = 3
		if level <= 13 {
			distractors = 2
		}
	default:
		items = 4
		distractors = 4
		if level <= 18 {
			distractors = 3
		}
	}
	return items, distractors
}

// Generate builds one level: distinct animals, targets spread along the top
// row in shuffled order, pieces spread along the bottom row.
func Generate(level int, rng *rand.Rand) LevelDefinition {
	items, distractors := CountsForLevel(level)
	total := items + distractors

	animals := append([]string(nil), Animals...)
	rng.Shuffle(len(animals), func(i, j int) {
		animals[i], animals[j] = animals[j], animals[i]
	})

	targetXs := spread(total)
	rng.Shuffle(len(targetXs), func(i, j int) {
		targetXs[i], targetXs[j] = targetXs[j], targetXs[i]
	})
	pieceXs := spread(items)

	def := LevelDefinition{
		Number:          level,
		ItemCount:       items,
		DistractorCount: distractors,
		Pieces:          make([]PieceSpec, items),
		Distractors:     make([]TargetSpec, distractors),
	}

	for i := 0; i < items; i++ {
		def.Pieces[i] = PieceSpec{
			Identity: animals[i],
			Target:   puzzle.Pt(targetXs[i], TargetY),
			Start:    puzzle.Pt(pieceXs[i], PieceY),
		}
	}
	for i := 0; i < distractors; i++ {
		def.Distractors[i] = TargetSpec{
			Identity: animals[items+i],
			Position: puzzle.Pt(targetXs[items+i], TargetY),
		}
	}

	return def
}

// spread returns n x coordinates evenly spaced from RowStartX to RowEndX.
func spread(n int) []float64 {
	gaps := n - 1
	if gaps < 1 {
		gaps = 1
	}
	step := (RowEndX - RowStartX) / float64(gaps)

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = RowStartX + float64(i)*step
	}
	return xs
}
