// Package matching implements the drag-to-shadow board: each piece has exactly
// one target with the same identity and settles there permanently once dropped
// within puzzle.SnapDistance.
package matching

import "github.com/vovakirdan/playroom/internal/puzzle"

// PieceSpec describes one draggable piece and the target it belongs to.
type PieceSpec struct {
	Identity string
	Target   puzzle.Point
	Start    puzzle.Point
}

// TargetSpec describes a decoy target that no piece can satisfy.
type TargetSpec struct {
	Identity string
	Position puzzle.Point
}

// LevelDefinition is one matching level.
type LevelDefinition struct {
	Number          int
	ItemCount       int
	DistractorCount int
	Pieces          []PieceSpec
	Distractors     []TargetSpec
}

// Validate checks the level invariants and returns a *puzzle.ConfigError
// describing the first violation.
func (d LevelDefinition) Validate() error {
	if d.ItemCount < 1 {
		return puzzle.ConfigErrorf(d.Number, "item count %d, need at least 1", d.ItemCount)
	}
	if d.DistractorCount < 0 {
		return puzzle.ConfigErrorf(d.Number, "negative distractor count %d", d.DistractorCount)
	}
	if len(d.Pieces) != d.ItemCount {
		return puzzle.ConfigErrorf(d.Number, "item count %d but %d pieces", d.ItemCount, len(d.Pieces))
	}
	if len(d.Distractors) != d.DistractorCount {
		return puzzle.ConfigErrorf(d.Number, "distractor count %d but %d distractors", d.DistractorCount, len(d.Distractors))
	}

	seen := make(map[string]bool, len(d.Pieces))
	for i, p := range d.Pieces {
		if p.Identity == "" {
			return puzzle.ConfigErrorf(d.Number, "piece %d has no identity", i)
		}
		if seen[p.Identity] {
			return puzzle.ConfigErrorf(d.Number, "identity %q has more than one piece", p.Identity)
		}
		seen[p.Identity] = true
	}

	for _, dt := range d.Distractors {
		for _, p := range d.Pieces {
			if dt.Position == p.Target {
				return puzzle.ConfigErrorf(d.Number, "distractor %q sits on the target of %q at %v",
					dt.Identity, p.Identity, dt.Position)
			}
		}
	}

	return nil
}
