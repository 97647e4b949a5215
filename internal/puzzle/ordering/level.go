// Package ordering implements the story-card board: cards go into any free
// slot near the drop point, and the arrangement is only judged when every
// slot is filled and the player commits it.
package ordering

import "github.com/vovakirdan/playroom/internal/puzzle"

// Color is a 0xRRGGBB accent colour.
type Color uint32

// LevelDefinition is one ordering level. Steps, Labels and AccentColors are
// index-aligned and Steps[i] is the card that belongs in slot i.
type LevelDefinition struct {
	Number       int
	Theme        string
	Steps        []string
	Labels       []string
	AccentColors []Color
}

// CardCount returns how many cards (and slots) the level has.
func (d LevelDefinition) CardCount() int {
	return len(d.Steps)
}

// Validate checks the level invariants and returns a *puzzle.ConfigError
// describing the first violation.
func (d LevelDefinition) Validate() error {
	if d.Theme == "" {
		return puzzle.ConfigErrorf(d.Number, "theme is empty")
	}
	if len(d.Steps) == 0 {
		return puzzle.ConfigErrorf(d.Number, "theme %q has no steps", d.Theme)
	}
	if len(d.Labels) != len(d.Steps) || len(d.AccentColors) != len(d.Steps) {
		return puzzle.ConfigErrorf(d.Number, "theme %q: %d steps, %d labels, %d colors",
			d.Theme, len(d.Steps), len(d.Labels), len(d.AccentColors))
	}
	for i, s := range d.Steps {
		if s == "" {
			return puzzle.ConfigErrorf(d.Number, "theme %q: step %d is empty", d.Theme, i+1)
		}
	}
	return nil
}
