// Package formats provides pluggable level pack file parsers.
package formats

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/playroom/internal/puzzle"
	"github.com/vovakirdan/playroom/internal/puzzle/matching"
	"github.com/vovakirdan/playroom/internal/puzzle/ordering"
)

// Game names accepted in the "game" key.
const (
	GameShadow = "shadow"
	GameStory  = "story"
)

// YAMLPack represents the YAML structure of a level pack file.
type YAMLPack struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Game     string            `yaml:"game"`
	Levels   []YAMLLevel       `yaml:"levels"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLLevel holds the keys of both level kinds; which ones are read
// depends on the pack's game.
type YAMLLevel struct {
	// shadow
	Pieces      []YAMLPiece  `yaml:"pieces,omitempty"`
	Distractors []YAMLTarget `yaml:"distractors,omitempty"`

	// story
	Theme  string   `yaml:"theme,omitempty"`
	Steps  []string `yaml:"steps,omitempty"`
	Labels []string `yaml:"labels,omitempty"`
	Colors []string `yaml:"colors,omitempty"`
}

// YAMLPoint is a world position.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLPiece is a draggable shadow piece.
type YAMLPiece struct {
	Identity string    `yaml:"identity"`
	Target   YAMLPoint `yaml:"target"`
	Start    YAMLPoint `yaml:"start"`
}

// YAMLTarget is a decoy shadow.
type YAMLTarget struct {
	Identity string    `yaml:"identity"`
	Position YAMLPoint `yaml:"position"`
}

// Pack is a parsed level pack. Exactly one of Shadow and Story is filled.
type Pack struct {
	ID       string
	Name     string
	Game     string
	Shadow   []matching.LevelDefinition
	Story    []ordering.LevelDefinition
	Metadata map[string]string
}

// Len returns the number of levels in the pack.
func (p Pack) Len() int {
	if p.Game == GameShadow {
		return len(p.Shadow)
	}
	return len(p.Story)
}

// ParseYAML parses a YAML level pack. Level invariants are not checked here;
// the catalogs check them when a level is loaded or validated.
func ParseYAML(data []byte) (Pack, error) {
	var yp YAMLPack
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	pack := Pack{
		ID:       yp.ID,
		Name:     yp.Name,
		Game:     strings.ToLower(yp.Game),
		Metadata: yp.Metadata,
	}

	switch pack.Game {
	case GameShadow:
		for i, yl := range yp.Levels {
			pack.Shadow = append(pack.Shadow, shadowLevel(i+1, yl))
		}
	case GameStory:
		for i, yl := range yp.Levels {
			lvl, err := storyLevel(i+1, yl)
			if err != nil {
				return Pack{}, err
			}
			pack.Story = append(pack.Story, lvl)
		}
	default:
		return Pack{}, fmt.Errorf("unknown game %q, expected %q or %q", yp.Game, GameShadow, GameStory)
	}

	if pack.Len() == 0 {
		return Pack{}, fmt.Errorf("pack %q has no levels", yp.ID)
	}
	return pack, nil
}

func shadowLevel(n int, yl YAMLLevel) matching.LevelDefinition {
	def := matching.LevelDefinition{
		Number:          n,
		ItemCount:       len(yl.Pieces),
		DistractorCount: len(yl.Distractors),
	}
	for _, p := range yl.Pieces {
		def.Pieces = append(def.Pieces, matching.PieceSpec{
			Identity: p.Identity,
			Target:   puzzle.Pt(p.Target.X, p.Target.Y),
			Start:    puzzle.Pt(p.Start.X, p.Start.Y),
		})
	}
	for _, d := range yl.Distractors {
		def.Distractors = append(def.Distractors, matching.TargetSpec{
			Identity: d.Identity,
			Position: puzzle.Pt(d.Position.X, d.Position.Y),
		})
	}
	return def
}

func storyLevel(n int, yl YAMLLevel) (ordering.LevelDefinition, error) {
	def := ordering.LevelDefinition{
		Number: n,
		Theme:  yl.Theme,
		Steps:  yl.Steps,
		Labels: yl.Labels,
	}
	for _, s := range yl.Colors {
		c, ok := ParseColor(s)
		if !ok {
			return def, fmt.Errorf("level %d: invalid color %q", n, s)
		}
		def.AccentColors = append(def.AccentColors, c)
	}
	return def, nil
}

// ParseColor reads "#rrggbb", "0xrrggbb" or "rrggbb".
func ParseColor(s string) (ordering.Color, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 6 {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return ordering.Color(v), true
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
