// Package config provides YAML-based configuration loading for the playroom
// and its two puzzle games.
package config

// PlayroomConfig contains every tunable of the playroom.
type PlayroomConfig struct {
	Timing TimingConfig `yaml:"timing"`
	Shadow ShadowConfig `yaml:"shadow"`
	Story  StoryConfig  `yaml:"story"`
	Pace   PacePreset   `yaml:"pace"`
}

// TimingConfig holds the presentation delays, counted in simulation ticks.
type TimingConfig struct {
	TickRate            int `yaml:"tick_rate"`
	TransitionTicks     int `yaml:"transition_ticks"`      // solved board -> next level
	RejectCooldownTicks int `yaml:"reject_cooldown_ticks"` // wrong story -> check enabled again
}

// ShadowConfig configures the shadow matching game.
type ShadowConfig struct {
	Seed       int64  `yaml:"seed"`        // layout seed, 0 = time based
	LevelsFile string `yaml:"levels_file"` // optional YAML catalog replacing the generated one
}

// StoryConfig configures the story ordering game.
type StoryConfig struct {
	Shuffle    bool   `yaml:"shuffle"`     // deal cards in random order
	LevelsFile string `yaml:"levels_file"` // optional YAML catalog replacing the built-in stories
}

// PacePreset is a named set of timings.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceBrisk   PacePreset = "brisk"
)

// Valid reports whether p names a known preset.
func (p PacePreset) Valid() bool {
	switch p {
	case PaceRelaxed, PaceNormal, PaceBrisk:
		return true
	}
	return false
}
