package config

import (
	_ "embed"
)

//go:embed defaults/playroom.yaml
var defaultPlayroomYAML []byte

// DefaultPlayroomConfig returns the built-in configuration.
// At 30 ticks per second that is two seconds of celebration and an 800 ms
// lockout after a wrong story.
func DefaultPlayroomConfig() PlayroomConfig {
	return PlayroomConfig{
		Timing: TimingConfig{
			TickRate:            30,
			TransitionTicks:     60,
			RejectCooldownTicks: 24,
		},
		Story: StoryConfig{
			Shuffle: true,
		},
		Pace: PaceNormal,
	}
}
