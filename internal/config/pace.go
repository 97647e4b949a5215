package config

// Timings returns the timing section scaled by the configured pace.
// Relaxed doubles every delay, brisk halves it; the tick rate is unchanged.
func (c PlayroomConfig) Timings() TimingConfig {
	t := c.Timing
	switch c.Pace {
	case PaceRelaxed:
		t.TransitionTicks *= 2
		t.RejectCooldownTicks *= 2
	case PaceBrisk:
		t.TransitionTicks /= 2
		t.RejectCooldownTicks /= 2
	}
	return t
}

// ApplyPacePreset sets the pace, ignoring unknown names.
func ApplyPacePreset(cfg *PlayroomConfig, preset PacePreset) {
	if preset.Valid() {
		cfg.Pace = preset
	}
}
