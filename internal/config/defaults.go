package config

import (
	_ "embed"
)

//go:embed defaults/tetrix.yaml
var defaultTetrixYAML []byte

// DefaultTetrixConfig returns the built-in configuration.
// The embedded defaults/tetrix.yaml carries the same values.
func DefaultTetrixConfig() TetrixConfig {
	return TetrixConfig{
		Timing: TimingConfig{
			MoveDelayMs:      200,
			MoveRepeatMs:     50,
			SoftDropRepeatMs: 50,
			SoftDropBonusMs:  200,
			RotateDelayMs:    150,
		},
		Scoring: ScoringConfig{
			LinePoints:     []int{40, 100, 300, 1200},
			LinesPerLevel:  10,
			MaxLevel:       20,
			HardDropPerRow: 2,
			ComboStep:      0.5,
			ComboCap:       3.0,
		},
		Gravity: GravityConfig{
			BaseInterval: 1.0,
			LevelStep:    0.05,
			MinInterval:  0.1,
		},
		Display: DisplayConfig{
			ClearAnimationMs:       300,
			TetrisClearAnimationMs: 400,
			Ghost:                  true,
			Theme:                  ThemeNeon,
			HoldWindowMs:           120,
		},
	}
}

// DefaultYAML returns the embedded default YAML, used by `tetrix settings` to print a template.
func DefaultYAML() []byte {
	return defaultTetrixYAML
}
