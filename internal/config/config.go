// Package config provides YAML-based tuning for the tetrix rules engine and its front-end.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// TetrixConfig contains every tunable constant of the game.
type TetrixConfig struct {
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
	Gravity GravityConfig `yaml:"gravity"`
	Display DisplayConfig `yaml:"display"`
}

// TimingConfig defines the per-action key repeat timers in milliseconds.
type TimingConfig struct {
	MoveDelayMs      int `yaml:"move_delay_ms"`       // first repeat after a horizontal press
	MoveRepeatMs     int `yaml:"move_repeat_ms"`      // repeat rate while held
	SoftDropRepeatMs int `yaml:"soft_drop_repeat_ms"` // soft drop repeat rate
	SoftDropBonusMs  int `yaml:"soft_drop_bonus_ms"`  // gravity accumulator reduction per soft drop row
	RotateDelayMs    int `yaml:"rotate_delay_ms"`     // rotation cooldown
}

// MoveDelay returns the horizontal initial delay.
func (t TimingConfig) MoveDelay() time.Duration { return ms(t.MoveDelayMs) }

// MoveRepeat returns the horizontal repeat rate.
func (t TimingConfig) MoveRepeat() time.Duration { return ms(t.MoveRepeatMs) }

// SoftDropRepeat returns the soft drop repeat rate.
func (t TimingConfig) SoftDropRepeat() time.Duration { return ms(t.SoftDropRepeatMs) }

// SoftDropBonus returns how much each soft drop row shortens the wait for gravity.
func (t TimingConfig) SoftDropBonus() time.Duration { return ms(t.SoftDropBonusMs) }

// RotateDelay returns the rotation cooldown.
func (t TimingConfig) RotateDelay() time.Duration { return ms(t.RotateDelayMs) }

// ScoringConfig defines points, combo and level progression.
type ScoringConfig struct {
	LinePoints     []int   `yaml:"line_points"` // base points for 1..4 lines at level 1
	LinesPerLevel  int     `yaml:"lines_per_level"`
	MaxLevel       int     `yaml:"max_level"`
	HardDropPerRow int     `yaml:"hard_drop_per_row"`
	ComboStep      float64 `yaml:"combo_step"` // multiplier added per combo beyond the first
	ComboCap       float64 `yaml:"combo_cap"`
}

// GravityConfig defines the automatic drop interval curve in seconds.
type GravityConfig struct {
	BaseInterval float64 `yaml:"base_interval"` // interval at level 1
	LevelStep    float64 `yaml:"level_step"`    // reduction per level
	MinInterval  float64 `yaml:"min_interval"`  // floor
}

// DisplayConfig holds presentation settings used by the terminal front-end.
type DisplayConfig struct {
	ClearAnimationMs       int    `yaml:"clear_animation_ms"`
	TetrisClearAnimationMs int    `yaml:"tetris_clear_animation_ms"` // four-line clears flash longer
	Ghost                  bool   `yaml:"ghost"`
	Theme                  string `yaml:"theme"`
	HoldWindowMs           int    `yaml:"hold_window_ms"` // how long a key counts as held after its last press
}

// ClearAnimation returns how long cleared rows flash before removal.
func (d DisplayConfig) ClearAnimation() time.Duration { return ms(d.ClearAnimationMs) }

// TetrisClearAnimation returns the flash length for a four-line clear.
func (d DisplayConfig) TetrisClearAnimation() time.Duration { return ms(d.TetrisClearAnimationMs) }

// HoldWindow returns the key hold window.
func (d DisplayConfig) HoldWindow() time.Duration { return ms(d.HoldWindowMs) }

// Theme names understood by the front-end, in menu order.
const (
	ThemeNeon   = "NEON"
	ThemePastel = "PASTEL"
	ThemeRetro  = "RETRO"
)

// Themes lists the selectable themes.
var Themes = []string{ThemeNeon, ThemePastel, ThemeRetro}

// IsTheme reports whether name is a known theme, ignoring case.
func IsTheme(name string) bool {
	return slices.Contains(Themes, strings.ToUpper(name))
}

// Validate checks that the configuration can drive a game.
func (c TetrixConfig) Validate() error {
	var errs []error

	timers := []struct {
		name string
		val  int
	}{
		{"timing.move_delay_ms", c.Timing.MoveDelayMs},
		{"timing.move_repeat_ms", c.Timing.MoveRepeatMs},
		{"timing.soft_drop_repeat_ms", c.Timing.SoftDropRepeatMs},
		{"timing.rotate_delay_ms", c.Timing.RotateDelayMs},
		{"display.clear_animation_ms", c.Display.ClearAnimationMs},
		{"display.tetris_clear_animation_ms", c.Display.TetrisClearAnimationMs},
		{"display.hold_window_ms", c.Display.HoldWindowMs},
	}
	for _, tm := range timers {
		if tm.val <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", tm.name, tm.val))
		}
	}
	if c.Timing.SoftDropBonusMs < 0 {
		errs = append(errs, fmt.Errorf("timing.soft_drop_bonus_ms must not be negative, got %d", c.Timing.SoftDropBonusMs))
	}

	s := c.Scoring
	if len(s.LinePoints) != 4 {
		errs = append(errs, fmt.Errorf("scoring.line_points needs 4 entries, got %d", len(s.LinePoints)))
	} else {
		for i, p := range s.LinePoints {
			if p <= 0 || (i > 0 && p <= s.LinePoints[i-1]) {
				errs = append(errs, fmt.Errorf("scoring.line_points must be positive and strictly increasing, got %v", s.LinePoints))
				break
			}
		}
	}
	if s.LinesPerLevel < 1 {
		errs = append(errs, fmt.Errorf("scoring.lines_per_level must be at least 1, got %d", s.LinesPerLevel))
	}
	if s.MaxLevel < 1 {
		errs = append(errs, fmt.Errorf("scoring.max_level must be at least 1, got %d", s.MaxLevel))
	}
	if s.HardDropPerRow < 0 {
		errs = append(errs, fmt.Errorf("scoring.hard_drop_per_row must not be negative, got %d", s.HardDropPerRow))
	}
	if s.ComboStep < 0 || s.ComboCap < 1 {
		errs = append(errs, fmt.Errorf("scoring.combo_step must be >= 0 and combo_cap >= 1, got %g and %g", s.ComboStep, s.ComboCap))
	}

	g := c.Gravity
	if g.MinInterval <= 0 {
		errs = append(errs, fmt.Errorf("gravity.min_interval must be positive, got %g", g.MinInterval))
	}
	if g.BaseInterval < g.MinInterval {
		errs = append(errs, fmt.Errorf("gravity.base_interval %g is below min_interval %g", g.BaseInterval, g.MinInterval))
	}
	if g.LevelStep < 0 {
		errs = append(errs, fmt.Errorf("gravity.level_step must not be negative, got %g", g.LevelStep))
	}

	if !IsTheme(c.Display.Theme) {
		errs = append(errs, fmt.Errorf("display.theme %q is not one of %v", c.Display.Theme, Themes))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
