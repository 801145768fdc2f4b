package tetris

import (
	"math"
	"time"

	"github.com/vovakirdan/tetrix/internal/config"
)

// Placement is the outcome of registering one locked piece.
type Placement struct {
	Lines           int
	Points          int
	Combo           int
	ComboMultiplier float64 // 1 when no combo bonus applied
	LeveledUp       bool
	IsTetris        bool
	Level           int // level after the placement
}

// Scoring tracks score, level, cleared lines and the combo streak for one game.
type Scoring struct {
	cfg     config.ScoringConfig
	gravity config.GravityConfig

	score int
	level int
	lines int
	combo int
}

// NewScoring creates a scoring engine at level 1.
func NewScoring(cfg config.ScoringConfig, gravity config.GravityConfig) *Scoring {
	s := &Scoring{cfg: cfg, gravity: gravity}
	s.Reset()
	return s
}

// Reset starts a new game.
func (s *Scoring) Reset() {
	s.score = 0
	s.level = 1
	s.lines = 0
	s.combo = 0
}

// RegisterPlacement scores a placement that cleared the given number of lines.
// Base points use the level before this placement. The combo multiplier applies only from
// the second consecutive clearing placement on, and the result is floored.
func (s *Scoring) RegisterPlacement(lines int) Placement {
	if lines <= 0 {
		s.combo = 0
		return Placement{ComboMultiplier: 1, Level: s.level}
	}

	idx := min(lines, len(s.cfg.LinePoints)) - 1
	base := s.cfg.LinePoints[idx] * s.level

	s.combo++
	mult := 1.0
	points := base
	if s.combo > 1 {
		mult = math.Min(1+float64(s.combo-1)*s.cfg.ComboStep, s.cfg.ComboCap)
		points = int(math.Floor(float64(base) * mult))
	}

	s.score += points
	s.lines += lines

	prev := s.level
	s.level = s.levelFor(s.lines)

	return Placement{
		Lines:           lines,
		Points:          points,
		Combo:           s.combo,
		ComboMultiplier: mult,
		LeveledUp:       s.level > prev,
		IsTetris:        lines == 4,
		Level:           s.level,
	}
}

// levelFor maps total cleared lines to a level, capped at MaxLevel.
func (s *Scoring) levelFor(lines int) int {
	return min(lines/s.cfg.LinesPerLevel+1, s.cfg.MaxLevel)
}

// RegisterHardDropBonus adds the per-row hard drop bonus, untouched by level or combo.
func (s *Scoring) RegisterHardDropBonus(rows int) int {
	if rows <= 0 {
		return 0
	}
	points := rows * s.cfg.HardDropPerRow
	s.score += points
	return points
}

// CurrentDropIntervalSeconds returns the gravity period for the current level.
func (s *Scoring) CurrentDropIntervalSeconds() float64 {
	return math.Max(s.gravity.BaseInterval-float64(s.level-1)*s.gravity.LevelStep, s.gravity.MinInterval)
}

// DropInterval is CurrentDropIntervalSeconds rounded to whole milliseconds.
func (s *Scoring) DropInterval() time.Duration {
	return time.Duration(math.Round(s.CurrentDropIntervalSeconds()*1000)) * time.Millisecond
}

// Score returns the current score.
func (s *Scoring) Score() int { return s.score }

// Level returns the current level, starting at 1.
func (s *Scoring) Level() int { return s.level }

// Lines returns the total lines cleared this game.
func (s *Scoring) Lines() int { return s.lines }

// Combo returns the current streak of consecutive clearing placements.
func (s *Scoring) Combo() int { return s.combo }
