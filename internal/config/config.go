// Package config provides YAML-based game configuration loading and
// difficulty management for the blocks game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Randomizer names accepted in pieces.randomizer.
const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid blocks config")

// BlocksConfig contains all configuration for the blocks game.
type BlocksConfig struct {
	Board      BlocksBoard      `yaml:"board"`
	Gravity    BlocksGravity    `yaml:"gravity"`
	Pieces     BlocksPieces     `yaml:"pieces"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BlocksBoard defines the well dimensions in cells.
type BlocksBoard struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// BlocksGravity defines how often the active piece falls one row.
type BlocksGravity struct {
	IntervalMS int `yaml:"interval_ms"`
}

// Interval returns the gravity period as a duration.
func (g BlocksGravity) Interval() time.Duration {
	return time.Duration(g.IntervalMS) * time.Millisecond
}

// BlocksPieces selects how the next piece is chosen.
type BlocksPieces struct {
	Randomizer string `yaml:"randomizer"` // "uniform" or "bag"
}

// Validate reports the first invalid field.
func (c BlocksConfig) Validate() error {
	if c.Board.Cols <= 0 || c.Board.Rows <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Board.Cols, c.Board.Rows)
	}
	if c.Gravity.IntervalMS <= 0 {
		return fmt.Errorf("%w: gravity.interval_ms must be positive, got %d", ErrInvalidConfig, c.Gravity.IntervalMS)
	}
	switch c.Pieces.Randomizer {
	case RandomizerUniform, RandomizerBag:
	default:
		return fmt.Errorf("%w: unknown pieces.randomizer %q", ErrInvalidConfig, c.Pieces.Randomizer)
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		return fmt.Errorf("%w: unknown difficulty.progression.type %q", ErrInvalidConfig, c.Difficulty.Progression.Type)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to gravity speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name. The empty string means no
// preset.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty preset %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
