// Package config provides YAML/TOML-based table configuration loading and
// difficulty presets for the pinball game.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// PinballConfig contains all configuration for the pinball table.
type PinballConfig struct {
	Rules    PinballRules    `yaml:"rules" toml:"rules"`
	Physics  PinballPhysics  `yaml:"physics" toml:"physics"`
	Table    PinballTable    `yaml:"table" toml:"table"`
	Flippers PinballFlippers `yaml:"flippers" toml:"flippers"`
	Launch   PinballLaunch   `yaml:"launch" toml:"launch"`
	Holes    PinballHoles    `yaml:"holes" toml:"holes"`
}

// PinballRules defines the economy of a run.
type PinballRules struct {
	Goal       int `yaml:"goal" toml:"goal"`
	StartMoney int `yaml:"start_money" toml:"start_money"`
	LaunchCost int `yaml:"launch_cost" toml:"launch_cost"`
	TimeLimit  int `yaml:"time_limit" toml:"time_limit"` // seconds
}

// PinballPhysics defines ball motion and contact response.
type PinballPhysics struct {
	BallRadius         float64 `yaml:"ball_radius" toml:"ball_radius"`
	Gravity            float64 `yaml:"gravity" toml:"gravity"`
	Damping            float64 `yaml:"damping" toml:"damping"`
	MaxStepMs          int     `yaml:"max_step_ms" toml:"max_step_ms"`
	Substeps           int     `yaml:"substeps" toml:"substeps"`
	BumperRestitution  float64 `yaml:"bumper_restitution" toml:"bumper_restitution"`
	FlipperRestitution float64 `yaml:"flipper_restitution" toml:"flipper_restitution"`
	FlipperStrikeX     float64 `yaml:"flipper_strike_x" toml:"flipper_strike_x"`
	FlipperStrikeY     float64 `yaml:"flipper_strike_y" toml:"flipper_strike_y"`
}

// PinballTable defines the static border.
type PinballTable struct {
	BorderRestitution float64 `yaml:"border_restitution" toml:"border_restitution"`
	DrainWidth        float64 `yaml:"drain_width" toml:"drain_width"` // capped to the flipper span, 0 closes the bottom
}

// PinballFlippers defines the left flipper; the right one is its mirror image.
type PinballFlippers struct {
	Length     float64 `yaml:"length" toml:"length"`
	RestDeg    float64 `yaml:"rest_deg" toml:"rest_deg"`
	EngagedDeg float64 `yaml:"engaged_deg" toml:"engaged_deg"`
	SpeedUp    float64 `yaml:"speed_up" toml:"speed_up"`     // rad/s while engaging
	SpeedDown  float64 `yaml:"speed_down" toml:"speed_down"` // rad/s while releasing
}

// PinballLaunch defines launch and exit gate velocity ranges.
type PinballLaunch struct {
	SpeedMin  float64 `yaml:"speed_min" toml:"speed_min"`
	SpeedMax  float64 `yaml:"speed_max" toml:"speed_max"`
	Jitter    float64 `yaml:"jitter" toml:"jitter"`
	KickMinVX float64 `yaml:"kick_min_vx" toml:"kick_min_vx"`
	KickMaxVX float64 `yaml:"kick_max_vx" toml:"kick_max_vx"`
}

// PinballHoles defines the randomized hole layout.
type PinballHoles struct {
	Templates       []HoleConfig `yaml:"templates" toml:"templates"`
	MaxAttempts     int          `yaml:"max_attempts" toml:"max_attempts"`
	HoleGap         float64      `yaml:"hole_gap" toml:"hole_gap"`
	BumperClearance float64      `yaml:"bumper_clearance" toml:"bumper_clearance"`
	ExitClearance   float64      `yaml:"exit_clearance" toml:"exit_clearance"`
}

// HoleConfig is one hole template.
type HoleConfig struct {
	Type   string  `yaml:"type" toml:"type"` // bonus, penalty or death
	Radius float64 `yaml:"radius" toml:"radius"`
	Amount int     `yaml:"amount" toml:"amount"`
}

// Validate reports configuration that would make the table unplayable.
func (c PinballConfig) Validate() error {
	var errs []error

	r := c.Rules
	if r.Goal <= 0 {
		errs = append(errs, fmt.Errorf("rules.goal must be positive, got %d", r.Goal))
	}
	if r.StartMoney <= 0 {
		errs = append(errs, fmt.Errorf("rules.start_money must be positive, got %d", r.StartMoney))
	}
	if r.LaunchCost < 0 {
		errs = append(errs, fmt.Errorf("rules.launch_cost must not be negative, got %d", r.LaunchCost))
	}
	if r.TimeLimit <= 0 {
		errs = append(errs, fmt.Errorf("rules.time_limit must be positive, got %d", r.TimeLimit))
	}

	p := c.Physics
	if p.BallRadius <= 0 {
		errs = append(errs, errors.New("physics.ball_radius must be positive"))
	}
	if p.Substeps < 1 {
		errs = append(errs, fmt.Errorf("physics.substeps must be at least 1, got %d", p.Substeps))
	}
	if p.MaxStepMs <= 0 {
		errs = append(errs, errors.New("physics.max_step_ms must be positive"))
	}

	if c.Table.DrainWidth < 0 {
		errs = append(errs, fmt.Errorf("table.drain_width must not be negative, got %.1f", c.Table.DrainWidth))
	}

	if c.Flippers.Length <= 0 || c.Flippers.SpeedUp <= 0 || c.Flippers.SpeedDown <= 0 {
		errs = append(errs, errors.New("flippers: length and speeds must be positive"))
	}

	if c.Launch.SpeedMin <= 0 || c.Launch.SpeedMax < c.Launch.SpeedMin {
		errs = append(errs, errors.New("launch: need 0 < speed_min <= speed_max"))
	}

	deaths := 0
	for i, h := range c.Holes.Templates {
		switch strings.ToLower(h.Type) {
		case "death":
			deaths++
		case "bonus", "penalty":
		default:
			errs = append(errs, fmt.Errorf("holes.templates[%d]: unknown type %q", i, h.Type))
		}
		if h.Radius <= 0 {
			errs = append(errs, fmt.Errorf("holes.templates[%d]: radius must be positive", i))
		}
	}
	if deaths != 1 {
		errs = append(errs, fmt.Errorf("holes.templates: need exactly one death hole, got %d", deaths))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI value to a preset. Unknown values
// return an empty preset, which leaves the config untouched.
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(strings.ToLower(s)); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// ApplyPinballPreset modifies the config based on a difficulty preset.
// Normal and fixed keep the loaded values.
func ApplyPinballPreset(cfg *PinballConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.StartMoney = 80
		cfg.Rules.TimeLimit = 360
	case DifficultyHard:
		cfg.Rules.StartMoney = 30
		cfg.Rules.TimeLimit = 240
		cfg.Rules.Goal = 600
	}
}
