package config

import (
	_ "embed"
)

//go:embed defaults/pinball.yaml
var defaultPinballYAML []byte

// DefaultPinballConfig returns the default table configuration.
// It matches defaults/pinball.yaml and is used when the embedded file
// cannot be parsed.
func DefaultPinballConfig() PinballConfig {
	return PinballConfig{
		Rules: PinballRules{
			Goal:       500,
			StartMoney: 50,
			LaunchCost: 10,
			TimeLimit:  300,
		},
		Physics: PinballPhysics{
			BallRadius:         9,
			Gravity:            1500,
			Damping:            0.995,
			MaxStepMs:          33,
			Substeps:           2,
			BumperRestitution:  0.95,
			FlipperRestitution: 0.92,
			FlipperStrikeX:     240,
			FlipperStrikeY:     920,
		},
		Table: PinballTable{
			BorderRestitution: 0.92,
			DrainWidth:        0,
		},
		Flippers: PinballFlippers{
			Length:     96,
			RestDeg:    30,
			EngagedDeg: -30,
			SpeedUp:    18,
			SpeedDown:  14,
		},
		Launch: PinballLaunch{
			SpeedMin:  1350,
			SpeedMax:  1570,
			Jitter:    40,
			KickMinVX: -360,
			KickMaxVX: -220,
		},
		Holes: PinballHoles{
			Templates: []HoleConfig{
				{Type: "bonus", Radius: 22, Amount: 35},
				{Type: "bonus", Radius: 22, Amount: 40},
				{Type: "bonus", Radius: 18, Amount: 60},
				{Type: "penalty", Radius: 18, Amount: 20},
				{Type: "penalty", Radius: 18, Amount: 25},
				{Type: "death", Radius: 20, Amount: 0},
			},
			MaxAttempts:     900,
			HoleGap:         52,
			BumperClearance: 24,
			ExitClearance:   40,
		},
	}
}
