package pinball

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/games/pinball/sim"
)

// ParamsFromConfig builds simulation parameters from a table config.
// Geometry not exposed in the config (guides, bumpers, lane, exit gate)
// keeps the standard table layout. The right flipper mirrors the left.
// The bottom is closed unless table.drain_width opens a gap between the
// flippers.
func ParamsFromConfig(cfg config.PinballConfig) (sim.Params, error) {
	if err := cfg.Validate(); err != nil {
		return sim.Params{}, err
	}

	p := sim.DefaultParams()

	p.Rules = sim.Rules{
		Goal:       cfg.Rules.Goal,
		StartMoney: cfg.Rules.StartMoney,
		LaunchCost: cfg.Rules.LaunchCost,
		TotalTime:  time.Duration(cfg.Rules.TimeLimit) * time.Second,
	}

	ph := cfg.Physics
	p.Physics.BallRadius = ph.BallRadius
	p.Physics.Gravity = ph.Gravity
	p.Physics.Damping = ph.Damping
	p.Physics.MaxStep = time.Duration(ph.MaxStepMs) * time.Millisecond
	p.Physics.Substeps = ph.Substeps
	p.Physics.BumperRestitution = ph.BumperRestitution
	p.Physics.FlipperRestitution = ph.FlipperRestitution
	p.Physics.FlipperStrike = sim.V(ph.FlipperStrikeX, ph.FlipperStrikeY)

	p.BorderRestitution = cfg.Table.BorderRestitution
	// The drain never reaches past the flipper pivots, so the floor
	// beside the flippers always catches the ball.
	span := p.Flippers[sim.SideRight].Pivot.X - p.Flippers[sim.SideLeft].Pivot.X
	if gap := min(cfg.Table.DrainWidth, span); gap > 0 {
		p.DrainMinX = (p.Width - gap) / 2
		p.DrainMaxX = p.Width - p.DrainMinX
	}

	fl := cfg.Flippers
	for i := range p.Flippers {
		f := &p.Flippers[i]
		f.Length = fl.Length
		f.SpeedUp = fl.SpeedUp
		f.SpeedDown = fl.SpeedDown
		if f.Side == sim.SideLeft {
			f.Rest = sim.Deg(fl.RestDeg)
			f.Engaged = sim.Deg(fl.EngagedDeg)
		} else {
			f.Rest = sim.Deg(180 - fl.RestDeg)
			f.Engaged = sim.Deg(180 - fl.EngagedDeg)
		}
	}

	ln := cfg.Launch
	p.Launch.VX = sim.Range{Min: -ln.Jitter, Max: ln.Jitter}
	p.Launch.VY = sim.Range{Min: -ln.SpeedMax, Max: -ln.SpeedMin}
	p.Gate.KickVX = sim.Range{Min: ln.KickMinVX, Max: ln.KickMaxVX}

	h := cfg.Holes
	p.Holes.MaxAttempts = h.MaxAttempts
	p.Holes.HoleGap = h.HoleGap
	p.Holes.BumperClearance = h.BumperClearance
	p.Holes.ExitClearance = h.ExitClearance
	p.Holes.Templates = make([]sim.HoleTemplate, 0, len(h.Templates))
	for i, t := range h.Templates {
		typ, err := sim.ParseHoleType(t.Type)
		if err != nil {
			return sim.Params{}, fmt.Errorf("holes.templates[%d]: %w", i, err)
		}
		p.Holes.Templates = append(p.Holes.Templates, sim.HoleTemplate{
			Type:   typ,
			Radius: t.Radius,
			Amount: t.Amount,
		})
	}

	return p, nil
}
