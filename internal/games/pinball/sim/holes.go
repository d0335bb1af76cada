package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// HoleType classifies what happens when the ball drops into a hole.
type HoleType int

const (
	HoleBonus HoleType = iota
	HolePenalty
	HoleDeath
)

// String returns the upper-case label used on the table.
func (t HoleType) String() string {
	switch t {
	case HoleBonus:
		return "BONUS"
	case HolePenalty:
		return "PENALTY"
	case HoleDeath:
		return "DEATH"
	default:
		return "UNKNOWN"
	}
}

// ParseHoleType parses a hole label, ignoring case.
func ParseHoleType(s string) (HoleType, error) {
	switch strings.ToUpper(s) {
	case "BONUS":
		return HoleBonus, nil
	case "PENALTY":
		return HolePenalty, nil
	case "DEATH":
		return HoleDeath, nil
	}
	return 0, fmt.Errorf("unknown hole type %q", s)
}

// HoleTemplate is an unplaced hole.
type HoleTemplate struct {
	Type   HoleType
	Radius float64
	Amount int
}

// Hole is a placed hole.
type Hole struct {
	HoleTemplate
	Pos Vec2
	// Fallback is set when the hole was placed after the trial cap ran out.
	Fallback bool
}

// Captures reports whether a ball centred at p is inside the hole.
// The capture radius is the hole radius shrunk by slack.
func (h Hole) Captures(p Vec2, slack float64) bool {
	r := h.Radius - slack
	return Dist2(p, h.Pos) <= r*r
}

// Errors returned by ValidateTemplates.
var (
	ErrNoDeathHole       = errors.New("hole templates: no DEATH hole")
	ErrMultipleDeathHole = errors.New("hole templates: more than one DEATH hole")
)

// ValidateTemplates checks that exactly one template is a DEATH hole
// and that every radius is positive.
func ValidateTemplates(tpls []HoleTemplate) error {
	deaths := 0
	for i, t := range tpls {
		if t.Radius <= 0 {
			return fmt.Errorf("hole templates: template %d has radius %.1f", i, t.Radius)
		}
		if t.Type == HoleDeath {
			deaths++
		}
	}
	switch {
	case deaths == 0:
		return ErrNoDeathHole
	case deaths > 1:
		return ErrMultipleDeathHole
	}
	return nil
}

// fallbackGridStep is the scan step used when sampling fails for a non-death hole.
const fallbackGridStep = 8.0

// HoleGenerator places hole templates on the table using bounded random
// sampling with a deterministic fallback.
type HoleGenerator struct {
	params  HoleParams
	bumpers []Bumper
	exit    Vec2
}

// NewHoleGenerator captures the placement constraints from params.
func NewHoleGenerator(p Params) *HoleGenerator {
	return &HoleGenerator{
		params:  p.Holes,
		bumpers: append([]Bumper(nil), p.Bumpers...),
		exit:    p.Gate.Inject,
	}
}

// Generate places every template in order. It always returns one hole per
// template, falling back to fixed positions when sampling runs out of trials.
func (g *HoleGenerator) Generate(rng *rand.Rand) []Hole {
	placed := make([]Hole, 0, len(g.params.Templates))
	for _, tpl := range g.params.Templates {
		placed = append(placed, g.place(tpl, placed, rng))
	}
	return placed
}

func (g *HoleGenerator) place(tpl HoleTemplate, placed []Hole, rng *rand.Rand) Hole {
	area := g.params.Area
	minY, maxY := area.MinY, area.MaxY
	if tpl.Type == HoleDeath {
		minY, maxY = g.params.DeathMinY, g.params.DeathMaxY
	}

	for range g.params.MaxAttempts {
		pos := Vec2{
			X: area.MinX + rng.Float64()*(area.MaxX-area.MinX),
			Y: minY + rng.Float64()*(maxY-minY),
		}
		if g.Fits(tpl, pos, placed) {
			return Hole{HoleTemplate: tpl, Pos: pos}
		}
	}

	band, last := area, area.Center()
	if tpl.Type == HoleDeath {
		band = Rect{MinX: area.MinX, MinY: minY, MaxX: area.MaxX, MaxY: maxY}
		last = g.params.DeathFallback
	}
	if pos, ok := g.scan(tpl, band, placed); ok {
		return Hole{HoleTemplate: tpl, Pos: pos, Fallback: true}
	}
	return Hole{HoleTemplate: tpl, Pos: last, Fallback: true}
}

// scan walks a fixed grid over band and returns the first point that
// satisfies every constraint.
func (g *HoleGenerator) scan(tpl HoleTemplate, band Rect, placed []Hole) (Vec2, bool) {
	for y := band.MinY; y <= band.MaxY; y += fallbackGridStep {
		for x := band.MinX; x <= band.MaxX; x += fallbackGridStep {
			p := Vec2{X: x, Y: y}
			if g.Fits(tpl, p, placed) {
				return p, true
			}
		}
	}
	return Vec2{}, false
}

// Fits reports whether tpl may be centred at pos given the already placed holes.
func (g *HoleGenerator) Fits(tpl HoleTemplate, pos Vec2, placed []Hole) bool {
	for _, rc := range g.params.Forbidden {
		if rc.Contains(pos) {
			return false
		}
	}

	if tpl.Type == HoleDeath && pos.Y > g.params.DeathLimitY {
		return false
	}

	for _, b := range g.bumpers {
		rr := tpl.Radius + b.Radius + g.params.BumperClearance
		if Dist2(pos, b.Center) < rr*rr {
			return false
		}
	}

	for _, h := range placed {
		rr := tpl.Radius + h.Radius + g.params.HoleGap
		if Dist2(pos, h.Pos) < rr*rr {
			return false
		}
	}

	er := tpl.Radius + g.params.ExitClearance
	return Dist2(pos, g.exit) >= er*er
}
