package sim

import (
	"math"
	"time"
)

// Default logical table size.
const (
	DefaultWidth  = 900
	DefaultHeight = 700
	DefaultPad    = 24
)

// Rules are the economy constants of a run.
type Rules struct {
	Goal       int           // money needed to clear the table
	StartMoney int           // money at the start of a run
	LaunchCost int           // deducted on every launch
	TotalTime  time.Duration // countdown, counted in whole seconds
}

// Physics are the integration and contact constants.
type Physics struct {
	BallRadius         float64
	Gravity            float64 // px/s^2, downward
	Damping            float64 // per-frame factor at 60 Hz, applied as Damping^(dt*60)
	MaxStep            time.Duration
	Substeps           int
	Epsilon            float64 // floor for contact distance when normalising
	SegmentPush        float64
	BumperPush         float64
	BumperRestitution  float64
	BumperLift         float64 // scale for the vertical bumper impulse
	FlipperPush        float64
	FlipperRestitution float64
	FlipperStrike      Vec2 // X toward table centre, Y upward
	HoleSlack          float64
}

// LaunchParams describe the plunger lane and the launch impulse.
type LaunchParams struct {
	Start    Vec2    // rest position of the ball in the lane
	LaneMinX float64 // lane x-band while in launch mode
	LaneMaxX float64
	VX       Range
	VY       Range
}

// GateParams describe the exit gate at the top of the launch lane.
type GateParams struct {
	ExitY  float64
	Inject Vec2
	KickVX Range
	KickVY Range
}

// HoleParams configure the hole layout generator.
type HoleParams struct {
	Templates       []HoleTemplate
	Area            Rect    // sampling rectangle for non-death holes
	DeathMinY       float64 // death hole y sampling band
	DeathMaxY       float64
	DeathLimitY     float64 // death holes below this are rejected
	Forbidden       []Rect
	BumperClearance float64
	HoleGap         float64
	ExitClearance   float64
	MaxAttempts     int
	DeathFallback   Vec2
}

// Params is the complete, immutable description of a table and its rules.
type Params struct {
	Width, Height, Pad float64

	BorderRestitution    float64
	// DrainMinX and DrainMaxX bound an optional gap in the bottom border
	// through which the ball falls back to the launch lane. An empty range
	// keeps the bottom closed.
	DrainMinX, DrainMaxX float64
	Guides               []Segment
	Bumpers              []Bumper
	Flippers             [2]FlipperSpec

	Rules   Rules
	Physics Physics
	Launch  LaunchParams
	Gate    GateParams
	Holes   HoleParams
}

// DefaultTemplates are the six holes placed on every table, in placement order.
func DefaultTemplates() []HoleTemplate {
	return []HoleTemplate{
		{Type: HoleBonus, Radius: 22, Amount: 35},
		{Type: HoleBonus, Radius: 22, Amount: 40},
		{Type: HoleBonus, Radius: 18, Amount: 60},
		{Type: HolePenalty, Radius: 18, Amount: 20},
		{Type: HolePenalty, Radius: 18, Amount: 25},
		{Type: HoleDeath, Radius: 20, Amount: 0},
	}
}

// DefaultParams returns the standard 900x700 table.
func DefaultParams() Params {
	const (
		w   = DefaultWidth
		h   = DefaultHeight
		pad = DefaultPad
	)
	exitY := 120.0

	return Params{
		Width:             w,
		Height:            h,
		Pad:               pad,
		BorderRestitution: 0.92,
		Guides: []Segment{
			{A: V(pad, 130), B: V(170, 80), Restitution: 0.94},
			{A: V(w-260, 90), B: V(w-pad, 140), Restitution: 0.94},
			{A: V(pad, h-140), B: V(210, h-90), Restitution: 0.94},
			{A: V(w-210, h-90), B: V(w-pad, h-140), Restitution: 0.94},
		},
		Bumpers: []Bumper{
			{Center: V(290, 160), Radius: 24, Power: 640, Delta: 2},
			{Center: V(450, 120), Radius: 28, Power: 720, Delta: 2},
			{Center: V(620, 170), Radius: 24, Power: 640, Delta: 2},
			{Center: V(350, 280), Radius: 22, Power: 560, Delta: -2},
			{Center: V(540, 280), Radius: 22, Power: 560, Delta: -2},
		},
		Flippers: [2]FlipperSpec{
			{
				Side:      SideLeft,
				Pivot:     V(350, h-78),
				Length:    96,
				Rest:      Deg(30),
				Engaged:   Deg(-30),
				SpeedUp:   18,
				SpeedDown: 14,
			},
			{
				Side:      SideRight,
				Pivot:     V(550, h-78),
				Length:    96,
				Rest:      Deg(150),
				Engaged:   Deg(210),
				SpeedUp:   18,
				SpeedDown: 14,
			},
		},
		Rules: Rules{
			Goal:       500,
			StartMoney: 50,
			LaunchCost: 10,
			TotalTime:  300 * time.Second,
		},
		Physics: Physics{
			BallRadius:         9,
			Gravity:            1500,
			Damping:            0.995,
			MaxStep:            33 * time.Millisecond,
			Substeps:           2,
			Epsilon:            1e-4,
			SegmentPush:        0.8,
			BumperPush:         0.9,
			BumperRestitution:  0.95,
			BumperLift:         0.6,
			FlipperPush:        1.0,
			FlipperRestitution: 0.92,
			FlipperStrike:      V(240, 920),
			HoleSlack:          2,
		},
		Launch: LaunchParams{
			Start:    V(w-58, h-90),
			LaneMinX: w - 82,
			LaneMaxX: w - 34,
			VX:       Range{Min: -40, Max: 40},
			VY:       Range{Min: -1570, Max: -1350},
		},
		Gate: GateParams{
			ExitY:  exitY,
			Inject: V(w-120, exitY+18),
			KickVX: Range{Min: -360, Max: -220},
			KickVY: Range{Min: 120, Max: 200},
		},
		Holes: HoleParams{
			Templates:   DefaultTemplates(),
			Area:        Rect{MinX: pad + 60, MinY: pad + 70, MaxX: w - pad - 140, MaxY: h - pad - 160},
			DeathMinY:   pad + 90,
			DeathMaxY:   h - pad - 240,
			DeathLimitY: h - 220,
			Forbidden: []Rect{
				{MinX: w - 110, MinY: pad, MaxX: w - pad, MaxY: h - pad},
				{MinX: pad, MinY: h - 140, MaxX: w - pad, MaxY: h - pad},
			},
			BumperClearance: 24,
			HoleGap:         52,
			ExitClearance:   40,
			MaxAttempts:     900,
			DeathFallback:   V(w*0.55, h*0.35),
		},
	}
}

// Deg converts degrees to radians.
func Deg(d float64) float64 {
	return d * math.Pi / 180
}

// Clone returns a deep copy so callers can tweak params without aliasing.
func (p Params) Clone() Params {
	c := p
	c.Guides = append([]Segment(nil), p.Guides...)
	c.Bumpers = append([]Bumper(nil), p.Bumpers...)
	c.Holes.Templates = append([]HoleTemplate(nil), p.Holes.Templates...)
	c.Holes.Forbidden = append([]Rect(nil), p.Holes.Forbidden...)
	return c
}
