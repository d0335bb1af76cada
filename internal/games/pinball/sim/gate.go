package sim

import "math/rand"

// ApplyExitGate moves a launched ball into the playfield once it has
// climbed to the exit height. It fires at most once per launch because it
// clears LaunchMode.
func ApplyExitGate(b *Ball, g GateParams, rng *rand.Rand) bool {
	if !b.Active || !b.LaunchMode || b.Pos.Y > g.ExitY {
		return false
	}
	b.LaunchMode = false
	b.Pos = g.Inject
	b.Vel = Vec2{X: g.KickVX.Sample(rng), Y: g.KickVY.Sample(rng)}
	return true
}
