package sim

import "math"

// ClosestPoint returns the point on segment ab nearest to p.
func ClosestPoint(a, b, p Vec2) Vec2 {
	ab := b.Sub(a)
	c1 := p.Sub(a).Dot(ab)
	if c1 <= 0 {
		return a
	}
	c2 := ab.Len2()
	if c2 <= c1 {
		return b
	}
	return a.Add(ab.Scale(c1 / c2))
}

// Reflect mirrors v about a unit normal n with restitution e:
// v' = v - (1+e)(v.n)n.
func Reflect(v, n Vec2, e float64) Vec2 {
	return v.Sub(n.Scale((1 + e) * v.Dot(n)))
}

// contact returns the outward normal from p to the ball centre and the
// centre distance when they are closer than reach. The distance is floored
// at eps so a centre sitting exactly on p never divides by zero.
func contact(center, p Vec2, reach, eps float64) (n Vec2, d float64, ok bool) {
	d2 := Dist2(center, p)
	if d2 >= reach*reach {
		return Vec2{}, 0, false
	}
	d = math.Max(math.Sqrt(d2), eps)
	return center.Sub(p).Scale(1 / d), d, true
}

// ResolveSegment pushes the ball out of a static segment and reflects it.
func ResolveSegment(b *Ball, s Segment, ph Physics) bool {
	cp := ClosestPoint(s.A, s.B, b.Pos)
	n, d, ok := contact(b.Pos, cp, b.Radius, ph.Epsilon)
	if !ok {
		return false
	}
	b.Pos = b.Pos.Add(n.Scale(b.Radius - d + ph.SegmentPush))
	b.Vel = Reflect(b.Vel, n, s.Restitution)
	return true
}

// ResolveBumper pushes the ball out of a bumper, reflects it and adds the
// bumper kick. The caller applies the money delta.
func ResolveBumper(b *Ball, bp Bumper, ph Physics) bool {
	reach := b.Radius + bp.Radius
	n, d, ok := contact(b.Pos, bp.Center, reach, ph.Epsilon)
	if !ok {
		return false
	}
	b.Pos = b.Pos.Add(n.Scale(reach - d + ph.BumperPush))
	v := Reflect(b.Vel, n, ph.BumperRestitution)
	b.Vel = Vec2{
		X: v.X + n.X*bp.Power,
		Y: v.Y + n.Y*bp.Power*ph.BumperLift,
	}
	return true
}

// ResolveFlipper treats the flipper arm as a segment. While the flipper is
// engaged every contact adds a strike toward the table centre and upward.
func ResolveFlipper(b *Ball, f Flipper, ph Physics) bool {
	line := f.Line()
	cp := ClosestPoint(line.A, line.B, b.Pos)
	n, d, ok := contact(b.Pos, cp, b.Radius, ph.Epsilon)
	if !ok {
		return false
	}
	b.Pos = b.Pos.Add(n.Scale(b.Radius - d + ph.FlipperPush))
	b.Vel = Reflect(b.Vel, n, ph.FlipperRestitution)
	if f.Engaged {
		b.Vel.X += f.Spec.Side.toCenter() * ph.FlipperStrike.X
		b.Vel.Y -= ph.FlipperStrike.Y
	}
	return true
}
