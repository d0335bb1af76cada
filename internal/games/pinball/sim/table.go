package sim

// Segment is a static collidable line with its own restitution.
type Segment struct {
	A, B        Vec2
	Restitution float64
}

// Bumper is a circular kicker that changes money on every contact.
type Bumper struct {
	Center Vec2
	Radius float64
	Power  float64
	Delta  int // money change per hit, positive for bonus bumpers
}

// Bonus reports whether hitting the bumper adds money.
func (b Bumper) Bonus() bool {
	return b.Delta > 0
}

// Table is the immutable static geometry of the playfield.
type Table struct {
	width, height, pad float64
	segments           []Segment
	border             int // leading segments that form the outer border
	bumpers            []Bumper
}

// NewTable builds the border, guide rails and bumpers from params.
// The bottom border is split around the drain opening.
func NewTable(p Params) *Table {
	w, h, pad, e := p.Width, p.Height, p.Pad, p.BorderRestitution

	segs := []Segment{
		{A: V(pad, pad), B: V(w-pad, pad), Restitution: e},
		{A: V(w-pad, pad), B: V(w-pad, h-pad), Restitution: e},
		{A: V(pad, h-pad), B: V(pad, pad), Restitution: e},
	}
	if p.DrainMaxX > p.DrainMinX {
		segs = append(segs,
			Segment{A: V(w-pad, h-pad), B: V(p.DrainMaxX, h-pad), Restitution: e},
			Segment{A: V(p.DrainMinX, h-pad), B: V(pad, h-pad), Restitution: e},
		)
	} else {
		segs = append(segs, Segment{A: V(w-pad, h-pad), B: V(pad, h-pad), Restitution: e})
	}
	border := len(segs)
	segs = append(segs, p.Guides...)

	return &Table{
		width:    w,
		height:   h,
		pad:      pad,
		segments: segs,
		border:   border,
		bumpers:  append([]Bumper(nil), p.Bumpers...),
	}
}

// Width returns the logical table width.
func (t *Table) Width() float64 { return t.width }

// Height returns the logical table height.
func (t *Table) Height() float64 { return t.height }

// Pad returns the border inset.
func (t *Table) Pad() float64 { return t.pad }

// Segments returns a copy of all static segments, border first.
func (t *Table) Segments() []Segment {
	return append([]Segment(nil), t.segments...)
}

// BorderCount is the number of leading segments in Segments that form the
// outer border; the rest are guide rails.
func (t *Table) BorderCount() int {
	return t.border
}

// Bumpers returns a copy of the bumpers.
func (t *Table) Bumpers() []Bumper {
	return append([]Bumper(nil), t.bumpers...)
}

// FloorY is the y beyond which a ball is considered drained.
func (t *Table) FloorY(ballRadius float64) float64 {
	return t.height - t.pad - ballRadius
}
