package sim

import (
	"errors"
	"math/rand"
	"testing"
)

const layoutRuns = 1000

func TestGenerateExactlyOneDeathHole(t *testing.T) {
	p := DefaultParams()
	gen := NewHoleGenerator(p)

	for seed := range int64(layoutRuns) {
		holes := gen.Generate(rand.New(rand.NewSource(seed)))

		if len(holes) != len(p.Holes.Templates) {
			t.Fatalf("seed %d: expected %d holes, got %d", seed, len(p.Holes.Templates), len(holes))
		}

		deaths := 0
		for _, h := range holes {
			if h.Type == HoleDeath {
				deaths++
			}
		}
		if deaths != 1 {
			t.Fatalf("seed %d: expected exactly one DEATH hole, got %d", seed, deaths)
		}
	}
}

func TestGenerateAvoidsLaunchLane(t *testing.T) {
	p := DefaultParams()
	lane := p.Holes.Forbidden[0]
	gen := NewHoleGenerator(p)

	for seed := range int64(layoutRuns) {
		for _, h := range gen.Generate(rand.New(rand.NewSource(seed))) {
			if lane.Contains(h.Pos) {
				t.Fatalf("seed %d: %s hole at %v is inside the launch lane %+v", seed, h.Type, h.Pos, lane)
			}
		}
	}
}

func TestGenerateConstraints(t *testing.T) {
	p := DefaultParams()
	gen := NewHoleGenerator(p)
	hp := p.Holes

	for seed := range int64(layoutRuns) {
		holes := gen.Generate(rand.New(rand.NewSource(seed)))

		for i, h := range holes {
			if h.Fallback {
				continue
			}

			for _, rc := range hp.Forbidden {
				if rc.Contains(h.Pos) {
					t.Fatalf("seed %d: hole %d inside forbidden rect %+v", seed, i, rc)
				}
			}

			if h.Type == HoleDeath {
				if h.Pos.Y > hp.DeathLimitY || h.Pos.Y < hp.DeathMinY || h.Pos.Y > hp.DeathMaxY {
					t.Fatalf("seed %d: death hole at y=%.1f outside its band", seed, h.Pos.Y)
				}
			} else if !hp.Area.Contains(h.Pos) {
				t.Fatalf("seed %d: hole %d at %v outside placement area", seed, i, h.Pos)
			}

			for _, b := range p.Bumpers {
				rr := h.Radius + b.Radius + hp.BumperClearance
				if Dist2(h.Pos, b.Center) < rr*rr {
					t.Fatalf("seed %d: hole %d too close to bumper at %v", seed, i, b.Center)
				}
			}

			for j := range i {
				o := holes[j]
				rr := h.Radius + o.Radius + hp.HoleGap
				if Dist2(h.Pos, o.Pos) < rr*rr {
					t.Fatalf("seed %d: holes %d and %d overlap", seed, j, i)
				}
			}

			er := h.Radius + hp.ExitClearance
			if Dist2(h.Pos, p.Gate.Inject) < er*er {
				t.Fatalf("seed %d: hole %d too close to the exit point", seed, i)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	gen := NewHoleGenerator(DefaultParams())

	a := gen.Generate(rand.New(rand.NewSource(42)))
	b := gen.Generate(rand.New(rand.NewSource(42)))

	for i := range a {
		if a[i] != b[i] {
			t.Errorf("hole %d differs for the same seed: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateFallback(t *testing.T) {
	p := DefaultParams()
	p.Holes.MaxAttempts = 0
	gen := NewHoleGenerator(p)

	holes := gen.Generate(rand.New(rand.NewSource(1)))
	if len(holes) != len(p.Holes.Templates) {
		t.Fatalf("fallback must still place every template, got %d", len(holes))
	}

	for i, h := range holes {
		if !h.Fallback {
			t.Errorf("hole %d should be marked as fallback", i)
		}
		if !gen.Fits(h.HoleTemplate, h.Pos, holes[:i]) {
			t.Errorf("hole %d (%s) fallback at %v violates constraints", i, h.Type, h.Pos)
		}
		if h.Type == HoleDeath && (h.Pos.Y < p.Holes.DeathMinY || h.Pos.Y > p.Holes.DeathMaxY) {
			t.Errorf("death fallback at %v left the death band", h.Pos)
		}
	}

	// Fallback is independent of the RNG
	again := gen.Generate(rand.New(rand.NewSource(999)))
	for i := range holes {
		if holes[i] != again[i] {
			t.Errorf("fallback hole %d differs between seeds", i)
		}
	}
}

func TestGenerateFallbackWhenNothingFits(t *testing.T) {
	p := DefaultParams()
	p.Holes.MaxAttempts = 0
	// Forbid the whole placement area
	p.Holes.Forbidden = append(p.Holes.Forbidden, Rect{MinX: 0, MinY: 0, MaxX: p.Width, MaxY: p.Height})
	gen := NewHoleGenerator(p)

	for _, h := range gen.Generate(rand.New(rand.NewSource(1))) {
		want := p.Holes.Area.Center()
		if h.Type == HoleDeath {
			want = p.Holes.DeathFallback
		}
		if h.Pos != want || !h.Fallback {
			t.Errorf("expected %s hole at %v as last resort, got %v", h.Type, want, h.Pos)
		}
	}
}

func TestValidateTemplates(t *testing.T) {
	tests := []struct {
		name    string
		tpls    []HoleTemplate
		wantErr error
	}{
		{"default", DefaultTemplates(), nil},
		{"no death", []HoleTemplate{{Type: HoleBonus, Radius: 10, Amount: 5}}, ErrNoDeathHole},
		{
			"two deaths",
			[]HoleTemplate{{Type: HoleDeath, Radius: 10}, {Type: HoleDeath, Radius: 12}},
			ErrMultipleDeathHole,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTemplates(tc.tpls)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateTemplates() = %v, expected %v", err, tc.wantErr)
			}
		})
	}

	if err := ValidateTemplates([]HoleTemplate{{Type: HoleDeath, Radius: 0}}); err == nil {
		t.Error("zero radius should be rejected")
	}
}

func TestHoleCaptures(t *testing.T) {
	h := Hole{HoleTemplate: HoleTemplate{Type: HoleBonus, Radius: 20}, Pos: V(100, 100)}

	if !h.Captures(V(100, 118), 2) {
		t.Error("ball on the capture edge should be captured")
	}
	if h.Captures(V(100, 118.5), 2) {
		t.Error("ball just outside the shrunk radius should not be captured")
	}
}

func TestParseHoleType(t *testing.T) {
	for _, ht := range []HoleType{HoleBonus, HolePenalty, HoleDeath} {
		got, err := ParseHoleType(ht.String())
		if err != nil || got != ht {
			t.Errorf("ParseHoleType(%q) = %v, %v", ht.String(), got, err)
		}
	}
	if _, err := ParseHoleType("jackpot"); err == nil {
		t.Error("unknown hole type should fail")
	}
}
