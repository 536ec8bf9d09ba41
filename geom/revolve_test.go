package geom

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

var zAxis = Line{Point: r3.Vec{}, Dir: r3.Vec{Z: 1}}

// annulusFace is an axial cross section on the xz plane: radii 1 to 2,
// height 0 to 1. Revolved about z it gives a square-section ring.
func annulusFace(t *testing.T) Face {
	t.Helper()
	return mustFace(t, FrameXZ(r3.Vec{}), []r2.Vec{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1},
	})
}

// cyl builds the world point at radius rho, azimuth phi and height z
// with azimuth zero on the +x half-plane.
func cyl(rho, phi, z float64) r3.Vec {
	s, c := math.Sincos(phi)
	return r3.Vec{X: rho * c, Y: rho * s, Z: z}
}

func TestRevolveFullTurn(t *testing.T) {
	s, err := Revolve(annulusFace(t), zAxis, 2*math.Pi)
	if err != nil {
		t.Fatal(err)
	}
	if s.NumParts() != 1 {
		t.Fatalf("NumParts = %d, want 1", s.NumParts())
	}
	sw := s.Sweeps()[0]
	if !sw.Full {
		t.Error("full turn sweep not marked Full")
	}
	for _, phi := range []float64{0, 1, math.Pi, 5} {
		if !s.Contains(cyl(1.5, phi, 0.5)) {
			t.Errorf("ring interior at azimuth %g not contained", phi)
		}
	}
	for _, p := range []r3.Vec{
		cyl(0.5, 0, 0.5),  // in the hole
		cyl(2.5, 1, 0.5),  // outside the rim
		cyl(1.5, 2, 1.5),  // above
		cyl(1.5, 3, -0.5), // below
	} {
		if s.Contains(p) {
			t.Errorf("outside point %+v contained", p)
		}
	}
	bb := s.Bounds()
	if math.Abs(bb.Min.X+2) > 1e-9 || math.Abs(bb.Max.X-2) > 1e-9 ||
		math.Abs(bb.Min.Z) > 1e-9 || math.Abs(bb.Max.Z-1) > 1e-9 {
		t.Errorf("bounds = %+v", bb)
	}
}

func TestRevolvePartialSweep(t *testing.T) {
	quarter, err := Revolve(annulusFace(t), zAxis, math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	if quarter.Sweeps()[0].Full {
		t.Error("quarter sweep marked Full")
	}
	if !quarter.Contains(cyl(1.5, math.Pi/4, 0.5)) {
		t.Error("point inside the quarter wedge not contained")
	}
	for _, phi := range []float64{math.Pi, -math.Pi / 4, 3 * math.Pi / 4} {
		if quarter.Contains(cyl(1.5, phi, 0.5)) {
			t.Errorf("point at azimuth %g outside the wedge contained", phi)
		}
	}

	// sweeps beyond a half turn take the union of the two half-planes.
	threeQ, err := Revolve(annulusFace(t), zAxis, 3*math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	for _, phi := range []float64{math.Pi / 4, 3 * math.Pi / 4, 5 * math.Pi / 4} {
		if !threeQ.Contains(cyl(1.5, phi, 0.5)) {
			t.Errorf("point at azimuth %g inside the sweep not contained", phi)
		}
	}
	if threeQ.Contains(cyl(1.5, 7*math.Pi/4, 0.5)) {
		t.Error("point in the remaining gap contained")
	}
}

func TestRevolveNegativeAngle(t *testing.T) {
	s, err := Revolve(annulusFace(t), zAxis, -math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Contains(cyl(1.5, -math.Pi/4, 0.5)) {
		t.Error("negative sweep does not cover negative azimuth")
	}
	if s.Contains(cyl(1.5, math.Pi/4, 0.5)) {
		t.Error("negative sweep covers positive azimuth")
	}
}

// TestRevolveVolume samples the ring on a grid and compares against the
// centroid theorem volume 2π·r̄·A.
func TestRevolveVolume(t *testing.T) {
	s, err := Revolve(annulusFace(t), zAxis, 2*math.Pi)
	if err != nil {
		t.Fatal(err)
	}
	const n = 80
	lo := r3.Vec{X: -2.2, Y: -2.2, Z: -0.1}
	hi := r3.Vec{X: 2.2, Y: 2.2, Z: 1.1}
	d := r3.Sub(hi, lo)
	cell := (d.X / n) * (d.Y / n) * (d.Z / n)
	var vol float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				p := r3.Vec{
					X: lo.X + (float64(i)+0.5)*d.X/n,
					Y: lo.Y + (float64(j)+0.5)*d.Y/n,
					Z: lo.Z + (float64(k)+0.5)*d.Z/n,
				}
				if s.Contains(p) {
					vol += cell
				}
			}
		}
	}
	want := 2 * math.Pi * 1.5 * 1 // centroid radius 1.5, section area 1
	if math.Abs(vol-want)/want > 0.05 {
		t.Errorf("sampled volume = %g, want %g within 5%%", vol, want)
	}
}

func TestRevolveErrors(t *testing.T) {
	face := annulusFace(t)
	if _, err := Revolve(face, zAxis, 0); !errors.Is(err, ErrSweepTooSmall) {
		t.Errorf("zero angle: got %v, want ErrSweepTooSmall", err)
	}
	yAxis := Line{Point: r3.Vec{}, Dir: r3.Vec{Y: 1}}
	if _, err := Revolve(face, yAxis, 1); !errors.Is(err, ErrAxisOutOfPlane) {
		t.Errorf("normal axis: got %v, want ErrAxisOutOfPlane", err)
	}
	offPlane := Line{Point: r3.Vec{Y: 5}, Dir: r3.Vec{Z: 1}}
	if _, err := Revolve(face, offPlane, 1); !errors.Is(err, ErrAxisOutOfPlane) {
		t.Errorf("offset axis: got %v, want ErrAxisOutOfPlane", err)
	}
	straddling := mustFace(t, FrameXZ(r3.Vec{}), []r2.Vec{
		{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: -1, Y: 1},
	})
	if _, err := Revolve(straddling, zAxis, 1); !errors.Is(err, ErrProfileCrossesAxis) {
		t.Errorf("straddling profile: got %v, want ErrProfileCrossesAxis", err)
	}
	// self-intersecting quad with nonzero net area so face construction
	// passes and the kernel check trips.
	bowtie := mustFace(t, FrameXZ(r3.Vec{}), []r2.Vec{
		{X: 1, Y: 0}, {X: 3, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2},
	})
	if _, err := Revolve(bowtie, zAxis, 1); !errors.Is(err, ErrSelfIntersectingProfile) {
		t.Errorf("bowtie profile: got %v, want ErrSelfIntersectingProfile", err)
	}
}

func TestRevolveUpTo(t *testing.T) {
	face := annulusFace(t)
	target := mustFace(t, FrameYZ(r3.Vec{}), []r2.Vec{
		{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10},
	})
	s, err := RevolveUpTo(face, zAxis, target)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Sweeps()[0].Angle; math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("sweep angle = %g, want π/2", got)
	}

	// a closer plane terminates earlier.
	diag, err := NewFrame(r3.Vec{}, r3.Vec{X: 1, Y: 1}, r3.Vec{Z: 1})
	if err != nil {
		t.Fatal(err)
	}
	closer := mustFace(t, diag, []r2.Vec{
		{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10},
	})
	s, err = RevolveUpTo(face, zAxis, closer)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Sweeps()[0].Angle; math.Abs(got-math.Pi/4) > 1e-9 {
		t.Errorf("sweep angle = %g, want π/4", got)
	}
}

func TestRevolveUpToErrors(t *testing.T) {
	face := annulusFace(t)
	if _, err := RevolveUpTo(face, zAxis, Face{}); !errors.Is(err, ErrNullShape) {
		t.Errorf("zero target: got %v, want ErrNullShape", err)
	}
	unreachable := mustFace(t, FrameXY(r3.Vec{Z: 100}), []r2.Vec{
		{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10},
	})
	if _, err := RevolveUpTo(face, zAxis, unreachable); !errors.Is(err, ErrTargetNotReached) {
		t.Errorf("unreachable target: got %v, want ErrTargetNotReached", err)
	}
}
