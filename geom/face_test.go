package geom

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func mustFace(t *testing.T, frame Frame, outline []r2.Vec) Face {
	t.Helper()
	f, err := NewFace(frame, outline)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestNewFaceValidation(t *testing.T) {
	frame := FrameXY(r3.Vec{})
	if _, err := NewFace(frame, []r2.Vec{{X: 0}, {X: 1}}); !errors.Is(err, ErrDegenerateFace) {
		t.Errorf("2 vertices: got %v, want ErrDegenerateFace", err)
	}
	collinear := []r2.Vec{{X: 0}, {X: 1}, {X: 2}}
	if _, err := NewFace(frame, collinear); !errors.Is(err, ErrDegenerateFace) {
		t.Errorf("zero area: got %v, want ErrDegenerateFace", err)
	}
}

func TestNewFaceForcesCCW(t *testing.T) {
	frame := FrameXY(r3.Vec{})
	cw := []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	f := mustFace(t, frame, cw)
	if f.Area() <= 0 {
		t.Errorf("area = %g after reorientation, want positive", f.Area())
	}
	// the input slice is not mutated.
	if cw[0] != (r2.Vec{X: 0, Y: 0}) || cw[1] != (r2.Vec{X: 0, Y: 1}) {
		t.Error("NewFace mutated the input outline")
	}
}

func TestFaceGeometry(t *testing.T) {
	origin := r3.Vec{X: 1, Y: 2, Z: 3}
	f := mustFace(t, FrameXZ(origin), []r2.Vec{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 1},
	})
	if got := f.Area(); math.Abs(got-2) > 1e-12 {
		t.Errorf("area = %g, want 2", got)
	}
	want := r3.Add(origin, r3.Vec{X: 1, Z: 0.5})
	if got := f.Centroid(); !vecApproxEqual(got, want, 1e-12) {
		t.Errorf("centroid = %+v, want %+v", got, want)
	}
	verts := f.Vertices()
	if len(verts) != 4 {
		t.Fatalf("got %d vertices, want 4", len(verts))
	}
	if !vecApproxEqual(verts[1], r3.Add(origin, r3.Vec{X: 2}), 1e-12) {
		t.Errorf("vertex 1 = %+v", verts[1])
	}
	if f.IsZero() {
		t.Error("constructed face reports IsZero")
	}
	if !(Face{}).IsZero() {
		t.Error("zero face does not report IsZero")
	}
}

func TestFaceMove(t *testing.T) {
	f := mustFace(t, FrameXY(r3.Vec{}), []r2.Vec{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1},
	})
	zAxis := Line{Point: r3.Vec{}, Dir: r3.Vec{Z: 1}}
	g := f.Move(RotationAbout(zAxis, math.Pi/2))
	if math.Abs(g.Area()-f.Area()) > 1e-12 {
		t.Error("rigid move changed the area")
	}
	if !vecApproxEqual(g.Normal(), r3.Vec{Z: 1}, 1e-12) {
		t.Errorf("rotation about the normal changed it: %+v", g.Normal())
	}
	// original face untouched.
	if !vecApproxEqual(f.Centroid(), r3.Vec{X: 1.5, Y: 0.5}, 1e-12) {
		t.Error("Move mutated the receiver")
	}
	if !vecApproxEqual(g.Centroid(), r3.Vec{X: -0.5, Y: 1.5}, 1e-9) {
		t.Errorf("moved centroid = %+v", g.Centroid())
	}
}

func TestLineCrossesFace(t *testing.T) {
	// unit square at z=0.
	f := mustFace(t, FrameXY(r3.Vec{}), []r2.Vec{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	})
	pierce := Line{Point: r3.Vec{X: 0.5, Y: 0.5, Z: -3}, Dir: r3.Vec{Z: 1}}
	if !LineCrossesFace(pierce, f) {
		t.Error("piercing line not detected")
	}
	miss := Line{Point: r3.Vec{X: 2, Y: 2, Z: -3}, Dir: r3.Vec{Z: 1}}
	if LineCrossesFace(miss, f) {
		t.Error("missing line reported crossing")
	}
	// in-plane line through the interior.
	inPlane := Line{Point: r3.Vec{X: 0.5, Y: -5}, Dir: r3.Vec{Y: 1}}
	if !LineCrossesFace(inPlane, f) {
		t.Error("in-plane crossing line not detected")
	}
	// in-plane line along an edge touches but does not cross.
	edge := Line{Point: r3.Vec{}, Dir: r3.Vec{Y: 1}}
	if LineCrossesFace(edge, f) {
		t.Error("edge line reported crossing")
	}
	// in-plane line fully outside the outline.
	outside := Line{Point: r3.Vec{X: -1}, Dir: r3.Vec{Y: 1}}
	if LineCrossesFace(outside, f) {
		t.Error("outside in-plane line reported crossing")
	}
	// parallel to the plane but off it.
	parallel := Line{Point: r3.Vec{X: 0.5, Z: 1}, Dir: r3.Vec{Y: 1}}
	if LineCrossesFace(parallel, f) {
		t.Error("off-plane parallel line reported crossing")
	}
}
