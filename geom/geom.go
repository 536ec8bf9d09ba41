// Package geom is a light boundary-representation geometry kernel for
// solids of revolution: rigid transforms, planar polygonal faces, swept
// solid construction with angle or face termination, and boolean union
// over swept parts.
//
// Solids expose an SDF-flavored surface through Evaluate, returning a
// pseudo-distance that is negative inside the solid. The pseudo-distance
// is exact in the profile half-plane and conservative across the sweep
// wedge, which is all containment queries and sampling need.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Angular is the smallest angle in radians the kernel distinguishes
	// from zero.
	Angular = 1e-12
	// lengthTol is the coincidence tolerance for lengths.
	lengthTol = 1e-9
	pi        = math.Pi
	tau       = 2 * math.Pi
)

// Line is an infinite line given by a base point and a unit direction.
type Line struct {
	Point r3.Vec
	Dir   r3.Vec
}

// NewLine returns the line through point with direction dir.
// dir need not be normalized. Near-zero directions error.
func NewLine(point, dir r3.Vec) (Line, error) {
	n := r3.Norm(dir)
	if n < lengthTol {
		return Line{}, ErrDegenerateAxis
	}
	return Line{Point: point, Dir: r3.Scale(1/n, dir)}, nil
}

// Move returns the line transformed by t.
func (l Line) Move(t Transform) Line {
	return Line{Point: t.Apply(l.Point), Dir: t.ApplyDir(l.Dir)}
}

// Distance returns the distance from p to the line.
func (l Line) Distance(p r3.Vec) float64 {
	return r3.Norm(r3.Cross(l.Dir, r3.Sub(p, l.Point)))
}

// split decomposes p into its height along the line and the radial
// offset vector perpendicular to it.
func (l Line) split(p r3.Vec) (z float64, radial r3.Vec) {
	q := r3.Sub(p, l.Point)
	z = r3.Dot(q, l.Dir)
	return z, r3.Sub(q, r3.Scale(z, l.Dir))
}

// Frame is an orthonormal planar placement. U and V span the plane,
// N = U×V is the plane normal and Origin is the plane reference point.
type Frame struct {
	Origin r3.Vec
	U, V   r3.Vec
	N      r3.Vec
}

// NewFrame builds a frame at origin spanned by u and v. v is
// orthogonalized against u and both are normalized. Degenerate or
// parallel spans error.
func NewFrame(origin, u, v r3.Vec) (Frame, error) {
	nu := r3.Norm(u)
	if nu < lengthTol {
		return Frame{}, ErrDegenerateFrame
	}
	u = r3.Scale(1/nu, u)
	v = r3.Sub(v, r3.Scale(r3.Dot(v, u), u))
	nv := r3.Norm(v)
	if nv < lengthTol {
		return Frame{}, ErrDegenerateFrame
	}
	v = r3.Scale(1/nv, v)
	return Frame{Origin: origin, U: u, V: v, N: r3.Cross(u, v)}, nil
}

// FrameXY returns the frame of the z=origin.Z plane at origin.
func FrameXY(origin r3.Vec) Frame {
	return Frame{Origin: origin, U: r3.Vec{X: 1}, V: r3.Vec{Y: 1}, N: r3.Vec{Z: 1}}
}

// FrameXZ returns the frame of the y=origin.Y plane at origin.
func FrameXZ(origin r3.Vec) Frame {
	return Frame{Origin: origin, U: r3.Vec{X: 1}, V: r3.Vec{Z: 1}, N: r3.Vec{Y: -1}}
}

// FrameYZ returns the frame of the x=origin.X plane at origin.
func FrameYZ(origin r3.Vec) Frame {
	return Frame{Origin: origin, U: r3.Vec{Y: 1}, V: r3.Vec{Z: 1}, N: r3.Vec{X: 1}}
}

// Move returns the frame transformed by t.
func (f Frame) Move(t Transform) Frame {
	return Frame{
		Origin: t.Apply(f.Origin),
		U:      t.ApplyDir(f.U),
		V:      t.ApplyDir(f.V),
		N:      t.ApplyDir(f.N),
	}
}

// To3D maps plane coordinates to world space.
func (f Frame) To3D(x, y float64) r3.Vec {
	return r3.Add(f.Origin, r3.Add(r3.Scale(x, f.U), r3.Scale(y, f.V)))
}

// To2D projects a world point onto plane coordinates, discarding the
// out-of-plane component.
func (f Frame) To2D(p r3.Vec) (x, y float64) {
	q := r3.Sub(p, f.Origin)
	return r3.Dot(q, f.U), r3.Dot(q, f.V)
}
