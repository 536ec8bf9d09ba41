package geom

import (
	"fmt"
	"math"

	"github.com/soypat/lathe/internal/d2"
	"github.com/soypat/lathe/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// part is one swept profile about an axis. The profile is stored in
// cylindrical coordinates: X is radial distance from the axis, Y is
// height along it. u and v are the radial and binormal directions of
// the profile half-plane at sweep start, so the swept wedge spans
// azimuth [0, sweep] in the (u, v) basis.
type part struct {
	axis  Line
	u, v  r3.Vec
	poly  []r2.Vec
	sweep float64 // in (0, 2π]
	full  bool    // sweep covers the whole turn
	norm  r2.Vec  // precalculated normal to the sweep end plane
	bb    d3.Box
}

// Sweep describes the tessellation data of one swept part of a solid.
type Sweep struct {
	Axis Line
	// U and V are the radial and binormal directions at sweep start.
	U, V r3.Vec
	// Profile is the swept polygon: X radial distance, Y axis height.
	Profile []r2.Vec
	// Angle is the angular extent of the sweep in radians, 2π when Full.
	Angle float64
	Full  bool
}

// Point maps a profile point at azimuth phi into world space.
func (s Sweep) Point(p r2.Vec, phi float64) r3.Vec {
	sin, cos := math.Sincos(phi)
	radial := r3.Add(r3.Scale(cos, s.U), r3.Scale(sin, s.V))
	return r3.Add(s.Axis.Point,
		r3.Add(r3.Scale(p.Y, s.Axis.Dir), r3.Scale(p.X, radial)))
}

// Revolve constructs the solid swept by rotating face about axis by
// angle radians. Negative angles sweep in the opposite direction; the
// magnitude must be at least Angular and is capped at a full turn.
// The axis must lie in the face plane and must not cross the face.
func Revolve(face Face, axis Line, angle float64) (*Solid, error) {
	p, err := newPart(face, axis, angle)
	if err != nil {
		return nil, err
	}
	return &Solid{parts: []part{p}}, nil
}

func newPart(face Face, axis Line, angle float64) (part, error) {
	if math.Abs(angle) < Angular {
		return part{}, ErrSweepTooSmall
	}
	if face.selfIntersects() {
		return part{}, fmt.Errorf("revolve: %w", ErrSelfIntersectingProfile)
	}
	n := face.Normal()
	if math.Abs(r3.Dot(axis.Dir, n)) > lengthTol ||
		math.Abs(r3.Dot(r3.Sub(axis.Point, face.Frame().Origin), n)) > lengthTol {
		return part{}, fmt.Errorf("revolve: %w", ErrAxisOutOfPlane)
	}
	if angle < 0 {
		// sweep backwards: start from the rotated-back profile and
		// sweep forward by the magnitude.
		face = face.Move(RotationAbout(axis, angle))
		angle = -angle
	}
	full := angle >= tau-Angular
	if angle > tau {
		angle = tau
	}

	// Profile in cylindrical coordinates. The radial reference u is
	// oriented towards the profile so all radii come out nonnegative.
	verts := face.Vertices()
	var u r3.Vec
	best := 0.0
	for _, p := range verts {
		_, radial := axis.split(p)
		if r := r3.Norm(radial); r > best {
			best = r
			u = r3.Scale(1/r, radial)
		}
	}
	if best < lengthTol {
		return part{}, fmt.Errorf("revolve: %w", ErrDegenerateFace)
	}
	poly := make([]r2.Vec, len(verts))
	for i, p := range verts {
		z, radial := axis.split(p)
		rho := r3.Dot(radial, u)
		if rho < -lengthTol {
			return part{}, fmt.Errorf("revolve: %w", ErrProfileCrossesAxis)
		}
		if rho < 0 {
			rho = 0
		}
		poly[i] = r2.Vec{X: rho, Y: z}
	}
	if d2.Area(poly) < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}

	sin, cos := math.Sincos(angle)
	pt := part{
		axis:  axis,
		u:     u,
		v:     r3.Cross(axis.Dir, u),
		poly:  poly,
		sweep: angle,
		full:  full,
		norm:  r2.Vec{X: -sin, Y: cos},
	}
	pt.bb = pt.bounds()
	return pt, nil
}

// Evaluate returns the pseudo-distance from p to the swept part,
// negative inside. The profile distance is combined with the sweep
// wedge: the two azimuth half-planes intersect for sweeps under a half
// turn and union beyond it.
func (s *part) Evaluate(p r3.Vec) float64 {
	z, radial := s.axis.split(p)
	x := r3.Dot(radial, s.u)
	y := r3.Dot(radial, s.v)
	rho := math.Hypot(x, y)
	a := d2.Dist(s.poly, r2.Vec{X: rho, Y: z})
	if s.full {
		return a
	}
	d := s.norm.X*x + s.norm.Y*y
	var b float64
	if s.sweep < pi {
		b = math.Max(-y, d)
	} else {
		b = math.Min(-y, d)
	}
	return math.Max(a, b)
}

// bounds works out the world bounding box of the part from the angular
// reach of the sweep in the (u, v) basis.
func (s *part) bounds() d3.Box {
	sin, cos := math.Sincos(s.sweep)
	var vset d2.Set
	if s.full {
		vset = []r2.Vec{{X: 1, Y: 1}, {X: -1, Y: -1}}
	} else {
		vset = []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: cos, Y: sin}}
		if s.sweep > 0.5*pi {
			vset = append(vset, r2.Vec{X: 0, Y: 1})
		}
		if s.sweep > pi {
			vset = append(vset, r2.Vec{X: -1, Y: 0})
		}
		if s.sweep > 1.5*pi {
			vset = append(vset, r2.Vec{X: 0, Y: -1})
		}
	}
	var rmax, zmin, zmax float64
	zmin, zmax = s.poly[0].Y, s.poly[0].Y
	for _, p := range s.poly {
		rmax = math.Max(rmax, p.X)
		zmin = math.Min(zmin, p.Y)
		zmax = math.Max(zmax, p.Y)
	}
	vmin := r2.Scale(rmax, vset.Min())
	vmax := r2.Scale(rmax, vset.Max())
	// Corners of the local box mapped through the axis frame.
	var bb d3.Box
	first := true
	for _, x := range [2]float64{vmin.X, vmax.X} {
		for _, y := range [2]float64{vmin.Y, vmax.Y} {
			for _, z := range [2]float64{zmin, zmax} {
				c := r3.Add(s.axis.Point, r3.Add(
					r3.Scale(x, s.u),
					r3.Add(r3.Scale(y, s.v), r3.Scale(z, s.axis.Dir))))
				if first {
					bb = d3.Box{Min: c, Max: c}
					first = false
				} else {
					bb = bb.Include(c)
				}
			}
		}
	}
	return bb
}

// move returns the part transformed by t.
func (s *part) move(t Transform) part {
	moved := part{
		axis:  s.axis.Move(t),
		u:     t.ApplyDir(s.u),
		v:     t.ApplyDir(s.v),
		poly:  s.poly,
		sweep: s.sweep,
		full:  s.full,
		norm:  s.norm,
	}
	moved.bb = moved.bounds()
	return moved
}

// RevolveUpTo constructs the solid swept by rotating face about axis
// until it first meets the plane of the target face. The termination
// angle is the smallest positive rotation bringing any profile vertex
// onto the target plane.
func RevolveUpTo(face Face, axis Line, target Face) (*Solid, error) {
	if target.IsZero() {
		return nil, fmt.Errorf("revolve up to face: %w", ErrNullShape)
	}
	angle, err := meetAngle(face, axis, target)
	if err != nil {
		return nil, err
	}
	return Revolve(face, axis, angle)
}

// meetAngle returns the first positive azimuth at which a profile
// vertex circle intersects the target face plane.
func meetAngle(face Face, axis Line, target Face) (float64, error) {
	tn := target.Normal()
	to := target.Frame().Origin
	best := math.Inf(1)
	for _, p := range face.Vertices() {
		z, radial := axis.split(p)
		rho := r3.Norm(radial)
		var u r3.Vec
		if rho > lengthTol {
			u = r3.Scale(1/rho, radial)
		} else {
			continue // on-axis vertex never leaves the axis
		}
		v := r3.Cross(axis.Dir, u)
		// circle point at azimuth phi: c + rho(cosφ u + sinφ v) with
		// c the vertex's axis projection. Solve its target plane
		// membership A cosφ + B sinφ = -C.
		c := r3.Add(axis.Point, r3.Scale(z, axis.Dir))
		A := rho * r3.Dot(u, tn)
		B := rho * r3.Dot(v, tn)
		C := r3.Dot(r3.Sub(c, to), tn)
		R := math.Hypot(A, B)
		if R < math.Abs(C)-lengthTol {
			continue // circle never reaches the plane
		}
		phi0 := math.Atan2(B, A)
		delta := math.Acos(clamp(-C/R, -1, 1))
		for _, phi := range [2]float64{phi0 + delta, phi0 - delta} {
			phi = math.Mod(phi, tau)
			if phi < 0 {
				phi += tau
			}
			if phi > Angular && phi < best {
				best = phi
			}
		}
	}
	if math.IsInf(best, 1) {
		return 0, fmt.Errorf("revolve up to face: %w", ErrTargetNotReached)
	}
	return best, nil
}

func clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
