package geom

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a rigid motion: a rotation followed by a translation.
// The zero value of Transform is the identity transform.
type Transform struct {
	// rotation is stored as a unit quaternion with the convention that
	// the zero quaternion stands in for the identity rotation, so that
	// Transform{} is usable directly.
	r quat.Number
	t r3.Vec
}

// Identity returns the identity transform.
func Identity() Transform { return Transform{} }

// Translation returns the transform translating by v.
func Translation(v r3.Vec) Transform {
	return Transform{t: v}
}

// RotationAbout returns the transform rotating by alpha radians about
// the axis line, counterclockwise when looking against the axis
// direction.
func RotationAbout(axis Line, alpha float64) Transform {
	rot := r3.NewRotation(alpha, axis.Dir)
	a := axis.Point
	return Transform{
		r: quat.Number(rot),
		t: r3.Sub(a, rot.Rotate(a)),
	}
}

// FrameTransform returns the rigid transform mapping the canonical XY
// frame onto f: e1→f.U, e2→f.V, e3→f.N and the world origin to f.Origin.
func FrameTransform(f Frame) Transform {
	// Shepperd's method to recover the quaternion from the rotation
	// matrix with columns U, V, N.
	m00, m01, m02 := f.U.X, f.V.X, f.N.X
	m10, m11, m12 := f.U.Y, f.V.Y, f.N.Y
	m20, m21, m22 := f.U.Z, f.V.Z, f.N.Z
	var q quat.Number
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = quat.Number{
			Real: 0.25 / s,
			Imag: (m21 - m12) * s,
			Jmag: (m02 - m20) * s,
			Kmag: (m10 - m01) * s,
		}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = quat.Number{
			Real: (m21 - m12) / s,
			Imag: 0.25 * s,
			Jmag: (m01 + m10) / s,
			Kmag: (m02 + m20) / s,
		}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = quat.Number{
			Real: (m02 - m20) / s,
			Imag: (m01 + m10) / s,
			Jmag: 0.25 * s,
			Kmag: (m12 + m21) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = quat.Number{
			Real: (m10 - m01) / s,
			Imag: (m02 + m20) / s,
			Jmag: (m12 + m21) / s,
			Kmag: 0.25 * s,
		}
	}
	return Transform{r: q, t: f.Origin}
}

func (t Transform) rot() quat.Number {
	if t.r == (quat.Number{}) {
		return quat.Number{Real: 1}
	}
	return t.r
}

// Apply transforms the point p.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Add(t.ApplyDir(p), t.t)
}

// ApplyDir transforms the direction d, applying only the rotation part.
func (t Transform) ApplyDir(d r3.Vec) r3.Vec {
	if t.r == (quat.Number{}) {
		return d
	}
	return r3.Rotation(t.r).Rotate(d)
}

// Mul returns the composition t∘o: o applied first, then t.
func (t Transform) Mul(o Transform) Transform {
	q := quat.Mul(t.rot(), o.rot())
	// renormalize to keep the rotation unit under repeated composition.
	q = quat.Scale(1/quat.Abs(q), q)
	return Transform{
		r: q,
		t: r3.Add(t.ApplyDir(o.t), t.t),
	}
}

// Inv returns the inverse transform such that t.Inv().Mul(t) is the
// identity.
func (t Transform) Inv() Transform {
	qi := quat.Conj(t.rot())
	ti := r3.Rotation(qi).Rotate(r3.Scale(-1, t.t))
	return Transform{r: qi, t: ti}
}

// equals tests the equality of two transforms to within a tolerance on
// transformed basis points.
func (t Transform) equals(o Transform, tol float64) bool {
	probes := []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}
	for _, p := range probes {
		d := r3.Sub(t.Apply(p), o.Apply(p))
		if r3.Norm(d) > tol {
			return false
		}
	}
	return true
}
