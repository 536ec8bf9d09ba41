package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Elem returns a vector with all elements set to sides.
func Elem(sides float64) r2.Vec {
	return r2.Vec{X: sides, Y: sides}
}

// EqualWithin tests the equality of two vectors to within a tolerance.
func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// Cross returns the z component of the cross product of a and b.
func Cross(a, b r2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Box is a 2d bounding box.
type Box r2.Box

// Extend returns a box enclosing two 2d boxes.
func (a Box) Extend(b Box) Box {
	return Box{
		Min: MinElem(a.Min, b.Min),
		Max: MaxElem(a.Max, b.Max),
	}
}

// Include enlarges a 2d box to include a point.
func (a Box) Include(v r2.Vec) Box {
	return Box{Min: MinElem(a.Min, v), Max: MaxElem(a.Max, v)}
}

// Size returns the size of a 2d box.
func (a Box) Size() r2.Vec {
	return r2.Sub(a.Max, a.Min)
}

// Set is a collection of 2D vectors.
type Set []r2.Vec

// Min returns the element-wise minimum of the set.
func (s Set) Min() r2.Vec {
	m := s[0]
	for _, v := range s[1:] {
		m = MinElem(m, v)
	}
	return m
}

// Max returns the element-wise maximum of the set.
func (s Set) Max() r2.Vec {
	m := s[0]
	for _, v := range s[1:] {
		m = MaxElem(m, v)
	}
	return m
}

// Bounds returns the bounding box of the set.
func (s Set) Bounds() Box {
	return Box{Min: s.Min(), Max: s.Max()}
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
