package geom

import (
	"fmt"
	"math"

	"github.com/soypat/lathe/internal/d2"
	"github.com/soypat/lathe/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Solid is a closed volume made of one or more swept parts. The nil
// and empty solids both stand for the null shape.
type Solid struct {
	parts []part
}

// IsNull reports whether the solid is nil or empty.
func (s *Solid) IsNull() bool { return s == nil || len(s.parts) == 0 }

// NumParts returns the number of swept parts making up the solid.
func (s *Solid) NumParts() int {
	if s == nil {
		return 0
	}
	return len(s.parts)
}

// Evaluate returns the pseudo-distance from p to the solid, negative
// inside. The union of parts combines by minimum.
func (s *Solid) Evaluate(p r3.Vec) float64 {
	if s.IsNull() {
		return math.Inf(1)
	}
	d := s.parts[0].Evaluate(p)
	for i := 1; i < len(s.parts); i++ {
		d = math.Min(d, s.parts[i].Evaluate(p))
	}
	return d
}

// Contains reports whether p lies inside the solid.
func (s *Solid) Contains(p r3.Vec) bool {
	return s.Evaluate(p) < 0
}

// Bounds returns the bounding box that completely contains the solid.
func (s *Solid) Bounds() r3.Box {
	if s.IsNull() {
		return r3.Box{}
	}
	bb := s.parts[0].bb
	for i := 1; i < len(s.parts); i++ {
		bb = bb.Extend(s.parts[i].bb)
	}
	return r3.Box(bb)
}

// Move returns the solid transformed by t. The receiver is unchanged.
func (s *Solid) Move(t Transform) *Solid {
	if s.IsNull() {
		return s
	}
	parts := make([]part, len(s.parts))
	for i := range s.parts {
		parts[i] = s.parts[i].move(t)
	}
	return &Solid{parts: parts}
}

// Sweeps returns the tessellation description of each part.
func (s *Solid) Sweeps() []Sweep {
	if s.IsNull() {
		return nil
	}
	out := make([]Sweep, len(s.parts))
	for i, p := range s.parts {
		out[i] = Sweep{
			Axis:    p.axis,
			U:       p.u,
			V:       p.v,
			Profile: append([]r2.Vec(nil), p.poly...),
			Angle:   p.sweep,
			Full:    p.full,
		}
	}
	return out
}

// Fuse returns the boolean union of a and b. Null operands fail.
func Fuse(a, b *Solid) (*Solid, error) {
	if a.IsNull() || b.IsNull() {
		return nil, fmt.Errorf("fuse: %w", ErrNullShape)
	}
	parts := make([]part, 0, len(a.parts)+len(b.parts))
	parts = append(parts, a.parts...)
	parts = append(parts, b.parts...)
	return &Solid{parts: parts}, nil
}

// Refine merges geometrically redundant parts: parts sweeping the same
// profile about the same axis over contiguous angular intervals
// collapse into one part, removing the coincident cap faces between
// them. Refine returns a new solid and leaves the input untouched.
func Refine(s *Solid) *Solid {
	if s.IsNull() || len(s.parts) == 1 {
		return s
	}
	parts := append([]part(nil), s.parts...)
	for {
		merged := false
	scan:
		for i := 0; i < len(parts); i++ {
			for j := i + 1; j < len(parts); j++ {
				m, ok := mergeParts(parts[i], parts[j])
				if !ok {
					m, ok = mergeParts(parts[j], parts[i])
				}
				if ok {
					parts[i] = m
					parts = append(parts[:j], parts[j+1:]...)
					merged = true
					break scan
				}
			}
		}
		if !merged {
			break
		}
	}
	return &Solid{parts: parts}
}

// mergeParts combines two parts when they sweep the same profile about
// the same axis and their angular spans are contiguous or overlapping.
func mergeParts(a, b part) (part, bool) {
	if !sameAxis(a.axis, b.axis) {
		return part{}, false
	}
	// profile heights are relative to each part's own axis base point.
	dz := r3.Dot(r3.Sub(b.axis.Point, a.axis.Point), a.axis.Dir)
	if !samePoly(a.poly, b.poly, dz) {
		return part{}, false
	}
	if a.full {
		return a, true
	}
	if b.full {
		return b, true
	}
	// azimuth of b's start frame in a's basis.
	off := math.Atan2(r3.Dot(b.u, a.v), r3.Dot(b.u, a.u))
	if off < 0 {
		off += tau
	}
	// b spans [off, off+b.sweep] in a's basis, a spans [0, a.sweep].
	const tol = 1e-9
	if off > a.sweep+tol {
		return part{}, false // gap between the spans
	}
	end := off + b.sweep
	if end <= a.sweep+tol && off >= -tol {
		return a, true // b inside a
	}
	sweep := math.Min(end, tau)
	merged, err := newPart(partFace(a), a.axis, sweep)
	if err != nil {
		return part{}, false
	}
	return merged, true
}

// partFace rebuilds the start-plane face of a part for reconstruction.
func partFace(p part) Face {
	f := Face{
		frame: Frame{
			Origin: p.axis.Point,
			U:      p.u,
			V:      p.axis.Dir,
			N:      r3.Scale(-1, p.v),
		},
		outline: p.poly,
	}
	return f
}

func sameAxis(a, b Line) bool {
	if !d3.EqualWithin(a.Dir, b.Dir, lengthTol) {
		return false
	}
	return a.Distance(b.Point) < lengthTol
}

// samePoly reports whether b, lifted by dz along the axis, coincides
// with a vertex for vertex.
func samePoly(a, b []r2.Vec, dz float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !d2.EqualWithin(a[i], r2.Vec{X: b[i].X, Y: b[i].Y + dz}, lengthTol) {
			return false
		}
	}
	return true
}

// ExtractSolid returns the canonical solid of a shape, failing on a
// null or empty input.
func ExtractSolid(s *Solid) (*Solid, error) {
	if s.IsNull() {
		return nil, fmt.Errorf("extract solid: %w", ErrNullShape)
	}
	parts := append([]part(nil), s.parts...)
	return &Solid{parts: parts}, nil
}
