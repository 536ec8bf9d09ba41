package geom

import (
	"math"

	"github.com/soypat/lathe/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Face is a planar polygonal face: a placement frame plus a closed
// outline in plane coordinates. Faces are value types; Move returns a
// transformed copy and never mutates the original.
type Face struct {
	frame   Frame
	outline []r2.Vec
}

// NewFace builds a face from its plane frame and outline. The outline
// needs at least 3 vertices and nonzero area; it is copied and stored
// with counterclockwise winding. Self-intersection of the outline is
// not checked here, it is detected during construction from the face.
func NewFace(frame Frame, outline []r2.Vec) (Face, error) {
	if len(outline) < 3 {
		return Face{}, ErrDegenerateFace
	}
	area := d2.Area(outline)
	if math.Abs(area) < lengthTol*lengthTol {
		return Face{}, ErrDegenerateFace
	}
	cpy := make([]r2.Vec, len(outline))
	copy(cpy, outline)
	if area < 0 {
		for i, j := 0, len(cpy)-1; i < j; i, j = i+1, j-1 {
			cpy[i], cpy[j] = cpy[j], cpy[i]
		}
	}
	return Face{frame: frame, outline: cpy}, nil
}

// Frame returns the face's planar placement.
func (f Face) Frame() Frame { return f.frame }

// Outline returns a copy of the face outline in plane coordinates.
func (f Face) Outline() []r2.Vec {
	cpy := make([]r2.Vec, len(f.outline))
	copy(cpy, f.outline)
	return cpy
}

// IsZero reports whether the face is the zero value.
func (f Face) IsZero() bool { return len(f.outline) == 0 }

// Normal returns the face plane normal.
func (f Face) Normal() r3.Vec { return f.frame.N }

// Area returns the face area.
func (f Face) Area() float64 { return d2.Area(f.outline) }

// Centroid returns the face area centroid in world space.
func (f Face) Centroid() r3.Vec {
	c := d2.Centroid(f.outline)
	return f.frame.To3D(c.X, c.Y)
}

// Vertices returns the outline vertices in world space.
func (f Face) Vertices() []r3.Vec {
	v := make([]r3.Vec, len(f.outline))
	for i, p := range f.outline {
		v[i] = f.frame.To3D(p.X, p.Y)
	}
	return v
}

// Move returns the face transformed by t.
func (f Face) Move(t Transform) Face {
	return Face{frame: f.frame.Move(t), outline: f.outline}
}

// selfIntersects reports whether the outline edges cross each other.
func (f Face) selfIntersects() bool {
	return d2.SelfIntersects(f.outline)
}

// LineCrossesFace reports whether the line l crosses the face interior.
// Both the piercing case (line transversal to the face plane hitting
// inside the outline) and the in-plane case (line lying in the face
// plane with outline vertices strictly on both sides) count as
// crossings. A line touching only the outline boundary, such as an
// edge of the face itself, does not.
func LineCrossesFace(l Line, f Face) bool {
	denom := r3.Dot(l.Dir, f.frame.N)
	off := r3.Dot(r3.Sub(f.frame.Origin, l.Point), f.frame.N)
	if math.Abs(denom) < Angular {
		if math.Abs(off) > lengthTol {
			return false // parallel to the plane and off it
		}
		// Line lies in the face plane. It crosses the face iff the
		// outline has vertices strictly on both its sides.
		ax, ay := f.frame.To2D(l.Point)
		dx := r3.Dot(l.Dir, f.frame.U)
		dy := r3.Dot(l.Dir, f.frame.V)
		dir := r2.Unit(r2.Vec{X: dx, Y: dy})
		var pos, neg bool
		for _, v := range f.outline {
			s := d2.Cross(dir, r2.Vec{X: v.X - ax, Y: v.Y - ay})
			if s > lengthTol {
				pos = true
			} else if s < -lengthTol {
				neg = true
			}
		}
		return pos && neg
	}
	t := off / denom
	hit := r3.Add(l.Point, r3.Scale(t, l.Dir))
	x, y := f.frame.To2D(hit)
	return d2.Contains(f.outline, r2.Vec{X: x, Y: y}, lengthTol)
}
