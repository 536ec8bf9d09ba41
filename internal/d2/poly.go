package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// 2D polygon helpers backing planar face handling. Polygons are closed
// implicitly: the last vertex connects back to the first.

// Area returns the signed area of the polygon. The area is positive
// for counterclockwise winding.
func Area(poly []r2.Vec) float64 {
	var sum float64
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		sum += Cross(poly[j], poly[i])
	}
	return sum / 2
}

// Centroid returns the area centroid of the polygon.
func Centroid(poly []r2.Vec) r2.Vec {
	var c r2.Vec
	var area float64
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		k := Cross(poly[j], poly[i])
		c = r2.Add(c, r2.Scale(k, r2.Add(poly[j], poly[i])))
		area += k
	}
	if area == 0 {
		return Set(poly).Bounds().Min // degenerate, caller validates area separately
	}
	return r2.Scale(1/(3*area), c)
}

// Contains reports whether p lies strictly inside the polygon with
// points within tol of an edge considered outside.
func Contains(poly []r2.Vec, p r2.Vec, tol float64) bool {
	return Dist(poly, p) < -tol
}

// Dist returns the signed distance from p to the polygon boundary.
// The distance is negative inside the polygon.
func Dist(poly []r2.Vec, p r2.Vec) float64 {
	d := r2.Norm2(r2.Sub(p, poly[0]))
	s := 1.0
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		e := r2.Sub(poly[j], poly[i])
		w := r2.Sub(p, poly[i])
		b := r2.Sub(w, r2.Scale(clamp(r2.Dot(w, e)/r2.Norm2(e), 0, 1), e))
		d = math.Min(d, r2.Norm2(b))
		c1 := p.Y >= poly[i].Y
		c2 := p.Y < poly[j].Y
		c3 := e.X*w.Y > e.Y*w.X
		if (c1 && c2 && c3) || (!c1 && !c2 && !c3) {
			s = -s
		}
	}
	return s * math.Sqrt(d)
}

// SegmentsCross reports whether segments ab and cd properly intersect,
// excluding intersections at shared endpoints.
func SegmentsCross(a, b, c, d r2.Vec) bool {
	d1 := Cross(r2.Sub(b, a), r2.Sub(c, a))
	d2 := Cross(r2.Sub(b, a), r2.Sub(d, a))
	d3 := Cross(r2.Sub(d, c), r2.Sub(a, c))
	d4 := Cross(r2.Sub(d, c), r2.Sub(b, c))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// SelfIntersects reports whether any two non-adjacent polygon edges cross.
func SelfIntersects(poly []r2.Vec) bool {
	n := len(poly)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // adjacent through the closing edge
			}
			c, d := poly[j], poly[(j+1)%n]
			if SegmentsCross(a, b, c, d) {
				return true
			}
		}
	}
	return false
}

// EarClip triangulates a simple polygon and returns vertex index triples.
// The polygon may wind in either direction.
func EarClip(poly []r2.Vec) [][3]int {
	n := len(poly)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if Area(poly) < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}
	var tris [][3]int
	guard := 0
	for len(idx) > 3 {
		clipped := false
		for i := 0; i < len(idx); i++ {
			i0 := idx[(i+len(idx)-1)%len(idx)]
			i1 := idx[i]
			i2 := idx[(i+1)%len(idx)]
			if isEar(poly, idx, i0, i1, i2) {
				tris = append(tris, [3]int{i0, i1, i2})
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
		}
		if !clipped {
			guard++
			if guard > 1 {
				// no ear found twice in a row: degenerate or
				// self-intersecting input.
				return nil
			}
		}
	}
	tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	return tris
}

func isEar(poly []r2.Vec, idx []int, i0, i1, i2 int) bool {
	a, b, c := poly[i0], poly[i1], poly[i2]
	if Cross(r2.Sub(b, a), r2.Sub(c, a)) <= 0 {
		return false // reflex corner
	}
	for _, k := range idx {
		if k == i0 || k == i1 || k == i2 {
			continue
		}
		if triangleContains(a, b, c, poly[k]) {
			return false
		}
	}
	return true
}

func triangleContains(a, b, c, p r2.Vec) bool {
	d1 := Cross(r2.Sub(b, a), r2.Sub(p, a))
	d2 := Cross(r2.Sub(c, b), r2.Sub(p, b))
	d3 := Cross(r2.Sub(a, c), r2.Sub(p, c))
	return d1 >= 0 && d2 >= 0 && d3 >= 0
}
