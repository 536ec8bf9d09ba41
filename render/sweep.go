package render

import (
	"io"
	"math"

	"github.com/soypat/lathe/geom"
	"github.com/soypat/lathe/internal/d2"
	"gonum.org/v1/gonum/spatial/r3"
)

// sweeper tessellates the swept parts of a revolved solid directly
// from their profile polygons: lateral bands along the sweep plus cap
// faces for partial sweeps. No surface sampling is involved, so the
// mesh is exact up to the angular discretization.
type sweeper struct {
	tris []Triangle3
	pos  int
}

// NewSweepRenderer returns a Renderer tessellating s. segments is the
// number of angular steps used for a full turn and must be at least 3.
func NewSweepRenderer(s *geom.Solid, segments int) Renderer {
	if segments < 3 {
		panic("segments must be 3 or larger")
	}
	sw := &sweeper{}
	for _, sweep := range s.Sweeps() {
		sw.tessellate(sweep, segments)
	}
	return sw
}

// ReadTriangles reads up to len(dst) triangles of the tessellation.
func (sw *sweeper) ReadTriangles(dst []Triangle3) (int, error) {
	if sw.pos >= len(sw.tris) {
		return 0, io.EOF
	}
	n := copy(dst, sw.tris[sw.pos:])
	sw.pos += n
	return n, nil
}

func (sw *sweeper) tessellate(s geom.Sweep, segments int) {
	n := int(math.Ceil(float64(segments) * s.Angle / (2 * math.Pi)))
	if n < 1 {
		n = 1
	}
	step := s.Angle / float64(n)
	prof := s.Profile
	// Lateral bands: one quad per profile edge per angular step.
	for k := 0; k < n; k++ {
		phi0 := float64(k) * step
		phi1 := phi0 + step
		for i, j := 0, len(prof)-1; i < len(prof); j, i = i, i+1 {
			a, b := prof[j], prof[i]
			p00 := s.Point(a, phi0)
			p01 := s.Point(b, phi0)
			p10 := s.Point(a, phi1)
			p11 := s.Point(b, phi1)
			t1 := Triangle3{V: [3]r3.Vec{p00, p11, p01}}
			t2 := Triangle3{V: [3]r3.Vec{p00, p10, p11}}
			const tol = 1e-12
			if !t1.Degenerate(tol) {
				sw.tris = append(sw.tris, t1)
			}
			if !t2.Degenerate(tol) {
				sw.tris = append(sw.tris, t2)
			}
		}
	}
	if s.Full {
		return
	}
	// Cap faces close the wedge at sweep start and end. The start cap
	// keeps the profile winding, whose normal faces away from the sweep;
	// the end cap is reversed so both point out of the solid.
	ears := d2.EarClip(prof)
	for _, e := range ears {
		sw.tris = append(sw.tris, Triangle3{V: [3]r3.Vec{
			s.Point(prof[e[0]], 0),
			s.Point(prof[e[1]], 0),
			s.Point(prof[e[2]], 0),
		}})
		sw.tris = append(sw.tris, Triangle3{V: [3]r3.Vec{
			s.Point(prof[e[0]], s.Angle),
			s.Point(prof[e[2]], s.Angle),
			s.Point(prof[e[1]], s.Angle),
		}})
	}
}
