// Package sketch provides the host-document side of the revolution
// feature: planar sketches acting as profile sources, a document object
// table resolving symbolic axis and face references, and the body
// holding the base solid a feature merges into.
package sketch

import (
	"errors"
	"fmt"

	"github.com/soypat/lathe/geom"
	"github.com/soypat/lathe/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrEmptySketch reports a sketch with no closed loops.
	ErrEmptySketch = errors.New("sketch has no closed loops")
	// ErrBadLoop reports a loop that cannot form a face.
	ErrBadLoop = errors.New("sketch loop cannot form a face")
	// ErrNoReference reports an unset symbolic reference.
	ErrNoReference = errors.New("no reference set")
	// ErrUnknownObject reports a reference to an object missing from
	// the document.
	ErrUnknownObject = errors.New("referenced object not in document")
	// ErrUnknownSubElement reports a reference to a sub-element the
	// object does not have.
	ErrUnknownSubElement = errors.New("referenced sub-element not found")
	// ErrAxisParallelToNormal reports an axis forbidden for revolution
	// because it parallels the profile plane normal.
	ErrAxisParallelToNormal = errors.New("axis is parallel to sketch plane normal")
	// ErrNoBaseShape reports a body without a base solid.
	ErrNoBaseShape = errors.New("body has no base shape")
)

// Sketch is a named planar sketch: closed polygonal loops drawn on a
// plane. Each loop becomes one profile face. Sub-elements are
// addressable by name: "Edge1".. number the loop edges consecutively
// across loops, "V_Axis" and "H_Axis" are the sketch datum axes.
type Sketch struct {
	name      string
	frame     geom.Frame
	loops     [][]r2.Vec
	placement geom.Transform
}

// New returns an empty sketch drawn on the plane of frame.
func New(name string, frame geom.Frame) *Sketch {
	return &Sketch{name: name, frame: frame}
}

// Name returns the sketch name used in references.
func (s *Sketch) Name() string { return s.name }

// Frame returns the sketch plane placement.
func (s *Sketch) Frame() geom.Frame { return s.frame }

// AddLoop appends a closed loop given by its vertices in sketch plane
// coordinates.
func (s *Sketch) AddLoop(vertices ...r2.Vec) {
	s.loops = append(s.loops, append([]r2.Vec(nil), vertices...))
}

// SetPlacement sets the feature-local placement reported by Placement.
func (s *Sketch) SetPlacement(t geom.Transform) { s.placement = t }

// Placement returns the sketch's feature placement, identity unless
// set.
func (s *Sketch) Placement() geom.Transform { return s.placement }

// VerifiedFace validates the sketch loops and returns them as planar
// faces. Loops must have at least 3 vertices and nonzero area.
// Self-intersecting loops pass here and are rejected by the kernel
// during construction, where the failure is diagnosed.
func (s *Sketch) VerifiedFace() ([]geom.Face, error) {
	if len(s.loops) == 0 {
		return nil, fmt.Errorf("sketch %q: %w", s.name, ErrEmptySketch)
	}
	faces := make([]geom.Face, 0, len(s.loops))
	for i, loop := range s.loops {
		f, err := geom.NewFace(s.frame, loop)
		if err != nil {
			return nil, fmt.Errorf("sketch %q loop %d: %w: %s", s.name, i, ErrBadLoop, err)
		}
		faces = append(faces, f)
	}
	return faces, nil
}

// SupportFace returns the face of the sketch plane spanning the
// bounding box of all loops.
func (s *Sketch) SupportFace() (geom.Face, error) {
	if len(s.loops) == 0 {
		return geom.Face{}, fmt.Errorf("sketch %q: %w", s.name, ErrEmptySketch)
	}
	bb := d2.Set(s.loops[0]).Bounds()
	for _, loop := range s.loops[1:] {
		bb = bb.Extend(d2.Set(loop).Bounds())
	}
	corners := []r2.Vec{
		bb.Min,
		{X: bb.Max.X, Y: bb.Min.Y},
		bb.Max,
		{X: bb.Min.X, Y: bb.Max.Y},
	}
	return geom.NewFace(s.frame, corners)
}

// subLine resolves a sketch sub-element name to a line in world space.
func (s *Sketch) subLine(sub string) (geom.Line, error) {
	switch sub {
	case "V_Axis":
		return geom.Line{Point: s.frame.Origin, Dir: s.frame.V}, nil
	case "H_Axis":
		return geom.Line{Point: s.frame.Origin, Dir: s.frame.U}, nil
	}
	var n int
	if _, err := fmt.Sscanf(sub, "Edge%d", &n); err == nil && n >= 1 {
		a, b, ok := s.edge(n - 1)
		if !ok {
			return geom.Line{}, fmt.Errorf("%w: %q", ErrUnknownSubElement, sub)
		}
		pa := s.frame.To3D(a.X, a.Y)
		pb := s.frame.To3D(b.X, b.Y)
		l, err := geom.NewLine(pa, r3.Sub(pb, pa))
		if err != nil {
			return geom.Line{}, fmt.Errorf("edge %q: %w", sub, err)
		}
		return l, nil
	}
	return geom.Line{}, fmt.Errorf("%w: %q", ErrUnknownSubElement, sub)
}

// edge returns the endpoints of the k-th edge counted consecutively
// across loops.
func (s *Sketch) edge(k int) (a, b r2.Vec, ok bool) {
	for _, loop := range s.loops {
		if k < len(loop) {
			return loop[k], loop[(k+1)%len(loop)], true
		}
		k -= len(loop)
	}
	return r2.Vec{}, r2.Vec{}, false
}
