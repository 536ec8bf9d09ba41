package sketch

import (
	"fmt"

	"github.com/soypat/lathe"
	"github.com/soypat/lathe/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Document is a flat object table resolving symbolic references for
// features: sketches, datum lines and datum faces by name.
type Document struct {
	sketches map[string]*Sketch
	lines    map[string]geom.Line
	faces    map[string]geom.Face
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		sketches: make(map[string]*Sketch),
		lines:    make(map[string]geom.Line),
		faces:    make(map[string]geom.Face),
	}
}

// AddSketch registers a sketch under its name.
func (d *Document) AddSketch(s *Sketch) { d.sketches[s.Name()] = s }

// PutDatumLine registers a named datum line.
func (d *Document) PutDatumLine(name string, l geom.Line) { d.lines[name] = l }

// PutDatumFace registers a named datum face.
func (d *Document) PutDatumFace(name string, f geom.Face) { d.faces[name] = f }

// ResolveAxis resolves ref to a world-space axis line: either a datum
// line by object name, or a sketch sub-element such as "Edge2" or
// "V_Axis". Axes parallel to profileNormal are rejected under the
// NotParallelWithNormal constraint.
func (d *Document) ResolveAxis(ref lathe.Ref, c lathe.AxisConstraint, profileNormal r3.Vec) (geom.Line, error) {
	if ref.IsZero() {
		return geom.Line{}, ErrNoReference
	}
	var line geom.Line
	if l, ok := d.lines[ref.Object]; ok {
		line = l
	} else if s, ok := d.sketches[ref.Object]; ok {
		var err error
		line, err = s.subLine(ref.Sub)
		if err != nil {
			return geom.Line{}, fmt.Errorf("object %q: %w", ref.Object, err)
		}
	} else {
		return geom.Line{}, fmt.Errorf("%w: %q", ErrUnknownObject, ref.Object)
	}
	if c == lathe.NotParallelWithNormal {
		n := r3.Unit(profileNormal)
		if r3.Norm(r3.Cross(line.Dir, n)) < 1e-9 {
			return geom.Line{}, ErrAxisParallelToNormal
		}
	}
	return line, nil
}

// ResolveFace resolves ref to a face: a datum face by object name, or
// a sketch face "FaceN" (the N-th verified loop face, 1-based).
func (d *Document) ResolveFace(ref lathe.Ref) (geom.Face, error) {
	if ref.IsZero() {
		return geom.Face{}, ErrNoReference
	}
	if f, ok := d.faces[ref.Object]; ok {
		return f, nil
	}
	if s, ok := d.sketches[ref.Object]; ok {
		var n int
		if _, err := fmt.Sscanf(ref.Sub, "Face%d", &n); err != nil || n < 1 {
			return geom.Face{}, fmt.Errorf("object %q: %w: %q", ref.Object, ErrUnknownSubElement, ref.Sub)
		}
		faces, err := s.VerifiedFace()
		if err != nil {
			return geom.Face{}, err
		}
		if n > len(faces) {
			return geom.Face{}, fmt.Errorf("object %q: %w: %q", ref.Object, ErrUnknownSubElement, ref.Sub)
		}
		return faces[n-1], nil
	}
	return geom.Face{}, fmt.Errorf("%w: %q", ErrUnknownObject, ref.Object)
}

// Body owns the running base solid of a feature chain and the shape
// refinement setting.
type Body struct {
	base   *geom.Solid
	refine bool
}

// NewBody returns a body with no base shape.
func NewBody() *Body { return &Body{} }

// SetBase installs the base solid features merge into.
func (b *Body) SetBase(s *geom.Solid) { b.base = s }

// EnableRefine toggles the coplanar-face refinement pass.
func (b *Body) EnableRefine(on bool) { b.refine = on }

// BaseShape returns the base solid, erroring when the body is empty so
// callers can fall back to a pure revolution.
func (b *Body) BaseShape() (*geom.Solid, error) {
	if b.base.IsNull() {
		return nil, ErrNoBaseShape
	}
	return b.base, nil
}

// Refine applies the refinement pass when enabled.
func (b *Body) Refine(s *geom.Solid) *geom.Solid {
	if !b.refine {
		return s
	}
	return geom.Refine(s)
}

var _ lathe.Resolver = (*Document)(nil)
var _ lathe.BodySource = (*Body)(nil)
var _ lathe.ProfileSource = (*Sketch)(nil)
