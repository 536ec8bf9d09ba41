// Package lathe implements a parametric solid-revolution feature: a
// planar profile swept about an axis into a solid, optionally merged
// into a pre-existing base solid. Termination is by fixed angle, by a
// symmetric midplane angle, by two independent angles on either side of
// the profile plane, or by sweeping until a designated face is met.
//
// The package is the execution core only. Profiles, base bodies and
// symbolic references to axes and faces come from host collaborators
// behind small interfaces; the sketch package provides the in-tree
// implementation. The geometry itself lives in the geom package.
package lathe

import (
	"math"

	"github.com/soypat/lathe/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mode selects how the revolution terminates. The set is closed:
// switches over Mode are exhaustive and unknown values are rejected.
type Mode int

const (
	// ModeAngle sweeps the profile by a fixed angle.
	ModeAngle Mode = iota
	// ModeUpToLast sweeps until the farthest obstructing face.
	// Declared but not implemented: selecting it fails execution.
	ModeUpToLast
	// ModeUpToFirst sweeps until the nearest obstructing face.
	// Declared but not implemented: selecting it fails execution.
	ModeUpToFirst
	// ModeUpToFace sweeps until an explicitly referenced face is met.
	ModeUpToFace
	// ModeTwoAngles sweeps by independent angles on either side of the
	// profile plane.
	ModeTwoAngles
)

var modeNames = [...]string{"Angle", "UpToLast", "UpToFirst", "UpToFace", "TwoAngles"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "Mode(unknown)"
	}
	return modeNames[m]
}

// ParseMode returns the Mode named by s, matching the host-facing
// enumeration strings.
func ParseMode(s string) (Mode, bool) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), true
		}
	}
	return 0, false
}

// Ref is a symbolic reference to a sub-element of a named host object,
// such as a sketch edge or a datum face.
type Ref struct {
	Object string
	Sub    string
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool { return r == Ref{} }

// AxisConstraint restricts which resolved axes are geometrically
// acceptable for a feature.
type AxisConstraint uint8

const (
	// NoConstraint accepts any resolved axis.
	NoConstraint AxisConstraint = iota
	// NotParallelWithNormal rejects axes parallel to the profile plane
	// normal, a degenerate configuration for a revolution.
	NotParallelWithNormal
)

// Spec is the parametric configuration of a revolution feature.
// Angles are in degrees; Angle must lie in (0, 360].
type Spec struct {
	Mode Mode
	// Angle is the sweep angle in degrees.
	Angle float64
	// Angle2 is the sweep in the second direction, used only by
	// ModeTwoAngles.
	Angle2 float64
	// Reversed sweeps in the opposite direction. Ignored when Midplane
	// is set.
	Reversed bool
	// Midplane makes the sweep symmetric about the profile plane.
	Midplane bool
	// ReferenceAxis names the revolution axis.
	ReferenceAxis Ref
	// UpToFace names the terminating face, required for ModeUpToFace.
	UpToFace Ref
}

// DefaultSpec returns a Spec with the conventional defaults: a full
// turn in ModeAngle with a 60 degree second angle.
func DefaultSpec() Spec {
	return Spec{Mode: ModeAngle, Angle: 360, Angle2: 60}
}

// Result is the committed output of one feature execution.
type Result struct {
	// Additive is the solid contributed by the revolution alone,
	// consumed by downstream pattern features.
	Additive *geom.Solid
	// Final is Additive fused with the base solid, or equal to Additive
	// when there is no base.
	Final *geom.Solid
}

// ProfileSource supplies the profile being swept and its support.
type ProfileSource interface {
	// VerifiedFace returns the validated planar profile faces.
	VerifiedFace() ([]geom.Face, error)
	// SupportFace returns the face the profile rests on.
	SupportFace() (geom.Face, error)
	// Placement returns the profile's placement in world space.
	Placement() geom.Transform
}

// BodySource supplies the base solid the feature merges into and the
// optional refinement pass.
type BodySource interface {
	// BaseShape returns the pre-existing base solid. It errors when
	// there is none; callers treat that as "no base".
	BaseShape() (*geom.Solid, error)
	// Refine applies the coplanar-face merge pass when enabled,
	// returning the input unchanged otherwise.
	Refine(*geom.Solid) *geom.Solid
}

// Resolver resolves symbolic references against the host document.
type Resolver interface {
	// ResolveAxis resolves ref to a world-space axis line, rejecting
	// configurations forbidden by c relative to profileNormal.
	ResolveAxis(ref Ref, c AxisConstraint, profileNormal r3.Vec) (geom.Line, error)
	// ResolveFace resolves ref to a face.
	ResolveFace(ref Ref) (geom.Face, error)
}

// Inputs gathers the resolved, world-space inputs of one execution of
// the pure core. See Revolve.
type Inputs struct {
	// Profile is the validated profile, one or more planar faces.
	Profile []geom.Face
	// Support is the profile's support face.
	Support geom.Face
	// Base is the solid to fuse into, nil for a pure revolution.
	Base *geom.Solid
	// Axis is the resolved revolution axis.
	Axis geom.Line
	// UpTo is the resolved terminating face, required for ModeUpToFace.
	UpTo *geom.Face
	// Placement is the feature's placement; all inputs are carried into
	// its local frame before construction.
	Placement geom.Transform
	// Refine is the optional shape refinement pass. Nil disables it.
	Refine func(*geom.Solid) *geom.Solid
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
