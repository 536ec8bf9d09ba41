package lathe

import (
	"fmt"

	"github.com/soypat/lathe/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Feature is a revolution feature bound to its host collaborators. The
// committed result survives failed re-executions: Execute either
// commits a complete new result or leaves the previous one untouched.
type Feature struct {
	Spec     Spec
	Profile  ProfileSource
	Body     BodySource
	Resolver Resolver

	result    Result
	committed bool
}

// Execute runs the feature pipeline and commits the result atomically.
// On error the previously committed result is retained.
func (f *Feature) Execute() error {
	res, err := f.run()
	if err != nil {
		return err
	}
	f.result = res
	f.committed = true
	return nil
}

// Result returns the last committed result. ok is false if no
// execution has succeeded yet.
func (f *Feature) Result() (res Result, ok bool) {
	return f.result, f.committed
}

func (f *Feature) run() (Result, error) {
	if _, _, err := validateAngles(f.Spec); err != nil {
		return Result{}, err
	}
	profile, err := f.Profile.VerifiedFace()
	if err != nil {
		return Result{}, fmt.Errorf("profile: %w", err)
	}
	if len(profile) == 0 {
		return Result{}, fmt.Errorf("profile: %w", geom.ErrNullShape)
	}
	support, err := f.Profile.SupportFace()
	if err != nil {
		return Result{}, fmt.Errorf("support face: %w", err)
	}
	// A missing base shape is not an error: legacy features revolve
	// into empty space.
	var base *geom.Solid
	if f.Body != nil {
		if b, err := f.Body.BaseShape(); err == nil {
			base = b
		}
	}
	axis, err := f.Resolver.ResolveAxis(f.Spec.ReferenceAxis, NotParallelWithNormal, profile[0].Normal())
	if err != nil {
		return Result{}, fmt.Errorf("reference axis: %w", err)
	}
	var upTo *geom.Face
	if f.Spec.Mode == ModeUpToFace {
		if f.Spec.UpToFace.IsZero() {
			return Result{}, ErrNoUpToFace
		}
		face, err := f.Resolver.ResolveFace(f.Spec.UpToFace)
		if err != nil {
			return Result{}, fmt.Errorf("up to face: %w", err)
		}
		upTo = &face
	}
	in := Inputs{
		Profile:   profile,
		Support:   support,
		Base:      base,
		Axis:      axis,
		UpTo:      upTo,
		Placement: f.Profile.Placement(),
	}
	if f.Body != nil {
		in.Refine = f.Body.Refine
	}
	return Revolve(f.Spec, in)
}

// SuggestReversed reports whether the default sweep direction would
// produce a negative orientation relative to the resolved axis, so the
// host can preselect the Reversed flag. It resolves the axis only and
// never runs the construction pipeline.
func (f *Feature) SuggestReversed() bool {
	profile, err := f.Profile.VerifiedFace()
	if err != nil || len(profile) == 0 {
		return false
	}
	n := profile[0].Normal()
	axis, err := f.Resolver.ResolveAxis(f.Spec.ReferenceAxis, NotParallelWithNormal, n)
	if err != nil {
		return false
	}
	return reversedAngle(axis, profile[0].Centroid(), n) < 0
}

// reversedAngle measures the alignment between the profile normal and
// the direction the profile centroid moves at sweep start. Negative
// alignment means the default sweep heads against the profile normal.
func reversedAngle(axis geom.Line, cog, normal r3.Vec) float64 {
	q := r3.Sub(cog, axis.Point)
	perp := r3.Sub(q, r3.Scale(r3.Dot(q, axis.Dir), axis.Dir))
	tangent := r3.Cross(axis.Dir, perp)
	return r3.Dot(tangent, normal)
}

// accumState is the accumulation state of the multi-face construction
// loop: the first face starts a new body, every further face fuses
// into the running result.
type accumState uint8

const (
	accumStart accumState = iota
	accumAccumulating
)

// Revolve executes the revolution pipeline on resolved inputs and
// returns the additive and final shapes. It is a pure function: the
// inputs are never mutated and identical inputs yield identical
// results. Any failure aborts with nothing partially built.
func Revolve(spec Spec, in Inputs) (res Result, err error) {
	defer func() {
		if a := recover(); a != nil {
			res = Result{}
			err = &panicError{value: a}
		}
	}()

	angle, angle2, err := validateAngles(spec)
	if err != nil {
		return Result{}, err
	}
	if spec.Reversed && !spec.Midplane {
		angle = -angle
	}

	// Pre-rotation by termination policy, in world space about the
	// resolved axis.
	axis := in.Axis
	profile := append([]geom.Face(nil), in.Profile...)
	switch {
	case spec.Midplane:
		// Straddle the profile plane symmetrically. The raw angle is
		// used: midplane symmetry subsumes direction reversal.
		rot := geom.RotationAbout(axis, -radians(spec.Angle)/2)
		for i := range profile {
			profile[i] = profile[i].Move(rot)
		}
	case spec.Mode == ModeTwoAngles:
		rot := geom.RotationAbout(axis, -angle2)
		for i := range profile {
			profile[i] = profile[i].Move(rot)
		}
		angle += angle2
	}

	// Carry every input into the feature's local frame.
	inv := in.Placement.Inv()
	axis = axis.Move(inv)
	for i := range profile {
		profile[i] = profile[i].Move(inv)
	}
	base := in.Base
	if !base.IsNull() {
		base = base.Move(inv)
	}
	support := in.Support
	if !support.IsZero() {
		support = support.Move(inv)
	}
	var upTo geom.Face
	if in.UpTo != nil {
		upTo = in.UpTo.Move(inv)
	} else if spec.Mode == ModeUpToFace {
		return Result{}, ErrNoUpToFace
	}

	// The axis must clear every profile face or the sweep would
	// self-intersect.
	for _, face := range profile {
		if geom.LineCrossesFace(axis, face) {
			return Result{}, ErrAxisIntersectsProfile
		}
	}

	acc, err := buildRevolution(spec, profile, axis, upTo, angle)
	if err != nil {
		return Result{}, err
	}

	refine := in.Refine
	if refine == nil {
		refine = func(s *geom.Solid) *geom.Solid { return s }
	}
	additive := refine(acc)

	final := additive
	if !base.IsNull() {
		fused, err := geom.Fuse(base, acc)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %s", ErrFusionFailed, err)
		}
		final = refine(fused)
	}

	solid, err := geom.ExtractSolid(final)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrEmptyResult, err)
	}
	return Result{Additive: additive, Final: solid}, nil
}

// buildRevolution runs the per-face construction loop with its
// two-state accumulation: the first face starts the body, later faces
// fuse into it.
func buildRevolution(spec Spec, profile []geom.Face, axis geom.Line, upTo geom.Face, angle float64) (*geom.Solid, error) {
	var acc *geom.Solid
	state := accumStart
	for i, face := range profile {
		var s *geom.Solid
		var err error
		switch spec.Mode {
		case ModeAngle, ModeTwoAngles:
			s, err = geom.Revolve(face, axis, angle)
		case ModeUpToFace:
			s, err = geom.RevolveUpTo(face, axis, upTo)
		case ModeUpToFirst, ModeUpToLast:
			// Declared termination modes without a construction
			// strategy: fail loudly, never fall back.
			return nil, ErrUnsupportedMode
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownMode, spec.Mode)
		}
		if err != nil {
			return nil, kernelError(i, err)
		}
		switch state {
		case accumStart:
			acc = s
			state = accumAccumulating
		case accumAccumulating:
			acc, err = geom.Fuse(acc, s)
			if err != nil {
				return nil, kernelError(i, err)
			}
		}
	}
	return acc, nil
}

// validateAngles checks the spec's angles before any geometry work and
// returns them in radians.
func validateAngles(spec Spec) (angle, angle2 float64, err error) {
	if spec.Angle > 360 {
		return 0, 0, ErrAngleTooLarge
	}
	angle = radians(spec.Angle)
	if angle < geom.Angular {
		return 0, 0, ErrAngleTooSmall
	}
	return angle, radians(spec.Angle2), nil
}
