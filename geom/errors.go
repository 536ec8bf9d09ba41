package geom

import "errors"

// Kernel failure conditions. Construction functions wrap these with
// context; callers classify with errors.Is.
var (
	// ErrSelfIntersectingProfile reports that a face outline could not be
	// built because its edges cross each other.
	ErrSelfIntersectingProfile = errors.New("self-intersecting profile outline")
	// ErrAxisOutOfPlane reports a revolution axis that does not lie in
	// the profile plane.
	ErrAxisOutOfPlane = errors.New("revolution axis does not lie in the profile plane")
	// ErrProfileCrossesAxis reports a profile straddling its own
	// revolution axis.
	ErrProfileCrossesAxis = errors.New("profile crosses the revolution axis")
	// ErrSweepTooSmall reports a sweep angle below the kernel's angular
	// resolution.
	ErrSweepTooSmall = errors.New("sweep angle below angular resolution")
	// ErrTargetNotReached reports a face-terminated sweep that can never
	// meet its target face plane.
	ErrTargetNotReached = errors.New("sweep never meets the target face")
	// ErrNullShape reports an empty or nil shape operand.
	ErrNullShape = errors.New("null shape")
	// ErrDegenerateAxis reports a zero-length axis direction.
	ErrDegenerateAxis = errors.New("degenerate axis direction")
	// ErrDegenerateFrame reports a collapsed planar placement.
	ErrDegenerateFrame = errors.New("degenerate planar frame")
	// ErrDegenerateFace reports a face outline with too few vertices or
	// vanishing area.
	ErrDegenerateFace = errors.New("degenerate face outline")
)
