package lathe

import (
	"errors"
	"fmt"

	"github.com/soypat/lathe/geom"
)

// Failure conditions of feature execution. All of them abort the
// pipeline before anything is committed; classify with errors.Is.
var (
	// ErrAngleTooLarge rejects sweep angles over a full turn.
	ErrAngleTooLarge = errors.New("angle of revolution too large")
	// ErrAngleTooSmall rejects sweep angles below the kernel's angular
	// resolution.
	ErrAngleTooSmall = errors.New("angle of revolution too small")
	// ErrAxisIntersectsProfile rejects axes crossing the profile.
	ErrAxisIntersectsProfile = errors.New("revolve axis intersects the sketch")
	// ErrUnsupportedMode reports selection of a declared but
	// unimplemented termination mode. It is fatal, not bad input.
	ErrUnsupportedMode = errors.New("revolution up to first/last is not yet supported")
	// ErrUnknownMode reports a Mode value outside the closed set.
	ErrUnknownMode = errors.New("unknown revolution mode")
	// ErrNoUpToFace reports a missing terminating face reference for
	// ModeUpToFace.
	ErrNoUpToFace = errors.New("no face referenced for up to face revolution")
	// ErrFusionFailed reports that the boolean union with the base
	// solid did not converge.
	ErrFusionFailed = errors.New("fusion with base feature failed")
	// ErrEmptyResult reports that extraction of the final solid
	// produced a null shape.
	ErrEmptyResult = errors.New("could not revolve the sketch: result is empty")
)

// ConstructionError reports a swept-solid construction failure for one
// profile face.
type ConstructionError struct {
	// FaceIndex is the index of the profile face under construction.
	FaceIndex int
	Err       error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("could not revolve the sketch: face %d: %s", e.FaceIndex, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// kernelError maps low-level kernel failures onto the user-facing
// diagnosis. The self-intersecting profile case gets its own message
// instead of the generic kernel one.
func kernelError(faceIndex int, err error) error {
	if errors.Is(err, geom.ErrSelfIntersectingProfile) {
		return &ConstructionError{
			FaceIndex: faceIndex,
			Err: fmt.Errorf("could not create face from sketch: "+
				"intersecting sketch entities in a sketch are not allowed: %w", err),
		}
	}
	return &ConstructionError{FaceIndex: faceIndex, Err: err}
}

// panicError surfaces a recovered kernel panic as an error with the
// kernel-provided message.
type panicError struct {
	value interface{}
}

func (e *panicError) Error() string {
	return fmt.Sprintf("geometry kernel failure: %v", e.value)
}
