package cadview

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceCreation marks a failure of the GPU resource layer to
	// realize a mesh or program. It aborts compilation.
	ErrResourceCreation = errors.New("resource creation failed")

	// ErrInvalidPrecondition marks a rejected request that left state unchanged,
	// e.g. focusing on a degenerate volume.
	ErrInvalidPrecondition = errors.New("invalid precondition")
)

// ShapeError reports which shape part failed to compile.
type ShapeError struct {
	ShapeID   ShapeID
	ShapeName string
	Part      int
	Err       error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("compile shape %d %q part %d: %v", e.ShapeID, e.ShapeName, e.Part, e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// Is makes every ShapeError match ErrResourceCreation.
func (e *ShapeError) Is(target error) bool {
	return target == ErrResourceCreation
}
