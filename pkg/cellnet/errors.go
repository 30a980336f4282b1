package cellnet

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNonPlanarFace  = errors.New("face exceeds planarity tolerance")
	ErrFaceTooSmall   = errors.New("face has fewer than three distinct vertices")
	ErrVertexNotFound = errors.New("vertex not found")
	ErrEdgeNotFound   = errors.New("edge not found")
	ErrFaceNotFound   = errors.New("face not found")
	ErrCellNotFound   = errors.New("cell not found")
	ErrNilGraph       = errors.New("graph is nil")
)

// TopologyError provides structured error information for cell network
// construction and lookups.
type TopologyError struct {
	Op      string // Operation that failed (e.g., "AddFace")
	Entity  string // Entity type (e.g., "face", "edge", "cell")
	ID      uint64 // Entity or input index (0 if unknown)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *TopologyError) Error() string {
	if e.ID != 0 {
		if e.Context != "" {
			return fmt.Sprintf("%s %s %d (%s): %v", e.Op, e.Entity, e.ID, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *TopologyError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *TopologyError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// NonPlanarFaceError creates an error for an input face whose vertices
// exceed the planarity tolerance.
func NonPlanarFaceError(inputIndex int, deviation, tolerance float64) error {
	return &TopologyError{
		Op:      "AddFace",
		Entity:  "face",
		ID:      uint64(inputIndex + 1),
		Cause:   ErrNonPlanarFace,
		Context: fmt.Sprintf("deviation %g exceeds tolerance %g", deviation, tolerance),
	}
}

// IsNonPlanar returns true if the error is a planarity violation.
func IsNonPlanar(err error) bool {
	return errors.Is(err, ErrNonPlanarFace)
}
