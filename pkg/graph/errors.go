package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	ErrVertexNotFound     = errors.New("vertex not found")
	ErrEdgeNotFound       = errors.New("edge not found")
	ErrInvalidTolerance   = errors.New("invalid tolerance")
)

// GeometryError provides structured error information for graph construction.
type GeometryError struct {
	Op      string // Operation that failed (e.g., "AddSegment")
	Entity  string // Entity type (e.g., "segment", "vertex", "edge")
	Index   int    // Input index of the offending entity (-1 if unknown)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *GeometryError) Error() string {
	if e.Index >= 0 {
		if e.Context != "" {
			return fmt.Sprintf("%s %s %d (%s): %v", e.Op, e.Entity, e.Index, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.Index, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GeometryError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *GeometryError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// DegenerateSegmentError creates an error for a zero-length segment at the
// given input index.
func DegenerateSegmentError(index int, context string) error {
	return &GeometryError{
		Op:      "AddSegment",
		Entity:  "segment",
		Index:   index,
		Cause:   ErrDegenerateGeometry,
		Context: context,
	}
}

// IsDegenerate returns true if the error is a degenerate geometry error.
func IsDegenerate(err error) bool {
	return errors.Is(err, ErrDegenerateGeometry)
}
