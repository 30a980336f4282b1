package interactions

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUnresolvedAdjacency = errors.New("elements share no topological adjacency")
	ErrUnknownElement      = errors.New("element not part of this resolution")
	ErrNilNetwork          = errors.New("cell network is nil")
)

// ResolveError provides structured error information for interaction
// resolution.
type ResolveError struct {
	Op      string // Operation that failed (e.g., "Between")
	A, B    string // Element identifiers involved
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.A != "" || e.B != "" {
		if e.Context != "" {
			return fmt.Sprintf("%s (%s, %s) (%s): %v", e.Op, e.A, e.B, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s (%s, %s): %v", e.Op, e.A, e.B, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ResolveError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *ResolveError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// UnresolvedAdjacencyError creates an error for an interaction requested
// between two non-adjacent elements.
func UnresolvedAdjacencyError(a, b string) error {
	return &ResolveError{Op: "Between", A: a, B: b, Cause: ErrUnresolvedAdjacency}
}

// IsUnresolved returns true if the error is an unresolved adjacency.
func IsUnresolved(err error) bool {
	return errors.Is(err, ErrUnresolvedAdjacency)
}
