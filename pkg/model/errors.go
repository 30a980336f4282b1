package model

import (
	"errors"
	"fmt"

	"github.com/dd0wney/gridframe/pkg/elements"
)

// Common sentinel errors
var (
	ErrElementNotFound      = errors.New("element not found")
	ErrGroupNotFound        = errors.New("group not found")
	ErrDuplicateElement     = errors.New("element already in model")
	ErrDuplicateGroup       = errors.New("group already in model")
	ErrDuplicateInteraction = errors.New("interaction already recorded for pair and kind")
	ErrDanglingEndpoint     = errors.New("interaction endpoint not in model")
	ErrNilElement           = errors.New("element is nil")

	// ErrDuplicateMemberClaim re-exports the factory sentinel: the model
	// enforces the one-element-per-member invariant again at insert time.
	ErrDuplicateMemberClaim = elements.ErrDuplicateMemberClaim
)

// ModelError provides structured error information for model mutations.
type ModelError struct {
	Op      string // Operation that failed (e.g., "AddElement")
	Entity  string // Entity type (e.g., "element", "group", "interaction")
	ID      string // Entity identifier (if applicable)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	if e.ID != "" {
		if e.Context != "" {
			return fmt.Sprintf("%s %s %s (%s): %v", e.Op, e.Entity, e.ID, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *ModelError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// IsNotFound returns true if the error is an element or group lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrElementNotFound) || errors.Is(err, ErrGroupNotFound)
}
