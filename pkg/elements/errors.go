package elements

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrInvalidAnchor        = errors.New("anchor does not lie on target surface")
	ErrDuplicateMemberClaim = errors.New("topological member already claimed by another element")
	ErrMemberNotFound       = errors.New("topological member not found")
	ErrWrongClassification  = errors.New("member classification does not match requested variant")
	ErrUnclassifiedMember   = errors.New("member is unclassified")
	ErrInvalidFeature       = errors.New("invalid feature parameters")
	ErrNilTarget            = errors.New("target element is nil")
)

// FactoryError provides structured error information for element generation.
type FactoryError struct {
	Op      string // Operation that failed (e.g., "Beam", "Fastener")
	Entity  string // Entity type (e.g., "edge", "face", "anchor")
	Member  string // Canonical member key (empty if not applicable)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *FactoryError) Error() string {
	if e.Member != "" {
		if e.Context != "" {
			return fmt.Sprintf("%s %s %s (%s): %v", e.Op, e.Entity, e.Member, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.Member, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *FactoryError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *FactoryError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// InvalidAnchorError creates an error for a fastener anchor off the target
// element's surface.
func InvalidAnchorError(distance, tolerance float64) error {
	return &FactoryError{
		Op:      "Fastener",
		Entity:  "anchor",
		Cause:   ErrInvalidAnchor,
		Context: fmt.Sprintf("distance %g exceeds tolerance %g", distance, tolerance),
	}
}

// DuplicateClaimError creates an error for a second element claiming an
// already claimed topological member.
func DuplicateClaimError(op, member string) error {
	return &FactoryError{
		Op:     op,
		Entity: "member",
		Member: member,
		Cause:  ErrDuplicateMemberClaim,
	}
}

// IsInvalidAnchor returns true if the error is an anchor violation.
func IsInvalidAnchor(err error) bool {
	return errors.Is(err, ErrInvalidAnchor)
}

// IsDuplicateClaim returns true if the error is a duplicate member claim.
func IsDuplicateClaim(err error) bool {
	return errors.Is(err, ErrDuplicateMemberClaim)
}
