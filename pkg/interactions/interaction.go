package interactions

import (
	"github.com/google/uuid"

	"github.com/dd0wney/gridframe/pkg/geometry"
)

// Kind classifies the physical relation between two adjacent elements.
type Kind string

const (
	// SeatedJoint is a column bearing on (or hanging from) a column head.
	SeatedJoint Kind = "seated_joint"
	// MomentJoint is a rigid beam-column connection.
	MomentJoint Kind = "moment_joint"
	// PinnedJoint is a hinged beam-column connection.
	PinnedJoint Kind = "pinned_joint"
	// Fastening is a fastener attached to its host element.
	Fastening Kind = "fastening"
	// BearingContact is a plate bearing on a supporting member.
	BearingContact Kind = "bearing_contact"
	// Contact is the generic fallback for adjacent pairs with no
	// type-specific rule. Pairs are recorded rather than dropped so no
	// adjacency silently disappears.
	Contact Kind = "contact"
)

// JointPolicy selects how beam-column joints are classified.
type JointPolicy string

const (
	// PolicyPinned classifies beam-column joints as pinned (default).
	PolicyPinned JointPolicy = "pinned"
	// PolicyMoment classifies beam-column joints as moment-resisting.
	PolicyMoment JointPolicy = "moment"
)

// Interaction is a recorded physical relation between exactly two elements,
// with a geometric contact frame. Interactions are owned by the model;
// elements never hold direct references to them.
type Interaction struct {
	ID      uuid.UUID      `json:"id"`
	A       uuid.UUID      `json:"a"` // ordered: A.String() < B.String()
	B       uuid.UUID      `json:"b"`
	Kind    Kind           `json:"kind"`
	Contact geometry.Plane `json:"contact"`
}

// interactionNamespace seeds deterministic interaction identifiers.
var interactionNamespace = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

// NewInteraction builds an interaction with its endpoints in canonical
// order and a deterministic content-derived identifier.
func NewInteraction(a, b uuid.UUID, kind Kind, contact geometry.Plane) Interaction {
	if a.String() > b.String() {
		a, b = b, a
	}
	id := uuid.NewSHA1(interactionNamespace, []byte(a.String()+"|"+b.String()+"|"+string(kind)))
	return Interaction{ID: id, A: a, B: b, Kind: kind, Contact: contact}
}

// Pair returns the canonical endpoint pair as strings, for dedup keys.
// Interactions decoded from external documents may carry their endpoints
// swapped, so the stored order is not trusted.
func (i Interaction) Pair() (string, string) {
	a, b := i.A.String(), i.B.String()
	if a > b {
		return b, a
	}
	return a, b
}
