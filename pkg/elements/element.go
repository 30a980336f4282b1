package elements

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/gridframe/pkg/cellnet"
	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/graph"
)

// Kind is the closed set of structural element variants.
type Kind uint8

const (
	KindBeam Kind = iota
	KindColumn
	KindColumnHead
	KindPlate
	KindCable
	KindFastener
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBeam:
		return "beam"
	case KindColumn:
		return "column"
	case KindColumnHead:
		return "column_head"
	case KindPlate:
		return "plate"
	case KindCable:
		return "cable"
	case KindFastener:
		return "fastener"
	default:
		return "unknown"
	}
}

// ParseKind converts a kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "beam":
		return KindBeam, nil
	case "column":
		return KindColumn, nil
	case "column_head":
		return KindColumnHead, nil
	case "plate":
		return KindPlate, nil
	case "cable":
		return KindCable, nil
	case "fastener":
		return KindFastener, nil
	default:
		return 0, fmt.Errorf("unknown element kind %q", s)
	}
}

// MemberKind identifies which topological member type generated an element.
type MemberKind uint8

const (
	MemberEdge MemberKind = iota
	MemberFace
	MemberVertex
	MemberElement // fastener host
)

// MemberRef is the weak reference from an element back to the cell network
// member (or host element) that generated it.
type MemberRef struct {
	Kind    MemberKind     `json:"kind"`
	Edge    graph.EdgeKey  `json:"edge,omitempty"`
	Face    cellnet.FaceID `json:"face,omitempty"`
	Vertex  graph.VertexID `json:"vertex,omitempty"`
	Element uuid.UUID      `json:"element,omitempty"`
}

// EdgeMember returns a reference to an edge member.
func EdgeMember(key graph.EdgeKey) MemberRef {
	return MemberRef{Kind: MemberEdge, Edge: key}
}

// FaceMember returns a reference to a face member.
func FaceMember(id cellnet.FaceID) MemberRef {
	return MemberRef{Kind: MemberFace, Face: id}
}

// VertexMember returns a reference to a vertex member.
func VertexMember(id graph.VertexID) MemberRef {
	return MemberRef{Kind: MemberVertex, Vertex: id}
}

// ElementMember returns a reference to a host element (fasteners).
func ElementMember(id uuid.UUID) MemberRef {
	return MemberRef{Kind: MemberElement, Element: id}
}

// Key returns a canonical, sortable string identity for the member. The
// claim ledger and the deterministic resolver merge both key on it.
func (m MemberRef) Key() string {
	switch m.Kind {
	case MemberEdge:
		return fmt.Sprintf("edge:%d-%d", m.Edge.U, m.Edge.V)
	case MemberFace:
		return fmt.Sprintf("face:%d", m.Face)
	case MemberVertex:
		return fmt.Sprintf("vertex:%d", m.Vertex)
	case MemberElement:
		return fmt.Sprintf("element:%s", m.Element)
	default:
		return "unknown"
	}
}

// Element is a typed structural entity with a placement frame, a geometric
// feature, and a weak reference to the topological member that generated
// it. Implementations are the closed variant set; immutable once placed
// except for feature edits.
type Element interface {
	// ID returns the deterministic, content-derived identifier.
	ID() uuid.UUID
	// Kind returns the variant tag.
	Kind() Kind
	// Frame returns the local placement coordinate system.
	Frame() geometry.Frame
	// Feature returns the element's geometric feature for inspection or
	// editing. Never nil.
	Feature() *Feature
	// Member returns the generating topological member reference.
	Member() MemberRef
	// SurfaceDistance returns the distance from p to the element's
	// boundary surface. Zero means p lies exactly on the surface.
	SurfaceDistance(p geometry.Point) float64
}

// elementNamespace seeds deterministic element identifiers. Identical
// member + identical feature parameters always hash to the same UUID, so
// rebuilds are reproducible.
var elementNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func deriveID(kind Kind, member MemberRef, payload string) uuid.UUID {
	return uuid.NewSHA1(elementNamespace, []byte(kind.String()+"|"+member.Key()+"|"+payload))
}
