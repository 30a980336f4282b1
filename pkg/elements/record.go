package elements

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/gridframe/pkg/cellnet"
	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/graph"
)

// MemberRecord is the serialized form of a MemberRef.
type MemberRecord struct {
	Kind    string    `json:"kind"`
	Edge    [2]uint64 `json:"edge,omitempty"`
	Face    uint64    `json:"face,omitempty"`
	Vertex  uint64    `json:"vertex,omitempty"`
	Element string    `json:"element,omitempty"`
}

// Record is the serialized form of an element: type tag, frame, feature
// parameters, and resolved geometry. A record is self-contained, decoding
// needs no cell network, so model documents round-trip losslessly.
type Record struct {
	ID      string         `json:"id"`
	Kind    string         `json:"kind"`
	Frame   geometry.Frame `json:"frame"`
	Feature Feature        `json:"feature"`
	Member  MemberRecord   `json:"member"`

	Axis      *geometry.Segment `json:"axis,omitempty"`
	Outline   *geometry.Polygon `json:"outline,omitempty"`
	Thickness float64           `json:"thickness,omitempty"`
	Apex      *geometry.Point   `json:"apex,omitempty"`
	Radius    float64           `json:"radius,omitempty"`
	Depth     float64           `json:"depth,omitempty"`
	Arms      []geometry.Vector `json:"arms,omitempty"`
	Anchor    *geometry.Point   `json:"anchor,omitempty"`
	Length    float64           `json:"length,omitempty"`
	Diameter  float64           `json:"diameter,omitempty"`
}

func encodeMember(m MemberRef) MemberRecord {
	r := MemberRecord{Kind: memberKindName(m.Kind)}
	switch m.Kind {
	case MemberEdge:
		r.Edge = [2]uint64{uint64(m.Edge.U), uint64(m.Edge.V)}
	case MemberFace:
		r.Face = uint64(m.Face)
	case MemberVertex:
		r.Vertex = uint64(m.Vertex)
	case MemberElement:
		r.Element = m.Element.String()
	}
	return r
}

func decodeMember(r MemberRecord) (MemberRef, error) {
	switch r.Kind {
	case "edge":
		return EdgeMember(graph.NewEdgeKey(graph.VertexID(r.Edge[0]), graph.VertexID(r.Edge[1]))), nil
	case "face":
		return FaceMember(cellnet.FaceID(r.Face)), nil
	case "vertex":
		return VertexMember(graph.VertexID(r.Vertex)), nil
	case "element":
		id, err := uuid.Parse(r.Element)
		if err != nil {
			return MemberRef{}, fmt.Errorf("decode member: %w", err)
		}
		return ElementMember(id), nil
	default:
		return MemberRef{}, fmt.Errorf("decode member: unknown kind %q", r.Kind)
	}
}

func memberKindName(k MemberKind) string {
	switch k {
	case MemberEdge:
		return "edge"
	case MemberFace:
		return "face"
	case MemberVertex:
		return "vertex"
	case MemberElement:
		return "element"
	default:
		return "unknown"
	}
}

// EncodeRecord serializes an element to its record form.
func EncodeRecord(el Element) Record {
	r := Record{
		ID:      el.ID().String(),
		Kind:    el.Kind().String(),
		Frame:   el.Frame(),
		Feature: *el.Feature(),
		Member:  encodeMember(el.Member()),
	}
	switch e := el.(type) {
	case *BeamElement:
		axis := e.Axis()
		r.Axis = &axis
	case *ColumnElement:
		axis := e.Axis()
		r.Axis = &axis
	case *CableElement:
		axis := e.Axis()
		r.Axis = &axis
	case *PlateElement:
		outline := e.Outline()
		r.Outline = &outline
		r.Thickness = e.Thickness()
	case *ColumnHeadElement:
		apex := e.Apex()
		r.Apex = &apex
		r.Radius = e.Radius()
		r.Depth = e.Depth()
		r.Arms = e.ArmVectors()
	case *FastenerElement:
		anchor := e.Anchor()
		r.Anchor = &anchor
		r.Length = e.Length()
		r.Diameter = e.Diameter()
	}
	return r
}

// DecodeRecord reconstructs an element from its record form. The resulting
// element is equivalent to the original up to identifier equality.
func DecodeRecord(r Record) (Element, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("decode element: %w", err)
	}
	kind, err := ParseKind(r.Kind)
	if err != nil {
		return nil, fmt.Errorf("decode element: %w", err)
	}
	member, err := decodeMember(r.Member)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindBeam, KindColumn, KindCable:
		if r.Axis == nil {
			return nil, fmt.Errorf("decode element %s: %s record missing axis", r.ID, r.Kind)
		}
		base := linearElement{
			id: id, kind: kind, frame: r.Frame, feature: r.Feature,
			member: member, axis: *r.Axis,
		}
		switch kind {
		case KindBeam:
			return &BeamElement{base}, nil
		case KindColumn:
			return &ColumnElement{base}, nil
		default:
			return &CableElement{base}, nil
		}
	case KindPlate:
		if r.Outline == nil {
			return nil, fmt.Errorf("decode element %s: plate record missing outline", r.ID)
		}
		return &PlateElement{
			id: id, frame: r.Frame, feature: r.Feature, member: member,
			outline: *r.Outline, thickness: r.Thickness,
		}, nil
	case KindColumnHead:
		if r.Apex == nil {
			return nil, fmt.Errorf("decode element %s: column head record missing apex", r.ID)
		}
		arms := make(map[CardinalDirection]geometry.Vector, len(r.Arms))
		for _, v := range r.Arms {
			arms[ClosestDirection(v)] = v
		}
		return &ColumnHeadElement{
			id: id, frame: r.Frame, feature: r.Feature, member: member,
			apex: *r.Apex, radius: r.Radius, depth: r.Depth, arms: arms,
		}, nil
	case KindFastener:
		if r.Anchor == nil {
			return nil, fmt.Errorf("decode element %s: fastener record missing anchor", r.ID)
		}
		return &FastenerElement{
			id: id, frame: r.Frame, feature: r.Feature, member: member,
			anchor: *r.Anchor, length: r.Length, diameter: r.Diameter,
		}, nil
	default:
		return nil, fmt.Errorf("decode element %s: unsupported kind %q", r.ID, r.Kind)
	}
}

// ClaimKey returns the member identity an element claims. Fasteners claim
// per anchor so several may share one host.
func ClaimKey(el Element) string {
	if f, ok := el.(*FastenerElement); ok {
		a := f.Anchor()
		return fmt.Sprintf("%s@%g,%g,%g", f.Member().Key(), a.X, a.Y, a.Z)
	}
	return el.Member().Key()
}
