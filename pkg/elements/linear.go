package elements

import (
	"math"

	"github.com/google/uuid"

	"github.com/dd0wney/gridframe/pkg/geometry"
)

// linearElement carries the shared state of axis-swept variants (beams,
// columns, cables): a profile feature swept along the member axis.
type linearElement struct {
	id      uuid.UUID
	kind    Kind
	frame   geometry.Frame
	feature Feature
	member  MemberRef
	axis    geometry.Segment
}

func newLinearElement(kind Kind, member MemberRef, axis geometry.Segment, profile Profile, up geometry.Vector) linearElement {
	e := linearElement{
		kind:    kind,
		frame:   geometry.FrameFromAxis(axis.Start, axis.Direction(), up),
		feature: Feature{Profile: &profile},
		member:  member,
		axis:    axis,
	}
	e.id = deriveID(kind, member, e.feature.canonical())
	return e
}

func (e *linearElement) ID() uuid.UUID         { return e.id }
func (e *linearElement) Kind() Kind            { return e.kind }
func (e *linearElement) Frame() geometry.Frame { return e.frame }
func (e *linearElement) Feature() *Feature     { return &e.feature }
func (e *linearElement) Member() MemberRef     { return e.member }

// Axis returns the member axis the profile is swept along.
func (e *linearElement) Axis() geometry.Segment { return e.axis }

// Length returns the swept length.
func (e *linearElement) Length() float64 { return e.axis.Length() }

// SurfaceDistance approximates the distance from p to the swept solid's
// boundary using the section circumradius around the axis.
func (e *linearElement) SurfaceDistance(p geometry.Point) float64 {
	r := 0.0
	if e.feature.Profile != nil {
		r = e.feature.Profile.circumradius()
	}
	d := e.axis.ClosestPoint(p).DistanceTo(p)
	return math.Abs(d - r)
}

// BeamElement is a near-horizontal member spanning two same-level vertices.
type BeamElement struct {
	linearElement
}

// ColumnElement is a near-vertical member spanning two levels. Its axis is
// normalized bottom-up so the placement frame sits at the lower vertex.
type ColumnElement struct {
	linearElement
}

// Height returns the column height.
func (e *ColumnElement) Height() float64 { return e.Length() }

// CableElement is a tension-only linear member.
type CableElement struct {
	linearElement
}
