package elements

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/dd0wney/gridframe/pkg/geometry"
)

// FastenerElement is a screw or bolt attached to a point on a host
// element's surface. Unlike the other variants it references a host element
// rather than a cell network member.
type FastenerElement struct {
	id       uuid.UUID
	frame    geometry.Frame
	feature  Feature
	member   MemberRef
	anchor   geometry.Point
	length   float64
	diameter float64
}

func newFastenerElement(host Element, anchor geometry.Point, length, diameter float64) *FastenerElement {
	member := ElementMember(host.ID())
	// The fastener axis points into the host, opposite the outward surface
	// direction at the anchor.
	axis := host.Frame().Origin.Sub(anchor).Unit()
	if axis.IsZero() {
		axis = geometry.WorldZ.Scale(-1)
	}
	e := &FastenerElement{
		frame:    geometry.FrameFromAxis(anchor, axis, geometry.WorldZ),
		feature:  Feature{Profile: &Profile{Shape: ProfileRound, Width: diameter, Height: diameter}},
		member:   member,
		anchor:   anchor,
		length:   length,
		diameter: diameter,
	}
	e.id = deriveID(KindFastener, member, fmt.Sprintf("%s|anchor=%g,%g,%g|l=%g", e.feature.canonical(), anchor.X, anchor.Y, anchor.Z, length))
	return e
}

func (e *FastenerElement) ID() uuid.UUID         { return e.id }
func (e *FastenerElement) Kind() Kind            { return KindFastener }
func (e *FastenerElement) Frame() geometry.Frame { return e.frame }
func (e *FastenerElement) Feature() *Feature     { return &e.feature }
func (e *FastenerElement) Member() MemberRef     { return e.member }

// Anchor returns the attachment point on the host surface.
func (e *FastenerElement) Anchor() geometry.Point { return e.anchor }

// Host returns the host element's identifier.
func (e *FastenerElement) Host() uuid.UUID { return e.member.Element }

// Length returns the fastener shaft length.
func (e *FastenerElement) Length() float64 { return e.length }

// Diameter returns the fastener shaft diameter.
func (e *FastenerElement) Diameter() float64 { return e.diameter }

// SurfaceDistance approximates the distance from p to the fastener shaft.
func (e *FastenerElement) SurfaceDistance(p geometry.Point) float64 {
	tip := e.anchor.Add(e.frame.XAxis.Scale(e.length))
	shaft := geometry.Segment{Start: e.anchor, End: tip}
	return math.Abs(shaft.ClosestPoint(p).DistanceTo(p) - e.diameter/2)
}
