package interactions

import (
	"github.com/dd0wney/gridframe/pkg/elements"
	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/graph"
)

// classify determines the interaction kind for an adjacent pair by its
// element-type combination and computes the contact frame. sharedVertex is
// the incidence witness (zero for fastener-host pairs).
func (r *Resolver) classify(a, b elements.Element, sharedVertex graph.VertexID) Interaction {
	contact := r.contactPoint(a, b, sharedVertex)

	switch {
	case a.Kind() == elements.KindFastener || b.Kind() == elements.KindFastener:
		fastener, _ := orient(a, b, elements.KindFastener)
		fe := fastener.(*elements.FastenerElement)
		plane := geometry.Plane{Origin: fe.Anchor(), Normal: fe.Frame().XAxis}
		return NewInteraction(a.ID(), b.ID(), Fastening, plane)

	case isPair(a, b, elements.KindColumn, elements.KindColumnHead):
		column, head := orient(a, b, elements.KindColumn)
		return NewInteraction(column.ID(), head.ID(), SeatedJoint, r.seatPlane(column, head))

	case isPair(a, b, elements.KindBeam, elements.KindColumn):
		kind := PinnedJoint
		if r.policy == PolicyMoment {
			kind = MomentJoint
		}
		beam, _ := orient(a, b, elements.KindBeam)
		plane := geometry.Plane{Origin: contact, Normal: axisOf(beam)}
		return NewInteraction(a.ID(), b.ID(), kind, plane)

	case isPair(a, b, elements.KindBeam, elements.KindColumnHead):
		beam, head := orient(a, b, elements.KindBeam)
		return NewInteraction(beam.ID(), head.ID(), SeatedJoint, r.armPlane(beam, head, contact))

	case isPair(a, b, elements.KindPlate, elements.KindBeam),
		isPair(a, b, elements.KindPlate, elements.KindColumnHead):
		plane := geometry.Plane{Origin: contact, Normal: geometry.WorldZ}
		return NewInteraction(a.ID(), b.ID(), BearingContact, plane)

	default:
		plane := geometry.Plane{Origin: contact, Normal: geometry.WorldZ}
		return NewInteraction(a.ID(), b.ID(), Contact, plane)
	}
}

// contactPoint returns the witness position: the shared vertex when known,
// otherwise the midpoint between the element frames.
func (r *Resolver) contactPoint(a, b elements.Element, sharedVertex graph.VertexID) geometry.Point {
	if sharedVertex != 0 {
		if p, err := r.net.VertexPoint(sharedVertex); err == nil {
			return p
		}
	}
	return a.Frame().Origin.Midpoint(b.Frame().Origin)
}

// seatPlane returns the horizontal seat plane where a column meets its
// column head, picking the head's top or bottom face by the column's
// position relative to the apex.
func (r *Resolver) seatPlane(column, head elements.Element) geometry.Plane {
	h := head.(*elements.ColumnHeadElement)
	c := column.(*elements.ColumnElement)
	below := c.Axis().Midpoint().Z < h.Apex().Z
	return h.SeatPlane(below)
}

// armPlane returns the column head's arm face in the beam's direction, or a
// vertical plane at the contact point when the head has no matching arm.
func (r *Resolver) armPlane(beam, head elements.Element, contact geometry.Point) geometry.Plane {
	h := head.(*elements.ColumnHeadElement)
	bm := beam.(*elements.BeamElement)

	away := bm.Axis().End.Sub(h.Apex())
	if bm.Axis().End.DistanceTo(h.Apex()) < bm.Axis().Start.DistanceTo(h.Apex()) {
		away = bm.Axis().Start.Sub(h.Apex())
	}
	away.Z = 0
	if !away.IsZero() {
		if plane, ok := h.ArmFacePlane(elements.ClosestDirection(away)); ok {
			return plane
		}
	}
	return geometry.Plane{Origin: contact, Normal: axisOf(beam)}
}

// axisOf returns the axis direction of a linear element, or WorldZ.
func axisOf(el elements.Element) geometry.Vector {
	switch e := el.(type) {
	case *elements.BeamElement:
		return e.Axis().Direction()
	case *elements.ColumnElement:
		return e.Axis().Direction()
	case *elements.CableElement:
		return e.Axis().Direction()
	default:
		return geometry.WorldZ
	}
}

// isPair reports whether {a, b} is the unordered kind pair {x, y}.
func isPair(a, b elements.Element, x, y elements.Kind) bool {
	return (a.Kind() == x && b.Kind() == y) || (a.Kind() == y && b.Kind() == x)
}

// orient returns (first, second) with first having the wanted kind.
func orient(a, b elements.Element, want elements.Kind) (elements.Element, elements.Element) {
	if a.Kind() == want {
		return a, b
	}
	return b, a
}
