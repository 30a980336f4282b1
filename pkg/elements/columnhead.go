package elements

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/graph"
)

// CardinalDirection is the horizontal direction bucket a column head face
// points at. Beam and plate interactions select the head's contact face by
// the direction of the adjacent member.
type CardinalDirection uint8

const (
	North CardinalDirection = iota
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
)

// String returns the direction name.
func (d CardinalDirection) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	case NorthEast:
		return "north_east"
	case SouthEast:
		return "south_east"
	case SouthWest:
		return "south_west"
	case NorthWest:
		return "north_west"
	default:
		return "unknown"
	}
}

// ClosestDirection buckets a horizontal vector into the nearest cardinal
// direction.
func ClosestDirection(v geometry.Vector) CardinalDirection {
	angle := math.Atan2(v.Y, v.X)
	octant := int(math.Round(angle/(math.Pi/4))) // -4..4
	switch (octant + 8) % 8 {
	case 0:
		return East
	case 1:
		return NorthEast
	case 2:
		return North
	case 3:
		return NorthWest
	case 4:
		return West
	case 5:
		return SouthWest
	case 6:
		return South
	default:
		return SouthEast
	}
}

// CombineDirections merges two orthogonal cardinal directions into their
// diagonal, for plate corners sitting between two beam fans.
func CombineDirections(a, b CardinalDirection) CardinalDirection {
	if a > b {
		a, b = b, a
	}
	switch {
	case a == North && b == East:
		return NorthEast
	case a == East && b == South:
		return SouthEast
	case a == South && b == West:
		return SouthWest
	case a == North && b == West:
		return NorthWest
	default:
		return a
	}
}

// ColumnHeadElement caps a column at a cell network vertex. Its shape is a
// cross block spanning the vertex's same-level neighbor fan; each arm face
// is addressable by cardinal direction for joint placement.
type ColumnHeadElement struct {
	id      uuid.UUID
	frame   geometry.Frame
	feature Feature
	member  MemberRef
	apex    geometry.Point
	radius  float64
	depth   float64
	arms    map[CardinalDirection]geometry.Vector
}

func newColumnHeadElement(member MemberRef, apex geometry.Point, neighbors []geometry.Point, radius, depth float64) *ColumnHeadElement {
	e := &ColumnHeadElement{
		frame:   geometry.FrameAt(apex),
		feature: Feature{Boundary: &Boundary{Radius: radius}},
		member:  member,
		apex:    apex,
		radius:  radius,
		depth:   depth,
		arms:    make(map[CardinalDirection]geometry.Vector),
	}
	for _, n := range neighbors {
		dir := n.Sub(apex)
		dir.Z = 0
		if dir.IsZero() {
			continue
		}
		e.arms[ClosestDirection(dir)] = dir.Unit()
	}
	e.id = deriveID(KindColumnHead, member, fmt.Sprintf("%s|d=%g|arms=%d", e.feature.canonical(), depth, len(e.arms)))
	return e
}

func (e *ColumnHeadElement) ID() uuid.UUID         { return e.id }
func (e *ColumnHeadElement) Kind() Kind            { return KindColumnHead }
func (e *ColumnHeadElement) Frame() geometry.Frame { return e.frame }
func (e *ColumnHeadElement) Feature() *Feature     { return &e.feature }
func (e *ColumnHeadElement) Member() MemberRef     { return e.member }

// Apex returns the vertex position the head caps.
func (e *ColumnHeadElement) Apex() geometry.Point { return e.apex }

// Radius returns the arm reach of the cross block.
func (e *ColumnHeadElement) Radius() float64 { return e.radius }

// Depth returns the vertical extent of the head block.
func (e *ColumnHeadElement) Depth() float64 { return e.depth }

// Directions returns the occupied arm directions, sorted for determinism.
func (e *ColumnHeadElement) Directions() []CardinalDirection {
	out := make([]CardinalDirection, 0, len(e.arms))
	for d := range e.arms {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ArmVectors returns the arm unit vectors sorted by cardinal direction.
func (e *ColumnHeadElement) ArmVectors() []geometry.Vector {
	out := make([]geometry.Vector, 0, len(e.arms))
	for _, d := range e.Directions() {
		out = append(out, e.arms[d])
	}
	return out
}

// ArmFacePlane returns the outward face plane of the arm pointing in the
// given direction, and false when the head has no such arm.
func (e *ColumnHeadElement) ArmFacePlane(dir CardinalDirection) (geometry.Plane, bool) {
	v, ok := e.arms[dir]
	if !ok {
		return geometry.Plane{}, false
	}
	return geometry.Plane{Origin: e.apex.Add(v.Scale(e.radius)), Normal: v}, true
}

// SeatPlane returns the horizontal plane where the supported column (above)
// or supporting column (below) meets the head.
func (e *ColumnHeadElement) SeatPlane(below bool) geometry.Plane {
	z := e.depth / 2
	if below {
		z = -z
	}
	return geometry.Plane{
		Origin: e.apex.Add(geometry.WorldZ.Scale(z)),
		Normal: geometry.WorldZ,
	}
}

// SurfaceDistance approximates the distance from p to the cross block
// surface by its circumscribed sphere.
func (e *ColumnHeadElement) SurfaceDistance(p geometry.Point) float64 {
	r := geometry.Vector{X: e.radius, Z: e.depth / 2}.Length()
	return math.Abs(e.apex.DistanceTo(p) - r)
}

// vertexFan converts a neighbor ID fan to positions, for the factory.
func vertexFan(positions map[graph.VertexID]geometry.Point, ids []graph.VertexID) []geometry.Point {
	out := make([]geometry.Point, 0, len(ids))
	for _, id := range ids {
		out = append(out, positions[id])
	}
	return out
}
