package elements

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/dd0wney/gridframe/pkg/geometry"
)

// PlateElement is a slab plate generated from a face member. Its frame sits
// at the face centroid with Z along the face normal; the outline is the
// face polygon, optionally trimmed by a boundary feature.
type PlateElement struct {
	id        uuid.UUID
	frame     geometry.Frame
	feature   Feature
	member    MemberRef
	outline   geometry.Polygon
	thickness float64
}

func newPlateElement(member MemberRef, outline geometry.Polygon, thickness float64, boundary *Boundary) *PlateElement {
	e := &PlateElement{
		frame:     geometry.FrameFromPlane(outline.Plane()),
		feature:   Feature{Boundary: boundary},
		member:    member,
		outline:   outline,
		thickness: thickness,
	}
	e.id = deriveID(KindPlate, member, fmt.Sprintf("%s|t=%g", e.feature.canonical(), thickness))
	return e
}

func (e *PlateElement) ID() uuid.UUID         { return e.id }
func (e *PlateElement) Kind() Kind            { return KindPlate }
func (e *PlateElement) Frame() geometry.Frame { return e.frame }
func (e *PlateElement) Feature() *Feature     { return &e.feature }
func (e *PlateElement) Member() MemberRef     { return e.member }

// Outline returns the plate boundary polygon.
func (e *PlateElement) Outline() geometry.Polygon { return e.outline }

// Thickness returns the plate thickness.
func (e *PlateElement) Thickness() float64 { return e.thickness }

// SurfaceDistance returns the distance from p to the plate boundary: the
// offset from the top/bottom face when p projects inside the outline, the
// distance to the nearest outline edge otherwise.
func (e *PlateElement) SurfaceDistance(p geometry.Point) float64 {
	planar := math.Abs(e.frame.Plane().DistanceTo(p))
	inside := math.Abs(planar - e.thickness/2)

	// Distance to the outline rim.
	rim := math.Inf(1)
	n := len(e.outline.Vertices)
	for i := 0; i < n; i++ {
		seg := geometry.Segment{Start: e.outline.Vertices[i], End: e.outline.Vertices[(i+1)%n]}
		if d := seg.ClosestPoint(p).DistanceTo(p); d < rim {
			rim = d
		}
	}
	return math.Min(inside, rim)
}
