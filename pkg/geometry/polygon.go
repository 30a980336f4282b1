package geometry

import "math"

// Polygon is an ordered, closed loop of vertices. The closing edge from the
// last vertex back to the first is implicit.
type Polygon struct {
	Vertices []Point `json:"vertices" yaml:"vertices"`
}

// Centroid returns the arithmetic mean of the polygon vertices.
func (pg Polygon) Centroid() Point {
	if len(pg.Vertices) == 0 {
		return Point{}
	}
	var x, y, z float64
	for _, p := range pg.Vertices {
		x += p.X
		y += p.Y
		z += p.Z
	}
	n := float64(len(pg.Vertices))
	return Point{x / n, y / n, z / n}
}

// Normal returns the unit normal of the polygon computed with Newell's
// method, which tolerates slightly non-planar loops.
func (pg Polygon) Normal() Vector {
	var n Vector
	for i, p := range pg.Vertices {
		q := pg.Vertices[(i+1)%len(pg.Vertices)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n.Unit()
}

// Plane returns the best-fit plane through the polygon.
func (pg Polygon) Plane() Plane {
	return Plane{Origin: pg.Centroid(), Normal: pg.Normal()}
}

// Area returns the polygon area, computed from the Newell normal magnitude.
func (pg Polygon) Area() float64 {
	var n Vector
	for i, p := range pg.Vertices {
		q := pg.Vertices[(i+1)%len(pg.Vertices)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n.Length() / 2
}

// MaxPlanarDeviation returns the largest absolute distance of any vertex
// from the polygon's best-fit plane.
func (pg Polygon) MaxPlanarDeviation() float64 {
	if len(pg.Vertices) < 4 {
		return 0 // a triangle is always planar
	}
	pl := pg.Plane()
	var max float64
	for _, p := range pg.Vertices {
		if d := math.Abs(pl.DistanceTo(p)); d > max {
			max = d
		}
	}
	return max
}

// Segment is a straight line between two endpoints.
type Segment struct {
	Start Point `json:"start" yaml:"start"`
	End   Point `json:"end" yaml:"end"`
}

// Direction returns the unit vector from Start to End.
func (s Segment) Direction() Vector {
	return s.End.Sub(s.Start).Unit()
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// Midpoint returns the segment midpoint.
func (s Segment) Midpoint() Point {
	return s.Start.Midpoint(s.End)
}

// ClosestPoint returns the point on the segment nearest to p.
func (s Segment) ClosestPoint(p Point) Point {
	d := s.End.Sub(s.Start)
	l2 := d.Dot(d)
	if l2 == 0 {
		return s.Start
	}
	t := p.Sub(s.Start).Dot(d) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.Start.Lerp(s.End, t)
}
