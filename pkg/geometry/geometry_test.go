package geometry

import (
	"math"
	"testing"
)

const testEps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < testEps
}

func TestVectorOperations(t *testing.T) {
	v := Vector{X: 3, Y: 4, Z: 0}

	if !almostEqual(v.Length(), 5) {
		t.Errorf("Length() = %v, want 5", v.Length())
	}

	u := v.Unit()
	if !almostEqual(u.Length(), 1) {
		t.Errorf("Unit().Length() = %v, want 1", u.Length())
	}

	if d := WorldX.Dot(WorldY); !almostEqual(d, 0) {
		t.Errorf("WorldX.Dot(WorldY) = %v, want 0", d)
	}

	c := WorldX.Cross(WorldY)
	if !almostEqual(c.X, WorldZ.X) || !almostEqual(c.Y, WorldZ.Y) || !almostEqual(c.Z, WorldZ.Z) {
		t.Errorf("WorldX x WorldY = %v, want %v", c, WorldZ)
	}
}

func TestVectorAngleTo(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{"parallel", WorldX, WorldX, 0},
		{"perpendicular", WorldX, WorldY, math.Pi / 2},
		{"opposite", WorldX, Vector{X: -1}, math.Pi},
		{"diagonal", WorldX, Vector{X: 1, Y: 1}, math.Pi / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.AngleTo(tt.b); !almostEqual(got, tt.want) {
				t.Errorf("AngleTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointMidpointAndDistance(t *testing.T) {
	p := Point{X: 0, Y: 0, Z: 0}
	q := Point{X: 2, Y: 0, Z: 0}

	mid := p.Midpoint(q)
	if !almostEqual(mid.X, 1) || !almostEqual(mid.Y, 0) || !almostEqual(mid.Z, 0) {
		t.Errorf("Midpoint() = %v, want (1,0,0)", mid)
	}
	if !almostEqual(p.DistanceTo(q), 2) {
		t.Errorf("DistanceTo() = %v, want 2", p.DistanceTo(q))
	}
}

func TestPolygonNormalAndArea(t *testing.T) {
	// Unit square in the XY plane.
	square := Polygon{Vertices: []Point{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}}

	n := square.Normal()
	if !almostEqual(math.Abs(n.Z), 1) {
		t.Errorf("Normal() = %v, want +-Z", n)
	}
	if !almostEqual(square.Area(), 1) {
		t.Errorf("Area() = %v, want 1", square.Area())
	}
	if dev := square.MaxPlanarDeviation(); !almostEqual(dev, 0) {
		t.Errorf("MaxPlanarDeviation() = %v, want 0", dev)
	}
}

func TestPolygonMaxPlanarDeviation(t *testing.T) {
	// One vertex lifted out of plane.
	pg := Polygon{Vertices: []Point{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0.05},
		{X: 0, Y: 1, Z: 0},
	}}
	dev := pg.MaxPlanarDeviation()
	if dev < 0.01 {
		t.Errorf("MaxPlanarDeviation() = %v, want a clear violation", dev)
	}
}

func TestFrameFromAxis(t *testing.T) {
	f := FrameFromAxis(Point{}, WorldZ, WorldZ)

	if !almostEqual(f.ZAxis.Length(), 1) {
		t.Errorf("ZAxis not unit: %v", f.ZAxis)
	}
	// Axes must be mutually orthogonal even for the degenerate up == axis case.
	if d := f.XAxis.Dot(f.YAxis); !almostEqual(d, 0) {
		t.Errorf("XAxis.Dot(YAxis) = %v, want 0", d)
	}
	if d := f.XAxis.Dot(f.ZAxis); !almostEqual(d, 0) {
		t.Errorf("XAxis.Dot(ZAxis) = %v, want 0", d)
	}
}

func TestPlaneDistanceTo(t *testing.T) {
	pl := Plane{Origin: Point{}, Normal: WorldZ}
	if d := pl.DistanceTo(Point{Z: 2.5}); !almostEqual(d, 2.5) {
		t.Errorf("DistanceTo() = %v, want 2.5", d)
	}
	if d := pl.DistanceTo(Point{Z: -1}); !almostEqual(d, -1) {
		t.Errorf("DistanceTo() = %v, want -1", d)
	}
}

func TestSegmentClosestPoint(t *testing.T) {
	s := Segment{Start: Point{}, End: Point{X: 10}}

	// Projection inside the segment.
	cp := s.ClosestPoint(Point{X: 3, Y: 4})
	if !almostEqual(cp.X, 3) || !almostEqual(cp.Y, 0) {
		t.Errorf("ClosestPoint() = %v, want (3,0,0)", cp)
	}

	// Projection clamped to the start.
	cp = s.ClosestPoint(Point{X: -5, Y: 1})
	if !almostEqual(cp.X, 0) {
		t.Errorf("ClosestPoint() = %v, want clamped to start", cp)
	}
}

func TestSpatialKeys(t *testing.T) {
	eps := 0.001
	a := Point{X: 1.0000, Y: 2.0, Z: 3.0}
	b := Point{X: 1.0004, Y: 2.0, Z: 3.0}

	ka, kb := KeyOf(a, eps), KeyOf(b, eps)
	// Points within eps land in the same or a neighboring bucket.
	found := false
	for _, nk := range NeighborKeys(ka) {
		if nk == kb {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("KeyOf(%v) not within neighbor range of KeyOf(%v)", b, a)
	}

	if n := len(NeighborKeys(ka)); n != 27 {
		t.Errorf("NeighborKeys returned %d keys, want 27", n)
	}
}
