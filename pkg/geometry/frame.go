package geometry

// Plane is an infinite plane defined by an origin point and a unit normal.
type Plane struct {
	Origin Point  `json:"origin" yaml:"origin"`
	Normal Vector `json:"normal" yaml:"normal"`
}

// DistanceTo returns the signed distance from p to the plane.
func (pl Plane) DistanceTo(p Point) float64 {
	return p.Sub(pl.Origin).Dot(pl.Normal.Unit())
}

// Frame is a right-handed local coordinate system. Axes are unit length and
// mutually orthogonal; ZAxis = XAxis x YAxis.
type Frame struct {
	Origin Point  `json:"origin" yaml:"origin"`
	XAxis  Vector `json:"xaxis" yaml:"xaxis"`
	YAxis  Vector `json:"yaxis" yaml:"yaxis"`
	ZAxis  Vector `json:"zaxis" yaml:"zaxis"`
}

// WorldXY returns the world frame at the origin.
func WorldXY() Frame {
	return Frame{Origin: Point{}, XAxis: WorldX, YAxis: WorldY, ZAxis: WorldZ}
}

// FrameAt returns the world-aligned frame translated to origin.
func FrameAt(origin Point) Frame {
	f := WorldXY()
	f.Origin = origin
	return f
}

// FrameFromAxis builds a frame whose X axis follows the given direction,
// using up as the orientation hint. If axis is parallel to up, WorldX is
// used as the hint instead so the result is always well defined.
func FrameFromAxis(origin Point, axis, up Vector) Frame {
	x := axis.Unit()
	hint := up.Unit()
	y := hint.Cross(x)
	if y.Length() < 1e-12 {
		y = WorldX.Cross(x)
		if y.Length() < 1e-12 {
			y = WorldY.Cross(x)
		}
	}
	y = y.Unit()
	return Frame{Origin: origin, XAxis: x, YAxis: y, ZAxis: x.Cross(y).Unit()}
}

// FrameFromPlane builds a frame lying in the plane with Z along its normal.
func FrameFromPlane(pl Plane) Frame {
	z := pl.Normal.Unit()
	x := WorldX.Cross(z)
	if x.Length() < 1e-12 {
		x = WorldY.Cross(z)
	}
	x = x.Unit()
	y := z.Cross(x).Unit()
	return Frame{Origin: pl.Origin, XAxis: x, YAxis: y, ZAxis: z}
}

// Plane returns the frame's XY plane.
func (f Frame) Plane() Plane {
	return Plane{Origin: f.Origin, Normal: f.ZAxis}
}

// PointAt maps local coordinates (u, v, w) to world space.
func (f Frame) PointAt(u, v, w float64) Point {
	return f.Origin.
		Add(f.XAxis.Scale(u)).
		Add(f.YAxis.Scale(v)).
		Add(f.ZAxis.Scale(w))
}
