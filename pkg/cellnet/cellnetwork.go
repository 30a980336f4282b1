package cellnet

import (
	"math"
	"sort"

	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/graph"
)

// FaceID identifies a face within a cell network.
type FaceID uint64

// CellID identifies an enclosed cell (e.g., one storey bay).
type CellID uint64

// SurfaceType classifies a face by its structural role.
type SurfaceType uint8

const (
	SurfaceUnknown SurfaceType = iota
	SurfaceSlab
	SurfaceWall
	SurfaceOpening
)

// String returns the surface type name.
func (s SurfaceType) String() string {
	switch s {
	case SurfaceSlab:
		return "slab"
	case SurfaceWall:
		return "wall"
	case SurfaceOpening:
		return "opening"
	default:
		return "unknown"
	}
}

// Vertex is a deduplicated point of the cell network, annotated with its
// inferred storey level and its same-level neighbor fan.
type Vertex struct {
	ID             graph.VertexID
	Position       geometry.Point
	Level          int
	LevelNeighbors []graph.VertexID
}

// Edge is an undirected member of the cell network annotated with its
// structural classification.
type Edge struct {
	Key          graph.EdgeKey
	IsBeam       bool
	IsColumn     bool
	Unclassified bool
	FromFace     bool   // true if the edge exists only as a face boundary
	Level        int    // level of the lower endpoint
	UpperLevel   int    // level of the upper endpoint (== Level for beams)
	Cells        []CellID
	Unassigned   bool // true if the edge bounds no cell
}

// Face is an ordered loop of vertices with a structural surface type.
type Face struct {
	ID         FaceID
	Loop       []graph.VertexID
	Surface    SurfaceType
	Cells      []CellID
	Unassigned bool // true if the face bounds no cell
}

// Cell is a closed volumetric region bounded by a watertight set of faces.
type Cell struct {
	ID    CellID
	Faces []FaceID
}

// CellNetwork is the topological complex of vertices, edges, faces, and
// cells inferred from a connectivity graph plus mesh faces. The dedup
// tolerance is fixed for the lifetime of the network; changing it requires
// a full rebuild.
type CellNetwork struct {
	eps float64

	vertices    map[graph.VertexID]*Vertex
	vertexOrder []graph.VertexID
	buckets     map[geometry.Key][]graph.VertexID
	nextVertex  graph.VertexID

	edges     map[graph.EdgeKey]*Edge
	edgeOrder []graph.EdgeKey

	faces     map[FaceID]*Face
	faceOrder []FaceID
	nextFace  FaceID

	cells    map[CellID]*Cell
	nextCell CellID

	levels []float64 // representative elevation per level index, ascending
}

func newCellNetwork(eps float64) *CellNetwork {
	return &CellNetwork{
		eps:        eps,
		vertices:   make(map[graph.VertexID]*Vertex),
		buckets:    make(map[geometry.Key][]graph.VertexID),
		nextVertex: 1,
		edges:      make(map[graph.EdgeKey]*Edge),
		faces:      make(map[FaceID]*Face),
		nextFace:   1,
		cells:      make(map[CellID]*Cell),
		nextCell:   1,
	}
}

// Tolerance returns the dedup tolerance the network was built with.
func (cn *CellNetwork) Tolerance() float64 { return cn.eps }

// VertexCount returns the number of vertices.
func (cn *CellNetwork) VertexCount() int { return len(cn.vertices) }

// EdgeCount returns the number of edges.
func (cn *CellNetwork) EdgeCount() int { return len(cn.edges) }

// FaceCount returns the number of faces.
func (cn *CellNetwork) FaceCount() int { return len(cn.faces) }

// CellCount returns the number of inferred cells.
func (cn *CellNetwork) CellCount() int { return len(cn.cells) }

// LevelCount returns the number of inferred storey levels.
func (cn *CellNetwork) LevelCount() int { return len(cn.levels) }

// LevelElevation returns the representative elevation of a level index.
func (cn *CellNetwork) LevelElevation(level int) (float64, bool) {
	if level < 0 || level >= len(cn.levels) {
		return 0, false
	}
	return cn.levels[level], true
}

// Vertex returns the vertex with the given ID.
func (cn *CellNetwork) Vertex(id graph.VertexID) (*Vertex, error) {
	v, ok := cn.vertices[id]
	if !ok {
		return nil, &TopologyError{Op: "Vertex", Entity: "vertex", ID: uint64(id), Cause: ErrVertexNotFound}
	}
	return v, nil
}

// VertexPoint returns the position of a vertex.
func (cn *CellNetwork) VertexPoint(id graph.VertexID) (geometry.Point, error) {
	v, err := cn.Vertex(id)
	if err != nil {
		return geometry.Point{}, err
	}
	return v.Position, nil
}

// Vertices returns all vertices in creation order.
func (cn *CellNetwork) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(cn.vertexOrder))
	for _, id := range cn.vertexOrder {
		out = append(out, cn.vertices[id])
	}
	return out
}

// Edge returns the edge for the unordered vertex pair {u, v}.
func (cn *CellNetwork) Edge(u, v graph.VertexID) (*Edge, error) {
	e, ok := cn.edges[graph.NewEdgeKey(u, v)]
	if !ok {
		return nil, &TopologyError{Op: "Edge", Entity: "edge", Cause: ErrEdgeNotFound}
	}
	return e, nil
}

// Edges returns all edges in insertion order.
func (cn *CellNetwork) Edges() []*Edge {
	out := make([]*Edge, 0, len(cn.edgeOrder))
	for _, k := range cn.edgeOrder {
		out = append(out, cn.edges[k])
	}
	return out
}

// EdgeLine returns the segment spanned by an edge.
func (cn *CellNetwork) EdgeLine(key graph.EdgeKey) (geometry.Segment, error) {
	e, ok := cn.edges[key]
	if !ok {
		return geometry.Segment{}, &TopologyError{Op: "EdgeLine", Entity: "edge", Cause: ErrEdgeNotFound}
	}
	u := cn.vertices[e.Key.U]
	v := cn.vertices[e.Key.V]
	return geometry.Segment{Start: u.Position, End: v.Position}, nil
}

// Beams returns all edges classified as beams, in insertion order.
func (cn *CellNetwork) Beams() []*Edge {
	return cn.edgesWhere(func(e *Edge) bool { return e.IsBeam })
}

// Columns returns all edges classified as columns, in insertion order.
func (cn *CellNetwork) Columns() []*Edge {
	return cn.edgesWhere(func(e *Edge) bool { return e.IsColumn })
}

func (cn *CellNetwork) edgesWhere(pred func(*Edge) bool) []*Edge {
	var out []*Edge
	for _, k := range cn.edgeOrder {
		if e := cn.edges[k]; pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Face returns the face with the given ID.
func (cn *CellNetwork) Face(id FaceID) (*Face, error) {
	f, ok := cn.faces[id]
	if !ok {
		return nil, &TopologyError{Op: "Face", Entity: "face", ID: uint64(id), Cause: ErrFaceNotFound}
	}
	return f, nil
}

// Faces returns all faces in insertion order.
func (cn *CellNetwork) Faces() []*Face {
	out := make([]*Face, 0, len(cn.faceOrder))
	for _, id := range cn.faceOrder {
		out = append(out, cn.faces[id])
	}
	return out
}

// Slabs returns all faces with surface type slab, in insertion order.
func (cn *CellNetwork) Slabs() []*Face {
	var out []*Face
	for _, id := range cn.faceOrder {
		if f := cn.faces[id]; f.Surface == SurfaceSlab {
			out = append(out, f)
		}
	}
	return out
}

// FacePolygon returns the polygon spanned by a face loop.
func (cn *CellNetwork) FacePolygon(id FaceID) (geometry.Polygon, error) {
	f, err := cn.Face(id)
	if err != nil {
		return geometry.Polygon{}, err
	}
	pts := make([]geometry.Point, len(f.Loop))
	for i, vid := range f.Loop {
		pts[i] = cn.vertices[vid].Position
	}
	return geometry.Polygon{Vertices: pts}, nil
}

// Cell returns the cell with the given ID.
func (cn *CellNetwork) Cell(id CellID) (*Cell, error) {
	c, ok := cn.cells[id]
	if !ok {
		return nil, &TopologyError{Op: "Cell", Entity: "cell", ID: uint64(id), Cause: ErrCellNotFound}
	}
	return c, nil
}

// Cells returns all cells sorted by ID.
func (cn *CellNetwork) Cells() []*Cell {
	out := make([]*Cell, 0, len(cn.cells))
	for _, c := range cn.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// VertexFaces returns the IDs of faces whose loop contains the vertex,
// sorted ascending.
func (cn *CellNetwork) VertexFaces(id graph.VertexID) []FaceID {
	var out []FaceID
	for _, fid := range cn.faceOrder {
		for _, vid := range cn.faces[fid].Loop {
			if vid == id {
				out = append(out, fid)
				break
			}
		}
	}
	return out
}

// EdgeFaces returns the IDs of faces whose boundary uses the edge, sorted
// ascending.
func (cn *CellNetwork) EdgeFaces(key graph.EdgeKey) []FaceID {
	var out []FaceID
	for _, fid := range cn.faceOrder {
		f := cn.faces[fid]
		for i := range f.Loop {
			u := f.Loop[i]
			v := f.Loop[(i+1)%len(f.Loop)]
			if graph.NewEdgeKey(u, v) == key {
				out = append(out, fid)
				break
			}
		}
	}
	return out
}

// resolve matches p against existing vertices within the tolerance, creating
// a new vertex when no match exists. Same bucketing scheme as the graph
// builder so the two stages agree on identity.
func (cn *CellNetwork) resolve(p geometry.Point) graph.VertexID {
	key := geometry.KeyOf(p, cn.eps)
	best := graph.VertexID(0)
	bestDist := math.Inf(1)
	for _, nk := range geometry.NeighborKeys(key) {
		for _, id := range cn.buckets[nk] {
			d := cn.vertices[id].Position.DistanceTo(p)
			if d > cn.eps {
				continue
			}
			// Inclusive boundary with oldest-vertex ties, matching the
			// graph builder.
			if best == 0 || d < bestDist || (d == bestDist && id < best) {
				best = id
				bestDist = d
			}
		}
	}
	if best != 0 {
		return best
	}
	return cn.addVertex(p)
}

func (cn *CellNetwork) addVertex(p geometry.Point) graph.VertexID {
	id := cn.nextVertex
	cn.nextVertex++
	cn.vertices[id] = &Vertex{ID: id, Position: p}
	cn.vertexOrder = append(cn.vertexOrder, id)
	cn.buckets[geometry.KeyOf(p, cn.eps)] = append(cn.buckets[geometry.KeyOf(p, cn.eps)], id)
	return id
}

func (cn *CellNetwork) addEdge(u, v graph.VertexID) *Edge {
	key := graph.NewEdgeKey(u, v)
	if e, ok := cn.edges[key]; ok {
		return e
	}
	e := &Edge{Key: key, Level: -1, UpperLevel: -1}
	cn.edges[key] = e
	cn.edgeOrder = append(cn.edgeOrder, key)
	return e
}

func (cn *CellNetwork) addFace(loop []graph.VertexID, surface SurfaceType) *Face {
	id := cn.nextFace
	cn.nextFace++
	f := &Face{ID: id, Loop: loop, Surface: surface}
	cn.faces[id] = f
	cn.faceOrder = append(cn.faceOrder, id)
	return f
}
