package cellnet

import (
	"math"
	"sort"

	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/graph"
)

// halfFace is one side of a face: side +1 faces along the polygon normal,
// side -1 against it. Cells are regions of space bounded by half-faces, so
// a slab shared by two stacked cells contributes one side to each.
type halfFace struct {
	face FaceID
	side int8
}

// minCellVolume rejects numerically degenerate slivers (in cubic meters).
const minCellVolume = 1e-9

// inferCells detects cells as minimal closed regions of the face complex.
// Around every edge the incident faces are sorted radially; each angular gap
// between consecutive faces is one region of space, and the two half-faces
// bounding the gap are merged. Closed regions with positive enclosed volume
// become cells. The unbounded complement of a closed complex comes out with
// negative volume and is discarded silently; regions touching a boundary
// edge (an edge with a single incident face) cannot close and are reported
// as open-region warnings.
//
// Edges are visited in canonical key order with ID-ordered tie-breaks, so
// the inferred cells never depend on the order input faces were supplied.
func (b *Builder) inferCells(cn *CellNetwork, result *BuildResult) {
	if len(cn.faceOrder) == 0 {
		return
	}

	normals := make(map[FaceID]geometry.Vector, len(cn.faceOrder))
	centroids := make(map[FaceID]geometry.Point, len(cn.faceOrder))
	areas := make(map[FaceID]float64, len(cn.faceOrder))
	usage := make(map[graph.EdgeKey][]FaceID)
	for _, fid := range cn.faceOrder {
		pg, err := cn.FacePolygon(fid)
		if err != nil {
			continue
		}
		normals[fid] = pg.Normal()
		centroids[fid] = pg.Centroid()
		areas[fid] = pg.Area()
		f := cn.faces[fid]
		for i := range f.Loop {
			k := graph.NewEdgeKey(f.Loop[i], f.Loop[(i+1)%len(f.Loop)])
			usage[k] = append(usage[k], fid)
		}
	}

	keys := make([]graph.EdgeKey, 0, len(usage))
	for k := range usage {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].U != keys[j].U {
			return keys[i].U < keys[j].U
		}
		return keys[i].V < keys[j].V
	})

	merge := newHalfFaceSet()
	for _, k := range keys {
		b.mergeAroundEdge(cn, k, usage[k], normals, centroids, merge)
	}

	b.promoteRegions(cn, merge, normals, centroids, areas, result)
}

// mergeAroundEdge radially sorts the faces incident to an edge and merges
// the half-face pair bounding each angular gap. A boundary edge with a
// single incident face merges both sides of that face and marks the region
// open: rotating around the exposed edge connects the two sides.
func (b *Builder) mergeAroundEdge(cn *CellNetwork, k graph.EdgeKey, faces []FaceID, normals map[FaceID]geometry.Vector, centroids map[FaceID]geometry.Point, merge *halfFaceSet) {
	u := cn.vertices[k.U].Position
	v := cn.vertices[k.V].Position
	d := v.Sub(u).Unit()
	mid := u.Midpoint(v)

	type spoke struct {
		face  FaceID
		w     geometry.Vector // in-plane direction from the edge into the face
		angle float64
	}
	spokes := make([]spoke, 0, len(faces))
	for _, fid := range faces {
		w := centroids[fid].Sub(mid)
		w = w.Sub(d.Scale(w.Dot(d)))
		if w.IsZero() {
			continue
		}
		spokes = append(spokes, spoke{face: fid, w: w.Unit()})
	}
	if len(spokes) == 0 {
		return
	}
	if len(spokes) == 1 {
		only := spokes[0].face
		merge.union(halfFace{only, 1}, halfFace{only, -1})
		merge.markOpen(halfFace{only, 1})
		return
	}

	ref := spokes[0].w
	ortho := d.Cross(ref)
	for i := range spokes {
		spokes[i].angle = math.Atan2(spokes[i].w.Dot(ortho), spokes[i].w.Dot(ref))
	}
	sort.Slice(spokes, func(i, j int) bool {
		if spokes[i].angle != spokes[j].angle {
			return spokes[i].angle < spokes[j].angle
		}
		return spokes[i].face < spokes[j].face
	})

	// The gap after spoke i (counterclockwise around d) is bounded by the
	// ccw-facing side of spoke i and the cw-facing side of spoke i+1.
	for i := range spokes {
		cur := spokes[i]
		next := spokes[(i+1)%len(spokes)]
		merge.union(
			halfFace{cur.face, ccwSide(d, cur.w, normals[cur.face])},
			halfFace{next.face, -ccwSide(d, next.w, normals[next.face])},
		)
	}
}

// ccwSide returns the side of a face whose normal points counterclockwise
// around the edge direction d, seen from the face's spoke w.
func ccwSide(d, w, normal geometry.Vector) int8 {
	if d.Cross(w).Dot(normal) >= 0 {
		return 1
	}
	return -1
}

// promoteRegions turns each closed, positive-volume region into a cell. The
// signed volume is the divergence-theorem sum over the region's boundary
// with outward normals, so the unbounded complement comes out negative and
// never promotes.
func (b *Builder) promoteRegions(cn *CellNetwork, merge *halfFaceSet, normals map[FaceID]geometry.Vector, centroids map[FaceID]geometry.Point, areas map[FaceID]float64, result *BuildResult) {
	for _, r := range merge.regions() {
		faces := distinctFaces(r.members)
		if r.open {
			result.OpenRegions++
			result.warn(WarnOpenRegion,
				"face set of %d faces (seed %d) does not close a volume; not promoted to cell",
				len(faces), faces[0])
			continue
		}

		var volume float64
		for _, hf := range r.members {
			out := normals[hf.face].Scale(-float64(hf.side))
			c := centroids[hf.face].Sub(geometry.Point{})
			volume += areas[hf.face] * c.Dot(out) / 3
		}
		// A closed volume needs at least four faces (tetrahedron).
		if volume < minCellVolume || len(faces) < 4 {
			continue
		}

		id := cn.nextCell
		cn.nextCell++
		cn.cells[id] = &Cell{ID: id, Faces: faces}
		for _, fid := range faces {
			f := cn.faces[fid]
			f.Cells = append(f.Cells, id)
			for i := range f.Loop {
				k := graph.NewEdgeKey(f.Loop[i], f.Loop[(i+1)%len(f.Loop)])
				if e, ok := cn.edges[k]; ok && !containsCell(e.Cells, id) {
					e.Cells = append(e.Cells, id)
				}
			}
		}
	}
}

// distinctFaces extracts the sorted unique face IDs of a region. Members
// arrive sorted, so the output stays sorted.
func distinctFaces(members []halfFace) []FaceID {
	out := make([]FaceID, 0, len(members))
	for _, hf := range members {
		if len(out) == 0 || out[len(out)-1] != hf.face {
			out = append(out, hf.face)
		}
	}
	return out
}

func containsCell(cells []CellID, id CellID) bool {
	for _, c := range cells {
		if c == id {
			return true
		}
	}
	return false
}

// halfFaceSet is a union-find over half-faces with an open flag that
// survives merging.
type halfFaceSet struct {
	parent map[halfFace]halfFace
	open   map[halfFace]bool
}

func newHalfFaceSet() *halfFaceSet {
	return &halfFaceSet{
		parent: make(map[halfFace]halfFace),
		open:   make(map[halfFace]bool),
	}
}

func (s *halfFaceSet) find(h halfFace) halfFace {
	p, ok := s.parent[h]
	if !ok {
		s.parent[h] = h
		return h
	}
	if p == h {
		return h
	}
	root := s.find(p)
	s.parent[h] = root
	return root
}

func halfFaceLess(a, b halfFace) bool {
	if a.face != b.face {
		return a.face < b.face
	}
	return a.side < b.side
}

func (s *halfFaceSet) union(a, b halfFace) {
	ra, rb := s.find(a), s.find(b)
	if ra == rb {
		return
	}
	// Keep the smaller (face, side) pair as root so grouping is stable.
	if halfFaceLess(rb, ra) {
		ra, rb = rb, ra
	}
	s.parent[rb] = ra
	if s.open[rb] {
		s.open[ra] = true
		delete(s.open, rb)
	}
}

func (s *halfFaceSet) markOpen(h halfFace) {
	s.open[s.find(h)] = true
}

type region struct {
	members []halfFace // sorted by (face, side)
	open    bool
}

// regions groups the half-faces by merged root, each region's members sorted
// and the regions ordered by their lowest member, so cell numbering is
// reproducible regardless of map iteration order.
func (s *halfFaceSet) regions() []region {
	byRoot := make(map[halfFace][]halfFace)
	for h := range s.parent {
		byRoot[s.find(h)] = append(byRoot[s.find(h)], h)
	}
	out := make([]region, 0, len(byRoot))
	for root, members := range byRoot {
		sort.Slice(members, func(i, j int) bool { return halfFaceLess(members[i], members[j]) })
		out = append(out, region{members: members, open: s.open[root]})
	}
	sort.Slice(out, func(i, j int) bool { return halfFaceLess(out[i].members[0], out[j].members[0]) })
	return out
}
