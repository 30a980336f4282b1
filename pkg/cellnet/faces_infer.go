package cellnet

import (
	"sort"

	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/graph"
)

// inferSlabLoops derives slab faces from closed horizontal edge loops that
// no mesh face covers. Only triangle and quad loops of beam edges on a
// single level are considered, which covers grid-regular floor bays.
//
// When several candidate loops satisfy the tolerance the smallest enclosed
// area wins, then the lexicographically lowest vertex-ID tuple. The
// tie-break is deliberate: loop inference from raw edges is ambiguous and a
// documented deterministic rule beats a silent arbitrary one.
func (b *Builder) inferSlabLoops(cn *CellNetwork) {
	// Per-level beam adjacency.
	adjacent := make(map[graph.VertexID][]graph.VertexID)
	for _, k := range cn.edgeOrder {
		e := cn.edges[k]
		if !e.IsBeam {
			continue
		}
		adjacent[e.Key.U] = append(adjacent[e.Key.U], e.Key.V)
		adjacent[e.Key.V] = append(adjacent[e.Key.V], e.Key.U)
	}
	for id := range adjacent {
		sort.Slice(adjacent[id], func(i, j int) bool { return adjacent[id][i] < adjacent[id][j] })
	}

	type candidate struct {
		loop []graph.VertexID
		area float64
		key  string
	}
	var candidates []candidate

	record := func(loop []graph.VertexID) {
		key := canonicalLoop(loop)
		if b.matchFace(cn, loop) != nil {
			return
		}
		for _, c := range candidates {
			if c.key == key {
				return
			}
		}
		pg, err := loopPolygon(cn, loop)
		if err != nil {
			return
		}
		candidates = append(candidates, candidate{loop: loop, area: pg.Area(), key: key})
	}

	// Triangles: a < b < c with edges ab, bc, ca.
	for _, a := range cn.vertexOrder {
		for _, bb := range adjacent[a] {
			if bb <= a {
				continue
			}
			for _, c := range adjacent[bb] {
				if c <= bb {
					continue
				}
				if hasNeighbor(adjacent[c], a) {
					record([]graph.VertexID{a, bb, c})
				}
			}
		}
	}

	// Quads: a-b-c-d-a with a the smallest ID and b < d to kill mirrors.
	for _, a := range cn.vertexOrder {
		for _, bb := range adjacent[a] {
			if bb <= a {
				continue
			}
			for _, c := range adjacent[bb] {
				if c <= a || c == bb {
					continue
				}
				for _, d := range adjacent[c] {
					if d <= bb || d == a || d == c {
						continue
					}
					if hasNeighbor(adjacent[d], a) && !hasNeighbor(adjacent[a], c) && !hasNeighbor(adjacent[bb], d) {
						record([]graph.VertexID{a, bb, c, d})
					}
				}
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].area != candidates[j].area {
			return candidates[i].area < candidates[j].area
		}
		return candidates[i].key < candidates[j].key
	})

	for _, c := range candidates {
		if pg, err := loopPolygon(cn, c.loop); err == nil && pg.MaxPlanarDeviation() <= b.planarityTol {
			cn.addFace(c.loop, SurfaceSlab)
		}
	}
}

func hasNeighbor(sorted []graph.VertexID, id graph.VertexID) bool {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= id })
	return i < len(sorted) && sorted[i] == id
}

func loopPolygon(cn *CellNetwork, loop []graph.VertexID) (geometry.Polygon, error) {
	pts := make([]geometry.Point, len(loop))
	for i, vid := range loop {
		v, ok := cn.vertices[vid]
		if !ok {
			return geometry.Polygon{}, &TopologyError{Op: "loopPolygon", Entity: "vertex", ID: uint64(vid), Cause: ErrVertexNotFound}
		}
		pts[i] = v.Position
	}
	return geometry.Polygon{Vertices: pts}, nil
}
