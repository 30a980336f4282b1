package cellnet

import (
	"math"
	"sort"

	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/graph"
)

// assignLevels clusters vertex elevations into storey levels. Elevations are
// swept in ascending order; a vertex within the level band of the current
// cluster joins it, otherwise it starts the next level. Lowest level is 0.
func (b *Builder) assignLevels(cn *CellNetwork) {
	if len(cn.vertexOrder) == 0 {
		return
	}

	elevations := make([]float64, 0, len(cn.vertexOrder))
	for _, id := range cn.vertexOrder {
		elevations = append(elevations, cn.vertices[id].Position.Z)
	}
	sort.Float64s(elevations)

	levels := []float64{elevations[0]}
	sums := []float64{elevations[0]}
	counts := []int{1}
	for _, z := range elevations[1:] {
		last := len(levels) - 1
		if z-levels[last] <= b.levelBand {
			// Track the running mean so the representative elevation does
			// not drift with input ordering.
			sums[last] += z
			counts[last]++
			continue
		}
		levels = append(levels, z)
		sums = append(sums, z)
		counts = append(counts, 1)
	}
	for i := range levels {
		levels[i] = sums[i] / float64(counts[i])
	}
	cn.levels = levels

	for _, id := range cn.vertexOrder {
		v := cn.vertices[id]
		v.Level = cn.levelOf(v.Position.Z)
	}
}

// levelOf returns the index of the level whose representative elevation is
// nearest to z.
func (cn *CellNetwork) levelOf(z float64) int {
	best := 0
	bestDist := math.Abs(z - cn.levels[0])
	for i, lz := range cn.levels[1:] {
		if d := math.Abs(z - lz); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}
	return best
}

// classifyEdges tags every edge as beam (near-horizontal, same level),
// column (near-vertical, spans levels), or unclassified. Edges beyond the
// angular tolerance in both directions stay unclassified so the element
// factory can skip them unless explicitly overridden.
func (b *Builder) classifyEdges(cn *CellNetwork, result *BuildResult) {
	for _, k := range cn.edgeOrder {
		e := cn.edges[k]
		u := cn.vertices[e.Key.U]
		v := cn.vertices[e.Key.V]

		dir := v.Position.Sub(u.Position).Unit()
		angleToZ := dir.AngleTo(geometry.WorldZ)
		if angleToZ > math.Pi/2 {
			angleToZ = math.Pi - angleToZ
		}

		lo, hi := u.Level, v.Level
		if lo > hi {
			lo, hi = hi, lo
		}
		e.Level = lo
		e.UpperLevel = hi

		switch {
		case math.Abs(angleToZ-math.Pi/2) <= b.angularTol && lo == hi:
			e.IsBeam = true
			result.Beams++
		case angleToZ <= b.angularTol && lo != hi:
			e.IsColumn = true
			result.Columns++
		default:
			e.Unclassified = true
			result.Unclassified++
			result.warn(WarnUnclassifiedEdge,
				"edge (%d,%d) is neither near-horizontal nor near-vertical (angle to Z %.3f rad)",
				e.Key.U, e.Key.V, angleToZ)
		}
	}
}

// classifyFaces assigns a surface type from the face normal: slab when the
// normal is near-vertical, wall when near-horizontal. Explicit openings keep
// their flag from input.
func (b *Builder) classifyFaces(cn *CellNetwork, result *BuildResult) {
	for _, fid := range cn.faceOrder {
		f := cn.faces[fid]
		if f.Surface == SurfaceOpening {
			continue
		}
		pg, err := cn.FacePolygon(fid)
		if err != nil {
			continue
		}
		angle := pg.Normal().AngleTo(geometry.WorldZ)
		if angle > math.Pi/2 {
			angle = math.Pi - angle
		}
		switch {
		case angle <= b.angularTol:
			f.Surface = SurfaceSlab
		case math.Abs(angle-math.Pi/2) <= b.angularTol:
			f.Surface = SurfaceWall
		default:
			f.Surface = SurfaceUnknown
			result.warn(WarnUnknownSurface,
				"face %d normal is neither near-vertical nor near-horizontal (angle %.3f rad)", fid, angle)
		}
	}
}

// collectLevelNeighbors records, per vertex, its adjacent vertices on the
// same level. The column head factory consumes these fans.
func (b *Builder) collectLevelNeighbors(cn *CellNetwork) {
	adjacent := make(map[graph.VertexID][]graph.VertexID)
	for _, k := range cn.edgeOrder {
		e := cn.edges[k]
		adjacent[e.Key.U] = append(adjacent[e.Key.U], e.Key.V)
		adjacent[e.Key.V] = append(adjacent[e.Key.V], e.Key.U)
	}
	for _, id := range cn.vertexOrder {
		v := cn.vertices[id]
		var fan []graph.VertexID
		for _, n := range adjacent[id] {
			if cn.vertices[n].Level == v.Level {
				fan = append(fan, n)
			}
		}
		sort.Slice(fan, func(i, j int) bool { return fan[i] < fan[j] })
		v.LevelNeighbors = fan
	}
}

// flagUnassigned marks edges and faces bounding no cell, e.g. a
// cantilevering beam on the building boundary.
func (b *Builder) flagUnassigned(cn *CellNetwork) {
	for _, k := range cn.edgeOrder {
		e := cn.edges[k]
		e.Unassigned = len(e.Cells) == 0
	}
	for _, fid := range cn.faceOrder {
		f := cn.faces[fid]
		f.Unassigned = len(f.Cells) == 0
	}
}
