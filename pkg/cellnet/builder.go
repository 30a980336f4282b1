package cellnet

import (
	"fmt"
	"math"

	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/graph"
	"github.com/dd0wney/gridframe/pkg/logging"
)

// Default tolerances for the cell network builder.
const (
	DefaultAngularTol   = 10 * math.Pi / 180 // radians
	DefaultPlanarityTol = 0.005              // meters
	DefaultLevelBand    = 0.010              // meters
)

// WarningKind identifies a non-fatal build ambiguity.
type WarningKind string

const (
	WarnOpenRegion       WarningKind = "open_region"
	WarnUnclassifiedEdge WarningKind = "unclassified_edge"
	WarnUnknownSurface   WarningKind = "unknown_surface"
)

// Warning records a non-fatal geometry classification ambiguity. Warnings
// are attached to the build result so the pipeline still produces a usable,
// partially annotated network.
type Warning struct {
	Kind    WarningKind
	Message string
}

// SkippedFace records an input face rejected during a tolerant build.
type SkippedFace struct {
	Index int
	Err   error
}

// BuildResult carries warnings and summary counts from a network build.
type BuildResult struct {
	Warnings     []Warning
	SkippedFaces []SkippedFace
	Levels       int
	Beams        int
	Columns      int
	Unclassified int
	Cells        int
	OpenRegions  int
}

func (r *BuildResult) warn(kind WarningKind, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// InputFace is a planar polygon supplied alongside the line input. Opening
// marks the face as an explicit opening rather than a slab or wall.
type InputFace struct {
	Polygon geometry.Polygon
	Opening bool
}

// Builder lifts a connectivity graph plus mesh faces into a cell network.
type Builder struct {
	angularTol   float64
	planarityTol float64
	levelBand    float64
	inferSlabs   bool
	tolerant     bool
	logger       logging.Logger
}

// NewBuilder creates a builder with default tolerances.
func NewBuilder() *Builder {
	return &Builder{
		angularTol:   DefaultAngularTol,
		planarityTol: DefaultPlanarityTol,
		levelBand:    DefaultLevelBand,
		logger:       logging.DefaultLogger(),
	}
}

// WithAngularTolerance sets the angular classification tolerance in radians.
func (b *Builder) WithAngularTolerance(tol float64) *Builder {
	b.angularTol = tol
	return b
}

// WithPlanarityTolerance sets the face planarity tolerance.
func (b *Builder) WithPlanarityTolerance(tol float64) *Builder {
	b.planarityTol = tol
	return b
}

// WithLevelBand sets the elevation band within which vertices share a level.
func (b *Builder) WithLevelBand(band float64) *Builder {
	b.levelBand = band
	return b
}

// WithSlabInference enables inference of slab faces from closed horizontal
// edge loops when no mesh face covers them. When several candidate loops
// satisfy the tolerance, the smallest enclosed area wins; remaining ties go
// to the lexicographically lowest vertex-ID tuple.
func (b *Builder) WithSlabInference(enabled bool) *Builder {
	b.inferSlabs = enabled
	return b
}

// WithTolerantFaces records face insertion failures on the result instead
// of aborting the build.
func (b *Builder) WithTolerantFaces(enabled bool) *Builder {
	b.tolerant = enabled
	return b
}

// WithLogger replaces the builder's logger.
func (b *Builder) WithLogger(logger logging.Logger) *Builder {
	b.logger = logger
	return b
}

// Build constructs the cell network from the graph and the optional mesh
// faces. Fatal errors (non-planar input faces) abort the build; geometric
// ambiguities are recorded as warnings on the result.
func (b *Builder) Build(g *graph.Graph, faces []InputFace) (*CellNetwork, *BuildResult, error) {
	if g == nil {
		return nil, nil, &TopologyError{Op: "Build", Entity: "graph", Cause: ErrNilGraph}
	}

	cn := newCellNetwork(g.Tolerance())
	result := &BuildResult{}

	// Carry the graph's vertices and edges over unchanged so the two stages
	// agree on vertex identity.
	for _, v := range g.Vertices() {
		cn.addVertex(v.Position)
	}
	for _, k := range g.Edges() {
		cn.addEdge(k.U, k.V)
	}

	for i, face := range faces {
		if err := b.insertFace(cn, i, face); err != nil {
			if !b.tolerant {
				return nil, nil, err
			}
			result.SkippedFaces = append(result.SkippedFaces, SkippedFace{Index: i, Err: err})
			b.logger.Warn("input face skipped",
				logging.Stage("cellnet"),
				logging.Int("index", i),
				logging.Error(err))
		}
	}

	b.assignLevels(cn)
	b.classifyEdges(cn, result)
	b.classifyFaces(cn, result)

	if b.inferSlabs {
		b.inferSlabLoops(cn)
	}

	b.inferCells(cn, result)
	b.flagUnassigned(cn)
	b.collectLevelNeighbors(cn)

	result.Levels = cn.LevelCount()
	result.Cells = cn.CellCount()
	b.logger.Debug("cell network built",
		logging.Stage("cellnet"),
		logging.Int("vertices", cn.VertexCount()),
		logging.Int("edges", cn.EdgeCount()),
		logging.Int("faces", cn.FaceCount()),
		logging.Int("cells", cn.CellCount()),
		logging.Int("levels", cn.LevelCount()),
		logging.Int("warnings", len(result.Warnings)))
	return cn, result, nil
}

// insertFace matches a mesh face to existing vertices and edges, adding any
// that are absent, and rejects loops that violate the planarity tolerance.
func (b *Builder) insertFace(cn *CellNetwork, index int, face InputFace) error {
	if dev := face.Polygon.MaxPlanarDeviation(); dev > b.planarityTol {
		return NonPlanarFaceError(index, dev, b.planarityTol)
	}

	loop := make([]graph.VertexID, 0, len(face.Polygon.Vertices))
	for _, p := range face.Polygon.Vertices {
		id := cn.resolve(p)
		// Consecutive duplicates collapse under the tolerance.
		if len(loop) > 0 && loop[len(loop)-1] == id {
			continue
		}
		loop = append(loop, id)
	}
	if len(loop) > 1 && loop[0] == loop[len(loop)-1] {
		loop = loop[:len(loop)-1]
	}
	if len(loop) < 3 {
		return &TopologyError{
			Op:     "AddFace",
			Entity: "face",
			ID:     uint64(index + 1),
			Cause:  ErrFaceTooSmall,
		}
	}

	// Identical loops (up to rotation and direction) collapse onto the
	// existing face rather than creating a duplicate member.
	if existing := b.matchFace(cn, loop); existing != nil {
		if face.Opening {
			existing.Surface = SurfaceOpening
		}
		return nil
	}

	// Boundary edges absent from the graph are added here, marked so
	// downstream consumers can tell them from line-input members.
	for i := range loop {
		u, v := loop[i], loop[(i+1)%len(loop)]
		if _, err := cn.Edge(u, v); err != nil {
			cn.addEdge(u, v).FromFace = true
		}
	}

	surface := SurfaceUnknown
	if face.Opening {
		surface = SurfaceOpening
	}
	cn.addFace(loop, surface)
	return nil
}

// matchFace finds an existing face with the same vertex loop, ignoring
// rotation and winding direction.
func (b *Builder) matchFace(cn *CellNetwork, loop []graph.VertexID) *Face {
	key := canonicalLoop(loop)
	for _, fid := range cn.faceOrder {
		f := cn.faces[fid]
		if len(f.Loop) != len(loop) {
			continue
		}
		if canonicalLoop(f.Loop) == key {
			return f
		}
	}
	return nil
}

// canonicalLoop returns a rotation- and direction-invariant key for a loop.
func canonicalLoop(loop []graph.VertexID) string {
	n := len(loop)
	best := ""
	for dir := 0; dir < 2; dir++ {
		for start := 0; start < n; start++ {
			s := ""
			for i := 0; i < n; i++ {
				var idx int
				if dir == 0 {
					idx = (start + i) % n
				} else {
					idx = (start - i + n*n) % n
				}
				s += fmt.Sprintf("%d,", loop[idx])
			}
			if best == "" || s < best {
				best = s
			}
		}
	}
	return best
}
