package graph

import (
	"fmt"

	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/logging"
)

// Builder turns an ordered collection of line segments into a connectivity
// graph with tolerance-deduplicated vertices.
type Builder struct {
	eps    float64
	logger logging.Logger
}

// NewBuilder creates a builder with the given deduplication tolerance.
func NewBuilder(eps float64) (*Builder, error) {
	if eps <= 0 {
		return nil, &GeometryError{
			Op:      "NewBuilder",
			Entity:  "tolerance",
			Index:   -1,
			Cause:   ErrInvalidTolerance,
			Context: fmt.Sprintf("eps=%g", eps),
		}
	}
	return &Builder{eps: eps, logger: logging.DefaultLogger()}, nil
}

// WithLogger replaces the builder's logger.
func (b *Builder) WithLogger(logger logging.Logger) *Builder {
	b.logger = logger
	return b
}

// Build constructs the graph from segments. Each endpoint is matched against
// existing vertices within the tolerance; each segment becomes an edge
// between its deduplicated endpoints. Segments whose endpoints resolve to the
// same vertex are rejected with ErrDegenerateGeometry.
//
// Build is idempotent: the same segments with the same tolerance always
// produce an isomorphic graph with identical vertex IDs.
func (b *Builder) Build(segments []geometry.Segment) (*Graph, error) {
	g := New(b.eps)
	for i, seg := range segments {
		if err := b.addSegment(g, i, seg); err != nil {
			return nil, err
		}
	}
	b.logger.Debug("graph built",
		logging.Count(len(segments)),
		logging.Int("vertices", g.VertexCount()),
		logging.Int("edges", g.EdgeCount()))
	return g, nil
}

// BuildTolerant constructs the graph like Build but skips degenerate
// segments instead of aborting, returning the indices of the skipped
// segments. Endpoints of a skipped segment may still contribute a vertex
// when they do not match an existing one.
func (b *Builder) BuildTolerant(segments []geometry.Segment) (*Graph, []int) {
	g := New(b.eps)
	var skipped []int
	for i, seg := range segments {
		if err := b.addSegment(g, i, seg); err != nil {
			skipped = append(skipped, i)
			b.logger.Warn("degenerate segment skipped",
				logging.Int("index", i),
				logging.Error(err))
		}
	}
	b.logger.Debug("graph built",
		logging.Count(len(segments)),
		logging.Int("skipped", len(skipped)),
		logging.Int("vertices", g.VertexCount()),
		logging.Int("edges", g.EdgeCount()))
	return g, skipped
}

func (b *Builder) addSegment(g *Graph, index int, seg geometry.Segment) error {
	u := g.resolve(seg.Start)
	v := g.resolve(seg.End)
	if u == v {
		return DegenerateSegmentError(index,
			fmt.Sprintf("both endpoints resolve to vertex %d within eps=%g", u, b.eps))
	}
	g.addEdge(u, v)
	return nil
}
