package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/gridframe/pkg/geometry"
)

func seg(x1, y1, z1, x2, y2, z2 float64) geometry.Segment {
	return geometry.Segment{
		Start: geometry.Point{X: x1, Y: y1, Z: z1},
		End:   geometry.Point{X: x2, Y: y2, Z: z2},
	}
}

func TestNewBuilderRejectsBadTolerance(t *testing.T) {
	_, err := NewBuilder(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTolerance)

	_, err = NewBuilder(-0.001)
	assert.ErrorIs(t, err, ErrInvalidTolerance)
}

func TestBuildSharedEndpoints(t *testing.T) {
	// Two horizontal segments sharing an endpoint plus one vertical segment
	// rising from it. The shared endpoint deduplicates to one vertex.
	b, err := NewBuilder(0.001)
	require.NoError(t, err)

	g, err := b.Build([]geometry.Segment{
		seg(0, 0, 0, 3, 0, 0),
		seg(3, 0, 0, 6, 0, 0),
		seg(3, 0, 0, 3, 0, 3),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 3, g.EdgeCount())

	// The shared vertex has three neighbors.
	shared := g.resolve(geometry.Point{X: 3, Y: 0, Z: 0})
	assert.Len(t, g.Neighbors(shared), 3)
}

func TestBuildDeduplicatesWithinTolerance(t *testing.T) {
	b, err := NewBuilder(0.001)
	require.NoError(t, err)

	// Second segment's start is 0.5mm off the first segment's end.
	g, err := b.Build([]geometry.Segment{
		seg(0, 0, 0, 1, 0, 0),
		seg(1.0005, 0, 0, 2, 0, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.VertexCount(), "near-coincident endpoints must merge")
	assert.Equal(t, 2, g.EdgeCount())
}

func TestBuildMergesEndpointExactlyAtTolerance(t *testing.T) {
	b, err := NewBuilder(0.5)
	require.NoError(t, err)

	// 0.5 and 0.25 are exact in binary, so the computed distance is exactly
	// the tolerance. The boundary is inclusive, so the endpoints merge.
	g, err := b.Build([]geometry.Segment{
		seg(0, 0, 0, 10, 0, 0),
		seg(0.5, 0, 0, 10, 10, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.VertexCount(), "an endpoint exactly at the tolerance must merge")
	assert.True(t, g.HasEdge(1, 3))
}

func TestBuildKeepsDistinctVerticesOutsideTolerance(t *testing.T) {
	b, err := NewBuilder(0.001)
	require.NoError(t, err)

	g, err := b.Build([]geometry.Segment{
		seg(0, 0, 0, 1, 0, 0),
		seg(1.01, 0, 0, 2, 0, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, g.VertexCount(), "endpoints 10mm apart must stay distinct")
}

func TestBuildRejectsDegenerateSegment(t *testing.T) {
	b, err := NewBuilder(0.001)
	require.NoError(t, err)

	_, err = b.Build([]geometry.Segment{
		seg(0, 0, 0, 0.0004, 0, 0),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
	assert.True(t, IsDegenerate(err))

	var gerr *GeometryError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, 0, gerr.Index)
}

func TestBuildTolerantSkipsDegenerates(t *testing.T) {
	b, err := NewBuilder(0.001)
	require.NoError(t, err)

	g, skipped := b.BuildTolerant([]geometry.Segment{
		seg(0, 0, 0, 1, 0, 0),
		seg(2, 0, 0, 2.0001, 0, 0), // degenerate
		seg(1, 0, 0, 1, 0, 3),
	})
	assert.Equal(t, []int{1}, skipped)
	assert.Equal(t, 2, g.EdgeCount())
}

func TestEdgeKeyCanonicalOrder(t *testing.T) {
	assert.Equal(t, NewEdgeKey(2, 1), NewEdgeKey(1, 2))
	k := NewEdgeKey(7, 3)
	assert.Equal(t, VertexID(3), k.U)
	assert.Equal(t, VertexID(7), k.V)
}

func TestEdgesAndNeighborsAreSorted(t *testing.T) {
	b, err := NewBuilder(0.001)
	require.NoError(t, err)

	g, err := b.Build([]geometry.Segment{
		seg(0, 0, 0, 1, 0, 0),
		seg(0, 0, 0, 0, 1, 0),
		seg(0, 0, 0, 0, 0, 1),
	})
	require.NoError(t, err)

	edges := g.Edges()
	for i := 1; i < len(edges); i++ {
		prev, cur := edges[i-1], edges[i]
		less := prev.U < cur.U || (prev.U == cur.U && prev.V < cur.V)
		assert.True(t, less, "edges must be sorted: %v before %v", prev, cur)
	}

	ns := g.Neighbors(g.resolve(geometry.Point{}))
	for i := 1; i < len(ns); i++ {
		assert.Less(t, ns[i-1], ns[i])
	}
}

func TestVertexLookup(t *testing.T) {
	b, err := NewBuilder(0.001)
	require.NoError(t, err)

	g, err := b.Build([]geometry.Segment{seg(0, 0, 0, 1, 0, 0)})
	require.NoError(t, err)

	v, err := g.Vertex(1)
	require.NoError(t, err)
	assert.Equal(t, VertexID(1), v.ID)

	_, err = g.Vertex(99)
	assert.ErrorIs(t, err, ErrVertexNotFound)
}
