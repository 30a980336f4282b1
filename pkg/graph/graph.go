package graph

import (
	"math"
	"sort"

	"github.com/dd0wney/gridframe/pkg/geometry"
)

// VertexID identifies a deduplicated vertex. IDs are allocated sequentially
// starting at 1, in first-seen input order, so identical input always yields
// identical IDs.
type VertexID uint64

// EdgeKey is the canonical (low, high) vertex pair identifying an undirected
// edge.
type EdgeKey struct {
	U, V VertexID
}

// NewEdgeKey returns the canonical key for the unordered pair {u, v}.
func NewEdgeKey(u, v VertexID) EdgeKey {
	if u > v {
		u, v = v, u
	}
	return EdgeKey{U: u, V: v}
}

// Vertex is a deduplicated endpoint in the connectivity graph.
type Vertex struct {
	ID       VertexID
	Position geometry.Point
}

// Graph is a simple undirected graph over tolerance-deduplicated vertices.
// It is the output of Builder and the input of the cell network builder.
type Graph struct {
	eps      float64
	vertices map[VertexID]Vertex
	order    []VertexID
	edges    map[EdgeKey]struct{}
	adjacent map[VertexID]map[VertexID]struct{}
	buckets  map[geometry.Key][]VertexID
	nextID   VertexID
}

// New creates an empty graph with the given deduplication tolerance. The
// tolerance is fixed for the lifetime of the graph.
func New(eps float64) *Graph {
	return &Graph{
		eps:      eps,
		vertices: make(map[VertexID]Vertex),
		edges:    make(map[EdgeKey]struct{}),
		adjacent: make(map[VertexID]map[VertexID]struct{}),
		buckets:  make(map[geometry.Key][]VertexID),
		nextID:   1,
	}
}

// Tolerance returns the deduplication tolerance the graph was built with.
func (g *Graph) Tolerance() float64 {
	return g.eps
}

// VertexCount returns the number of deduplicated vertices.
func (g *Graph) VertexCount() int {
	return len(g.vertices)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Vertex returns the vertex with the given ID.
func (g *Graph) Vertex(id VertexID) (Vertex, error) {
	v, ok := g.vertices[id]
	if !ok {
		return Vertex{}, &GeometryError{Op: "Vertex", Entity: "vertex", Index: int(id), Cause: ErrVertexNotFound}
	}
	return v, nil
}

// Vertices returns all vertices in creation order.
func (g *Graph) Vertices() []Vertex {
	out := make([]Vertex, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.vertices[id])
	}
	return out
}

// Edges returns all edge keys sorted by (U, V) for deterministic iteration.
func (g *Graph) Edges() []EdgeKey {
	out := make([]EdgeKey, 0, len(g.edges))
	for k := range g.edges {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].U != out[j].U {
			return out[i].U < out[j].U
		}
		return out[i].V < out[j].V
	})
	return out
}

// HasEdge reports whether the unordered pair {u, v} is an edge.
func (g *Graph) HasEdge(u, v VertexID) bool {
	_, ok := g.edges[NewEdgeKey(u, v)]
	return ok
}

// Neighbors returns the vertices adjacent to id, sorted by ID.
func (g *Graph) Neighbors(id VertexID) []VertexID {
	set := g.adjacent[id]
	out := make([]VertexID, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// resolve returns the existing vertex within eps of p, creating one if no
// match exists. Matching probes the 27-cell spatial hash neighborhood, so
// lookup cost stays constant per point.
func (g *Graph) resolve(p geometry.Point) VertexID {
	key := geometry.KeyOf(p, g.eps)
	best := VertexID(0)
	bestDist := math.Inf(1)
	for _, nk := range geometry.NeighborKeys(key) {
		for _, id := range g.buckets[nk] {
			d := g.vertices[id].Position.DistanceTo(p)
			if d > g.eps {
				continue
			}
			// The tolerance boundary is inclusive. On distance ties prefer
			// the oldest vertex so resolution never depends on bucket
			// iteration order.
			if best == 0 || d < bestDist || (d == bestDist && id < best) {
				best = id
				bestDist = d
			}
		}
	}
	if best != 0 {
		return best
	}

	id := g.nextID
	g.nextID++
	g.vertices[id] = Vertex{ID: id, Position: p}
	g.order = append(g.order, id)
	g.buckets[key] = append(g.buckets[key], id)
	g.adjacent[id] = make(map[VertexID]struct{})
	return id
}

// addEdge records the unordered pair {u, v}. Duplicate segments collapse
// onto the existing edge.
func (g *Graph) addEdge(u, v VertexID) {
	g.edges[NewEdgeKey(u, v)] = struct{}{}
	g.adjacent[u][v] = struct{}{}
	g.adjacent[v][u] = struct{}{}
}
