package interactions

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dd0wney/gridframe/pkg/cellnet"
	"github.com/dd0wney/gridframe/pkg/elements"
	"github.com/dd0wney/gridframe/pkg/graph"
	"github.com/dd0wney/gridframe/pkg/logging"
	"github.com/dd0wney/gridframe/pkg/parallel"
)

// Resolver walks cell network adjacency between the source members of
// generated elements and classifies the physical interaction of each
// adjacent pair. Per-pair work carries no cross-pair mutable state, so it
// fans out on a worker pool; results are merged sorted by endpoint
// identifier before returning, keeping resolution reproducible.
type Resolver struct {
	net     *cellnet.CellNetwork
	policy  JointPolicy
	workers int
	logger  logging.Logger

	byID     map[uuid.UUID]elements.Element
	incident map[graph.VertexID][]uuid.UUID
}

// NewResolver creates a resolver over the given network. workers bounds the
// classification fan-out; values below one run sequentially on one worker.
func NewResolver(net *cellnet.CellNetwork, policy JointPolicy, workers int) (*Resolver, error) {
	if net == nil {
		return nil, &ResolveError{Op: "NewResolver", Cause: ErrNilNetwork}
	}
	if policy == "" {
		policy = PolicyPinned
	}
	return &Resolver{
		net:     net,
		policy:  policy,
		workers: workers,
		logger:  logging.DefaultLogger(),
	}, nil
}

// WithLogger replaces the resolver's logger.
func (r *Resolver) WithLogger(logger logging.Logger) *Resolver {
	r.logger = logger
	return r
}

// Resolve produces one interaction per adjacent element pair. Adjacency is
// a shared cell network vertex between the elements' source members, or the
// anchor relation for fasteners. Pairs with no type-specific rule are
// recorded as generic contacts rather than dropped.
func (r *Resolver) Resolve(els []elements.Element) ([]Interaction, error) {
	r.index(els)

	type pairKey struct{ a, b uuid.UUID }
	seen := make(map[pairKey]graph.VertexID)
	var pairs []pairKey

	// Vertex-shared adjacency.
	vertexIDs := make([]graph.VertexID, 0, len(r.incident))
	for vid := range r.incident {
		vertexIDs = append(vertexIDs, vid)
	}
	sort.Slice(vertexIDs, func(i, j int) bool { return vertexIDs[i] < vertexIDs[j] })
	for _, vid := range vertexIDs {
		ids := r.incident[vid]
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := ids[i], ids[j]
				if a.String() > b.String() {
					a, b = b, a
				}
				k := pairKey{a, b}
				if _, ok := seen[k]; !ok {
					seen[k] = vid
					pairs = append(pairs, k)
				}
			}
		}
	}

	// Fastener-host adjacency.
	for _, el := range els {
		fastener, ok := el.(*elements.FastenerElement)
		if !ok {
			continue
		}
		a, b := fastener.ID(), fastener.Host()
		if a.String() > b.String() {
			a, b = b, a
		}
		k := pairKey{a, b}
		if _, ok := seen[k]; !ok {
			seen[k] = 0
			pairs = append(pairs, k)
		}
	}

	pool, err := parallel.NewWorkerPool(r.workers)
	if err != nil {
		return nil, err
	}

	out := make([]Interaction, len(pairs))
	var mu sync.Mutex
	for i, p := range pairs {
		i, p := i, p
		vid := seen[p]
		pool.Submit(func() {
			in := r.classify(r.byID[p.a], r.byID[p.b], vid)
			mu.Lock()
			out[i] = in
			mu.Unlock()
		})
	}
	pool.Wait()

	// Deterministic merge order regardless of worker scheduling.
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A.String() < out[j].A.String()
		}
		if out[i].B != out[j].B {
			return out[i].B.String() < out[j].B.String()
		}
		return out[i].Kind < out[j].Kind
	})

	r.logger.Debug("interactions resolved",
		logging.Stage("interactions"),
		logging.Count(len(out)))
	return out, nil
}

// Between classifies the interaction of two specific elements, failing with
// ErrUnresolvedAdjacency when their source members share no incidence.
func (r *Resolver) Between(a, b elements.Element) (Interaction, error) {
	if a == nil || b == nil {
		return Interaction{}, &ResolveError{Op: "Between", Cause: ErrUnknownElement}
	}
	r.index([]elements.Element{a, b})

	if fastener, ok := a.(*elements.FastenerElement); ok && fastener.Host() == b.ID() {
		return r.classify(a, b, 0), nil
	}
	if fastener, ok := b.(*elements.FastenerElement); ok && fastener.Host() == a.ID() {
		return r.classify(a, b, 0), nil
	}

	av := r.memberVertices(a)
	bv := r.memberVertices(b)
	for _, v := range av {
		for _, w := range bv {
			if v == w {
				return r.classify(a, b, v), nil
			}
		}
	}
	return Interaction{}, UnresolvedAdjacencyError(a.ID().String(), b.ID().String())
}

// index builds the element and vertex incidence lookups.
func (r *Resolver) index(els []elements.Element) {
	r.byID = make(map[uuid.UUID]elements.Element, len(els))
	r.incident = make(map[graph.VertexID][]uuid.UUID)
	for _, el := range els {
		r.byID[el.ID()] = el
		for _, vid := range r.memberVertices(el) {
			r.incident[vid] = append(r.incident[vid], el.ID())
		}
	}
	for vid := range r.incident {
		ids := r.incident[vid]
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	}
}

// memberVertices returns the cell network vertices incident to the
// element's source member.
func (r *Resolver) memberVertices(el elements.Element) []graph.VertexID {
	m := el.Member()
	switch m.Kind {
	case elements.MemberEdge:
		return []graph.VertexID{m.Edge.U, m.Edge.V}
	case elements.MemberFace:
		if f, err := r.net.Face(m.Face); err == nil {
			return f.Loop
		}
	case elements.MemberVertex:
		return []graph.VertexID{m.Vertex}
	}
	return nil
}
