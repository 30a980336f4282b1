package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/gridframe/pkg/cellnet"
	"github.com/dd0wney/gridframe/pkg/elements"
	"github.com/dd0wney/gridframe/pkg/graph"
	"github.com/dd0wney/gridframe/pkg/interactions"
	"github.com/dd0wney/gridframe/pkg/logging"
	"github.com/dd0wney/gridframe/pkg/metrics"
	"github.com/dd0wney/gridframe/pkg/model"
)

// Skip records a unit the pipeline left out of the model in tolerant mode.
type Skip struct {
	Member string
	Reason string
}

// Result summarizes a build: topology counts, element counts by kind,
// warnings carried up from the network build, and skipped units.
type Result struct {
	Vertices       int
	Edges          int
	Faces          int
	Cells          int
	Levels         int
	ElementsByKind map[string]int
	Interactions   int
	Warnings       []cellnet.Warning
	Skipped        []Skip
	StageDurations map[string]time.Duration
}

func (r *Result) skip(member, reason string) {
	r.Skipped = append(r.Skipped, Skip{Member: member, Reason: reason})
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger replaces the pipeline logger.
func WithLogger(logger logging.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithMetrics attaches a metrics registry updated on every build.
func WithMetrics(reg *metrics.Registry) Option {
	return func(p *Pipeline) { p.metrics = reg }
}

// Pipeline runs the full geometry-to-model sequence: connectivity graph,
// cell network, element generation, interaction resolution, model assembly.
// In strict mode the first structural violation aborts the build; in
// tolerant mode the offending unit is skipped and recorded on the result.
type Pipeline struct {
	cfg     Config
	logger  logging.Logger
	metrics *metrics.Registry
}

// New creates a pipeline from a validated configuration. Zero-valued config
// fields are filled from DefaultConfig before validation.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg, logger: logging.DefaultLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns the normalized configuration the pipeline runs with.
func (p *Pipeline) Config() Config { return p.cfg }

// Build runs all stages over the scene and assembles the model.
func (p *Pipeline) Build(scene Scene) (*model.Model, *Result, error) {
	timer := logging.StartTimer(p.logger, "model built", logging.Component("pipeline"))
	res := &Result{
		ElementsByKind: make(map[string]int),
		StageDurations: make(map[string]time.Duration),
	}

	m, err := p.build(scene, res)
	if err != nil {
		timer.EndError(err)
		p.countBuild("failure")
		return nil, nil, err
	}
	timer.End()
	p.countBuild("success")
	return m, res, nil
}

func (p *Pipeline) build(scene Scene, res *Result) (*model.Model, error) {
	g, err := p.buildGraph(scene, res)
	if err != nil {
		return nil, err
	}
	net, err := p.buildNetwork(g, scene.Faces, res)
	if err != nil {
		return nil, err
	}
	els, err := p.generateElements(net, res)
	if err != nil {
		return nil, err
	}
	ins, err := p.resolveInteractions(net, els, res)
	if err != nil {
		return nil, err
	}
	return p.assembleModel(scene.Name, els, ins, res)
}

func (p *Pipeline) buildGraph(scene Scene, res *Result) (*graph.Graph, error) {
	defer p.observe("graph", time.Now(), res)

	gb, err := graph.NewBuilder(p.cfg.Epsilon)
	if err != nil {
		return nil, err
	}
	gb.WithLogger(p.logger)

	var g *graph.Graph
	if p.cfg.Strict {
		if g, err = gb.Build(scene.Segments); err != nil {
			return nil, err
		}
	} else {
		var skipped []int
		g, skipped = gb.BuildTolerant(scene.Segments)
		for _, i := range skipped {
			res.skip(fmt.Sprintf("segment:%d", i), "degenerate segment")
		}
		if p.metrics != nil {
			p.metrics.GraphDegenerates.Add(float64(len(skipped)))
		}
	}

	res.Vertices = g.VertexCount()
	res.Edges = g.EdgeCount()
	if p.metrics != nil {
		p.metrics.GraphVertices.Set(float64(g.VertexCount()))
		p.metrics.GraphEdges.Set(float64(g.EdgeCount()))
		// Every resolved endpoint either created a vertex or hit an
		// existing one.
		p.metrics.GraphDedupHits.Add(float64(2*len(scene.Segments) - g.VertexCount()))
	}
	return g, nil
}

func (p *Pipeline) buildNetwork(g *graph.Graph, faces []cellnet.InputFace, res *Result) (*cellnet.CellNetwork, error) {
	defer p.observe("cellnet", time.Now(), res)

	net, br, err := cellnet.NewBuilder().
		WithAngularTolerance(p.cfg.AngularTol).
		WithPlanarityTolerance(p.cfg.PlanarityTol).
		WithLevelBand(p.cfg.LevelBand).
		WithSlabInference(p.cfg.InferSlabs).
		WithTolerantFaces(!p.cfg.Strict).
		WithLogger(p.logger).
		Build(g, faces)
	if err != nil {
		return nil, err
	}

	res.Faces = net.FaceCount()
	res.Cells = br.Cells
	res.Levels = br.Levels
	res.Warnings = br.Warnings
	for _, sf := range br.SkippedFaces {
		res.skip(fmt.Sprintf("input-face:%d", sf.Index), sf.Err.Error())
	}
	if p.metrics != nil {
		p.metrics.NetworkFaces.Set(float64(net.FaceCount()))
		p.metrics.NetworkCells.Set(float64(br.Cells))
		p.metrics.NetworkLevels.Set(float64(br.Levels))
		p.metrics.FacesRejected.Add(float64(len(br.SkippedFaces)))
		for _, w := range br.Warnings {
			p.metrics.NetworkWarnings.WithLabelValues(string(w.Kind)).Inc()
		}
	}
	return net, nil
}

// generateElements instantiates one element per classified member: beams
// and columns from edges, plates from slab and wall faces, column heads at
// column-top vertices when enabled.
func (p *Pipeline) generateElements(net *cellnet.CellNetwork, res *Result) ([]elements.Element, error) {
	defer p.observe("elements", time.Now(), res)

	factory := elements.NewFactory(net,
		elements.WithAnchorTolerance(p.cfg.AnchorTol),
		elements.WithLogger(p.logger))
	var els []elements.Element

	for _, e := range net.Edges() {
		// Edges that exist only as face boundaries carry topology for
		// plates and cells; they are not linear members.
		if e.FromFace {
			continue
		}
		member := elements.EdgeMember(e.Key).Key()
		switch {
		case e.IsBeam:
			el, err := factory.Beam(e.Key, p.cfg.Defaults.BeamProfile)
			if err := p.admit(res, &els, member, el, err); err != nil {
				return nil, err
			}
		case e.IsColumn:
			el, err := factory.Column(e.Key, p.cfg.Defaults.ColumnProfile)
			if err := p.admit(res, &els, member, el, err); err != nil {
				return nil, err
			}
		default:
			res.skip(member, "unclassified edge")
			p.countSkip("unclassified")
		}
	}

	for _, f := range net.Faces() {
		member := elements.FaceMember(f.ID).Key()
		switch f.Surface {
		case cellnet.SurfaceSlab, cellnet.SurfaceWall:
			el, err := factory.Plate(f.ID, p.cfg.Defaults.PlateThickness, nil)
			if err := p.admit(res, &els, member, el, err); err != nil {
				return nil, err
			}
		case cellnet.SurfaceOpening:
			// Openings are modeled by their absence.
		default:
			res.skip(member, "unknown surface")
			p.countSkip("unknown_surface")
		}
	}

	if p.cfg.ColumnHeads {
		if err := p.generateColumnHeads(net, factory, &els, res); err != nil {
			return nil, err
		}
	}

	p.logger.Debug("elements generated",
		logging.Stage("elements"),
		logging.Count(len(els)),
		logging.Int("skipped", len(res.Skipped)))
	return els, nil
}

// generateColumnHeads caps the upper vertex of every column with a head
// spanning its same-level beam fan.
func (p *Pipeline) generateColumnHeads(net *cellnet.CellNetwork, factory *elements.Factory, els *[]elements.Element, res *Result) error {
	capped := make(map[graph.VertexID]bool)
	for _, col := range net.Columns() {
		top, err := p.upperVertex(net, col)
		if err != nil {
			return err
		}
		if capped[top] {
			continue
		}
		capped[top] = true

		member := elements.VertexMember(top).Key()
		v, err := net.Vertex(top)
		if err != nil {
			return err
		}
		if len(v.LevelNeighbors) == 0 {
			res.skip(member, "no same-level neighbor fan")
			p.countSkip("no_fan")
			continue
		}
		el, err := factory.ColumnHead(top, p.cfg.Defaults.HeadRadius, p.cfg.Defaults.HeadDepth)
		if err := p.admit(res, els, member, el, err); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) upperVertex(net *cellnet.CellNetwork, e *cellnet.Edge) (graph.VertexID, error) {
	pu, err := net.VertexPoint(e.Key.U)
	if err != nil {
		return 0, err
	}
	pv, err := net.VertexPoint(e.Key.V)
	if err != nil {
		return 0, err
	}
	if pu.Z > pv.Z {
		return e.Key.U, nil
	}
	return e.Key.V, nil
}

func (p *Pipeline) resolveInteractions(net *cellnet.CellNetwork, els []elements.Element, res *Result) ([]interactions.Interaction, error) {
	defer p.observe("interactions", time.Now(), res)

	r, err := interactions.NewResolver(net, p.cfg.policy(), p.cfg.Workers)
	if err != nil {
		return nil, err
	}
	ins, err := r.WithLogger(p.logger).Resolve(els)
	if err != nil {
		return nil, err
	}
	applySeatCuts(els, ins)
	res.Interactions = len(ins)
	if p.metrics != nil {
		for _, in := range ins {
			p.metrics.InteractionsResolved.WithLabelValues(string(in.Kind)).Inc()
		}
	}
	return ins, nil
}

// applySeatCuts trims seated members by the seat plane of their joint, the
// one permitted post-placement feature mutation. The head keeps its shape;
// the seated column or beam receives the cut.
func applySeatCuts(els []elements.Element, ins []interactions.Interaction) {
	byID := make(map[uuid.UUID]elements.Element, len(els))
	for _, el := range els {
		byID[el.ID()] = el
	}
	for _, in := range ins {
		if in.Kind != interactions.SeatedJoint {
			continue
		}
		for _, id := range []uuid.UUID{in.A, in.B} {
			if el, ok := byID[id]; ok && el.Kind() != elements.KindColumnHead {
				el.Feature().AddCut(in.Contact)
			}
		}
	}
}

// assembleModel inserts elements, kind groups, and interactions. Any
// failure here is a structural invariant violation and aborts regardless
// of mode.
func (p *Pipeline) assembleModel(name string, els []elements.Element, ins []interactions.Interaction, res *Result) (*model.Model, error) {
	defer p.observe("model", time.Now(), res)

	m := model.New(name)
	byKind := make(map[string][]uuid.UUID)
	for _, el := range els {
		if err := m.AddElement(el); err != nil {
			return nil, err
		}
		kind := el.Kind().String()
		byKind[kind] = append(byKind[kind], el.ID())
	}

	kinds := make([]string, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		if err := m.AddGroup(k, byKind[k]); err != nil {
			return nil, err
		}
	}

	for _, in := range ins {
		if err := m.AddInteraction(in); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// admit appends a generated element or, in tolerant mode, records the
// failure and continues.
func (p *Pipeline) admit(res *Result, els *[]elements.Element, member string, el elements.Element, err error) error {
	if err != nil {
		if p.cfg.Strict {
			return err
		}
		res.skip(member, err.Error())
		p.countSkip("error")
		return nil
	}
	*els = append(*els, el)
	kind := el.Kind().String()
	res.ElementsByKind[kind]++
	if p.metrics != nil {
		p.metrics.ElementsBuilt.WithLabelValues(kind).Inc()
	}
	return nil
}

func (p *Pipeline) observe(stage string, start time.Time, res *Result) {
	d := time.Since(start)
	res.StageDurations[stage] = d
	if p.metrics != nil {
		p.metrics.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	}
}

func (p *Pipeline) countBuild(status string) {
	if p.metrics != nil {
		p.metrics.BuildsTotal.WithLabelValues(status).Inc()
	}
}

func (p *Pipeline) countSkip(reason string) {
	if p.metrics != nil {
		p.metrics.ElementsSkipped.WithLabelValues(reason).Inc()
	}
}
