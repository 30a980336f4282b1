package elements

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/gridframe/pkg/cellnet"
	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/graph"
	"github.com/dd0wney/gridframe/pkg/logging"
)

// DefaultAnchorTolerance is the maximum distance a fastener anchor may sit
// off its host surface.
const DefaultAnchorTolerance = 0.001

// Option configures a Factory.
type Option func(*Factory)

// WithUpVector overrides the world-Z up convention for placement frames.
func WithUpVector(up geometry.Vector) Option {
	return func(f *Factory) { f.up = up }
}

// WithAnchorTolerance sets the fastener anchor tolerance.
func WithAnchorTolerance(tol float64) Option {
	return func(f *Factory) { f.anchorTol = tol }
}

// WithUnclassifiedOverride lets beams and columns be generated from
// unclassified members. Off by default: the factory skips members the
// builder could not classify.
func WithUnclassifiedOverride(enabled bool) Option {
	return func(f *Factory) { f.allowUnclassified = enabled }
}

// WithLogger replaces the factory logger.
func WithLogger(logger logging.Logger) Option {
	return func(f *Factory) { f.logger = logger }
}

// Factory instantiates typed structural elements from classified cell
// network members. Generation is deterministic: identical member and
// feature parameters always yield geometrically identical elements with
// identical identifiers.
type Factory struct {
	net               *cellnet.CellNetwork
	up                geometry.Vector
	anchorTol         float64
	allowUnclassified bool
	claims            map[string]uuid.UUID
	logger            logging.Logger
}

// NewFactory creates a factory over the given cell network.
func NewFactory(net *cellnet.CellNetwork, opts ...Option) *Factory {
	f := &Factory{
		net:       net,
		up:        geometry.WorldZ,
		anchorTol: DefaultAnchorTolerance,
		claims:    make(map[string]uuid.UUID),
		logger:    logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Claims returns a copy of the member claim ledger: member key to the
// element holding it.
func (f *Factory) Claims() map[string]uuid.UUID {
	out := make(map[string]uuid.UUID, len(f.claims))
	for k, v := range f.claims {
		out[k] = v
	}
	return out
}

// claim registers a member as generated. A second claim on the same member
// fails: no two elements may share a generating member.
func (f *Factory) claim(op, key string, id uuid.UUID) error {
	if _, taken := f.claims[key]; taken {
		return DuplicateClaimError(op, key)
	}
	f.claims[key] = id
	return nil
}

// Beam generates a beam element from a beam-classified edge.
func (f *Factory) Beam(key graph.EdgeKey, profile Profile) (*BeamElement, error) {
	axis, err := f.edgeAxis("Beam", key, func(e *cellnet.Edge) bool { return e.IsBeam })
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, &FactoryError{Op: "Beam", Entity: "profile", Cause: err}
	}
	member := EdgeMember(key)
	el := &BeamElement{newLinearElement(KindBeam, member, axis, profile, f.up)}
	if err := f.claim("Beam", member.Key(), el.ID()); err != nil {
		return nil, err
	}
	return el, nil
}

// Column generates a column element from a column-classified edge. The
// axis is normalized bottom-up so the frame origin is the lower vertex.
func (f *Factory) Column(key graph.EdgeKey, profile Profile) (*ColumnElement, error) {
	axis, err := f.edgeAxis("Column", key, func(e *cellnet.Edge) bool { return e.IsColumn })
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, &FactoryError{Op: "Column", Entity: "profile", Cause: err}
	}
	if axis.Start.Z > axis.End.Z {
		axis.Start, axis.End = axis.End, axis.Start
	}
	member := EdgeMember(key)
	el := &ColumnElement{newLinearElement(KindColumn, member, axis, profile, f.up)}
	if err := f.claim("Column", member.Key(), el.ID()); err != nil {
		return nil, err
	}
	return el, nil
}

// Cable generates a cable element from any edge. Cables are commonly
// diagonal braces, so unclassified members are accepted without override.
func (f *Factory) Cable(key graph.EdgeKey, profile Profile) (*CableElement, error) {
	axis, err := f.edgeAxis("Cable", key, func(e *cellnet.Edge) bool { return true })
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, &FactoryError{Op: "Cable", Entity: "profile", Cause: err}
	}
	member := EdgeMember(key)
	el := &CableElement{newLinearElement(KindCable, member, axis, profile, f.up)}
	if err := f.claim("Cable", member.Key(), el.ID()); err != nil {
		return nil, err
	}
	return el, nil
}

// Plate generates a plate element from a slab or wall face.
func (f *Factory) Plate(id cellnet.FaceID, thickness float64, boundary *Boundary) (*PlateElement, error) {
	face, err := f.net.Face(id)
	if err != nil {
		return nil, &FactoryError{Op: "Plate", Entity: "face", Member: FaceMember(id).Key(), Cause: ErrMemberNotFound}
	}
	if face.Surface == cellnet.SurfaceOpening {
		return nil, &FactoryError{
			Op: "Plate", Entity: "face", Member: FaceMember(id).Key(),
			Cause: ErrWrongClassification, Context: "face is an opening",
		}
	}
	if thickness <= 0 {
		return nil, &FactoryError{Op: "Plate", Entity: "thickness", Cause: ErrInvalidFeature,
			Context: fmt.Sprintf("thickness %g must be positive", thickness)}
	}
	outline, err := f.net.FacePolygon(id)
	if err != nil {
		return nil, &FactoryError{Op: "Plate", Entity: "face", Member: FaceMember(id).Key(), Cause: err}
	}
	member := FaceMember(id)
	el := newPlateElement(member, outline, thickness, boundary)
	if err := f.claim("Plate", member.Key(), el.ID()); err != nil {
		return nil, err
	}
	return el, nil
}

// ColumnHead generates a column head capping the given vertex, spanning
// its same-level neighbor fan.
func (f *Factory) ColumnHead(id graph.VertexID, radius, depth float64) (*ColumnHeadElement, error) {
	v, err := f.net.Vertex(id)
	if err != nil {
		return nil, &FactoryError{Op: "ColumnHead", Entity: "vertex", Member: VertexMember(id).Key(), Cause: ErrMemberNotFound}
	}
	if radius <= 0 || depth <= 0 {
		return nil, &FactoryError{Op: "ColumnHead", Entity: "feature", Cause: ErrInvalidFeature,
			Context: fmt.Sprintf("radius %g and depth %g must be positive", radius, depth)}
	}
	positions := make(map[graph.VertexID]geometry.Point, len(v.LevelNeighbors))
	for _, nid := range v.LevelNeighbors {
		if nv, err := f.net.Vertex(nid); err == nil {
			positions[nid] = nv.Position
		}
	}
	member := VertexMember(id)
	el := newColumnHeadElement(member, v.Position, vertexFan(positions, v.LevelNeighbors), radius, depth)
	if err := f.claim("ColumnHead", member.Key(), el.ID()); err != nil {
		return nil, err
	}
	return el, nil
}

// Fastener generates a fastener attached to a point on the host element's
// surface. The anchor must lie on the host boundary within the anchor
// tolerance.
func (f *Factory) Fastener(host Element, anchor geometry.Point, length, diameter float64) (*FastenerElement, error) {
	if host == nil {
		return nil, &FactoryError{Op: "Fastener", Entity: "target", Cause: ErrNilTarget}
	}
	if length <= 0 || diameter <= 0 {
		return nil, &FactoryError{Op: "Fastener", Entity: "feature", Cause: ErrInvalidFeature,
			Context: fmt.Sprintf("length %g and diameter %g must be positive", length, diameter)}
	}
	if d := host.SurfaceDistance(anchor); d > f.anchorTol {
		return nil, InvalidAnchorError(d, f.anchorTol)
	}
	el := newFastenerElement(host, anchor, length, diameter)
	// Several fasteners may share one host, so the claim is per anchor.
	if err := f.claim("Fastener", ClaimKey(el), el.ID()); err != nil {
		return nil, err
	}
	return el, nil
}

// edgeAxis resolves an edge, checks its classification, and returns its
// axis segment oriented from the canonical low vertex to the high one.
func (f *Factory) edgeAxis(op string, key graph.EdgeKey, want func(*cellnet.Edge) bool) (geometry.Segment, error) {
	e, err := f.net.Edge(key.U, key.V)
	if err != nil {
		return geometry.Segment{}, &FactoryError{Op: op, Entity: "edge", Member: EdgeMember(key).Key(), Cause: ErrMemberNotFound}
	}
	if e.Unclassified && !f.allowUnclassified && op != "Cable" {
		return geometry.Segment{}, &FactoryError{Op: op, Entity: "edge", Member: EdgeMember(key).Key(), Cause: ErrUnclassifiedMember}
	}
	if !e.Unclassified && !want(e) {
		return geometry.Segment{}, &FactoryError{Op: op, Entity: "edge", Member: EdgeMember(key).Key(), Cause: ErrWrongClassification}
	}
	return f.net.EdgeLine(e.Key)
}
