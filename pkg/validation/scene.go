package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/gridframe/pkg/geometry"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Input size limits. Raw scenes come from designers and export scripts, so
// the limits are generous but bounded.
var (
	MaxSegments        = 500_000
	MaxPolygons        = 100_000
	MaxPolygonVertices = 1_024
)

// SegmentRequest is a raw line segment as supplied by a collaborator:
// endpoint coordinates as float triples.
type SegmentRequest struct {
	Start [3]float64 `json:"start" yaml:"start" validate:"required"`
	End   [3]float64 `json:"end" yaml:"end" validate:"required"`
}

// PolygonRequest is a raw planar polygon: an ordered vertex-position list,
// optionally flagged as an explicit opening.
type PolygonRequest struct {
	Vertices [][3]float64 `json:"vertices" yaml:"vertices" validate:"required,min=3"`
	Opening  bool         `json:"opening,omitempty" yaml:"opening,omitempty"`
}

// SceneRequest is the raw input contract of the pipeline: segments plus
// optional polygons.
type SceneRequest struct {
	Segments []SegmentRequest `json:"segments" yaml:"segments" validate:"required,min=1,dive"`
	Polygons []PolygonRequest `json:"polygons,omitempty" yaml:"polygons,omitempty" validate:"omitempty,dive"`
}

// ValidateSceneRequest validates a raw scene before it enters the pipeline.
func ValidateSceneRequest(req *SceneRequest) error {
	if req == nil {
		return errors.New("scene request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if len(req.Segments) > MaxSegments {
		return fmt.Errorf("Segments: maximum %d segments allowed, got %d", MaxSegments, len(req.Segments))
	}
	if len(req.Polygons) > MaxPolygons {
		return fmt.Errorf("Polygons: maximum %d polygons allowed, got %d", MaxPolygons, len(req.Polygons))
	}
	for i, pg := range req.Polygons {
		if len(pg.Vertices) > MaxPolygonVertices {
			return fmt.Errorf("Polygons: polygon at index %d exceeds %d vertices", i, MaxPolygonVertices)
		}
	}
	return nil
}

// Segment converts a request to its geometric form.
func (r SegmentRequest) Segment() geometry.Segment {
	return geometry.Segment{
		Start: geometry.Point{X: r.Start[0], Y: r.Start[1], Z: r.Start[2]},
		End:   geometry.Point{X: r.End[0], Y: r.End[1], Z: r.End[2]},
	}
}

// Polygon converts a request to its geometric form.
func (r PolygonRequest) Polygon() geometry.Polygon {
	pts := make([]geometry.Point, len(r.Vertices))
	for i, v := range r.Vertices {
		pts[i] = geometry.Point{X: v[0], Y: v[1], Z: v[2]}
	}
	return geometry.Polygon{Vertices: pts}
}

// formatValidationError turns validator errors into readable field messages.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return fmt.Errorf("%s: failed %q validation", first.Namespace(), first.Tag())
	}
	return err
}
