package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScene() *SceneRequest {
	return &SceneRequest{
		Segments: []SegmentRequest{
			{Start: [3]float64{0, 0, 0}, End: [3]float64{6, 0, 0}},
		},
		Polygons: []PolygonRequest{
			{Vertices: [][3]float64{{0, 0, 3}, {6, 0, 3}, {6, 3, 3}, {0, 3, 3}}},
		},
	}
}

func TestValidateSceneRequestAcceptsValidScene(t *testing.T) {
	assert.NoError(t, ValidateSceneRequest(validScene()))
}

func TestValidateSceneRequestRejectsNil(t *testing.T) {
	assert.Error(t, ValidateSceneRequest(nil))
}

func TestValidateSceneRequestRequiresSegments(t *testing.T) {
	req := validScene()
	req.Segments = nil
	err := ValidateSceneRequest(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Segments")
}

func TestValidateSceneRequestRejectsTinyPolygon(t *testing.T) {
	req := validScene()
	req.Polygons = []PolygonRequest{
		{Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}}},
	}
	assert.Error(t, ValidateSceneRequest(req))
}

func TestValidateSceneRequestEnforcesSizeLimits(t *testing.T) {
	req := validScene()
	req.Polygons[0].Vertices = make([][3]float64, MaxPolygonVertices+1)
	assert.Error(t, ValidateSceneRequest(req))
}

func TestSegmentConversion(t *testing.T) {
	s := SegmentRequest{Start: [3]float64{1, 2, 3}, End: [3]float64{4, 5, 6}}.Segment()
	assert.Equal(t, 1.0, s.Start.X)
	assert.Equal(t, 6.0, s.End.Z)
}

func TestPolygonConversion(t *testing.T) {
	pg := PolygonRequest{Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}}.Polygon()
	require.Len(t, pg.Vertices, 3)
	assert.Equal(t, 1.0, pg.Vertices[2].Y)
}
