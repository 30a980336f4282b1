package pipeline

import (
	"github.com/dd0wney/gridframe/pkg/cellnet"
	"github.com/dd0wney/gridframe/pkg/geometry"
	"github.com/dd0wney/gridframe/pkg/validation"
)

// Scene is the geometric input of a build: the line segments forming the
// structural skeleton plus optional mesh faces.
type Scene struct {
	Name     string
	Segments []geometry.Segment
	Faces    []cellnet.InputFace
}

// SceneFromRequest validates a raw scene request and converts it to its
// geometric form.
func SceneFromRequest(name string, req *validation.SceneRequest) (Scene, error) {
	if err := validation.ValidateSceneRequest(req); err != nil {
		return Scene{}, err
	}
	scene := Scene{
		Name:     name,
		Segments: make([]geometry.Segment, 0, len(req.Segments)),
		Faces:    make([]cellnet.InputFace, 0, len(req.Polygons)),
	}
	for _, s := range req.Segments {
		scene.Segments = append(scene.Segments, s.Segment())
	}
	for _, p := range req.Polygons {
		scene.Faces = append(scene.Faces, cellnet.InputFace{Polygon: p.Polygon(), Opening: p.Opening})
	}
	return scene, nil
}
