package elements

import (
	"fmt"

	"github.com/dd0wney/gridframe/pkg/geometry"
)

// ProfileShape is the cross-section family swept along a linear member.
type ProfileShape string

const (
	ProfileI      ProfileShape = "I"
	ProfileSquare ProfileShape = "square"
	ProfileT      ProfileShape = "T"
	ProfileV      ProfileShape = "V"
	ProfileRound  ProfileShape = "round"
	ProfileArc    ProfileShape = "arc"
)

// Profile is a cross-section swept along a member axis. Width and Height
// bound the section; FlangeThickness and WebThickness shape the I/T/V
// families; TopWidth, when set, tapers the section toward the member end.
type Profile struct {
	Shape           ProfileShape `json:"shape" yaml:"shape"`
	Width           float64      `json:"width" yaml:"width"`
	Height          float64      `json:"height" yaml:"height"`
	FlangeThickness float64      `json:"flange_thickness,omitempty" yaml:"flange_thickness,omitempty"`
	WebThickness    float64      `json:"web_thickness,omitempty" yaml:"web_thickness,omitempty"`
	TopWidth        float64      `json:"top_width,omitempty" yaml:"top_width,omitempty"`
}

// Validate checks the profile parameters.
func (p Profile) Validate() error {
	switch p.Shape {
	case ProfileI, ProfileSquare, ProfileT, ProfileV, ProfileRound, ProfileArc:
	default:
		return fmt.Errorf("%w: unknown profile shape %q", ErrInvalidFeature, p.Shape)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: profile %s requires positive width and height, got %gx%g",
			ErrInvalidFeature, p.Shape, p.Width, p.Height)
	}
	if p.TopWidth < 0 || p.TopWidth > p.Width {
		return fmt.Errorf("%w: top width %g must be between 0 and the profile width %g",
			ErrInvalidFeature, p.TopWidth, p.Width)
	}
	return nil
}

// circumradius is the radius of the circle circumscribing the section,
// used for surface distance estimates on swept members.
func (p Profile) circumradius() float64 {
	if p.Shape == ProfileRound {
		return p.Width / 2
	}
	w, h := p.Width/2, p.Height/2
	return geometry.Vector{X: w, Y: h}.Length()
}

// canonical returns a stable parameter string feeding deterministic IDs.
func (p Profile) canonical() string {
	return fmt.Sprintf("%s:%g:%g:%g:%g:%g", p.Shape, p.Width, p.Height, p.FlangeThickness, p.WebThickness, p.TopWidth)
}

// Boundary trims the base polygon of a plate or column head: either a
// radial trim or a custom outline.
type Boundary struct {
	Radius float64           `json:"radius,omitempty" yaml:"radius,omitempty"`
	Custom *geometry.Polygon `json:"custom,omitempty" yaml:"custom,omitempty"`
}

func (b Boundary) canonical() string {
	if b.Custom != nil {
		s := fmt.Sprintf("custom:%d", len(b.Custom.Vertices))
		for _, p := range b.Custom.Vertices {
			s += fmt.Sprintf(":%g,%g,%g", p.X, p.Y, p.Z)
		}
		return s
	}
	return fmt.Sprintf("radius:%g", b.Radius)
}

// Cut is a planar cut applied to an element's base solid, e.g. the seat cut
// where a column meets its column head.
type Cut struct {
	Plane geometry.Plane `json:"plane" yaml:"plane"`
}

// Feature is the geometric modifier set applied to an element's base solid.
// A feature is owned exclusively by its element; cuts may be appended after
// placement (the only permitted post-placement mutation).
type Feature struct {
	Profile  *Profile  `json:"profile,omitempty" yaml:"profile,omitempty"`
	Boundary *Boundary `json:"boundary,omitempty" yaml:"boundary,omitempty"`
	Cuts     []Cut     `json:"cuts,omitempty" yaml:"cuts,omitempty"`
}

// AddCut appends a planar cut to the feature.
func (f *Feature) AddCut(plane geometry.Plane) {
	f.Cuts = append(f.Cuts, Cut{Plane: plane})
}

func (f *Feature) canonical() string {
	s := ""
	if f.Profile != nil {
		s += "profile{" + f.Profile.canonical() + "}"
	}
	if f.Boundary != nil {
		s += "boundary{" + f.Boundary.canonical() + "}"
	}
	return s
}
