package pipeline

import (
	"runtime"

	"github.com/dd0wney/gridframe/pkg/cellnet"
	"github.com/dd0wney/gridframe/pkg/elements"
	"github.com/dd0wney/gridframe/pkg/interactions"
	"github.com/dd0wney/gridframe/pkg/parallel"
	"github.com/dd0wney/gridframe/pkg/validation"
)

// DefaultEpsilon is the default vertex deduplication tolerance in meters.
const DefaultEpsilon = 0.001

// Defaults are the feature parameters applied to members the pipeline
// generates elements for.
type Defaults struct {
	BeamProfile    elements.Profile `json:"beam_profile" yaml:"beam_profile"`
	ColumnProfile  elements.Profile `json:"column_profile" yaml:"column_profile"`
	PlateThickness float64          `json:"plate_thickness" yaml:"plate_thickness"`
	HeadRadius     float64          `json:"head_radius" yaml:"head_radius"`
	HeadDepth      float64          `json:"head_depth" yaml:"head_depth"`
}

// Config controls a model build. Zero values fall back to the defaults of
// DefaultConfig, except Strict, InferSlabs, and ColumnHeads, which are
// plain booleans.
type Config struct {
	Epsilon      float64  `json:"epsilon" yaml:"epsilon"`
	AngularTol   float64  `json:"angular_tol" yaml:"angular_tol"`
	PlanarityTol float64  `json:"planarity_tol" yaml:"planarity_tol"`
	LevelBand    float64  `json:"level_band" yaml:"level_band"`
	AnchorTol    float64  `json:"anchor_tol" yaml:"anchor_tol"`
	JointPolicy  string   `json:"joint_policy" yaml:"joint_policy"`
	Strict       bool     `json:"strict" yaml:"strict"`
	Workers      int      `json:"workers" yaml:"workers"`
	InferSlabs   bool     `json:"infer_slabs" yaml:"infer_slabs"`
	ColumnHeads  bool     `json:"column_heads" yaml:"column_heads"`
	Defaults     Defaults `json:"defaults" yaml:"defaults"`
}

// DefaultConfig returns a tolerant configuration with standard tolerances
// and square default sections.
func DefaultConfig() Config {
	return Config{
		Epsilon:      DefaultEpsilon,
		AngularTol:   cellnet.DefaultAngularTol,
		PlanarityTol: cellnet.DefaultPlanarityTol,
		LevelBand:    cellnet.DefaultLevelBand,
		AnchorTol:    elements.DefaultAnchorTolerance,
		JointPolicy:  string(interactions.PolicyPinned),
		Workers:      runtime.NumCPU(),
		Defaults: Defaults{
			BeamProfile:    elements.Profile{Shape: elements.ProfileSquare, Width: 0.2, Height: 0.3},
			ColumnProfile:  elements.Profile{Shape: elements.ProfileSquare, Width: 0.3, Height: 0.3},
			PlateThickness: 0.2,
			HeadRadius:     0.3,
			HeadDepth:      0.2,
		},
	}
}

// Normalized returns the config with zero-valued fields replaced by the
// corresponding defaults and the worker count clamped to the pool's range.
func (c Config) Normalized() Config {
	def := DefaultConfig()
	c.Epsilon = validation.DefaultOr(c.Epsilon, def.Epsilon)
	c.AngularTol = validation.DefaultOr(c.AngularTol, def.AngularTol)
	c.PlanarityTol = validation.DefaultOr(c.PlanarityTol, def.PlanarityTol)
	c.LevelBand = validation.DefaultOr(c.LevelBand, def.LevelBand)
	c.AnchorTol = validation.DefaultOr(c.AnchorTol, def.AnchorTol)
	c.JointPolicy = validation.DefaultOr(c.JointPolicy, def.JointPolicy)
	c.Workers = validation.Clamp(validation.DefaultOr(c.Workers, def.Workers), 1, parallel.MaxWorkers)
	c.Defaults.BeamProfile = validation.DefaultOr(c.Defaults.BeamProfile, def.Defaults.BeamProfile)
	c.Defaults.ColumnProfile = validation.DefaultOr(c.Defaults.ColumnProfile, def.Defaults.ColumnProfile)
	c.Defaults.PlateThickness = validation.DefaultOr(c.Defaults.PlateThickness, def.Defaults.PlateThickness)
	c.Defaults.HeadRadius = validation.DefaultOr(c.Defaults.HeadRadius, def.Defaults.HeadRadius)
	c.Defaults.HeadDepth = validation.DefaultOr(c.Defaults.HeadDepth, def.Defaults.HeadDepth)
	return c
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	return validation.NewConfigValidator("PipelineConfig").
		PositiveFloat("Epsilon", c.Epsilon).
		PositiveFloat("AngularTol", c.AngularTol).
		PositiveFloat("PlanarityTol", c.PlanarityTol).
		PositiveFloat("LevelBand", c.LevelBand).
		PositiveFloat("AnchorTol", c.AnchorTol).
		OneOf("JointPolicy", c.JointPolicy,
			[]string{string(interactions.PolicyPinned), string(interactions.PolicyMoment)}).
		Positive("Workers", c.Workers).
		Custom("Defaults.BeamProfile", c.Defaults.BeamProfile.Validate).
		Custom("Defaults.ColumnProfile", c.Defaults.ColumnProfile.Validate).
		PositiveFloat("Defaults.PlateThickness", c.Defaults.PlateThickness).
		When(c.ColumnHeads, func(cv *validation.ConfigValidator) {
			cv.PositiveFloat("Defaults.HeadRadius", c.Defaults.HeadRadius).
				PositiveFloat("Defaults.HeadDepth", c.Defaults.HeadDepth)
		}).
		Validate()
}

func (c Config) policy() interactions.JointPolicy {
	return interactions.JointPolicy(c.JointPolicy)
}
