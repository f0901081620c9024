package imagegen

import "fmt"

// Params is the validated configuration of one synthesis run. It is treated
// as read-only once parsed.
type Params struct {
	Dimension  int       `yaml:"dimension"`
	Components int       `yaml:"components"`
	ScalarType string    `yaml:"scalar_type"`
	Size       []int     `yaml:"size"`
	Spacing    []float64 `yaml:"spacing,omitempty"`
	Origin     []float64 `yaml:"origin,omitempty"`
	// Direction is the dim x dim orientation matrix, row-major flattened.
	Direction  []float64 `yaml:"direction,omitempty"`
	FillValues []float64 `yaml:"fill_values,omitempty"`
	OutputPath string    `yaml:"output"`
}

// EffectiveDimension returns the dimension the pipeline will actually use.
// Values outside {1,2,3} fall back to 3, matching the original tool's
// behavior; the bool reports whether the fallback applied so the caller can
// surface a warning instead of silently coercing.
func (p Params) EffectiveDimension() (int, bool) {
	switch p.Dimension {
	case 1, 2, 3:
		return p.Dimension, false
	}
	return 3, true
}

// ApplyDefaults fills the optional geometry for the effective dimension:
// unit spacing, zero origin, identity direction and a single zero fill
// value. Supplied values are left untouched.
func (p *Params) ApplyDefaults() {
	dim, _ := p.EffectiveDimension()

	if p.Components == 0 {
		p.Components = 1
	}
	if len(p.Spacing) == 0 {
		p.Spacing = make([]float64, dim)
		for i := range p.Spacing {
			p.Spacing[i] = 1
		}
	}
	if len(p.Origin) == 0 {
		p.Origin = make([]float64, dim)
	}
	if len(p.Direction) == 0 {
		p.Direction = IdentityDirection(dim)
	}
	if len(p.FillValues) == 0 {
		p.FillValues = []float64{0}
	}
}

// Validate checks the structural consistency of the parameter set against
// the effective dimension. The scalar type tag is deliberately not checked
// here; the resolver owns that part of the contract.
func (p Params) Validate() error {
	dim, _ := p.EffectiveDimension()

	if p.Components < 1 {
		return &ConfigError{Field: "components", Msg: fmt.Sprintf("must be >= 1, got %d", p.Components)}
	}
	if len(p.Size) != dim {
		return &ConfigError{Field: "size", Msg: fmt.Sprintf("need %d values for a %dD image, got %d", dim, dim, len(p.Size))}
	}
	for i, s := range p.Size {
		if s < 0 {
			return &ConfigError{Field: "size", Msg: fmt.Sprintf("axis %d: must be >= 0, got %d", i, s)}
		}
	}
	if len(p.Spacing) != dim {
		return &ConfigError{Field: "spacing", Msg: fmt.Sprintf("need %d values for a %dD image, got %d", dim, dim, len(p.Spacing))}
	}
	for i, s := range p.Spacing {
		if s <= 0 {
			return &ConfigError{Field: "spacing", Msg: fmt.Sprintf("axis %d: must be > 0, got %g", i, s)}
		}
	}
	if len(p.Origin) != dim {
		return &ConfigError{Field: "origin", Msg: fmt.Sprintf("need %d values for a %dD image, got %d", dim, dim, len(p.Origin))}
	}
	if len(p.Direction) != dim*dim {
		return &ConfigError{Field: "direction", Msg: fmt.Sprintf("need %dx%d=%d values row-major, got %d", dim, dim, dim*dim, len(p.Direction))}
	}
	if len(p.FillValues) < 1 {
		return &ConfigError{Field: "fill", Msg: "need at least one fill value"}
	}
	if p.OutputPath == "" {
		return &ConfigError{Field: "output", Msg: "destination path is required"}
	}
	return nil
}

// IdentityDirection returns the row-major flattened dim x dim identity
// matrix, the default orientation.
func IdentityDirection(dim int) []float64 {
	d := make([]float64, dim*dim)
	for i := 0; i < dim; i++ {
		d[i*dim+i] = 1
	}
	return d
}
