package imagegen

// builderFunc allocates and fills a buffer for one concrete scalar kind.
type builderFunc func(pixels, components int, fill []float64) Buffer

// builders maps each scalar kind to the same generic constructor
// instantiated for that kind's Go type. Every entry carries identical
// logic; only the element type differs.
var builders = map[ScalarType]builderFunc{
	UChar:  newFilledBuffer[uint8],
	Char:   newFilledBuffer[int8],
	UShort: newFilledBuffer[uint16],
	Short:  newFilledBuffer[int16],
	UInt:   newFilledBuffer[uint32],
	Int:    newFilledBuffer[int32],
	ULong:  newFilledBuffer[uint64],
	Long:   newFilledBuffer[int64],
	Float:  newFilledBuffer[float32],
	Double: newFilledBuffer[float64],
}

// Representation is a resolved pixel representation: the combination of
// spatial dimensionality, scalar kind and component count that fully
// determines an image's in-memory layout.
type Representation struct {
	Dimension  int
	Scalar     ScalarType
	Components int
	// Vector is true for multi-channel pixels. A single-component image is
	// always a scalar-pixel image, never a one-component vector image.
	Vector bool

	build builderFunc
}

// Resolve selects the pixel representation for (dimension, scalarType,
// components). An unknown scalar tag is reported as a *ConfigError; the
// caller is expected to have validated dimension and components already
// (see Params.EffectiveDimension and Params.Validate).
func Resolve(dimension int, scalarType string, components int) (Representation, error) {
	st, err := ParseScalarType(scalarType)
	if err != nil {
		return Representation{}, err
	}

	return Representation{
		Dimension:  dimension,
		Scalar:     st,
		Components: components,
		Vector:     components > 1,
		build:      builders[st],
	}, nil
}
