package imagegen

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Image is a synthesized raster: one contiguous pixel buffer plus the
// physical metadata that maps buffer indices to world coordinates. Buffer
// indexing always starts at zero regardless of Origin.
type Image struct {
	Size       []int
	Spacing    []float64
	Origin     []float64
	Direction  *mat.Dense
	Components int
	Scalar     ScalarType
	// Vector distinguishes a multi-channel pixel layout from the scalar
	// one even when Components is 1.
	Vector bool
	Data   Buffer
}

// Pixels returns the number of spatial locations, the product of all axis
// sizes.
func (img *Image) Pixels() int {
	n := 1
	for _, s := range img.Size {
		n *= s
	}
	return n
}

// Dimension returns the spatial dimensionality of the image.
func (img *Image) Dimension() int { return len(img.Size) }

// Build allocates and fills an image for the resolved representation.
// Spacing, origin and direction are attached verbatim; they are not checked
// for physical plausibility. The buffer holds Components * product(Size)
// scalars, each equal to fill[c mod len(fill)] for its component index c.
//
// A region too large to allocate is a fatal error: no partial image is
// returned.
func Build(rep Representation, p Params) (*Image, error) {
	pixels := 1
	for _, s := range p.Size {
		if s != 0 && pixels > math.MaxInt/s {
			return nil, fmt.Errorf("allocate %dD region %v: size overflows", rep.Dimension, p.Size)
		}
		pixels *= s
	}
	scalars := pixels * rep.Components
	if pixels != 0 && scalars/pixels != rep.Components {
		return nil, fmt.Errorf("allocate region %v with %d components: size overflows", p.Size, rep.Components)
	}
	if bytes := rep.Scalar.ByteSize(); scalars > math.MaxInt/bytes {
		return nil, fmt.Errorf("allocate region %v: %d scalars of %d bytes exceed addressable memory", p.Size, scalars, bytes)
	}

	return &Image{
		Size:       append([]int(nil), p.Size...),
		Spacing:    append([]float64(nil), p.Spacing...),
		Origin:     append([]float64(nil), p.Origin...),
		Direction:  mat.NewDense(rep.Dimension, rep.Dimension, append([]float64(nil), p.Direction...)),
		Components: rep.Components,
		Scalar:     rep.Scalar,
		Vector:     rep.Vector,
		Data:       rep.build(pixels, rep.Components, p.FillValues),
	}, nil
}

// DirectionRow returns row r of the direction matrix.
func (img *Image) DirectionRow(r int) []float64 {
	return mat.Row(nil, r, img.Direction)
}

// DirectionIsOrthonormal reports whether D^T * D is the identity within a
// small tolerance. The builder accepts any matrix; this exists so callers
// can warn about physically implausible orientations without rejecting them.
func DirectionIsOrthonormal(d *mat.Dense) bool {
	const tol = 1e-6

	var prod mat.Dense
	prod.Mul(d.T(), d)
	n, _ := prod.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(prod.At(i, j)-want) > tol {
				return false
			}
		}
	}
	return true
}
