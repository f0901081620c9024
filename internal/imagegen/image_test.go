package imagegen

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func buildTestImage(t *testing.T, p Params) *Image {
	t.Helper()

	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	dim, _ := p.EffectiveDimension()
	rep, err := Resolve(dim, p.ScalarType, p.Components)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	img, err := Build(rep, p)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return img
}

// TestBuild_UniformFill is the canonical scenario: a 10x10x10 uchar volume
// filled with 255 must contain 1000 voxels all equal to 255.
func TestBuild_UniformFill(t *testing.T) {
	img := buildTestImage(t, Params{
		Dimension:  3,
		Components: 1,
		ScalarType: "uchar",
		Size:       []int{10, 10, 10},
		Spacing:    []float64{1, 1, 1},
		Origin:     []float64{0, 0, 0},
		FillValues: []float64{255},
		OutputPath: "out.mha",
	})

	if img.Pixels() != 1000 {
		t.Fatalf("Pixels() = %d, want 1000", img.Pixels())
	}
	if img.Data.Len() != 1000 {
		t.Fatalf("buffer length = %d, want 1000", img.Data.Len())
	}
	for i := 0; i < img.Data.Len(); i++ {
		if v := img.Data.Float64(i); v != 255 {
			t.Fatalf("voxel %d = %g, want 255", i, v)
		}
	}
}

// TestBuild_CyclicFill checks the fill pattern cycling: 3 components with
// fill values [10,20] must give every pixel the components [10,20,10].
func TestBuild_CyclicFill(t *testing.T) {
	img := buildTestImage(t, Params{
		Dimension:  2,
		Components: 3,
		ScalarType: "short",
		Size:       []int{4, 5},
		FillValues: []float64{10, 20},
		OutputPath: "out.mha",
	})

	want := []float64{10, 20, 10}
	if img.Data.Len() != 4*5*3 {
		t.Fatalf("buffer length = %d, want %d", img.Data.Len(), 4*5*3)
	}
	for i := 0; i < img.Data.Len(); i++ {
		if v := img.Data.Float64(i); v != want[i%3] {
			t.Fatalf("component %d = %g, want %g", i, v, want[i%3])
		}
	}
	if !img.Vector {
		t.Error("3-component image not marked as vector pixel")
	}
}

// TestBuild_BufferLength checks Components * product(Size) for a spread of
// configurations.
func TestBuild_BufferLength(t *testing.T) {
	tests := []struct {
		name       string
		dim        int
		size       []int
		components int
		want       int
	}{
		{"1D_scalar", 1, []int{7}, 1, 7},
		{"2D_scalar", 2, []int{3, 4}, 1, 12},
		{"3D_vector", 3, []int{2, 3, 4}, 5, 120},
		{"zero_axis", 2, []int{0, 10}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := buildTestImage(t, Params{
				Dimension:  tt.dim,
				Components: tt.components,
				ScalarType: "float",
				Size:       tt.size,
				FillValues: []float64{1.5},
				OutputPath: "out.mha",
			})
			if img.Data.Len() != tt.want {
				t.Errorf("buffer length = %d, want %d", img.Data.Len(), tt.want)
			}
		})
	}
}

// TestBuild_CastTruncates checks that fill values are narrowed with native
// conversion rules, without range validation.
func TestBuild_CastTruncates(t *testing.T) {
	img := buildTestImage(t, Params{
		Dimension:  1,
		Components: 1,
		ScalarType: "int",
		Size:       []int{3},
		FillValues: []float64{10.9},
		OutputPath: "out.mha",
	})
	if v := img.Data.Float64(0); v != 10 {
		t.Errorf("10.9 cast to int = %g, want 10 (truncation)", v)
	}

	img = buildTestImage(t, Params{
		Dimension:  1,
		Components: 1,
		ScalarType: "char",
		Size:       []int{3},
		FillValues: []float64{-4.7},
		OutputPath: "out.mha",
	})
	if v := img.Data.Float64(0); v != -4 {
		t.Errorf("-4.7 cast to char = %g, want -4 (truncation)", v)
	}
}

// TestBuild_GeometryPassthrough checks that spacing, origin and direction
// are attached verbatim, including a non-orthonormal direction matrix.
func TestBuild_GeometryPassthrough(t *testing.T) {
	direction := []float64{2, 0, 0, 1} // deliberately not orthonormal
	img := buildTestImage(t, Params{
		Dimension:  2,
		Components: 1,
		ScalarType: "double",
		Size:       []int{2, 2},
		Spacing:    []float64{0.5, 2.5},
		Origin:     []float64{-10, 42},
		Direction:  direction,
		FillValues: []float64{0},
		OutputPath: "out.mha",
	})

	if img.Spacing[0] != 0.5 || img.Spacing[1] != 2.5 {
		t.Errorf("Spacing = %v, want [0.5 2.5]", img.Spacing)
	}
	if img.Origin[0] != -10 || img.Origin[1] != 42 {
		t.Errorf("Origin = %v, want [-10 42]", img.Origin)
	}
	want := mat.NewDense(2, 2, direction)
	if !mat.Equal(img.Direction, want) {
		t.Errorf("Direction = %v, want %v", mat.Formatted(img.Direction), mat.Formatted(want))
	}
	if DirectionIsOrthonormal(img.Direction) {
		t.Error("non-orthonormal direction reported as orthonormal")
	}
}

func TestDirectionIsOrthonormal(t *testing.T) {
	identity := mat.NewDense(3, 3, IdentityDirection(3))
	if !DirectionIsOrthonormal(identity) {
		t.Error("identity reported as non-orthonormal")
	}

	// 90 degree rotation in the XY plane
	rotation := mat.NewDense(2, 2, []float64{0, -1, 1, 0})
	if !DirectionIsOrthonormal(rotation) {
		t.Error("rotation reported as non-orthonormal")
	}

	scaled := mat.NewDense(2, 2, []float64{2, 0, 0, 2})
	if DirectionIsOrthonormal(scaled) {
		t.Error("scaled matrix reported as orthonormal")
	}
}

func TestBuild_OverflowingRegion(t *testing.T) {
	rep, err := Resolve(3, "double", 1)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	p := Params{
		Dimension:  3,
		Components: 1,
		ScalarType: "double",
		Size:       []int{1 << 21, 1 << 21, 1 << 21},
		Spacing:    []float64{1, 1, 1},
		Origin:     []float64{0, 0, 0},
		Direction:  IdentityDirection(3),
		FillValues: []float64{0},
		OutputPath: "out.mha",
	}
	img, err := Build(rep, p)
	if err == nil {
		t.Fatal("expected error for overflowing region, got nil")
	}
	if img != nil {
		t.Error("partial image returned alongside error")
	}
}
