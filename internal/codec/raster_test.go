package codec

import (
	"errors"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/quicktools/imagemaker/internal/imagegen"
)

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return m
}

func TestRaster_GrayUniform(t *testing.T) {
	encoders := map[string]Encoder{
		"gray.png":  &PNG{},
		"gray.tiff": &TIFF{},
		"gray.bmp":  &BMP{},
	}

	for name, enc := range encoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			img := buildImage(t, imagegen.Params{
				Dimension:  2,
				Components: 1,
				ScalarType: "uchar",
				Size:       []int{6, 4},
				FillValues: []float64{200},
				OutputPath: path,
			})

			if err := enc.Encode(img, path); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			m := decodeFile(t, path)
			if m.Bounds().Dx() != 6 || m.Bounds().Dy() != 4 {
				t.Errorf("bounds = %v, want 6x4", m.Bounds())
			}
			for y := 0; y < 4; y++ {
				for x := 0; x < 6; x++ {
					r, _, _, _ := m.At(x, y).RGBA()
					if r>>8 != 200 {
						t.Fatalf("pixel (%d,%d) = %d, want 200", x, y, r>>8)
					}
				}
			}
		})
	}
}

func TestRaster_Gray16(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gray16.png")
	img := buildImage(t, imagegen.Params{
		Dimension:  2,
		Components: 1,
		ScalarType: "ushort",
		Size:       []int{3, 3},
		FillValues: []float64{40000},
		OutputPath: path,
	})

	if err := (&PNG{}).Encode(img, path); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	m := decodeFile(t, path)
	r, _, _, _ := m.At(1, 1).RGBA()
	if r != 40000 {
		t.Errorf("pixel (1,1) = %d, want 40000", r)
	}
}

func TestRaster_RGBCyclicFill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rgb.png")
	img := buildImage(t, imagegen.Params{
		Dimension:  2,
		Components: 3,
		ScalarType: "uchar",
		Size:       []int{4, 4},
		FillValues: []float64{10, 20},
		OutputPath: path,
	})

	if err := (&PNG{}).Encode(img, path); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	m := decodeFile(t, path)
	r, g, b, a := m.At(2, 2).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 10 {
		t.Errorf("pixel (2,2) = (%d,%d,%d), want (10,20,10)", r>>8, g>>8, b>>8)
	}
	if a != 0xffff {
		t.Errorf("alpha = %d, want opaque", a)
	}
}

func TestRaster_Unsupported(t *testing.T) {
	tests := []struct {
		name   string
		enc    Encoder
		params imagegen.Params
	}{
		{
			name: "png_3D",
			enc:  &PNG{},
			params: imagegen.Params{
				Dimension: 3, Components: 1, ScalarType: "uchar",
				Size: []int{2, 2, 2}, FillValues: []float64{1},
			},
		},
		{
			name: "png_double",
			enc:  &PNG{},
			params: imagegen.Params{
				Dimension: 2, Components: 1, ScalarType: "double",
				Size: []int{2, 2}, FillValues: []float64{1},
			},
		},
		{
			name: "bmp_ushort",
			enc:  &BMP{},
			params: imagegen.Params{
				Dimension: 2, Components: 1, ScalarType: "ushort",
				Size: []int{2, 2}, FillValues: []float64{1},
			},
		},
		{
			name: "tiff_two_components",
			enc:  &TIFF{},
			params: imagegen.Params{
				Dimension: 2, Components: 2, ScalarType: "uchar",
				Size: []int{2, 2}, FillValues: []float64{1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.img")
			tt.params.OutputPath = path
			img := buildImage(t, tt.params)

			err := tt.enc.Encode(img, path)
			if err == nil {
				t.Fatal("expected encode error, got nil")
			}
			var encErr *EncodeError
			if !errors.As(err, &encErr) {
				t.Errorf("error is %T, want *EncodeError", err)
			}
		})
	}
}
