package codec

import (
	"testing"

	"github.com/quicktools/imagemaker/internal/imagegen"
)

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"out.mha", "MetaImage"},
		{"out.mhd", "MetaImage"},
		{"out.dcm", "DICOM"},
		{"out.png", "PNG"},
		{"out.tif", "TIFF"},
		{"out.tiff", "TIFF"},
		{"out.bmp", "BMP"},
		{"dir/sub/volume.MHA", "MetaImage"},
		{"IMAGE.DCM", "DICOM"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			enc, err := ForPath(tt.path)
			if err != nil {
				t.Fatalf("ForPath(%q) unexpected error: %v", tt.path, err)
			}
			if enc.Name() != tt.want {
				t.Errorf("ForPath(%q) = %s, want %s", tt.path, enc.Name(), tt.want)
			}
		})
	}
}

func TestForPath_UnknownExtension(t *testing.T) {
	for _, path := range []string{"out.jpg", "out.nii", "out", "out."} {
		t.Run(path, func(t *testing.T) {
			if _, err := ForPath(path); err == nil {
				t.Errorf("ForPath(%q) expected error, got nil", path)
			}
		})
	}
}

// buildImage constructs a filled image for codec tests.
func buildImage(t *testing.T, p imagegen.Params) *imagegen.Image {
	t.Helper()

	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	dim, _ := p.EffectiveDimension()
	rep, err := imagegen.Resolve(dim, p.ScalarType, p.Components)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	img, err := imagegen.Build(rep, p)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return img
}
