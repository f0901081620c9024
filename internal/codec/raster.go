package codec

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/quicktools/imagemaker/internal/imagegen"
)

// PNG writes 2D images through the standard library encoder. Supported
// representations: uchar/ushort with 1, 3 or 4 components.
type PNG struct{}

func (e *PNG) Name() string { return "PNG" }

func (e *PNG) Encode(img *imagegen.Image, path string) error {
	m, err := rasterImage(img)
	if err != nil {
		return encodeErr(e.Name(), path, err)
	}
	return encodeErr(e.Name(), path, writeRaster(path, func(f *os.File) error {
		return png.Encode(f, m)
	}))
}

// TIFF writes 2D images through golang.org/x/image/tiff, uncompressed.
type TIFF struct{}

func (e *TIFF) Name() string { return "TIFF" }

func (e *TIFF) Encode(img *imagegen.Image, path string) error {
	m, err := rasterImage(img)
	if err != nil {
		return encodeErr(e.Name(), path, err)
	}
	return encodeErr(e.Name(), path, writeRaster(path, func(f *os.File) error {
		return tiff.Encode(f, m, nil)
	}))
}

// BMP writes 2D uchar images through golang.org/x/image/bmp.
type BMP struct{}

func (e *BMP) Name() string { return "BMP" }

func (e *BMP) Encode(img *imagegen.Image, path string) error {
	if img.Scalar != imagegen.UChar {
		return encodeErr(e.Name(), path, fmt.Errorf("unsupported pixel type: scalar kind %s (BMP is 8-bit only)", img.Scalar))
	}
	m, err := rasterImage(img)
	if err != nil {
		return encodeErr(e.Name(), path, err)
	}
	return encodeErr(e.Name(), path, writeRaster(path, func(f *os.File) error {
		return bmp.Encode(f, m)
	}))
}

func writeRaster(path string, encode func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return encode(f)
}

// rasterImage adapts the image buffer to a standard library image model.
// Only 2D layouts have a representation here; spacing, origin and direction
// have no counterpart in these formats and are dropped.
func rasterImage(img *imagegen.Image) (image.Image, error) {
	if img.Dimension() != 2 {
		return nil, fmt.Errorf("%dD images are not representable, need 2D", img.Dimension())
	}
	w, h := img.Size[0], img.Size[1]
	bounds := image.Rect(0, 0, w, h)

	switch data := img.Data.Raw().(type) {
	case []uint8:
		switch img.Components {
		case 1:
			m := image.NewGray(bounds)
			copy(m.Pix, data)
			return m, nil
		case 3:
			m := image.NewNRGBA(bounds)
			for i := 0; i < w*h; i++ {
				copy(m.Pix[i*4:i*4+3], data[i*3:i*3+3])
				m.Pix[i*4+3] = 0xff
			}
			return m, nil
		case 4:
			m := image.NewNRGBA(bounds)
			copy(m.Pix, data)
			return m, nil
		}
	case []uint16:
		switch img.Components {
		case 1:
			m := image.NewGray16(bounds)
			for i, v := range data {
				binary.BigEndian.PutUint16(m.Pix[i*2:], v)
			}
			return m, nil
		case 3:
			m := image.NewNRGBA64(bounds)
			for i := 0; i < w*h; i++ {
				for c := 0; c < 3; c++ {
					binary.BigEndian.PutUint16(m.Pix[i*8+c*2:], data[i*3+c])
				}
				binary.BigEndian.PutUint16(m.Pix[i*8+6:], 0xffff)
			}
			return m, nil
		case 4:
			m := image.NewNRGBA64(bounds)
			for i, v := range data {
				binary.BigEndian.PutUint16(m.Pix[i*2:], v)
			}
			return m, nil
		}
	default:
		return nil, fmt.Errorf("unsupported pixel type: scalar kind %s (need uchar or ushort)", img.Scalar)
	}
	return nil, fmt.Errorf("unsupported pixel type: %d components of %s", img.Components, img.Scalar)
}
