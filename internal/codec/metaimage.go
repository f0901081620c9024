package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quicktools/imagemaker/internal/imagegen"
)

// MetaImage writes the MetaIO format used by ITK. It is the only codec that
// covers every dimension, scalar kind and component count, so it serves as
// the universal output format.
type MetaImage struct {
	// Detached writes a .mhd text header with the pixel data in a sibling
	// .raw file, instead of a single self-contained .mha file.
	Detached bool
}

func (e *MetaImage) Name() string { return "MetaImage" }

var metaElementTypes = map[imagegen.ScalarType]string{
	imagegen.UChar:  "MET_UCHAR",
	imagegen.Char:   "MET_CHAR",
	imagegen.UShort: "MET_USHORT",
	imagegen.Short:  "MET_SHORT",
	imagegen.UInt:   "MET_UINT",
	imagegen.Int:    "MET_INT",
	imagegen.ULong:  "MET_ULONG_LONG",
	imagegen.Long:   "MET_LONG_LONG",
	imagegen.Float:  "MET_FLOAT",
	imagegen.Double: "MET_DOUBLE",
}

// Encode writes the header followed by raw little-endian pixel bytes. For a
// detached header the raw bytes go to a sibling file named after the header
// with a .raw extension.
func (e *MetaImage) Encode(img *imagegen.Image, path string) error {
	dataFile := "LOCAL"
	if e.Detached {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		dataFile = base + ".raw"
	}

	header := e.header(img, dataFile)

	f, err := os.Create(path)
	if err != nil {
		return encodeErr(e.Name(), path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(header); err != nil {
		return encodeErr(e.Name(), path, err)
	}

	raw := img.Data.Bytes()
	if e.Detached {
		rawPath := filepath.Join(filepath.Dir(path), dataFile)
		if err := os.WriteFile(rawPath, raw, 0644); err != nil {
			return encodeErr(e.Name(), path, err)
		}
		return nil
	}

	if _, err := f.Write(raw); err != nil {
		return encodeErr(e.Name(), path, err)
	}
	return nil
}

func (e *MetaImage) header(img *imagegen.Image, dataFile string) string {
	dim := img.Dimension()

	direction := make([]float64, 0, dim*dim)
	for r := 0; r < dim; r++ {
		direction = append(direction, img.DirectionRow(r)...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ObjectType = Image\n")
	fmt.Fprintf(&b, "NDims = %d\n", dim)
	fmt.Fprintf(&b, "BinaryData = True\n")
	fmt.Fprintf(&b, "BinaryDataByteOrderMSB = False\n")
	fmt.Fprintf(&b, "CompressedData = False\n")
	fmt.Fprintf(&b, "TransformMatrix = %s\n", joinFloats(direction))
	fmt.Fprintf(&b, "Offset = %s\n", joinFloats(img.Origin))
	fmt.Fprintf(&b, "CenterOfRotation = %s\n", joinFloats(make([]float64, dim)))
	fmt.Fprintf(&b, "ElementSpacing = %s\n", joinFloats(img.Spacing))
	fmt.Fprintf(&b, "DimSize = %s\n", joinInts(img.Size))
	if img.Vector {
		fmt.Fprintf(&b, "ElementNumberOfChannels = %d\n", img.Components)
	}
	fmt.Fprintf(&b, "ElementType = %s\n", metaElementTypes[img.Scalar])
	fmt.Fprintf(&b, "ElementDataFile = %s\n", dataFile)
	return b.String()
}

func joinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
