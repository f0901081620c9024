package codec

import (
	"fmt"
	"hash/fnv"
	"math"
	"os"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/quicktools/imagemaker/internal/imagegen"
)

// DICOM writes Secondary Capture datasets. Supported representations: 2D or
// 3D (multi-frame), uchar or ushort scalar pixels, or 3-component uchar
// vector pixels (RGB). Everything else is an encode error.
type DICOM struct{}

func (e *DICOM) Name() string { return "DICOM" }

const secondaryCaptureSOPClassUID = "1.2.840.10008.5.1.4.1.1.7"

// explicit VR little endian
const transferSyntaxUID = "1.2.840.10008.1.2.1"

// Encode builds a dataset around the image buffer and writes it with the
// dicom library. The SOP instance UID is derived deterministically from the
// destination path so identical runs produce byte-identical files.
func (e *DICOM) Encode(img *imagegen.Image, path string) error {
	dim := img.Dimension()
	if dim != 2 && dim != 3 {
		return encodeErr(e.Name(), path, fmt.Errorf("%dD images are not representable, need 2D or 3D", dim))
	}

	cols, rows := img.Size[0], img.Size[1]
	frames := 1
	if dim == 3 {
		frames = img.Size[2]
	}
	if cols == 0 || rows == 0 || frames == 0 {
		return encodeErr(e.Name(), path, fmt.Errorf("empty region %v", img.Size))
	}
	// Rows and Columns are US elements and cannot hold larger counts.
	if rows > math.MaxUint16 || cols > math.MaxUint16 {
		return encodeErr(e.Name(), path, fmt.Errorf("region %v exceeds %d rows/columns", img.Size, math.MaxUint16))
	}

	var photometric string
	switch {
	case img.Components == 1:
		photometric = "MONOCHROME2"
	case img.Components == 3 && img.Scalar == imagegen.UChar:
		photometric = "RGB"
	default:
		return encodeErr(e.Name(), path, fmt.Errorf("unsupported pixel type: %d components of %s", img.Components, img.Scalar))
	}

	var (
		pixelFrames []*frame.Frame
		bits        int
	)
	switch img.Scalar {
	case imagegen.UChar:
		bits = 8
		pixelFrames = nativeFrames[uint8](img, 8, rows, cols, frames)
	case imagegen.UShort:
		bits = 16
		pixelFrames = nativeFrames[uint16](img, 16, rows, cols, frames)
	default:
		return encodeErr(e.Name(), path, fmt.Errorf("unsupported pixel type: scalar kind %s (need uchar or ushort)", img.Scalar))
	}

	sopInstanceUID := deterministicUID(path)

	elements := []*dicom.Element{
		mustNewElement(tag.TransferSyntaxUID, []string{transferSyntaxUID}),
		mustNewElement(tag.SOPClassUID, []string{secondaryCaptureSOPClassUID}),
		mustNewElement(tag.SOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.StudyInstanceUID, []string{deterministicUID(path + "_study")}),
		mustNewElement(tag.SeriesInstanceUID, []string{deterministicUID(path + "_series")}),
		mustNewElement(tag.Modality, []string{"OT"}),
		mustNewElement(tag.InstanceNumber, []string{"1"}),
		mustNewElement(tag.Rows, []int{rows}),
		mustNewElement(tag.Columns, []int{cols}),
		mustNewElement(tag.BitsAllocated, []int{bits}),
		mustNewElement(tag.BitsStored, []int{bits}),
		mustNewElement(tag.HighBit, []int{bits - 1}),
		mustNewElement(tag.PixelRepresentation, []int{0}),
		mustNewElement(tag.SamplesPerPixel, []int{img.Components}),
		mustNewElement(tag.PhotometricInterpretation, []string{photometric}),
		// PixelSpacing is row spacing then column spacing
		mustNewElement(tag.PixelSpacing, []string{
			floatToDS(img.Spacing[1]),
			floatToDS(img.Spacing[0]),
		}),
	}

	if img.Components > 1 {
		elements = append(elements, mustNewElement(tag.PlanarConfiguration, []int{0}))
	}

	if dim == 3 {
		iop := make([]string, 0, 6)
		for c := 0; c < 2; c++ {
			for r := 0; r < 3; r++ {
				iop = append(iop, floatToDS(img.Direction.At(r, c)))
			}
		}
		elements = append(elements,
			mustNewElement(tag.NumberOfFrames, []string{fmt.Sprintf("%d", frames)}),
			mustNewElement(tag.SliceThickness, []string{floatToDS(img.Spacing[2])}),
			mustNewElement(tag.SpacingBetweenSlices, []string{floatToDS(img.Spacing[2])}),
			mustNewElement(tag.ImagePositionPatient, []string{
				floatToDS(img.Origin[0]), floatToDS(img.Origin[1]), floatToDS(img.Origin[2]),
			}),
			mustNewElement(tag.ImageOrientationPatient, iop),
		)
	}

	elements = append(elements, mustNewElement(tag.PixelData, dicom.PixelDataInfo{Frames: pixelFrames}))

	if err := writeDatasetToFile(path, dicom.Dataset{Elements: elements}); err != nil {
		return encodeErr(e.Name(), path, err)
	}
	return nil
}

// nativeFrames slices the image buffer into per-frame native frames. The
// buffer layout is x fastest, then y, then z, components interleaved, which
// matches the dicom library's interleaved RawData layout.
func nativeFrames[T uint8 | uint16](img *imagegen.Image, bits, rows, cols, frames int) []*frame.Frame {
	data := img.Data.Raw().([]T)
	pixelsPerFrame := rows * cols
	scalarsPerFrame := pixelsPerFrame * img.Components

	out := make([]*frame.Frame, frames)
	for f := 0; f < frames; f++ {
		native := frame.NewNativeFrame[T](bits, rows, cols, pixelsPerFrame, img.Components)
		copy(native.RawData, data[f*scalarsPerFrame:(f+1)*scalarsPerFrame])
		out[f] = &frame.Frame{Encapsulated: false, NativeData: native}
	}
	return out
}

// writeDatasetToFile writes a DICOM dataset to a file
func writeDatasetToFile(filename string, ds dicom.Dataset, opts ...dicom.WriteOption) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return dicom.Write(f, ds, opts...)
}

func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}

// floatToDS converts a float64 to a DICOM Decimal String.
func floatToDS(f float64) string {
	return fmt.Sprintf("%.6g", f)
}

// deterministicUID derives a stable UID from a seed string so repeated runs
// with the same output path produce identical files.
func deterministicUID(seed string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed)) // hash.Write never returns an error
	return fmt.Sprintf("2.25.%d", h.Sum64())
}
