package imagegen

import (
	"bytes"
	"encoding/binary"
)

// GoScalar is the set of Go types a pixel component may be stored as.
type GoScalar interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~uint64 | ~int64 | ~float32 | ~float64
}

// Buffer is one contiguous pixel buffer of a concrete scalar kind. Component
// c of spatial location i lives at index i*components+c.
type Buffer interface {
	// Len returns the total number of scalar components in the buffer.
	Len() int
	// Bytes returns the buffer in little-endian byte order.
	Bytes() []byte
	// Float64 returns component i widened to float64.
	Float64(i int) float64
	// Raw returns the underlying typed slice ([]uint8, []int16, ...).
	Raw() any
}

type typedBuffer[T GoScalar] struct {
	data []T
}

func (b *typedBuffer[T]) Len() int { return len(b.data) }

func (b *typedBuffer[T]) Raw() any { return b.data }

func (b *typedBuffer[T]) Float64(i int) float64 { return float64(b.data[i]) }

func (b *typedBuffer[T]) Bytes() []byte {
	var buf bytes.Buffer
	var zero T
	buf.Grow(len(b.data) * binary.Size(zero))
	// binary.Write cannot fail for a slice of fixed-size values
	_ = binary.Write(&buf, binary.LittleEndian, b.data)
	return buf.Bytes()
}

// newFilledBuffer allocates pixels*components scalars and replicates one
// canonical pixel everywhere: component c of every pixel equals
// fill[c mod len(fill)] converted to T with plain Go conversion rules
// (truncating, no range check).
func newFilledBuffer[T GoScalar](pixels, components int, fill []float64) Buffer {
	canonical := make([]T, components)
	for c := range canonical {
		canonical[c] = T(fill[c%len(fill)])
	}

	data := make([]T, pixels*components)
	for i := range data {
		data[i] = canonical[i%components]
	}
	return &typedBuffer[T]{data: data}
}
