// Package imagegen builds blank N-dimensional raster images from a validated
// parameter set: it resolves a pixel representation at run time, allocates
// the buffer, attaches geometry metadata and fills every pixel with the same
// canonical value.
package imagegen

import "fmt"

// ScalarType identifies the numeric type of a single pixel component.
type ScalarType int

const (
	UChar ScalarType = iota
	Char
	UShort
	Short
	UInt
	Int
	ULong
	Long
	Float
	Double
)

var scalarNames = map[ScalarType]string{
	UChar:  "uchar",
	Char:   "char",
	UShort: "ushort",
	Short:  "short",
	UInt:   "uint",
	Int:    "int",
	ULong:  "ulong",
	Long:   "long",
	Float:  "float",
	Double: "double",
}

// AllScalarTypes returns the supported scalar kinds in declaration order.
func AllScalarTypes() []ScalarType {
	return []ScalarType{UChar, Char, UShort, Short, UInt, Int, ULong, Long, Float, Double}
}

// String returns the textual tag of the scalar kind.
func (s ScalarType) String() string {
	if name, ok := scalarNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ScalarType(%d)", int(s))
}

// ByteSize returns the width in bytes of one component of this kind.
func (s ScalarType) ByteSize() int {
	switch s {
	case UChar, Char:
		return 1
	case UShort, Short:
		return 2
	case UInt, Int, Float:
		return 4
	default:
		return 8
	}
}

// Signed reports whether the scalar kind is a signed integer or a float.
func (s ScalarType) Signed() bool {
	switch s {
	case Char, Short, Int, Long, Float, Double:
		return true
	}
	return false
}

// ParseScalarType maps a textual type tag to a scalar kind.
//
// The ten recognized tags are: uchar, char, ushort, short, uint, int,
// ulong, long, float, double. An unknown tag is a configuration error,
// not a panic.
func ParseScalarType(tag string) (ScalarType, error) {
	for st, name := range scalarNames {
		if name == tag {
			return st, nil
		}
	}
	return 0, &ConfigError{
		Field: "scalar-type",
		Msg:   fmt.Sprintf("unknown component type %q (valid: uchar, char, ushort, short, uint, int, ulong, long, float, double)", tag),
	}
}

// ConfigError reports an unusable parameter value. It is the error class
// the pipeline treats as a configuration failure rather than an I/O one.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}
