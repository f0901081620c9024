// Package codec serializes built images to files. Each format lives behind
// the narrow Encoder interface so that no codec library's types leak into
// the image pipeline.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quicktools/imagemaker/internal/imagegen"
)

// Encoder writes an image to a destination path in one format.
type Encoder interface {
	// Encode writes img to path. Any failure, including an unsupported
	// pixel representation for this format, is returned as an *EncodeError.
	Encode(img *imagegen.Image, path string) error
	// Name returns a human-readable codec name.
	Name() string
}

// EncodeError wraps any failure at the codec boundary. A partially written
// file may remain at Path; callers must not treat its presence as success.
type EncodeError struct {
	Codec string
	Path  string
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: encode %s: %v", e.Codec, e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// encodeErr wraps err for the given codec unless it already is an
// *EncodeError.
func encodeErr(codec, path string, err error) error {
	if err == nil {
		return nil
	}
	var ee *EncodeError
	if errors.As(err, &ee) {
		return err
	}
	return &EncodeError{Codec: codec, Path: path, Err: err}
}

// ForPath selects an encoder from the path's extension.
func ForPath(path string) (Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mha":
		return &MetaImage{}, nil
	case ".mhd":
		return &MetaImage{Detached: true}, nil
	case ".dcm":
		return &DICOM{}, nil
	case ".png":
		return &PNG{}, nil
	case ".tif", ".tiff":
		return &TIFF{}, nil
	case ".bmp":
		return &BMP{}, nil
	default:
		return nil, fmt.Errorf("no codec registered for %q (supported: .mha, .mhd, .dcm, .png, .tif, .tiff, .bmp)", filepath.Ext(path))
	}
}
