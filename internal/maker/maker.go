// Package maker runs the synthesis pipeline: parameter set -> type resolver
// -> image builder -> writer adapter. It returns errors rather than exiting;
// only main translates the result into a process exit status.
package maker

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/quicktools/imagemaker/internal/codec"
	"github.com/quicktools/imagemaker/internal/imagegen"
)

// Options controls pipeline diagnostics.
type Options struct {
	// Quiet suppresses all log output.
	Quiet bool
	// Logger receives diagnostics; nil means the package default logger.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Quiet {
		return log.New(io.Discard)
	}
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// Make synthesizes one image from p and writes it to p.OutputPath. The
// parameter set is defaulted and validated first; every failure is terminal
// and reported once, with no retries and no partial output promises.
func Make(p imagegen.Params, opts Options) error {
	logger := opts.logger()

	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return err
	}

	dim, fellBack := p.EffectiveDimension()
	if fellBack {
		logger.Warn("unsupported dimension, defaulting to 3D", "requested", p.Dimension)
	}

	rep, err := imagegen.Resolve(dim, p.ScalarType, p.Components)
	if err != nil {
		return err
	}

	img, err := imagegen.Build(rep, p)
	if err != nil {
		return err
	}

	if !imagegen.DirectionIsOrthonormal(img.Direction) {
		logger.Warn("direction matrix is not orthonormal, writing it as given")
	}

	enc, err := codec.ForPath(p.OutputPath)
	if err != nil {
		return err
	}

	logger.Info("writing image",
		"codec", enc.Name(),
		"path", p.OutputPath,
		"size", img.Size,
		"scalar", img.Scalar,
		"components", img.Components,
	)

	if err := enc.Encode(img, p.OutputPath); err != nil {
		return err
	}

	logger.Info("done", "path", p.OutputPath)
	return nil
}
