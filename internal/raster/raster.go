// Package raster converts vector chart artifacts into raster images with an external tool.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/schema"
)

// ErrConversionFailed is returned when the converter ran but exited with a non-zero status.
var ErrConversionFailed = errors.New("raster conversion failed")

// ImageMagick converts charts with the ImageMagick `convert` command.
type ImageMagick struct {
	Binary string // Executable name or path, "convert" by default
}

var _ contract.RasterConverter = &ImageMagick{} // Compile-time check

// NewImageMagick returns a converter that runs binary.
func NewImageMagick(binary string) *ImageMagick {
	if binary == "" {
		binary = contract.DefaultConverter
	}
	return &ImageMagick{Binary: binary}
}

// Name implements the RasterConverter interface.
func (m *ImageMagick) Name() string {
	return string(schema.ImageMagickRaster)
}

// Args returns the command line arguments for converting src into dst.
func (m *ImageMagick) Args(src, dst string, opts contract.RasterOptions) []string {
	return []string{
		"-resize", fmt.Sprintf("%dx%d", opts.Width, opts.Height+opts.ExtraHeight),
		"-density", strconv.Itoa(opts.Density),
		"-background", opts.Background,
		src,
		dst,
	}
}

// Convert implements the RasterConverter interface.
// A process that cannot be started is returned as is; a non-zero exit wraps ErrConversionFailed
// and carries the stderr text.
func (m *ImageMagick) Convert(ctx context.Context, src, dst string, opts contract.RasterOptions) (contract.ConvertOutput, error) {
	args := m.Args(src, dst, opts)
	cmd := exec.CommandContext(ctx, m.Binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("Running raster converter", "binary", m.Binary, "args", strings.Join(args, " "))
	err := cmd.Run()
	out := contract.ConvertOutput{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
	if err == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = exitErr.Error()
		}
		return out, fmt.Errorf("%w: %s exited with code %d: %s", ErrConversionFailed, m.Binary, out.ExitCode, msg)
	}
	return out, fmt.Errorf("failed to run %s: %w", m.Binary, err)
}

// NewConverter returns the converter for the configured backend, or nil when conversion is off.
func NewConverter(cfg *contract.Config) contract.RasterConverter {
	switch cfg.Raster {
	case schema.NoRaster:
		return nil
	default:
		return NewImageMagick(cfg.Converter)
	}
}
