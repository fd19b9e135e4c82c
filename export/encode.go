package export

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/sheikhrachel/lifegrid/model"
)

// ErrUnknownFormat is returned for image formats other than ppm, png, bmp and tiff.
var ErrUnknownFormat = errors.New("export: unknown image format")

// Format names an output image encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ParseFormat normalises a format name or file extension ("PNG", ".tif", ...)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "ppm", "pnm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "[ParseFormat] %q", s)
}

// FormatFromPath picks the format from the file extension of path
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case FormatPPM:
		err = EncodePPM(w, img, PPMBinary, 0xff)
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.Wrapf(ErrUnknownFormat, "[Encode] %q", f)
	}
	return errors.Wrapf(err, "[Encode] failed to encode %s", f)
}

// WriteFile renders src with p and writes it to path, choosing the encoding from the extension
func WriteFile(path string, src model.CellReader, p Params) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return errors.Wrap(err, "[WriteFile]")
	}

	img, err := NewImage(src, p)
	if err != nil {
		return errors.Wrap(err, "[WriteFile]")
	}
	if err = Render(img, src, p); err != nil {
		return errors.Wrap(err, "[WriteFile]")
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[WriteFile] failed to create file: %+v", path)
	}
	if err = Encode(file, img, f); err != nil {
		file.Close()
		return errors.Wrapf(err, "[WriteFile] failed to write file: %+v", path)
	}
	return errors.Wrapf(file.Close(), "[WriteFile] failed to close file: %+v", path)
}
