package export

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/lifegrid/model"
)

const minScale = 0.0001

var (
	// ErrInvalidScale is returned when Params.Scale is not positive.
	ErrInvalidScale = errors.New("export: scale must be greater than 0.0001")
	// ErrNilSource is returned when no grid is given.
	ErrNilSource = errors.New("export: nil cell source")
	// ErrEmptyImage is returned when the offset leaves no grid area to draw.
	ErrEmptyImage = errors.New("export: offset and scale leave an empty image")
)

// Params maps grid cells onto image pixels
type Params struct {
	// Scale is the number of grid cells advanced per pixel: 1 draws one pixel
	// per cell, 0.25 draws every cell as a 4×4 square.
	Scale float64
	// XOff and YOff are the grid coordinates drawn at the image origin.
	XOff, YOff int

	Alive color.Color
	Dead  color.Color
}

// DefaultParams draws one white pixel per living cell on black
func DefaultParams() Params {
	return Params{Scale: 1, Alive: color.White, Dead: color.Black}
}

func (p Params) validate(src model.CellReader) error {
	if src == nil {
		return ErrNilSource
	}
	if !(p.Scale > minScale) {
		return errors.Wrapf(ErrInvalidScale, "got %v", p.Scale)
	}
	return nil
}

// NewImage allocates an RGBA image just large enough to hold the grid area selected by p
func NewImage(src model.CellReader, p Params) (*image.RGBA, error) {
	if err := p.validate(src); err != nil {
		return nil, errors.Wrap(err, "[NewImage]")
	}
	w := int(math.Ceil(float64(src.GetWidth()-p.XOff) / p.Scale))
	h := int(math.Ceil(float64(src.GetHeight()-p.YOff) / p.Scale))
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrEmptyImage, "[NewImage] offset (%d,%d)", p.XOff, p.YOff)
	}
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

// Render writes one color per destination pixel: pixel (i, j) shows cell
// (XOff + int(i*Scale), YOff + int(j*Scale)). Pixels past the grid's extent
// and pixels whose cell is absent are left untouched.
func Render(dst draw.Image, src model.CellReader, p Params) error {
	if err := p.validate(src); err != nil {
		return errors.Wrap(err, "[Render]")
	}
	if p.Alive == nil || p.Dead == nil {
		d := DefaultParams()
		p.Alive, p.Dead = orDefault(p.Alive, d.Alive), orDefault(p.Dead, d.Dead)
	}

	var (
		b          = dst.Bounds()
		numWorkers = 1
	)
	// only the concrete image types are known to be safe for concurrent writes to distinct rows
	switch dst.(type) {
	case *image.RGBA, *image.NRGBA:
		numWorkers = max(1, min(runtime.NumCPU(), b.Dy()))
	}
	rowsPerWorker := (b.Dy() + numWorkers - 1) / numWorkers // Ceiling division

	var eg errgroup.Group
	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, b.Dy())
		)
		if startRow >= b.Dy() {
			break
		}

		eg.Go(func() error {
			for j := startRow; j < endRow; j++ {
				renderRow(dst, src, p, b, j)
			}
			return nil
		})
	}
	return eg.Wait()
}

func renderRow(dst draw.Image, src model.CellReader, p Params, b image.Rectangle, j int) {
	y := p.YOff + int(float64(j)*p.Scale)
	if y >= src.GetHeight() {
		return
	}
	for i := range b.Dx() {
		x := p.XOff + int(float64(i)*p.Scale)
		if x >= src.GetWidth() {
			break
		}
		alive, ok := src.Cell(x, y)
		if !ok {
			continue
		}
		c := p.Dead
		if alive {
			c = p.Alive
		}
		dst.Set(b.Min.X+i, b.Min.Y+j, c)
	}
}

func orDefault(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}
