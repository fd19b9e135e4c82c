package export

import (
	"bufio"
	"image"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// PPMMode selects the PPM flavour written by EncodePPM
type PPMMode int

const (
	// PPMBinary writes P6 raw samples.
	PPMBinary PPMMode = iota
	// PPMPlain writes P3 ASCII samples.
	PPMPlain
)

const plainLineLimit = 70

// ErrInvalidMaxValue is returned when the PPM max value is outside [1, 65535].
var ErrInvalidMaxValue = errors.New("export: ppm max value must be in [1, 65535]")

// EncodePPM writes img as a PPM image. Samples are scaled to [0, maxValue];
// binary images use two big-endian bytes per sample when maxValue exceeds 255.
func EncodePPM(w io.Writer, img image.Image, mode PPMMode, maxValue int) error {
	if maxValue < 1 || maxValue > 0xffff {
		return errors.Wrapf(ErrInvalidMaxValue, "[EncodePPM] got %d", maxValue)
	}

	var (
		b     = img.Bounds()
		bw    = bufio.NewWriter(w)
		magic = "P6"
	)
	if mode == PPMPlain {
		magic = "P3"
	}
	bw.WriteString(magic + "\n" + strconv.Itoa(b.Dx()) + " " + strconv.Itoa(b.Dy()) + "\n" + strconv.Itoa(maxValue) + "\n")

	scale := func(v uint32) uint32 {
		return uint32((uint64(v)*uint64(maxValue) + 0x7fff) / 0xffff)
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		lineLen := 0
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			for _, s := range [3]uint32{scale(r), scale(g), scale(bl)} {
				if mode == PPMPlain {
					tok := strconv.FormatUint(uint64(s), 10)
					switch {
					case lineLen == 0:
					case lineLen+1+len(tok) > plainLineLimit:
						bw.WriteByte('\n')
						lineLen = 0
					default:
						bw.WriteByte(' ')
						lineLen++
					}
					bw.WriteString(tok)
					lineLen += len(tok)
					continue
				}
				if maxValue > 0xff {
					bw.WriteByte(byte(s >> 8))
				}
				bw.WriteByte(byte(s))
			}
		}
		if mode == PPMPlain {
			bw.WriteByte('\n')
		}
	}

	return errors.Wrap(bw.Flush(), "[EncodePPM] failed to flush")
}
