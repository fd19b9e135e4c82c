package export_test

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/lifegrid/export"
)

func redBlue() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{B: 255, A: 255})
	return img
}

func TestEncodePPM_Binary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.EncodePPM(&buf, redBlue(), export.PPMBinary, 255))
	assert.Equal(t, append([]byte("P6\n2 1\n255\n"), 255, 0, 0, 0, 0, 255), buf.Bytes())
}

func TestEncodePPM_BinaryWide(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.EncodePPM(&buf, redBlue(), export.PPMBinary, 1000))
	header := []byte("P6\n2 1\n1000\n")
	require.True(t, bytes.HasPrefix(buf.Bytes(), header))
	// 1000 = 0x03e8, big-endian
	assert.Equal(t, []byte{0x03, 0xe8, 0, 0, 0, 0, 0, 0, 0, 0, 0x03, 0xe8}, buf.Bytes()[len(header):])
}

func TestEncodePPM_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.EncodePPM(&buf, redBlue(), export.PPMPlain, 255))
	assert.Equal(t, "P3\n2 1\n255\n255 0 0 0 0 255\n", buf.String())

	buf.Reset()
	require.NoError(t, export.EncodePPM(&buf, redBlue(), export.PPMPlain, 15))
	assert.Equal(t, "P3\n2 1\n15\n15 0 0 0 0 15\n", buf.String())
}

func TestEncodePPM_PlainLineLength(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	var buf bytes.Buffer
	require.NoError(t, export.EncodePPM(&buf, img, export.PPMPlain, 255))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	samples := 0
	for _, line := range lines[3:] {
		assert.LessOrEqual(t, len(line), 70)
		samples += len(strings.Fields(line))
	}
	assert.Equal(t, 40*2*3, samples)
}

func TestEncodePPM_InvalidMaxValue(t *testing.T) {
	for _, mv := range []int{0, -1, 70000} {
		err := export.EncodePPM(&bytes.Buffer{}, redBlue(), export.PPMBinary, mv)
		assert.ErrorIs(t, err, export.ErrInvalidMaxValue, "max value %d", mv)
	}
}
