package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/lifegrid/model"
)

// asymmetric so every rotation and flip is distinguishable
var lShape = model.MustParsePattern(
	"X..",
	"XX.",
	"X.X",
	".xX",
)

func readBack(g *model.Grid, x, y, w, h int) [][]bool {
	out := make([][]bool, h)
	for j := range h {
		out[j] = make([]bool, w)
		for i := range w {
			out[j][i] = g.Get(x+i, y+j)
		}
	}
	return out
}

func source(p *model.Pattern) [][]bool {
	out := make([][]bool, p.Height())
	for j := range p.Height() {
		out[j] = make([]bool, p.Width())
		for i := range p.Width() {
			out[j][i] = p.At(i, j)
		}
	}
	return out
}

func TestParsePattern(t *testing.T) {
	p, err := model.ParsePattern("x.X", "o")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Width())
	assert.Equal(t, 2, p.Height())
	assert.Equal(t, [][]bool{{true, false, true}, {false, false, false}}, source(p))
	assert.Equal(t, 2, p.Living())
	assert.False(t, p.At(-1, 0))
	assert.False(t, p.At(3, 0))

	_, err = model.ParsePattern()
	assert.ErrorIs(t, err, model.ErrEmptyPattern)
	_, err = model.ParsePattern("", "")
	assert.ErrorIs(t, err, model.ErrEmptyPattern)

	assert.Panics(t, func() { model.MustParsePattern() })
}

func TestParseRotation(t *testing.T) {
	cases := map[int]model.Rotation{0: model.Rot0, 90: model.Rot90, 180: model.Rot180, 270: model.Rot270, 360: model.Rot0, -90: model.Rot270}
	for deg, want := range cases {
		got, err := model.ParseRotation(deg)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%d degrees", deg)
	}
	assert.Equal(t, 270, model.Rot270.Degrees())

	_, err := model.ParseRotation(45)
	assert.ErrorIs(t, err, model.ErrInvalidRotation)
}

func TestDrawPattern_Rotations(t *testing.T) {
	src := source(lShape)
	w, h := lShape.Width(), lShape.Height()

	cases := []struct {
		name string
		rot  model.Rotation
		// value at destination (gi, gj) in terms of the source
		at func(gi, gj int) bool
	}{
		{"Rot0", model.Rot0, func(gi, gj int) bool { return src[gj][gi] }},
		// 90: (i,j) -> (h-1-j, i)
		{"Rot90", model.Rot90, func(gi, gj int) bool { return src[h-1-gi][gj] }},
		// 180: (i,j) -> (w-1-i, h-1-j)
		{"Rot180", model.Rot180, func(gi, gj int) bool { return src[h-1-gj][w-1-gi] }},
		// 270: (i,j) -> (j, w-1-i)
		{"Rot270", model.Rot270, func(gi, gj int) bool { return src[gi][w-1-gj] }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(t, 12, 12, model.Clamp)
			g.DrawPattern(lShape, 3, 4, tc.rot, model.NoFlip, true)

			fw, fh := lShape.Footprint(tc.rot)
			got := readBack(g, 3, 4, fw, fh)
			for gj := range fh {
				for gi := range fw {
					assert.Equal(t, tc.at(gi, gj), got[gj][gi], "(%d,%d)", gi, gj)
				}
			}
			assert.Equal(t, lShape.Living(), g.CountLivingCells())
		})
	}
}

func TestDrawPattern_Rot180EqualsDoubleMirror(t *testing.T) {
	rotated := newGrid(t, 8, 8, model.Wrap)
	rotated.DrawPattern(lShape, 1, 2, model.Rot180, model.NoFlip, true)

	mirrored := newGrid(t, 8, 8, model.Wrap)
	mirrored.DrawPattern(lShape, 1, 2, model.Rot0, model.Flip{Horizontal: true, Vertical: true}, true)

	assert.Equal(t, mirrored.String(), rotated.String())

	src := source(lShape)
	got := readBack(rotated, 1, 2, lShape.Width(), lShape.Height())
	for j := range lShape.Height() {
		for i := range lShape.Width() {
			assert.Equal(t, src[lShape.Height()-1-j][lShape.Width()-1-i], got[j][i])
		}
	}
}

func TestDrawPattern_Flips(t *testing.T) {
	src := source(lShape)
	w, h := lShape.Width(), lShape.Height()

	g := newGrid(t, 10, 10, model.Clamp)
	g.DrawPattern(lShape, 0, 0, model.Rot0, model.Flip{Horizontal: true}, true)
	got := readBack(g, 0, 0, w, h)
	for j := range h {
		for i := range w {
			assert.Equal(t, src[j][w-1-i], got[j][i])
		}
	}

	g.Clear()
	g.DrawPattern(lShape, 0, 0, model.Rot0, model.Flip{Vertical: true}, true)
	got = readBack(g, 0, 0, w, h)
	for j := range h {
		for i := range w {
			assert.Equal(t, src[h-1-j][i], got[j][i])
		}
	}
}

func TestDrawPattern_FlipSamplesBeforeRotation(t *testing.T) {
	// flipping the source and rotating 90 degrees is the rotation of the flipped pattern
	flipped := model.MustParsePattern(
		"..X",
		".XX",
		"X.X",
		"Xx.",
	)

	a := newGrid(t, 10, 10, model.Clamp)
	a.DrawPattern(lShape, 2, 2, model.Rot90, model.Flip{Horizontal: true}, true)
	b := newGrid(t, 10, 10, model.Clamp)
	b.DrawPattern(flipped, 2, 2, model.Rot90, model.NoFlip, true)
	assert.Equal(t, b.String(), a.String())
}

func TestDrawPattern_ResetSemantics(t *testing.T) {
	additive := newGrid(t, 6, 6, model.Clamp)
	additive.DrawBlock(0, 0, 6, 6, true)
	additive.DrawPattern(lShape, 1, 1, model.Rot0, model.NoFlip, false)
	assert.Equal(t, 36, additive.CountLivingCells(), "dead source cells must not be written")

	overwrite := newGrid(t, 6, 6, model.Clamp)
	overwrite.DrawBlock(0, 0, 6, 6, true)
	overwrite.DrawPattern(lShape, 1, 1, model.Rot0, model.NoFlip, true)
	dead := lShape.Width()*lShape.Height() - lShape.Living()
	assert.Equal(t, 36-dead, overwrite.CountLivingCells())
}

func TestDrawPattern_ClipsAtClampedEdges(t *testing.T) {
	g := newGrid(t, 4, 4, model.Clamp)
	require.NotPanics(t, func() {
		g.DrawPattern(model.GliderGun, -10, -3, model.Rot90, model.Flip{Horizontal: true}, true)
		g.DrawPattern(model.Glider, 3, 3, model.Rot0, model.NoFlip, true)
	})

	w := newGrid(t, 4, 4, model.Wrap)
	w.DrawPattern(model.Glider, 3, 3, model.Rot0, model.NoFlip, true)
	assert.Equal(t, 5, w.CountLivingCells())
}

func TestDrawBlock_SetThenClear(t *testing.T) {
	g := newGrid(t, 10, 10, model.Clamp)
	g.DrawPattern(model.GliderGun, 0, 0, model.Rot90, model.NoFlip, true)
	before := g.CountLivingCells()

	g.DrawBlock(2, 3, 4, 5, true)
	for _, row := range readBack(g, 2, 3, 4, 5) {
		for _, alive := range row {
			assert.True(t, alive)
		}
	}
	g.DrawBlock(2, 3, 4, 5, false)
	for _, row := range readBack(g, 2, 3, 4, 5) {
		for _, alive := range row {
			assert.False(t, alive)
		}
	}
	assert.LessOrEqual(t, g.CountLivingCells(), before)

	// off-grid and degenerate blocks are silently dropped
	g.Clear()
	g.DrawBlock(8, 8, 5, 5, true)
	assert.Equal(t, 4, g.CountLivingCells())
	g.DrawBlock(0, 0, -3, 2, true)
	assert.Equal(t, 4, g.CountLivingCells())
}

func TestDrawGliderScaled(t *testing.T) {
	// glider cells as (dx, dy) offsets from the origin
	offsets := [][2]int{{1, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}}

	for _, tc := range []struct {
		name         string
		flipH, flipV bool
	}{
		{"None", false, false},
		{"Horizontal", true, false},
		{"Vertical", false, true},
		{"Both", true, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sx, sy := 1, 1
			if tc.flipH {
				sx = -1
			}
			if tc.flipV {
				sy = -1
			}

			g := newGrid(t, 12, 12, model.Clamp)
			g.DrawGliderScaled(5, 5, tc.flipH, tc.flipV)

			want := newGrid(t, 12, 12, model.Clamp)
			for _, o := range offsets {
				want.Set(5+o[0]*sx, 5+o[1]*sy, true)
			}
			assert.Equal(t, want.String(), g.String())
		})
	}
}

func TestDrawGliderScaled_ClearsBlock(t *testing.T) {
	g := newGrid(t, 8, 8, model.Clamp)
	g.DrawBlock(0, 0, 8, 8, true)
	g.DrawGliderScaled(2, 2, false, false)

	got := readBack(g, 2, 2, 4, 3)
	want := [][]bool{
		{false, true, false, false},
		{false, false, true, false},
		{true, true, true, false},
	}
	assert.Equal(t, want, got)
}

func TestLookupPattern(t *testing.T) {
	p, err := model.LookupPattern(" LWSS ")
	require.NoError(t, err)
	assert.Same(t, model.LightweightSpaceship, p)
	assert.Equal(t, 5, p.Width())
	assert.Equal(t, 4, p.Height())
	assert.Equal(t, 9, p.Living())

	gun, err := model.LookupPattern("glidergun")
	require.NoError(t, err)
	assert.Equal(t, 36, gun.Width())
	assert.Equal(t, 9, gun.Height())
	assert.Equal(t, 36, gun.Living())

	_, err = model.LookupPattern("pulsar")
	assert.ErrorIs(t, err, model.ErrUnknownPattern)

	assert.Equal(t, []string{"blinker", "block", "glider", "glidergun", "lwss"}, model.PatternNames())
}

func TestPlace(t *testing.T) {
	g := newGrid(t, 20, 20, model.Wrap)
	err := g.Place(
		model.PatternPlacement{Name: "glider", X: 1, Y: 1},
		model.PatternPlacement{Name: "block", X: 10, Y: 10, Reset: true},
	)
	require.NoError(t, err)
	assert.Equal(t, 9, g.CountLivingCells())

	err = g.Place(model.PatternPlacement{Name: "nope"})
	assert.ErrorIs(t, err, model.ErrUnknownPattern)
}
