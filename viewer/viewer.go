//go:build ebiten

package viewer

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/export"
	"github.com/sheikhrachel/lifegrid/model"
)

// Game adapts a grid to the ebiten.Game interface.
type Game struct {
	grid *model.Grid
	opts Options

	frame  *image.RGBA
	img    *ebiten.Image
	params export.Params

	paused   bool
	tickOnce bool
}

func newGame(grid *model.Grid, opts Options) *Game {
	w, h := grid.GetWidth(), grid.GetHeight()
	return &Game{
		grid:   grid,
		opts:   opts,
		frame:  image.NewRGBA(image.Rect(0, 0, w, h)),
		img:    ebiten.NewImage(w, h),
		params: export.Params{Scale: 1, Alive: opts.Alive, Dead: opts.Dead},
	}
}

// Run opens the window and blocks until it is closed.
func Run(grid *model.Grid, opts Options) error {
	opts = opts.withDefaults()
	game := newGame(grid, opts)

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetTPS(opts.TPS)
	ebiten.SetWindowSize(grid.GetWidth()*opts.Scale, grid.GetHeight()*opts.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[Run] ebiten")
	}
	return nil
}

// Update handles input and advances the grid.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.opts.Reseed != nil {
		g.opts.Reseed(g.grid)
	}

	if !g.paused || g.tickOnce {
		g.grid.NextGeneration()
		g.tickOnce = false
		if g.opts.OnStep != nil {
			g.opts.OnStep(g.grid)
		}
	}
	return nil
}

// Draw renders the current generation.
func (g *Game) Draw(screen *ebiten.Image) {
	if err := export.Render(g.frame, g.grid, g.params); err != nil {
		return
	}
	g.img.WritePixels(g.frame.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.opts.Scale), float64(g.opts.Scale))
	screen.DrawImage(g.img, op)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.grid.GetWidth() * g.opts.Scale, g.grid.GetHeight() * g.opts.Scale
}
