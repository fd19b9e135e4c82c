// Package viewer shows a running grid in a desktop window.
//
// The window is only available when building with the ebiten tag:
//
//	go run -tags ebiten . -gui
package viewer

import (
	"image/color"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/model"
)

// ErrUnavailable is returned by Run in builds without the ebiten tag.
var ErrUnavailable = errors.New("viewer: GUI support requires building with the 'ebiten' tag")

// Options configures the viewer window
type Options struct {
	Title string
	Scale int // screen pixels per cell
	TPS   int // generations per second while running

	Alive color.Color
	Dead  color.Color

	// Reseed repopulates the grid when R is pressed. Optional.
	Reseed func(*model.Grid)
	// OnStep is called after every generation. Optional.
	OnStep func(*model.Grid)
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "go-gol"
	}
	if o.Scale <= 0 {
		o.Scale = 8
	}
	if o.TPS <= 0 {
		o.TPS = 10
	}
	if o.Alive == nil {
		o.Alive = color.White
	}
	if o.Dead == nil {
		o.Dead = color.Black
	}
	return o
}
