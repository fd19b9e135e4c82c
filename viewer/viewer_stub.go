//go:build !ebiten

package viewer

import "github.com/sheikhrachel/lifegrid/model"

// Run reports that the GUI build tag is missing.
func Run(*model.Grid, Options) error {
	return ErrUnavailable
}
