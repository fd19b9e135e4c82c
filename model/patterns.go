package model

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownPattern is returned by LookupPattern for names that are not registered.
var ErrUnknownPattern = errors.New("model: unknown pattern")

var (
	// BlockStillLife is the 2×2 still life.
	BlockStillLife = MustParsePattern(
		"XX",
		"XX",
	)

	// Blinker is the period 2 oscillator.
	Blinker = MustParsePattern("XXX")

	// Glider heads to the bottom right in its default orientation.
	Glider = MustParsePattern(
		".X.",
		"..X",
		"XXX",
	)

	// LightweightSpaceship (LWSS) heads to the right in its default orientation.
	LightweightSpaceship = MustParsePattern(
		".XXXX",
		"X...X",
		"....X",
		"X..X",
	)

	// GliderGun is the Gosper glider gun; it shoots gliders to the bottom right.
	GliderGun = MustParsePattern(
		"........................X...........",
		"......................X.X...........",
		"............XX......XX............XX",
		"...........X...X....XX............XX",
		"XX........X.....X...XX..............",
		"XX........X...X.XX....X.X...........",
		"..........X.....X.......X...........",
		"...........X...X....................",
		"............XX......................",
	)
)

var namedPatterns = map[string]*Pattern{
	"block":     BlockStillLife,
	"blinker":   Blinker,
	"glider":    Glider,
	"lwss":      LightweightSpaceship,
	"glidergun": GliderGun,
}

// LookupPattern returns the named pattern (case-insensitive)
func LookupPattern(name string) (*Pattern, error) {
	p, ok := namedPatterns[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPattern, "[LookupPattern] %q", name)
	}
	return p, nil
}

// PatternNames lists the registered pattern names in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(namedPatterns))
	for name := range namedPatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DrawGlider draws a glider at (x, y), overwriting its 3×3 footprint
func (g *Grid) DrawGlider(x, y int, rot Rotation, flip Flip) {
	g.DrawPattern(Glider, x, y, rot, flip, true)
}

// DrawLWSS draws a lightweight spaceship at (x, y), overwriting its footprint
func (g *Grid) DrawLWSS(x, y int, rot Rotation, flip Flip) {
	g.DrawPattern(LightweightSpaceship, x, y, rot, flip, true)
}

// DrawGliderGun draws a Gosper glider gun at (x, y). It needs 36×9 cells unrotated.
func (g *Grid) DrawGliderGun(x, y int, rot Rotation, flip Flip) {
	g.DrawPattern(GliderGun, x, y, rot, flip, true)
}

// DrawGliderScaled draws a glider whose cell offsets are multiplied by -1 on
// each flipped axis, mirroring it about column x and/or row y. The 4×3 block
// at (x, y) is cleared first.
func (g *Grid) DrawGliderScaled(x, y int, flipH, flipV bool) {
	g.DrawBlock(x, y, 4, 3, false)

	ox, oy := x, y
	if flipH {
		ox -= Glider.Width() - 1
	}
	if flipV {
		oy -= Glider.Height() - 1
	}
	g.DrawPattern(Glider, ox, oy, Rot0, Flip{Horizontal: flipH, Vertical: flipV}, false)
}

// AddOscillator adds a blinker oscillator pattern
func (g *Grid) AddOscillator(startX, startY int) {
	g.DrawPattern(Blinker, startX, startY, Rot0, NoFlip, false)
}

// PatternPlacement describes a named pattern stamped onto a grid
type PatternPlacement struct {
	Name     string
	X, Y     int
	Rotation Rotation
	Flip     Flip
	Reset    bool
}

// Place stamps every placement in order, failing on the first unknown name
func (g *Grid) Place(placements ...PatternPlacement) error {
	for _, pl := range placements {
		p, err := LookupPattern(pl.Name)
		if err != nil {
			return errors.Wrap(err, "[Place]")
		}
		g.DrawPattern(p, pl.X, pl.Y, pl.Rotation, pl.Flip, pl.Reset)
	}
	return nil
}
