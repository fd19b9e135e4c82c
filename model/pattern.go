package model

import (
	"github.com/pkg/errors"
)

var (
	// ErrEmptyPattern is returned when a pattern has no rows or no columns.
	ErrEmptyPattern = errors.New("model: pattern must have at least one row and one column")
	// ErrInvalidRotation is returned by ParseRotation for angles that are not a multiple of 90.
	ErrInvalidRotation = errors.New("model: rotation must be a multiple of 90 degrees")
)

// Rotation is a clockwise quarter-turn count applied when stamping a pattern
type Rotation int

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// ParseRotation converts an angle in degrees to a Rotation. Negative angles turn counter-clockwise.
func ParseRotation(degrees int) (Rotation, error) {
	if degrees%90 != 0 {
		return Rot0, errors.Wrapf(ErrInvalidRotation, "[ParseRotation] got %d", degrees)
	}
	return Rotation(((degrees/90)%4 + 4) % 4), nil
}

// Degrees returns the clockwise angle of the rotation
func (r Rotation) Degrees() int {
	return int(r) * 90
}

// Flip selects mirroring of the sampled source pattern.
type Flip struct {
	Horizontal bool
	Vertical   bool
}

// NoFlip leaves the pattern as is.
var NoFlip = Flip{}

// Pattern is an immutable rectangular stamp of living and dead cells
type Pattern struct {
	width  int
	height int
	cells  []bool
}

// ParsePattern builds a pattern from text rows, one string per row.
// 'x' and 'X' mark living cells; any other character is dead. Rows
// shorter than the widest row are padded with dead cells.
func ParsePattern(rows ...string) (*Pattern, error) {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if len(rows) == 0 || width == 0 {
		return nil, ErrEmptyPattern
	}

	p := &Pattern{width: width, height: len(rows), cells: make([]bool, width*len(rows))}
	for j, row := range rows {
		for i := 0; i < len(row); i++ {
			p.cells[j*width+i] = row[i] == 'x' || row[i] == 'X'
		}
	}
	return p, nil
}

// MustParsePattern is like ParsePattern but panics on error. Meant for package-level patterns.
func MustParsePattern(rows ...string) *Pattern {
	p, err := ParsePattern(rows...)
	if err != nil {
		panic(err)
	}
	return p
}

// Width returns the number of columns of the pattern
func (p *Pattern) Width() int { return p.width }

// Height returns the number of rows of the pattern
func (p *Pattern) Height() int { return p.height }

// At reports whether the source cell (i, j) is alive. Out-of-range cells are dead.
func (p *Pattern) At(i, j int) bool {
	if i < 0 || j < 0 || i >= p.width || j >= p.height {
		return false
	}
	return p.cells[j*p.width+i]
}

// Living returns the number of living cells in the pattern
func (p *Pattern) Living() (count int) {
	for _, alive := range p.cells {
		if alive {
			count++
		}
	}
	return
}

// Footprint returns the width and height the pattern covers once rotated
func (p *Pattern) Footprint(rot Rotation) (w, h int) {
	if rot == Rot90 || rot == Rot270 {
		return p.height, p.width
	}
	return p.width, p.height
}

// transform maps source (i, j) to its destination offset and to the source cell to sample
func (p *Pattern) transform(i, j int, rot Rotation, flip Flip) (gi, gj, si, sj int) {
	w, h := p.width, p.height

	gi, gj = i, j
	switch rot {
	case Rot90:
		gi, gj = h-1-j, i
	case Rot180:
		gi, gj = w-1-i, h-1-j
	case Rot270:
		gi, gj = j, w-1-i
	}

	si, sj = i, j
	if flip.Horizontal {
		si = w - 1 - si
	}
	if flip.Vertical {
		sj = h - 1 - sj
	}
	return
}

// DrawBlock sets every cell of the w×h rectangle at (x, y) to alive. Off-grid cells are skipped.
func (g *Grid) DrawBlock(x, y, w, h int, alive bool) {
	for j := range max(h, 0) {
		for i := range max(w, 0) {
			g.Set(x+i, y+j, alive)
		}
	}
}

// DrawPattern stamps p with its top-left corner at (x, y). rot decides where
// each source cell lands, flip decides which source cell is sampled. With
// reset false only living cells are written; with reset true every covered
// cell is overwritten.
func (g *Grid) DrawPattern(p *Pattern, x, y int, rot Rotation, flip Flip, reset bool) {
	for j := range p.height {
		for i := range p.width {
			gi, gj, si, sj := p.transform(i, j, rot, flip)
			living := p.At(si, sj)
			if !reset && !living {
				continue
			}
			g.Set(x+gi, y+gj, living)
		}
	}
}
