package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/rules"
)

var (
	// ErrInvalidDimension is returned when a grid is created with a zero or negative side.
	ErrInvalidDimension = errors.New("model: grid width and height must be at least 1")
	// ErrOutOfBounds is returned when a coordinate falls outside a clamped grid.
	ErrOutOfBounds = errors.New("model: coordinate out of bounds")
	// ErrUnknownAdjacency is returned by ParseAdjacency for unrecognised names.
	ErrUnknownAdjacency = errors.New("model: unknown adjacency mode")
)

// Adjacency selects how the grid edges behave
type Adjacency int

const (
	// Clamp treats the grid as finite: off-grid coordinates do not exist.
	Clamp Adjacency = iota
	// Wrap joins opposite edges, forming a torus.
	Wrap
)

func (a Adjacency) String() string {
	if a == Wrap {
		return "wrap"
	}
	return "clamp"
}

// ParseAdjacency converts "wrap" / "clamp" (case-insensitive) to an Adjacency
func ParseAdjacency(s string) (Adjacency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wrap", "torus", "toroidal":
		return Wrap, nil
	case "clamp", "finite", "":
		return Clamp, nil
	}
	return Clamp, errors.Wrapf(ErrUnknownAdjacency, "[ParseAdjacency] %q", s)
}

// CellReader is the read-only query surface used by renderers and exporters
type CellReader interface {
	GetWidth() int
	GetHeight() int
	// Cell reports the state at (x, y); ok is false when no such cell exists.
	Cell(x, y int) (alive, ok bool)
}

// Cell holds the current state and the next-generation value computed during a pass
type Cell struct {
	state   bool
	scratch bool
}

// Grid represents the game board
type Grid struct {
	width      int
	height     int
	generation uint64
	cells      []Cell
	adjacency  Adjacency
	history    []string // Store recent grid states for cycle detection
}

// NewGrid creates a new grid with the specified dimensions
func NewGrid(width, height int, adjacency Adjacency) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[NewGrid] got %dx%d", width, height)
	}
	return &Grid{
		width:     width,
		height:    height,
		cells:     make([]Cell, width*height),
		adjacency: adjacency,
	}, nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Generation returns the number of generations advanced since creation or the last Reset
func (g *Grid) Generation() uint64 {
	return g.generation
}

// Adjacency returns the edge mode of the grid
func (g *Grid) Adjacency() Adjacency {
	return g.adjacency
}

// Reset resets the grid to new dimensions
func (g *Grid) Reset(width, height int, adjacency Adjacency) error {
	if width < 1 || height < 1 {
		return errors.Wrapf(ErrInvalidDimension, "[Reset] got %dx%d", width, height)
	}
	g.width = width
	g.height = height
	g.adjacency = adjacency
	g.generation = 0
	g.history = nil

	// Resize cells if needed
	if cap(g.cells) < width*height {
		g.cells = make([]Cell, width*height)
		return nil
	}
	g.cells = g.cells[:width*height]
	clear(g.cells)
	return nil
}

// Clear clears all cells
func (g *Grid) Clear() {
	clear(g.cells)
	g.history = nil
}

// index resolves (x, y) to a slot in cells according to the adjacency mode
func (g *Grid) index(x, y int) (int, bool) {
	if g.adjacency == Wrap {
		x = ((x % g.width) + g.width) % g.width
		y = ((y % g.height) + g.height) % g.height
	} else if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0, false
	}
	return y*g.width + x, true
}

// CellAt returns the state of a cell, or ErrOutOfBounds on a clamped grid
func (g *Grid) CellAt(x, y int) (bool, error) {
	i, ok := g.index(x, y)
	if !ok {
		return false, errors.Wrapf(ErrOutOfBounds, "[CellAt] (%d,%d) on %dx%d grid", x, y, g.width, g.height)
	}
	return g.cells[i].state, nil
}

// Cell returns the state of a cell; ok is false when the cell does not exist
func (g *Grid) Cell(x, y int) (alive, ok bool) {
	i, ok := g.index(x, y)
	if !ok {
		return false, false
	}
	return g.cells[i].state, true
}

// Get returns the state of a cell, treating absent cells as dead
func (g *Grid) Get(x, y int) bool {
	alive, _ := g.Cell(x, y)
	return alive
}

// Set sets a cell to alive (true) or dead (false). Absent cells are ignored.
func (g *Grid) Set(x, y int, alive bool) {
	if i, ok := g.index(x, y); ok {
		g.cells[i].state = alive
	}
}

// NeighbourCount counts the living cells of the Moore neighbourhood of (x, y)
func (g *Grid) NeighbourCount(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue // Skip the cell itself
			}
			if g.Get(x+dx, y+dy) {
				count++
			}
		}
	}
	return count
}

// NextGeneration advances the grid by one generation in place
func (g *Grid) NextGeneration() {
	// Score every cell against the current states only
	for y := range g.height {
		for x := range g.width {
			c := &g.cells[y*g.width+x]
			c.scratch = rules.ApplyConwayRules(g.NeighbourCount(x, y), c.state)
		}
	}

	// Promote
	for i := range g.cells {
		g.cells[i].state = g.cells[i].scratch
	}

	g.generation++
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for i := range g.cells {
		if g.cells[i].state {
			count++
		}
	}
	return
}

// Bounds is an inclusive rectangle of cell coordinates
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// LiveBounds returns the bounding box of the living cells; ok is false on an empty grid
func (g *Grid) LiveBounds() (b Bounds, ok bool) {
	for y := range g.height {
		for x := range g.width {
			if !g.cells[y*g.width+x].state {
				continue
			}
			if !ok {
				b = Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
				ok = true
				continue
			}
			b.MinX = min(b.MinX, x)
			b.MaxX = max(b.MaxX, x)
			b.MinY = min(b.MinY, y)
			b.MaxY = max(b.MaxY, y)
		}
	}
	return
}

// GetBoundingBoxSize returns the size of the active region
func (g *Grid) GetBoundingBoxSize() int {
	b, ok := g.LiveBounds()
	if !ok {
		return 0
	}
	return (b.MaxX - b.MinX + 1) * (b.MaxY - b.MinY + 1)
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	buf := make([]byte, len(g.cells))
	for i := range g.cells {
		if g.cells[i].state {
			buf[i] = 1
		}
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())

	// Keep only last 5 states to detect cycles
	if len(g.history) > 5 {
		g.history = g.history[1:]
	}
}

// IsStagnant checks if the grid repeats one of its three most recent recorded states.
// Call it before UpdateHistory for the current generation.
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}

	currentHash := g.GetGridHash()
	for _, h := range g.history[len(g.history)-3:] {
		if h == currentHash {
			return true
		}
	}
	return false
}

// InjectRandomLife adds some random cells to break stagnation
func (g *Grid) InjectRandomLife(count int, rng *rand.Rand) {
	for range count {
		g.Set(rng.IntN(g.width), rng.IntN(g.height), true)
	}
}

// Randomize fills the grid with random living cells
func (g *Grid) Randomize(density float64, rng *rand.Rand) {
	for i := range g.cells {
		g.cells[i].state = rng.Float64() < density
	}
}

// String renders the grid as rows of 'X' and '.'
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := range g.height {
		for x := range g.width {
			if g.cells[y*g.width+x].state {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
