package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles cell buffers across restarts
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() any {
				return &Grid{}
			},
		},
	}
}

// Get retrieves a dead grid from the pool with the given dimensions and adjacency.
// A nil pool allocates a fresh grid.
func (p *GridPool) Get(width, height int, adjacency Adjacency) (*Grid, error) {
	if p == nil {
		return NewGrid(width, height, adjacency)
	}
	g := p.pool.Get().(*Grid)
	if err := g.Reset(width, height, adjacency); err != nil {
		p.pool.Put(g)
		return nil, err
	}
	return g, nil
}

// Put returns a grid to the pool, clearing its state
func (p *GridPool) Put(g *Grid) {
	g.Clear()
	p.pool.Put(g)
}
