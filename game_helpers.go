package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/export"
	"github.com/sheikhrachel/lifegrid/model"
	"github.com/sheikhrachel/lifegrid/render"
	"github.com/sheikhrachel/lifegrid/utils"
)

// game bundles everything the main loop needs
type game struct {
	config     utils.Config
	adjacency  model.Adjacency
	placements []model.PatternPlacement
	grid       *model.Grid
	pool       *model.GridPool
	renderer   *render.TerminalRenderer
	stats      *utils.Stats
	rng        *rand.Rand
	exportOpts export.Params
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (*game, error) {
	adjacency, err := config.AdjacencyMode()
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame]")
	}
	placements, err := config.Placements()
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame]")
	}
	aliveANSI, deadANSI, err := config.TerminalColors()
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame]")
	}

	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}

	g := &game{
		config:     config,
		adjacency:  adjacency,
		placements: placements,
		pool:       pool,
		renderer:   render.NewTerminalRenderer(os.Stdout, aliveANSI, deadANSI),
		stats:      utils.NewStats(),
		rng:        rand.New(rand.NewPCG(uint64(config.Seed), 0)),
	}

	aliveRGBA, deadRGBA := config.ImageColors()
	g.exportOpts = export.Params{Scale: config.Export.Scale, Alive: aliveRGBA, Dead: deadRGBA}
	if config.Export.Every > 0 {
		if err = os.MkdirAll(config.Export.Dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "[initializeGame] failed to create export dir: %+v", config.Export.Dir)
		}
	}

	if g.grid, err = pool.Get(config.Width, config.Height, adjacency); err != nil {
		return nil, errors.Wrap(err, "[initializeGame]")
	}
	if err = g.populate(g.grid); err != nil {
		return nil, err
	}
	return g, nil
}

// populate fills the grid with random life and stamps the configured patterns over it.
// Without configured patterns a couple of gliders and blinkers are placed.
func (g *game) populate(grid *model.Grid) error {
	grid.Clear()
	grid.Randomize(g.config.RandomDensity, g.rng)

	if len(g.placements) > 0 {
		return errors.Wrap(grid.Place(g.placements...), "[populate]")
	}

	w, h := grid.GetWidth(), grid.GetHeight()
	if w >= 10 && h >= 10 {
		grid.DrawGlider(5, 5, model.Rot0, model.NoFlip)
		if w >= 20 && h >= 15 {
			grid.DrawGlider(w-8, 5, model.Rot0, model.Flip{Horizontal: true})
		}

		grid.AddOscillator(w/4, h/4)
		if w >= 30 {
			grid.AddOscillator(3*w/4, 3*h/4)
		}
	}
	return nil
}

// fitTerminal clips the renderer to the terminal window, leaving room for the status lines
func (g *game) fitTerminal() {
	if !g.config.FitTerminal {
		return
	}
	columns, rows, err := render.WindowSize()
	if err != nil {
		return
	}
	g.renderer.MaxWidth = columns
	g.renderer.MaxHeight = max(rows-statusLines, 1)
}

const statusLines = 4

// displayGameInfo shows the initial game information
func displayGameInfo(g *game) {
	fmt.Printf("Features: Memory Pool: %v, Adjacency: %v, Seed: %d\n",
		g.config.UseMemoryPool, g.adjacency, g.config.Seed)
	fmt.Printf("Grid: %dx%d | Initial living cells: %d\n",
		g.grid.GetWidth(), g.grid.GetHeight(), g.grid.CountLivingCells())
	if g.config.Export.Every > 0 {
		fmt.Printf("Exporting every %d generations to %s\n", g.config.Export.Every, g.config.Export.Dir)
	}
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// updateGameState updates the game state and returns status information
func updateGameState(g *game, generation uint64, lastFrameTime time.Time) (int, float64, string, bool) {
	grid := g.grid
	livingCells := grid.CountLivingCells()
	density := float64(livingCells) / float64(grid.GetWidth()*grid.GetHeight()) * 100

	// Update performance stats
	g.stats.Update(generation, livingCells, grid.GetBoundingBoxSize(), time.Since(lastFrameTime))

	// Compare against the recorded history before adding the current state
	isStagnant := grid.IsStagnant()
	grid.UpdateHistory()

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// displayGameStatus shows the current game status
func displayGameStatus(g *game, generation uint64, livingCells int, density float64, status string, lastRestartGen uint64) error {
	err := g.renderer.Status("Gen: %d | Living: %d | Density: %.1f%% | Status: %s | Bounding box: %d cells",
		generation, livingCells, density, status, g.stats.BoundingBoxSize)
	if err != nil {
		return err
	}
	err = g.renderer.Status("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, g.stats.Runtime().Seconds())
	if err != nil {
		return err
	}

	// Show time since last restart
	if generation > lastRestartGen {
		return g.renderer.Status("Generations since restart: %d", generation-lastRestartGen)
	}
	return nil
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame returns the old grid to the pool and seeds a fresh one
func (g *game) restartGame(ctx context.Context) error {
	fmt.Printf("\n🔄 Restarting...\n")
	if err := sleep(ctx, time.Second); err != nil {
		return err
	}

	model.GridToPool(g.grid, g.pool)
	grid, err := g.pool.Get(g.config.Width, g.config.Height, g.adjacency)
	if err != nil {
		return errors.Wrap(err, "[restartGame]")
	}
	if err = g.populate(grid); err != nil {
		return err
	}
	g.grid = grid
	g.stats.Restarts++

	fmt.Printf("✨ New patterns loaded! Living cells: %d\n", grid.CountLivingCells())
	return sleep(ctx, time.Second)
}

// exportFrame writes the current generation as an image when the export interval is reached
func (g *game) exportFrame(generation uint64) error {
	every := g.config.Export.Every
	if every <= 0 || generation%uint64(every) != 0 {
		return nil
	}
	name := fmt.Sprintf("gen-%06d.%s", generation, g.config.Export.Format)
	return export.WriteFile(filepath.Join(g.config.Export.Dir, name), g.grid, g.exportOpts)
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
