package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/lifegrid/model"
	"github.com/sheikhrachel/lifegrid/utils"
	"github.com/sheikhrachel/lifegrid/viewer"
)

var errInterrupted = errors.New("interrupted")

func main() {
	flags := utils.NewFlags()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(flags.ConfigPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("failed to load configuration: %+v", err)
		}
		fmt.Printf("Using default configuration (%s not found)\n", flags.ConfigPath)
		config = utils.DefaultConfig()
	}
	flags.Apply(flag.CommandLine, &config)
	if err = config.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	g, err := initializeGame(config)
	if err != nil {
		log.Fatalf("failed to initialize game: %+v", err)
	}

	if flags.GUI {
		if err = runWindow(g); err != nil {
			log.Fatal(err)
		}
		return
	}

	displayGameInfo(g)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(context.Background())
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		select {
		case <-sigChan:
			return errInterrupted
		case <-ctx.Done():
			return nil
		}
	})
	eg.Go(func() error {
		defer cancel()
		return g.run(ctx)
	})

	err = eg.Wait()
	switch {
	case errors.Is(err, errInterrupted):
		fmt.Println("\n🛑 Shutting down gracefully...")
	case err != nil:
		log.Fatalf("game loop failed: %+v", err)
	}
	fmt.Printf("Final stats: %s\n", g.stats)
}

// run is the main game loop. It returns nil once the generation limit is reached.
func (g *game) run(ctx context.Context) error {
	var (
		generation     uint64
		lastRestartGen uint64
		stagnantCount  = 0
		lastFrameTime  = time.Now()
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		frameStart := time.Now()
		g.fitTerminal()
		if err := g.renderer.Clear(); err != nil {
			return err
		}

		livingCells, density, status, isStagnant := updateGameState(g, generation, lastFrameTime)
		lastFrameTime = frameStart

		// Update stagnation counter
		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		if err := displayGameStatus(g, generation, livingCells, density, status, lastRestartGen); err != nil {
			return err
		}
		if err := g.renderer.Display(g.grid); err != nil {
			return err
		}
		if err := g.exportFrame(generation); err != nil {
			return err
		}

		// Check for max generations limit
		if g.config.MaxGenerations > 0 && generation >= uint64(g.config.MaxGenerations) {
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", g.config.MaxGenerations)
			return nil
		}

		shouldRestart, restartReason := checkRestartConditions(livingCells, stagnantCount, g.config)
		if shouldRestart && g.config.AutoRestart {
			fmt.Printf("🔄 Restarting due to %s...\n", restartReason)
			if err := g.restartGame(ctx); err != nil {
				return ignoreCanceled(err)
			}
			lastRestartGen = generation
			stagnantCount = 0
		} else if stagnantCount >= 2 && stagnantCount < g.config.StagnationThreshold {
			// Inject some life to try to break the stagnation
			g.grid.InjectRandomLife(g.config.InjectionCount, g.rng)
		}

		g.grid.NextGeneration()
		generation++

		// Wait before next frame
		if err := sleep(ctx, g.config.FrameRate); err != nil {
			return ignoreCanceled(err)
		}
	}
}

// runWindow hands the grid to the GUI viewer
func runWindow(g *game) error {
	alive, dead := g.config.ImageColors()
	var generation uint64
	return viewer.Run(g.grid, viewer.Options{
		Title: fmt.Sprintf("go-gol %dx%d (%v)", g.config.Width, g.config.Height, g.adjacency),
		Scale: g.config.GUIScale,
		TPS:   int(time.Second / max(g.config.FrameRate, time.Millisecond)),
		Alive: alive,
		Dead:  dead,
		Reseed: func(grid *model.Grid) {
			if err := g.populate(grid); err != nil {
				fmt.Println("Error reseeding grid:", err)
			}
		},
		OnStep: func(grid *model.Grid) {
			generation++
			if err := g.exportFrame(generation); err != nil {
				fmt.Println("Error exporting frame:", err)
			}
		},
	})
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
