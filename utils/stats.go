package utils

import (
	"fmt"
	"time"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     uint64
	StartTime            time.Time
	ActiveCells          int
	BoundingBoxSize      int
	AverageBoundingBox   float64
	Restarts             int

	samples int
}

// smoothing is the weight of the newest sample in the running averages
const smoothing = 0.1

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one rendered generation
func (s *Stats) Update(generation uint64, population, boundingBox int, duration time.Duration) {
	s.TotalGenerations = generation
	s.ActiveCells = population
	s.BoundingBoxSize = boundingBox
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	s.AveragePopulation = s.smooth(s.AveragePopulation, population)
	s.AverageBoundingBox = s.smooth(s.AverageBoundingBox, boundingBox)
	s.samples++
}

// smooth folds sample into an exponential moving average; the first sample seeds it
func (s *Stats) smooth(avg float64, sample int) float64 {
	if s.samples == 0 {
		return float64(sample)
	}
	return avg + smoothing*(float64(sample)-avg)
}

// Runtime returns the time elapsed since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}

func (s *Stats) String() string {
	return fmt.Sprintf("%d generations in %.1f seconds | %.1f gen/sec | %.1f avg population | %d restarts",
		s.TotalGenerations, s.Runtime().Seconds(), s.GenerationsPerSecond, s.AveragePopulation, s.Restarts)
}
