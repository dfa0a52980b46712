package renderer

import (
	"fmt"
	"runtime"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          300,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// AspectRatio returns width over height
func (c SamplingConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Validate reports the first invalid field
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidImageSize, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleCount, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxDepth, c.MaxDepth)
	}
	return nil
}

// ParallelConfig controls how a parallel render is split into work units.
// A unit is one tile rendered for one pass, seeded from (Seed, tile, pass), so the
// result only depends on Seed, TileSize and Passes, never on NumWorkers.
type ParallelConfig struct {
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	TileSize   int   // Size of each square tile in pixels
	Passes     int   // Number of passes the samples of each pixel are spread over
	Seed       int64 // Base seed for every work unit
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		NumWorkers: 0,
		TileSize:   32,
		Passes:     1,
		Seed:       42,
	}
}

// Validate reports the first invalid field
func (c ParallelConfig) Validate() error {
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, c.NumWorkers)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTileSize, c.TileSize)
	}
	if c.Passes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPassCount, c.Passes)
	}
	return nil
}

// workers resolves NumWorkers, substituting the CPU count for 0
func (c ParallelConfig) workers() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}

// samplesForPass splits samplesPerPixel over the passes. Earlier passes take the
// remainder, so the counts differ by at most one and sum to samplesPerPixel.
func samplesForPass(samplesPerPixel, passes, pass int) int {
	samples := samplesPerPixel / passes
	if pass < samplesPerPixel%passes {
		samples++
	}
	return samples
}
