package renderer

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
)

// Raytracer renders a world through a camera into a Framebuffer. The world, camera
// and integrator are only read, so one Raytracer can be shared by many goroutines.
type Raytracer struct {
	world      geometry.Hittable
	camera     Camera
	integrator integrator.Integrator
	config     SamplingConfig
	logger     log.Logger
}

// NewRaytracer creates a new raytracer. A nil logger logs under the "renderer" module.
func NewRaytracer(world geometry.Hittable, camera Camera, integ integrator.Integrator, config SamplingConfig, logger log.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New("renderer")
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integ,
		config:     config,
		logger:     logger,
	}, nil
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// RenderSequential renders the whole image on the calling goroutine with a single
// generator, scanlines from the top of the image down.
func (rt *Raytracer) RenderSequential(random *rand.Rand) (*Framebuffer, RenderStats) {
	start := time.Now()
	fb := NewFramebuffer(rt.config.Width, rt.config.Height)

	for j := rt.config.Height - 1; j >= 0; j-- {
		rt.logger.Debugf("Scanlines remaining: %d", j+1)
		rt.renderBounds(fb, image.Rect(0, j, rt.config.Width, j+1), rt.config.SamplesPerPixel, random)
	}

	stats := rt.collectStats(fb, 1, rt.config.Height, time.Since(start))
	rt.logger.Infof("Sequential render finished in %v (%d samples)", stats.Duration, stats.TotalSamples)
	return fb, stats
}

// RenderParallel renders the image with a pool of workers. The samples of every pixel
// are spread over config.Passes passes; each (tile, pass) pair is one task with its
// own generator and buffer. Buffers are merged in task order regardless of which
// worker finishes first, so the image is identical for any number of workers.
func (rt *Raytracer) RenderParallel(config ParallelConfig) (*Framebuffer, RenderStats, error) {
	if err := config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, config.TileSize)
	passes := min(config.Passes, rt.config.SamplesPerPixel)

	// Pass-major order keeps the set of out-of-order results small
	tasks := make([]TileTask, 0, len(tiles)*passes)
	for pass := 0; pass < passes; pass++ {
		samples := samplesForPass(rt.config.SamplesPerPixel, passes, pass)
		for _, tile := range tiles {
			tasks = append(tasks, TileTask{
				TaskID:  len(tasks),
				Tile:    tile,
				Pass:    pass,
				Samples: samples,
				Seed:    unitSeed(config.Seed, tile.ID, pass),
			})
		}
	}

	numWorkers := min(config.workers(), len(tasks))
	rt.logger.Infof("Rendering %dx%d: %d tiles x %d passes on %d workers",
		rt.config.Width, rt.config.Height, len(tiles), passes, numWorkers)

	pool := NewWorkerPool(rt, numWorkers, numWorkers*2)
	pool.Start()
	go func() {
		for _, task := range tasks {
			pool.SubmitTask(task)
		}
		pool.Stop()
	}()

	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	pending := make(map[int]TileResult)
	next := 0
	for next < len(tasks) {
		result, ok := pool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("%w after %d of %d tasks", ErrWorkerPoolClosed, next, len(tasks))
		}
		pending[result.TaskID] = result

		// Merge every result that is next in task order
		for {
			ready, found := pending[next]
			if !found {
				break
			}
			delete(pending, next)
			fb.Merge(ready.Buffer)
			rt.logger.Debugf("Tile %d pass %d merged (%d/%d)", ready.Task.Tile.ID, ready.Task.Pass+1, next+1, len(tasks))

			if next%len(tiles) == len(tiles)-1 {
				rt.logger.Infof("Pass %d/%d completed in %v", ready.Task.Pass+1, passes, time.Since(start))
			}
			next++
		}
	}

	stats := rt.collectStats(fb, numWorkers, len(tasks), time.Since(start))
	return fb, stats, nil
}

// renderBounds takes samples samples for every pixel in bounds, top row first
func (rt *Raytracer) renderBounds(fb *Framebuffer, bounds image.Rectangle, samples int, random *rand.Rand) {
	for j := bounds.Max.Y - 1; j >= bounds.Min.Y; j-- {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			pixel := fb.Pixel(i, j)
			for s := 0; s < samples; s++ {
				pixel.AddSample(rt.samplePixel(i, j, random))
			}
		}
	}
}

// samplePixel traces one ray through a jittered point of pixel (i, j)
func (rt *Raytracer) samplePixel(i, j int, random *rand.Rand) core.Vec3 {
	s := (float64(i) + random.Float64()) / float64(max(rt.config.Width-1, 1))
	t := (float64(j) + random.Float64()) / float64(max(rt.config.Height-1, 1))

	ray := rt.camera.GetRay(s, t, random)
	return rt.integrator.RayColor(ray, rt.world, random)
}

func (rt *Raytracer) collectStats(fb *Framebuffer, workers, tasks int, duration time.Duration) RenderStats {
	totalPixels := fb.Width() * fb.Height()
	totalSamples := fb.TotalSamples()

	return RenderStats{
		TotalPixels:    totalPixels,
		TotalSamples:   totalSamples,
		AverageSamples: float64(totalSamples) / float64(totalPixels),
		Workers:        workers,
		Tasks:          tasks,
		Duration:       duration,
	}
}
